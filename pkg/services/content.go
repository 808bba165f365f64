package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"quiqr-cms/pkg/config"
	"quiqr-cms/pkg/models"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// LoadDataFile decodes one content or data file.
func LoadDataFile(fullPath string) (any, error) {
	return Load(fullPath)
}

// LoadDataDirectory loads every supported file directly inside fullPath.
// Markdown files keep their frontmatter split; JSON, YAML and TOML files
// holding a mapping are returned with that mapping as Data and no content.
// Files are read concurrently and returned in name order.
func LoadDataDirectory(ctx context.Context, fullPath string) ([]models.MarkdownContent, error) {
	items, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, &DirectoryReadError{Path: fullPath, Err: err}
	}

	var paths []string
	for _, item := range items {
		if item.IsDir() {
			continue
		}
		if _, ok := FormatForExt(filepath.Ext(item.Name())); !ok {
			continue
		}
		paths = append(paths, filepath.Join(fullPath, item.Name()))
	}

	results := make([]*models.MarkdownContent, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(config.LoadConcurrency)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			content, err := loadContentFile(path)
			if err != nil {
				return err
			}
			results[i] = content
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	contents := make([]models.MarkdownContent, 0, len(results))
	for _, c := range results {
		if c != nil {
			contents = append(contents, *c)
		}
	}
	return contents, nil
}

func loadContentFile(path string) (*models.MarkdownContent, error) {
	v, err := Load(path)
	if err != nil {
		return nil, err
	}

	switch c := v.(type) {
	case models.MarkdownContent:
		return &c, nil
	case map[string]any:
		return &models.MarkdownContent{
			Data:    c,
			IsEmpty: len(c) == 0,
			Orig:    map[string]int{"frontmatterStart": 0, "frontmatterEnd": 0, "contentStart": 0},
			Format:  formatOf(path),
			Path:    path,
		}, nil
	default:
		log.Debug("skipping data file without a top-level mapping", "path", path, "type", fmt.Sprintf("%T", v))
		return nil, nil
	}
}

// SaveDataFile writes a content or data file. Markdown targets get data as
// frontmatter followed by body; format picks the frontmatter syntax and
// defaults to YAML. Other targets are encoded from data alone.
func SaveDataFile(fullPath string, data map[string]any, body, format string) error {
	var v any = data
	if formatOf(fullPath) == FormatMarkdown {
		v = models.MarkdownContent{Data: data, Content: body, Format: format}
	}

	out, err := Marshal(filepath.Ext(fullPath), v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", fullPath, err)
	}
	if err := os.WriteFile(fullPath, out, 0644); err != nil {
		return fmt.Errorf("write %s: %w", fullPath, err)
	}
	return nil
}
