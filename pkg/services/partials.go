package services

import (
	"context"
	"fmt"
	"strings"

	"quiqr-cms/pkg/config"
	"quiqr-cms/pkg/models"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// PartialPath derives the location of a partial from the include file that
// references it: the first "includes" becomes "partials", and the first
// "singles" and then the first "collections" become the partial name.
//
//	/site/quiqr/model/includes/singles.yaml + "page" -> /site/quiqr/model/partials/page.yaml
func PartialPath(includePath, partialName string) string {
	p := strings.Replace(includePath, "includes", "partials", 1)
	p = strings.Replace(p, "singles", partialName, 1)
	return strings.Replace(p, "collections", partialName, 1)
}

// DeepMerge returns base with the gaps filled from partial. A key present in
// base keeps its base value, even when that value is null, false or empty.
// Nested mappings are merged recursively; sequences are taken whole.
// Neither argument is modified.
func DeepMerge(base, partial map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(partial))
	for k, v := range partial {
		out[k] = v
	}
	for k, bv := range base {
		bm, baseIsMap := bv.(map[string]any)
		pm, partialIsMap := out[k].(map[string]any)
		if baseIsMap && partialIsMap {
			out[k] = DeepMerge(bm, pm)
			continue
		}
		out[k] = bv
	}
	return out
}

// LoadEntries loads an include file holding a list of singles or
// collections and merges in every referenced partial. Partials that fail to
// load leave their entry unmerged; each failure is logged and returned as a
// warning.
func LoadEntries(ctx context.Context, path string, kind models.ConfigKind) ([]models.Entry, []string, error) {
	raw, err := Load(path)
	if err != nil {
		return nil, nil, err
	}
	entries, err := toEntries(raw, path)
	if err != nil {
		return nil, nil, err
	}

	merged := make([]models.Entry, len(entries))
	failures := make([]error, len(entries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(config.LoadConcurrency)
	for i, entry := range entries {
		if entry.MergePartial() == "" {
			merged[i] = entry
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			merged[i], failures[i] = mergePartial(path, kind, entry)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var warnings []string
	for _, failure := range failures {
		if failure == nil {
			continue
		}
		log.Warn("partial not merged, using base config", "err", failure)
		warnings = append(warnings, failure.Error())
	}
	return merged, warnings, nil
}

func mergePartial(includePath string, kind models.ConfigKind, entry models.Entry) (models.Entry, error) {
	name := entry.MergePartial()
	partialPath := PartialPath(includePath, name)

	fail := func(err error) (models.Entry, error) {
		return entry, &PartialLoadError{Kind: kind, Key: entry.EntryKey(), Partial: name, Path: partialPath, Err: err}
	}

	raw, err := Load(partialPath)
	if err != nil {
		return fail(err)
	}

	var partial map[string]any
	switch v := raw.(type) {
	case nil:
	case map[string]any:
		partial = v
	case []any:
		partial = matchingPartial(v, entry.EntryKey())
	default:
		return fail(fmt.Errorf("expected a mapping or a sequence, got %T", raw))
	}

	log.Debug("merged partial", "kind", kind, "key", entry.EntryKey(), "partial", partialPath)
	return DeepMerge(entry, partial), nil
}

// matchingPartial picks the element of a partial list whose key matches.
func matchingPartial(items []any, key string) map[string]any {
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if k, _ := m["key"].(string); k == key {
			return m
		}
	}
	return nil
}

func toEntries(raw any, path string) ([]models.Entry, error) {
	if raw == nil {
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, &ParseError{Path: path, Format: formatOf(path), Err: fmt.Errorf("expected a sequence of entries, got %T", raw)}
	}
	entries := make([]models.Entry, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, &ParseError{Path: path, Format: formatOf(path), Err: fmt.Errorf("entry %d: expected a mapping, got %T", i, item)}
		}
		entries = append(entries, models.Entry(m))
	}
	return entries, nil
}

// LoadSingles loads singles.yaml with partials merged and decodes it.
func LoadSingles(ctx context.Context, path string) ([]models.SingleConfig, []string, error) {
	entries, warnings, err := LoadEntries(ctx, path, models.KindSingle)
	if err != nil {
		return nil, nil, err
	}
	singles := make([]models.SingleConfig, 0, len(entries))
	for _, e := range entries {
		s, err := models.DecodeSingle(e)
		if err != nil {
			return nil, nil, &ParseError{Path: path, Format: formatOf(path), Err: err}
		}
		warnings = append(warnings, fieldWarnings(path, models.KindSingle, s.Key, s.Fields)...)
		singles = append(singles, s)
	}
	return singles, warnings, nil
}

// LoadCollections loads collections.yaml with partials merged and decodes it.
func LoadCollections(ctx context.Context, path string) ([]models.CollectionConfig, []string, error) {
	entries, warnings, err := LoadEntries(ctx, path, models.KindCollection)
	if err != nil {
		return nil, nil, err
	}
	collections := make([]models.CollectionConfig, 0, len(entries))
	for _, e := range entries {
		c, err := models.DecodeCollection(e)
		if err != nil {
			return nil, nil, &ParseError{Path: path, Format: formatOf(path), Err: err}
		}
		warnings = append(warnings, fieldWarnings(path, models.KindCollection, c.Key, c.Fields)...)
		collections = append(collections, c)
	}
	return collections, warnings, nil
}

// fieldWarnings reports the fields of one entry that were kept undecoded.
func fieldWarnings(path string, kind models.ConfigKind, key string, fields []models.Field) []string {
	problems := models.FieldProblems(fields)
	warnings := make([]string, 0, len(problems))
	for _, problem := range problems {
		log.Warn("field kept undecoded", "path", path, "kind", kind, "key", key, "err", problem)
		warnings = append(warnings, fmt.Sprintf("%s %q: %s", kind, key, problem))
	}
	return warnings
}
