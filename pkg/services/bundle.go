package services

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"quiqr-cms/pkg/models"
)

// ListBundleFiles lists the files stored in a page bundle directory. When
// extensions is not empty only files with one of those extensions are
// returned; the comparison ignores case and a leading dot. A bundle
// directory that does not exist yet has no files.
func ListBundleFiles(dir string, extensions []string) ([]models.BundleFile, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.BundleFile{}, nil
	}
	if err != nil {
		return nil, &DirectoryReadError{Path: dir, Err: err}
	}

	allowed := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(strings.TrimPrefix(ext, "."))] = true
	}

	files := []models.BundleFile{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(entry.Name()), "."))
		if len(allowed) > 0 && !allowed[ext] {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, models.BundleFile{
			Name: entry.Name(),
			Path: filepath.Join(dir, entry.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}
