package services

import (
	"io/fs"
	"os"
	"path/filepath"

	"quiqr-cms/pkg/models"

	"github.com/charmbracelet/log"
)

// ListDirectory lists the entries of path sorted by name. With recursive set,
// every directory entry carries its own listing in Children. Symlinks to
// directories are followed; a directory that is already being listed higher
// up the same branch is returned without children.
func ListDirectory(path string, recursive bool) ([]models.DirectoryEntry, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &DirectoryReadError{Path: path, Err: err}
	}

	visited := make(map[string]bool)
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		visited[real] = true
	}
	return listDirectory(abs, recursive, visited)
}

func listDirectory(dir string, recursive bool, visited map[string]bool) ([]models.DirectoryEntry, error) {
	items, err := os.ReadDir(dir)
	if err != nil {
		return nil, &DirectoryReadError{Path: dir, Err: err}
	}

	entries := make([]models.DirectoryEntry, 0, len(items))
	for _, item := range items {
		full := filepath.Join(dir, item.Name())
		entry := models.DirectoryEntry{
			Name:        item.Name(),
			Path:        full,
			IsDirectory: isDirectory(full, item),
		}

		if entry.IsDirectory && recursive {
			real, err := filepath.EvalSymlinks(full)
			if err != nil {
				return nil, &DirectoryReadError{Path: full, Err: err}
			}
			if visited[real] {
				log.Debug("directory cycle, not descending", "path", full, "target", real)
			} else {
				visited[real] = true
				children, err := listDirectory(full, recursive, visited)
				delete(visited, real)
				if err != nil {
					return nil, err
				}
				entry.Children = children
			}
		}

		entries = append(entries, entry)
	}
	return entries, nil
}

func isDirectory(full string, item fs.DirEntry) bool {
	if item.Type()&fs.ModeSymlink == 0 {
		return item.IsDir()
	}
	info, err := os.Stat(full)
	return err == nil && info.IsDir()
}
