package services

import "quiqr-cms/pkg/models"

// Index maps every entry's key to the entry with its key removed. Keys are
// expected to be unique; when they are not, the last entry wins.
func Index[T models.Keyed[T]](entries []T) map[string]T {
	indexed := make(map[string]T, len(entries))
	for _, e := range entries {
		indexed[e.EntryKey()] = e.WithoutKey()
	}
	return indexed
}

// IndexMenu indexes the menu sections that have a key.
func IndexMenu(menu models.MenuConfig) models.IndexedMenuConfig {
	indexed := make(models.IndexedMenuConfig, len(menu))
	for _, section := range menu {
		if section.Key == "" {
			continue
		}
		indexed[section.Key] = section
	}
	return indexed
}
