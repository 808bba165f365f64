package services

import (
	"fmt"

	"quiqr-cms/pkg/models"
)

// EnhanceMenu attaches to every menu item the config its key points to.
// Singles are checked before collections, so a key defined as both resolves
// to the single.
func EnhanceMenu(
	menu models.MenuConfig,
	singles models.IndexedSinglesConfig,
	collections models.IndexedCollectionsConfig,
) models.EnhancedMenuConfig {
	enhanced := make(models.EnhancedMenuConfig, 0, len(menu))
	for _, section := range menu {
		items := make([]models.EnhancedMenuItem, 0, len(section.MenuItems))
		for _, item := range section.MenuItems {
			items = append(items, models.EnhancedMenuItem{
				Key:       item.Key,
				Reference: resolveReference(item.Key, singles, collections),
			})
		}
		enhanced = append(enhanced, models.EnhancedMenuSection{
			Title:     section.Title,
			Key:       section.Key,
			MatchRole: section.MatchRole,
			MenuItems: items,
		})
	}
	return enhanced
}

func resolveReference(
	key string,
	singles models.IndexedSinglesConfig,
	collections models.IndexedCollectionsConfig,
) *models.MenuReference {
	if _, ok := singles[key]; ok {
		return &models.MenuReference{Type: models.ReferenceSingle, Key: key}
	}
	if _, ok := collections[key]; ok {
		return &models.MenuReference{Type: models.ReferenceCollection, Key: key}
	}
	return nil
}

// ValidateMenuReferences checks every enhanced menu item against the
// indexes. The returned map is keyed by menu item key, so an item key that
// fails in several sections keeps only the last message.
func ValidateMenuReferences(
	menu models.EnhancedMenuConfig,
	singles models.IndexedSinglesConfig,
	collections models.IndexedCollectionsConfig,
) (bool, map[string]string) {
	errs := make(map[string]string)
	for _, section := range menu {
		for _, item := range section.MenuItems {
			if item.Reference == nil {
				errs[item.Key] = fmt.Sprintf("Menu item %q in section %q does not match any single or collection",
					item.Key, section.Title)
				continue
			}

			ref := item.Reference
			switch ref.Type {
			case models.ReferenceSingle:
				if _, ok := singles[ref.Key]; !ok {
					errs[item.Key] = fmt.Sprintf("Menu item %q in section %q references non-existent single with key %q",
						item.Key, section.Title, ref.Key)
				}
			case models.ReferenceCollection:
				if _, ok := collections[ref.Key]; !ok {
					errs[item.Key] = fmt.Sprintf("Menu item %q in section %q references non-existent collection with key %q",
						item.Key, section.Title, ref.Key)
				}
			}
		}
	}
	return len(errs) == 0, errs
}

// MenuItemTitle returns the title of the single or collection a menu item
// points to. Items without a reference are looked up by key, singles first.
func MenuItemTitle(
	item models.EnhancedMenuItem,
	singles models.IndexedSinglesConfig,
	collections models.IndexedCollectionsConfig,
) (string, bool) {
	if item.Reference != nil {
		switch item.Reference.Type {
		case models.ReferenceSingle:
			return titleOf(singles[item.Reference.Key].Title)
		case models.ReferenceCollection:
			return titleOf(collections[item.Reference.Key].Title)
		}
		return "", false
	}
	if s, ok := singles[item.Key]; ok && s.Title != "" {
		return s.Title, true
	}
	if c, ok := collections[item.Key]; ok && c.Title != "" {
		return c.Title, true
	}
	return "", false
}

func titleOf(title string) (string, bool) {
	return title, title != ""
}
