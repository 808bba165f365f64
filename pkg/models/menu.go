package models

import "fmt"

type MenuItem struct {
	Key string `json:"key" validate:"required"`
}

type MenuSection struct {
	Title     string     `json:"title" validate:"required"`
	Key       string     `json:"key,omitempty"`
	MatchRole string     `json:"matchRole,omitempty"`
	MenuItems []MenuItem `json:"menuItems" validate:"dive"`
}

// MenuConfig is the ordered list of menu sections from menu.yaml.
type MenuConfig []MenuSection

// ReferenceType is the kind of config a menu item resolved to.
type ReferenceType string

const (
	ReferenceSingle     ReferenceType = "single"
	ReferenceCollection ReferenceType = "collection"
)

type MenuReference struct {
	Type ReferenceType `json:"type"`
	Key  string        `json:"key"`
}

// EnhancedMenuItem is a menu item with the config it points to. A nil
// Reference means the key matched neither a single nor a collection.
type EnhancedMenuItem struct {
	Key       string         `json:"key"`
	Reference *MenuReference `json:"reference,omitempty"`
}

type EnhancedMenuSection struct {
	Title     string             `json:"title"`
	Key       string             `json:"key,omitempty"`
	MatchRole string             `json:"matchRole,omitempty"`
	MenuItems []EnhancedMenuItem `json:"menuItems"`
}

type EnhancedMenuConfig []EnhancedMenuSection

// IndexedMenuConfig maps section keys to sections. Sections without a key
// are not indexed.
type IndexedMenuConfig map[string]MenuSection

// DecodeMenuConfig converts a loaded menu.yaml tree into a MenuConfig.
func DecodeMenuConfig(v any) (MenuConfig, error) {
	if v == nil {
		return MenuConfig{}, nil
	}
	if _, ok := v.([]any); !ok {
		return nil, fmt.Errorf("menu config: expected a sequence, got %T", v)
	}
	var menu MenuConfig
	if err := decode(v, &menu); err != nil {
		return nil, fmt.Errorf("menu config: %w", err)
	}
	return menu, nil
}
