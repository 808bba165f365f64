package models

import (
	"fmt"
	"strings"
)

// ConfigKind tells which include file an entry was read from.
type ConfigKind string

const (
	KindSingle     ConfigKind = "single"
	KindCollection ConfigKind = "collection"
)

// ConfigType names one of the model include files.
type ConfigType string

const (
	ConfigTypeSingles     ConfigType = "singles"
	ConfigTypeCollections ConfigType = "collections"
	ConfigTypeMenu        ConfigType = "menu"
	ConfigTypeSite        ConfigType = "site"
)

// Valid reports whether t is one of the known config types.
func (t ConfigType) Valid() bool {
	switch t {
	case ConfigTypeSingles, ConfigTypeCollections, ConfigTypeMenu, ConfigTypeSite:
		return true
	}
	return false
}

// Keyed is implemented by everything the indexer accepts.
type Keyed[T any] interface {
	EntryKey() string
	WithoutKey() T
}

// Entry is a single or collection definition before it is decoded, as read
// from an include file.
type Entry map[string]any

func (e Entry) EntryKey() string {
	k, _ := e["key"].(string)
	return k
}

func (e Entry) WithoutKey() Entry {
	return withoutKeys(e, "key")
}

// MergePartial returns the _mergePartial name, or "" when there is none.
func (e Entry) MergePartial() string {
	p, _ := e["_mergePartial"].(string)
	return p
}

// BaseConfig is the shape singles and collections share. Extra keeps the
// attributes of the entry that have no field here; they are encoded back
// next to the modeled ones.
type BaseConfig struct {
	Key    string         `json:"key,omitempty" validate:"required"`
	Title  string         `json:"title,omitempty"`
	Fields []Field        `json:"fields,omitempty"`
	Extra  map[string]any `json:"-"`
}

// SingleConfig describes exactly one editable content file.
type SingleConfig struct {
	BaseConfig
	File                 string `json:"file,omitempty"`
	PreviewURL           string `json:"previewUrl,omitempty"`
	MergePartial         string `json:"_mergePartial,omitempty"`
	HidePreviewIcon      bool   `json:"hidePreviewIcon,omitempty"`
	HideExternalEditIcon bool   `json:"hideExternalEditIcon,omitempty"`
	HideSaveButton       bool   `json:"hideSaveButton,omitempty"`
}

func (c SingleConfig) Kind() ConfigKind  { return KindSingle }
func (c SingleConfig) EntryKey() string  { return c.Key }
func (c SingleConfig) WithoutKey() SingleConfig {
	c.Key = ""
	return c
}

func (c SingleConfig) MarshalJSON() ([]byte, error) {
	type plain SingleConfig
	return marshalWithExtra(plain(c), c.Extra)
}

// CollectionConfig describes a directory of same-shaped content items.
type CollectionConfig struct {
	BaseConfig
	Folder          string `json:"folder" validate:"required"`
	Extension       string `json:"extension" validate:"required"`
	Dataformat      string `json:"dataformat" validate:"required"`
	Itemtitle       string `json:"itemtitle" validate:"required"`
	HideIndex       bool   `json:"hideIndex,omitempty"`
	PreviewURLBase  string `json:"previewUrlBase,omitempty"`
	MergePartial    string `json:"_mergePartial,omitempty"`
	Sortkey         string `json:"sortkey,omitempty"`
	HidePreviewIcon bool   `json:"hidePreviewIcon,omitempty"`
}

func (c CollectionConfig) Kind() ConfigKind { return KindCollection }
func (c CollectionConfig) EntryKey() string { return c.Key }
func (c CollectionConfig) WithoutKey() CollectionConfig {
	c.Key = ""
	return c
}

func (c CollectionConfig) MarshalJSON() ([]byte, error) {
	type plain CollectionConfig
	return marshalWithExtra(plain(c), c.Extra)
}

// IsContentCollection reports whether the collection holds previewable pages.
func (c CollectionConfig) IsContentCollection() bool {
	return c.PreviewURLBase != ""
}

// IsDataCollection reports whether the collection holds data files.
func (c CollectionConfig) IsDataCollection() bool {
	return c.PreviewURLBase == "" && strings.HasPrefix(c.Folder, "data/")
}

type (
	IndexedSinglesConfig     = map[string]SingleConfig
	IndexedCollectionsConfig = map[string]CollectionConfig
)

// DecodeSingle converts a merged entry into a SingleConfig.
func DecodeSingle(e Entry) (SingleConfig, error) {
	var c SingleConfig
	if err := decodeConfig(e, &c, &c.BaseConfig); err != nil {
		return c, fmt.Errorf("single %q: %w", e.EntryKey(), err)
	}
	return c, nil
}

// DecodeCollection converts a merged entry into a CollectionConfig.
func DecodeCollection(e Entry) (CollectionConfig, error) {
	var c CollectionConfig
	if err := decodeConfig(e, &c, &c.BaseConfig); err != nil {
		return c, fmt.Errorf("collection %q: %w", e.EntryKey(), err)
	}
	return c, nil
}

func decodeConfig(e Entry, out any, base *BaseConfig) error {
	extra, err := decodeExtra(withoutKeys(e, "fields"), out)
	if err != nil {
		return err
	}
	parsed, err := ParseFields(e["fields"])
	if err != nil {
		return err
	}
	base.Fields = parsed
	base.Extra = extra
	return nil
}
