package models

import "fmt"

// SiteConfig is the per-site config.json.
type SiteConfig struct {
	Key           string         `json:"key" validate:"required"`
	Name          string         `json:"name" validate:"required"`
	Source        SiteSource     `json:"source"`
	Serve         *ServeConfig   `json:"serve,omitempty"`
	Build         *BuildConfig   `json:"build,omitempty"`
	Publish       []PublishEntry `json:"publish,omitempty"`
	Tags          []string       `json:"tags,omitempty"`
	LastPublish   int64          `json:"lastPublish,omitempty"`
	PublishStatus int            `json:"publishStatus,omitempty" validate:"min=0,max=8"`
	LastEdit      int64          `json:"lastEdit,omitempty"`
	Transform     []any          `json:"transform,omitempty"`
}

// SiteSource points at the site's content root, relative to the site directory.
type SiteSource struct {
	Type string `json:"type" validate:"eq=folder"`
	Path string `json:"path"`
}

type ServeConfig struct {
	Key                 string `json:"key"`
	Config              string `json:"config"`
	HugoHidePreviewSite bool   `json:"hugoHidePreviewSite"`
}

type BuildConfig struct {
	Key    string `json:"key"`
	Config string `json:"config"`
}

// PublishEntry is kept opaque: publishing is handled outside this tool.
type PublishEntry struct {
	Key    string         `json:"key"`
	Config map[string]any `json:"config"`
}

// DecodeSiteConfig converts a loaded config.json tree into a SiteConfig.
func DecodeSiteConfig(v any) (SiteConfig, error) {
	var cfg SiteConfig
	m, err := asMapping(v, "site config")
	if err != nil {
		return cfg, err
	}
	if err := decode(m, &cfg); err != nil {
		return cfg, fmt.Errorf("site config: %w", err)
	}
	return cfg, nil
}
