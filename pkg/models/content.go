package models

// MarkdownContent is a content file split into frontmatter and body.
type MarkdownContent struct {
	Content string         `json:"content"`
	Data    map[string]any `json:"data"`
	Excerpt string         `json:"excerpt"`
	IsEmpty bool           `json:"isEmpty"`
	// Orig holds byte offsets into the original file: frontmatterStart,
	// frontmatterEnd and contentStart.
	Orig   map[string]int `json:"orig"`
	Format string         `json:"format,omitempty"` // yaml, toml, json
	Path   string         `json:"path,omitempty"`
}

// DirectoryEntry is one node of a directory listing.
type DirectoryEntry struct {
	Name        string           `json:"name"`
	Path        string           `json:"path"`
	IsDirectory bool             `json:"isDirectory"`
	Children    []DirectoryEntry `json:"children"`
}

// BundleFile is a file stored next to a page in a page bundle.
type BundleFile struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Size int64  `json:"size"`
}
