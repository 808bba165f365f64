package models

// ValidatedProject is the resolved and cross-checked model of one site.
type ValidatedProject struct {
	ProjectName        string                   `json:"projectName"`
	SiteConfig         SiteConfig               `json:"siteConfig"`
	MenuConfig         MenuConfig               `json:"menuConfig"`
	EnhancedMenuConfig EnhancedMenuConfig       `json:"enhancedMenuConfig"`
	SinglesConfig      []SingleConfig           `json:"singlesConfig"`
	CollectionsConfig  []CollectionConfig       `json:"collectionsConfig"`
	IndexedSingles     IndexedSinglesConfig     `json:"indexedSingles"`
	IndexedCollections IndexedCollectionsConfig `json:"indexedCollections"`
	IsValid            bool                     `json:"isValid"`
	// Errors maps a menu item key to the reason it failed to resolve.
	Errors   map[string]string `json:"errors"`
	Warnings []string          `json:"warnings,omitempty"`
}

// ProjectSummary is one site found under the sites root.
type ProjectSummary struct {
	DirName string     `json:"dirName"`
	Config  SiteConfig `json:"config"`
	IsValid bool       `json:"isValid"`
}

type SaveResult struct {
	Success bool     `json:"success"`
	Errors  []string `json:"errors,omitempty"`
}

type ValidationReport struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}
