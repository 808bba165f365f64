package services

import (
	"context"
	"os"
	"path/filepath"

	"quiqr-cms/pkg/config"
	"quiqr-cms/pkg/models"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Locations inside a site.
const (
	SiteConfigFile  = "config.json"
	ModelIncludeDir = "quiqr/model/includes"
	MenuFile        = "menu.yaml"
	SinglesFile     = "singles.yaml"
	CollectionsFile = "collections.yaml"
)

// LoadSiteConfig reads <root>/<project>/config.json.
func LoadSiteConfig(rootPath, projectName string) (models.SiteConfig, error) {
	path := filepath.Join(rootPath, projectName, SiteConfigFile)
	raw, err := Load(path)
	if err != nil {
		return models.SiteConfig{}, err
	}
	site, err := models.DecodeSiteConfig(raw)
	if err != nil {
		return site, &ParseError{Path: path, Format: FormatJSON, Err: err}
	}
	return site, nil
}

// ContentRoot returns the directory the site's config.json points at.
func ContentRoot(rootPath, projectName string) (string, error) {
	site, err := LoadSiteConfig(rootPath, projectName)
	if err != nil {
		return "", &ProjectError{Project: projectName, Op: "load site config", Err: err}
	}
	return filepath.Join(rootPath, projectName, site.Source.Path), nil
}

// ResolveProject loads, merges, indexes and cross-checks the model of one
// site. Any load failure aborts the whole resolution; unresolved menu items
// are reported in the result, not as an error.
func ResolveProject(ctx context.Context, rootPath, projectName string) (*models.ValidatedProject, error) {
	site, err := LoadSiteConfig(rootPath, projectName)
	if err != nil {
		return nil, &ProjectError{Project: projectName, Op: "load site config", Err: err}
	}

	includeDir := filepath.Join(rootPath, projectName, site.Source.Path, ModelIncludeDir)

	rawMenu, err := Load(filepath.Join(includeDir, MenuFile))
	if err != nil {
		return nil, &ProjectError{Project: projectName, Op: "load menu", Err: err}
	}
	menu, err := models.DecodeMenuConfig(rawMenu)
	if err != nil {
		return nil, &ProjectError{Project: projectName, Op: "load menu", Err: err}
	}

	singles, singleWarnings, err := LoadSingles(ctx, filepath.Join(includeDir, SinglesFile))
	if err != nil {
		return nil, &ProjectError{Project: projectName, Op: "load singles", Err: err}
	}

	collections, collectionWarnings, err := LoadCollections(ctx, filepath.Join(includeDir, CollectionsFile))
	if err != nil {
		return nil, &ProjectError{Project: projectName, Op: "load collections", Err: err}
	}

	indexedSingles := Index(singles)
	indexedCollections := Index(collections)

	enhanced := EnhanceMenu(menu, indexedSingles, indexedCollections)
	valid, errs := ValidateMenuReferences(enhanced, indexedSingles, indexedCollections)
	if !valid {
		log.Info("menu has unresolved items", "project", projectName, "count", len(errs))
	}

	return &models.ValidatedProject{
		ProjectName:        projectName,
		SiteConfig:         site,
		MenuConfig:         menu,
		EnhancedMenuConfig: enhanced,
		SinglesConfig:      singles,
		CollectionsConfig:  collections,
		IndexedSingles:     indexedSingles,
		IndexedCollections: indexedCollections,
		IsValid:            valid,
		Errors:             errs,
		Warnings:           append(singleWarnings, collectionWarnings...),
	}, nil
}

// ListProjects reads the config.json of every directory directly under
// rootPath. A project is valid when its config key equals its directory
// name. Directories whose config cannot be loaded are left out, and an
// unreadable rootPath gives an empty list.
func ListProjects(ctx context.Context, rootPath string) ([]models.ProjectSummary, error) {
	if rootPath == "" {
		return []models.ProjectSummary{}, nil
	}

	items, err := os.ReadDir(rootPath)
	if err != nil {
		log.Error("cannot read projects directory", "err", &DirectoryReadError{Path: rootPath, Err: err})
		return []models.ProjectSummary{}, nil
	}

	var dirNames []string
	for _, item := range items {
		if item.IsDir() {
			dirNames = append(dirNames, item.Name())
		}
	}

	results := make([]*models.ProjectSummary, len(dirNames))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(config.LoadConcurrency)
	for i, dirName := range dirNames {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			site, err := LoadSiteConfig(rootPath, dirName)
			if err != nil {
				log.Debug("skipping directory without a usable config", "dir", dirName, "err", err)
				return nil
			}
			if site.Key != dirName {
				log.Warn("directory name does not match config key", "dir", dirName, "key", site.Key)
			}
			results[i] = &models.ProjectSummary{
				DirName: dirName,
				Config:  site,
				IsValid: site.Key == dirName,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	projects := make([]models.ProjectSummary, 0, len(results))
	for _, p := range results {
		if p != nil {
			projects = append(projects, *p)
		}
	}
	return projects, nil
}
