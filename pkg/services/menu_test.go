package services

import (
	"testing"

	"quiqr-cms/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func menuFixture() (models.MenuConfig, models.IndexedSinglesConfig, models.IndexedCollectionsConfig) {
	menu := models.MenuConfig{
		{Title: "Main", Key: "main", MenuItems: []models.MenuItem{{Key: "about"}, {Key: "posts"}, {Key: "both"}}},
		{Title: "Extra", MenuItems: []models.MenuItem{{Key: "missing"}}},
	}
	singles := models.IndexedSinglesConfig{
		"about": {BaseConfig: models.BaseConfig{Title: "About us"}},
		"both":  {BaseConfig: models.BaseConfig{Title: "Single both"}},
	}
	collections := models.IndexedCollectionsConfig{
		"posts": {BaseConfig: models.BaseConfig{Title: "Posts"}},
		"both":  {BaseConfig: models.BaseConfig{Title: "Collection both"}},
	}
	return menu, singles, collections
}

func TestEnhanceMenu(t *testing.T) {
	menu, singles, collections := menuFixture()

	enhanced := EnhanceMenu(menu, singles, collections)
	require.Len(t, enhanced, 2)

	main := enhanced[0]
	assert.Equal(t, "Main", main.Title)
	assert.Equal(t, "main", main.Key)
	require.Len(t, main.MenuItems, 3)
	assert.Equal(t, &models.MenuReference{Type: models.ReferenceSingle, Key: "about"}, main.MenuItems[0].Reference)
	assert.Equal(t, &models.MenuReference{Type: models.ReferenceCollection, Key: "posts"}, main.MenuItems[1].Reference)
	assert.Equal(t, models.ReferenceSingle, main.MenuItems[2].Reference.Type, "singles win ties")

	assert.Nil(t, enhanced[1].MenuItems[0].Reference)
}

func TestValidateMenuReferences(t *testing.T) {
	menu, singles, collections := menuFixture()
	enhanced := EnhanceMenu(menu, singles, collections)

	valid, errs := ValidateMenuReferences(enhanced, singles, collections)
	assert.False(t, valid)
	assert.Equal(t, map[string]string{
		"missing": `Menu item "missing" in section "Extra" does not match any single or collection`,
	}, errs)
}

func TestValidateMenuReferencesStaleReference(t *testing.T) {
	menu, singles, collections := menuFixture()
	enhanced := EnhanceMenu(menu[:1], singles, collections)

	delete(singles, "about")
	delete(collections, "posts")

	valid, errs := ValidateMenuReferences(enhanced, singles, collections)
	assert.False(t, valid)
	assert.Equal(t, `Menu item "about" in section "Main" references non-existent single with key "about"`, errs["about"])
	assert.Equal(t, `Menu item "posts" in section "Main" references non-existent collection with key "posts"`, errs["posts"])
}

func TestValidateMenuReferencesValid(t *testing.T) {
	menu, singles, collections := menuFixture()
	enhanced := EnhanceMenu(menu[:1], singles, collections)

	valid, errs := ValidateMenuReferences(enhanced, singles, collections)
	assert.True(t, valid)
	assert.Empty(t, errs)
}

func TestValidateMenuReferencesSameKeyKeepsLast(t *testing.T) {
	menu := models.MenuConfig{
		{Title: "One", MenuItems: []models.MenuItem{{Key: "ghost"}}},
		{Title: "Two", MenuItems: []models.MenuItem{{Key: "ghost"}}},
	}
	enhanced := EnhanceMenu(menu, nil, nil)

	_, errs := ValidateMenuReferences(enhanced, nil, nil)
	assert.Len(t, errs, 1)
	assert.Contains(t, errs["ghost"], `section "Two"`)
}

func TestMenuItemTitle(t *testing.T) {
	menu, singles, collections := menuFixture()
	enhanced := EnhanceMenu(menu, singles, collections)
	items := enhanced[0].MenuItems

	title, ok := MenuItemTitle(items[0], singles, collections)
	assert.True(t, ok)
	assert.Equal(t, "About us", title)

	title, ok = MenuItemTitle(items[1], singles, collections)
	assert.True(t, ok)
	assert.Equal(t, "Posts", title)

	title, ok = MenuItemTitle(models.EnhancedMenuItem{Key: "posts"}, singles, collections)
	assert.True(t, ok, "unreferenced items are looked up by key")
	assert.Equal(t, "Posts", title)

	_, ok = MenuItemTitle(models.EnhancedMenuItem{Key: "missing"}, singles, collections)
	assert.False(t, ok)
}
