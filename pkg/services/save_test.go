package services

import (
	"os"
	"path/filepath"
	"testing"

	"quiqr-cms/pkg/models"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("yaml", func(t *testing.T) {
		path := filepath.Join(dir, "menu.yaml")
		result := SaveConfig(path, models.ConfigTypeMenu, map[string]any{"a": 1})
		assert.Equal(t, models.SaveResult{Success: true}, result)

		out, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "a: 1\n", string(out))
	})

	t.Run("json", func(t *testing.T) {
		path := filepath.Join(dir, "config.json")
		result := SaveConfig(path, "", map[string]any{"key": "site"})
		assert.True(t, result.Success)

		out, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "{\n  \"key\": \"site\"\n}", string(out))
	})

	t.Run("round trip through Load", func(t *testing.T) {
		path := filepath.Join(dir, "singles.yml")
		data := []any{map[string]any{"key": "about", "title": "About"}}
		require.True(t, SaveConfig(path, models.ConfigTypeSingles, data).Success)

		got, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, data, got)
	})

	t.Run("whole numbers from a JSON request stay integers", func(t *testing.T) {
		var data any
		require.NoError(t, json.Unmarshal([]byte(`{"weight":1,"ratio":0.5,"items":[{"order":2}]}`), &data))

		path := filepath.Join(dir, "numbers.yaml")
		require.True(t, SaveConfig(path, models.ConfigTypeMenu, data).Success)

		out, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(out), "weight: 1\n")
		assert.Contains(t, string(out), "order: 2\n")
		assert.Contains(t, string(out), "ratio: 0.5\n")
		assert.NotContains(t, string(out), "1.0")

		got, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"weight": 1,
			"ratio":  0.5,
			"items":  []any{map[string]any{"order": 2}},
		}, got)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(dir, "menu.xyz")
		result := SaveConfig(path, models.ConfigTypeMenu, map[string]any{"a": 1})
		assert.Equal(t, models.SaveResult{Success: false, Errors: []string{"Unsupported file extension: .xyz"}}, result)

		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err), "nothing is written")
	})

	t.Run("unsupported config type", func(t *testing.T) {
		result := SaveConfig(filepath.Join(dir, "x.yaml"), "widgets", nil)
		assert.Equal(t, []string{"Unsupported config type: widgets"}, result.Errors)
		assert.False(t, result.Success)
	})

	t.Run("write failure", func(t *testing.T) {
		result := SaveConfig(filepath.Join(dir, "missing-dir", "menu.yaml"), models.ConfigTypeMenu, []any{})
		assert.False(t, result.Success)
		require.Len(t, result.Errors, 1)
	})
}
