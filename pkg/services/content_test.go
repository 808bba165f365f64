package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"quiqr-cms/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDataDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.md"), "---\ntitle: B\n---\nBee\n")
	writeFile(t, filepath.Join(dir, "a.json"), `{"title": "A"}`)
	writeFile(t, filepath.Join(dir, "c.toml"), "title = \"C\"\n")
	writeFile(t, filepath.Join(dir, "list.yaml"), "- one\n- two\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")
	writeFile(t, filepath.Join(dir, "sub", "d.md"), "nested files are not loaded")

	contents, err := LoadDataDirectory(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, contents, 3)

	assert.Equal(t, map[string]any{"title": "A"}, contents[0].Data)
	assert.Equal(t, FormatJSON, contents[0].Format)
	assert.Empty(t, contents[0].Content)

	assert.Equal(t, "Bee\n", contents[1].Content)
	assert.Equal(t, filepath.Join(dir, "b.md"), contents[1].Path)

	assert.Equal(t, map[string]any{"title": "C"}, contents[2].Data)
}

func TestLoadDataDirectoryErrors(t *testing.T) {
	_, err := LoadDataDirectory(context.Background(), filepath.Join(t.TempDir(), "missing"))
	var dirErr *DirectoryReadError
	assert.ErrorAs(t, err, &dirErr)

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "broken.yaml"), "a: [\n")
	_, err = LoadDataDirectory(context.Background(), dir)
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestLoadDataFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "page.md"), "+++\ntitle = \"T\"\n+++\nText")

	v, err := LoadDataFile(filepath.Join(dir, "page.md"))
	require.NoError(t, err)
	md := v.(models.MarkdownContent)
	assert.Equal(t, FormatTOML, md.Format)
	assert.Equal(t, "Text", md.Content)
}

func TestSaveDataFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("markdown", func(t *testing.T) {
		path := filepath.Join(dir, "post.md")
		require.NoError(t, SaveDataFile(path, map[string]any{"title": "Post"}, "Hello\n", ""))

		out, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "---\ntitle: Post\n---\nHello\n", string(out))

		v, err := LoadDataFile(path)
		require.NoError(t, err)
		md := v.(models.MarkdownContent)
		assert.Equal(t, map[string]any{"title": "Post"}, md.Data)
		assert.Equal(t, "Hello\n", md.Content)
	})

	t.Run("toml frontmatter", func(t *testing.T) {
		path := filepath.Join(dir, "toml.md")
		require.NoError(t, SaveDataFile(path, map[string]any{"title": "T"}, "Body", FormatTOML))

		v, err := LoadDataFile(path)
		require.NoError(t, err)
		assert.Equal(t, FormatTOML, v.(models.MarkdownContent).Format)
	})

	t.Run("data file ignores body", func(t *testing.T) {
		path := filepath.Join(dir, "data.json")
		require.NoError(t, SaveDataFile(path, map[string]any{"n": 1}, "ignored", ""))

		v, err := LoadDataFile(path)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"n": float64(1)}, v)
	})

	t.Run("unsupported", func(t *testing.T) {
		err := SaveDataFile(filepath.Join(dir, "x.ini"), nil, "", "")
		var unsupported *UnsupportedFormatError
		assert.ErrorAs(t, err, &unsupported)
	})
}
