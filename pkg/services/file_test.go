package services

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"quiqr-cms/pkg/models"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		want    any
	}{
		{
			name:    "json",
			file:    "a.json",
			content: `{"title": "Hi", "n": 2, "tags": ["x"]}`,
			want:    map[string]any{"title": "Hi", "n": float64(2), "tags": []any{"x"}},
		},
		{
			name:    "yaml",
			file:    "a.yaml",
			content: "title: Hi\nn: 2\nnested:\n  ok: true\n",
			want:    map[string]any{"title": "Hi", "n": 2, "nested": map[string]any{"ok": true}},
		},
		{
			name:    "yml sequence",
			file:    "a.yml",
			content: "- key: one\n- key: two\n",
			want:    []any{map[string]any{"key": "one"}, map[string]any{"key": "two"}},
		},
		{
			name:    "toml",
			file:    "a.toml",
			content: "title = \"Hi\"\n[params]\nn = 2\n",
			want:    map[string]any{"title": "Hi", "params": map[string]any{"n": int64(2)}},
		},
		{
			name:    "uppercase extension",
			file:    "B.JSON",
			content: `{"a": "b"}`,
			want:    map[string]any{"a": "b"},
		},
		{
			name:    "empty yaml",
			file:    "empty.yaml",
			content: "",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			writeFile(t, path, tt.content)

			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.md")
	writeFile(t, path, "---\ntitle: Page\n---\nBody\n")

	got, err := Load(path)
	require.NoError(t, err)

	md, ok := got.(models.MarkdownContent)
	require.True(t, ok, "got %T", got)
	assert.Equal(t, map[string]any{"title": "Page"}, md.Data)
	assert.Equal(t, "Body\n", md.Content)
	assert.Equal(t, path, md.Path)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(dir, "notes.XYZ")
		writeFile(t, path, "whatever")

		_, err := Load(path)
		var unsupported *UnsupportedFormatError
		require.ErrorAs(t, err, &unsupported)
		assert.Equal(t, ".xyz", unsupported.Ext)
		assert.Equal(t, "unsupported file extension: .xyz", err.Error())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.yaml"))
		var readErr *ReadError
		require.ErrorAs(t, err, &readErr)
		assert.True(t, errors.Is(err, fs.ErrNotExist))
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		writeFile(t, path, "a: [1, 2\n")

		_, err := Load(path)
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, FormatYAML, parseErr.Format)
		assert.Equal(t, path, parseErr.Path)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		writeFile(t, path, "{")

		_, err := Load(path)
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, FormatJSON, parseErr.Format)
	})
}

func TestMarshal(t *testing.T) {
	t.Run("json is indented", func(t *testing.T) {
		out, err := Marshal(".json", map[string]any{"a": 1})
		require.NoError(t, err)
		assert.Equal(t, "{\n  \"a\": 1\n}", string(out))
	})

	t.Run("yaml does not wrap", func(t *testing.T) {
		long := strings.Repeat("x", 200)
		out, err := Marshal(".yaml", map[string]any{"long": long})
		require.NoError(t, err)
		assert.Equal(t, "long: "+long+"\n", string(out))
	})

	t.Run("markdown defaults to yaml frontmatter", func(t *testing.T) {
		out, err := Marshal(".md", models.MarkdownContent{Data: map[string]any{"title": "T"}, Content: "Body"})
		require.NoError(t, err)
		assert.Equal(t, "---\ntitle: T\n---\nBody", string(out))
	})

	t.Run("markdown needs content", func(t *testing.T) {
		_, err := Marshal(".md", map[string]any{})
		assert.Error(t, err)
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := Marshal(".ini", map[string]any{})
		var unsupported *UnsupportedFormatError
		assert.ErrorAs(t, err, &unsupported)
	})
}

func TestMarshalRoundTrip(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name:    "json",
			file:    "data.json",
			content: `{"title": "Hi", "weight": 3, "ratio": 0.25, "draft": false, "tags": ["a", "b"], "params": {"n": 1}}`,
		},
		{
			name:    "yaml",
			file:    "data.yaml",
			content: "title: Hi\nweight: 3\nratio: 0.25\ndraft: false\ntags:\n  - a\n  - b\nparams:\n  n: 1\n",
		},
		{
			name:    "yaml sequence",
			file:    "singles.yml",
			content: "- key: about\n  fields:\n    - key: title\n      type: string\n",
		},
		{
			name:    "toml",
			file:    "data.toml",
			content: "title = \"Hi\"\nweight = 3\nratio = 0.25\ndraft = false\ntags = [\"a\", \"b\"]\n[params]\nn = 1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			writeFile(t, path, tt.content)

			first, err := Load(path)
			require.NoError(t, err)

			out, err := Marshal(filepath.Ext(path), first)
			require.NoError(t, err)
			writeFile(t, path, string(out))

			second, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}

	t.Run("json numbers written as toml", func(t *testing.T) {
		var data any
		require.NoError(t, json.Unmarshal([]byte(`{"weight": 1, "ratio": 0.5}`), &data))

		out, err := Marshal(".toml", data)
		require.NoError(t, err)
		assert.Contains(t, string(out), "weight = 1\n")
		assert.Contains(t, string(out), "ratio = 0.5\n")
	})
}

func TestSafeJoin(t *testing.T) {
	assert.Equal(t, filepath.Join("/root", "content", "posts/a.md"), SafeJoin("/root", "content", "posts/a.md"))
	assert.Equal(t, "/root", SafeJoin("/root", "", ""))
	assert.Empty(t, SafeJoin("/root", "", "../etc/passwd"))
	assert.Empty(t, SafeJoin("/root", "", "posts/../../x"))
	assert.Empty(t, SafeJoin("/root", "", ".."))

	t.Run("dots inside a name are allowed", func(t *testing.T) {
		assert.Equal(t, filepath.Join("/root", "posts", "notes..md"), SafeJoin("/root", "", "posts/notes..md"))
		assert.Equal(t, filepath.Join("/root", "data", "v1..2.yaml"), SafeJoin("/root", "data", "v1..2.yaml"))
		assert.Equal(t, filepath.Join("/root", "..hidden"), SafeJoin("/root", "", "..hidden"))
	})

	t.Run("climbing back inside the root is kept", func(t *testing.T) {
		assert.Equal(t, filepath.Join("/root", "b.md"), SafeJoin("/root", "", "a/../b.md"))
	})
}
