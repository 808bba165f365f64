package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

const (
	fixtureMenu = `- title: Main
  key: main
  menuItems:
    - key: about
    - key: posts
- title: Extra
  menuItems:
    - key: missing
`
	fixtureSingles = `- key: about
  title: About
  file: content/about.md
  _mergePartial: page
`
	fixturePagePartial = `title: Page
hidePreviewIcon: true
fields:
  - key: title
    type: string
  - key: body
    type: markdown
`
	fixtureCollections = `- key: posts
  title: Posts
  folder: content/posts/
  extension: md
  dataformat: yaml
  itemtitle: Post
  previewUrlBase: /posts
  fields:
    - key: title
      type: string
    - key: gallery
      type: accordion
      fields:
        - key: image
          type: image-select
          path: static/img
    - key: rating
      type: stars
      max: 5
`
)

// newSite writes a complete site named name under root and returns the
// content root.
func newSite(t *testing.T, root, name string) string {
	t.Helper()
	writeFile(t, filepath.Join(root, name, SiteConfigFile),
		`{"key": "`+name+`", "name": "Site `+name+`", "source": {"type": "folder", "path": "main"}}`)

	content := filepath.Join(root, name, "main")
	model := filepath.Join(content, "quiqr", "model")
	writeFile(t, filepath.Join(model, "includes", MenuFile), fixtureMenu)
	writeFile(t, filepath.Join(model, "includes", SinglesFile), fixtureSingles)
	writeFile(t, filepath.Join(model, "includes", CollectionsFile), fixtureCollections)
	writeFile(t, filepath.Join(model, "partials", "page.yaml"), fixturePagePartial)

	writeFile(t, filepath.Join(content, "content", "about.md"), "---\ntitle: About us\n---\nHello\n")
	writeFile(t, filepath.Join(content, "content", "posts", "first.md"), "---\ntitle: First\n---\nFirst post\n")
	return content
}
