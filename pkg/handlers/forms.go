package handlers

import (
	"net/http"

	"quiqr-cms/pkg/config"
	"quiqr-cms/pkg/models"
	"quiqr-cms/pkg/registry"
	"quiqr-cms/pkg/services"

	"github.com/gin-gonic/gin"
)

// Widget tells the editor which component renders a field.
type Widget struct {
	Key       string       `json:"key"`
	Type      string       `json:"type"`
	Component string       `json:"component"`
	Title     string       `json:"title,omitempty"`
	Field     models.Field `json:"field"`
	Children  []Widget     `json:"children,omitempty"`
}

// WidgetFactory builds the widget of a single field. Children are filled in
// by BuildWidgets.
type WidgetFactory func(f models.Field) Widget

// Component returns a factory rendering fields with the named component.
func Component(name string) WidgetFactory {
	return func(f models.Field) Widget {
		base := f.FieldBase()
		return Widget{
			Key:       base.Key,
			Type:      string(base.Type),
			Component: name,
			Title:     base.Title,
			Field:     f,
		}
	}
}

// NotFoundComponent renders fields whose type has no widget.
const NotFoundComponent = "NotFoundField"

// DefaultWidgets returns a registry with the built-in editor components.
func DefaultWidgets() *registry.Registry[WidgetFactory] {
	return registry.New(Component(NotFoundComponent)).
		Register(string(models.FieldTypeMarkdown), Component("MarkdownField")).
		Register(string(models.FieldTypeString), Component("StringField")).
		Register("boolean", Component("SwitchField")).
		Register(string(models.FieldTypeHidden), Component("HiddenField")).
		Register(string(models.FieldTypeDate), Component("DateField")).
		Register(string(models.FieldTypeSelect), Component("SelectField")).
		Register(string(models.FieldTypeChips), Component("ChipsField")).
		Register(string(models.FieldTypeImageSelect), Component("ImageSelectField")).
		Register(string(models.FieldTypeBundleManager), Component("BundleManagerField")).
		Register(string(models.FieldTypeAccordion), Component("AccordionField")).
		Register(string(models.FieldTypeBundleImageThumbnail), Component("BundleImageThumbnailField"))
}

// BuildWidgets resolves the widget of every field in the tree.
func BuildWidgets(widgets *registry.Registry[WidgetFactory], fields []models.Field) []Widget {
	out := make([]Widget, 0, len(fields))
	for _, f := range fields {
		w := widgets.Resolve(string(f.FieldBase().Type))(f)
		if children := f.Children(); len(children) > 0 {
			w.Children = BuildWidgets(widgets, children)
		}
		out = append(out, w)
	}
	return out
}

// GetForm returns the widget tree of the single or collection named by
// :key. Singles take precedence when a key names both.
func GetForm(widgets *registry.Registry[WidgetFactory]) gin.HandlerFunc {
	return func(c *gin.Context) {
		project, ok := projectFrom(c, c.Param("project"))
		if !ok {
			return
		}
		resolved, err := services.ResolveProject(c.Request.Context(), config.SitesRoot, project)
		if err != nil {
			respondError(c, err)
			return
		}

		key := c.Param("key")
		var (
			kind   models.ConfigKind
			title  string
			fields []models.Field
		)
		if s, ok := resolved.IndexedSingles[key]; ok {
			kind, title, fields = models.KindSingle, s.Title, s.Fields
		} else if col, ok := resolved.IndexedCollections[key]; ok {
			kind, title, fields = models.KindCollection, col.Title, col.Fields
		} else {
			c.JSON(http.StatusNotFound, gin.H{"error": "No single or collection with key " + key})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"key":     key,
			"kind":    kind,
			"title":   title,
			"widgets": BuildWidgets(widgets, fields),
		})
	}
}
