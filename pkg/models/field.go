package models

import (
	"fmt"

	"github.com/goccy/go-json"
)

// FieldType is the "type" tag of a field definition.
type FieldType string

const (
	FieldTypeString               FieldType = "string"
	FieldTypeMarkdown             FieldType = "markdown"
	FieldTypeHidden               FieldType = "hidden"
	FieldTypeDate                 FieldType = "date"
	FieldTypeSelect               FieldType = "select"
	FieldTypeChips                FieldType = "chips"
	FieldTypeImageSelect          FieldType = "image-select"
	FieldTypeBundleManager        FieldType = "bundle-manager"
	FieldTypeAccordion            FieldType = "accordion"
	FieldTypeBundleImageThumbnail FieldType = "bundle-image-thumbnail"
)

// ReservedFieldTypes lists the built-in field types. A field whose type is
// not in this list decodes to an UnknownField.
func ReservedFieldTypes() []FieldType {
	return []FieldType{
		FieldTypeString,
		FieldTypeMarkdown,
		FieldTypeHidden,
		FieldTypeDate,
		FieldTypeSelect,
		FieldTypeChips,
		FieldTypeImageSelect,
		FieldTypeBundleManager,
		FieldTypeAccordion,
		FieldTypeBundleImageThumbnail,
	}
}

// IsReserved reports whether t is a built-in field type.
func (t FieldType) IsReserved() bool {
	for _, r := range ReservedFieldTypes() {
		if r == t {
			return true
		}
	}
	return false
}

// Field is one node of a field definition tree. The concrete types are the
// *XxxField structs of this package.
type Field interface {
	FieldBase() BaseField
	Children() []Field
	isField()
}

// BaseField holds the attributes every field has. Extra keeps attributes
// the variant does not model, such as tip or default on a string field.
type BaseField struct {
	Key        string         `json:"key" validate:"required"`
	Type       FieldType      `json:"type"`
	Title      string         `json:"title,omitempty"`
	ArrayTitle bool           `json:"arrayTitle,omitempty"`
	Hidden     bool           `json:"hidden,omitempty"`
	Extra      map[string]any `json:"-"`
}

func (b BaseField) FieldBase() BaseField { return b }
func (b BaseField) Children() []Field    { return nil }
func (BaseField) isField()               {}

func (b *BaseField) setExtra(extra map[string]any) { b.Extra = extra }

type StringField struct {
	BaseField
	MultiLine bool `json:"multiLine,omitempty"`
}

type MarkdownField struct{ BaseField }

type HiddenField struct{ BaseField }

type DateField struct {
	BaseField
	Default string `json:"default,omitempty"`
}

type SelectField struct {
	BaseField
	Multiple bool     `json:"multiple,omitempty"`
	Options  []string `json:"options" validate:"required"`
}

type ChipsField struct{ BaseField }

type ImageSelectField struct {
	BaseField
	Path        string `json:"path" validate:"required"`
	ButtonTitle string `json:"buttonTitle,omitempty"`
}

type BundleManagerField struct {
	BaseField
	Path                 string   `json:"path" validate:"required"`
	AddButtonLocationTop bool     `json:"addButtonLocationTop,omitempty"`
	Extensions           []string `json:"extensions,omitempty"`
	Fields               []Field  `json:"fields,omitempty"`
}

func (f *BundleManagerField) Children() []Field { return f.Fields }

type AccordionField struct {
	BaseField
	Fields []Field `json:"fields" validate:"required"`
}

func (f *AccordionField) Children() []Field { return f.Fields }

type BundleImageThumbnailField struct{ BaseField }

func (f *StringField) MarshalJSON() ([]byte, error) {
	type plain StringField
	return marshalWithExtra((*plain)(f), f.Extra)
}

func (f *MarkdownField) MarshalJSON() ([]byte, error) {
	type plain MarkdownField
	return marshalWithExtra((*plain)(f), f.Extra)
}

func (f *HiddenField) MarshalJSON() ([]byte, error) {
	type plain HiddenField
	return marshalWithExtra((*plain)(f), f.Extra)
}

func (f *DateField) MarshalJSON() ([]byte, error) {
	type plain DateField
	return marshalWithExtra((*plain)(f), f.Extra)
}

func (f *SelectField) MarshalJSON() ([]byte, error) {
	type plain SelectField
	return marshalWithExtra((*plain)(f), f.Extra)
}

func (f *ChipsField) MarshalJSON() ([]byte, error) {
	type plain ChipsField
	return marshalWithExtra((*plain)(f), f.Extra)
}

func (f *ImageSelectField) MarshalJSON() ([]byte, error) {
	type plain ImageSelectField
	return marshalWithExtra((*plain)(f), f.Extra)
}

func (f *BundleManagerField) MarshalJSON() ([]byte, error) {
	type plain BundleManagerField
	return marshalWithExtra((*plain)(f), f.Extra)
}

func (f *AccordionField) MarshalJSON() ([]byte, error) {
	type plain AccordionField
	return marshalWithExtra((*plain)(f), f.Extra)
}

func (f *BundleImageThumbnailField) MarshalJSON() ([]byte, error) {
	type plain BundleImageThumbnailField
	return marshalWithExtra((*plain)(f), f.Extra)
}

// UnknownField is a field with a type this package has no variant for, or a
// built-in field whose attributes have the wrong shape. Raw keeps every
// attribute besides the common ones. DecodeErr is set in the second case.
type UnknownField struct {
	BaseField
	Raw       map[string]any `json:"-"`
	DecodeErr error          `json:"-"`
}

// TypeTag returns the field's type string as written in the config.
func (f *UnknownField) TypeTag() string { return string(f.Type) }

func (f *UnknownField) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(f.Raw)+5)
	for k, v := range f.Raw {
		out[k] = v
	}
	out["key"] = f.Key
	out["type"] = f.Type
	if f.Title != "" {
		out["title"] = f.Title
	}
	if f.ArrayTitle {
		out["arrayTitle"] = true
	}
	if f.Hidden {
		out["hidden"] = true
	}
	return json.Marshal(out)
}

var baseFieldKeys = []string{"key", "type", "title", "arrayTitle", "hidden"}

// ParseFields decodes a generic field list. A nil value is an empty list.
func ParseFields(v any) ([]Field, error) {
	if v == nil {
		return nil, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("fields: expected a sequence, got %T", v)
	}
	fields := make([]Field, 0, len(items))
	for i, item := range items {
		raw, err := asMapping(item, fmt.Sprintf("fields[%d]", i))
		if err != nil {
			return nil, err
		}
		f, err := ParseField(raw)
		if err != nil {
			return nil, fmt.Errorf("fields[%d]: %w", i, err)
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// ParseField decodes one field definition into its variant.
func ParseField(raw map[string]any) (Field, error) {
	var typeTag string
	if t, present := raw["type"]; present && t != nil {
		s, ok := t.(string)
		if !ok {
			return nil, fmt.Errorf("field %v: type must be a string, got %T", raw["key"], t)
		}
		typeTag = s
	}

	var (
		f      Field
		nested *[]Field
	)
	switch FieldType(typeTag) {
	case FieldTypeString:
		f = &StringField{}
	case FieldTypeMarkdown:
		f = &MarkdownField{}
	case FieldTypeHidden:
		f = &HiddenField{}
	case FieldTypeDate:
		f = &DateField{}
	case FieldTypeSelect:
		f = &SelectField{}
	case FieldTypeChips:
		f = &ChipsField{}
	case FieldTypeImageSelect:
		f = &ImageSelectField{}
	case FieldTypeBundleManager:
		bm := &BundleManagerField{}
		f, nested = bm, &bm.Fields
	case FieldTypeAccordion:
		acc := &AccordionField{}
		f, nested = acc, &acc.Fields
	case FieldTypeBundleImageThumbnail:
		f = &BundleImageThumbnailField{}
	default:
		return parseUnknownField(raw)
	}

	attrs := raw
	if nested != nil {
		attrs = withoutKeys(raw, "fields")
	}
	extra, err := decodeExtra(attrs, f)
	if err == nil && nested != nil {
		*nested, err = ParseFields(raw["fields"])
	}
	if err != nil {
		return malformedField(raw, fmt.Errorf("field %v: %w", raw["key"], err))
	}
	f.(interface{ setExtra(map[string]any) }).setExtra(extra)
	return f, nil
}

// malformedField keeps a built-in field whose attributes did not decode as
// an UnknownField, so the rest of the tree still loads.
func malformedField(raw map[string]any, cause error) (Field, error) {
	f, err := parseUnknownField(raw)
	if err != nil {
		return nil, cause
	}
	f.(*UnknownField).DecodeErr = cause
	return f, nil
}

func parseUnknownField(raw map[string]any) (Field, error) {
	f := &UnknownField{}
	if err := decode(raw, &f.BaseField); err != nil {
		return nil, fmt.Errorf("field %v: %w", raw["key"], err)
	}
	f.Raw = withoutKeys(raw, baseFieldKeys...)
	return f, nil
}

// FieldProblems lists the fields of the tree that were kept as UnknownField
// because their attributes did not decode.
func FieldProblems(fields []Field) []string {
	var problems []string
	WalkFields(fields, func(_ []string, f Field) {
		if u, ok := f.(*UnknownField); ok && u.DecodeErr != nil {
			problems = append(problems, u.DecodeErr.Error())
		}
	})
	return problems
}

// WalkFields calls fn for every field of the tree in depth-first order.
// path is the chain of keys from the root list to the field.
func WalkFields(fields []Field, fn func(path []string, f Field)) {
	walkFields(nil, fields, fn)
}

func walkFields(prefix []string, fields []Field, fn func([]string, Field)) {
	for _, f := range fields {
		path := append(append([]string(nil), prefix...), f.FieldBase().Key)
		fn(path, f)
		walkFields(path, f.Children(), fn)
	}
}
