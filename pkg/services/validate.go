package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"quiqr-cms/pkg/models"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateConfig checks the content of one model file before it is saved.
// data is the decoded file: a sequence for singles, collections and menu, a
// mapping for the site config.
func ValidateConfig(configType models.ConfigType, data any) models.ValidationReport {
	var errs []string
	switch configType {
	case models.ConfigTypeSingles, models.ConfigTypeCollections:
		errs = validateEntries(configType, data)
	case models.ConfigTypeMenu:
		errs = validateMenu(data)
	case models.ConfigTypeSite:
		errs = validateSite(data)
	default:
		errs = []string{fmt.Sprintf("Unsupported config type: %s", configType)}
	}
	if errs == nil {
		errs = []string{}
	}
	return models.ValidationReport{Valid: len(errs) == 0, Errors: errs}
}

func validateEntries(configType models.ConfigType, data any) []string {
	if data == nil {
		return nil
	}
	items, ok := data.([]any)
	if !ok {
		return []string{fmt.Sprintf("%s: expected a sequence, got %T", configType, data)}
	}

	var errs []string
	seen := make(map[string]bool, len(items))
	for i, item := range items {
		loc := fmt.Sprintf("%s[%d]", configType, i)
		m, ok := item.(map[string]any)
		if !ok {
			errs = append(errs, fmt.Sprintf("%s: expected a mapping, got %T", loc, item))
			continue
		}
		entry := models.Entry(m)
		if key := entry.EntryKey(); key != "" {
			if seen[key] {
				errs = append(errs, fmt.Sprintf("%s: duplicate key %q", loc, key))
			}
			seen[key] = true
		}

		var (
			cfg    any
			fields []models.Field
			err    error
		)
		if configType == models.ConfigTypeSingles {
			var s models.SingleConfig
			s, err = models.DecodeSingle(entry)
			cfg, fields = s, s.Fields
		} else {
			if _, present := m["fields"]; !present || m["fields"] == nil {
				errs = append(errs, fmt.Sprintf("%s: fields is required", loc))
			}
			var c models.CollectionConfig
			c, err = models.DecodeCollection(entry)
			cfg, fields = c, c.Fields
		}
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", loc, err))
			continue
		}
		errs = append(errs, structErrors(loc, cfg)...)
		errs = append(errs, fieldErrors(loc+".fields", fields)...)
	}
	return errs
}

// fieldErrors checks one field list and, recursively, every nested list.
func fieldErrors(loc string, fields []models.Field) []string {
	var errs []string
	seen := make(map[string]bool, len(fields))
	for i, f := range fields {
		base := f.FieldBase()
		fieldLoc := fmt.Sprintf("%s[%d]", loc, i)
		if base.Key != "" {
			fieldLoc = loc + "." + base.Key
			if seen[base.Key] {
				errs = append(errs, fmt.Sprintf("%s: duplicate field key %q", loc, base.Key))
			}
			seen[base.Key] = true
		}
		if u, ok := f.(*models.UnknownField); ok {
			switch {
			case u.DecodeErr != nil:
				errs = append(errs, fmt.Sprintf("%s: %v", fieldLoc, u.DecodeErr))
			case u.TypeTag() == "":
				errs = append(errs, fmt.Sprintf("%s: missing type", fieldLoc))
			}
		}
		errs = append(errs, structErrors(fieldLoc, f)...)
		errs = append(errs, fieldErrors(fieldLoc+".fields", f.Children())...)
	}
	return errs
}

func validateMenu(data any) []string {
	menu, err := models.DecodeMenuConfig(data)
	if err != nil {
		return []string{err.Error()}
	}
	var errs []string
	for i, section := range menu {
		errs = append(errs, structErrors(fmt.Sprintf("menu[%d]", i), section)...)
	}
	return errs
}

func validateSite(data any) []string {
	site, err := models.DecodeSiteConfig(data)
	if err != nil {
		return []string{err.Error()}
	}
	return structErrors("site", site)
}

// structErrors runs the struct tags of v and renders every failure as
// "<loc>.<field>: <reason>".
func structErrors(loc string, v any) []string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{fmt.Sprintf("%s: %v", loc, err)}
	}
	errs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, fmt.Sprintf("%s: %s %s", loc, fieldName(fe.Namespace()), reason(fe)))
	}
	return errs
}

// fieldName drops the root type and any embedded base struct from a
// validator namespace.
func fieldName(namespace string) string {
	parts := strings.Split(namespace, ".")
	out := parts[:0]
	for _, p := range parts[1:] {
		if p == "BaseConfig" || p == "BaseField" {
			continue
		}
		out = append(out, p)
	}
	return strings.Join(out, ".")
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "eq":
		return fmt.Sprintf("must be %q", fe.Param())
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	}
	return fmt.Sprintf("failed the %s check", fe.Tag())
}
