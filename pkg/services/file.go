package services

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"quiqr-cms/pkg/models"

	"github.com/goccy/go-json"
	goyaml "github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format names as reported in ParseError and MarkdownContent.Format.
const (
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatTOML     = "toml"
	FormatMarkdown = "markdown"
)

// SafeJoin joins target below root/sub. It returns "" when target tries to
// climb out with a ".." path element; names that merely contain two dots
// are fine.
func SafeJoin(root, sub, target string) string {
	cleanTarget := filepath.Clean(target)
	for _, part := range strings.Split(filepath.ToSlash(cleanTarget), "/") {
		if part == ".." {
			return ""
		}
	}
	return filepath.Join(root, sub, cleanTarget)
}

// FormatForExt maps a file extension to its format name. The lookup is case
// insensitive; ok is false for extensions without a decoder.
func FormatForExt(ext string) (format string, ok bool) {
	switch strings.ToLower(ext) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".toml":
		return FormatTOML, true
	case ".md":
		return FormatMarkdown, true
	}
	return "", false
}

func formatOf(path string) string {
	format, _ := FormatForExt(filepath.Ext(path))
	return format
}

// Load reads path and decodes it according to its extension. Mappings come
// back as map[string]any and sequences as []any; Markdown files come back as
// models.MarkdownContent.
func Load(path string) (any, error) {
	ext := filepath.Ext(path)
	format, ok := FormatForExt(ext)
	if !ok {
		return nil, &UnsupportedFormatError{Ext: strings.ToLower(ext)}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}

	if format == FormatMarkdown {
		md, err := ParseMarkdown(content)
		if err != nil {
			return nil, &ParseError{Path: path, Format: format, Err: err}
		}
		md.Path = path
		return md, nil
	}

	v, err := decodeData(format, content)
	if err != nil {
		return nil, &ParseError{Path: path, Format: format, Err: err}
	}
	return v, nil
}

func decodeData(format string, content []byte) (any, error) {
	var v any
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(content, &v); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(content, &v); err != nil {
			return nil, err
		}
	case FormatTOML:
		var m map[string]any
		if err := toml.Unmarshal(content, &m); err != nil {
			return nil, err
		}
		v = m
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	return normalizeValue(v), nil
}

// Marshal encodes v for a file with the given extension. JSON is indented
// with two spaces and YAML is written without line wrapping. Whole floats,
// as produced by JSON decoding, are written as integers in YAML and TOML.
// Markdown expects a models.MarkdownContent.
func Marshal(ext string, v any) ([]byte, error) {
	format, ok := FormatForExt(ext)
	if !ok {
		return nil, &UnsupportedFormatError{Ext: strings.ToLower(ext)}
	}

	switch format {
	case FormatJSON:
		return json.MarshalIndent(v, "", "  ")
	case FormatYAML:
		return goyaml.MarshalWithOptions(v, goyaml.Indent(2), goyaml.IndentSequence(true), goyaml.AutoInt())
	case FormatTOML:
		return toml.Marshal(wholeFloatsToInts(v))
	default:
		var md models.MarkdownContent
		switch c := v.(type) {
		case models.MarkdownContent:
			md = c
		case *models.MarkdownContent:
			md = *c
		default:
			return nil, fmt.Errorf("markdown output needs MarkdownContent, got %T", v)
		}
		fmFormat := md.Format
		if fmFormat == "" {
			fmFormat = FormatYAML
		}
		return ConstructFileContent(md.Data, md.Content, fmFormat)
	}
}

// normalizeValue rewrites decoded trees so every mapping has string keys.
func normalizeValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		for key, inner := range v {
			v[key] = normalizeValue(inner)
		}
		return v
	case map[any]any:
		normalized := make(map[string]any, len(v))
		for key, inner := range v {
			normalized[fmt.Sprint(key)] = normalizeValue(inner)
		}
		return normalized
	case []any:
		for i := range v {
			v[i] = normalizeValue(v[i])
		}
		return v
	default:
		return v
	}
}

// wholeFloatsToInts returns a copy of a decoded tree with every float64
// that has no fractional part replaced by an int64.
func wholeFloatsToInts(value any) any {
	switch v := value.(type) {
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
			return int64(v)
		}
		return v
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, inner := range v {
			out[key] = wholeFloatsToInts(inner)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i := range v {
			out[i] = wholeFloatsToInts(v[i])
		}
		return out
	default:
		return v
	}
}

func normalizeMapping(fm map[string]any) map[string]any {
	if fm == nil {
		return map[string]any{}
	}
	return normalizeValue(fm).(map[string]any)
}
