package services

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"quiqr-cms/pkg/models"

	"github.com/goccy/go-json"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// SummaryDivider separates the excerpt from the rest of a page body.
const SummaryDivider = "<!--more-->"

// ParseMarkdown splits a content file into frontmatter data and body.
//
// Supported frontmatter: "---" YAML (an optional language after the
// delimiter selects yaml, toml or json), "+++" TOML, and a leading JSON
// object. A file without frontmatter is all content.
func ParseMarkdown(content []byte) (models.MarkdownContent, error) {
	str := string(content)
	result := models.MarkdownContent{
		Content: str,
		Data:    map[string]any{},
		Orig:    map[string]int{"frontmatterStart": 0, "frontmatterEnd": 0, "contentStart": 0},
	}

	if strings.HasPrefix(strings.TrimLeft(str, " \t\r\n"), "{") {
		return parseJSONFrontMatter(str, result)
	}

	firstLine, rest := splitLine(str, 0)
	var (
		format string
		closer string
	)
	switch {
	case strings.TrimRight(firstLine, " \t") == "+++":
		format, closer = FormatTOML, "+++"
	case strings.HasPrefix(firstLine, "---") && !strings.HasPrefix(firstLine, "----"):
		closer = "---"
		switch lang := strings.ToLower(strings.TrimSpace(firstLine[3:])); lang {
		case "", "yaml", "yml":
			format = FormatYAML
		case "toml":
			format = FormatTOML
		case "json":
			format = FormatJSON
		default:
			return result, fmt.Errorf("no frontmatter parser for language %q", lang)
		}
	default:
		result.Excerpt = excerpt(str)
		return result, nil
	}

	fmStart := rest
	fmEnd, contentStart := len(str), len(str)
	for pos := rest; pos < len(str); {
		line, next := splitLine(str, pos)
		if strings.TrimRight(line, " \t") == closer {
			fmEnd, contentStart = pos, next
			break
		}
		pos = next
	}

	matter := str[fmStart:fmEnd]
	data, err := decodeFrontMatter(format, matter)
	if err != nil {
		return result, err
	}

	result.Data = data
	result.Format = format
	result.IsEmpty = strings.TrimSpace(matter) == ""
	result.Content = str[contentStart:]
	result.Excerpt = excerpt(result.Content)
	result.Orig = map[string]int{
		"frontmatterStart": fmStart,
		"frontmatterEnd":   fmEnd,
		"contentStart":     contentStart,
	}
	return result, nil
}

// splitLine returns the line starting at pos without its line ending and the
// offset of the following line.
func splitLine(str string, pos int) (string, int) {
	idx := strings.IndexByte(str[pos:], '\n')
	if idx < 0 {
		return strings.TrimSuffix(str[pos:], "\r"), len(str)
	}
	return strings.TrimSuffix(str[pos:pos+idx], "\r"), pos + idx + 1
}

func parseJSONFrontMatter(str string, result models.MarkdownContent) (models.MarkdownContent, error) {
	start := strings.IndexByte(str, '{')
	end, err := matchingBrace(str, start)
	if err != nil {
		return result, err
	}

	data, err := decodeFrontMatter(FormatJSON, str[start:end])
	if err != nil {
		return result, err
	}

	contentStart := end
	if strings.HasPrefix(str[end:], "\r\n") {
		contentStart += 2
	} else if strings.HasPrefix(str[end:], "\n") {
		contentStart++
	}

	result.Data = data
	result.Format = FormatJSON
	result.IsEmpty = len(data) == 0
	result.Content = str[contentStart:]
	result.Excerpt = excerpt(result.Content)
	result.Orig = map[string]int{
		"frontmatterStart": start,
		"frontmatterEnd":   end,
		"contentStart":     contentStart,
	}
	return result, nil
}

// matchingBrace returns the offset just past the object opened at start.
func matchingBrace(str string, start int) (int, error) {
	depth := 0
	inString, escaped := false, false
	for i := start; i < len(str); i++ {
		c := str[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1, nil
			}
		}
	}
	return 0, errors.New("unterminated JSON frontmatter")
}

func decodeFrontMatter(format, matter string) (map[string]any, error) {
	if strings.TrimSpace(matter) == "" {
		return map[string]any{}, nil
	}

	var fm map[string]any
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal([]byte(matter), &fm)
	case FormatTOML:
		err = toml.Unmarshal([]byte(matter), &fm)
	case FormatJSON:
		err = json.Unmarshal([]byte(matter), &fm)
	default:
		err = fmt.Errorf("unsupported frontmatter format: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("%s frontmatter: %w", format, err)
	}
	return normalizeMapping(fm), nil
}

func excerpt(content string) string {
	idx := strings.Index(content, SummaryDivider)
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(content[:idx])
}

// ConstructFileContent writes frontmatter and body back into a content file.
// ParseMarkdown on the result yields the same data and body.
func ConstructFileContent(fm map[string]any, body string, format string) ([]byte, error) {
	normalizedFM := normalizeMapping(fm)

	var buf bytes.Buffer
	switch format {
	case FormatYAML:
		buf.WriteString("---\n")
		if len(normalizedFM) > 0 {
			enc := yaml.NewEncoder(&buf)
			enc.SetIndent(2)
			if err := enc.Encode(normalizedFM); err != nil {
				return nil, err
			}
			if err := enc.Close(); err != nil {
				return nil, err
			}
		}
		buf.WriteString("---\n")
	case FormatTOML:
		buf.WriteString("+++\n")
		if len(normalizedFM) > 0 {
			enc := toml.NewEncoder(&buf)
			if err := enc.Encode(wholeFloatsToInts(normalizedFM)); err != nil {
				return nil, err
			}
		}
		buf.WriteString("+++\n")
	case FormatJSON:
		out, err := json.MarshalIndent(normalizedFM, "", "  ")
		if err != nil {
			return nil, err
		}
		buf.Write(out)
		buf.WriteString("\n")
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	buf.WriteString(body)
	return buf.Bytes(), nil
}
