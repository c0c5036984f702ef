package mdgen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	htmltomd "github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

// htmlTag matches an opening, closing or self-closing HTML tag.
var htmlTag = regexp.MustCompile(`</?[a-zA-Z][a-zA-Z0-9-]*(\s[^<>]*)?/?>`)

func newHTMLConverter() *htmltomd.Converter {
	return htmltomd.NewConverter(
		htmltomd.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
}

// markdown returns a description as Markdown. Descriptions may mix
// Markdown and HTML; the page is rendered without raw HTML, so HTML
// fragments are converted.
func (g *generator) markdown(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || !htmlTag.MatchString(s) {
		return s
	}
	md, err := g.html.ConvertString(s)
	if err != nil {
		return strings.TrimSpace(htmlTag.ReplaceAllString(s, ""))
	}
	return strings.TrimSpace(md)
}

// cell formats text for a table cell.
func (g *generator) cell(s string) string {
	s = inline(g.markdown(s))
	if s == "" {
		return "none"
	}
	return s
}

// inline folds text onto one line and escapes table separators.
func inline(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.ReplaceAll(s, "|", `\|`)
}

// titleWords splits a camelCase identifier and title-cases the words:
// "authorizationCode" becomes "Authorization Code".
func (g *generator) titleWords(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return g.title.String(b.String())
}

// slug lowercases s and keeps ASCII letters and digits, joining runs of
// anything else with a single dash.
func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// uniqueID reserves an id, suffixing -1, -2... on collision.
func (g *generator) uniqueID(base string) string {
	if base == "" {
		base = "section"
	}
	id := base
	for n := 1; g.ids[id]; n++ {
		id = base + "-" + strconv.Itoa(n)
	}
	g.ids[id] = true
	return id
}

func link(text, target string) string {
	return "[" + text + "](" + target + ")"
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// prettyJSON indents v without escaping HTML characters.
func prettyJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("%w: %v", ErrExample, err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// formatValue renders a scalar for a table cell or a query string.
// Composite values are written as compact JSON.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return inline(val)
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, formatValue(item))
		}
		return strings.Join(parts, ",")
	case map[string]any:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return inline(string(data))
	default:
		return fmt.Sprint(val)
	}
}
