// Package frontmatter reads and writes the YAML header that carries page
// settings from the Markdown generator to the HTML renderer.
package frontmatter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-api2html/internal/yamlutil"
)

const delimiter = "---"

// ErrUnterminated indicates an opening delimiter without a closing one.
var ErrUnterminated = errors.New("front matter is not terminated")

// Meta is the page header.
type Meta struct {
	Title          string              `yaml:"title"`
	LanguageTabs   []map[string]string `yaml:"language_tabs"` // one {key: label} entry per tab
	TocFooters     []string            `yaml:"toc_footers"`
	Includes       []string            `yaml:"includes"`
	Search         bool                `yaml:"search"`
	HighlightTheme string              `yaml:"highlight_theme"`
	HeadingLevel   int                 `yaml:"headingLevel"`
}

// Tab is one language tab read from Meta.
type Tab struct {
	Key   string
	Label string
}

// Tabs returns the language tabs in declaration order.
func (m Meta) Tabs() []Tab {
	tabs := make([]Tab, 0, len(m.LanguageTabs))
	for _, entry := range m.LanguageTabs {
		for key, label := range entry {
			tabs = append(tabs, Tab{Key: key, Label: label})
		}
	}
	return tabs
}

// Render formats m as a delimited YAML block followed by a blank line.
func Render(m Meta) (string, error) {
	body, err := yamlutil.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("rendering front matter: %w", err)
	}
	var b strings.Builder
	b.WriteString(delimiter + "\n")
	b.Write(body)
	if len(body) > 0 && body[len(body)-1] != '\n' {
		b.WriteByte('\n')
	}
	b.WriteString(delimiter + "\n\n")
	return b.String(), nil
}

// Split separates the front matter from the Markdown body. Content without
// an opening delimiter on its first line is returned unchanged with a zero Meta.
// Line endings must already be normalized to "\n".
func Split(content string) (Meta, string, error) {
	var meta Meta
	if !strings.HasPrefix(content, delimiter+"\n") {
		return meta, content, nil
	}

	rest := content[len(delimiter):]
	end := strings.Index(rest, "\n"+delimiter+"\n")
	var header, body string
	switch {
	case end >= 0:
		header, body = rest[:end], rest[end+len(delimiter)+2:]
	case strings.HasSuffix(rest, "\n"+delimiter):
		header, body = strings.TrimSuffix(rest, "\n"+delimiter), ""
	default:
		return meta, "", ErrUnterminated
	}

	if strings.TrimSpace(header) != "" {
		if err := yamlutil.Unmarshal([]byte(header), &meta); err != nil {
			return meta, "", fmt.Errorf("parsing front matter: %w", err)
		}
	}
	return meta, strings.TrimLeft(body, "\n"), nil
}
