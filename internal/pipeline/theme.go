package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultTheme is the highlight theme used when none is given.
const DefaultTheme = "darkula"

// themeAliases maps highlight.js theme names used by existing pages to the
// closest Chroma style.
var themeAliases = map[string]string{
	"darkula":           "dracula",
	"darcula":           "dracula",
	"default":           "github",
	"atom-one-dark":     "monokai",
	"atom-one-light":    "github",
	"solarized-dark":    "solarized-dark",
	"solarized-light":   "solarized-light",
	"tomorrow-night":    "monokai",
	"vs2015":            "vs",
	"github-gist":       "github",
	"androidstudio":     "native",
	"railscasts":        "monokai",
	"zenburn":           "native",
	"ocean":             "base16-snazzy",
	"agate":             "monokai",
	"an-old-hope":       "monokai",
	"a11y-dark":         "monokai",
	"a11y-light":        "github",
	"atelier-cave-dark": "monokai",
}

// ResolveTheme returns the Chroma style for a theme name and whether the
// name is known. Unknown names resolve to the fallback style.
func ResolveTheme(name string) (*chroma.Style, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = DefaultTheme
	}
	if alias, ok := themeAliases[key]; ok {
		key = alias
	}
	if style, ok := styles.Registry[key]; ok {
		return style, true
	}
	return styles.Fallback, false
}

// Themes lists the accepted theme names: Chroma styles and aliases.
func Themes() []string {
	seen := make(map[string]bool)
	for name := range styles.Registry {
		seen[name] = true
	}
	for alias := range themeAliases {
		seen[alias] = true
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeCSS returns the class-based stylesheet for a theme.
func ThemeCSS(name string) (string, error) {
	style, _ := ResolveTheme(name)
	var b strings.Builder
	if err := chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(&b, style); err != nil {
		return "", fmt.Errorf("writing theme CSS: %w", err)
	}
	return b.String(), nil
}
