package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"regexp"
	"strings"
)

// CustomCSSMarker is the placeholder left in the page when the custom CSS
// block is enabled. InjectCustomCSS replaces it.
const CustomCSSMarker = "/* place your custom CSS overrides here */"

// customCSSMarkerRe matches CustomCSSMarker in any letter case.
var customCSSMarkerRe = regexp.MustCompile("(?i)" + regexp.QuoteMeta(CustomCSSMarker))

// ErrLayoutRender indicates the page layout template failed.
var ErrLayoutRender = errors.New("layout template rendering failed")

// InjectCustomCSS replaces the first case-insensitive occurrence of
// CustomCSSMarker with css. Without a marker the HTML is returned unchanged.
// CSS content is sanitized so it cannot close the surrounding <style> block.
func InjectCustomCSS(htmlContent, css string) string {
	loc := customCSSMarkerRe.FindStringIndex(htmlContent)
	if loc == nil {
		return htmlContent
	}
	return htmlContent[:loc[0]] + sanitizeCSS(css) + htmlContent[loc[1]:]
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// sanitizeScript escapes sequences that could break out of a <script> block.
func sanitizeScript(js string) string {
	return strings.ReplaceAll(js, "</script", `<\/script`)
}

// LanguageLink is one entry of the language selector.
type LanguageLink struct {
	Key   string
	Label string
}

// pageData is the value the layout template is executed with.
type pageData struct {
	Title           string
	Theme           string
	Styles          template.CSS
	ThemeCSS        template.CSS
	CustomCSS       bool
	CustomCSSMarker template.CSS
	LanguageKeys    string
	Languages       []LanguageLink
	LogoSrc         template.URL
	LogoURL         string
	Search          bool
	TOC             []TOCEntry
	Footers         []template.HTML
	Content         template.HTML
	Scripts         template.JS
}

// renderLayout parses and executes the page layout.
func renderLayout(layout string, data pageData) (string, error) {
	tmpl, err := template.New("layout").Parse(layout)
	if err != nil {
		return "", fmt.Errorf("%w: parsing: %v", ErrLayoutRender, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrLayoutRender, err)
	}
	return buf.String(), nil
}
