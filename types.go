package api2html

import (
	"fmt"
	"strings"

	"github.com/alnah/go-api2html/internal/apispec"
	"github.com/alnah/go-api2html/internal/mdgen"
	"github.com/alnah/go-api2html/internal/pipeline"
)

// Heading level bounds for ConversionOptions.Headings.
const (
	MinHeadings     = 1
	MaxHeadings     = 2
	DefaultHeadings = mdgen.DefaultHeadingLevel
)

// DefaultTheme is the syntax highlight theme used when none is given.
const DefaultTheme = pipeline.DefaultTheme

// CustomCSSMarker is the placeholder ApplyCustomCSS replaces.
const CustomCSSMarker = pipeline.CustomCSSMarker

// LanguageTab is one code sample tab: the language key and its label.
type LanguageTab struct {
	Key   string
	Label string
}

// LanguageTable is an ordered, immutable list of supported language tabs.
// The zero value is an empty table.
type LanguageTable struct {
	tabs []LanguageTab
}

// NewLanguageTable creates a table holding a copy of tabs, in order.
func NewLanguageTable(tabs ...LanguageTab) LanguageTable {
	return LanguageTable{tabs: append([]LanguageTab(nil), tabs...)}
}

// DefaultLanguageTable returns the built-in table of code sample languages.
func DefaultLanguageTable() LanguageTable {
	return NewLanguageTable(
		LanguageTab{Key: "shell", Label: "Shell"},
		LanguageTab{Key: "http", Label: "HTTP"},
		LanguageTab{Key: "javascript", Label: "JavaScript"},
		LanguageTab{Key: "javascript--nodejs", Label: "Node.js"},
		LanguageTab{Key: "ruby", Label: "Ruby"},
		LanguageTab{Key: "python", Label: "Python"},
		LanguageTab{Key: "java", Label: "Java"},
		LanguageTab{Key: "go", Label: "Go"},
		LanguageTab{Key: "php", Label: "PHP"},
	)
}

// Tabs returns a copy of the entries in declaration order.
func (t LanguageTable) Tabs() []LanguageTab {
	return append([]LanguageTab(nil), t.tabs...)
}

// Keys returns the language keys in declaration order.
func (t LanguageTable) Keys() []string {
	keys := make([]string, len(t.tabs))
	for i, tab := range t.tabs {
		keys[i] = tab.Key
	}
	return keys
}

// Len returns the number of entries.
func (t LanguageTable) Len() int {
	return len(t.tabs)
}

// Lookup finds an entry by key, ignoring case and surrounding spaces.
func (t LanguageTable) Lookup(key string) (LanguageTab, bool) {
	key = strings.TrimSpace(key)
	for _, tab := range t.tabs {
		if strings.EqualFold(tab.Key, key) {
			return tab, true
		}
	}
	return LanguageTab{}, false
}

// Select returns the entries named by filter, in filter order. An empty
// filter selects the whole table. The first unknown key fails the whole
// selection with an *InvalidLanguageError. Repeated keys are kept once.
func (t LanguageTable) Select(filter []string) ([]LanguageTab, error) {
	if len(filter) == 0 {
		return t.Tabs(), nil
	}

	selected := make([]LanguageTab, 0, len(filter))
	seen := make(map[string]bool, len(filter))
	for _, value := range filter {
		tab, ok := t.Lookup(value)
		if !ok {
			return nil, &InvalidLanguageError{Value: value, Valid: t.Keys()}
		}
		if seen[tab.Key] {
			continue
		}
		seen[tab.Key] = true
		selected = append(selected, tab)
	}
	return selected, nil
}

// InvalidLanguageError reports a language key missing from the table.
type InvalidLanguageError struct {
	Value string
	Valid []string
}

func (e *InvalidLanguageError) Error() string {
	return fmt.Sprintf("%s: %q (valid: %s)", ErrInvalidLanguage, e.Value, strings.Join(e.Valid, ", "))
}

// Unwrap returns ErrInvalidLanguage for errors.Is matching.
func (e *InvalidLanguageError) Unwrap() error {
	return ErrInvalidLanguage
}

// ConversionOptions controls the OpenAPI to Markdown step.
type ConversionOptions struct {
	CodeSamples    bool          // write a code sample per language tab for each operation
	HTTPSnippet    bool          // not supported; must be false
	Theme          string        // highlight theme recorded in the front matter
	Search         bool          // add the search box
	Discovery      bool          // not supported; must be false
	ShallowSchemas bool          // not supported; must be false
	TOCSummary     bool          // operation summaries instead of ids in headings and TOC
	Headings       int           // TOC depth (1-2, 0 = DefaultHeadings)
	Verbose        bool          // reserved for callers that report progress
	OmitBody       bool          // omit the synthetic "body" parameter row
	LanguageTabs   []LanguageTab // nil = every entry of DefaultLanguageTable
	Sample         bool          // example values; false shows raw schemas
	Resolve        bool          // follow $ref pointers to other files or URLs
	Source         string        // base URL or path for relative references
	Includes       []string      // Markdown files appended to the page
}

// DefaultConversionOptions returns the options the command line uses
// before flags are applied.
func DefaultConversionOptions() ConversionOptions {
	return ConversionOptions{
		CodeSamples: true,
		Theme:       DefaultTheme,
		Search:      true,
		Headings:    DefaultHeadings,
		Sample:      true,
	}
}

// Validate checks that the options can be honoured.
func (o ConversionOptions) Validate() error {
	switch {
	case o.HTTPSnippet:
		return fmt.Errorf("%w: HTTPSnippet", ErrUnsupportedOption)
	case o.Discovery:
		return fmt.Errorf("%w: Discovery", ErrUnsupportedOption)
	case o.ShallowSchemas:
		return fmt.Errorf("%w: ShallowSchemas", ErrUnsupportedOption)
	}
	if o.Headings != 0 && (o.Headings < MinHeadings || o.Headings > MaxHeadings) {
		return fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidHeadings, o.Headings, MinHeadings, MaxHeadings)
	}
	for _, tab := range o.LanguageTabs {
		if strings.TrimSpace(tab.Key) == "" {
			return fmt.Errorf("%w: empty key", ErrInvalidLanguage)
		}
	}
	return nil
}

// RenderOptions controls the Markdown to HTML step.
type RenderOptions struct {
	Inline    bool   // embed the logo and relative images as data: URIs
	Unsafe    bool   // pass raw HTML in the Markdown through
	Logo      string // image shown above the navigation
	LogoURL   string // link target of the logo (requires Logo)
	CustomCSS bool   // leave CustomCSSMarker in an empty style block
	BaseDir   string // resolves includes and relative images ("" = current directory)
}

// Validate checks that the options are consistent.
func (o RenderOptions) Validate() error {
	if o.LogoURL != "" && o.Logo == "" {
		return ErrLogoURLWithoutLogo
	}
	return nil
}

// Document is a parsed source document, ready for conversion.
type Document struct {
	raw *apispec.Raw
}

// Version returns the declared "openapi" or "swagger" version.
func (d *Document) Version() string {
	return d.raw.Version
}

// Title returns info.title, or "" when absent.
func (d *Document) Title() string {
	return d.raw.Title()
}

// IsSwagger reports whether the document is a Swagger 2.0 description.
func (d *Document) IsSwagger() bool {
	return d.raw.IsSwagger()
}

// ConvertResult holds the outputs of a full conversion.
type ConvertResult struct {
	Markdown string
	HTML     string
}

// Option configures a Converter.
type Option func(*Converter)

// WithAssetPath loads styles, templates, scripts and code samples from dir,
// falling back to the embedded assets for missing files.
func WithAssetPath(dir string) Option {
	return func(c *Converter) {
		c.assetPath = dir
	}
}

// WithAssetLoader sets a custom asset source. Takes precedence over
// WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.publicAssetLoader = loader
	}
}
