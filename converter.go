package api2html

import (
	"bytes"
	"context"
	"fmt"

	"github.com/alnah/go-api2html/internal/apispec"
	"github.com/alnah/go-api2html/internal/assets"
	"github.com/alnah/go-api2html/internal/mdgen"
	"github.com/alnah/go-api2html/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ assets.AssetLoader            = (*publicToInternalAdapter)(nil)
	_ mdgen.SampleLoader            = (assets.AssetLoader)(nil)
	_ AssetLoader                   = (*assetLoaderAdapter)(nil)
)

// Converter runs the OpenAPI to HTML pipeline. It holds no per-run state and
// is safe for concurrent use.
type Converter struct {
	assetPath         string
	publicAssetLoader AssetLoader
	assetLoader       assets.AssetLoader
	renderer          *pipeline.Renderer
}

// NewConverter creates a Converter using the embedded assets.
// Use options to customize behavior (e.g., WithAssetPath, WithAssetLoader).
// Returns ErrInvalidAssetPath if the asset directory cannot be used.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{assetLoader: assets.NewEmbeddedLoader()}

	for _, opt := range opts {
		opt(c)
	}

	if c.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	if c.publicAssetLoader != nil {
		c.assetLoader = &publicToInternalAdapter{pub: c.publicAssetLoader}
	}

	c.renderer = pipeline.NewRenderer(c.assetLoader)
	return c, nil
}

// ParseDocument decodes a YAML or JSON source. Fails with ErrParse when the
// data is not a structured mapping.
func (c *Converter) ParseDocument(data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrParse, ErrEmptyDocument)
	}
	raw, err := apispec.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return &Document{raw: raw}, nil
}

// ToMarkdown loads doc as OpenAPI 3 and writes the page Markdown, front
// matter included. Failures wrap ErrConversion.
func (c *Converter) ToMarkdown(ctx context.Context, doc *Document, opts ConversionOptions) (string, error) {
	if doc == nil || doc.raw == nil {
		return "", ErrNilDocument
	}
	if err := opts.Validate(); err != nil {
		return "", err
	}

	spec, err := apispec.Load(ctx, doc.raw, apispec.LoadOptions{
		Resolve: opts.Resolve,
		Source:  opts.Source,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrConversion, err)
	}

	markdown, err := mdgen.Generate(ctx, spec, c.toGeneratorOptions(opts))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrConversion, err)
	}
	return markdown, nil
}

// ToHTML renders Markdown produced by ToMarkdown into one self-contained
// page. Failures wrap ErrRender.
func (c *Converter) ToHTML(ctx context.Context, markdown string, opts RenderOptions) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	page, err := c.renderer.Render(ctx, markdown, toPipelineOptions(opts))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRender, err)
	}
	return page, nil
}

// Convert runs ParseDocument, ToMarkdown and ToHTML in sequence.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, data []byte, conv ConversionOptions, render RenderOptions) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	doc, err := c.ParseDocument(data)
	if err != nil {
		return nil, err
	}

	markdown, err := c.ToMarkdown(ctx, doc, conv)
	if err != nil {
		return nil, err
	}

	page, err := c.ToHTML(ctx, markdown, render)
	if err != nil {
		return nil, err
	}

	return &ConvertResult{Markdown: markdown, HTML: page}, nil
}

// ApplyCustomCSS replaces the first case-insensitive occurrence of
// CustomCSSMarker in page with css. Pages without the marker are returned
// unchanged.
func ApplyCustomCSS(page, css string) string {
	return pipeline.InjectCustomCSS(page, css)
}

// Themes lists the accepted highlight theme names.
func Themes() []string {
	return pipeline.Themes()
}

// IsKnownTheme reports whether name maps to a highlight style. Unknown names
// still render, with the fallback style.
func IsKnownTheme(name string) bool {
	_, known := pipeline.ResolveTheme(name)
	return known
}

// toGeneratorOptions converts public options to the Markdown generator's.
func (c *Converter) toGeneratorOptions(opts ConversionOptions) mdgen.Options {
	tabs := opts.LanguageTabs
	if tabs == nil {
		tabs = DefaultLanguageTable().Tabs()
	}
	genTabs := make([]mdgen.LanguageTab, len(tabs))
	for i, tab := range tabs {
		genTabs[i] = mdgen.LanguageTab(tab)
	}

	theme := opts.Theme
	if theme == "" {
		theme = DefaultTheme
	}

	return mdgen.Options{
		LanguageTabs: genTabs,
		CodeSamples:  opts.CodeSamples,
		Theme:        theme,
		Search:       opts.Search,
		TOCSummary:   opts.TOCSummary,
		HeadingLevel: opts.Headings,
		OmitBody:     opts.OmitBody,
		Sample:       opts.Sample,
		Includes:     opts.Includes,
		Samples:      c.assetLoader,
	}
}

// toPipelineOptions converts public render options to the renderer's.
func toPipelineOptions(opts RenderOptions) pipeline.RenderOptions {
	return pipeline.RenderOptions{
		Inline:    opts.Inline,
		Unsafe:    opts.Unsafe,
		Logo:      opts.Logo,
		LogoURL:   opts.LogoURL,
		CustomCSS: opts.CustomCSS,
		BaseDir:   opts.BaseDir,
	}
}
