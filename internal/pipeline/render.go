package pipeline

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-api2html/internal/assets"
	"github.com/alnah/go-api2html/internal/fileutil"
	"github.com/alnah/go-api2html/internal/frontmatter"
)

// Sentinel errors for rendering.
var (
	ErrReadInclude = errors.New("cannot read include")
	ErrReadLogo    = errors.New("cannot read logo")
	ErrFrontMatter = errors.New("invalid front matter")
	ErrAsset       = errors.New("cannot load page asset")
)

// DefaultTitle is used when the front matter has no title.
const DefaultTitle = "API Reference"

// RenderOptions controls page assembly.
type RenderOptions struct {
	// Inline embeds the logo and relative images as data: URIs. Styles and
	// scripts are always inlined.
	Inline bool

	// Unsafe renders raw HTML found in the Markdown.
	Unsafe bool

	// Logo is the path of an image shown above the navigation.
	Logo string

	// LogoURL is the link target of the logo. Requires Logo.
	LogoURL string

	// CustomCSS adds an empty style block holding CustomCSSMarker.
	CustomCSS bool

	// BaseDir resolves includes and relative images. Empty means the
	// current directory.
	BaseDir string
}

// Renderer turns generated Markdown into a complete HTML page.
type Renderer struct {
	assets       assets.AssetLoader
	preprocessor MarkdownPreprocessor
}

// NewRenderer creates a Renderer reading styles, layout and scripts from
// loader. A nil loader uses the embedded assets.
func NewRenderer(loader assets.AssetLoader) *Renderer {
	if loader == nil {
		loader = assets.NewEmbeddedLoader()
	}
	return &Renderer{
		assets:       loader,
		preprocessor: &CommonMarkPreprocessor{},
	}
}

// Render converts markdown (with optional front matter) into one
// self-contained HTML page.
func (r *Renderer) Render(ctx context.Context, markdown string, opts RenderOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	meta, body, err := frontmatter.Split(normalizeLineEndings(markdown))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFrontMatter, err)
	}

	body, err = appendIncludes(body, meta.Includes, opts.BaseDir)
	if err != nil {
		return "", err
	}
	body = r.preprocessor.PreprocessMarkdown(ctx, body)

	fragment, err := NewGoldmarkConverter(opts.Unsafe).ToHTML(ctx, body)
	if err != nil {
		return "", err
	}

	if opts.Inline {
		if fragment, err = InlineImages(fragment, baseDirOrCurrent(opts.BaseDir)); err != nil {
			return "", fmt.Errorf("inlining images: %w", err)
		}
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := r.pageData(ctx, meta, fragment, opts)
	if err != nil {
		return "", err
	}

	layout, err := r.assets.LoadTemplate(assets.TemplateLayout)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAsset, err)
	}
	return renderLayout(layout, data)
}

func (r *Renderer) pageData(ctx context.Context, meta frontmatter.Meta, fragment string, opts RenderOptions) (pageData, error) {
	headingLevel := meta.HeadingLevel
	if headingLevel <= 0 {
		headingLevel = 2
	}
	toc, err := BuildTOC(fragment, headingLevel)
	if err != nil {
		return pageData{}, err
	}

	theme := meta.HighlightTheme
	if theme == "" {
		theme = DefaultTheme
	}
	themeCSS, err := ThemeCSS(theme)
	if err != nil {
		return pageData{}, err
	}

	styles, err := r.loadAll(r.assets.LoadStyle, assets.StyleScreen, assets.StylePrint)
	if err != nil {
		return pageData{}, err
	}

	scriptNames := []string{assets.ScriptTabs}
	if meta.Search {
		scriptNames = append(scriptNames, assets.ScriptSearch)
	}
	scripts, err := r.loadAll(r.assets.LoadScript, scriptNames...)
	if err != nil {
		return pageData{}, err
	}

	data := pageData{
		Title:     strings.TrimSpace(meta.Title),
		Theme:     theme,
		Styles:    template.CSS(sanitizeCSS(styles)),
		ThemeCSS:  template.CSS(sanitizeCSS(themeCSS)),
		Scripts:   template.JS(sanitizeScript(scripts)),
		Content:   template.HTML(fragment),
		CustomCSS: opts.CustomCSS,
		Search:    meta.Search,
		TOC:       toc,
	}
	if data.Title == "" {
		data.Title = DefaultTitle
	}
	if opts.CustomCSS {
		data.CustomCSSMarker = template.CSS(CustomCSSMarker) // #nosec G203 -- constant
	}

	keys := make([]string, 0, len(meta.LanguageTabs))
	for _, tab := range meta.Tabs() {
		keys = append(keys, tab.Key)
		data.Languages = append(data.Languages, LanguageLink{Key: tab.Key, Label: tab.Label})
	}
	data.LanguageKeys = strings.Join(keys, ",")

	for _, footer := range meta.TocFooters {
		rendered, err := NewGoldmarkConverter(false).ToHTML(ctx, footer)
		if err != nil {
			return pageData{}, err
		}
		rendered = strings.TrimSpace(rendered)
		rendered = strings.TrimSuffix(strings.TrimPrefix(rendered, "<p>"), "</p>")
		data.Footers = append(data.Footers, template.HTML(rendered)) // #nosec G203 -- rendered by goldmark
	}

	if opts.Logo != "" {
		if opts.Inline {
			uri, err := DataURI(opts.Logo)
			if err != nil {
				return pageData{}, fmt.Errorf("%w: %v", ErrReadLogo, err)
			}
			data.LogoSrc = template.URL(uri) // #nosec G203 -- data URI built from file content
		} else {
			data.LogoSrc = template.URL(filepath.ToSlash(opts.Logo)) // #nosec G203 -- user-provided path
		}
		data.LogoURL = opts.LogoURL
	}

	return data, nil
}

// loadAll loads several assets of one kind and joins them.
func (r *Renderer) loadAll(load func(string) (string, error), names ...string) (string, error) {
	parts := make([]string, 0, len(names))
	for _, name := range names {
		content, err := load(name)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrAsset, name, err)
		}
		parts = append(parts, strings.TrimSpace(content))
	}
	return strings.Join(parts, "\n\n"), nil
}

// appendIncludes appends each include to body, separated by blank lines.
// An include is read as given first, then as includes/_<name>.md under
// baseDir.
func appendIncludes(body string, includes []string, baseDir string) (string, error) {
	if len(includes) == 0 {
		return body, nil
	}

	var b strings.Builder
	b.WriteString(strings.TrimRight(body, "\n"))
	for _, name := range includes {
		content, err := readInclude(name, baseDir)
		if err != nil {
			return "", err
		}
		b.WriteString("\n\n")
		b.WriteString(strings.TrimRight(normalizeLineEndings(content), "\n"))
	}
	b.WriteString("\n")
	return b.String(), nil
}

func readInclude(name, baseDir string) (string, error) {
	candidates := []string{name}
	if !filepath.IsAbs(name) {
		base := baseDirOrCurrent(baseDir)
		if baseDir != "" {
			candidates = append(candidates, filepath.Join(base, name))
		}
		candidates = append(candidates, filepath.Join(base, "includes", "_"+name+".md"))
	}

	for _, candidate := range candidates {
		if !fileutil.FileExists(candidate) {
			continue
		}
		data, err := os.ReadFile(candidate) // #nosec G304 -- include path is user-provided
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrReadInclude, name, err)
		}
		return string(data), nil
	}
	return "", fmt.Errorf("%w: %s (tried %s)", ErrReadInclude, name, strings.Join(candidates, ", "))
}

func baseDirOrCurrent(baseDir string) string {
	if baseDir == "" {
		return "."
	}
	return baseDir
}
