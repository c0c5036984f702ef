package pipeline

// Notes:
// - Render tests check fragments of the page rather than whole documents;
//   styles and scripts are embedded assets that change independently.
// - Every page must be self-contained: no external script or style links.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-api2html/internal/frontmatter"
)

func testMarkdown(t *testing.T, meta frontmatter.Meta, body string) string {
	t.Helper()
	header, err := frontmatter.Render(meta)
	if err != nil {
		t.Fatalf("frontmatter.Render() error = %v", err)
	}
	return header + body
}

func testMeta() frontmatter.Meta {
	return frontmatter.Meta{
		Title: "Petstore v1.0.0",
		LanguageTabs: []map[string]string{
			{"shell": "Shell"},
			{"python": "Python"},
		},
		TocFooters:     []string{"[Docs](https://example.com/docs)"},
		Search:         true,
		HighlightTheme: "darkula",
		HeadingLevel:   2,
	}
}

const testBody = `# Petstore {#petstore}

Intro ==highlighted== text.

# pets {#pets}

## listPets {#listpets}

` + "```shell\ncurl -X GET https://example.com/pets\n```\n"

// ---------------------------------------------------------------------------
// Render
// ---------------------------------------------------------------------------

func TestRender(t *testing.T) {
	t.Parallel()

	page, err := NewRenderer(nil).Render(context.Background(), testMarkdown(t, testMeta(), testBody), RenderOptions{Inline: true})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	wants := []string{
		"<!doctype html>",
		"<title>Petstore v1.0.0</title>",
		`<meta name="highlight-theme" content="darkula">`,
		`data-languages="shell,python"`,
		`<a href="#" data-language-name="shell">Shell</a>`,
		`<a href="#" data-language-name="python">Python</a>`,
		`<a href="#pets" class="toc-h1 toc-link" data-title="pets">pets</a>`,
		`<a href="#listpets" class="toc-h2 toc-link" data-title="listPets">listPets</a>`,
		`<li><a href="https://example.com/docs">Docs</a></li>`,
		`<mark>highlighted</mark>`,
		`<div class="highlight tab-shell">`,
		`id="input-search"`,
		".chroma",
	}
	for _, want := range wants {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}

	for _, unwanted := range []string{"<script src", `<link rel="stylesheet"`, CustomCSSMarker, "---\ntitle"} {
		if strings.Contains(page, unwanted) {
			t.Errorf("page should not contain %q", unwanted)
		}
	}
}

func TestRender_Options(t *testing.T) {
	t.Parallel()

	t.Run("custom css marker", func(t *testing.T) {
		t.Parallel()
		md := testMarkdown(t, testMeta(), testBody)
		page, err := NewRenderer(nil).Render(context.Background(), md, RenderOptions{CustomCSS: true})
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if strings.Count(page, CustomCSSMarker) != 1 {
			t.Fatalf("page should carry the marker once")
		}
		injected := InjectCustomCSS(page, "body{color:red}")
		if !strings.Contains(injected, "body{color:red}") || strings.Contains(injected, CustomCSSMarker) {
			t.Error("marker was not replaced")
		}
	})

	t.Run("search off", func(t *testing.T) {
		t.Parallel()
		meta := testMeta()
		meta.Search = false
		page, err := NewRenderer(nil).Render(context.Background(), testMarkdown(t, meta, testBody), RenderOptions{})
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if strings.Contains(page, `id="input-search"`) {
			t.Error("search box rendered with search disabled")
		}
	})

	t.Run("heading level one", func(t *testing.T) {
		t.Parallel()
		meta := testMeta()
		meta.HeadingLevel = 1
		page, err := NewRenderer(nil).Render(context.Background(), testMarkdown(t, meta, testBody), RenderOptions{})
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if strings.Contains(page, "toc-h2") {
			t.Error("h2 entries listed with heading level 1")
		}
	})

	t.Run("no front matter", func(t *testing.T) {
		t.Parallel()
		page, err := NewRenderer(nil).Render(context.Background(), "# Hello\n", RenderOptions{})
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if !strings.Contains(page, "<title>"+DefaultTitle+"</title>") {
			t.Error("default title missing")
		}
		if !strings.Contains(page, `content="`+DefaultTheme+`"`) {
			t.Error("default theme missing")
		}
	})

	t.Run("raw html", func(t *testing.T) {
		t.Parallel()
		body := "<div class=\"note\">raw</div>\n"
		safe, err := NewRenderer(nil).Render(context.Background(), body, RenderOptions{})
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		unsafe, err := NewRenderer(nil).Render(context.Background(), body, RenderOptions{Unsafe: true})
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if strings.Contains(safe, `<div class="note">`) || !strings.Contains(unsafe, `<div class="note">`) {
			t.Error("Unsafe should control raw HTML output")
		}
	})
}

func TestRender_Includes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "includes", "_errors.md"), []byte("# Errors {#errors}\n\nSomething failed.\n"))
	writeTestFile(t, filepath.Join(dir, "extra.md"), []byte("# Extra {#extra}\n"))

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		meta := testMeta()
		meta.Includes = []string{"errors", "extra.md"}
		page, err := NewRenderer(nil).Render(context.Background(), testMarkdown(t, meta, testBody), RenderOptions{BaseDir: dir})
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		errorsAt := strings.Index(page, `<h1 id="errors">Errors</h1>`)
		extraAt := strings.Index(page, `<h1 id="extra">Extra</h1>`)
		if errorsAt < 0 || extraAt < 0 || errorsAt > extraAt {
			t.Error("includes missing or out of order")
		}
		if !strings.Contains(page, `href="#errors"`) {
			t.Error("include headings should be listed in the TOC")
		}
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		meta := testMeta()
		meta.Includes = []string{"nope"}
		_, err := NewRenderer(nil).Render(context.Background(), testMarkdown(t, meta, testBody), RenderOptions{BaseDir: dir})
		if !errors.Is(err, ErrReadInclude) {
			t.Errorf("error = %v, want ErrReadInclude", err)
		}
	})
}

func TestRender_Logo(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	logo := filepath.Join(dir, "logo.png")
	writeTestFile(t, logo, pngHeader)

	t.Run("inlined with link", func(t *testing.T) {
		t.Parallel()
		page, err := NewRenderer(nil).Render(context.Background(), testBody, RenderOptions{
			Inline:  true,
			Logo:    logo,
			LogoURL: "https://example.com",
		})
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if !strings.Contains(page, `<a href="https://example.com"><img src="data:image/png;base64,`) {
			t.Error("linked logo data URI missing")
		}
	})

	t.Run("referenced", func(t *testing.T) {
		t.Parallel()
		page, err := NewRenderer(nil).Render(context.Background(), testBody, RenderOptions{Logo: "images/logo.png"})
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if !strings.Contains(page, `<img src="images/logo.png" class="logo"`) {
			t.Error("logo path missing")
		}
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		_, err := NewRenderer(nil).Render(context.Background(), testBody, RenderOptions{
			Inline: true,
			Logo:   filepath.Join(dir, "none.png"),
		})
		if !errors.Is(err, ErrReadLogo) {
			t.Errorf("error = %v, want ErrReadLogo", err)
		}
	})
}

func TestRender_Errors(t *testing.T) {
	t.Parallel()

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := NewRenderer(nil).Render(ctx, testBody, RenderOptions{}); !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})

	t.Run("unterminated front matter", func(t *testing.T) {
		t.Parallel()
		if _, err := NewRenderer(nil).Render(context.Background(), "---\ntitle: x\n", RenderOptions{}); !errors.Is(err, ErrFrontMatter) {
			t.Errorf("error = %v, want ErrFrontMatter", err)
		}
	})

	t.Run("missing layout", func(t *testing.T) {
		t.Parallel()
		if _, err := NewRenderer(failingLoader{}).Render(context.Background(), testBody, RenderOptions{}); !errors.Is(err, ErrAsset) {
			t.Errorf("error = %v, want ErrAsset", err)
		}
	})
}

func TestRender_Deterministic(t *testing.T) {
	t.Parallel()

	md := testMarkdown(t, testMeta(), testBody)
	first, err := NewRenderer(nil).Render(context.Background(), md, RenderOptions{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := NewRenderer(nil).Render(context.Background(), md, RenderOptions{})
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if again != first {
			t.Fatal("Render() output differs between runs")
		}
	}
}

type failingLoader struct{}

func (failingLoader) LoadStyle(string) (string, error)    { return "", os.ErrNotExist }
func (failingLoader) LoadTemplate(string) (string, error) { return "", os.ErrNotExist }
func (failingLoader) LoadScript(string) (string, error)   { return "", os.ErrNotExist }
func (failingLoader) LoadSample(string) (string, error)   { return "", os.ErrNotExist }
