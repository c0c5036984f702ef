package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"sync"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// GoldmarkConverter converts Markdown to an HTML fragment using goldmark.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// lexerAliases maps code sample languages without a Chroma lexer of their
// own to the lexer that highlights them.
var lexerAliases = map[string]string{
	"javascript--nodejs": "javascript",
}

var registerAliases sync.Once

// aliasLexer exposes an existing lexer under another alias.
type aliasLexer struct {
	chroma.Lexer
	config *chroma.Config
}

func (l aliasLexer) Config() *chroma.Config { return l.config }

func registerLexerAliases() {
	registerAliases.Do(func() {
		for alias, target := range lexerAliases {
			base := lexers.Get(target)
			if base == nil || lexers.Get(alias) != nil {
				continue
			}
			config := *base.Config()
			config.Name = alias
			config.Aliases = []string{alias}
			config.Filenames = nil
			config.MimeTypes = nil
			lexers.Register(aliasLexer{Lexer: base, config: &config})
		}
	})
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions,
// heading attributes and class-based syntax highlighting. Every fenced
// block is wrapped in <div class="highlight tab-LANG"> so the page script
// can switch languages. Raw HTML is only rendered when unsafe is set.
func NewGoldmarkConverter(unsafe bool) *GoldmarkConverter {
	registerLexerAliases()

	rendererOptions := []goldmark.Option{}
	if unsafe {
		rendererOptions = append(rendererOptions, goldmark.WithRendererOptions(gmhtml.WithUnsafe()))
	}

	md := goldmark.New(append([]goldmark.Option{
		goldmark.WithExtensions(
			extension.GFM, // Tables, strikethrough, autolinks, task lists
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // theme CSS is generated separately
				),
				highlighting.WithWrapperRenderer(wrapCodeBlock),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(), // ids for headings without {#id}
			parser.WithAttribute(),     // ## Title {#id}
		),
	}, rendererOptions...)...)
	return &GoldmarkConverter{md: md}
}

// wrapCodeBlock opens and closes the container around a fenced block.
// Blocks without a lexer are not highlighted and need their own pre/code.
func wrapCodeBlock(w util.BufWriter, c highlighting.CodeBlockContext, entering bool) {
	if !entering {
		if !c.Highlighted() {
			_, _ = w.WriteString("</code></pre>")
		}
		_, _ = w.WriteString("</div>\n")
		return
	}
	class := "highlight"
	if lang, ok := c.Language(); ok && len(lang) > 0 {
		class += " tab-" + html.EscapeString(string(lang))
	}
	_, _ = w.WriteString(`<div class="` + class + `">`)
	if !c.Highlighted() {
		_, _ = w.WriteString("<pre><code>")
	}
}

// ToHTML converts Markdown content to an HTML fragment.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: ConvertMarkPlaceholders(buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
