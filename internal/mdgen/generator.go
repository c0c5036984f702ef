package mdgen

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"text/template"

	htmltomd "github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/getkin/kin-openapi/openapi3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/alnah/go-api2html/internal/apispec"
	"github.com/alnah/go-api2html/internal/assets"
	"github.com/alnah/go-api2html/internal/frontmatter"
)

// DefaultHeadingLevel is the deepest heading level listed in the TOC.
const DefaultHeadingLevel = 2

// LanguageTab is one code sample language shown as a tab.
type LanguageTab struct {
	Key   string // fence language and sample template name
	Label string
}

// SampleLoader provides the code sample template for a language key.
// assets.AssetLoader satisfies it.
type SampleLoader interface {
	LoadSample(language string) (string, error)
}

// Options controls what the generated page contains.
type Options struct {
	LanguageTabs []LanguageTab
	CodeSamples  bool
	Theme        string
	Search       bool
	TOCSummary   bool // operation summaries instead of ids as headings
	HeadingLevel int  // 0 = DefaultHeadingLevel
	OmitBody     bool // no synthetic "body" row in parameter tables
	Sample       bool // example values; false shows raw schemas
	Includes     []string
	Samples      SampleLoader // nil = embedded templates
}

// Generate writes the Markdown page for spec.
func Generate(ctx context.Context, spec *apispec.Spec, opts Options) (string, error) {
	if spec == nil || spec.Doc == nil {
		return "", ErrNilSpec
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	g, err := newGenerator(spec, opts)
	if err != nil {
		return "", err
	}

	if err := g.writeFrontMatter(); err != nil {
		return "", err
	}
	g.writeIntro()
	g.writeAuthentication()
	if err := g.writeOperations(ctx); err != nil {
		return "", err
	}
	if err := g.writeSchemas(ctx); err != nil {
		return "", err
	}

	return strings.TrimRight(g.b.String(), "\n") + "\n", nil
}

// generator holds the state of one Generate call.
type generator struct {
	spec *apispec.Spec
	doc  *openapi3.T
	opts Options

	b             strings.Builder
	ids           map[string]bool
	schemaAnchors map[string]string
	samples       map[string]*template.Template
	baseURL       string

	html  *htmltomd.Converter
	title cases.Caser
}

func newGenerator(spec *apispec.Spec, opts Options) (*generator, error) {
	if opts.HeadingLevel <= 0 {
		opts.HeadingLevel = DefaultHeadingLevel
	}

	g := &generator{
		spec:          spec,
		doc:           spec.Doc,
		opts:          opts,
		ids:           make(map[string]bool),
		schemaAnchors: make(map[string]string),
		html:          newHTMLConverter(),
		title:         cases.Title(language.English),
		baseURL:       baseURL(spec.Doc.Servers),
	}

	// Schema anchors are linked from operations before the schema
	// section is written, so they are reserved first.
	for _, name := range spec.SchemaNames() {
		g.schemaAnchors[name] = g.uniqueID("schema" + slug(name))
	}

	if opts.CodeSamples {
		loader := opts.Samples
		if loader == nil {
			loader = assets.NewEmbeddedLoader()
		}
		samples, err := loadSampleTemplates(loader, opts.LanguageTabs)
		if err != nil {
			return nil, err
		}
		g.samples = samples
	}

	return g, nil
}

// ---------------------------------------------------------------------------
// Output helpers
// ---------------------------------------------------------------------------

func (g *generator) line(s string) {
	g.b.WriteString(s)
	g.b.WriteByte('\n')
}

func (g *generator) linef(format string, args ...any) {
	fmt.Fprintf(&g.b, format, args...)
	g.b.WriteByte('\n')
}

func (g *generator) blank() {
	g.b.WriteByte('\n')
}

// paragraph writes text followed by a blank line; empty text writes nothing.
func (g *generator) paragraph(text string) {
	if text == "" {
		return
	}
	g.line(text)
	g.blank()
}

func (g *generator) heading(level int, text, id string) {
	g.linef("%s %s {#%s}", strings.Repeat("#", level), text, id)
	g.blank()
}

func (g *generator) fence(lang, body string) {
	marker := "```"
	for strings.Contains(body, marker) {
		marker += "`"
	}
	g.line(marker + lang)
	g.line(body)
	g.line(marker)
	g.blank()
}

func (g *generator) table(header []string, rows [][]string) {
	g.line("|" + strings.Join(header, "|") + "|")
	g.line("|" + strings.Repeat("---|", len(header)))
	for _, row := range rows {
		g.line("|" + strings.Join(row, "|") + "|")
	}
	g.blank()
}

// ---------------------------------------------------------------------------
// Front matter and introduction
// ---------------------------------------------------------------------------

func (g *generator) pageTitle() string {
	title := g.spec.Title()
	if g.doc.Info != nil && g.doc.Info.Version != "" {
		title += " v" + g.doc.Info.Version
	}
	return title
}

func (g *generator) writeFrontMatter() error {
	meta := frontmatter.Meta{
		Title:          g.pageTitle(),
		Includes:       g.opts.Includes,
		Search:         g.opts.Search,
		HighlightTheme: g.opts.Theme,
		HeadingLevel:   g.opts.HeadingLevel,
	}
	for _, tab := range g.opts.LanguageTabs {
		meta.LanguageTabs = append(meta.LanguageTabs, map[string]string{tab.Key: tab.Label})
	}
	if docs := g.doc.ExternalDocs; docs != nil && docs.URL != "" {
		text := strings.TrimSpace(docs.Description)
		if text == "" {
			text = "Find out more"
		}
		meta.TocFooters = append(meta.TocFooters, link(text, docs.URL))
	}

	header, err := frontmatter.Render(meta)
	if err != nil {
		return err
	}
	g.b.WriteString(header)
	return nil
}

func (g *generator) writeIntro() {
	g.heading(1, g.pageTitle(), g.uniqueID(slug(g.spec.Title())))

	if g.opts.CodeSamples && len(g.opts.LanguageTabs) > 0 {
		g.paragraph("> Scroll down for code samples, example requests and responses. " +
			"Select a language for code samples from the tabs above or the mobile navigation menu.")
	}

	info := g.doc.Info
	if info != nil {
		g.paragraph(g.markdown(info.Description))
	}

	g.writeServers()

	if info == nil {
		return
	}
	if info.TermsOfService != "" {
		g.paragraph(link("Terms of service", info.TermsOfService))
	}
	if c := info.Contact; c != nil {
		var parts []string
		if c.Email != "" {
			parts = append(parts, "Email: "+link(orDefault(c.Name, "Support"), "mailto:"+c.Email))
		}
		if c.URL != "" {
			parts = append(parts, "Web: "+link(orDefault(c.Name, "Support"), c.URL))
		}
		g.paragraph(strings.Join(parts, " "))
	}
	if l := info.License; l != nil && l.Name != "" {
		if l.URL != "" {
			g.paragraph("License: " + link(l.Name, l.URL))
		} else {
			g.paragraph("License: " + l.Name)
		}
	}
}

func (g *generator) writeServers() {
	if len(g.doc.Servers) == 0 {
		return
	}
	g.paragraph("Base URLs:")
	for _, server := range g.doc.Servers {
		if server == nil {
			continue
		}
		item := "* " + link(server.URL, server.URL)
		if desc := strings.TrimSpace(server.Description); desc != "" {
			item += " " + desc
		}
		g.line(item)

		names := make([]string, 0, len(server.Variables))
		for name := range server.Variables {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			v := server.Variables[name]
			if v == nil {
				continue
			}
			entry := "    * **" + name + "** - " + inline(v.Description)
			if v.Default != "" {
				entry += " Default: " + v.Default
			}
			g.line(strings.TrimRight(entry, " "))
			for _, value := range v.Enum {
				g.line("        * " + value)
			}
		}
	}
	g.blank()
}

// baseURL is the first server URL with its variables set to their defaults.
func baseURL(servers openapi3.Servers) string {
	for _, server := range servers {
		if server == nil {
			continue
		}
		u := server.URL
		for name, v := range server.Variables {
			if v != nil {
				u = strings.ReplaceAll(u, "{"+name+"}", v.Default)
			}
		}
		return strings.TrimSuffix(u, "/")
	}
	return ""
}

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

// tagGroup is one top-level section of operations.
type tagGroup struct {
	name        string
	description string
	ops         []apispec.Operation
}

// groups sorts operations under their first tag. Declared tags come first
// in declaration order, then undeclared tags in order of first use.
// Untagged operations go to "Default".
func (g *generator) groups() []*tagGroup {
	var groups []*tagGroup
	index := make(map[string]*tagGroup)
	add := func(name, description string) *tagGroup {
		if grp, ok := index[name]; ok {
			return grp
		}
		grp := &tagGroup{name: name, description: description}
		index[name] = grp
		groups = append(groups, grp)
		return grp
	}

	for _, tag := range g.doc.Tags {
		if tag != nil && tag.Name != "" {
			add(tag.Name, tag.Description)
		}
	}
	for _, op := range g.spec.Operations() {
		name := "Default"
		if len(op.Op.Tags) > 0 && op.Op.Tags[0] != "" {
			name = op.Op.Tags[0]
		}
		grp := add(name, "")
		grp.ops = append(grp.ops, op)
	}

	used := groups[:0]
	for _, grp := range groups {
		if len(grp.ops) > 0 {
			used = append(used, grp)
		}
	}
	return used
}

func (g *generator) writeOperations(ctx context.Context) error {
	for _, grp := range g.groups() {
		g.heading(1, grp.name, g.uniqueID(slug(grp.name)))
		g.paragraph(g.markdown(grp.description))

		for _, op := range grp.ops {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := g.writeOperation(op); err != nil {
				return fmt.Errorf("%s %s: %w", op.Method, op.Path, err)
			}
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Schemas
// ---------------------------------------------------------------------------

func (g *generator) writeSchemas(ctx context.Context) error {
	names := g.spec.SchemaNames()
	if len(names) == 0 {
		return nil
	}

	g.heading(1, "Schemas", g.uniqueID("schemas"))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		ref := g.doc.Components.Schemas[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		if err := g.writeSchema(name, ref); err != nil {
			return fmt.Errorf("schema %s: %w", name, err)
		}
	}
	return nil
}

func (g *generator) writeSchema(name string, ref *openapi3.SchemaRef) error {
	anchor := g.schemaAnchors[name]
	g.heading(2, name, anchor)

	var value any = ref.Value
	if g.opts.Sample {
		value = apispec.Sample(ref, apispec.SampleOptions{})
	}
	body, err := prettyJSON(value)
	if err != nil {
		return err
	}
	g.fence("json", body)

	schema := ref.Value
	g.paragraph(g.markdown(schema.Description))

	rows := g.propertyRows(schema, 0)
	if len(rows) == 0 {
		g.paragraph("*" + g.typeName(ref) + "*")
	} else {
		g.heading(3, "Properties", g.uniqueID(anchor+"-properties"))
		cells := make([][]string, 0, len(rows))
		for _, row := range rows {
			cells = append(cells, []string{
				row.name,
				g.typeName(row.schema),
				fmt.Sprint(row.required),
				restrictions(row.schema.Value),
				g.cell(row.schema.Value.Description),
			})
		}
		g.table([]string{"Name", "Type", "Required", "Restrictions", "Description"}, cells)
	}

	enums := enumRows(rows)
	if len(schema.Enum) > 0 {
		for _, v := range schema.Enum {
			enums = append(enums, []string{"*anonymous*", formatValue(v)})
		}
	}
	if len(enums) > 0 {
		g.heading(4, "Enumerated Values", g.uniqueID(anchor+"-enumerated-values"))
		g.table([]string{"Property", "Value"}, enums)
	}
	return nil
}
