package mdgen

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/alnah/go-api2html/internal/apispec"
)

// operationView is an operation with the values derived once and shared by
// its sub-sections.
type operationView struct {
	apispec.Operation

	id       string
	params   []*openapi3.Parameter
	security openapi3.SecurityRequirements

	requestMedia  string
	requestSchema *openapi3.SchemaRef
	requestBody   *openapi3.RequestBody
	bodyExample   string // shown under "Body parameter"
	sampleBody    string // used in code samples
	responseMedia string
}

func (g *generator) operationTitle(op apispec.Operation) string {
	switch {
	case g.opts.TOCSummary && op.Op.Summary != "":
		return op.Op.Summary
	case op.Op.OperationID != "":
		return op.Op.OperationID
	case op.Op.Summary != "":
		return op.Op.Summary
	}
	return op.Method + " " + op.Path
}

func (g *generator) newOperationView(op apispec.Operation) (operationView, error) {
	view := operationView{
		Operation: op,
		params:    op.Parameters(),
		security:  g.doc.Security,
	}
	if op.Op.Security != nil {
		view.security = *op.Op.Security
	}

	idBase := op.Op.OperationID
	if idBase == "" {
		idBase = op.Method + " " + op.Path
	}
	view.id = g.uniqueID(slug(idBase))

	if rb := op.Op.RequestBody; rb != nil && rb.Value != nil {
		view.requestBody = rb.Value
		view.requestMedia = preferredMedia(rb.Value.Content)
		if mt := rb.Value.Content[view.requestMedia]; mt != nil {
			view.requestSchema = mt.Schema

			example, err := g.mediaExample(view.requestMedia, mt, true, g.opts.Sample)
			if err != nil {
				return view, err
			}
			view.bodyExample = example

			sample, err := g.mediaExample(view.requestMedia, mt, true, true)
			if err != nil {
				return view, err
			}
			view.sampleBody = sample
		}
	}

	for _, code := range statusCodes(op.Op.Responses) {
		if !strings.HasPrefix(code, "2") {
			continue
		}
		if resp := op.Op.Responses.Value(code); resp != nil && resp.Value != nil {
			if media := preferredMedia(resp.Value.Content); media != "" {
				view.responseMedia = media
				break
			}
		}
	}

	return view, nil
}

func (g *generator) writeOperation(op apispec.Operation) error {
	view, err := g.newOperationView(op)
	if err != nil {
		return err
	}

	g.heading(2, g.operationTitle(op), view.id)

	if g.opts.CodeSamples {
		if err := g.writeCodeSamples(g.sampleData(view)); err != nil {
			return err
		}
	}

	g.paragraph("`" + op.Method + " " + op.Path + "`")
	if op.Op.Deprecated {
		g.paragraph("**This operation is deprecated.**")
	}
	if summary := strings.TrimSpace(op.Op.Summary); summary != "" && summary != g.operationTitle(op) {
		g.paragraph("*" + summary + "*")
	}
	g.paragraph(g.markdown(op.Op.Description))

	if view.bodyExample != "" {
		g.paragraph("> Body parameter")
		g.fence(fenceLanguage(view.requestMedia), view.bodyExample)
	}

	g.writeParameters(view)
	if err := g.writeResponses(view); err != nil {
		return err
	}
	g.writeOperationSecurity(view)
	return nil
}

// ---------------------------------------------------------------------------
// Parameters
// ---------------------------------------------------------------------------

func (g *generator) writeParameters(view operationView) {
	var rows, enums [][]string

	for _, p := range view.params {
		schema := p.Schema
		if schema == nil {
			for _, media := range sortedKeys(p.Content) {
				if mt := p.Content[media]; mt != nil && mt.Schema != nil {
					schema = mt.Schema
					break
				}
			}
		}
		rows = append(rows, []string{
			inline(p.Name),
			p.In,
			g.typeName(schema),
			strconv.FormatBool(p.Required),
			g.cell(p.Description),
		})
		if schema != nil && schema.Value != nil {
			s := schema.Value
			if s.Type.Is(openapi3.TypeArray) && s.Items != nil && s.Items.Value != nil {
				s = s.Items.Value
			}
			for _, v := range s.Enum {
				enums = append(enums, []string{inline(p.Name), formatValue(v)})
			}
		}
	}

	if view.requestBody != nil {
		depth := 0
		if !g.opts.OmitBody {
			rows = append(rows, []string{
				"body",
				"body",
				g.typeName(view.requestSchema),
				strconv.FormatBool(view.requestBody.Required),
				g.cell(view.requestBody.Description),
			})
			depth = 1
		}
		if view.requestSchema != nil && view.requestSchema.Value != nil {
			props := g.propertyRows(view.requestSchema.Value, depth)
			for _, row := range props {
				rows = append(rows, []string{
					row.name,
					"body",
					g.typeName(row.schema),
					strconv.FormatBool(row.required),
					g.cell(row.schema.Value.Description),
				})
			}
			enums = append(enums, enumRows(props)...)
		}
	}

	if len(rows) == 0 {
		return
	}
	g.heading(3, "Parameters", g.uniqueID(view.id+"-parameters"))
	g.table([]string{"Name", "In", "Type", "Required", "Description"}, rows)

	if len(enums) > 0 {
		g.heading(4, "Enumerated Values", g.uniqueID(view.id+"-parameters-enum"))
		g.table([]string{"Parameter", "Value"}, enums)
	}
}

// ---------------------------------------------------------------------------
// Responses
// ---------------------------------------------------------------------------

// rfcSections links status codes to the RFC 7231 section defining them.
var rfcSections = map[int]string{
	100: "6.2.1", 101: "6.2.2",
	200: "6.3.1", 201: "6.3.2", 202: "6.3.3", 203: "6.3.4", 204: "6.3.5", 205: "6.3.6",
	300: "6.4.1", 301: "6.4.2", 302: "6.4.3", 303: "6.4.4", 305: "6.4.5", 307: "6.4.7",
	400: "6.5.1", 402: "6.5.2", 403: "6.5.3", 404: "6.5.4", 405: "6.5.5", 406: "6.5.6",
	408: "6.5.7", 409: "6.5.8", 410: "6.5.9", 411: "6.5.10", 413: "6.5.11", 414: "6.5.12",
	415: "6.5.13", 417: "6.5.14", 426: "6.5.15",
	500: "6.6.1", 501: "6.6.2", 502: "6.6.3", 503: "6.6.4", 504: "6.6.5", 505: "6.6.6",
}

// statusMeaning is the "Meaning" cell of a response row.
func statusMeaning(code string) string {
	if code == "default" {
		return "Default"
	}
	n, err := strconv.Atoi(code)
	if err != nil {
		return code
	}
	text := http.StatusText(n)
	if text == "" {
		return "Unknown"
	}
	if section, ok := rfcSections[n]; ok {
		return link(text, "https://tools.ietf.org/html/rfc7231#section-"+section)
	}
	return text
}

// statusCodes returns response keys in ascending order, "default" last.
func statusCodes(responses *openapi3.Responses) []string {
	if responses == nil {
		return nil
	}
	codes := sortedKeys(responses.Map())
	sort.SliceStable(codes, func(i, j int) bool {
		return codes[i] != "default" && codes[j] == "default"
	})
	return codes
}

func (g *generator) writeResponses(view operationView) error {
	responses := view.Op.Responses
	codes := statusCodes(responses)
	if len(codes) == 0 {
		return nil
	}

	type inlineSchema struct {
		code   string
		schema *openapi3.Schema
	}
	var (
		examples     [][2]string // code, rendered block
		rows         [][]string
		headers      [][]string
		inlineShapes []inlineSchema
	)

	for _, code := range codes {
		ref := responses.Value(code)
		if ref == nil || ref.Value == nil {
			continue
		}
		resp := ref.Value

		media := preferredMedia(resp.Content)
		var schema *openapi3.SchemaRef
		if mt := resp.Content[media]; mt != nil {
			schema = mt.Schema
			example, err := g.mediaExample(media, mt, false, g.opts.Sample)
			if err != nil {
				return err
			}
			if example != "" {
				examples = append(examples, [2]string{code, example})
			}
		}

		description := ""
		if resp.Description != nil {
			description = *resp.Description
		}
		schemaCell := "None"
		if schema != nil {
			schemaCell = g.typeName(schema)
			if nested := inlineObject(schema); nested != nil {
				schemaCell = "Inline"
				inlineShapes = append(inlineShapes, inlineSchema{code: code, schema: nested})
			}
		}
		rows = append(rows, []string{code, statusMeaning(code), g.cell(description), schemaCell})

		for _, name := range sortedKeys(resp.Headers) {
			h := resp.Headers[name]
			if h == nil || h.Value == nil {
				continue
			}
			typ, format := "string", ""
			if s := h.Value.Schema; s != nil && s.Value != nil {
				typ = g.typeName(s)
				if s.Ref == "" && s.Value.Format != "" {
					typ = strings.TrimSuffix(typ, "("+s.Value.Format+")")
					format = s.Value.Format
				}
			}
			headers = append(headers, []string{code, inline(name), typ, format, g.cell(h.Value.Description)})
		}
	}

	if len(examples) > 0 {
		g.paragraph("> Example responses")
		for _, ex := range examples {
			g.paragraph("> " + ex[0] + " Response")
			g.fence(fenceLanguage(preferredMedia(responses.Value(ex[0]).Value.Content)), ex[1])
		}
	}

	g.heading(3, "Responses", g.uniqueID(view.id+"-responses"))
	g.table([]string{"Status", "Meaning", "Description", "Schema"}, rows)

	if len(inlineShapes) > 0 {
		g.heading(3, "Response Schema", g.uniqueID(view.id+"-responseschema"))
		for _, shape := range inlineShapes {
			g.paragraph("Status Code **" + shape.code + "**")
			cells := make([][]string, 0)
			for _, row := range g.propertyRows(shape.schema, 0) {
				cells = append(cells, []string{
					row.name,
					g.typeName(row.schema),
					strconv.FormatBool(row.required),
					restrictions(row.schema.Value),
					g.cell(row.schema.Value.Description),
				})
			}
			g.table([]string{"Name", "Type", "Required", "Restrictions", "Description"}, cells)
		}
	}

	if len(headers) > 0 {
		g.heading(3, "Response Headers", g.uniqueID(view.id+"-responseheaders"))
		g.table([]string{"Status", "Header", "Type", "Format", "Description"}, headers)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Examples
// ---------------------------------------------------------------------------

// preferredMedia picks application/json when offered, otherwise the first
// media type in name order.
func preferredMedia(content openapi3.Content) string {
	if len(content) == 0 {
		return ""
	}
	if _, ok := content["application/json"]; ok {
		return "application/json"
	}
	return sortedKeys(content)[0]
}

func isJSONMedia(media string) bool {
	return strings.Contains(media, "json") || media == "*/*"
}

func fenceLanguage(media string) string {
	switch {
	case isJSONMedia(media):
		return "json"
	case strings.Contains(media, "xml"):
		return "xml"
	case strings.Contains(media, "yaml"):
		return "yaml"
	}
	return ""
}

// mediaExample renders the example for a media type. With sample set the
// explicit example wins, then named examples, then a generated value;
// otherwise the raw schema is shown.
func (g *generator) mediaExample(media string, mt *openapi3.MediaType, request, sample bool) (string, error) {
	value, ok := g.exampleValue(mt, request, sample)
	if !ok {
		return "", nil
	}
	if s, isString := value.(string); isString && !isJSONMedia(media) {
		return s, nil
	}
	return prettyJSON(value)
}

func (g *generator) exampleValue(mt *openapi3.MediaType, request, sample bool) (any, bool) {
	if !sample && mt.Schema != nil && mt.Schema.Value != nil {
		return mt.Schema.Value, true
	}
	if mt.Example != nil {
		return mt.Example, true
	}
	for _, name := range sortedKeys(mt.Examples) {
		if ex := mt.Examples[name]; ex != nil && ex.Value != nil && ex.Value.Value != nil {
			return ex.Value.Value, true
		}
	}
	if mt.Schema == nil || mt.Schema.Value == nil {
		return nil, false
	}
	return apispec.Sample(mt.Schema, apispec.SampleOptions{
		SkipReadOnly:  request,
		SkipWriteOnly: !request,
	}), true
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
