package mdgen

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"
	"text/template"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/alnah/go-api2html/internal/apispec"
)

// SampleData is the value code sample templates are executed with.
type SampleData struct {
	Method  string // upper case
	URL     string // base URL, path and required query parameters
	Host    string
	Headers []Header
	Body    string // request example, empty without a request body
}

// Header is one request header in a code sample.
type Header struct {
	Name  string
	Value string
}

var sampleFuncs = template.FuncMap{
	"lower": strings.ToLower,
	"upper": strings.ToUpper,
	"indent": func(n int, s string) string {
		pad := strings.Repeat(" ", n)
		return strings.ReplaceAll(s, "\n", "\n"+pad)
	},
}

func loadSampleTemplates(loader SampleLoader, tabs []LanguageTab) (map[string]*template.Template, error) {
	samples := make(map[string]*template.Template, len(tabs))
	for _, tab := range tabs {
		src, err := loader.LoadSample(tab.Key)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrSampleTemplate, tab.Key, err)
		}
		tmpl, err := template.New(tab.Key).Funcs(sampleFuncs).Parse(src)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrSampleTemplate, tab.Key, err)
		}
		samples[tab.Key] = tmpl
	}
	return samples, nil
}

func (g *generator) writeCodeSamples(data SampleData) error {
	if len(g.samples) == 0 {
		return nil
	}
	g.paragraph("> Code samples")
	for _, tab := range g.opts.LanguageTabs {
		tmpl, ok := g.samples[tab.Key]
		if !ok {
			continue
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrSampleTemplate, tab.Key, err)
		}
		g.fence(tab.Key, strings.Trim(buf.String(), "\n"))
	}
	return nil
}

// sampleData builds the request shown in code samples.
func (g *generator) sampleData(op operationView) SampleData {
	data := SampleData{
		Method: op.Method,
		URL:    g.baseURL + op.Path,
		Body:   op.sampleBody,
	}
	if u, err := url.Parse(g.baseURL); err == nil {
		data.Host = u.Host
	}

	var query []string
	for _, p := range op.params {
		if p.In == openapi3.ParameterInQuery && p.Required {
			query = append(query, p.Name+"="+formatValue(parameterSample(p)))
		}
	}
	if len(query) > 0 {
		data.URL += "?" + strings.Join(query, "&")
	}

	seen := make(map[string]bool)
	add := func(name, value string) {
		key := strings.ToLower(name)
		if seen[key] {
			return
		}
		seen[key] = true
		data.Headers = append(data.Headers, Header{Name: name, Value: value})
	}

	if op.requestMedia != "" {
		add("Content-Type", op.requestMedia)
	}
	if op.responseMedia != "" {
		add("Accept", op.responseMedia)
	}
	for _, p := range op.params {
		if p.In == openapi3.ParameterInHeader && p.Required {
			add(p.Name, formatValue(parameterSample(p)))
		}
	}
	for _, h := range g.authHeaders(op.security) {
		add(h.Name, h.Value)
	}
	return data
}

// parameterSample is an example value for a parameter.
func parameterSample(p *openapi3.Parameter) any {
	if p.Example != nil {
		return p.Example
	}
	if p.Schema != nil {
		return apispec.Sample(p.Schema, apispec.SampleOptions{SkipReadOnly: true})
	}
	for _, mt := range p.Content {
		if mt != nil && mt.Schema != nil {
			return apispec.Sample(mt.Schema, apispec.SampleOptions{SkipReadOnly: true})
		}
	}
	return "string"
}

// authHeaders returns the headers for the first non-empty security
// requirement.
func (g *generator) authHeaders(reqs openapi3.SecurityRequirements) []Header {
	if g.doc.Components == nil {
		return nil
	}
	for _, req := range reqs {
		if len(req) == 0 {
			continue
		}
		var headers []Header
		for _, name := range sortedKeys(req) {
			ref := g.doc.Components.SecuritySchemes[name]
			if ref == nil || ref.Value == nil {
				continue
			}
			scheme := ref.Value
			switch scheme.Type {
			case "apiKey":
				if scheme.In == "header" {
					headers = append(headers, Header{Name: scheme.Name, Value: "API_KEY"})
				}
			case "http":
				if strings.EqualFold(scheme.Scheme, "basic") {
					headers = append(headers, Header{Name: "Authorization", Value: "Basic {credentials}"})
				} else {
					headers = append(headers, Header{Name: "Authorization", Value: "Bearer {access-token}"})
				}
			case "oauth2", "openIdConnect":
				headers = append(headers, Header{Name: "Authorization", Value: "Bearer {access-token}"})
			}
		}
		return headers
	}
	return nil
}
