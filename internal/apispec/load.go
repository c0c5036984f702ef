package apispec

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/alnah/go-api2html/internal/fileutil"
)

// LoadOptions controls reference resolution.
type LoadOptions struct {
	// Resolve allows $ref pointers to other files or URLs.
	Resolve bool

	// Source is the location relative references are resolved against:
	// a URL or a filesystem path. Only used when Resolve is set.
	Source string
}

// Spec is a loaded OpenAPI 3 document plus the key order of its source.
type Spec struct {
	Doc *openapi3.T

	// SourceVersion is the version declared by the input ("2.0", "3.0.3", ...).
	SourceVersion string

	pathOrder     []string
	schemaOrder   []string
	securityOrder []string
}

// methodOrder is the order operations appear within a path item.
var methodOrder = []string{"GET", "PUT", "POST", "DELETE", "OPTIONS", "HEAD", "PATCH", "TRACE"}

// Load interprets raw as OpenAPI 3, upgrading Swagger 2.0 documents and
// resolving references. External references fail with ErrExternalRef
// unless opts.Resolve is set.
func Load(ctx context.Context, raw *Raw, opts LoadOptions) (*Spec, error) {
	if raw == nil || raw.Tree == nil {
		return nil, ErrNotMapping
	}

	switch {
	case raw.Version == "":
		return nil, ErrMissingVersion
	case !raw.IsSwagger() && !raw.IsOpenAPI3():
		return nil, fmt.Errorf("%w: %s (only 2.0 and 3.x are supported)", ErrUnsupportedVersion, raw.Version)
	}

	if !opts.Resolve {
		if refs := externalRefs(raw.Tree); len(refs) > 0 {
			return nil, fmt.Errorf("%w: %s", ErrExternalRef, refs[0])
		}
	}

	data, err := json.Marshal(raw.Tree)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}

	location, err := sourceLocation(opts)
	if err != nil {
		return nil, err
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	loader.IsExternalRefsAllowed = opts.Resolve

	var doc *openapi3.T
	if raw.IsSwagger() {
		doc, err = loadSwagger(loader, data, location)
	} else if location != nil {
		doc, err = loader.LoadFromDataWithPath(data, location)
	} else {
		doc, err = loader.LoadFromData(data)
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}

	return &Spec{
		Doc:           doc,
		SourceVersion: raw.Version,
		pathOrder:     raw.pathOrder,
		schemaOrder:   raw.schemaOrder,
		securityOrder: raw.securityOrder,
	}, nil
}

func loadSwagger(loader *openapi3.Loader, data []byte, location *url.URL) (*openapi3.T, error) {
	var doc2 openapi2.T
	if err := json.Unmarshal(data, &doc2); err != nil {
		return nil, fmt.Errorf("decoding swagger 2.0: %w", err)
	}
	doc, err := openapi2conv.ToV3(&doc2)
	if err != nil {
		return nil, fmt.Errorf("converting swagger 2.0: %w", err)
	}
	if err := loader.ResolveRefsIn(doc, location); err != nil {
		return nil, fmt.Errorf("resolving references: %w", err)
	}
	return doc, nil
}

// sourceLocation turns the resolve source into the base URL kin-openapi
// resolves relative references against.
func sourceLocation(opts LoadOptions) (*url.URL, error) {
	if !opts.Resolve || opts.Source == "" {
		return nil, nil
	}
	if fileutil.IsURL(opts.Source) {
		u, err := url.Parse(opts.Source)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid resolve source %q: %v", ErrLoad, opts.Source, err)
		}
		return u, nil
	}
	abs, err := filepath.Abs(opts.Source)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid resolve source %q: %v", ErrLoad, opts.Source, err)
	}
	return &url.URL{Path: filepath.ToSlash(abs)}, nil
}

// Title returns info.title, falling back to "API".
func (s *Spec) Title() string {
	if s.Doc.Info != nil && strings.TrimSpace(s.Doc.Info.Title) != "" {
		return s.Doc.Info.Title
	}
	return "API"
}

// Paths returns path templates in document order.
func (s *Spec) Paths() []string {
	if s.Doc.Paths == nil {
		return nil
	}
	return ordered(s.pathOrder, s.Doc.Paths.Map())
}

// SchemaNames returns component schema names in document order.
func (s *Spec) SchemaNames() []string {
	if s.Doc.Components == nil {
		return nil
	}
	return ordered(s.schemaOrder, s.Doc.Components.Schemas)
}

// SecuritySchemeNames returns security scheme names in document order.
func (s *Spec) SecuritySchemeNames() []string {
	if s.Doc.Components == nil {
		return nil
	}
	return ordered(s.securityOrder, s.Doc.Components.SecuritySchemes)
}

// Operation is one method on one path.
type Operation struct {
	Path   string
	Method string // upper case
	Item   *openapi3.PathItem
	Op     *openapi3.Operation
}

// Operations returns every operation, by path in document order, then by
// method in the conventional GET, PUT, POST, DELETE... order.
func (s *Spec) Operations() []Operation {
	var ops []Operation
	for _, path := range s.Paths() {
		item := s.Doc.Paths.Value(path)
		if item == nil {
			continue
		}
		for _, method := range methodOrder {
			if op := item.GetOperation(method); op != nil {
				ops = append(ops, Operation{Path: path, Method: method, Item: item, Op: op})
			}
		}
	}
	return ops
}

// Parameters merges path-level and operation-level parameters. Operation
// parameters override path parameters with the same name and location.
func (o Operation) Parameters() []*openapi3.Parameter {
	type key struct{ name, in string }
	var params []*openapi3.Parameter
	index := make(map[key]int)

	add := func(refs openapi3.Parameters) {
		for _, ref := range refs {
			if ref == nil || ref.Value == nil {
				continue
			}
			k := key{ref.Value.Name, ref.Value.In}
			if i, ok := index[k]; ok {
				params[i] = ref.Value
				continue
			}
			index[k] = len(params)
			params = append(params, ref.Value)
		}
	}
	if o.Item != nil {
		add(o.Item.Parameters)
	}
	add(o.Op.Parameters)
	return params
}
