package mdgen

import (
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// maxPropertyDepth limits how far inline objects are expanded in tables.
const maxPropertyDepth = 3

// componentName returns the schema name of a local component reference.
func componentName(ref string) string {
	for _, prefix := range []string{"#/components/schemas/", "#/definitions/"} {
		if strings.HasPrefix(ref, prefix) {
			return strings.TrimPrefix(ref, prefix)
		}
	}
	return ""
}

// typeName describes a schema for a table cell. Component schemas link to
// their section.
func (g *generator) typeName(ref *openapi3.SchemaRef) string {
	if ref == nil || ref.Value == nil {
		return "any"
	}
	if name := componentName(ref.Ref); name != "" {
		if anchor, ok := g.schemaAnchors[name]; ok {
			return link(name, "#"+anchor)
		}
		return name
	}

	s := ref.Value
	switch {
	case s.Type.Is(openapi3.TypeArray):
		return "[" + g.typeName(s.Items) + "]"
	case len(s.OneOf) > 0:
		return g.alternatives(s.OneOf)
	case len(s.AnyOf) > 0:
		return g.alternatives(s.AnyOf)
	}

	var types []string
	if s.Type != nil {
		types = *s.Type
	}
	if len(types) == 0 {
		if isObjectSchema(s) || len(s.AllOf) > 0 {
			return "object"
		}
		return "any"
	}

	name := strings.Join(types, "¦")
	if s.Format != "" {
		name += "(" + s.Format + ")"
	}
	if s.Nullable {
		name += "¦null"
	}
	return name
}

func (g *generator) alternatives(refs openapi3.SchemaRefs) string {
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		names = append(names, g.typeName(ref))
	}
	return strings.Join(names, "¦")
}

func isObjectSchema(s *openapi3.Schema) bool {
	return s.Type.Is(openapi3.TypeObject) ||
		(s.Type == nil && (len(s.Properties) > 0 || s.AdditionalProperties.Schema != nil))
}

// propertyRow is one property listed in a table. Nested properties of
// inline objects carry a "» " prefix per level.
type propertyRow struct {
	name     string
	prop     string // property name without prefix
	schema   *openapi3.SchemaRef
	required bool
}

// propertyRows lists the properties of schema, merging allOf parts, in
// name order. Inline objects and arrays of inline objects are expanded.
func (g *generator) propertyRows(schema *openapi3.Schema, depth int) []propertyRow {
	var rows []propertyRow
	g.appendPropertyRows(&rows, schema, depth, make(map[*openapi3.Schema]bool))
	return rows
}

func (g *generator) appendPropertyRows(rows *[]propertyRow, schema *openapi3.Schema, depth int, seen map[*openapi3.Schema]bool) {
	if schema == nil || seen[schema] || depth > maxPropertyDepth {
		return
	}
	seen[schema] = true
	defer delete(seen, schema)

	props, required := collectProperties(schema)
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		prop := props[name]
		if prop == nil || prop.Value == nil {
			continue
		}
		*rows = append(*rows, propertyRow{
			name:     strings.Repeat("» ", depth) + inline(name),
			prop:     name,
			schema:   prop,
			required: required[name],
		})
		if nested := inlineObject(prop); nested != nil {
			g.appendPropertyRows(rows, nested, depth+1, seen)
		}
	}
}

// collectProperties merges the properties and required lists of a schema
// and its allOf parts.
func collectProperties(schema *openapi3.Schema) (openapi3.Schemas, map[string]bool) {
	props := make(openapi3.Schemas)
	required := make(map[string]bool)
	visited := make(map[*openapi3.Schema]bool)

	var walk func(s *openapi3.Schema)
	walk = func(s *openapi3.Schema) {
		if s == nil || visited[s] {
			return
		}
		visited[s] = true
		for _, part := range s.AllOf {
			if part != nil {
				walk(part.Value)
			}
		}
		for name, prop := range s.Properties {
			props[name] = prop
		}
		for _, name := range s.Required {
			required[name] = true
		}
	}
	walk(schema)
	return props, required
}

// inlineObject returns the object schema to expand below a property: an
// inline object or the inline object items of an array.
func inlineObject(ref *openapi3.SchemaRef) *openapi3.Schema {
	if ref == nil || ref.Ref != "" || ref.Value == nil {
		return nil
	}
	s := ref.Value
	if s.Type.Is(openapi3.TypeArray) {
		return inlineObject(s.Items)
	}
	if len(s.Properties) > 0 || len(s.AllOf) > 0 {
		return s
	}
	return nil
}

func restrictions(s *openapi3.Schema) string {
	switch {
	case s.ReadOnly:
		return "read-only"
	case s.WriteOnly:
		return "write-only"
	}
	return "none"
}

// enumRows lists the allowed values of enumerated properties.
func enumRows(rows []propertyRow) [][]string {
	var out [][]string
	for _, row := range rows {
		s := row.schema.Value
		if s.Type.Is(openapi3.TypeArray) && s.Items != nil && s.Items.Value != nil {
			s = s.Items.Value
		}
		for _, v := range s.Enum {
			out = append(out, []string{inline(row.prop), formatValue(v)})
		}
	}
	return out
}
