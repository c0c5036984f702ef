// Package apispec loads OpenAPI 3 and Swagger 2.0 descriptions.
//
// Loading happens in two steps. Parse decodes the bytes as structured data
// (YAML or JSON) and records the document order of paths, schemas and
// security schemes. Load upgrades Swagger 2.0 to OpenAPI 3, resolves $ref
// pointers with kin-openapi and returns a Spec ready for rendering.
package apispec

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/alnah/go-api2html/internal/yamlutil"
)

// Raw is a parsed but not yet interpreted API description.
type Raw struct {
	// Tree is the decoded document. Mapping keys are always strings.
	Tree map[string]any

	// Version is the value of the root "openapi" or "swagger" field,
	// empty when neither is present.
	Version string

	pathOrder     []string
	schemaOrder   []string
	securityOrder []string
}

// Parse decodes data as YAML (JSON is accepted) and records key order.
// Returns ErrNotMapping when the root is not a mapping (null, a sequence
// or a scalar).
func Parse(data []byte) (*Raw, error) {
	var root any
	if err := yamlutil.UnmarshalDocument(data, &root); err != nil {
		return nil, err
	}
	tree, ok := root.(map[string]any)
	if !ok {
		return nil, ErrNotMapping
	}

	raw := &Raw{Tree: tree, Version: detectVersion(tree)}

	schemaPath, securityPath := []string{"components", "schemas"}, []string{"components", "securitySchemes"}
	if raw.IsSwagger() {
		schemaPath, securityPath = []string{"definitions"}, []string{"securityDefinitions"}
	}

	var err error
	if raw.pathOrder, err = keyOrder(data, "paths"); err != nil {
		return nil, err
	}
	if raw.schemaOrder, err = keyOrder(data, schemaPath...); err != nil {
		return nil, err
	}
	if raw.securityOrder, err = keyOrder(data, securityPath...); err != nil {
		return nil, err
	}

	return raw, nil
}

// keyOrder reads the key order of a mapping. A value of the wrong shape
// yields no order; kin-openapi reports it later with a better message.
func keyOrder(data []byte, path ...string) ([]string, error) {
	keys, err := yamlutil.MappingKeys(data, path...)
	if errors.Is(err, yamlutil.ErrNotMapping) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s order: %w", strings.Join(path, "."), err)
	}
	return keys, nil
}

// IsSwagger reports whether the document declares Swagger 2.0.
func (r *Raw) IsSwagger() bool {
	return r.Version == "2.0"
}

// IsOpenAPI3 reports whether the document declares an OpenAPI 3.x version.
func (r *Raw) IsOpenAPI3() bool {
	return strings.HasPrefix(r.Version, "3.")
}

// Title returns info.title, or an empty string.
func (r *Raw) Title() string {
	info, _ := r.Tree["info"].(map[string]any)
	title, _ := info["title"].(string)
	return title
}

// detectVersion reads the version marker at the root of the document.
// Unquoted YAML numbers (swagger: 2.0) decode as floats and are normalized.
func detectVersion(tree map[string]any) string {
	for _, key := range []string{"swagger", "openapi"} {
		switch v := tree[key].(type) {
		case string:
			return v
		case float64:
			s := strconv.FormatFloat(v, 'f', -1, 64)
			if !strings.Contains(s, ".") {
				s += ".0"
			}
			return s
		case uint64, int64, int:
			return fmt.Sprintf("%v.0", v)
		}
	}
	return ""
}

// externalRefs returns every $ref value that points outside the document,
// sorted and deduplicated.
func externalRefs(tree any) []string {
	seen := make(map[string]bool)
	var walk func(v any)
	walk = func(v any) {
		switch node := v.(type) {
		case map[string]any:
			if ref, ok := node["$ref"].(string); ok && ref != "" && !strings.HasPrefix(ref, "#") {
				seen[ref] = true
			}
			for _, child := range node {
				walk(child)
			}
		case []any:
			for _, child := range node {
				walk(child)
			}
		}
	}
	walk(tree)

	refs := make([]string, 0, len(seen))
	for ref := range seen {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	return refs
}

// ordered returns the keys of m, first in the given order, then any key
// missing from order in sorted order.
func ordered[V any](order []string, m map[string]V) []string {
	keys := make([]string, 0, len(m))
	used := make(map[string]bool, len(m))
	for _, k := range order {
		if _, ok := m[k]; ok && !used[k] {
			keys = append(keys, k)
			used[k] = true
		}
	}

	var rest []string
	for k := range m {
		if !used[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}
