package apispec

import (
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
)

// SampleOptions controls which properties appear in generated examples.
type SampleOptions struct {
	SkipReadOnly  bool // request bodies
	SkipWriteOnly bool // responses
}

// formatSamples are the values used for string formats without an example.
var formatSamples = map[string]string{
	"date-time": "2019-08-24T14:15:22Z",
	"date":      "2019-08-24",
	"time":      "14:15:22Z",
	"email":     "user@example.com",
	"uri":       "http://example.com",
	"url":       "http://example.com",
	"hostname":  "example.com",
	"ipv4":      "192.168.0.1",
	"ipv6":      "2001:db8::1",
	"uuid":      "497f6eca-6276-4993-bfeb-53cbbbba6f08",
	"password":  "pa$$word",
	"byte":      "string",
	"binary":    "string",
}

// Sample builds an example value for a schema. Explicit example, default
// and enum values win over generated ones. Recursive schemas stop at the
// first repetition.
func Sample(ref *openapi3.SchemaRef, opts SampleOptions) any {
	s := &sampler{opts: opts, visiting: make(map[*openapi3.Schema]bool)}
	return s.sample(ref)
}

type sampler struct {
	opts     SampleOptions
	visiting map[*openapi3.Schema]bool
}

func (s *sampler) sample(ref *openapi3.SchemaRef) any {
	if ref == nil || ref.Value == nil {
		return nil
	}
	schema := ref.Value

	switch {
	case schema.Example != nil:
		return schema.Example
	case schema.Default != nil:
		return schema.Default
	case len(schema.Enum) > 0:
		return schema.Enum[0]
	}

	if s.visiting[schema] {
		if isObject(schema) {
			return map[string]any{}
		}
		return nil
	}
	s.visiting[schema] = true
	defer delete(s.visiting, schema)

	if len(schema.AllOf) > 0 {
		return s.sampleAllOf(schema)
	}
	if len(schema.OneOf) > 0 {
		return s.sample(schema.OneOf[0])
	}
	if len(schema.AnyOf) > 0 {
		return s.sample(schema.AnyOf[0])
	}

	switch {
	case isObject(schema):
		return s.sampleObject(schema)
	case schema.Type.Is(openapi3.TypeArray):
		if schema.Items == nil {
			return []any{}
		}
		return []any{s.sample(schema.Items)}
	case schema.Type.Is(openapi3.TypeString):
		if v, ok := formatSamples[schema.Format]; ok {
			return v
		}
		return "string"
	case schema.Type.Is(openapi3.TypeInteger), schema.Type.Is(openapi3.TypeNumber):
		if schema.Min != nil {
			return *schema.Min
		}
		return 0
	case schema.Type.Is(openapi3.TypeBoolean):
		return true
	}

	return nil
}

func (s *sampler) sampleAllOf(schema *openapi3.Schema) any {
	merged := map[string]any{}
	var last any
	for _, part := range schema.AllOf {
		v := s.sample(part)
		if m, ok := v.(map[string]any); ok {
			for k, val := range m {
				merged[k] = val
			}
			continue
		}
		last = v
	}
	if len(schema.Properties) > 0 {
		for k, v := range s.sampleObject(schema) {
			merged[k] = v
		}
	}
	if len(merged) == 0 && last != nil {
		return last
	}
	return merged
}

func (s *sampler) sampleObject(schema *openapi3.Schema) map[string]any {
	obj := make(map[string]any, len(schema.Properties))
	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		prop := schema.Properties[name]
		if prop == nil || prop.Value == nil {
			continue
		}
		if s.opts.SkipReadOnly && prop.Value.ReadOnly {
			continue
		}
		if s.opts.SkipWriteOnly && prop.Value.WriteOnly {
			continue
		}
		obj[name] = s.sample(prop)
	}

	if extra := schema.AdditionalProperties.Schema; extra != nil {
		obj["property1"] = s.sample(extra)
		obj["property2"] = s.sample(extra)
	}
	return obj
}

func isObject(schema *openapi3.Schema) bool {
	return schema.Type.Is(openapi3.TypeObject) ||
		(schema.Type == nil && (len(schema.Properties) > 0 || schema.AdditionalProperties.Schema != nil))
}
