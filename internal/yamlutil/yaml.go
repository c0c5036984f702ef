// Package yamlutil wraps YAML parsing to isolate the external dependency.
// This allows swapping the underlying YAML library without modifying callers.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits config and front matter input (default 1MB).
var MaxInputSize = 1 << 20

// MaxDocumentSize limits API description input (default 32MB).
// Large public descriptions (cloud provider APIs) run to several megabytes.
var MaxDocumentSize = 32 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
	ErrNotMapping     = errors.New("yamlutil: value is not a mapping")
)

func validateInput(data []byte, v any, limit int) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > limit {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), limit)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

func Unmarshal(data []byte, v any) error {
	if err := validateInput(data, v, MaxInputSize); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

func Marshal(v any) ([]byte, error) {
	result, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return result, nil
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v, MaxInputSize); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// UnmarshalDocument decodes a whole API description. JSON input is accepted
// since JSON is a subset of YAML 1.2. The size limit is MaxDocumentSize.
func UnmarshalDocument(data []byte, v any) error {
	if err := validateInput(data, v, MaxDocumentSize); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// MappingKeys returns the keys of the mapping found at path, in the order
// they appear in data. An empty path addresses the root mapping.
// Returns nil, nil when the path does not exist.
func MappingKeys(data []byte, path ...string) ([]string, error) {
	var root yaml.MapSlice
	if err := validateInput(data, &root, MaxDocumentSize); err != nil {
		return nil, err
	}
	if err := yaml.UnmarshalWithOptions(data, &root, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}

	current := root
	for _, segment := range path {
		next, found := lookup(current, segment)
		if !found {
			return nil, nil
		}
		ms, ok := next.(yaml.MapSlice)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotMapping, segment)
		}
		current = ms
	}

	keys := make([]string, 0, len(current))
	for _, item := range current {
		keys = append(keys, fmt.Sprint(item.Key))
	}
	return keys, nil
}

func lookup(ms yaml.MapSlice, key string) (any, bool) {
	for _, item := range ms {
		if fmt.Sprint(item.Key) == key {
			return item.Value, true
		}
	}
	return nil, false
}
