package apispec

import "errors"

// Sentinel errors for loading operations.
var (
	ErrNotMapping         = errors.New("document root is not a mapping")
	ErrMissingVersion     = errors.New("document declares neither 'openapi' nor 'swagger'")
	ErrUnsupportedVersion = errors.New("unsupported OpenAPI version")
	ErrExternalRef        = errors.New("document references external files")
	ErrLoad               = errors.New("failed to load OpenAPI document")
)
