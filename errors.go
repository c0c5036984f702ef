package api2html

import (
	"errors"

	"github.com/alnah/go-api2html/internal/apispec"
	"github.com/alnah/go-api2html/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyDocument = errors.New("source document is empty")
	ErrParse         = errors.New("failed to parse the source OpenAPI document")
	ErrConversion    = errors.New("conversion to markdown failed")
	ErrRender        = errors.New("rendering failed")
	ErrNilDocument   = errors.New("document cannot be nil")

	// Option validation errors.
	ErrInvalidLanguage    = errors.New("invalid language")
	ErrInvalidHeadings    = errors.New("invalid heading level")
	ErrUnsupportedOption  = errors.New("unsupported option")
	ErrLogoURLWithoutLogo = errors.New("logo URL requires a logo")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrScriptNotFound   = errors.New("script not found")
	ErrSampleNotFound   = errors.New("code sample template not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)

// Errors raised by the collaborators, re-exported so callers can match them
// without importing internal packages.
var (
	ErrExternalRef        = apispec.ErrExternalRef
	ErrUnsupportedVersion = apispec.ErrUnsupportedVersion
	ErrMissingVersion     = apispec.ErrMissingVersion
	ErrReadInclude        = pipeline.ErrReadInclude
	ErrReadLogo           = pipeline.ErrReadLogo
)
