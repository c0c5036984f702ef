package main

import (
	"errors"
	"os"

	"github.com/alnah/go-api2html"
	"github.com/alnah/go-api2html/internal/config"
)

// Exit codes for the api2html CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // Successful conversion
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, config, or validation
	ExitIO       = 3 // File not found, permission denied, write failure
	ExitDocument = 4 // Parse, conversion or rendering failure
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
// I/O is checked first: a missing include surfaces as a rendering error.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, ErrSourceNotFound) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, api2html.ErrReadInclude) ||
		errors.Is(err, api2html.ErrReadLogo) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	// Document errors (exit 4)
	if errors.Is(err, api2html.ErrParse) ||
		errors.Is(err, api2html.ErrConversion) ||
		errors.Is(err, api2html.ErrRender) {
		return ExitDocument
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrNoSource) ||
		errors.Is(err, ErrTooManyArgs) ||
		errors.Is(err, ErrNoOutput) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, api2html.ErrInvalidLanguage) ||
		errors.Is(err, api2html.ErrLogoURLWithoutLogo) ||
		errors.Is(err, api2html.ErrInvalidHeadings) ||
		errors.Is(err, api2html.ErrUnsupportedOption) ||
		errors.Is(err, api2html.ErrInvalidAssetPath) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrTooManyEntries) ||
		errors.Is(err, config.ErrInvalidField) {
		return ExitUsage
	}

	return ExitGeneral
}
