// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"strings"
)

// Getwd reports the working directory used in source hints. Replaced in tests.
var Getwd = os.Getwd

// ForLanguages returns a hint listing the accepted language keys.
func ForLanguages(valid []string) string {
	if len(valid) == 0 {
		return ""
	}
	return format("valid languages: " + strings.Join(valid, ", "))
}

// ForSourceNotFound returns hints for a missing source document.
// Relative paths are reported against the working directory.
func ForSourceNotFound(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return format("check the path and file permissions")
	}
	wd, err := Getwd()
	if err != nil {
		return format("check the path and file permissions")
	}
	return format("path is relative to " + wd)
}

// ForExternalRef returns a hint for documents that reference external files.
func ForExternalRef() string {
	return format("use --resolve <url|path> to follow external $ref targets")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-api2html/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "go-api2html/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output file write errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForTheme returns a hint listing a few available highlight themes.
func ForTheme(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available themes include: " + strings.Join(available, ", "))
}

// ForLogo returns hints for logo files that cannot be inlined.
func ForLogo() string {
	return format("supported formats: PNG, JPG, GIF, SVG, WEBP")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
