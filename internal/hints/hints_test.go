package hints

// Notes:
// - TestForSourceNotFound replaces the package-level Getwd variable and
//   cannot use t.Parallel().
// These are acceptable gaps: we test observable behavior through the seam.

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestForLanguages(t *testing.T) {
	t.Parallel()

	hint := ForLanguages([]string{"shell", "go"})
	if hint != "\n  hint: valid languages: shell, go" {
		t.Errorf("ForLanguages() = %q", hint)
	}
	if ForLanguages(nil) != "" {
		t.Error("expected empty hint for empty list")
	}
}

func TestForSourceNotFound(t *testing.T) {
	orig := Getwd
	defer func() { Getwd = orig }()

	Getwd = func() (string, error) { return "/work", nil }
	if hint := ForSourceNotFound("spec.yaml"); !strings.Contains(hint, "relative to /work") {
		t.Errorf("relative path hint = %q", hint)
	}

	abs, _ := filepath.Abs("spec.yaml")
	if hint := ForSourceNotFound(abs); !strings.Contains(hint, "check the path") {
		t.Errorf("absolute path hint = %q", hint)
	}

	Getwd = func() (string, error) { return "", errors.New("gone") }
	if hint := ForSourceNotFound("spec.yaml"); !strings.Contains(hint, "check the path") {
		t.Errorf("getwd failure hint = %q", hint)
	}
}

func TestForExternalRef(t *testing.T) {
	t.Parallel()

	if hint := ForExternalRef(); !strings.Contains(hint, "--resolve") {
		t.Errorf("ForExternalRef() = %q, want --resolve suggestion", hint)
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		searched []string
		want     string
	}{
		{
			name:     "suggests user config",
			searched: []string{"api.yaml", "/home/u/.config/go-api2html/api.yaml"},
			want:     "or create /home/u/.config/go-api2html/api.yaml",
		},
		{
			name:     "flag only",
			searched: []string{"api.yaml"},
			want:     "use --config /path/to/file.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if hint := ForConfigNotFound(tt.searched); !strings.Contains(hint, tt.want) {
				t.Errorf("ForConfigNotFound() = %q, want containing %q", hint, tt.want)
			}
		})
	}
}

func TestStaticHints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		hint string
		want string
	}{
		{"output directory", ForOutputDirectory(), "writable"},
		{"logo", ForLogo(), "SVG"},
		{"theme", ForTheme([]string{"dracula", "monokai"}), "dracula, monokai"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if !strings.HasPrefix(tt.hint, "\n  hint: ") {
				t.Errorf("hint %q missing prefix", tt.hint)
			}
			if !strings.Contains(tt.hint, tt.want) {
				t.Errorf("hint %q missing %q", tt.hint, tt.want)
			}
		})
	}

	if ForTheme(nil) != "" {
		t.Error("expected empty theme hint for empty list")
	}
}
