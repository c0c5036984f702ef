package main

// Notes:
// - These tests use t.Setenv and therefore do not call t.Parallel.
// - Precedence: CLI flags > API2HTML_* variables > config file > defaults.

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-api2html/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("API2HTML_CONFIG", "team")
	t.Setenv("API2HTML_THEME", "monokai")
	t.Setenv("API2HTML_LANGUAGES", "go,python")
	t.Setenv("API2HTML_ASSET_PATH", "/assets")
	t.Setenv("API2HTML_LOGO", "logo.png")
	t.Setenv("API2HTML_LOGO_URL", "https://example.com")
	t.Setenv("API2HTML_CSS_PATH", "custom.css")

	want := envConfig{
		ConfigPath: "team",
		Theme:      "monokai",
		Languages:  "go,python",
		AssetPath:  "/assets",
		Logo:       "logo.png",
		LogoURL:    "https://example.com",
		CSSPath:    "custom.css",
	}
	if got := *loadEnvConfig(); got != want {
		t.Errorf("loadEnvConfig() = %+v, want %+v", got, want)
	}
}

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("API2HTML_THEMES", "x")
	t.Setenv("API2HTML_AAA", "y")
	t.Setenv("API2HTML_THEME", "monokai")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)

	want := "warning: unknown environment variable API2HTML_AAA (typo?)\n" +
		"warning: unknown environment variable API2HTML_THEMES (typo?)\n"
	if buf.String() != want {
		t.Errorf("warnings = %q, want %q", buf.String(), want)
	}
}

// ---------------------------------------------------------------------------
// TestResolveConfig - Precedence
// ---------------------------------------------------------------------------

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "api2html.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

const teamConfig = `theme: github
languages: [shell, go]
search: false
summary: true
includes: [errors]
logo:
  path: config-logo.png
css:
  enabled: true
`

func TestResolveConfig_FileFillsDefaults(t *testing.T) {
	path := writeConfigFile(t, teamConfig)
	opts := mustParse(t, "spec.yaml", "-o", "out.html", "--config", path)

	if err := resolveConfig(opts, &envConfig{}); err != nil {
		t.Fatalf("resolveConfig() error = %v", err)
	}
	if opts.theme != "github" || opts.languages != "shell,go" || opts.searchEnabled() ||
		!opts.summary || opts.includes != "errors" || opts.logo != "config-logo.png" || !opts.customCSS {
		t.Errorf("opts = %+v", opts)
	}
}

func TestResolveConfig_Precedence(t *testing.T) {
	path := writeConfigFile(t, teamConfig)
	opts := mustParse(t, "spec.yaml", "-o", "out.html", "--config", path, "-t", "vim", "--search")
	env := &envConfig{Theme: "monokai", Languages: "python", Logo: "env-logo.png"}

	if err := resolveConfig(opts, env); err != nil {
		t.Fatalf("resolveConfig() error = %v", err)
	}
	if opts.theme != "vim" {
		t.Errorf("theme = %q, flag should win", opts.theme)
	}
	if opts.languages != "python" || opts.logo != "env-logo.png" {
		t.Errorf("languages = %q, logo = %q, env should beat config", opts.languages, opts.logo)
	}
	if !opts.searchEnabled() {
		t.Error("--search should beat config search: false")
	}
	if !opts.summary {
		t.Error("summary should come from config")
	}
}

func TestResolveConfig_EnvConfigPath(t *testing.T) {
	path := writeConfigFile(t, "theme: github\n")
	opts := mustParse(t, "spec.yaml", "-o", "out.html")

	if err := resolveConfig(opts, &envConfig{ConfigPath: path}); err != nil {
		t.Fatalf("resolveConfig() error = %v", err)
	}
	if opts.theme != "github" {
		t.Errorf("theme = %q, want github", opts.theme)
	}
}

func TestResolveConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     *envConfig
		wantErr error
	}{
		{"invalid yaml", "theme: [", &envConfig{}, config.ErrConfigParse},
		{"env logo url without logo", "theme: github\n", &envConfig{LogoURL: "https://example.com"}, config.ErrInvalidField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.content)
			opts := mustParse(t, "spec.yaml", "-o", "out.html", "--config", path)
			if err := resolveConfig(opts, tt.env); !errors.Is(err, tt.wantErr) {
				t.Errorf("resolveConfig() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRunMain_ConfigNotFound(t *testing.T) {
	dir := t.TempDir()
	te := newTestEnv()

	code := runMain(context.Background(), []string{"spec.yaml", "-o", filepath.Join(dir, "out.html"), "--config", "does-not-exist"}, te.env)
	if code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(te.stderr.String(), "✗ config file not found") {
		t.Errorf("stderr = %q", te.stderr.String())
	}
	if len(te.reads) != 0 {
		t.Errorf("source should not be read: %v", te.reads)
	}
}

func TestRunMain_EnvTheme(t *testing.T) {
	t.Setenv("API2HTML_THEME", "monokai")
	dir := t.TempDir()
	source := writeFixture(t, dir, "petstore.yaml", petstoreYAML)
	output := filepath.Join(dir, "out.html")

	if code := runMain(context.Background(), []string{source, "-o", output}, newTestEnv().env); code != ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	page, err := os.ReadFile(output) // #nosec G304 -- test output
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(page), `content="monokai"`) {
		t.Error("theme from API2HTML_THEME not applied")
	}
}
