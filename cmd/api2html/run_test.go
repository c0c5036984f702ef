package main

// Notes:
// - runMain is exercised end to end against a temp directory with the real
//   embedded assets; only the clock and the writers are faked.
// - Tests that set API2HTML_* variables live in env_config_test.go and do
//   not run in parallel.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const petstoreYAML = `openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
servers:
  - url: https://petstore.example.com/v1
paths:
  /pets:
    get:
      operationId: listPets
      summary: List pets
      tags: [pets]
      responses:
        "200":
          description: OK
`

type testEnvironment struct {
	env    *Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	reads  []string
}

func newTestEnv() *testEnvironment {
	te := &testEnvironment{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	te.env = &Environment{
		Now:    func() time.Time { return fixed },
		Stdout: te.stdout,
		Stderr: te.stderr,
		ReadFile: func(path string) ([]byte, error) {
			te.reads = append(te.reads, path)
			return os.ReadFile(path) // #nosec G304 -- test fixture path
		},
	}
	return te
}

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ---------------------------------------------------------------------------
// TestRunMain - Successful conversions
// ---------------------------------------------------------------------------

func TestRunMain_Success(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := writeFixture(t, dir, "petstore.yaml", petstoreYAML)
	output := filepath.Join(dir, "out.html")
	te := newTestEnv()

	code := runMain(context.Background(), []string{source, "-o", output}, te.env)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr = %s", code, te.stderr.String())
	}

	wantStdout := "✓ Read source file!\n" +
		"✓ Converted OpenAPI docs to markdown!\n" +
		"✓ Rendered HTML from markdown!\n" +
		"✓ Wrote output file!\n" +
		"✓ Finished!\n"
	if te.stdout.String() != wantStdout {
		t.Errorf("stdout = %q, want %q", te.stdout.String(), wantStdout)
	}

	page, err := os.ReadFile(output) // #nosec G304 -- test output
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	html := string(page)
	for _, want := range []string{"<!doctype html>", "darkula", "Petstore", "List pets"} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q", want)
		}
	}
	for _, unwanted := range []string{"<script src", `rel="stylesheet"`} {
		if strings.Contains(html, unwanted) {
			t.Errorf("output should be self-contained, found %q", unwanted)
		}
	}
}

func TestRunMain_CustomCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
	}{
		{"ascii title", "Petstore"},
		{"title with runes that change length when lowered", "İİİİ Petstore K"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			doc := strings.Replace(petstoreYAML, "title: Petstore", "title: "+tt.title, 1)
			source := writeFixture(t, dir, "petstore.yaml", doc)
			css := writeFixture(t, dir, "custom.css", "body { color: rebeccapurple; }")
			output := filepath.Join(dir, "out.html")
			te := newTestEnv()

			code := runMain(context.Background(), []string{source, "-o", output, "-P", css}, te.env)
			if code != ExitSuccess {
				t.Fatalf("exit code = %d, stderr = %s", code, te.stderr.String())
			}
			if !strings.HasPrefix(te.stdout.String(), "✓ Read custom css file!\n") {
				t.Errorf("stdout = %q, want css line first", te.stdout.String())
			}

			page, err := os.ReadFile(output) // #nosec G304 -- test output
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(page), "<style>\nbody { color: rebeccapurple; }\n</style>") {
				t.Error("custom CSS was not injected in place of the marker")
			}
			if strings.Contains(strings.ToLower(string(page)), "custom css overrides here") {
				t.Error("marker should be replaced")
			}
		})
	}
}

func TestRunMain_Deterministic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := writeFixture(t, dir, "petstore.yaml", petstoreYAML)

	var pages [2][]byte
	for i := range pages {
		output := filepath.Join(dir, "out.html")
		if code := runMain(context.Background(), []string{source, "-o", output}, newTestEnv().env); code != ExitSuccess {
			t.Fatalf("run %d: exit code = %d", i, code)
		}
		page, err := os.ReadFile(output) // #nosec G304 -- test output
		if err != nil {
			t.Fatal(err)
		}
		pages[i] = page
	}
	if !bytes.Equal(pages[0], pages[1]) {
		t.Error("repeated runs produced different output")
	}
}

func TestRunMain_Quiet(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := writeFixture(t, dir, "petstore.yaml", petstoreYAML)
	te := newTestEnv()

	code := runMain(context.Background(), []string{source, "-o", filepath.Join(dir, "out.html"), "-q"}, te.env)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if te.stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", te.stdout.String())
	}
}

func TestRunMain_Verbose(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := writeFixture(t, dir, "petstore.yaml", petstoreYAML)
	te := newTestEnv()

	code := runMain(context.Background(), []string{source, "-o", filepath.Join(dir, "out.html"), "-v"}, te.env)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(te.stdout.String(), "✓ Finished! (0s)") {
		t.Errorf("stdout = %q, want timings", te.stdout.String())
	}
	if !strings.Contains(te.stderr.String(), `parsed 3.0.3 document "Petstore"`) {
		t.Errorf("stderr = %q, want debug line", te.stderr.String())
	}
}

func TestRunMain_UnknownTheme(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := writeFixture(t, dir, "petstore.yaml", petstoreYAML)
	te := newTestEnv()

	code := runMain(context.Background(), []string{source, "-o", filepath.Join(dir, "out.html"), "-t", "nope"}, te.env)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(te.stderr.String(), `warning: unknown theme "nope"`) {
		t.Errorf("stderr = %q, want theme warning", te.stderr.String())
	}
}

// ---------------------------------------------------------------------------
// TestRunMain - Failures
// ---------------------------------------------------------------------------

func TestRunMain_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       func(t *testing.T, dir string) []string
		wantCode   int
		wantStderr string
		wantReads  int
	}{
		{
			name:       "no source",
			args:       func(*testing.T, string) []string { return nil },
			wantCode:   ExitUsage,
			wantStderr: "✗ Please specify the source file path as argument!\n",
		},
		{
			name:       "too many arguments",
			args:       func(_ *testing.T, dir string) []string { return []string{"a.yaml", "b.yaml", "-o", filepath.Join(dir, "out.html")} },
			wantCode:   ExitUsage,
			wantStderr: "✗ Please specify only one argument!\n",
		},
		{
			name:       "missing output",
			args:       func(*testing.T, string) []string { return []string{"a.yaml"} },
			wantCode:   ExitUsage,
			wantStderr: "✗ Please specify an output path via the '-o' option!\n",
		},
		{
			name: "missing source file",
			args: func(t *testing.T, dir string) []string {
				return []string{filepath.Join(dir, "missing.yaml"), "-o", filepath.Join(dir, "out.html")}
			},
			wantCode:   ExitIO,
			wantStderr: "✗ Source file wasn't found: ",
			wantReads:  1,
		},
		{
			name: "invalid yaml",
			args: func(t *testing.T, dir string) []string {
				return []string{writeFixture(t, dir, "bad.yaml", "openapi: [3.0"), "-o", filepath.Join(dir, "out.html")}
			},
			wantCode:   ExitDocument,
			wantStderr: "✗ Failed to parse the source OpenAPI document\n",
			wantReads:  1,
		},
		{
			name: "unsupported version",
			args: func(t *testing.T, dir string) []string {
				return []string{writeFixture(t, dir, "v4.yaml", "openapi: 4.0.0\ninfo:\n  title: X\n  version: '1'\npaths: {}\n"), "-o", filepath.Join(dir, "out.html")}
			},
			wantCode:   ExitDocument,
			wantStderr: "✗ Error during conversion to markdown:",
			wantReads:  1,
		},
		{
			name: "invalid language",
			args: func(t *testing.T, dir string) []string {
				return []string{writeFixture(t, dir, "spec.yaml", petstoreYAML), "-o", filepath.Join(dir, "out.html"), "-l", "cobol"}
			},
			wantCode:   ExitUsage,
			wantStderr: `✗ invalid language: "cobol"`,
		},
		{
			name: "logo url without logo",
			args: func(t *testing.T, dir string) []string {
				return []string{writeFixture(t, dir, "spec.yaml", petstoreYAML), "-o", filepath.Join(dir, "out.html"), "-u", "https://example.com"}
			},
			wantCode:   ExitUsage,
			wantStderr: "✗ ",
		},
		{
			name: "missing css",
			args: func(t *testing.T, dir string) []string {
				return []string{writeFixture(t, dir, "spec.yaml", petstoreYAML), "-o", filepath.Join(dir, "out.html"), "-P", filepath.Join(dir, "none.css")}
			},
			wantCode:   ExitIO,
			wantStderr: "✗ Failed to read custom css file",
			wantReads:  1,
		},
		{
			name: "missing logo",
			args: func(t *testing.T, dir string) []string {
				return []string{writeFixture(t, dir, "spec.yaml", petstoreYAML), "-o", filepath.Join(dir, "out.html"), "-c", filepath.Join(dir, "none.png")}
			},
			wantCode:   ExitIO,
			wantStderr: "✗ Error during rendering:",
			wantReads:  1,
		},
		{
			name: "missing include",
			args: func(t *testing.T, dir string) []string {
				return []string{writeFixture(t, dir, "spec.yaml", petstoreYAML), "-o", filepath.Join(dir, "out.html"), "-i", "nothing"}
			},
			wantCode:   ExitIO,
			wantStderr: "✗ Error during rendering:",
			wantReads:  1,
		},
		{
			name: "output directory missing",
			args: func(t *testing.T, dir string) []string {
				return []string{writeFixture(t, dir, "spec.yaml", petstoreYAML), "-o", filepath.Join(dir, "no", "such", "dir", "out.html")}
			},
			wantCode:   ExitIO,
			wantStderr: "✗ Failed to write output file:",
			wantReads:  1,
		},
		{
			name:       "unsupported shell",
			args:       func(*testing.T, string) []string { return []string{"--completion", "tcsh"} },
			wantCode:   ExitUsage,
			wantStderr: "✗ unsupported shell",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			te := newTestEnv()

			code := runMain(context.Background(), tt.args(t, dir), te.env)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.wantCode, te.stderr.String())
			}
			if !strings.HasPrefix(te.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want prefix %q", te.stderr.String(), tt.wantStderr)
			}
			if len(te.reads) != tt.wantReads {
				t.Errorf("reads = %v, want %d", te.reads, tt.wantReads)
			}
			if fileExists(filepath.Join(dir, "out.html")) {
				t.Error("no output file should be written on failure")
			}
		})
	}
}

func TestRunMain_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := writeFixture(t, dir, "petstore.yaml", petstoreYAML)
	output := filepath.Join(dir, "out.html")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if code := runMain(ctx, []string{source, "-o", output}, newTestEnv().env); code == ExitSuccess {
		t.Error("cancelled run should fail")
	}
	if fileExists(output) {
		t.Error("no output file should be written when cancelled")
	}
}

// ---------------------------------------------------------------------------
// TestRunMain - Informational flags
// ---------------------------------------------------------------------------

func TestRunMain_Informational(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"help", []string{"--help"}, "Usage: api2html [options] <sourcePath>"},
		{"version", []string{"--version"}, "api2html dev\n"},
		{"completion", []string{"--completion", "zsh"}, "#compdef api2html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			te := newTestEnv()
			if code := runMain(context.Background(), tt.args, te.env); code != ExitSuccess {
				t.Fatalf("exit code = %d", code)
			}
			if !strings.Contains(te.stdout.String(), tt.want) {
				t.Errorf("stdout = %q, want %q", te.stdout.String(), tt.want)
			}
			if len(te.reads) != 0 {
				t.Errorf("informational flags should not read files: %v", te.reads)
			}
		})
	}
}

func TestHasVerboseFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want bool
	}{
		{nil, false},
		{[]string{"-v"}, true},
		{[]string{"a.yaml", "--verbose"}, true},
		{[]string{"--", "-v"}, false},
		{[]string{"-q"}, false},
	}
	for _, tt := range tests {
		if got := hasVerboseFlag(tt.args); got != tt.want {
			t.Errorf("hasVerboseFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}
