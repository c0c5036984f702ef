package pipeline

import (
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2/styles"
)

func TestResolveTheme(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		want      string
		wantKnown bool
	}{
		{"darkula", "dracula", true},
		{"Darkula", "dracula", true},
		{"", "dracula", true},
		{"monokai", "monokai", true},
		{"no-such-theme", styles.Fallback.Name, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			style, known := ResolveTheme(tt.name)
			if style.Name != tt.want || known != tt.wantKnown {
				t.Errorf("ResolveTheme(%q) = (%s, %v), want (%s, %v)", tt.name, style.Name, known, tt.want, tt.wantKnown)
			}
		})
	}
}

func TestThemes(t *testing.T) {
	t.Parallel()

	names := Themes()
	joined := "," + strings.Join(names, ",") + ","
	for _, want := range []string{"darkula", "dracula", "monokai", "github"} {
		if !strings.Contains(joined, ","+want+",") {
			t.Errorf("Themes() missing %q", want)
		}
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("Themes() not sorted at %d: %q >= %q", i, names[i-1], names[i])
		}
	}
}

func TestThemeCSS(t *testing.T) {
	t.Parallel()

	css, err := ThemeCSS("darkula")
	if err != nil {
		t.Fatalf("ThemeCSS() error = %v", err)
	}
	if !strings.Contains(css, ".chroma") {
		t.Error("theme CSS should target .chroma classes")
	}

	again, err := ThemeCSS("darkula")
	if err != nil || again != css {
		t.Error("theme CSS should be deterministic")
	}
}
