package pipeline

// Notes:
// - Assertions check structural markers (ids, wrapper classes) rather than
//   Chroma's exact token markup, which varies between lexer versions

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		unsafe  bool
		input   string
		want    []string
		notWant []string
	}{
		{
			name:  "explicit heading id",
			input: "## List pets {#listpets}",
			want:  []string{`<h2 id="listpets">List pets</h2>`},
		},
		{
			name:  "automatic heading id",
			input: "# Schemas",
			want:  []string{`<h1 id="schemas">Schemas</h1>`},
		},
		{
			name:  "code block wrapped with tab class",
			input: "```shell\ncurl -X GET /pets\n```",
			want:  []string{`<div class="highlight tab-shell">`, `class="chroma"`, "curl"},
		},
		{
			name:  "node tab highlighted",
			input: "```javascript--nodejs\nconst x = 1;\n```",
			want:  []string{`<div class="highlight tab-javascript--nodejs">`, `class="chroma"`},
		},
		{
			name:  "plain code block",
			input: "```\n<b>raw</b>\n```",
			want:  []string{`<div class="highlight">`, "&lt;b&gt;raw&lt;/b&gt;"},
		},
		{
			name:  "table",
			input: "|a|b|\n|---|---|\n|1|2|",
			want:  []string{"<table>", "<td>1</td>"},
		},
		{
			name:    "raw html omitted in safe mode",
			input:   "<script>alert(1)</script>",
			notWant: []string{"<script>"},
		},
		{
			name:   "raw html kept in unsafe mode",
			unsafe: true,
			input:  "<aside>note</aside>",
			want:   []string{"<aside>note</aside>"},
		},
		{
			name:  "highlight placeholders become marks",
			input: "x " + MarkStartPlaceholder + "y" + MarkEndPlaceholder,
			want:  []string{"<mark>y</mark>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := NewGoldmarkConverter(tt.unsafe).ToHTML(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("ToHTML() error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q\ngot: %s", want, got)
				}
			}
			for _, bad := range tt.notWant {
				if strings.Contains(got, bad) {
					t.Errorf("output should not contain %q\ngot: %s", bad, got)
				}
			}
		})
	}
}

func TestGoldmarkConverter_ToHTML_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoldmarkConverter(false).ToHTML(ctx, "# Title")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
