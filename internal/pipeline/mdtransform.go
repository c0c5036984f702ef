package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// Highlight placeholders use Unicode Private Use Area characters.
// They pass through Goldmark unchanged and are turned into <mark> tags
// after HTML generation, so raw HTML stays disabled.
const (
	MarkStartPlaceholder = "\uE000"
	MarkEndPlaceholder   = "\uE001"
)

var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
	highlightPattern   = regexp.MustCompile(`==([^=\s](?:[^=]*[^=\s])?)==`)
)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// CommonMarkPreprocessor applies transformations before CommonMark conversion.
type CommonMarkPreprocessor struct{}

// PreprocessMarkdown converts highlights and compresses blank lines.
// Line endings must already be normalized.
func (p *CommonMarkPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = convertHighlights(content)
	content = compressBlankLines(content)
	return content
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// compressBlankLines limits consecutive blank lines to 2 maximum.
// Fenced code blocks are left alone.
func compressBlankLines(content string) string {
	return outsideFences(content, func(text string) string {
		return multipleBlankLines.ReplaceAllString(text, "\n\n")
	})
}

// convertHighlights transforms ==text== to placeholder markers outside code
// blocks and code spans. Comparison operators such as "a == b" or "===" do
// not match.
func convertHighlights(content string) string {
	return outsideFences(content, func(text string) string {
		lines := strings.Split(text, "\n")
		for i, line := range lines {
			if !strings.Contains(line, "==") {
				continue
			}
			parts := strings.Split(line, "`")
			for j := 0; j < len(parts); j += 2 {
				parts[j] = highlightPattern.ReplaceAllString(parts[j], MarkStartPlaceholder+"$1"+MarkEndPlaceholder)
			}
			lines[i] = strings.Join(parts, "`")
		}
		return strings.Join(lines, "\n")
	})
}

// outsideFences applies fn to every run of lines that is not inside a
// fenced code block. Fence lines and code are copied unchanged.
func outsideFences(content string, fn func(string) string) string {
	lines := strings.SplitAfter(content, "\n")

	var out, text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			out.WriteString(fn(text.String()))
			text.Reset()
		}
	}

	fence := ""
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		switch {
		case fence == "" && (strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~")):
			flush()
			fence = fenceMarker(trimmed)
			out.WriteString(line)
		case fence != "":
			out.WriteString(line)
			if strings.HasPrefix(trimmed, fence) && strings.TrimSpace(strings.TrimLeft(trimmed, fence[:1])) == "" {
				fence = ""
			}
		default:
			text.WriteString(line)
		}
	}
	flush()
	return out.String()
}

// fenceMarker returns the run of backticks or tildes opening a fence.
func fenceMarker(line string) string {
	ch := line[0]
	n := 0
	for n < len(line) && line[n] == ch {
		n++
	}
	return line[:n]
}

// ConvertMarkPlaceholders converts placeholder markers to <mark> tags.
// Called after Goldmark HTML conversion.
func ConvertMarkPlaceholders(content string) string {
	return strings.ReplaceAll(
		strings.ReplaceAll(content, MarkStartPlaceholder, "<mark>"),
		MarkEndPlaceholder, "</mark>",
	)
}
