// Package pipeline renders generated Markdown into one self-contained HTML
// reference page.
//
// Render runs these stages in order:
//   - Markdown preprocessing (line endings, front matter, includes, ==highlight== syntax)
//   - Markdown to HTML conversion via Goldmark with Chroma highlighting
//   - image inlining as data: URIs
//   - table of contents extraction from h1/h2 headings
//   - layout rendering with inlined stylesheets, theme CSS and scripts
//
// The page never references external stylesheets or scripts, and identical
// input produces identical output.
package pipeline
