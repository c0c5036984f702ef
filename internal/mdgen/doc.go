// Package mdgen writes the Markdown reference page for a loaded OpenAPI
// document.
//
// The page starts with a YAML front matter block (title, language tabs,
// includes, search, highlight theme, heading level) read back by the HTML
// renderer. The body follows this outline:
//
//   - introduction: title, description, base URLs, contact and license
//   - authentication: one entry per security scheme
//   - one top-level section per tag, each operation as a sub-section with
//     code samples, parameters, example responses and a responses table
//   - schemas: one sub-section per component schema
//
// Every heading carries an explicit, unique id ("## Title {#id}") so links
// between operations and schemas stay stable across runs.
package mdgen
