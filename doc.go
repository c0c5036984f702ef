// Package api2html converts OpenAPI descriptions into standalone HTML
// reference pages.
//
// # Quick Start
//
// Create a converter and run the whole pipeline:
//
//	conv, err := api2html.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	data, _ := os.ReadFile("openapi.yaml")
//	result, err := conv.Convert(ctx, data,
//	    api2html.DefaultConversionOptions(),
//	    api2html.RenderOptions{Inline: true},
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("index.html", []byte(result.HTML), 0644)
//
// The result contains both the page (result.HTML) and the intermediate
// Markdown (result.Markdown) for debugging.
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Parsing the source as YAML or JSON (ParseDocument)
//  2. Loading it as OpenAPI 3, upgrading Swagger 2.0 and resolving $ref
//     pointers, then writing Markdown with code samples, parameter and
//     response tables and a schema section (ToMarkdown)
//  3. Rendering the Markdown into one self-contained HTML page with inlined
//     styles, scripts and images (ToHTML)
//
// Each stage is a separate method so callers can stop, inspect or replace
// intermediate results. ApplyCustomCSS patches a stylesheet into a page
// rendered with RenderOptions.CustomCSS.
//
// # Language Tabs
//
// Code samples are produced for every entry of a LanguageTable. Use
// DefaultLanguageTable().Select to restrict or reorder the tabs:
//
//	tabs, err := api2html.DefaultLanguageTable().Select([]string{"python", "shell"})
//	opts := api2html.DefaultConversionOptions()
//	opts.LanguageTabs = tabs
//
// # Custom Assets
//
// Override built-in styles, the page layout, scripts or code sample
// templates with an asset directory:
//
//	conv, err := api2html.NewConverter(api2html.WithAssetPath("/path/to/assets"))
//
// Asset directory structure:
//
//	assets/
//	├── styles/
//	│   ├── screen.css
//	│   └── print.css
//	├── templates/
//	│   └── layout.html
//	├── scripts/
//	│   ├── tabs.js
//	│   └── search.js
//	└── samples/
//	    └── shell.tmpl
//
// Missing files fall back to the embedded defaults.
package api2html
