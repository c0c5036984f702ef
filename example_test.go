package api2html_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-api2html"
)

const exampleSpec = `openapi: 3.0.3
info:
  title: Example API
  version: 1.0.0
paths:
  /hello:
    get:
      operationId: sayHello
      responses:
        '200':
          description: a greeting
`

// Example demonstrates converting an OpenAPI document into an HTML page.
func Example() {
	conv, err := api2html.NewConverter()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	result, err := conv.Convert(context.Background(), []byte(exampleSpec),
		api2html.DefaultConversionOptions(),
		api2html.RenderOptions{Inline: true},
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	if strings.Contains(result.HTML, "<title>Example API v1.0.0</title>") {
		fmt.Println("HTML generated successfully")
	}
	// Output: HTML generated successfully
}

// Example_stages demonstrates running each pipeline stage separately.
func Example_stages() {
	conv, err := api2html.NewConverter()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	ctx := context.Background()

	doc, err := conv.ParseDocument([]byte(exampleSpec))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("version:", doc.Version())

	markdown, err := conv.ToMarkdown(ctx, doc, api2html.DefaultConversionOptions())
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("has operation:", strings.Contains(markdown, "`GET /hello`"))

	page, err := conv.ToHTML(ctx, markdown, api2html.RenderOptions{Inline: true})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("self-contained:", !strings.Contains(page, "<script src"))
	// Output:
	// version: 3.0.3
	// has operation: true
	// self-contained: true
}

// ExampleLanguageTable_Select demonstrates restricting and reordering the
// code sample tabs.
func ExampleLanguageTable_Select() {
	tabs, err := api2html.DefaultLanguageTable().Select([]string{"python", "javascript--nodejs"})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, tab := range tabs {
		fmt.Printf("%s: %s\n", tab.Key, tab.Label)
	}
	// Output:
	// python: Python
	// javascript--nodejs: Node.js
}

// ExampleLanguageTable_Select_invalid demonstrates the error for an unknown key.
func ExampleLanguageTable_Select_invalid() {
	_, err := api2html.DefaultLanguageTable().Select([]string{"cobol"})
	fmt.Println(err)
	// Output: invalid language: "cobol" (valid: shell, http, javascript, javascript--nodejs, ruby, python, java, go, php)
}

// ExampleApplyCustomCSS demonstrates patching custom styles into a page.
func ExampleApplyCustomCSS() {
	page := "<style>" + api2html.CustomCSSMarker + "</style>"
	fmt.Println(api2html.ApplyCustomCSS(page, "body { margin: 0; }"))
	// Output: <style>body { margin: 0; }</style>
}
