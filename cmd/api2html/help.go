package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/alnah/go-api2html"
)

// helpRow is one line of the options table.
type helpRow struct {
	flags string
	desc  string
}

// helpSection groups related options.
type helpSection struct {
	title string
	rows  []helpRow
}

var helpSections = []helpSection{
	{
		title: "Input/Output:",
		rows: []helpRow{
			{"-o, --out <path>", "Output HTML file (required)"},
			{"-r, --resolve <url|path>", "Resolve external $ref targets against this location"},
			{"-i, --includes <list>", "Comma-separated Markdown files appended to the page"},
		},
	},
	{
		title: "Page:",
		rows: []helpRow{
			{"-t, --theme <name>", "Syntax highlight theme (default: darkula)"},
			{"-l, --languages <list>", "Comma-separated code sample languages, in tab order"},
			{"-s, --search", "Enable search (default)"},
			{"    --no-search", "Disable search"},
			{"-S, --summary", "Use operation summaries in the navigation"},
			{"-b, --omitBody", "Omit the top-level body parameter row"},
			{"-R, --raw", "Show raw schemas instead of example values"},
		},
	},
	{
		title: "Branding:",
		rows: []helpRow{
			{"-c, --customLogo <path>", "Logo shown above the navigation"},
			{"-u, --customLogoUrl <url>", "Link target of the logo (requires --customLogo)"},
			{"-C, --customCss", "Add an empty custom CSS block to the page"},
			{"-P, --customCssPath <path>", "Fill the custom CSS block from a file"},
			{"    --asset-path <dir>", "Override styles, layout, scripts and samples"},
		},
	},
	{
		title: "Configuration:",
		rows: []helpRow{
			{"    --config <name|path>", "YAML config file"},
		},
	},
	{
		title: "Output Control:",
		rows: []helpRow{
			{"-q, --quiet", "Only show errors"},
			{"-v, --verbose", "Show stage timings"},
			{"    --version", "Show version information"},
			{"    --completion <shell>", "Print a completion script: bash, zsh, fish"},
			{"-h, --help", "Show this help"},
		},
	},
}

// printUsage prints the command usage with aligned option columns.
func printUsage(w io.Writer) {
	fmt.Fprintf(w, "Usage: %s [options] <sourcePath>\n", programName)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert an OpenAPI or Swagger document into a standalone HTML page.")

	width := 0
	for _, section := range helpSections {
		for _, row := range section.rows {
			width = max(width, runewidth.StringWidth(row.flags))
		}
	}

	for _, section := range helpSections {
		fmt.Fprintln(w)
		fmt.Fprintln(w, section.title)
		for _, row := range section.rows {
			fmt.Fprintf(w, "  %s  %s\n", runewidth.FillRight(row.flags, width), row.desc)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Languages: "+strings.Join(languageKeys(), ", "))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  "+strings.Join(sortedEnvVars(), ", "))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 success, 1 unexpected, 2 usage, 3 I/O, 4 document")
}

// languageKeys lists the accepted --languages values.
func languageKeys() []string {
	return api2html.DefaultLanguageTable().Keys()
}
