package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Argument validation errors. The messages are shown to users as is.
var (
	ErrUsage       = errors.New("invalid usage")
	ErrNoSource    = errors.New("Please specify the source file path as argument!")
	ErrTooManyArgs = errors.New("Please specify only one argument!")
	ErrNoOutput    = errors.New("Please specify an output path via the '-o' option!")
)

// cliOptions holds the parsed command line. Populated once by parseFlags
// and mergeConfig, read-only afterwards.
type cliOptions struct {
	source        string
	resolve       string
	output        string
	theme         string
	logo          string
	logoURL       string
	customCSS     bool
	customCSSPath string
	includes      string // comma-separated
	languages     string // comma-separated
	search        bool
	noSearch      bool
	summary       bool
	omitBody      bool
	raw           bool

	config     string
	assetPath  string
	quiet      bool
	verbose    bool
	version    bool
	help       bool
	completion string

	// changed records flags given on the command line; they win over
	// environment variables and the config file.
	changed map[string]bool
}

// searchEnabled reports the effective search setting.
func (o *cliOptions) searchEnabled() bool {
	return o.search && !o.noSearch
}

// informational reports whether the run only prints help, version or a
// completion script.
func (o *cliOptions) informational() bool {
	return o.help || o.version || o.completion != ""
}

// addConversionFlags adds the flags that shape the generated page.
func addConversionFlags(fs *flag.FlagSet, o *cliOptions) {
	fs.StringVarP(&o.resolve, "resolve", "r", "", "resolve external references against this URL or path")
	fs.StringVarP(&o.output, "out", "o", "", "output HTML file")
	fs.StringVarP(&o.theme, "theme", "t", defaultTheme, "syntax highlight theme")
	fs.StringVarP(&o.logo, "customLogo", "c", "", "custom logo image")
	fs.StringVarP(&o.logoURL, "customLogoUrl", "u", "", "link target of the custom logo")
	fs.BoolVarP(&o.customCSS, "customCss", "C", false, "add a custom CSS block")
	fs.StringVarP(&o.customCSSPath, "customCssPath", "P", "", "custom CSS file")
	fs.StringVarP(&o.includes, "includes", "i", "", "comma-separated Markdown files to append")
	fs.StringVarP(&o.languages, "languages", "l", "", "comma-separated code sample languages")
	fs.BoolVarP(&o.search, "search", "s", true, "enable search")
	fs.BoolVar(&o.noSearch, "no-search", false, "disable search")
	fs.BoolVarP(&o.summary, "summary", "S", false, "use operation summaries in the navigation")
	fs.BoolVarP(&o.omitBody, "omitBody", "b", false, "omit the body parameter row")
	fs.BoolVarP(&o.raw, "raw", "R", false, "show raw schemas instead of example values")
}

// addCommonFlags adds configuration and output control flags.
func addCommonFlags(fs *flag.FlagSet, o *cliOptions) {
	fs.StringVar(&o.config, "config", "", "config file name or path")
	fs.StringVar(&o.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVarP(&o.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "show stage timings")
	fs.BoolVar(&o.version, "version", false, "show version information")
	fs.BoolVarP(&o.help, "help", "h", false, "show this help")
	fs.StringVar(&o.completion, "completion", "", "print a completion script: bash, zsh, fish")
}

// newFlagSet registers every flag on a fresh FlagSet bound to o.
func newFlagSet(o *cliOptions) *flag.FlagSet {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	addConversionFlags(fs, o)
	addCommonFlags(fs, o)
	return fs
}

// parseFlags parses args (without the program name). Informational flags
// skip positional validation.
func parseFlags(args []string) (*cliOptions, error) {
	o := &cliOptions{changed: make(map[string]bool)}
	fs := newFlagSet(o)

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	fs.Visit(func(f *flag.Flag) {
		o.changed[f.Name] = true
	})

	if o.informational() {
		return o, nil
	}

	switch positional := fs.Args(); {
	case len(positional) == 0:
		return nil, ErrNoSource
	case len(positional) > 1:
		return nil, ErrTooManyArgs
	default:
		o.source = positional[0]
	}

	o.output = strings.TrimSpace(o.output)
	if o.output == "" {
		return nil, ErrNoOutput
	}
	return o, nil
}

// splitList splits a comma-separated value, trimming items and dropping
// empty ones. Order is kept.
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
