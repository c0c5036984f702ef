package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alnah/go-api2html"
)

// ErrReadCSS indicates the custom CSS file could not be read.
var ErrReadCSS = errors.New("Failed to read custom css file")

// translation is everything the runner needs from the command line.
type translation struct {
	conv   api2html.ConversionOptions
	render api2html.RenderOptions
	css    string // custom CSS text, empty when none was loaded
	hasCSS bool
}

// translate maps parsed options onto library options. Language keys are
// checked before any file is read; the custom CSS file is read through
// readFile.
func translate(opts *cliOptions, table api2html.LanguageTable, readFile func(string) ([]byte, error)) (*translation, error) {
	tabs, err := table.Select(splitList(opts.languages))
	if err != nil {
		return nil, err
	}

	if opts.logoURL != "" && opts.logo == "" {
		return nil, api2html.ErrLogoURLWithoutLogo
	}

	theme := strings.ToLower(strings.TrimSpace(opts.theme))
	if theme == "" {
		theme = defaultTheme
	}

	t := &translation{
		conv: api2html.ConversionOptions{
			CodeSamples:    true,
			HTTPSnippet:    false,
			Theme:          theme,
			Search:         opts.searchEnabled(),
			Discovery:      false,
			ShallowSchemas: false,
			TOCSummary:     opts.summary,
			Headings:       api2html.DefaultHeadings,
			Verbose:        false,
			OmitBody:       opts.omitBody,
			LanguageTabs:   tabs,
			Sample:         !opts.raw,
			Includes:       splitList(opts.includes),
		},
		render: api2html.RenderOptions{
			Inline:    true,
			Unsafe:    false,
			Logo:      opts.logo,
			LogoURL:   opts.logoURL,
			CustomCSS: opts.customCSS || opts.customCSSPath != "",
			BaseDir:   filepath.Dir(opts.source),
		},
	}

	if opts.resolve != "" {
		t.conv.Resolve = true
		t.conv.Source = opts.resolve
	}

	if opts.customCSSPath != "" {
		data, err := readFile(opts.customCSSPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadCSS, err)
		}
		t.css = string(data)
		t.hasCSS = true
	}

	return t, nil
}
