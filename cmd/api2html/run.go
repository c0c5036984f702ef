package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/alnah/go-api2html"
	"github.com/alnah/go-api2html/internal/config"
	"github.com/alnah/go-api2html/internal/fileutil"
	"github.com/alnah/go-api2html/internal/hints"
)

// Sentinel errors for the pipeline runner.
var (
	ErrSourceNotFound = errors.New("Source file wasn't found")
	ErrWriteOutput    = errors.New("Failed to write output file")
)

// Stage failure messages.
const (
	msgParseFailed      = "Failed to parse the source OpenAPI document"
	msgConversionFailed = "Error during conversion to markdown:"
	msgRenderFailed     = "Error during rendering:"
	msgWriteFailed      = "Failed to write output file:"
)

// outputPermissions is rw-r--r--: owner read+write, others read.
const outputPermissions = 0o644

// themeHintCount caps the themes listed in the unknown theme warning.
const themeHintCount = 8

// run executes one command line (without the program name).
func run(ctx context.Context, args []string, env *Environment) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	if env.SetMaxProcs != nil {
		env.SetMaxProcs(opts.verbose, env.Stderr)
	}

	switch {
	case opts.help:
		printUsage(env.Stdout)
		return nil
	case opts.version:
		fmt.Fprintf(env.Stdout, "%s %s\n", programName, Version)
		return nil
	case opts.completion != "":
		return GenerateCompletion(env.Stdout, Shell(opts.completion))
	}

	rep := newReporter(env, opts.quiet, opts.verbose)
	warnUnknownEnvVars(env.Stderr)

	envCfg := loadEnvConfig()
	if err := resolveConfig(opts, envCfg); err != nil {
		return withConfigHint(err, configName(opts, envCfg))
	}

	return runPipeline(ctx, opts, env, rep)
}

// runPipeline reads, converts, renders and writes one document. Each step
// runs only if the previous one succeeded.
func runPipeline(ctx context.Context, opts *cliOptions, env *Environment, rep *reporter) error {
	t, err := translate(opts, api2html.DefaultLanguageTable(), env.ReadFile)
	if err != nil {
		return withTranslateHint(err)
	}
	if t.hasCSS {
		rep.success("Read custom css file!")
	}
	if !api2html.IsKnownTheme(t.conv.Theme) {
		rep.warn(fmt.Sprintf("unknown theme %q, using the fallback style%s", t.conv.Theme, hints.ForTheme(firstThemes())))
	}

	var converterOpts []api2html.Option
	if opts.assetPath != "" {
		converterOpts = append(converterOpts, api2html.WithAssetPath(opts.assetPath))
	}
	conv, err := api2html.NewConverter(converterOpts...)
	if err != nil {
		return err
	}

	data, err := env.ReadFile(opts.source)
	if err != nil {
		return &stageError{
			message: fmt.Sprintf("%s: %s", ErrSourceNotFound, opts.source),
			cause:   fmt.Errorf("%w: %w", ErrSourceNotFound, err),
			hint:    hints.ForSourceNotFound(opts.source),
		}
	}
	rep.success("Read source file!")

	doc, err := conv.ParseDocument(data)
	if err != nil {
		return &stageError{message: msgParseFailed, cause: err}
	}
	rep.debugf("parsed %s document %q", doc.Version(), doc.Title())

	markdown, err := conv.ToMarkdown(ctx, doc, t.conv)
	if err != nil {
		se := &stageError{message: msgConversionFailed, cause: err, detail: true}
		if errors.Is(err, api2html.ErrExternalRef) {
			se.hint = hints.ForExternalRef()
		}
		return se
	}
	rep.success("Converted OpenAPI docs to markdown!")

	page, err := conv.ToHTML(ctx, markdown, t.render)
	if err != nil {
		se := &stageError{message: msgRenderFailed, cause: err, detail: true}
		if errors.Is(err, api2html.ErrReadLogo) {
			se.hint = hints.ForLogo()
		}
		return se
	}
	rep.success("Rendered HTML from markdown!")

	if t.hasCSS {
		page = api2html.ApplyCustomCSS(page, t.css)
	}

	if err := fileutil.WriteFileAtomic(opts.output, []byte(page), outputPermissions); err != nil {
		return &stageError{
			message: msgWriteFailed,
			cause:   fmt.Errorf("%w: %w", ErrWriteOutput, err),
			detail:  true,
			hint:    hints.ForOutputDirectory(),
		}
	}
	rep.success("Wrote output file!")
	rep.success("Finished!")
	return nil
}

// withTranslateHint moves the language list of invalid language errors
// into a hint line.
func withTranslateHint(err error) error {
	var langErr *api2html.InvalidLanguageError
	if errors.As(err, &langErr) {
		return &stageError{
			message: fmt.Sprintf("%s: %q", api2html.ErrInvalidLanguage, langErr.Value),
			cause:   err,
			hint:    hints.ForLanguages(langErr.Valid),
		}
	}
	return err
}

// withConfigHint appends lookup locations to config not found errors.
func withConfigHint(err error, name string) error {
	if !errors.Is(err, config.ErrConfigNotFound) {
		return err
	}
	return &stageError{message: err.Error(), cause: err, hint: hints.ForConfigNotFound(config.SearchPaths(name))}
}

// configName returns the config requested by flag or environment.
func configName(opts *cliOptions, env *envConfig) string {
	if opts.config != "" {
		return opts.config
	}
	return env.ConfigPath
}

// firstThemes returns a few theme names for hints.
func firstThemes() []string {
	themes := api2html.Themes()
	if len(themes) > themeHintCount {
		themes = themes[:themeHintCount]
	}
	return themes
}
