package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/alnah/go-api2html/internal/config"
)

// envPrefix marks the environment variables read by the command.
const envPrefix = "API2HTML_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // API2HTML_CONFIG: config file name or path
	Theme      string // API2HTML_THEME: highlight theme
	Languages  string // API2HTML_LANGUAGES: comma-separated language keys
	AssetPath  string // API2HTML_ASSET_PATH: custom asset directory
	Logo       string // API2HTML_LOGO: custom logo path
	LogoURL    string // API2HTML_LOGO_URL: custom logo link target
	CSSPath    string // API2HTML_CSS_PATH: custom CSS file
}

// knownEnvVars lists valid API2HTML_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"API2HTML_CONFIG":     true,
	"API2HTML_THEME":      true,
	"API2HTML_LANGUAGES":  true,
	"API2HTML_ASSET_PATH": true,
	"API2HTML_LOGO":       true,
	"API2HTML_LOGO_URL":   true,
	"API2HTML_CSS_PATH":   true,
}

// sortedEnvVars returns the known variable names in order.
func sortedEnvVars() []string {
	names := make([]string, 0, len(knownEnvVars))
	for name := range knownEnvVars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	return &envConfig{
		ConfigPath: os.Getenv("API2HTML_CONFIG"),
		Theme:      os.Getenv("API2HTML_THEME"),
		Languages:  os.Getenv("API2HTML_LANGUAGES"),
		AssetPath:  os.Getenv("API2HTML_ASSET_PATH"),
		Logo:       os.Getenv("API2HTML_LOGO"),
		LogoURL:    os.Getenv("API2HTML_LOGO_URL"),
		CSSPath:    os.Getenv("API2HTML_CSS_PATH"),
	}
}

// warnUnknownEnvVars prints a warning for each unrecognized API2HTML_*
// variable, in name order.
func warnUnknownEnvVars(w io.Writer) {
	var unknown []string
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name := strings.SplitN(env, "=", 2)[0]
		if !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig overwrites config values with the environment variables
// that are set, so that: CLI flags > env vars > config file > defaults.
// CLI flags are applied afterwards by mergeConfig.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Theme != "" {
		cfg.Theme = env.Theme
	}
	if langs := splitList(env.Languages); len(langs) > 0 {
		cfg.Languages = langs
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.Logo != "" {
		cfg.Logo.Path = env.Logo
	}
	if env.LogoURL != "" {
		cfg.Logo.URL = env.LogoURL
	}
	if env.CSSPath != "" {
		cfg.CSS.Path = env.CSSPath
	}
}

// mergeConfig fills every option not given on the command line from cfg.
func mergeConfig(opts *cliOptions, cfg *config.Config) {
	set := func(name string) bool { return opts.changed[name] }

	if !set("theme") && cfg.Theme != "" {
		opts.theme = cfg.Theme
	}
	if !set("languages") && len(cfg.Languages) > 0 {
		opts.languages = strings.Join(cfg.Languages, ",")
	}
	if !set("search") && !set("no-search") && cfg.Search != nil {
		opts.search = cfg.SearchEnabled()
	}
	if !set("summary") && cfg.Summary {
		opts.summary = true
	}
	if !set("omitBody") && cfg.OmitBody {
		opts.omitBody = true
	}
	if !set("raw") && cfg.Raw {
		opts.raw = true
	}
	if !set("resolve") && cfg.Resolve != "" {
		opts.resolve = cfg.Resolve
	}
	if !set("includes") && len(cfg.Includes) > 0 {
		opts.includes = strings.Join(cfg.Includes, ",")
	}
	if !set("customLogo") && cfg.Logo.Path != "" {
		opts.logo = cfg.Logo.Path
	}
	if !set("customLogoUrl") && cfg.Logo.URL != "" {
		opts.logoURL = cfg.Logo.URL
	}
	if !set("customCss") && cfg.CSS.Enabled {
		opts.customCSS = true
	}
	if !set("customCssPath") && cfg.CSS.Path != "" {
		opts.customCSSPath = cfg.CSS.Path
	}
	if !set("asset-path") && cfg.Assets.BasePath != "" {
		opts.assetPath = cfg.Assets.BasePath
	}
}

// resolveConfig loads the config named by --config or API2HTML_CONFIG,
// applies environment overrides and merges the result into opts.
func resolveConfig(opts *cliOptions, env *envConfig) error {
	cfg := config.DefaultConfig()

	path := opts.config
	if path == "" {
		path = env.ConfigPath
	}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	applyEnvConfig(env, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	mergeConfig(opts, cfg)
	return nil
}
