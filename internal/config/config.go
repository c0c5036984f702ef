package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-api2html/internal/fileutil"
	"github.com/alnah/go-api2html/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrTooManyEntries  = errors.New("list exceeds maximum entries")
	ErrInvalidField    = errors.New("invalid field value")
)

// Field length limits.
const (
	MaxThemeLength    = 50   // Chroma style names are short
	MaxLanguageLength = 32   // "javascript--nodejs"
	MaxPathLength     = 4096 // PATH_MAX on Linux
	MaxURLLength      = 2048 // Browser limit
	MaxLanguages      = 32
	MaxIncludes       = 64
)

// Config holds the optional defaults for a conversion run.
// Every field mirrors a command-line flag; flags always win.
type Config struct {
	Theme     string       `yaml:"theme"`
	Languages []string     `yaml:"languages"`
	Search    *bool        `yaml:"search"` // nil = default (enabled)
	Summary   bool         `yaml:"summary"`
	OmitBody  bool         `yaml:"omitBody"`
	Raw       bool         `yaml:"raw"`
	Resolve   string       `yaml:"resolve"`
	Includes  []string     `yaml:"includes"`
	Logo      LogoConfig   `yaml:"logo"`
	CSS       CSSConfig    `yaml:"css"`
	Assets    AssetsConfig `yaml:"assets"`
}

// LogoConfig defines the custom logo shown above the navigation.
type LogoConfig struct {
	Path string `yaml:"path"`
	URL  string `yaml:"url"` // Link target, requires Path
}

// CSSConfig defines the custom stylesheet block.
type CSSConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"` // Implies Enabled
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// Validate checks field lengths and list sizes.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("theme", c.Theme, MaxThemeLength); err != nil {
		return err
	}

	if len(c.Languages) > MaxLanguages {
		return fmt.Errorf("%w: languages (%d, max %d)", ErrTooManyEntries, len(c.Languages), MaxLanguages)
	}
	for i, lang := range c.Languages {
		if strings.TrimSpace(lang) == "" {
			return fmt.Errorf("%w: languages[%d] is empty", ErrInvalidField, i)
		}
		if err := validateFieldLength(fmt.Sprintf("languages[%d]", i), lang, MaxLanguageLength); err != nil {
			return err
		}
	}

	if len(c.Includes) > MaxIncludes {
		return fmt.Errorf("%w: includes (%d, max %d)", ErrTooManyEntries, len(c.Includes), MaxIncludes)
	}
	for i, inc := range c.Includes {
		if err := validateFieldLength(fmt.Sprintf("includes[%d]", i), inc, MaxPathLength); err != nil {
			return err
		}
	}

	if err := validateFieldLength("resolve", c.Resolve, MaxURLLength); err != nil {
		return err
	}
	if err := validateFieldLength("logo.path", c.Logo.Path, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("logo.url", c.Logo.URL, MaxURLLength); err != nil {
		return err
	}
	if c.Logo.URL != "" && c.Logo.Path == "" {
		return fmt.Errorf("%w: logo.url requires logo.path", ErrInvalidField)
	}
	if err := validateFieldLength("css.path", c.CSS.Path, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}

	return nil
}

// SearchEnabled reports the effective search setting.
func (c *Config) SearchEnabled() bool {
	return c.Search == nil || *c.Search
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a neutral configuration: no overrides, search on.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator or a YAML extension, it's treated
// as a file path. Otherwise, it's treated as a config name and searched in
// standard locations. Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) || hasYAMLExt(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func hasYAMLExt(s string) bool {
	ext := strings.ToLower(filepath.Ext(s))
	return ext == ".yaml" || ext == ".yml"
}

// SearchPaths lists the candidate files for a config name, in lookup order:
// current directory first, then the user config directory.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-api2html", name+ext))
		}
	}

	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
