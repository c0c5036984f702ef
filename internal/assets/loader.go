package assets

// AssetLoader defines the contract for loading page assets by name.
// Implementations may load from embedded assets, filesystem, S3, database, etc.
// Every method returns ErrInvalidAssetName if the name contains invalid characters.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML template by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(name string) (string, error)

	// LoadScript loads a script by name (without .js extension).
	// Returns ErrScriptNotFound if the script doesn't exist.
	LoadScript(name string) (string, error)

	// LoadSample loads a code sample template by language key.
	// Returns ErrSampleNotFound if no template exists for the language.
	LoadSample(language string) (string, error)
}

// kind describes where assets of one type live and how a miss is reported.
type kind struct {
	dir      string
	ext      string
	notFound error
}

var (
	styleKind    = kind{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	templateKind = kind{dir: "templates", ext: ".html", notFound: ErrTemplateNotFound}
	scriptKind   = kind{dir: "scripts", ext: ".js", notFound: ErrScriptNotFound}
	sampleKind   = kind{dir: "samples", ext: ".tmpl", notFound: ErrSampleNotFound}
)

// Built-in asset names.
const (
	StyleScreen    = "screen"
	StylePrint     = "print"
	TemplateLayout = "layout"
	ScriptTabs     = "tabs"
	ScriptSearch   = "search"
)
