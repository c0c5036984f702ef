// Package assets provides the stylesheets, page layout, scripts and code
// sample templates used to build the HTML reference page.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in assets)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the primary loader used by the converter. It tries the
// custom FilesystemLoader first, falling back to EmbeddedLoader if the asset
// is not found. This enables overriding specific assets while keeping defaults.
//
// # Directory Structure
//
// Assets are organized by kind:
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css       # screen.css, print.css
//	├── templates/
//	│   └── {name}.html      # layout.html
//	├── scripts/
//	│   └── {name}.js        # tabs.js, search.js
//	└── samples/
//	    └── {name}.tmpl      # one code sample template per language key
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
