// Package assets provides the HTML templates and base style sheet used to
// print and preview documents.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by the converter. It tries the custom
// FilesystemLoader first and falls back to the embedded copy when the asset is
// not found, so users can override a single template and keep the rest.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── base.css          # reset and print rules shared by every theme
//	└── templates/
//	    ├── print.html        # shell printed by the Chrome encoder
//	    ├── preview.html      # shell of the HTML preview
//	    └── mermaid.html      # host page for the diagram engine
//
// Templates use html/template syntax. Theme CSS is generated from the
// resolved style sheet and injected into the shells.
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
