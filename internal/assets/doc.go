// Package assets provides the HTML templates a call-for-papers page is rendered with.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (default template set)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by the service. It tries the custom
// FilesystemLoader first, falling back to EmbeddedLoader if the template set
// is not found. This enables replacing the page while keeping the defaults.
//
// # Directory Structure
//
//	{basePath}/
//	└── templates/
//	    └── {name}/
//	        ├── page.html        # Page skeleton with slot elements
//	        ├── topics.html      # One block per topic entry
//	        └── facts.html       # Label/value list
//
// The page template must contain elements with the ids intro-text,
// quote-text, topics-content and facts-content.
//
// # Security
//
// Template set names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
