// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"

	"github.com/alnah/go-cfp/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForTimeout returns a hint about increasing the HTTP timeout for slow sources.
func ForTimeout() string {
	return format("for slow sources, raise http.timeout in the config file")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-cfp/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-cfp") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForMissingSource returns a hint for a language with no configured source.
func ForMissingSource(lang string) string {
	return format("pass --source, set CFP_SOURCE_" + strings.ToUpper(lang) +
		", or add sources." + lang + " to the config file")
}

// ForSourceUnavailable returns hints for a source that could not be loaded.
func ForSourceUnavailable(source string) string {
	if fileutil.IsURL(source) {
		return format("check the URL is reachable and returns the markdown file")
	}
	return format("check the file exists, is readable, and is not empty")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForTemplateSetNotFound returns hints for template set not found errors.
func ForTemplateSetNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForListen returns hints for server listen errors.
// In a container, a loopback address is unreachable from the host.
func ForListen(addr string) string {
	var hints []string

	if IsInContainer() && strings.HasPrefix(addr, "127.0.0.1") {
		hints = append(hints, "inside a container, listen on :PORT or 0.0.0.0:PORT")
	}
	hints = append(hints, "check the port is free or pass --addr")

	return formatHints(hints)
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
