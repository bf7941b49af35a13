package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alnah/go-cfp/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides container-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // CFP_CONFIG: config file name or path
	Lang       string // CFP_LANG: default language
	Addr       string // CFP_ADDR: server listen address
	SourceDE   string // CFP_SOURCE_DE: German markdown path or URL
	SourceEN   string // CFP_SOURCE_EN: English markdown path or URL
	AssetPath  string // CFP_ASSET_PATH: custom template directory
}

// knownEnvVars lists valid CFP_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"CFP_CONFIG":     true,
	"CFP_LANG":       true,
	"CFP_ADDR":       true,
	"CFP_SOURCE_DE":  true,
	"CFP_SOURCE_EN":  true,
	"CFP_ASSET_PATH": true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	return &envConfig{
		ConfigPath: os.Getenv("CFP_CONFIG"),
		Lang:       os.Getenv("CFP_LANG"),
		Addr:       os.Getenv("CFP_ADDR"),
		SourceDE:   os.Getenv("CFP_SOURCE_DE"),
		SourceEN:   os.Getenv("CFP_SOURCE_EN"),
		AssetPath:  os.Getenv("CFP_ASSET_PATH"),
	}
}

// warnUnknownEnvVars logs warnings for unrecognized CFP_* variables.
// Helps catch typos like CFP_SOURCE_FR or CFP_ASSETS_PATH.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "CFP_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies set environment variables over the file config.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later by each command).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Lang != "" {
		cfg.DefaultLang = strings.ToLower(env.Lang)
	}
	if env.Addr != "" {
		cfg.Server.Addr = env.Addr
	}
	if env.SourceDE != "" {
		cfg.Sources.DE = env.SourceDE
	}
	if env.SourceEN != "" {
		cfg.Sources.EN = env.SourceEN
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
}
