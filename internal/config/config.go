package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-cfp/internal/fileutil"
	"github.com/alnah/go-cfp/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxSourceLength      = 2048 // Path or URL
	MaxLangLength        = 10   // "de", "en-GB"
	MaxBasePathLength    = 4096 // Filesystem path
	MaxTemplateSetLength = 64   // Matches assets.MaxAssetNameLength
	MaxAddrLength        = 100  // "127.0.0.1:8080"
	MaxMarkerLength      = 200  // One marker phrase
	MaxRetriesLimit      = 10
)

// Supported language keys for sources and marker overrides.
var supportedLangs = []string{"de", "en"}

// Config holds all configuration for extraction, rendering and serving.
type Config struct {
	Sources     SourcesConfig            `yaml:"sources"`
	DefaultLang string                   `yaml:"defaultLang"`
	Assets      AssetsConfig             `yaml:"assets"`
	Server      ServerConfig             `yaml:"server"`
	HTTP        HTTPConfig               `yaml:"http"`
	Markers     map[string]MarkersConfig `yaml:"markers"`
}

// SourcesConfig maps each language to a markdown file path or http(s) URL.
type SourcesConfig struct {
	DE string `yaml:"de"`
	EN string `yaml:"en"`
}

// AssetsConfig defines template loading options.
type AssetsConfig struct {
	BasePath    string `yaml:"basePath"`    // Empty = use embedded templates
	TemplateSet string `yaml:"templateSet"` // Name under templates/ (default: "default")
}

// ServerConfig defines the page server options.
type ServerConfig struct {
	Addr        string `yaml:"addr"`
	ReadTimeout string `yaml:"readTimeout"` // Go duration, e.g. "10s"
}

// HTTPConfig defines options for loading sources over HTTP.
type HTTPConfig struct {
	Timeout    string `yaml:"timeout"`    // Go duration per request
	MaxRetries int    `yaml:"maxRetries"` // Retries on 429 Too Many Requests
}

// MarkersConfig overrides marker phrases for one language.
// Empty fields keep the built-in phrase.
type MarkersConfig struct {
	Intro     string `yaml:"intro"`
	Quote     string `yaml:"quote"`
	Topics    string `yaml:"topics"`
	TopicsEnd string `yaml:"topicsEnd"`
	Facts     string `yaml:"facts"`
	Closing   string `yaml:"closing"`
}

// Source returns the configured source for lang, or "" if none.
func (c *Config) Source(lang string) string {
	switch lang {
	case "de":
		return c.Sources.DE
	case "en":
		return c.Sources.EN
	}
	return ""
}

// SetSource replaces the configured source for lang.
func (c *Config) SetSource(lang, source string) {
	switch lang {
	case "de":
		c.Sources.DE = source
	case "en":
		c.Sources.EN = source
	}
}

// ReadTimeoutDuration returns the parsed server read timeout (0 when unset).
func (s ServerConfig) ReadTimeoutDuration() time.Duration {
	d, _ := parseDuration(s.ReadTimeout)
	return d
}

// TimeoutDuration returns the parsed HTTP request timeout (0 when unset).
func (h HTTPConfig) TimeoutDuration() time.Duration {
	d, _ := parseDuration(h.Timeout)
	return d
}

// Validate checks languages, field lengths and durations.
// Called automatically by LoadConfig, but available for callers who build
// a Config by hand or after applying environment overrides.
func (c *Config) Validate() error {
	if err := validateLang("defaultLang", c.DefaultLang); err != nil {
		return err
	}
	if err := validateFieldLength("sources.de", c.Sources.DE, MaxSourceLength); err != nil {
		return err
	}
	if err := validateFieldLength("sources.en", c.Sources.EN, MaxSourceLength); err != nil {
		return err
	}

	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxBasePathLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.templateSet", c.Assets.TemplateSet, MaxTemplateSetLength); err != nil {
		return err
	}

	if err := validateFieldLength("server.addr", c.Server.Addr, MaxAddrLength); err != nil {
		return err
	}
	if _, err := parseDuration(c.Server.ReadTimeout); err != nil {
		return fmt.Errorf("%w: server.readTimeout: %v", ErrInvalidValue, err)
	}
	if _, err := parseDuration(c.HTTP.Timeout); err != nil {
		return fmt.Errorf("%w: http.timeout: %v", ErrInvalidValue, err)
	}
	if c.HTTP.MaxRetries < 0 || c.HTTP.MaxRetries > MaxRetriesLimit {
		return fmt.Errorf("%w: http.maxRetries: must be between 0 and %d, got %d", ErrInvalidValue, MaxRetriesLimit, c.HTTP.MaxRetries)
	}

	for lang, m := range c.Markers {
		if !isSupportedLang(lang) {
			return fmt.Errorf("%w: markers.%s: unsupported language (must be de or en)", ErrInvalidValue, lang)
		}
		fields := []struct{ name, value string }{
			{"intro", m.Intro},
			{"quote", m.Quote},
			{"topics", m.Topics},
			{"topicsEnd", m.TopicsEnd},
			{"facts", m.Facts},
			{"closing", m.Closing},
		}
		for _, f := range fields {
			if err := validateFieldLength("markers."+lang+"."+f.name, f.value, MaxMarkerLength); err != nil {
				return err
			}
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateLang accepts an empty value or a supported base language.
func validateLang(fieldName, value string) error {
	if err := validateFieldLength(fieldName, value, MaxLangLength); err != nil {
		return err
	}
	if value == "" || isSupportedLang(value) {
		return nil
	}
	return fmt.Errorf("%w: %s: unsupported language %q (must be de or en)", ErrInvalidValue, fieldName, value)
}

func isSupportedLang(lang string) bool {
	for _, l := range supportedLangs {
		if strings.EqualFold(lang, l) {
			return true
		}
	}
	return false
}

// parseDuration treats an empty string as zero.
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %q", s)
	}
	return d, nil
}

// DefaultConfig returns the configuration used when no file is given.
// No sources are set: they must come from a file, the environment or flags.
func DefaultConfig() *Config {
	return &Config{
		DefaultLang: "de",
		Assets:      AssetsConfig{BasePath: "", TemplateSet: "default"},
		Server:      ServerConfig{Addr: ":8080", ReadTimeout: "10s"},
		HTTP:        HTTPConfig{Timeout: "15s", MaxRetries: 3},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
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

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-cfp/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-cfp", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
