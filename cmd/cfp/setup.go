package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-cfp"
	"github.com/alnah/go-cfp/internal/assets"
	"github.com/alnah/go-cfp/internal/config"
	"github.com/alnah/go-cfp/internal/fileutil"
	"github.com/alnah/go-cfp/internal/hints"
	"github.com/alnah/go-cfp/internal/loader"
)

// Sentinel errors for CLI operations.
var (
	ErrInvalidArgs     = errors.New("invalid arguments")
	ErrInvalidFormat   = errors.New("invalid output format")
	ErrSourceNeedsLang = errors.New("--source needs a single --lang")
	ErrWriteOutput     = errors.New("failed to write output")
	ErrListen          = errors.New("failed to listen")
)

// File permission constants.
const dirPermissions = 0o750 // rwxr-x---: owner full, group read+execute

// newLogger builds the stderr text logger for a command.
// --verbose enables debug records, --quiet keeps only errors.
func newLogger(w io.Writer, f commonFlags) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case f.quiet:
		level = slog.LevelError
	case f.verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadConfig resolves the configuration with precedence
// env vars > config file > defaults. The config file comes from --config,
// then CFP_CONFIG. Flags are applied by the caller before validate.
func loadConfig(configFlag string) (*config.Config, error) {
	env := loadEnvConfig()

	name := configFlag
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(configSearchPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(env, cfg)
	return cfg, nil
}

// configSearchPaths lists where a config name is looked up, for hints.
func configSearchPaths(name string) []string {
	if fileutil.IsFilePath(name) {
		return []string{name}
	}
	paths := []string{name + ".yaml", name + ".yml"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "go-cfp", name+".yaml"))
	}
	return paths
}

// mergeAssetFlags applies template flags to cfg. CLI values override config values.
func mergeAssetFlags(f assetFlags, cfg *config.Config) {
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
	if f.template != "" {
		cfg.Assets.TemplateSet = f.template
	}
}

// resolveLangs turns a --lang value into languages. Empty selects the
// configured default, "all" (when allowed) every supported language.
func resolveLangs(value string, cfg *config.Config, allowAll bool) ([]cfp.Lang, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		value = cfg.DefaultLang
	}
	if allowAll && strings.EqualFold(value, langAll) {
		return cfp.Languages(), nil
	}

	lang, err := cfp.ParseLang(value)
	if err != nil {
		return nil, err
	}
	return []cfp.Lang{lang}, nil
}

// mergeSourceFlag applies --source to the single selected language.
func mergeSourceFlag(source string, langs []cfp.Lang, cfg *config.Config) error {
	if source == "" {
		return nil
	}
	if len(langs) != 1 {
		return ErrSourceNeedsLang
	}
	cfg.SetSource(langs[0].String(), source)
	return nil
}

// requireSources fails early when a selected language has no source.
func requireSources(langs []cfp.Lang, cfg *config.Config) error {
	for _, lang := range langs {
		if cfg.Source(lang.String()) == "" {
			return fmt.Errorf("%w: %s%s", loader.ErrNoSource, lang, hints.ForMissingSource(lang.String()))
		}
	}
	return nil
}

// newService wires loader, extractor and templates from cfg.
func newService(cfg *config.Config, logger *slog.Logger) (*cfp.Service, error) {
	resolver, err := assets.NewAssetResolver(cfg.Assets.BasePath)
	if err != nil {
		return nil, fmt.Errorf("asset path: %w", err)
	}

	extractorOpts := []cfp.Option{cfp.WithLogger(logger)}
	for key, m := range cfg.Markers {
		lang, err := cfp.ParseLang(key)
		if err != nil {
			return nil, fmt.Errorf("markers: %w", err)
		}
		extractorOpts = append(extractorOpts, cfp.WithMarkers(lang, cfp.Markers{
			Intro:     m.Intro,
			Quote:     m.Quote,
			Topics:    m.Topics,
			TopicsEnd: m.TopicsEnd,
			Facts:     m.Facts,
			Closing:   m.Closing,
		}))
	}

	fetcher := loader.NewHTTPFetcher(
		loader.WithTimeout(cfg.HTTP.TimeoutDuration()),
		loader.WithMaxRetries(cfg.HTTP.MaxRetries),
		loader.WithHTTPLogger(logger),
	)
	sources := loader.New(map[string]string{
		cfp.LangDE.String(): cfg.Sources.DE,
		cfp.LangEN.String(): cfg.Sources.EN,
	}, loader.WithHTTPFetcher(fetcher), loader.WithLogger(logger))

	svc, err := cfp.NewService(sources,
		cfp.WithExtractor(cfp.NewExtractor(extractorOpts...)),
		cfp.WithAssetLoader(resolver),
		cfp.WithTemplateSet(cfg.Assets.TemplateSet),
		cfp.WithServiceLogger(logger),
	)
	if err != nil {
		if errors.Is(err, assets.ErrTemplateSetNotFound) {
			return nil, fmt.Errorf("%w%s", err, hints.ForTemplateSetNotFound(assets.NewEmbeddedLoader().TemplateSetNames()))
		}
		return nil, err
	}
	return svc, nil
}

// prepare loads and validates the config for a command.
func prepare(common commonFlags, apply func(*config.Config) error) (*config.Config, error) {
	cfg, err := loadConfig(common.config)
	if err != nil {
		return nil, err
	}
	if err := apply(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// contentError replaces a load failure with one generic message per
// language. Details are in the debug and error logs.
func contentError(lang cfp.Lang, source string, err error) error {
	if !errors.Is(err, cfp.ErrContentUnavailable) {
		return err
	}
	hint := hints.ForSourceUnavailable(source)
	if isTimeout(err) {
		hint += hints.ForTimeout()
	}
	return fmt.Errorf("%s: %w%s", lang, cfp.ErrContentUnavailable, hint)
}

// isTimeout reports whether err carries a network timeout.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
