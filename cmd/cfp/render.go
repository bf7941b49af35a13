package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-cfp"
	"github.com/alnah/go-cfp/internal/config"
	"github.com/alnah/go-cfp/internal/fileutil"
	"github.com/alnah/go-cfp/internal/hints"
)

// runRender writes index.<lang>.html for each selected language.
// A language that fails to load is reported and the others are still written.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	var langs []cfp.Lang
	cfg, err := prepare(flags.common, func(cfg *config.Config) error {
		mergeAssetFlags(flags.assets, cfg)
		langs, err = resolveLangs(flags.source.lang, cfg, true)
		if err != nil {
			return err
		}
		return mergeSourceFlag(flags.source.source, langs, cfg)
	})
	if err != nil {
		return err
	}
	if err := requireSources(langs, cfg); err != nil {
		return err
	}

	logger := newLogger(env.Stderr, flags.common)
	svc, err := newService(cfg, logger)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(flags.output, dirPermissions); err != nil {
		return fmt.Errorf("%w: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory())
	}

	var errs []error
	for _, lang := range langs {
		start := env.Now()
		res, err := svc.Render(ctx, lang)
		if err != nil {
			errs = append(errs, contentError(lang, cfg.Source(lang.String()), err))
			continue
		}

		path := filepath.Join(flags.output, pageFileName(lang))
		if err := fileutil.WriteFileAtomic(path, []byte(res.HTML)); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s: %v", ErrWriteOutput, path, err))
			continue
		}

		logger.Debug("page written", "lang", lang.String(), "path", path, "elapsed", env.Now().Sub(start))
		if !flags.common.quiet {
			fmt.Fprintf(env.Stdout, "Created %s\n", path)
		}
	}
	return errors.Join(errs...)
}

// pageFileName returns the output file name for lang.
func pageFileName(lang cfp.Lang) string {
	return "index." + lang.String() + ".html"
}
