package main

import (
	"context"
	"fmt"

	"github.com/alnah/go-cfp"
	"github.com/alnah/go-cfp/internal/config"
	"github.com/alnah/go-cfp/internal/export"
	"github.com/alnah/go-cfp/internal/fileutil"
)

// runExport loads the selected languages and writes one workbook.
// Every language must load: a partial workbook is never written.
func runExport(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseExportFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	var langs []cfp.Lang
	cfg, err := prepare(flags.common, func(cfg *config.Config) error {
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

	output := flags.output
	if output == "" {
		output = "cfp-" + env.Now().Format("20060102")
	}
	output, err = fileutil.EnsureExtension(output, "xlsx")
	if err != nil {
		return fmt.Errorf("output path: %w", err)
	}

	logger := newLogger(env.Stderr, flags.common)
	svc, err := newService(cfg, logger)
	if err != nil {
		return err
	}

	docs := make([]*cfp.Document, 0, len(langs))
	for _, lang := range langs {
		doc, err := svc.Load(ctx, lang)
		if err != nil {
			return contentError(lang, cfg.Source(lang.String()), err)
		}
		docs = append(docs, doc)
	}

	data, err := export.NewXLSXExporter(logger).Export(ctx, docs)
	if err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(output, data); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteOutput, output, err)
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", output)
	}
	return nil
}
