package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/alnah/go-cfp"
	"github.com/alnah/go-cfp/internal/config"
	"github.com/alnah/go-cfp/internal/yamlutil"
)

// Output formats of the extract command.
const (
	formatYAML = "yaml"
	formatJSON = "json"
)

// runExtract loads one language and prints its document.
func runExtract(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseExtractFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	format := strings.ToLower(flags.format)
	if format != formatYAML && format != formatJSON {
		return fmt.Errorf("%w: %q (must be yaml or json)", ErrInvalidFormat, flags.format)
	}

	var langs []cfp.Lang
	cfg, err := prepare(flags.common, func(cfg *config.Config) error {
		langs, err = resolveLangs(flags.source.lang, cfg, false)
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

	svc, err := newService(cfg, newLogger(env.Stderr, flags.common))
	if err != nil {
		return err
	}

	lang := langs[0]
	doc, err := svc.Load(ctx, lang)
	if err != nil {
		return contentError(lang, cfg.Source(lang.String()), err)
	}

	return writeDocument(env.Stdout, doc, format)
}

// writeDocument encodes doc as YAML or JSON.
func writeDocument(w io.Writer, doc *cfp.Document, format string) error {
	if format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(doc)
	}
	return yamlutil.Encode(w, doc)
}
