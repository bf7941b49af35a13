package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// langAll selects every supported language.
const langAll = "all"

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// sourceFlags selects the language and optionally overrides its source.
type sourceFlags struct {
	lang   string
	source string
}

// assetFlags holds template-related flags.
type assetFlags struct {
	template  string // Template set name
	assetPath string // Override asset directory
}

// extractFlags holds all flags for the extract command.
type extractFlags struct {
	common commonFlags
	source sourceFlags
	format string
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common commonFlags
	source sourceFlags
	assets assetFlags
	output string
}

// exportFlags holds all flags for the export command.
type exportFlags struct {
	common commonFlags
	source sourceFlags
	output string
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common commonFlags
	assets assetFlags
	addr   string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
}

// addSourceFlags adds language and source flags to a FlagSet.
func addSourceFlags(fs *flag.FlagSet, f *sourceFlags, langUsage string) {
	fs.StringVarP(&f.lang, "lang", "l", "", langUsage)
	fs.StringVarP(&f.source, "source", "s", "", "markdown file path or http(s) URL for --lang")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.template, "template", "", "template set name")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// newFlagSet creates a FlagSet that reports errors and usage to w.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parseFlagSet parses args and rejects positional arguments.
func parseFlagSet(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrInvalidArgs, err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrInvalidArgs, fs.Arg(0))
	}
	return nil
}

// parseExtractFlags parses extract command flags.
func parseExtractFlags(args []string, w io.Writer) (*extractFlags, error) {
	f := &extractFlags{}
	fs := newFlagSet("extract", w, printExtractUsage)

	fs.StringVarP(&f.format, "format", "f", formatYAML, "output format: yaml, json")
	addSourceFlags(fs, &f.source, "language: de, en (default from config)")
	addCommonFlags(fs, &f.common)

	if err := parseFlagSet(fs, args); err != nil {
		return nil, err
	}
	return f, nil
}

// parseRenderFlags parses render command flags.
func parseRenderFlags(args []string, w io.Writer) (*renderFlags, error) {
	f := &renderFlags{}
	fs := newFlagSet("render", w, printRenderUsage)

	fs.StringVarP(&f.output, "output", "o", ".", "output directory")
	addSourceFlags(fs, &f.source, "language: de, en, all (default from config)")
	addAssetFlags(fs, &f.assets)
	addCommonFlags(fs, &f.common)

	if err := parseFlagSet(fs, args); err != nil {
		return nil, err
	}
	return f, nil
}

// parseExportFlags parses export command flags.
func parseExportFlags(args []string, w io.Writer) (*exportFlags, error) {
	f := &exportFlags{}
	fs := newFlagSet("export", w, printExportUsage)

	fs.StringVarP(&f.output, "output", "o", "", "output .xlsx file (default cfp-YYYYMMDD.xlsx)")
	addSourceFlags(fs, &f.source, "language: de, en, all (default all)")
	addCommonFlags(fs, &f.common)

	if err := parseFlagSet(fs, args); err != nil {
		return nil, err
	}
	if f.source.lang == "" {
		f.source.lang = langAll
	}
	return f, nil
}

// parseServeFlags parses serve command flags.
func parseServeFlags(args []string, w io.Writer) (*serveFlags, error) {
	f := &serveFlags{}
	fs := newFlagSet("serve", w, printServeUsage)

	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (default from config, :8080)")
	addAssetFlags(fs, &f.assets)
	addCommonFlags(fs, &f.common)

	if err := parseFlagSet(fs, args); err != nil {
		return nil, err
	}
	return f, nil
}
