package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cfp <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  extract    Print the extracted sections and facts as YAML or JSON")
	fmt.Fprintln(w, "  render     Write the filled call-for-papers page per language")
	fmt.Fprintln(w, "  export     Write topics and facts to an XLSX workbook")
	fmt.Fprintln(w, "  serve      Serve the pages over HTTP")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'cfp help <command>' for details on a specific command.")
}

// printCommonUsage prints the flags shared by every command.
func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs")
}

// printEnvUsage lists the environment overrides.
func printEnvUsage(w io.Writer) {
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  CFP_CONFIG, CFP_LANG, CFP_ADDR, CFP_SOURCE_DE, CFP_SOURCE_EN, CFP_ASSET_PATH")
	fmt.Fprintln(w, "  Flags override environment, environment overrides the config file.")
}

// printExtractUsage prints usage for the extract command.
func printExtractUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cfp extract [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Load one language's markdown and print its sections and facts.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -l, --lang <s>            Language: de, en")
	fmt.Fprintln(w, "  -s, --source <path|url>   Markdown source for --lang")
	fmt.Fprintln(w, "  -f, --format <s>          Output format: yaml, json (default yaml)")
	fmt.Fprintln(w)
	printCommonUsage(w)
	fmt.Fprintln(w)
	printEnvUsage(w)
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cfp render [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Fill the page template and write index.<lang>.html.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -l, --lang <s>            Language: de, en, all")
	fmt.Fprintln(w, "  -s, --source <path|url>   Markdown source for --lang (not with all)")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default .)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Templates:")
	fmt.Fprintln(w, "      --template <name>     Template set name (default \"default\")")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	fmt.Fprintln(w)
	printCommonUsage(w)
	fmt.Fprintln(w)
	printEnvUsage(w)
}

// printExportUsage prints usage for the export command.
func printExportUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cfp export [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write an overview, topics and facts workbook.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -l, --lang <s>            Language: de, en, all (default all)")
	fmt.Fprintln(w, "  -s, --source <path|url>   Markdown source for --lang (not with all)")
	fmt.Fprintln(w, "  -o, --output <file>       Output file (default cfp-YYYYMMDD.xlsx)")
	fmt.Fprintln(w)
	printCommonUsage(w)
	fmt.Fprintln(w)
	printEnvUsage(w)
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cfp serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve the pages. Sources are loaded on every request.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Routes:")
	fmt.Fprintln(w, "  GET /                     Page in the negotiated language (?lang, Accept-Language)")
	fmt.Fprintln(w, "  GET /{lang}               Page in de or en")
	fmt.Fprintln(w, "  GET /{lang}/sections.json Extracted document as JSON")
	fmt.Fprintln(w, "  GET /healthz              Liveness check")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "  -a, --addr <host:port>    Listen address (default :8080)")
	fmt.Fprintln(w, "      --template <name>     Template set name")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	fmt.Fprintln(w)
	printCommonUsage(w)
	fmt.Fprintln(w)
	printEnvUsage(w)
}

// runHelp prints help for a specific command and returns the exit code.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "extract":
		printExtractUsage(env.Stdout)
	case "render":
		printRenderUsage(env.Stdout)
	case "export":
		printExportUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: cfp version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: cfp help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
