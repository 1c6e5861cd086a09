package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpdf <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert markdown files to PDF (default)")
	fmt.Fprintln(w, "  preview    Render a markdown file as themed HTML")
	fmt.Fprintln(w, "  themes     List, show, create or delete custom themes")
	fmt.Fprintln(w, "  doctor     Check Chrome, mermaid-cli and the environment")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdpdf help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpdf convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert markdown files to PDF.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>        Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>        Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>          Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>          Per-file timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --preview              Also write an HTML preview")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --title <s>            Document title (\"\" = first H1)")
	fmt.Fprintln(w, "      --author <s>           Document author")
	fmt.Fprintln(w, "      --subject <s>          Document subject")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>        Page size: a3, a4, a5, letter, legal")
	fmt.Fprintln(w, "      --orientation <s>      Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <pt>          Margin on every side, in points")
	fmt.Fprintln(w, "      --margin-top <pt>      Top margin (also -right, -bottom, -left)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "  -s, --style <s>            Preset (modern, classic, minimal, technical) or theme id")
	fmt.Fprintln(w, "      --themes-dir <path>    Custom theme directory")
	fmt.Fprintln(w, "      --emoji <s>            Emoji handling: remove, replace")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Diagrams:")
	fmt.Fprintln(w, "      --no-diagrams          Render mermaid fences as code")
	fmt.Fprintln(w, "      --diagram-engine <s>   Engine: browser, cli")
	fmt.Fprintln(w, "      --mermaid-script <s>   mermaid.js path or URL")
	fmt.Fprintln(w, "      --diagram-scale <f>    Supersampling factor (1-4)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --encoder <s>          PDF encoder: native, chrome")
	fmt.Fprintln(w, "      --page-numbers         Number pages (native encoder)")
	fmt.Fprintln(w, "      --asset-path <path>    Custom asset directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                Only show errors")
	fmt.Fprintln(w, "  -v, --verbose              Show detailed timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MDPDF_* variables override the config file; flags override both.")
}

// printThemesUsage prints usage for the themes command.
func printThemesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpdf themes <list|show|create|delete> [args] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Manage custom themes.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  list               List presets and custom themes")
	fmt.Fprintln(w, "  show <id>          Print a theme as YAML")
	fmt.Fprintln(w, "  create <file>      Add a theme from a YAML file")
	fmt.Fprintln(w, "  delete <id>        Remove a custom theme")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>        Config file name or path")
	fmt.Fprintln(w, "      --themes-dir <path>    Custom theme directory")
}

// printPreviewUsage prints usage for the preview command.
func printPreviewUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpdf preview <file.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a markdown file as a standalone HTML page.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>        Output HTML file")
	fmt.Fprintln(w, "  -c, --config <name>        Config file name or path")
	fmt.Fprintln(w, "  -s, --style <s>            Preset or theme id")
	fmt.Fprintln(w, "      --themes-dir <path>    Custom theme directory")
	fmt.Fprintln(w, "      --mermaid-script <s>   mermaid.js path or URL")
	fmt.Fprintln(w, "      --asset-path <path>    Custom asset directory")
	fmt.Fprintln(w, "  -q, --quiet                Only show errors")
	fmt.Fprintln(w, "  -v, --verbose              Show debug logs")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "themes":
		printThemesUsage(env.Stdout)
	case "preview":
		printPreviewUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: mdpdf doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check Chrome, mermaid-cli, the theme directory and the environment.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdpdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdpdf help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
