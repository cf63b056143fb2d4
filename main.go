package main

import (
	"fmt"
	"os"

	"github.com/roveo/flexls/config"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

var (
	configPath   string
	catalogPath  string
	skipPatterns []string
	lineLimit    int
	logLevel     string
	locale       string
)

var rootCmd = &cobra.Command{
	Use:   "flexls",
	Short: "Language server for Flexia",
	Long: `flexls provides editor support for the Flexia scripting language:
completion from the file's own declarations and the standard library catalog,
go-to-definition across every indexed file, and textual find-references.

It runs as an LSP server for editors, as an MCP server for LLM agents, or
prints a map of the declarations in a directory.`,
	SilenceUsage: true,
}

var lspCmd = &cobra.Command{
	Use:   "lsp",
	Short: "Run as LSP server (communicates via stdio)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return runLSPServer(cfg)
	},
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run as MCP server (communicates via stdio)",
	Long: `Run as an MCP server that communicates via stdio.
Every Flexia file under the working directory is indexed at start.
Exposes tools: index, complete, find_definition, find_references.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("watch") {
			cfg.Watch, _ = cmd.Flags().GetBool("watch")
		}
		return runMCPServer(cfg)
	},
}

var mapCmd = &cobra.Command{
	Use:   "map [path]",
	Short: "Index a directory and print the map to stdout",
	Long: `Index every Flexia file under a directory and print a compact listing of
their declarations (functions, classes and variables) with positions.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "."
		if len(args) > 0 {
			path = args[0]
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		filter, _ := cmd.Flags().GetString("filter")
		return runMap(cfg, path, filter)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Path to a YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "",
		"Path to the standard library catalog (JSON)")

	// Add --skip flag to root (inherited by all subcommands)
	rootCmd.PersistentFlags().StringArrayVar(&skipPatterns, "skip", nil,
		"Path prefixes to skip by default (can be specified multiple times)")

	// Add --limit flag to root (inherited by all subcommands)
	rootCmd.PersistentFlags().IntVar(&lineLimit, "limit", config.DefaultLineLimit,
		"Maximum lines in map output")

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&locale, "locale", "",
		"Locale of completion labels (en, zh)")

	mcpCmd.Flags().Bool("watch", false,
		"Re-index Flexia files when they change on disk")

	// Add --filter flag to map command
	mapCmd.Flags().StringP("filter", "f", "",
		"Only show declarations for files matching this path prefix (file or directory)")

	rootCmd.AddCommand(lspCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(mapCmd)
}

// loadConfig reads the configuration file and applies flags set on the
// command line over it.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("catalog") {
		cfg.Catalog = catalogPath
	}
	if flags.Changed("skip") {
		cfg.Skip = skipPatterns
	}
	if flags.Changed("limit") {
		cfg.LineLimit = lineLimit
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("locale") {
		cfg.Locale = locale
	}
	return cfg, cfg.Validate()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
