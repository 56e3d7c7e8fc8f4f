// =============================================================================
// Polaris Sitemap Generator - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'generate', 'validate')
// are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (sitemapgen)
//   ├── generateCmd (sitemapgen generate)
//   ├── validateCmd (sitemapgen validate)
//   └── versionCmd (sitemapgen version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "sitemapgen",
	Short: "Polaris Sitemap Generator - Build XML sitemaps from URL listing files",
	Long: `Polaris Sitemap Generator is a CLI tool that turns tabular URL listings
(CSV or XLSX, one file per site section) into XML sitemap documents
conforming to the sitemaps.org protocol, carrying Coveo metadata in a
vendor namespace, and produces a sitemap index referencing every
generated document.

Key features:
  - Header-driven column mapping: url, lastmod, and free-form metadata columns
  - Row-level validation that drops bad rows without aborting the file
  - Automatic document splitting at the protocol's URL-count and size limits
  - Deterministic output: document order follows input order exactly

Example usage:
  sitemapgen generate                      # Process all listings in the input directory
  sitemapgen generate --single ./news.csv  # Process one listing file
  sitemapgen validate                      # Check the configuration without generating`,

	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print the help message.
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
