// =============================================================================
// Polaris Sitemap Generator - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which loads and checks the
// configuration without generating anything. Useful for catching a bad
// base URL or a non-positive limit before a scheduled run.
//
// COMMAND USAGE:
//   sitemapgen validate
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ericfordelon/polaris-sitemap-generator/internal/config"
)

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration without generating sitemaps",
	Long: `Load the configuration file, apply defaults, and run the same settings
validation the generate command runs before a generation. Exits non-zero
if the configuration could not be used for a run.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		settings, err := config.ResolveSettings(cfg.Settings())
		if err != nil {
			return err
		}

		fmt.Println("Configuration OK")
		fmt.Printf("  input dir:            %s\n", cfg.InputDir)
		fmt.Printf("  output dir:           %s\n", cfg.OutputDir)
		fmt.Printf("  base URL:             %s\n", settings.BaseURL)
		fmt.Printf("  max URLs per sitemap: %d\n", settings.MaxURLsPerSitemap)
		fmt.Printf("  max sitemap size:     %gMB\n", settings.MaxSitemapSizeMB)
		if len(settings.MetadataFields) > 0 {
			fmt.Printf("  metadata fields:      %v\n", settings.MetadataFields)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
