// =============================================================================
// Polaris Sitemap Generator - Main Entry Point
// =============================================================================
//
// This is the main entry point for the sitemap generator CLI. It delegates
// command execution to the cmd package.
//
// USAGE:
//   sitemapgen generate     - Generate sitemaps from all listings in the input directory
//   sitemapgen validate     - Validate the configuration without generating
//   sitemapgen version      - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Core pipeline (parsing, building, orchestration)
//   - pkg/           : Shared utilities (file discovery, writing, archival)
//
// =============================================================================

package main

import (
	"github.com/ericfordelon/polaris-sitemap-generator/cmd"
)

func main() {
	cmd.Execute()
}
