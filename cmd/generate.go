// =============================================================================
// Polaris Sitemap Generator - Generate Command
// =============================================================================
//
// This file defines the 'generate' command, the main command for turning
// URL listing files into sitemap documents and the sitemap index.
//
// COMMAND USAGE:
//   sitemapgen generate [flags]
//
// FLAGS:
//   --input      : Input directory containing listing files
//   --output     : Output directory for the generated XML
//   --base-url   : Public URL prefix for the generated files
//   --single     : Process one listing file instead of a directory
//   --dry-run    : Run the pipeline but write nothing
//
// PROCESSING PIPELINE:
//   1. Load configuration and apply flag overrides
//   2. Discover listing files (or take the --single file)
//   3. Open each listing as a row stream (CSV or XLSX)
//   4. Run the generator: parse -> build -> index
//   5. Write every document the manifest carries
//   6. Archive successfully processed listings
//   7. Print the run summary
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ericfordelon/polaris-sitemap-generator/internal/config"
	"github.com/ericfordelon/polaris-sitemap-generator/internal/csvparser"
	"github.com/ericfordelon/polaris-sitemap-generator/internal/generator"
	"github.com/ericfordelon/polaris-sitemap-generator/internal/types"
	"github.com/ericfordelon/polaris-sitemap-generator/internal/xlsxparser"
	"github.com/ericfordelon/polaris-sitemap-generator/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// inputDir overrides the configured input directory.
var inputDir string

// outputDir overrides the configured output directory.
var outputDir string

// baseURL overrides the configured base URL.
var baseURL string

// singleFile processes one listing file instead of scanning the input dir.
var singleFile string

// dryRun runs the pipeline without writing or archiving anything.
var dryRun bool

// =============================================================================
// GENERATE COMMAND DEFINITION
// =============================================================================

// generateCmd represents the 'generate' command.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate sitemap documents and the sitemap index from URL listings",
	Long: `The generate command scans the input directory for URL listing files
(*.csv, *.xlsx), converts each into one or more sitemap XML documents, and
writes a sitemap index referencing everything that was generated.

Each listing is processed independently: rows with a missing or malformed
URL are dropped with a warning, a listing with zero valid rows is marked
failed, and neither stops the remaining listings from being processed.
Successfully processed listings are moved to the archive directory.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&inputDir, "input", "",
		"Input directory containing listing files (overrides config)")
	generateCmd.Flags().StringVar(&outputDir, "output", "",
		"Output directory for generated XML files (overrides config)")
	generateCmd.Flags().StringVar(&baseURL, "base-url", "",
		"Public base URL for the generated sitemap files (overrides config)")
	generateCmd.Flags().StringVar(&singleFile, "single", "",
		"Process only this listing file instead of the input directory")
	generateCmd.Flags().BoolVar(&dryRun, "dry-run", false,
		"Run the pipeline without writing output files")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runGenerate orchestrates one generation run end to end.
func runGenerate(cmd *cobra.Command) error {
	startTime := time.Now()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlagOverrides(cfg, cmd)

	// Surface configuration problems before touching any input.
	settings, err := config.ResolveSettings(cfg.Settings())
	if err != nil {
		return err
	}

	fm := utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.ArchiveDir,
		*cfg.ArchiveOnSuccess && !dryRun)

	// =========================================================================
	// DISCOVER AND OPEN INPUTS
	// =========================================================================

	var files []string
	if singleFile != "" {
		if _, err := os.Stat(singleFile); err != nil {
			return fmt.Errorf("listing file not found: %s", singleFile)
		}
		files = []string{singleFile}
	} else {
		files, err = fm.DiscoverInputFiles()
		if err != nil {
			return err
		}
	}

	if len(files) == 0 {
		fmt.Printf("No listing files found in %s\n", cfg.InputDir)
		return nil
	}

	fmt.Printf("Found %d listing file(s)\n", len(files))

	inputs, inputPaths, err := openInputs(files)
	if err != nil {
		return err
	}

	// =========================================================================
	// RUN THE PIPELINE
	// =========================================================================

	gen := generator.New(settings, generator.NewStdLogger(verbose || cfg.Verbose))

	manifest, err := gen.Run(inputs)
	if err != nil {
		// Configuration error: nothing was generated.
		return err
	}

	// =========================================================================
	// WRITE OUTPUT AND ARCHIVE INPUTS
	// =========================================================================

	if !dryRun {
		if err := fm.EnsureDirectories(); err != nil {
			return err
		}

		for _, doc := range manifest.Documents() {
			if _, err := fm.WriteDocument(doc.FileName, doc.XML); err != nil {
				return err
			}
		}
		if manifest.Index != nil {
			if _, err := fm.WriteDocument(manifest.Index.FileName, manifest.Index.XML); err != nil {
				return err
			}
		}

		for i, result := range manifest.Results {
			if !result.Success {
				continue
			}
			if _, err := fm.ArchiveInputFile(inputPaths[i]); err != nil {
				// Archival is housekeeping; a failure should not undo a
				// successful generation.
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			}
		}
	}

	printSummary(manifest, settings, startTime)

	if manifest.Index == nil {
		return fmt.Errorf("no sitemaps generated")
	}
	return nil
}

// applyFlagOverrides lets command-line flags take precedence over the
// configuration file.
func applyFlagOverrides(cfg *config.FileConfig, cmd *cobra.Command) {
	if cmd.Flags().Changed("input") {
		cfg.InputDir = inputDir
	}
	if cmd.Flags().Changed("output") {
		cfg.OutputDir = outputDir
	}
	if cmd.Flags().Changed("base-url") {
		cfg.BaseURL = baseURL
	}
}

// openInputs opens each listing file as a row stream. CSV and XLSX files
// get format-specific sources; everything downstream is format-agnostic.
// Returns the inputs and the file path behind each, index-aligned with
// the manifest results.
func openInputs(files []string) ([]generator.Input, []string, error) {
	var inputs []generator.Input
	var paths []string

	for _, file := range files {
		f, err := os.Open(file)
		if err != nil {
			closeInputs(inputs)
			return nil, nil, fmt.Errorf("failed to open %s: %w", file, err)
		}

		var source types.RowSource
		if strings.EqualFold(filepath.Ext(file), ".xlsx") {
			source, err = xlsxparser.NewRowSource(f)
			if err != nil {
				f.Close()
				closeInputs(inputs)
				return nil, nil, fmt.Errorf("failed to open %s: %w", file, err)
			}
		} else {
			source = csvparser.NewRowSource(f)
		}

		inputs = append(inputs, generator.Input{
			Name:   utils.LogicalName(file),
			Source: source,
		})
		paths = append(paths, file)
	}

	return inputs, paths, nil
}

// closeInputs closes already-opened sources after a later open failed.
func closeInputs(inputs []generator.Input) {
	for _, in := range inputs {
		in.Source.Close()
	}
}

// =============================================================================
// SUMMARY OUTPUT
// =============================================================================

// printSummary prints the per-input results and run totals.
func printSummary(manifest *generator.Manifest, settings types.Settings, startTime time.Time) {
	ok := color.New(color.FgGreen).SprintFunc()
	bad := color.New(color.FgRed).SprintFunc()

	fmt.Println("\n=== Generation Complete ===")

	var urlCount, docCount, droppedRows int
	for _, result := range manifest.Results {
		if result.Success {
			names := make([]string, len(result.Documents))
			for i, doc := range result.Documents {
				names[i] = doc.FileName
				urlCount += doc.URLCount
			}
			docCount += len(result.Documents)
			fmt.Printf("  %s %s -> %s (%d URLs, %d dropped)\n",
				ok("✓"), result.Name, strings.Join(names, ", "),
				result.RecordCount, result.DroppedRows)
		} else {
			fmt.Printf("  %s %s: %v\n", bad("✗"), result.Name, result.Err)
		}
		droppedRows += result.DroppedRows
	}

	fmt.Printf("\nRun ID:          %s\n", manifest.RunID)
	fmt.Printf("Inputs:          %d (%d succeeded, %d failed)\n",
		len(manifest.Results), manifest.SuccessCount(), manifest.FailureCount())
	fmt.Printf("Documents:       %d\n", docCount)
	fmt.Printf("URLs:            %d\n", urlCount)
	fmt.Printf("Dropped rows:    %d\n", droppedRows)
	fmt.Printf("Time elapsed:    %s\n", time.Since(startTime).Round(time.Millisecond))

	if manifest.Index != nil {
		fmt.Printf("\nSitemap index:   %s%s\n", settings.BaseURL, manifest.Index.FileName)
	}
}
