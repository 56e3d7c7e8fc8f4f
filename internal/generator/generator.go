// =============================================================================
// Polaris Sitemap Generator - Generator Module
// =============================================================================
//
// This module contains the core pipeline orchestration. For each named
// input stream it runs parser -> builder, collects the produced documents,
// and finally builds the sitemap index over everything that succeeded.
//
// PIPELINE (per run):
//   1. Resolve and validate the Settings (fatal on failure, nothing runs)
//   2. For each input:
//      a. Parse the row stream into validated Records
//      b. Build one or more sitemap documents (split on limits)
//      c. Record the outcome in the manifest
//   3. Build the sitemap index from all successful documents
//
// FAILURE ISOLATION:
//   A fatal parse/build error for one input marks that input failed in the
//   manifest and processing continues with the remaining inputs. Only a
//   configuration error aborts the run. The manifest is the single source
//   of truth for what succeeded, what was skipped, and why; callers write
//   only the XML the manifest carries, so no partial document ever reaches
//   disk for a failed input.
//
// =============================================================================

package generator

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/ericfordelon/polaris-sitemap-generator/internal/config"
	"github.com/ericfordelon/polaris-sitemap-generator/internal/csvparser"
	"github.com/ericfordelon/polaris-sitemap-generator/internal/types"
	"github.com/ericfordelon/polaris-sitemap-generator/internal/validation"
	"github.com/ericfordelon/polaris-sitemap-generator/internal/xmlwriter"
)

// =============================================================================
// LOGGER
// =============================================================================

// Logger is the logging interface the generator reports progress through.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// stdLogger writes leveled messages to stderr. Debug output is dropped
// unless verbose is set.
type stdLogger struct {
	logger  *log.Logger
	verbose bool
}

// NewStdLogger creates the default stderr logger.
func NewStdLogger(verbose bool) Logger {
	return &stdLogger{
		logger:  log.New(os.Stderr, "", log.LstdFlags),
		verbose: verbose,
	}
}

func (l *stdLogger) Debug(msg string, args ...interface{}) {
	if l.verbose {
		l.logger.Printf("DEBUG "+msg, args...)
	}
}

func (l *stdLogger) Info(msg string, args ...interface{}) {
	l.logger.Printf("INFO  "+msg, args...)
}

func (l *stdLogger) Warn(msg string, args ...interface{}) {
	l.logger.Printf("WARN  "+msg, args...)
}

func (l *stdLogger) Error(msg string, args ...interface{}) {
	l.logger.Printf("ERROR "+msg, args...)
}

// =============================================================================
// INPUTS AND MANIFEST
// =============================================================================

// Input is one named row stream to process. The generator closes the
// source when it is done with it.
type Input struct {
	// Name is the logical input name; it becomes the document base name.
	Name string

	// Source is the single-pass row stream (header row first).
	Source types.RowSource
}

// InputResult records the outcome of processing one input.
type InputResult struct {
	// Name is the logical input name.
	Name string

	// Success indicates whether any documents were produced.
	Success bool

	// Documents contains the produced sitemap documents (post-split),
	// in generation order. Empty when Success is false.
	Documents []types.SitemapDocument

	// Diagnostics contains the row-level validation failures encountered
	// while parsing, in input order. Present for successful inputs too.
	Diagnostics []*validation.RowError

	// RecordCount is the number of valid Records parsed from the input.
	RecordCount int

	// DroppedRows is the number of rows rejected outright (missing or
	// invalid URL). Rows that only lost their date are not counted.
	DroppedRows int

	// Err is the fatal error for this input, nil when Success is true.
	Err error
}

// Manifest is the complete account of one generation run.
type Manifest struct {
	// RunID uniquely identifies the run in logs and reports.
	RunID string

	// GeneratedAt is when the run started.
	GeneratedAt time.Time

	// Results holds one entry per input, in processing order.
	Results []InputResult

	// Index is the sitemap index document, or nil when no input
	// produced any documents.
	Index *types.SitemapDocument
}

// SuccessCount returns the number of inputs that produced documents.
func (m *Manifest) SuccessCount() int {
	n := 0
	for _, r := range m.Results {
		if r.Success {
			n++
		}
	}
	return n
}

// FailureCount returns the number of inputs that were skipped.
func (m *Manifest) FailureCount() int {
	return len(m.Results) - m.SuccessCount()
}

// Documents returns every produced sitemap document across all inputs,
// in generation order. The index is not included.
func (m *Manifest) Documents() []types.SitemapDocument {
	var docs []types.SitemapDocument
	for _, r := range m.Results {
		docs = append(docs, r.Documents...)
	}
	return docs
}

// =============================================================================
// GENERATOR
// =============================================================================

// Generator drives one generation run. It holds no state between runs;
// every run re-derives all output from its inputs.
type Generator struct {
	settings types.Settings
	logger   Logger
	now      func() time.Time
}

// New creates a Generator. A nil logger falls back to the stderr logger.
func New(settings types.Settings, logger Logger) *Generator {
	if logger == nil {
		logger = NewStdLogger(false)
	}
	return &Generator{
		settings: settings,
		logger:   logger,
		now:      time.Now,
	}
}

// Run processes the inputs in order and returns the run manifest.
//
// The returned error is non-nil only for configuration problems, which
// are fatal to the entire run and detected before any input is touched.
// Per-input failures never surface here; they live in the manifest.
func (g *Generator) Run(inputs []Input) (*Manifest, error) {
	settings, err := config.ResolveSettings(g.settings)
	if err != nil {
		return nil, err
	}

	manifest := &Manifest{
		RunID:       uuid.NewString(),
		GeneratedAt: g.now(),
	}

	g.logger.Info("starting run %s with %d input(s)", manifest.RunID, len(inputs))

	builder := xmlwriter.NewBuilder(settings)
	generationDate := manifest.GeneratedAt.Format(validation.DateFormat)

	var indexEntries []types.IndexEntry

	for _, input := range inputs {
		result := g.processInput(builder, input)
		manifest.Results = append(manifest.Results, result)

		if !result.Success {
			g.logger.Error("input '%s' failed: %v", input.Name, result.Err)
			continue
		}

		for _, doc := range result.Documents {
			lastMod := doc.LastMod
			if lastMod == "" {
				// The listing carried no dates; report when we generated.
				lastMod = generationDate
			}
			indexEntries = append(indexEntries, types.IndexEntry{
				Location: settings.BaseURL + doc.FileName,
				LastMod:  lastMod,
			})
		}
	}

	if len(indexEntries) > 0 {
		manifest.Index = &types.SitemapDocument{
			Name:     "sitemap",
			FileName: xmlwriter.IndexFileName,
			XML:      xmlwriter.BuildIndex(indexEntries),
			URLCount: len(indexEntries),
			LastMod:  generationDate,
		}
	}

	g.logger.Info("run %s complete: %d succeeded, %d failed",
		manifest.RunID, manifest.SuccessCount(), manifest.FailureCount())

	return manifest, nil
}

// processInput runs parser -> builder for a single input and never lets a
// failure escape past its InputResult.
func (g *Generator) processInput(builder *xmlwriter.Builder, input Input) InputResult {
	defer input.Source.Close()

	result := InputResult{Name: input.Name}

	g.logger.Info("processing input '%s'", input.Name)

	parsed, err := csvparser.ParseRecords(input.Source)
	if err != nil {
		result.Err = fmt.Errorf("failed to parse input '%s': %w", input.Name, err)
		return result
	}

	result.Diagnostics = parsed.Dropped
	result.RecordCount = len(parsed.Records)
	for _, diag := range parsed.Dropped {
		if diag.Kind != validation.KindInvalidDate {
			result.DroppedRows++
		}
		g.logger.Warn("input '%s': %s", input.Name, diag.Error())
	}

	docs, err := builder.Build(input.Name, parsed.Records)
	if err != nil {
		result.Err = err
		return result
	}

	result.Documents = docs
	result.Success = true

	g.logger.Debug("input '%s': %d record(s) -> %d document(s)",
		input.Name, result.RecordCount, len(docs))

	return result
}
