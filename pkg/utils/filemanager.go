// =============================================================================
// Polaris Sitemap Generator - File Manager Utility
// =============================================================================
//
// This module provides the filesystem glue around the core pipeline:
//   - Input listing discovery (CSV and XLSX)
//   - Logical name derivation from file names
//   - Output writing
//   - Archival of processed listings
//
// The core pipeline itself never touches the filesystem; it consumes row
// streams and returns serialized documents. Everything here runs before
// or after the pipeline.
//
// ARCHIVAL STRATEGY:
//   - Listing files are moved to the archive directory after their input
//     succeeded; failed listings stay where they are for the next run.
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// inputSuffix is the naming convention for listing files: "news_input.csv"
// produces documents named "news". Files without the suffix keep their stem.
const inputSuffix = "_input"

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for the generator.
type FileManager struct {
	// InputDir is the directory scanned for listing files.
	InputDir string

	// OutputDir is the directory XML documents are written to.
	OutputDir string

	// ArchiveDir is the directory processed listings are moved to.
	ArchiveDir string

	// ArchiveOnSuccess determines whether processed listings are archived.
	ArchiveOnSuccess bool
}

// NewFileManager creates a FileManager over the given directories.
func NewFileManager(inputDir, outputDir, archiveDir string, archiveOnSuccess bool) *FileManager {
	return &FileManager{
		InputDir:         inputDir,
		OutputDir:        outputDir,
		ArchiveDir:       archiveDir,
		ArchiveOnSuccess: archiveOnSuccess,
	}
}

// EnsureDirectories creates the output and archive directories if needed.
// The input directory is not created; a missing one means nothing to do.
func (fm *FileManager) EnsureDirectories() error {
	dirs := []string{fm.OutputDir}
	if fm.ArchiveOnSuccess {
		dirs = append(dirs, fm.ArchiveDir)
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// =============================================================================
// FILE DISCOVERY AND NAMING
// =============================================================================

// DiscoverInputFiles scans the input directory for URL listing files,
// matching *.csv and *.xlsx. Results are sorted by name so runs are
// deterministic: discovery order sets document and index order.
func (fm *FileManager) DiscoverInputFiles() ([]string, error) {
	var files []string

	for _, pattern := range []string{"*.csv", "*.xlsx"} {
		matches, err := filepath.Glob(filepath.Join(fm.InputDir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to scan input directory: %w", err)
		}
		for _, file := range matches {
			info, err := os.Stat(file)
			if err != nil || info.IsDir() {
				continue
			}
			files = append(files, file)
		}
	}

	sort.Strings(files)
	return files, nil
}

// LogicalName derives the document base name from a listing file path:
// the extension is stripped, and so is the "_input" suffix convention.
// "brand_input.csv" -> "brand", "accessories.xlsx" -> "accessories".
func LogicalName(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.TrimSuffix(name, inputSuffix)
	return name
}

// =============================================================================
// OUTPUT WRITING
// =============================================================================

// WriteDocument writes one serialized XML document into the output
// directory under the given file name.
func (fm *FileManager) WriteDocument(fileName, xml string) (string, error) {
	outputPath := filepath.Join(fm.OutputDir, fileName)
	if err := os.WriteFile(outputPath, []byte(xml), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", fileName, err)
	}
	return outputPath, nil
}

// =============================================================================
// FILE ARCHIVAL
// =============================================================================

// ArchiveInputFile moves a processed listing file to the archive directory.
// Returns the archived path, or the original path when archival is off.
func (fm *FileManager) ArchiveInputFile(filePath string) (string, error) {
	if !fm.ArchiveOnSuccess {
		return filePath, nil
	}

	archivePath := filepath.Join(fm.ArchiveDir, filepath.Base(filePath))

	if err := os.MkdirAll(fm.ArchiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	// Rename first; fall back to copy-and-delete for cross-device moves.
	if err := os.Rename(filePath, archivePath); err != nil {
		if err := copyFile(filePath, archivePath); err != nil {
			return "", fmt.Errorf("failed to copy file to archive: %w", err)
		}
		if err := os.Remove(filePath); err != nil {
			return "", fmt.Errorf("failed to remove original file: %w", err)
		}
	}

	return archivePath, nil
}

// copyFile copies src to dst, preserving nothing but contents.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}

	return out.Sync()
}
