// =============================================================================
// Polaris Sitemap Generator - XLSX Row Source
// =============================================================================
//
// This module exposes XLSX URL listings as a row stream. Some teams export
// their listings from spreadsheets instead of CSV; the first sheet is
// expected to have the same header-then-data shape as a CSV input
// (url, lastmod, metadata columns). The stream plugs into the same record
// parser as CSV sources, so everything downstream is format-agnostic.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// RowSource streams rows from the first sheet of an XLSX workbook.
// It implements types.RowSource.
type RowSource struct {
	file    *excelize.File
	rows    *excelize.Rows
	current []string
	err     error
}

// NewRowSource opens an XLSX workbook from r and positions the stream at
// the first row of the first sheet.
func NewRowSource(r io.Reader) (*RowSource, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX: %w", err)
	}

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		f.Close()
		return nil, fmt.Errorf("XLSX workbook has no sheets")
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to read sheet '%s': %w", sheets[0], err)
	}

	return &RowSource{file: f, rows: rows}, nil
}

// Next advances to the next row. Returns false when the sheet is exhausted
// or a read error occurred.
func (s *RowSource) Next() bool {
	if s.err != nil {
		return false
	}
	if !s.rows.Next() {
		if err := s.rows.Error(); err != nil {
			s.err = fmt.Errorf("failed to iterate sheet rows: %w", err)
		}
		return false
	}

	cols, err := s.rows.Columns()
	if err != nil {
		s.err = fmt.Errorf("failed to read sheet row: %w", err)
		return false
	}

	s.current = cols
	return true
}

// Row returns the current row.
func (s *RowSource) Row() []string {
	return s.current
}

// Err returns the first read error, or nil on clean exhaustion.
func (s *RowSource) Err() error {
	return s.err
}

// Close releases the row iterator and the workbook.
func (s *RowSource) Close() error {
	if err := s.rows.Close(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}
