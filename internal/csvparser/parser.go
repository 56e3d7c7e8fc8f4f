// =============================================================================
// Polaris Sitemap Generator - CSV Parser Module
// =============================================================================
//
// This module turns raw tabular rows into validated sitemap Records.
// It has two halves:
//
//   1. RowSource: a streaming CSV row reader over any io.Reader. Rows are
//      processed one at a time; large listing files are never loaded into
//      memory wholesale.
//   2. ParseRecords: the column-to-field mapping step. The header row
//      determines column names and order; 'url' maps to Record.Location,
//      'lastmod' maps to Record.LastMod, and every other column becomes an
//      ordered metadata entry.
//
// ERROR POLICY (accumulate-and-continue):
//   - A row with a blank or malformed URL is dropped and recorded as a
//     diagnostic; parsing continues with the next row.
//   - A row with a malformed lastmod keeps its Record but loses the date.
//   - Only structural problems (no header, duplicate columns, missing url
//     column, unreadable stream) fail the whole input.
//
// =============================================================================

package csvparser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/ericfordelon/polaris-sitemap-generator/internal/types"
	"github.com/ericfordelon/polaris-sitemap-generator/internal/validation"
)

// Reserved column names (matched case-insensitively). Every other column
// is treated as a metadata field.
const (
	urlColumn     = "url"
	lastModColumn = "lastmod"
)

// =============================================================================
// ROW SOURCE
// =============================================================================

// RowSource streams CSV rows from an io.Reader. It implements
// types.RowSource. The reader follows conventional CSV quoting: fields
// containing the separator, quote character or newlines are quoted, and
// doubled quotes escape a literal quote.
type RowSource struct {
	reader  *csv.Reader
	closer  io.Closer
	current []string
	err     error
}

// NewRowSource creates a streaming row source over r. If r is also an
// io.Closer, Close closes it.
func NewRowSource(r io.Reader) *RowSource {
	cr := csv.NewReader(r)

	// Rows may legitimately be shorter or longer than the header; the
	// record parser pads and truncates, so don't enforce a field count.
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	src := &RowSource{reader: cr}
	if c, ok := r.(io.Closer); ok {
		src.closer = c
	}
	return src
}

// Next advances to the next row. Returns false on EOF or error.
func (s *RowSource) Next() bool {
	if s.err != nil {
		return false
	}

	row, err := s.reader.Read()
	if err == io.EOF {
		return false
	}
	if err != nil {
		s.err = fmt.Errorf("failed to read CSV row: %w", err)
		return false
	}

	s.current = row
	return true
}

// Row returns the current row.
func (s *RowSource) Row() []string {
	return s.current
}

// Err returns the first read error, or nil on clean EOF.
func (s *RowSource) Err() error {
	return s.err
}

// Close closes the underlying reader if it is closeable.
func (s *RowSource) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

// =============================================================================
// RECORD PARSING
// =============================================================================

// ParseResult holds the outcome of parsing one input stream.
type ParseResult struct {
	// Headers contains the column headers in source order.
	Headers []string

	// Records contains the validated Records in source row order.
	Records []types.Record

	// Dropped contains one diagnostic per row-level validation failure,
	// in the order the failures were encountered. KindInvalidDate entries
	// refer to Records that were kept without their date; the other kinds
	// refer to rows that produced no Record.
	Dropped []*validation.RowError
}

// columnLayout is the header mapping resolved once per input, before any
// data row is read.
type columnLayout struct {
	headers      []string
	urlIndex     int
	lastModIndex int // -1 if the input has no lastmod column
	metaIndexes  []int
}

// ParseRecords consumes a row stream and produces validated Records.
// The stream's first row must be the header row. The source is read in a
// single pass and is not restartable.
//
// PARAMETERS:
//   - src: The row stream. The caller owns closing it.
//
// RETURNS:
//   - A ParseResult with Records in input order plus row diagnostics.
//   - An error for structural problems that invalidate the whole input.
func ParseRecords(src types.RowSource) (*ParseResult, error) {
	if !src.Next() {
		if err := src.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("input has no header row")
	}

	layout, err := resolveLayout(src.Row())
	if err != nil {
		return nil, err
	}

	result := &ParseResult{Headers: layout.headers}

	rowNum := 1 // header row
	for src.Next() {
		rowNum++
		row := src.Row()

		// Empty rows are skipped silently; they are padding, not errors.
		if isRowEmpty(row) {
			continue
		}

		record, rowErr := parseRow(row, rowNum, layout)
		if rowErr != nil {
			result.Dropped = append(result.Dropped, rowErr)
			if record == nil {
				continue
			}
			// Invalid date: diagnostic recorded, Record kept without it.
		}
		result.Records = append(result.Records, *record)
	}

	if err := src.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// resolveLayout validates the header row and maps columns to Record fields.
// This happens exactly once per input; data rows are then mapped by index
// rather than by dynamic name lookup.
func resolveLayout(headerRow []string) (*columnLayout, error) {
	headers := make([]string, len(headerRow))
	for i, h := range headerRow {
		headers[i] = strings.TrimSpace(h)
	}

	if len(headers) == 0 {
		return nil, fmt.Errorf("header row has no columns")
	}

	layout := &columnLayout{
		headers:      headers,
		urlIndex:     -1,
		lastModIndex: -1,
	}

	seen := make(map[string]bool, len(headers))
	for i, header := range headers {
		key := strings.ToLower(header)
		if seen[key] {
			return nil, fmt.Errorf("duplicate column '%s' in header", header)
		}
		seen[key] = true

		switch key {
		case urlColumn:
			layout.urlIndex = i
		case lastModColumn:
			layout.lastModIndex = i
		default:
			layout.metaIndexes = append(layout.metaIndexes, i)
		}
	}

	if layout.urlIndex == -1 {
		return nil, fmt.Errorf("missing required column '%s' in header", urlColumn)
	}

	return layout, nil
}

// parseRow maps one data row to a Record.
//
// RETURNS:
//   - (record, nil) for a clean row.
//   - (nil, rowErr) when the row is dropped (missing or invalid URL).
//   - (record, rowErr) when the Record is kept but its date was dropped.
func parseRow(row []string, rowNum int, layout *columnLayout) (*types.Record, *validation.RowError) {
	location := strings.TrimSpace(cellAt(row, layout.urlIndex))
	if location == "" {
		return nil, &validation.RowError{
			Kind:    validation.KindMissingURL,
			Row:     rowNum,
			Field:   urlColumn,
			Message: "url is required and must be non-blank",
		}
	}

	if err := validation.ValidateURL(location); err != nil {
		return nil, &validation.RowError{
			Kind:    validation.KindInvalidURL,
			Row:     rowNum,
			Field:   urlColumn,
			Value:   location,
			Message: err.Error(),
		}
	}

	record := &types.Record{
		Location:  location,
		SourceRow: rowNum,
	}

	var dateErr *validation.RowError
	if layout.lastModIndex >= 0 {
		raw := strings.TrimSpace(cellAt(row, layout.lastModIndex))
		if raw != "" {
			normalized, err := validation.ValidateDate(raw)
			if err != nil {
				// Non-fatal: the URL is still published, just undated.
				dateErr = &validation.RowError{
					Kind:    validation.KindInvalidDate,
					Row:     rowNum,
					Field:   lastModColumn,
					Value:   raw,
					Message: err.Error(),
				}
			} else {
				record.LastMod = normalized
			}
		}
	}

	for _, idx := range layout.metaIndexes {
		value := strings.TrimSpace(cellAt(row, idx))
		if value == "" {
			// A present-but-blank cell produces no metadata entry.
			continue
		}
		record.Metadata = append(record.Metadata, types.Field{
			Name:  layout.headers[idx],
			Value: value,
		})
	}

	return record, dateErr
}

// cellAt returns the cell at index i, treating missing trailing fields as
// empty strings. Extra fields beyond the header are never asked for.
func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// isRowEmpty checks if a row contains only blank values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
