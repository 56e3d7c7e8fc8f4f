// =============================================================================
// Polaris Sitemap Generator - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - csvparser / xlsxparser
//   - xmlwriter
//   - generator
//
// =============================================================================

package types

// =============================================================================
// RECORD TYPES
// =============================================================================

// Field is a single named metadata value attached to a Record.
// Metadata is kept as an ordered list rather than a map so the output XML
// reproduces the column order of the source file.
type Field struct {
	// Name is the header text of the source column.
	Name string

	// Value is the trimmed cell value.
	Value string
}

// Record represents one validated sitemap URL entry.
type Record struct {
	// Location is the absolute URL for the <loc> element. It is always
	// non-empty and has passed URL validation by the time a Record exists.
	Location string

	// LastMod is the last-modified date in YYYY-MM-DD form, or empty if
	// the source row carried no usable lastmod value.
	LastMod string

	// Metadata contains the non-reserved columns of the source row, in
	// header order, with blank cells omitted.
	Metadata []Field

	// SourceRow is the 1-indexed row number in the original input.
	// Useful for error reporting.
	SourceRow int
}

// MetadataValue returns the value for a metadata field name and whether the
// field is present.
func (r Record) MetadataValue(name string) (string, bool) {
	for _, f := range r.Metadata {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// =============================================================================
// DOCUMENT TYPES
// =============================================================================

// SitemapDocument is one serialized sitemap file, ready to be written.
// A single input produces one document, or several when the URL-count or
// byte-size limit forces a split.
type SitemapDocument struct {
	// Name is the document base name, including the -2, -3, ... suffix
	// for split parts.
	Name string

	// FileName is Name with the ".xml" extension.
	FileName string

	// XML is the full serialized document, declaration included.
	XML string

	// URLCount is the number of <url> entries in the document.
	URLCount int

	// LastMod is the most recent Record lastmod in the document
	// (YYYY-MM-DD), or empty if no Record carried a date.
	LastMod string
}

// IndexEntry is one <sitemap> entry of the sitemap index document.
type IndexEntry struct {
	// Location is the fully-qualified URL of a generated sitemap document.
	Location string

	// LastMod is the last-modified date reported for the document.
	LastMod string
}

// =============================================================================
// SETTINGS
// =============================================================================

// Default limits per the sitemaps.org protocol.
const (
	DefaultMaxURLsPerSitemap = 50000
	DefaultMaxSitemapSizeMB  = 50.0
)

// Settings holds the immutable configuration for one generation run.
// It is resolved and validated once, before any document is built, and
// threaded down to the parser, builder and index builder. Nothing in the
// pipeline reads configuration from anywhere else.
type Settings struct {
	// BaseURL is the public URL prefix under which the generated files
	// will be served. Always normalized to end with "/".
	BaseURL string

	// MaxURLsPerSitemap is the URL-count limit per sitemap document.
	MaxURLsPerSitemap int

	// MaxSitemapSizeMB is the serialized-size limit per sitemap document.
	MaxSitemapSizeMB float64

	// MetadataFields is the ordered list of metadata column names the
	// deployment cares about. Informational: the parser maps every
	// non-reserved column regardless; callers may use this list to filter.
	MetadataFields []string
}

// MaxSitemapBytes returns the size limit in bytes.
func (s Settings) MaxSitemapBytes() int {
	return int(s.MaxSitemapSizeMB * 1024 * 1024)
}

// =============================================================================
// ROW SOURCE
// =============================================================================

// RowSource is a single-pass stream of raw tabular rows. The first row
// produced is the header row. Implementations exist for CSV readers and
// XLSX sheets; the record parser consumes this interface and never touches
// files itself.
//
// USAGE:
//
//	for src.Next() {
//	    row := src.Row()
//	    // ...
//	}
//	if err := src.Err(); err != nil {
//	    return err
//	}
type RowSource interface {
	// Next advances to the next row. It returns false when the stream is
	// exhausted or a read error occurred.
	Next() bool

	// Row returns the current row. Only valid after Next returned true.
	Row() []string

	// Err returns the first read error encountered, or nil on clean EOF.
	Err() error

	// Close releases the underlying resource.
	Close() error
}
