// =============================================================================
// Polaris Sitemap Generator - Validation Module
// =============================================================================
//
// This module provides the field-level validation used while turning raw
// rows into Records:
//   - URL shape validation (absolute, http/https, host present)
//   - lastmod date validation (YYYY-MM-DD)
//   - XML element-name sanitization for metadata column headers
//
// ERROR HANDLING:
//   Row-level problems are represented as *RowError values carrying a
//   machine-readable Kind plus the row/field/value context. Errors are
//   collected by the caller, not thrown immediately: a bad URL drops only
//   its own row, and a bad date drops only the date.
//
// =============================================================================

package validation

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode"
)

// DateFormat is the only accepted lastmod layout (ISO 8601 date, no time).
const DateFormat = "2006-01-02"

// =============================================================================
// ROW ERROR TYPES
// =============================================================================

// Kind classifies a row-level validation failure.
type Kind string

const (
	// KindMissingURL means the url column was blank after trimming.
	// The row is dropped.
	KindMissingURL Kind = "missing_url"

	// KindInvalidURL means the url column failed the URL shape check.
	// The row is dropped.
	KindInvalidURL Kind = "invalid_url"

	// KindInvalidDate means the lastmod column did not match YYYY-MM-DD.
	// The date is dropped but the Record is kept.
	KindInvalidDate Kind = "invalid_date"
)

// RowError is a single validation failure with enough context to
// troubleshoot the source file.
type RowError struct {
	// Kind is the machine-readable failure classification.
	Kind Kind

	// Row is the 1-indexed row number in the source input (header is row 1).
	Row int

	// Field is the name of the column that failed validation.
	Field string

	// Value is the offending value.
	Value string

	// Message is a human-readable explanation.
	Message string
}

// Error implements the error interface.
func (e *RowError) Error() string {
	return fmt.Sprintf("row %d, field '%s': %s (value: '%s')",
		e.Row, e.Field, e.Message, e.Value)
}

// =============================================================================
// VALIDATORS
// =============================================================================

// ValidateURL checks that a value has the minimal shape of an absolute
// sitemap URL: parseable, scheme http or https, and a non-empty host.
// Liveness is deliberately not checked; this tool never fetches anything.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("not a parseable URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL has no host")
	}
	return nil
}

// ValidateDate checks and normalizes a lastmod value. The input must match
// YYYY-MM-DD exactly; impossible dates such as 2025-13-40 are rejected.
// The returned string is the normalized form of the same date.
func ValidateDate(raw string) (string, error) {
	t, err := time.Parse(DateFormat, raw)
	if err != nil {
		return "", fmt.Errorf("date must be in YYYY-MM-DD format, got %q", raw)
	}
	return t.Format(DateFormat), nil
}

// =============================================================================
// ELEMENT NAME SANITIZATION
// =============================================================================

// SanitizeElementName converts a metadata column header into a usable XML
// element name.
//
// POLICY (sanitize, not skip):
//   - Letters, digits, '-', '_' and '.' are kept; every other character
//     is replaced with '_'.
//   - A name that starts with a digit, '-' or '.' is prefixed with '_'
//     (element names must not start with those).
//   - A header that sanitizes to nothing but underscores is considered
//     unusable and the empty string is returned; the caller skips the field.
//
// The original column header is still used as the metadata key everywhere
// else; sanitization only affects the serialized element name.
func SanitizeElementName(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}

	var b strings.Builder
	for _, r := range header {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '-' || r == '_' || r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	name := b.String()

	// Element names cannot start with a digit, dash or dot.
	first := rune(name[0])
	if unicode.IsDigit(first) || first == '-' || first == '.' {
		name = "_" + name
	}

	if strings.Trim(name, "_") == "" {
		return ""
	}

	return name
}
