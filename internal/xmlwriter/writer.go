// =============================================================================
// Polaris Sitemap Generator - XML Writer Module
// =============================================================================
//
// This module is responsible for generating the sitemap XML documents from
// validated Records, and the sitemap index document that references them.
//
// XML STRUCTURE:
//   The generated sitemap follows this nesting pattern:
//
//   <urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"
//           xmlns:coveo="https://www.coveo.com/en/company/about-us">
//     <url>
//       <loc>https://www.example.com/page</loc>   <!-- always present -->
//       <lastmod>2024-05-01</lastmod>             <!-- only if dated -->
//       <coveo:metadata>                          <!-- only if non-empty -->
//         <type>Article</type>
//         <topic>News</topic>
//       </coveo:metadata>
//     </url>
//   </urlset>
//
//   Child order inside <url> is fixed: loc, lastmod, metadata block.
//
// SPLITTING:
//   The sitemaps.org protocol caps a sitemap at 50,000 URLs and 50MB.
//   The Builder tracks the exact serialized byte count as entries are
//   appended and closes the current document when either limit would be
//   exceeded, continuing in a new document named <base>-2, <base>-3, ...
//   (the first document keeps the plain base name).
//
// =============================================================================

package xmlwriter

import (
	"fmt"
	"strings"

	"github.com/ericfordelon/polaris-sitemap-generator/internal/types"
	"github.com/ericfordelon/polaris-sitemap-generator/internal/validation"
)

// =============================================================================
// NAMESPACES AND DOCUMENT CONSTANTS
// =============================================================================

const (
	// SitemapNamespace is the sitemaps.org protocol namespace.
	SitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

	// CoveoNamespace is the vendor namespace for the metadata block.
	CoveoNamespace = "https://www.coveo.com/en/company/about-us"

	// CoveoPrefix is the prefix the metadata namespace is declared under.
	CoveoPrefix = "coveo"

	// IndexFileName is the fixed output name of the sitemap index.
	IndexFileName = "sitemap.xml"

	xmlDeclaration = `<?xml version="1.0" encoding="UTF-8"?>`
)

// =============================================================================
// ERRORS
// =============================================================================

// EmptyDocumentError signals that an input produced zero valid Records and
// therefore no sitemap document. It is fatal to that one input's output,
// not to the run: the orchestrator marks the input failed and moves on.
type EmptyDocumentError struct {
	// Input is the logical input name the document was requested for.
	Input string
}

// Error implements the error interface.
func (e *EmptyDocumentError) Error() string {
	return fmt.Sprintf("no valid URL records for input '%s'", e.Input)
}

// =============================================================================
// SITEMAP DOCUMENT BUILDER
// =============================================================================

// Builder accumulates Records into size- and count-limited sitemap
// documents. It is stateless between Build calls; limits come from the
// immutable Settings it was created with.
type Builder struct {
	settings types.Settings
}

// NewBuilder creates a Builder with the given settings.
func NewBuilder(settings types.Settings) *Builder {
	return &Builder{settings: settings}
}

// Build serializes records into one or more sitemap documents.
//
// PARAMETERS:
//   - baseName: The document base name, derived from the input's logical
//     name (no extension).
//   - records: The validated Records, in the order they should appear.
//
// RETURNS:
//   - The documents in generation order. Split parts carry sequence
//     suffixes -2, -3, ... on the base name.
//   - An *EmptyDocumentError if records is empty.
//
// The union of all returned documents' entries, in order, equals records.
func (b *Builder) Build(baseName string, records []types.Record) ([]types.SitemapDocument, error) {
	if len(records) == 0 {
		return nil, &EmptyDocumentError{Input: baseName}
	}

	var docs []types.SitemapDocument
	var chunk []string // serialized <url> entries of the current document
	var chunkLastMod string
	size := envelopeSize()

	flush := func() {
		if len(chunk) == 0 {
			return
		}
		docs = append(docs, assembleDocument(baseName, len(docs), chunk, chunkLastMod))
		chunk = nil
		chunkLastMod = ""
		size = envelopeSize()
	}

	maxURLs := b.settings.MaxURLsPerSitemap
	maxBytes := b.settings.MaxSitemapBytes()

	for _, record := range records {
		entry := urlEntry(record)

		// Close the current document when adding this entry would break
		// either limit. A single entry larger than the byte limit still
		// gets a document of its own; there is no smaller unit to emit.
		if len(chunk) > 0 && (len(chunk)+1 > maxURLs || size+len(entry) > maxBytes) {
			flush()
		}

		chunk = append(chunk, entry)
		size += len(entry)
		if record.LastMod > chunkLastMod {
			chunkLastMod = record.LastMod
		}
	}
	flush()

	return docs, nil
}

// assembleDocument wraps serialized entries in the urlset envelope.
// seq is the 0-indexed position of the document within the split sequence.
func assembleDocument(baseName string, seq int, entries []string, lastMod string) types.SitemapDocument {
	name := baseName
	if seq > 0 {
		name = fmt.Sprintf("%s-%d", baseName, seq+1)
	}

	var sb strings.Builder
	sb.WriteString(xmlDeclaration)
	sb.WriteString("\n")
	sb.WriteString(urlsetOpenTag())
	sb.WriteString("\n")
	for _, entry := range entries {
		sb.WriteString(entry)
	}
	sb.WriteString("</urlset>")

	return types.SitemapDocument{
		Name:     name,
		FileName: name + ".xml",
		XML:      sb.String(),
		URLCount: len(entries),
		LastMod:  lastMod,
	}
}

// urlsetOpenTag returns the root element with both namespace declarations.
func urlsetOpenTag() string {
	return fmt.Sprintf(`<urlset xmlns="%s" xmlns:%s="%s">`,
		SitemapNamespace, CoveoPrefix, CoveoNamespace)
}

// envelopeSize is the byte cost of a document with zero entries: the
// declaration, the root open tag, their newlines and the close tag.
func envelopeSize() int {
	return len(xmlDeclaration) + 1 + len(urlsetOpenTag()) + 1 + len("</urlset>")
}

// urlEntry serializes one Record as a <url> element, newline-terminated.
// Child order is fixed: loc, lastmod (if dated), metadata (if non-empty).
func urlEntry(record types.Record) string {
	var sb strings.Builder

	sb.WriteString("    <url>\n")
	sb.WriteString("        <loc>")
	sb.WriteString(EscapeXML(record.Location))
	sb.WriteString("</loc>\n")

	if record.LastMod != "" {
		sb.WriteString("        <lastmod>")
		sb.WriteString(record.LastMod)
		sb.WriteString("</lastmod>\n")
	}

	writeMetadataBlock(&sb, record.Metadata)

	sb.WriteString("    </url>\n")
	return sb.String()
}

// writeMetadataBlock writes the coveo:metadata container, one child element
// per field in source column order. Element names are sanitized; a header
// that sanitizes to nothing drops its field.
func writeMetadataBlock(sb *strings.Builder, fields []types.Field) {
	var children []string
	for _, field := range fields {
		name := validation.SanitizeElementName(field.Name)
		if name == "" {
			continue
		}
		children = append(children, fmt.Sprintf("            <%s>%s</%s>\n",
			name, EscapeXML(field.Value), name))
	}

	if len(children) == 0 {
		return
	}

	sb.WriteString("        <")
	sb.WriteString(CoveoPrefix)
	sb.WriteString(":metadata>\n")
	for _, child := range children {
		sb.WriteString(child)
	}
	sb.WriteString("        </")
	sb.WriteString(CoveoPrefix)
	sb.WriteString(":metadata>\n")
}

// =============================================================================
// SITEMAP INDEX
// =============================================================================

// BuildIndex serializes the sitemap index document from the entries
// produced across all inputs of a run, in generation order. The index is
// never split; it lists documents, not URLs, and stays far under the
// protocol limits.
func BuildIndex(entries []types.IndexEntry) string {
	var sb strings.Builder

	sb.WriteString(xmlDeclaration)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(`<sitemapindex xmlns="%s">`, SitemapNamespace))
	sb.WriteString("\n")

	for _, entry := range entries {
		sb.WriteString("    <sitemap>\n")
		sb.WriteString("        <loc>")
		sb.WriteString(EscapeXML(entry.Location))
		sb.WriteString("</loc>\n")
		sb.WriteString("        <lastmod>")
		sb.WriteString(entry.LastMod)
		sb.WriteString("</lastmod>\n")
		sb.WriteString("    </sitemap>\n")
	}

	sb.WriteString("</sitemapindex>")
	return sb.String()
}

// =============================================================================
// ESCAPING
// =============================================================================

// EscapeXML escapes the five special characters for XML text content.
func EscapeXML(s string) string {
	var sb strings.Builder

	for _, r := range s {
		switch r {
		case '&':
			sb.WriteString("&amp;")
		case '<':
			sb.WriteString("&lt;")
		case '>':
			sb.WriteString("&gt;")
		case '"':
			sb.WriteString("&quot;")
		case '\'':
			sb.WriteString("&apos;")
		default:
			sb.WriteRune(r)
		}
	}

	return sb.String()
}
