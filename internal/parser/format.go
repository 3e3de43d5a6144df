// Package parser extracts normalized user records from CSV and XML import
// files. All functions are stateless: they open the file, read what the call
// needs, and close it, so the same file can be read at increasing offsets
// across many invocations.
package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

type Format string

const (
	FormatCSV Format = "csv"
	FormatXML Format = "xml"
)

var ErrUnsupportedFormat = errors.New("unsupported file format")

// ParseFormat normalizes a user-supplied format string.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatXML:
		return FormatXML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// DetectFormat derives the format from the file extension.
func DetectFormat(path string) (Format, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return ParseFormat(ext)
}

// Cursor marks the resume position for the next batch. Row is the index of
// the next unread data row (0-indexed, header and wrapper excluded). Byte is
// a CSV-only optimization: when set, reading seeks straight to it instead of
// rescanning from the top of the file. XML cursors keep Byte at zero and are
// consumed by forward-only streaming.
type Cursor struct {
	Row  int   `json:"row"`
	Byte int64 `json:"byte"`
}

// Extractor provides row counting and batch extraction over import files.
// The zero value is ready to use.
type Extractor struct{}

func (Extractor) CountRows(path string, format Format) (int, error) {
	switch format {
	case FormatCSV:
		return countCSVRows(path)
	case FormatXML:
		return countXMLRows(path)
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// ReadBatch returns up to limit records in file order starting at the cursor,
// together with the cursor for the following batch. A cursor at or past the
// end of the file yields an empty batch and no error.
func (Extractor) ReadBatch(path string, format Format, cur Cursor, limit int) ([]map[string]string, Cursor, error) {
	switch format {
	case FormatCSV:
		return readCSVBatch(path, cur, limit)
	case FormatXML:
		return readXMLBatch(path, cur, limit)
	default:
		return nil, cur, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// sanitizeKey lowercases a header cell and strips everything outside
// [a-z0-9_-], yielding a safe field identifier.
func sanitizeKey(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
