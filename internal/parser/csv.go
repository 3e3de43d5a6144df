package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// countCSVRows counts data rows: every CSV record minus the header.
func countCSVRows(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open csv file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.ReuseRecord = true

	count := 0
	for {
		if _, err := r.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return 0, fmt.Errorf("read csv row: %w", err)
		}
		count++
	}

	if count == 0 {
		return 0, nil
	}
	return count - 1, nil
}

// readCSVBatch maps each data row onto the sanitized header names. Rows
// shorter than the header pad with empty strings; extra cells are dropped.
//
// The header is always re-read so field names stay available, but when the
// cursor carries a byte position the reader seeks straight to it rather than
// rescanning every previously consumed row.
func readCSVBatch(path string, cur Cursor, limit int) ([]map[string]string, Cursor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, cur, fmt.Errorf("open csv file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, cur, nil
		}
		return nil, cur, fmt.Errorf("read csv header: %w", err)
	}

	fields := make([]string, len(header))
	for i, cell := range header {
		if i == 0 {
			// Windows exports often carry a UTF-8 BOM.
			cell = strings.TrimPrefix(cell, "\ufeff")
		}
		fields[i] = sanitizeKey(cell)
	}

	var base int64
	if cur.Byte > 0 {
		if _, err := f.Seek(cur.Byte, io.SeekStart); err != nil {
			return nil, cur, fmt.Errorf("seek csv cursor: %w", err)
		}
		r = csv.NewReader(f)
		r.FieldsPerRecord = -1
		base = cur.Byte
	} else {
		for skipped := 0; skipped < cur.Row; skipped++ {
			if _, err := r.Read(); err != nil {
				if errors.Is(err, io.EOF) {
					return nil, cur, nil
				}
				return nil, cur, fmt.Errorf("skip csv row: %w", err)
			}
		}
	}

	records := make([]map[string]string, 0, limit)
	for len(records) < limit {
		row, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, cur, fmt.Errorf("read csv row: %w", err)
		}

		rec := make(map[string]string, len(fields))
		for i, name := range fields {
			if name == "" {
				continue
			}
			if i < len(row) {
				rec[name] = row[i]
			} else {
				rec[name] = ""
			}
		}
		records = append(records, rec)
	}

	next := Cursor{Row: cur.Row + len(records), Byte: base + r.InputOffset()}
	return records, next, nil
}
