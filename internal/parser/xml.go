package parser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
)

// userElement is the element name holding one record under the document root.
const userElement = "user"

type xmlUser struct {
	Login     string `xml:"user_login"`
	Email     string `xml:"user_email"`
	Password  string `xml:"user_pass"`
	FirstName string `xml:"first_name"`
	LastName  string `xml:"last_name"`
	Role      string `xml:"role"`
}

// countXMLRows counts <user> elements directly under the document root using
// a streaming decoder, so memory stays bounded for arbitrarily large files.
func countXMLRows(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open xml file: %w", err)
	}
	defer f.Close()

	dec := xml.NewDecoder(f)
	count := 0
	depth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return count, nil
			}
			return 0, fmt.Errorf("read xml token: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if depth == 2 && t.Name.Local == userElement {
				count++
				if err := dec.Skip(); err != nil {
					return 0, fmt.Errorf("skip xml element: %w", err)
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
}

// readXMLBatch streams forward, skipping cur.Row user elements, then decodes
// up to limit records. Absent child elements default to empty strings. The
// returned cursor is row-only; XML files are never seeked into.
func readXMLBatch(path string, cur Cursor, limit int) ([]map[string]string, Cursor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, cur, fmt.Errorf("open xml file: %w", err)
	}
	defer f.Close()

	dec := xml.NewDecoder(f)
	records := make([]map[string]string, 0, limit)
	seen := 0
	depth := 0
	for len(records) < limit {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, cur, fmt.Errorf("read xml token: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if depth != 2 || t.Name.Local != userElement {
				continue
			}
			if seen < cur.Row {
				if err := dec.Skip(); err != nil {
					return nil, cur, fmt.Errorf("skip xml element: %w", err)
				}
			} else {
				var u xmlUser
				if err := dec.DecodeElement(&u, &t); err != nil {
					return nil, cur, fmt.Errorf("decode xml record: %w", err)
				}
				records = append(records, map[string]string{
					"user_login": u.Login,
					"user_email": u.Email,
					"user_pass":  u.Password,
					"first_name": u.FirstName,
					"last_name":  u.LastName,
					"role":       u.Role,
				})
			}
			seen++
			depth--
		case xml.EndElement:
			depth--
		}
	}

	return records, Cursor{Row: cur.Row + len(records)}, nil
}
