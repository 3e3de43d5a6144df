package parser

import "testing"

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<users>
  <user>
    <user_login>alice</user_login>
    <user_email>alice@example.com</user_email>
    <user_pass>pw1</user_pass>
    <first_name>Alice</first_name>
    <last_name>Smith</last_name>
    <role>editor</role>
  </user>
  <user>
    <user_login>bob</user_login>
    <user_email>bob@example.com</user_email>
    <first_name>Bob</first_name>
  </user>
  <user>
    <user_login>carol</user_login>
    <user_email>carol@example.com</user_email>
    <last_name>Brown</last_name>
  </user>
</users>
`

func TestCountXMLRows(t *testing.T) {
	t.Parallel()

	path := writeTempFile(t, "users.xml", sampleXML)

	got, err := Extractor{}.CountRows(path, FormatXML)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != 3 {
		t.Fatalf("expected 3 rows, got %d", got)
	}
}

func TestCountXMLRowsEmptyFile(t *testing.T) {
	t.Parallel()

	path := writeTempFile(t, "users.xml", "")

	got, err := Extractor{}.CountRows(path, FormatXML)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != 0 {
		t.Fatalf("expected 0 rows, got %d", got)
	}
}

func TestCountXMLRowsEmptyContainer(t *testing.T) {
	t.Parallel()

	path := writeTempFile(t, "users.xml", "<users></users>")

	got, err := Extractor{}.CountRows(path, FormatXML)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != 0 {
		t.Fatalf("expected 0 rows, got %d", got)
	}
}

func TestReadXMLBatchExtractsFields(t *testing.T) {
	t.Parallel()

	records, cur, err := Extractor{}.ReadBatch(writeTempFile(t, "users.xml", sampleXML), FormatXML, Cursor{}, 2)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if cur.Row != 2 {
		t.Fatalf("expected cursor row 2, got %d", cur.Row)
	}

	first := records[0]
	if first["user_login"] != "alice" || first["user_email"] != "alice@example.com" || first["role"] != "editor" {
		t.Fatalf("unexpected first record: %#v", first)
	}

	// Absent child elements default to empty strings.
	second := records[1]
	if second["user_pass"] != "" || second["last_name"] != "" || second["role"] != "" {
		t.Fatalf("expected empty defaults, got %#v", second)
	}
	if second["first_name"] != "Bob" {
		t.Fatalf("unexpected first name: %q", second["first_name"])
	}
}

func TestReadXMLBatchOffset(t *testing.T) {
	t.Parallel()

	path := writeTempFile(t, "users.xml", sampleXML)
	ex := Extractor{}

	records, cur, err := ex.ReadBatch(path, FormatXML, Cursor{Row: 2}, 5)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0]["user_login"] != "carol" {
		t.Fatalf("unexpected login: %q", records[0]["user_login"])
	}
	if cur.Row != 3 {
		t.Fatalf("expected cursor row 3, got %d", cur.Row)
	}

	empty, _, err := ex.ReadBatch(path, FormatXML, cur, 5)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty batch past end, got %d", len(empty))
	}
}

func TestReadXMLBatchMalformed(t *testing.T) {
	t.Parallel()

	path := writeTempFile(t, "users.xml", "<users><user><user_login>alice</user_login></users>")

	if _, _, err := (Extractor{}).ReadBatch(path, FormatXML, Cursor{}, 10); err == nil {
		t.Fatal("expected error")
	}
}

func TestCountXMLRowsMalformed(t *testing.T) {
	t.Parallel()

	path := writeTempFile(t, "users.xml", "<users><user></users>")

	if _, err := (Extractor{}).CountRows(path, FormatXML); err == nil {
		t.Fatal("expected error")
	}
}
