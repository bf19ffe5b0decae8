package sbud

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/trailofbits/polyfile/internal/dump"
)

const sampleDocument = `{
  "MD5": "ignored",
  "fileName": "sample.bin",
  "length": 4,
  "b64contents": "AQID\nBA==",
  "struc": [
    {"name": "Header", "value": "v1", "type": "header", "offset": 0, "size": 4,
     "subEls": [{"name": "Magic", "offset": 0, "size": 2, "subEls": []}]},
    {"type": "Trailer", "value": null, "offset": 3, "size": 1, "subEls": []}
  ]
}`

func TestParseDocument(t *testing.T) {
	doc, err := Parse("sample.json", []byte(sampleDocument))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.FileName != "sample.bin" {
		t.Fatalf("expected file name sample.bin, got %q", doc.FileName)
	}
	if diff := cmp.Diff([]byte{1, 2, 3, 4}, doc.Data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
	want := []dump.Label{
		{Start: 0, Length: 4, Text: "Header: v1", Depth: 0},
		{Start: 0, Length: 2, Text: "Magic", Depth: 1},
		{Start: 3, Length: 1, Text: "Trailer", Depth: 0},
	}
	if diff := cmp.Diff(want, doc.Labels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDocumentFallsBackToSourceName(t *testing.T) {
	doc, err := Parse("/tmp/dump.json", []byte(`{"b64contents": ""}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.FileName != "dump" {
		t.Fatalf("expected file name dump, got %q", doc.FileName)
	}
	if len(doc.Data) != 0 || len(doc.Labels) != 0 {
		t.Fatalf("expected empty document, got %d bytes %d labels", len(doc.Data), len(doc.Labels))
	}
}

func TestParseDocumentErrors(t *testing.T) {
	cases := map[string]string{
		"not json":       `{"b64contents":`,
		"not an object":  `[1, 2]`,
		"no contents":    `{"struc": []}`,
		"bad base64":     `{"b64contents": "***"}`,
		"length":         `{"b64contents": "AQID", "length": 9}`,
		"struc not list": `{"b64contents": "AQID", "struc": {}}`,
	}
	for name, input := range cases {
		_, err := Parse("input.json", []byte(input))
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("%s: expected *ParseError, got %v", name, err)
		}
		if parseErr.Source != "input.json" {
			t.Fatalf("%s: expected source input.json, got %q", name, parseErr.Source)
		}
	}
}

func TestLoadRawBase64(t *testing.T) {
	doc, err := LoadRaw(strings.NewReader("aGVs\nbG8=\n"), "/some/dir/payload.b64", true)
	if err != nil {
		t.Fatalf("LoadRaw: %v", err)
	}
	if string(doc.Data) != "hello" || doc.FileName != "payload.b64" {
		t.Fatalf("unexpected document %q %q", doc.Data, doc.FileName)
	}

	if _, err := LoadRaw(strings.NewReader("!!"), "stdin", true); err == nil {
		t.Fatalf("expected error for invalid base64")
	}
}

func TestLoadRawPassesBytesThrough(t *testing.T) {
	doc, err := LoadRaw(strings.NewReader("\x00\x01raw"), "blob", false)
	if err != nil {
		t.Fatalf("LoadRaw: %v", err)
	}
	if diff := cmp.Diff([]byte("\x00\x01raw"), doc.Data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}
