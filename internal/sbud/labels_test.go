package sbud

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/trailofbits/polyfile/internal/dump"
)

func TestLoadLabelsFlattensChildren(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.yaml")
	content := `
- start: 16
  length: 8
  text: header
  children:
    - {start: 16, length: 2, text: major}
    - start: 18
      length: 2
      text: minor
- start: 40
  length: 1
  text: flag
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	labels, err := LoadLabels(path)
	if err != nil {
		t.Fatalf("LoadLabels: %v", err)
	}
	want := []dump.Label{
		{Start: 16, Length: 8, Text: "header"},
		{Start: 16, Length: 2, Text: "major", Depth: 1},
		{Start: 18, Length: 2, Text: "minor", Depth: 1},
		{Start: 40, Length: 1, Text: "flag"},
	}
	if diff := cmp.Diff(want, labels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestParseLabelsRejectsMalformedYAML(t *testing.T) {
	_, err := ParseLabels("bad.yaml", []byte("- start: [1, 2\n"))
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
}

func TestLoadLabelsMissingFile(t *testing.T) {
	_, err := LoadLabels(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
