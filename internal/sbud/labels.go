package sbud

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/trailofbits/polyfile/internal/dump"
)

// labelEntry is one label in a YAML sidecar file:
//
//	- start: 16
//	  length: 4
//	  text: magic
//	  children:
//	    - {start: 16, length: 2, text: major}
type labelEntry struct {
	Start    int          `yaml:"start"`
	Length   int          `yaml:"length"`
	Text     string       `yaml:"text"`
	Children []labelEntry `yaml:"children"`
}

// ParseLabels decodes a YAML label list. Children follow their parent in the
// result and carry a greater Depth.
func ParseLabels(source string, raw []byte) ([]dump.Label, error) {
	var entries []labelEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, &ParseError{Source: source, Message: err.Error(), Err: err}
	}
	var labels []dump.Label
	for _, e := range entries {
		labels = appendEntry(labels, e, 0)
	}
	return labels, nil
}

func appendEntry(labels []dump.Label, e labelEntry, depth int) []dump.Label {
	labels = append(labels, dump.Label{Start: e.Start, Length: e.Length, Text: e.Text, Depth: depth})
	for _, child := range e.Children {
		labels = appendEntry(labels, child, depth+1)
	}
	return labels
}

// LoadLabels reads a YAML label file.
func LoadLabels(path string) ([]dump.Label, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading labels %s: %w", path, err)
	}
	return ParseLabels(path, raw)
}
