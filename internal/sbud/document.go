package sbud

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/trailofbits/polyfile/internal/dump"
)

// Document is a buffer ready for viewing together with its labels.
type Document struct {
	// FileName is the name shown in the status line and used for exports.
	FileName string
	Data     []byte
	// Labels are in document preorder: a match precedes its sub-elements.
	Labels []dump.Label
}

// Parse decodes an SBUD document as written by polyfile: the file contents
// in b64contents and the match tree in struc.
func Parse(source string, raw []byte) (*Document, error) {
	if !gjson.ValidBytes(raw) {
		return nil, &ParseError{Source: source, Message: "invalid JSON"}
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return nil, &ParseError{Source: source, Message: "document is not an object"}
	}

	contents := root.Get("b64contents")
	if !contents.Exists() {
		return nil, &ParseError{Source: source, Message: "missing b64contents"}
	}
	data, err := decodeBase64([]byte(contents.String()))
	if err != nil {
		return nil, &ParseError{Source: source, Message: "b64contents is not valid base64", Err: err}
	}
	if length := root.Get("length"); length.Exists() && int(length.Int()) != len(data) {
		return nil, &ParseError{
			Source:  source,
			Message: fmt.Sprintf("length is %d but b64contents decodes to %d bytes", length.Int(), len(data)),
		}
	}

	doc := &Document{
		FileName: root.Get("fileName").String(),
		Data:     data,
	}
	if doc.FileName == "" {
		doc.FileName = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	}

	struc := root.Get("struc")
	if struc.Exists() && !struc.IsArray() {
		return nil, &ParseError{Source: source, Message: "struc is not an array"}
	}
	struc.ForEach(func(_, match gjson.Result) bool {
		doc.Labels = appendMatch(doc.Labels, match, 0)
		return true
	})
	return doc, nil
}

func appendMatch(labels []dump.Label, match gjson.Result, depth int) []dump.Label {
	labels = append(labels, dump.Label{
		Start:  int(match.Get("offset").Int()),
		Length: int(match.Get("size").Int()),
		Text:   matchText(match),
		Depth:  depth,
	})
	match.Get("subEls").ForEach(func(_, child gjson.Result) bool {
		labels = appendMatch(labels, child, depth+1)
		return true
	})
	return labels
}

func matchText(match gjson.Result) string {
	name := match.Get("name").String()
	if name == "" {
		name = match.Get("type").String()
	}
	value := match.Get("value")
	if !value.Exists() || value.Type == gjson.Null || value.String() == "" {
		return name
	}
	return name + ": " + value.String()
}

// LoadFile reads and parses an SBUD document from path.
func LoadFile(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(path, raw)
}

// LoadRaw reads an unlabeled buffer from r. With encoded set the input is a
// base64 payload; surrounding whitespace and line breaks are ignored.
func LoadRaw(r io.Reader, name string, encoded bool) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	if encoded {
		data, err = decodeBase64(data)
		if err != nil {
			return nil, &ParseError{Source: name, Message: "input is not valid base64", Err: err}
		}
	}
	return &Document{FileName: filepath.Base(name), Data: data}, nil
}

func decodeBase64(payload []byte) ([]byte, error) {
	payload = bytes.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, payload)
	out := make([]byte, base64.StdEncoding.DecodedLen(len(payload)))
	n, err := base64.StdEncoding.Decode(out, payload)
	if err != nil {
		return nil, err
	}
	return out[:n], nil
}
