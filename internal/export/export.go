package export

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/trailofbits/polyfile/internal/dump"
)

// Range describes a byte range of a named buffer to export. MIME and
// Extension are optional; each is derived from the other when missing.
type Range struct {
	FileName  string
	Total     int
	Offset    int
	Length    int
	MIME      string
	Extension string
}

// Whole returns the range covering a complete buffer.
func Whole(fileName string, total int) Range {
	return Range{FileName: fileName, Total: total, Length: total}
}

func (r Range) whole() bool {
	return r.Offset == 0 && r.Length == r.Total
}

// Resolve fills in the MIME type and extension. An extension selects its
// registered MIME type; otherwise the whole buffer keeps the type guessed
// from the file name and any sub-range is an octet stream.
func (r Range) Resolve() Range {
	if r.MIME == "" && r.Extension != "" {
		r.MIME = MIMEFor(r.Extension)
	}
	if r.MIME == "" {
		if r.whole() {
			r.MIME = FileMIME(r.FileName)
		} else {
			r.MIME = OctetStream
		}
	}
	if r.Extension == "" {
		r.Extension, _ = ExtensionFor(r.MIME)
	}
	return r
}

// Name returns the file name the range is saved under. The whole buffer
// with its own MIME type keeps the original name; anything else is named
// name@first-last.ext with inclusive decimal offsets.
func (r Range) Name() string {
	r = r.Resolve()
	name := filepath.Base(r.FileName)
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "buffer"
	}
	if r.whole() && r.MIME == FileMIME(r.FileName) {
		return name
	}
	name += fmt.Sprintf("@%d-%d", r.Offset, r.Offset+r.Length-1)
	if r.Extension != "" {
		name += "." + strings.TrimPrefix(r.Extension, ".")
	}
	return name
}

// WriteRange saves r from buf into dir and returns the path written.
func WriteRange(dir string, buf *dump.Buffer, r Range) (string, error) {
	data, err := buf.Range(r.Offset, r.Length)
	if err != nil {
		return "", fmt.Errorf("export %s: %w", r.FileName, err)
	}
	path := filepath.Join(dir, r.Name())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("export %s: %w", path, err)
	}
	return path, nil
}

// Hex renders bytes as a contiguous lowercase hex string for the clipboard.
func Hex(buf *dump.Buffer, offset, length int) (string, error) {
	data, err := buf.Range(offset, length)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(data), nil
}
