package dump

import (
	"errors"
	"fmt"
)

// BytesPerRow is the number of offsets shown on one dump row.
const BytesPerRow = 16

// ErrOutOfRange is returned when an offset falls outside the buffer.
var ErrOutOfRange = errors.New("offset out of range")

// Buffer is a read-only view over decoded bytes.
type Buffer struct {
	data []byte
}

// NewBuffer wraps data. The caller must not modify data afterwards.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{data: data}
}

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.data)
}

// Rows returns the number of dump rows; at least one, even for an empty buffer.
func (b *Buffer) Rows() int {
	rows := (b.Len() + BytesPerRow - 1) / BytesPerRow
	if rows < 1 {
		return 1
	}
	return rows
}

// ByteAt returns the byte at offset.
func (b *Buffer) ByteAt(offset int) (byte, error) {
	if offset < 0 || offset >= b.Len() {
		return 0, fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, offset, b.Len())
	}
	return b.data[offset], nil
}

// hexAt returns the two-digit lowercase hex code of the byte at offset.
func (b *Buffer) hexAt(offset int) (string, error) {
	c, err := b.ByteAt(offset)
	if err != nil {
		return "", err
	}
	return hexByte(c), nil
}

// DisplayCharAt returns a printable, terminal-safe representation of the byte
// at offset.
func (b *Buffer) DisplayCharAt(offset int) (string, error) {
	c, err := b.ByteAt(offset)
	if err != nil {
		return "", err
	}
	return DisplayChar(c), nil
}

// Range returns a copy of length bytes starting at offset.
func (b *Buffer) Range(offset, length int) ([]byte, error) {
	if length < 0 || offset < 0 || offset+length > b.Len() {
		return nil, fmt.Errorf("%w: range [%d, %d) not in [0, %d)", ErrOutOfRange, offset, offset+length, b.Len())
	}
	out := make([]byte, length)
	copy(out, b.data[offset:offset+length])
	return out, nil
}

// bytes exposes the backing slice to package-internal readers that never
// write through it.
func (b *Buffer) bytes() []byte {
	if b == nil {
		return nil
	}
	return b.data
}

const hexDigits = "0123456789abcdef"

func hexByte(c byte) string {
	return string([]byte{hexDigits[c>>4], hexDigits[c&0x0f]})
}

// DisplayChar maps a byte to a single visible glyph. Control characters are
// replaced by their Unicode control pictures so that nothing written to the
// terminal can be interpreted as an escape sequence.
func DisplayChar(c byte) string {
	switch {
	case c == '\n':
		return "␊"
	case c == '\t':
		return "⭾"
	case c < 0x20:
		return string(rune(0x2400 + int(c)))
	case c == 0x7f:
		return "␡"
	case c >= 0x80 && c < 0xa0:
		return "�"
	default:
		// Bytes from 0xa0 up render as Latin-1, one character per byte.
		return string(rune(c))
	}
}
