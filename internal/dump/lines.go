package dump

// LineIndex maps dump rows to the 1-based source line on which each row
// starts. It is extended on demand and never rescans bytes it has seen.
type LineIndex struct {
	buf        *Buffer
	linesByRow []int
	scanned    int // offsets [0, scanned) have been counted
	line       int // line number after the last counted offset
	done       bool
}

// NewLineIndex creates an index over buf seeded with row 0 at line 1.
func NewLineIndex(buf *Buffer) *LineIndex {
	return &LineIndex{
		buf:        buf,
		linesByRow: []int{1},
		line:       1,
	}
}

// LineForRow returns the line number that row starts on. Rows past the end of
// the buffer report the last line.
func (li *LineIndex) LineForRow(row int) int {
	if row < 0 {
		row = 0
	}
	li.extend(row)
	if row >= len(li.linesByRow) {
		return li.linesByRow[len(li.linesByRow)-1]
	}
	return li.linesByRow[row]
}

// knownRows reports how many row boundaries have been resolved so far.
func (li *LineIndex) knownRows() int {
	return len(li.linesByRow)
}

func (li *LineIndex) extend(row int) {
	data := li.buf.bytes()
	for len(li.linesByRow) <= row && li.scanned < len(data) {
		if data[li.scanned] == '\n' {
			li.line++
		}
		if li.scanned%BytesPerRow == BytesPerRow-1 {
			li.linesByRow = append(li.linesByRow, li.line)
		}
		li.scanned++
	}
	if li.scanned == len(data) && !li.done {
		li.done = true
		if len(data)%BytesPerRow != 0 {
			li.linesByRow = append(li.linesByRow, li.line)
		}
	}
}
