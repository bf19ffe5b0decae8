package dump

import "fmt"

// Viewport owns the window position and materializes the window into the
// surface's slots. Slot identity is stable across scrolls; the offset a slot
// shows is WindowStart()+slot.
type Viewport struct {
	buf        *Buffer
	lines      *LineIndex
	cache      *LabelCache
	highlights *HighlightManager
	surface    Surface

	rows          int
	rowOffset     int
	visibleRows   int
	allocatedRows int
	addrDigits    int

	generation uint64
	warm       *warmTask

	// OnScroll, when set, is called after every completed scroll with the new
	// row offset.
	OnScroll func(row int)
}

// warmTask pre-populates the label cache for one window. It is abandoned as
// soon as the viewport's generation moves past the one it was created for.
type warmTask struct {
	generation uint64
	next       int
	end        int
}

func newViewport(buf *Buffer, cache *LabelCache, surface Surface) *Viewport {
	return &Viewport{
		buf:        buf,
		lines:      NewLineIndex(buf),
		cache:      cache,
		highlights: NewHighlightManager(surface),
		surface:    surface,
		rows:       buf.Rows(),
		addrDigits: addressDigits(buf.Len()),
	}
}

// Rows returns the total number of dump rows.
func (v *Viewport) Rows() int { return v.rows }

// RowOffset returns the first visible row.
func (v *Viewport) RowOffset() int { return v.rowOffset }

// VisibleRows returns the number of rows in the window.
func (v *Viewport) VisibleRows() int { return v.visibleRows }

// WindowStart returns the offset shown in slot 0.
func (v *Viewport) WindowStart() int { return v.rowOffset * BytesPerRow }

// SlotCount returns the number of visible slots.
func (v *Viewport) SlotCount() int { return v.visibleRows * BytesPerRow }

// Generation increases with every scroll.
func (v *Viewport) Generation() uint64 { return v.generation }

// Cache returns the label cache.
func (v *Viewport) Cache() *LabelCache { return v.cache }

// Buffer returns the buffer being viewed.
func (v *Viewport) Buffer() *Buffer { return v.buf }

// SlotOffset returns the absolute offset shown in slot, and whether that
// offset exists in the buffer.
func (v *Viewport) SlotOffset(slot int) (int, bool) {
	if slot < 0 || slot >= v.SlotCount() {
		return 0, false
	}
	offset := v.WindowStart() + slot
	return offset, offset < v.buf.Len()
}

// ScrollToRow moves the window so row is the first visible row, clamped to
// the valid range, and refreshes slots, row labels, the readable pane and
// every highlight class before returning. Cache warming for the new window is
// left for WarmStep.
func (v *Viewport) ScrollToRow(row int) {
	v.generation++
	if row < 0 || v.rows <= v.visibleRows {
		row = 0
	} else if row > v.rows-v.visibleRows {
		row = v.rows - v.visibleRows
	}
	v.cache.Clear()
	v.rowOffset = row

	start := v.WindowStart()
	slots := v.SlotCount()
	n := v.buf.Len()
	data := v.buf.bytes()
	for i := 0; i < slots; i++ {
		var content SlotContent
		if offset := start + i; offset < n {
			content = SlotContent{Hex: hexByte(data[offset]), Char: DisplayChar(data[offset])}
		}
		v.surface.SetSlotContent(i, content)
	}
	for r := 0; r < v.visibleRows; r++ {
		v.surface.SetRowLabel(r, formatAddress((row+r)*BytesPerRow, v.addrDigits))
	}
	v.renderReadable()
	v.highlights.SetWindow(start, slots)

	v.warm = &warmTask{
		generation: v.generation,
		next:       start,
		end:        min(start+slots, n),
	}
	if v.OnScroll != nil {
		v.OnScroll(row)
	}
}

// ScrollToByte scrolls to the row containing offset.
func (v *Viewport) ScrollToByte(offset int) {
	if offset < 0 {
		offset = 0
	}
	v.ScrollToRow(offset / BytesPerRow)
}

// ScrollBy scrolls delta rows from the current position.
func (v *Viewport) ScrollBy(delta int) {
	v.ScrollToRow(v.rowOffset + delta)
}

// Refresh re-renders the current window.
func (v *Viewport) Refresh() {
	v.ScrollToRow(v.rowOffset)
}

// Resize sets the number of visible rows. The surface's slot pool only ever
// grows; shrinking hides rows rather than releasing them.
func (v *Viewport) Resize(visibleRows int) {
	if visibleRows < 1 {
		visibleRows = 1
	}
	if visibleRows > v.allocatedRows {
		v.surface.AllocateSlots(visibleRows * BytesPerRow)
		v.allocatedRows = visibleRows
	}
	v.visibleRows = visibleRows
	v.surface.SetVisibleRows(visibleRows)
	v.ScrollToRow(v.rowOffset)
}

// Fit resizes the window to the height the surface reports.
func (v *Viewport) Fit() {
	cell := v.surface.CellHeight()
	if cell < 1 {
		cell = 1
	}
	v.Resize(v.surface.ViewportHeight() / cell)
}

// WarmPending reports whether cache warming for the current window is
// unfinished.
func (v *Viewport) WarmPending() bool {
	return v.warm != nil
}

// WarmStep resolves label coverage for up to budget offsets of the window and
// reports whether more remain. A task made stale by a newer scroll stops
// without doing any work.
func (v *Viewport) WarmStep(budget int) bool {
	t := v.warm
	if t == nil {
		return false
	}
	if budget < 1 {
		budget = 1
	}
	for ; budget > 0; budget-- {
		if t.generation != v.generation || t.next >= t.end {
			v.warm = nil
			return false
		}
		v.cache.LabelsForByte(t.next)
		t.next++
	}
	if t.next >= t.end {
		v.warm = nil
		return false
	}
	return true
}

func (v *Viewport) renderReadable() {
	row := v.rowOffset
	line := v.lines.LineForRow(row)
	start := v.WindowStart()
	end := min(start+v.SlotCount(), v.buf.Len())
	data := v.buf.bytes()

	lines := make([]ReadableLine, 0, v.visibleRows)
	current := ReadableLine{Line: line}
	for offset := start; offset < end; offset++ {
		if data[offset] == '\n' {
			lines = append(lines, current)
			line++
			current = ReadableLine{Line: line}
			continue
		}
		current.Cells = append(current.Cells, ReadableCell{
			Slot: offset - start,
			Text: DisplayChar(data[offset]),
		})
	}
	lines = append(lines, current)
	v.surface.SetReadableText(lines, decimalDigits(line))
}

// addressDigits returns how many hex digits are needed to address n bytes.
func addressDigits(n int) int {
	digits := 1
	for limit := 16; limit < n; limit *= 16 {
		digits++
	}
	return digits
}

func decimalDigits(n int) int {
	digits := 1
	for n >= 10 {
		n /= 10
		digits++
	}
	return digits
}

func formatAddress(offset, digits int) string {
	return fmt.Sprintf("%0*x", digits, offset)
}
