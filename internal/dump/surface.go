package dump

// SlotContent is what a single display slot shows. Both fields are empty for
// slots past the end of the buffer.
type SlotContent struct {
	Hex  string
	Char string
}

// ReadableCell is one byte of the readable-text pane, tied to the slot that
// shows the same offset so decorations apply to both.
type ReadableCell struct {
	Slot int
	Text string
}

// ReadableLine is one source line of the readable-text pane.
type ReadableLine struct {
	Line  int
	Cells []ReadableCell
}

// SlotDecorator toggles a named decoration on a slot. Decorations of
// different classes are independent and may coexist on one slot.
type SlotDecorator interface {
	SetSlotDecoration(slot int, class string, on bool)
}

// Surface is the display the engine writes into. Slots are addressed by
// their index relative to the current window; the engine never refers to a
// display cell any other way.
type Surface interface {
	SlotDecorator

	// AllocateSlots grows the slot pool to n slots. It is never called with a
	// smaller n than before.
	AllocateSlots(n int)
	// SetVisibleRows sets how many rows of the pool are shown. Hidden slots
	// keep their state.
	SetVisibleRows(rows int)
	SetSlotContent(slot int, content SlotContent)
	SetRowLabel(row int, text string)
	SetReadableText(lines []ReadableLine, lineDigits int)

	// ViewportHeight returns the height available to dump rows, in the same
	// unit as CellHeight.
	ViewportHeight() int
	CellHeight() int
}

// LabelDecorator lets the host mark a label's own presentation, for example
// when the bytes under the pointer belong to it.
type LabelDecorator interface {
	SetLabelDecoration(label int, class string, on bool)
}
