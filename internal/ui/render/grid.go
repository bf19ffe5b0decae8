package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/trailofbits/polyfile/internal/dump"
	statepkg "github.com/trailofbits/polyfile/internal/state"
)

const maxClasses = 64

type gridSlot struct {
	content dump.SlotContent
	classes uint64
}

// Grid is the terminal-side slot table the viewer writes into. Slots are
// addressed by index and the pool only grows; decorations are kept as one
// bit per class name.
type Grid struct {
	screen tcell.Screen

	slots       []gridSlot
	visibleRows int
	rowLabels   []string
	readable    []dump.ReadableLine
	lineDigits  int

	classBits  map[string]uint64
	labelFlags map[int]uint64
}

// NewGrid creates a grid sized from screen. screen may be nil in tests, in
// which case the viewport is one row high.
func NewGrid(screen tcell.Screen) *Grid {
	return &Grid{
		screen:     screen,
		classBits:  make(map[string]uint64),
		labelFlags: make(map[int]uint64),
	}
}

func (g *Grid) AllocateSlots(n int) {
	if n > len(g.slots) {
		g.slots = append(g.slots, make([]gridSlot, n-len(g.slots))...)
	}
}

func (g *Grid) SetVisibleRows(rows int) {
	g.visibleRows = rows
	if rows > len(g.rowLabels) {
		g.rowLabels = append(g.rowLabels, make([]string, rows-len(g.rowLabels))...)
	}
}

func (g *Grid) SetSlotContent(slot int, content dump.SlotContent) {
	if slot >= 0 && slot < len(g.slots) {
		g.slots[slot].content = content
	}
}

func (g *Grid) SetSlotDecoration(slot int, class string, on bool) {
	if slot < 0 || slot >= len(g.slots) {
		return
	}
	bit := g.bit(class)
	if on {
		g.slots[slot].classes |= bit
	} else {
		g.slots[slot].classes &^= bit
	}
}

func (g *Grid) SetRowLabel(row int, text string) {
	if row >= len(g.rowLabels) {
		g.rowLabels = append(g.rowLabels, make([]string, row+1-len(g.rowLabels))...)
	}
	g.rowLabels[row] = text
}

func (g *Grid) SetReadableText(lines []dump.ReadableLine, lineDigits int) {
	g.readable = lines
	g.lineDigits = lineDigits
}

func (g *Grid) ViewportHeight() int {
	if g.screen == nil {
		return 1
	}
	_, h := g.screen.Size()
	if h-statepkg.ChromeRows < 1 {
		return 1
	}
	return h - statepkg.ChromeRows
}

func (g *Grid) CellHeight() int {
	return 1
}

// SetLabelDecoration records a class on a label in the label panel.
func (g *Grid) SetLabelDecoration(label int, class string, on bool) {
	bit := g.bit(class)
	flags := g.labelFlags[label]
	if on {
		flags |= bit
	} else {
		flags &^= bit
	}
	if flags == 0 {
		delete(g.labelFlags, label)
		return
	}
	g.labelFlags[label] = flags
}

// VisibleRows returns the number of rows the viewer currently shows.
func (g *Grid) VisibleRows() int {
	return g.visibleRows
}

// SlotCount returns the allocated pool size.
func (g *Grid) SlotCount() int {
	return len(g.slots)
}

// Slot returns what slot currently displays.
func (g *Grid) Slot(slot int) dump.SlotContent {
	if slot < 0 || slot >= len(g.slots) {
		return dump.SlotContent{}
	}
	return g.slots[slot].content
}

// RowLabel returns the address text of a visible row.
func (g *Grid) RowLabel(row int) string {
	if row < 0 || row >= len(g.rowLabels) {
		return ""
	}
	return g.rowLabels[row]
}

// Readable returns the readable-pane lines and their line number width.
func (g *Grid) Readable() ([]dump.ReadableLine, int) {
	return g.readable, g.lineDigits
}

// HasClass reports whether slot is decorated with class.
func (g *Grid) HasClass(slot int, class string) bool {
	if slot < 0 || slot >= len(g.slots) {
		return false
	}
	bit, ok := g.classBits[class]
	return ok && g.slots[slot].classes&bit != 0
}

// LabelHasClass reports whether label is decorated with class.
func (g *Grid) LabelHasClass(label int, class string) bool {
	bit, ok := g.classBits[class]
	return ok && g.labelFlags[label]&bit != 0
}

func (g *Grid) bit(class string) uint64 {
	if bit, ok := g.classBits[class]; ok {
		return bit
	}
	if len(g.classBits) >= maxClasses {
		return 0
	}
	bit := uint64(1) << uint(len(g.classBits))
	g.classBits[class] = bit
	return bit
}
