package render

import (
	"github.com/trailofbits/polyfile/internal/dump"
	statepkg "github.com/trailofbits/polyfile/internal/state"
)

const (
	addressGap         = 2
	hexGridWidth       = dump.BytesPerRow * 3 // "xx " per byte, less the trailing space, plus the mid-row gap
	charGap            = 2
	readableGap        = 2
	minReadableWidth   = 8
	minLabelPanelWidth = 12
)

// Layout places every pane on screen. Widths of hidden panes are zero.
type Layout struct {
	Width  int
	Height int

	BodyY      int
	BodyHeight int

	AddrX     int
	AddrWidth int
	HexX      int
	CharX     int

	ReadableX     int
	ReadableWidth int

	LabelX     int
	LabelWidth int
}

// ComputeLayout lays out a w×h screen for addresses addrWidth digits wide.
func ComputeLayout(w, h, addrWidth int, state *statepkg.AppState) Layout {
	l := Layout{
		Width:      w,
		Height:     h,
		BodyY:      1,
		BodyHeight: h - statepkg.ChromeRows,
		AddrWidth:  addrWidth,
	}
	if l.BodyHeight < 0 {
		l.BodyHeight = 0
	}
	l.HexX = l.AddrX + addrWidth + addressGap
	l.CharX = l.HexX + hexGridWidth + charGap
	dumpEnd := l.CharX + dump.BytesPerRow

	right := w
	if state != nil && state.LabelPanelVisible {
		width := state.LabelPanelWidth
		if room := w - dumpEnd - 1; width > room {
			width = room
		}
		if width >= minLabelPanelWidth {
			l.LabelWidth = width
			l.LabelX = w - width
			right = l.LabelX - 1
		}
	}

	if state == nil || state.ShowReadable {
		x := dumpEnd + readableGap
		if right-x >= minReadableWidth {
			l.ReadableX = x
			l.ReadableWidth = right - x
		}
	}
	return l
}

// HexColumn returns the screen column of the first hex digit of byte i in a
// row.
func (l Layout) HexColumn(i int) int {
	return l.HexX + i*3 + i/8
}

// HitKind identifies the pane under a screen position.
type HitKind int

const (
	HitNone HitKind = iota
	HitHex
	HitChar
	HitLabel
)

// Hit is the result of a hit test. Slot is valid for HitHex and HitChar; Row
// is the body row for every hit in the body.
type Hit struct {
	Kind HitKind
	Slot int
	Row  int
}

// HitTest maps a screen position to a slot or label panel row.
func (l Layout) HitTest(x, y int) Hit {
	if y < l.BodyY || y >= l.BodyY+l.BodyHeight {
		return Hit{Kind: HitNone}
	}
	row := y - l.BodyY

	if x >= l.HexX && x < l.HexX+hexGridWidth {
		rel := x - l.HexX
		var i int
		if rel < 8*3 {
			i = rel / 3
		} else {
			i = 8 + (rel-8*3-1)/3
			if rel == 8*3 {
				i = 7
			}
		}
		if i >= dump.BytesPerRow {
			i = dump.BytesPerRow - 1
		}
		return Hit{Kind: HitHex, Slot: row*dump.BytesPerRow + i, Row: row}
	}
	if x >= l.CharX && x < l.CharX+dump.BytesPerRow {
		return Hit{Kind: HitChar, Slot: row*dump.BytesPerRow + x - l.CharX, Row: row}
	}
	if l.LabelWidth > 0 && x >= l.LabelX && x < l.LabelX+l.LabelWidth {
		return Hit{Kind: HitLabel, Row: row}
	}
	return Hit{Kind: HitNone, Row: row}
}
