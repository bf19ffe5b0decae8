package render

import (
	"testing"

	statepkg "github.com/trailofbits/polyfile/internal/state"
)

func TestComputeLayoutPlacesPanes(t *testing.T) {
	state := statepkg.NewAppState("f", 100)

	l := ComputeLayout(140, 20, 4, state)
	if l.HexX != 6 || l.CharX != 56 {
		t.Fatalf("unexpected dump columns hex=%d char=%d", l.HexX, l.CharX)
	}
	if l.LabelWidth != 32 || l.LabelX != 108 {
		t.Fatalf("unexpected label panel x=%d width=%d", l.LabelX, l.LabelWidth)
	}
	if l.ReadableX != 74 || l.ReadableWidth != 33 {
		t.Fatalf("unexpected readable pane x=%d width=%d", l.ReadableX, l.ReadableWidth)
	}
	if l.BodyY != 1 || l.BodyHeight != 17 {
		t.Fatalf("unexpected body y=%d height=%d", l.BodyY, l.BodyHeight)
	}
}

func TestComputeLayoutDropsPanesOnNarrowScreen(t *testing.T) {
	state := statepkg.NewAppState("f", 100)

	l := ComputeLayout(78, 10, 2, state)
	if l.ReadableWidth != 0 {
		t.Fatalf("expected no readable pane, got width %d", l.ReadableWidth)
	}
	if l.LabelWidth != 0 {
		t.Fatalf("expected no label panel, got width %d", l.LabelWidth)
	}

	state.LabelPanelVisible = false
	state.ShowReadable = false
	l = ComputeLayout(200, 10, 2, state)
	if l.LabelWidth != 0 || l.ReadableWidth != 0 {
		t.Fatalf("hidden panes should have zero width: %+v", l)
	}
}

func TestHexColumnAddsMidRowGap(t *testing.T) {
	l := ComputeLayout(140, 20, 2, nil)
	if got := l.HexColumn(0); got != 4 {
		t.Fatalf("HexColumn(0) = %d", got)
	}
	if got := l.HexColumn(7); got != 25 {
		t.Fatalf("HexColumn(7) = %d", got)
	}
	if got := l.HexColumn(8); got != 29 {
		t.Fatalf("HexColumn(8) = %d", got)
	}
	if got := l.HexColumn(15); got != 50 {
		t.Fatalf("HexColumn(15) = %d", got)
	}
}

func TestHitTest(t *testing.T) {
	state := statepkg.NewAppState("f", 100)
	l := ComputeLayout(140, 20, 2, state)

	tests := []struct {
		name string
		x, y int
		want Hit
	}{
		{"title bar", 10, 0, Hit{Kind: HitNone}},
		{"address", 0, 1, Hit{Kind: HitNone, Row: 0}},
		{"first hex digit", 4, 1, Hit{Kind: HitHex, Slot: 0, Row: 0}},
		{"second hex digit", 5, 2, Hit{Kind: HitHex, Slot: 16, Row: 1}},
		{"space after byte", 6, 1, Hit{Kind: HitHex, Slot: 0, Row: 0}},
		{"mid-row gap", 28, 1, Hit{Kind: HitHex, Slot: 7, Row: 0}},
		{"ninth byte", 29, 1, Hit{Kind: HitHex, Slot: 8, Row: 0}},
		{"last byte", 51, 3, Hit{Kind: HitHex, Slot: 47, Row: 2}},
		{"char column", l.CharX + 5, 2, Hit{Kind: HitChar, Slot: 21, Row: 1}},
		{"label panel", l.LabelX + 3, 4, Hit{Kind: HitLabel, Row: 3}},
		{"status line", 10, 18, Hit{Kind: HitNone}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.HitTest(tt.x, tt.y); got != tt.want {
				t.Fatalf("HitTest(%d,%d) = %+v, want %+v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}
