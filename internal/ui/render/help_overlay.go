package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	statepkg "github.com/trailofbits/polyfile/internal/state"
)

type helpOverlayEntry struct {
	keys string
	desc string
}

type helpOverlaySection struct {
	title   string
	entries []helpOverlayEntry
}

func buildHelpOverlayLines(state *statepkg.AppState) []string {
	caseDesc := "Match case in text search"
	if state != nil && state.CaseSensitive {
		caseDesc = "Ignore case in text search"
	}
	readableDesc := "Show readable text pane"
	if state != nil && state.ShowReadable {
		readableDesc = "Hide readable text pane"
	}

	sections := []helpOverlaySection{
		{
			title: "Scrolling",
			entries: []helpOverlayEntry{
				{keys: "↑/↓ j/k", desc: "Scroll one row"},
				{keys: "PgUp/PgDn", desc: "Scroll one page"},
				{keys: "Home/End", desc: "First/last row"},
				{keys: "g", desc: "Jump to hex offset"},
			},
		},
		{
			title: "Search",
			entries: []helpOverlayEntry{
				{keys: "/", desc: "Search text, hex bytes or label names"},
				{keys: "n / N", desc: "Next/previous match"},
				{keys: "c", desc: caseDesc},
			},
		},
		{
			title: "Labels",
			entries: []helpOverlayEntry{
				{keys: "Tab", desc: "Select labels"},
				{keys: "↵ / click", desc: "Focus label (again to release)"},
				{keys: "Esc", desc: "Release focus"},
				{keys: "l", desc: "Show/hide label panel"},
			},
		},
		{
			title: "Actions",
			entries: []helpOverlayEntry{
				{keys: "r", desc: readableDesc},
				{keys: "y", desc: "Yank focused range as hex"},
				{keys: "s / S", desc: "Save focused range / whole buffer"},
			},
		},
		{
			title: "Exit",
			entries: []helpOverlayEntry{
				{keys: "q", desc: "Quit"},
				{keys: "Ctrl+C", desc: "Quit immediately"},
				{keys: "?", desc: "Close this help"},
			},
		},
	}

	lines := make([]string, 0, 32)
	for i, section := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, section.title)
		for _, entry := range section.entries {
			lines = append(lines, formatHelpOverlayEntry(entry))
		}
	}
	return lines
}

func formatHelpOverlayEntry(entry helpOverlayEntry) string {
	return fmt.Sprintf("  %-14s %s", entry.keys, entry.desc)
}

func (r *Renderer) drawHelpOverlay(state *statepkg.AppState, w, h int) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	for y := 0; y < h; y++ {
		r.fill(0, y, w, baseStyle)
	}

	title := " Help "
	headerStyle := baseStyle.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg).Bold(true)
	titleStart := 0
	if tw := len(title); w > tw {
		titleStart = (w - tw) / 2
	}
	r.drawText(titleStart, 0, w-titleStart, title, headerStyle)

	row := 2
	for _, line := range buildHelpOverlayLines(state) {
		if row >= h-1 {
			break
		}
		r.drawLine(2, row, w-4, strings.TrimRight(line, " "), baseStyle)
		row++
	}

	if h > 0 {
		r.drawLine(0, h-1, w, "? toggle · Esc/q close", headerStyle)
	}
}
