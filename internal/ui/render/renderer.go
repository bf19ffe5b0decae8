package render

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/trailofbits/polyfile/internal/dump"
	statepkg "github.com/trailofbits/polyfile/internal/state"
	"github.com/trailofbits/polyfile/internal/textutil"
)

const (
	yankFlash     = 100 * time.Millisecond
	labelIndent   = 2
	maxLabelDepth = 6
)

// Renderer handles all UI rendering
type Renderer struct {
	screen tcell.Screen
	grid   *Grid
	viewer *dump.Viewer
	theme  ColorTheme
	layout Layout

	runeWidthCache   [128]int // ASCII cache (0-127)
	runeWidthCacheMu sync.RWMutex
	runeWidthWide    sync.Map // For non-ASCII runes
}

// NewRenderer creates a renderer that draws grid, which viewer writes into.
func NewRenderer(screen tcell.Screen, grid *Grid, viewer *dump.Viewer) *Renderer {
	return &Renderer{
		screen: screen,
		grid:   grid,
		viewer: viewer,
		theme:  GetColorTheme(),
	}
}

// SetTheme replaces the color scheme used from the next frame on.
func (r *Renderer) SetTheme(theme ColorTheme) {
	r.theme = theme
}

// Theme returns the current color scheme.
func (r *Renderer) Theme() ColorTheme {
	return r.theme
}

// Layout returns the layout of the last frame.
func (r *Renderer) Layout() Layout {
	return r.layout
}

// HitTest maps a screen position using the last frame's layout.
func (r *Renderer) HitTest(x, y int) Hit {
	return r.layout.HitTest(x, y)
}

// Render draws the entire UI based on state
func (r *Renderer) Render(state *statepkg.AppState) {
	r.screen.Clear()
	w, h := r.screen.Size()

	addrWidth := len(r.grid.RowLabel(0))
	if addrWidth == 0 {
		addrWidth = 1
	}
	r.layout = ComputeLayout(w, h, addrWidth, state)

	if state.HelpVisible {
		r.screen.HideCursor()
		r.drawHelpOverlay(state, w, h)
		r.screen.Show()
		return
	}

	r.drawHeader(state, w)
	r.drawDump()
	if r.layout.ReadableWidth > 0 {
		r.drawReadable()
	}
	if r.layout.LabelWidth > 0 {
		r.drawLabelPanel(state)
	}
	if h >= 2 {
		r.drawStatusLine(state, w, h-2)
	}
	if h >= 1 {
		r.drawPromptLine(state, w, h-1)
	}
	r.screen.Show()
}

// drawHeader renders the title bar with the file name and size.
func (r *Renderer) drawHeader(state *statepkg.AppState, w int) {
	style := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg)
	x := r.drawText(0, 0, w, "polyview ", style.Bold(true))

	name := state.FileName
	if name == "" {
		name = "(stdin)"
	}
	size := " (" + formatSize(state.Size) + ")"
	avail := w - x - textutil.Width(size)
	if avail > 0 {
		x = r.drawText(x, 0, avail, textutil.Truncate(textutil.Sanitize(name), avail), style)
		x = r.drawText(x, 0, w-x, size, style)
	}
	r.fill(x, 0, w, style)
}

// slotStyle applies every class decorating slot in precedence order.
func (r *Renderer) slotStyle(slot int, base tcell.Style) tcell.Style {
	style := base
	for _, class := range r.theme.order {
		if r.grid.HasClass(slot, class) {
			style = r.theme.Classes[class].apply(style)
		}
	}
	return style
}

func (r *Renderer) labelStyle(label int, base tcell.Style) tcell.Style {
	style := base
	for _, class := range r.theme.order {
		if r.grid.LabelHasClass(label, class) {
			style = r.theme.Classes[class].apply(style)
		}
	}
	return style
}

func (r *Renderer) drawDump() {
	l := r.layout
	base := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	addrStyle := base.Foreground(r.theme.AddressFg)
	controlStyle := base.Foreground(r.theme.ControlFg)

	rows := r.grid.VisibleRows()
	if rows > l.BodyHeight {
		rows = l.BodyHeight
	}
	for row := 0; row < rows; row++ {
		y := l.BodyY + row
		r.drawText(l.AddrX, y, l.AddrWidth, r.grid.RowLabel(row), addrStyle)

		for i := 0; i < dump.BytesPerRow; i++ {
			slot := row*dump.BytesPerRow + i
			content := r.grid.Slot(slot)

			hexStyle := r.slotStyle(slot, base)
			x := l.HexColumn(i)
			hex := content.Hex
			if hex == "" {
				hex = "  "
			}
			r.drawText(x, y, 2, hex, hexStyle)
			if i < dump.BytesPerRow-1 && content.Hex != "" && r.sameDecoration(slot, slot+1) {
				r.fill(x+2, y, l.HexColumn(i+1), hexStyle)
			}

			charBase := base
			if isControlGlyph(content.Char) {
				charBase = controlStyle
			}
			r.drawCell(l.CharX+i, y, content.Char, r.slotStyle(slot, charBase))
		}
	}
}

// sameDecoration reports whether two slots carry the same classes, so the
// gap between them can be painted as one run.
func (r *Renderer) sameDecoration(a, b int) bool {
	if b >= len(r.grid.slots) {
		return false
	}
	ca, cb := r.grid.slots[a].classes, r.grid.slots[b].classes
	return ca != 0 && ca == cb && r.grid.slots[b].content.Hex != ""
}

func isControlGlyph(s string) bool {
	if s == "" {
		return false
	}
	ru := []rune(s)[0]
	return (ru >= 0x2400 && ru <= 0x2421) || ru == '⭾' || ru == '�'
}

func (r *Renderer) drawReadable() {
	l := r.layout
	base := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	numberStyle := base.Foreground(r.theme.LineNumberFg)

	lines, digits := r.grid.Readable()
	for i, line := range lines {
		if i >= l.BodyHeight {
			break
		}
		y := l.BodyY + i
		end := l.ReadableX + l.ReadableWidth
		number := fmt.Sprintf("%*d ", digits, line.Line)
		x := r.drawText(l.ReadableX, y, l.ReadableWidth, number, numberStyle)
		for _, cell := range line.Cells {
			if x >= end {
				break
			}
			style := r.slotStyle(cell.Slot, base)
			if isControlGlyph(cell.Text) {
				style = r.slotStyle(cell.Slot, base.Foreground(r.theme.ControlFg))
			}
			r.drawCell(x, y, cell.Text, style)
			x++
		}
	}
}

func (r *Renderer) drawLabelPanel(state *statepkg.AppState) {
	l := r.layout
	base := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.LabelFg)
	sepStyle := base.Foreground(r.theme.SeparatorFg)
	selectedStyle := base.Background(r.theme.LabelSelectedBg).Foreground(r.theme.LabelSelectedFg)

	if sepX := l.LabelX - 1; sepX >= 0 {
		for y := l.BodyY; y < l.BodyY+l.BodyHeight; y++ {
			r.screen.SetContent(sepX, y, '│', nil, sepStyle)
		}
	}

	labels := r.viewer.Labels()
	if labels.Len() == 0 {
		r.drawLine(l.LabelX, l.BodyY, l.LabelWidth, "no labels", base.Foreground(r.theme.EmptyLabelFg))
		return
	}

	for row := 0; row < l.BodyHeight; row++ {
		idx := state.LabelScroll + row
		if idx >= labels.Len() {
			break
		}
		label := labels.At(idx)
		depth := label.Depth
		if depth > maxLabelDepth {
			depth = maxLabelDepth
		}
		indent := strings.Repeat(" ", depth*labelIndent)

		style := r.labelStyle(idx, base)
		if state.Mode == statepkg.ModeLabels && idx == state.LabelIndex {
			style = selectedStyle
		}
		r.drawLine(l.LabelX, l.BodyY+row, l.LabelWidth, indent+label.Text, style)
	}
}

func (r *Renderer) drawStatusLine(state *statepkg.AppState, w, y int) {
	normal := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	if !state.LastYankTime.IsZero() && time.Since(state.LastYankTime) < yankFlash {
		normal = tcell.StyleDefault.Background(tcell.ColorGreen).Foreground(tcell.ColorBlack)
	}

	right := strings.Join(buildStatusSegments(state, r.viewer.Buffer()), " · ")
	rightWidth := textutil.Width(right)
	if right != "" {
		rightWidth++
	}
	if rightWidth > w {
		rightWidth = 0
		right = ""
	}

	leftWidth := w - rightWidth
	switch {
	case state.LastError != nil:
		r.drawLine(0, y, leftWidth, " "+state.LastError.Error(), normal.Foreground(r.theme.ErrorFg))
	case state.StatusMessage != "":
		r.drawLine(0, y, leftWidth, " "+state.StatusMessage, normal)
	default:
		r.fill(0, y, leftWidth, normal)
	}
	if right != "" {
		r.drawText(leftWidth, y, rightWidth, right+" ", normal)
	}
}

func (r *Renderer) drawPromptLine(state *statepkg.AppState, w, y int) {
	style := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	if !state.PromptActive() {
		r.screen.HideCursor()
		r.drawLine(0, y, w, buildFooterHelpText(state), style)
		return
	}

	prefix := "/"
	if state.Mode == statepkg.ModeJump {
		prefix = "jump to 0x"
	}
	text := textutil.Sanitize(state.Prompt.Text)
	x := r.drawText(0, y, w, prefix, style.Bold(true))
	start := x
	r.drawText(x, y, w-x, text, style)

	runes := []rune(text)
	cursor := state.Prompt.Cursor
	if cursor > len(runes) {
		cursor = len(runes)
	}
	cursorX := start + textutil.Width(string(runes[:cursor]))
	r.fill(start+textutil.Width(text), y, w, style)
	if cursorX < w {
		r.screen.ShowCursor(cursorX, y)
	}
}
