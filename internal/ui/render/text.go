package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/trailofbits/polyfile/internal/textutil"
)

func (r *Renderer) cachedRuneWidth(ru rune) int {
	if ru < 128 {
		r.runeWidthCacheMu.RLock()
		width := r.runeWidthCache[ru]
		r.runeWidthCacheMu.RUnlock()

		if width == 0 && ru != 0 {
			actual := runewidth.RuneWidth(ru)
			if actual < 0 {
				actual = 0
			}
			r.runeWidthCacheMu.Lock()
			r.runeWidthCache[ru] = actual + 1
			r.runeWidthCacheMu.Unlock()
			return actual
		}
		return width - 1
	}

	if cached, ok := r.runeWidthWide.Load(ru); ok {
		return cached.(int)
	}
	width := runewidth.RuneWidth(ru)
	if width < 0 {
		width = 0
	}
	r.runeWidthWide.Store(ru, width)
	return width
}

// drawText draws text from startX, clipped to maxWidth columns, one grapheme
// cluster per cell run. It returns the column after the last drawn cell.
func (r *Renderer) drawText(startX, y, maxWidth int, text string, style tcell.Style) int {
	x := startX
	limit := startX + maxWidth
	state := -1
	rest := text
	for len(rest) > 0 {
		var cluster string
		var width int
		cluster, rest, width, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if width <= 0 {
			continue
		}
		if x+width > limit {
			break
		}
		runes := []rune(cluster)
		r.screen.SetContent(x, y, runes[0], runes[1:], style)
		for w := 1; w < width; w++ {
			r.screen.SetContent(x+w, y, ' ', nil, style)
		}
		x += width
	}
	return x
}

// drawCell draws a single glyph into exactly one column.
func (r *Renderer) drawCell(x, y int, glyph string, style tcell.Style) {
	if glyph == "" {
		r.screen.SetContent(x, y, ' ', nil, style)
		return
	}
	runes := []rune(glyph)
	if r.cachedRuneWidth(runes[0]) > 1 {
		r.screen.SetContent(x, y, '·', nil, style)
		return
	}
	r.screen.SetContent(x, y, runes[0], runes[1:], style)
}

func (r *Renderer) fill(startX, y, endX int, style tcell.Style) {
	for x := startX; x < endX; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

// drawLine draws sanitized text truncated with an ellipsis and pads the rest
// of the span with style.
func (r *Renderer) drawLine(startX, y, width int, text string, style tcell.Style) int {
	if width <= 0 {
		return startX
	}
	text = textutil.Truncate(textutil.Sanitize(text), width)
	x := r.drawText(startX, y, width, text, style)
	r.fill(x, y, startX+width, style)
	return x
}
