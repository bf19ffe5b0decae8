package textutil

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// Width reports the number of terminal columns text occupies, measured per
// grapheme cluster so emoji sequences count once.
func Width(text string) int {
	return uniseg.StringWidth(text)
}

// Truncate shortens text to at most width columns, replacing the tail with
// an ellipsis. Grapheme clusters are never split.
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if Width(text) <= width {
		return text
	}
	if width == 1 {
		return Ellipsis
	}

	avail := width - 1
	var b strings.Builder
	used := 0
	state := -1
	rest := text
	for len(rest) > 0 {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if used+w > avail {
			break
		}
		b.WriteString(cluster)
		used += w
	}
	b.WriteString(Ellipsis)
	return b.String()
}

// PadRight pads text with spaces to width columns, truncating if needed.
func PadRight(text string, width int) string {
	text = Truncate(text, width)
	if w := Width(text); w < width {
		text += strings.Repeat(" ", width-w)
	}
	return text
}
