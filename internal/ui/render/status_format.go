package render

import (
	"fmt"
	"strings"

	"github.com/trailofbits/polyfile/internal/dump"
	statepkg "github.com/trailofbits/polyfile/internal/state"
)

func formatCompactNumber(n int) string {
	switch {
	case n >= 1_000_000_000:
		return trimTrailingZero(fmt.Sprintf("%.1f", float64(n)/1_000_000_000.0)) + "B"
	case n >= 1_000_000:
		return trimTrailingZero(fmt.Sprintf("%.1f", float64(n)/1_000_000.0)) + "M"
	case n >= 1_000:
		return trimTrailingZero(fmt.Sprintf("%.1f", float64(n)/1_000.0)) + "k"
	default:
		return fmt.Sprintf("%d", n)
	}
}

func trimTrailingZero(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	return strings.TrimSuffix(strings.TrimRight(s, "0"), ".")
}

// formatSize renders a byte count the way the title bar shows it.
func formatSize(n int) string {
	const unit = 1024
	if n < unit {
		if n == 1 {
			return "1 byte"
		}
		return fmt.Sprintf("%d bytes", n)
	}
	div, exp := unit, 0
	for m := n / unit; m >= unit && exp < 3; m /= unit {
		div *= unit
		exp++
	}
	value := trimTrailingZero(fmt.Sprintf("%.1f", float64(n)/float64(div)))
	return fmt.Sprintf("%s %ciB", value, "KMGT"[exp])
}

// formatHover describes the byte under the pointer.
func formatHover(buf *dump.Buffer, offset int) string {
	c, err := buf.ByteAt(offset)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("@%#x = %02x %s", offset, c, dump.DisplayChar(c))
}

// formatSearchStatus is empty when no search has been run.
func formatSearchStatus(state *statepkg.AppState) string {
	if state.Search.Query == "" {
		return ""
	}
	if state.Search.Total == 0 {
		return "no matches"
	}
	return fmt.Sprintf("match %d/%s", state.Search.Index, formatCompactNumber(state.Search.Total))
}

// buildStatusSegments returns the right-hand side of the status line.
func buildStatusSegments(state *statepkg.AppState, buf *dump.Buffer) []string {
	var parts []string
	if s := formatSearchStatus(state); s != "" {
		parts = append(parts, s)
	}
	if state.HoverOffset >= 0 && buf != nil {
		if s := formatHover(buf, state.HoverOffset); s != "" {
			parts = append(parts, s)
		}
	}
	if state.CaseSensitive {
		parts = append(parts, "Aa")
	}
	if state.Mode != statepkg.ModeNormal {
		parts = append(parts, state.Mode.String())
	}
	return parts
}
