package render

import (
	"strings"

	statepkg "github.com/trailofbits/polyfile/internal/state"
)

// buildFooterHelpText returns the contextual footer hint string with leading/trailing padding.
func buildFooterHelpText(state *statepkg.AppState) string {
	parts := buildFooterHelpSegments(state)
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, "  ") + " "
}

func buildFooterHelpSegments(state *statepkg.AppState) []string {
	if state == nil {
		return nil
	}
	segments := contextualHelpSegments(state)
	return append(segments, persistentHelpSegments(state)...)
}

func contextualHelpSegments(state *statepkg.AppState) []string {
	switch state.Mode {
	case statepkg.ModeSearch:
		return []string{
			"type: text or hex",
			"↵: search",
			"Esc: cancel",
		}
	case statepkg.ModeJump:
		return []string{
			"type: hex offset",
			"↵: jump",
			"Esc: cancel",
		}
	case statepkg.ModeLabels:
		return []string{
			"↑↓: select label",
			"↵/space: focus",
			"Esc/Tab: back",
		}
	default:
		segments := []string{
			"↑↓/Pg: scroll",
			"/: search",
		}
		if state.Search.Total > 0 {
			segments = append(segments, "n/N: next/prev")
		}
		return append(segments,
			"g: jump",
			"Tab: labels",
			"?: help",
		)
	}
}

func persistentHelpSegments(state *statepkg.AppState) []string {
	if state.PromptActive() {
		return nil
	}
	var segments []string
	if state.ClipboardAvailable {
		segments = append(segments, "y: yank hex")
	}
	segments = append(segments, "s: save")
	return segments
}
