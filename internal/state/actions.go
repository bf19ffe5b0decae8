package state

import "github.com/trailofbits/polyfile/internal/config"

// Action is the base interface for all state mutations
type Action interface{}

// ===== SCROLL ACTIONS =====

type ScrollAction struct {
	Rows int
}
type PageAction struct {
	Pages int
}
type ScrollHomeAction struct{}
type ScrollEndAction struct{}

// ===== PROMPT ACTIONS =====

type SearchStartAction struct{}
type JumpStartAction struct{}
type PromptCharAction struct {
	Char rune
}
type PromptBackspaceAction struct{}
type PromptDeleteAction struct{}
type PromptDeleteWordAction struct{}
type PromptMoveCursorAction struct {
	Direction string // "left", "right", "word-left", "word-right", "home", "end"
}
type PromptSubmitAction struct{}
type PromptCancelAction struct{}

// ===== SEARCH ACTIONS =====

type SearchNextAction struct{}
type SearchPrevAction struct{}
type ToggleCaseSensitiveAction struct{}

// ===== POINTER ACTIONS =====

type MouseOverByteAction struct {
	Offset int
}
type MouseLeaveAction struct{}

// ===== LABEL ACTIONS =====

type LabelFocusToggleAction struct{}
type LabelPanelToggleAction struct{}
type LabelNavigateAction struct {
	Delta int
}
type LabelSelectAction struct {
	Index int
}
type LabelLeaveAction struct{}

// LabelActivateAction toggles manual focus on a label; Index -1 means the
// selected label.
type LabelActivateAction struct {
	Index int
}
type ClearFocusAction struct{}

// ===== VIEW ACTIONS =====

type ResizeAction struct {
	Width  int
	Height int
}
type ToggleReadableAction struct{}
type ToggleHelpAction struct{}

// ===== APPLICATION ACTIONS =====

type YankHexAction struct{}
type ExportAction struct {
	Whole bool // export the whole buffer rather than the focused label
}
type ExportResultAction struct {
	Path string
	Err  error
}
type ConfigReloadedAction struct {
	Config config.Config
	Err    error
}

type QuitAction struct{}
type SuspendAction struct{}
