package input

import (
	"github.com/gdamore/tcell/v2"

	statepkg "github.com/trailofbits/polyfile/internal/state"
)

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	state      *statepkg.AppState // Reference to current state for mode checking
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// SetState sets the state reference for mode checking
func (ih *InputHandler) SetState(state *statepkg.AppState) {
	ih.state = state
}

// ProcessEvent converts a tcell event into an Action. It returns false once
// the event asked the application to quit.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- statepkg.ResizeAction{Width: w, Height: h}
		return true
	default:
		return true
	}
}

func (ih *InputHandler) mode() statepkg.Mode {
	if ih.state == nil {
		return statepkg.ModeNormal
	}
	return ih.state.Mode
}

func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		ih.actionChan <- statepkg.QuitAction{}
		return false
	case tcell.KeyCtrlZ:
		ih.actionChan <- statepkg.SuspendAction{}
		return true
	}

	if ih.state != nil && ih.state.HelpVisible {
		switch {
		case ev.Key() == tcell.KeyEscape:
			ih.actionChan <- statepkg.ToggleHelpAction{}
		case ev.Key() == tcell.KeyRune && (ev.Rune() == '?' || ev.Rune() == 'q'):
			ih.actionChan <- statepkg.ToggleHelpAction{}
		}
		return true
	}

	switch ih.mode() {
	case statepkg.ModeSearch, statepkg.ModeJump:
		ih.processPromptKey(ev)
		return true
	case statepkg.ModeLabels:
		return ih.processLabelKey(ev)
	default:
		return ih.processNormalKey(ev)
	}
}

func (ih *InputHandler) processPromptKey(ev *tcell.EventKey) {
	word := ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0

	switch ev.Key() {
	case tcell.KeyEscape:
		ih.actionChan <- statepkg.PromptCancelAction{}
	case tcell.KeyEnter:
		ih.actionChan <- statepkg.PromptSubmitAction{}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.actionChan <- statepkg.PromptBackspaceAction{}
	case tcell.KeyDelete:
		ih.actionChan <- statepkg.PromptDeleteAction{}
	case tcell.KeyCtrlW:
		ih.actionChan <- statepkg.PromptDeleteWordAction{}
	case tcell.KeyLeft:
		if word {
			ih.actionChan <- statepkg.PromptMoveCursorAction{Direction: "word-left"}
		} else {
			ih.actionChan <- statepkg.PromptMoveCursorAction{Direction: "left"}
		}
	case tcell.KeyRight:
		if word {
			ih.actionChan <- statepkg.PromptMoveCursorAction{Direction: "word-right"}
		} else {
			ih.actionChan <- statepkg.PromptMoveCursorAction{Direction: "right"}
		}
	case tcell.KeyHome, tcell.KeyCtrlA:
		ih.actionChan <- statepkg.PromptMoveCursorAction{Direction: "home"}
	case tcell.KeyEnd, tcell.KeyCtrlE:
		ih.actionChan <- statepkg.PromptMoveCursorAction{Direction: "end"}
	case tcell.KeyRune:
		ih.actionChan <- statepkg.PromptCharAction{Char: ev.Rune()}
	}
}

func (ih *InputHandler) processLabelKey(ev *tcell.EventKey) bool {
	page := 1
	if ih.state != nil {
		page = ih.state.BodyHeight()
	}

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyTab, tcell.KeyBacktab:
		ih.actionChan <- statepkg.LabelFocusToggleAction{}
	case tcell.KeyUp:
		ih.actionChan <- statepkg.LabelNavigateAction{Delta: -1}
	case tcell.KeyDown:
		ih.actionChan <- statepkg.LabelNavigateAction{Delta: 1}
	case tcell.KeyPgUp:
		ih.actionChan <- statepkg.LabelNavigateAction{Delta: -page}
	case tcell.KeyPgDn:
		ih.actionChan <- statepkg.LabelNavigateAction{Delta: page}
	case tcell.KeyHome:
		ih.actionChan <- statepkg.LabelSelectAction{Index: 0}
	case tcell.KeyEnd:
		ih.actionChan <- statepkg.LabelSelectAction{Index: int(^uint(0) >> 1)}
	case tcell.KeyEnter:
		ih.actionChan <- statepkg.LabelActivateAction{Index: -1}
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'k':
			ih.actionChan <- statepkg.LabelNavigateAction{Delta: -1}
		case 'j':
			ih.actionChan <- statepkg.LabelNavigateAction{Delta: 1}
		case ' ':
			ih.actionChan <- statepkg.LabelActivateAction{Index: -1}
		case 'l':
			ih.actionChan <- statepkg.LabelPanelToggleAction{}
		case 'y':
			ih.actionChan <- statepkg.YankHexAction{}
		case 's':
			ih.actionChan <- statepkg.ExportAction{}
		case '?':
			ih.actionChan <- statepkg.ToggleHelpAction{}
		case 'q':
			ih.actionChan <- statepkg.QuitAction{}
			return false
		}
	}
	return true
}

func (ih *InputHandler) processNormalKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		ih.actionChan <- statepkg.ClearFocusAction{}
	case tcell.KeyUp:
		ih.actionChan <- statepkg.ScrollAction{Rows: -1}
	case tcell.KeyDown:
		ih.actionChan <- statepkg.ScrollAction{Rows: 1}
	case tcell.KeyPgUp, tcell.KeyCtrlB:
		ih.actionChan <- statepkg.PageAction{Pages: -1}
	case tcell.KeyPgDn, tcell.KeyCtrlF:
		ih.actionChan <- statepkg.PageAction{Pages: 1}
	case tcell.KeyHome:
		ih.actionChan <- statepkg.ScrollHomeAction{}
	case tcell.KeyEnd:
		ih.actionChan <- statepkg.ScrollEndAction{}
	case tcell.KeyTab:
		ih.actionChan <- statepkg.LabelFocusToggleAction{}
	case tcell.KeyRune:
		return ih.processNormalRune(ev.Rune())
	}
	return true
}

func (ih *InputHandler) processNormalRune(r rune) bool {
	switch r {
	case 'q':
		ih.actionChan <- statepkg.QuitAction{}
		return false
	case 'k':
		ih.actionChan <- statepkg.ScrollAction{Rows: -1}
	case 'j':
		ih.actionChan <- statepkg.ScrollAction{Rows: 1}
	case ' ':
		ih.actionChan <- statepkg.PageAction{Pages: 1}
	case 'b':
		ih.actionChan <- statepkg.PageAction{Pages: -1}
	case 'G':
		ih.actionChan <- statepkg.ScrollEndAction{}
	case '/':
		ih.actionChan <- statepkg.SearchStartAction{}
	case 'n':
		ih.actionChan <- statepkg.SearchNextAction{}
	case 'N':
		ih.actionChan <- statepkg.SearchPrevAction{}
	case 'c':
		ih.actionChan <- statepkg.ToggleCaseSensitiveAction{}
	case 'g', ':':
		ih.actionChan <- statepkg.JumpStartAction{}
	case 'l':
		ih.actionChan <- statepkg.LabelPanelToggleAction{}
	case 'r':
		ih.actionChan <- statepkg.ToggleReadableAction{}
	case 'y':
		ih.actionChan <- statepkg.YankHexAction{}
	case 's':
		ih.actionChan <- statepkg.ExportAction{}
	case 'S':
		ih.actionChan <- statepkg.ExportAction{Whole: true}
	case '?':
		ih.actionChan <- statepkg.ToggleHelpAction{}
	}
	return true
}
