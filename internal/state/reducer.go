package state

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/trailofbits/polyfile/internal/dump"
)

// StateReducer applies actions to the AppState and to the viewer it drives.
type StateReducer struct {
	viewer *dump.Viewer
}

// NewStateReducer creates a reducer for viewer.
func NewStateReducer(viewer *dump.Viewer) *StateReducer {
	return &StateReducer{viewer: viewer}
}

// Viewer returns the viewer the reducer drives.
func (r *StateReducer) Viewer() *dump.Viewer {
	return r.viewer
}

func (r *StateReducer) Reduce(state *AppState, action Action) (*AppState, error) {
	switch action.(type) {
	case MouseOverByteAction, MouseLeaveAction, LabelSelectAction, LabelLeaveAction:
	default:
		state.clearMessages()
	}

	switch a := action.(type) {

	// ===== SCROLL =====

	case ScrollAction:
		r.viewer.ScrollBy(a.Rows)
		return state, nil

	case PageAction:
		page := r.viewer.VisibleRows()
		if page > 1 {
			page--
		}
		r.viewer.ScrollBy(a.Pages * page)
		return state, nil

	case ScrollHomeAction:
		r.viewer.ScrollToRow(0)
		return state, nil

	case ScrollEndAction:
		r.viewer.ScrollToRow(r.viewer.Rows())
		return state, nil

	case ResizeAction:
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
		r.viewer.Fit()
		state.ensureLabelVisible(r.viewer.Labels().Len())
		return state, nil

	// ===== PROMPT =====

	case SearchStartAction:
		state.Mode = ModeSearch
		state.Prompt.Reset(state.LastQuery)
		return state, nil

	case JumpStartAction:
		state.Mode = ModeJump
		state.Prompt.Reset("")
		return state, nil

	case PromptCharAction:
		if state.PromptActive() {
			state.Prompt.Insert(a.Char)
		}
		return state, nil

	case PromptBackspaceAction:
		if state.PromptActive() {
			state.Prompt.Backspace()
		}
		return state, nil

	case PromptDeleteAction:
		if state.PromptActive() {
			state.Prompt.Delete()
		}
		return state, nil

	case PromptDeleteWordAction:
		if state.PromptActive() {
			state.Prompt.DeleteWord()
		}
		return state, nil

	case PromptMoveCursorAction:
		if state.PromptActive() {
			state.Prompt.Move(a.Direction)
		}
		return state, nil

	case PromptCancelAction:
		state.Mode = ModeNormal
		return state, nil

	case PromptSubmitAction:
		mode := state.Mode
		text := state.Prompt.Text
		state.Mode = ModeNormal
		switch mode {
		case ModeSearch:
			r.search(state, text)
		case ModeJump:
			return state, r.jump(state, text)
		}
		return state, nil

	// ===== SEARCH =====

	case SearchNextAction:
		state.Search = r.viewer.SearchForward()
		return state, nil

	case SearchPrevAction:
		state.Search = r.viewer.SearchBackward()
		return state, nil

	case ToggleCaseSensitiveAction:
		state.CaseSensitive = !state.CaseSensitive
		r.viewer.SetCaseSensitive(state.CaseSensitive)
		if state.LastQuery != "" {
			r.search(state, state.LastQuery)
		}
		if state.CaseSensitive {
			state.StatusMessage = "case-sensitive search"
		} else {
			state.StatusMessage = "case-insensitive search"
		}
		return state, nil

	// ===== POINTER =====

	case MouseOverByteAction:
		if a.Offset < 0 || a.Offset >= state.Size {
			state.HoverOffset = -1
		} else {
			state.HoverOffset = a.Offset
		}
		r.viewer.MouseOverByte(a.Offset)
		return state, nil

	case MouseLeaveAction:
		state.HoverOffset = -1
		r.viewer.MouseLeave()
		return state, nil

	// ===== LABELS =====

	case LabelFocusToggleAction:
		if state.Mode == ModeLabels {
			state.Mode = ModeNormal
			r.viewer.UnhoverLabel()
			return state, nil
		}
		if r.viewer.Labels().Len() == 0 {
			state.StatusMessage = "no labels"
			return state, nil
		}
		state.Mode = ModeLabels
		state.LabelPanelVisible = true
		r.selectLabel(state, state.LabelIndex)
		return state, nil

	case LabelPanelToggleAction:
		state.LabelPanelVisible = !state.LabelPanelVisible
		if !state.LabelPanelVisible && state.Mode == ModeLabels {
			state.Mode = ModeNormal
			r.viewer.UnhoverLabel()
		}
		return state, nil

	case LabelNavigateAction:
		r.selectLabel(state, state.LabelIndex+a.Delta)
		return state, nil

	case LabelSelectAction:
		r.selectLabel(state, a.Index)
		return state, nil

	case LabelLeaveAction:
		r.viewer.UnhoverLabel()
		return state, nil

	case LabelActivateAction:
		idx := a.Index
		if idx < 0 {
			idx = state.LabelIndex
		}
		if idx < 0 || idx >= r.viewer.Labels().Len() {
			return state, nil
		}
		state.LabelIndex = idx
		state.ensureLabelVisible(r.viewer.Labels().Len())
		if r.viewer.ToggleFocus(idx) {
			l := r.viewer.Labels().At(idx)
			state.StatusMessage = fmt.Sprintf("focused %#x-%#x", l.Start, l.End())
		}
		return state, nil

	case ClearFocusAction:
		r.viewer.ClearFocus()
		return state, nil

	// ===== VIEW =====

	case ToggleReadableAction:
		state.ShowReadable = !state.ShowReadable
		return state, nil

	case ToggleHelpAction:
		state.HelpVisible = !state.HelpVisible
		return state, nil

	// ===== APPLICATION =====

	case ExportResultAction:
		if a.Err != nil {
			return state, a.Err
		}
		state.StatusMessage = "exported " + a.Path
		return state, nil

	case ConfigReloadedAction:
		if a.Err != nil {
			return state, fmt.Errorf("config reload: %w", a.Err)
		}
		state.ShowReadable = a.Config.UI.ShowReadable
		state.LabelPanelWidth = a.Config.UI.LabelPanelWidth
		if state.CaseSensitive != a.Config.Search.CaseSensitive {
			state.CaseSensitive = a.Config.Search.CaseSensitive
			r.viewer.SetCaseSensitive(state.CaseSensitive)
			if state.LastQuery != "" {
				r.search(state, state.LastQuery)
			}
		}
		state.StatusMessage = "config reloaded"
		return state, nil
	}

	return state, nil
}

func (r *StateReducer) search(state *AppState, query string) {
	state.LastQuery = query
	state.Search = r.viewer.Search(query)
	if query != "" && state.Search.Total == 0 {
		state.StatusMessage = "no matches for " + strconv.Quote(query)
	}
}

func (r *StateReducer) jump(state *AppState, text string) error {
	offset, err := ParseAddress(text)
	if err != nil {
		return err
	}
	r.viewer.JumpTo(offset)
	if offset >= state.Size {
		return fmt.Errorf("%w: address %#x past end of %d-byte buffer", dump.ErrOutOfRange, offset, state.Size)
	}
	return nil
}

func (r *StateReducer) selectLabel(state *AppState, idx int) {
	count := r.viewer.Labels().Len()
	if count == 0 {
		return
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= count {
		idx = count - 1
	}
	state.LabelIndex = idx
	state.ensureLabelVisible(count)
	r.viewer.HoverLabel(idx)
}

// ParseAddress parses a hexadecimal byte address with an optional 0x prefix.
func ParseAddress(text string) (int, error) {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return 0, fmt.Errorf("empty address")
	}
	n, err := strconv.ParseUint(s, 16, 63)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q", strings.TrimSpace(text))
	}
	return int(n), nil
}
