package state

import (
	"fmt"
	"time"

	"github.com/trailofbits/polyfile/internal/dump"
)

// ChromeRows is the number of screen rows outside the dump body: the title
// bar, the status line and the prompt line.
const ChromeRows = 3

// Mode selects what keyboard input edits.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeJump
	ModeLabels
)

func (m Mode) String() string {
	switch m {
	case ModeSearch:
		return "search"
	case ModeJump:
		return "jump"
	case ModeLabels:
		return "labels"
	default:
		return "normal"
	}
}

// Prompt is the single-line editor used by search and jump.
type Prompt struct {
	Text   string
	Cursor int // rune index
}

// AppState is the single source of truth for everything the renderer draws
// around the viewer.
type AppState struct {
	FileName string
	Size     int

	Mode   Mode
	Prompt Prompt

	// Search
	LastQuery     string
	Search        dump.SearchStatus
	CaseSensitive bool

	// Label panel
	LabelPanelVisible bool
	LabelPanelWidth   int
	LabelIndex        int
	LabelScroll       int

	// Readable-text pane
	ShowReadable bool

	HelpVisible bool

	// HoverOffset is the byte under the pointer, -1 when none.
	HoverOffset int

	// Dimensions
	ScreenWidth  int
	ScreenHeight int

	// Status line
	ClipboardAvailable bool
	LastYankTime       time.Time
	StatusMessage      string

	// Error state
	LastError error
}

// NewAppState returns the state for a freshly opened buffer.
func NewAppState(fileName string, size int) *AppState {
	return &AppState{
		FileName:          fileName,
		Size:              size,
		LabelPanelVisible: true,
		LabelPanelWidth:   32,
		ShowReadable:      true,
		HoverOffset:       -1,
	}
}

// BodyHeight returns the rows available to the dump and the label panel.
func (s *AppState) BodyHeight() int {
	h := s.ScreenHeight - ChromeRows
	if h < 1 {
		return 1
	}
	return h
}

// PromptActive reports whether a prompt line is being edited.
func (s *AppState) PromptActive() bool {
	return s.Mode == ModeSearch || s.Mode == ModeJump
}

// SearchStatusText renders the match position as "i/n".
func (s *AppState) SearchStatusText() string {
	return fmt.Sprintf("%d/%d", s.Search.Index, s.Search.Total)
}

func (s *AppState) clearMessages() {
	s.LastError = nil
	s.StatusMessage = ""
}

// ensureLabelVisible scrolls the label panel so LabelIndex is on screen.
func (s *AppState) ensureLabelVisible(count int) {
	visible := s.BodyHeight()
	if s.LabelIndex < s.LabelScroll {
		s.LabelScroll = s.LabelIndex
	} else if s.LabelIndex >= s.LabelScroll+visible {
		s.LabelScroll = s.LabelIndex - visible + 1
	}

	maxOffset := count - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.LabelScroll < 0 {
		s.LabelScroll = 0
	}
	if s.LabelScroll > maxOffset {
		s.LabelScroll = maxOffset
	}
}
