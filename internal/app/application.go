package app

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/trailofbits/polyfile/internal/config"
	"github.com/trailofbits/polyfile/internal/dump"
	"github.com/trailofbits/polyfile/internal/sbud"
	statepkg "github.com/trailofbits/polyfile/internal/state"
	inputui "github.com/trailofbits/polyfile/internal/ui/input"
	renderui "github.com/trailofbits/polyfile/internal/ui/render"
)

// Options carries command-line settings that are not part of the config
// file.
type Options struct {
	// ConfigPath is watched for changes when non-empty.
	ConfigPath string
	// ExportDir receives exported ranges; empty means the working directory.
	ExportDir string
}

// Application represents the running app.
type Application struct {
	screen   tcell.Screen
	state    *statepkg.AppState
	reducer  *statepkg.StateReducer
	viewer   *dump.Viewer
	grid     *renderui.Grid
	renderer *renderui.Renderer
	input    *inputui.InputHandler
	actionCh chan statepkg.Action

	doc       *sbud.Document
	cfg       config.Config
	watcher   *config.Watcher
	exportDir string

	clipboardCmd   []string
	clipboardAvail bool

	// mouseLabel is the label hovered with the pointer, -1 when none.
	mouseLabel int
	shouldQuit bool
}

// NewApplication opens the terminal and builds a viewer over doc.
func NewApplication(doc *sbud.Document, cfg config.Config, opts Options) (*Application, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	// Motion events drive byte and label hovering.
	screen.EnableMouse()

	app, err := newApplication(screen, doc, cfg, opts)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	app.clipboardCmd, app.clipboardAvail = detectClipboard()
	app.state.ClipboardAvailable = app.clipboardAvail

	if opts.ConfigPath != "" {
		watcher, err := config.Watch(opts.ConfigPath, config.DefaultDebounce, app.configChanged)
		if err != nil {
			debugLog.Printf("config watch disabled: %v", err)
		} else {
			app.watcher = watcher
		}
	}
	return app, nil
}

// newApplication wires the viewer, reducer and renderer onto an initialized
// screen.
func newApplication(screen tcell.Screen, doc *sbud.Document, cfg config.Config, opts Options) (*Application, error) {
	buf := dump.NewBuffer(doc.Data)
	labels := dump.NewLabelSet(doc.Labels, buf.Len())

	grid := renderui.NewGrid(screen)
	viewer := dump.New(buf, labels, grid, grid, dump.Options{
		CacheCapacity: cfg.Cache.Capacity,
		CaseSensitive: cfg.Search.CaseSensitive,
	})

	renderer := renderui.NewRenderer(screen, grid, viewer)
	theme, err := renderer.Theme().WithClassStyles(cfg.Theme)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	renderer.SetTheme(theme)

	state := statepkg.NewAppState(doc.FileName, buf.Len())
	state.CaseSensitive = cfg.Search.CaseSensitive
	state.ShowReadable = cfg.UI.ShowReadable
	state.LabelPanelWidth = cfg.UI.LabelPanelWidth

	actionCh := make(chan statepkg.Action, 10)
	reducer := statepkg.NewStateReducer(viewer)
	inputHandler := inputui.NewInputHandler(actionCh)
	inputHandler.SetState(state)

	exportDir := opts.ExportDir
	if exportDir == "" {
		if cwd, err := os.Getwd(); err == nil {
			exportDir = cwd
		}
	}

	app := &Application{
		screen:     screen,
		state:      state,
		reducer:    reducer,
		viewer:     viewer,
		grid:       grid,
		renderer:   renderer,
		input:      inputHandler,
		actionCh:   actionCh,
		doc:        doc,
		cfg:        cfg,
		exportDir:  exportDir,
		mouseLabel: -1,
	}
	viewer.OnScroll = app.scrolled

	w, h := screen.Size()
	if _, err := reducer.Reduce(state, statepkg.ResizeAction{Width: w, Height: h}); err != nil {
		return nil, err
	}
	debugLog.Printf("opened %q: %d bytes, %d labels, %d rows visible",
		doc.FileName, buf.Len(), labels.Len(), viewer.VisibleRows())
	return app, nil
}

// configChanged runs on the watcher goroutine.
func (app *Application) configChanged(cfg config.Config, err error) {
	app.post(statepkg.ConfigReloadedAction{Config: cfg, Err: err})
}

// post queues an action from outside the event loop without blocking it.
func (app *Application) post(action statepkg.Action) {
	select {
	case app.actionCh <- action:
	default:
		go func() { app.actionCh <- action }()
	}
}

func (app *Application) scrolled(row int) {
	debugLog.Printf("window at row %d (generation %d)", row, app.viewer.Generation())
}

// Close cleans up resources.
func (app *Application) Close() error {
	if app.watcher != nil {
		if err := app.watcher.Close(); err != nil {
			debugLog.Printf("config watcher close: %v", err)
		}
	}
	app.screen.Fini()
	return nil
}
