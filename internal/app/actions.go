package app

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/trailofbits/polyfile/internal/export"
	statepkg "github.com/trailofbits/polyfile/internal/state"
)

var errNoFocus = errors.New("no focused label; press Enter on a label first")

// commandBuilder is replaced in tests.
var commandBuilder = exec.Command

// focusedRange returns the byte range of the manually focused label.
func (app *Application) focusedRange() (export.Range, error) {
	idx, ok := app.viewer.Focused()
	if !ok {
		return export.Range{}, errNoFocus
	}
	l := app.viewer.Labels().At(idx)
	return export.Range{
		FileName: app.doc.FileName,
		Total:    app.viewer.Buffer().Len(),
		Offset:   l.Start,
		Length:   l.Length,
	}, nil
}

// handleYank copies the focused range as hex to the system clipboard.
func (app *Application) handleYank() bool {
	if !app.clipboardAvail || len(app.clipboardCmd) == 0 {
		app.state.LastError = errors.New("no clipboard command available")
		return true
	}
	r, err := app.focusedRange()
	if err != nil {
		app.state.LastError = err
		return true
	}
	text, err := export.Hex(app.viewer.Buffer(), r.Offset, r.Length)
	if err != nil {
		app.state.LastError = err
		return true
	}

	cmd := commandBuilder(app.clipboardCmd[0], app.clipboardCmd[1:]...)
	cmd.Stdin = strings.NewReader(text)
	if out, err := cmd.CombinedOutput(); err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			msg = err.Error()
		}
		app.state.LastError = fmt.Errorf("%s: %s", app.clipboardCmd[0], msg)
		debugLog.Printf("yank failed: %v", app.state.LastError)
		return true
	}
	app.state.LastError = nil
	app.state.LastYankTime = time.Now()
	app.state.StatusMessage = fmt.Sprintf("copied %d bytes as hex", r.Length)
	return true
}

// handleExport writes the focused range, or the whole buffer, next to the
// working directory and reports the result through the reducer.
func (app *Application) handleExport(whole bool) bool {
	var r export.Range
	if whole {
		r = export.Whole(app.doc.FileName, app.viewer.Buffer().Len())
	} else {
		var err error
		if r, err = app.focusedRange(); err != nil {
			app.state.LastError = err
			return true
		}
	}

	path, err := export.WriteRange(app.exportDir, app.viewer.Buffer(), r)
	if err != nil {
		debugLog.Printf("export %s failed: %v", r.Name(), err)
	} else {
		debugLog.Printf("exported %d bytes to %s", r.Length, path)
	}
	return app.handleAppAction(statepkg.ExportResultAction{Path: path, Err: err})
}

// applyConfig handles the parts of a reloaded config the reducer does not
// own: colors and cache warming.
func (app *Application) applyConfig(a statepkg.ConfigReloadedAction) {
	if a.Err != nil {
		debugLog.Printf("config reload failed: %v", a.Err)
		return
	}
	app.cfg = a.Config
	theme, err := app.renderer.Theme().WithClassStyles(a.Config.Theme)
	if err != nil {
		debugLog.Printf("config reload: theme: %v", err)
		return
	}
	app.renderer.SetTheme(theme)
	debugLog.Printf("config reloaded")
}
