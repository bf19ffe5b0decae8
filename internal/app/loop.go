package app

import (
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"

	statepkg "github.com/trailofbits/polyfile/internal/state"
	renderui "github.com/trailofbits/polyfile/internal/ui/render"
)

const yankFlash = 100 * time.Millisecond

func (app *Application) Run() {
	defer app.screen.Fini()

	app.renderer.Render(app.state)
	renderPending := false

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			eventChan <- app.screen.PollEvent()
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	const animationInterval = 50 * time.Millisecond
	var animationTimer *time.Timer
	var animationCh <-chan time.Time

	startAnimation := func() {
		if animationTimer == nil {
			animationTimer = time.NewTimer(animationInterval)
		} else {
			if !animationTimer.Stop() {
				select {
				case <-animationTimer.C:
				default:
				}
			}
			animationTimer.Reset(animationInterval)
		}
		animationCh = animationTimer.C
	}

	stopAnimation := func() {
		if animationTimer == nil {
			return
		}
		if !animationTimer.Stop() {
			select {
			case <-animationTimer.C:
			default:
			}
		}
		animationCh = nil
	}

	// warmCh holds a token while the viewer has cache warming left, so a
	// warming step competes fairly with input in the select below.
	warmCh := make(chan struct{}, 1)

	for !app.shouldQuit {
		if renderPending {
			app.renderer.Render(app.state)
			renderPending = false
		}

		if app.shouldAnimate() {
			startAnimation()
		} else {
			stopAnimation()
		}

		if app.viewer.WarmPending() {
			select {
			case warmCh <- struct{}{}:
			default:
			}
		}

		select {
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case <-animationCh:
			renderPending = true
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case <-warmCh:
			app.warmStep()
		case <-sigContCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
	}

	stopAnimation()
}

// warmStep resolves one batch of label coverage for the current window.
func (app *Application) warmStep() {
	if !app.viewer.WarmPending() {
		return
	}
	if !app.viewer.WarmStep(app.cfg.Cache.WarmBatch) {
		cache := app.viewer.Cache()
		stats := cache.Stats()
		debugLog.Printf("window warmed: cache %d/%d entries, %d hits, %d misses",
			cache.Len(), cache.Capacity(), stats.Hits, stats.Misses)
	}
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey, *tcell.EventResize:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
	case *tcell.EventMouse:
		app.handleMouse(ev)
		return true
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
	return true
}

// handleMouse maps pointer motion, clicks and the wheel to actions.
func (app *Application) handleMouse(ev *tcell.EventMouse) {
	if app.state == nil || app.state.HelpVisible {
		return
	}
	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		app.actionCh <- statepkg.ScrollAction{Rows: -1}
		return
	case buttons&tcell.WheelDown != 0:
		app.actionCh <- statepkg.ScrollAction{Rows: 1}
		return
	}

	x, y := ev.Position()
	hit := app.renderer.HitTest(x, y)

	if hit.Kind != renderui.HitLabel {
		app.leaveLabel()
	}

	switch hit.Kind {
	case renderui.HitHex, renderui.HitChar:
		offset, ok := app.viewer.SlotOffset(hit.Slot)
		if !ok {
			app.leaveBytes()
			return
		}
		if offset != app.state.HoverOffset {
			app.actionCh <- statepkg.MouseOverByteAction{Offset: offset}
		}

	case renderui.HitLabel:
		app.leaveBytes()
		idx := app.state.LabelScroll + hit.Row
		if idx >= app.viewer.Labels().Len() {
			app.leaveLabel()
			return
		}
		if buttons&tcell.Button1 != 0 {
			app.actionCh <- statepkg.LabelActivateAction{Index: idx}
			return
		}
		if idx != app.mouseLabel {
			app.mouseLabel = idx
			app.actionCh <- statepkg.LabelSelectAction{Index: idx}
		}

	default:
		app.leaveBytes()
	}
}

func (app *Application) leaveBytes() {
	if app.state.HoverOffset >= 0 {
		app.actionCh <- statepkg.MouseLeaveAction{}
	}
}

func (app *Application) leaveLabel() {
	if app.mouseLabel < 0 {
		return
	}
	app.mouseLabel = -1
	if app.state.Mode != statepkg.ModeLabels {
		app.actionCh <- statepkg.LabelLeaveAction{}
	}
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

func (app *Application) shouldAnimate() bool {
	if app.state == nil || app.state.LastYankTime.IsZero() {
		return false
	}
	return time.Since(app.state.LastYankTime) < yankFlash
}

func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}

	switch action.(type) {
	case statepkg.QuitAction:
		app.shouldQuit = true
		return false
	case statepkg.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
		return true
	}

	return app.handleAppAction(action)
}

func (app *Application) handleAppAction(action statepkg.Action) bool {
	switch a := action.(type) {
	case statepkg.YankHexAction:
		return app.handleYank()
	case statepkg.ExportAction:
		return app.handleExport(a.Whole)
	case statepkg.ConfigReloadedAction:
		app.applyConfig(a)
	}

	_, submit := action.(statepkg.PromptSubmitAction)
	searching := submit && app.state.Mode == statepkg.ModeSearch

	if _, err := app.reducer.Reduce(app.state, action); err != nil {
		app.state.LastError = err
		debugLog.Printf("%T: %v", action, err)
	}
	if searching {
		st := app.viewer.SearchStatus()
		debugLog.Printf("search %q: %d matches", st.Query, st.Total)
	}
	return true
}
