package app

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keybind/internal/input/key"
	"github.com/dshills/keybind/internal/input/termkey"
	"github.com/dshills/keybind/internal/watcher"
)

// Keys that quit when no action claims them.
var quitKeys = []key.Binding{
	key.MustParse("q"),
	key.MustParse("<Control>c"),
}

// reloadRequest is posted to the screen when the bindings file changed.
type reloadRequest struct {
	event watcher.Event
}

// Run opens the terminal and runs the event loop until the user quits.
func (a *App) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return &InitError{Component: "screen", Err: err}
	}
	if err := screen.Init(); err != nil {
		return &InitError{Component: "screen", Err: err}
	}
	defer screen.Fini()

	return a.RunScreen(screen)
}

// RunScreen runs the event loop on an initialized screen. It returns when
// the user quits or the screen is finalized.
func (a *App) RunScreen(screen tcell.Screen) error {
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer a.running.Store(false)

	stop := make(chan struct{})
	defer close(stop)
	if a.watcher != nil {
		go a.forwardReloads(screen, stop)
	}

	a.draw(screen)
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return nil
		}

		switch ev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if err := a.handleKey(ev); errors.Is(err, ErrQuit) {
				return nil
			}
		case *tcell.EventInterrupt:
			if req, ok := ev.Data().(reloadRequest); ok {
				a.reload(req)
			}
		}
		a.draw(screen)
	}
}

// handleKey resolves a key press through the registry.
// Returns ErrQuit for an unclaimed quit key.
func (a *App) handleKey(ev *tcell.EventKey) error {
	kev, ok := termkey.FromEvent(ev)
	if !ok {
		return nil
	}

	handled, err := a.registry.Execute(kev.Binding)
	if err != nil {
		a.log.Warn("%v", err)
		a.viewer.Message = err.Error()
		return nil
	}
	if handled {
		return nil
	}

	for _, q := range quitKeys {
		if kev.Binding == q {
			return ErrQuit
		}
	}
	return nil
}

// reload applies the bindings file after a change on disk.
func (a *App) reload(req reloadRequest) {
	a.log.Debug("bindings file changed (%s)", req.event.Op)
	if err := a.registry.Reload(); err != nil {
		cerr := NewComponentError("keymap", "reload", err)
		a.log.Warn("%v", cerr)
		a.viewer.Message = cerr.Error()
		return
	}
	a.viewer.Message = a.tr.T("Keybindings reloaded")
}

// forwardReloads turns watcher events into screen interrupts so that the
// registry is only touched by the event loop.
func (a *App) forwardReloads(screen tcell.Screen, stop <-chan struct{}) {
	log := a.log.WithComponent("watcher")
	for {
		select {
		case <-stop:
			return
		case ev, ok := <-a.watcher.Events():
			if !ok {
				return
			}
			if err := screen.PostEvent(tcell.NewEventInterrupt(reloadRequest{event: ev})); err != nil {
				log.Warn("dropping reload: %v", err)
			}
		case err, ok := <-a.watcher.Errors():
			if !ok {
				return
			}
			log.Warn("%v", err)
		}
	}
}

// draw renders the viewer state.
func (a *App) draw(screen tcell.Screen) {
	screen.Clear()
	_, h := screen.Size()

	v := a.viewer
	plain := tcell.StyleDefault
	bold := plain.Bold(true)

	drawText(screen, 0, 0, bold, a.tr.T("viewer.status", map[string]any{
		"Page":  v.Page,
		"Pages": v.Pages,
		"Zoom":  v.Zoom,
	}))
	drawText(screen, 0, 1, plain, fmt.Sprintf("scroll %d,%d", v.ScrollX, v.ScrollY))

	var flags string
	if v.Fullscreen {
		flags += "[fullscreen] "
	}
	if v.OSD {
		flags += "[osd]"
	}
	drawText(screen, 0, 2, plain, flags)
	drawText(screen, 0, 4, plain, v.Message)

	if h > 0 {
		drawText(screen, 0, h-1, plain.Dim(true), a.tr.T("Press q to quit"))
	}
	screen.Show()
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
