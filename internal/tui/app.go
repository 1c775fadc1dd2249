// Package tui is a terminal stand-in for the overlay: it draws the
// accessible tree and feeds keyboard input to the focus manager.
package tui

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/mj1618/hud-a11y/internal/hud"
	"github.com/mj1618/hud-a11y/internal/input"
	"github.com/mj1618/hud-a11y/internal/model"
	"github.com/mj1618/hud-a11y/internal/widget"
)

// App runs the terminal loop for one session.
type App struct {
	screen  tcell.Screen
	session *hud.Session
	surface *input.Surface
}

// NewApp wraps screen. The screen is initialized by Run.
func NewApp(screen tcell.Screen, session *hud.Session) *App {
	return &App{
		screen:  screen,
		session: session,
		surface: input.NewSurface(session.Manager),
	}
}

// Run draws and processes events until ctx is done or the user quits.
func (a *App) Run(ctx context.Context) error {
	if err := a.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer a.screen.Fini()
	a.screen.EnableFocus()
	a.screen.HideCursor()

	events := make(chan tcell.Event, 10)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	a.draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case f := <-a.session.Scheduler.C():
			a.session.Do(f)
		case ev := <-events:
			if a.HandleEvent(ev) {
				return nil
			}
		}
		a.draw()
	}
}

// HandleEvent applies one terminal event and reports whether the user
// asked to quit.
func (a *App) HandleEvent(ev tcell.Event) (quit bool) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		if isInterrupt(ev) {
			return true
		}
		a.session.Do(func() {
			if a.session.Manager.Focused() {
				handled := a.surface.Dispatch(ev)
				a.session.Logger.Debug("key", "combo", input.Describe(ev), "handled", handled)
				return
			}
			quit = a.unfocusedKey(ev)
		})
	case *tcell.EventFocus:
		a.session.Do(func() { a.surface.Dispatch(ev) })
	}
	return quit
}

// unfocusedKey stands in for the global hotkeys that bring focus to the
// overlay.
func (a *App) unfocusedKey(ev *tcell.EventKey) bool {
	evt, ok := input.Translate(ev)
	if !ok {
		return false
	}
	m := a.session.Manager
	switch evt.Key {
	case "q":
		return true
	case "m":
		for _, n := range m.Root().Children {
			if m.FocusContext(n.Path.Root()) {
				return false
			}
		}
	case "tab", "enter", "space":
		m.FocusPath("")
	}
	return false
}

func isInterrupt(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return true
	}
	evt, ok := input.Translate(ev)
	return ok && evt.Key == "c" && evt.HasMod(model.ModCtrl)
}

func (a *App) draw() {
	snap := a.session.Snapshot(0)
	nodes := a.session.Tree()
	Draw(a.screen, snap, visible(nodes))
}

// visible hides the context menu widget, which has nothing to focus.
func visible(nodes []model.FlatNode) []model.FlatNode {
	out := nodes[:0:0]
	for _, n := range nodes {
		if n.Path.Root() != widget.ContextMenuID {
			out = append(out, n)
		}
	}
	return out
}
