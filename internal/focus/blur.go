package focus

import (
	"github.com/mj1618/hud-a11y/internal/events"
	"github.com/mj1618/hud-a11y/internal/platform"
)

// Blur leaves the overlay and hands OS focus back to the application that
// had it before. keepPath remembers the position for the next entry.
func (m *Manager) Blur(keepPath bool) {
	m.blur(keepPath, true)
}

// SurfaceFocus reacts to the input surface gaining or losing OS focus.
// Losing it keeps the path and skips restoring, since another
// application already took focus.
func (m *Manager) SurfaceFocus(hasFocus bool) {
	switch {
	case hasFocus && !m.focused:
		m.FocusPath("")
	case !hasFocus && m.focused:
		m.blur(true, false)
	}
}

func (m *Manager) blur(keepPath, restore bool) {
	if !m.focused {
		if !keepPath {
			m.forget()
		}
		return
	}
	if w := m.widget(m.focusedWidgetID); w != nil {
		w.Blur()
	}
	if m.inContext() {
		m.publish(events.TopicHideContextMenu, nil)
	}
	m.focused = false
	m.onlyContextOpened = false
	if !keepPath {
		m.forget()
	}
	m.logger.Debug("blur", "keep_path", keepPath, "restore", restore)

	last := m.lastExternal
	m.lastExternal = platform.App{}
	if restore && m.restorer != nil {
		if err := m.restorer.Restore(last); err != nil {
			m.logger.Warn("restore focus", "app", last.Name, "error", err)
		}
	}
}

func (m *Manager) forget() {
	m.focusedPath = ""
	m.focusedWidgetID = ""
	m.focusedNode = nil
}

func (m *Manager) captureExternal() {
	if m.foreground == nil {
		return
	}
	app, err := m.foreground.ActiveApplication()
	if err != nil {
		m.logger.Debug("active application", "error", err)
		return
	}
	if !app.IsZero() {
		m.lastExternal = app
	}
}
