package focus

import (
	"github.com/mj1618/hud-a11y/internal/model"
	"github.com/mj1618/hud-a11y/internal/widget"
)

// HandleKey applies a key event while the overlay is focused and reports
// whether it was consumed. Unconsumed keys go to the focused widget.
func (m *Manager) HandleKey(evt model.KeyEvent) bool {
	if !m.focused {
		return false
	}
	handled := m.dispatchKey(evt)
	if handled && m.focused && m.focusedWidgetID != "" && !m.widgetEnabled(m.focusedWidgetID) {
		m.scheduleBlurCheck()
	}
	return handled
}

// scheduleBlurCheck leaves the overlay if the focused widget is still
// disabled once the delay has passed and focus has not moved.
func (m *Manager) scheduleBlurCheck() {
	path, id := m.focusedPath, m.focusedWidgetID
	m.scheduler.AfterFunc(m.delay, func() {
		if m.focused && m.focusedPath == path && !m.widgetEnabled(id) {
			m.logger.Debug("focused widget disabled", "widget", id)
			m.Blur(true)
		}
	})
}

func (m *Manager) dispatchKey(evt model.KeyEvent) bool {
	node := m.currentNode()
	w := m.widget(m.focusedWidgetID)
	if evt.Down {
		switch evt.Key {
		case "escape":
			m.FocusUp()
			return true
		case "tab":
			if evt.HasMod(model.ModShift) {
				m.FocusPrevious()
			} else {
				m.FocusNext()
			}
			return true
		case "left", "right":
			if node == nil || node.Role == model.RoleWidget {
				m.switchWidget(keyDirection(evt.Key))
				return true
			}
		case "space":
			return m.activate(w, node)
		case "enter":
			if node != nil && (node.Role == model.RoleButton || node.Role == model.RoleMenuButton) {
				return m.activate(w, node)
			}
		case "up", "down":
			if node != nil && node.Role.IsContext() {
				m.moveInMenu(node, keyDirection(evt.Key))
				return true
			}
		}
	}
	if w == nil {
		return false
	}
	return w.OnKey(evt)
}

func keyDirection(key string) Direction {
	if key == "left" || key == "up" {
		return Previous
	}
	return Next
}

func (m *Manager) activate(w widget.Widget, node *model.Node) bool {
	if w == nil {
		return false
	}
	if !w.Activate(node) {
		if node != nil && node.Equals(widget.CloseID) {
			m.closeWidget(w.ID())
			return true
		}
		return false
	}
	if node != nil && node.Role == model.RoleMenuButton {
		if m.onlyContextOpened {
			m.Blur(true)
		} else {
			m.FocusPath(model.Path(w.ID()))
		}
	}
	return true
}

func (m *Manager) closeWidget(id string) {
	m.widgets.Disable(id)
	if m.root.IndexOf(model.Path(id)) >= 0 {
		m.InitWidgets()
	}
	m.Blur(true)
}

// moveInMenu steps between the entries of an open menu without wrapping.
func (m *Manager) moveInMenu(node *model.Node, dir Direction) {
	if node.Role == model.RoleMenu {
		if target := edgeChild(node, dir); target != nil {
			m.FocusPath(target.Path)
		}
		return
	}
	parent := m.root.Find(node.Path.Parent())
	if parent == nil {
		return
	}
	idx := parent.IndexOf(node.Path) + int(dir)
	if idx < 0 || idx >= len(parent.Children) {
		return
	}
	m.FocusPath(parent.Children[idx].Path)
}

// switchWidget moves to the neighbouring widget. It does not wrap, and the
// context menu widget is never a stop.
func (m *Manager) switchWidget(dir Direction) {
	var ws []widget.Widget
	for _, w := range m.enabledWidgets() {
		if w.ID() != widget.ContextMenuID {
			ws = append(ws, w)
		}
	}
	if len(ws) == 0 {
		return
	}
	cur := -1
	for i, w := range ws {
		if w.ID() == m.focusedWidgetID {
			cur = i
			break
		}
	}
	next := 0
	if cur >= 0 {
		next = cur + int(dir)
		if next < 0 || next >= len(ws) {
			return
		}
	}
	m.FocusPath(model.Path(ws[next].ID()))
}
