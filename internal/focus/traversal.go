package focus

import (
	"github.com/mj1618/hud-a11y/internal/events"
	"github.com/mj1618/hud-a11y/internal/model"
)

// Direction is the step taken by FocusDirection.
type Direction int

const (
	Previous Direction = -1
	Next     Direction = 1
)

func (d Direction) String() string {
	if d < 0 {
		return "previous"
	}
	return "next"
}

// FocusPath moves focus to path and announces it. An empty path resumes
// the remembered position, or the first enabled widget with content.
func (m *Manager) FocusPath(path model.Path) {
	if path == "" {
		path = m.resumePath()
		if path == "" {
			m.logger.Debug("nothing to focus")
			if m.focused {
				m.Blur(false)
			}
			return
		}
	}
	if m.focused && path == m.focusedPath {
		return
	}
	w := m.widget(path.Root())
	if w == nil || !w.Enabled() {
		m.logger.Debug("focus request for unavailable widget", "path", path)
		return
	}

	wasFocused := m.focused
	prevInContext := wasFocused && m.inContext()
	m.Focus(w.ID(), path)

	node := m.focusedNode
	inContext := node != nil && node.Role.IsContext()
	m.logger.Debug("focus", "path", m.focusedPath, "context", inContext)
	m.narrate(wasFocused, w, node)

	switch {
	case inContext && !prevInContext:
		m.showContextMenu(w)
	case !inContext && prevInContext:
		m.publish(events.TopicHideContextMenu, nil)
		if m.onlyContextOpened {
			m.Blur(true)
		}
	}
}

// Focus records path as the focused element of widgetID without
// announcing it. An empty widgetID keeps the current widget.
func (m *Manager) Focus(widgetID string, path model.Path) {
	if widgetID == "" {
		widgetID = m.focusedWidgetID
	}
	if widgetID == "" {
		if ws := m.enabledWidgets(); len(ws) > 0 {
			widgetID = ws[0].ID()
		}
	}
	w := m.widget(widgetID)
	if w == nil {
		return
	}
	if m.focusedWidgetID != "" && m.focusedWidgetID != widgetID {
		if prev := m.widget(m.focusedWidgetID); prev != nil {
			prev.Blur()
		}
	}
	if !m.focused {
		m.captureExternal()
	}

	m.focused = true
	m.focusedWidgetID = widgetID
	if node := w.Focus(path); node != nil {
		m.focusedNode = node
		m.focusedPath = node.Path
		return
	}
	m.focusedPath = model.Path(widgetID)
	m.focusedNode = m.root.Find(m.focusedPath)
}

func (m *Manager) resumePath() model.Path {
	if m.focusedPath != "" && m.widgetEnabled(m.focusedPath.Root()) {
		if m.root.Find(m.focusedPath) != nil {
			return m.focusedPath
		}
		if root := model.Path(m.focusedPath.Root()); m.root.Find(root) != nil {
			return root
		}
	}
	for _, w := range m.enabledWidgets() {
		if n := m.root.Find(model.Path(w.ID())); n != nil && len(n.Children) > 0 {
			return n.Path
		}
	}
	return ""
}

// FocusUp moves to the nearest enclosing element that is not a plain
// container. At widget level it leaves the overlay.
func (m *Manager) FocusUp() {
	if !m.focused {
		return
	}
	m.focusUp(m.currentNode())
}

func (m *Manager) focusUp(node *model.Node) {
	if node == nil {
		m.Blur(false)
		return
	}
	if node.Role == model.RoleWidget || node.Role == model.RoleRoot ||
		(node.Role.IsContext() && m.onlyContextOpened) {
		m.Blur(false)
		return
	}
	parent := m.root.Find(node.Path.Parent())
	if parent == nil {
		m.Blur(false)
		return
	}
	if parent.Role.IsContainer() {
		m.focusUp(parent)
		return
	}
	m.FocusPath(parent.Path)
}

// FocusNext moves to the following element in document order.
func (m *Manager) FocusNext() { m.FocusDirection("", Next) }

// FocusPrevious moves to the preceding element in document order.
func (m *Manager) FocusPrevious() { m.FocusDirection("", Previous) }

// FocusDirection steps from path, or from the focused element when path
// is empty. Radio and checkbox items are stepped over as their group.
// Leaving the last element of a widget lands on the widget itself.
func (m *Manager) FocusDirection(path model.Path, dir Direction) {
	if path == "" {
		if !m.focused {
			m.FocusPath("")
			return
		}
		path = m.focusedPath
	}

	item := m.root.Find(path)
	if item == nil {
		m.focusFromStale(path, dir)
		return
	}
	if item.Role == model.RoleRoot {
		m.FocusPath("")
		return
	}
	if item.Role == model.RoleWidget ||
		(item.Role == model.RoleMenu && !item.Path.Contains(m.focusedPath)) {
		if target := edgeChild(item, dir); target != nil {
			m.focusTarget(target, dir)
		} else {
			m.FocusPath(item.Path)
		}
		return
	}

	ref := item
	if item.Role.IsGrouped() {
		if group := m.root.Find(item.Path.Parent()); group != nil && group.Role != model.RoleWidget {
			ref = group
		}
	}
	parent := m.root.Find(ref.Path.Parent())
	if parent == nil {
		m.focusFromStale(ref.Path, dir)
		return
	}
	idx := childIndex(parent, ref.Path)
	next := -1
	if idx >= 0 {
		next = idx + int(dir)
	}
	m.step(parent, ref.Path, next, dir)
}

// step focuses parent's child at index, or climbs out of parent when the
// index falls outside it.
func (m *Manager) step(parent *model.Node, from model.Path, index int, dir Direction) {
	if index >= 0 && index < len(parent.Children) {
		m.focusTarget(parent.Children[index], dir)
		return
	}
	switch parent.Role {
	case model.RoleWidget:
		m.FocusPath(parent.Path)
	case model.RoleRoot:
		m.FocusPath(model.Path(from.Root()))
	default:
		m.FocusDirection(parent.Path, dir)
	}
}

// focusFromStale walks up from a path that no longer resolves until an
// ancestor exists, then steps from the vanished child's old index.
func (m *Manager) focusFromStale(path model.Path, dir Direction) {
	child := path
	for !child.IsRoot() {
		parentPath := child.Parent()
		if parentPath.IsRoot() {
			break
		}
		parent := m.root.Find(parentPath)
		if parent == nil {
			child = parentPath
			continue
		}
		next := -1
		if idx, ok := child.ChildIndex(); ok {
			// The child at idx now holds what followed the vanished node.
			next = idx + int(dir)
			if dir == Next {
				next--
			}
		}
		m.logger.Debug("stepping from stale path", "path", path, "anchor", parentPath)
		m.step(parent, child, next, dir)
		return
	}
	m.FocusPath("")
}

// focusTarget descends through containers to the edge element facing dir.
func (m *Manager) focusTarget(target *model.Node, dir Direction) {
	for target.Role.IsContainer() {
		c := edgeChild(target, dir)
		if c == nil {
			break
		}
		target = c
	}
	m.FocusPath(target.Path)
}

func edgeChild(n *model.Node, dir Direction) *model.Node {
	if dir == Previous {
		return n.Last()
	}
	return n.First()
}

func childIndex(parent *model.Node, p model.Path) int {
	if i := parent.IndexOf(p); i >= 0 {
		return i
	}
	if i, ok := p.ChildIndex(); ok {
		return i
	}
	return -1
}

// FocusContext opens the first menu of widgetID. When focus was outside
// the overlay, leaving the menu blurs again.
func (m *Manager) FocusContext(widgetID string) bool {
	wn := m.root.Find(model.Path(widgetID))
	if wn == nil {
		return false
	}
	var menu *model.Node
	wn.Walk(func(n *model.Node) bool {
		if menu != nil {
			return false
		}
		if n.Role == model.RoleMenu {
			menu = n
			return false
		}
		return true
	})
	if menu == nil || len(menu.Children) == 0 {
		return false
	}
	only := !m.focused
	m.focusTarget(menu, Next)
	if m.focused && only {
		m.onlyContextOpened = true
	}
	return m.focused && m.inContext()
}
