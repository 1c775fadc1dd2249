// Package widget defines the accessibility contract every overlay widget
// implements, plus the widgets the overlay ships with.
package widget

import (
	"github.com/mj1618/hud-a11y/internal/events"
	"github.com/mj1618/hud-a11y/internal/model"
)

// ContextMenuID is the id of the widget that draws context menus. It is
// skipped when switching widgets with left/right.
const ContextMenuID = "context_menu"

// CloseID is the path suffix of a widget's canonical close button.
const CloseID = "close"

// Widget is what the focus manager needs from each widget.
type Widget interface {
	ID() string
	Label() string
	Enabled() bool
	SetEnabled(enabled bool)

	// GenerateAccessibleNodes appends the widget's focusable structure
	// under parent and returns it.
	GenerateAccessibleNodes(parent *model.Node) *model.Node

	// Focus enters the widget, optionally at a descendant path. A nil
	// result means the widget's own node is focused.
	Focus(path model.Path) *model.Node
	Blur()

	// Activate performs node's action and reports whether it was handled.
	Activate(node *model.Node) bool

	// OnKey handles keys no tree-level shortcut claimed.
	OnKey(evt model.KeyEvent) bool
}

// ContextProvider is implemented by widgets that own a context menu.
type ContextProvider interface {
	ContextMenu() events.ContextMenu
}

// Button is a labelled action on a widget. Action may be nil.
type Button struct {
	ID     string
	Label  string
	Action func() bool
}

// Base carries the state every widget shares. Embed it and implement
// GenerateAccessibleNodes.
type Base struct {
	id      string
	label   string
	enabled bool
	bus     *events.Bus

	// Bounds is the last known on-screen rectangle, used to anchor the
	// context menu.
	Bounds model.Rect

	node    *model.Node
	focused *model.Node
}

// NewBase returns an enabled Base. bus may be nil.
func NewBase(id, label string, bus *events.Bus) Base {
	return Base{id: id, label: label, enabled: true, bus: bus}
}

func (b *Base) ID() string    { return b.id }
func (b *Base) Label() string { return b.label }
func (b *Base) Enabled() bool { return b.enabled }

// SetEnabled toggles the widget and announces the change on the bus.
func (b *Base) SetEnabled(enabled bool) {
	if b.enabled == enabled {
		return
	}
	b.enabled = enabled
	if !enabled {
		b.focused = nil
	}
	b.changed()
}

// Node returns the subtree from the last GenerateAccessibleNodes call.
func (b *Base) Node() *model.Node { return b.node }

// Focused returns the descendant that has focus, if any.
func (b *Base) Focused() *model.Node { return b.focused }

func (b *Base) Focus(path model.Path) *model.Node {
	b.focused = nil
	if b.node == nil || path == "" || path == b.node.Path {
		return nil
	}
	b.focused = b.node.Find(path)
	return b.focused
}

func (b *Base) Blur() { b.focused = nil }

func (b *Base) Activate(*model.Node) bool { return false }

func (b *Base) OnKey(model.KeyEvent) bool { return false }

// root creates the widget node; attach hangs it under parent.
func (b *Base) root() *model.Node {
	return model.NewNode(b.id, b.label, model.RoleWidget)
}

func (b *Base) attach(parent, n *model.Node) *model.Node {
	parent.Append(n)
	b.node = n
	if b.focused != nil {
		b.focused = n.Find(b.focused.Path)
	}
	return n
}

// changed tells the manager to pick up a regenerated subtree.
func (b *Base) changed() {
	if b.bus != nil {
		b.bus.Publish(events.TopicWidgetChanged, b.id)
	}
}

// requestFocus asks the manager to move focus to p.
func (b *Base) requestFocus(p model.Path) {
	if b.bus != nil {
		b.bus.Publish(events.TopicHUDFocused, p)
	}
}

func appendButtons(parent *model.Node, buttons []Button, role model.Role) {
	for _, btn := range buttons {
		parent.Append(model.NewNode(btn.ID, btn.Label, role))
	}
}

func runButton(buttons []Button, id string) (handled, found bool) {
	for _, btn := range buttons {
		if btn.ID != id {
			continue
		}
		if btn.Action == nil {
			return true, true
		}
		return btn.Action(), true
	}
	return false, false
}
