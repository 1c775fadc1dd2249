package widget

import (
	"github.com/mj1618/hud-a11y/internal/events"
	"github.com/mj1618/hud-a11y/internal/model"
)

// ContextMenu draws the options of whichever widget currently has its
// context structure focused. The options themselves stay in the owning
// widget's subtree, so this widget contributes an empty node.
type ContextMenu struct {
	Base
	current *events.ContextMenu
	showID  int
	hideID  int
}

// NewContextMenu subscribes to the show/hide topics on bus.
func NewContextMenu(bus *events.Bus) *ContextMenu {
	m := &ContextMenu{Base: NewBase(ContextMenuID, "Context menu", bus)}
	if bus != nil {
		m.showID = bus.Register(events.TopicShowContextMenu, m.show)
		m.hideID = bus.Register(events.TopicHideContextMenu, func(any) { m.current = nil })
	}
	return m
}

func (m *ContextMenu) show(payload any) {
	if req, ok := payload.(events.ContextMenu); ok {
		m.current = &req
	}
}

// Close drops the bus subscriptions.
func (m *ContextMenu) Close() {
	if m.bus == nil {
		return
	}
	m.bus.Unregister(events.TopicShowContextMenu, m.showID)
	m.bus.Unregister(events.TopicHideContextMenu, m.hideID)
}

// Visible reports whether a menu is showing.
func (m *ContextMenu) Visible() bool { return m.current != nil }

// Current returns the menu being shown, or nil.
func (m *ContextMenu) Current() *events.ContextMenu { return m.current }

func (m *ContextMenu) GenerateAccessibleNodes(parent *model.Node) *model.Node {
	return m.attach(parent, m.root())
}
