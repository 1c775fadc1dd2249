package widget

import (
	"github.com/mj1618/hud-a11y/internal/events"
	"github.com/mj1618/hud-a11y/internal/model"
)

// StatusBar is a row of toggle-like buttons.
type StatusBar struct {
	Base
	Buttons []Button
}

// NewStatusBar returns an enabled status bar.
func NewStatusBar(id, label string, bus *events.Bus, buttons ...Button) *StatusBar {
	return &StatusBar{Base: NewBase(id, label, bus), Buttons: buttons}
}

func (s *StatusBar) GenerateAccessibleNodes(parent *model.Node) *model.Node {
	n := s.root()
	appendButtons(n, s.Buttons, model.RoleButton)
	return s.attach(parent, n)
}

func (s *StatusBar) Activate(node *model.Node) bool {
	if node == nil {
		return false
	}
	handled, _ := runButton(s.Buttons, node.ID())
	return handled
}
