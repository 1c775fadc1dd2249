package widget

import (
	"github.com/mj1618/hud-a11y/internal/events"
	"github.com/mj1618/hud-a11y/internal/model"
)

// OptionsID is the path segment of a widget's context menu node.
const OptionsID = "options"

// Panel shows a block of text with optional buttons, a close button and a
// context menu of options.
type Panel struct {
	Base
	Title    string
	Content  string
	Closable bool
	Buttons  []Button
	Options  []Button

	chosen []string
}

// NewPanel returns an enabled, closable panel.
func NewPanel(id, label string, bus *events.Bus) *Panel {
	return &Panel{Base: NewBase(id, label, bus), Closable: true}
}

func (p *Panel) GenerateAccessibleNodes(parent *model.Node) *model.Node {
	n := p.root()
	appendButtons(n, p.Buttons, model.RoleButton)
	if p.Closable {
		n.Append(model.NewNode(CloseID, "Close "+p.Label(), model.RoleButton))
	}
	if len(p.Options) > 0 {
		menu := n.Append(model.NewNode(OptionsID, p.Label()+" options", model.RoleMenu))
		appendButtons(menu, p.Options, model.RoleMenuButton)
	}
	return p.attach(parent, n)
}

// Activate runs buttons and options. The close button is left unhandled so
// the manager applies its close rule.
func (p *Panel) Activate(node *model.Node) bool {
	if node == nil || node.Equals(CloseID) {
		return false
	}
	switch node.Role {
	case model.RoleMenuButton:
		handled, found := runButton(p.Options, node.ID())
		if found && handled {
			p.chosen = append(p.chosen, node.ID())
		}
		return handled
	case model.RoleButton:
		handled, _ := runButton(p.Buttons, node.ID())
		return handled
	}
	return false
}

// SetContent replaces the text and announces the change.
func (p *Panel) SetContent(title, content string) {
	p.Title = title
	p.Content = content
	p.changed()
}

// Chosen lists the ids of options activated so far.
func (p *Panel) Chosen() []string { return p.chosen }

// ContextMenu describes the panel's options for the context menu widget.
func (p *Panel) ContextMenu() events.ContextMenu {
	labels := make([]string, 0, len(p.Options))
	for _, o := range p.Options {
		labels = append(labels, o.Label)
	}
	pos := p.Bounds
	return events.ContextMenu{WidgetID: p.ID(), Position: &pos, Buttons: labels}
}

// OptionsNode returns the context menu node of the last generated subtree.
func (p *Panel) OptionsNode() *model.Node {
	if p.node == nil {
		return nil
	}
	return p.node.Find(p.node.Path.WithSuffix(OptionsID))
}
