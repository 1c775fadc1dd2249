package widget

import (
	"github.com/mj1618/hud-a11y/internal/events"
	"github.com/mj1618/hud-a11y/internal/model"
)

// ConfirmID is the path suffix of a choice list's confirm button.
const ConfirmID = "confirm"

// Choice is one entry of a ChoiceList.
type Choice struct {
	Label    string
	Selected bool
}

// ChoiceList is a group of radio buttons, or checkboxes when Multiple is
// set, followed by a confirm button. Confirming disables the list.
type ChoiceList struct {
	Base
	Title     string
	Multiple  bool
	Choices   []Choice
	OnConfirm func(selected []string) bool

	confirmed []string
}

// NewChoiceList returns an enabled single-choice list.
func NewChoiceList(id, label string, bus *events.Bus, labels ...string) *ChoiceList {
	c := &ChoiceList{Base: NewBase(id, label, bus)}
	for _, l := range labels {
		c.Choices = append(c.Choices, Choice{Label: l})
	}
	return c
}

func (c *ChoiceList) itemRole() model.Role {
	if c.Multiple {
		return model.RoleCheckbox
	}
	return model.RoleRadio
}

func (c *ChoiceList) GenerateAccessibleNodes(parent *model.Node) *model.Node {
	n := c.root()
	title := c.Title
	if title == "" {
		title = c.Label()
	}
	group := n.Append(model.NewNode("", title, model.RoleContainer))
	for _, ch := range c.Choices {
		item := group.Append(model.NewNode("", ch.Label, c.itemRole()))
		if ch.Selected {
			item.State = "checked"
		}
	}
	n.Append(model.NewNode(ConfirmID, "Confirm", model.RoleButton))
	return c.attach(parent, n)
}

func (c *ChoiceList) Activate(node *model.Node) bool {
	if node == nil {
		return false
	}
	if node.Equals(ConfirmID) {
		return c.confirm()
	}
	if !node.Role.IsGrouped() {
		return false
	}
	idx, ok := node.Path.ChildIndex()
	if !ok || idx >= len(c.Choices) {
		return false
	}
	c.toggle(idx)
	c.changed()
	return true
}

// OnKey moves between items of the group with up and down.
func (c *ChoiceList) OnKey(evt model.KeyEvent) bool {
	if !evt.Down || c.focused == nil || !c.focused.Role.IsGrouped() {
		return false
	}
	delta := 0
	switch evt.Key {
	case "up":
		delta = -1
	case "down":
		delta = 1
	default:
		return false
	}
	group := c.node.Find(c.focused.Path.Parent())
	if group == nil {
		return false
	}
	idx := group.IndexOf(c.focused.Path) + delta
	if idx < 0 || idx >= len(group.Children) {
		return true
	}
	c.requestFocus(group.Children[idx].Path)
	return true
}

// Selected returns the labels of the selected choices.
func (c *ChoiceList) Selected() []string {
	var out []string
	for _, ch := range c.Choices {
		if ch.Selected {
			out = append(out, ch.Label)
		}
	}
	return out
}

// Confirmed returns the selection submitted by the last confirm.
func (c *ChoiceList) Confirmed() []string { return c.confirmed }

func (c *ChoiceList) toggle(idx int) {
	if c.Multiple {
		c.Choices[idx].Selected = !c.Choices[idx].Selected
		return
	}
	for i := range c.Choices {
		c.Choices[i].Selected = i == idx
	}
}

func (c *ChoiceList) confirm() bool {
	selected := c.Selected()
	if c.OnConfirm != nil && !c.OnConfirm(selected) {
		return false
	}
	c.confirmed = selected
	c.SetEnabled(false)
	return true
}
