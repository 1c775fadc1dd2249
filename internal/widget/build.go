package widget

import (
	"fmt"

	"github.com/mj1618/hud-a11y/internal/config"
	"github.com/mj1618/hud-a11y/internal/events"
)

// Build creates the widgets declared in specs. A context menu widget is
// added when some widget has options and none is declared.
func Build(specs []config.WidgetSpec, bus *events.Bus) (*Registry, error) {
	reg := NewRegistry()
	hasMenu, needsMenu := false, false
	for _, s := range specs {
		w, err := build(s, bus)
		if err != nil {
			return nil, err
		}
		if s.Type == config.TypeContextMenu {
			hasMenu = true
		}
		if len(s.Options) > 0 {
			needsMenu = true
		}
		reg.Register(w)
	}
	if needsMenu && !hasMenu {
		reg.Register(NewContextMenu(bus))
	}
	return reg, nil
}

func build(s config.WidgetSpec, bus *events.Bus) (Widget, error) {
	label := s.Label
	if label == "" {
		label = s.ID
	}
	var w Widget
	switch s.Type {
	case config.TypeStatus:
		w = NewStatusBar(s.ID, label, bus, buttons(s.Buttons)...)
	case config.TypePanel:
		p := NewPanel(s.ID, label, bus)
		p.Title = s.Title
		p.Content = s.Content
		p.Closable = s.IsClosable()
		p.Buttons = buttons(s.Buttons)
		p.Options = buttons(s.Options)
		p.Bounds = s.Bounds
		w = p
	case config.TypeChoices:
		c := NewChoiceList(s.ID, label, bus, s.Choices...)
		c.Title = s.Title
		c.Multiple = s.Multiple
		w = c
	case config.TypeContextMenu:
		if s.ID != ContextMenuID {
			return nil, fmt.Errorf("widget %q: context menu id must be %q", s.ID, ContextMenuID)
		}
		w = NewContextMenu(bus)
	default:
		return nil, fmt.Errorf("widget %q: unknown type %q", s.ID, s.Type)
	}
	if !s.IsEnabled() {
		w.SetEnabled(false)
	}
	return w, nil
}

func buttons(specs []config.ButtonSpec) []Button {
	out := make([]Button, 0, len(specs))
	for _, b := range specs {
		out = append(out, Button{ID: b.ID, Label: b.Label})
	}
	return out
}
