// Package input turns terminal events into the key events the focus
// manager understands.
package input

import (
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/mj1618/hud-a11y/internal/model"
)

// Target receives translated input.
type Target interface {
	HandleKey(evt model.KeyEvent) bool
	SurfaceFocus(hasFocus bool)
}

var keyNames = map[tcell.Key]string{
	tcell.KeyTab:        "tab",
	tcell.KeyBacktab:    "tab",
	tcell.KeyEsc:        "escape",
	tcell.KeyEnter:      "enter",
	tcell.KeyUp:         "up",
	tcell.KeyDown:       "down",
	tcell.KeyLeft:       "left",
	tcell.KeyRight:      "right",
	tcell.KeyHome:       "home",
	tcell.KeyEnd:        "end",
	tcell.KeyPgUp:       "pageup",
	tcell.KeyPgDn:       "pagedown",
	tcell.KeyDelete:     "delete",
	tcell.KeyBackspace:  "backspace",
	tcell.KeyBackspace2: "backspace",
}

// Translate converts a tcell key event. ok is false for keys with no name.
func Translate(ev *tcell.EventKey) (model.KeyEvent, bool) {
	evt := model.KeyEvent{Down: true, Mods: mods(ev.Modifiers())}
	k := ev.Key()
	switch {
	case k == tcell.KeyRune:
		r := ev.Rune()
		if r == ' ' {
			evt.Key = "space"
			break
		}
		if unicode.IsUpper(r) && !evt.HasMod(model.ModShift) {
			evt.Mods = append([]string{model.ModShift}, evt.Mods...)
		}
		evt.Key = string(unicode.ToLower(r))
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ && keyNames[k] == "":
		evt.Key = string(rune('a' + k - tcell.KeyCtrlA))
		if !evt.HasMod(model.ModCtrl) {
			evt.Mods = append(evt.Mods, model.ModCtrl)
		}
	default:
		name, ok := keyNames[k]
		if !ok {
			return model.KeyEvent{}, false
		}
		evt.Key = name
		if k == tcell.KeyBacktab && !evt.HasMod(model.ModShift) {
			evt.Mods = append([]string{model.ModShift}, evt.Mods...)
		}
	}
	return evt, true
}

func mods(m tcell.ModMask) []string {
	var out []string
	if m&tcell.ModShift != 0 {
		out = append(out, model.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		out = append(out, model.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		out = append(out, model.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		out = append(out, model.ModCmd)
	}
	return out
}

// Surface forwards terminal events to a Target.
type Surface struct {
	target Target
}

// NewSurface returns a surface feeding target.
func NewSurface(target Target) *Surface {
	return &Surface{target: target}
}

// Dispatch forwards ev and reports whether it was consumed.
func (s *Surface) Dispatch(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		evt, ok := Translate(ev)
		if !ok {
			return false
		}
		return s.target.HandleKey(evt)
	case *tcell.EventFocus:
		s.target.SurfaceFocus(ev.Focused)
		return true
	}
	return false
}

// Describe renders a tcell key the way combos are written in config and
// on the command line, e.g. "shift+tab".
func Describe(ev *tcell.EventKey) string {
	evt, ok := Translate(ev)
	if !ok {
		return strings.ToLower(ev.Name())
	}
	return evt.String()
}
