package model

import (
	"fmt"
	"strings"
)

// KeyEvent is a raw key event as delivered by the input surface.
type KeyEvent struct {
	Key  string   `yaml:"key"            json:"key"`
	Mods []string `yaml:"mods,omitempty" json:"mods,omitempty"`
	Down bool     `yaml:"down"           json:"down"`
}

// Modifier names. Aliases are normalized by ParseKeyEvent.
const (
	ModShift = "shift"
	ModCtrl  = "ctrl"
	ModAlt   = "alt"
	ModCmd   = "cmd"
)

var modifierAliases = map[string]string{
	"shift":   ModShift,
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"alt":     ModAlt,
	"opt":     ModAlt,
	"option":  ModAlt,
	"cmd":     ModCmd,
	"command": ModCmd,
	"super":   ModCmd,
	"meta":    ModCmd,
}

var keyAliases = map[string]string{
	"esc":        "escape",
	"return":     "enter",
	"arrowup":    "up",
	"arrowdown":  "down",
	"arrowleft":  "left",
	"arrowright": "right",
}

// HasMod reports whether mod is held.
func (e KeyEvent) HasMod(mod string) bool {
	for _, m := range e.Mods {
		if m == mod {
			return true
		}
	}
	return false
}

// String renders the event as a "mod+key" combo.
func (e KeyEvent) String() string {
	if len(e.Mods) == 0 {
		return e.Key
	}
	return strings.Join(e.Mods, "+") + "+" + e.Key
}

// ParseKeyEvent parses a combo such as "shift+tab" into a key-down event.
func ParseKeyEvent(combo string) (KeyEvent, error) {
	combo = strings.TrimSpace(combo)
	if combo == "" {
		return KeyEvent{}, fmt.Errorf("empty key combo")
	}
	parts := strings.Split(combo, "+")
	evt := KeyEvent{Down: true}
	for i, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if i < len(parts)-1 {
			mod, ok := modifierAliases[p]
			if !ok {
				return KeyEvent{}, fmt.Errorf("unknown modifier %q in %q", p, combo)
			}
			evt.Mods = append(evt.Mods, mod)
			continue
		}
		if p == "" {
			return KeyEvent{}, fmt.Errorf("no key specified in combo %q, only modifiers", combo)
		}
		if alias, ok := keyAliases[p]; ok {
			p = alias
		}
		evt.Key = p
	}
	return evt, nil
}
