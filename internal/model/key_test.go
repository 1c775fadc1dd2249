package model

import "testing"

func TestParseKeyEvent_Valid(t *testing.T) {
	tests := []struct {
		input string
		key   string
		mods  []string
	}{
		{"tab", "tab", nil},
		{"shift+tab", "tab", []string{ModShift}},
		{"Esc", "escape", nil},
		{"return", "enter", nil},
		{"cmd+shift+Left", "left", []string{ModCmd, ModShift}},
		{"option+space", "space", []string{ModAlt}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			evt, err := ParseKeyEvent(tt.input)
			if err != nil {
				t.Fatal(err)
			}
			if !evt.Down {
				t.Error("parsed events are key-down")
			}
			if evt.Key != tt.key {
				t.Errorf("key = %q, want %q", evt.Key, tt.key)
			}
			if len(evt.Mods) != len(tt.mods) {
				t.Fatalf("mods = %v, want %v", evt.Mods, tt.mods)
			}
			for i := range tt.mods {
				if evt.Mods[i] != tt.mods[i] {
					t.Errorf("mod %d = %q, want %q", i, evt.Mods[i], tt.mods[i])
				}
			}
		})
	}
}

func TestParseKeyEvent_Invalid(t *testing.T) {
	for _, s := range []string{"", "  ", "shift+", "hyper+tab"} {
		if _, err := ParseKeyEvent(s); err == nil {
			t.Errorf("ParseKeyEvent(%q) should fail", s)
		}
	}
}

func TestKeyEvent_HasModAndString(t *testing.T) {
	evt := KeyEvent{Key: "tab", Mods: []string{ModShift}, Down: true}
	if !evt.HasMod(ModShift) || evt.HasMod(ModCtrl) {
		t.Error("HasMod mismatch")
	}
	if evt.String() != "shift+tab" {
		t.Errorf("String() = %q", evt.String())
	}
}
