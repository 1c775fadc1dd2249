package hud

import (
	"testing"
	"time"

	"github.com/mj1618/hud-a11y/internal/config"
	"github.com/mj1618/hud-a11y/internal/platform"
	"github.com/mj1618/hud-a11y/internal/widget"
)

func testConfig() *config.Config {
	return &config.Config{
		BlurCheckDelay: time.Millisecond,
		Narration:      config.Narration{History: 50},
		Widgets:        config.DefaultWidgets(),
	}
}

type countingRestorer struct{ n int }

func (r *countingRestorer) Restore(platform.App) error { r.n++; return nil }

func newSession(t *testing.T) (*Session, *countingRestorer) {
	t.Helper()
	r := &countingRestorer{}
	s, err := New(testConfig(), WithRestorer(r, nil))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(s.Close)
	return s, r
}

func press(t *testing.T, s *Session, combos ...string) {
	t.Helper()
	for _, c := range combos {
		if _, err := s.Press(c); err != nil {
			t.Fatalf("press %q: %v", c, err)
		}
	}
}

func lastNarration(t *testing.T, s *Session) string {
	t.Helper()
	msgs := s.Snapshot(1).Narration
	if len(msgs) != 1 {
		t.Fatalf("narration = %v", msgs)
	}
	return msgs[0]
}

func TestNew_RejectsBadLayout(t *testing.T) {
	cfg := testConfig()
	cfg.Widgets = []config.WidgetSpec{{ID: "menu", Type: config.TypeContextMenu}}
	if _, err := New(cfg, WithoutPlatform()); err == nil {
		t.Error("context menu with the wrong id should fail")
	}
	if _, err := New(nil); err == nil {
		t.Error("nil config should fail")
	}
}

func TestSession_EnterAndNavigate(t *testing.T) {
	s, _ := newSession(t)

	press(t, s, "tab")
	if got := lastNarration(t, s); got != "Head up display Status bar" {
		t.Errorf("narration = %q", got)
	}
	press(t, s, "tab")
	if got := lastNarration(t, s); got != "Command mode" {
		t.Errorf("narration = %q", got)
	}
	press(t, s, "escape", "right")
	if got := s.Snapshot(0).State.Path; got != "text_panel" {
		t.Errorf("path = %q", got)
	}
}

func TestSession_ContextMenuFollowsFocus(t *testing.T) {
	s, _ := newSession(t)
	press(t, s, "tab", "right", "tab")
	if got := s.Snapshot(0).State.Path; got != "text_panel.close" {
		t.Fatalf("path = %q", got)
	}

	press(t, s, "tab")
	snap := s.Snapshot(0)
	if snap.ContextMenu == nil || snap.ContextMenu.WidgetID != "text_panel" {
		t.Fatalf("context menu = %+v", snap.ContextMenu)
	}
	if len(snap.ContextMenu.Buttons) != 2 || snap.ContextMenu.Buttons[0] != "Copy contents" {
		t.Errorf("buttons = %v", snap.ContextMenu.Buttons)
	}

	press(t, s, "space")
	snap = s.Snapshot(0)
	if snap.ContextMenu != nil {
		t.Error("menu should close after choosing an option")
	}
	if snap.State.Path != "text_panel" {
		t.Errorf("path = %q", snap.State.Path)
	}
	panel := s.Widgets.Get("text_panel").(*widget.Panel)
	if got := panel.Chosen(); len(got) != 1 || got[0] != "copy" {
		t.Errorf("chosen = %v", got)
	}
}

func TestSession_ConfirmDisablesAndBlurs(t *testing.T) {
	s, r := newSession(t)
	press(t, s, "tab", "right", "right", "tab")
	if got := s.Snapshot(0).State.Path; got != "choices.container:0.radio:0" {
		t.Fatalf("path = %q", got)
	}
	press(t, s, "space", "tab")
	if got := s.Snapshot(0).State.Path; got != "choices.confirm" {
		t.Fatalf("path = %q", got)
	}

	press(t, s, "enter")
	choices := s.Widgets.Get("choices").(*widget.ChoiceList)
	if got := choices.Confirmed(); len(got) != 1 || got[0] != "Dictation" {
		t.Errorf("confirmed = %v", got)
	}

	if !s.Settle(time.Second) {
		t.Fatal("deferred check never ran")
	}
	if s.Snapshot(0).State.Focused {
		t.Error("expected blur once the list stayed disabled")
	}
	if r.n != 1 {
		t.Errorf("restore calls = %d, want 1", r.n)
	}
}

func TestSession_SetWidgetEnabled(t *testing.T) {
	s, _ := newSession(t)
	if err := s.SetWidgetEnabled("text_panel", false); err != nil {
		t.Fatal(err)
	}
	for _, n := range s.Tree() {
		if n.Path == "text_panel" {
			t.Fatal("disabled widget still in tree")
		}
	}
	if err := s.SetWidgetEnabled("nope", true); err == nil {
		t.Error("unknown widget should fail")
	}
}
