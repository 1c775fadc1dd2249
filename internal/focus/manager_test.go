package focus

import (
	"testing"
	"time"

	"github.com/mj1618/hud-a11y/internal/events"
	"github.com/mj1618/hud-a11y/internal/model"
	"github.com/mj1618/hud-a11y/internal/narration"
	"github.com/mj1618/hud-a11y/internal/platform"
	"github.com/mj1618/hud-a11y/internal/widget"
)

type testWidget struct {
	id, label string
	enabled   bool
	build     func(n *model.Node)
	activate  func(n *model.Node) bool
	onKey     func(evt model.KeyEvent) bool

	node      *model.Node
	focused   *model.Node
	blurs     int
	activated []model.Path
}

func (w *testWidget) ID() string { return w.id }
func (w *testWidget) Label() string { return w.label }
func (w *testWidget) Enabled() bool { return w.enabled }
func (w *testWidget) SetEnabled(on bool) { w.enabled = on }
func (w *testWidget) Blur() { w.focused = nil; w.blurs++ }

func (w *testWidget) GenerateAccessibleNodes(parent *model.Node) *model.Node {
	n := model.NewNode(w.id, w.label, model.RoleWidget)
	if w.build != nil {
		w.build(n)
	}
	w.node = parent.Append(n)
	return w.node
}

func (w *testWidget) Focus(path model.Path) *model.Node {
	w.focused = nil
	if w.node == nil || path == "" || path == w.node.Path {
		return nil
	}
	w.focused = w.node.Find(path)
	return w.focused
}

func (w *testWidget) Activate(n *model.Node) bool {
	if n != nil {
		w.activated = append(w.activated, n.Path)
	}
	if w.activate == nil {
		return false
	}
	return w.activate(n)
}

func (w *testWidget) OnKey(evt model.KeyEvent) bool {
	if w.onKey == nil {
		return false
	}
	return w.onKey(evt)
}

type testSource struct{ ws []widget.Widget }

func (s *testSource) Widgets() []widget.Widget { return s.ws }

func (s *testSource) Disable(id string) bool {
	for _, w := range s.ws {
		if w.ID() == id {
			w.SetEnabled(false)
			return true
		}
	}
	return false
}

type manualScheduler struct {
	delays  []time.Duration
	pending []func()
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) {
	s.delays = append(s.delays, d)
	s.pending = append(s.pending, f)
}

func (s *manualScheduler) run() {
	fns := s.pending
	s.pending = nil
	for _, f := range fns {
		f()
	}
}

type fakeRestorer struct{ calls []platform.App }

func (r *fakeRestorer) Restore(last platform.App) error {
	r.calls = append(r.calls, last)
	return nil
}

type fakeForeground struct{ app platform.App }

func (f *fakeForeground) ActiveApplication() (platform.App, error) { return f.app, nil }

// sampleWidget builds widget:0 { button:0, container:1 { radio:0, radio:1 } }.
func sampleWidget() *testWidget {
	return &testWidget{
		id:      "widget:0",
		label:   "Sample",
		enabled: true,
		build: func(n *model.Node) {
			n.Append(model.NewNode("", "OK", model.RoleButton))
			group := n.Append(model.NewNode("", "Mode", model.RoleContainer))
			group.Append(model.NewNode("", "Fast", model.RoleRadio))
			group.Append(model.NewNode("", "Slow", model.RoleRadio))
		},
	}
}

// menuWidget has a close button and an options menu with two entries.
func menuWidget(id string) *testWidget {
	return &testWidget{
		id:      id,
		label:   "Panel",
		enabled: true,
		build: func(n *model.Node) {
			n.Append(model.NewNode(widget.CloseID, "Close Panel", model.RoleButton))
			menu := n.Append(model.NewNode(widget.OptionsID, "Panel options", model.RoleMenu))
			menu.Append(model.NewNode("copy", "Copy", model.RoleMenuButton))
			menu.Append(model.NewNode("minimize", "Minimize", model.RoleMenuButton))
		},
	}
}

type harness struct {
	m         *Manager
	src       *testSource
	bus       *events.Bus
	rec       *narration.Recorder
	restorer  *fakeRestorer
	scheduler *manualScheduler
}

func newHarness(t *testing.T, ws ...widget.Widget) *harness {
	t.Helper()
	h := &harness{
		src:       &testSource{ws: ws},
		bus:       events.NewBus(),
		rec:       narration.NewRecorder(100, nil),
		restorer:  &fakeRestorer{},
		scheduler: &manualScheduler{},
	}
	h.m = New(Options{
		Widgets:    h.src,
		Bus:        h.bus,
		Log:        h.rec,
		Restorer:   h.restorer,
		Foreground: &fakeForeground{app: platform.App{Name: "Editor", PID: 42}},
		Scheduler:  h.scheduler,
	})
	t.Cleanup(h.m.Close)
	h.m.InitWidgets()
	return h
}

func (h *harness) narrations() []string {
	return h.rec.Messages(narration.KindNarrate)
}

func (h *harness) lastNarration(t *testing.T) string {
	t.Helper()
	msgs := h.narrations()
	if len(msgs) == 0 {
		t.Fatal("no narration")
	}
	return msgs[len(msgs)-1]
}

func (h *harness) assertPath(t *testing.T, want model.Path) {
	t.Helper()
	if got := h.m.State().Path; got != want {
		t.Fatalf("focused path = %q, want %q", got, want)
	}
}

func TestFocusPath_EntersFirstWidgetWithContent(t *testing.T) {
	empty := &testWidget{id: "empty", label: "Empty", enabled: true}
	h := newHarness(t, empty, sampleWidget())

	h.m.FocusPath("")
	h.assertPath(t, "widget:0")
	if !h.m.Focused() {
		t.Fatal("expected focused")
	}
	if got := h.lastNarration(t); got != "Head up display Sample" {
		t.Errorf("narration = %q", got)
	}
	if got := h.m.State().LastExternal; got != "Editor" {
		t.Errorf("last external = %q", got)
	}
}

func TestFocusPath_Idempotent(t *testing.T) {
	h := newHarness(t, sampleWidget())
	h.m.FocusPath("widget:0.button:0")
	h.m.FocusPath("widget:0.button:0")
	if got := len(h.narrations()); got != 1 {
		t.Errorf("narrations = %d, want 1", got)
	}
	if got := h.lastNarration(t); got != "Head up display Sample OK" {
		t.Errorf("narration = %q", got)
	}
}

func TestFocusPath_IgnoresDisabledWidget(t *testing.T) {
	w := sampleWidget()
	h := newHarness(t, w)
	w.enabled = false
	h.m.FocusPath("widget:0.button:0")
	if h.m.Focused() {
		t.Error("disabled widget should not take focus")
	}
}

func TestFocusPath_NothingToFocus(t *testing.T) {
	h := newHarness(t, &testWidget{id: "empty", label: "Empty", enabled: true})
	h.m.FocusPath("")
	if h.m.Focused() {
		t.Error("expected unfocused")
	}
}

func TestFocusNext_ExampleScenario(t *testing.T) {
	h := newHarness(t, sampleWidget())

	h.m.FocusPath("widget:0")
	h.m.FocusNext()
	h.assertPath(t, "widget:0.button:0")
	if got := h.lastNarration(t); got != "OK" {
		t.Errorf("narration = %q, want OK", got)
	}

	h.m.FocusNext()
	h.assertPath(t, "widget:0.container:1.radio:0")
	if got := h.lastNarration(t); got != "Fast" {
		t.Errorf("narration = %q, want Fast", got)
	}

	h.m.FocusPath("widget:0.container:1.radio:1")
	h.m.FocusNext()
	h.assertPath(t, "widget:0")
	if got := h.lastNarration(t); got != "Sample" {
		t.Errorf("narration = %q, want Sample", got)
	}
}

func TestFocusNextPrevious_RoundTrip(t *testing.T) {
	for _, start := range []model.Path{"widget:0", "widget:0.button:0"} {
		h := newHarness(t, sampleWidget())
		h.m.FocusPath(start)
		h.m.FocusNext()
		h.m.FocusPrevious()
		h.assertPath(t, start)
	}
}

// formWidget builds form { button:0, container:1 { radio:0, radio:1 }, button:2 }.
func formWidget() *testWidget {
	return &testWidget{
		id:      "form",
		label:   "Form",
		enabled: true,
		build: func(n *model.Node) {
			n.Append(model.NewNode("", "Back", model.RoleButton))
			group := n.Append(model.NewNode("", "Speed", model.RoleContainer))
			group.Append(model.NewNode("", "Fast", model.RoleRadio))
			group.Append(model.NewNode("", "Slow", model.RoleRadio))
			n.Append(model.NewNode("", "Next", model.RoleButton))
		},
	}
}

func TestFocusNextPrevious_RoundTripSeveralSteps(t *testing.T) {
	tests := []struct {
		start model.Path
		steps int
	}{
		{"form", 1},
		{"form", 2},
		{"form", 3},
		{"form.button:0", 1},
		{"form.button:0", 2},
		{"form.container:1.radio:1", 1},
	}
	for _, tt := range tests {
		h := newHarness(t, formWidget())
		h.m.FocusPath(tt.start)
		for i := 0; i < tt.steps; i++ {
			h.m.FocusNext()
		}
		for i := 0; i < tt.steps; i++ {
			h.m.FocusPrevious()
		}
		if got := h.m.State().Path; got != tt.start {
			t.Errorf("%s x%d: ended at %q", tt.start, tt.steps, got)
		}
	}
}

func TestFocusNext_StepsOverRadioGroup(t *testing.T) {
	h := newHarness(t, formWidget())
	h.m.FocusPath("form.button:0")
	want := []model.Path{"form.container:1.radio:0", "form.button:2", "form"}
	for i, p := range want {
		h.m.FocusNext()
		if got := h.m.State().Path; got != p {
			t.Fatalf("step %d: path %q, want %q", i, got, p)
		}
	}
}

func TestNew_RequiresSchedulerAndWidgets(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"no scheduler", Options{Widgets: &testSource{}}},
		{"no widgets", Options{Scheduler: &manualScheduler{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			New(tt.opts)
		})
	}
}

func TestFocusPrevious_DescendsToLastElement(t *testing.T) {
	h := newHarness(t, sampleWidget())
	h.m.FocusPath("widget:0")
	h.m.FocusPrevious()
	h.assertPath(t, "widget:0.container:1.radio:1")
}

func TestFocusNext_DoesNotLeaveWidget(t *testing.T) {
	h := newHarness(t, sampleWidget(), menuWidget("panel"))
	h.m.FocusPath("widget:0.button:0")
	for i := 0; i < 6; i++ {
		h.m.FocusNext()
		if got := h.m.State().WidgetID; got != "widget:0" {
			t.Fatalf("step %d: widget = %q", i, got)
		}
	}
}

func TestFocusUp_ContainerTransparentAndTerminates(t *testing.T) {
	h := newHarness(t, sampleWidget())
	h.m.FocusPath("widget:0.container:1.radio:0")
	depth := model.Path("widget:0.container:1.radio:0").Depth()

	h.m.FocusUp()
	h.assertPath(t, "widget:0")

	steps := 1
	for h.m.Focused() && steps <= depth {
		h.m.FocusUp()
		steps++
	}
	if h.m.Focused() {
		t.Fatalf("still focused after %d steps", steps)
	}
	if len(h.restorer.calls) != 1 {
		t.Errorf("restore calls = %d, want 1", len(h.restorer.calls))
	}
}

func TestFocusNext_StalePathAfterRebuild(t *testing.T) {
	w := sampleWidget()
	h := newHarness(t, w)
	h.m.FocusPath("widget:0.container:1.radio:1")

	w.build = func(n *model.Node) {
		n.Append(model.NewNode("", "OK", model.RoleButton))
	}
	h.bus.Publish(events.TopicWidgetChanged, "widget:0")

	h.m.FocusPrevious()
	h.assertPath(t, "widget:0.button:0")

	h.m.FocusPath("widget:0")
	h.m.FocusNext()
	h.assertPath(t, "widget:0.button:0")
}

func TestFocusNext_StaleStepsToFollowingSibling(t *testing.T) {
	w := sampleWidget()
	h := newHarness(t, w)
	h.m.FocusPath("widget:0.button:0")

	w.build = func(n *model.Node) {
		group := n.Append(model.NewNode("", "Mode", model.RoleContainer))
		group.Append(model.NewNode("", "Fast", model.RoleRadio))
	}
	h.m.InitWidgets()

	h.m.FocusNext()
	h.assertPath(t, "widget:0.container:0.radio:0")
}

func TestFocusNext_WidgetRemoved(t *testing.T) {
	first := sampleWidget()
	h := newHarness(t, first, menuWidget("panel"))
	h.m.FocusPath("widget:0.button:0")

	first.enabled = false
	h.m.InitWidgets()

	h.m.FocusNext()
	if got := h.m.State().WidgetID; got != "panel" {
		t.Fatalf("widget = %q, want panel", got)
	}
}

func TestBlur_RestoresPreviousApplication(t *testing.T) {
	h := newHarness(t, sampleWidget())
	h.m.FocusPath("widget:0.button:0")
	h.m.Blur(false)

	if h.m.Focused() {
		t.Fatal("expected unfocused")
	}
	if len(h.restorer.calls) != 1 || h.restorer.calls[0].Name != "Editor" {
		t.Fatalf("restore calls = %+v", h.restorer.calls)
	}
	if got := h.m.State().Path; got != "" {
		t.Errorf("path = %q, want empty", got)
	}

	h.m.Blur(false)
	if len(h.restorer.calls) != 1 {
		t.Errorf("second blur restored again")
	}
}

func TestBlur_KeepPathResumes(t *testing.T) {
	h := newHarness(t, sampleWidget())
	h.m.FocusPath("widget:0.container:1.radio:1")
	h.m.Blur(true)
	h.m.FocusPath("")
	h.assertPath(t, "widget:0.container:1.radio:1")
	if got := h.lastNarration(t); got != "Head up display Sample Slow" {
		t.Errorf("narration = %q", got)
	}
}

func TestBlur_FallsBackToSwitchComboOnce(t *testing.T) {
	focus := &fakeFocus{}
	restorer := platform.NewRestorer(&platform.Provider{Focus: focus, SwitchCombo: []string{"alt", "tab"}})
	src := &testSource{ws: []widget.Widget{sampleWidget()}}
	m := New(Options{Widgets: src, Restorer: restorer, Foreground: restorer, Scheduler: &manualScheduler{}})
	m.InitWidgets()

	m.FocusPath("")
	m.Blur(false)
	if len(focus.combos) != 1 {
		t.Fatalf("combos = %v, want exactly one", focus.combos)
	}
	if len(focus.activated) != 0 {
		t.Errorf("activated = %v", focus.activated)
	}
}

type fakeFocus struct {
	activated []platform.App
	combos    [][]string
}

func (f *fakeFocus) ActiveApplication() (platform.App, error) { return platform.App{}, nil }
func (f *fakeFocus) RunningApplications() ([]platform.App, error) { return nil, nil }
func (f *fakeFocus) ActivateApplication(a platform.App) error {
	f.activated = append(f.activated, a)
	return nil
}
func (f *fakeFocus) SendKeyCombo(keys []string) error {
	f.combos = append(f.combos, keys)
	return nil
}

func TestSurfaceFocus(t *testing.T) {
	h := newHarness(t, sampleWidget())
	h.m.SurfaceFocus(true)
	if !h.m.Focused() {
		t.Fatal("gaining surface focus should enter the overlay")
	}
	h.m.SurfaceFocus(false)
	if h.m.Focused() {
		t.Fatal("losing surface focus should blur")
	}
	if len(h.restorer.calls) != 0 {
		t.Errorf("restore calls = %d, want 0", len(h.restorer.calls))
	}
	if got := h.m.State().Path; got != "widget:0" {
		t.Errorf("path = %q, want it kept", got)
	}
}

func TestHUDFocused_MovesFocus(t *testing.T) {
	h := newHarness(t, sampleWidget())
	h.bus.Publish(events.TopicHUDFocused, model.Path("widget:0.container:1.radio:0"))
	h.assertPath(t, "widget:0.container:1.radio:0")
}

func TestWidgetChanged_EnableAddsSubtree(t *testing.T) {
	late := menuWidget("panel")
	late.enabled = false
	h := newHarness(t, sampleWidget(), late)
	if h.m.Root().Find("panel") != nil {
		t.Fatal("disabled widget should not be in the tree")
	}
	late.enabled = true
	h.bus.Publish(events.TopicWidgetChanged, "panel")
	if h.m.Root().Find("panel.options.copy") == nil {
		t.Error("enabled widget should be added")
	}
}
