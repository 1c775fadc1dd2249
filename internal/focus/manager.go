// Package focus implements keyboard navigation across the overlay's
// widgets: one accessible tree spanning every enabled widget, a current
// focus path, and the key bindings that move it.
//
// A Manager is not safe for concurrent use. Drive it from one goroutine
// and run Scheduler callbacks on that goroutine too.
package focus

import (
	"log/slog"
	"time"

	"github.com/mj1618/hud-a11y/internal/events"
	"github.com/mj1618/hud-a11y/internal/logging"
	"github.com/mj1618/hud-a11y/internal/model"
	"github.com/mj1618/hud-a11y/internal/narration"
	"github.com/mj1618/hud-a11y/internal/platform"
	"github.com/mj1618/hud-a11y/internal/widget"
)

// DefaultBlurCheckDelay is how long after a key press a widget may take to
// re-enable itself before focus leaves it.
const DefaultBlurCheckDelay = 100 * time.Millisecond

// WidgetSource is the ordered set of widgets the manager navigates.
type WidgetSource interface {
	Widgets() []widget.Widget
	Disable(id string) bool
}

// Logger receives narration.
type Logger interface {
	AddLog(kind, message string)
}

// Restorer hands OS focus back when the overlay blurs.
type Restorer interface {
	Restore(last platform.App) error
}

// Foreground reports the application that has OS focus.
type Foreground interface {
	ActiveApplication() (platform.App, error)
}

// Options configures a Manager. Widgets and Scheduler are required; the
// host loop that drives the Manager must also run the Scheduler's
// callbacks, so there is no usable default.
type Options struct {
	Widgets        WidgetSource
	Bus            *events.Bus
	Log            Logger
	Restorer       Restorer
	Foreground     Foreground
	Scheduler      Scheduler
	BlurCheckDelay time.Duration
	Logger         *slog.Logger
}

// State is a snapshot of the focus state.
type State struct {
	Focused           bool       `yaml:"focused"                       json:"focused"`
	Path              model.Path `yaml:"path,omitempty"                json:"path,omitempty"`
	WidgetID          string     `yaml:"widget,omitempty"              json:"widget,omitempty"`
	Role              string     `yaml:"role,omitempty"                json:"role,omitempty"`
	Label             string     `yaml:"label,omitempty"               json:"label,omitempty"`
	OnlyContextOpened bool       `yaml:"only_context_opened,omitempty" json:"only_context_opened,omitempty"`
	LastExternal      string     `yaml:"last_external,omitempty"       json:"last_external,omitempty"`
}

type subscription struct {
	topic events.Topic
	id    int
}

// Manager owns the accessible tree and the focus state machine.
type Manager struct {
	widgets    WidgetSource
	bus        *events.Bus
	log        Logger
	restorer   Restorer
	foreground Foreground
	scheduler  Scheduler
	delay      time.Duration
	logger     *slog.Logger

	root              *model.Node
	focused           bool
	focusedPath       model.Path
	focusedWidgetID   string
	focusedNode       *model.Node
	onlyContextOpened bool
	lastExternal      platform.App

	subs []subscription
}

type nopLog struct{}

func (nopLog) AddLog(string, string) {}

// New creates a manager and subscribes it to the bus. Call InitWidgets
// before navigating. It panics when Widgets or Scheduler is missing.
func New(opts Options) *Manager {
	if opts.Widgets == nil {
		panic("focus: Options.Widgets is required")
	}
	if opts.Scheduler == nil {
		panic("focus: Options.Scheduler is required")
	}
	m := &Manager{
		widgets:    opts.Widgets,
		bus:        opts.Bus,
		log:        opts.Log,
		restorer:   opts.Restorer,
		foreground: opts.Foreground,
		scheduler:  opts.Scheduler,
		delay:      opts.BlurCheckDelay,
		logger:     opts.Logger,
		root:       model.NewRoot(),
	}
	if m.log == nil {
		m.log = nopLog{}
	}
	if m.delay <= 0 {
		m.delay = DefaultBlurCheckDelay
	}
	if m.logger == nil {
		m.logger = logging.Discard()
	}
	if m.bus != nil {
		m.subscribe(events.TopicHUDFocused, m.onHUDFocused)
		m.subscribe(events.TopicWidgetChanged, m.onWidgetChanged)
	}
	return m
}

func (m *Manager) subscribe(topic events.Topic, h events.Handler) {
	m.subs = append(m.subs, subscription{topic: topic, id: m.bus.Register(topic, h)})
}

// Close drops the bus subscriptions.
func (m *Manager) Close() {
	for _, s := range m.subs {
		m.bus.Unregister(s.topic, s.id)
	}
	m.subs = nil
}

// Root returns the accessible tree.
func (m *Manager) Root() *model.Node { return m.root }

// Scheduler returns the scheduler used for the deferred blur check.
func (m *Manager) Scheduler() Scheduler { return m.scheduler }

// Focused reports whether focus is inside the overlay.
func (m *Manager) Focused() bool { return m.focused }

// State returns a snapshot for display.
func (m *Manager) State() State {
	s := State{
		Focused:           m.focused,
		Path:              m.focusedPath,
		WidgetID:          m.focusedWidgetID,
		OnlyContextOpened: m.onlyContextOpened,
		LastExternal:      m.lastExternal.Name,
	}
	if n := m.currentNode(); n != nil {
		s.Role = n.Role.String()
		s.Label = n.Label()
	}
	return s
}

// InitWidgets rebuilds the tree from the enabled widgets.
func (m *Manager) InitWidgets() {
	m.root.Clear()
	for _, w := range m.enabledWidgets() {
		w.GenerateAccessibleNodes(m.root)
	}
	m.resync()
	m.logger.Debug("accessible tree rebuilt", "widgets", len(m.root.Children))
}

// RefreshWidget replaces one widget's subtree after its content changed.
func (m *Manager) RefreshWidget(id string) {
	w := m.widget(id)
	if w == nil || !w.Enabled() {
		return
	}
	idx := m.root.IndexOf(model.Path(id))
	if idx < 0 {
		m.InitWidgets()
		return
	}
	n := w.GenerateAccessibleNodes(model.NewRoot())
	m.root.Replace(idx, n)
	m.resync()
}

func (m *Manager) resync() {
	if m.focusedPath == "" {
		m.focusedNode = nil
		return
	}
	if n := m.root.Find(m.focusedPath); n != nil {
		m.focusedNode = n
	}
}

func (m *Manager) onHUDFocused(payload any) {
	switch p := payload.(type) {
	case model.Path:
		m.FocusPath(p)
	case string:
		m.FocusPath(model.Path(p))
	default:
		m.FocusPath("")
	}
}

func (m *Manager) onWidgetChanged(payload any) {
	id, ok := payload.(string)
	if !ok {
		return
	}
	w := m.widget(id)
	if w == nil {
		return
	}
	present := m.root.IndexOf(model.Path(id)) >= 0
	switch {
	case w.Enabled() != present:
		m.InitWidgets()
	case present:
		m.RefreshWidget(id)
	}
}

func (m *Manager) widget(id string) widget.Widget {
	if id == "" {
		return nil
	}
	for _, w := range m.widgets.Widgets() {
		if w.ID() == id {
			return w
		}
	}
	return nil
}

func (m *Manager) widgetEnabled(id string) bool {
	w := m.widget(id)
	return w != nil && w.Enabled()
}

func (m *Manager) enabledWidgets() []widget.Widget {
	var out []widget.Widget
	for _, w := range m.widgets.Widgets() {
		if w.Enabled() {
			out = append(out, w)
		}
	}
	return out
}

// currentNode resolves the focused path against the live tree.
func (m *Manager) currentNode() *model.Node {
	if m.focusedPath == "" {
		return nil
	}
	return m.root.Find(m.focusedPath)
}

func (m *Manager) inContext() bool {
	return m.focusedNode != nil && m.focusedNode.Role.IsContext()
}

func (m *Manager) narrate(wasFocused bool, w widget.Widget, node *model.Node) {
	nodeLabel := ""
	if node != nil && node.Role != model.RoleWidget {
		nodeLabel = node.Label()
	}
	var msg string
	switch {
	case !wasFocused:
		msg = model.RootName + " " + w.Label()
		if nodeLabel != "" {
			msg += " " + nodeLabel
		}
	case nodeLabel != "":
		msg = nodeLabel
	default:
		msg = w.Label()
	}
	m.log.AddLog(narration.KindNarrate, msg)
}

func (m *Manager) publish(topic events.Topic, payload any) {
	if m.bus != nil {
		m.bus.Publish(topic, payload)
	}
}

func (m *Manager) showContextMenu(w widget.Widget) {
	req := events.ContextMenu{WidgetID: w.ID()}
	if cp, ok := w.(widget.ContextProvider); ok {
		req = cp.ContextMenu()
	}
	m.publish(events.TopicShowContextMenu, req)
}
