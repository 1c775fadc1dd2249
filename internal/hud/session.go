// Package hud assembles a running overlay from configuration: the event
// bus, the widgets, the focus manager and the narration log.
package hud

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mj1618/hud-a11y/internal/config"
	"github.com/mj1618/hud-a11y/internal/events"
	"github.com/mj1618/hud-a11y/internal/focus"
	"github.com/mj1618/hud-a11y/internal/logging"
	"github.com/mj1618/hud-a11y/internal/model"
	"github.com/mj1618/hud-a11y/internal/narration"
	"github.com/mj1618/hud-a11y/internal/platform"
	"github.com/mj1618/hud-a11y/internal/widget"
)

// Session is one overlay instance. All state changes go through Do so a
// terminal loop, a tool server and deferred checks can share it.
type Session struct {
	Config    *config.Config
	Bus       *events.Bus
	Widgets   *widget.Registry
	Manager   *focus.Manager
	Narration *narration.Recorder
	Scheduler *focus.LoopScheduler
	Logger    *slog.Logger

	mu sync.Mutex
}

type options struct {
	logger     *slog.Logger
	restorer   focus.Restorer
	foreground focus.Foreground
	noPlatform bool
}

// Option customizes New.
type Option func(*options)

// WithLogger sets the diagnostics logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRestorer replaces the platform focus restorer.
func WithRestorer(r focus.Restorer, fg focus.Foreground) Option {
	return func(o *options) {
		o.restorer = r
		o.foreground = fg
	}
}

// WithoutPlatform disables OS focus handling entirely.
func WithoutPlatform() Option {
	return func(o *options) { o.noPlatform = true }
}

// New builds a session from cfg.
func New(cfg *config.Config, opts ...Option) (*Session, error) {
	if cfg == nil {
		return nil, errors.New("nil config")
	}
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	if o.logger == nil {
		o.logger = logging.Discard()
	}
	if o.restorer == nil && !o.noPlatform {
		o.restorer, o.foreground = platformRestorer(o.logger, cfg.SwitchCombo)
	}

	bus := events.NewBus()
	reg, err := widget.Build(cfg.Widgets, bus)
	if err != nil {
		return nil, fmt.Errorf("build widgets: %w", err)
	}
	s := &Session{
		Config:    cfg,
		Bus:       bus,
		Widgets:   reg,
		Narration: narration.NewRecorder(cfg.Narration.History, o.logger),
		Scheduler: focus.NewLoopScheduler(16),
		Logger:    o.logger,
	}
	s.Manager = focus.New(focus.Options{
		Widgets:        reg,
		Bus:            bus,
		Log:            s.Narration,
		Restorer:       o.restorer,
		Foreground:     o.foreground,
		Scheduler:      s.Scheduler,
		BlurCheckDelay: cfg.BlurCheckDelay,
		Logger:         o.logger,
	})
	s.Manager.InitWidgets()
	o.logger.Info("hud session ready", "widgets", len(reg.Widgets()))
	return s, nil
}

func platformRestorer(logger *slog.Logger, combo string) (focus.Restorer, focus.Foreground) {
	p, err := platform.NewProvider()
	if err != nil {
		logger.Warn("focus restoration disabled", "error", err)
		return nil, nil
	}
	if combo != "" {
		p.SwitchCombo = platform.ParseCombo(combo)
	}
	r := platform.NewRestorer(p)
	return r, r
}

// Do runs fn with exclusive access to the session.
func (s *Session) Do(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// Run executes deferred callbacks until ctx is done.
func (s *Session) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case f := <-s.Scheduler.C():
			s.Do(f)
		}
	}
}

// Settle waits up to timeout for scheduled callbacks and runs them. It
// reports false when some were still outstanding at the deadline.
func (s *Session) Settle(timeout time.Duration) bool {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	for s.Scheduler.Pending() > 0 {
		select {
		case f := <-s.Scheduler.C():
			s.Do(f)
		case <-deadline.C:
			return false
		}
	}
	return true
}

// Press parses combo and applies it. When the overlay is unfocused, any
// key first enters it, the way the global hotkey does.
func (s *Session) Press(combo string) (bool, error) {
	evt, err := model.ParseKeyEvent(combo)
	if err != nil {
		return false, err
	}
	var handled bool
	s.Do(func() {
		if !s.Manager.Focused() {
			s.Manager.FocusPath("")
			handled = s.Manager.Focused()
			return
		}
		handled = s.Manager.HandleKey(evt)
	})
	return handled, nil
}

// Snapshot is the state shown to tools and the terminal view.
type Snapshot struct {
	State       focus.State         `yaml:"state"                  json:"state"`
	ContextMenu *events.ContextMenu `yaml:"context_menu,omitempty" json:"context_menu,omitempty"`
	Widgets     []WidgetStatus      `yaml:"widgets"                json:"widgets"`
	Narration   []string            `yaml:"narration,omitempty"    json:"narration,omitempty"`
}

// WidgetStatus summarizes one registered widget.
type WidgetStatus struct {
	ID      string `yaml:"id"      json:"id"`
	Label   string `yaml:"label"   json:"label"`
	Enabled bool   `yaml:"enabled" json:"enabled"`
}

// Snapshot captures the current state. last limits the narration lines.
func (s *Session) Snapshot(last int) Snapshot {
	var snap Snapshot
	s.Do(func() {
		snap.State = s.Manager.State()
		snap.ContextMenu = s.contextMenu()
		snap.Widgets = s.widgetStatus()
	})
	msgs := s.Narration.Messages(narration.KindNarrate)
	if last > 0 && len(msgs) > last {
		msgs = msgs[len(msgs)-last:]
	}
	snap.Narration = msgs
	return snap
}

// Tree flattens the accessible tree in document order.
func (s *Session) Tree() []model.FlatNode {
	var nodes []model.FlatNode
	s.Do(func() { nodes = model.FlattenNodes(s.Manager.Root()) })
	return nodes
}

// SetWidgetEnabled toggles a widget by id.
func (s *Session) SetWidgetEnabled(id string, enabled bool) error {
	var ok bool
	s.Do(func() {
		if enabled {
			ok = s.Widgets.Enable(id)
		} else {
			ok = s.Widgets.Disable(id)
		}
	})
	if !ok {
		return fmt.Errorf("unknown widget %q", id)
	}
	return nil
}

// Close releases bus subscriptions.
func (s *Session) Close() {
	s.Do(func() {
		s.Manager.Close()
		if cm, ok := s.Widgets.Get(widget.ContextMenuID).(*widget.ContextMenu); ok {
			cm.Close()
		}
	})
}

func (s *Session) contextMenu() *events.ContextMenu {
	cm, ok := s.Widgets.Get(widget.ContextMenuID).(*widget.ContextMenu)
	if !ok {
		return nil
	}
	return cm.Current()
}

func (s *Session) widgetStatus() []WidgetStatus {
	ws := s.Widgets.Widgets()
	out := make([]WidgetStatus, 0, len(ws))
	for _, w := range ws {
		out = append(out, WidgetStatus{ID: w.ID(), Label: w.Label(), Enabled: w.Enabled()})
	}
	return out
}
