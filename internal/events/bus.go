// Package events is the publish/subscribe bus that decouples the focus
// manager from the widgets that show menus or request focus changes.
package events

import (
	"sync"

	"github.com/mj1618/hud-a11y/internal/model"
)

// Topic names a channel on the bus.
type Topic string

const (
	// TopicHUDFocused requests focus. Payload: model.Path, empty for "anywhere".
	TopicHUDFocused Topic = "hudFocused"
	// TopicWidgetChanged announces that a widget regenerated its content.
	// Payload: the widget id as a string.
	TopicWidgetChanged Topic = "widgetChanged"
	// TopicShowContextMenu payload: ContextMenu.
	TopicShowContextMenu Topic = "showContextMenu"
	// TopicHideContextMenu carries no payload.
	TopicHideContextMenu Topic = "hideContextMenu"
)

// ContextMenu is the payload of TopicShowContextMenu.
type ContextMenu struct {
	WidgetID string      `yaml:"widget"             json:"widget"`
	Position *model.Rect `yaml:"position,omitempty" json:"position,omitempty"`
	Buttons  []string    `yaml:"buttons"            json:"buttons"`
}

// Handler receives a published payload.
type Handler func(payload any)

type subscription struct {
	id      int
	handler Handler
}

// Bus dispatches payloads synchronously, in registration order.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[Topic][]subscription
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Topic][]subscription)}
}

// Register subscribes handler to topic and returns an id for Unregister.
func (b *Bus) Register(topic Topic, handler Handler) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.subs[topic] = append(b.subs[topic], subscription{id: b.nextID, handler: handler})
	return b.nextID
}

// Unregister removes a subscription. Unknown ids are ignored.
func (b *Bus) Unregister(topic Topic, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.subs[topic]
	for i, s := range subs {
		if s.id == id {
			b.subs[topic] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Publish calls every handler of topic. Handlers may publish or
// (un)register in turn; they see a snapshot taken before dispatch.
func (b *Bus) Publish(topic Topic, payload any) {
	b.mu.Lock()
	subs := append([]subscription(nil), b.subs[topic]...)
	b.mu.Unlock()
	for _, s := range subs {
		s.handler(payload)
	}
}

// Subscribers returns the number of handlers on topic.
func (b *Bus) Subscribers(topic Topic) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[topic])
}
