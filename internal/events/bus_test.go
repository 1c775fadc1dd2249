package events

import "testing"

func TestBus_PublishOrder(t *testing.T) {
	bus := NewBus()
	var got []string
	bus.Register(TopicHideContextMenu, func(any) { got = append(got, "first") })
	bus.Register(TopicHideContextMenu, func(any) { got = append(got, "second") })
	bus.Register(TopicShowContextMenu, func(any) { got = append(got, "other") })

	bus.Publish(TopicHideContextMenu, nil)
	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Errorf("got %v", got)
	}
}

func TestBus_Payload(t *testing.T) {
	bus := NewBus()
	var menu ContextMenu
	bus.Register(TopicShowContextMenu, func(p any) { menu = p.(ContextMenu) })
	bus.Publish(TopicShowContextMenu, ContextMenu{WidgetID: "panel", Buttons: []string{"Copy"}})
	if menu.WidgetID != "panel" || len(menu.Buttons) != 1 {
		t.Errorf("got %+v", menu)
	}
}

func TestBus_Unregister(t *testing.T) {
	bus := NewBus()
	calls := 0
	id := bus.Register(TopicHUDFocused, func(any) { calls++ })
	bus.Unregister(TopicHUDFocused, id)
	bus.Unregister(TopicHUDFocused, 999)
	bus.Publish(TopicHUDFocused, nil)
	if calls != 0 {
		t.Errorf("handler called %d times after unregister", calls)
	}
	if n := bus.Subscribers(TopicHUDFocused); n != 0 {
		t.Errorf("subscribers = %d", n)
	}
}

func TestBus_ReentrantPublish(t *testing.T) {
	bus := NewBus()
	hidden := 0
	bus.Register(TopicHideContextMenu, func(any) { hidden++ })
	bus.Register(TopicShowContextMenu, func(any) { bus.Publish(TopicHideContextMenu, nil) })
	bus.Publish(TopicShowContextMenu, ContextMenu{})
	if hidden != 1 {
		t.Errorf("hidden = %d, want 1", hidden)
	}
}
