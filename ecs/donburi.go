// Package ecs provides ECS adapters for petal.
package ecs

import (
	"github.com/phanxgames/petal"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InputEventType carries every event the window dispatches, one per
// handler category, so a single key press arrives as both EventKey and
// EventKeyDown.
var InputEventType = events.NewEventType[petal.InputEvent]()

// Per-device streams. Each physical input is published exactly once, with
// its full payload, on the stream for its device.
var (
	KeyEventType        = events.NewEventType[petal.KeyEvent]()
	MouseEventType      = events.NewEventType[petal.MouseEvent]()
	ControllerEventType = events.NewEventType[petal.ControllerEvent]()
)

type donburiStore struct {
	world  donburi.World
	filter map[petal.EventCategory]bool
}

// NewDonburiStore creates an EventSink backed by a Donburi world. With no
// categories every event is forwarded to InputEventType; otherwise only the
// listed categories are. The per-device streams are fed regardless.
//
// Events are queued; drain them with ProcessEvents on each event type.
func NewDonburiStore(world donburi.World, categories ...petal.EventCategory) petal.EventSink {
	s := &donburiStore{world: world}
	if len(categories) > 0 {
		s.filter = make(map[petal.EventCategory]bool, len(categories))
		for _, c := range categories {
			s.filter[c] = true
		}
	}
	return s
}

func (s *donburiStore) EmitEvent(event petal.InputEvent) {
	if s.filter == nil || s.filter[event.Category] {
		InputEventType.Publish(s.world, event)
	}
	// The catch-all categories fire once per input with the whole payload.
	switch event.Category {
	case petal.EventKey:
		KeyEventType.Publish(s.world, event.Key)
	case petal.EventMouse:
		MouseEventType.Publish(s.world, event.Mouse)
	case petal.EventController:
		ControllerEventType.Publish(s.world, event.Controller)
	}
}
