// Package ecs provides ECS adapters for petal's input events.
//
// The primary adapter is [NewDonburiStore], which forwards every event a
// window dispatches into a [Donburi] world as a typed event. Subscribe to
// [InputEventType] in your ECS systems to receive them, or to
// [KeyEventType], [MouseEventType] and [ControllerEventType] for one event
// per physical input.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	window.SetEventSink(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
