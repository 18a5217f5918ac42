package events

import "github.com/kelindar/event"

// Bus wraps a kelindar/event dispatcher for conversion notifications.
type Bus struct {
	dispatcher *event.Dispatcher
}

// New creates a new event bus.
func New() *Bus {
	return &Bus{dispatcher: event.NewDispatcher()}
}

// Publish publishes an event to all subscribers. The generic Publish needs a
// concrete type, hence the switch.
func (b *Bus) Publish(ev Event) {
	switch e := ev.(type) {
	case ProgressEvent:
		event.Publish(b.dispatcher, e)
	case StateEvent:
		event.Publish(b.dispatcher, e)
	case DoneEvent:
		event.Publish(b.dispatcher, e)
	}
}

// Subscribe registers a handler; the handler's parameter type selects which
// events it receives. Returns an unsubscribe function.
//
// Usage: unsub := bus.Subscribe(func(e ProgressEvent) { ... })
func (b *Bus) Subscribe(handler any) func() {
	switch h := handler.(type) {
	case func(ProgressEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(StateEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(DoneEvent):
		return event.Subscribe(b.dispatcher, h)
	default:
		return func() {}
	}
}

// Close shuts down the dispatcher.
func (b *Bus) Close() error {
	return b.dispatcher.Close()
}
