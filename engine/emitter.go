package engine

import "github.com/lixenwraith/bounce/event"

// Emitter publishes lifecycle events
type Emitter interface {
	Emit(eventType event.EventType, payload any)
}

type nopEmitter struct{}

func (nopEmitter) Emit(event.EventType, any) {}

// queueEmitter stamps events with the current frame before pushing
type queueEmitter struct {
	queue *event.EventQueue
	frame *int64
}

func (e queueEmitter) Emit(eventType event.EventType, payload any) {
	e.queue.Push(event.GameEvent{
		Type:    eventType,
		Payload: payload,
		Frame:   *e.frame,
	})
}
