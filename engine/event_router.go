package engine

import (
	"go.uber.org/zap"

	"github.com/lixenwraith/bounce/event"
)

// EventHandler processes specific event types
type EventHandler interface {
	// HandleEvent processes a single event on the frame loop goroutine
	HandleEvent(ev event.GameEvent)

	// EventTypes returns the event types this handler processes
	EventTypes() []event.EventType
}

// EventRouter drains the lifecycle queue once per frame and fans events out
// Handlers for one type run in registration order; events are delivered FIFO
type EventRouter struct {
	handlers map[event.EventType][]EventHandler
	queue    *event.EventQueue
}

// NewEventRouter creates a router attached to the given queue
func NewEventRouter(queue *event.EventQueue) *EventRouter {
	return &EventRouter{
		handlers: make(map[event.EventType][]EventHandler),
		queue:    queue,
	}
}

// Register adds a handler for its declared event types
func (r *EventRouter) Register(handler EventHandler) {
	for _, t := range handler.EventTypes() {
		r.handlers[t] = append(r.handlers[t], handler)
	}
}

// DispatchAll consumes all pending events and routes them, returns the number consumed
func (r *EventRouter) DispatchAll() int {
	events := r.queue.Consume()
	for _, ev := range events {
		for _, h := range r.handlers[ev.Type] {
			h.HandleEvent(ev)
		}
	}
	return len(events)
}

// HandlerCount returns the number of handlers registered for the given type
func (r *EventRouter) HandlerCount(t event.EventType) int {
	return len(r.handlers[t])
}

// EventLogger writes lifecycle events to the debug log
type EventLogger struct {
	log *zap.Logger
}

// NewEventLogger creates a logger handler writing to log
func NewEventLogger(log *zap.Logger) *EventLogger {
	return &EventLogger{log: log}
}

// EventTypes returns the rare lifecycle events worth a log line
func (l *EventLogger) EventTypes() []event.EventType {
	return []event.EventType{event.EventCapReached, event.EventWorldReset}
}

// HandleEvent logs the event type and frame at Debug
func (l *EventLogger) HandleEvent(ev event.GameEvent) {
	l.log.Debug("lifecycle event", zap.Stringer("type", ev.Type), zap.Int64("frame", ev.Frame))
}
