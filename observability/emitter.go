package observability

import "stakeengine/events"

// MetricsEmitter wraps an events.Emitter and records a counter per event
// type before forwarding to the underlying emitter.
type MetricsEmitter struct {
	next events.Emitter
}

// NewMetricsEmitter wraps next with event-count instrumentation. A nil next
// is treated as events.NoopEmitter{}.
func NewMetricsEmitter(next events.Emitter) *MetricsEmitter {
	if next == nil {
		next = events.NoopEmitter{}
	}
	return &MetricsEmitter{next: next}
}

// Emit records the event type and forwards to the wrapped emitter.
func (e *MetricsEmitter) Emit(ev events.Event) {
	Events().RecordEmitted(ev.EventType())
	e.next.Emit(ev)
}
