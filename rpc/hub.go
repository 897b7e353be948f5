package rpc

import (
	"sync"

	"stakeengine/events"
)

// hub fans every emitted event out to the set of currently connected
// websocket subscribers. It satisfies events.Emitter so it can sit directly
// in a Service's emitter chain alongside the metrics wrapper.
type hub struct {
	mu   sync.Mutex
	subs map[chan events.Event]struct{}
}

func newHub() *hub {
	return &hub{subs: make(map[chan events.Event]struct{})}
}

// Emit implements events.Emitter: it pushes e to every subscriber's channel
// without blocking. A subscriber that isn't draining fast enough loses the
// event rather than stalling the account operation that produced it.
func (h *hub) Emit(e events.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// subscribe registers a new subscriber channel and returns an unsubscribe
// func the caller must defer.
func (h *hub) subscribe() (chan events.Event, func()) {
	ch := make(chan events.Event, 32)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	return ch, func() {
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
		close(ch)
	}
}
