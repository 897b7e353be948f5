package rpc

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"stakeengine/events"

	"nhooyr.io/websocket"
)

const wsWriteTimeout = 10 * time.Second

// eventPayload is the wire shape pushed to websocket subscribers: the event
// type discriminant plus its flat attribute map, so a client never needs
// this package's concrete event structs to render a notification.
type eventPayload struct {
	Type       string            `json:"type"`
	Attributes map[string]string `json:"attributes"`
}

// attributer is satisfied by every events.Event defined in package events;
// narrowed here so stream.go doesn't need a type switch per event kind.
type attributer interface {
	Attributes() map[string]string
}

// handleEventStream upgrades the request to a websocket and pushes every
// subsequent account-operation event to the caller until it disconnects or
// the server shuts down.
func (s *Service) handleEventStream(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: []string{"*"}})
	if err != nil {
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "stream closed")

	ch, unsubscribe := s.hub.subscribe()
	defer unsubscribe()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			if err := writeEvent(ctx, conn, ev); err != nil {
				if status := websocket.CloseStatus(err); status == -1 {
					_ = conn.Close(websocket.StatusInternalError, "stream error")
				}
				return
			}
		}
	}
}

func writeEvent(ctx context.Context, conn *websocket.Conn, ev events.Event) error {
	payload := eventPayload{Type: ev.EventType()}
	if a, ok := ev.(attributer); ok {
		payload.Attributes = a.Attributes()
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	writeCtx, cancel := context.WithTimeout(ctx, wsWriteTimeout)
	defer cancel()
	return conn.Write(writeCtx, websocket.MessageText, data)
}
