package handlers

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/google/logger"
	"golang.org/x/net/websocket"

	"giveaway/internal/broadcast"
	"giveaway/internal/models"
)

// handleWS runs one push-channel session. The subscriber gets the current
// snapshot immediately on connect, then every broadcast until it
// disconnects. Frames received from the client are control commands; a
// frame that does not parse is logged and skipped, never fatal to the
// session.
func (h *HTTPHandler) handleWS(conn *websocket.Conn) {
	defer conn.Close()

	sub := h.hub.Subscribe()
	defer h.hub.Unsubscribe(sub.ID)

	// Writer: drains the subscriber queue onto the wire. Ends when the
	// hub closes the queue or the connection dies, and closes the
	// connection either way so a subscriber the hub dropped (overflow)
	// sees the disconnect instead of a silently dead stream.
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer conn.Close()
		for env := range sub.C() {
			if err := websocket.JSON.Send(conn, env); err != nil {
				return
			}
		}
	}()

	h.service.PushSnapshot(func(snap models.Snapshot) {
		h.hub.Send(sub, models.EventState, snap)
	})

	for {
		var env models.Envelope
		if err := websocket.JSON.Receive(conn, &env); err != nil {
			if !errors.Is(err, io.EOF) {
				logger.Infof("subscriber %s read ended: %v", sub.ID, err)
			}
			break
		}
		h.dispatchCommand(sub, env)

		select {
		case <-done:
			// Writer died; the connection is gone.
			return
		default:
		}
	}
}

// dispatchCommand applies one control command from a connected client.
func (h *HTTPHandler) dispatchCommand(sub *broadcast.Subscriber, env models.Envelope) {
	switch env.Event {
	case models.CommandStart:
		h.service.Start()

	case models.CommandDraw:
		h.service.Draw()

	case models.CommandReset:
		h.service.Reset()

	case models.CommandUpdateConfig:
		var patch models.RuleSetPatch
		if err := json.Unmarshal(env.Data, &patch); err != nil {
			logger.Errorf("subscriber %s sent invalid config patch: %v", sub.ID, err)
			return
		}
		h.service.UpdateConfig(patch)

	case models.CommandRequestSnapshot:
		h.service.PushSnapshot(func(snap models.Snapshot) {
			h.hub.Send(sub, models.EventState, snap)
		})

	default:
		logger.Errorf("subscriber %s sent unknown command %q", sub.ID, env.Event)
	}
}
