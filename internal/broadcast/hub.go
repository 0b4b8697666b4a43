// Package broadcast fans engine state changes out to connected
// subscribers. Each subscriber gets its own bounded queue; the engine
// never waits on delivery, and a subscriber that stops draining its queue
// is disconnected rather than allowed to stall ingestion.
package broadcast

import (
	"encoding/json"
	"sync"

	"github.com/google/logger"
	"github.com/google/uuid"

	"giveaway/internal/models"
)

// subscriberBuffer is the per-subscriber queue depth. The full event rate
// of a busy stream fits comfortably; overflow means the consumer is not
// reading at all.
const subscriberBuffer = 256

// Subscriber is one connected push-channel client.
type Subscriber struct {
	ID string
	ch chan models.Envelope

	mu     sync.Mutex
	closed bool
}

// C is the stream of envelopes for this subscriber. It is closed when the
// subscriber is removed from the hub.
func (s *Subscriber) C() <-chan models.Envelope {
	return s.ch
}

// send enqueues without blocking and reports whether it fit.
func (s *Subscriber) send(env models.Envelope) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return true
	}
	select {
	case s.ch <- env:
		return true
	default:
		return false
	}
}

func (s *Subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}

// Hub tracks subscribers and broadcasts envelopes to all of them.
type Hub struct {
	mu   sync.Mutex
	subs map[string]*Subscriber
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]*Subscriber)}
}

// Subscribe registers a new subscriber and returns it.
func (h *Hub) Subscribe() *Subscriber {
	sub := &Subscriber{
		ID: uuid.NewString(),
		ch: make(chan models.Envelope, subscriberBuffer),
	}
	h.mu.Lock()
	h.subs[sub.ID] = sub
	h.mu.Unlock()
	logger.Infof("subscriber connected: %s", sub.ID)
	return sub
}

// Unsubscribe removes the subscriber and closes its stream. Safe to call
// more than once.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	sub, ok := h.subs[id]
	if ok {
		delete(h.subs, id)
	}
	h.mu.Unlock()
	if ok {
		sub.close()
		logger.Infof("subscriber disconnected: %s", sub.ID)
	}
}

// Count returns the number of connected subscribers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Broadcast marshals the payload once and enqueues it for every
// subscriber. Subscribers whose queues are full are disconnected.
func (h *Hub) Broadcast(event string, data any) {
	env, err := Encode(event, data)
	if err != nil {
		logger.Errorf("broadcast %s: %v", event, err)
		return
	}

	h.mu.Lock()
	subs := make([]*Subscriber, 0, len(h.subs))
	for _, sub := range h.subs {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	for _, sub := range subs {
		if !sub.send(env) {
			logger.Errorf("subscriber %s overflowed, disconnecting", sub.ID)
			h.Unsubscribe(sub.ID)
		}
	}
}

// Send unicasts an envelope to a single subscriber, with the same
// overflow policy as Broadcast.
func (h *Hub) Send(sub *Subscriber, event string, data any) {
	env, err := Encode(event, data)
	if err != nil {
		logger.Errorf("send %s to %s: %v", event, sub.ID, err)
		return
	}
	if !sub.send(env) {
		logger.Errorf("subscriber %s overflowed, disconnecting", sub.ID)
		h.Unsubscribe(sub.ID)
	}
}

// Encode builds a wire envelope from an event name and payload.
func Encode(event string, data any) (models.Envelope, error) {
	env := models.Envelope{Event: event}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return models.Envelope{}, err
		}
		env.Data = raw
	}
	return env, nil
}
