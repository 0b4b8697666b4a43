package models

import "encoding/json"

// Live events arriving from the streaming platform, already decoded into a
// closed set of kinds. Sender is the platform-scoped identity string:
// opaque, case-sensitive, never normalized.

// ChatEvent is one chat message from a viewer.
type ChatEvent struct {
	Sender string `json:"uniqueId"`
	Text   string `json:"comment"`
}

// GiftEvent is one gift sent by a viewer.
type GiftEvent struct {
	Sender   string `json:"uniqueId"`
	GiftName string `json:"giftName"`
}

// LikeEvent is a batch of likes from one viewer. Count defaults to 1 when
// the platform omits it.
type LikeEvent struct {
	Sender string `json:"uniqueId"`
	Count  int    `json:"likeCount"`
}

// LiveEvent is the tagged union of platform events. Exactly one of the
// pointer fields is set.
type LiveEvent struct {
	Chat *ChatEvent
	Gift *GiftEvent
	Like *LikeEvent
}

// Envelope is the wire frame shared by the push channel and the upstream
// event source: an event name plus an opaque JSON payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}
