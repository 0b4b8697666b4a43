// Package source is the boundary to the live-event platform: it decodes
// raw relay frames into the closed set of engine events and maintains the
// upstream connection. Anything that does not parse is rejected here,
// before it can reach qualification.
package source

import (
	"encoding/json"
	"fmt"

	"giveaway/internal/models"
)

// Decode turns one relay envelope into a live event. It returns an error
// for unknown event kinds, unparsable payloads, and events missing their
// sender identity.
func Decode(env models.Envelope) (models.LiveEvent, error) {
	switch env.Event {
	case models.SourceChat:
		var ev models.ChatEvent
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return models.LiveEvent{}, fmt.Errorf("decode chat event: %w", err)
		}
		if ev.Sender == "" {
			return models.LiveEvent{}, fmt.Errorf("chat event missing sender")
		}
		return models.LiveEvent{Chat: &ev}, nil

	case models.SourceGift:
		var ev models.GiftEvent
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return models.LiveEvent{}, fmt.Errorf("decode gift event: %w", err)
		}
		if ev.Sender == "" {
			return models.LiveEvent{}, fmt.Errorf("gift event missing sender")
		}
		return models.LiveEvent{Gift: &ev}, nil

	case models.SourceLike:
		var ev models.LikeEvent
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return models.LiveEvent{}, fmt.Errorf("decode like event: %w", err)
		}
		if ev.Sender == "" {
			return models.LiveEvent{}, fmt.Errorf("like event missing sender")
		}
		return models.LiveEvent{Like: &ev}, nil
	}

	return models.LiveEvent{}, fmt.Errorf("unknown event kind %q", env.Event)
}
