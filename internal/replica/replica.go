// Package replica maintains a display-side copy of the giveaway session,
// built purely by replaying snapshots and deltas from the push channel.
//
// The replica is what makes a positional reveal (a wheel landing on a
// slot) safe: the winner event carries the winning identity, never an
// index, because a server-side index is only valid against the server's
// membership order at draw time. A display resolves the wheel position
// against its own participant list, which replays deltas in the same
// relative order the server applied them, and falls back to a name-only
// announcement when the winning identity has not reached it yet. It is
// the reference consumer of the push protocol; display surfaces in other
// languages mirror this replay logic.
package replica

import (
	"encoding/json"
	"fmt"

	"giveaway/internal/models"
)

// Replica is a local copy of session state. Not safe for concurrent use;
// drive it from a single receive loop.
type Replica struct {
	phase        models.Phase
	participants []string
	winner       *string
	config       models.RuleSet
}

// New creates an empty replica in the idle phase.
func New() *Replica {
	return &Replica{phase: models.PhaseIdle}
}

// Apply replays one envelope from the push channel. Activity-feed items
// (new-chat and friends) do not alter session state and are ignored;
// unknown events are an error so protocol drift is noticed.
func (r *Replica) Apply(env models.Envelope) error {
	switch env.Event {
	case models.EventState:
		var snap models.Snapshot
		if err := json.Unmarshal(env.Data, &snap); err != nil {
			return fmt.Errorf("apply snapshot: %w", err)
		}
		r.phase = snap.Phase
		r.participants = append([]string(nil), snap.Participants...)
		r.winner = snap.Winner
		r.config = snap.Config

	case models.EventParticipantJoined:
		var identity string
		if err := json.Unmarshal(env.Data, &identity); err != nil {
			return fmt.Errorf("apply participant delta: %w", err)
		}
		r.participants = append(r.participants, identity)

	case models.EventStarted:
		r.phase = models.PhaseActive
		r.participants = nil
		r.winner = nil

	case models.EventWinner:
		var identity string
		if err := json.Unmarshal(env.Data, &identity); err != nil {
			return fmt.Errorf("apply winner: %w", err)
		}
		r.phase = models.PhaseConcluded
		r.winner = &identity

	case models.EventReset:
		r.phase = models.PhaseIdle
		r.participants = nil
		r.winner = nil

	case models.EventConfigUpdated:
		var rules models.RuleSet
		if err := json.Unmarshal(env.Data, &rules); err != nil {
			return fmt.Errorf("apply config: %w", err)
		}
		r.config = rules

	case models.EventNewChat, models.EventNewGift, models.EventNewLike:
		// Activity feed only.

	default:
		return fmt.Errorf("unknown event %q", env.Event)
	}
	return nil
}

// Phase returns the replicated session phase.
func (r *Replica) Phase() models.Phase {
	return r.phase
}

// Participants returns the replicated participant list in qualification
// order.
func (r *Replica) Participants() []string {
	out := make([]string, len(r.participants))
	copy(out, r.participants)
	return out
}

// Winner returns the replicated winner, or "" when none is known.
func (r *Replica) Winner() string {
	if r.winner == nil {
		return ""
	}
	return *r.winner
}

// Config returns the replicated rule set.
func (r *Replica) Config() models.RuleSet {
	return r.config
}

// ResolveReveal maps a winning identity to this replica's slot index for
// a positional reveal. ok is false when the identity is not present
// locally (the delta may still be in flight); the display must then
// announce the winner by name without animating to a position, never
// guess one.
func (r *Replica) ResolveReveal(winner string) (index int, ok bool) {
	for i, p := range r.participants {
		if p == winner {
			return i, true
		}
	}
	return 0, false
}
