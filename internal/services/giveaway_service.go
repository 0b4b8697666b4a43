package services

import (
	"math/rand"
	"sync"

	"github.com/google/logger"

	"giveaway/internal/models"
)

// Broadcaster fans an event out to every connected subscriber. Delivery is
// fire-and-forget: a slow subscriber must never block the caller.
type Broadcaster interface {
	Broadcast(event string, data any)
}

// RuleStore persists the rule set document.
type RuleStore interface {
	Save(rules models.RuleSet) error
}

// GiveawayService owns all mutable session state: the rule set, the
// participant registry, the session phase, and the drawn winner. One mutex
// serializes every live event and control command, so each one runs
// qualify -> mutate -> broadcast to completion before the next and no
// subscriber ever observes a partially applied mutation.
type GiveawayService struct {
	mu       sync.Mutex
	rules    models.RuleSet
	registry *Registry
	phase    models.Phase
	winner   string

	bus   Broadcaster
	store RuleStore
}

// NewGiveawayService creates the engine with the given starting rule set.
// The store may be nil; persistence is best-effort.
func NewGiveawayService(rules models.RuleSet, bus Broadcaster, store RuleStore) *GiveawayService {
	return &GiveawayService{
		rules:    rules,
		registry: NewRegistry(),
		phase:    models.PhaseIdle,
		bus:      bus,
		store:    store,
	}
}

// HandleEvent ingests one decoded live event: it qualifies the sender
// against the rules current right now, mutates the registry, and relays
// the raw event to subscribers as an activity item regardless of the
// qualification outcome.
func (s *GiveawayService) HandleEvent(ev models.LiveEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == models.PhaseActive {
		if identity, ok := Qualify(ev, s.rules, s.registry); ok {
			if s.registry.Add(identity) {
				s.bus.Broadcast(models.EventParticipantJoined, identity)
			}
		}
	}

	switch {
	case ev.Chat != nil:
		s.bus.Broadcast(models.EventNewChat, ev.Chat)
	case ev.Gift != nil:
		s.bus.Broadcast(models.EventNewGift, ev.Gift)
	case ev.Like != nil:
		s.bus.Broadcast(models.EventNewLike, ev.Like)
	}
}

// Start begins a fresh session: participants, like counts and any prior
// winner are discarded. Restarting mid-session is allowed and does the
// same thing.
func (s *GiveawayService) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.registry.Clear()
	s.winner = ""
	s.phase = models.PhaseActive
	s.bus.Broadcast(models.EventStarted, nil)
	logger.Info("giveaway started")
}

// Draw selects one participant uniformly at random and concludes the
// session. With no participants it is a silent no-op: no state change, no
// broadcast. The winner event carries the identity value, never an index;
// replicas resolve their own wheel position locally.
func (s *GiveawayService) Draw() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.registry.Size() == 0 {
		return "", false
	}

	winner := s.registry.At(rand.Intn(s.registry.Size()))
	s.winner = winner
	s.phase = models.PhaseConcluded
	s.bus.Broadcast(models.EventWinner, winner)
	logger.Infof("winner drawn: %s (from %d participants)", winner, s.registry.Size())
	return winner, true
}

// Reset returns the session to idle from any phase, clearing participants,
// like counts and the winner. The rule set is untouched.
func (s *GiveawayService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.registry.Clear()
	s.winner = ""
	s.phase = models.PhaseIdle
	s.bus.Broadcast(models.EventReset, nil)
	logger.Info("giveaway reset")
}

// UpdateConfig shallow-merges the patch into the rule set: each provided
// top-level field replaces the prior value wholesale, including the
// enabled toggle group. The merged rule set is persisted best-effort and
// broadcast to all subscribers. Events already processed are never
// re-qualified.
func (s *GiveawayService) UpdateConfig(patch models.RuleSetPatch) models.RuleSet {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.Enabled != nil {
		s.rules.Enabled = *patch.Enabled
	}
	if patch.Commands != nil {
		s.rules.Commands = *patch.Commands
	}
	if patch.Gifts != nil {
		s.rules.Gifts = *patch.Gifts
	}
	if patch.LikeThreshold != nil {
		if *patch.LikeThreshold >= 1 {
			s.rules.LikeThreshold = *patch.LikeThreshold
		} else {
			logger.Errorf("ignoring invalid likeThreshold %d, keeping %d", *patch.LikeThreshold, s.rules.LikeThreshold)
		}
	}

	if s.store != nil {
		if err := s.store.Save(s.rules); err != nil {
			logger.Errorf("persist rule set: %v", err)
		}
	}

	s.bus.Broadcast(models.EventConfigUpdated, s.rules)
	return s.rules
}

// Snapshot returns a consistent point-in-time view of the session.
func (s *GiveawayService) Snapshot() models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// PushSnapshot delivers a snapshot through send while still holding the
// engine's serialization point. Snapshot unicasts go through here rather
// than Snapshot so no participant delta can be enqueued to a subscriber
// between the state read and the snapshot enqueue; a replica replaying
// its queue in order would otherwise apply the stale snapshot after the
// newer delta and lose the participant for good. send must not block;
// hub enqueues are fire-and-forget.
func (s *GiveawayService) PushSnapshot(send func(models.Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	send(s.snapshotLocked())
}

func (s *GiveawayService) snapshotLocked() models.Snapshot {
	snap := models.Snapshot{
		Phase:        s.phase,
		Participants: s.registry.Members(),
		Config:       s.rules,
	}
	if s.winner != "" {
		winner := s.winner
		snap.Winner = &winner
	}
	return snap
}
