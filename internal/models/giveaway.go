package models

// Phase describes the lifecycle stage of the single giveaway session.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseActive    Phase = "active"
	PhaseConcluded Phase = "concluded"
)

// ChannelToggles controls which entry channels count toward qualification.
type ChannelToggles struct {
	Commands bool `json:"commands"`
	Gifts    bool `json:"gifts"`
	Likes    bool `json:"likes"`
}

// RuleSet is the mutable entry configuration. It outlives sessions: start
// and reset never touch it, only explicit config updates do.
type RuleSet struct {
	Enabled       ChannelToggles `json:"enabled"`
	Commands      []string       `json:"commands"`      // matched case-insensitively against trimmed chat text
	Gifts         []string       `json:"gifts"`         // exact, case-sensitive gift names
	LikeThreshold int            `json:"likeThreshold"` // cumulative likes to enter; always >= 1
}

// DefaultRuleSet returns the configuration used when no persisted rule set
// exists.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		Enabled:       ChannelToggles{Commands: true, Gifts: true, Likes: true},
		Commands:      []string{"!join", "!giveaway"},
		Gifts:         []string{"Rose", "Diamond"},
		LikeThreshold: 10,
	}
}

// RuleSetPatch is a partial rule-set update. Nil fields keep their prior
// values. A non-nil Enabled replaces the whole toggle group: flags missing
// from the caller's JSON decode to false. That mirrors the control panel's
// merge semantics and is asserted in tests; callers should send the full
// toggle group.
type RuleSetPatch struct {
	Enabled       *ChannelToggles `json:"enabled,omitempty"`
	Commands      *[]string       `json:"commands,omitempty"`
	Gifts         *[]string       `json:"gifts,omitempty"`
	LikeThreshold *int            `json:"likeThreshold,omitempty"`
}

// Snapshot is a full point-in-time view of session state, sent to a
// subscriber on connect and on request.
type Snapshot struct {
	Phase        Phase    `json:"phase"`
	Participants []string `json:"participants"`
	Winner       *string  `json:"winner"`
	Config       RuleSet  `json:"config"`
}
