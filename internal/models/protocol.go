package models

// Push-channel event names. Outbound names are what the control panel and
// overlay clients listen for; inbound names are the control commands those
// clients send back.
const (
	// Outbound to subscribers.
	EventState             = "giveaway-state"
	EventParticipantJoined = "participant-joined"
	EventStarted           = "giveaway-started"
	EventWinner            = "giveaway-winner"
	EventReset             = "giveaway-reset"
	EventConfigUpdated     = "config-updated"
	EventNewChat           = "new-chat"
	EventNewGift           = "new-gift"
	EventNewLike           = "new-like"

	// Inbound control commands.
	CommandStart           = "start-giveaway"
	CommandDraw            = "draw-winner"
	CommandReset           = "reset-giveaway"
	CommandUpdateConfig    = "update-config"
	CommandRequestSnapshot = "request-giveaway-state"

	// Upstream live-source event kinds.
	SourceChat = "chat"
	SourceGift = "gift"
	SourceLike = "like"
)
