package services

import (
	"strings"

	"giveaway/internal/models"
)

// Qualify decides whether a live event makes its sender a participant
// under the given rules. It returns the qualifying identity and true when
// it does. For like events it also advances the sender's accumulator in
// the registry; cumulative counting is part of qualification, not a
// separate step.
//
// Qualify does not check session phase and does not deduplicate; the
// caller gates on phase and the registry ignores repeat additions.
func Qualify(ev models.LiveEvent, rules models.RuleSet, reg *Registry) (string, bool) {
	switch {
	case ev.Chat != nil:
		if !rules.Enabled.Commands {
			return "", false
		}
		text := strings.ToLower(strings.TrimSpace(ev.Chat.Text))
		for _, cmd := range rules.Commands {
			if strings.ToLower(cmd) == text {
				return ev.Chat.Sender, true
			}
		}
		return "", false

	case ev.Gift != nil:
		if !rules.Enabled.Gifts {
			return "", false
		}
		for _, name := range rules.Gifts {
			if name == ev.Gift.GiftName {
				return ev.Gift.Sender, true
			}
		}
		return "", false

	case ev.Like != nil:
		if !rules.Enabled.Likes {
			return "", false
		}
		count := ev.Like.Count
		if count <= 0 {
			count = 1
		}
		total := reg.AddLikes(ev.Like.Sender, count)
		if total >= rules.LikeThreshold {
			return ev.Like.Sender, true
		}
		return "", false
	}

	return "", false
}
