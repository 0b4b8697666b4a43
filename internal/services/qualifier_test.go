package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"giveaway/internal/models"
)

func chatEvent(sender, text string) models.LiveEvent {
	return models.LiveEvent{Chat: &models.ChatEvent{Sender: sender, Text: text}}
}

func giftEvent(sender, gift string) models.LiveEvent {
	return models.LiveEvent{Gift: &models.GiftEvent{Sender: sender, GiftName: gift}}
}

func likeEvent(sender string, count int) models.LiveEvent {
	return models.LiveEvent{Like: &models.LikeEvent{Sender: sender, Count: count}}
}

func TestQualifyChat(t *testing.T) {
	rules := models.DefaultRuleSet()

	t.Run("matches trimmed text case-insensitively", func(t *testing.T) {
		reg := NewRegistry()

		identity, ok := Qualify(chatEvent("alice", "  !JOIN  "), rules, reg)
		require.True(t, ok)
		assert.Equal(t, "alice", identity)
	})

	t.Run("no substring matching", func(t *testing.T) {
		reg := NewRegistry()

		_, ok := Qualify(chatEvent("alice", "please !join me"), rules, reg)
		assert.False(t, ok)
	})

	t.Run("triggers are matched case-insensitively too", func(t *testing.T) {
		reg := NewRegistry()
		mixed := rules
		mixed.Commands = []string{"!Join"}

		_, ok := Qualify(chatEvent("alice", "!join"), mixed, reg)
		assert.True(t, ok)
	})

	t.Run("disabled command channel never qualifies", func(t *testing.T) {
		reg := NewRegistry()
		off := rules
		off.Enabled.Commands = false

		_, ok := Qualify(chatEvent("alice", "!join"), off, reg)
		assert.False(t, ok)
	})
}

func TestQualifyGift(t *testing.T) {
	rules := models.DefaultRuleSet()

	t.Run("exact gift name qualifies", func(t *testing.T) {
		reg := NewRegistry()

		identity, ok := Qualify(giftEvent("bob", "Rose"), rules, reg)
		require.True(t, ok)
		assert.Equal(t, "bob", identity)
	})

	t.Run("gift names are case-sensitive", func(t *testing.T) {
		reg := NewRegistry()

		_, ok := Qualify(giftEvent("bob", "rose"), rules, reg)
		assert.False(t, ok)
	})

	t.Run("unlisted gift does not qualify", func(t *testing.T) {
		reg := NewRegistry()

		_, ok := Qualify(giftEvent("bob", "Lion"), rules, reg)
		assert.False(t, ok)
	})

	t.Run("disabled gift channel never qualifies", func(t *testing.T) {
		reg := NewRegistry()
		off := rules
		off.Enabled.Gifts = false

		_, ok := Qualify(giftEvent("bob", "Rose"), off, reg)
		assert.False(t, ok)
	})
}

func TestQualifyLike(t *testing.T) {
	rules := models.DefaultRuleSet() // threshold 10

	t.Run("qualifies on the event that reaches the threshold, not earlier", func(t *testing.T) {
		reg := NewRegistry()

		_, ok := Qualify(likeEvent("bob", 6), rules, reg)
		assert.False(t, ok, "6 of 10 likes must not qualify")

		identity, ok := Qualify(likeEvent("bob", 5), rules, reg)
		require.True(t, ok, "11 of 10 likes must qualify")
		assert.Equal(t, "bob", identity)
		assert.Equal(t, 11, reg.Likes("bob"))
	})

	t.Run("missing count defaults to one", func(t *testing.T) {
		reg := NewRegistry()
		one := rules
		one.LikeThreshold = 2

		_, ok := Qualify(likeEvent("bob", 0), one, reg)
		assert.False(t, ok)
		assert.Equal(t, 1, reg.Likes("bob"))

		_, ok = Qualify(likeEvent("bob", 0), one, reg)
		assert.True(t, ok)
	})

	t.Run("disabled like channel does not accumulate", func(t *testing.T) {
		reg := NewRegistry()
		off := rules
		off.Enabled.Likes = false

		_, ok := Qualify(likeEvent("bob", 50), off, reg)
		assert.False(t, ok)
		assert.Equal(t, 0, reg.Likes("bob"))
	})
}
