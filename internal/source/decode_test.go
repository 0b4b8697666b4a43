package source

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"giveaway/internal/models"
)

func envelope(event, data string) models.Envelope {
	return models.Envelope{Event: event, Data: json.RawMessage(data)}
}

func TestDecode(t *testing.T) {
	t.Run("chat", func(t *testing.T) {
		ev, err := Decode(envelope("chat", `{"uniqueId":"alice","comment":"!join"}`))
		require.NoError(t, err)
		require.NotNil(t, ev.Chat)
		assert.Equal(t, "alice", ev.Chat.Sender)
		assert.Equal(t, "!join", ev.Chat.Text)
	})

	t.Run("gift", func(t *testing.T) {
		ev, err := Decode(envelope("gift", `{"uniqueId":"bob","giftName":"Rose"}`))
		require.NoError(t, err)
		require.NotNil(t, ev.Gift)
		assert.Equal(t, "Rose", ev.Gift.GiftName)
	})

	t.Run("like with explicit count", func(t *testing.T) {
		ev, err := Decode(envelope("like", `{"uniqueId":"carol","likeCount":15}`))
		require.NoError(t, err)
		require.NotNil(t, ev.Like)
		assert.Equal(t, 15, ev.Like.Count)
	})

	t.Run("like without count decodes to zero for the qualifier to default", func(t *testing.T) {
		ev, err := Decode(envelope("like", `{"uniqueId":"carol"}`))
		require.NoError(t, err)
		require.NotNil(t, ev.Like)
		assert.Equal(t, 0, ev.Like.Count)
	})

	t.Run("missing sender is rejected", func(t *testing.T) {
		for _, kind := range []string{"chat", "gift", "like"} {
			_, err := Decode(envelope(kind, `{}`))
			assert.Error(t, err, "kind %s", kind)
		}
	})

	t.Run("unparsable payload is rejected", func(t *testing.T) {
		_, err := Decode(envelope("chat", `{"uniqueId":`))
		assert.Error(t, err)
	})

	t.Run("unknown event kind is rejected", func(t *testing.T) {
		_, err := Decode(envelope("follow", `{"uniqueId":"dave"}`))
		assert.Error(t, err)
	})
}
