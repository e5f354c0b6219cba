package yatgfluent_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/YaCodeDev/GoYaTgFluent/yatgfluent"
	"github.com/YaCodeDev/GoYaTgFluent/yatgpeers"
	"github.com/YaCodeDev/GoYaTgFluent/yatgtypes"
	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textMessage(id int, text string) *tg.Message {
	msg := &tg.Message{
		ID:      id,
		Date:    1700000000,
		Message: text,
		PeerID:  &tg.PeerChat{ChatID: 222},
	}
	msg.SetFromID(&tg.PeerUser{UserID: 111})

	return msg
}

func senderTable() []tg.UserClass {
	sender := &tg.User{ID: 111}
	sender.SetFirstName("Ya")

	return []tg.UserClass{sender}
}

func TestGetMessages(t *testing.T) {
	ctx := context.Background()

	t.Run("Chat peer goes through messages.getMessages", func(t *testing.T) {
		mock := tgmock.New(t)

		mock.ExpectCall(&tg.MessagesGetMessagesRequest{
			ID: []tg.InputMessageClass{&tg.InputMessageID{ID: 7}},
		}).ThenResult(&tg.MessagesMessages{
			Messages: []tg.MessageClass{textMessage(7, "hi")},
			Users:    senderTable(),
		})

		fluent := newTestClient(t, mock, yatgfluent.ClientOptions{})

		res, err := fluent.GetMessages(ctx, yatgpeers.ID(testChatID), 7)

		require.Nil(t, err)

		msg, ok := res.Single()
		require.True(t, ok)
		assert.Equal(t, 7, msg.ID)
		assert.Equal(t, "hi", msg.Text)

		require.NotNil(t, msg.From)
		assert.Equal(t, "Ya", msg.From.FirstName)
	})

	t.Run("Channel peer routes to channels.getMessages", func(t *testing.T) {
		mock := tgmock.New(t)

		mock.ExpectCall(&tg.ChannelsGetMessagesRequest{
			Channel: &tg.InputChannel{ChannelID: 333, AccessHash: 777},
			ID: []tg.InputMessageClass{
				&tg.InputMessageID{ID: 7},
				&tg.InputMessageID{ID: 8},
			},
		}).ThenResult(&tg.MessagesChannelMessages{
			Messages: []tg.MessageClass{
				textMessage(7, "first"),
				textMessage(8, "second"),
			},
			Users: senderTable(),
		})

		fluent := newTestClient(t, mock, yatgfluent.ClientOptions{})

		res, err := fluent.GetMessages(ctx, yatgpeers.ID(testChannelID), 7, 8)

		require.Nil(t, err)

		_, ok := res.Single()
		assert.False(t, ok)

		list := res.List()
		require.Len(t, list, 2)
		assert.Equal(t, "first", list[0].Text)
		assert.Equal(t, "second", list[1].Text)
	})

	t.Run("Deleted message comes back empty, not dropped", func(t *testing.T) {
		mock := tgmock.New(t)

		mock.ExpectCall(&tg.MessagesGetMessagesRequest{
			ID: []tg.InputMessageClass{&tg.InputMessageID{ID: 9}},
		}).ThenResult(&tg.MessagesMessages{
			Messages: []tg.MessageClass{&tg.MessageEmpty{ID: 9}},
		})

		fluent := newTestClient(t, mock, yatgfluent.ClientOptions{})

		res, err := fluent.GetMessages(ctx, yatgpeers.ID(testChatID), 9)

		require.Nil(t, err)

		msg, ok := res.Single()
		require.True(t, ok)
		assert.True(t, msg.IsEmpty)
	})

	t.Run("Forwarded message carries its parsed origin", func(t *testing.T) {
		mock := tgmock.New(t)

		forwarded := textMessage(7, "fwd")

		fwd := tg.MessageFwdHeader{Date: 1690000000}
		fwd.SetFromID(&tg.PeerChannel{ChannelID: 333})
		fwd.SetChannelPost(42)
		forwarded.SetFwdFrom(fwd)

		channel := &tg.Channel{ID: 333, Title: "Ya Channel", Photo: &tg.ChatPhotoEmpty{}}
		channel.Broadcast = true

		mock.ExpectCall(&tg.MessagesGetMessagesRequest{
			ID: []tg.InputMessageClass{&tg.InputMessageID{ID: 7}},
		}).ThenResult(&tg.MessagesMessages{
			Messages: []tg.MessageClass{forwarded},
			Users:    senderTable(),
			Chats:    []tg.ChatClass{channel},
		})

		fluent := newTestClient(t, mock, yatgfluent.ClientOptions{})

		res, err := fluent.GetMessages(ctx, yatgpeers.ID(testChatID), 7)

		require.Nil(t, err)

		msg, ok := res.Single()
		require.True(t, ok)

		origin, ok := msg.Origin.(*yatgtypes.MessageOriginChannel)
		require.True(t, ok)
		assert.Equal(t, 42, origin.MessageID)
		assert.Equal(t, "Ya Channel", origin.Chat.Title)
	})

	t.Run("No message ids fails before any RPC", func(t *testing.T) {
		fluent := newTestClient(t, tgmock.New(t), yatgfluent.ClientOptions{})

		_, err := fluent.GetMessages(ctx, yatgpeers.ID(testChatID))

		require.NotNil(t, err)
		assert.Equal(t, http.StatusBadRequest, err.Code())
	})
}
