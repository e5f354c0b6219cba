package yatgfluent

import (
	"context"
	"fmt"
	"net/http"

	"github.com/YaCodeDev/GoYaCodeDevUtils/yaerrors"
	"github.com/YaCodeDev/GoYaTgFluent/yatgpeers"
	"github.com/YaCodeDev/GoYaTgFluent/yatgtypes"
	"github.com/google/uuid"
	"github.com/gotd/td/tg"
)

// GetMessages fetches messages by ID from a chat, routing through the
// channel-scoped raw call when the peer resolves to a channel. All IDs go
// out in one request; the Results envelope collapses by response count, the
// same way translation does.
//
// Example usage:
//
//	res, err := fluent.GetMessages(ctx, yatgpeers.ID(chatID), 7, 8)
//	if err != nil {
//	    // Handle error
//	}
//
//	for _, msg := range res.List() {
//	    fmt.Println(msg.Text)
//	}
func (c *Client) GetMessages(
	ctx context.Context,
	chat yatgpeers.PeerRef,
	messageIDs ...int,
) (Results[*yatgtypes.Message], yaerrors.Error) {
	log := c.log.WithRequestUUID(uuid.New())

	if len(messageIDs) == 0 {
		return Results[*yatgtypes.Message]{}, yaerrors.FromStringWithLog(
			http.StatusBadRequest,
			"failed to get messages: no message ids",
			log,
		)
	}

	peer, yaErr := c.peers.ResolvePeer(ctx, chat)
	if yaErr != nil {
		return Results[*yatgtypes.Message]{}, yaErr.WrapWithLog("failed to get messages", log)
	}

	ids := make([]tg.InputMessageClass, 0, len(messageIDs))
	for _, id := range messageIDs {
		ids = append(ids, &tg.InputMessageID{ID: id})
	}

	var (
		response tg.MessagesMessagesClass
		err      error
	)

	if channel, ok := peer.(*tg.InputPeerChannel); ok {
		response, err = c.raw.ChannelsGetMessages(ctx, &tg.ChannelsGetMessagesRequest{
			Channel: &tg.InputChannel{
				ChannelID:  channel.ChannelID,
				AccessHash: channel.AccessHash,
			},
			ID: ids,
		})
	} else {
		response, err = c.raw.MessagesGetMessages(ctx, ids)
	}

	if err != nil {
		return Results[*yatgtypes.Message]{}, yaerrors.FromErrorWithLog(
			http.StatusInternalServerError,
			err,
			"failed to get messages",
			log,
		)
	}

	return parseMessagesResponse(response)
}

// parseMessagesResponse normalizes the message-container variants and parses
// each raw message with the response's own entity tables as context.
func parseMessagesResponse(
	response tg.MessagesMessagesClass,
) (Results[*yatgtypes.Message], yaerrors.Error) {
	var (
		messages []tg.MessageClass
		ents     yatgtypes.Entities
	)

	switch r := response.(type) {
	case *tg.MessagesMessages:
		messages = r.Messages
		ents = yatgtypes.EntitiesFromResponse(r.Users, r.Chats)
	case *tg.MessagesMessagesSlice:
		messages = r.Messages
		ents = yatgtypes.EntitiesFromResponse(r.Users, r.Chats)
	case *tg.MessagesChannelMessages:
		messages = r.Messages
		ents = yatgtypes.EntitiesFromResponse(r.Users, r.Chats)
	default:
		return Results[*yatgtypes.Message]{}, yaerrors.FromError(
			http.StatusUnprocessableEntity,
			yatgtypes.ErrUnknownVariant,
			fmt.Sprintf("failed to parse messages: unexpected payload %T", response),
		)
	}

	items := make([]*yatgtypes.Message, 0, len(messages))

	for _, raw := range messages {
		msg, err := yatgtypes.ParseMessage(raw, ents)
		if err != nil {
			return Results[*yatgtypes.Message]{}, err.Wrap("failed to parse messages")
		}

		items = append(items, msg)
	}

	return resultsOf(items), nil
}
