package yatgfluent

import (
	"context"
	"net/http"
	"time"

	"github.com/YaCodeDev/GoYaCodeDevUtils/yaerrors"
	"github.com/YaCodeDev/GoYaTgFluent/yatgpeers"
	"github.com/YaCodeDev/GoYaTgFluent/yatgtypes"
	"github.com/google/uuid"
	"github.com/gotd/td/tg"
)

// VideoChatOptions tunes CreateVideoChat.
type VideoChatOptions struct {
	// Title names the video chat; nil keeps the default.
	Title *string

	// ScheduleDate schedules the chat instead of starting it now.
	ScheduleDate *time.Time

	// RTMPStream starts a livestream fed through RTMP.
	RTMPStream bool
}

// CreateVideoChat starts (or schedules) a group call in a chat or channel.
// The caller needs the manage-calls admin right.
//
// Example usage:
//
//	chat, err := fluent.CreateVideoChat(ctx, yatgpeers.ID(chatID), yatgfluent.VideoChatOptions{})
//	if err != nil {
//	    // Handle error
//	}
func (c *Client) CreateVideoChat(
	ctx context.Context,
	chat yatgpeers.PeerRef,
	options VideoChatOptions,
) (*yatgtypes.VideoChat, yaerrors.Error) {
	log := c.log.WithRequestUUID(uuid.New())

	peer, yaErr := c.peers.ResolvePeer(ctx, chat)
	if yaErr != nil {
		return nil, yaErr.WrapWithLog("failed to create video chat", log)
	}

	if _, ok := peer.(*tg.InputPeerUser); ok {
		return nil, yaerrors.FromStringWithLog(
			http.StatusBadRequest,
			"failed to create video chat: peer must be a chat or channel",
			log,
		)
	}

	request := &tg.PhoneCreateGroupCallRequest{
		Peer:       peer,
		RandomID:   int(c.randID()),
		RtmpStream: options.RTMPStream,
	}

	if options.Title != nil {
		request.SetTitle(*options.Title)
	}

	if options.ScheduleDate != nil {
		request.SetScheduleDate(int(options.ScheduleDate.Unix()))
	}

	updates, err := c.raw.PhoneCreateGroupCall(ctx, request)
	if err != nil {
		return nil, yaerrors.FromErrorWithLog(
			http.StatusInternalServerError,
			err,
			"failed to create video chat",
			log,
		)
	}

	return yatgtypes.ParseVideoChat(updates)
}

// DiscardGroupCall terminates a group call for everyone.
//
// Example usage:
//
//	err := fluent.DiscardGroupCall(ctx, videoChat.InputGroupCall())
func (c *Client) DiscardGroupCall(
	ctx context.Context,
	call tg.InputGroupCallClass,
) yaerrors.Error {
	log := c.log.WithRequestUUID(uuid.New())

	if _, err := c.raw.PhoneDiscardGroupCall(ctx, call); err != nil {
		return yaerrors.FromErrorWithLog(
			http.StatusInternalServerError,
			err,
			"failed to discard group call",
			log,
		)
	}

	return nil
}
