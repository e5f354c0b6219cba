package yatgtypes

import (
	"fmt"
	"net/http"
	"time"

	"github.com/YaCodeDev/GoYaCodeDevUtils/yaerrors"
	"github.com/gotd/td/tg"
)

// VideoChat is an active or scheduled group call attached to a chat.
type VideoChat struct {
	ID                int64
	AccessHash        int64
	Title             string
	ParticipantsCount int
	ScheduleDate      time.Time
}

// InputGroupCall converts the parsed call back into the raw handle other
// group-call methods expect.
func (v *VideoChat) InputGroupCall() *tg.InputGroupCall {
	return &tg.InputGroupCall{
		ID:         v.ID,
		AccessHash: v.AccessHash,
	}
}

// ParseVideoChat digs the group call out of an updates envelope. Telegram
// confirms phone.createGroupCall with an UpdateGroupCall inside the generic
// updates response; anything else is schema drift.
//
// Example usage:
//
//	chat, err := yatgtypes.ParseVideoChat(updates)
//	if err != nil {
//	    // Handle error
//	}
func ParseVideoChat(updates tg.UpdatesClass) (*VideoChat, yaerrors.Error) {
	var inner []tg.UpdateClass

	switch u := updates.(type) {
	case *tg.Updates:
		inner = u.Updates
	case *tg.UpdatesCombined:
		inner = u.Updates
	default:
		return nil, yaerrors.FromError(
			http.StatusUnprocessableEntity,
			ErrUnknownVariant,
			fmt.Sprintf("failed to parse video chat: unexpected envelope %T", updates),
		)
	}

	for _, update := range inner {
		groupCall, ok := update.(*tg.UpdateGroupCall)
		if !ok {
			continue
		}

		call, ok := groupCall.Call.(*tg.GroupCall)
		if !ok {
			continue
		}

		chat := &VideoChat{
			ID:                call.ID,
			AccessHash:        call.AccessHash,
			ParticipantsCount: call.ParticipantsCount,
		}

		if title, ok := call.GetTitle(); ok {
			chat.Title = title
		}

		if schedule, ok := call.GetScheduleDate(); ok {
			chat.ScheduleDate = time.Unix(int64(schedule), 0)
		}

		return chat, nil
	}

	return nil, yaerrors.FromError(
		http.StatusUnprocessableEntity,
		ErrUnknownVariant,
		"failed to parse video chat: no group call update in envelope",
	)
}
