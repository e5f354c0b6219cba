package yatgtypes

import (
	"fmt"
	"net/http"
	"time"

	"github.com/YaCodeDev/GoYaCodeDevUtils/yaerrors"
	"github.com/gotd/td/tg"
)

// Message is the trimmed message record surfaced by the method layer: the
// identity, text and forward origin, not every field the schema defines.
type Message struct {
	ID       int
	Date     time.Time
	Text     string
	Entities []tg.MessageEntityClass
	From     *User
	Origin   MessageOrigin
	IsEmpty  bool
}

// ParseMessage dispatches a raw message to the typed result, threading the
// entity table into the forward-origin parse. Service messages keep their
// identity only; deleted/unavailable messages come back with IsEmpty set.
//
// Example usage:
//
//	msg, err := yatgtypes.ParseMessage(raw, ents)
//	if err != nil {
//	    // Handle error
//	}
func ParseMessage(raw tg.MessageClass, ents Entities) (*Message, yaerrors.Error) {
	switch m := raw.(type) {
	case *tg.Message:
		msg := &Message{
			ID:   m.ID,
			Date: time.Unix(int64(m.Date), 0),
			Text: m.Message,
		}

		if entities, ok := m.GetEntities(); ok {
			msg.Entities = entities
		}

		if from, ok := m.GetFromID(); ok {
			if peer, ok := from.(*tg.PeerUser); ok {
				if user, ok := ents.User(peer.UserID); ok {
					msg.From = ParseUser(user)
				}
			}
		}

		if fwd, ok := m.GetFwdFrom(); ok {
			origin, err := ParseMessageOrigin(&fwd, ents)
			if err != nil {
				return nil, err.Wrap(fmt.Sprintf("failed to parse message %d", m.ID))
			}

			msg.Origin = origin
		}

		return msg, nil

	case *tg.MessageService:
		return &Message{
			ID:   m.ID,
			Date: time.Unix(int64(m.Date), 0),
		}, nil

	case *tg.MessageEmpty:
		return &Message{
			ID:      m.ID,
			IsEmpty: true,
		}, nil

	default:
		return nil, yaerrors.FromError(
			http.StatusUnprocessableEntity,
			ErrUnknownVariant,
			fmt.Sprintf("failed to parse message: unexpected payload %T", raw),
		)
	}
}
