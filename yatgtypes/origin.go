// Package yatgtypes holds the ergonomic domain types returned by the
// GoYaTgFluent method layer, together with the parse factories that build
// them from gotd's raw schema structures.
//
// Every type here is request-scoped: it is produced by a single Parse* call,
// never mutated afterwards and never cached. Factories that need to resolve
// references embedded in the raw payload (forward origins, link creators)
// receive an explicit Entities lookup context instead of reaching into any
// global state, which keeps parsing pure and testable in isolation.
package yatgtypes

import (
	"fmt"
	"net/http"
	"time"

	"github.com/YaCodeDev/GoYaCodeDevUtils/yaerrors"
	"github.com/gotd/td/tg"
)

// MessageOrigin describes where a forwarded message originally came from.
// The set of variants is closed: MessageOriginUser, MessageOriginChat,
// MessageOriginChannel, MessageOriginHiddenUser and MessageOriginImport.
// A raw forward header whose shape matches none of them is a schema-drift
// error, never a silent default.
type MessageOrigin interface {
	// OriginDate returns the point in time the original message was sent.
	OriginDate() time.Time

	isMessageOrigin()
}

// MessageOriginUser is a message originally sent by a known user.
type MessageOriginUser struct {
	Date   time.Time
	Sender *User
}

// MessageOriginHiddenUser is a message sent by a user who hides their
// identity; only the display name survives.
type MessageOriginHiddenUser struct {
	Date       time.Time
	SenderName string
}

// MessageOriginChat is a message originally sent on behalf of a group chat.
type MessageOriginChat struct {
	Date            time.Time
	SenderChat      *Chat
	AuthorSignature string
}

// MessageOriginChannel is a message originally posted to a channel.
type MessageOriginChannel struct {
	Date            time.Time
	Chat            *Chat
	MessageID       int
	AuthorSignature string
}

// MessageOriginImport is a message imported from a foreign chat history.
type MessageOriginImport struct {
	Date       time.Time
	SenderName string
}

func (o *MessageOriginUser) OriginDate() time.Time       { return o.Date }
func (o *MessageOriginHiddenUser) OriginDate() time.Time { return o.Date }
func (o *MessageOriginChat) OriginDate() time.Time       { return o.Date }
func (o *MessageOriginChannel) OriginDate() time.Time    { return o.Date }
func (o *MessageOriginImport) OriginDate() time.Time     { return o.Date }

func (*MessageOriginUser) isMessageOrigin()       {}
func (*MessageOriginHiddenUser) isMessageOrigin() {}
func (*MessageOriginChat) isMessageOrigin()       {}
func (*MessageOriginChannel) isMessageOrigin()    {}
func (*MessageOriginImport) isMessageOrigin()     {}

// ParseMessageOrigin dispatches a raw forward header to exactly one origin
// variant. The discriminant is the concrete shape of the header itself: the
// imported flag, a hidden-sender name, or the concrete tg.PeerClass behind
// FromID. Embedded user and channel references are resolved through ents.
//
// Example usage:
//
//	origin, err := yatgtypes.ParseMessageOrigin(&fwd, ents)
//	if err != nil {
//	    // Handle error
//	}
func ParseMessageOrigin(fwd *tg.MessageFwdHeader, ents Entities) (MessageOrigin, yaerrors.Error) {
	if fwd == nil {
		return nil, yaerrors.FromString(
			http.StatusBadRequest,
			"failed to parse message origin: forward header is nil",
		)
	}

	date := time.Unix(int64(fwd.Date), 0)

	if fwd.Imported {
		name, _ := fwd.GetFromName()
		if name == "" {
			name, _ = fwd.GetPostAuthor()
		}

		return &MessageOriginImport{
			Date:       date,
			SenderName: name,
		}, nil
	}

	from, hasFrom := fwd.GetFromID()
	if !hasFrom {
		if name, ok := fwd.GetFromName(); ok {
			return &MessageOriginHiddenUser{
				Date:       date,
				SenderName: name,
			}, nil
		}

		return nil, yaerrors.FromError(
			http.StatusUnprocessableEntity,
			ErrUnknownVariant,
			"failed to parse message origin: header carries neither sender nor name",
		)
	}

	switch peer := from.(type) {
	case *tg.PeerUser:
		user, ok := ents.User(peer.UserID)
		if !ok {
			return nil, yaerrors.FromError(
				http.StatusUnprocessableEntity,
				ErrMissingEntity,
				fmt.Sprintf("failed to parse message origin: user %d", peer.UserID),
			)
		}

		return &MessageOriginUser{
			Date:   date,
			Sender: ParseUser(user),
		}, nil

	case *tg.PeerChat:
		chat, ok := ents.Chat(peer.ChatID)
		if !ok {
			return nil, yaerrors.FromError(
				http.StatusUnprocessableEntity,
				ErrMissingEntity,
				fmt.Sprintf("failed to parse message origin: chat %d", peer.ChatID),
			)
		}

		signature, _ := fwd.GetPostAuthor()

		return &MessageOriginChat{
			Date:            date,
			SenderChat:      ParseChat(chat),
			AuthorSignature: signature,
		}, nil

	case *tg.PeerChannel:
		channel, ok := ents.Channel(peer.ChannelID)
		if !ok {
			return nil, yaerrors.FromError(
				http.StatusUnprocessableEntity,
				ErrMissingEntity,
				fmt.Sprintf("failed to parse message origin: channel %d", peer.ChannelID),
			)
		}

		signature, _ := fwd.GetPostAuthor()

		// A channel origin requires the original post ID; a channel acting
		// as a group sender is a chat origin.
		if post, ok := fwd.GetChannelPost(); ok {
			return &MessageOriginChannel{
				Date:            date,
				Chat:            ParseChannel(channel),
				MessageID:       post,
				AuthorSignature: signature,
			}, nil
		}

		return &MessageOriginChat{
			Date:            date,
			SenderChat:      ParseChannel(channel),
			AuthorSignature: signature,
		}, nil

	default:
		return nil, yaerrors.FromError(
			http.StatusUnprocessableEntity,
			ErrUnknownVariant,
			fmt.Sprintf("failed to parse message origin: unexpected peer %T", from),
		)
	}
}
