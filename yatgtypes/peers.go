package yatgtypes

import (
	"github.com/gotd/td/tg"
)

// User is the trimmed identity of a Telegram user as it appears inside
// parsed results. It deliberately carries only the fields the convenience
// layer needs; callers wanting the full raw record should keep the raw
// response around.
type User struct {
	ID        int64
	FirstName string
	LastName  string
	Username  string
	IsBot     bool
}

// ParseUser builds a User from its raw representation.
//
// Example usage:
//
//	user := yatgtypes.ParseUser(raw)
func ParseUser(raw *tg.User) *User {
	username, _ := raw.GetUsername()
	firstName, _ := raw.GetFirstName()
	lastName, _ := raw.GetLastName()

	return &User{
		ID:        raw.ID,
		FirstName: firstName,
		LastName:  lastName,
		Username:  username,
		IsBot:     raw.Bot,
	}
}

// Chat is the trimmed identity of a group, supergroup or channel.
type Chat struct {
	ID        int64
	Title     string
	Username  string
	IsChannel bool
}

// ParseChat builds a Chat from a basic-group raw record.
func ParseChat(raw *tg.Chat) *Chat {
	return &Chat{
		ID:    raw.ID,
		Title: raw.Title,
	}
}

// ParseChannel builds a Chat from a channel/supergroup raw record. Broadcast
// channels are flagged via IsChannel; supergroups behave like chats.
func ParseChannel(raw *tg.Channel) *Chat {
	username, _ := raw.GetUsername()

	return &Chat{
		ID:        raw.ID,
		Title:     raw.Title,
		Username:  username,
		IsChannel: raw.Broadcast,
	}
}
