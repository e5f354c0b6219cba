package yatgtypes

import (
	"github.com/gotd/td/tg"
)

// Entities is an explicit lookup context built from the auxiliary user/chat
// tables that Telegram embeds into raw responses. Parse factories receive it
// alongside the raw payload so that nested references (forward origins, link
// creators, etc.) can be resolved without any global state.
//
// The zero value is usable and simply resolves nothing.
type Entities struct {
	Users    map[int64]*tg.User
	Chats    map[int64]*tg.Chat
	Channels map[int64]*tg.Channel
}

// NewEntities returns an empty, ready-to-fill Entities table.
func NewEntities() Entities {
	return Entities{
		Users:    make(map[int64]*tg.User),
		Chats:    make(map[int64]*tg.Chat),
		Channels: make(map[int64]*tg.Channel),
	}
}

// EntitiesFromUsers indexes a raw user table by ID, skipping empty entries.
//
// Example usage:
//
//	ents := yatgtypes.EntitiesFromUsers(response.Users)
func EntitiesFromUsers(users []tg.UserClass) Entities {
	ents := NewEntities()
	ents.CollectUsers(users)

	return ents
}

// EntitiesFromResponse indexes both user and chat tables of a raw response.
//
// Example usage:
//
//	ents := yatgtypes.EntitiesFromResponse(messages.Users, messages.Chats)
func EntitiesFromResponse(users []tg.UserClass, chats []tg.ChatClass) Entities {
	ents := NewEntities()
	ents.CollectUsers(users)
	ents.CollectChats(chats)

	return ents
}

// EntitiesFromUpdates indexes the entity tables carried by an updates
// envelope. Envelopes without tables (short updates) yield an empty context.
func EntitiesFromUpdates(updates tg.UpdatesClass) Entities {
	ents := NewEntities()

	switch u := updates.(type) {
	case *tg.Updates:
		ents.CollectUsers(u.Users)
		ents.CollectChats(u.Chats)
	case *tg.UpdatesCombined:
		ents.CollectUsers(u.Users)
		ents.CollectChats(u.Chats)
	}

	return ents
}

// CollectUsers merges a raw user table into the context.
func (e *Entities) CollectUsers(users []tg.UserClass) {
	if e.Users == nil {
		e.Users = make(map[int64]*tg.User, len(users))
	}

	for _, user := range users {
		if full, ok := user.AsNotEmpty(); ok {
			e.Users[full.ID] = full
		}
	}
}

// CollectChats merges a raw chat table into the context, splitting basic
// groups and channels into their own buckets the way tg.Entities does.
func (e *Entities) CollectChats(chats []tg.ChatClass) {
	if e.Chats == nil {
		e.Chats = make(map[int64]*tg.Chat, len(chats))
	}

	if e.Channels == nil {
		e.Channels = make(map[int64]*tg.Channel, len(chats))
	}

	for _, chat := range chats {
		switch c := chat.(type) {
		case *tg.Chat:
			e.Chats[c.ID] = c
		case *tg.Channel:
			e.Channels[c.ID] = c
		}
	}
}

// User resolves a user reference from the table.
func (e Entities) User(id int64) (*tg.User, bool) {
	user, ok := e.Users[id]

	return user, ok
}

// Chat resolves a basic-group reference from the table.
func (e Entities) Chat(id int64) (*tg.Chat, bool) {
	chat, ok := e.Chats[id]

	return chat, ok
}

// Channel resolves a channel/supergroup reference from the table.
func (e Entities) Channel(id int64) (*tg.Channel, bool) {
	channel, ok := e.Channels[id]

	return channel, ok
}
