// Package yatgpeers resolves logical chat/user references (numeric IDs in the
// bot-API convention or @usernames) into the protocol-level tg.InputPeerClass
// handles raw Telegram calls require.
//
// Access hashes and username lookups are cached in Redis via yacache so that
// resolution normally costs no network round-trip; a username miss falls back
// to a single contacts.resolveUsername RPC and the result is cached with TTL.
package yatgpeers

import (
	"context"
	"strconv"
	"strings"

	"github.com/YaCodeDev/GoYaCodeDevUtils/yaerrors"
	"github.com/gotd/td/tg"
)

// Resolver maps a PeerRef to an input peer. Implementations must resolve
// synchronously, exactly once per call, and surface resolution failures
// unchanged to the caller.
type Resolver interface {
	ResolvePeer(ctx context.Context, ref PeerRef) (tg.InputPeerClass, yaerrors.Error)
}

// channelIDOffset is the bot-API marker for channel IDs: a channel with raw
// ID 123 is addressed as -1000000000123 by callers.
const channelIDOffset = 1000000000000

// PeerRef is a caller-supplied logical reference to a user, group or channel.
// Build one with ID or Username; the zero value is invalid.
type PeerRef struct {
	id       int64
	username string
}

// ID references a peer by its bot-API style numeric identifier: positive for
// users, negative for basic groups, -100-prefixed for channels.
//
// Example usage:
//
//	ref := yatgpeers.ID(-1001234567890)
func ID(id int64) PeerRef {
	return PeerRef{id: id}
}

// Username references a peer by its public @username. The leading @ and
// letter case are ignored.
//
// Example usage:
//
//	ref := yatgpeers.Username("@yacodedev")
func Username(username string) PeerRef {
	return PeerRef{
		username: strings.ToLower(strings.TrimPrefix(strings.TrimSpace(username), "@")),
	}
}

// IsUsername reports whether the reference is a username lookup.
func (r PeerRef) IsUsername() bool {
	return r.username != ""
}

// UsernameValue returns the normalized username, empty for ID references.
func (r PeerRef) UsernameValue() string {
	return r.username
}

// IDValue returns the numeric identifier, zero for username references.
func (r PeerRef) IDValue() int64 {
	return r.id
}

// String renders the reference for logs and error messages.
func (r PeerRef) String() string {
	if r.IsUsername() {
		return "@" + r.username
	}

	return strconv.FormatInt(r.id, 10)
}
