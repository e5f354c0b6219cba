package yatgpeers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/YaCodeDev/GoYaCodeDevUtils/yaerrors"
	"github.com/YaCodeDev/GoYaCodeDevUtils/yalogger"
	"github.com/gotd/td/tg"
)

// CachedResolver resolves PeerRefs against the access-hash storage, falling
// back to a single contacts.resolveUsername RPC for unknown usernames. It
// keeps no per-call state and is safe for concurrent use.
//
// Example:
//
//	resolver := yatgpeers.NewResolver(client, store, log)
//	peer, err := resolver.ResolvePeer(ctx, yatgpeers.Username("@yacodedev"))
type CachedResolver struct {
	raw   *tg.Client
	store *Storage
	log   yalogger.Logger
}

// NewResolver builds a CachedResolver on top of any raw invoker (a connected
// telegram client in production, a mock in tests).
func NewResolver(invoker tg.Invoker, store *Storage, log yalogger.Logger) *CachedResolver {
	return &CachedResolver{
		raw:   tg.NewClient(invoker),
		store: store,
		log:   log,
	}
}

// ResolvePeer maps the reference to a protocol-level input peer.
func (r *CachedResolver) ResolvePeer(
	ctx context.Context,
	ref PeerRef,
) (tg.InputPeerClass, yaerrors.Error) {
	if ref.IsUsername() {
		return r.resolveUsername(ctx, ref.UsernameValue())
	}

	return r.resolveID(ctx, ref.IDValue())
}

// resolveID classifies a bot-API style numeric ID and attaches the cached
// access hash where the peer kind requires one.
func (r *CachedResolver) resolveID(
	ctx context.Context,
	id int64,
) (tg.InputPeerClass, yaerrors.Error) {
	switch {
	case id == 0:
		return nil, yaerrors.FromError(
			http.StatusBadRequest,
			ErrInvalidPeerRef,
			"failed to resolve peer: zero id",
		)

	case id > 0:
		hash, found, err := r.store.GetUserAccessHash(ctx, id)
		if err != nil {
			return nil, err.Wrap("failed to resolve user peer")
		}

		if !found {
			return nil, yaerrors.FromError(
				http.StatusNotFound,
				ErrPeerNotFound,
				fmt.Sprintf("failed to resolve peer: unknown user %d", id),
			)
		}

		return &tg.InputPeerUser{UserID: id, AccessHash: hash}, nil

	case id < -channelIDOffset:
		channelID := -id - channelIDOffset

		hash, found, err := r.store.GetChannelAccessHash(ctx, channelID)
		if err != nil {
			return nil, err.Wrap("failed to resolve channel peer")
		}

		if !found {
			return nil, yaerrors.FromError(
				http.StatusNotFound,
				ErrPeerNotFound,
				fmt.Sprintf("failed to resolve peer: unknown channel %d", channelID),
			)
		}

		return &tg.InputPeerChannel{ChannelID: channelID, AccessHash: hash}, nil

	default:
		// Basic groups carry no access hash.
		return &tg.InputPeerChat{ChatID: -id}, nil
	}
}

// resolveUsername serves the reference from the cache and issues at most one
// contacts.resolveUsername round-trip on a miss.
func (r *CachedResolver) resolveUsername(
	ctx context.Context,
	username string,
) (tg.InputPeerClass, yaerrors.Error) {
	record, found, yaErr := r.store.GetUsernamePeer(ctx, username)
	if yaErr != nil {
		return nil, yaErr.Wrap("failed to resolve username peer")
	}

	if found {
		return record.InputPeer(), nil
	}

	resolved, err := r.raw.ContactsResolveUsername(ctx, &tg.ContactsResolveUsernameRequest{
		Username: username,
	})
	if err != nil {
		return nil, yaerrors.FromErrorWithLog(
			http.StatusInternalServerError,
			err,
			fmt.Sprintf("failed to resolve username @%s", username),
			r.log,
		)
	}

	r.store.CollectAccessHashes(ctx, resolved.Users, resolved.Chats)

	record, ok := recordFromResolved(resolved)
	if !ok {
		return nil, yaerrors.FromError(
			http.StatusNotFound,
			ErrPeerNotFound,
			fmt.Sprintf("failed to resolve username @%s: empty result", username),
		)
	}

	if err := r.store.SetUsernamePeer(ctx, username, record); err != nil {
		r.log.Errorf("Failed to cache username @%s: %v", username, err)
	}

	return record.InputPeer(), nil
}

// recordFromResolved matches the peer tag of the response against its entity
// tables to extract the access hash.
func recordFromResolved(resolved *tg.ContactsResolvedPeer) (PeerRecord, bool) {
	switch peer := resolved.Peer.(type) {
	case *tg.PeerUser:
		for _, raw := range resolved.Users {
			user, ok := raw.AsNotEmpty()
			if !ok || user.ID != peer.UserID {
				continue
			}

			hash, _ := user.GetAccessHash()

			return PeerRecord{Kind: PeerKindUser, ID: user.ID, AccessHash: hash}, true
		}

	case *tg.PeerChat:
		return PeerRecord{Kind: PeerKindChat, ID: peer.ChatID}, true

	case *tg.PeerChannel:
		for _, raw := range resolved.Chats {
			channel, ok := raw.(*tg.Channel)
			if !ok || channel.ID != peer.ChannelID {
				continue
			}

			hash, _ := channel.GetAccessHash()

			return PeerRecord{Kind: PeerKindChannel, ID: channel.ID, AccessHash: hash}, true
		}
	}

	return PeerRecord{}, false
}
