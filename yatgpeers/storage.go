package yatgpeers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/YaCodeDev/GoYaCodeDevUtils/yacache"
	"github.com/YaCodeDev/GoYaCodeDevUtils/yaerrors"
	"github.com/YaCodeDev/GoYaCodeDevUtils/yalogger"
	"github.com/gotd/td/tg"
	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	userAccessHashKey    = "fluent-user-access-hash"
	channelAccessHashKey = "fluent-channel-access-hash"
	usernamePeerKey      = "fluent-username-peer"

	// usernameTTL bounds how long a username→peer mapping is trusted;
	// usernames can be transferred, access hashes cannot.
	usernameTTL = 24 * time.Hour

	// Structured-logging keys.
	LoggerUserID    = "user_id"
	LoggerChannelID = "channel_id"
	LoggerUsername  = "username"
)

// PeerKind discriminates cached username records.
type PeerKind uint8

const (
	PeerKindUser PeerKind = iota
	PeerKindChat
	PeerKindChannel
)

// PeerRecord is the cached resolution of a username: which kind of peer it
// is, its raw ID and, for users and channels, the access hash. Stored as
// msgpack in a Redis hash.
type PeerRecord struct {
	Kind       PeerKind `msgpack:"k"`
	ID         int64    `msgpack:"i"`
	AccessHash int64    `msgpack:"h"`
}

// InputPeer converts the record into the raw handle.
func (r PeerRecord) InputPeer() tg.InputPeerClass {
	switch r.Kind {
	case PeerKindChat:
		return &tg.InputPeerChat{ChatID: r.ID}
	case PeerKindChannel:
		return &tg.InputPeerChannel{ChannelID: r.ID, AccessHash: r.AccessHash}
	default:
		return &tg.InputPeerUser{UserID: r.ID, AccessHash: r.AccessHash}
	}
}

// Storage is the Redis-backed access-hash and username bookkeeping used by
// the resolver. Safe for concurrent use; it only relies on Redis.
//
// Example:
//
//	store := yatgpeers.NewStorage(yacache.NewRedis(client), log)
//	if err := store.Ping(ctx); err != nil {
//	    log.Fatalf("redis down: %v", err)
//	}
type Storage struct {
	cache yacache.Cache[*redis.Client]
	log   yalogger.Logger
}

// NewStorage wires the cache backend and returns a ready-to-use *Storage.
func NewStorage(cache yacache.Cache[*redis.Client], log yalogger.Logger) *Storage {
	return &Storage{
		cache: cache,
		log:   log,
	}
}

// Ping checks that the cache backend is operational.
func (s *Storage) Ping(ctx context.Context) yaerrors.Error {
	return s.cache.Ping(ctx)
}

// SetUserAccessHash persists a user access hash.
//
// Example:
//
//	_ = store.SetUserAccessHash(ctx, 12345, 67890)
func (s *Storage) SetUserAccessHash(
	ctx context.Context,
	userID int64,
	accessHash int64,
) yaerrors.Error {
	return s.setHash(ctx, userAccessHashKey, userID, accessHash, LoggerUserID)
}

// GetUserAccessHash retrieves a user access hash; found==false means the
// user has never been seen.
func (s *Storage) GetUserAccessHash(
	ctx context.Context,
	userID int64,
) (int64, bool, yaerrors.Error) {
	return s.getHash(ctx, userAccessHashKey, userID, LoggerUserID)
}

// SetChannelAccessHash persists a channel access hash.
func (s *Storage) SetChannelAccessHash(
	ctx context.Context,
	channelID int64,
	accessHash int64,
) yaerrors.Error {
	return s.setHash(ctx, channelAccessHashKey, channelID, accessHash, LoggerChannelID)
}

// GetChannelAccessHash retrieves a channel access hash.
func (s *Storage) GetChannelAccessHash(
	ctx context.Context,
	channelID int64,
) (int64, bool, yaerrors.Error) {
	return s.getHash(ctx, channelAccessHashKey, channelID, LoggerChannelID)
}

// SetUsernamePeer caches a username resolution with TTL.
//
// Example:
//
//	_ = store.SetUsernamePeer(ctx, "yacodedev", record)
func (s *Storage) SetUsernamePeer(
	ctx context.Context,
	username string,
	record PeerRecord,
) yaerrors.Error {
	log := s.log.WithField(LoggerUsername, username)

	data, err := msgpack.Marshal(record)
	if err != nil {
		return yaerrors.FromErrorWithLog(
			http.StatusInternalServerError,
			err,
			"failed to encode username peer record",
			log,
		)
	}

	if err := s.cache.Raw().HSet(ctx, usernamePeerKey, username, string(data)).Err(); err != nil {
		return yaerrors.FromErrorWithLog(
			http.StatusInternalServerError,
			err,
			"failed to save username peer record",
			log,
		)
	}

	// The TTL lives on the whole bucket and is refreshed on every write, so
	// no record outlives usernameTTL since the last resolution.
	if err := s.cache.Raw().Expire(ctx, usernamePeerKey, usernameTTL).Err(); err != nil {
		return yaerrors.FromErrorWithLog(
			http.StatusInternalServerError,
			err,
			"failed to set username record ttl",
			log,
		)
	}

	log.Debug("Saved username peer record")

	return nil
}

// GetUsernamePeer fetches a cached username resolution.
func (s *Storage) GetUsernamePeer(
	ctx context.Context,
	username string,
) (PeerRecord, bool, yaerrors.Error) {
	log := s.log.WithField(LoggerUsername, username)

	data, err := s.cache.Raw().HGet(ctx, usernamePeerKey, username).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return PeerRecord{}, false, nil
		}

		return PeerRecord{}, false, yaerrors.FromErrorWithLog(
			http.StatusInternalServerError,
			err,
			"failed to fetch username peer record",
			log,
		)
	}

	var record PeerRecord
	if err := msgpack.Unmarshal([]byte(data), &record); err != nil {
		return PeerRecord{}, false, yaerrors.FromErrorWithLog(
			http.StatusInternalServerError,
			err,
			"failed to decode username peer record",
			log,
		)
	}

	log.Debug("Fetched username peer record")

	return record, true, nil
}

// CollectAccessHashes harvests user and channel access hashes plus public
// usernames from a raw entity table pair. Wire it behind your update handler
// so that every passing update keeps the resolver warm.
//
// Example:
//
//	store.CollectAccessHashes(ctx, updates.Users, updates.Chats)
func (s *Storage) CollectAccessHashes(
	ctx context.Context,
	users []tg.UserClass,
	chats []tg.ChatClass,
) {
	for _, raw := range users {
		user, ok := raw.AsNotEmpty()
		if !ok {
			continue
		}

		hash, ok := user.GetAccessHash()
		if !ok {
			continue
		}

		if err := s.SetUserAccessHash(ctx, user.ID, hash); err != nil {
			s.log.Errorf("Failed to save user(%d) access hash: %v", user.ID, err)

			continue
		}

		if username, ok := user.GetUsername(); ok {
			record := PeerRecord{Kind: PeerKindUser, ID: user.ID, AccessHash: hash}
			if err := s.SetUsernamePeer(ctx, strings.ToLower(username), record); err != nil {
				s.log.Errorf("Failed to save user(%d) username: %v", user.ID, err)
			}
		}
	}

	for _, raw := range chats {
		channel, ok := raw.(*tg.Channel)
		if !ok {
			continue
		}

		hash, ok := channel.GetAccessHash()
		if !ok {
			continue
		}

		if err := s.SetChannelAccessHash(ctx, channel.ID, hash); err != nil {
			s.log.Errorf("Failed to save channel(%d) access hash: %v", channel.ID, err)

			continue
		}

		if username, ok := channel.GetUsername(); ok {
			record := PeerRecord{Kind: PeerKindChannel, ID: channel.ID, AccessHash: hash}
			if err := s.SetUsernamePeer(ctx, strings.ToLower(username), record); err != nil {
				s.log.Errorf("Failed to save channel(%d) username: %v", channel.ID, err)
			}
		}
	}
}

// setHash stores one ID→hash pair in the named HSET bucket.
func (s *Storage) setHash(
	ctx context.Context,
	key string,
	id int64,
	accessHash int64,
	loggerKey string,
) yaerrors.Error {
	log := s.log.WithField(loggerKey, id)

	if err := s.cache.Raw().
		HSet(ctx, key, strconv.FormatInt(id, 10), accessHash).Err(); err != nil {
		return yaerrors.FromErrorWithLog(
			http.StatusInternalServerError,
			err,
			"failed to save access hash",
			log,
		)
	}

	log.Debug("Saved access hash")

	return nil
}

// getHash fetches one ID→hash pair; a missing field is not an error.
func (s *Storage) getHash(
	ctx context.Context,
	key string,
	id int64,
	loggerKey string,
) (int64, bool, yaerrors.Error) {
	log := s.log.WithField(loggerKey, id)

	data, err := s.cache.Raw().HGet(ctx, key, strconv.FormatInt(id, 10)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}

		return 0, false, yaerrors.FromErrorWithLog(
			http.StatusInternalServerError,
			err,
			"failed to fetch access hash",
			log,
		)
	}

	hash, err := strconv.ParseInt(data, 10, 64)
	if err != nil {
		return 0, false, yaerrors.FromErrorWithLog(
			http.StatusInternalServerError,
			errors.Join(err, ErrFailedToParseAccessHash),
			"failed to parse access hash",
			log,
		)
	}

	return hash, true, nil
}
