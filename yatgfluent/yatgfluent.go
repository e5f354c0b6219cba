// Package yatgfluent is the high-level convenience layer over a gotd raw
// Telegram client: every method resolves a logical peer reference, builds
// exactly one raw request, invokes it once through the supplied tg.Invoker
// and parses the raw response into the typed results of yatgtypes.
//
// The layer is stateless between calls: no caching, no retries, no batching.
// Transport concerns (timeouts, reconnects, flood-wait handling) belong to
// the invoker; failures of any kind propagate to the caller unchanged.
package yatgfluent

import (
	"math/rand"

	"github.com/YaCodeDev/GoYaCodeDevUtils/yalogger"
	"github.com/YaCodeDev/GoYaCodeDevUtils/yatgmessageencoding"
	"github.com/YaCodeDev/GoYaTgFluent/yatgpeers"
	"github.com/gotd/td/tg"
)

// Client exposes the fluent method surface. Construct with NewClient; the
// zero value is not usable.
type Client struct {
	raw      *tg.Client
	peers    yatgpeers.Resolver
	encoding yatgmessageencoding.MessageEncoding
	log      yalogger.Logger
	randID   func() int64
}

// ClientOptions tunes optional collaborators of the Client.
type ClientOptions struct {
	// Encoding parses free-form text into Telegram entities. Defaults to
	// the markdown encoding.
	Encoding yatgmessageencoding.MessageEncoding

	// RandomID supplies the random identifiers some raw calls require.
	// The wire encodes them as 32 bits, so the default stays in int32
	// range; tests inject a deterministic source.
	RandomID func() int64
}

// NewClient wires the raw invoker (a connected telegram client in
// production, a mock in tests), the peer resolver and the logger.
//
// Example:
//
//	fluent := yatgfluent.NewClient(client, resolver, yatgfluent.ClientOptions{}, log)
//	link, err := fluent.EditChatInviteLink(ctx, yatgpeers.ID(chatID), link, opts)
func NewClient(
	invoker tg.Invoker,
	peers yatgpeers.Resolver,
	options ClientOptions,
	log yalogger.Logger,
) *Client {
	if options.Encoding == nil {
		options.Encoding = yatgmessageencoding.NewMarkdownEncoding()
	}

	if options.RandomID == nil {
		options.RandomID = defaultRandomID
	}

	return &Client{
		raw:      tg.NewClient(invoker),
		peers:    peers,
		encoding: options.Encoding,
		log:      log,
		randID:   options.RandomID,
	}
}

// defaultRandomID keeps the salt inside int32 range: random_id fields are
// 32-bit on the wire and wider values would be silently truncated.
func defaultRandomID() int64 {
	return int64(rand.Int31())
}

// Results mirrors the cardinality of a raw response that may carry one or
// many items: exactly one item in the response collapses to Single, any
// other count is exposed as an ordered List. The collapse is keyed on the
// RESPONSE length, not on how many identifiers the caller passed — a
// compatibility contract callers rely on, kept as-is on purpose.
type Results[T any] struct {
	items []T
}

func resultsOf[T any](items []T) Results[T] {
	return Results[T]{items: items}
}

// Single returns the sole item and true when the response carried exactly
// one result.
func (r Results[T]) Single() (T, bool) {
	if len(r.items) == 1 {
		return r.items[0], true
	}

	var zero T

	return zero, false
}

// List returns all items in raw response order.
func (r Results[T]) List() []T {
	return r.items
}

// Len reports the number of items.
func (r Results[T]) Len() int {
	return len(r.items)
}
