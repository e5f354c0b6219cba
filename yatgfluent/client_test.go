package yatgfluent_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/YaCodeDev/GoYaCodeDevUtils/yaerrors"
	"github.com/YaCodeDev/GoYaCodeDevUtils/yalogger"
	"github.com/YaCodeDev/GoYaTgFluent/yatgfluent"
	"github.com/YaCodeDev/GoYaTgFluent/yatgpeers"
	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgmock"
)

// staticResolver serves fixed peers so the method tests exercise only the
// request building and response parsing.
type staticResolver map[string]tg.InputPeerClass

func (r staticResolver) ResolvePeer(
	_ context.Context,
	ref yatgpeers.PeerRef,
) (tg.InputPeerClass, yaerrors.Error) {
	peer, ok := r[ref.String()]
	if !ok {
		return nil, yaerrors.FromError(
			http.StatusNotFound,
			yatgpeers.ErrPeerNotFound,
			ref.String(),
		)
	}

	return peer, nil
}

// verbatimEncoding leaves text untouched, keeping expected requests literal.
type verbatimEncoding struct{}

func (verbatimEncoding) Parse(text string) (string, []tg.MessageEntityClass) {
	return text, nil
}

func (verbatimEncoding) Unparse(text string, _ []tg.MessageEntityClass) string {
	return text
}

const (
	testUserID    = int64(111)
	testChatID    = int64(-222)
	testChannelID = int64(-1000000000333)
)

func testPeers() staticResolver {
	return staticResolver{
		"111":            &tg.InputPeerUser{UserID: 111, AccessHash: 555},
		"-222":           &tg.InputPeerChat{ChatID: 222},
		"-1000000000333": &tg.InputPeerChannel{ChannelID: 333, AccessHash: 777},
	}
}

func newTestClient(
	t *testing.T,
	mock *tgmock.Mock,
	options yatgfluent.ClientOptions,
) *yatgfluent.Client {
	t.Helper()

	if options.Encoding == nil {
		options.Encoding = verbatimEncoding{}
	}

	log := yalogger.NewBaseLogger(nil).NewLogger()

	return yatgfluent.NewClient(mock, testPeers(), options, log)
}
