package yatgfluent

import (
	"context"
	"errors"
	"net/http"

	"github.com/YaCodeDev/GoYaCodeDevUtils/yaerrors"
	"github.com/YaCodeDev/GoYaCodeDevUtils/yalogger"
	"github.com/YaCodeDev/GoYaTgFluent/yatgpeers"
	"github.com/gotd/contrib/bg"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/tgerr"
)

// Session owns the lifecycle of the underlying MTProto connection and hands
// out fluent clients bound to it. One session serves any number of clients.
type Session struct {
	tg  *telegram.Client
	log yalogger.Logger
}

// SessionOptions configures the MTProto connection of a Session.
type SessionOptions struct {
	AppID           int
	AppHash         string
	TelegramOptions telegram.Options
}

// NewSession builds a disconnected session; call BackgroundConnect to dial.
//
// Example:
//
//	session := yatgfluent.NewSession(yatgfluent.SessionOptions{
//	    AppID: 12345, AppHash: "abcd",
//	}, log)
func NewSession(options SessionOptions, log yalogger.Logger) *Session {
	return &Session{
		tg:  telegram.NewClient(options.AppID, options.AppHash, options.TelegramOptions),
		log: log,
	}
}

// BackgroundConnect dials Telegram in a goroutine and disconnects
// automatically when ctx is cancelled.
//
// Example:
//
//	if err := session.BackgroundConnect(ctx); err != nil {
//	    // Handle error
//	}
func (s *Session) BackgroundConnect(ctx context.Context) yaerrors.Error {
	stop, err := bg.Connect(s.tg, bg.WithContext(ctx))
	if err != nil {
		return yaerrors.FromErrorWithLog(
			http.StatusInternalServerError,
			err,
			"failed to connect session",
			s.log,
		)
	}

	go func() {
		<-ctx.Done()

		if err := stop(); err != nil {
			s.log.Errorf("Failed to stop telegram connection: %v", err)
		}
	}()

	return nil
}

// AuthorizeBot ensures the session is authorized with the given bot token.
// Already-authorized sessions are left untouched.
func (s *Session) AuthorizeBot(ctx context.Context, botToken string) yaerrors.Error {
	status, err := s.tg.Auth().Status(ctx)
	if err != nil {
		return yaerrors.FromErrorWithLog(
			http.StatusInternalServerError,
			err,
			"failed to check authorization status",
			s.log,
		)
	}

	if status.Authorized {
		return nil
	}

	if _, err := s.tg.Auth().Bot(ctx, botToken); err != nil {
		rpcErr := &tgerr.Error{}
		if errors.As(err, &rpcErr) {
			s.log.Errorf("Bot authorization rejected: %s", rpcErr.Error())
		}

		return yaerrors.FromErrorWithLog(
			http.StatusInternalServerError,
			err,
			"failed to authorize bot",
			s.log,
		)
	}

	return nil
}

// Client binds a fluent client to the session's connection.
//
// Example:
//
//	fluent := session.Client(resolver, yatgfluent.ClientOptions{})
func (s *Session) Client(peers yatgpeers.Resolver, options ClientOptions) *Client {
	return NewClient(s.tg, peers, options, s.log)
}

// Raw exposes the underlying gotd client for concerns outside the fluent
// surface (update handling, file transfers).
func (s *Session) Raw() *telegram.Client {
	return s.tg
}
