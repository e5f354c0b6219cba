package yatgfluent_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/YaCodeDev/GoYaTgFluent/yatgfluent"
	"github.com/YaCodeDev/GoYaTgFluent/yatgpeers"
	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgerr"
	"github.com/gotd/td/tgmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLink = "https://t.me/+abcdef"

func exportedInvite(configure func(*tg.ChatInviteExported)) *tg.ChatInviteExported {
	invite := &tg.ChatInviteExported{
		Link:    testLink,
		AdminID: 111,
		Date:    1700000000,
	}

	if configure != nil {
		configure(invite)
	}

	return invite
}

func creatorTable() []tg.UserClass {
	creator := &tg.User{ID: 111}
	creator.SetFirstName("Ya")
	creator.SetUsername("yacodder")

	return []tg.UserClass{creator}
}

func TestEditChatInviteLink(t *testing.T) {
	ctx := context.Background()

	t.Run("Zero member limit sets the flag instead of omitting it", func(t *testing.T) {
		mock := tgmock.New(t)

		expected := &tg.MessagesEditExportedChatInviteRequest{
			Peer: &tg.InputPeerChat{ChatID: 222},
			Link: testLink,
		}
		expected.SetUsageLimit(0)

		mock.ExpectCall(expected).ThenResult(&tg.MessagesExportedChatInvite{
			Invite: exportedInvite(func(invite *tg.ChatInviteExported) {
				invite.SetUsageLimit(0)
			}),
			Users: creatorTable(),
		})

		fluent := newTestClient(t, mock, yatgfluent.ClientOptions{})

		noLimit := 0
		link, err := fluent.EditChatInviteLink(
			ctx,
			yatgpeers.ID(testChatID),
			testLink,
			yatgfluent.InviteLinkOptions{MemberLimit: &noLimit},
		)

		require.Nil(t, err)
		assert.Equal(t, testLink, link.Link)
		assert.Equal(t, 0, link.UsageLimit)

		require.NotNil(t, link.Creator)
		assert.Equal(t, "Ya", link.Creator.FirstName)
		assert.Equal(t, "yacodder", link.Creator.Username)
	})

	t.Run("Empty options leave every flag unset", func(t *testing.T) {
		mock := tgmock.New(t)

		mock.ExpectCall(&tg.MessagesEditExportedChatInviteRequest{
			Peer: &tg.InputPeerChat{ChatID: 222},
			Link: testLink,
		}).ThenResult(&tg.MessagesExportedChatInvite{
			Invite: exportedInvite(nil),
			Users:  creatorTable(),
		})

		fluent := newTestClient(t, mock, yatgfluent.ClientOptions{})

		link, err := fluent.EditChatInviteLink(
			ctx,
			yatgpeers.ID(testChatID),
			testLink,
			yatgfluent.InviteLinkOptions{},
		)

		require.Nil(t, err)
		assert.True(t, link.ExpireDate.IsZero())
		assert.Equal(t, 0, link.UsageLimit)
	})

	t.Run("Zero expire time goes out as no expiration", func(t *testing.T) {
		mock := tgmock.New(t)

		expected := &tg.MessagesEditExportedChatInviteRequest{
			Peer: &tg.InputPeerChat{ChatID: 222},
			Link: testLink,
		}
		expected.SetExpireDate(0)

		mock.ExpectCall(expected).ThenResult(&tg.MessagesExportedChatInvite{
			Invite: exportedInvite(func(invite *tg.ChatInviteExported) {
				invite.SetExpireDate(0)
			}),
			Users: creatorTable(),
		})

		fluent := newTestClient(t, mock, yatgfluent.ClientOptions{})

		forever := time.Time{}
		link, err := fluent.EditChatInviteLink(
			ctx,
			yatgpeers.ID(testChatID),
			testLink,
			yatgfluent.InviteLinkOptions{ExpireDate: &forever},
		)

		require.Nil(t, err)
		assert.True(t, link.ExpireDate.IsZero())
	})

	t.Run("Set values are forwarded verbatim", func(t *testing.T) {
		mock := tgmock.New(t)

		expire := time.Unix(1800000000, 0)

		expected := &tg.MessagesEditExportedChatInviteRequest{
			Peer: &tg.InputPeerChat{ChatID: 222},
			Link: testLink,
		}
		expected.SetTitle("VIP")
		expected.SetExpireDate(1800000000)
		expected.SetUsageLimit(7)
		expected.SetRequestNeeded(true)

		mock.ExpectCall(expected).ThenResult(&tg.MessagesExportedChatInvite{
			Invite: exportedInvite(func(invite *tg.ChatInviteExported) {
				invite.RequestNeeded = true
				invite.SetTitle("VIP")
				invite.SetExpireDate(1800000000)
				invite.SetUsageLimit(7)
			}),
			Users: creatorTable(),
		})

		fluent := newTestClient(t, mock, yatgfluent.ClientOptions{})

		name := "VIP"
		limit := 7
		requests := true

		link, err := fluent.EditChatInviteLink(
			ctx,
			yatgpeers.ID(testChatID),
			testLink,
			yatgfluent.InviteLinkOptions{
				Name:               &name,
				ExpireDate:         &expire,
				MemberLimit:        &limit,
				CreatesJoinRequest: &requests,
			},
		)

		require.Nil(t, err)
		assert.Equal(t, "VIP", link.Name)
		assert.Equal(t, expire, link.ExpireDate)
		assert.Equal(t, 7, link.UsageLimit)
		assert.True(t, link.CreatesJoinRequest)
	})

	t.Run("RPC failure surfaces as transport error", func(t *testing.T) {
		mock := tgmock.New(t)

		mock.ExpectCall(&tg.MessagesEditExportedChatInviteRequest{
			Peer: &tg.InputPeerChat{ChatID: 222},
			Link: testLink,
		}).ThenRPCErr(&tgerr.Error{Code: 400, Type: "INVITE_HASH_EXPIRED"})

		fluent := newTestClient(t, mock, yatgfluent.ClientOptions{})

		_, err := fluent.EditChatInviteLink(
			ctx,
			yatgpeers.ID(testChatID),
			testLink,
			yatgfluent.InviteLinkOptions{},
		)

		require.NotNil(t, err)
		assert.Equal(t, http.StatusInternalServerError, err.Code())
	})

	t.Run("Unknown peer fails before any RPC", func(t *testing.T) {
		fluent := newTestClient(t, tgmock.New(t), yatgfluent.ClientOptions{})

		_, err := fluent.EditChatInviteLink(
			ctx,
			yatgpeers.ID(999),
			testLink,
			yatgfluent.InviteLinkOptions{},
		)

		require.NotNil(t, err)
		assert.ErrorIs(t, err.Unwrap(), yatgpeers.ErrPeerNotFound)
	})
}

func TestRevokeChatInviteLink(t *testing.T) {
	ctx := context.Background()
	mock := tgmock.New(t)

	expected := &tg.MessagesEditExportedChatInviteRequest{
		Peer: &tg.InputPeerChat{ChatID: 222},
		Link: testLink,
	}
	expected.SetRevoked(true)

	// Revoking a primary link makes Telegram answer with the replaced
	// variant; the revoked link is still the one handed back.
	mock.ExpectCall(expected).ThenResult(&tg.MessagesExportedChatInviteReplaced{
		Invite: exportedInvite(func(invite *tg.ChatInviteExported) {
			invite.Revoked = true
		}),
		NewInvite: exportedInvite(func(invite *tg.ChatInviteExported) {
			invite.Link = "https://t.me/+freshlink"
			invite.Permanent = true
		}),
		Users: creatorTable(),
	})

	fluent := newTestClient(t, mock, yatgfluent.ClientOptions{})

	link, err := fluent.RevokeChatInviteLink(ctx, yatgpeers.ID(testChatID), testLink)

	require.Nil(t, err)
	assert.Equal(t, testLink, link.Link)
	assert.True(t, link.IsRevoked)
}

func TestCreateChatInviteLink(t *testing.T) {
	ctx := context.Background()
	mock := tgmock.New(t)

	expected := &tg.MessagesExportChatInviteRequest{
		Peer: &tg.InputPeerChannel{ChannelID: 333, AccessHash: 777},
	}
	expected.SetTitle("Launch")
	expected.SetUsageLimit(5)

	mock.ExpectCall(expected).ThenResult(exportedInvite(func(invite *tg.ChatInviteExported) {
		invite.SetTitle("Launch")
		invite.SetUsageLimit(5)
	}))

	fluent := newTestClient(t, mock, yatgfluent.ClientOptions{})

	name := "Launch"
	limit := 5

	link, err := fluent.CreateChatInviteLink(
		ctx,
		yatgpeers.ID(testChannelID),
		yatgfluent.InviteLinkOptions{Name: &name, MemberLimit: &limit},
	)

	require.Nil(t, err)
	assert.Equal(t, "Launch", link.Name)
	assert.Equal(t, 5, link.UsageLimit)
	assert.Nil(t, link.Creator)
}

func TestDeleteChatInviteLink(t *testing.T) {
	ctx := context.Background()
	mock := tgmock.New(t)

	mock.ExpectCall(&tg.MessagesDeleteExportedChatInviteRequest{
		Peer: &tg.InputPeerChat{ChatID: 222},
		Link: testLink,
	}).ThenTrue()

	fluent := newTestClient(t, mock, yatgfluent.ClientOptions{})

	require.Nil(t, fluent.DeleteChatInviteLink(ctx, yatgpeers.ID(testChatID), testLink))
}
