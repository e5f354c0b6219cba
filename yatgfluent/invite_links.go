package yatgfluent

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/YaCodeDev/GoYaCodeDevUtils/yaerrors"
	"github.com/YaCodeDev/GoYaTgFluent/yatgpeers"
	"github.com/YaCodeDev/GoYaTgFluent/yatgtypes"
	"github.com/google/uuid"
	"github.com/gotd/td/tg"
)

// InviteLinkOptions carries the optional attributes of an invite link.
//
// Every field is three-state: a nil pointer leaves the attribute untouched
// (the wire field stays absent), a pointer to the zero value clears it
// explicitly (zero expiry = no expiration, zero limit = unlimited members),
// and any other value sets it. The distinction is visible on the wire and
// changing it changes user-visible semantics, so the mapping is exact.
//
// Business ranges (member limit 1–99999 and the like) are enforced by
// Telegram, not here; caller values are forwarded verbatim.
type InviteLinkOptions struct {
	Name               *string
	ExpireDate         *time.Time
	MemberLimit        *int
	CreatesJoinRequest *bool
}

// EditChatInviteLink edits a non-primary invite link of a chat. The caller
// must be an administrator with the appropriate rights.
//
// Example usage:
//
//	noLimit := 0
//	link, err := fluent.EditChatInviteLink(
//	    ctx,
//	    yatgpeers.ID(chatID),
//	    "https://t.me/+abcdef",
//	    yatgfluent.InviteLinkOptions{MemberLimit: &noLimit},
//	)
//	if err != nil {
//	    // Handle error
//	}
func (c *Client) EditChatInviteLink(
	ctx context.Context,
	chat yatgpeers.PeerRef,
	link string,
	options InviteLinkOptions,
) (*yatgtypes.ChatInviteLink, yaerrors.Error) {
	log := c.log.WithRequestUUID(uuid.New())

	peer, yaErr := c.peers.ResolvePeer(ctx, chat)
	if yaErr != nil {
		return nil, yaErr.WrapWithLog("failed to edit chat invite link", log)
	}

	request := &tg.MessagesEditExportedChatInviteRequest{
		Peer: peer,
		Link: link,
	}
	applyInviteLinkOptions(request, options)

	response, err := c.raw.MessagesEditExportedChatInvite(ctx, request)
	if err != nil {
		return nil, yaerrors.FromErrorWithLog(
			http.StatusInternalServerError,
			err,
			"failed to edit chat invite link",
			log,
		)
	}

	return parseExportedInviteResponse(response)
}

// RevokeChatInviteLink revokes an invite link. Revoking the primary link
// makes Telegram generate a replacement automatically; the revoked link is
// returned either way.
func (c *Client) RevokeChatInviteLink(
	ctx context.Context,
	chat yatgpeers.PeerRef,
	link string,
) (*yatgtypes.ChatInviteLink, yaerrors.Error) {
	log := c.log.WithRequestUUID(uuid.New())

	peer, yaErr := c.peers.ResolvePeer(ctx, chat)
	if yaErr != nil {
		return nil, yaErr.WrapWithLog("failed to revoke chat invite link", log)
	}

	request := &tg.MessagesEditExportedChatInviteRequest{
		Peer: peer,
		Link: link,
	}
	request.SetRevoked(true)

	response, err := c.raw.MessagesEditExportedChatInvite(ctx, request)
	if err != nil {
		return nil, yaerrors.FromErrorWithLog(
			http.StatusInternalServerError,
			err,
			"failed to revoke chat invite link",
			log,
		)
	}

	return parseExportedInviteResponse(response)
}

// CreateChatInviteLink creates an additional invite link for a chat, with
// the same three-state optional semantics as EditChatInviteLink.
func (c *Client) CreateChatInviteLink(
	ctx context.Context,
	chat yatgpeers.PeerRef,
	options InviteLinkOptions,
) (*yatgtypes.ChatInviteLink, yaerrors.Error) {
	log := c.log.WithRequestUUID(uuid.New())

	peer, yaErr := c.peers.ResolvePeer(ctx, chat)
	if yaErr != nil {
		return nil, yaErr.WrapWithLog("failed to create chat invite link", log)
	}

	request := &tg.MessagesExportChatInviteRequest{
		Peer: peer,
	}
	applyInviteLinkOptions(request, options)

	response, err := c.raw.MessagesExportChatInvite(ctx, request)
	if err != nil {
		return nil, yaerrors.FromErrorWithLog(
			http.StatusInternalServerError,
			err,
			"failed to create chat invite link",
			log,
		)
	}

	return yatgtypes.ParseChatInviteLink(response, yatgtypes.Entities{})
}

// DeleteChatInviteLink deletes a revoked invite link.
func (c *Client) DeleteChatInviteLink(
	ctx context.Context,
	chat yatgpeers.PeerRef,
	link string,
) yaerrors.Error {
	log := c.log.WithRequestUUID(uuid.New())

	peer, yaErr := c.peers.ResolvePeer(ctx, chat)
	if yaErr != nil {
		return yaErr.WrapWithLog("failed to delete chat invite link", log)
	}

	if _, err := c.raw.MessagesDeleteExportedChatInvite(ctx, &tg.MessagesDeleteExportedChatInviteRequest{
		Peer: peer,
		Link: link,
	}); err != nil {
		return yaerrors.FromErrorWithLog(
			http.StatusInternalServerError,
			err,
			"failed to delete chat invite link",
			log,
		)
	}

	return nil
}

// inviteLinkRequest is the shared flag surface of the export and edit raw
// requests, so one option-mapping routine serves both.
type inviteLinkRequest interface {
	SetTitle(value string)
	SetExpireDate(value int)
	SetUsageLimit(value int)
	SetRequestNeeded(value bool)
}

// applyInviteLinkOptions maps the three-state options onto the wire flags:
// nil keeps the flag unset, non-nil sets the flag with the (possibly zero)
// value, so "leave unchanged" and "clear" stay distinguishable remotely.
func applyInviteLinkOptions(request inviteLinkRequest, options InviteLinkOptions) {
	if options.Name != nil {
		request.SetTitle(*options.Name)
	}

	if options.ExpireDate != nil {
		request.SetExpireDate(datetimeToTimestamp(*options.ExpireDate))
	}

	if options.MemberLimit != nil {
		request.SetUsageLimit(*options.MemberLimit)
	}

	if options.CreatesJoinRequest != nil {
		request.SetRequestNeeded(*options.CreatesJoinRequest)
	}
}

// datetimeToTimestamp converts an optional point in time to the wire's
// integer timestamp; the zero time maps to the wire's "no expiration".
func datetimeToTimestamp(value time.Time) int {
	if value.IsZero() {
		return 0
	}

	return int(value.Unix())
}

// parseExportedInviteResponse normalizes both shapes of the exported-invite
// response, threading the embedded user table into the typed parse.
func parseExportedInviteResponse(
	response tg.MessagesExportedChatInviteClass,
) (*yatgtypes.ChatInviteLink, yaerrors.Error) {
	switch r := response.(type) {
	case *tg.MessagesExportedChatInvite:
		return yatgtypes.ParseChatInviteLink(r.Invite, yatgtypes.EntitiesFromUsers(r.Users))

	case *tg.MessagesExportedChatInviteReplaced:
		return yatgtypes.ParseChatInviteLink(r.Invite, yatgtypes.EntitiesFromUsers(r.Users))

	default:
		return nil, yaerrors.FromError(
			http.StatusUnprocessableEntity,
			yatgtypes.ErrUnknownVariant,
			fmt.Sprintf("failed to parse invite response: unexpected payload %T", response),
		)
	}
}
