package yatgtypes

import (
	"fmt"
	"net/http"
	"time"

	"github.com/YaCodeDev/GoYaCodeDevUtils/yaerrors"
	"github.com/gotd/td/tg"
)

// ChatInviteLink is a parsed chat invite link.
//
// UsageLimit of zero means the link places no limit on the number of members.
// A zero ExpireDate means the link never expires. Both conventions mirror the
// wire representation, where the corresponding raw fields carry zero to
// express "no limit" / "no expiration".
type ChatInviteLink struct {
	Link                string
	Creator             *User
	CreatedAt           time.Time
	ExpireDate          time.Time
	UsageLimit          int
	MemberCount         int
	PendingJoinRequests int
	Name                string
	IsPrimary           bool
	IsRevoked           bool
	CreatesJoinRequest  bool
}

// ParseChatInviteLink dispatches a raw exported-invite payload to the typed
// result. The creator is resolved through the entity table when present.
//
// Example usage:
//
//	link, err := yatgtypes.ParseChatInviteLink(response.Invite, ents)
//	if err != nil {
//	    // Handle error
//	}
func ParseChatInviteLink(
	raw tg.ExportedChatInviteClass,
	ents Entities,
) (*ChatInviteLink, yaerrors.Error) {
	switch invite := raw.(type) {
	case *tg.ChatInviteExported:
		link := &ChatInviteLink{
			Link:               invite.Link,
			CreatedAt:          time.Unix(int64(invite.Date), 0),
			IsPrimary:          invite.Permanent,
			IsRevoked:          invite.Revoked,
			CreatesJoinRequest: invite.RequestNeeded,
		}

		if creator, ok := ents.User(invite.AdminID); ok {
			link.Creator = ParseUser(creator)
		}

		if expire, ok := invite.GetExpireDate(); ok && expire != 0 {
			link.ExpireDate = time.Unix(int64(expire), 0)
		}

		if limit, ok := invite.GetUsageLimit(); ok {
			link.UsageLimit = limit
		}

		if usage, ok := invite.GetUsage(); ok {
			link.MemberCount = usage
		}

		if requested, ok := invite.GetRequested(); ok {
			link.PendingJoinRequests = requested
		}

		if title, ok := invite.GetTitle(); ok {
			link.Name = title
		}

		return link, nil

	case *tg.ChatInvitePublicJoinRequests:
		return nil, yaerrors.FromError(
			http.StatusUnprocessableEntity,
			ErrInviteLinkUnavailable,
			"failed to parse invite link",
		)

	default:
		return nil, yaerrors.FromError(
			http.StatusUnprocessableEntity,
			ErrUnknownVariant,
			fmt.Sprintf("failed to parse invite link: unexpected payload %T", raw),
		)
	}
}
