package yatgtypes

import "errors"

var (
	// ErrUnknownVariant reports a raw payload whose concrete schema type has
	// no registered domain variant. It signals schema drift between this
	// library and the remote side and is never swallowed.
	ErrUnknownVariant = errors.New("raw payload has no registered variant")

	// ErrMissingEntity reports a reference inside a raw payload that the
	// accompanying entity table cannot resolve.
	ErrMissingEntity = errors.New("entity table is missing a referenced peer")

	// ErrInviteLinkUnavailable reports the raw variant Telegram returns when
	// an invite link exists but its details are hidden from the caller.
	ErrInviteLinkUnavailable = errors.New("invite link details are unavailable")
)
