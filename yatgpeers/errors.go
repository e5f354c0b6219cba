package yatgpeers

import "errors"

var (
	// ErrPeerNotFound reports a reference that maps to no known peer.
	ErrPeerNotFound = errors.New("peer cannot be resolved")

	// ErrInvalidPeerRef reports a zero or malformed reference.
	ErrInvalidPeerRef = errors.New("invalid peer reference")

	// ErrFailedToParseAccessHash reports a corrupt cache record.
	ErrFailedToParseAccessHash = errors.New("failed to parse access hash as int64")
)
