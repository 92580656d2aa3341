package protocol

import (
	"errors"

	"github.com/danmuck/zpart/internal/endian"
)

var (
	ErrOutOfRange       = errors.New("protocol: index out of range")
	ErrInvalidOwnership = errors.New("protocol: frame data is read-only")
	ErrAlreadySent      = errors.New("protocol: frame already marked sent")
	ErrReleaseFailed    = errors.New("protocol: release callback failed")
	ErrGroupTooLong     = errors.New("protocol: group name too long")

	// Codec failures are shared with the endian package so callers can
	// match either name.
	ErrSizeMismatch          = endian.ErrSizeMismatch
	ErrUnsupportedConversion = endian.ErrUnsupportedConversion
)
