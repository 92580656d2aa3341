package transport

import "errors"

var (
	ErrClosed        = errors.New("transport: pipe closed")
	ErrEmptyMessage  = errors.New("transport: empty message")
	ErrTooManyParts  = errors.New("transport: too many parts")
	ErrFrameTooLarge = errors.New("transport: frame too large")
	ErrInvalidConfig = errors.New("transport: invalid config")
)
