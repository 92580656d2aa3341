package endian

import "errors"

var (
	ErrUnsupportedConversion = errors.New("endian: unsupported conversion")
	ErrSizeMismatch          = errors.New("endian: size mismatch")
)
