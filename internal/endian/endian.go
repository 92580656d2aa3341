package endian

import (
	"slices"
	"unsafe"

	"github.com/pkg/errors"
)

// Scalar is the set of fixed-width values with a big-endian wire form.
// Named types (enumerations) are included through the ~ terms and are
// encoded by their bit pattern, never by numeric conversion.
type Scalar interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64 |
		~int | ~uint | ~uintptr | ~float32 | ~float64
}

// Size returns the wire width of T in bytes.
func Size[T Scalar]() int {
	var v T
	return int(unsafe.Sizeof(v))
}

// Put writes v to dst in big-endian order and returns the number of bytes
// written. It panics if dst is shorter than Size[T]().
func Put[T Scalar](dst []byte, v T) int {
	n := int(unsafe.Sizeof(v))
	putRaw(dst, unsafe.Pointer(&v), n)
	return n
}

// Get reads Size[T]() big-endian bytes from src and returns them as T.
// It panics if src is shorter than Size[T]().
func Get[T Scalar](src []byte) T {
	var v T
	getRaw(src, unsafe.Pointer(&v), int(unsafe.Sizeof(v)))
	return v
}

// Append encodes v onto the end of dst and returns the extended slice.
func Append[T Scalar](dst []byte, v T) []byte {
	n := Size[T]()
	off := len(dst)
	dst = slices.Grow(dst, n)[:off+n]
	Put(dst[off:], v)
	return dst
}

// Decode is Get with a length check: src must hold exactly Size[T]() bytes.
func Decode[T Scalar](src []byte) (T, error) {
	var zero T
	if len(src) != Size[T]() {
		return zero, errors.Wrapf(ErrSizeMismatch, "have %d bytes, want %d", len(src), Size[T]())
	}
	return Get[T](src), nil
}

// putRaw writes the n-byte value at p in big-endian order. n is always one
// of the Scalar widths.
func putRaw(dst []byte, p unsafe.Pointer, n int) {
	switch n {
	case 1:
		dst[0] = *(*uint8)(p)
	case 2:
		put16(dst, *(*uint16)(p))
	case 4:
		put32(dst, *(*uint32)(p))
	case 8:
		put64(dst, *(*uint64)(p))
	default:
		panic("endian: unsupported width")
	}
}

func getRaw(src []byte, p unsafe.Pointer, n int) {
	switch n {
	case 1:
		*(*uint8)(p) = src[0]
	case 2:
		*(*uint16)(p) = get16(src)
	case 4:
		*(*uint32)(p) = get32(src)
	case 8:
		*(*uint64)(p) = get64(src)
	default:
		panic("endian: unsupported width")
	}
}
