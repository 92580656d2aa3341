package endian

import (
	"math/bits"
	"reflect"

	"github.com/pkg/errors"
)

// Runtime dispatch for values whose type is only known as any. Builtin
// scalars are matched directly; named scalar kinds (enumerations) fall back
// to reflection and keep their bit pattern. Anything else is rejected with
// ErrUnsupportedConversion.

// Width reports how many wire bytes v encodes to.
func Width(v any) (int, error) {
	switch v.(type) {
	case bool, int8, uint8:
		return 1, nil
	case int16, uint16:
		return 2, nil
	case int32, uint32, float32:
		return 4, nil
	case int64, uint64, float64:
		return 8, nil
	case int, uint, uintptr:
		return bits.UintSize / 8, nil
	}
	rv := reflect.ValueOf(v)
	if !scalarKind(rv) {
		return 0, unsupported(v)
	}
	return int(rv.Type().Size()), nil
}

// Marshal encodes v into a new buffer of exactly Width(v) bytes.
func Marshal(v any) ([]byte, error) {
	n, err := Width(v)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if _, err := MarshalTo(buf, v); err != nil {
		return nil, err
	}
	return buf, nil
}

// MarshalTo encodes v into dst and returns the number of bytes written.
func MarshalTo(dst []byte, v any) (int, error) {
	n, err := Width(v)
	if err != nil {
		return 0, err
	}
	if len(dst) < n {
		return 0, errors.Wrapf(ErrSizeMismatch, "%T needs %d bytes, have %d", v, n, len(dst))
	}
	switch x := v.(type) {
	case bool:
		dst[0] = 0
		if x {
			dst[0] = 1
		}
	case int8:
		Put(dst, x)
	case uint8:
		Put(dst, x)
	case int16:
		Put(dst, x)
	case uint16:
		Put(dst, x)
	case int32:
		Put(dst, x)
	case uint32:
		Put(dst, x)
	case int64:
		Put(dst, x)
	case uint64:
		Put(dst, x)
	case int:
		Put(dst, x)
	case uint:
		Put(dst, x)
	case uintptr:
		Put(dst, x)
	case float32:
		Put(dst, x)
	case float64:
		Put(dst, x)
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Bool {
			dst[0] = 0
			if rv.Bool() {
				dst[0] = 1
			}
			return n, nil
		}
		box := reflect.New(rv.Type())
		box.Elem().Set(rv)
		putRaw(dst, box.UnsafePointer(), n)
	}
	return n, nil
}

// Unmarshal decodes src into the scalar ptr points to. src must hold
// exactly the target's width. A bool decodes as true for any non-zero byte.
func Unmarshal(src []byte, ptr any) error {
	switch p := ptr.(type) {
	case *bool:
		if p == nil {
			return unsupported(ptr)
		}
		if len(src) != 1 {
			return sizeMismatch(ptr, len(src), 1)
		}
		*p = src[0] != 0
		return nil
	case *int8:
		return decodeInto(src, p)
	case *uint8:
		return decodeInto(src, p)
	case *int16:
		return decodeInto(src, p)
	case *uint16:
		return decodeInto(src, p)
	case *int32:
		return decodeInto(src, p)
	case *uint32:
		return decodeInto(src, p)
	case *int64:
		return decodeInto(src, p)
	case *uint64:
		return decodeInto(src, p)
	case *int:
		return decodeInto(src, p)
	case *uint:
		return decodeInto(src, p)
	case *uintptr:
		return decodeInto(src, p)
	case *float32:
		return decodeInto(src, p)
	case *float64:
		return decodeInto(src, p)
	}

	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || !scalarKind(rv.Elem()) {
		return unsupported(ptr)
	}
	elem := rv.Elem()
	n := int(elem.Type().Size())
	if len(src) != n {
		return sizeMismatch(ptr, len(src), n)
	}
	if elem.Kind() == reflect.Bool {
		elem.SetBool(src[0] != 0)
		return nil
	}
	getRaw(src, rv.UnsafePointer(), n)
	return nil
}

func decodeInto[T Scalar](src []byte, p *T) error {
	if p == nil {
		return unsupported(p)
	}
	if len(src) != Size[T]() {
		return sizeMismatch(p, len(src), Size[T]())
	}
	*p = Get[T](src)
	return nil
}

func scalarKind(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Bool,
		reflect.Int8, reflect.Uint8, reflect.Int16, reflect.Uint16,
		reflect.Int32, reflect.Uint32, reflect.Int64, reflect.Uint64,
		reflect.Int, reflect.Uint, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func unsupported(v any) error {
	return errors.Wrapf(ErrUnsupportedConversion, "%T", v)
}

func sizeMismatch(target any, have, want int) error {
	return errors.Wrapf(ErrSizeMismatch, "%T: have %d bytes, want %d", target, have, want)
}
