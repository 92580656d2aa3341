package message

import (
	"reflect"

	"github.com/danmuck/zpart/internal/endian"
	"github.com/danmuck/zpart/internal/protocol"
	"github.com/danmuck/zpart/internal/protocol/frame"
	"github.com/pkg/errors"
)

// Get decodes frame part as T. The frame must be exactly endian.Size[T]()
// bytes long.
func Get[T endian.Scalar](m *Message, part int) (T, error) {
	var zero T
	f, err := m.frameAt(part)
	if err != nil {
		return zero, err
	}
	v, err := endian.Decode[T](f.Data())
	if err != nil {
		return zero, errors.Wrapf(err, "part %d", part)
	}
	return v, nil
}

// Next decodes the frame at the cursor as T and advances the cursor.
func Next[T endian.Scalar](m *Message) (T, error) {
	v, err := Get[T](m, m.cursor)
	if err != nil {
		return v, err
	}
	m.cursor++
	return v, nil
}

// GetString returns frame part as text of exactly Size(part) bytes.
func (m *Message) GetString(part int) (string, error) {
	f, err := m.frameAt(part)
	if err != nil {
		return "", err
	}
	return string(f.Data()), nil
}

// GetBytes returns a copy of frame part.
func (m *Message) GetBytes(part int) ([]byte, error) {
	f, err := m.frameAt(part)
	if err != nil {
		return nil, err
	}
	out := make([]byte, f.Len())
	copy(out, f.Data())
	return out, nil
}

// GetBool decodes a one-byte frame; any non-zero byte is true.
func (m *Message) GetBool(part int) (bool, error) {
	var v bool
	f, err := m.frameAt(part)
	if err != nil {
		return false, err
	}
	if err := endian.Unmarshal(f.Data(), &v); err != nil {
		return false, errors.Wrapf(err, "part %d", part)
	}
	return v, nil
}

// IsSignal reports whether the message is a single reserved control frame.
func (m *Message) IsSignal() bool {
	if m.parts.Len() != 1 {
		return false
	}
	data := m.parts.At(0).Data()
	if len(data) != protocol.SignalWidth {
		return false
	}
	return endian.Get[protocol.Signal](data).HasHeader()
}

// Signal decodes the message as a control signal.
func (m *Message) Signal() (protocol.Signal, error) {
	if !m.IsSignal() {
		return 0, errors.Wrap(protocol.ErrUnsupportedConversion, "message is not a signal")
	}
	return endian.Get[protocol.Signal](m.parts.At(0).Data()), nil
}

// decodeFrame fills the value ptr points to from f. Text targets take the
// bytes as-is; scalars go through the codec.
func decodeFrame(f *frame.Frame, ptr any) error {
	switch p := ptr.(type) {
	case *string:
		if p == nil {
			break
		}
		*p = string(f.Data())
		return nil
	case *[]byte:
		if p == nil {
			break
		}
		*p = append((*p)[:0], f.Data()...)
		return nil
	}
	rv := reflect.ValueOf(ptr)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() {
		elem := rv.Elem()
		switch {
		case elem.Kind() == reflect.String:
			elem.SetString(string(f.Data()))
			return nil
		case elem.Kind() == reflect.Slice && elem.Type().Elem().Kind() == reflect.Uint8:
			buf := make([]byte, f.Len())
			copy(buf, f.Data())
			elem.SetBytes(buf)
			return nil
		}
	}
	return endian.Unmarshal(f.Data(), ptr)
}
