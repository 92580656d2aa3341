package message

import (
	"reflect"

	"github.com/danmuck/zpart/internal/endian"
	"github.com/danmuck/zpart/internal/protocol"
	"github.com/danmuck/zpart/internal/protocol/frame"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Message is an ordered set of frames that a transport sends as one unit,
// plus a read cursor for stream-style decoding. The message owns its frames
// and releases them on Close. A Message is not safe for concurrent use.
type Message struct {
	parts  frameQueue
	cursor int
}

// New builds a message with one frame per value, in argument order.
func New(values ...any) (*Message, error) {
	m := &Message{}
	if err := m.Add(values...); err != nil {
		return nil, err
	}
	return m, nil
}

// Parts returns the number of frames.
func (m *Message) Parts() int { return m.parts.Len() }

func (m *Message) frameAt(part int) (*frame.Frame, error) {
	if part < 0 || part >= m.parts.Len() {
		return nil, errors.Wrapf(protocol.ErrOutOfRange, "part %d of %d", part, m.parts.Len())
	}
	return m.parts.At(part), nil
}

// Size returns the byte length of frame part.
func (m *Message) Size(part int) (int, error) {
	f, err := m.frameAt(part)
	if err != nil {
		return 0, err
	}
	return f.Len(), nil
}

// RawData returns a read-only view of frame part. The view dies with the
// frame; copy it (GetBytes) to keep it.
func (m *Message) RawData(part int) ([]byte, error) {
	f, err := m.frameAt(part)
	if err != nil {
		return nil, err
	}
	return f.Data(), nil
}

// Mutable returns a writable view of frame part. Frames built from const
// data refuse with protocol.ErrInvalidOwnership.
func (m *Message) Mutable(part int) ([]byte, error) {
	f, err := m.frameAt(part)
	if err != nil {
		return nil, err
	}
	return f.Mutable()
}

// Frame exposes frame part to a transport for zero-copy hand-off.
func (m *Message) Frame(part int) (*frame.Frame, error) {
	return m.frameAt(part)
}

// Add appends one frame per value. Strings and byte slices are copied
// as-is; scalars are encoded big-endian. Nothing is appended unless every
// value encodes.
func (m *Message) Add(values ...any) error {
	frames, err := encodeAll(values)
	if err != nil {
		return err
	}
	for _, f := range frames {
		m.parts.PushBack(f)
	}
	return nil
}

// PushBack is Add for a single value.
func (m *Message) PushBack(v any) error {
	return m.Add(v)
}

// PushFront encodes v into a new first frame.
func (m *Message) PushFront(v any) error {
	f, err := encodeFrame(v)
	if err != nil {
		return err
	}
	m.pushFront(f)
	return nil
}

// AddRaw appends a copy of data without any encoding.
func (m *Message) AddRaw(data []byte) {
	m.parts.PushBack(frame.Copy(data))
}

// PushBackRaw is AddRaw.
func (m *Message) PushBackRaw(data []byte) { m.AddRaw(data) }

// PushFrontRaw prepends a copy of data without any encoding.
func (m *Message) PushFrontRaw(data []byte) {
	m.pushFront(frame.Copy(data))
}

// AddNoCopy appends data without copying. release, if not nil, is called
// with data and hint once the frame is destroyed, possibly from a transport
// goroutine.
func (m *Message) AddNoCopy(data []byte, release frame.ReleaseFunc, hint any) {
	m.parts.PushBack(frame.NoCopy(data, release, hint))
}

// AddNoCopyConst appends data the message must never write to.
func (m *Message) AddNoCopyConst(data []byte, release frame.ReleaseFunc, hint any) {
	m.parts.PushBack(frame.NoCopyConst(data, release, hint))
}

// AddConstString appends the bytes of s without copying them.
func (m *Message) AddConstString(s string) {
	m.parts.PushBack(frame.ConstString(s))
}

// Move appends data without copying and hands its release to the message.
// With managed set the release closure is boxed alongside the frame;
// otherwise it is stored as a plain no-copy release.
func (m *Message) Move(data []byte, release func([]byte), managed bool) {
	if managed {
		m.parts.PushBack(frame.Managed(data, release))
		return
	}
	var fn frame.ReleaseFunc
	if release != nil {
		fn = func(d []byte, _ any) { release(d) }
	}
	m.parts.PushBack(frame.NoCopy(data, fn, nil))
}

// Adopt appends a transport-allocated buffer as an owned frame without
// copying it.
func (m *Message) Adopt(buf []byte) {
	m.parts.PushBack(frame.Adopt(buf))
}

// NewPart appends an owned frame of size zeroed bytes and returns its buffer
// for the caller to fill.
func (m *Message) NewPart(size int) []byte {
	f := frame.New(size)
	m.parts.PushBack(f)
	return f.Data()
}

// NewPartFront is NewPart at the front.
func (m *Message) NewPartFront(size int) []byte {
	f := frame.New(size)
	m.pushFront(f)
	return f.Data()
}

// pushFront keeps the cursor on the same unread frame.
func (m *Message) pushFront(f *frame.Frame) {
	m.parts.PushFront(f)
	if m.cursor > 0 {
		m.cursor++
	}
}

// PopFront removes and releases the first frame.
func (m *Message) PopFront() error {
	if m.parts.Len() == 0 {
		return errors.Wrap(protocol.ErrOutOfRange, "pop front of empty message")
	}
	f := m.parts.PopFront()
	if m.cursor > 0 {
		m.cursor--
	}
	return f.Close()
}

// PopBack removes and releases the last frame.
func (m *Message) PopBack() error {
	if m.parts.Len() == 0 {
		return errors.Wrap(protocol.ErrOutOfRange, "pop back of empty message")
	}
	f := m.parts.PopBack()
	if m.cursor > m.parts.Len() {
		m.cursor = m.parts.Len()
	}
	return f.Close()
}

// Remove releases frame part and shifts later frames down by one. It is
// linear in the number of frames.
func (m *Message) Remove(part int) error {
	if _, err := m.frameAt(part); err != nil {
		return err
	}
	f := m.parts.Remove(part)
	if part < m.cursor {
		m.cursor--
	}
	return f.Close()
}

// ReadCursor returns the index of the next frame Read will decode.
func (m *Message) ReadCursor() int { return m.cursor }

// Remaining returns how many frames are left for Read.
func (m *Message) Remaining() int { return m.parts.Len() - m.cursor }

// Next skips one frame and returns the new cursor.
func (m *Message) Next() int {
	if m.cursor < m.parts.Len() {
		m.cursor++
	}
	return m.cursor
}

// ResetReadCursor rewinds Read to the first frame.
func (m *Message) ResetReadCursor() { m.cursor = 0 }

// Read decodes the frame at the cursor into ptr and advances the cursor.
// On error the cursor stays put.
func (m *Message) Read(ptr any) error {
	f, err := m.frameAt(m.cursor)
	if err != nil {
		return err
	}
	if err := decodeFrame(f, ptr); err != nil {
		return errors.Wrapf(err, "part %d", m.cursor)
	}
	m.cursor++
	return nil
}

// ReadAll is Read for each pointer in turn. It stops at the first error.
func (m *Message) ReadAll(ptrs ...any) error {
	for _, p := range ptrs {
		if err := m.Read(p); err != nil {
			return err
		}
	}
	return nil
}

// Extract decodes frames 0..len(ptrs)-1 into ptrs. The cursor is not used.
func (m *Message) Extract(ptrs ...any) error {
	for i, p := range ptrs {
		f, err := m.frameAt(i)
		if err != nil {
			return err
		}
		if err := decodeFrame(f, p); err != nil {
			return errors.Wrapf(err, "part %d", i)
		}
	}
	return nil
}

// Sent marks frame part as handed to a transport. Marking a frame twice
// without ResetSent is an error.
func (m *Message) Sent(part int) error {
	f, err := m.frameAt(part)
	if err != nil {
		return err
	}
	if err := f.MarkSent(); err != nil {
		return errors.Wrapf(err, "part %d", part)
	}
	return nil
}

// ResetSent clears the sent mark on frame part.
func (m *Message) ResetSent(part int) error {
	f, err := m.frameAt(part)
	if err != nil {
		return err
	}
	f.ResetSent()
	return nil
}

// SetGroup tags every frame with group. It returns false, changing nothing,
// if the message is empty or the group is rejected.
func (m *Message) SetGroup(group string) bool {
	if m.parts.Len() == 0 || len(group) > frame.MaxGroupLen {
		return false
	}
	for i := 0; i < m.parts.Len(); i++ {
		if err := m.parts.At(i).SetGroup(group); err != nil {
			return false
		}
	}
	return true
}

// Copy returns a deep copy: every frame becomes a new owned frame and the
// cursor is preserved.
func (m *Message) Copy() *Message {
	out := &Message{cursor: m.cursor}
	for i := 0; i < m.parts.Len(); i++ {
		out.parts.PushBack(m.parts.At(i).Clone())
	}
	return out
}

// CopyFrom releases the receiver's frames and replaces them with deep copies
// of src's frames and cursor.
func (m *Message) CopyFrom(src *Message) error {
	if src == m {
		return nil
	}
	err := m.Close()
	for i := 0; i < src.parts.Len(); i++ {
		m.parts.PushBack(src.parts.At(i).Clone())
	}
	m.cursor = src.cursor
	return err
}

// Take moves the frames and cursor into a new message, leaving m empty with
// its cursor at zero.
func (m *Message) Take() *Message {
	out := &Message{parts: m.parts, cursor: m.cursor}
	m.parts = frameQueue{}
	m.cursor = 0
	return out
}

// MoveFrom releases the receiver's frames and takes src's frames and cursor.
// src is left empty. Moving a message into itself does nothing.
func (m *Message) MoveFrom(src *Message) error {
	if src == m {
		return nil
	}
	err := m.Close()
	m.parts, m.cursor = src.parts, src.cursor
	src.parts, src.cursor = frameQueue{}, 0
	return err
}

// Swap exchanges the frames and cursors of a and b.
func Swap(a, b *Message) {
	a.parts, b.parts = b.parts, a.parts
	a.cursor, b.cursor = b.cursor, a.cursor
}

// Detach removes every frame without releasing it and leaves the message
// empty. The caller takes over each frame's release obligation; transports
// use it once a send has been accepted.
func (m *Message) Detach() []*frame.Frame {
	m.cursor = 0
	return drain(&m.parts)
}

// Close releases every frame in order and leaves the message empty. Release
// failures do not stop the remaining releases; they are returned together.
func (m *Message) Close() error {
	var result *multierror.Error
	for _, f := range drain(&m.parts) {
		if err := f.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	m.cursor = 0
	return result.ErrorOrNil()
}

func encodeAll(values []any) ([]*frame.Frame, error) {
	frames := make([]*frame.Frame, 0, len(values))
	for i, v := range values {
		f, err := encodeFrame(v)
		if err != nil {
			for _, built := range frames {
				_ = built.Close()
			}
			return nil, errors.Wrapf(err, "value %d", i)
		}
		frames = append(frames, f)
	}
	return frames, nil
}

// encodeFrame builds an owned frame for v. Text is copied byte for byte;
// everything else goes through the scalar codec.
func encodeFrame(v any) (*frame.Frame, error) {
	switch x := v.(type) {
	case string:
		return frame.CopyString(x), nil
	case []byte:
		return frame.Copy(x), nil
	}
	rv := reflect.ValueOf(v)
	switch {
	case rv.Kind() == reflect.String:
		return frame.CopyString(rv.String()), nil
	case rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8:
		return frame.Copy(rv.Bytes()), nil
	}
	n, err := endian.Width(v)
	if err != nil {
		return nil, err
	}
	f := frame.New(n)
	if _, err := endian.MarshalTo(f.Data(), v); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}
