package frame

import (
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/danmuck/zpart/internal/observability"
	"github.com/danmuck/zpart/internal/protocol"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// MaxGroupLen is the longest group tag a transport accepts.
const MaxGroupLen = 255

// Mode is the ownership strategy chosen when a frame is built.
type Mode uint8

const (
	ModeOwned   Mode = iota // frame allocated and owns its buffer
	ModeNoCopy              // caller buffer plus release obligation
	ModeManaged             // caller buffer plus a boxed release closure
)

func (m Mode) String() string {
	switch m {
	case ModeOwned:
		return "owned"
	case ModeNoCopy:
		return "nocopy"
	case ModeManaged:
		return "managed"
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// ReleaseFunc is invoked once with the wrapped data and the caller's hint
// when a no-copy frame is destroyed. It may run on a transport goroutine
// long after the frame was built, and must not touch the originating
// message.
type ReleaseFunc func(data []byte, hint any)

// releaser is the per-mode payload. Each variant knows how to give its
// buffer back.
type releaser interface {
	mode() Mode
	release(data []byte)
}

type ownedBuf struct{}

func (ownedBuf) mode() Mode        { return ModeOwned }
func (ownedBuf) release(_ []byte) {}

type noCopyBuf struct {
	fn   ReleaseFunc
	hint any
}

func (noCopyBuf) mode() Mode { return ModeNoCopy }

func (b noCopyBuf) release(data []byte) {
	if b.fn != nil {
		b.fn(data, b.hint)
	}
}

type managedBuf struct {
	fn *func([]byte)
}

func (managedBuf) mode() Mode { return ModeManaged }

func (b managedBuf) release(data []byte) {
	if b.fn != nil && *b.fn != nil {
		(*b.fn)(data)
	}
}

var modeCounters = [...]observability.FrameCounters{
	ModeOwned:   observability.FrameCountersFor(ModeOwned.String()),
	ModeNoCopy:  observability.FrameCountersFor(ModeNoCopy.String()),
	ModeManaged: observability.FrameCountersFor(ModeManaged.String()),
}

// Frame is one part of a multi-part message. Its ownership mode and buffer
// identity never change after construction; Take moves both to a new frame.
type Frame struct {
	data     []byte
	owner    releaser
	readOnly bool
	sent     bool
	group    string
	released atomic.Bool
}

func build(data []byte, owner releaser, readOnly bool) *Frame {
	modeCounters[owner.mode()].Created.Inc()
	return &Frame{data: data, owner: owner, readOnly: readOnly}
}

// New allocates an owned, zeroed frame of size bytes.
func New(size int) *Frame {
	return build(make([]byte, size), ownedBuf{}, false)
}

// Copy allocates an owned frame holding a copy of data.
func Copy(data []byte) *Frame {
	buf := make([]byte, len(data))
	copy(buf, data)
	return build(buf, ownedBuf{}, false)
}

// CopyString allocates an owned frame holding the bytes of s.
func CopyString(s string) *Frame {
	return build([]byte(s), ownedBuf{}, false)
}

// Adopt takes ownership of buf without copying. Transports use it to hand a
// received buffer straight to a message; the caller must not reuse buf.
func Adopt(buf []byte) *Frame {
	return build(buf, ownedBuf{}, false)
}

// NoCopy wraps data without copying. fn, if not nil, is called with data and
// hint when the frame is destroyed; a nil fn leaves data to the caller.
func NoCopy(data []byte, fn ReleaseFunc, hint any) *Frame {
	return build(data, noCopyBuf{fn: fn, hint: hint}, false)
}

// NoCopyConst is NoCopy for data the frame must never write to. Mutable
// access to the frame fails with protocol.ErrInvalidOwnership.
func NoCopyConst(data []byte, fn ReleaseFunc, hint any) *Frame {
	return build(data, noCopyBuf{fn: fn, hint: hint}, true)
}

// ConstString wraps the bytes of s without copying them.
func ConstString(s string) *Frame {
	return build(unsafe.Slice(unsafe.StringData(s), len(s)), noCopyBuf{}, true)
}

// Managed wraps data without copying and boxes fn on the heap so the frame
// holds the only reference the release depends on.
func Managed(data []byte, fn func([]byte)) *Frame {
	box := new(func([]byte))
	*box = fn
	return build(data, managedBuf{fn: box}, false)
}

// Len returns the frame's byte length.
func (f *Frame) Len() int { return len(f.data) }

// Data returns a view of the frame bytes. The view is only valid while the
// frame is alive. Only the builder of a fresh New frame may write through it;
// everyone else uses Mutable.
func (f *Frame) Data() []byte { return f.data }

// Mutable returns a writable view of the frame bytes.
func (f *Frame) Mutable() ([]byte, error) {
	if f.readOnly {
		return nil, protocol.ErrInvalidOwnership
	}
	return f.data, nil
}

func (f *Frame) Mode() Mode { return f.owner.mode() }

func (f *Frame) ReadOnly() bool { return f.readOnly }

// Clone returns a new owned frame with a copy of the bytes. The sent flag
// and group are not carried over.
func (f *Frame) Clone() *Frame {
	return Copy(f.data)
}

// Take moves the buffer and its release obligation into a new frame. f is
// left empty with nothing to release.
func (f *Frame) Take() *Frame {
	out := &Frame{
		data:     f.data,
		owner:    f.owner,
		readOnly: f.readOnly,
		sent:     f.sent,
		group:    f.group,
	}
	f.data = nil
	f.owner = ownedBuf{}
	f.readOnly = false
	f.sent = false
	f.group = ""
	f.released.Store(true)
	return out
}

func (f *Frame) IsSent() bool { return f.sent }

// MarkSent records the hand-off to a transport.
func (f *Frame) MarkSent() error {
	if f.sent {
		return protocol.ErrAlreadySent
	}
	f.sent = true
	return nil
}

// ResetSent clears the sent flag after a failed hand-off.
func (f *Frame) ResetSent() { f.sent = false }

func (f *Frame) Group() string { return f.group }

// SetGroup tags the frame for group-addressed transports.
func (f *Frame) SetGroup(group string) error {
	if len(group) > MaxGroupLen {
		return errors.Wrapf(protocol.ErrGroupTooLong, "%d bytes", len(group))
	}
	f.group = group
	return nil
}

// Close fulfils the frame's release obligation. Only the first call does
// anything. A panicking release is recovered and returned as
// protocol.ErrReleaseFailed.
func (f *Frame) Close() (err error) {
	if !f.released.CompareAndSwap(false, true) {
		return nil
	}
	mode := f.owner.mode()
	data := f.data
	f.data = nil
	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrapf(protocol.ErrReleaseFailed, "%s frame: %v", mode, r)
			modeCounters[mode].ReleaseFailures.Inc()
			log.Debug().Stringer("mode", mode).Interface("panic", r).Msg("frame release panicked")
			return
		}
		modeCounters[mode].Released.Inc()
	}()
	f.owner.release(data)
	return nil
}
