package protocol

import "fmt"

// Signal is a reserved control token carried as a single 8-byte frame.
// The top seven bytes always hold SignalHeader.
type Signal int64

const SignalHeader Signal = 0x0077665544332211

const (
	SignalOk Signal = SignalHeader<<8 + iota
	SignalKo
	SignalStop
	SignalTest
)

// SignalWidth is the wire width of a signal frame.
const SignalWidth = 8

// HasHeader reports whether s carries the reserved header tag.
func (s Signal) HasHeader() bool {
	return s>>8 == SignalHeader
}

func (s Signal) String() string {
	switch s {
	case SignalOk:
		return "ok"
	case SignalKo:
		return "ko"
	case SignalStop:
		return "stop"
	case SignalTest:
		return "test"
	case SignalHeader:
		return "header"
	}
	return fmt.Sprintf("signal(%#x)", int64(s))
}

// ParseSignal maps a signal name back to its value.
func ParseSignal(name string) (Signal, bool) {
	for _, s := range []Signal{SignalOk, SignalKo, SignalStop, SignalTest} {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}
