package protocol

import (
	"testing"

	"github.com/danmuck/zpart/internal/endian"
)

func TestSignalValuesCarryHeader(t *testing.T) {
	for _, s := range []Signal{SignalOk, SignalKo, SignalStop, SignalTest} {
		if !s.HasHeader() {
			t.Fatalf("signal %s missing header", s)
		}
	}
	if Signal(42).HasHeader() {
		t.Fatalf("plain value reported as signal")
	}
}

func TestSignalWireBytes(t *testing.T) {
	buf := make([]byte, SignalWidth)
	endian.Put(buf, SignalStop)
	want := []byte{0x77, 0x66, 0x55, 0x44, 0x33, 0x22, 0x11, 0x02}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("byte %d: got %#x want %#x", i, buf[i], want[i])
		}
	}
}

func TestParseSignal(t *testing.T) {
	s, ok := ParseSignal("stop")
	if !ok || s != SignalStop {
		t.Fatalf("parse stop: got %v ok=%v", s, ok)
	}
	if _, ok := ParseSignal("header"); ok {
		t.Fatalf("header must not parse as a sendable signal")
	}
}
