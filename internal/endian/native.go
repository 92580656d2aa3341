package endian

import (
	"encoding/binary"
	"math/bits"

	"golang.org/x/sys/cpu"
)

// hostBigEndian selects between a plain native store and a byte swap.
var hostBigEndian = cpu.IsBigEndian

func nativePut16(b []byte, x uint16) {
	if !hostBigEndian {
		x = bits.ReverseBytes16(x)
	}
	binary.NativeEndian.PutUint16(b, x)
}

func nativePut32(b []byte, x uint32) {
	if !hostBigEndian {
		x = bits.ReverseBytes32(x)
	}
	binary.NativeEndian.PutUint32(b, x)
}

func nativePut64(b []byte, x uint64) {
	if !hostBigEndian {
		x = bits.ReverseBytes64(x)
	}
	binary.NativeEndian.PutUint64(b, x)
}

func nativeGet16(b []byte) uint16 {
	x := binary.NativeEndian.Uint16(b)
	if hostBigEndian {
		return x
	}
	return bits.ReverseBytes16(x)
}

func nativeGet32(b []byte) uint32 {
	x := binary.NativeEndian.Uint32(b)
	if hostBigEndian {
		return x
	}
	return bits.ReverseBytes32(x)
}

func nativeGet64(b []byte) uint64 {
	x := binary.NativeEndian.Uint64(b)
	if hostBigEndian {
		return x
	}
	return bits.ReverseBytes64(x)
}
