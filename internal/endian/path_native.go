//go:build !endian_portable

package endian

// Portable reports whether the build forced the shift-and-mask path.
const Portable = false

func put16(b []byte, x uint16) { nativePut16(b, x) }
func put32(b []byte, x uint32) { nativePut32(b, x) }
func put64(b []byte, x uint64) { nativePut64(b, x) }

func get16(b []byte) uint16 { return nativeGet16(b) }
func get32(b []byte) uint32 { return nativeGet32(b) }
func get64(b []byte) uint64 { return nativeGet64(b) }
