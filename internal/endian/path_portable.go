//go:build endian_portable

package endian

// Portable reports whether the build forced the shift-and-mask path.
const Portable = true

func put16(b []byte, x uint16) { portablePut16(b, x) }
func put32(b []byte, x uint32) { portablePut32(b, x) }
func put64(b []byte, x uint64) { portablePut64(b, x) }

func get16(b []byte) uint16 { return portableGet16(b) }
func get32(b []byte) uint32 { return portableGet32(b) }
func get64(b []byte) uint64 { return portableGet64(b) }
