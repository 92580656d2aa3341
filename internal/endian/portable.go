package endian

// The portable path builds every byte with shifts and masks and does not
// depend on host byte order.

func portablePut16(b []byte, x uint16) {
	_ = b[1]
	b[0] = byte(x >> 8)
	b[1] = byte(x)
}

func portablePut32(b []byte, x uint32) {
	_ = b[3]
	b[0] = byte(x >> 24)
	b[1] = byte(x >> 16)
	b[2] = byte(x >> 8)
	b[3] = byte(x)
}

// portablePut64 shifts 32-bit halves so 32-bit targets avoid wide shifts.
func portablePut64(b []byte, x uint64) {
	_ = b[7]
	hi := uint32(x >> 32)
	lo := uint32(x)
	b[0] = byte(hi >> 24)
	b[1] = byte(hi >> 16)
	b[2] = byte(hi >> 8)
	b[3] = byte(hi)
	b[4] = byte(lo >> 24)
	b[5] = byte(lo >> 16)
	b[6] = byte(lo >> 8)
	b[7] = byte(lo)
}

func portableGet16(b []byte) uint16 {
	_ = b[1]
	return uint16(b[0])<<8 | uint16(b[1])
}

func portableGet32(b []byte) uint32 {
	_ = b[3]
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func portableGet64(b []byte) uint64 {
	_ = b[7]
	hi := uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	lo := uint32(b[4])<<24 | uint32(b[5])<<16 | uint32(b[6])<<8 | uint32(b[7])
	return uint64(hi)<<32 | uint64(lo)
}
