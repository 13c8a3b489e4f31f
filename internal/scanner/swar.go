package scanner

import "encoding/binary"

// SWAR helpers operate on eight ASCII bytes loaded little-endian into a
// uint64, so the first byte of the chunk is the lowest byte of the word.

var swar = hasFastLoads()

// HasSWAR reports whether the eight-digit fast path is enabled.
func HasSWAR() bool { return swar }

// SetSWAR overrides CPU detection and returns a func restoring the previous
// setting. It is meant for tests and is not safe for concurrent use.
func SetSWAR(enabled bool) (restore func()) {
	prev := swar
	swar = enabled
	return func() { swar = prev }
}

// Load reads eight bytes at b[i:] as a little-endian word.
func Load(b []byte, i int) uint64 {
	return binary.LittleEndian.Uint64(b[i:])
}

// IsEightDigits reports whether all eight bytes of v are ASCII digits.
func IsEightDigits(v uint64) bool {
	return ((v & 0xF0F0F0F0F0F0F0F0) |
		(((v + 0x0606060606060606) & 0xF0F0F0F0F0F0F0F0) >> 4)) == 0x3333333333333333
}

// ParseEightDigits converts eight ASCII digits into their value. The result
// is undefined unless IsEightDigits(v) holds.
func ParseEightDigits(v uint64) uint32 {
	const (
		mask = 0x000000FF000000FF
		mul1 = 0x000F424000000064 // 100 + (1000000 << 32)
		mul2 = 0x0000271000000001 // 1 + (10000 << 32)
	)
	v -= 0x3030303030303030
	v = (v * 10) + (v >> 8)
	v = (((v & mask) * mul1) + (((v >> 16) & mask) * mul2)) >> 32
	return uint32(v)
}
