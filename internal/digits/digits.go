// Package digits holds the lookup tables and fixed-width helpers shared by the
// integer and floating point codecs.
package digits

import "fmt"

// Each entry packs the three ASCII digits of its index (hundreds in bits
// 16-23, tens in 8-15, units in 0-7). The top byte is the offset of the first
// significant digit: 2 for i < 10, 1 for i < 100, 0 otherwise.
var table [1000]uint32

// Pow10 holds 10^0 through 10^17 as float64. Every entry is exact.
var Pow10 [18]float64

func init() {
	for i := uint32(0); i < 1000; i++ {
		table[i] = (((i / 100) + '0') << 16) + ((((i / 10) % 10) + '0') << 8) + i%10 + '0'
		if i < 10 {
			table[i] += 2 << 24
		} else if i < 100 {
			table[i] += 1 << 24
		}
	}
	p := int64(1)
	for i := range Pow10 {
		Pow10[i] = float64(p)
		p *= 10
	}
}

// Lookup returns the packed entry for v, which must be in [0, 999].
func Lookup(v int) uint32 {
	return table[v]
}

// Significant reports how many digits the packed entry prints without
// leading zeros.
func Significant(v uint32) int {
	return 3 - int(v>>24)
}

// WriteFirst writes the packed entry v without leading zeros and returns the
// number of bytes written.
func WriteFirst(buf []byte, pos int, v uint32) int {
	switch v >> 24 {
	case 0:
		buf[pos] = byte(v >> 16)
		buf[pos+1] = byte(v >> 8)
		buf[pos+2] = byte(v)
		return 3
	case 1:
		buf[pos] = byte(v >> 8)
		buf[pos+1] = byte(v)
		return 2
	}
	buf[pos] = byte(v)
	return 1
}

// WriteGroup writes all three digits of the packed entry v.
func WriteGroup(buf []byte, pos int, v uint32) {
	_ = buf[pos+2]
	buf[pos] = byte(v >> 16)
	buf[pos+1] = byte(v >> 8)
	buf[pos+2] = byte(v)
}

// Write4 writes value as exactly four digits. It panics if value is outside
// [0, 9999].
func Write4(value int, buf []byte, pos int) {
	if value < 0 || value > 9999 {
		panic(fmt.Sprintf("digits: only 4 digit numbers are supported, got %d", value))
	}
	q := value / 1000
	v := table[value-q*1000]
	buf[pos] = byte(q + '0')
	buf[pos+1] = byte(v >> 16)
	buf[pos+2] = byte(v >> 8)
	buf[pos+3] = byte(v)
}

// Write3 writes value, in [0, 999], as exactly three digits.
func Write3(value int, buf []byte, pos int) {
	WriteGroup(buf, pos, table[value])
}

// Write2 writes value, in [0, 99], as exactly two digits.
func Write2(value int, buf []byte, pos int) {
	v := table[value]
	buf[pos] = byte(v >> 8)
	buf[pos+1] = byte(v)
}

// Read2 decodes two ASCII digits at pos. The bytes are not validated.
func Read2(buf []byte, pos int) int {
	v1 := int(buf[pos]) - '0'
	return (v1 << 3) + (v1 << 1) + int(buf[pos+1]) - '0'
}

// Read4 decodes four ASCII digits at pos. The bytes are not validated.
func Read4(buf []byte, pos int) int {
	v2 := int(buf[pos+1]) - '0'
	v3 := int(buf[pos+2]) - '0'
	return (int(buf[pos])-'0')*1000 +
		(v2 << 6) + (v2 << 5) + (v2 << 2) +
		(v3 << 3) + (v3 << 1) +
		int(buf[pos+3]) - '0'
}
