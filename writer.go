package jsonnum

import (
	"io"
	"math"
	"slices"
	"strconv"
	"sync"

	"github.com/cockroachdb/apd/v3"

	"github.com/biggeezerdevelopment/jsonnum/internal/digits"
)

const (
	minInt32Literal = "-2147483648"
	minInt64Literal = "-9223372036854775808"

	// Upper bounds on the bytes a single value can take.
	maxInt32Len = 11
	maxInt64Len = 21
	maxFloatLen = 32
)

// Writer is a growable output buffer for JSON numbers. Writes reserve room
// with EnsureCapacity, fill it in place and move the cursor with Advance.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	buf       []byte
	maxPooled int
}

var writerPool = sync.Pool{
	New: func() interface{} {
		return &Writer{
			buf:       make([]byte, 0, DefaultWriterCapacity),
			maxPooled: DefaultMaxPooledCapacity,
		}
	},
}

func getWriter() *Writer {
	w := writerPool.Get().(*Writer)
	w.buf = w.buf[:0]
	return w
}

func (w *Writer) release() {
	if cap(w.buf) > w.maxPooled {
		w.buf = make([]byte, 0, DefaultWriterCapacity)
	}
	writerPool.Put(w)
}

// NewWriter returns an empty Writer.
func NewWriter(opts ...Option) (*Writer, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return &Writer{
		buf:       make([]byte, 0, cfg.WriterCapacity),
		maxPooled: cfg.MaxPooledCapacity,
	}, nil
}

// EnsureCapacity guarantees room for n more bytes and returns the buffer
// extended to its full capacity. Bytes past Size are scratch until Advance
// commits them.
func (w *Writer) EnsureCapacity(n int) []byte {
	if cap(w.buf)-len(w.buf) < n {
		w.buf = slices.Grow(w.buf, n)
	}
	return w.buf[:cap(w.buf)]
}

// Size is the number of committed bytes.
func (w *Writer) Size() int { return len(w.buf) }

// Advance commits n bytes written after Size.
func (w *Writer) Advance(n int) { w.buf = w.buf[:len(w.buf)+n] }

// WriteByte appends c. It never fails.
func (w *Writer) WriteByte(c byte) error {
	w.buf = append(w.buf, c)
	return nil
}

// WriteASCII appends s verbatim.
func (w *Writer) WriteASCII(s string) { w.buf = append(w.buf, s...) }

// WriteNull appends the null literal.
func (w *Writer) WriteNull() { w.buf = append(w.buf, "null"...) }

// Bytes returns the committed bytes. They alias the Writer's buffer.
func (w *Writer) Bytes() []byte { return w.buf }

// Reset discards the committed bytes and keeps the buffer.
func (w *Writer) Reset() { w.buf = w.buf[:0] }

// WriteTo writes the committed bytes to dst and resets the Writer.
func (w *Writer) WriteTo(dst io.Writer) (int64, error) {
	n, err := dst.Write(w.buf)
	if err == nil {
		w.buf = w.buf[:0]
	}
	return int64(n), err
}

// putUint writes u using base-1000 groups, most significant first.
func putUint(buf []byte, pos int, u uint64) int {
	var groups [7]uint32
	n := 0
	for {
		q := u / 1000
		groups[n] = digits.Lookup(int(u - q*1000))
		n++
		if q == 0 {
			break
		}
		u = q
	}
	pos += digits.WriteFirst(buf, pos, groups[n-1])
	for i := n - 2; i >= 0; i-- {
		digits.WriteGroup(buf, pos, groups[i])
		pos += 3
	}
	return pos
}

func putInt32(buf []byte, pos int, v int32) int {
	if v < 0 {
		if v == math.MinInt32 {
			return pos + copy(buf[pos:], minInt32Literal)
		}
		buf[pos] = '-'
		pos++
		v = -v
	}
	return putUint(buf, pos, uint64(v))
}

func putInt64(buf []byte, pos int, v int64) int {
	if v < 0 {
		if v == math.MinInt64 {
			return pos + copy(buf[pos:], minInt64Literal)
		}
		buf[pos] = '-'
		pos++
		v = -v
	}
	return putUint(buf, pos, uint64(v))
}

func (w *Writer) WriteInt16(v int16) { w.WriteInt32(int32(v)) }

func (w *Writer) WriteInt32(v int32) {
	buf := w.EnsureCapacity(maxInt32Len)
	pos := w.Size()
	w.Advance(putInt32(buf, pos, v) - pos)
}

func (w *Writer) WriteInt64(v int64) {
	buf := w.EnsureCapacity(maxInt64Len)
	pos := w.Size()
	w.Advance(putInt64(buf, pos, v) - pos)
}

func (w *Writer) WriteFloat32(v float32) { w.writeFloat(float64(v), 32) }

func (w *Writer) WriteFloat64(v float64) { w.writeFloat(v, 64) }

// writeFloat emits the shortest representation that round-trips at
// bitSize. NaN and the infinities are written as quoted literals.
func (w *Writer) writeFloat(f float64, bitSize int) {
	switch {
	case math.IsNaN(f):
		w.WriteASCII(`"NaN"`)
		return
	case math.IsInf(f, 1):
		w.WriteASCII(`"Infinity"`)
		return
	case math.IsInf(f, -1):
		w.WriteASCII(`"-Infinity"`)
		return
	}
	w.EnsureCapacity(maxFloatLen)
	w.buf = appendFloat(w.buf, f, bitSize)
}

// appendFloat uses plain notation for magnitudes in [1e-6, 1e21) and
// exponent notation otherwise, with a minimal exponent (1e-7, not 1e-07).
func appendFloat(b []byte, f float64, bitSize int) []byte {
	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 {
		if bitSize == 64 && (abs < 1e-6 || abs >= 1e21) ||
			bitSize == 32 && (float32(abs) < 1e-6 || float32(abs) >= 1e21) {
			format = 'e'
		}
	}
	b = strconv.AppendFloat(b, f, format, -1, bitSize)
	if format == 'e' {
		n := len(b)
		if n >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
	}
	return b
}

// WriteDecimal writes d in plain notation where apd's %G format allows it.
// A nil d is written as null.
func (w *Writer) WriteDecimal(d *apd.Decimal) {
	if d == nil {
		w.WriteNull()
		return
	}
	switch d.Form {
	case apd.Finite:
		w.buf = d.Append(w.buf, 'G')
	case apd.Infinite:
		if d.Negative {
			w.WriteASCII(`"-Infinity"`)
		} else {
			w.WriteASCII(`"Infinity"`)
		}
	default:
		w.WriteASCII(`"NaN"`)
	}
}

// WriteNumber writes n in its own representation. Numbers read from JSON
// fractions are written with their original digits.
func (w *Writer) WriteNumber(n Number) {
	switch n.kind {
	case KindFloat64:
		if n.exact {
			w.writeScaled(n.mant, n.scale, n.mant < 0 || math.Signbit(n.f))
			return
		}
		w.WriteFloat64(n.f)
	case KindDecimal:
		w.WriteDecimal(n.d)
	default:
		w.WriteInt64(n.i)
	}
}

// writeScaled writes mant x 10^-scale in plain notation. neg carries the
// sign separately so a zero mantissa can still be written as -0.0.
func (w *Writer) writeScaled(mant int64, scale int, neg bool) {
	var tmp [maxInt64Len]byte
	u := uint64(mant)
	if mant < 0 {
		u = uint64(-mant)
	}
	n := putUint(tmp[:], 0, u)
	out := slices.Grow(w.buf, n+scale+3)
	if neg {
		out = append(out, '-')
	}
	if n <= scale {
		out = append(out, '0', '.')
		for i := n; i < scale; i++ {
			out = append(out, '0')
		}
		out = append(out, tmp[:n]...)
	} else {
		out = append(out, tmp[:n-scale]...)
		out = append(out, '.')
		out = append(out, tmp[n-scale:n]...)
	}
	w.buf = out
}

func (w *Writer) WriteInt32Ptr(v *int32) {
	if v == nil {
		w.WriteNull()
		return
	}
	w.WriteInt32(*v)
}

func (w *Writer) WriteInt64Ptr(v *int64) {
	if v == nil {
		w.WriteNull()
		return
	}
	w.WriteInt64(*v)
}

func (w *Writer) WriteFloat64Ptr(v *float64) {
	if v == nil {
		w.WriteNull()
		return
	}
	w.WriteFloat64(*v)
}
