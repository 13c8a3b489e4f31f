package jsonnum

import "github.com/cockroachdb/apd/v3"

// Sentinel bytes used when encoding arrays.
const (
	ArrayStart byte = '['
	ArrayEnd   byte = ']'
	Comma      byte = ','
)

// ReadArray walks a JSON array, calling fn once per element with the
// element as the current token. It reports null for a null literal.
func (r *Reader) ReadArray(fn func(*Reader) error) (null bool, err error) {
	if null, err = r.IsNull(); err != nil || null {
		return null, err
	}
	if err = r.Expect(ArrayStart); err != nil {
		return false, err
	}
	c, err := r.current()
	if err != nil {
		return false, err
	}
	if c == ArrayEnd {
		r.consume()
		return false, nil
	}
	for {
		if err = fn(r); err != nil {
			return false, err
		}
		if c, err = r.current(); err != nil {
			return false, err
		}
		switch c {
		case ArrayEnd:
			r.consume()
			return false, nil
		case Comma:
			r.consume()
		default:
			return false, r.unexpected(c)
		}
	}
}

// readSlice collects array elements with read. A null array yields nil, an
// empty one a non-nil empty slice.
func readSlice[T any](r *Reader, read func() (T, error)) ([]T, error) {
	out := make([]T, 0, 8)
	null, err := r.ReadArray(func(*Reader) error {
		v, err := read()
		if err != nil {
			return err
		}
		out = append(out, v)
		return nil
	})
	if err != nil || null {
		return nil, err
	}
	return out, nil
}

func (r *Reader) ReadInt32s() ([]int32, error) { return readSlice(r, r.ReadInt32) }

func (r *Reader) ReadInt64s() ([]int64, error) { return readSlice(r, r.ReadInt64) }

func (r *Reader) ReadFloat32s() ([]float32, error) { return readSlice(r, r.ReadFloat32) }

func (r *Reader) ReadFloat64s() ([]float64, error) { return readSlice(r, r.ReadFloat64) }

func (r *Reader) ReadDecimals() ([]*apd.Decimal, error) { return readSlice(r, r.ReadDecimal) }

func (r *Reader) ReadNumbers() ([]Number, error) { return readSlice(r, r.ReadNumber) }

func writeArray[T any](w *Writer, vs []T, write func(T)) {
	if vs == nil {
		w.WriteNull()
		return
	}
	w.buf = append(w.buf, ArrayStart)
	for i, v := range vs {
		if i > 0 {
			w.buf = append(w.buf, Comma)
		}
		write(v)
	}
	w.buf = append(w.buf, ArrayEnd)
}

// WriteInt16s writes vs as an array, or null when vs is nil.
func (w *Writer) WriteInt16s(vs []int16) {
	writeArray(w, vs, w.WriteInt16)
}

// WriteInt32s writes vs as an array, or null when vs is nil. Room for
// every element is reserved up front.
func (w *Writer) WriteInt32s(vs []int32) {
	if vs == nil {
		w.WriteNull()
		return
	}
	buf := w.EnsureCapacity(len(vs)*(maxInt32Len+1) + 2)
	start := w.Size()
	pos := start
	buf[pos] = ArrayStart
	pos++
	for i, v := range vs {
		if i > 0 {
			buf[pos] = Comma
			pos++
		}
		pos = putInt32(buf, pos, v)
	}
	buf[pos] = ArrayEnd
	w.Advance(pos + 1 - start)
}

// WriteInt64s writes vs as an array, or null when vs is nil.
func (w *Writer) WriteInt64s(vs []int64) {
	if vs == nil {
		w.WriteNull()
		return
	}
	buf := w.EnsureCapacity(len(vs)*(maxInt64Len+1) + 2)
	start := w.Size()
	pos := start
	buf[pos] = ArrayStart
	pos++
	for i, v := range vs {
		if i > 0 {
			buf[pos] = Comma
			pos++
		}
		pos = putInt64(buf, pos, v)
	}
	buf[pos] = ArrayEnd
	w.Advance(pos + 1 - start)
}

func (w *Writer) WriteFloat32s(vs []float32) { writeArray(w, vs, w.WriteFloat32) }

func (w *Writer) WriteFloat64s(vs []float64) { writeArray(w, vs, w.WriteFloat64) }

func (w *Writer) WriteDecimals(vs []*apd.Decimal) { writeArray(w, vs, w.WriteDecimal) }

func (w *Writer) WriteNumbers(vs []Number) { writeArray(w, vs, w.WriteNumber) }
