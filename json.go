// Package jsonnum reads and writes JSON numbers.
//
// Short tokens (up to FastPathLimit bytes) are converted by allocation-free
// fast paths built on shift-add digit accumulation and a base-1000 digit
// table. Longer tokens, exponents and anything the fast paths reject fall
// back to strconv for floats and to apd for exact decimals.
//
// Numbers may also arrive quoted. Quoted "NaN", "Infinity" and "-Infinity"
// carry the float values JSON cannot express, and writers emit them the
// same way.
package jsonnum

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cockroachdb/apd/v3"
)

var ErrUnsupportedType = errors.New("unsupported type")

var readerPool = sync.Pool{
	New: func() interface{} {
		return newReader(DefaultConfig())
	},
}

func getReader(data []byte) *Reader {
	r := readerPool.Get().(*Reader)
	r.Reset(data)
	return r
}

func (r *Reader) release() {
	r.buf = nil
	if r.long.capacity() > DefaultMaxPooledCapacity {
		r.long = numberBuffer{}
	}
	if cap(r.quoted) > DefaultMaxPooledCapacity {
		r.quoted = make([]byte, 0, 32)
	}
	readerPool.Put(r)
}

func parse[T any](data []byte, read func(*Reader) (T, error)) (T, error) {
	r := getReader(data)
	defer r.release()

	v, err := read(r)
	if err == nil {
		err = r.End()
	}
	if err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// ParseInt32 parses data, which must hold exactly one number.
func ParseInt32(data []byte) (int32, error) { return parse(data, (*Reader).ReadInt32) }

func ParseInt64(data []byte) (int64, error) { return parse(data, (*Reader).ReadInt64) }

func ParseFloat32(data []byte) (float32, error) { return parse(data, (*Reader).ReadFloat32) }

func ParseFloat64(data []byte) (float64, error) { return parse(data, (*Reader).ReadFloat64) }

func ParseDecimal(data []byte) (*apd.Decimal, error) { return parse(data, (*Reader).ReadDecimal) }

func ParseNumber(data []byte) (Number, error) { return parse(data, (*Reader).ReadNumber) }

// Valid reports whether data is a single number, bare or quoted.
func Valid(data []byte) bool {
	_, err := ParseNumber(data)
	return err == nil
}

// AppendInt32 appends the JSON form of v to dst.
func AppendInt32(dst []byte, v int32) []byte {
	w := Writer{buf: dst}
	w.WriteInt32(v)
	return w.buf
}

func AppendInt64(dst []byte, v int64) []byte {
	w := Writer{buf: dst}
	w.WriteInt64(v)
	return w.buf
}

func AppendFloat32(dst []byte, v float32) []byte {
	w := Writer{buf: dst}
	w.WriteFloat32(v)
	return w.buf
}

func AppendFloat64(dst []byte, v float64) []byte {
	w := Writer{buf: dst}
	w.WriteFloat64(v)
	return w.buf
}

func AppendDecimal(dst []byte, d *apd.Decimal) []byte {
	w := Writer{buf: dst}
	w.WriteDecimal(d)
	return w.buf
}

func AppendNumber(dst []byte, n Number) []byte {
	w := Writer{buf: dst}
	w.WriteNumber(n)
	return w.buf
}

// Marshal encodes a number, a slice of numbers or a pointer to either.
func Marshal(v interface{}) ([]byte, error) {
	w := getWriter()
	defer w.release()

	if err := w.encode(v); err != nil {
		return nil, err
	}
	result := make([]byte, len(w.buf))
	copy(result, w.buf)
	return result, nil
}

func (w *Writer) encode(v interface{}) error {
	switch v := v.(type) {
	case nil:
		w.WriteNull()
	case int:
		w.WriteInt64(int64(v))
	case int16:
		w.WriteInt16(v)
	case int32:
		w.WriteInt32(v)
	case int64:
		w.WriteInt64(v)
	case float32:
		w.WriteFloat32(v)
	case float64:
		w.WriteFloat64(v)
	case *apd.Decimal:
		w.WriteDecimal(v)
	case Number:
		w.WriteNumber(v)
	case *int32:
		w.WriteInt32Ptr(v)
	case *int64:
		w.WriteInt64Ptr(v)
	case *float64:
		w.WriteFloat64Ptr(v)
	case []int16:
		w.WriteInt16s(v)
	case []int32:
		w.WriteInt32s(v)
	case []int64:
		w.WriteInt64s(v)
	case []float32:
		w.WriteFloat32s(v)
	case []float64:
		w.WriteFloat64s(v)
	case []*apd.Decimal:
		w.WriteDecimals(v)
	case []Number:
		w.WriteNumbers(v)
	default:
		return fmt.Errorf("jsonnum: cannot marshal %T: %w", v, ErrUnsupportedType)
	}
	return nil
}

// Unmarshal decodes data into v, which must point to a type Marshal
// accepts. A null array leaves a nil slice.
func Unmarshal(data []byte, v interface{}) error {
	r := getReader(data)
	defer r.release()

	if err := r.decode(v); err != nil {
		return err
	}
	return r.End()
}

func (r *Reader) decode(v interface{}) error {
	var err error
	switch v := v.(type) {
	case *int16:
		*v, err = r.ReadInt16()
	case *int32:
		*v, err = r.ReadInt32()
	case *int64:
		*v, err = r.ReadInt64()
	case *float32:
		*v, err = r.ReadFloat32()
	case *float64:
		*v, err = r.ReadFloat64()
	case *apd.Decimal:
		var d *apd.Decimal
		if d, err = r.ReadDecimal(); err == nil {
			v.Set(d)
		}
	case *Number:
		*v, err = r.ReadNumber()
	case *[]int32:
		*v, err = r.ReadInt32s()
	case *[]int64:
		*v, err = r.ReadInt64s()
	case *[]float32:
		*v, err = r.ReadFloat32s()
	case *[]float64:
		*v, err = r.ReadFloat64s()
	case *[]*apd.Decimal:
		*v, err = r.ReadDecimals()
	case *[]Number:
		*v, err = r.ReadNumbers()
	default:
		return fmt.Errorf("jsonnum: cannot unmarshal into %T: %w", v, ErrUnsupportedType)
	}
	return err
}
