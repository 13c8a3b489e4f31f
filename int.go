package jsonnum

import (
	"math"
	"strconv"

	"github.com/biggeezerdevelopment/jsonnum/internal/scanner"
)

// sign returns the index of the first digit and whether the token is
// negative. A leading '+' is tolerated.
func sign(b []byte) (int, bool) {
	if len(b) > 0 {
		switch b[0] {
		case '-':
			return 1, true
		case '+':
			return 1, false
		}
	}
	return 0, false
}

// accumulate folds the digits of b[i:] into acc and returns the index of the
// first non-digit. Negative numbers accumulate downwards so the most
// negative value is reachable.
func accumulate(b []byte, i int, acc int64, neg bool) (int64, int) {
	if scanner.HasSWAR() {
		for len(b)-i >= 8 {
			w := scanner.Load(b, i)
			if !scanner.IsEightDigits(w) {
				break
			}
			v := int64(scanner.ParseEightDigits(w))
			if neg {
				acc = acc*100000000 - v
			} else {
				acc = acc*100000000 + v
			}
			i += 8
		}
	}
	for ; i < len(b); i++ {
		d := int64(b[i]) - '0'
		if d < 0 || d > 9 {
			break
		}
		if neg {
			acc = (acc << 3) + (acc << 1) - d
		} else {
			acc = (acc << 3) + (acc << 1) + d
		}
	}
	return acc, i
}

// fastInt parses a digit-only token. Callers bound the length so the int64
// accumulator cannot overflow.
func fastInt(b []byte) (int64, bool) {
	i, neg := sign(b)
	if i == len(b) {
		return 0, false
	}
	v, end := accumulate(b, i, 0, neg)
	return v, end == len(b)
}

// ReadInt16 reads the current token as an int16.
func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.readInt("int16", math.MinInt16, math.MaxInt16)
	return int16(v), err
}

// ReadInt32 reads the current token as an int32.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.readInt("int32", math.MinInt32, math.MaxInt32)
	return int32(v), err
}

// ReadInt64 reads the current token as an int64.
func (r *Reader) ReadInt64() (int64, error) {
	return r.readInt("int64", math.MinInt64, math.MaxInt64)
}

func (r *Reader) readInt(op string, lo, hi int64) (int64, error) {
	c, err := r.current()
	if err != nil {
		return 0, err
	}
	if c == '"' {
		s, err := r.readQuoted()
		if err != nil {
			return 0, err
		}
		return r.genericInt(op, s, lo, hi)
	}
	tok, err := r.numberSpan()
	if err != nil {
		return 0, err
	}
	if len(tok) <= FastPathLimit {
		if v, ok := fastInt(tok); ok {
			r.stats.FastPath++
			if v < lo || v > hi {
				return 0, newNumberError(op, r.tokenStart, strconv.FormatInt(v, 10), ErrTypeMismatch, nil)
			}
			return v, nil
		}
	}
	return r.genericInt(op, tok, lo, hi)
}

// genericInt parses tok as a decimal and requires it to be a whole number
// in [lo, hi]. Exponents are accepted as long as the scale stays
// non-positive, so 1e3 is 1000 but 1.0 is rejected.
func (r *Reader) genericInt(op string, tok []byte, lo, hi int64) (int64, error) {
	d, err := r.genericDecimal(op, tok)
	if err != nil {
		return 0, err
	}
	if d.Exponent < 0 {
		return 0, newNumberError(op, r.tokenStart, d.String(), ErrTypeMismatch, nil)
	}
	v, err := d.Int64()
	if err != nil || v < lo || v > hi {
		return 0, newNumberError(op, r.tokenStart, d.String(), ErrTypeMismatch, err)
	}
	return v, nil
}
