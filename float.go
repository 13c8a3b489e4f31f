package jsonnum

import (
	"errors"
	"math"
	"strconv"

	"go.uber.org/zap"

	"github.com/biggeezerdevelopment/jsonnum/internal/digits"
	"github.com/biggeezerdevelopment/jsonnum/internal/scanner"
)

// Mantissas up to these bounds convert exactly, so a single division by an
// exact power of ten is correctly rounded.
const (
	maxExactFloat64 = 1 << 53
	maxExactFloat32 = 1 << 24
	maxPow10Float32 = 10
)

// fastFloat parses digits[.digits] tokens. The sign of a negative zero is
// kept.
func fastFloat(b []byte, bitSize int) (float64, bool) {
	i, neg := sign(b)
	v, end := accumulate(b, i, 0, neg)
	if end == i {
		return 0, false
	}
	scale := 0
	if end < len(b) {
		if b[end] != '.' {
			return 0, false
		}
		start := end + 1
		v, end = accumulate(b, start, v, neg)
		if end == start || end != len(b) {
			return 0, false
		}
		scale = end - start
	}

	var f float64
	if bitSize == 32 {
		if v > maxExactFloat32 || v < -maxExactFloat32 || scale > maxPow10Float32 {
			return 0, false
		}
		f = float64(float32(v) / float32(digits.Pow10[scale]))
	} else {
		if v > maxExactFloat64 || v < -maxExactFloat64 {
			return 0, false
		}
		f = float64(v) / digits.Pow10[scale]
	}
	if f == 0 && neg {
		f = math.Copysign(0, -1)
	}
	return f, true
}

// ReadFloat32 reads the current token as a float32. Quoted tokens may hold
// NaN, Infinity or -Infinity.
func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.readFloat("float32", 32)
	return float32(v), err
}

// ReadFloat64 reads the current token as a float64. Quoted tokens may hold
// NaN, Infinity or -Infinity.
func (r *Reader) ReadFloat64() (float64, error) {
	return r.readFloat("float64", 64)
}

func (r *Reader) readFloat(op string, bitSize int) (float64, error) {
	c, err := r.current()
	if err != nil {
		return 0, err
	}
	if c == '"' {
		s, err := r.readQuoted()
		if err != nil {
			return 0, err
		}
		return r.genericFloat(op, s, true, bitSize)
	}
	tok, err := r.numberSpan()
	if err != nil {
		return 0, err
	}
	if len(tok) <= FastPathLimit {
		if f, ok := fastFloat(tok, bitSize); ok {
			r.stats.FastPath++
			return f, nil
		}
	}
	return r.genericFloat(op, tok, false, bitSize)
}

// floatSyntax reports whether s may be handed to strconv. strconv also
// takes Go literals (underscores, hex, inf), so anything outside the JSON
// number characters is refused, except the non-finite literals in quotes.
func floatSyntax(s []byte, quoted bool) bool {
	if quoted {
		switch string(s) {
		case "NaN", "Infinity", "-Infinity":
			return true
		}
	}
	for _, c := range s {
		if !scanner.IsNumberChar(c) {
			return false
		}
	}
	return true
}

// genericFloat parses tok with strconv. Out-of-range values saturate to
// the signed infinity or zero instead of failing.
func (r *Reader) genericFloat(op string, tok []byte, quoted bool, bitSize int) (float64, error) {
	r.stats.Generic++
	s := scanner.TrimSpace(tok)
	if !floatSyntax(s, quoted) {
		r.debug("invalid number syntax",
			zap.String("op", op),
			zap.Int("offset", r.tokenStart),
			zap.Int("length", len(tok)),
		)
		return 0, newNumberError(op, r.tokenStart, string(tok), ErrMalformedNumber, nil)
	}
	f, err := strconv.ParseFloat(string(s), bitSize)
	if err == nil {
		return f, nil
	}
	var numErr *strconv.NumError
	if errors.As(err, &numErr) && numErr.Err == strconv.ErrRange {
		return f, nil
	}
	r.debug("generic number parse failed",
		zap.String("op", op),
		zap.Int("offset", r.tokenStart),
		zap.Int("length", len(tok)),
		zap.Error(err),
	)
	return 0, newNumberError(op, r.tokenStart, string(tok), ErrMalformedNumber, err)
}
