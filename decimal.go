package jsonnum

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
	"go.uber.org/zap"

	"github.com/biggeezerdevelopment/jsonnum/internal/scanner"
)

// maxFastExponent bounds exponents taken by the fast path; anything larger
// is left to apd's range checks.
const maxFastExponent = 1 << 20

// scaled is a token split into mantissa x 10^(exp-scale).
type scaled struct {
	mant   int64
	scale  int // digits after the decimal point
	exp    int64
	frac   bool
	hasExp bool
}

// fastScaled splits a short token into its integer, fraction and exponent
// parts. Anything outside digits[.digits][(e|E)[sign]digits] is rejected.
func fastScaled(b []byte) (scaled, bool) {
	var s scaled
	i, neg := sign(b)
	v, end := accumulate(b, i, 0, neg)
	if end == i {
		return s, false
	}
	s.mant = v
	if end < len(b) && b[end] == '.' {
		start := end + 1
		v, end = accumulate(b, start, v, neg)
		if end == start {
			return s, false
		}
		s.mant, s.scale, s.frac = v, end-start, true
	}
	if end < len(b) && (b[end] == 'e' || b[end] == 'E') {
		e, ok := fastInt(b[end+1:])
		if !ok || e > maxFastExponent || e < -maxFastExponent {
			return s, false
		}
		s.exp, s.hasExp = e, true
		end = len(b)
	}
	return s, end == len(b)
}

func (s scaled) decimal() *apd.Decimal {
	return apd.New(s.mant, int32(s.exp-int64(s.scale)))
}

// ReadDecimal reads the current token as an exact decimal.
func (r *Reader) ReadDecimal() (*apd.Decimal, error) {
	c, err := r.current()
	if err != nil {
		return nil, err
	}
	if c == '"' {
		s, err := r.readQuoted()
		if err != nil {
			return nil, err
		}
		return r.genericDecimal("decimal", s)
	}
	tok, err := r.numberSpan()
	if err != nil {
		return nil, err
	}
	if len(tok) <= FastPathLimit {
		if s, ok := fastScaled(tok); ok {
			r.stats.FastPath++
			return s.decimal(), nil
		}
	}
	return r.genericDecimal("decimal", tok)
}

// genericDecimal parses tok with apd after trimming trailing whitespace.
// Only finite values are accepted.
func (r *Reader) genericDecimal(op string, tok []byte) (*apd.Decimal, error) {
	r.stats.Generic++
	d, _, err := apd.NewFromString(string(scanner.TrimRight(tok)))
	if err == nil && d.Form != apd.Finite {
		err = fmt.Errorf("%s is not a finite number", d.Form)
	}
	if err != nil {
		r.debug("generic number parse failed",
			zap.String("op", op),
			zap.Int("offset", r.tokenStart),
			zap.Int("length", len(tok)),
			zap.Error(err),
		)
		return nil, newNumberError(op, r.tokenStart, string(tok), ErrMalformedNumber, err)
	}
	return d, nil
}
