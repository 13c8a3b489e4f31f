package jsonnum

import (
	"math"
	"strconv"

	"github.com/cockroachdb/apd/v3"

	"github.com/biggeezerdevelopment/jsonnum/internal/digits"
)

// Kind tags the representation held by a Number.
type Kind uint8

const (
	KindInt64 Kind = iota
	KindFloat64
	KindDecimal
)

func (k Kind) String() string {
	switch k {
	case KindInt64:
		return "int64"
	case KindFloat64:
		return "float64"
	case KindDecimal:
		return "decimal"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Number is the smallest representation that holds a JSON number exactly:
// an int64 for plain integers, a float64 for short fractions and an apd
// decimal for everything else. Float64 numbers read from JSON also keep
// their exact mantissa and scale. The zero value is the integer 0.
type Number struct {
	kind  Kind
	i     int64
	f     float64
	mant  int64
	scale int
	exact bool
	d     *apd.Decimal
}

func NumberFromInt64(v int64) Number {
	return Number{kind: KindInt64, i: v}
}

func NumberFromFloat64(v float64) Number {
	return Number{kind: KindFloat64, f: v}
}

// NumberFromDecimal wraps d without copying it. A nil d is treated as zero.
func NumberFromDecimal(d *apd.Decimal) Number {
	if d == nil {
		d = apd.New(0, 0)
	}
	return Number{kind: KindDecimal, d: d}
}

func numberFromScaled(s scaled, neg bool) Number {
	f := float64(s.mant) / digits.Pow10[s.scale]
	if f == 0 && neg {
		f = math.Copysign(0, -1)
	}
	return Number{kind: KindFloat64, f: f, mant: s.mant, scale: s.scale, exact: true}
}

func (n Number) Kind() Kind { return n.kind }

// Int64 returns n as an int64 and whether the conversion is exact.
func (n Number) Int64() (int64, bool) {
	switch n.kind {
	case KindFloat64:
		if n.f != math.Trunc(n.f) || n.f < math.MinInt64 || n.f >= math.MaxInt64 {
			return 0, false
		}
		return int64(n.f), true
	case KindDecimal:
		var red apd.Decimal
		red.Reduce(n.d)
		if red.Form != apd.Finite || red.Exponent < 0 {
			return 0, false
		}
		v, err := red.Int64()
		return v, err == nil
	}
	return n.i, true
}

// Float64 returns the nearest float64. Decimals beyond the float64 range
// become infinities.
func (n Number) Float64() float64 {
	switch n.kind {
	case KindFloat64:
		return n.f
	case KindDecimal:
		f, _ := n.d.Float64()
		return f
	}
	return float64(n.i)
}

// Decimal returns n as a newly allocated decimal. Numbers read from JSON
// convert without loss.
func (n Number) Decimal() *apd.Decimal {
	switch n.kind {
	case KindFloat64:
		if n.exact {
			return apd.New(n.mant, -int32(n.scale))
		}
		d := new(apd.Decimal)
		if _, err := d.SetFloat64(n.f); err != nil {
			return apd.New(0, 0)
		}
		return d
	case KindDecimal:
		return new(apd.Decimal).Set(n.d)
	}
	return apd.New(n.i, 0)
}

func (n Number) String() string {
	return string(AppendNumber(nil, n))
}

func (n Number) MarshalJSON() ([]byte, error) {
	return AppendNumber(nil, n), nil
}

func (n *Number) UnmarshalJSON(data []byte) error {
	v, err := ParseNumber(data)
	if err != nil {
		return err
	}
	*n = v
	return nil
}

// ReadNumber reads the current token as a Number. Quoted tokens are parsed
// from their content.
func (r *Reader) ReadNumber() (Number, error) {
	c, err := r.current()
	if err != nil {
		return Number{}, err
	}
	var tok []byte
	if c == '"' {
		tok, err = r.readQuoted()
	} else {
		tok, err = r.numberSpan()
	}
	if err != nil {
		return Number{}, err
	}

	if len(tok) <= FastPathLimit {
		if s, ok := fastScaled(tok); ok {
			r.stats.FastPath++
			switch {
			case s.hasExp:
				return NumberFromDecimal(s.decimal()), nil
			case s.frac:
				return numberFromScaled(s, tok[0] == '-'), nil
			default:
				return NumberFromInt64(s.mant), nil
			}
		}
	}
	d, err := r.genericDecimal("number", tok)
	if err != nil {
		return Number{}, err
	}
	return NumberFromDecimal(d), nil
}
