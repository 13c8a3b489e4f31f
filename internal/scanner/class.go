package scanner

// Character classes used when splitting number tokens out of a JSON stream.
const (
	ClassDigit      = 0x01 // 0-9
	ClassSign       = 0x02 // + -
	ClassDot        = 0x04 // .
	ClassExponent   = 0x08 // e E
	ClassWhitespace = 0x10 // space, tab, newline, carriage return
	ClassStructural = 0x20 // , : [ ] { }
	ClassQuote      = 0x40 // "
	ClassBlank      = 0x80 // form feed, vertical tab

	classNumber    = ClassDigit | ClassSign | ClassDot | ClassExponent
	classDelimiter = ClassWhitespace | ClassStructural | ClassQuote
)

var classes [256]uint8

func init() {
	for c := '0'; c <= '9'; c++ {
		classes[c] = ClassDigit
	}
	classes['+'] = ClassSign
	classes['-'] = ClassSign
	classes['.'] = ClassDot
	classes['e'] = ClassExponent
	classes['E'] = ClassExponent
	for _, c := range []byte{' ', '\t', '\n', '\r'} {
		classes[c] = ClassWhitespace
	}
	for _, c := range []byte{',', ':', '[', ']', '{', '}'} {
		classes[c] = ClassStructural
	}
	classes['"'] = ClassQuote
	classes['\f'] = ClassBlank
	classes['\v'] = ClassBlank
}

// Class returns the class bits of c.
func Class(c byte) uint8 { return classes[c] }

// IsDigit reports whether c is an ASCII digit.
func IsDigit(c byte) bool { return classes[c] == ClassDigit }

// IsNumberChar reports whether c can appear inside an unquoted number token.
func IsNumberChar(c byte) bool { return classes[c]&classNumber != 0 }

// IsDelimiter reports whether c terminates an unquoted token.
func IsDelimiter(c byte) bool { return classes[c]&classDelimiter != 0 }

// IsWhitespace reports whether c is JSON insignificant whitespace.
func IsWhitespace(c byte) bool { return classes[c] == ClassWhitespace }

// IsSpace is IsWhitespace widened with form feed and vertical tab. Quoted
// numbers are trimmed with it.
func IsSpace(c byte) bool { return classes[c]&(ClassWhitespace|ClassBlank) != 0 }

// TrimSpace strips IsSpace bytes from both ends of b.
func TrimSpace(b []byte) []byte {
	return TrimLeft(TrimRight(b))
}

// TrimRight strips trailing IsSpace bytes.
func TrimRight(b []byte) []byte {
	n := len(b)
	for n > 0 && IsSpace(b[n-1]) {
		n--
	}
	return b[:n]
}

// TrimLeft strips leading IsSpace bytes.
func TrimLeft(b []byte) []byte {
	i := 0
	for i < len(b) && IsSpace(b[i]) {
		i++
	}
	return b[i:]
}
