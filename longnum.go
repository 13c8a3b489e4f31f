package jsonnum

import (
	"go.uber.org/zap"

	"github.com/biggeezerdevelopment/jsonnum/internal/scanner"
)

// numberBuffer is a growable byte buffer that doubles when full.
type numberBuffer struct {
	b []byte
}

func (nb *numberBuffer) reset(initial int) {
	if cap(nb.b) < initial {
		nb.b = make([]byte, 0, initial)
	}
	nb.b = nb.b[:0]
}

// ensureCapacity makes room for n more bytes, doubling as needed.
func (nb *numberBuffer) ensureCapacity(n int) {
	need := len(nb.b) + n
	if need <= cap(nb.b) {
		return
	}
	c := max(cap(nb.b), 1)
	for c < need {
		c *= 2
	}
	grown := make([]byte, len(nb.b), c)
	copy(grown, nb.b)
	nb.b = grown
}

func (nb *numberBuffer) append(p ...byte) {
	nb.ensureCapacity(len(p))
	nb.b = append(nb.b, p...)
}

func (nb *numberBuffer) bytes() []byte { return nb.b }

func (nb *numberBuffer) capacity() int { return cap(nb.b) }

// readLongNumber completes a token that filled the lookahead window. It
// keeps pulling bytes while they can belong to a number.
func (r *Reader) readLongNumber(head []byte) []byte {
	r.long.reset(2 * len(head))
	r.long.append(head...)
	for {
		c, ok := r.peekByte()
		if !ok || !scanner.IsNumberChar(c) {
			break
		}
		r.long.append(c)
		r.head++
	}
	r.stats.LongTokens++
	tok := r.long.bytes()
	r.debug("long number token",
		zap.Int("offset", r.tokenStart),
		zap.Int("length", len(tok)),
		zap.Int("capacity", r.long.capacity()),
	)
	return tok
}
