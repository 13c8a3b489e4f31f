package jsonnum

import (
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/biggeezerdevelopment/jsonnum/internal/scanner"
)

// Stats counts how a Reader resolved the numbers it has read.
type Stats struct {
	FastPath   uint64 // tokens converted by a fast path
	Generic    uint64 // tokens handed to strconv or apd
	LongTokens uint64 // tokens that overflowed the lookahead window
}

// Reader tokenizes a JSON stream far enough to pull numbers out of it. It
// keeps a single current token: NextToken positions it and a typed read
// consumes it. A typed read without a current token advances first.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	src    io.Reader
	buf    []byte
	stream []byte // owned read-ahead buffer for src
	head   int
	tail   int
	base   int // source offset of buf[0]
	eof    bool
	ioErr  error

	window []byte
	quoted []byte
	long   numberBuffer

	last       byte
	pending    bool
	tokenStart int

	cfg    *Config
	logger *zap.Logger
	stats  Stats
}

// NewReader returns a Reader streaming from src.
func NewReader(src io.Reader, opts ...Option) (*Reader, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	r := newReader(cfg)
	r.ResetReader(src)
	return r, nil
}

// NewBytesReader returns a Reader over data. The slice is read in place and
// must not be modified while the Reader uses it.
func NewBytesReader(data []byte, opts ...Option) (*Reader, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	r := newReader(cfg)
	r.Reset(data)
	return r, nil
}

func newReader(cfg *Config) *Reader {
	return &Reader{
		window: make([]byte, 0, cfg.NumberWindow),
		quoted: make([]byte, 0, 32),
		cfg:    cfg,
		logger: cfg.Logger,
	}
}

// Reset points the Reader at data and clears its state and stats.
func (r *Reader) Reset(data []byte) {
	r.src = nil
	r.buf = data
	r.head, r.tail, r.base = 0, len(data), 0
	r.eof = true
	r.reset()
}

// ResetReader points the Reader at src and clears its state and stats.
func (r *Reader) ResetReader(src io.Reader) {
	if r.stream == nil {
		r.stream = make([]byte, r.cfg.BufferSize)
	}
	r.src = src
	r.buf = r.stream
	r.head, r.tail, r.base = 0, 0, 0
	r.eof = false
	r.reset()
}

func (r *Reader) reset() {
	r.ioErr = nil
	r.last = 0
	r.pending = false
	r.tokenStart = 0
	r.stats = Stats{}
}

// Stats returns the counters accumulated since the last reset.
func (r *Reader) Stats() Stats { return r.stats }

// CurrentIndex is the source offset of the next unread byte.
func (r *Reader) CurrentIndex() int { return r.base + r.head }

// TokenStart is the source offset of the current or last consumed token.
func (r *Reader) TokenStart() int { return r.tokenStart }

func (r *Reader) fill() bool {
	if r.head < r.tail {
		return true
	}
	if r.src == nil || r.eof {
		return false
	}
	r.base += r.tail
	r.head, r.tail = 0, 0
	for {
		n, err := r.src.Read(r.buf)
		r.tail = n
		if err != nil {
			r.eof = true
			if err != io.EOF {
				r.ioErr = err
			}
		}
		if n > 0 || r.eof {
			return n > 0
		}
	}
}

func (r *Reader) peekByte() (byte, bool) {
	if !r.fill() {
		return 0, false
	}
	return r.buf[r.head], true
}

func (r *Reader) readByte() (byte, bool) {
	if !r.fill() {
		return 0, false
	}
	c := r.buf[r.head]
	r.head++
	return c, true
}

// endOfInput is io.EOF for a clean end, or the source's error.
func (r *Reader) endOfInput() error {
	if r.ioErr != nil {
		return r.ioErr
	}
	return io.EOF
}

// NextToken skips whitespace and makes the next byte the current token. At
// the end of input it returns io.EOF.
func (r *Reader) NextToken() (byte, error) {
	for {
		c, ok := r.readByte()
		if !ok {
			r.pending = false
			return 0, r.endOfInput()
		}
		if scanner.IsWhitespace(c) {
			continue
		}
		r.last = c
		r.pending = true
		r.tokenStart = r.CurrentIndex() - 1
		return c, nil
	}
}

// Last returns the current token byte, or 0 when there is none.
func (r *Reader) Last() byte {
	if !r.pending {
		return 0
	}
	return r.last
}

func (r *Reader) current() (byte, error) {
	if r.pending {
		return r.last, nil
	}
	c, err := r.NextToken()
	if err == io.EOF {
		return 0, io.ErrUnexpectedEOF
	}
	return c, err
}

func (r *Reader) consume() { r.pending = false }

// IsNull consumes the current token and reports true if it is the null
// literal. Any other token is left in place.
func (r *Reader) IsNull() (bool, error) {
	c, err := r.current()
	if err != nil {
		return false, err
	}
	if c != 'n' {
		return false, nil
	}
	for _, want := range []byte("ull") {
		got, ok := r.readByte()
		if !ok {
			return false, io.ErrUnexpectedEOF
		}
		if got != want {
			return false, r.unexpected(got)
		}
	}
	r.consume()
	return true, nil
}

// Expect consumes the current token if it is c.
func (r *Reader) Expect(c byte) error {
	got, err := r.current()
	if err != nil {
		return err
	}
	if got != c {
		return r.unexpected(got)
	}
	r.consume()
	return nil
}

// End checks that only whitespace remains in the input.
func (r *Reader) End() error {
	if r.pending {
		return r.unexpected(r.last)
	}
	c, err := r.NextToken()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return err
	}
	return fmt.Errorf("jsonnum: trailing data at position %d: %w", r.tokenStart, r.unexpectedErr(c))
}

func (r *Reader) unexpected(c byte) error {
	return fmt.Errorf("jsonnum: position %d: %w", r.tokenStart, r.unexpectedErr(c))
}

func (r *Reader) unexpectedErr(c byte) error {
	return fmt.Errorf("unexpected character %q: %w", c, ErrInvalidJSON)
}

// readNumber collects the current bare token into the lookahead window. The
// delimiter that ends it stays unread. A full window means the token may
// continue.
func (r *Reader) readNumber() []byte {
	w := append(r.window[:0], r.last)
	for len(w) < cap(w) {
		c, ok := r.peekByte()
		if !ok || scanner.IsDelimiter(c) {
			break
		}
		w = append(w, c)
		r.head++
	}
	r.window = w
	return w
}

// numberSpan consumes the current bare token and returns its bytes. The
// result is only valid until the next read.
func (r *Reader) numberSpan() ([]byte, error) {
	if scanner.Class(r.last)&(scanner.ClassStructural|scanner.ClassWhitespace) != 0 {
		return nil, r.unexpected(r.last)
	}
	tok := r.readNumber()
	r.consume()
	if len(tok) > FastPathLimit && len(tok) == cap(r.window) {
		tok = r.readLongNumber(tok)
	}
	return tok, nil
}

// readQuoted consumes the current string token and returns its content with
// escapes resolved and surrounding whitespace trimmed.
func (r *Reader) readQuoted() ([]byte, error) {
	r.consume()
	out := r.quoted[:0]
	for {
		c, ok := r.readByte()
		if !ok {
			return nil, r.truncated()
		}
		switch c {
		case '"':
			r.quoted = out
			return scanner.TrimSpace(out), nil
		case '\\':
			e, ok := r.readByte()
			if !ok {
				return nil, r.truncated()
			}
			switch e {
			case '"', '\\', '/':
				out = append(out, e)
			case 'b':
				out = append(out, '\b')
			case 'f':
				out = append(out, '\f')
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			case 'u':
				var hex [4]byte
				for i := range hex {
					if hex[i], ok = r.readByte(); !ok {
						return nil, r.truncated()
					}
				}
				cp, err := strconv.ParseUint(string(hex[:]), 16, 16)
				if err != nil {
					return nil, fmt.Errorf("jsonnum: invalid unicode escape at position %d: %w", r.CurrentIndex()-6, ErrInvalidJSON)
				}
				out = utf8.AppendRune(out, rune(cp))
			default:
				return nil, fmt.Errorf("jsonnum: invalid escape %q at position %d: %w", e, r.CurrentIndex()-2, ErrInvalidJSON)
			}
		default:
			out = append(out, c)
		}
	}
}

func (r *Reader) truncated() error {
	if r.ioErr != nil {
		return r.ioErr
	}
	return io.ErrUnexpectedEOF
}

func (r *Reader) debug(msg string, fields ...zap.Field) {
	if ce := r.logger.Check(zapcore.DebugLevel, msg); ce != nil {
		ce.Write(fields...)
	}
}
