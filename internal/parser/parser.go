// Package parser walks whole JSON documents and reads every number in them
// with jsonnum.
package parser

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/biggeezerdevelopment/jsonnum"
	"github.com/biggeezerdevelopment/jsonnum/internal/scanner"
)

// NumberFunc converts the number that is the current token of r and writes
// the result to w.
type NumberFunc func(r *jsonnum.Reader, w *jsonnum.Writer) error

// Parser decodes documents into nil, bool, string, jsonnum.Number,
// []interface{} and map[string]interface{}, or rewrites them compactly with
// every number passed through a NumberFunc.
//
// A Parser is not safe for concurrent use.
type Parser struct {
	data  []byte
	pos   int
	num   *jsonnum.Reader
	w     *jsonnum.Writer // nil unless rewriting
	fn    NumberFunc
	stats jsonnum.Stats
}

func New(opts ...jsonnum.Option) (*Parser, error) {
	r, err := jsonnum.NewBytesReader(nil, opts...)
	if err != nil {
		return nil, err
	}
	return &Parser{num: r}, nil
}

// Stats returns the number reader counters summed over the last call.
func (p *Parser) Stats() jsonnum.Stats { return p.stats }

func (p *Parser) Parse(data []byte) (interface{}, error) {
	p.reset(data, nil, nil)
	v, err := p.value()
	if err != nil {
		return nil, err
	}
	return v, p.end()
}

// Rewrite writes data to w without insignificant whitespace. Strings,
// literals and structure are copied as they are; numbers go through fn.
func (p *Parser) Rewrite(w *jsonnum.Writer, data []byte, fn NumberFunc) error {
	p.reset(data, w, fn)
	defer func() { p.w, p.fn = nil, nil }()
	if _, err := p.value(); err != nil {
		return err
	}
	return p.end()
}

func (p *Parser) reset(data []byte, w *jsonnum.Writer, fn NumberFunc) {
	p.data = data
	p.pos = 0
	p.w = w
	p.fn = fn
	p.stats = jsonnum.Stats{}
}

func (p *Parser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("parser: offset %d: %s: %w", p.pos, fmt.Sprintf(format, args...), jsonnum.ErrInvalidJSON)
}

func (p *Parser) skip() {
	for p.pos < len(p.data) && scanner.IsWhitespace(p.data[p.pos]) {
		p.pos++
	}
}

func (p *Parser) end() error {
	p.skip()
	if p.pos < len(p.data) {
		return p.errorf("trailing data")
	}
	return nil
}

func (p *Parser) raw(b []byte) {
	if p.w == nil {
		return
	}
	buf := p.w.EnsureCapacity(len(b))
	p.w.Advance(copy(buf[p.w.Size():], b))
}

func (p *Parser) value() (interface{}, error) {
	p.skip()
	if p.pos >= len(p.data) {
		return nil, p.errorf("unexpected end of JSON")
	}

	switch c := p.data[p.pos]; {
	case c == '{':
		return p.parseObject()
	case c == '[':
		return p.parseArray()
	case c == '"':
		return p.parseString()
	case c == 't':
		return p.literal("true", true)
	case c == 'f':
		return p.literal("false", false)
	case c == 'n':
		return p.literal("null", nil)
	case c == '-' || scanner.IsDigit(c):
		return p.parseNumber()
	default:
		return nil, p.errorf("unexpected character %q", c)
	}
}

// next skips whitespace and consumes one of the structural bytes in want.
func (p *Parser) next(want string) (byte, error) {
	p.skip()
	if p.pos >= len(p.data) {
		return 0, p.errorf("unexpected end of JSON")
	}
	c := p.data[p.pos]
	for i := 0; i < len(want); i++ {
		if c == want[i] {
			p.pos++
			p.raw(p.data[p.pos-1 : p.pos])
			return c, nil
		}
	}
	return 0, p.errorf("expected one of %q, found %q", want, c)
}

func (p *Parser) parseObject() (map[string]interface{}, error) {
	var obj map[string]interface{}
	if p.w == nil {
		obj = make(map[string]interface{})
	}
	p.pos++
	p.raw([]byte{'{'})

	p.skip()
	if p.pos < len(p.data) && p.data[p.pos] == '}' {
		p.pos++
		p.raw([]byte{'}'})
		return obj, nil
	}

	for {
		p.skip()
		if p.pos >= len(p.data) || p.data[p.pos] != '"' {
			return nil, p.errorf("expected string key")
		}
		key, err := p.parseString()
		if err != nil {
			return nil, err
		}
		if _, err := p.next(":"); err != nil {
			return nil, err
		}
		value, err := p.value()
		if err != nil {
			return nil, err
		}
		if obj != nil {
			obj[key.(string)] = value
		}

		c, err := p.next(",}")
		if err != nil {
			return nil, err
		}
		if c == '}' {
			return obj, nil
		}
	}
}

func (p *Parser) parseArray() ([]interface{}, error) {
	var arr []interface{}
	if p.w == nil {
		arr = make([]interface{}, 0, 8)
	}
	p.pos++
	p.raw([]byte{'['})

	p.skip()
	if p.pos < len(p.data) && p.data[p.pos] == ']' {
		p.pos++
		p.raw([]byte{']'})
		return arr, nil
	}

	for {
		value, err := p.value()
		if err != nil {
			return nil, err
		}
		if p.w == nil {
			arr = append(arr, value)
		}

		c, err := p.next(",]")
		if err != nil {
			return nil, err
		}
		if c == ']' {
			return arr, nil
		}
	}
}

func (p *Parser) literal(word string, v interface{}) (interface{}, error) {
	if len(p.data)-p.pos < len(word) || string(p.data[p.pos:p.pos+len(word)]) != word {
		return nil, p.errorf("invalid literal")
	}
	p.raw(p.data[p.pos : p.pos+len(word)])
	p.pos += len(word)
	return v, nil
}

func (p *Parser) parseString() (interface{}, error) {
	start := p.pos
	p.pos++
	escaped := false
	for ; p.pos < len(p.data); p.pos++ {
		switch c := p.data[p.pos]; {
		case c == '\\':
			escaped = true
			p.pos++
		case c == '"':
			p.pos++
			p.raw(p.data[start:p.pos])
			if p.w != nil {
				return nil, nil
			}
			str := p.data[start+1 : p.pos-1]
			if !escaped {
				return string(str), nil
			}
			return p.unescapeString(str)
		case c < 0x20:
			return nil, p.errorf("control character in string")
		}
	}
	return nil, p.errorf("unterminated string")
}

func (p *Parser) unescapeString(b []byte) (string, error) {
	buf := make([]byte, 0, len(b))

	for i := 0; i < len(b); i++ {
		if b[i] != '\\' {
			buf = append(buf, b[i])
			continue
		}

		i++
		switch b[i] {
		case '"', '\\', '/':
			buf = append(buf, b[i])
		case 'b':
			buf = append(buf, '\b')
		case 'f':
			buf = append(buf, '\f')
		case 'n':
			buf = append(buf, '\n')
		case 'r':
			buf = append(buf, '\r')
		case 't':
			buf = append(buf, '\t')
		case 'u':
			if i+4 >= len(b) {
				return "", p.errorf("invalid unicode escape")
			}
			r, err := strconv.ParseUint(string(b[i+1:i+5]), 16, 16)
			if err != nil {
				return "", p.errorf("invalid unicode escape")
			}
			buf = utf8.AppendRune(buf, rune(r))
			i += 4
		default:
			return "", p.errorf("invalid escape character %q", b[i])
		}
	}

	return string(buf), nil
}

// parseNumber hands the token span to the number reader. Reader errors
// carry offsets relative to the span, so the document offset is added.
func (p *Parser) parseNumber() (interface{}, error) {
	start := p.pos
	for p.pos < len(p.data) && scanner.IsNumberChar(p.data[p.pos]) {
		p.pos++
	}
	p.num.Reset(p.data[start:p.pos])

	var v interface{}
	var err error
	if p.w != nil {
		err = p.fn(p.num, p.w)
	} else {
		v, err = p.num.ReadNumber()
	}
	if err == nil {
		err = p.num.End()
	}

	s := p.num.Stats()
	p.stats.FastPath += s.FastPath
	p.stats.Generic += s.Generic
	p.stats.LongTokens += s.LongTokens

	if err != nil {
		return nil, fmt.Errorf("parser: number at offset %d: %w", start, err)
	}
	return v, nil
}
