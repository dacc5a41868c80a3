package jsnpg

import (
	"bufio"
	"io"
)

/*
This is jsnpg's push parse core: a single-pass, recursion-free loop
over a nesting bit-stack rather than a recursive descent. Nested
arrays/objects would otherwise recurse one Go stack frame per level;
flattening into a loop keeps deeply nested input from blowing the
goroutine stack.
*/

// parseCore holds all state shared by the push parser and, via the same
// helpers, the pull parser in pull.go.
type parseCore struct {
	cur   *cursor
	stack *bitStack
	allow Allow
}

func newParseCore(src []byte, maxNesting uint, allow Allow) *parseCore {
	return &parseCore{
		cur:   newCursor(src[detectBOM(src):]),
		stack: newBitStack(int(maxNesting)),
		allow: allow,
	}
}

func (p *parseCore) validateUTF8In() bool {
	return p.allow&AllowInvalidUTF8In == 0
}

// consumeWhitespace advances past spaces/tabs/newlines and, when
// AllowComments is set, // line and /* block */ comments. An unterminated
// block comment silently yields end-of-input.
func (p *parseCore) consumeWhitespace() (byte, error) {
	c := p.cur
	skipSpaces := func() byte {
		for {
			b := c.peek()
			if b == ' ' || b == '\n' || b == '\r' || b == '\t' {
				c.take()
				continue
			}
			return b
		}
	}

	if p.allow&AllowComments == 0 {
		return skipSpaces(), nil
	}

	for {
		b := skipSpaces()
		if b != '/' {
			return b, nil
		}
		c.take() // '/'
		switch c.peek() {
		case '*':
			c.take()
			for {
				c.find('*')
				if c.peek() == '*' {
					c.take()
					if c.consume('/') {
						break
					}
				}
				if c.eof() {
					return 0, nil
				}
			}
		case '/':
			c.find('\n')
			if c.eof() {
				return 0, nil
			}
		default:
			return 0, newErr(ErrUnexpected, c.tell(), "'/' not starting a comment")
		}
	}
}

// parseString assumes the opening '"' has just been consumed and parses
// up to and including the closing '"', returning the borrowed, unescaped
// byte slice.
func (p *parseCore) parseString() ([]byte, error) {
	c := p.cur
	c.stringStartMark()

	for {
		b := c.peek()
		switch {
		case b == '"':
			return c.stringComplete(), nil
		case b == '\\':
			c.stringUpdate()
			cp, err := p.parseEscape()
			if err != nil {
				return nil, err
			}
			c.writeCodepoint(cp)
			c.stringRestart()
		case p.validateUTF8In() && b >= 0x80:
			if !c.validateUTF8() {
				return nil, newErr(ErrUTF8, c.tell(), "invalid UTF-8 in string")
			}
		case b < 0x20:
			return nil, newErr(ErrInvalid, c.tell(), "raw control byte in string")
		default:
			c.take()
		}
	}
}

var shortUnescapes = map[byte]byte{
	'"': '"', '/': '/', '\\': '\\',
	'b': '\b', 'f': '\f', 'n': '\n', 'r': '\r', 't': '\t',
}

func hexDigit(b byte) (rune, bool) {
	switch {
	case b >= '0' && b <= '9':
		return rune(b - '0'), true
	case b >= 'A' && b <= 'F':
		return rune(b-'A') + 10, true
	case b >= 'a' && b <= 'f':
		return rune(b-'a') + 10, true
	default:
		return 0, false
	}
}

func (p *parseCore) parseHex4() (rune, error) {
	c := p.cur
	var cp rune
	for i := 0; i < 4; i++ {
		d, ok := hexDigit(c.peek())
		if !ok {
			return 0, newErr(ErrEscape, c.tell(), "bad hex digit in \\u escape")
		}
		cp = cp<<4 | d
		c.take()
	}
	return cp, nil
}

// parseEscape assumes the cursor is positioned on '\' and decodes one
// escape sequence (including a full surrogate pair for \uD800-\uDBFF),
// returning the resulting codepoint.
func (p *parseCore) parseEscape() (rune, error) {
	c := p.cur
	c.take() // '\'
	e := c.peek()

	if repl, ok := shortUnescapes[e]; ok {
		c.take()
		return rune(repl), nil
	}
	if e != 'u' {
		return 0, newErr(ErrEscape, c.tell(), "unknown escape '\\%c'", e)
	}
	c.take() // 'u'
	cp, err := p.parseHex4()
	if err != nil {
		return 0, err
	}
	if isSurrogate(cp) {
		if !isHighSurrogate(cp) {
			return 0, newErr(ErrSurrogate, c.tell(), "lone low surrogate")
		}
		if !(c.consume('\\') && c.consume('u')) {
			return 0, newErr(ErrSurrogate, c.tell(), "high surrogate not followed by \\u")
		}
		lo, err := p.parseHex4()
		if err != nil {
			return 0, err
		}
		if !isLowSurrogate(lo) {
			return 0, newErr(ErrSurrogate, c.tell(), "high surrogate not followed by low surrogate")
		}
		cp = combineSurrogates(cp, lo)
	}
	return cp, nil
}

func (p *parseCore) expect(b byte, msg string) error {
	if !p.cur.consume(b) {
		return newErr(ErrUnexpected, p.cur.tell(), "%s", msg)
	}
	return nil
}

func (p *parseCore) parseTrue() error {
	p.cur.take()
	if p.cur.consume('r') && p.cur.consume('u') && p.cur.consume('e') {
		return nil
	}
	return newErr(ErrUnexpected, p.cur.tell(), "invalid literal, expected 'true'")
}

func (p *parseCore) parseFalse() error {
	p.cur.take()
	if p.cur.consume('a') && p.cur.consume('l') && p.cur.consume('s') && p.cur.consume('e') {
		return nil
	}
	return newErr(ErrUnexpected, p.cur.tell(), "invalid literal, expected 'false'")
}

func (p *parseCore) parseNull() error {
	p.cur.take()
	if p.cur.consume('u') && p.cur.consume('l') && p.cur.consume('l') {
		return nil
	}
	return newErr(ErrUnexpected, p.cur.tell(), "invalid literal, expected 'null'")
}

// emitValue dispatches the next literal value (string/number/bool/null)
// starting at byte b to the generator, driving the push loop's value
// case statement.
func (p *parseCore) emitValue(b byte, g *Generator) error {
	switch {
	case b == '"':
		p.cur.take()
		str, err := p.parseString()
		if err != nil {
			return err
		}
		return g.String(str)
	case b == 't':
		if err := p.parseTrue(); err != nil {
			return err
		}
		return g.Boolean(true)
	case b == 'f':
		if err := p.parseFalse(); err != nil {
			return err
		}
		return g.Boolean(false)
	case b == 'n':
		if err := p.parseNull(); err != nil {
			return err
		}
		return g.Null()
	case b == '-' || (b >= '0' && b <= '9'):
		ev, err := p.cur.scanNumber()
		if err != nil {
			return err
		}
		if ev.Type == TypeReal {
			return g.Real(ev.Real)
		}
		return g.Integer(ev.Integer)
	default:
		return newErr(ErrUnexpected, p.cur.tell(), "unexpected byte %q", b)
	}
}

// parseOne drives exactly one top-level value (including everything
// nested inside it) through the generator without recursion: stackType
// tracks whether we are currently inside an array, an object, or at the
// top level.
func (p *parseCore) parseOne(g *Generator) error {
	c := p.cur
	allowTrailingCommas := p.allow&AllowTrailingCommas != 0

	stackType := containerNone

	b, err := p.consumeWhitespace()
	if err != nil {
		return err
	}

	for {
		if stackType == containerObject {
			if b != '"' {
				return newErr(ErrExpectedKey, c.tell(), "expected key")
			}
			c.take()
			key, err := p.parseString()
			if err != nil {
				return err
			}
			b, err = p.consumeWhitespace()
			if err != nil {
				return err
			}
			if b != ':' {
				return newErr(ErrExpectedKey, c.tell(), "expected ':'")
			}
			if err := g.Key(key); err != nil {
				return err
			}
			c.take() // ':'
			b, err = p.consumeWhitespace()
			if err != nil {
				return err
			}
		}

		switch {
		case b == '[':
			c.take()
			if err := p.stack.push(containerArray); err != nil {
				return err
			}
			if err := g.StartArray(); err != nil {
				return err
			}
			stackType = containerArray
			if b, err = p.consumeWhitespace(); err != nil {
				return err
			}
			if allowTrailingCommas && b == ',' {
				c.take()
				if b, err = p.consumeWhitespace(); err != nil {
					return err
				}
				if b != ']' {
					return newErr(ErrUnexpected, c.tell(), "expected ']' after trailing comma")
				}
			}
			if b == ']' {
				c.take()
				if _, err := p.stack.pop(); err != nil {
					return err
				}
				stackType = p.stack.peek()
				if err := g.EndArray(); err != nil {
					return err
				}
				break
			}
			continue

		case b == '{':
			c.take()
			if err := p.stack.push(containerObject); err != nil {
				return err
			}
			if err := g.StartObject(); err != nil {
				return err
			}
			stackType = containerObject
			if b, err = p.consumeWhitespace(); err != nil {
				return err
			}
			if allowTrailingCommas && b == ',' {
				c.take()
				if b, err = p.consumeWhitespace(); err != nil {
					return err
				}
				if b != '}' {
					return newErr(ErrUnexpected, c.tell(), "expected '}' after trailing comma")
				}
			}
			if b == '}' {
				c.take()
				if _, err := p.stack.pop(); err != nil {
					return err
				}
				stackType = p.stack.peek()
				if err := g.EndObject(); err != nil {
					return err
				}
				break
			}
			continue

		default:
			if err := p.emitValue(b, g); err != nil {
				return err
			}
		}

		// After a value: handle comma/close, possibly several in a row
		// ("...}]]...").
		for {
			b, err = p.consumeWhitespace()
			if err != nil {
				return err
			}
			if b == ',' && stackType != containerNone {
				c.take()
				b, err = p.consumeWhitespace()
				if err != nil {
					return err
				}
				if !(allowTrailingCommas && (b == '}' || b == ']')) {
					break
				}
			}
			switch {
			case b == '}' && stackType == containerObject:
				c.take()
				if _, err := p.stack.pop(); err != nil {
					return err
				}
				stackType = p.stack.peek()
				if err := g.EndObject(); err != nil {
					return err
				}
			case b == ']' && stackType == containerArray:
				c.take()
				if _, err := p.stack.pop(); err != nil {
					return err
				}
				stackType = p.stack.peek()
				if err := g.EndArray(); err != nil {
					return err
				}
			case stackType == containerNone:
				return nil
			case c.eof():
				return newErr(ErrEOF, c.tell(), "unexpected end of input")
			default:
				return newErr(ErrUnexpected, c.tell(), "unexpected byte %q", b)
			}
		}
	}
}

// Parse reads JSON from r and drives it through a Generator, returning
// the generator's recorded error (if any) or nil on success. It is a
// thin convenience wrapper: Parse reads r fully, then calls ParseBytes.
func Parse(r io.Reader, opts ParserOpts, g *Generator, options ...ParserOption) error {
	for _, opt := range options {
		opt(&opts)
	}
	br := bufio.NewReader(r)
	var data []byte
	buf := make([]byte, 4096)
	for {
		n, err := br.Read(buf)
		data = append(data, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}
	return ParseBytes(data, opts, g)
}

// ParseBytes drives a full top-level parse (or, with AllowMultipleValues,
// a sequence of them) of b through g, honoring opts. If b is nil, opts.Bytes
// is used as the input instead, so a caller who has already built a
// ParserOpts (e.g. via the functional-option layer) need not also thread
// the byte slice through as a second argument.
func ParseBytes(b []byte, opts ParserOpts, g *Generator) error {
	opts, err := opts.validate()
	if err != nil {
		return err
	}
	if b == nil {
		b = opts.Bytes
	}
	if opts.DOM != nil {
		return opts.DOM.ReplayInto(g)
	}

	p := newParseCore(b, opts.MaxNesting, opts.Allow)

	multipleValues := opts.Allow&AllowMultipleValues != 0
	trailingChars := opts.Allow&AllowTrailingChars != 0

	for {
		if err := p.parseOne(g); err != nil {
			return err
		}
		if !p.cur.eof() {
			if multipleValues {
				continue
			}
			if !trailingChars {
				return newErr(ErrUnexpected, p.cur.tell(), "trailing characters after value")
			}
		}
		break
	}
	return nil
}

// ParseString is a convenience wrapper around ParseBytes for string
// input.
func ParseString(s string, opts ParserOpts, g *Generator) error {
	return ParseBytes([]byte(s), opts, g)
}

// ParseWithCallbacks builds a Generator over cb/ctx and parses b through
// it in one call.
func ParseWithCallbacks(b []byte, opts ParserOpts, cb *Callbacks, ctx any) error {
	g, err := NewGenerator(GeneratorOpts{Callbacks: cb, Ctx: ctx, MaxNesting: opts.MaxNesting})
	if err != nil {
		return err
	}
	return ParseBytes(b, opts, g)
}
