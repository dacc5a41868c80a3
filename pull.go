package jsnpg

// PullState is the resumable pull-parser state. Comma handling never
// persists between calls to Next as its own state: it is folded into a
// single step of the state machine below instead of being represented as
// a distinct PullState value.
type PullState int8

const (
	PullStart PullState = iota
	PullObject
	PullKey
	PullKeyValue
	PullArray
	PullArrayValue
	PullDone
	PullEOF
)

// PullParser is the resumable variant of the parse core: one event is
// produced per call to Next, and the same byte-level helpers
// (parseCore) that drive the push parser in parser.go drive this one
// too, guaranteeing push and pull agree on every input (Testable
// Property 6).
type PullParser struct {
	core  *parseCore
	state PullState

	multipleValues bool
	trailingChars  bool
	allowComma     bool

	lastResult Event
}

// NewPullParser creates a pull parser over b. If b is nil, opts.Bytes is
// used as the input instead (see ParseBytes).
func NewPullParser(b []byte, opts ParserOpts, options ...ParserOption) (*PullParser, error) {
	for _, opt := range options {
		opt(&opts)
	}
	opts, err := opts.validate()
	if err != nil {
		return nil, err
	}
	if b == nil {
		b = opts.Bytes
	}
	return &PullParser{
		core:           newParseCore(b, opts.MaxNesting, opts.Allow),
		state:          PullStart,
		multipleValues: opts.Allow&AllowMultipleValues != 0,
		trailingChars:  opts.Allow&AllowTrailingChars != 0,
		allowComma:     opts.Allow&AllowTrailingCommas != 0,
	}, nil
}

// Result returns the last event produced by Next.
func (pp *PullParser) Result() Event {
	return pp.lastResult
}

// parentState derives the state to return to after popping a container.
func (pp *PullParser) parentState() PullState {
	if pp.core.stack.depth() == 0 {
		return PullDone
	}
	if pp.core.stack.peek() == containerArray {
		return PullArrayValue
	}
	return PullKeyValue
}

// scanValueEvent parses one scalar or container-opening value starting
// at byte b and returns the Event for it plus the PullState to move to.
// scalarNext is the state to move to after a scalar value; an opening
// '[' or '{' moves to PullArray or PullObject instead.
func (pp *PullParser) scanValueEvent(b byte, scalarNext PullState) (Event, PullState, error) {
	c := pp.core.cur
	switch {
	case b == '[':
		c.take()
		if err := pp.core.stack.push(containerArray); err != nil {
			return Event{}, pp.state, err
		}
		return Event{Type: TypeStartArray, Pos: c.tell()}, PullArray, nil
	case b == '{':
		c.take()
		if err := pp.core.stack.push(containerObject); err != nil {
			return Event{}, pp.state, err
		}
		return Event{Type: TypeStartObject, Pos: c.tell()}, PullObject, nil
	case b == '"':
		pos := c.tell()
		c.take()
		s, err := pp.core.parseString()
		if err != nil {
			return Event{}, pp.state, err
		}
		return Event{Type: TypeString, Pos: pos, Bytes: s}, scalarNext, nil
	case b == 't':
		pos := c.tell()
		if err := pp.core.parseTrue(); err != nil {
			return Event{}, pp.state, err
		}
		return Event{Type: TypeTrue, Pos: pos}, scalarNext, nil
	case b == 'f':
		pos := c.tell()
		if err := pp.core.parseFalse(); err != nil {
			return Event{}, pp.state, err
		}
		return Event{Type: TypeFalse, Pos: pos}, scalarNext, nil
	case b == 'n':
		pos := c.tell()
		if err := pp.core.parseNull(); err != nil {
			return Event{}, pp.state, err
		}
		return Event{Type: TypeNull, Pos: pos}, scalarNext, nil
	case b == '-' || (b >= '0' && b <= '9'):
		ev, err := c.scanNumber()
		if err != nil {
			return Event{}, pp.state, err
		}
		return ev, scalarNext, nil
	default:
		return Event{}, pp.state, newErr(ErrExpectedValue, c.tell(), "expected a value")
	}
}

// Next produces the next event. Once EOF (or an error) has been reached,
// subsequent calls keep returning an eof-kind error event.
func (pp *PullParser) Next() Event {
	if pp.state == PullEOF {
		ev := Event{Type: TypeError, Pos: pp.core.cur.tell(), ErrKind: ErrEOF, ErrMsg: "past end of input"}
		pp.lastResult = ev
		return ev
	}

	ev, err := pp.step()
	if err != nil {
		pp.state = PullEOF
		e, _ := AsJSONError(err)
		ev = Event{Type: TypeError, Pos: e.Pos, ErrKind: e.Kind, ErrMsg: e.msg}
	}
	pp.lastResult = ev
	return ev
}

func (pp *PullParser) step() (Event, error) {
	c := pp.core.cur

	switch pp.state {
	case PullStart:
		b, err := pp.core.consumeWhitespace()
		if err != nil {
			return Event{}, err
		}
		ev, next, err := pp.scanValueEvent(b, PullDone)
		if err != nil {
			return Event{}, err
		}
		pp.state = next
		return ev, nil

	case PullObject:
		b, err := pp.core.consumeWhitespace()
		if err != nil {
			return Event{}, err
		}
		if b == '}' {
			c.take()
			if _, err := pp.core.stack.pop(); err != nil {
				return Event{}, err
			}
			pp.state = pp.parentState()
			return Event{Type: TypeEndObject, Pos: c.tell()}, nil
		}
		if b != '"' {
			return Event{}, newErr(ErrExpectedKey, c.tell(), "expected key or '}'")
		}
		pos := c.tell()
		c.take()
		key, err := pp.core.parseString()
		if err != nil {
			return Event{}, err
		}
		pp.state = PullKey
		return Event{Type: TypeKey, Pos: pos, Bytes: key}, nil

	case PullKey:
		b, err := pp.core.consumeWhitespace()
		if err != nil {
			return Event{}, err
		}
		if b != ':' {
			return Event{}, newErr(ErrExpectedKey, c.tell(), "expected ':'")
		}
		c.take()
		b, err = pp.core.consumeWhitespace()
		if err != nil {
			return Event{}, err
		}
		ev, next, err := pp.scanValueEvent(b, PullKeyValue)
		if err != nil {
			return Event{}, err
		}
		pp.state = next
		return ev, nil

	case PullKeyValue:
		b, err := pp.core.consumeWhitespace()
		if err != nil {
			return Event{}, err
		}
		if b == ',' {
			c.take()
			b, err = pp.core.consumeWhitespace()
			if err != nil {
				return Event{}, err
			}
			if pp.allowComma && b == '}' {
				c.take()
				if _, err := pp.core.stack.pop(); err != nil {
					return Event{}, err
				}
				pp.state = pp.parentState()
				return Event{Type: TypeEndObject, Pos: c.tell()}, nil
			}
			if b != '"' {
				return Event{}, newErr(ErrExpectedKey, c.tell(), "expected key")
			}
			pos := c.tell()
			c.take()
			key, err := pp.core.parseString()
			if err != nil {
				return Event{}, err
			}
			pp.state = PullKey
			return Event{Type: TypeKey, Pos: pos, Bytes: key}, nil
		}
		if b == '}' {
			c.take()
			if _, err := pp.core.stack.pop(); err != nil {
				return Event{}, err
			}
			pp.state = pp.parentState()
			return Event{Type: TypeEndObject, Pos: c.tell()}, nil
		}
		if c.eof() {
			return Event{}, newErr(ErrEOF, c.tell(), "unexpected end of input")
		}
		return Event{}, newErr(ErrUnexpected, c.tell(), "expected ',' or '}'")

	case PullArray:
		b, err := pp.core.consumeWhitespace()
		if err != nil {
			return Event{}, err
		}
		if b == ']' {
			c.take()
			if _, err := pp.core.stack.pop(); err != nil {
				return Event{}, err
			}
			pp.state = pp.parentState()
			return Event{Type: TypeEndArray, Pos: c.tell()}, nil
		}
		ev, next, err := pp.scanValueEvent(b, PullArrayValue)
		if err != nil {
			return Event{}, err
		}
		pp.state = next
		return ev, nil

	case PullArrayValue:
		b, err := pp.core.consumeWhitespace()
		if err != nil {
			return Event{}, err
		}
		if b == ',' {
			c.take()
			b, err = pp.core.consumeWhitespace()
			if err != nil {
				return Event{}, err
			}
			if pp.allowComma && b == ']' {
				c.take()
				if _, err := pp.core.stack.pop(); err != nil {
					return Event{}, err
				}
				pp.state = pp.parentState()
				return Event{Type: TypeEndArray, Pos: c.tell()}, nil
			}
			ev, next, err := pp.scanValueEvent(b, PullArrayValue)
			if err != nil {
				return Event{}, err
			}
			pp.state = next
			return ev, nil
		}
		if b == ']' {
			c.take()
			if _, err := pp.core.stack.pop(); err != nil {
				return Event{}, err
			}
			pp.state = pp.parentState()
			return Event{Type: TypeEndArray, Pos: c.tell()}, nil
		}
		if c.eof() {
			return Event{}, newErr(ErrEOF, c.tell(), "unexpected end of input")
		}
		return Event{}, newErr(ErrUnexpected, c.tell(), "expected ',' or ']'")

	case PullDone:
		b, err := pp.core.consumeWhitespace()
		if err != nil {
			return Event{}, err
		}
		if c.eof() {
			pp.state = PullEOF
			return Event{Type: TypeEOF, Pos: c.tell()}, nil
		}
		if pp.multipleValues {
			ev, next, err := pp.scanValueEvent(b, PullDone)
			if err != nil {
				return Event{}, err
			}
			pp.state = next
			return ev, nil
		}
		if pp.trailingChars {
			pp.state = PullEOF
			return Event{Type: TypeEOF, Pos: c.tell()}, nil
		}
		return Event{}, newErr(ErrUnexpected, c.tell(), "trailing characters after value")

	default:
		return Event{}, newErr(ErrEOF, c.tell(), "past end of input")
	}
}
