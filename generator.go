package jsnpg

// sink is whatever receives events dispatched by the Generator façade,
// dispatched from one consistent callback table. Each method
// returns an error; a non-nil error (other than one produced by a
// failing emitter escape/UTF-8 check) is interpreted as a sink-requested
// termination.
type sink interface {
	onNull() error
	onBool(b bool) error
	onInteger(v int64) error
	onReal(v float64) error
	onString(b []byte) error
	onKey(b []byte) error
	onStartArray() error
	onEndArray() error
	onStartObject() error
	onEndObject() error
}

// Callbacks is the public SAX-style callback set a caller may register
// with a Generator. Every field returns true to continue, false to
// request termination (mapped to ErrTerminated by the façade). Any field
// left nil is treated as "accept, do nothing".
type Callbacks struct {
	Null        func(ctx any) bool
	Boolean     func(ctx any, isTrue bool) bool
	Integer     func(ctx any, v int64) bool
	Real        func(ctx any, v float64) bool
	String      func(ctx any, b []byte) bool
	Key         func(ctx any, b []byte) bool
	StartArray  func(ctx any) bool
	EndArray    func(ctx any) bool
	StartObject func(ctx any) bool
	EndObject   func(ctx any) bool
}

// callbackSink adapts a Callbacks+ctx pair to the internal sink
// interface.
type callbackSink struct {
	cb  *Callbacks
	ctx any
}

func (s *callbackSink) ok(b bool) error {
	if !b {
		return newErr(ErrTerminated, 0, "sink requested termination")
	}
	return nil
}

func (s *callbackSink) onNull() error {
	if s.cb.Null == nil {
		return nil
	}
	return s.ok(s.cb.Null(s.ctx))
}
func (s *callbackSink) onBool(b bool) error {
	if s.cb.Boolean == nil {
		return nil
	}
	return s.ok(s.cb.Boolean(s.ctx, b))
}
func (s *callbackSink) onInteger(v int64) error {
	if s.cb.Integer == nil {
		return nil
	}
	return s.ok(s.cb.Integer(s.ctx, v))
}
func (s *callbackSink) onReal(v float64) error {
	if s.cb.Real == nil {
		return nil
	}
	return s.ok(s.cb.Real(s.ctx, v))
}
func (s *callbackSink) onString(b []byte) error {
	if s.cb.String == nil {
		return nil
	}
	return s.ok(s.cb.String(s.ctx, b))
}
func (s *callbackSink) onKey(b []byte) error {
	if s.cb.Key == nil {
		return nil
	}
	return s.ok(s.cb.Key(s.ctx, b))
}
func (s *callbackSink) onStartArray() error {
	if s.cb.StartArray == nil {
		return nil
	}
	return s.ok(s.cb.StartArray(s.ctx))
}
func (s *callbackSink) onEndArray() error {
	if s.cb.EndArray == nil {
		return nil
	}
	return s.ok(s.cb.EndArray(s.ctx))
}
func (s *callbackSink) onStartObject() error {
	if s.cb.StartObject == nil {
		return nil
	}
	return s.ok(s.cb.StartObject(s.ctx))
}
func (s *callbackSink) onEndObject() error {
	if s.cb.EndObject == nil {
		return nil
	}
	return s.ok(s.cb.EndObject(s.ctx))
}

// Generator is the invariant-checked façade in front of a sink: every
// event entry point validates against a mirror bit-stack (when Debug is
// true) before dispatching to the chosen sink.
type Generator struct {
	opts GeneratorOpts

	sink sink
	dom  *DOM // non-nil iff the sink is a DOM sink
	em   *emitter

	stack     *bitStack
	keyNext   bool
	sinkErr   *Error
	pos       int
}

// NewGenerator builds a Generator per GeneratorOpts. With no DOM and no
// Callbacks set, a JSON-printing emitter sink is installed and results
// are available via Result()/Bytes().
func NewGenerator(opts GeneratorOpts, options ...GeneratorOption) (*Generator, error) {
	for _, opt := range options {
		opt(&opts)
	}
	opts, err := opts.validate()
	if err != nil {
		return nil, err
	}

	g := &Generator{
		opts:  opts,
		stack: newBitStack(int(opts.MaxNesting)),
	}

	switch {
	case opts.DOM:
		d := NewDOM()
		g.dom = d
		g.sink = &domSink{dom: d}
	case opts.Callbacks != nil:
		g.sink = &callbackSink{cb: opts.Callbacks, ctx: opts.Ctx}
	default:
		em := newEmitter(int(opts.Indent), opts.Allow&AllowInvalidUTF8Out != 0)
		g.em = em
		g.sink = em
	}
	return g, nil
}

// Err returns the first error recorded by any of the generator's event
// entry points: an invariant violation, or an error returned by the sink
// (ErrTerminated when a callback returns false). A sink has no separate
// way to deposit a more specific error alongside ErrTerminated.
func (g *Generator) Err() error {
	if g.sinkErr != nil {
		return g.sinkErr
	}
	return nil
}

// String returns the generator's buffered JSON text. Valid only when the
// generator was built with the default (emitter) sink.
func (g *Generator) String() string {
	if g.em == nil {
		return ""
	}
	return g.em.buf.String()
}

// Bytes returns the generator's buffered JSON bytes, borrowed from the
// generator and invalid after any further call to the generator.
func (g *Generator) Bytes() []byte {
	if g.em == nil {
		return nil
	}
	return g.em.buf.Bytes()
}

// DOM returns the event log captured by a DOM-sink generator, or nil
// otherwise.
func (g *Generator) DOM() *DOM {
	return g.dom
}

func (g *Generator) canValue() error {
	if !Debug || g.stack.depth() == 0 {
		return nil
	}
	if g.stack.peek() == containerObject {
		if g.keyNext {
			return newErr(ErrExpectedKey, g.pos, "expected key")
		}
		g.keyNext = true
	}
	return nil
}

func (g *Generator) canKey() error {
	if !Debug || g.stack.depth() == 0 {
		return nil
	}
	if !g.keyNext {
		return newErr(ErrExpectedValue, g.pos, "expected value, not key")
	}
	g.keyNext = false
	return nil
}

func (g *Generator) canPush(kind containerKind) error {
	if err := g.canValue(); err != nil {
		return err
	}
	if Debug {
		if err := g.stack.push(kind); err != nil {
			return err
		}
		g.keyNext = kind == containerObject
	}
	return nil
}

func (g *Generator) canPop(kind containerKind) error {
	if !Debug {
		return nil
	}
	if g.stack.depth() == 0 {
		return newErr(ErrStackUnderflow, g.pos, "close without matching open")
	}
	cur := g.stack.peek()
	if cur != kind {
		if kind == containerObject {
			return newErr(ErrNoObject, g.pos, "not inside an object")
		}
		return newErr(ErrNoArray, g.pos, "not inside an array")
	}
	if kind == containerObject && !g.keyNext {
		return newErr(ErrExpectedValue, g.pos, "expected value before closing object")
	}
	g.stack.pop()
	g.keyNext = g.stack.peek() == containerObject
	return nil
}

// dispatch runs a façade entry point: validate (if validate != nil), call
// the sink, and return any error unchanged, recording it on the generator
// if no earlier error has been recorded.
func (g *Generator) dispatch(validate func() error, call func() error) error {
	if validate != nil {
		if err := validate(); err != nil {
			g.record(err)
			return err
		}
	}
	if err := call(); err != nil {
		g.record(err)
		return err
	}
	return nil
}

func (g *Generator) record(err error) {
	if e, ok := AsJSONError(err); ok && g.sinkErr == nil {
		g.sinkErr = e
	}
}

func (g *Generator) Null() error {
	return g.dispatch(g.canValue, g.sink.onNull)
}

func (g *Generator) Boolean(b bool) error {
	return g.dispatch(g.canValue, func() error { return g.sink.onBool(b) })
}

func (g *Generator) Integer(v int64) error {
	return g.dispatch(g.canValue, func() error { return g.sink.onInteger(v) })
}

func (g *Generator) Real(v float64) error {
	return g.dispatch(g.canValue, func() error { return g.sink.onReal(v) })
}

func (g *Generator) String(b []byte) error {
	return g.dispatch(g.canValue, func() error { return g.sink.onString(b) })
}

func (g *Generator) Key(b []byte) error {
	return g.dispatch(g.canKey, func() error { return g.sink.onKey(b) })
}

func (g *Generator) StartArray() error {
	return g.dispatch(func() error { return g.canPush(containerArray) }, g.sink.onStartArray)
}

func (g *Generator) EndArray() error {
	return g.dispatch(func() error { return g.canPop(containerArray) }, g.sink.onEndArray)
}

func (g *Generator) StartObject() error {
	return g.dispatch(func() error { return g.canPush(containerObject) }, g.sink.onStartObject)
}

func (g *Generator) EndObject() error {
	return g.dispatch(func() error { return g.canPop(containerObject) }, g.sink.onEndObject)
}
