package jsnpg

// Allow is a bitmask of relaxations to strict JSON grammar.
type Allow uint

const (
	// AllowComments permits C-style // line and /* block */ comments
	// anywhere whitespace is allowed.
	AllowComments Allow = 1 << iota
	// AllowTrailingCommas permits a single ',' before the matching ']'
	// or '}'.
	AllowTrailingCommas
	// AllowTrailingChars suppresses the error for unconsumed input after
	// a top-level value. Ignored when AllowMultipleValues is set.
	AllowTrailingChars
	// AllowMultipleValues parses successive top-level values until EOF.
	AllowMultipleValues
	// AllowInvalidUTF8In skips UTF-8 validation of input string
	// literals.
	AllowInvalidUTF8In
	// AllowInvalidUTF8Out disables UTF-8 validation of output string
	// literals written by the JSON emitter.
	AllowInvalidUTF8Out
)

// ParserOpts configures a push or pull parser. Exactly one input source
// must be supplied: Bytes, or DOM, or both left nil with a call that
// supplies a string directly (see ParseString).
type ParserOpts struct {
	// MaxNesting caps container depth; 0 means MaxNestingDefault, and
	// anything above MaxNestingDefault is clamped down to it.
	MaxNesting uint
	Allow      Allow

	// Bytes is raw JSON input, used by ParseBytes/NewPullParser whenever
	// the caller passes a nil byte slice directly. Mutually exclusive
	// with DOM.
	Bytes []byte
	// DOM replays a previously captured event log as the input source,
	// bypassing the byte-level parse core entirely. Only ParseBytes (and
	// the wrappers that call it) reads DOM; NewPullParser ignores it and
	// parses its byte input.
	DOM *DOM
}

// ParseOpt bundles ParserOpts with a choice of sink: Callbacks (SAX
// style), or a pre-built Generator. No function in this package takes a
// ParseOpt, so nothing checks that only one sink is set and no default
// sink is supplied for it.
type ParseOpt struct {
	ParserOpts
	Callbacks *Callbacks
	Generator *Generator
}

// validate clamps MaxNesting and checks input-source exclusivity,
// returning ErrOpt on conflicting options.
func (o ParserOpts) validate() (ParserOpts, error) {
	switch {
	case o.MaxNesting == 0:
		o.MaxNesting = MaxNestingDefault
	case o.MaxNesting > MaxNestingDefault:
		o.MaxNesting = MaxNestingDefault
	}
	if o.Bytes != nil && o.DOM != nil {
		return o, newErr(ErrOpt, 0, "specify at most one of Bytes or DOM")
	}
	return o, nil
}

// GeneratorOpts configures a Generator. At most one of DOM or Callbacks
// may be set; if neither is set, a JSON-printing emitter sink is
// installed.
type GeneratorOpts struct {
	// Indent is clamped to [0,8]; 0 means compact output.
	Indent     uint
	Allow      Allow
	MaxNesting uint

	// DOM, when true, captures events into an in-memory event log
	// instead of printing JSON.
	DOM bool

	Callbacks *Callbacks
	Ctx       any
}

func (o GeneratorOpts) validate() (GeneratorOpts, error) {
	if o.Indent > 8 {
		o.Indent = 8
	}
	switch {
	case o.MaxNesting == 0:
		o.MaxNesting = MaxNestingDefault
	case o.MaxNesting > MaxNestingDefault:
		o.MaxNesting = MaxNestingDefault
	}
	if o.DOM && o.Callbacks != nil {
		return o, newErr(ErrOpt, 0, "specify at most one of DOM or Callbacks")
	}
	return o, nil
}

// ParserOption and GeneratorOption are a functional-option layer over
// ParserOpts/GeneratorOpts for callers who'd rather chain small setters
// than build the struct literal directly.
type ParserOption func(*ParserOpts)

func WithMaxNesting(n uint) ParserOption {
	return func(o *ParserOpts) { o.MaxNesting = n }
}

func WithParserAllow(a Allow) ParserOption {
	return func(o *ParserOpts) { o.Allow |= a }
}

func WithDOMSource(d *DOM) ParserOption {
	return func(o *ParserOpts) { o.DOM = d }
}

type GeneratorOption func(*GeneratorOpts)

func WithIndent(n uint) GeneratorOption {
	return func(o *GeneratorOpts) { o.Indent = n }
}

func WithGeneratorAllow(a Allow) GeneratorOption {
	return func(o *GeneratorOpts) { o.Allow |= a }
}

func WithDOMSink() GeneratorOption {
	return func(o *GeneratorOpts) { o.DOM = true }
}

func WithCallbacks(cb *Callbacks, ctx any) GeneratorOption {
	return func(o *GeneratorOpts) {
		o.Callbacks = cb
		o.Ctx = ctx
	}
}
