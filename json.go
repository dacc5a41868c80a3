package jsnpg

import (
	"errors"
	"fmt"
	"io"
	"strconv"
)

// ErrType is returned when a Value is asked for a Go type it doesn't
// hold.
var ErrType = errors.New("type error")

// ValueKind names the shape of a Value, the DOM-less convenience tree
// built on top of the event model by Unmarshal/UnmarshalString/Decode.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindInteger
	KindReal
	KindString
	KindBoolean
	KindArray
	KindObject
	numValueKinds
	kindUnknown ValueKind = -1
)

var valueKindStrings = [numValueKinds]string{
	"<null>",
	"<integer>",
	"<real>",
	"<string>",
	"<boolean>",
	"<array>",
	"<object>",
}

func (k ValueKind) String() string {
	if k < 0 || k >= numValueKinds {
		return "<unknown>"
	}
	return valueKindStrings[k]
}

// Value is a whole parsed document held in memory, the tree-shaped
// counterpart to the DOM event log: where DOM stores the flat event
// sequence for replay, Value resolves it into addressable nodes.
type Value struct {
	kind    ValueKind
	integer int64
	real    float64
	str     string
	boolean bool
	array   []*Value
	object  []kvPair
}

type kvPair struct {
	key string
	val *Value
}

// Type returns the kind of the value.
func (v *Value) Type() ValueKind {
	if v.kind >= 0 && v.kind < numValueKinds {
		return v.kind
	}
	return kindUnknown
}

// AsNull reports whether v holds a JSON null.
func (v *Value) AsNull() (struct{}, error) {
	if v.kind == KindNull {
		return struct{}{}, nil
	}
	return struct{}{}, fmt.Errorf("%w: value not null %v", ErrType, v)
}

// AsNumber extracts v as a float64, accepting both the integer and real
// kinds, for readers that don't care about the distinction.
func (v *Value) AsNumber() (float64, error) {
	switch v.kind {
	case KindInteger:
		return float64(v.integer), nil
	case KindReal:
		return v.real, nil
	}
	return 0, fmt.Errorf("%w: value not a valid number %v", ErrType, v)
}

// AsInteger extracts v as an int64. Unlike AsNumber, it does not accept
// a real value, so callers needing exact precision are not silently
// handed a rounded float.
func (v *Value) AsInteger() (int64, error) {
	if v.kind == KindInteger {
		return v.integer, nil
	}
	return 0, fmt.Errorf("%w: value not a valid integer %v", ErrType, v)
}

// AsReal extracts v as a float64, accepting only the real kind.
func (v *Value) AsReal() (float64, error) {
	if v.kind == KindReal {
		return v.real, nil
	}
	return 0, fmt.Errorf("%w: value not a valid real %v", ErrType, v)
}

// AsString extracts v as a string.
func (v *Value) AsString() (string, error) {
	if v.kind == KindString {
		return v.str, nil
	}
	return "", fmt.Errorf("%w: value not a valid string %v", ErrType, v)
}

// AsBoolean extracts v as a bool.
func (v *Value) AsBoolean() (bool, error) {
	if v.kind == KindBoolean {
		return v.boolean, nil
	}
	return false, fmt.Errorf("%w: value not a valid boolean %v", ErrType, v)
}

// AsArray extracts v as a slice of Values.
func (v *Value) AsArray() ([]*Value, error) {
	if v.kind == KindArray {
		return v.array, nil
	}
	return nil, fmt.Errorf("%w: value not a valid array %v", ErrType, v)
}

// AsObject extracts v as a map, discarding key order. Use Key for
// order-preserving, drill-down access.
func (v *Value) AsObject() (map[string]*Value, error) {
	if v.kind == KindObject {
		m := make(map[string]*Value, len(v.object))
		for _, p := range v.object {
			m[p.key] = p.val
		}
		return m, nil
	}
	return nil, fmt.Errorf("%w: value not a valid object %v", ErrType, v)
}

// String renders v as JSON-ish text for debugging. It is not guaranteed
// to be valid JSON (float formatting in particular does not preserve
// the integer/real distinction the way Generator.Real does).
func (v *Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindInteger:
		return strconv.FormatInt(v.integer, 10)
	case KindReal:
		return strconv.FormatFloat(v.real, 'f', -1, 64)
	case KindString:
		return strconv.Quote(v.str)
	case KindBoolean:
		if v.boolean {
			return "true"
		}
		return "false"
	case KindArray:
		s := "["
		for i, e := range v.array {
			if i > 0 {
				s += ", "
			}
			s += e.String()
		}
		return s + "]"
	case KindObject:
		s := "{"
		for i, p := range v.object {
			if i > 0 {
				s += ", "
			}
			s += strconv.Quote(p.key) + ": " + p.val.String()
		}
		return s + "}"
	}
	return "<unknown>"
}

// Index is a fluent accessor for array members: out-of-range or
// non-array access yields a null Value rather than an error, so
// drill-down chains can run to the end without a nil check at each
// step.
func (v *Value) Index(i int) *Value {
	if v.kind != KindArray || i < 0 || i >= len(v.array) {
		return &Value{}
	}
	return v.array[i]
}

// Key is the object counterpart of Index.
func (v *Value) Key(k string) *Value {
	if v.kind != KindObject {
		return &Value{}
	}
	for _, p := range v.object {
		if p.key == k {
			return p.val
		}
	}
	return &Value{}
}

// valueBuilder drives a Value tree from Callbacks events, the Value
// equivalent of domSink in dom.go: both adapt the same ten-event
// alphabet, one into a replayable log, the other into addressable
// nodes.
type valueBuilder struct {
	root  *Value
	stack []*Value
	keys  []string
}

func (b *valueBuilder) attach(v *Value) {
	if len(b.stack) == 0 {
		b.root = v
		return
	}
	top := b.stack[len(b.stack)-1]
	if top.kind == KindArray {
		top.array = append(top.array, v)
		return
	}
	k := b.keys[len(b.keys)-1]
	b.keys = b.keys[:len(b.keys)-1]
	top.object = append(top.object, kvPair{key: k, val: v})
}

func (b *valueBuilder) open(v *Value) {
	b.attach(v)
	b.stack = append(b.stack, v)
}

func (b *valueBuilder) close() {
	b.stack = b.stack[:len(b.stack)-1]
}

func valueCallbacks() *Callbacks {
	return &Callbacks{
		Null: func(ctx any) bool {
			ctx.(*valueBuilder).attach(&Value{kind: KindNull})
			return true
		},
		Boolean: func(ctx any, isTrue bool) bool {
			ctx.(*valueBuilder).attach(&Value{kind: KindBoolean, boolean: isTrue})
			return true
		},
		Integer: func(ctx any, v int64) bool {
			ctx.(*valueBuilder).attach(&Value{kind: KindInteger, integer: v})
			return true
		},
		Real: func(ctx any, v float64) bool {
			ctx.(*valueBuilder).attach(&Value{kind: KindReal, real: v})
			return true
		},
		String: func(ctx any, v []byte) bool {
			ctx.(*valueBuilder).attach(&Value{kind: KindString, str: string(v)})
			return true
		},
		Key: func(ctx any, k []byte) bool {
			b := ctx.(*valueBuilder)
			b.keys = append(b.keys, string(k))
			return true
		},
		StartArray: func(ctx any) bool {
			ctx.(*valueBuilder).open(&Value{kind: KindArray})
			return true
		},
		EndArray: func(ctx any) bool {
			ctx.(*valueBuilder).close()
			return true
		},
		StartObject: func(ctx any) bool {
			ctx.(*valueBuilder).open(&Value{kind: KindObject})
			return true
		},
		EndObject: func(ctx any) bool {
			ctx.(*valueBuilder).close()
			return true
		},
	}
}

// valueParserOpts sets permissive defaults for the convenience tree:
// trailing commas are accepted so a copy-pasted, slightly-too-long list
// doesn't fail to parse.
func valueParserOpts() ParserOpts {
	return ParserOpts{Allow: AllowTrailingCommas}
}

// Unmarshal parses b into a Value tree. It sits above the same event
// model as ParseBytes/Parse: internally it registers Callbacks that
// build a tree instead of printing or logging events.
func Unmarshal(b []byte) (*Value, error) {
	vb := &valueBuilder{}
	if err := ParseWithCallbacks(b, valueParserOpts(), valueCallbacks(), vb); err != nil {
		return nil, err
	}
	if vb.root == nil {
		return &Value{}, nil
	}
	return vb.root, nil
}

// UnmarshalString parses s into a Value tree.
func UnmarshalString(s string) (*Value, error) {
	return Unmarshal([]byte(s))
}

// Decode reads all of r and parses it into a Value tree.
func Decode(r io.Reader) (*Value, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Unmarshal(b)
}
