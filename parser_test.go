package jsnpg

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func printJSON(t *testing.T, input string, opts ParserOpts) (string, error) {
	t.Helper()
	g, err := NewGenerator(GeneratorOpts{})
	require.NoError(t, err)
	err = ParseBytes([]byte(input), opts, g)
	return g.String(), err
}

func TestParseCompactRoundTrip(t *testing.T) {
	for _, test := range []struct {
		name  string
		input string
		want  string
	}{
		{"object", `{ "a" : 1 , "b" : [1,2,3] }`, `{"a":1,"b":[1,2,3]}`},
		{"nested", `[[1,2],[3,4]]`, `[[1,2],[3,4]]`},
		{"scalars", `[null, true, false, -5, 5.5, "s"]`, `[null,true,false,-5,5.5,"s"]`},
		{"empty array", `[]`, `[]`},
		{"empty object", `{}`, `{}`},
		{"unicode escape", "\"\\u00e9\"", `"é"`},
		{"surrogate pair", "\"\\ud83d\\ude00\"", "\"\U0001F600\""},
		{"short escapes", `"a\nb\tc"`, `"a\nb\tc"`},
	} {
		t.Run(test.name, func(t *testing.T) {
			got, err := printJSON(t, test.input, ParserOpts{})
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestParseRejectsMalformedInput(t *testing.T) {
	for _, test := range []struct {
		name    string
		input   string
		errKind ErrorKind
	}{
		{"unterminated object", `{"a":1`, ErrEOF},
		{"missing colon", `{"a" 1}`, ErrExpectedKey},
		{"trailing comma disallowed", `[1,2,]`, ErrUnexpected},
		{"bad literal", `tru`, ErrUnexpected},
		{"raw control byte", "\"a\x01b\"", ErrInvalid},
		{"lone low surrogate", `"\uDC00"`, ErrSurrogate},
		{"bad hex escape", `"\u00zz"`, ErrEscape},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := printJSON(t, test.input, ParserOpts{})
			require.Error(t, err)
			jerr, ok := AsJSONError(err)
			require.True(t, ok)
			assert.Equal(t, test.errKind, jerr.Kind)
		})
	}
}

func TestParseAllowTrailingCommas(t *testing.T) {
	got, err := printJSON(t, `[1,2,]`, ParserOpts{Allow: AllowTrailingCommas})
	require.NoError(t, err)
	assert.Equal(t, `[1,2]`, got)

	got, err = printJSON(t, `{"a":1,}`, ParserOpts{Allow: AllowTrailingCommas})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, got)
}

func TestParseAllowComments(t *testing.T) {
	input := `{
		// a comment
		"a": 1, /* inline */ "b": 2
	}`
	got, err := printJSON(t, input, ParserOpts{Allow: AllowComments})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":2}`, got)
}

func TestParseAllowMultipleValues(t *testing.T) {
	pieces := []string{"1", "2", "3"}
	for _, sep := range []string{" ", "\n", "\t"} {
		input := strings.Join(pieces, sep)
		var seen []int64
		cb := &Callbacks{
			Integer: func(ctx any, v int64) bool {
				*(ctx.(*[]int64)) = append(*(ctx.(*[]int64)), v)
				return true
			},
		}
		require.NoError(t, ParseWithCallbacks([]byte(input), ParserOpts{Allow: AllowMultipleValues}, cb, &seen))
		assert.Equal(t, []int64{1, 2, 3}, seen)
	}
}

func TestParseRejectsTrailingCharsByDefault(t *testing.T) {
	_, err := printJSON(t, `1 2`, ParserOpts{})
	require.Error(t, err)
	jerr, ok := AsJSONError(err)
	require.True(t, ok)
	assert.Equal(t, ErrUnexpected, jerr.Kind)
}

func TestParseAllowTrailingChars(t *testing.T) {
	got, err := printJSON(t, `1 garbage`, ParserOpts{Allow: AllowTrailingChars})
	require.NoError(t, err)
	assert.Equal(t, `1`, got)
}

func TestParseInvalidUTF8Rejected(t *testing.T) {
	_, err := printJSON(t, "\"\xff\xfe\"", ParserOpts{})
	require.Error(t, err)
	jerr, ok := AsJSONError(err)
	require.True(t, ok)
	assert.Equal(t, ErrUTF8, jerr.Kind)
}

func TestParseMaxNestingOverflow(t *testing.T) {
	deep := strings.Repeat("[", 5)
	_, err := printJSON(t, deep, ParserOpts{MaxNesting: 3})
	require.Error(t, err)
	jerr, ok := AsJSONError(err)
	require.True(t, ok)
	assert.Equal(t, ErrStackOverflow, jerr.Kind)
}

func TestParseNestingAtMaxNestingSucceeds(t *testing.T) {
	// Nesting exactly at the configured limit (as opposed to exceeding
	// it, covered above) must still parse successfully.
	depth := 10
	input := strings.Repeat("[", depth) + strings.Repeat("]", depth)
	got, err := printJSON(t, input, ParserOpts{MaxNesting: uint(depth)})
	require.NoError(t, err)
	assert.Equal(t, input, got)
}

func TestParseSkipsLeadingBOM(t *testing.T) {
	input := "\xEF\xBB\xBF" + `{"a":1}`
	got, err := printJSON(t, input, ParserOpts{})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, got)
}

func TestParseAllowInvalidUTF8InPassesLoneContinuationByteThrough(t *testing.T) {
	input := "\"a\x80b\""

	var captured []byte
	cb := &Callbacks{
		String: func(ctx any, b []byte) bool {
			captured = append([]byte(nil), b...)
			return true
		},
	}
	err := ParseWithCallbacks([]byte(input), ParserOpts{Allow: AllowInvalidUTF8In}, cb, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("a\x80b"), captured)

	// Without the flag, the same lone continuation byte is rejected.
	_, err = printJSON(t, input, ParserOpts{})
	require.Error(t, err)
	jerr, ok := AsJSONError(err)
	require.True(t, ok)
	assert.Equal(t, ErrUTF8, jerr.Kind)
}

func TestParseLargeIntegerStaysInteger(t *testing.T) {
	got, err := printJSON(t, `9223372036854775807`, ParserOpts{})
	require.NoError(t, err)
	assert.Equal(t, `9223372036854775807`, got)
}

func TestParseOverflowingIntegerBecomesReal(t *testing.T) {
	got, err := printJSON(t, `99999999999999999999999999`, ParserOpts{})
	require.NoError(t, err)
	assert.Contains(t, got, "e")
}

// collectPush records the events the push parser delivers through
// Callbacks, copying string/key bytes since they are borrowed.
func collectPush(t *testing.T, input string, opts ParserOpts) []Event {
	t.Helper()
	var out []Event
	add := func(ev Event) bool { out = append(out, ev); return true }
	cb := &Callbacks{
		Null: func(any) bool { return add(Event{Type: TypeNull}) },
		Boolean: func(_ any, isTrue bool) bool {
			if isTrue {
				return add(Event{Type: TypeTrue})
			}
			return add(Event{Type: TypeFalse})
		},
		Integer:     func(_ any, v int64) bool { return add(Event{Type: TypeInteger, Integer: v}) },
		Real:        func(_ any, v float64) bool { return add(Event{Type: TypeReal, Real: v}) },
		String:      func(_ any, b []byte) bool { return add(Event{Type: TypeString, Bytes: append([]byte(nil), b...)}) },
		Key:         func(_ any, b []byte) bool { return add(Event{Type: TypeKey, Bytes: append([]byte(nil), b...)}) },
		StartArray:  func(any) bool { return add(Event{Type: TypeStartArray}) },
		EndArray:    func(any) bool { return add(Event{Type: TypeEndArray}) },
		StartObject: func(any) bool { return add(Event{Type: TypeStartObject}) },
		EndObject:   func(any) bool { return add(Event{Type: TypeEndObject}) },
	}
	require.NoError(t, ParseWithCallbacks([]byte(input), opts, cb, nil))
	return out
}

func TestPushAndPullAgreeOnEventSequence(t *testing.T) {
	inputs := []string{
		`{"a":[1,-2.5,"sé",true,false,null,{"k":[]}]}`,
		`[]`,
		`{}`,
		`"just a string"`,
		`42`,
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			pushed := collectPush(t, input, ParserOpts{})

			pp, err := NewPullParser([]byte(input), ParserOpts{})
			require.NoError(t, err)
			var pulled []Event
			for {
				ev := pp.Next()
				if ev.Type == TypeEOF {
					break
				}
				pulled = append(pulled, ev)
			}

			if diff := cmp.Diff(pushed, pulled, cmp.Comparer(func(a, b Event) bool {
				return a.Type == b.Type && a.Integer == b.Integer && a.Real == b.Real && string(a.Bytes) == string(b.Bytes)
			})); diff != "" {
				t.Errorf("push/pull disagree (-push +pull):\n%s", diff)
			}
		})
	}
}
