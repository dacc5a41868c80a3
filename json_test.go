package jsnpg

import (
	"fmt"
	"testing"
)

func TestValueKindStrings(t *testing.T) {
	for _, test := range []struct {
		input    ValueKind
		expected string
	}{
		{KindNull, valueKindStrings[KindNull]},
		{KindArray, valueKindStrings[KindArray]},
		{KindObject, valueKindStrings[KindObject]},
		{KindBoolean, valueKindStrings[KindBoolean]},
		{KindInteger, valueKindStrings[KindInteger]},
		{KindReal, valueKindStrings[KindReal]},
		{KindString, valueKindStrings[KindString]},
		{numValueKinds, "<unknown>"},
		{1000, "<unknown>"},
		{-1, "<unknown>"},
	} {
		t.Run(fmt.Sprintf("%v", test.input), func(t *testing.T) {
			if actual := test.input.String(); actual != test.expected {
				t.Errorf("expected %v got %v", test.expected, actual)
			}
		})
	}
}

func TestValueType(t *testing.T) {
	for _, test := range []struct {
		input    Value
		expected ValueKind
	}{
		{Value{kind: KindNull}, KindNull},
		{Value{kind: KindArray}, KindArray},
		{Value{kind: KindObject}, KindObject},
		{Value{kind: KindBoolean}, KindBoolean},
		{Value{kind: KindInteger}, KindInteger},
		{Value{kind: KindReal}, KindReal},
		{Value{kind: KindString}, KindString},
		{Value{kind: numValueKinds}, kindUnknown},
		{Value{kind: 1000}, kindUnknown},
		{Value{kind: -1}, kindUnknown},
	} {
		t.Run(fmt.Sprintf("%v", test.input), func(t *testing.T) {
			if actual := test.input.Type(); actual != test.expected {
				t.Errorf("expected %v got %v", test.expected, actual)
			}
		})
	}
}

func TestValueAsNull(t *testing.T) {
	val := Value{}
	if _, err := val.AsNull(); err != nil {
		t.Errorf("expected no error got %v", err)
	}
	val = Value{kind: KindBoolean, boolean: true}
	if _, err := val.AsNull(); err == nil {
		t.Errorf("expected error got none")
	}
}

func TestValueAsNumber(t *testing.T) {
	val := Value{kind: KindReal, real: 5}
	num, err := val.AsNumber()
	if err != nil {
		t.Errorf("expected no error got %v", err)
	}
	if num != 5 {
		t.Errorf("expected %v got %v", 5, num)
	}

	val = Value{kind: KindInteger, integer: 5}
	num, err = val.AsNumber()
	if err != nil {
		t.Errorf("expected no error got %v", err)
	}
	if num != 5 {
		t.Errorf("expected %v got %v", 5, num)
	}

	val = Value{kind: KindBoolean, boolean: true}
	if _, err = val.AsNumber(); err == nil {
		t.Errorf("expected error got none")
	}
}

func TestValueAsInteger(t *testing.T) {
	val := Value{kind: KindInteger, integer: 5}
	num, err := val.AsInteger()
	if err != nil {
		t.Errorf("expected no error got %v", err)
	}
	if num != 5 {
		t.Errorf("expected %v got %v", 5, num)
	}

	val = Value{kind: KindReal, real: 5}
	if _, err = val.AsInteger(); err == nil {
		t.Errorf("expected error got none")
	}
}

func TestValueAsString(t *testing.T) {
	val := Value{kind: KindString, str: "5"}
	s, err := val.AsString()
	if err != nil {
		t.Errorf("expected no error got %v", err)
	}
	if s != "5" {
		t.Errorf("expected %v got %v", "5", s)
	}

	val = Value{kind: KindBoolean, boolean: true}
	if _, err = val.AsString(); err == nil {
		t.Errorf("expected error got none")
	}
}

func TestValueAsBoolean(t *testing.T) {
	val := Value{kind: KindBoolean, boolean: true}
	b, err := val.AsBoolean()
	if err != nil {
		t.Errorf("expected no error got %v", err)
	}
	if !b {
		t.Errorf("expected %v got %v", true, b)
	}

	val = Value{}
	if _, err = val.AsBoolean(); err == nil {
		t.Errorf("expected error got none")
	}
}

func valuesEqual(a, b *Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindInteger:
		return a.integer == b.integer
	case KindReal:
		return a.real == b.real
	case KindString:
		return a.str == b.str
	case KindBoolean:
		return a.boolean == b.boolean
	case KindArray:
		if len(a.array) != len(b.array) {
			return false
		}
		for i := range a.array {
			if !valuesEqual(a.array[i], b.array[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.object) != len(b.object) {
			return false
		}
		for i := range a.object {
			if a.object[i].key != b.object[i].key || !valuesEqual(a.object[i].val, b.object[i].val) {
				return false
			}
		}
		return true
	}
	return true
}

func TestValueAsArray(t *testing.T) {
	val := Value{kind: KindArray, array: []*Value{{}}}
	a, err := val.AsArray()
	if err != nil {
		t.Errorf("expected no error got %v", err)
	}
	if !valuesEqual(a[0], &Value{}) {
		t.Errorf("expected %v got %v", &Value{}, a[0])
	}

	val = Value{}
	if _, err = val.AsArray(); err == nil {
		t.Errorf("expected error got none")
	}
}

func TestValueAsObject(t *testing.T) {
	val := Value{kind: KindObject, object: []kvPair{{"a", &Value{}}}}
	o, err := val.AsObject()
	if err != nil {
		t.Errorf("expected no error got %v", err)
	}
	if !valuesEqual(o["a"], &Value{}) {
		t.Errorf("expected %v got %v", &Value{}, o["a"])
	}

	val = Value{}
	if _, err = val.AsObject(); err == nil {
		t.Errorf("expected error got none")
	}
}

func TestValueString(t *testing.T) {
	for _, test := range []struct {
		input    Value
		expected string
	}{
		{Value{}, "null"},
		{Value{kind: KindInteger, integer: -5}, `-5`},
		{Value{kind: KindReal, real: -5}, `-5`},
		{Value{kind: KindReal, real: -5.1}, `-5.1`},
		{Value{kind: KindReal, real: -5.12}, `-5.12`},
		{Value{kind: KindString, str: "-5.12"}, `"-5.12"`},
		{Value{kind: KindBoolean, boolean: true}, `true`},
		{Value{kind: KindBoolean, boolean: false}, `false`},
		{Value{kind: KindArray, array: []*Value{
			{},
			{kind: KindInteger, integer: -5},
			{kind: KindString, str: "-5.12"},
			{kind: KindBoolean, boolean: true},
		}}, `[null, -5, "-5.12", true]`},
		{Value{kind: KindObject, object: []kvPair{
			{"a", &Value{}},
			{"b", &Value{kind: KindInteger, integer: -5}},
			{"c", &Value{kind: KindString, str: "-5.12"}},
			{"d", &Value{kind: KindBoolean, boolean: true}},
		}}, `{"a": null, "b": -5, "c": "-5.12", "d": true}`},
		{Value{kind: numValueKinds, integer: -5}, `<unknown>`},
	} {
		t.Run(fmt.Sprintf("%v", test.input), func(t *testing.T) {
			if actual := test.input.String(); actual != test.expected {
				t.Errorf("expected %v got %v", test.expected, actual)
			}
		})
	}
}

func TestValueIndex(t *testing.T) {
	val, err := UnmarshalString(`[[[true, false]]]`)
	if err != nil {
		t.Errorf("expected no error got %v", err)
	}
	for _, test := range []struct {
		actual   *Value
		expected *Value
	}{
		{val.Index(0).Index(0).Index(0), &Value{kind: KindBoolean, boolean: true}},
		{val.Index(0).Index(0).Index(1), &Value{kind: KindBoolean, boolean: false}},
		{val.Index(0).Index(0).Index(2), &Value{}},
		{val.Index(0).Index(1).Index(2), &Value{}},
		{val.Index(-1).Index(1).Index(2), &Value{}},
	} {
		t.Run(fmt.Sprintf("%v", test.actual), func(t *testing.T) {
			if !valuesEqual(test.actual, test.expected) {
				t.Errorf("expected %v\ngot %v", test.expected, test.actual)
			}
		})
	}
}

func TestValueKey(t *testing.T) {
	val, err := UnmarshalString(`{"a": {"b": {"c": true, "d":false}}}`)
	if err != nil {
		t.Errorf("expected no error got %v", err)
	}
	for _, test := range []struct {
		actual   *Value
		expected *Value
	}{
		{val.Key("a").Key("b").Key("c"), &Value{kind: KindBoolean, boolean: true}},
		{val.Key("a").Key("b").Key("d"), &Value{kind: KindBoolean, boolean: false}},
		{val.Key("a").Key("b").Key("e"), &Value{}},
		{val.Key("a").Key("e").Key("d"), &Value{}},
		{val.Key("e").Key("b").Key("d"), &Value{}},
	} {
		t.Run(fmt.Sprintf("%v", test.actual), func(t *testing.T) {
			if !valuesEqual(test.actual, test.expected) {
				t.Errorf("expected %v\ngot %v", test.expected, test.actual)
			}
		})
	}
}
