// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

package json

import (
	"io"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type syntaxCase struct {
	src  string
	code ErrorCode
	line int
	col  int
}

func checkSyntaxErrors(t *testing.T, cases []syntaxCase) {
	for _, tc := range cases {
		_, err := Parse(tc.src)
		require.Equal(t, SyntaxError{Code: tc.code, Line: tc.line, Col: tc.col}, err, "input %q", tc.src)

		// the streaming parser ends with the same error
		require.Equal(t, Event{Kind: ErrorEvent, Err: err}, lastEvent(tc.src), "stream of %q", tc.src)
	}
}

func lastEvent(src string) Event {
	p := NewStringParser(src)
	var last Event
	for {
		evt, ok := p.Next()
		if !ok {
			return last
		}
		last = evt
	}
}

func TestTrailingCharacters(t *testing.T) {
	checkSyntaxErrors(t, []syntaxCase{
		{"nulla", TrailingCharacters, 1, 5},
		{"truea", TrailingCharacters, 1, 5},
		{"falsea", TrailingCharacters, 1, 6},
		{"1a", TrailingCharacters, 1, 2},
		{"[]a", TrailingCharacters, 1, 3},
		{"{}a", TrailingCharacters, 1, 3},
	})
}

func TestReadIdentifiers(t *testing.T) {
	checkSyntaxErrors(t, []syntaxCase{
		{"n", InvalidSyntax, 1, 2},
		{"nul", InvalidSyntax, 1, 4},
		{"t", InvalidSyntax, 1, 2},
		{"truz", InvalidSyntax, 1, 4},
		{"f", InvalidSyntax, 1, 2},
		{"faz", InvalidSyntax, 1, 3},
	})

	r := require.New(t)
	for src, want := range map[string]Value{
		"null":    Null,
		"true":    NewBool(true),
		"false":   NewBool(false),
		" null ":  Null,
		" true ":  NewBool(true),
		" false ": NewBool(false),
	} {
		v, err := Parse(src)
		r.NoError(err)
		r.True(want.Equal(v), "%q: %s", src, v)
	}
}

func TestReadNumber(t *testing.T) {
	checkSyntaxErrors(t, []syntaxCase{
		{"+", InvalidSyntax, 1, 1},
		{".", InvalidSyntax, 1, 1},
		{"NaN", InvalidSyntax, 1, 1},
		{"-", InvalidNumber, 1, 2},
		{"00", InvalidNumber, 1, 2},
		{"1.", InvalidNumber, 1, 3},
		{"1e", InvalidNumber, 1, 3},
		{"1e+", InvalidNumber, 1, 4},
		{"18446744073709551616", InvalidNumber, 1, 20},
		{"18446744073709551617", InvalidNumber, 1, 20},
		{"-9223372036854775809", InvalidNumber, 1, 21},
	})

	r := require.New(t)
	for _, tc := range []struct {
		src  string
		want Value
	}{
		{"3", NewU64(3)},
		{"3.1", NewF64(3.1)},
		{"-1.2", NewF64(-1.2)},
		{"0.4", NewF64(0.4)},
		{"0.4e5", NewF64(0.4e5)},
		{"0.4e+15", NewF64(0.4e15)},
		{"0.4e-01", NewF64(0.4e-01)},
		{"1E2", NewF64(100)},
		{" 3 ", NewU64(3)},
		{"-0", NewI64(0)},
		{"-9223372036854775808", NewI64(math.MinInt64)},
		{"9223372036854775807", NewU64(math.MaxInt64)},
		{"18446744073709551615", NewU64(math.MaxUint64)},
	} {
		v, err := Parse(tc.src)
		r.NoError(err, "input %q", tc.src)
		r.Empty(cmp.Diff(tc.want, v), "input %q", tc.src)
	}
}

func TestReadString(t *testing.T) {
	checkSyntaxErrors(t, []syntaxCase{
		{`"`, EOFWhileParsingString, 1, 2},
		{`"lol`, EOFWhileParsingString, 1, 5},
		{"\"\n\"", ControlCharacterInString, 2, 1},
		{`"\x"`, InvalidEscape, 1, 3},
		{`"\u12x4"`, InvalidEscape, 1, 6},
		{`"\uDC00"`, LoneLeadingSurrogateInHexEscape, 1, 7},
		{`"\uD834x"`, UnexpectedEndOfHexEscape, 1, 9},
		{`"\uD834\u0041"`, LoneLeadingSurrogateInHexEscape, 1, 13},
	})

	r := require.New(t)
	for src, want := range map[string]string{
		`""`:             "",
		`"foo"`:          "foo",
		`"\""`:           `"`,
		`"\b"`:           "\b",
		`"\n"`:           "\n",
		`"\r"`:           "\r",
		`"\t"`:           "\t",
		`"\/"`:           "/",
		` "foo" `:        "foo",
		`"\u12ab"`:       "\u12ab",
		`"\uAB12"`:       "\uAB12",
		`"\uD834\uDF06"`: "\U0001D306",
		`"grüße"`:        "grüße",
	} {
		v, err := Parse(src)
		r.NoError(err, "input %q", src)
		s, ok := v.AsString()
		r.True(ok)
		r.Equal(want, s)
	}
}

func TestReadArray(t *testing.T) {
	checkSyntaxErrors(t, []syntaxCase{
		{"[", EOFWhileParsingValue, 1, 2},
		{"[1", EOFWhileParsingArray, 1, 3},
		{"[1,", EOFWhileParsingValue, 1, 4},
		{"[1,]", InvalidSyntax, 1, 4},
		{"[6 7]", InvalidSyntax, 1, 4},
	})

	r := require.New(t)
	for _, tc := range []struct {
		src  string
		want Value
	}{
		{"[]", NewArray()},
		{"[ ]", NewArray()},
		{"[true]", NewArray(NewBool(true))},
		{"[ false ]", NewArray(NewBool(false))},
		{"[null]", NewArray(Null)},
		{"[3, 1]", NewArray(NewU64(3), NewU64(1))},
		{"\n[3, 2]\n", NewArray(NewU64(3), NewU64(2))},
		{"[2, [4, 1]]", NewArray(NewU64(2), NewArray(NewU64(4), NewU64(1)))},
	} {
		v, err := Parse(tc.src)
		r.NoError(err, "input %q", tc.src)
		r.Empty(cmp.Diff(tc.want, v), "input %q", tc.src)
	}
}

func TestReadObject(t *testing.T) {
	checkSyntaxErrors(t, []syntaxCase{
		{"{", EOFWhileParsingObject, 1, 2},
		{"{ ", EOFWhileParsingObject, 1, 3},
		{"{1", KeyMustBeAString, 1, 2},
		{`{ "a"`, EOFWhileParsingObject, 1, 6},
		{`{"a"`, EOFWhileParsingObject, 1, 5},
		{`{"a" `, EOFWhileParsingObject, 1, 6},
		{`{"a" 1`, ExpectedColon, 1, 6},
		{`{"a":`, EOFWhileParsingValue, 1, 6},
		{`{"a":1`, EOFWhileParsingObject, 1, 7},
		{`{"a":1 1`, InvalidSyntax, 1, 8},
		{`{"a":1,`, EOFWhileParsingObject, 1, 8},
		{`{"a":1,}`, TrailingComma, 1, 8},
		{`{"a":{"b":1,}}`, TrailingComma, 1, 13},
		{`[{"a":1,}]`, TrailingComma, 1, 9},
		{"{\n  \"foo\":\n \"bar\"", EOFWhileParsingObject, 3, 8},
	})

	r := require.New(t)
	for _, tc := range []struct {
		src  string
		want Value
	}{
		{"{}", NewObject(nil)},
		{`{"a": 3}`, NewObject(map[string]Value{"a": NewU64(3)})},
		{`{ "a": null, "b" : true }`, NewObject(map[string]Value{
			"a": Null,
			"b": NewBool(true),
		})},
		{"\n{ \"a\": null, \"b\" : true }\n", NewObject(map[string]Value{
			"a": Null,
			"b": NewBool(true),
		})},
		{`{"a" : 1.0 ,"b": [ true ]}`, NewObject(map[string]Value{
			"a": NewF64(1),
			"b": NewArray(NewBool(true)),
		})},
		{`{"a": 1.0, "b": [true, "foo\nbar", { "c": {"d": null} } ]}`, NewObject(map[string]Value{
			"a": NewF64(1),
			"b": NewArray(
				NewBool(true),
				NewString("foo\nbar"),
				NewObject(map[string]Value{
					"c": NewObject(map[string]Value{"d": Null}),
				}),
			),
		})},
	} {
		v, err := Parse(tc.src)
		r.NoError(err, "input %q", tc.src)
		r.Empty(cmp.Diff(tc.want, v), "input %q", tc.src)
	}
}

type streamStep struct {
	evt   Event
	stack []StackElement
}

func checkStream(t *testing.T, src string, want []streamStep) {
	r := require.New(t)

	p := NewStringParser(src)
	i := 0
	for {
		evt, ok := p.Next()
		if !ok {
			break
		}
		r.Less(i, len(want), "too many events for %q", src)
		r.Equal(want[i].evt, evt, "event %d of %q", i, src)
		r.True(p.Stack().IsEqualTo(want[i].stack...), "event %d of %q: stack is %s", i, src, p.Stack())
		i++
	}
	r.Equal(len(want), i, "missing events for %q", src)
}

func TestStreamingParser(t *testing.T) {
	checkStream(t, `{ "foo":"bar", "array" : [0, 1, 2], "idents":[null,true,false]}`, []streamStep{
		{Event{Kind: ObjectStart}, nil},
		{Event{Kind: StringEvent, String: "bar"}, []StackElement{Key("foo")}},
		{Event{Kind: ArrayStart}, []StackElement{Key("array")}},
		{Event{Kind: U64Event, U64: 0}, []StackElement{Key("array"), Index(0)}},
		{Event{Kind: U64Event, U64: 1}, []StackElement{Key("array"), Index(1)}},
		{Event{Kind: U64Event, U64: 2}, []StackElement{Key("array"), Index(2)}},
		{Event{Kind: ArrayEnd}, []StackElement{Key("array")}},
		{Event{Kind: ArrayStart}, []StackElement{Key("idents")}},
		{Event{Kind: NullEvent}, []StackElement{Key("idents"), Index(0)}},
		{Event{Kind: BoolEvent, Bool: true}, []StackElement{Key("idents"), Index(1)}},
		{Event{Kind: BoolEvent, Bool: false}, []StackElement{Key("idents"), Index(2)}},
		{Event{Kind: ArrayEnd}, []StackElement{Key("idents")}},
		{Event{Kind: ObjectEnd}, nil},
	})

	checkStream(t, `{
		"a": 1.0,
		"b": [
			true,
			"foo\nbar",
			{ "c": {"d": null} },
			"\uD834\uDF06"
		]
	}`, []streamStep{
		{Event{Kind: ObjectStart}, nil},
		{Event{Kind: F64Event, F64: 1}, []StackElement{Key("a")}},
		{Event{Kind: ArrayStart}, []StackElement{Key("b")}},
		{Event{Kind: BoolEvent, Bool: true}, []StackElement{Key("b"), Index(0)}},
		{Event{Kind: StringEvent, String: "foo\nbar"}, []StackElement{Key("b"), Index(1)}},
		{Event{Kind: ObjectStart}, []StackElement{Key("b"), Index(2)}},
		{Event{Kind: ObjectStart}, []StackElement{Key("b"), Index(2), Key("c")}},
		{Event{Kind: NullEvent}, []StackElement{Key("b"), Index(2), Key("c"), Key("d")}},
		{Event{Kind: ObjectEnd}, []StackElement{Key("b"), Index(2), Key("c")}},
		{Event{Kind: ObjectEnd}, []StackElement{Key("b"), Index(2)}},
		{Event{Kind: StringEvent, String: "\U0001D306"}, []StackElement{Key("b"), Index(3)}},
		{Event{Kind: ArrayEnd}, []StackElement{Key("b")}},
		{Event{Kind: ObjectEnd}, nil},
	})

	checkStream(t, "[2, [4, 1]]", []streamStep{
		{Event{Kind: ArrayStart}, nil},
		{Event{Kind: U64Event, U64: 2}, []StackElement{Index(0)}},
		{Event{Kind: ArrayStart}, []StackElement{Index(1)}},
		{Event{Kind: U64Event, U64: 4}, []StackElement{Index(1), Index(0)}},
		{Event{Kind: U64Event, U64: 1}, []StackElement{Index(1), Index(1)}},
		{Event{Kind: ArrayEnd}, []StackElement{Index(1)}},
		{Event{Kind: ArrayEnd}, nil},
	})

	checkStream(t, "{}", []streamStep{
		{Event{Kind: ObjectStart}, nil},
		{Event{Kind: ObjectEnd}, nil},
	})
}

func TestReadIdentifiersStreaming(t *testing.T) {
	r := require.New(t)

	evt, ok := NewStringParser("null").Next()
	r.True(ok)
	r.Equal(Event{Kind: NullEvent}, evt)

	evt, ok = NewStringParser("true").Next()
	r.True(ok)
	r.Equal(Event{Kind: BoolEvent, Bool: true}, evt)

	p := NewStringParser("false")
	evt, ok = p.Next()
	r.True(ok)
	r.Equal(Event{Kind: BoolEvent, Bool: false}, evt)
	_, ok = p.Next()
	r.False(ok)
}

type failingReader struct {
	data string
}

func (fr *failingReader) ReadRune() (rune, int, error) {
	if fr.data == "" {
		return 0, 0, errors.New("disk on fire")
	}
	c := rune(fr.data[0])
	fr.data = fr.data[1:]
	return c, 1, nil
}

func TestParserReadFailure(t *testing.T) {
	r := require.New(t)

	p := NewParser(&failingReader{data: "[1, 2"})
	evt := Event{}
	for {
		e, ok := p.Next()
		if !ok {
			break
		}
		evt = e
	}
	r.Equal(ErrorEvent, evt.Kind)
	var ioErr IOError
	r.True(errors.As(evt.Err, &ioErr), "got %v", evt.Err)
	r.EqualError(ioErr.Err, "disk on fire")
}

func TestParseReader(t *testing.T) {
	r := require.New(t)

	v, err := ParseReader(strings.NewReader(`{"dog": "cat"}`))
	r.NoError(err)
	r.Equal(`{"dog":"cat"}`, v.String())

	_, err = ParseReader(strings.NewReader("\"\xff\xfe\""))
	r.Equal(SyntaxError{Code: NotUtf8}, err)
}

func TestStreamParserDocuments(t *testing.T) {
	r := require.New(t)

	b := NewBuilder(NewStreamParser(strings.NewReader(" {\n  \"a\": 1\n}\n[true]\"s\" 12 null\n")))
	var got []string
	for {
		v, err := b.BuildNext()
		if err == io.EOF {
			break
		}
		r.NoError(err)
		got = append(got, v.String())
	}
	r.Equal([]string{`{"a":1}`, `[true]`, `"s"`, `12`, `null`}, got)

	b = NewBuilder(NewStreamParser(strings.NewReader(`1 {"a":`)))
	v, err := b.BuildNext()
	r.NoError(err)
	r.Equal(`1`, v.String())
	_, err = b.BuildNext()
	r.Equal(SyntaxError{Code: EOFWhileParsingValue, Line: 1, Col: 8}, err)

	// a plain parser still rejects a second document
	_, err = Parse(`1 2`)
	r.Equal(SyntaxError{Code: TrailingCharacters, Line: 1, Col: 3}, err)
}
