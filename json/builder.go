// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

package json

import (
	"io"
	"unicode/utf8"
)

// Builder assembles the events of a Parser into a Value.
type Builder struct {
	p   *Parser
	tok Event
	ok  bool
}

func NewBuilder(p *Parser) *Builder {
	return &Builder{p: p}
}

// Build reads one complete document.
func (b *Builder) Build() (Value, error) {
	b.bump()
	v, err := b.buildValue()
	if err != nil {
		return Null, err
	}

	b.bump()
	if b.ok {
		if b.tok.Kind == ErrorEvent {
			return Null, b.tok.Err
		}
		// the parser only allows whitespace after the top level value
		panic("json: unexpected event after document: " + b.tok.Kind.String())
	}
	return v, nil
}

// BuildNext reads the next document of a stream parser. It returns io.EOF
// once only whitespace is left.
func (b *Builder) BuildNext() (Value, error) {
	more, err := b.p.NextDocument()
	if err != nil {
		return Null, err
	}
	if !more {
		return Null, io.EOF
	}
	return b.Build()
}

func (b *Builder) bump() {
	b.tok, b.ok = b.p.Next()
}

func (b *Builder) buildValue() (Value, error) {
	if !b.ok {
		return Null, b.p.error(EOFWhileParsingValue)
	}

	switch tok := b.tok; tok.Kind {
	case NullEvent:
		return Null, nil
	case BoolEvent:
		return NewBool(tok.Bool), nil
	case I64Event:
		return NewI64(tok.I64), nil
	case U64Event:
		return NewU64(tok.U64), nil
	case F64Event:
		return NewF64(tok.F64), nil
	case StringEvent:
		return NewString(tok.String), nil
	case ErrorEvent:
		return Null, tok.Err
	case ArrayStart:
		return b.buildArray()
	case ObjectStart:
		return b.buildObject()
	}
	return Null, b.p.error(InvalidSyntax)
}

func (b *Builder) buildArray() (Value, error) {
	b.bump()

	values := []Value{}
	for {
		if b.ok && b.tok.Kind == ArrayEnd {
			return NewArray(values...), nil
		}
		v, err := b.buildValue()
		if err != nil {
			return Null, err
		}
		values = append(values, v)
		b.bump()
	}
}

func (b *Builder) buildObject() (Value, error) {
	b.bump()

	members := make(map[string]Value)
	for b.ok {
		switch b.tok.Kind {
		case ObjectEnd:
			return NewObject(members), nil
		case ErrorEvent:
			return Null, b.tok.Err
		}

		top, _ := b.p.Stack().Top()
		key, isKey := top.AsKey()
		if !isKey {
			panic("json: object member without key")
		}

		v, err := b.buildValue()
		if err != nil {
			return Null, err
		}
		members[key] = v
		b.bump()
	}
	return Null, b.p.error(EOFWhileParsingObject)
}

// Parse reads the document s.
func Parse(s string) (Value, error) {
	return NewBuilder(NewStringParser(s)).Build()
}

// ParseReader reads a complete document from r. The input has to be valid
// UTF-8.
func ParseReader(r io.Reader) (Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Null, IOError{Err: err}
	}
	if !utf8.Valid(data) {
		return Null, SyntaxError{Code: NotUtf8}
	}
	return Parse(string(data))
}
