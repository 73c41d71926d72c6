// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

package json

import (
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
)

// EventKind is the type of an Event.
type EventKind uint8

const (
	ObjectStart EventKind = iota
	ObjectEnd
	ArrayStart
	ArrayEnd
	BoolEvent
	I64Event
	U64Event
	F64Event
	StringEvent
	NullEvent
	ErrorEvent
)

var eventNames = [...]string{
	ObjectStart: "ObjectStart",
	ObjectEnd:   "ObjectEnd",
	ArrayStart:  "ArrayStart",
	ArrayEnd:    "ArrayEnd",
	BoolEvent:   "Bool",
	I64Event:    "I64",
	U64Event:    "U64",
	F64Event:    "F64",
	StringEvent: "String",
	NullEvent:   "Null",
	ErrorEvent:  "Error",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "Invalid"
}

// Event is one step of the streaming parser. Only the field matching Kind is
// set.
type Event struct {
	Kind   EventKind
	Bool   bool
	I64    int64
	U64    uint64
	F64    float64
	String string
	Err    error
}

type parserState uint8

const (
	parseStart parserState = iota
	// array value, first element
	parseArrayFirst
	parseArray
	// ',' or ']' after an array element
	parseArrayComma
	parseObjectFirst
	parseObject
	// ',' or '}' after an object member
	parseObjectComma
	// only whitespace may follow
	parseBeforeFinish
	parseFinished
	// a document of a stream ended, NextDocument starts the next one
	parseDocumentEnd
)

// Parser is a streaming JSON parser. Next yields one Event at a time, Stack
// tells where in the document the last event was found.
type Parser struct {
	rd   io.RuneReader
	rerr error

	ch  rune
	eof bool

	line, col int

	stack Stack
	state parserState

	stream bool
}

// NewParser reads a document from rd.
func NewParser(rd io.RuneReader) *Parser {
	p := &Parser{
		rd:   rd,
		line: 1,
	}
	p.bump()
	return p
}

// NewStreamParser reads a sequence of documents from rd. Documents may be
// separated by whitespace. Next reports the end of each document, after that
// NextDocument moves on to the following one.
func NewStreamParser(rd io.RuneReader) *Parser {
	p := NewParser(rd)
	p.stream = true
	return p
}

// NextDocument skips the whitespace after the last document and reports
// whether another one follows. It is only useful with NewStreamParser.
func (p *Parser) NextDocument() (bool, error) {
	switch p.state {
	case parseStart, parseDocumentEnd:
	default:
		return false, nil
	}

	p.parseWhitespace()
	if p.eof {
		p.state = parseFinished
		if p.rerr != nil {
			return false, IOError{Err: p.rerr}
		}
		return false, nil
	}
	p.stack = Stack{}
	p.state = parseStart
	return true, nil
}

// NewStringParser reads the document s.
func NewStringParser(s string) *Parser {
	return NewParser(strings.NewReader(s))
}

// Stack returns the current position in the document.
func (p *Parser) Stack() *Stack { return &p.stack }

// Next returns the next event. The second result is false once the document
// ended, after an error event no more events follow.
func (p *Parser) Next() (Event, bool) {
	switch p.state {
	case parseFinished, parseDocumentEnd:
		return Event{}, false

	case parseBeforeFinish:
		if p.stream {
			p.state = parseDocumentEnd
			return Event{}, false
		}
		p.parseWhitespace()
		if !p.eof {
			return p.errorEvent(TrailingCharacters), true
		}
		p.state = parseFinished
		if p.rerr != nil {
			return Event{Kind: ErrorEvent, Err: IOError{Err: p.rerr}}, true
		}
		return Event{}, false
	}
	return p.parse(), true
}

func (p *Parser) bump() {
	if p.eof {
		p.col++
		return
	}

	r, _, err := p.rd.ReadRune()
	if err != nil {
		if err != io.EOF {
			p.rerr = err
		}
		p.eof = true
		p.ch = 0
		p.col++
		return
	}

	p.ch = r
	if r == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
}

func (p *Parser) chIs(c rune) bool { return !p.eof && p.ch == c }

func (p *Parser) chOrNull() rune {
	if p.eof {
		return 0
	}
	return p.ch
}

func (p *Parser) nextChar() (rune, bool) {
	p.bump()
	return p.ch, !p.eof
}

func (p *Parser) error(code ErrorCode) error {
	if p.eof && p.rerr != nil {
		return IOError{Err: p.rerr}
	}
	return SyntaxError{Code: code, Line: p.line, Col: p.col}
}

func (p *Parser) errorEvent(code ErrorCode) Event {
	p.state = parseFinished
	return Event{Kind: ErrorEvent, Err: p.error(code)}
}

func (p *Parser) parseWhitespace() {
	for p.chIs(' ') || p.chIs('\n') || p.chIs('\t') || p.chIs('\r') {
		p.bump()
	}
}

func (p *Parser) parse() Event {
	for {
		p.parseWhitespace()

		switch p.state {
		case parseStart:
			return p.parseStart()

		case parseArrayFirst, parseArray:
			return p.parseArray(p.state == parseArrayFirst)

		case parseArrayComma:
			if evt, ok := p.parseArrayCommaOrEnd(); ok {
				return evt
			}

		case parseObjectFirst, parseObject:
			return p.parseObject(p.state == parseObjectFirst)

		case parseObjectComma:
			p.stack.pop()
			if !p.chIs(',') {
				return p.parseObjectEnd()
			}
			p.state = parseObject
			p.bump()

		default:
			return p.errorEvent(InvalidSyntax)
		}
	}
}

// stateAfterValue picks the state once a value was completed.
func (p *Parser) stateAfterValue(evt Event) parserState {
	switch evt.Kind {
	case ErrorEvent:
		return parseFinished
	case ArrayStart:
		return parseArrayFirst
	case ObjectStart:
		return parseObjectFirst
	}
	if p.stack.IsEmpty() {
		return parseBeforeFinish
	}
	if p.stack.lastIsIndex() {
		return parseArrayComma
	}
	return parseObjectComma
}

// stateAfterEnd picks the state once an array or object was closed.
func (p *Parser) stateAfterEnd() parserState {
	if p.stack.IsEmpty() {
		return parseBeforeFinish
	}
	if p.stack.lastIsIndex() {
		return parseArrayComma
	}
	return parseObjectComma
}

func (p *Parser) parseStart() Event {
	evt := p.parseValue()
	switch evt.Kind {
	case ErrorEvent:
		p.state = parseFinished
	case ArrayStart:
		p.state = parseArrayFirst
	case ObjectStart:
		p.state = parseObjectFirst
	default:
		p.state = parseBeforeFinish
	}
	return evt
}

func (p *Parser) parseArray(first bool) Event {
	if p.chIs(']') {
		if !first {
			return p.errorEvent(InvalidSyntax)
		}
		p.state = p.stateAfterEnd()
		p.bump()
		return Event{Kind: ArrayEnd}
	}

	if first {
		p.stack.pushIndex(0)
	}
	evt := p.parseValue()
	p.state = p.stateAfterValue(evt)
	return evt
}

func (p *Parser) parseArrayCommaOrEnd() (Event, bool) {
	switch {
	case p.chIs(','):
		p.stack.bumpIndex()
		p.state = parseArray
		p.bump()
		return Event{}, false

	case p.chIs(']'):
		p.stack.pop()
		p.state = p.stateAfterEnd()
		p.bump()
		return Event{Kind: ArrayEnd}, true

	case p.eof:
		return p.errorEvent(EOFWhileParsingArray), true
	}
	return p.errorEvent(InvalidSyntax), true
}

func (p *Parser) parseObject(first bool) Event {
	if p.chIs('}') {
		if !first {
			return p.errorEvent(TrailingComma)
		}
		p.state = p.stateAfterEnd()
		p.bump()
		return Event{Kind: ObjectEnd}
	}
	if p.eof {
		return p.errorEvent(EOFWhileParsingObject)
	}
	if !p.chIs('"') {
		return p.errorEvent(KeyMustBeAString)
	}

	key, err := p.parseString()
	if err != nil {
		p.state = parseFinished
		return Event{Kind: ErrorEvent, Err: err}
	}

	p.parseWhitespace()
	if p.eof {
		return p.errorEvent(EOFWhileParsingObject)
	}
	if p.ch != ':' {
		return p.errorEvent(ExpectedColon)
	}
	p.stack.pushKey(key)
	p.bump()
	p.parseWhitespace()

	evt := p.parseValue()
	p.state = p.stateAfterValue(evt)
	return evt
}

func (p *Parser) parseObjectEnd() Event {
	if p.chIs('}') {
		p.state = p.stateAfterEnd()
		p.bump()
		return Event{Kind: ObjectEnd}
	}
	if p.eof {
		return p.errorEvent(EOFWhileParsingObject)
	}
	return p.errorEvent(InvalidSyntax)
}

func (p *Parser) parseValue() Event {
	if p.eof {
		return p.errorEvent(EOFWhileParsingValue)
	}

	switch c := p.ch; {
	case c == 'n':
		return p.parseIdent("ull", Event{Kind: NullEvent})
	case c == 't':
		return p.parseIdent("rue", Event{Kind: BoolEvent, Bool: true})
	case c == 'f':
		return p.parseIdent("alse", Event{Kind: BoolEvent, Bool: false})
	case c == '-' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	case c == '"':
		s, err := p.parseString()
		if err != nil {
			return Event{Kind: ErrorEvent, Err: err}
		}
		return Event{Kind: StringEvent, String: s}
	case c == '[':
		p.bump()
		return Event{Kind: ArrayStart}
	case c == '{':
		p.bump()
		return Event{Kind: ObjectStart}
	}
	return p.errorEvent(InvalidSyntax)
}

func (p *Parser) parseIdent(rest string, evt Event) Event {
	for _, want := range rest {
		if c, ok := p.nextChar(); !ok || c != want {
			return Event{Kind: ErrorEvent, Err: p.error(InvalidSyntax)}
		}
	}
	p.bump()
	return evt
}

func (p *Parser) parseNumber() Event {
	var text strings.Builder

	neg := false
	if p.chIs('-') {
		text.WriteRune('-')
		p.bump()
		neg = true
	}

	res, err := p.parseUint(&text)
	if err != nil {
		return Event{Kind: ErrorEvent, Err: err}
	}

	if p.chIs('.') || p.chIs('e') || p.chIs('E') {
		if p.chIs('.') {
			if err := p.parseDecimal(&text); err != nil {
				return Event{Kind: ErrorEvent, Err: err}
			}
		}
		if p.chIs('e') || p.chIs('E') {
			if err := p.parseExponent(&text); err != nil {
				return Event{Kind: ErrorEvent, Err: err}
			}
		}

		// out of range exponents yield ±Inf or 0, like repeated multiplication would
		f, _ := strconv.ParseFloat(text.String(), 64)
		return Event{Kind: F64Event, F64: f}
	}

	if !neg {
		return Event{Kind: U64Event, U64: res}
	}
	if res > math.MaxInt64+1 {
		return Event{Kind: ErrorEvent, Err: p.error(InvalidNumber)}
	}
	return Event{Kind: I64Event, I64: int64(^res + 1)}
}

func (p *Parser) parseUint(text *strings.Builder) (uint64, error) {
	switch c := p.chOrNull(); {
	case c == '0':
		text.WriteRune(c)
		p.bump()

		// a leading zero must be the only digit before the decimal point
		if c := p.chOrNull(); c >= '0' && c <= '9' {
			return 0, p.error(InvalidNumber)
		}
		return 0, nil

	case c >= '1' && c <= '9':
		var accum uint64
		for !p.eof {
			c := p.ch
			if c < '0' || c > '9' {
				break
			}
			d := uint64(c - '0')
			if accum > math.MaxUint64/10 {
				return 0, p.error(InvalidNumber)
			}
			accum *= 10
			if accum > math.MaxUint64-d {
				return 0, p.error(InvalidNumber)
			}
			accum += d

			text.WriteRune(c)
			p.bump()
		}
		return accum, nil
	}
	return 0, p.error(InvalidNumber)
}

func (p *Parser) parseDecimal(text *strings.Builder) error {
	text.WriteRune('.')
	p.bump()

	// at least one digit after the decimal point
	if c := p.chOrNull(); c < '0' || c > '9' {
		return p.error(InvalidNumber)
	}
	for !p.eof && p.ch >= '0' && p.ch <= '9' {
		text.WriteRune(p.ch)
		p.bump()
	}
	return nil
}

func (p *Parser) parseExponent(text *strings.Builder) error {
	text.WriteRune('e')
	p.bump()

	if p.chIs('+') {
		p.bump()
	} else if p.chIs('-') {
		text.WriteRune('-')
		p.bump()
	}

	if c := p.chOrNull(); c < '0' || c > '9' {
		return p.error(InvalidNumber)
	}
	for !p.eof && p.ch >= '0' && p.ch <= '9' {
		text.WriteRune(p.ch)
		p.bump()
	}
	return nil
}

func (p *Parser) decodeHexEscape() (uint16, error) {
	var n uint16
	for i := 0; i < 4; i++ {
		p.bump()
		c := p.chOrNull()
		switch {
		case c >= '0' && c <= '9':
			n = n*16 + uint16(c-'0')
		case c >= 'a' && c <= 'f':
			n = n*16 + uint16(c-'a') + 10
		case c >= 'A' && c <= 'F':
			n = n*16 + uint16(c-'A') + 10
		default:
			return 0, p.error(InvalidEscape)
		}
	}
	return n, nil
}

// parseString reads a string starting at the opening quote and leaves the
// parser after the closing one.
func (p *Parser) parseString() (string, error) {
	var (
		res    strings.Builder
		escape bool
	)

	for {
		p.bump()
		if p.eof {
			return "", p.error(EOFWhileParsingString)
		}

		if escape {
			escape = false
			switch p.ch {
			case '"':
				res.WriteByte('"')
			case '\\':
				res.WriteByte('\\')
			case '/':
				res.WriteByte('/')
			case 'b':
				res.WriteByte('\b')
			case 'f':
				res.WriteByte('\f')
			case 'n':
				res.WriteByte('\n')
			case 'r':
				res.WriteByte('\r')
			case 't':
				res.WriteByte('\t')
			case 'u':
				r, err := p.parseUnicodeEscape()
				if err != nil {
					return "", err
				}
				res.WriteRune(r)
			default:
				return "", p.error(InvalidEscape)
			}
			continue
		}

		switch {
		case p.ch == '\\':
			escape = true
		case p.ch == '"':
			p.bump()
			return res.String(), nil
		case unicode.IsControl(p.ch):
			return "", p.error(ControlCharacterInString)
		default:
			res.WriteRune(p.ch)
		}
	}
}

func (p *Parser) parseUnicodeEscape() (rune, error) {
	n1, err := p.decodeHexEscape()
	if err != nil {
		return 0, err
	}

	switch {
	case n1 >= 0xDC00 && n1 <= 0xDFFF:
		return 0, p.error(LoneLeadingSurrogateInHexEscape)

	case n1 >= 0xD800 && n1 <= 0xDBFF:
		// characters outside the BMP come as a pair of surrogate escapes
		c1, ok1 := p.nextChar()
		c2, ok2 := p.nextChar()
		if !ok1 || !ok2 || c1 != '\\' || c2 != 'u' {
			return 0, p.error(UnexpectedEndOfHexEscape)
		}

		n2, err := p.decodeHexEscape()
		if err != nil {
			return 0, err
		}
		if n2 < 0xDC00 || n2 > 0xDFFF {
			return 0, p.error(LoneLeadingSurrogateInHexEscape)
		}
		return utf16.DecodeRune(rune(n1), rune(n2)), nil
	}

	return rune(n1), nil
}
