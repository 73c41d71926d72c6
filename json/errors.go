// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

package json

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorCode identifies a syntax error found by the Parser.
type ErrorCode int

const (
	InvalidSyntax ErrorCode = iota
	InvalidNumber
	EOFWhileParsingObject
	EOFWhileParsingArray
	EOFWhileParsingValue
	EOFWhileParsingString
	KeyMustBeAString
	ExpectedColon
	TrailingCharacters
	TrailingComma
	InvalidEscape
	InvalidUnicodeCodePoint
	LoneLeadingSurrogateInHexEscape
	UnexpectedEndOfHexEscape
	UnrecognizedHex
	NotFourDigit
	ControlCharacterInString
	NotUtf8
)

var codeMessages = [...]string{
	InvalidSyntax:                   "invalid syntax",
	InvalidNumber:                   "invalid number",
	EOFWhileParsingObject:           "EOF While parsing object",
	EOFWhileParsingArray:            "EOF While parsing array",
	EOFWhileParsingValue:            "EOF While parsing value",
	EOFWhileParsingString:           "EOF While parsing string",
	KeyMustBeAString:                "key must be a string",
	ExpectedColon:                   "expected `:`",
	TrailingCharacters:              "trailing characters",
	TrailingComma:                   "trailing comma",
	InvalidEscape:                   "invalid escape",
	InvalidUnicodeCodePoint:         "invalid Unicode code point",
	LoneLeadingSurrogateInHexEscape: "lone leading surrogate in hex escape",
	UnexpectedEndOfHexEscape:        "unexpected end of hex escape",
	UnrecognizedHex:                 "invalid \\u escape (unrecognized hex)",
	NotFourDigit:                    "invalid \\u escape (not four digits)",
	ControlCharacterInString:        "unescaped control character in string",
	NotUtf8:                         "contents not utf-8",
}

func (c ErrorCode) String() string {
	if c < 0 || int(c) >= len(codeMessages) {
		return fmt.Sprintf("unknown error code %d", int(c))
	}
	return codeMessages[c]
}

// SyntaxError is a parse failure at a position of the input.
// Lines start at 1. A newline moves to column 1 of the next line.
type SyntaxError struct {
	Code ErrorCode
	Line int
	Col  int
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("json: %s at line %d column %d", e.Code, e.Line, e.Col)
}

// IOError is returned when reading the input failed.
type IOError struct {
	Err error
}

func (e IOError) Error() string { return "json: read failed: " + e.Err.Error() }
func (e IOError) Cause() error  { return e.Err }
func (e IOError) Unwrap() error { return e.Err }

// ParseError is returned by Decode when the input is not valid JSON.
type ParseError struct {
	Err error
}

func (e ParseError) Error() string { return e.Err.Error() }
func (e ParseError) Cause() error  { return e.Err }
func (e ParseError) Unwrap() error { return e.Err }

// ExpectedError reports a value of the wrong type. Found holds the offending
// value, usually as compact JSON.
type ExpectedError struct {
	Expected string
	Found    string
}

func (e ExpectedError) Error() string {
	return fmt.Sprintf("json: expected %s, found %s", e.Expected, e.Found)
}

// MissingFieldError reports an object without a required field.
type MissingFieldError struct {
	Field string
}

func (e MissingFieldError) Error() string {
	return fmt.Sprintf("json: missing field %q", e.Field)
}

// UnknownVariantError reports an enum variant name that is not known.
type UnknownVariantError struct {
	Variant string
}

func (e UnknownVariantError) Error() string {
	return fmt.Sprintf("json: unknown variant %q", e.Variant)
}

// ApplicationError is created through Decoder.Error by hand written decoders.
type ApplicationError struct {
	Msg string
}

func (e ApplicationError) Error() string { return "json: " + e.Msg }

var (
	// ErrEOF is returned when a decoder runs out of values.
	ErrEOF = errors.New("json: unexpected end of values")

	// ErrBadMapKey is returned when a map key is neither a string nor a number.
	ErrBadMapKey = errors.New("json: map key must be a string or a number")

	// ErrNotPretty is returned by SetIndent on compact encoders.
	ErrNotPretty = errors.New("json: indentation requires a pretty encoder")
)
