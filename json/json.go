// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

package json

import (
	"fmt"
	"strings"

	"github.com/ssbc/serialize"
)

// Encode returns v as compact JSON.
func Encode(v interface{}) (string, error) {
	var sb strings.Builder
	if err := serialize.Encode(NewEncoder(&sb), v); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// EncodePretty returns v as JSON indented by DefaultIndent spaces.
func EncodePretty(v interface{}) (string, error) {
	var sb strings.Builder
	if err := serialize.Encode(NewPrettyEncoder(&sb), v); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Decode parses s and decodes it into v, which must be a non-nil pointer.
// Syntax errors are returned as ParseError.
func Decode(s string, v interface{}) error {
	val, err := Parse(s)
	if err != nil {
		return ParseError{Err: err}
	}
	return serialize.Decode(NewDecoder(val), v)
}

// Formatter prints a value as JSON through the fmt package.
type Formatter struct {
	v      interface{}
	pretty bool
	indent int
}

// AsJSON formats v as compact JSON when printed.
func AsJSON(v interface{}) Formatter {
	return Formatter{v: v}
}

// AsPrettyJSON formats v as indented JSON when printed.
func AsPrettyJSON(v interface{}) Formatter {
	return Formatter{v: v, pretty: true, indent: DefaultIndent}
}

// Indent sets the spaces per level of a pretty Formatter.
func (f Formatter) Indent(n int) Formatter {
	f.indent = n
	return f
}

func (f Formatter) String() string {
	var (
		sb  strings.Builder
		enc *Encoder
	)
	if f.pretty {
		enc = NewPrettyEncoder(&sb)
		_ = enc.SetIndent(f.indent)
	} else {
		enc = NewEncoder(&sb)
	}
	if err := serialize.Encode(enc, f.v); err != nil {
		return fmt.Sprintf("%%!json(%v)", err)
	}
	return sb.String()
}
