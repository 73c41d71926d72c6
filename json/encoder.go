// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

package json

import (
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/ssbc/serialize"
)

// DefaultIndent is the number of spaces per level used by pretty encoders.
const DefaultIndent = 2

// Encoder writes JSON text. It implements serialize.Encoder.
type Encoder struct {
	w io.Writer

	pretty     bool
	indent     int
	currIndent int

	emittingMapKey bool
}

var _ serialize.Encoder = (*Encoder)(nil)

// NewEncoder returns an encoder that writes compact JSON to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// NewPrettyEncoder returns an encoder that writes indented JSON to w.
func NewPrettyEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w, pretty: true, indent: DefaultIndent}
}

// SetIndent changes the number of spaces per level. It may be called while
// encoding, the current nesting level is kept.
func (e *Encoder) SetIndent(n int) error {
	if !e.pretty {
		return ErrNotPretty
	}
	level := 0
	if e.indent != 0 {
		level = e.currIndent / e.indent
	}
	e.indent = n
	e.currIndent = level * n
	return nil
}

func (e *Encoder) write(s string) error {
	_, err := io.WriteString(e.w, s)
	return errors.Wrap(err, "json: failed to write")
}

func (e *Encoder) spaces(n int) error {
	if n <= 0 {
		return nil
	}
	return e.write(strings.Repeat(" ", n))
}

// newline starts a new line at the current indentation in pretty mode.
func (e *Encoder) newline() error {
	if !e.pretty {
		return nil
	}
	if err := e.write("\n"); err != nil {
		return err
	}
	return e.spaces(e.currIndent)
}

func (e *Encoder) colon() error {
	if e.pretty {
		return e.write(": ")
	}
	return e.write(":")
}

// number writes s, quoted when it is used as a map key.
func (e *Encoder) number(s string) error {
	if e.emittingMapKey {
		return e.write(`"` + s + `"`)
	}
	return e.write(s)
}

func (e *Encoder) EmitNil() error {
	if e.emittingMapKey {
		return ErrBadMapKey
	}
	return e.write("null")
}

func (e *Encoder) EmitBool(v bool) error {
	if e.emittingMapKey {
		return ErrBadMapKey
	}
	if v {
		return e.write("true")
	}
	return e.write("false")
}

func (e *Encoder) EmitInt(v int64) error   { return e.number(strconv.FormatInt(v, 10)) }
func (e *Encoder) EmitUint(v uint64) error { return e.number(strconv.FormatUint(v, 10)) }

// EmitFloat always writes a fraction, NaN and infinities become null.
func (e *Encoder) EmitFloat(v float64) error {
	return e.number(formatFloat(v))
}

func formatFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "null"
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func (e *Encoder) EmitChar(v rune) error     { return e.write(quote(string(v))) }
func (e *Encoder) EmitString(v string) error { return e.write(quote(v)) }

func (e *Encoder) EmitEnum(name string, f serialize.EncodeFunc) error {
	return f(e)
}

// EmitEnumVariant writes Bunny as "Bunny" and Kangaroo(34, "William") as
// {"variant":"Kangaroo","fields":[34,"William"]}.
func (e *Encoder) EmitEnumVariant(name string, id, nargs int, f serialize.EncodeFunc) error {
	if nargs == 0 {
		return e.write(quote(name))
	}
	if e.emittingMapKey {
		return ErrBadMapKey
	}

	if e.pretty {
		if err := e.write("{\n"); err != nil {
			return err
		}
		e.currIndent += e.indent
		if err := e.spaces(e.currIndent); err != nil {
			return err
		}
		if err := e.write(`"variant": ` + quote(name) + ",\n"); err != nil {
			return err
		}
		if err := e.spaces(e.currIndent); err != nil {
			return err
		}
		if err := e.write("\"fields\": [\n"); err != nil {
			return err
		}
		e.currIndent += e.indent
	} else {
		if err := e.write(`{"variant":` + quote(name) + `,"fields":[`); err != nil {
			return err
		}
	}

	if err := f(e); err != nil {
		return err
	}

	if !e.pretty {
		return e.write("]}")
	}
	e.currIndent -= e.indent
	if err := e.newline(); err != nil {
		return err
	}
	e.currIndent -= e.indent
	if err := e.write("]"); err != nil {
		return err
	}
	if err := e.newline(); err != nil {
		return err
	}
	return e.write("}")
}

func (e *Encoder) EmitEnumVariantArg(idx int, f serialize.EncodeFunc) error {
	if e.emittingMapKey {
		return ErrBadMapKey
	}
	if idx != 0 {
		if err := e.write(","); err != nil {
			return err
		}
		if e.pretty {
			if err := e.write("\n"); err != nil {
				return err
			}
		}
	}
	if e.pretty {
		if err := e.spaces(e.currIndent); err != nil {
			return err
		}
	}
	return f(e)
}

// open writes a non-empty container: the opening bracket, the contents with
// one more level of indentation and the closing bracket on its own line.
func (e *Encoder) open(n int, start, end string, f serialize.EncodeFunc) error {
	if e.emittingMapKey {
		return ErrBadMapKey
	}
	if n == 0 {
		return e.write(start + end)
	}

	if err := e.write(start); err != nil {
		return err
	}
	e.currIndent += e.indent
	if err := f(e); err != nil {
		return err
	}
	e.currIndent -= e.indent
	if err := e.newline(); err != nil {
		return err
	}
	return e.write(end)
}

// element starts entry idx of a container.
func (e *Encoder) element(idx int) error {
	if e.emittingMapKey {
		return ErrBadMapKey
	}
	if idx != 0 {
		if err := e.write(","); err != nil {
			return err
		}
	}
	return e.newline()
}

func (e *Encoder) EmitStruct(name string, nfields int, f serialize.EncodeFunc) error {
	return e.open(nfields, "{", "}", f)
}

func (e *Encoder) EmitStructField(name string, idx int, f serialize.EncodeFunc) error {
	if err := e.element(idx); err != nil {
		return err
	}
	if err := e.write(quote(name)); err != nil {
		return err
	}
	if err := e.colon(); err != nil {
		return err
	}
	return f(e)
}

func (e *Encoder) EmitTuple(n int, f serialize.EncodeFunc) error {
	return e.EmitSeq(n, f)
}

func (e *Encoder) EmitTupleArg(idx int, f serialize.EncodeFunc) error {
	return e.EmitSeqElt(idx, f)
}

// Options are transparent: none is null, some is the value itself.
func (e *Encoder) EmitOption(f serialize.EncodeFunc) error {
	if e.emittingMapKey {
		return ErrBadMapKey
	}
	return f(e)
}

func (e *Encoder) EmitOptionNone() error {
	return e.EmitNil()
}

func (e *Encoder) EmitOptionSome(f serialize.EncodeFunc) error {
	if e.emittingMapKey {
		return ErrBadMapKey
	}
	return f(e)
}

func (e *Encoder) EmitSeq(n int, f serialize.EncodeFunc) error {
	return e.open(n, "[", "]", f)
}

func (e *Encoder) EmitSeqElt(idx int, f serialize.EncodeFunc) error {
	if err := e.element(idx); err != nil {
		return err
	}
	return f(e)
}

func (e *Encoder) EmitMap(n int, f serialize.EncodeFunc) error {
	return e.open(n, "{", "}", f)
}

// EmitMapEltKey only accepts strings, chars, numbers and variants without
// arguments as keys. Numbers are quoted.
func (e *Encoder) EmitMapEltKey(idx int, f serialize.EncodeFunc) error {
	if err := e.element(idx); err != nil {
		return err
	}
	e.emittingMapKey = true
	if err := f(e); err != nil {
		return err
	}
	e.emittingMapKey = false
	return nil
}

func (e *Encoder) EmitMapEltVal(idx int, f serialize.EncodeFunc) error {
	if e.emittingMapKey {
		return ErrBadMapKey
	}
	if err := e.colon(); err != nil {
		return err
	}
	return f(e)
}

const hexDigits = "0123456789abcdef"

// quote escapes the quote, the backslash, C0 and C1 control characters and
// DEL. Invalid UTF-8 is replaced by U+FFFD, other text is written as is.
func quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')

	start := 0
	for i := 0; i < len(s); {
		c, size := utf8.DecodeRuneInString(s[i:])
		var esc string
		switch {
		case c == '"':
			esc = `\"`
		case c == '\\':
			esc = `\\`
		case c == '\b':
			esc = `\b`
		case c == '\t':
			esc = `\t`
		case c == '\n':
			esc = `\n`
		case c == '\f':
			esc = `\f`
		case c == '\r':
			esc = `\r`
		case c < 0x20 || (c >= 0x7f && c <= 0x9f):
			esc = `\u00` + string(hexDigits[c>>4]) + string(hexDigits[c&0xf])
		case c == utf8.RuneError && size == 1:
			esc = string(utf8.RuneError)
		default:
			i += size
			continue
		}
		sb.WriteString(s[start:i])
		sb.WriteString(esc)
		i += size
		start = i
	}
	sb.WriteString(s[start:])

	sb.WriteByte('"')
	return sb.String()
}
