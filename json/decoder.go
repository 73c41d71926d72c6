// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

package json

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"unicode/utf8"

	"github.com/ssbc/serialize"
)

// Decoder reads the serialize data model from a Value. It implements
// serialize.Decoder and serialize.AnyReader.
//
// Integers are range checked for the requested width. Strings holding numbers
// are accepted wherever a number is expected, since numeric map keys are
// written as strings.
type Decoder struct {
	stack []Value
}

var (
	_ serialize.Decoder   = (*Decoder)(nil)
	_ serialize.AnyReader = (*Decoder)(nil)
)

func NewDecoder(v Value) *Decoder {
	return &Decoder{stack: []Value{v}}
}

func (d *Decoder) push(v Value) { d.stack = append(d.stack, v) }

func (d *Decoder) pop() (Value, error) {
	if len(d.stack) == 0 {
		return Null, ErrEOF
	}
	v := d.stack[len(d.stack)-1]
	d.stack = d.stack[:len(d.stack)-1]
	return v, nil
}

func (d *Decoder) expect(k Kind) (Value, error) {
	v, err := d.pop()
	if err != nil {
		return Null, err
	}
	if v.kind != k {
		return Null, ExpectedError{Expected: k.String(), Found: v.String()}
	}
	return v, nil
}

// ReadValue returns the next value as is.
func (d *Decoder) ReadValue() (Value, error) {
	return d.pop()
}

// ReadAny returns the next value as a plain Go tree, see Value.Interface.
func (d *Decoder) ReadAny() (interface{}, error) {
	v, err := d.pop()
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

func (d *Decoder) ReadNil() error {
	_, err := d.expect(NullKind)
	return err
}

func (d *Decoder) ReadBool() (bool, error) {
	v, err := d.expect(BoolKind)
	return v.b, err
}

func bitSize(bits int) int {
	if bits == 0 {
		return strconv.IntSize
	}
	return bits
}

func (d *Decoder) ReadInt(bits int) (int64, error) {
	bits = bitSize(bits)
	v, err := d.pop()
	if err != nil {
		return 0, err
	}

	max := int64(1)<<(bits-1) - 1
	min := -max - 1

	switch v.kind {
	case I64Kind:
		if v.i < min || v.i > max {
			return 0, ExpectedError{Expected: "Number", Found: strconv.FormatInt(v.i, 10)}
		}
		return v.i, nil
	case U64Kind:
		if v.u > uint64(max) {
			return 0, ExpectedError{Expected: "Number", Found: strconv.FormatUint(v.u, 10)}
		}
		return int64(v.u), nil
	case F64Kind:
		return 0, ExpectedError{Expected: "Integer", Found: strconv.FormatFloat(v.f, 'f', -1, 64)}
	case StringKind:
		i, err := strconv.ParseInt(v.s, 10, bits)
		if err != nil {
			return 0, ExpectedError{Expected: "Number", Found: v.s}
		}
		return i, nil
	}
	return 0, ExpectedError{Expected: "Number", Found: v.String()}
}

func (d *Decoder) ReadUint(bits int) (uint64, error) {
	bits = bitSize(bits)
	v, err := d.pop()
	if err != nil {
		return 0, err
	}

	max := uint64(math.MaxUint64) >> (64 - bits)

	switch v.kind {
	case I64Kind:
		if v.i < 0 || uint64(v.i) > max {
			return 0, ExpectedError{Expected: "Number", Found: strconv.FormatInt(v.i, 10)}
		}
		return uint64(v.i), nil
	case U64Kind:
		if v.u > max {
			return 0, ExpectedError{Expected: "Number", Found: strconv.FormatUint(v.u, 10)}
		}
		return v.u, nil
	case F64Kind:
		return 0, ExpectedError{Expected: "Integer", Found: strconv.FormatFloat(v.f, 'f', -1, 64)}
	case StringKind:
		u, err := strconv.ParseUint(v.s, 10, bits)
		if err != nil {
			return 0, ExpectedError{Expected: "Number", Found: v.s}
		}
		return u, nil
	}
	return 0, ExpectedError{Expected: "Number", Found: v.String()}
}

// ReadFloat reads any number. null reads as NaN, the way NaN is written.
func (d *Decoder) ReadFloat(bits int) (float64, error) {
	v, err := d.pop()
	if err != nil {
		return 0, err
	}

	switch v.kind {
	case I64Kind:
		return float64(v.i), nil
	case U64Kind:
		return float64(v.u), nil
	case F64Kind:
		return v.f, nil
	case StringKind:
		f, err := strconv.ParseFloat(v.s, 64)
		if err != nil {
			return 0, ExpectedError{Expected: "Number", Found: v.s}
		}
		return f, nil
	case NullKind:
		return math.NaN(), nil
	}
	return 0, ExpectedError{Expected: "Number", Found: v.String()}
}

func (d *Decoder) ReadChar() (rune, error) {
	s, err := d.ReadString()
	if err != nil {
		return 0, err
	}
	if r, n := utf8.DecodeRuneInString(s); n > 0 && n == len(s) {
		return r, nil
	}
	return 0, ExpectedError{Expected: "single character string", Found: s}
}

func (d *Decoder) ReadString() (string, error) {
	v, err := d.expect(StringKind)
	return v.s, err
}

func (d *Decoder) ReadEnum(name string, f serialize.DecodeFunc) error {
	return f(d)
}

// ReadEnumVariant accepts "Name" and {"variant":"Name","fields":[...]}.
func (d *Decoder) ReadEnumVariant(names []string, f func(d serialize.Decoder, idx int) error) error {
	v, err := d.pop()
	if err != nil {
		return err
	}

	var name string
	switch v.kind {
	case StringKind:
		name = v.s

	case ObjectKind:
		variant, ok := v.obj["variant"]
		if !ok {
			return MissingFieldError{Field: "variant"}
		}
		if variant.kind != StringKind {
			return ExpectedError{Expected: "String", Found: variant.String()}
		}
		name = variant.s

		fields, ok := v.obj["fields"]
		if !ok {
			return MissingFieldError{Field: "fields"}
		}
		if fields.kind != ArrayKind {
			return ExpectedError{Expected: "Array", Found: fields.String()}
		}
		for i := len(fields.arr) - 1; i >= 0; i-- {
			d.push(fields.arr[i])
		}

	default:
		return ExpectedError{Expected: "String or Object", Found: v.String()}
	}

	for idx, n := range names {
		if n == name {
			return f(d, idx)
		}
	}
	return UnknownVariantError{Variant: name}
}

func (d *Decoder) ReadEnumVariantArg(idx int, f serialize.DecodeFunc) error {
	return f(d)
}

func (d *Decoder) ReadStruct(name string, nfields int, f serialize.DecodeFunc) error {
	if err := f(d); err != nil {
		return err
	}
	_, err := d.pop()
	return err
}

// ReadStructField reads member name of the current object. A missing member
// is read as null, so optional fields end up empty; if that fails the field
// is reported missing.
func (d *Decoder) ReadStructField(name string, idx int, f serialize.DecodeFunc) error {
	obj, err := d.expect(ObjectKind)
	if err != nil {
		return err
	}

	if member, ok := obj.obj[name]; ok {
		d.push(member)
		if err := f(d); err != nil {
			return err
		}
	} else {
		d.push(Null)
		if err := f(d); err != nil {
			return MissingFieldError{Field: name}
		}
	}

	d.push(obj)
	return nil
}

func (d *Decoder) ReadTuple(n int, f serialize.DecodeFunc) error {
	return d.ReadSeq(func(sd serialize.Decoder, l int) error {
		if l != n {
			return ExpectedError{
				Expected: fmt.Sprintf("Tuple%d", n),
				Found:    fmt.Sprintf("Tuple%d", l),
			}
		}
		return f(sd)
	})
}

func (d *Decoder) ReadTupleArg(idx int, f serialize.DecodeFunc) error {
	return d.ReadSeqElt(idx, f)
}

func (d *Decoder) ReadOption(f func(d serialize.Decoder, present bool) error) error {
	v, err := d.pop()
	if err != nil {
		return err
	}
	if v.kind == NullKind {
		return f(d, false)
	}
	d.push(v)
	return f(d, true)
}

func (d *Decoder) ReadSeq(f func(d serialize.Decoder, n int) error) error {
	v, err := d.expect(ArrayKind)
	if err != nil {
		return err
	}
	for i := len(v.arr) - 1; i >= 0; i-- {
		d.push(v.arr[i])
	}
	return f(d, len(v.arr))
}

func (d *Decoder) ReadSeqElt(idx int, f serialize.DecodeFunc) error {
	return f(d)
}

// ReadMap hands out the members of an object in key order, keys as strings.
func (d *Decoder) ReadMap(f func(d serialize.Decoder, n int) error) error {
	v, err := d.expect(ObjectKind)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(v.obj))
	for k := range v.obj {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	for _, k := range keys {
		d.push(v.obj[k])
		d.push(NewString(k))
	}
	return f(d, len(keys))
}

func (d *Decoder) ReadMapEltKey(idx int, f serialize.DecodeFunc) error {
	return f(d)
}

func (d *Decoder) ReadMapEltVal(idx int, f serialize.DecodeFunc) error {
	return f(d)
}

func (d *Decoder) Error(msg string) error {
	return ApplicationError{Msg: msg}
}
