// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

package json

import (
	"math"
	"strconv"

	"github.com/ssbc/serialize"
)

// ValueEncoder builds a Value instead of writing text. It follows the same
// rules as Encoder: options are transparent, NaN and infinities become null,
// enums become strings or variant objects and map keys must be strings or
// numbers.
type ValueEncoder struct {
	val    Value
	frames []*frame

	// nonFinite is set when the last float written was NaN or infinite.
	nonFinite bool
}

type frame struct {
	arr []Value
	obj map[string]Value
	key string
}

var _ serialize.Encoder = (*ValueEncoder)(nil)

func NewValueEncoder() *ValueEncoder {
	return &ValueEncoder{}
}

// Value returns the last value that was written.
func (e *ValueEncoder) Value() Value { return e.val }

func (e *ValueEncoder) top() *frame { return e.frames[len(e.frames)-1] }

func (e *ValueEncoder) push(fr *frame) { e.frames = append(e.frames, fr) }

func (e *ValueEncoder) pop() *frame {
	fr := e.top()
	e.frames = e.frames[:len(e.frames)-1]
	return fr
}

func (e *ValueEncoder) EmitNil() error {
	e.val = Null
	return nil
}

func (e *ValueEncoder) EmitBool(v bool) error {
	e.val = NewBool(v)
	return nil
}

func (e *ValueEncoder) EmitInt(v int64) error {
	if v < 0 {
		e.val = NewI64(v)
	} else {
		e.val = NewU64(uint64(v))
	}
	return nil
}

func (e *ValueEncoder) EmitUint(v uint64) error {
	e.val = NewU64(v)
	return nil
}

func (e *ValueEncoder) EmitFloat(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		e.val = Null
		e.nonFinite = true
	} else {
		e.val = NewF64(v)
	}
	return nil
}

func (e *ValueEncoder) EmitChar(v rune) error {
	e.val = NewString(string(v))
	return nil
}

func (e *ValueEncoder) EmitString(v string) error {
	e.val = NewString(v)
	return nil
}

func (e *ValueEncoder) EmitEnum(name string, f serialize.EncodeFunc) error {
	return f(e)
}

func (e *ValueEncoder) EmitEnumVariant(name string, id, nargs int, f serialize.EncodeFunc) error {
	if nargs == 0 {
		e.val = NewString(name)
		return nil
	}

	fr := &frame{arr: make([]Value, 0, nargs)}
	e.push(fr)
	err := f(e)
	e.pop()
	if err != nil {
		return err
	}

	e.val = NewObject(map[string]Value{
		"variant": NewString(name),
		"fields":  NewArray(fr.arr...),
	})
	return nil
}

func (e *ValueEncoder) EmitEnumVariantArg(idx int, f serialize.EncodeFunc) error {
	return e.element(f)
}

func (e *ValueEncoder) EmitStruct(name string, nfields int, f serialize.EncodeFunc) error {
	return e.object(nfields, f)
}

func (e *ValueEncoder) EmitStructField(name string, idx int, f serialize.EncodeFunc) error {
	if err := f(e); err != nil {
		return err
	}
	e.top().obj[name] = e.val
	return nil
}

func (e *ValueEncoder) EmitTuple(n int, f serialize.EncodeFunc) error { return e.array(n, f) }

func (e *ValueEncoder) EmitTupleArg(idx int, f serialize.EncodeFunc) error { return e.element(f) }

func (e *ValueEncoder) EmitOption(f serialize.EncodeFunc) error { return f(e) }

func (e *ValueEncoder) EmitOptionNone() error { return e.EmitNil() }

func (e *ValueEncoder) EmitOptionSome(f serialize.EncodeFunc) error { return f(e) }

func (e *ValueEncoder) EmitSeq(n int, f serialize.EncodeFunc) error { return e.array(n, f) }

func (e *ValueEncoder) EmitSeqElt(idx int, f serialize.EncodeFunc) error { return e.element(f) }

func (e *ValueEncoder) EmitMap(n int, f serialize.EncodeFunc) error { return e.object(n, f) }

func (e *ValueEncoder) EmitMapEltKey(idx int, f serialize.EncodeFunc) error {
	e.nonFinite = false
	if err := f(e); err != nil {
		return err
	}
	if e.nonFinite && e.val.kind == NullKind {
		// Encoder writes such keys as "null"
		e.top().key = "null"
		return nil
	}
	key, err := keyString(e.val)
	if err != nil {
		return err
	}
	e.top().key = key
	return nil
}

func (e *ValueEncoder) EmitMapEltVal(idx int, f serialize.EncodeFunc) error {
	if err := f(e); err != nil {
		return err
	}
	fr := e.top()
	fr.obj[fr.key] = e.val
	return nil
}

func (e *ValueEncoder) array(n int, f serialize.EncodeFunc) error {
	fr := &frame{arr: make([]Value, 0, n)}
	e.push(fr)
	err := f(e)
	e.pop()
	if err != nil {
		return err
	}
	e.val = NewArray(fr.arr...)
	return nil
}

func (e *ValueEncoder) element(f serialize.EncodeFunc) error {
	if err := f(e); err != nil {
		return err
	}
	fr := e.top()
	fr.arr = append(fr.arr, e.val)
	return nil
}

func (e *ValueEncoder) object(n int, f serialize.EncodeFunc) error {
	fr := &frame{obj: make(map[string]Value, n)}
	e.push(fr)
	err := f(e)
	e.pop()
	if err != nil {
		return err
	}
	e.val = NewObject(fr.obj)
	return nil
}

// keyString turns a map key into an object member name. Numbers are written
// the way Encoder quotes them.
func keyString(v Value) (string, error) {
	switch v.kind {
	case StringKind:
		return v.s, nil
	case I64Kind:
		return strconv.FormatInt(v.i, 10), nil
	case U64Kind:
		return strconv.FormatUint(v.u, 10), nil
	case F64Kind:
		return formatFloat(v.f), nil
	}
	return "", ErrBadMapKey
}

// ToValue converts v to a Value through the serialize data model.
func ToValue(v interface{}) (Value, error) {
	enc := NewValueEncoder()
	if err := serialize.Encode(enc, v); err != nil {
		return Null, err
	}
	return enc.Value(), nil
}
