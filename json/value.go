// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

// Package json implements the serialize data model as JSON text.
//
// Documents can be handled three ways: as a stream of events from a Parser,
// as a generic Value tree built by a Builder, or decoded straight into Go
// values through the serialize package:
//
//	type Point struct {
//		X, Y int
//	}
//
//	s, err := json.Encode(Point{1, 2}) // {"X":1,"Y":2}
//
//	var p Point
//	err = json.Decode(s, &p)
//
// Enums are written as their bare variant name if they carry no arguments and
// as {"variant":"Name","fields":[...]} otherwise.
package json // import "github.com/ssbc/serialize/json"

import (
	"math"
	"sort"
	"strings"

	"github.com/ssbc/serialize"
)

// Kind is the type of a Value.
type Kind uint8

const (
	NullKind Kind = iota
	BoolKind
	I64Kind
	U64Kind
	F64Kind
	StringKind
	ArrayKind
	ObjectKind
)

var kindNames = [...]string{
	NullKind:   "Null",
	BoolKind:   "Boolean",
	I64Kind:    "I64",
	U64Kind:    "U64",
	F64Kind:    "F64",
	StringKind: "String",
	ArrayKind:  "Array",
	ObjectKind: "Object",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Invalid"
}

// Value is a JSON document. The zero Value is null.
//
// Non-negative integers are held as U64, negative ones as I64 and numbers with
// a fraction or exponent as F64.
type Value struct {
	kind Kind
	b    bool
	i    int64
	u    uint64
	f    float64
	s    string
	arr  []Value
	obj  map[string]Value
}

// Null is the JSON null value.
var Null = Value{}

func NewBool(b bool) Value       { return Value{kind: BoolKind, b: b} }
func NewI64(i int64) Value       { return Value{kind: I64Kind, i: i} }
func NewU64(u uint64) Value      { return Value{kind: U64Kind, u: u} }
func NewF64(f float64) Value     { return Value{kind: F64Kind, f: f} }
func NewString(s string) Value   { return Value{kind: StringKind, s: s} }
func NewArray(vs ...Value) Value { return Value{kind: ArrayKind, arr: vs} }

// NewObject wraps m. A nil map is an empty object.
func NewObject(m map[string]Value) Value {
	if m == nil {
		m = make(map[string]Value)
	}
	return Value{kind: ObjectKind, obj: m}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool   { return v.kind == NullKind }
func (v Value) IsBool() bool   { return v.kind == BoolKind }
func (v Value) IsI64() bool    { return v.kind == I64Kind }
func (v Value) IsU64() bool    { return v.kind == U64Kind }
func (v Value) IsF64() bool    { return v.kind == F64Kind }
func (v Value) IsString() bool { return v.kind == StringKind }
func (v Value) IsArray() bool  { return v.kind == ArrayKind }
func (v Value) IsObject() bool { return v.kind == ObjectKind }

// IsNumber reports whether v is I64, U64 or F64.
func (v Value) IsNumber() bool {
	switch v.kind {
	case I64Kind, U64Kind, F64Kind:
		return true
	}
	return false
}

func (v Value) AsBool() (bool, bool) { return v.b, v.kind == BoolKind }

func (v Value) AsString() (string, bool) { return v.s, v.kind == StringKind }

// AsArray returns the elements of an array. They are shared with v.
func (v Value) AsArray() ([]Value, bool) { return v.arr, v.kind == ArrayKind }

// AsObject returns the members of an object. The map is shared with v.
func (v Value) AsObject() (map[string]Value, bool) { return v.obj, v.kind == ObjectKind }

// AsI64 returns integral numbers that fit into an int64.
func (v Value) AsI64() (int64, bool) {
	switch v.kind {
	case I64Kind:
		return v.i, true
	case U64Kind:
		if v.u >= math.MaxInt64 {
			return 0, false
		}
		return int64(v.u), true
	}
	return 0, false
}

// AsU64 returns non-negative integral numbers.
func (v Value) AsU64() (uint64, bool) {
	switch v.kind {
	case I64Kind:
		if v.i < 0 {
			return 0, false
		}
		return uint64(v.i), true
	case U64Kind:
		return v.u, true
	}
	return 0, false
}

// AsF64 returns any number converted to a float64.
func (v Value) AsF64() (float64, bool) {
	switch v.kind {
	case I64Kind:
		return float64(v.i), true
	case U64Kind:
		return float64(v.u), true
	case F64Kind:
		return v.f, true
	}
	return 0, false
}

// Find returns the member key of an object.
func (v Value) Find(key string) (Value, bool) {
	if v.kind != ObjectKind {
		return Null, false
	}
	m, ok := v.obj[key]
	return m, ok
}

// FindPath follows keys through nested objects.
func (v Value) FindPath(keys ...string) (Value, bool) {
	target := v
	for _, k := range keys {
		var ok bool
		if target, ok = target.Find(k); !ok {
			return Null, false
		}
	}
	return target, true
}

// Search looks for key depth-first, visiting members in key order.
func (v Value) Search(key string) (Value, bool) {
	if v.kind != ObjectKind {
		return Null, false
	}
	if m, ok := v.obj[key]; ok {
		return m, true
	}
	for _, k := range v.keys() {
		if found, ok := v.obj[k].Search(key); ok {
			return found, true
		}
	}
	return Null, false
}

// Index returns element i of an array.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != ArrayKind || i < 0 || i >= len(v.arr) {
		return Null, false
	}
	return v.arr[i], true
}

// Len is the number of elements or members of arrays and objects.
func (v Value) Len() int {
	switch v.kind {
	case ArrayKind:
		return len(v.arr)
	case ObjectKind:
		return len(v.obj)
	}
	return 0
}

func (v Value) keys() []string {
	keys := make([]string, 0, len(v.obj))
	for k := range v.obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Equal reports whether both values are the same document.
// Empty and nil arrays are equal. NaN is not equal to itself.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case NullKind:
		return true
	case BoolKind:
		return v.b == o.b
	case I64Kind:
		return v.i == o.i
	case U64Kind:
		return v.u == o.u
	case F64Kind:
		return v.f == o.f
	case StringKind:
		return v.s == o.s
	case ArrayKind:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case ObjectKind:
		if len(v.obj) != len(o.obj) {
			return false
		}
		for k, m := range v.obj {
			om, ok := o.obj[k]
			if !ok || !m.Equal(om) {
				return false
			}
		}
		return true
	}
	return false
}

// String returns v as compact JSON.
func (v Value) String() string {
	var sb strings.Builder
	// writes to a strings.Builder don't fail and object keys are strings
	_ = v.Encode(NewEncoder(&sb))
	return sb.String()
}

// Pretty returns v as indented JSON.
func (v Value) Pretty() string {
	var sb strings.Builder
	_ = v.Encode(NewPrettyEncoder(&sb))
	return sb.String()
}

// Encode writes v to any serialize.Encoder. Object members are written in
// key order.
func (v Value) Encode(e serialize.Encoder) error {
	switch v.kind {
	case BoolKind:
		return e.EmitBool(v.b)
	case I64Kind:
		return e.EmitInt(v.i)
	case U64Kind:
		return e.EmitUint(v.u)
	case F64Kind:
		return e.EmitFloat(v.f)
	case StringKind:
		return e.EmitString(v.s)
	case ArrayKind:
		return serialize.EmitSlice(e, v.arr, func(e serialize.Encoder, elem Value) error {
			return elem.Encode(e)
		})
	case ObjectKind:
		return serialize.EmitStringMap(e, v.obj, func(e serialize.Encoder, m Value) error {
			return m.Encode(e)
		})
	}
	return e.EmitNil()
}

// Decode reads any value. JSON decoders hand out their current value,
// other decoders have to implement serialize.AnyReader.
func (v *Value) Decode(d serialize.Decoder) error {
	if jd, ok := d.(*Decoder); ok {
		val, err := jd.ReadValue()
		if err != nil {
			return err
		}
		*v = val
		return nil
	}

	ar, ok := d.(serialize.AnyReader)
	if !ok {
		return d.Error("decoder can't produce untyped values")
	}
	x, err := ar.ReadAny()
	if err != nil {
		return err
	}
	val, err := From(x)
	if err != nil {
		return err
	}
	*v = val
	return nil
}
