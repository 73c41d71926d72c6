// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

package json

import (
	"encoding"
	"math"
	"reflect"
	"strconv"

	"github.com/pkg/errors"

	"github.com/ssbc/serialize"
)

// ToJSON is implemented by types with a custom Value representation.
type ToJSON interface {
	ToJSON() Value
}

// From converts a Go value to a Value.
//
// Values and ToJSON implementations are used directly. Signed integers become
// I64, unsigned ones U64, NaN and infinities null. Slices and arrays become
// arrays, maps become objects (keys must be strings or numbers), nil pointers
// and interfaces null. Byte slices are taken as text, the way the binary codecs
// hand out strings. serialize.Encodable and encoding.TextMarshaler
// implementations and anything else, like structs, go through ToValue.
func From(v interface{}) (Value, error) {
	switch tv := v.(type) {
	case nil:
		return Null, nil
	case Value:
		return tv, nil
	case ToJSON:
		return tv.ToJSON(), nil
	case []byte:
		return NewString(string(tv)), nil
	case serialize.Encodable, encoding.TextMarshaler:
		return ToValue(tv)
	}
	return fromReflect(reflect.ValueOf(v))
}

func fromReflect(rv reflect.Value) (Value, error) {
	switch rv.Kind() {
	case reflect.Bool:
		return NewBool(rv.Bool()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return NewI64(rv.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return NewU64(rv.Uint()), nil

	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Null, nil
		}
		return NewF64(f), nil

	case reflect.String:
		return NewString(rv.String()), nil

	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return Null, nil
		}
		return From(rv.Elem().Interface())

	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return NewArray(), nil
		}
		arr := make([]Value, rv.Len())
		for i := range arr {
			elem, err := From(rv.Index(i).Interface())
			if err != nil {
				return Null, errors.Wrapf(err, "json: element %d", i)
			}
			arr[i] = elem
		}
		return NewArray(arr...), nil

	case reflect.Map:
		obj := make(map[string]Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k, err := From(iter.Key().Interface())
			if err != nil {
				return Null, err
			}
			if isNonFinite(iter.Key()) {
				k = NewString("null")
			}
			key, err := keyString(k)
			if err != nil {
				return Null, errors.Wrapf(err, "json: key %v", iter.Key())
			}
			val, err := From(iter.Value().Interface())
			if err != nil {
				return Null, errors.Wrapf(err, "json: member %q", key)
			}
			obj[key] = val
		}
		return NewObject(obj), nil
	}

	return ToValue(rv.Interface())
}

// Interface returns v as a plain Go tree: nil, bool, int64, uint64, float64,
// string, []interface{} and map[string]interface{}.
func (v Value) Interface() interface{} {
	switch v.kind {
	case BoolKind:
		return v.b
	case I64Kind:
		return v.i
	case U64Kind:
		return v.u
	case F64Kind:
		return v.f
	case StringKind:
		return v.s
	case ArrayKind:
		arr := make([]interface{}, len(v.arr))
		for i, elem := range v.arr {
			arr[i] = elem.Interface()
		}
		return arr
	case ObjectKind:
		obj := make(map[string]interface{}, len(v.obj))
		for k, m := range v.obj {
			obj[k] = m.Interface()
		}
		return obj
	}
	return nil
}

// Number returns the text of a numeric value the way Encoder writes it.
func (v Value) Number() (string, bool) {
	switch v.kind {
	case I64Kind:
		return strconv.FormatInt(v.i, 10), true
	case U64Kind:
		return strconv.FormatUint(v.u, 10), true
	case F64Kind:
		return formatFloat(v.f), true
	}
	return "", false
}

func isNonFinite(rv reflect.Value) bool {
	for rv.Kind() == reflect.Interface && !rv.IsNil() {
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return math.IsNaN(f) || math.IsInf(f, 0)
	}
	return false
}
