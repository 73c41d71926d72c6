// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

package serialize

import (
	"encoding"
	"fmt"
	"reflect"
	"sort"

	"github.com/pkg/errors"
)

// Encode writes v to e.
//
// If v (or a pointer to it) implements Encodable, its Encode method is used.
// encoding.TextMarshaler implementations are written as strings. Everything
// else is derived from the type:
//
//   - booleans, integers, floats and strings map to the primitives
//   - pointers are options, nil being none
//   - slices are sequences, arrays are tuples
//   - maps are maps, with keys written in sorted order
//   - structs are structs over their exported fields (see TagName)
//   - interfaces write their dynamic value, nil interfaces write nil
//
// A non-nil pointer passed as v is encoded as the value it points to, or
// through its own methods.
func Encode(e Encoder, v interface{}) error {
	if v == nil {
		return e.EmitNil()
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr && !rv.IsNil() {
		switch m := v.(type) {
		case Encodable:
			return m.Encode(e)
		case encoding.TextMarshaler:
			return encodeText(e, m)
		}
		rv = rv.Elem()
	}
	return encodeValue(e, rv, 0)
}

// MaxDepth bounds the nesting of values written by Encode. Deeper values,
// like cyclic pointer graphs, fail with ErrMaxDepth.
const MaxDepth = 1000

// addressable returns rv, or a copy of it that can be addressed.
func addressable(rv reflect.Value) reflect.Value {
	if rv.CanAddr() {
		return rv
	}
	cp := reflect.New(rv.Type()).Elem()
	cp.Set(rv)
	return cp
}

func encodeValue(e Encoder, rv reflect.Value, depth int) error {
	if !rv.IsValid() {
		return e.EmitNil()
	}
	if depth > MaxDepth {
		return errors.Wrapf(ErrMaxDepth, "serialize: encoding %s", rv.Type())
	}
	depth++

	t := rv.Type()
	if rv.Kind() != reflect.Ptr && rv.Kind() != reflect.Interface {
		if t.Implements(encodableType) {
			return rv.Interface().(Encodable).Encode(e)
		}
		if reflect.PtrTo(t).Implements(encodableType) {
			return addressable(rv).Addr().Interface().(Encodable).Encode(e)
		}
		if t.Implements(textMarshalerType) {
			return encodeText(e, rv.Interface().(encoding.TextMarshaler))
		}
		if reflect.PtrTo(t).Implements(textMarshalerType) {
			return encodeText(e, addressable(rv).Addr().Interface().(encoding.TextMarshaler))
		}
	}

	switch rv.Kind() {
	case reflect.Bool:
		return e.EmitBool(rv.Bool())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return e.EmitInt(rv.Int())

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return e.EmitUint(rv.Uint())

	case reflect.Float32, reflect.Float64:
		return e.EmitFloat(rv.Float())

	case reflect.String:
		return e.EmitString(rv.String())

	case reflect.Interface:
		if rv.IsNil() {
			return e.EmitNil()
		}
		return encodeValue(e, rv.Elem(), depth)

	case reflect.Ptr:
		return e.EmitOption(func(e Encoder) error {
			if rv.IsNil() {
				return e.EmitOptionNone()
			}
			return e.EmitOptionSome(func(e Encoder) error {
				if t.Implements(encodableType) {
					return rv.Interface().(Encodable).Encode(e)
				}
				if t.Implements(textMarshalerType) {
					return encodeText(e, rv.Interface().(encoding.TextMarshaler))
				}
				return encodeValue(e, rv.Elem(), depth)
			})
		})

	case reflect.Slice:
		n := rv.Len()
		return e.EmitSeq(n, func(e Encoder) error {
			for i := 0; i < n; i++ {
				elem := rv.Index(i)
				err := e.EmitSeqElt(i, func(e Encoder) error {
					return encodeValue(e, elem, depth)
				})
				if err != nil {
					return err
				}
			}
			return nil
		})

	case reflect.Array:
		n := rv.Len()
		return e.EmitTuple(n, func(e Encoder) error {
			for i := 0; i < n; i++ {
				elem := rv.Index(i)
				err := e.EmitTupleArg(i, func(e Encoder) error {
					return encodeValue(e, elem, depth)
				})
				if err != nil {
					return err
				}
			}
			return nil
		})

	case reflect.Map:
		keys := rv.MapKeys()
		sortKeys(keys)
		return e.EmitMap(len(keys), func(e Encoder) error {
			for i, k := range keys {
				k := k
				if err := e.EmitMapEltKey(i, func(e Encoder) error { return encodeValue(e, k, depth) }); err != nil {
					return err
				}
				val := rv.MapIndex(k)
				if err := e.EmitMapEltVal(i, func(e Encoder) error { return encodeValue(e, val, depth) }); err != nil {
					return err
				}
			}
			return nil
		})

	case reflect.Struct:
		si := cachedStructInfo(t)
		if si.err != nil {
			return si.err
		}
		return e.EmitStruct(si.name, len(si.fields), func(e Encoder) error {
			for i, f := range si.fields {
				fv := rv.FieldByIndex(f.index)
				err := e.EmitStructField(f.name, i, func(e Encoder) error {
					return encodeValue(e, fv, depth)
				})
				if err != nil {
					return err
				}
			}
			return nil
		})
	}

	return UnsupportedTypeError{Type: t}
}

func encodeText(e Encoder, m encoding.TextMarshaler) error {
	txt, err := m.MarshalText()
	if err != nil {
		return errors.Wrapf(err, "serialize: failed to marshal %T as text", m)
	}
	return e.EmitString(string(txt))
}

// sortKeys orders map keys so that maps encode deterministically.
func sortKeys(keys []reflect.Value) {
	if len(keys) < 2 {
		return
	}
	var less func(a, b reflect.Value) bool
	switch keys[0].Kind() {
	case reflect.String:
		less = func(a, b reflect.Value) bool { return a.String() < b.String() }
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		less = func(a, b reflect.Value) bool { return a.Int() < b.Int() }
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		less = func(a, b reflect.Value) bool { return a.Uint() < b.Uint() }
	case reflect.Float32, reflect.Float64:
		less = func(a, b reflect.Value) bool { return a.Float() < b.Float() }
	case reflect.Bool:
		less = func(a, b reflect.Value) bool { return !a.Bool() && b.Bool() }
	default:
		less = func(a, b reflect.Value) bool {
			return fmt.Sprint(a.Interface()) < fmt.Sprint(b.Interface())
		}
	}
	sort.Slice(keys, func(i, j int) bool { return less(keys[i], keys[j]) })
}
