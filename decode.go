// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

package serialize

import (
	"encoding"
	"reflect"

	"github.com/pkg/errors"
)

// Decode reads a value from d into the value pointed to by v.
//
// It mirrors Encode: Decodable and encoding.TextUnmarshaler implementations
// are used when present, everything else is derived from the type. Empty
// interfaces can only be filled by decoders that implement AnyReader.
func Decode(d Decoder, v interface{}) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return ErrNotPointer
	}
	return decodeValue(d, rv.Elem())
}

func decodeValue(d Decoder, rv reflect.Value) error {
	t := rv.Type()

	if rv.Kind() != reflect.Ptr {
		pt := reflect.PtrTo(t)
		if pt.Implements(decodableType) {
			return rv.Addr().Interface().(Decodable).Decode(d)
		}
		if pt.Implements(textUnmarshalerType) {
			s, err := d.ReadString()
			if err != nil {
				return err
			}
			u := rv.Addr().Interface().(encoding.TextUnmarshaler)
			if err := u.UnmarshalText([]byte(s)); err != nil {
				return errors.Wrapf(err, "serialize: failed to unmarshal %s from text", t)
			}
			return nil
		}
	}

	switch rv.Kind() {
	case reflect.Bool:
		b, err := d.ReadBool()
		if err != nil {
			return err
		}
		rv.SetBool(b)
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := d.ReadInt(t.Bits())
		if err != nil {
			return err
		}
		rv.SetInt(i)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u, err := d.ReadUint(t.Bits())
		if err != nil {
			return err
		}
		rv.SetUint(u)
		return nil

	case reflect.Float32, reflect.Float64:
		f, err := d.ReadFloat(t.Bits())
		if err != nil {
			return err
		}
		rv.SetFloat(f)
		return nil

	case reflect.String:
		s, err := d.ReadString()
		if err != nil {
			return err
		}
		rv.SetString(s)
		return nil

	case reflect.Ptr:
		return d.ReadOption(func(d Decoder, present bool) error {
			if !present {
				rv.Set(reflect.Zero(t))
				return nil
			}
			if rv.IsNil() {
				rv.Set(reflect.New(t.Elem()))
			}
			return decodeValue(d, rv.Elem())
		})

	case reflect.Slice:
		return d.ReadSeq(func(d Decoder, n int) error {
			s := reflect.MakeSlice(t, n, n)
			for i := 0; i < n; i++ {
				elem := s.Index(i)
				err := d.ReadSeqElt(i, func(d Decoder) error {
					return decodeValue(d, elem)
				})
				if err != nil {
					return err
				}
			}
			rv.Set(s)
			return nil
		})

	case reflect.Array:
		return d.ReadTuple(t.Len(), func(d Decoder) error {
			for i := 0; i < t.Len(); i++ {
				elem := rv.Index(i)
				err := d.ReadTupleArg(i, func(d Decoder) error {
					return decodeValue(d, elem)
				})
				if err != nil {
					return err
				}
			}
			return nil
		})

	case reflect.Map:
		return d.ReadMap(func(d Decoder, n int) error {
			m := reflect.MakeMapWithSize(t, n)
			for i := 0; i < n; i++ {
				k := reflect.New(t.Key()).Elem()
				if err := d.ReadMapEltKey(i, func(d Decoder) error { return decodeValue(d, k) }); err != nil {
					return err
				}
				val := reflect.New(t.Elem()).Elem()
				if err := d.ReadMapEltVal(i, func(d Decoder) error { return decodeValue(d, val) }); err != nil {
					return err
				}
				m.SetMapIndex(k, val)
			}
			rv.Set(m)
			return nil
		})

	case reflect.Struct:
		si := cachedStructInfo(t)
		if si.err != nil {
			return si.err
		}
		return d.ReadStruct(si.name, len(si.fields), func(d Decoder) error {
			for i, f := range si.fields {
				fv := rv.FieldByIndex(f.index)
				err := d.ReadStructField(f.name, i, func(d Decoder) error {
					return decodeValue(d, fv)
				})
				if err != nil {
					return err
				}
			}
			return nil
		})

	case reflect.Interface:
		if t.NumMethod() != 0 {
			break
		}
		ar, ok := d.(AnyReader)
		if !ok {
			return errors.Wrapf(UnsupportedTypeError{Type: t}, "serialize: %T can't read untyped values", d)
		}
		x, err := ar.ReadAny()
		if err != nil {
			return err
		}
		if x == nil {
			rv.Set(reflect.Zero(t))
		} else {
			rv.Set(reflect.ValueOf(x))
		}
		return nil
	}

	return UnsupportedTypeError{Type: t}
}
