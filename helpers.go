// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

package serialize

import "sort"

// EmitSlice writes s as a sequence, using emit for each element.
func EmitSlice[T any](e Encoder, s []T, emit func(Encoder, T) error) error {
	return e.EmitSeq(len(s), func(e Encoder) error {
		for i, v := range s {
			v := v
			err := e.EmitSeqElt(i, func(e Encoder) error { return emit(e, v) })
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// ReadSlice reads a sequence, using read for each element.
func ReadSlice[T any](d Decoder, read func(Decoder) (T, error)) ([]T, error) {
	var out []T
	err := d.ReadSeq(func(d Decoder, n int) error {
		out = make([]T, n)
		for i := 0; i < n; i++ {
			i := i
			err := d.ReadSeqElt(i, func(d Decoder) error {
				v, err := read(d)
				out[i] = v
				return err
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return out, err
}

// EmitStringMap writes m as a map with keys in sorted order.
func EmitStringMap[V any](e Encoder, m map[string]V, emit func(Encoder, V) error) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return e.EmitMap(len(keys), func(e Encoder) error {
		for i, k := range keys {
			k := k
			if err := e.EmitMapEltKey(i, func(e Encoder) error { return e.EmitString(k) }); err != nil {
				return err
			}
			v := m[k]
			if err := e.EmitMapEltVal(i, func(e Encoder) error { return emit(e, v) }); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReadStringMap reads a map with string keys, using read for each value.
func ReadStringMap[V any](d Decoder, read func(Decoder) (V, error)) (map[string]V, error) {
	var out map[string]V
	err := d.ReadMap(func(d Decoder, n int) error {
		out = make(map[string]V, n)
		for i := 0; i < n; i++ {
			var (
				k string
				v V
			)
			err := d.ReadMapEltKey(i, func(d Decoder) (err error) {
				k, err = d.ReadString()
				return err
			})
			if err != nil {
				return err
			}
			err = d.ReadMapEltVal(i, func(d Decoder) (err error) {
				v, err = read(d)
				return err
			})
			if err != nil {
				return err
			}
			out[k] = v
		}
		return nil
	})
	return out, err
}

// EmitOptional writes v as an option, nil being none.
func EmitOptional[T any](e Encoder, v *T, emit func(Encoder, T) error) error {
	return e.EmitOption(func(e Encoder) error {
		if v == nil {
			return e.EmitOptionNone()
		}
		return e.EmitOptionSome(func(e Encoder) error { return emit(e, *v) })
	})
}

// ReadOptional reads an option, returning nil for none.
func ReadOptional[T any](d Decoder, read func(Decoder) (T, error)) (*T, error) {
	var out *T
	err := d.ReadOption(func(d Decoder, present bool) error {
		if !present {
			return nil
		}
		v, err := read(d)
		if err != nil {
			return err
		}
		out = &v
		return nil
	})
	return out, err
}
