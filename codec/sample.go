// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

package codec

import (
	"reflect"

	"github.com/ssbc/serialize"
	"github.com/ssbc/serialize/json"
)

// Sample describes what a codec decodes into, taken from an example value.
// A pointer sample yields pointers, any other sample yields plain values and
// a nil sample yields generic trees (see json.Value.Interface).
type Sample struct {
	tipe  reflect.Type
	asPtr bool
}

func SampleOf(tipe interface{}) Sample {
	if tipe == nil {
		return Sample{}
	}

	t := reflect.TypeOf(tipe)
	isPtr := t.Kind() == reflect.Ptr
	if isPtr {
		t = t.Elem()
	}
	return Sample{tipe: t, asPtr: isPtr}
}

// IsAny reports whether the sample decodes generic values.
func (s Sample) IsAny() bool { return s.tipe == nil }

// Type is the decoded type without the pointer, nil for generic values.
func (s Sample) Type() reflect.Type { return s.tipe }

// Decode reads one value from d.
func (s Sample) Decode(d serialize.Decoder) (interface{}, error) {
	if s.IsAny() {
		var v json.Value
		if err := v.Decode(d); err != nil {
			return nil, err
		}
		return v.Interface(), nil
	}

	ptr := reflect.New(s.tipe)
	if err := serialize.Decode(d, ptr.Interface()); err != nil {
		return nil, err
	}
	if s.asPtr {
		return ptr.Interface(), nil
	}
	return ptr.Elem().Interface(), nil
}

// FromValue decodes a parsed JSON document.
func (s Sample) FromValue(v json.Value) (interface{}, error) {
	return s.Decode(json.NewDecoder(v))
}

// FromTree decodes a generic tree as produced by format libraries: maps with
// string keys, slices, numbers, strings, booleans and nil.
func (s Sample) FromTree(tree interface{}) (interface{}, error) {
	v, err := json.From(tree)
	if err != nil {
		return nil, err
	}
	return s.FromValue(v)
}

// ToTree converts v to a generic tree that format libraries can write.
func ToTree(v interface{}) (interface{}, error) {
	val, err := json.ToValue(v)
	if err != nil {
		return nil, err
	}
	return val.Interface(), nil
}
