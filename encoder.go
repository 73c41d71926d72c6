// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

// Package serialize is a format independent encoding framework.
//
// Values are written to an Encoder and read from a Decoder. Both describe an
// abstract data model of primitives, options, sequences, tuples, maps, structs
// and enums; concrete formats (see the json package and the adapters under
// codec/) implement them for a specific byte or text layout.
//
// Types take part either by implementing Encodable/Decodable by hand or by
// letting Encode and Decode derive the translation from the type's structure
// via reflection. Derived field plans are computed once per type and cached.
package serialize // import "github.com/ssbc/serialize"

// EncodeFunc writes the contents of a composite value to an Encoder.
type EncodeFunc func(Encoder) error

// Encoder is the write side of the intermediate representation.
//
// The Emit* methods taking an EncodeFunc open a composite value, call f to
// write its contents and close it again. Indices passed to the *Elt, *Arg and
// *Field methods start at zero.
type Encoder interface {
	EmitNil() error
	EmitBool(v bool) error
	EmitInt(v int64) error
	EmitUint(v uint64) error
	EmitFloat(v float64) error
	EmitChar(v rune) error
	EmitString(v string) error

	EmitEnum(name string, f EncodeFunc) error
	// EmitEnumVariant writes variant name with nargs arguments.
	// Variants without arguments are written as their bare name.
	EmitEnumVariant(name string, id, nargs int, f EncodeFunc) error
	EmitEnumVariantArg(idx int, f EncodeFunc) error

	EmitStruct(name string, nfields int, f EncodeFunc) error
	EmitStructField(name string, idx int, f EncodeFunc) error

	EmitTuple(n int, f EncodeFunc) error
	EmitTupleArg(idx int, f EncodeFunc) error

	EmitOption(f EncodeFunc) error
	EmitOptionNone() error
	EmitOptionSome(f EncodeFunc) error

	EmitSeq(n int, f EncodeFunc) error
	EmitSeqElt(idx int, f EncodeFunc) error

	EmitMap(n int, f EncodeFunc) error
	EmitMapEltKey(idx int, f EncodeFunc) error
	EmitMapEltVal(idx int, f EncodeFunc) error
}
