// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

package serialize

// DecodeFunc reads the contents of a composite value from a Decoder.
type DecodeFunc func(Decoder) error

// Decoder is the read side of the intermediate representation.
//
// ReadInt, ReadUint and ReadFloat take the bit size of the destination, like
// strconv.ParseInt does. A bit size of 0 stands for int/uint. Values that don't
// fit are rejected by the decoder instead of being truncated.
type Decoder interface {
	ReadNil() error
	ReadBool() (bool, error)
	ReadInt(bits int) (int64, error)
	ReadUint(bits int) (uint64, error)
	ReadFloat(bits int) (float64, error)
	ReadChar() (rune, error)
	ReadString() (string, error)

	ReadEnum(name string, f DecodeFunc) error
	// ReadEnumVariant reads a variant name and calls f with its position in names.
	ReadEnumVariant(names []string, f func(d Decoder, idx int) error) error
	ReadEnumVariantArg(idx int, f DecodeFunc) error

	ReadStruct(name string, nfields int, f DecodeFunc) error
	ReadStructField(name string, idx int, f DecodeFunc) error

	// ReadTuple fails if the encoded tuple does not have exactly n elements.
	ReadTuple(n int, f DecodeFunc) error
	ReadTupleArg(idx int, f DecodeFunc) error

	ReadOption(f func(d Decoder, present bool) error) error

	ReadSeq(f func(d Decoder, n int) error) error
	ReadSeqElt(idx int, f DecodeFunc) error

	ReadMap(f func(d Decoder, n int) error) error
	ReadMapEltKey(idx int, f DecodeFunc) error
	ReadMapEltVal(idx int, f DecodeFunc) error

	// Error returns an application level error in the decoder's error type.
	Error(msg string) error
}
