// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

package serialize

// Encodable is implemented by types that write themselves to an Encoder.
// It takes precedence over the derived encoding.
type Encodable interface {
	Encode(Encoder) error
}

// Decodable is implemented by (pointers to) types that read themselves from a
// Decoder. It takes precedence over the derived decoding.
type Decodable interface {
	Decode(Decoder) error
}

// AnyReader is implemented by decoders that can produce a self-describing
// value without knowing the destination type. Decode uses it to fill empty
// interfaces.
type AnyReader interface {
	ReadAny() (interface{}, error)
}
