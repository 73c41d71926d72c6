// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

// Package codec turns whole values into bytes and back. Every format adapter
// goes through the serialize data model, so Encodable types, struct tags and
// the derived codecs behave the same in every format.
package codec // import "github.com/ssbc/serialize/codec"

import (
	"io"
)

// NewCodecFunc returns a codec that decodes into values of the same type as
// tipe. See Sample.
type NewCodecFunc func(tipe interface{}) Codec

type Codec interface {
	// Marshal encodes a single value and returns the serialized byte slice.
	Marshal(value interface{}) ([]byte, error)

	// Unmarshal decodes and returns the value stored in data.
	Unmarshal(data []byte) (interface{}, error)

	NewDecoder(io.Reader) Decoder
	NewEncoder(io.Writer) Encoder
}

// Decoder reads a stream of values. It returns io.EOF after the last one.
type Decoder interface {
	Decode() (interface{}, error)
}

type Encoder interface {
	Encode(v interface{}) error
}
