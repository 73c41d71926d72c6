// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

package codec

import (
	"io"

	"github.com/pkg/errors"

	"github.com/ssbc/serialize/compress"
	"github.com/ssbc/serialize/framing/lengthprefixed"
)

// Compressed runs the output of c through comp. Streams hold one
// length-prefixed frame per value.
func Compressed(c Codec, comp compress.Compressor) Codec {
	return &compressed{c: c, comp: comp}
}

// CompressedFunc is Compressed for codec constructors.
func CompressedFunc(f NewCodecFunc, comp compress.Compressor) NewCodecFunc {
	return func(tipe interface{}) Codec {
		return Compressed(f(tipe), comp)
	}
}

type compressed struct {
	c    Codec
	comp compress.Compressor
}

func (c *compressed) Marshal(v interface{}) ([]byte, error) {
	data, err := c.c.Marshal(v)
	if err != nil {
		return nil, err
	}
	out, err := c.comp.Compress(data)
	return out, errors.Wrapf(err, "codec: %s compression failed", c.comp.Name())
}

func (c *compressed) Unmarshal(data []byte) (interface{}, error) {
	plain, err := c.comp.Uncompress(data)
	if err != nil {
		return nil, errors.Wrapf(err, "codec: %s decompression failed", c.comp.Name())
	}
	return c.c.Unmarshal(plain)
}

func (c *compressed) NewEncoder(w io.Writer) Encoder {
	return &compressedEncoder{c: c, w: lengthprefixed.NewWriter(w)}
}

func (c *compressed) NewDecoder(r io.Reader) Decoder {
	return &compressedDecoder{c: c, r: lengthprefixed.NewReader(r)}
}

type compressedEncoder struct {
	c *compressed
	w io.Writer
}

func (enc *compressedEncoder) Encode(v interface{}) error {
	data, err := enc.c.Marshal(v)
	if err != nil {
		return err
	}
	_, err = enc.w.Write(data)
	return err
}

type compressedDecoder struct {
	c *compressed
	r *lengthprefixed.Reader
}

func (dec *compressedDecoder) Decode() (interface{}, error) {
	frame, err := dec.r.ReadFrame()
	if err != nil {
		return nil, err
	}
	return dec.c.Unmarshal(frame)
}
