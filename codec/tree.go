// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

package codec

import (
	"io"
)

// TreeFormat is a format library that reads and writes generic trees:
// map[string]interface{}, []interface{}, numbers, strings, booleans and nil.
// Its encoders and decoders work on trees, not on typed values.
type TreeFormat interface {
	MarshalTree(tree interface{}) ([]byte, error)
	UnmarshalTree(data []byte) (interface{}, error)

	NewTreeEncoder(io.Writer) Encoder
	NewTreeDecoder(io.Reader) Decoder
}

// NewTreeCodec builds a codec for tipe on top of a tree format.
func NewTreeCodec(f TreeFormat, tipe interface{}) Codec {
	return &treeCodec{f: f, sample: SampleOf(tipe)}
}

type treeCodec struct {
	f      TreeFormat
	sample Sample
}

func (c *treeCodec) Marshal(v interface{}) ([]byte, error) {
	tree, err := ToTree(v)
	if err != nil {
		return nil, err
	}
	return c.f.MarshalTree(tree)
}

func (c *treeCodec) Unmarshal(data []byte) (interface{}, error) {
	tree, err := c.f.UnmarshalTree(data)
	if err != nil {
		return nil, err
	}
	return c.sample.FromTree(tree)
}

func (c *treeCodec) NewEncoder(w io.Writer) Encoder {
	return &treeEncoder{enc: c.f.NewTreeEncoder(w)}
}

func (c *treeCodec) NewDecoder(r io.Reader) Decoder {
	return &treeDecoder{dec: c.f.NewTreeDecoder(r), sample: c.sample}
}

type treeEncoder struct {
	enc Encoder
}

func (e *treeEncoder) Encode(v interface{}) error {
	tree, err := ToTree(v)
	if err != nil {
		return err
	}
	return e.enc.Encode(tree)
}

type treeDecoder struct {
	dec    Decoder
	sample Sample
}

func (d *treeDecoder) Decode() (interface{}, error) {
	tree, err := d.dec.Decode()
	if err != nil {
		return nil, err
	}
	return d.sample.FromTree(tree)
}
