// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

// Package msgpack is the MessagePack codec, backed by github.com/ugorji/go/codec.
package msgpack // import "github.com/ssbc/serialize/codec/msgpack"

import (
	"io"
	"reflect"

	ugorji "github.com/ugorji/go/codec"

	"github.com/pkg/errors"

	cdc "github.com/ssbc/serialize/codec"
)

var mapType = reflect.TypeOf(map[string]interface{}(nil))

func newHandle() *ugorji.MsgpackHandle {
	var h ugorji.MsgpackHandle
	h.WriteExt = true
	h.RawToString = true
	h.MapType = mapType
	return &h
}

// Format reads and writes generic trees as MessagePack.
type Format struct {
	h *ugorji.MsgpackHandle
}

func NewFormat() Format {
	return Format{h: newHandle()}
}

// New returns a msgpack codec for values like tipe.
func New(tipe interface{}) cdc.Codec {
	return cdc.NewTreeCodec(NewFormat(), tipe)
}

func (f Format) MarshalTree(tree interface{}) ([]byte, error) {
	var out []byte
	err := ugorji.NewEncoderBytes(&out, f.h).Encode(tree)
	return out, errors.Wrap(err, "msgpack: encode failed")
}

func (f Format) UnmarshalTree(data []byte) (interface{}, error) {
	var tree interface{}
	err := ugorji.NewDecoderBytes(data, f.h).Decode(&tree)
	return tree, errors.Wrap(err, "msgpack: decode failed")
}

func (f Format) NewTreeEncoder(w io.Writer) cdc.Encoder {
	return &encoder{enc: ugorji.NewEncoder(w, f.h)}
}

func (f Format) NewTreeDecoder(r io.Reader) cdc.Decoder {
	return &decoder{dec: ugorji.NewDecoder(r, f.h)}
}

type encoder struct {
	enc *ugorji.Encoder
}

func (e *encoder) Encode(tree interface{}) error {
	return errors.Wrap(e.enc.Encode(tree), "msgpack: encode failed")
}

type decoder struct {
	dec *ugorji.Decoder
}

func (d *decoder) Decode() (interface{}, error) {
	var tree interface{}
	if err := d.dec.Decode(&tree); err != nil {
		if err == io.EOF {
			return nil, err
		}
		return nil, errors.Wrap(err, "msgpack: decode failed")
	}
	return tree, nil
}
