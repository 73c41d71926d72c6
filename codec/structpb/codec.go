// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

// Package structpb is a protobuf codec. Values are stored as
// google.protobuf.Value messages, streams are length-delimited messages.
//
// google.protobuf.Value only knows doubles, so integral numbers come back as
// integers when they fit into 53 bits and as floats otherwise.
package structpb // import "github.com/ssbc/serialize/codec/structpb"

import (
	"bufio"
	"io"
	"math"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protodelim"
	"google.golang.org/protobuf/proto"
	pb "google.golang.org/protobuf/types/known/structpb"

	cdc "github.com/ssbc/serialize/codec"
)

// Format reads and writes generic trees as google.protobuf.Value.
type Format struct{}

// New returns a protobuf codec for values like tipe.
func New(tipe interface{}) cdc.Codec {
	return cdc.NewTreeCodec(Format{}, tipe)
}

// ToMessage converts a generic tree to a google.protobuf.Value.
func ToMessage(tree interface{}) (*pb.Value, error) {
	msg, err := pb.NewValue(tree)
	return msg, errors.Wrap(err, "structpb: unsupported value")
}

// FromMessage converts a google.protobuf.Value back to a generic tree.
func FromMessage(msg *pb.Value) interface{} {
	return integral(msg.AsInterface())
}

const maxExact = 1 << 53

// integral turns whole doubles back into integers.
func integral(tree interface{}) interface{} {
	switch t := tree.(type) {
	case float64:
		if t != math.Trunc(t) || math.Abs(t) > maxExact {
			return t
		}
		if t < 0 {
			return int64(t)
		}
		return uint64(t)
	case []interface{}:
		for i, elem := range t {
			t[i] = integral(elem)
		}
		return t
	case map[string]interface{}:
		for k, v := range t {
			t[k] = integral(v)
		}
		return t
	}
	return tree
}

func (Format) MarshalTree(tree interface{}) ([]byte, error) {
	msg, err := ToMessage(tree)
	if err != nil {
		return nil, err
	}
	out, err := proto.Marshal(msg)
	return out, errors.Wrap(err, "structpb: marshal failed")
}

func (Format) UnmarshalTree(data []byte) (interface{}, error) {
	var msg pb.Value
	if err := proto.Unmarshal(data, &msg); err != nil {
		return nil, errors.Wrap(err, "structpb: unmarshal failed")
	}
	return FromMessage(&msg), nil
}

func (Format) NewTreeEncoder(w io.Writer) cdc.Encoder {
	return &encoder{w: w}
}

func (Format) NewTreeDecoder(r io.Reader) cdc.Decoder {
	return &decoder{r: bufio.NewReader(r)}
}

type encoder struct {
	w io.Writer
}

func (e *encoder) Encode(tree interface{}) error {
	msg, err := ToMessage(tree)
	if err != nil {
		return err
	}
	_, err = protodelim.MarshalTo(e.w, msg)
	return errors.Wrap(err, "structpb: write failed")
}

type decoder struct {
	r *bufio.Reader
}

func (d *decoder) Decode() (interface{}, error) {
	var msg pb.Value
	if err := protodelim.UnmarshalFrom(d.r, &msg); err != nil {
		if err == io.EOF {
			return nil, err
		}
		return nil, errors.Wrap(err, "structpb: read failed")
	}
	return FromMessage(&msg), nil
}
