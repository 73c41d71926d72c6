// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

// Package yaml is the YAML codec, backed by gopkg.in/yaml.v3.
// Streams are multi-document files.
package yaml // import "github.com/ssbc/serialize/codec/yaml"

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	cdc "github.com/ssbc/serialize/codec"
)

// Format reads and writes generic trees as YAML.
type Format struct{}

// New returns a yaml codec for values like tipe.
func New(tipe interface{}) cdc.Codec {
	return cdc.NewTreeCodec(Format{}, tipe)
}

func (Format) MarshalTree(tree interface{}) ([]byte, error) {
	out, err := yaml.Marshal(tree)
	return out, errors.Wrap(err, "yaml: encode failed")
}

func (Format) UnmarshalTree(data []byte) (interface{}, error) {
	var tree interface{}
	err := yaml.Unmarshal(data, &tree)
	return tree, errors.Wrap(err, "yaml: decode failed")
}

func (Format) NewTreeEncoder(w io.Writer) cdc.Encoder {
	return &encoder{w: w}
}

func (Format) NewTreeDecoder(r io.Reader) cdc.Decoder {
	return &decoder{dec: yaml.NewDecoder(r)}
}

// encoder starts every document with a separator, so it never has to be
// closed to flush the last one.
type encoder struct {
	w io.Writer
}

func (e *encoder) Encode(tree interface{}) error {
	doc, err := yaml.Marshal(tree)
	if err != nil {
		return errors.Wrap(err, "yaml: encode failed")
	}
	if _, err := io.WriteString(e.w, "---\n"); err != nil {
		return errors.Wrap(err, "yaml: write failed")
	}
	_, err = e.w.Write(doc)
	return errors.Wrap(err, "yaml: write failed")
}

type decoder struct {
	dec *yaml.Decoder
}

func (d *decoder) Decode() (interface{}, error) {
	var tree interface{}
	if err := d.dec.Decode(&tree); err != nil {
		if err == io.EOF {
			return nil, err
		}
		return nil, errors.Wrap(err, "yaml: decode failed")
	}
	return tree, nil
}
