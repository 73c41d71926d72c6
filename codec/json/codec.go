// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

// Package json is the JSON codec. Streams are written one compact document
// per line and read as whitespace separated documents of any layout.
package json // import "github.com/ssbc/serialize/codec/json"

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/ssbc/serialize"
	cdc "github.com/ssbc/serialize/codec"
	"github.com/ssbc/serialize/json"
)

// New creates a json codec that decodes into values of type tipe.
func New(tipe interface{}) cdc.Codec {
	return &codec{sample: cdc.SampleOf(tipe)}
}

// NewPretty is like New but marshals indented documents.
// Its streams are still written compact, one document per line.
func NewPretty(tipe interface{}) cdc.Codec {
	return &codec{sample: cdc.SampleOf(tipe), pretty: true}
}

type codec struct {
	sample cdc.Sample
	pretty bool
}

func (c *codec) Marshal(v interface{}) ([]byte, error) {
	var (
		sb  strings.Builder
		enc = json.NewEncoder(&sb)
	)
	if c.pretty {
		enc = json.NewPrettyEncoder(&sb)
	}
	if err := serialize.Encode(enc, v); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

func (c *codec) Unmarshal(data []byte) (interface{}, error) {
	v, err := json.Parse(string(data))
	if err != nil {
		return nil, json.ParseError{Err: err}
	}
	return c.sample.FromValue(v)
}

func (*codec) NewEncoder(w io.Writer) cdc.Encoder {
	return &encoder{w: w}
}

func (c *codec) NewDecoder(r io.Reader) cdc.Decoder {
	return &decoder{
		sample: c.sample,
		r:      r,
	}
}

type encoder struct {
	w io.Writer
}

func (enc *encoder) Encode(v interface{}) error {
	var sb strings.Builder
	if err := serialize.Encode(json.NewEncoder(&sb), v); err != nil {
		return err
	}
	sb.WriteByte('\n')

	_, err := io.WriteString(enc.w, sb.String())
	return errors.Wrap(err, "json codec: write failed")
}

type decoder struct {
	sample cdc.Sample
	r      io.Reader

	// created on the first Decode, the parser reads ahead one rune
	b *json.Builder
}

func (dec *decoder) Decode() (interface{}, error) {
	if dec.b == nil {
		dec.b = json.NewBuilder(json.NewStreamParser(bufio.NewReader(dec.r)))
	}

	v, err := dec.b.BuildNext()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, json.ParseError{Err: err}
	}
	return dec.sample.FromValue(v)
}
