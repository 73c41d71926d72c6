// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

// Package all registers every codec of this module.
package all // import "github.com/ssbc/serialize/codec/all"

import (
	"github.com/ssbc/serialize/codec"
	"github.com/ssbc/serialize/codec/cbor"
	"github.com/ssbc/serialize/codec/json"
	"github.com/ssbc/serialize/codec/msgpack"
	"github.com/ssbc/serialize/codec/structpb"
	"github.com/ssbc/serialize/codec/yaml"
)

// NewCodecFuncs maps format names to codec constructors.
var NewCodecFuncs = map[string]codec.NewCodecFunc{
	"json":        json.New,
	"json-pretty": json.NewPretty,
	"msgpack":     msgpack.New,
	"cbor":        cbor.New,
	"yaml":        yaml.New,
	"protobuf":    structpb.New,
}

// Registry returns a registry holding all codecs.
func Registry() *codec.Registry {
	reg := codec.NewRegistry()
	for name, f := range NewCodecFuncs {
		reg.Register(name, f)
	}
	return reg
}
