// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

package all

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/ssbc/serialize/codec"
	"github.com/ssbc/serialize/codec/test"
	"github.com/ssbc/serialize/compress"
)

func TestCodecs(t *testing.T) {
	reg := Registry()
	for _, name := range reg.Names() {
		newCodec, err := reg.Get(name)
		require.NoError(t, err)
		t.Run(name, test.CodecSuite(newCodec))
	}
}

func TestCompressedCodecs(t *testing.T) {
	for _, cname := range []string{"json", "msgpack"} {
		for _, zname := range compress.Names() {
			comp, err := compress.ByName(zname)
			require.NoError(t, err)

			newCodec := codec.CompressedFunc(NewCodecFuncs[cname], comp)
			t.Run(cname+"/"+zname, test.CodecSuite(newCodec))
		}
	}
}

func TestRegistry(t *testing.T) {
	r := require.New(t)

	reg := Registry()
	r.Equal([]string{"cbor", "json", "json-pretty", "msgpack", "protobuf", "yaml"}, reg.Names())

	_, err := reg.Get("xml")
	r.Equal(codec.ErrUnknownCodec, errors.Cause(err))

	reg.Register("xml", NewCodecFuncs["json"])
	_, err = reg.Get("xml")
	r.NoError(err)
	r.Contains(reg.Names(), "xml")
}
