// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

package serialize_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ssbc/serialize"
	"github.com/ssbc/serialize/json"
)

// feed is a hand-written codec built from the helpers.
type feed struct {
	ID      string
	Entries []int64
	Heads   map[string]uint64
	Parent  *string
}

func (f feed) Encode(e serialize.Encoder) error {
	return e.EmitStruct("feed", 4, func(e serialize.Encoder) error {
		err := e.EmitStructField("id", 0, func(e serialize.Encoder) error { return e.EmitString(f.ID) })
		if err != nil {
			return err
		}
		err = e.EmitStructField("entries", 1, func(e serialize.Encoder) error {
			return serialize.EmitSlice(e, f.Entries, func(e serialize.Encoder, v int64) error { return e.EmitInt(v) })
		})
		if err != nil {
			return err
		}
		err = e.EmitStructField("heads", 2, func(e serialize.Encoder) error {
			return serialize.EmitStringMap(e, f.Heads, func(e serialize.Encoder, v uint64) error { return e.EmitUint(v) })
		})
		if err != nil {
			return err
		}
		return e.EmitStructField("parent", 3, func(e serialize.Encoder) error {
			return serialize.EmitOptional(e, f.Parent, func(e serialize.Encoder, v string) error { return e.EmitString(v) })
		})
	})
}

func (f *feed) Decode(d serialize.Decoder) error {
	return d.ReadStruct("feed", 4, func(d serialize.Decoder) error {
		err := d.ReadStructField("id", 0, func(d serialize.Decoder) (err error) {
			f.ID, err = d.ReadString()
			return err
		})
		if err != nil {
			return err
		}
		err = d.ReadStructField("entries", 1, func(d serialize.Decoder) (err error) {
			f.Entries, err = serialize.ReadSlice(d, func(d serialize.Decoder) (int64, error) { return d.ReadInt(64) })
			return err
		})
		if err != nil {
			return err
		}
		err = d.ReadStructField("heads", 2, func(d serialize.Decoder) (err error) {
			f.Heads, err = serialize.ReadStringMap(d, func(d serialize.Decoder) (uint64, error) { return d.ReadUint(64) })
			return err
		})
		if err != nil {
			return err
		}
		return d.ReadStructField("parent", 3, func(d serialize.Decoder) (err error) {
			f.Parent, err = serialize.ReadOptional(d, func(d serialize.Decoder) (string, error) { return d.ReadString() })
			return err
		})
	})
}

func TestHelpers(t *testing.T) {
	r := require.New(t)

	parent := "%root"
	f := feed{
		ID:      "@feed",
		Entries: []int64{-1, 0, 1},
		Heads:   map[string]uint64{"z": 26, "a": 1},
		Parent:  &parent,
	}

	out, err := json.Encode(f)
	r.NoError(err)
	r.Equal(`{"id":"@feed","entries":[-1,0,1],"heads":{"a":1,"z":26},"parent":"%root"}`, out)

	var back feed
	r.NoError(json.Decode(out, &back))
	r.Equal(f, back)

	f.Parent = nil
	f.Entries = nil
	out, err = json.Encode(f)
	r.NoError(err)
	r.True(strings.HasSuffix(out, `"parent":null}`), out)

	back = feed{}
	r.NoError(json.Decode(out, &back))
	r.Nil(back.Parent)
	r.Equal([]int64{}, back.Entries)
}

func TestHelpersErrors(t *testing.T) {
	r := require.New(t)

	var back feed
	err := json.Decode(`{"id":"x","entries":[1,"two"],"heads":{},"parent":null}`, &back)
	r.Equal(json.ExpectedError{Expected: "Number", Found: "two"}, err)

	err = json.Decode(`{"id":"x","entries":[],"heads":{"a":-1},"parent":null}`, &back)
	r.Equal(json.ExpectedError{Expected: "Number", Found: "-1"}, err)
}
