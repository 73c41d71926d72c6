// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

// Package test holds the suite every codec has to pass.
package test

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ssbc/serialize/codec"
)

// Post is the fixture the suite encodes.
type Post struct {
	ID     uuid.UUID         `serialize:"id"`
	Author string            `serialize:"author"`
	Seq    uint64            `serialize:"seq"`
	Delta  int32             `serialize:"delta"`
	Ratio  float64           `serialize:"ratio"`
	Tags   []string          `serialize:"tags"`
	Meta   map[string]string `serialize:"meta"`
	Reply  *Post             `serialize:"reply"`
	Place  Coord             `serialize:"place"`
	Draft  string            `serialize:"-"`
}

// Coord is written as "x,y" text. Its methods need a pointer, so a Post
// passed by value only reaches them through a copy.
type Coord struct {
	X, Y int
}

func (c *Coord) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("%d,%d", c.X, c.Y)), nil
}

func (c *Coord) UnmarshalText(text []byte) error {
	_, err := fmt.Sscanf(string(text), "%d,%d", &c.X, &c.Y)
	return err
}

// Posts returns a few posts that survive every format unchanged.
func Posts() []Post {
	return []Post{
		{
			ID:     uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
			Author: "@alice",
			Seq:    7,
			Delta:  -3,
			Ratio:  0.5,
			Tags:   []string{"first", "%hash.sha256"},
			Meta:   map[string]string{"lang": "en", "1": "numeric key"},
			Place:  Coord{X: 3, Y: -4},
			Reply: &Post{
				Author: "@bob",
				Tags:   []string{},
				Meta:   map[string]string{},
			},
		},
		{
			Author: "",
			Seq:    1 << 40,
			Delta:  2147483647,
			Ratio:  -1e10,
			Tags:   []string{"true", "null", "3"},
			Meta:   map[string]string{},
		},
		{
			Author: "ünïcødé\n\"quoted\"",
			Ratio:  0.125,
			Tags:   []string{},
			Meta:   map[string]string{"": ""},
		},
	}
}

// CodecSuite checks single values and streams of newCodec.
func CodecSuite(newCodec codec.NewCodecFunc) func(*testing.T) {
	return func(t *testing.T) {
		t.Run("value", roundTripValue(newCodec))
		t.Run("pointer", roundTripPointer(newCodec))
		t.Run("any", roundTripAny(newCodec))
		t.Run("stream", roundTripStream(newCodec))
		t.Run("skipped", skippedField(newCodec))
		t.Run("controls", controlChars(newCodec))
	}
}

// TextStreamSuite checks that the decoders of newCodec read documents
// spread over several lines, as written by newPretty's Marshal.
func TextStreamSuite(newCodec, newPretty codec.NewCodecFunc) func(*testing.T) {
	return func(t *testing.T) {
		r := require.New(t)
		pretty := newPretty(Post{})

		var sb strings.Builder
		posts := Posts()
		for i, p := range posts {
			data, err := pretty.Marshal(p)
			r.NoError(err, "post %d", i)
			r.Contains(string(data), "\n", "post %d is not multi-line", i)
			sb.Write(data)
			sb.WriteString("\n")
		}

		for _, c := range []codec.Codec{pretty, newCodec(Post{})} {
			dec := c.NewDecoder(strings.NewReader(sb.String()))
			for i, p := range posts {
				v, err := dec.Decode()
				r.NoError(err, "post %d", i)
				r.Equal(p, v, "post %d", i)
			}

			_, err := dec.Decode()
			r.Equal(io.EOF, err)
		}
	}
}

func roundTripValue(newCodec codec.NewCodecFunc) func(*testing.T) {
	return func(t *testing.T) {
		r := require.New(t)
		c := newCodec(Post{})

		for i, p := range Posts() {
			data, err := c.Marshal(p)
			r.NoError(err, "post %d", i)

			v, err := c.Unmarshal(data)
			r.NoError(err, "post %d", i)
			r.IsType(Post{}, v)
			r.Equal(p, v, "post %d", i)
		}
	}
}

func roundTripPointer(newCodec codec.NewCodecFunc) func(*testing.T) {
	return func(t *testing.T) {
		r := require.New(t)
		c := newCodec(&Post{})

		for i, p := range Posts() {
			p := p
			data, err := c.Marshal(&p)
			r.NoError(err, "post %d", i)

			v, err := c.Unmarshal(data)
			r.NoError(err, "post %d", i)
			r.IsType(&Post{}, v)
			r.Equal(&p, v, "post %d", i)
		}
	}
}

func roundTripAny(newCodec codec.NewCodecFunc) func(*testing.T) {
	return func(t *testing.T) {
		r := require.New(t)
		c := newCodec(nil)

		data, err := c.Marshal(Posts()[0])
		r.NoError(err)

		v, err := c.Unmarshal(data)
		r.NoError(err)

		tree, ok := v.(map[string]interface{})
		r.True(ok, "got %T", v)
		r.Equal("@alice", tree["author"])
		r.Equal([]interface{}{"first", "%hash.sha256"}, tree["tags"])
		r.Equal(map[string]interface{}{"lang": "en", "1": "numeric key"}, tree["meta"])
		r.NotContains(tree, "Draft")

		reply, ok := tree["reply"].(map[string]interface{})
		r.True(ok, "got %T", tree["reply"])
		r.Nil(reply["reply"])
	}
}

func roundTripStream(newCodec codec.NewCodecFunc) func(*testing.T) {
	return func(t *testing.T) {
		r := require.New(t)
		c := newCodec(Post{})

		var buf bytes.Buffer
		enc := c.NewEncoder(&buf)
		posts := Posts()
		for i, p := range posts {
			r.NoError(enc.Encode(p), "post %d", i)
		}

		dec := c.NewDecoder(&buf)
		for i, p := range posts {
			v, err := dec.Decode()
			r.NoError(err, "post %d", i)
			r.Equal(p, v, "post %d", i)
		}

		_, err := dec.Decode()
		r.Equal(io.EOF, err)
	}
}

// controlChars round trips every C0 control, DEL and the C1 controls.
func controlChars(newCodec codec.NewCodecFunc) func(*testing.T) {
	return func(t *testing.T) {
		r := require.New(t)
		c := newCodec(Post{})

		var sb strings.Builder
		for ch := rune(0); ch <= 0xa0; ch++ {
			sb.WriteRune(ch)
		}

		p := Posts()[2]
		p.Author = sb.String()
		p.Tags = []string{"next\u0085line", "\x7f"}

		data, err := c.Marshal(p)
		r.NoError(err)

		v, err := c.Unmarshal(data)
		r.NoError(err)
		r.Equal(p, v)

		var buf bytes.Buffer
		r.NoError(c.NewEncoder(&buf).Encode(p))
		v, err = c.NewDecoder(&buf).Decode()
		r.NoError(err)
		r.Equal(p, v)
	}
}

func skippedField(newCodec codec.NewCodecFunc) func(*testing.T) {
	return func(t *testing.T) {
		r := require.New(t)
		c := newCodec(Post{})

		p := Posts()[1]
		p.Draft = "unpublished"

		data, err := c.Marshal(p)
		r.NoError(err)
		r.NotContains(string(data), "unpublished")

		v, err := c.Unmarshal(data)
		r.NoError(err)
		r.Equal("", v.(Post).Draft)
	}
}
