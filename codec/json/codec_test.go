// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

package json

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ssbc/serialize/codec/test"
	"github.com/ssbc/serialize/json"
)

type entry struct {
	Key   string `serialize:"key"`
	Value int    `serialize:"value"`
}

func TestMarshal(t *testing.T) {
	r := require.New(t)

	data, err := New(entry{}).Marshal(entry{Key: "a", Value: 1})
	r.NoError(err)
	r.Equal(`{"key":"a","value":1}`, string(data))

	data, err = NewPretty(entry{}).Marshal(entry{Key: "a", Value: 1})
	r.NoError(err)
	r.Equal("{\n  \"key\": \"a\",\n  \"value\": 1\n}", string(data))

	v, err := New(entry{}).Unmarshal(data)
	r.NoError(err)
	r.Equal(entry{Key: "a", Value: 1}, v)
}

func TestUnmarshalErrors(t *testing.T) {
	r := require.New(t)

	c := New(entry{})

	_, err := c.Unmarshal([]byte(`{"key":`))
	var pe json.ParseError
	r.ErrorAs(err, &pe)

	_, err = c.Unmarshal([]byte(`{"key":"a"}`))
	r.Equal(json.MissingFieldError{Field: "value"}, err)
}

func TestStreamFormat(t *testing.T) {
	r := require.New(t)

	c := NewPretty(entry{})

	var buf bytes.Buffer
	enc := c.NewEncoder(&buf)
	r.NoError(enc.Encode(entry{Key: "a", Value: 1}))
	r.NoError(enc.Encode(entry{Key: "b\nc", Value: 2}))
	r.Equal("{\"key\":\"a\",\"value\":1}\n{\"key\":\"b\\nc\",\"value\":2}\n", buf.String())

	// blank lines and a missing final newline are fine
	in := "\n" + `{"key":"x","value":3}` + "\n\n" + `{"key":"y","value":4}`
	dec := c.NewDecoder(strings.NewReader(in))

	v, err := dec.Decode()
	r.NoError(err)
	r.Equal(entry{Key: "x", Value: 3}, v)

	v, err = dec.Decode()
	r.NoError(err)
	r.Equal(entry{Key: "y", Value: 4}, v)

	_, err = dec.Decode()
	r.Equal(io.EOF, err)

	dec = c.NewDecoder(strings.NewReader("{\"key\":\n"))
	_, err = dec.Decode()
	var pe json.ParseError
	r.ErrorAs(err, &pe)
}

func TestPrettyStream(t *testing.T) {
	t.Run("posts", test.TextStreamSuite(New, NewPretty))

	r := require.New(t)
	data, err := json.EncodePretty(map[string]int{"a": 1})
	r.NoError(err)

	dec := New(nil).NewDecoder(strings.NewReader(data + data + "\n[1,\n 2] 3"))
	for i := 0; i < 2; i++ {
		v, err := dec.Decode()
		r.NoError(err, "document %d", i)
		r.Equal(map[string]interface{}{"a": uint64(1)}, v)
	}

	v, err := dec.Decode()
	r.NoError(err)
	r.Equal([]interface{}{uint64(1), uint64(2)}, v)

	v, err = dec.Decode()
	r.NoError(err)
	r.Equal(uint64(3), v)

	_, err = dec.Decode()
	r.Equal(io.EOF, err)
}
