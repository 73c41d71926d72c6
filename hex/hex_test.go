// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

package hex

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	r := require.New(t)
	r.Equal("666f6f626172", Encode([]byte("foobar")))
	r.Equal("", Encode(nil))
	r.Equal("00ff10", Encode([]byte{0, 255, 16}))
}

func TestDecode(t *testing.T) {
	r := require.New(t)

	for in, want := range map[string]string{
		"666f6f626172":     "foobar",
		"666F6F626172":     "foobar",
		"666f6f\r\n626172": "foobar",
		"666f6f\n626172":   "foobar",
		"":                 "",
	} {
		out, err := Decode(in)
		r.NoError(err, in)
		r.Equal(want, string(out))
	}
}

func TestDecodeErrors(t *testing.T) {
	r := require.New(t)

	_, err := Decode("666f6f6261721")
	r.Equal(ErrInvalidLength, err)

	_, err = Decode("66 6f")
	r.Equal(InvalidCharacterError{Char: ' ', Offset: 2}, err)

	_, err = Decode("66ü6f")
	r.Equal(InvalidCharacterError{Char: 'ü', Offset: 2}, err)
}

func TestRandomRoundTrip(t *testing.T) {
	r := require.New(t)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		buf := make([]byte, rng.Intn(100)+1)
		rng.Read(buf)

		out, err := Decode(Encode(buf))
		r.NoError(err)
		r.Equal(buf, out)
	}
}
