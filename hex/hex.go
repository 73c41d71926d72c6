// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

// Package hex converts between bytes and hexadecimal text.
package hex

import (
	stdhex "encoding/hex"
	"fmt"

	"github.com/pkg/errors"
)

// Encode returns the lowercase hexadecimal encoding of src.
func Encode(src []byte) string {
	return stdhex.EncodeToString(src)
}

// ErrInvalidLength is returned for an odd number of hex digits.
var ErrInvalidLength = errors.New("hex: invalid length")

// InvalidCharacterError reports a character that is not a hex digit.
// Offset is in bytes.
type InvalidCharacterError struct {
	Char   rune
	Offset int
}

func (e InvalidCharacterError) Error() string {
	return fmt.Sprintf("hex: invalid character %q at position %d", e.Char, e.Offset)
}

// Decode accepts upper and lower case digits. Line breaks are ignored.
func Decode(s string) ([]byte, error) {
	out := make([]byte, 0, len(s)/2)

	var (
		buf     byte
		modulus int
	)
	for i, c := range s {
		var val byte
		switch {
		case c >= '0' && c <= '9':
			val = byte(c - '0')
		case c >= 'a' && c <= 'f':
			val = byte(c-'a') + 10
		case c >= 'A' && c <= 'F':
			val = byte(c-'A') + 10
		case c == '\r' || c == '\n':
			continue
		default:
			return nil, InvalidCharacterError{Char: c, Offset: i}
		}

		buf = buf<<4 | val
		modulus++
		if modulus == 2 {
			out = append(out, buf)
			buf, modulus = 0, 0
		}
	}

	if modulus != 0 {
		return nil, ErrInvalidLength
	}
	return out, nil
}
