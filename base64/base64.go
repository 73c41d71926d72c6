// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

// Package base64 implements configurable base64 encoding with optional line
// wrapping and a lenient decoder that accepts both alphabets.
package base64

import (
	stdbase64 "encoding/base64"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// CharSet selects the last two characters of the alphabet.
type CharSet int

const (
	// Standard uses '+' and '/'.
	Standard CharSet = iota
	// URLSafe uses '-' and '_'.
	URLSafe
)

// Newline is the line separator used when wrapping.
type Newline int

const (
	LF Newline = iota
	CRLF
)

func (n Newline) String() string {
	if n == LF {
		return "\n"
	}
	return "\r\n"
}

// Config controls the output of Encode.
type Config struct {
	CharSet CharSet
	Newline Newline
	Pad     bool
	// LineLength wraps the output once a line holds at least this many
	// characters. Lines are only broken between groups of four. 0 disables
	// wrapping.
	LineLength int
}

var (
	// StandardConfig is RFC 4648 base64.
	StandardConfig = Config{CharSet: Standard, Newline: CRLF, Pad: true}

	// URLSafeConfig is RFC 4648 base64url without padding.
	URLSafeConfig = Config{CharSet: URLSafe, Newline: CRLF}

	// MIMEConfig is RFC 2045 MIME base64.
	MIMEConfig = Config{CharSet: Standard, Newline: CRLF, Pad: true, LineLength: 76}
)

func (c Config) encoding() *stdbase64.Encoding {
	enc := stdbase64.StdEncoding
	if c.CharSet == URLSafe {
		enc = stdbase64.URLEncoding
	}
	if !c.Pad {
		enc = enc.WithPadding(stdbase64.NoPadding)
	}
	return enc
}

// Encode returns src in base64 according to cfg.
func Encode(src []byte, cfg Config) string {
	out := cfg.encoding().EncodeToString(src)
	if cfg.LineLength <= 0 || len(out) == 0 {
		return out
	}

	width := (cfg.LineLength + 3) / 4 * 4
	if len(out) <= width {
		return out
	}

	var sb strings.Builder
	nl := cfg.Newline.String()
	sb.Grow(len(out) + len(out)/width*len(nl))
	for len(out) > width {
		sb.WriteString(out[:width])
		sb.WriteString(nl)
		out = out[width:]
	}
	sb.WriteString(out)
	return sb.String()
}

// ErrInvalidLength is returned when the input ends in the middle of a byte.
var ErrInvalidLength = errors.New("base64: invalid length")

// InvalidByteError reports a byte outside of both alphabets.
type InvalidByteError struct {
	Byte   byte
	Offset int
}

func (e InvalidByteError) Error() string {
	return fmt.Sprintf("base64: invalid character %q at position %d", e.Byte, e.Offset)
}

// Decode decodes standard or URL-safe base64, with or without padding.
// Line breaks are skipped anywhere. Decoding stops at the first '=',
// after which only padding and line breaks may follow.
func Decode(s string) ([]byte, error) {
	out := make([]byte, 0, len(s)*3/4)

	var (
		buf     uint32
		modulus int
		i       int
	)

scan:
	for ; i < len(s); i++ {
		c := s[i]
		var val uint32
		switch {
		case c >= 'A' && c <= 'Z':
			val = uint32(c - 'A')
		case c >= 'a' && c <= 'z':
			val = uint32(c-'a') + 26
		case c >= '0' && c <= '9':
			val = uint32(c-'0') + 52
		case c == '+' || c == '-':
			val = 62
		case c == '/' || c == '_':
			val = 63
		case c == '\r' || c == '\n':
			continue
		case c == '=':
			break scan
		default:
			return nil, InvalidByteError{Byte: c, Offset: i}
		}

		buf = buf<<6 | val
		modulus++
		if modulus == 4 {
			out = append(out, byte(buf>>16), byte(buf>>8), byte(buf))
			buf, modulus = 0, 0
		}
	}

	for ; i < len(s); i++ {
		switch c := s[i]; c {
		case '=', '\r', '\n':
		default:
			return nil, InvalidByteError{Byte: c, Offset: i}
		}
	}

	switch modulus {
	case 0:
	case 2:
		out = append(out, byte(buf>>4))
	case 3:
		out = append(out, byte(buf>>10), byte(buf>>2))
	default:
		return nil, ErrInvalidLength
	}
	return out, nil
}
