// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

// Package framing turns encoded values into self-delimiting frames.
package framing // import "github.com/ssbc/serialize/framing"

import "github.com/pkg/errors"

// Framing wraps and unwraps a single encoded value.
type Framing interface {
	EncodeFrame([]byte) ([]byte, error)
	DecodeFrame([]byte) ([]byte, error)
}

var (
	ErrTooLong   = errors.New("framing: data too long for frame")
	ErrFrameSize = errors.New("framing: wrong frame size")
	ErrCorrupt   = errors.New("framing: corrupt frame")
	ErrChecksum  = errors.New("framing: checksum mismatch")
)
