// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

package basic // import "github.com/ssbc/serialize/framing/basic"

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/ssbc/serialize/framing"
)

// Framing is a framing with a fixed frame size.
type Framing interface {
	framing.Framing

	FrameSize() int64
}

var _ Framing = &frame32{}

// New32 returns a framing for blocks of size framesize.
// The data is surrounded by its length in 32bit big endian format.
func New32(framesize int) Framing {
	return &frame32{framesize}
}

type frame32 struct {
	framesize int
}

func (f *frame32) DecodeFrame(block []byte) ([]byte, error) {
	if len(block) != f.framesize {
		return nil, errors.Wrapf(framing.ErrFrameSize, "got %d bytes, want %d", len(block), f.framesize)
	}

	sizeStart := int(binary.BigEndian.Uint32(block[:4]))
	if sizeStart+8 > f.framesize {
		return nil, errors.Wrap(framing.ErrCorrupt, "length exceeds frame")
	}

	sizeEnd := int(binary.BigEndian.Uint32(block[sizeStart+4 : sizeStart+8]))
	if sizeStart != sizeEnd {
		return nil, errors.Wrap(framing.ErrCorrupt, "lengths don't match")
	}
	return block[4 : sizeStart+4], nil
}

func (f *frame32) EncodeFrame(data []byte) ([]byte, error) {
	if len(data)+8 > f.framesize {
		return nil, errors.Wrapf(framing.ErrTooLong, "%d bytes in a frame of %d", len(data), f.framesize)
	}

	frame := make([]byte, f.framesize)
	binary.BigEndian.PutUint32(frame[:4], uint32(len(data)))
	copy(frame[4:], data)
	binary.BigEndian.PutUint32(frame[len(data)+4:len(data)+8], uint32(len(data)))

	return frame, nil
}

func (f *frame32) FrameSize() int64 {
	return int64(f.framesize)
}
