// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

// Package lengthprefixed frames values of any size as
//
//	length (uint32, big endian) | payload | xxhash64(payload) (uint64, big endian)
//
// so streams of frames can be read back without a fixed block size and
// damaged payloads are detected.
package lengthprefixed // import "github.com/ssbc/serialize/framing/lengthprefixed"

import (
	"encoding/binary"
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"

	"github.com/ssbc/serialize/framing"
)

const (
	headerSize  = 4
	trailerSize = 8

	// MaxPayload bounds the length a Reader accepts before allocating.
	MaxPayload = 64 << 20
)

var _ framing.Framing = Framing{}

// Framing is the stateless frame codec.
type Framing struct{}

// New32 returns the framing with a 32bit length prefix.
func New32() Framing { return Framing{} }

func (Framing) EncodeFrame(data []byte) ([]byte, error) {
	if len(data) > MaxPayload {
		return nil, errors.Wrapf(framing.ErrTooLong, "%d bytes", len(data))
	}

	frame := make([]byte, headerSize+len(data)+trailerSize)
	binary.BigEndian.PutUint32(frame, uint32(len(data)))
	copy(frame[headerSize:], data)
	binary.BigEndian.PutUint64(frame[headerSize+len(data):], xxhash.Sum64(data))
	return frame, nil
}

func (Framing) DecodeFrame(frame []byte) ([]byte, error) {
	if len(frame) < headerSize+trailerSize {
		return nil, errors.Wrapf(framing.ErrFrameSize, "%d bytes is shorter than an empty frame", len(frame))
	}

	n := int(binary.BigEndian.Uint32(frame))
	if headerSize+n+trailerSize != len(frame) {
		return nil, errors.Wrapf(framing.ErrFrameSize, "length %d in a frame of %d bytes", n, len(frame))
	}

	data := frame[headerSize : headerSize+n]
	if err := verify(data, frame[headerSize+n:]); err != nil {
		return nil, err
	}
	return data, nil
}

func verify(data, trailer []byte) error {
	want := binary.BigEndian.Uint64(trailer)
	if got := xxhash.Sum64(data); got != want {
		return errors.Wrapf(framing.ErrChecksum, "got %016x, want %016x", got, want)
	}
	return nil
}

// Writer writes one frame per call to Write.
type Writer struct {
	w io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write frames p and writes it out. It returns len(p) on success.
func (fw *Writer) Write(p []byte) (int, error) {
	frame, err := Framing{}.EncodeFrame(p)
	if err != nil {
		return 0, err
	}
	if _, err := fw.w.Write(frame); err != nil {
		return 0, errors.Wrap(err, "lengthprefixed: write failed")
	}
	return len(p), nil
}

// Reader reads frames written by Writer.
type Reader struct {
	r   io.Reader
	hdr [headerSize]byte
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// ReadFrame returns the next payload. It returns io.EOF if the stream ends
// between frames and io.ErrUnexpectedEOF if it ends inside one.
func (fr *Reader) ReadFrame() ([]byte, error) {
	if _, err := io.ReadFull(fr.r, fr.hdr[:]); err != nil {
		return nil, err
	}

	n := binary.BigEndian.Uint32(fr.hdr[:])
	if n > MaxPayload {
		return nil, errors.Wrapf(framing.ErrTooLong, "announced %d bytes", n)
	}

	buf := make([]byte, int(n)+trailerSize)
	if _, err := io.ReadFull(fr.r, buf); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}

	data := buf[:n]
	if err := verify(data, buf[n:]); err != nil {
		return nil, err
	}
	return data, nil
}
