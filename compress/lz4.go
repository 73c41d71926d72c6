// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

package compress

import (
	"bytes"
	"io"

	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"
)

// LZ4 uses the lz4 frame format, which records the block sizes so
// uncompressing needs no size estimate.
type LZ4 struct{}

func (LZ4) Code() byte   { return 2 }
func (LZ4) Name() string { return "lz4" }

func (LZ4) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, errors.Wrap(err, "lz4: write failed")
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "lz4: close failed")
	}
	return buf.Bytes(), nil
}

func (LZ4) Uncompress(data []byte) ([]byte, error) {
	out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	return out, errors.Wrap(err, "lz4: read failed")
}
