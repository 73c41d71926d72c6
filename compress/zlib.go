// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

package compress

import (
	"bytes"
	"compress/zlib"
	"io"

	"github.com/pkg/errors"
)

type Zlib struct{}

func (Zlib) Code() byte   { return 4 }
func (Zlib) Name() string { return "zlib" }

func (Zlib) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, errors.Wrap(err, "zlib: write failed")
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "zlib: close failed")
	}
	return buf.Bytes(), nil
}

func (Zlib) Uncompress(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "zlib: invalid header")
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	return out, errors.Wrap(err, "zlib: read failed")
}
