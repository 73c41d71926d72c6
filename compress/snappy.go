// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

package compress

import (
	"bytes"
	"io"

	"github.com/golang/snappy"
	"github.com/pkg/errors"
)

// Snappy uses the framed snappy stream format.
type Snappy struct{}

func (Snappy) Code() byte   { return 3 }
func (Snappy) Name() string { return "snappy" }

func (Snappy) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := snappy.NewBufferedWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, errors.Wrap(err, "snappy: write failed")
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "snappy: close failed")
	}
	return buf.Bytes(), nil
}

func (Snappy) Uncompress(data []byte) ([]byte, error) {
	out, err := io.ReadAll(snappy.NewReader(bytes.NewReader(data)))
	return out, errors.Wrap(err, "snappy: read failed")
}
