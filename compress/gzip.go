// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

package compress

import (
	"bytes"
	"compress/gzip"
	"io"

	"github.com/pkg/errors"
)

// Gzip compresses with compress/gzip at the default level.
type Gzip struct{}

func (Gzip) Code() byte   { return 1 }
func (Gzip) Name() string { return "gzip" }

func (Gzip) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write(data); err != nil {
		return nil, errors.Wrap(err, "gzip: write failed")
	}
	// Close flushes the footer, it can't be deferred
	if err := gw.Close(); err != nil {
		return nil, errors.Wrap(err, "gzip: close failed")
	}
	return buf.Bytes(), nil
}

func (Gzip) Uncompress(data []byte) ([]byte, error) {
	gr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "gzip: invalid header")
	}
	defer gr.Close()

	out, err := io.ReadAll(gr)
	return out, errors.Wrap(err, "gzip: read failed")
}
