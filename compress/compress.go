// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

// Package compress holds the compressors that can be layered under a codec.
package compress

import (
	"sort"

	"github.com/pkg/errors"
)

// Compressor compresses whole messages.
type Compressor interface {
	// Code identifies the compressor in a single byte.
	Code() byte
	Name() string

	Compress(data []byte) ([]byte, error)
	Uncompress(data []byte) ([]byte, error)
}

// ErrUnknown is returned for names and codes without a compressor.
var ErrUnknown = errors.New("compress: unknown compressor")

var all = []Compressor{
	Gzip{},
	LZ4{},
	Snappy{},
	Zlib{},
}

// ByName returns the compressor called name.
func ByName(name string) (Compressor, error) {
	for _, c := range all {
		if c.Name() == name {
			return c, nil
		}
	}
	return nil, errors.Wrapf(ErrUnknown, "no compressor named %q", name)
}

// ByCode returns the compressor with the given code.
func ByCode(code byte) (Compressor, error) {
	for _, c := range all {
		if c.Code() == code {
			return c, nil
		}
	}
	return nil, errors.Wrapf(ErrUnknown, "no compressor with code %d", code)
}

// Names lists the available compressors.
func Names() []string {
	names := make([]string, len(all))
	for i, c := range all {
		names[i] = c.Name()
	}
	sort.Strings(names)
	return names
}
