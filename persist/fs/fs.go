// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

// Package fs stores every value in a file named after the hex encoded key.
package fs

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ssbc/serialize/hex"
	"github.com/ssbc/serialize/persist"
)

type Saver struct {
	base string
	log  *zap.Logger
}

var _ persist.Saver = (*Saver)(nil)

// New creates base if needed. A nil logger discards everything.
func New(base string, log *zap.Logger) (*Saver, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(base, 0700); err != nil {
		return nil, errors.Wrap(err, "persist/fs: failed to create base directory")
	}
	return &Saver{base: base, log: log}, nil
}

func (s Saver) path(key persist.Key) string {
	// the empty key still needs a file name
	return filepath.Join(s.base, "k"+hex.Encode(key))
}

// Put writes to a temporary file first so readers never see partial values.
func (s Saver) Put(key persist.Key, data []byte) error {
	f, err := os.CreateTemp(s.base, ".put-*")
	if err != nil {
		return errors.Wrap(err, "persist/fs/put: failed to create temporary file")
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(data); err != nil {
		f.Close()
		return errors.Wrap(err, "persist/fs/put: failed to write value")
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "persist/fs/put: failed to close value file")
	}

	if err := os.Rename(f.Name(), s.path(key)); err != nil {
		return errors.Wrap(err, "persist/fs/put: failed to move value into place")
	}
	s.log.Debug("put", zap.Binary("key", key), zap.Int("size", len(data)))
	return nil
}

func (s Saver) Get(key persist.Key) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, persist.ErrNotFound
		}
		return nil, errors.Wrap(err, "persist/fs/get: failed to read value")
	}
	return data, nil
}

func (s Saver) List() ([]persist.Key, error) {
	entries, err := os.ReadDir(s.base)
	if err != nil {
		return nil, errors.Wrap(err, "persist/fs/list: failed to read base directory")
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || len(name) == 0 || name[0] != 'k' {
			continue
		}
		names = append(names, name[1:])
	}
	// hex keeps the byte order
	sort.Strings(names)

	keys := make([]persist.Key, 0, len(names))
	for _, n := range names {
		k, err := hex.Decode(n)
		if err != nil {
			s.log.Warn("skipping foreign file", zap.String("name", n), zap.Error(err))
			continue
		}
		keys = append(keys, k)
	}
	return keys, nil
}

func (s Saver) Delete(key persist.Key) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "persist/fs/delete: failed to remove value")
	}
	return nil
}
