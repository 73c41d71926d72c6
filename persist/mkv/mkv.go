// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

// Package mkv implements persist.Saver on modernc.org/kv.
package mkv

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"modernc.org/kv"

	"github.com/ssbc/serialize/persist"
)

type Saver struct {
	db  *kv.DB
	log *zap.Logger
}

var _ persist.Saver = (*Saver)(nil)

// New opens the database file at path, creating it if it does not exist.
func New(path string, log *zap.Logger) (*Saver, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := Saver{log: log}

	opts := &kv.Options{}
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		s.db, err = kv.Create(path, opts)
		if err != nil {
			return nil, errors.Wrap(err, "persist/mkv: failed to create KV")
		}
		log.Debug("created database", zap.String("path", path))
	} else if err != nil {
		return nil, errors.Wrap(err, "persist/mkv: failed to stat path location")
	} else {
		s.db, err = kv.Open(path, opts)
		if err != nil {
			return nil, errors.Wrap(err, "persist/mkv: failed to open KV")
		}
	}

	return &s, nil
}

func (s *Saver) Close() error {
	return s.db.Close()
}

func (s *Saver) Put(key persist.Key, data []byte) error {
	return errors.Wrap(s.db.Set(key, data), "persist/mkv/put: set failed")
}

func (s *Saver) Get(key persist.Key) ([]byte, error) {
	data, err := s.db.Get(nil, key)
	if err != nil {
		return nil, errors.Wrap(err, "persist/mkv/get: get failed")
	}
	if data == nil {
		return nil, persist.ErrNotFound
	}
	return data, nil
}

func (s *Saver) List() ([]persist.Key, error) {
	var keys []persist.Key
	iter, err := s.db.SeekFirst()
	if err != nil {
		if err == io.EOF {
			return keys, nil
		}
		return nil, errors.Wrap(err, "persist/mkv/list: seek failed")
	}
	for {
		k, _, err := iter.Next()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.Wrap(err, "persist/mkv/list: iteration failed")
		}

		keys = append(keys, k)
	}
	return keys, nil
}

func (s *Saver) Delete(key persist.Key) error {
	return errors.Wrap(s.db.Delete(key), "persist/mkv/delete: delete failed")
}
