// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

package persist

import (
	"github.com/pkg/errors"

	"github.com/ssbc/serialize/codec"
)

// Store saves values encoded with a codec.
type Store struct {
	saver Saver
	codec codec.Codec
}

func NewStore(s Saver, c codec.Codec) *Store {
	return &Store{saver: s, codec: c}
}

func (s *Store) Put(key Key, v interface{}) error {
	data, err := s.codec.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "persist: failed to marshal value for %x", []byte(key))
	}
	return s.saver.Put(key, data)
}

// Get decodes the value stored under key. Unknown keys yield ErrNotFound.
func (s *Store) Get(key Key) (interface{}, error) {
	data, err := s.saver.Get(key)
	if err != nil {
		return nil, err
	}

	v, err := s.codec.Unmarshal(data)
	if err != nil {
		return nil, errors.Wrapf(err, "persist: failed to unmarshal value for %x", []byte(key))
	}
	return v, nil
}

func (s *Store) Delete(key Key) error {
	return s.saver.Delete(key)
}

func (s *Store) List() ([]Key, error) {
	return s.saver.List()
}
