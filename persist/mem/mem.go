// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

// Package mem is a persist.Saver that keeps everything in a map.
package mem // import "github.com/ssbc/serialize/persist/mem"

import (
	"bytes"
	"sort"
	"sync"

	"github.com/ssbc/serialize/persist"
)

func New() *Saver {
	return &Saver{m: make(map[string][]byte)}
}

type Saver struct {
	l sync.Mutex
	m map[string][]byte
}

var _ persist.Saver = (*Saver)(nil)

// Put copies data, the caller may reuse it.
func (s *Saver) Put(key persist.Key, data []byte) error {
	s.l.Lock()
	defer s.l.Unlock()

	s.m[string(key)] = append([]byte{}, data...)
	return nil
}

func (s *Saver) Get(key persist.Key) ([]byte, error) {
	s.l.Lock()
	defer s.l.Unlock()

	data, ok := s.m[string(key)]
	if !ok {
		return nil, persist.ErrNotFound
	}
	return append([]byte{}, data...), nil
}

func (s *Saver) List() ([]persist.Key, error) {
	s.l.Lock()
	defer s.l.Unlock()

	keys := make([]persist.Key, 0, len(s.m))
	for k := range s.m {
		keys = append(keys, persist.Key(k))
	}
	sort.Slice(keys, func(i, j int) bool {
		return bytes.Compare(keys[i], keys[j]) < 0
	})
	return keys, nil
}

func (s *Saver) Delete(key persist.Key) error {
	s.l.Lock()
	defer s.l.Unlock()

	delete(s.m, string(key))
	return nil
}
