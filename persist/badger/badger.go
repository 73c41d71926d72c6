// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

// Package badger implements persist.Saver on badger. Several savers can share
// one database, each under its own key prefix.
package badger

import (
	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ssbc/serialize/persist"
)

type Saver struct {
	db     *badger.DB
	prefix []byte
	shared bool
}

var _ persist.Saver = (*Saver)(nil)

// New opens the database at path. Badger's own messages go to log,
// a nil logger discards them.
func New(path string, log *zap.Logger) (*Saver, error) {
	opts := BadgerOpts(path).WithLogger(newLogger(log))

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "persist/badger: failed to open database %s", path)
	}
	return &Saver{db: db}, nil
}

// NewShared uses db for keys under prefix. Closing it leaves db open.
func NewShared(db *badger.DB, prefix []byte) (*Saver, error) {
	if len(prefix) == 0 {
		return nil, errors.New("persist/badger: shared saver needs a prefix")
	}
	return &Saver{db: db, prefix: prefix, shared: true}, nil
}

func (s *Saver) Close() error {
	if s.shared {
		return nil
	}
	return s.db.Close()
}

func (s *Saver) key(k persist.Key) []byte {
	fk := make([]byte, 0, len(s.prefix)+len(k))
	fk = append(fk, s.prefix...)
	return append(fk, k...)
}

func (s *Saver) Put(key persist.Key, data []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(s.key(key), data)
	})
}

func (s *Saver) Get(key persist.Key) ([]byte, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		it, err := txn.Get(s.key(key))
		if err != nil {
			return err
		}
		data, err = it.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, persist.ErrNotFound
		}
		return nil, errors.Wrap(err, "persist/badger/get: view failed")
	}
	return data, nil
}

func (s *Saver) List() ([]persist.Key, error) {
	var keys []persist.Key

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = s.prefix

		iter := txn.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			k := iter.Item().KeyCopy(nil)
			keys = append(keys, persist.Key(k[len(s.prefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "persist/badger/list: view failed")
	}
	return keys, nil
}

func (s *Saver) Delete(rm persist.Key) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(s.key(rm))
	})
}
