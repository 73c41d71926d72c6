// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

// Package sqlite implements persist.Saver on a sqlite table.
package sqlite

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ssbc/serialize/hex"
	"github.com/ssbc/serialize/persist"
)

const schema = `CREATE TABLE IF NOT EXISTS persisted (
	key TEXT PRIMARY KEY,
	data BLOB NOT NULL
)`

type Saver struct {
	db  *sql.DB
	log *zap.Logger
}

var _ persist.Saver = (*Saver)(nil)

// New opens the database file at path and creates the table if needed.
func New(path string, log *zap.Logger) (*Saver, error) {
	if log == nil {
		log = zap.NewNop()
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "persist/sqlite: failed to open database")
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "persist/sqlite: failed to create table")
	}

	return &Saver{db: db, log: log}, nil
}

func (s *Saver) Close() error {
	return s.db.Close()
}

// keys are stored as hex text so the primary key sorts like the raw bytes
func (s *Saver) Put(key persist.Key, data []byte) error {
	if data == nil {
		data = []byte{}
	}
	hexKey := hex.Encode(key)
	_, err := s.db.Exec(`INSERT OR REPLACE INTO persisted (key, data) VALUES (?, ?)`, hexKey, data)
	if err != nil {
		return errors.Wrap(err, "persist/sqlite/put: failed to insert value")
	}
	s.log.Debug("put", zap.String("key", hexKey), zap.Int("size", len(data)))
	return nil
}

func (s *Saver) Get(key persist.Key) ([]byte, error) {
	var data []byte
	hexKey := hex.Encode(key)
	err := s.db.QueryRow(`SELECT data FROM persisted WHERE key = ?`, hexKey).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, persist.ErrNotFound
		}
		return nil, errors.Wrapf(err, "persist/sqlite/get(%s): failed to execute query", hexKey)
	}
	return data, nil
}

func (s *Saver) List() ([]persist.Key, error) {
	var keys []persist.Key
	rows, err := s.db.Query(`SELECT key FROM persisted ORDER BY key`)
	if err != nil {
		return nil, errors.Wrap(err, "persist/sqlite/list: failed to execute rows query")
	}
	defer rows.Close()

	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, errors.Wrap(err, "persist/sqlite/list: failed to scan row result")
		}
		bk, err := hex.Decode(k)
		if err != nil {
			return nil, errors.Wrapf(err, "persist/sqlite/list: invalid key: %q", k)
		}
		keys = append(keys, bk)
	}

	return keys, rows.Err()
}

func (s *Saver) Delete(key persist.Key) error {
	_, err := s.db.Exec(`DELETE FROM persisted WHERE key = ?`, hex.Encode(key))
	return errors.Wrap(err, "persist/sqlite/delete: failed to delete value")
}
