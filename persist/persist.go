// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

// Package persist stores byte values by key. The subpackages implement Saver
// on top of different storage engines, Store adds a codec on top.
package persist // import "github.com/ssbc/serialize/persist"

import (
	"github.com/pkg/errors"
)

type Key []byte

var ErrNotFound = errors.New("persist: item not found")

type Saver interface {
	Put(Key, []byte) error

	// Get returns ErrNotFound for unknown keys.
	Get(Key) ([]byte, error)

	// List returns all keys in ascending byte order.
	List() ([]Key, error)

	// Delete removes the key. Deleting an unknown key is not an error.
	Delete(Key) error
}
