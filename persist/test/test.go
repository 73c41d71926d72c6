// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

// Package test holds the tests every persist.Saver has to pass.
package test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ssbc/serialize/persist"
)

// SimpleSaver expects an empty saver.
func SimpleSaver(p persist.Saver) func(*testing.T) {
	return func(t *testing.T) {
		r := require.New(t)

		l, err := p.List()
		r.NoError(err)
		r.Len(l, 0, "%v", l)

		k := persist.Key{0, 0, 0, 1}
		d, err := p.Get(k)
		r.EqualError(err, persist.ErrNotFound.Error())
		r.Nil(d)

		testData := []byte("fooo")

		err = p.Put(k, testData)
		r.NoError(err)

		l, err = p.List()
		r.NoError(err)
		r.Len(l, 1)
		r.Equal(k, l[0])

		d, err = p.Get(k)
		r.NoError(err)
		r.Equal(testData, d)

		// overwrite
		err = p.Put(k, []byte("bar"))
		r.NoError(err)
		d, err = p.Get(k)
		r.NoError(err)
		r.Equal([]byte("bar"), d)

		r.NoError(p.Delete(k))
		_, err = p.Get(k)
		r.Equal(persist.ErrNotFound, err)
		r.NoError(p.Delete(k), "deleting twice")
	}
}

// OrderedList expects an empty saver.
func OrderedList(p persist.Saver) func(*testing.T) {
	return func(t *testing.T) {
		r := require.New(t)

		keys := []persist.Key{
			{0xff},
			{0x00, 0x01},
			[]byte("abc"),
			{0x00},
			[]byte("ab"),
		}
		for i, k := range keys {
			r.NoError(p.Put(k, []byte{byte(i)}), "put %x", []byte(k))
		}

		l, err := p.List()
		r.NoError(err)
		r.Equal([]persist.Key{
			{0x00},
			{0x00, 0x01},
			[]byte("ab"),
			[]byte("abc"),
			{0xff},
		}, l)

		for i, k := range keys {
			d, err := p.Get(k)
			r.NoError(err)
			r.Equal([]byte{byte(i)}, d)
		}
	}
}
