// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

package json

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStack(t *testing.T) {
	r := require.New(t)

	var s Stack
	r.True(s.IsEmpty())
	r.Equal(0, s.Len())
	_, ok := s.Top()
	r.False(ok)

	s.pushIndex(1)
	r.True(s.IsEqualTo(Index(1)))
	r.True(s.StartsWith(Index(1)))
	r.True(s.EndsWith(Index(1)))
	r.True(s.lastIsIndex())
	r.Equal(Index(1), s.Get(0))

	s.pushKey("foo")
	r.Equal(2, s.Len())
	r.True(s.IsEqualTo(Index(1), Key("foo")))
	r.True(s.StartsWith(Index(1), Key("foo")))
	r.True(s.StartsWith(Index(1)))
	r.True(s.EndsWith(Index(1), Key("foo")))
	r.True(s.EndsWith(Key("foo")))
	r.False(s.lastIsIndex())
	r.Equal(Key("foo"), s.Get(1))

	s.pushKey("bar")
	r.Equal(3, s.Len())
	r.True(s.IsEqualTo(Index(1), Key("foo"), Key("bar")))
	r.True(s.StartsWith(Index(1)))
	r.True(s.StartsWith(Index(1), Key("foo")))
	r.True(s.StartsWith(Index(1), Key("foo"), Key("bar")))
	r.True(s.EndsWith(Key("bar")))
	r.True(s.EndsWith(Key("foo"), Key("bar")))
	r.True(s.EndsWith(Index(1), Key("foo"), Key("bar")))
	r.False(s.lastIsIndex())
	r.Equal(Key("bar"), s.Get(2))
	r.Equal("[1]foo.bar", s.String())

	s.pop()
	r.Equal(2, s.Len())
	r.True(s.IsEqualTo(Index(1), Key("foo")))
	r.False(s.EndsWith(Key("bar")))

	s.pop()
	s.bumpIndex()
	r.True(s.IsEqualTo(Index(2)))

	top, ok := s.Top()
	r.True(ok)
	i, ok := top.AsIndex()
	r.True(ok)
	r.Equal(2, i)
	_, ok = top.AsKey()
	r.False(ok)
}

func TestStackElements(t *testing.T) {
	r := require.New(t)

	var s Stack
	s.pushKey("foo")
	s.pushKey("bar")
	s.pushIndex(3)
	s.pushKey("x")
	r.Equal("foo.bar[3].x", s.String())

	elems := s.Elements()
	r.Len(elems, 4)
	elems[0] = Key("changed")
	r.Equal(Key("foo"), s.Get(0))

	k, ok := s.Get(1).AsKey()
	r.True(ok)
	r.Equal("bar", k)
	r.Equal("[3]", s.Get(2).String())
}

func TestParserStack(t *testing.T) {
	r := require.New(t)

	p := NewStringParser(`{"a":[1,{"b":true}],"c":null}`)
	var paths []string
	for {
		ev, ok := p.Next()
		if !ok {
			break
		}
		r.NotEqual(ErrorEvent, ev.Kind)
		switch ev.Kind {
		case U64Event, BoolEvent, NullEvent:
			paths = append(paths, p.Stack().String())
		}
	}
	r.Equal([]string{"a[0]", "a[1].b", "c"}, paths)
}
