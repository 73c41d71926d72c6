// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

package json

import (
	"strconv"
	"strings"
)

// StackElement is one step of a path into a document: an object key or an
// array index.
type StackElement struct {
	key   string
	index int
	isKey bool
}

// Key is the path element for an object member.
func Key(k string) StackElement { return StackElement{key: k, isKey: true} }

// Index is the path element for an array element.
func Index(i int) StackElement { return StackElement{index: i} }

func (se StackElement) AsKey() (string, bool) { return se.key, se.isKey }
func (se StackElement) AsIndex() (int, bool)  { return se.index, !se.isKey }

func (se StackElement) String() string {
	if se.isKey {
		return se.key
	}
	return "[" + strconv.Itoa(se.index) + "]"
}

// Stack is the position of a Parser in the logical structure of the document,
// for example foo.bar[3].x.
type Stack struct {
	elems []StackElement
}

func (s *Stack) Len() int      { return len(s.elems) }
func (s *Stack) IsEmpty() bool { return len(s.elems) == 0 }

// Get returns element idx, counting from the bottom.
func (s *Stack) Get(idx int) StackElement { return s.elems[idx] }

// Top returns the innermost element.
func (s *Stack) Top() (StackElement, bool) {
	if len(s.elems) == 0 {
		return StackElement{}, false
	}
	return s.elems[len(s.elems)-1], true
}

// IsEqualTo compares the whole stack with rhs.
func (s *Stack) IsEqualTo(rhs ...StackElement) bool {
	return len(s.elems) == len(rhs) && s.StartsWith(rhs...)
}

// StartsWith reports whether the bottom elements are rhs.
func (s *Stack) StartsWith(rhs ...StackElement) bool {
	if len(s.elems) < len(rhs) {
		return false
	}
	for i, se := range rhs {
		if s.elems[i] != se {
			return false
		}
	}
	return true
}

// EndsWith reports whether the top elements are rhs.
func (s *Stack) EndsWith(rhs ...StackElement) bool {
	if len(s.elems) < len(rhs) {
		return false
	}
	offset := len(s.elems) - len(rhs)
	for i, se := range rhs {
		if s.elems[offset+i] != se {
			return false
		}
	}
	return true
}

// Elements returns a copy of the path.
func (s *Stack) Elements() []StackElement {
	return append([]StackElement(nil), s.elems...)
}

func (s *Stack) String() string {
	var sb strings.Builder
	for i, se := range s.elems {
		if se.isKey && i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(se.String())
	}
	return sb.String()
}

func (s *Stack) pushKey(k string)  { s.elems = append(s.elems, Key(k)) }
func (s *Stack) pushIndex(i int)   { s.elems = append(s.elems, Index(i)) }
func (s *Stack) pop()              { s.elems = s.elems[:len(s.elems)-1] }
func (s *Stack) lastIsIndex() bool { return len(s.elems) > 0 && !s.elems[len(s.elems)-1].isKey }

func (s *Stack) bumpIndex() {
	top := &s.elems[len(s.elems)-1]
	if top.isKey {
		panic("json: bumpIndex on a key")
	}
	top.index++
}
