// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

package serialize

import (
	"encoding"
	"reflect"
	"strings"
	"sync"
)

// TagName is the struct tag consulted for field names.
//
//	Field int `serialize:"field"` // renamed
//	Other int `serialize:"-"`     // skipped
//
// Tags take no options, a tag with a comma is a TagError.
const TagName = "serialize"

type field struct {
	name  string
	index []int
}

// structInfo is the derived plan for a struct type.
type structInfo struct {
	name   string
	fields []field
	err    error
}

var structCache sync.Map // map[reflect.Type]*structInfo

func cachedStructInfo(t reflect.Type) *structInfo {
	if si, ok := structCache.Load(t); ok {
		return si.(*structInfo)
	}
	si, _ := structCache.LoadOrStore(t, newStructInfo(t))
	return si.(*structInfo)
}

func newStructInfo(t reflect.Type) *structInfo {
	si := &structInfo{name: t.Name()}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		name := sf.Name
		if tag, ok := sf.Tag.Lookup(TagName); ok {
			if strings.Contains(tag, ",") {
				si.err = TagError{Type: t, Field: sf.Name, Tag: tag}
				return si
			}
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}

		si.fields = append(si.fields, field{name: name, index: sf.Index})
	}
	return si
}

var (
	encodableType       = reflect.TypeOf((*Encodable)(nil)).Elem()
	decodableType       = reflect.TypeOf((*Decodable)(nil)).Elem()
	textMarshalerType   = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)
