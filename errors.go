// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

package serialize

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

var (
	// ErrNotPointer is returned by Decode if the destination is not a non-nil pointer.
	ErrNotPointer = errors.New("serialize: decode destination must be a non-nil pointer")

	// ErrUnsupportedType is the cause of errors for kinds that have no
	// representation, like channels and functions.
	ErrUnsupportedType = errors.New("serialize: unsupported type")

	// ErrMaxDepth is returned for values nested deeper than MaxDepth.
	ErrMaxDepth = errors.New("serialize: value nested too deeply")
)

// UnsupportedTypeError wraps ErrUnsupportedType with the offending type.
type UnsupportedTypeError struct {
	Type reflect.Type
}

func (e UnsupportedTypeError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnsupportedType, e.Type)
}

// Cause makes errors.Cause return ErrUnsupportedType.
func (e UnsupportedTypeError) Cause() error { return ErrUnsupportedType }

// Unwrap supports errors.Is from the standard library.
func (e UnsupportedTypeError) Unwrap() error { return ErrUnsupportedType }

// TagError reports a struct tag with options, which are not supported.
type TagError struct {
	Type  reflect.Type
	Field string
	Tag   string
}

func (e TagError) Error() string {
	return fmt.Sprintf("serialize: field %s of %s: tag %q has options", e.Field, e.Type, e.Tag)
}
