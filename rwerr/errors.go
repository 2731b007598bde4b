// Copyright (c) 2025 recwire authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the recwire library.

// Package rwerr holds the sentinel error kinds shared across recwire's
// packages. Each is meant to be wrapped with context via
// fmt.Errorf("...: %w", ...) and tested with errors.Is.
package rwerr

import "errors"

var (
	// ErrUnsupportedType: the static type of a field or top-level value is
	// not in the codec's dispatch table (while writing).
	ErrUnsupportedType = errors.New("recwire: unsupported type")

	// ErrReflectionAccess: the type descriptor provider cannot read/write a
	// field, instantiate a value, or resolve a type name.
	ErrReflectionAccess = errors.New("recwire: reflection access failed")

	// ErrCorruptStream: the bit reader failed, or a length prefix was
	// negative/out of range.
	ErrCorruptStream = errors.New("recwire: corrupt stream")

	// ErrUnknownCompactID: the store has no reverse mapping for a payload's
	// leading compact id.
	ErrUnknownCompactID = errors.New("recwire: unknown compact id")

	// ErrCorruptStore: the store's reverse map resolved to a key, but the
	// schema bytes under that key are missing or fail to decode.
	ErrCorruptStore = errors.New("recwire: corrupt schema store")

	// ErrUnknownClass: a schema's class_name does not resolve to a type in
	// the current environment.
	ErrUnknownClass = errors.New("recwire: unknown class")

	// ErrNoDefaultConstructor: instantiating the current type failed
	// because it has no usable zero-value constructor.
	ErrNoDefaultConstructor = errors.New("recwire: no default constructor")
)
