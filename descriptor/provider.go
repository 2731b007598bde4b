// Copyright (c) 2025 recwire authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the recwire library.

package descriptor

import (
	"reflect"

	"github.com/kolbe/recwire/schema"
)

// Provider is the abstract type-descriptor interface the serializer and
// codec consume. The core is oblivious to how a concrete Provider discovers
// fields; Reflect (in this package) does it with Go's reflect package.
type Provider interface {
	// Describe yields the ordered field list for a record type. Order must
	// be stable per type definition.
	Describe(t reflect.Type) (schema.Schema, error)

	// Instantiate produces a default-constructed record (addressable, ready
	// for Set calls) for the given type.
	Instantiate(t reflect.Type) (any, error)

	// Get reads a named field's current value off value.
	Get(value any, fieldName string) (any, error)

	// Set assigns v to the named field on value, returning false if the
	// field does not exist on value's current type; that is the evolution-skip
	// signal, expressed as a boolean return instead of an exception.
	Set(value any, fieldName string, v any) bool

	// TypeName returns the canonical type_name for t.
	TypeName(t reflect.Type) (string, error)

	// Resolve looks up the reflect.Type previously registered under name,
	// the reader-side counterpart of TypeName.
	Resolve(name string) (reflect.Type, error)
}
