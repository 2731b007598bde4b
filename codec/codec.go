// Copyright (c) 2025 recwire authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the recwire library.

// Package codec implements the value codec: the primitive and well-known-type
// encoders/decoders, null marking, and the recursive hook into nested
// records. Dispatch is keyed by the field's declared (static) type_name,
// never by the runtime value's type: one small coder per wire type,
// grounded on solidcoredata-dca's ts/fieldcoder.go
// (FieldCoder + coderInt64/coderBool/...).
package codec

import (
	"fmt"
	"reflect"

	"github.com/kolbe/recwire/bitio"
	"github.com/kolbe/recwire/rwerr"
)

// NestedCodec is the callback the root serializer supplies so codec can
// recurse into nested record types without importing the descriptor/
// registry packages (which would create an import cycle back to codec).
type NestedCodec interface {
	// EncodeRecord serializes a nested record value to an opaque byte
	// array (the top-level serializer's own output).
	EncodeRecord(v any) ([]byte, error)

	// DecodeRecord resolves className to a current Go type, instantiates
	// it, and deserializes data into it, per the evolution-tolerant
	// reader's recursive step.
	DecodeRecord(data []byte, className string) (any, error)
}

// primitiveScalars are the unboxed, non-nullable primitive type_name
// tokens: written without an is_null tag.
var primitiveScalars = map[string]bool{
	"bool": true, "i8": true, "i16": true, "i32": true,
	"i64": true, "f32": true, "f64": true,
}

func unboxed(typeName string) string {
	if len(typeName) > 0 && typeName[len(typeName)-1] == '?' {
		return typeName[:len(typeName)-1]
	}
	return typeName
}

func isBoxed(typeName string) bool {
	return len(typeName) > 0 && typeName[len(typeName)-1] == '?'
}

// isNilValue reports whether v (as returned by a Provider.Get call) is a
// nil pointer/interface.
func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}

// EncodeField writes value to w per the dispatch table for typeName: bare
// primitive scalars are written directly; everything else goes through the
// object branch (1-bit is_null tag, then the object payload if non-null).
func EncodeField(w *bitio.Writer, typeName string, value any, nested NestedCodec) error {
	if primitiveScalars[typeName] {
		return encodePrimitive(w, typeName, value)
	}

	nilValue := isNilValue(value)
	w.WriteBit(nilValue) // bit=1 => null
	if nilValue {
		return nil
	}

	base := unboxed(typeName)
	value = derefValue(value)

	if primitiveScalars[base] {
		return encodePrimitive(w, base, value)
	}
	if elemType, n, ok := parseArrayType(base); ok {
		return encodeArray(w, elemType, n, value)
	}
	switch base {
	case "string":
		return encodeString(w, value)
	case "instant":
		return encodeInstant(w, value)
	case "decimal":
		return encodeDecimal(w, value)
	default:
		return encodeNestedRecord(w, value, nested)
	}
}

// DecodeField reads and returns a value per the dispatch table for
// typeName. The returned Go value's concrete type always matches what
// descriptor.CanonicalTypeName would compute for it, so the caller can
// compare stored vs. current type_name and decide whether to assign it.
func DecodeField(r *bitio.Reader, typeName string, nested NestedCodec) (any, error) {
	if primitiveScalars[typeName] {
		return decodePrimitive(r, typeName)
	}

	isNull, err := r.ReadBit()
	if err != nil {
		return nil, err
	}
	if isNull {
		return nil, nil
	}

	base := unboxed(typeName)
	boxed := isBoxed(typeName)

	// Nested records are decoded via NestedCodec.DecodeRecord, which always
	// returns a pointer (Provider.Instantiate's contract). Every other
	// object-branch decoder returns a plain value. Normalize both to match
	// what descriptor.CanonicalTypeName would compute for the Go field: a
	// pointer for a boxed ("T?") type_name, a plain value otherwise.
	if !isArrayType(base) && base != "string" && base != "instant" && base != "decimal" && !primitiveScalars[base] {
		v, err := decodeNestedRecord(r, base, nested)
		if err != nil {
			return nil, err
		}
		if !boxed {
			return derefValue(v), nil
		}
		return v, nil
	}

	var v any
	switch {
	case primitiveScalars[base]:
		v, err = decodePrimitive(r, base)
	case isArrayType(base):
		v, err = decodeArrayByName(r, base)
	case base == "string":
		v, err = decodeString(r)
	case base == "instant":
		v, err = decodeInstant(r)
	case base == "decimal":
		v, err = decodeDecimal(r)
	}
	if err != nil {
		return nil, err
	}
	if boxed {
		return boxValue(v), nil
	}
	return v, nil
}

// derefValue dereferences a pointer value obtained from Provider.Get so the
// object-branch encoders always see the pointed-to value.
func derefValue(v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		return rv.Elem().Interface()
	}
	return v
}

// boxValue wraps v in a new pointer of its own type, matching the Go
// representation descriptor.CanonicalTypeName expects for a "T?" field.
func boxValue(v any) any {
	rv := reflect.ValueOf(v)
	p := reflect.New(rv.Type())
	p.Elem().Set(rv)
	return p.Interface()
}

func unsupported(typeName string) error {
	return fmt.Errorf("%w: %s", rwerr.ErrUnsupportedType, typeName)
}
