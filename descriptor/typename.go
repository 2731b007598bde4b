// Copyright (c) 2025 recwire authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the recwire library.

package descriptor

import (
	"fmt"
	"math/big"
	"reflect"
	"time"

	"github.com/kolbe/recwire/rwerr"
)

// Canonical primitive type-name tokens forming the field type namespace.
const (
	TypeBool    = "bool"
	TypeI8      = "i8"
	TypeI16     = "i16"
	TypeI32     = "i32"
	TypeI64     = "i64"
	TypeF32     = "f32"
	TypeF64     = "f64"
	TypeString  = "string"
	TypeInstant = "instant"
	TypeDecimal = "decimal"
)

// boxedSuffix marks the nullable/boxed variant of a type name.
const boxedSuffix = "?"

var (
	timeType    = reflect.TypeOf(time.Time{})
	bigIntType  = reflect.TypeOf(big.Int{})
	decimalType = reflect.TypeOf(Decimal{})
)

// Decimal is recwire's arbitrary-precision decimal: an unscaled big integer
// magnitude plus an int32 scale.
type Decimal struct {
	Unscaled *big.Int
	Scale    int32
}

// primitiveName maps Go's signed integer/float/bool/string kinds to their
// canonical type_name. Unsigned kinds are intentionally unsupported: the
// primitive namespace (bool, i8..i64, f32, f64) mirrors Java's signed-only
// numeric types, and admitting both int32 and uint32 into "i32" would make
// the stored type_name ambiguous to decode back to a concrete Go type.
func primitiveName(k reflect.Kind) (string, bool) {
	switch k {
	case reflect.Bool:
		return TypeBool, true
	case reflect.Int8:
		return TypeI8, true
	case reflect.Int16:
		return TypeI16, true
	case reflect.Int32:
		return TypeI32, true
	case reflect.Int64:
		return TypeI64, true
	case reflect.Float32:
		return TypeF32, true
	case reflect.Float64:
		return TypeF64, true
	case reflect.String:
		return TypeString, true
	default:
		return "", false
	}
}

// CanonicalTypeName derives the canonical field type_name for a Go
// reflect.Type: unboxed/boxed primitives, fixed-length primitive arrays,
// string, instant, decimal, or (anything else) a nested record identified
// by its own canonical class name.
func CanonicalTypeName(t reflect.Type) (string, error) {
	if t.Kind() == reflect.Ptr {
		inner, err := CanonicalTypeName(t.Elem())
		if err != nil {
			return "", err
		}
		return inner + boxedSuffix, nil
	}

	switch {
	case t == timeType:
		return TypeInstant, nil
	case t == decimalType:
		return TypeDecimal, nil
	case t == bigIntType:
		return "", fmt.Errorf("%w: use descriptor.Decimal, not bare big.Int, for decimal fields", rwerr.ErrUnsupportedType)
	}

	if t.Kind() == reflect.Array {
		elemName, ok := primitiveName(t.Elem().Kind())
		if !ok || elemName == TypeString {
			return "", fmt.Errorf("%w: fixed arrays of %v are not supported", rwerr.ErrUnsupportedType, t.Elem())
		}
		return fmt.Sprintf("%s[%d]", elemName, t.Len()), nil
	}

	if name, ok := primitiveName(t.Kind()); ok {
		return name, nil
	}

	if t.Kind() == reflect.Struct {
		return ClassName(t), nil
	}

	return "", fmt.Errorf("%w: %v", rwerr.ErrUnsupportedType, t)
}

// ClassName is the fully qualified type name used as a schema's class_name
// and as a nested record's type_name: "{package path}.{type name}".
func ClassName(t reflect.Type) string {
	if t.PkgPath() == "" {
		return t.Name()
	}
	return t.PkgPath() + "." + t.Name()
}

// IsBoxed reports whether a canonical type name denotes a nullable/boxed
// field (the trailing "?" marker).
func IsBoxed(typeName string) bool {
	return len(typeName) > 0 && typeName[len(typeName)-1] == '?'
}

// Unboxed strips the boxed marker, returning the underlying type name.
func Unboxed(typeName string) string {
	if IsBoxed(typeName) {
		return typeName[:len(typeName)-1]
	}
	return typeName
}
