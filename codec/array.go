// Copyright (c) 2025 recwire authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the recwire library.

package codec

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/kolbe/recwire/bitio"
	"github.com/kolbe/recwire/rwerr"
)

// parseArrayType recognizes a "P[N]" type_name token, returning the
// primitive element type_name and the fixed length.
func parseArrayType(typeName string) (elem string, n int, ok bool) {
	open := strings.IndexByte(typeName, '[')
	if open < 0 || !strings.HasSuffix(typeName, "]") {
		return "", 0, false
	}
	elem = typeName[:open]
	if !primitiveScalars[elem] {
		return "", 0, false
	}
	length, err := strconv.Atoi(typeName[open+1 : len(typeName)-1])
	if err != nil || length < 0 {
		return "", 0, false
	}
	return elem, length, true
}

func isArrayType(typeName string) bool {
	_, _, ok := parseArrayType(typeName)
	return ok
}

// encodeArray writes a fixed-length primitive array: a dynamic_number
// length followed by each element in its (non-aligned for sub-byte types,
// aligned for i64/f32/f64) primitive form. i8/i16/i32 elements all ride the
// dynamic_number encoding regardless of declared width.
func encodeArray(w *bitio.Writer, elemType string, declaredLen int, value any) error {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Array && rv.Kind() != reflect.Slice {
		return unsupported(elemType + "[]")
	}
	w.WriteDynamicNumber(int64(rv.Len()))
	for i := 0; i < rv.Len(); i++ {
		if err := encodePrimitive(w, elemType, rv.Index(i).Interface()); err != nil {
			return err
		}
	}
	return nil
}

// decodeArrayByName reads a fixed-length primitive array encoded as above
// and returns it as a reflect-constructed Go array value whose length is the
// one read from the stream (matching what descriptor.CanonicalTypeName
// expects to round-trip through Provider.Set when it equals the declared
// length). The length in typeName is not checked against the stream.
func decodeArrayByName(r *bitio.Reader, typeName string) (any, error) {
	elemType, _, ok := parseArrayType(typeName)
	if !ok {
		return nil, unsupported(typeName)
	}
	n, err := r.ReadDynamicNumber()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, rwerr.ErrCorruptStream
	}

	goElemType, err := goTypeForPrimitive(elemType)
	if err != nil {
		return nil, err
	}
	arrType := reflect.ArrayOf(int(n), goElemType)
	out := reflect.New(arrType).Elem()
	for i := int64(0); i < n; i++ {
		ev, err := decodePrimitive(r, elemType)
		if err != nil {
			return nil, err
		}
		out.Index(int(i)).Set(reflect.ValueOf(ev))
	}
	return out.Interface(), nil
}

func goTypeForPrimitive(typeName string) (reflect.Type, error) {
	switch typeName {
	case "bool":
		return reflect.TypeOf(false), nil
	case "i8":
		return reflect.TypeOf(int8(0)), nil
	case "i16":
		return reflect.TypeOf(int16(0)), nil
	case "i32":
		return reflect.TypeOf(int32(0)), nil
	case "i64":
		return reflect.TypeOf(int64(0)), nil
	case "f32":
		return reflect.TypeOf(float32(0)), nil
	case "f64":
		return reflect.TypeOf(float64(0)), nil
	default:
		return nil, unsupported(typeName)
	}
}
