// Copyright (c) 2025 recwire authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the recwire library.

package codec

import (
	"github.com/kolbe/recwire/bitio"
)

// encodePrimitive writes an unboxed scalar: bool as 1 bit, i16/i32 as
// dynamic_number, i64 aligned big-endian, f32/f64 aligned IEEE 754. i8 rides
// the dynamic_number encoding too; it has no narrower form of its own, and
// array-of-i8 elements use the same dynamic_number encoding.
func encodePrimitive(w *bitio.Writer, typeName string, value any) error {
	switch typeName {
	case "bool":
		v, ok := value.(bool)
		if !ok {
			return unsupported(typeName)
		}
		w.WriteBit(v)
	case "i8":
		v, ok := value.(int8)
		if !ok {
			return unsupported(typeName)
		}
		w.WriteDynamicNumber(int64(v))
	case "i16":
		v, ok := value.(int16)
		if !ok {
			return unsupported(typeName)
		}
		w.WriteDynamicNumber(int64(v))
	case "i32":
		v, ok := value.(int32)
		if !ok {
			return unsupported(typeName)
		}
		w.WriteDynamicNumber(int64(v))
	case "i64":
		v, ok := value.(int64)
		if !ok {
			return unsupported(typeName)
		}
		w.WriteUint64(uint64(v))
	case "f32":
		v, ok := value.(float32)
		if !ok {
			return unsupported(typeName)
		}
		w.WriteFloat32(v)
	case "f64":
		v, ok := value.(float64)
		if !ok {
			return unsupported(typeName)
		}
		w.WriteFloat64(v)
	default:
		return unsupported(typeName)
	}
	return nil
}

func decodePrimitive(r *bitio.Reader, typeName string) (any, error) {
	switch typeName {
	case "bool":
		return r.ReadBit()
	case "i8":
		n, err := r.ReadDynamicNumber()
		return int8(n), err
	case "i16":
		n, err := r.ReadDynamicNumber()
		return int16(n), err
	case "i32":
		n, err := r.ReadDynamicNumber()
		return int32(n), err
	case "i64":
		n, err := r.ReadUint64()
		return int64(n), err
	case "f32":
		return r.ReadFloat32()
	case "f64":
		return r.ReadFloat64()
	default:
		return nil, unsupported(typeName)
	}
}
