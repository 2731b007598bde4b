// Copyright (c) 2025 recwire authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the recwire library.

// Package schema implements ClassMetaData: the normalized, fingerprinted
// description of a record type's serialized field list, and its on-disk
// encoding for the schema store.
package schema

import (
	"crypto/sha1"
	"encoding/hex"

	"github.com/kolbe/recwire/bitio"
	"github.com/kolbe/recwire/rwerr"
)

// FieldInfo is one (name, type_name) pair in a schema's field list. Order in
// the owning Schema.Fields slice is the authoritative serialization order.
type FieldInfo struct {
	Name     string
	TypeName string
}

// Schema is the normalized description of one record type: its class name
// plus an ordered field list. Two schemas with identical Fields (same names
// and type names in the same order) always produce the same Key, and
// schemas are never mutated once stored.
type Schema struct {
	ClassName string
	Fields    []FieldInfo

	// CompactID is not part of the encoded form (see registry package for
	// why): it is re-derived by the registry from the reverse map and
	// attached here purely for the caller's convenience after a resolve.
	CompactID uint64
}

// Fingerprint computes the 160-bit SHA-1 digest over the canonical encoding
// of Fields: each field's name and type_name concatenated in order with a
// NUL delimiter, so ("ab","c") and ("a","bc") never collide.
func (s Schema) Fingerprint() [20]byte {
	h := sha1.New()
	for _, f := range s.Fields {
		h.Write([]byte(f.Name))
		h.Write([]byte{0})
		h.Write([]byte(f.TypeName))
		h.Write([]byte{0})
	}
	var out [20]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Key is the primary store lookup handle: "{class_name}/{hex(fingerprint)}".
func (s Schema) Key() string {
	fp := s.Fingerprint()
	return s.ClassName + "/" + hex.EncodeToString(fp[:])
}

// Encode serializes the schema to its on-disk byte format:
//
//	utf8_lp(class_name)
//	dynamic_number(field_count)
//	(utf8_lp(name) utf8_lp(type_name)) × field_count
//
// The encoded form deliberately omits CompactID; the registry recovers it
// from the reverse map.
func (s Schema) Encode() []byte {
	w := bitio.NewWriter()
	w.WriteUTF(s.ClassName)
	w.WriteDynamicNumber(int64(len(s.Fields)))
	for _, f := range s.Fields {
		w.WriteUTF(f.Name)
		w.WriteUTF(f.TypeName)
	}
	return w.Bytes()
}

// Decode parses the on-disk byte format produced by Encode.
func Decode(data []byte) (Schema, error) {
	r := bitio.NewReader(data)
	className, err := r.ReadUTF()
	if err != nil {
		return Schema{}, err
	}
	count, err := r.ReadDynamicNumber()
	if err != nil {
		return Schema{}, err
	}
	if count < 0 {
		return Schema{}, rwerr.ErrCorruptStream
	}
	fields := make([]FieldInfo, 0, count)
	for i := int64(0); i < count; i++ {
		name, err := r.ReadUTF()
		if err != nil {
			return Schema{}, err
		}
		typeName, err := r.ReadUTF()
		if err != nil {
			return Schema{}, err
		}
		fields = append(fields, FieldInfo{Name: name, TypeName: typeName})
	}
	return Schema{ClassName: className, Fields: fields}, nil
}
