// Copyright (c) 2025 recwire authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the recwire library.

package schema

import "testing"

func TestKeyStability(t *testing.T) {
	s1 := Schema{ClassName: "Order", Fields: []FieldInfo{{"id", "i64"}, {"qty", "i32"}}}
	s2 := Schema{ClassName: "Order", Fields: []FieldInfo{{"id", "i64"}, {"qty", "i32"}}}

	if s1.Key() != s2.Key() {
		t.Fatalf("expected identical field lists to produce identical keys")
	}
}

func TestFingerprintSensitivity(t *testing.T) {
	base := Schema{ClassName: "Order", Fields: []FieldInfo{{"id", "i64"}, {"qty", "i32"}}}
	renamed := Schema{ClassName: "Order", Fields: []FieldInfo{{"oid", "i64"}, {"qty", "i32"}}}
	retyped := Schema{ClassName: "Order", Fields: []FieldInfo{{"id", "i32"}, {"qty", "i32"}}}
	reordered := Schema{ClassName: "Order", Fields: []FieldInfo{{"qty", "i32"}, {"id", "i64"}}}

	if base.Key() == renamed.Key() {
		t.Errorf("renamed field should change key")
	}
	if base.Key() == retyped.Key() {
		t.Errorf("retyped field should change key")
	}
	if base.Key() == reordered.Key() {
		t.Errorf("reordered fields should change key")
	}
}

func TestFingerprintDelimiterDisambiguation(t *testing.T) {
	a := Schema{ClassName: "X", Fields: []FieldInfo{{"ab", "c"}}}
	b := Schema{ClassName: "X", Fields: []FieldInfo{{"a", "bc"}}}

	if a.Key() == b.Key() {
		t.Errorf("expected delimiter to disambiguate concatenated name/type pairs")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	s := Schema{
		ClassName: "pkg.Order",
		Fields: []FieldInfo{
			{"id", "i64"},
			{"name", "string"},
			{"tags", "string?"},
		},
	}

	decoded, err := Decode(s.Encode())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded.ClassName != s.ClassName {
		t.Errorf("class name mismatch: %q vs %q", decoded.ClassName, s.ClassName)
	}
	if len(decoded.Fields) != len(s.Fields) {
		t.Fatalf("field count mismatch: %d vs %d", len(decoded.Fields), len(s.Fields))
	}
	for i := range s.Fields {
		if decoded.Fields[i] != s.Fields[i] {
			t.Errorf("field %d mismatch: %+v vs %+v", i, decoded.Fields[i], s.Fields[i])
		}
	}
}

func TestEncodedFormOmitsCompactID(t *testing.T) {
	s := Schema{ClassName: "X", Fields: []FieldInfo{{"a", "i32"}}, CompactID: 42}
	decoded, err := Decode(s.Encode())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded.CompactID != 0 {
		t.Errorf("expected decoded CompactID to be zero (re-derived elsewhere), got %d", decoded.CompactID)
	}
}
