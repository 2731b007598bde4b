// Copyright (c) 2025 recwire authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the recwire library.

package codec

import (
	"math/big"
	"testing"
	"time"

	"github.com/kolbe/recwire/bitio"
	"github.com/kolbe/recwire/descriptor"
)

func roundTrip(t *testing.T, typeName string, value any) any {
	t.Helper()
	w := bitio.NewWriter()
	if err := EncodeField(w, typeName, value, nil); err != nil {
		t.Fatalf("encode %s: %v", typeName, err)
	}
	r := bitio.NewReader(w.Bytes())
	got, err := DecodeField(r, typeName, nil)
	if err != nil {
		t.Fatalf("decode %s: %v", typeName, err)
	}
	return got
}

func TestPrimitiveRoundTrip(t *testing.T) {
	if got := roundTrip(t, "bool", true); got != true {
		t.Errorf("bool: got %v", got)
	}
	if got := roundTrip(t, "i32", int32(-42)); got != int32(-42) {
		t.Errorf("i32: got %v", got)
	}
	if got := roundTrip(t, "i64", int64(9223372036854775807)); got != int64(9223372036854775807) {
		t.Errorf("i64: got %v", got)
	}
	if got := roundTrip(t, "f64", 3.5); got != 3.5 {
		t.Errorf("f64: got %v", got)
	}
}

func TestNullStringAndBoxedInt(t *testing.T) {
	var nilStr *string
	got := roundTrip(t, "string?", nilStr)
	if got != nil {
		t.Errorf("expected nil string, got %v", got)
	}

	var nilI32 *int32
	got = roundTrip(t, "i32?", nilI32)
	if got != nil {
		t.Errorf("expected nil boxed i32, got %v", got)
	}

	v := int32(5)
	got = roundTrip(t, "i32?", &v)
	if p, ok := got.(*int32); !ok || *p != 5 {
		t.Errorf("expected *int32(5), got %v", got)
	}
}

func TestArrayRoundTrip(t *testing.T) {
	got := roundTrip(t, "bool[2]", [2]bool{false, true})
	arr, ok := got.([2]bool)
	if !ok || arr != [2]bool{false, true} {
		t.Errorf("got %v", got)
	}

	got = roundTrip(t, "i8[3]", [3]int8{-1, 0, 1})
	arr8, ok := got.([3]int8)
	if !ok || arr8 != [3]int8{-1, 0, 1} {
		t.Errorf("got %v", got)
	}
}

func TestInstantRoundTrip(t *testing.T) {
	ts := time.UnixMilli(1700000000123).UTC()
	got := roundTrip(t, "instant", ts)
	gotTs, ok := got.(time.Time)
	if !ok || !gotTs.Equal(ts) {
		t.Errorf("got %v, want %v", got, ts)
	}
}

func TestDecimalRoundTrip(t *testing.T) {
	d := descriptor.Decimal{Unscaled: big.NewInt(42387293948234), Scale: 0}
	got := roundTrip(t, "decimal", d)
	gotD, ok := got.(descriptor.Decimal)
	if !ok || gotD.Unscaled.Cmp(d.Unscaled) != 0 || gotD.Scale != d.Scale {
		t.Errorf("got %+v, want %+v", got, d)
	}

	neg := descriptor.Decimal{Unscaled: big.NewInt(-9876543210), Scale: 2}
	got = roundTrip(t, "decimal", neg)
	gotD, ok = got.(descriptor.Decimal)
	if !ok || gotD.Unscaled.Cmp(neg.Unscaled) != 0 || gotD.Scale != neg.Scale {
		t.Errorf("got %+v, want %+v", got, neg)
	}
}

func TestCompactnessMonotonicityForStrings(t *testing.T) {
	w1 := bitio.NewWriter()
	_ = EncodeField(w1, "string", "small", nil)
	w2 := bitio.NewWriter()
	_ = EncodeField(w2, "string", "something larger", nil)
	if len(w2.Bytes()) <= len(w1.Bytes()) {
		t.Errorf("expected strictly longer payload, got %d vs %d", len(w2.Bytes()), len(w1.Bytes()))
	}
}
