// Copyright (c) 2025 recwire authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the recwire library.

package bitio

import (
	"math"
	"testing"

	"github.com/kolbe/recwire/rwerr"
)

func TestDynamicNumberRoundTrip(t *testing.T) {
	cases := []int64{math.MinInt64, -1, 0, 1, 15, 16, 255, 256, 65535, 65536, math.MaxInt64}

	for _, x := range cases {
		w := NewWriter()
		w.WriteDynamicNumber(x)
		r := NewReader(w.Bytes())
		got, err := r.ReadDynamicNumber()
		if err != nil {
			t.Fatalf("x=%d: unexpected error: %v", x, err)
		}
		if got != x {
			t.Errorf("x=%d: round-trip got %d", x, got)
		}
	}
}

func TestDynamicNumberNegativeZero(t *testing.T) {
	w := NewWriter()
	w.WriteBit(true) // sign = negative
	w.WriteBits(0, 2) // width class 0
	w.WriteBits(0, 4) // magnitude 0

	r := NewReader(w.Bytes())
	got, err := r.ReadDynamicNumber()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Errorf("expected negative zero to read back as 0, got %d", got)
	}
}

func TestCompactnessMonotonicity(t *testing.T) {
	w1 := NewWriter()
	w1.WriteUTF("small")
	w2 := NewWriter()
	w2.WriteUTF("something larger")

	if len(w2.Bytes()) <= len(w1.Bytes()) {
		t.Errorf("expected strictly longer payload for longer string: %d vs %d", len(w2.Bytes()), len(w1.Bytes()))
	}
}

func TestUTFRoundTrip(t *testing.T) {
	strs := []string{"", "small", "something larger", "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"}
	for _, s := range strs {
		w := NewWriter()
		w.WriteUTF(s)
		r := NewReader(w.Bytes())
		got, err := r.ReadUTF()
		if err != nil {
			t.Fatalf("s=%q: unexpected error: %v", s, err)
		}
		if got != s {
			t.Errorf("s=%q: got %q", s, got)
		}
	}
}

func TestAlignmentBeforeWideTypes(t *testing.T) {
	w := NewWriter()
	w.WriteBit(true)
	w.WriteUint64(0x0102030405060708)

	r := NewReader(w.Bytes())
	bit, err := r.ReadBit()
	if err != nil || !bit {
		t.Fatalf("unexpected bit read: %v %v", bit, err)
	}
	v, err := r.ReadUint64()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 0x0102030405060708 {
		t.Errorf("got %x", v)
	}
}

func TestCorruptStreamEOF(t *testing.T) {
	r := NewReader([]byte{})
	if _, err := r.ReadBit(); err != rwerr.ErrCorruptStream {
		t.Errorf("expected ErrCorruptStream, got %v", err)
	}
}

func TestFloatRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteFloat32(math.SmallestNonzeroFloat32)
	w.WriteFloat64(math.MaxFloat64)

	r := NewReader(w.Bytes())
	f32, err := r.ReadFloat32()
	if err != nil || f32 != math.SmallestNonzeroFloat32 {
		t.Errorf("f32 round trip failed: %v %v", f32, err)
	}
	f64, err := r.ReadFloat64()
	if err != nil || f64 != math.MaxFloat64 {
		t.Errorf("f64 round trip failed: %v %v", f64, err)
	}
}
