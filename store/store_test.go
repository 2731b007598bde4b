// Copyright (c) 2025 recwire authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the recwire library.

package store

import (
	"path/filepath"
	"testing"
)

func testStoreContract(t *testing.T, s Store) {
	t.Helper()

	if _, ok, err := s.Load("missing"); err != nil || ok {
		t.Fatalf("expected absent, got ok=%v err=%v", ok, err)
	}

	if err := s.Store("k1", []byte("hello")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok, err := s.Load("k1")
	if err != nil || !ok || string(v) != "hello" {
		t.Fatalf("expected hello, got %q ok=%v err=%v", v, ok, err)
	}

	seen := map[uint64]bool{}
	for i := 0; i < 10; i++ {
		c, err := s.NextCounter()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[c] {
			t.Fatalf("counter value %d returned twice", c)
		}
		seen[c] = true
	}
}

func TestMemoryStore(t *testing.T) {
	testStoreContract(t, NewMemory())
}

func TestMMapStore(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenMMap(filepath.Join(dir, "log"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Close()
	testStoreContract(t, s)
}

func TestMMapStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "log")

	s1, err := OpenMMap(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s1.Store("persisted", []byte("value")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c1, err := s1.NextCounter()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s1.Close()

	s2, err := OpenMMap(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s2.Close()

	v, ok, err := s2.Load("persisted")
	if err != nil || !ok || string(v) != "value" {
		t.Fatalf("expected persisted value, got %q ok=%v err=%v", v, ok, err)
	}
	c2, err := s2.NextCounter()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c2 <= c1 {
		t.Errorf("expected counter to continue increasing across reopen: %d then %d", c1, c2)
	}
}

func TestCompressedStore(t *testing.T) {
	testStoreContract(t, NewCompressed(NewMemory()))
}
