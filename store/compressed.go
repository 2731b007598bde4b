// Copyright (c) 2025 recwire authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the recwire library.

package store

import (
	"fmt"

	"github.com/klauspost/compress/s2"
)

// Compressed wraps another Store and compresses values with S2 (a
// Snappy-compatible codec from klauspost/compress, grounded on
// NimbleMarkets-dbn-go's dependency on the same module) before delegating
// Store, decompressing on Load. Schema bytes compress well: field and type
// names repeat heavily across a codebase's record family.
type Compressed struct {
	inner Store
}

// NewCompressed wraps inner with S2 compression.
func NewCompressed(inner Store) *Compressed {
	return &Compressed{inner: inner}
}

// Store implements Store.
func (c *Compressed) Store(key string, data []byte) error {
	return c.inner.Store(key, s2.Encode(nil, data))
}

// Load implements Store.
func (c *Compressed) Load(key string) ([]byte, bool, error) {
	raw, ok, err := c.inner.Load(key)
	if err != nil || !ok {
		return nil, ok, err
	}
	out, err := s2.Decode(nil, raw)
	if err != nil {
		return nil, false, fmt.Errorf("recwire: decompress stored value for %q: %w", key, err)
	}
	return out, true, nil
}

// NextCounter implements Store by delegating directly: the counter is a
// small fixed-width value, not worth compressing.
func (c *Compressed) NextCounter() (uint64, error) {
	return c.inner.NextCounter()
}
