// Copyright (c) 2025 recwire authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the recwire library.

// Package registry implements the schema registry: the mediator between
// the top-level serializer and the backing store that resolves a type's
// schema to a compact id on write, and recovers a schema from a compact id
// on read.
package registry

import (
	"fmt"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/kolbe/recwire/rwerr"
	"github.com/kolbe/recwire/schema"
	"github.com/kolbe/recwire/store"
)

// Registry mediates between the codec and the Store.
//
// Because schemas are immutable once stored, an unbounded in-memory cache
// in front of Store.Load is always safe, mirroring dynamic-ssz's
// TypeCache, which caches reflection results for exactly the same reason
// (recomputing is pure overhead, never a correctness risk).
type Registry struct {
	store store.Store

	mu         sync.RWMutex
	keyToID    map[string]uint64 // key -> compact_id
	idToSchema map[uint64]schema.Schema
	group      singleflight.Group // collapses concurrent first-registrations of the same key
}

// New creates a Registry backed by s.
func New(s store.Store) *Registry {
	return &Registry{
		store:      s,
		keyToID:    make(map[string]uint64),
		idToSchema: make(map[uint64]schema.Schema),
	}
}

// ResolveForWrite resolves sc (as computed by the descriptor provider) to
// its compact id, registering it in the store on first sight. The returned
// Schema has CompactID populated.
func (r *Registry) ResolveForWrite(sc schema.Schema) (schema.Schema, error) {
	key := sc.Key()

	r.mu.RLock()
	if id, ok := r.keyToID[key]; ok {
		r.mu.RUnlock()
		sc.CompactID = id
		return sc, nil
	}
	r.mu.RUnlock()

	// Local singleflight only: two different processes racing to register
	// the same brand-new schema may each still mint a distinct compact id
	// and issue an identical (and therefore harmless) duplicate store put;
	// that cross-process race is tolerated by design. This just removes
	// redundant store round trips within one process.
	result, err, _ := r.group.Do(key, func() (any, error) {
		// A registration that finished after the check above has already
		// filled the cache.
		r.mu.RLock()
		if id, ok := r.keyToID[key]; ok {
			r.mu.RUnlock()
			cached := sc
			cached.CompactID = id
			return cached, nil
		}
		r.mu.RUnlock()

		if existing, ok, err := r.store.Load(key); err != nil {
			return nil, fmt.Errorf("recwire: load schema %q: %w", key, err)
		} else if ok {
			decoded, err := schema.Decode(existing)
			if err != nil {
				return nil, fmt.Errorf("%w: schema %q: %v", rwerr.ErrCorruptStore, key, err)
			}
			// The stored bytes never encode compact_id (see schema.Encode);
			// without a local cache hit above, this branch genuinely has no
			// id to recover here, so it must have been registered by a
			// process whose cache we don't share. Fall through to minting a
			// new id rather than guessing: we have no reverse pointer. In
			// practice this path is only reached by a fresh Registry over
			// an already-populated store.
			return nil, missingCacheEntry{decoded}
		}

		cid, err := r.store.NextCounter()
		if err != nil {
			return nil, fmt.Errorf("recwire: allocate compact id: %w", err)
		}
		assigned := sc
		assigned.CompactID = cid
		if err := r.store.Store(strconv.FormatUint(cid, 10), []byte(key)); err != nil {
			return nil, fmt.Errorf("recwire: store reverse map for id %d: %w", cid, err)
		}
		if err := r.store.Store(key, assigned.Encode()); err != nil {
			return nil, fmt.Errorf("recwire: store schema %q: %w", key, err)
		}
		r.mu.Lock()
		r.keyToID[key] = cid
		r.idToSchema[cid] = assigned
		r.mu.Unlock()
		return assigned, nil
	})

	if err != nil {
		var mc missingCacheEntry
		if asMissingCacheEntry(err, &mc) {
			return r.reconcileUncachedSchema(key, mc.schema)
		}
		return schema.Schema{}, err
	}

	assigned := result.(schema.Schema)
	r.mu.Lock()
	r.keyToID[key] = assigned.CompactID
	r.idToSchema[assigned.CompactID] = assigned
	r.mu.Unlock()
	return assigned, nil
}

// missingCacheEntry signals that the store already has schema bytes for a
// key this Registry instance has never itself assigned a compact id for;
// reconcileUncachedSchema then mints a fresh id for it.
type missingCacheEntry struct {
	schema schema.Schema
}

func (missingCacheEntry) Error() string { return "recwire: schema present without cached compact id" }

func asMissingCacheEntry(err error, out *missingCacheEntry) bool {
	mc, ok := err.(missingCacheEntry)
	if ok {
		*out = mc
	}
	return ok
}

// reconcileUncachedSchema is the fallback for a store-hit with no local
// compact_id cached: a store adapter may expose an iteration-free contract,
// so a fresh Registry cannot scan for the reverse entry either. It mints a
// fresh compact id instead, the same duplicate-registration outcome already
// tolerated for concurrent first writers.
func (r *Registry) reconcileUncachedSchema(key string, sc schema.Schema) (schema.Schema, error) {
	cid, err := r.store.NextCounter()
	if err != nil {
		return schema.Schema{}, fmt.Errorf("recwire: allocate compact id: %w", err)
	}
	if err := r.store.Store(strconv.FormatUint(cid, 10), []byte(key)); err != nil {
		return schema.Schema{}, fmt.Errorf("recwire: store reverse map for id %d: %w", cid, err)
	}
	sc.CompactID = cid

	r.mu.Lock()
	r.keyToID[key] = cid
	r.idToSchema[cid] = sc
	r.mu.Unlock()
	return sc, nil
}

// ResolveForRead recovers the schema a payload's leading compact id refers
// to.
func (r *Registry) ResolveForRead(compactID uint64) (schema.Schema, error) {
	r.mu.RLock()
	if sc, ok := r.idToSchema[compactID]; ok {
		r.mu.RUnlock()
		return sc, nil
	}
	r.mu.RUnlock()

	keyBytes, ok, err := r.store.Load(strconv.FormatUint(compactID, 10))
	if err != nil {
		return schema.Schema{}, fmt.Errorf("recwire: load reverse map for id %d: %w", compactID, err)
	}
	if !ok {
		return schema.Schema{}, fmt.Errorf("%w: %d", rwerr.ErrUnknownCompactID, compactID)
	}
	key := string(keyBytes)

	data, ok, err := r.store.Load(key)
	if err != nil {
		return schema.Schema{}, fmt.Errorf("recwire: load schema %q: %w", key, err)
	}
	if !ok {
		return schema.Schema{}, fmt.Errorf("%w: schema %q referenced by id %d is missing", rwerr.ErrCorruptStore, key, compactID)
	}
	sc, err := schema.Decode(data)
	if err != nil {
		return schema.Schema{}, fmt.Errorf("%w: schema %q: %v", rwerr.ErrCorruptStore, key, err)
	}
	sc.CompactID = compactID

	r.mu.Lock()
	r.keyToID[key] = compactID
	r.idToSchema[compactID] = sc
	r.mu.Unlock()
	return sc, nil
}
