// Copyright (c) 2025 recwire authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the recwire library.

package store

import (
	"encoding/binary"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/edsrzf/mmap-go"
)

// MMap is a persistent, append-only Store backed by a single log file:
// every Store call appends a length-prefixed key/value record, and reads
// are served from a memory-mapped view of the file (grounded on
// saferwall-pe, whose entire job is mmap-based binary parsing; here the
// same technique backs writes instead of PE section parsing).
//
// The in-memory index (key -> file offset) and the counter are rebuilt by
// scanning the log on Open; MMap does not claim crash-consistency beyond
// what the OS page cache provides on Sync.
type MMap struct {
	mu      sync.RWMutex
	file    *os.File
	mapping mmap.MMap
	index   map[string][2]int // key -> [offset, length] into mapping
	counter atomic.Uint64
}

const counterKey = "\x00recwire/counter"

// OpenMMap opens (creating if necessary) a log file at path and replays it
// to rebuild the in-memory index and counter.
func OpenMMap(path string) (*MMap, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("recwire: open mmap store: %w", err)
	}
	s := &MMap{file: f, index: make(map[string][2]int)}
	if err := s.remap(); err != nil {
		f.Close()
		return nil, err
	}
	if err := s.replay(); err != nil {
		f.Close()
		return nil, err
	}
	return s, nil
}

func (s *MMap) remap() error {
	if s.mapping != nil {
		s.mapping.Unmap()
		s.mapping = nil
	}
	info, err := s.file.Stat()
	if err != nil {
		return err
	}
	if info.Size() == 0 {
		return nil
	}
	m, err := mmap.Map(s.file, mmap.RDONLY, 0)
	if err != nil {
		return fmt.Errorf("recwire: mmap store: %w", err)
	}
	s.mapping = m
	return nil
}

// replay scans the mapped log from the start, populating the index and
// recovering the counter from its reserved key.
func (s *MMap) replay() error {
	if s.mapping == nil {
		return nil
	}
	buf := []byte(s.mapping)
	pos := 0
	for pos < len(buf) {
		if pos+4 > len(buf) {
			break
		}
		klen := int(binary.BigEndian.Uint32(buf[pos:]))
		pos += 4
		if pos+klen > len(buf) {
			break
		}
		key := string(buf[pos : pos+klen])
		pos += klen
		if pos+4 > len(buf) {
			break
		}
		vlen := int(binary.BigEndian.Uint32(buf[pos:]))
		pos += 4
		if pos+vlen > len(buf) {
			break
		}
		s.index[key] = [2]int{pos, vlen}
		pos += vlen
	}
	if off, ok := s.index[counterKey]; ok {
		v := binary.BigEndian.Uint64(buf[off[0] : off[0]+off[1]])
		s.counter.Store(v)
	}
	return nil
}

func encodeRecord(key string, data []byte) []byte {
	out := make([]byte, 0, 8+len(key)+len(data))
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(key)))
	out = append(out, lenBuf[:]...)
	out = append(out, key...)
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(data)))
	out = append(out, lenBuf[:]...)
	out = append(out, data...)
	return out
}

// Store implements Store.
func (s *MMap) Store(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := s.file.Stat()
	if err != nil {
		return err
	}
	record := encodeRecord(key, data)
	if _, err := s.file.WriteAt(record, info.Size()); err != nil {
		return fmt.Errorf("recwire: append mmap store record: %w", err)
	}
	if err := s.remap(); err != nil {
		return err
	}
	valueOffset := int(info.Size()) + 4 + len(key) + 4
	s.index[key] = [2]int{valueOffset, len(data)}
	return nil
}

// Load implements Store.
func (s *MMap) Load(key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	loc, ok := s.index[key]
	if !ok {
		return nil, false, nil
	}
	buf := []byte(s.mapping)
	out := make([]byte, loc[1])
	copy(out, buf[loc[0]:loc[0]+loc[1]])
	return out, true, nil
}

// NextCounter implements Store, persisting the new value to the log so it
// survives a restart.
func (s *MMap) NextCounter() (uint64, error) {
	next := s.counter.Add(1)
	prev := next - 1

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], next)
	if err := s.Store(counterKey, buf[:]); err != nil {
		return 0, err
	}
	return prev, nil
}

// Close unmaps and closes the underlying file.
func (s *MMap) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mapping != nil {
		s.mapping.Unmap()
	}
	return s.file.Close()
}
