// Copyright (c) 2025 recwire authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the recwire library.

package recwire

import (
	"fmt"
	"reflect"

	"github.com/kolbe/recwire/bitio"
	"github.com/kolbe/recwire/codec"
	"github.com/kolbe/recwire/descriptor"
	"github.com/kolbe/recwire/registry"
	"github.com/kolbe/recwire/rwerr"
	"github.com/kolbe/recwire/schema"
	"github.com/kolbe/recwire/store"
)

// Serializer ties a schema Registry to a type descriptor Provider to
// produce and consume recwire's wire format. It is safe for concurrent use:
// all shared state lives in the Registry and Provider, which are themselves
// safe for concurrent use.
type Serializer struct {
	registry *registry.Registry
	provider descriptor.Provider
	opts     *Options
}

// New creates a Serializer backed by s, the store holding schema and
// compact-id metadata. Record values themselves never pass through s; only
// their schemas do.
func New(s store.Store, options ...Option) *Serializer {
	opts := defaultOptions()
	for _, o := range options {
		o(opts)
	}
	if opts.Provider == nil {
		opts.Provider = descriptor.NewReflect()
	}
	return &Serializer{
		registry: registry.New(s),
		provider: opts.Provider,
		opts:     opts,
	}
}

// Serialize encodes v, a pointer to (or value of) a supported record
// struct, into its compact binary form: a leading compact schema id
// followed by each field in the schema's canonical order.
func (s *Serializer) Serialize(v any) ([]byte, error) {
	return s.EncodeRecord(v)
}

// EncodeRecord implements codec.NestedCodec, letting the codec package
// recurse into nested record fields without importing this package.
func (s *Serializer) EncodeRecord(v any) ([]byte, error) {
	w := bitio.NewWriter()
	if err := s.encodeRecord(w, v); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func (s *Serializer) encodeRecord(w *bitio.Writer, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return fmt.Errorf("%w: cannot serialize a nil record pointer", rwerr.ErrUnsupportedType)
		}
		rv = rv.Elem()
	}
	t := rv.Type()
	// Provider.Get reads through a pointer; use an addressable copy so both
	// pointer and value inputs work.
	ptr := reflect.New(t)
	ptr.Elem().Set(rv)

	sc, err := s.provider.Describe(t)
	if err != nil {
		return err
	}
	resolved, err := s.registry.ResolveForWrite(sc)
	if err != nil {
		return err
	}

	w.WriteDynamicNumber(int64(resolved.CompactID))
	for _, f := range resolved.Fields {
		value, err := s.provider.Get(ptr.Interface(), f.Name)
		if err != nil {
			return fmt.Errorf("%w: reading field %q of %s: %v", rwerr.ErrReflectionAccess, f.Name, t, err)
		}
		if err := codec.EncodeField(w, f.TypeName, value, s); err != nil {
			return fmt.Errorf("field %q of %s: %w", f.Name, t, err)
		}
	}
	return nil
}

// Deserialize decodes data into out, a non-nil pointer to a record struct.
// Decoding follows the schema the payload was written with; fields are then
// copied into out by matching (name, type_name) against out's current
// schema. Stored fields with no match on the current type, either missing
// entirely or present under an incompatible type_name, are silently
// dropped, which is how recwire tolerates a reader whose type has evolved
// since the data was written.
func (s *Serializer) Deserialize(data []byte, out any) error {
	r := bitio.NewReader(data)
	return s.decodeRecord(r, out)
}

// DecodeRecord implements codec.NestedCodec: it resolves className to a
// current Go type, instantiates it, and decodes data into it.
func (s *Serializer) DecodeRecord(data []byte, className string) (any, error) {
	t, err := s.provider.Resolve(className)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", rwerr.ErrUnknownClass, className)
	}
	out, err := s.provider.Instantiate(t)
	if err != nil {
		return nil, err
	}
	r := bitio.NewReader(data)
	if err := s.decodeRecord(r, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Serializer) decodeRecord(r *bitio.Reader, out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("%w: Deserialize target must be a non-nil pointer", rwerr.ErrUnsupportedType)
	}
	currentType := rv.Elem().Type()

	compactID, err := r.ReadDynamicNumber()
	if err != nil {
		return err
	}
	stored, err := s.registry.ResolveForRead(uint64(compactID))
	if err != nil {
		return err
	}

	current, err := s.provider.Describe(currentType)
	if err != nil {
		return err
	}
	currentByName := make(map[string]schema.FieldInfo, len(current.Fields))
	for _, f := range current.Fields {
		currentByName[f.Name] = f
	}

	for _, storedField := range stored.Fields {
		value, err := codec.DecodeField(r, storedField.TypeName, s)
		if err != nil {
			return fmt.Errorf("field %q of %s: %w", storedField.Name, stored.ClassName, err)
		}

		currentField, ok := currentByName[storedField.Name]
		if !ok || currentField.TypeName != storedField.TypeName {
			currentTypeName := ""
			if ok {
				currentTypeName = currentField.TypeName
			}
			s.opts.mismatch(stored.ClassName, storedField.Name, storedField.TypeName, currentTypeName)
			s.opts.logf("recwire: dropping field %q (%s) of %s: no matching field on current type\n",
				storedField.Name, storedField.TypeName, stored.ClassName)
			continue
		}

		if !s.provider.Set(out, storedField.Name, value) {
			s.opts.logf("recwire: field %q present on %s but could not be set\n", storedField.Name, stored.ClassName)
		}
	}
	return nil
}

// ResolveType exposes the provider's name->reflect.Type lookup, the
// reader-side counterpart used when a nested record's schema carries a
// class name not known to the caller ahead of time.
func (s *Serializer) ResolveType(className string) (reflect.Type, error) {
	return s.provider.Resolve(className)
}
