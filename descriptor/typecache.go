// Copyright (c) 2025 recwire authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the recwire library.

package descriptor

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/kolbe/recwire/rwerr"
	"github.com/kolbe/recwire/schema"
)

// fieldEntry is one cached struct field: its declared name, canonical
// type_name, and the reflect.StructField index needed to read/write it.
type fieldEntry struct {
	name     string
	typeName string
	index    int
}

// typeEntry is the cached per-type shape: its class name and its fields in
// canonical (lexicographic-by-name) order.
type typeEntry struct {
	className string
	fields    []fieldEntry
}

// Reflect is a Provider backed by Go's reflect package. Struct fields become
// the record's fields, ordered lexicographically by name. Unexported fields
// are always excluded: Go reflection cannot set them from outside the
// declaring package, so they fall under the "cannot round-trip" exclusion.
// A field tagged `recwire:"-"` is excluded as transient. An optional
// FieldFilter excludes further fields by evaluating a user expression.
//
// Computed type shapes are cached per reflect.Type (mirroring dynamic-ssz's
// TypeCache: reflection is the expensive part, and schemas are immutable
// once computed for a given Go type definition).
type Reflect struct {
	mu      sync.RWMutex
	types   map[reflect.Type]*typeEntry
	byName  map[string]reflect.Type
	filter  *FieldFilter
}

// NewReflect creates a Provider with no field filter configured.
func NewReflect() *Reflect {
	return &Reflect{
		types:  make(map[reflect.Type]*typeEntry),
		byName: make(map[string]reflect.Type),
	}
}

// WithFieldFilter installs a FieldFilter and returns the same Reflect for
// chaining.
func (rp *Reflect) WithFieldFilter(f *FieldFilter) *Reflect {
	rp.filter = f
	return rp
}

func deref(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

func (rp *Reflect) entry(t reflect.Type) (*typeEntry, error) {
	t = deref(t)

	rp.mu.RLock()
	e, ok := rp.types[t]
	rp.mu.RUnlock()
	if ok {
		return e, nil
	}

	rp.mu.Lock()
	defer rp.mu.Unlock()
	if e, ok := rp.types[t]; ok {
		return e, nil
	}

	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %v is not a struct", rwerr.ErrUnsupportedType, t)
	}

	var fields []fieldEntry
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" {
			continue // unexported: cannot be Set from outside the package
		}
		if tag, ok := sf.Tag.Lookup("recwire"); ok && tag == "-" {
			continue
		}
		typeName, err := CanonicalTypeName(sf.Type)
		if err != nil {
			return nil, err
		}
		if rp.filter != nil && !rp.filter.Allow(sf.Name, typeName, string(sf.Tag)) {
			continue
		}
		fields = append(fields, fieldEntry{name: sf.Name, typeName: typeName, index: i})

		// Register nested record field types so a later Resolve(class_name)
		// for a nested type, needed when decoding the recursively embedded
		// record, can find them.
		nested := deref(sf.Type)
		if nested.Kind() == reflect.Struct && !isWellKnown(nested) {
			rp.byName[ClassName(nested)] = nested
		}
	}

	sort.Slice(fields, func(i, j int) bool { return fields[i].name < fields[j].name })

	e = &typeEntry{className: ClassName(t), fields: fields}
	rp.types[t] = e
	rp.byName[e.className] = t
	return e, nil
}

func isWellKnown(t reflect.Type) bool {
	return t == timeType || t == decimalType
}

// Describe implements Provider.
func (rp *Reflect) Describe(t reflect.Type) (schema.Schema, error) {
	e, err := rp.entry(t)
	if err != nil {
		return schema.Schema{}, err
	}
	fields := make([]schema.FieldInfo, len(e.fields))
	for i, f := range e.fields {
		fields[i] = schema.FieldInfo{Name: f.name, TypeName: f.typeName}
	}
	return schema.Schema{ClassName: e.className, Fields: fields}, nil
}

// Instantiate implements Provider: it allocates a new zero-valued record of
// t (or t's pointee, if t is a pointer type) and returns it as a pointer,
// ready for Set calls.
func (rp *Reflect) Instantiate(t reflect.Type) (any, error) {
	t = deref(t)
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %v has no default constructor", rwerr.ErrNoDefaultConstructor, t)
	}
	return reflect.New(t).Interface(), nil
}

func valueOf(value any) (reflect.Value, error) {
	v := reflect.ValueOf(value)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return reflect.Value{}, fmt.Errorf("%w: value must be a non-nil pointer", rwerr.ErrReflectionAccess)
	}
	return v.Elem(), nil
}

// Get implements Provider.
func (rp *Reflect) Get(value any, fieldName string) (any, error) {
	v, err := valueOf(value)
	if err != nil {
		return nil, err
	}
	e, err := rp.entry(v.Type())
	if err != nil {
		return nil, err
	}
	for _, f := range e.fields {
		if f.name == fieldName {
			return v.Field(f.index).Interface(), nil
		}
	}
	return nil, fmt.Errorf("%w: field %q not found on %v", rwerr.ErrReflectionAccess, fieldName, v.Type())
}

// Set implements Provider. It returns false (never an error) when the
// current type has no field named fieldName; that is the evolution-skip signal.
func (rp *Reflect) Set(value any, fieldName string, fv any) bool {
	v, err := valueOf(value)
	if err != nil {
		return false
	}
	e, err := rp.entry(v.Type())
	if err != nil {
		return false
	}
	for _, f := range e.fields {
		if f.name == fieldName {
			target := v.Field(f.index)
			rv := reflect.ValueOf(fv)
			if !rv.IsValid() {
				target.Set(reflect.Zero(target.Type()))
				return true
			}
			if rv.Type().AssignableTo(target.Type()) {
				target.Set(rv)
				return true
			}
			return false
		}
	}
	return false
}

// TypeName implements Provider.
func (rp *Reflect) TypeName(t reflect.Type) (string, error) {
	if t.Kind() == reflect.Struct || (t.Kind() == reflect.Ptr && t.Elem().Kind() == reflect.Struct) {
		if _, err := rp.entry(t); err != nil {
			return "", err
		}
	}
	return CanonicalTypeName(t)
}

// Resolve implements Provider: it looks up a class name previously observed
// via Describe/Get/Set/TypeName.
func (rp *Reflect) Resolve(name string) (reflect.Type, error) {
	rp.mu.RLock()
	defer rp.mu.RUnlock()
	t, ok := rp.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", rwerr.ErrUnknownClass, name)
	}
	return t, nil
}
