// Copyright (c) 2025 recwire authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the recwire library.

package recwire

import "github.com/kolbe/recwire/descriptor"

// Option configures a Serializer at construction time.
type Option func(*Options)

// Options holds a Serializer's configurable behavior.
type Options struct {
	Provider        descriptor.Provider
	LogCb           func(format string, args ...any)
	OnFieldMismatch func(className, fieldName, storedType, currentType string)
}

// WithProvider overrides the default reflection-based type descriptor
// provider, e.g. to install a FieldFilter via descriptor.NewReflect().WithFieldFilter.
func WithProvider(p descriptor.Provider) Option {
	return func(o *Options) {
		o.Provider = p
	}
}

// WithLogCb installs a logging callback, invoked for diagnostic events such
// as a field being dropped during an evolution-tolerant read. The default
// is silent (nil).
func WithLogCb(logCb func(format string, args ...any)) Option {
	return func(o *Options) {
		o.LogCb = logCb
	}
}

// WithOnFieldMismatch installs an observational callback invoked whenever
// Deserialize encounters a stored field that does not match the current
// type by name and type_name (including fields the current type simply
// doesn't have). It never affects the decode outcome; the field is always
// silently discarded regardless of whether a callback is installed.
func WithOnFieldMismatch(cb func(className, fieldName, storedType, currentType string)) Option {
	return func(o *Options) {
		o.OnFieldMismatch = cb
	}
}

func defaultOptions() *Options {
	return &Options{}
}

func (o *Options) logf(format string, args ...any) {
	if o.LogCb != nil {
		o.LogCb(format, args...)
	}
}

func (o *Options) mismatch(className, fieldName, storedType, currentType string) {
	if o.OnFieldMismatch != nil {
		o.OnFieldMismatch(className, fieldName, storedType, currentType)
	}
}
