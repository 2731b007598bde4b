// Copyright (c) 2025 recwire authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the recwire library.

// Package recwire provides a compact binary encoding for Go record types
// whose schema metadata lives in an external registry rather than inline in
// every payload. A payload is a leading compact schema id followed by the
// record's fields packed bit-for-bit in the schema's declared order; no
// field names, tags, or type descriptors travel with the bytes.
//
// Serialize and Deserialize are the two entry points. A Serializer holds a
// Registry (schema/compact-id resolution) and a descriptor.Provider (how Go
// struct fields are discovered and read/written); both are pluggable. There
// is no package-level default Serializer: callers construct one with New.
//
// Deserialize is evolution-tolerant: it decodes using the schema a payload
// was written with, then copies each decoded field into the caller's
// current Go type by matching (name, type_name); fields present in the
// stored schema but absent (or differently typed) in the current type are
// silently dropped, and fields present only in the current type keep their
// zero value.
package recwire
