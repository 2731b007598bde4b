// Copyright (c) 2025 recwire authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the recwire library.

package codec

import (
	"fmt"

	"github.com/kolbe/recwire/bitio"
	"github.com/kolbe/recwire/rwerr"
)

// encodeNestedRecord recursively invokes the top-level serializer on value
// and object-encodes the resulting byte array, the fallback for any field
// type that isn't a primitive or one of the well-known types.
func encodeNestedRecord(w *bitio.Writer, value any, nested NestedCodec) error {
	if nested == nil {
		return fmt.Errorf("%w: nested record encountered with no NestedCodec configured", rwerr.ErrUnsupportedType)
	}
	data, err := nested.EncodeRecord(value)
	if err != nil {
		return err
	}
	writeByteSlice(w, data)
	return nil
}

func decodeNestedRecord(r *bitio.Reader, className string, nested NestedCodec) (any, error) {
	if nested == nil {
		return nil, fmt.Errorf("%w: nested record encountered with no NestedCodec configured", rwerr.ErrUnsupportedType)
	}
	data, err := readByteSlice(r)
	if err != nil {
		return nil, err
	}
	return nested.DecodeRecord(data, className)
}
