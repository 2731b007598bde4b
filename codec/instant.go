// Copyright (c) 2025 recwire authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the recwire library.

package codec

import (
	"time"

	"github.com/kolbe/recwire/bitio"
)

// encodeInstant writes a millisecond-precision timestamp as an aligned i64
// of milliseconds since the Unix epoch.
func encodeInstant(w *bitio.Writer, value any) error {
	v, ok := value.(time.Time)
	if !ok {
		return unsupported("instant")
	}
	w.WriteUint64(uint64(v.UnixMilli()))
	return nil
}

func decodeInstant(r *bitio.Reader) (any, error) {
	ms, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	return time.UnixMilli(int64(ms)).UTC(), nil
}
