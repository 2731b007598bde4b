// Copyright (c) 2025 recwire authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the recwire library.

package codec

import "github.com/kolbe/recwire/bitio"

func encodeString(w *bitio.Writer, value any) error {
	v, ok := value.(string)
	if !ok {
		return unsupported("string")
	}
	w.WriteUTF(v)
	return nil
}

func decodeString(r *bitio.Reader) (any, error) {
	return r.ReadUTF()
}
