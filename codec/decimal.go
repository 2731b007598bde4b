// Copyright (c) 2025 recwire authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the recwire library.

package codec

import (
	"math/big"

	"github.com/kolbe/recwire/bitio"
	"github.com/kolbe/recwire/descriptor"
	"github.com/kolbe/recwire/rwerr"
)

// encodeDecimal writes an arbitrary-precision decimal: the unscaled integer
// as a two's-complement big-endian byte[] (object-encoded: dynamic_number
// length then bytes), followed by the scale as an i32.
func encodeDecimal(w *bitio.Writer, value any) error {
	d, ok := value.(descriptor.Decimal)
	if !ok {
		return unsupported("decimal")
	}
	writeByteSlice(w, twosComplementBytes(d.Unscaled))
	return encodePrimitive(w, "i32", d.Scale)
}

func decodeDecimal(r *bitio.Reader) (any, error) {
	b, err := readByteSlice(r)
	if err != nil {
		return nil, err
	}
	scaleAny, err := decodePrimitive(r, "i32")
	if err != nil {
		return nil, err
	}
	return descriptor.Decimal{
		Unscaled: bigIntFromTwosComplement(b),
		Scale:    scaleAny.(int32),
	}, nil
}

// twosComplementBytes renders x as a minimal big-endian two's-complement
// byte slice (at least one byte, even for zero).
func twosComplementBytes(x *big.Int) []byte {
	if x == nil {
		x = big.NewInt(0)
	}
	if x.Sign() >= 0 {
		b := x.Bytes()
		if len(b) == 0 {
			return []byte{0}
		}
		if b[0]&0x80 != 0 {
			return append([]byte{0}, b...)
		}
		return b
	}

	// Negative: two's complement of the magnitude at the smallest byte
	// width that keeps the sign bit set.
	mag := new(big.Int).Neg(x)
	nBytes := new(big.Int).Sub(mag, big.NewInt(1)).BitLen()/8 + 1
	if nBytes == 0 {
		nBytes = 1
	}
	mod := new(big.Int).Lsh(big.NewInt(1), uint(nBytes*8))
	twos := new(big.Int).Sub(mod, mag)
	b := twos.Bytes()
	out := make([]byte, nBytes)
	copy(out[nBytes-len(b):], b)
	return out
}

// bigIntFromTwosComplement parses a big-endian two's-complement byte slice.
func bigIntFromTwosComplement(b []byte) *big.Int {
	if len(b) == 0 {
		return big.NewInt(0)
	}
	v := new(big.Int).SetBytes(b)
	if b[0]&0x80 != 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(len(b)*8))
		v.Sub(v, mod)
	}
	return v
}

func writeByteSlice(w *bitio.Writer, b []byte) {
	w.WriteDynamicNumber(int64(len(b)))
	w.WriteBytes(b)
}

func readByteSlice(r *bitio.Reader) ([]byte, error) {
	n, err := r.ReadDynamicNumber()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, rwerr.ErrCorruptStream
	}
	return r.ReadBytes(int(n))
}
