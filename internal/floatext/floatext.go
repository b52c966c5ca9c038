// Package floatext converts between the 16-byte extended-precision
// float stored in resource files (big-endian IEEE binary128) and Go's
// float64. The in-memory value is a float64: the toolkit edits and
// re-emits values at double precision, and fraction bits below that
// are preserved only through untouched round trips of the raw bytes
// at a higher layer.
package floatext

import (
	"encoding/binary"
	"math"
	"math/bits"
	"strconv"
)

const (
	expBias  = 16383
	expMask  = 0x7FFF
	fracHiBits = 48 // fraction bits carried in the high word
)

// Decode converts a big-endian binary128 value to float64. Values too
// small for float64 flush to zero, too large to the signed infinity.
func Decode(b [16]byte) float64 {
	hi := binary.BigEndian.Uint64(b[0:8])
	lo := binary.BigEndian.Uint64(b[8:16])
	neg := hi&(1<<63) != 0
	exp := int((hi >> fracHiBits) & expMask)
	fracHi := hi & ((1 << fracHiBits) - 1)

	switch {
	case exp == expMask:
		if fracHi == 0 && lo == 0 {
			if neg {
				return math.Inf(-1)
			}
			return math.Inf(1)
		}
		return math.NaN()
	case exp == 0 && fracHi == 0 && lo == 0:
		if neg {
			return math.Copysign(0, -1)
		}
		return 0
	}

	// Top 64 fraction bits; anything below is beyond float64 precision.
	mant := fracHi<<(64-fracHiBits) | lo>>fracHiBits
	frac := math.Ldexp(float64(mant), -64)
	var v float64
	if exp == 0 {
		v = math.Ldexp(frac, 1-expBias)
	} else {
		v = math.Ldexp(1+frac, exp-expBias)
	}
	if neg {
		v = -v
	}
	return v
}

// Encode converts a float64 to its big-endian binary128 encoding.
// Every float64, including subnormals, is exactly representable.
func Encode(v float64) [16]byte {
	var out [16]byte
	b := math.Float64bits(v)
	sign := b >> 63
	exp64 := int((b >> 52) & 0x7FF)
	frac := b & ((1 << 52) - 1)

	var hi, lo uint64
	switch {
	case exp64 == 0x7FF && frac == 0:
		hi = sign<<63 | expMask<<fracHiBits
	case exp64 == 0x7FF:
		hi = sign<<63 | expMask<<fracHiBits | 1<<(fracHiBits-1)
	case exp64 == 0 && frac == 0:
		hi = sign << 63
	default:
		e := exp64 - 1023
		if exp64 == 0 {
			// Subnormal float64: normalize; binary128's exponent
			// range covers the result comfortably.
			top := 63 - bits.LeadingZeros64(frac)
			e = top - 52 - 1022
			frac = (frac << uint(52-top)) & ((1 << 52) - 1)
		}
		ef := uint64(e + expBias)
		hi = sign<<63 | ef<<fracHiBits | frac>>4
		lo = frac << 60
	}
	binary.BigEndian.PutUint64(out[0:8], hi)
	binary.BigEndian.PutUint64(out[8:16], lo)
	return out
}

// Format renders v with up to 71 significant digits, enough to round
// trip the extended format's full 113-bit mantissa through text.
func Format(v float64) string {
	return strconv.FormatFloat(v, 'g', 71, 64)
}

// Parse reads a value rendered by Format.
func Parse(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
