package mldsapoly

import "clwe/internal/mldsafield"

const (
	gamma2QMinus1Div32 = (mldsafield.Q - 1) / 32 // ML-DSA-65, ML-DSA-87
	gamma2QMinus1Div88 = (mldsafield.Q - 1) / 88 // ML-DSA-44
)

// Gamma2QMinus1Div32 and Gamma2QMinus1Div88 are exported so the
// mldsa package's Params tables can reference the exact constants
// used inside HighBits/Decompose without duplicating the derivation.
const (
	Gamma2QMinus1Div32 = gamma2QMinus1Div32
	Gamma2QMinus1Div88 = gamma2QMinus1Div88
)

// Power2Round decomposes r into (r1, r0) such that r = r1*2^d + r0
// mod Q, with r0 held in centered form. Implements FIPS 204
// Algorithm 35, ported from KarpelesLab-mldsa's power2Round: the
// teacher's own Dilithium variant skips this decomposition entirely
// and packs t in full, which is the gap this function and its
// callers in mldsa restore.
func Power2Round(r uint32) (r1, r0 uint32) {
	const d = mldsafield.D
	r1 = r >> d
	r0 = r - r1<<d
	const half = 1 << (d - 1)
	if r0 > half {
		r0 = mldsafield.Sub(r0, 1<<d)
		r1++
	}
	return r1, r0
}

// HighBits extracts ⌈r/(2·gamma2)⌋ mod m for the two standardized
// gamma2 values, using the same fast integer-arithmetic shortcuts as
// the reference implementation instead of a literal division loop.
// Implements FIPS 204 Algorithm 37.
func HighBits(r uint32, gamma2 uint32) uint32 {
	r1 := int32((r + 127) >> 7)
	if gamma2 == gamma2QMinus1Div32 {
		r1 = (r1*1025 + (1 << 21)) >> 22
		return uint32(r1) & 15
	}
	r1 = (r1*11275 + (1 << 23)) >> 24
	r1 ^= ((43 - r1) >> 31) & r1
	return uint32(r1)
}

// Decompose splits r into (r1, r0) where r = r1*2*gamma2 + r0 and r0
// is centered. Implements FIPS 204 Algorithm 36.
func Decompose(r uint32, gamma2 uint32) (r1 uint32, r0 int32) {
	r1 = HighBits(r, gamma2)
	r0 = int32(r) - int32(r1)*int32(gamma2)*2
	r0 -= ((int32(mldsafield.QMinus1Div2) - r0) >> 31) & mldsafield.Q
	return r1, r0
}

// MakeHint returns 1 if adding z to r changes its HighBits, 0
// otherwise. Implements FIPS 204 Algorithm 39.
func MakeHint(z, r uint32, gamma2 uint32) uint32 {
	r0 := mldsafield.Add(r, z)
	if HighBits(r0, gamma2) != HighBits(r, gamma2) {
		return 1
	}
	return 0
}

// UseHint recovers the corrected HighBits value of r given a hint
// bit. Implements FIPS 204 Algorithm 40.
func UseHint(hint, r uint32, gamma2 uint32) uint32 {
	r1, r0 := Decompose(r, gamma2)
	if hint == 0 {
		return r1
	}
	if gamma2 == gamma2QMinus1Div32 {
		if r0 > 0 {
			return (r1 + 1) & 15
		}
		return (r1 - 1) & 15
	}
	if r0 > 0 {
		if r1 == 43 {
			return 0
		}
		return r1 + 1
	}
	if r1 == 0 {
		return 43
	}
	return r1 - 1
}
