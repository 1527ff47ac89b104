// Package mlkemfield provides modular arithmetic over Z_Q for the
// KEM's ring Z_Q[x]/<x^256+1>, Q = 3329. Unlike mldsafield's eagerly
// reduced uint32 representatives, coefficients here follow
// cloudflare-cloudflared's int16 lazy-reduction convention: Add/Sub
// leave the result unreduced, and BarrettReduce/Normalize bring it
// back into range only where the algorithm actually needs it. The
// signature scheme and the KEM do not share a ring, so this package
// is entirely independent of mldsafield.
package mlkemfield

const (
	// Q is the prime modulus.
	Q = 3329

	// N is the polynomial degree.
	N = 256

	// QMinus1Div2 is (Q-1)/2.
	QMinus1Div2 = (Q - 1) / 2
)

// Add returns a+b without reducing.
func Add(a, b int16) int16 {
	return a + b
}

// Sub returns a-b without reducing.
func Sub(a, b int16) int16 {
	return a - b
}

// Mod reduces a possibly negative int32 into [0, Q).
func Mod(x int32) uint16 {
	x %= Q
	if x < 0 {
		x += Q
	}
	return uint16(x)
}

// --- Montgomery arithmetic ---
//
// Montgomery form: a_M = a * R mod Q, R = 2^16. These constants are
// the standard CRYSTALS-Kyber values for Q=3329 (cross-checked
// against cloudflare-cloudflared__ntt.go's Zetas[0] == R mod Q, since
// Zetas[0] = zeta^0 * R mod Q = R mod Q = 2285).
const (
	qInv   uint32 = 62209 // Q^-1 mod 2^16
	r2ModQ int32  = 1353  // R^2 mod Q
)

// MulMont computes the Montgomery reduction of a*b, following
// cloudflare-cloudflared's montReduce. If a and b are both in
// Montgomery form the result is too; if only one is, the result is
// plain.
func MulMont(a, b int32) int16 {
	t := int64(a) * int64(b)
	m := int32(int16(uint16(t) * uint16(qInv)))
	u := (t - int64(m)*Q) >> 16
	return int16(u)
}

// ToMont converts a to Montgomery form. a need not be reduced.
func ToMont(a int16) int16 {
	return MulMont(int32(a), r2ModQ)
}

// BarrettReduce reduces a coefficient bounded in absolute value by
// about 2^15*Q into {0, ..., Q}, following cloudflare-cloudflared's
// barrettReduce.
func BarrettReduce(a int16) int16 {
	const v = ((1 << 26) + Q/2) / Q
	t := int32(v) * int32(a)
	t >>= 26
	t *= Q
	return a - int16(t)
}

// CSubQ conditionally subtracts Q once, mapping {0,...,Q} to
// {0,...,Q-1}.
func CSubQ(a int16) int16 {
	a -= Q
	a += (a >> 15) & Q
	return a
}

// Normalize fully reduces a into {0, ..., Q-1}.
func Normalize(a int16) int16 {
	return CSubQ(BarrettReduce(a))
}
