// Package mlkemntt implements the Number-Theoretic Transform over
// Z_Q[x]/<x^256+1>, Q = 3329, ported from
// cloudflare-cloudflared__ntt.go's nttGeneric/invNTTGeneric/Zetas
// table. Q=3329 has no primitive 512th root of unity, only a 256th,
// so — unlike the signature scheme's ring — this transform splits the
// ring into 128 irreducible degree-two factors rather than 256
// degree-one ones; pointwise multiplication of two NTT-domain
// polynomials is therefore a complex-style product over each pair,
// not a plain elementwise product (see MulHat).
//
// This port drops CIRCL's Tangle/Detangle step: that reordering
// exists only to make CIRCL's AVX2 Pack/Unpack path SIMD-friendly,
// and this module ships no SIMD backend for either scheme to justify
// carrying it (neither scheme calls cpucap's Probe, and the signature
// scheme's NTT is scalar-only in the same way). Coefficients here stay in
// the standard bit-reversed NTT-domain order the algorithm computes
// directly.
package mlkemntt

import "clwe/internal/mlkemfield"

const n = 256

// Zetas lists zeta^brv(i) * R mod Q for i = 0..127, in Montgomery
// form, matching FIPS 203's table.
var Zetas = [128]int16{
	2285, 2571, 2970, 1812, 1493, 1422, 287, 202, 3158, 622, 1577, 182,
	962, 2127, 1855, 1468, 573, 2004, 264, 383, 2500, 1458, 1727, 3199,
	2648, 1017, 732, 608, 1787, 411, 3124, 1758, 1223, 652, 2777, 1015,
	2036, 1491, 3047, 1785, 516, 3321, 3009, 2663, 1711, 2167, 126,
	1469, 2476, 3239, 3058, 830, 107, 1908, 3082, 2378, 2931, 961, 1821,
	2604, 448, 2264, 677, 2054, 2226, 430, 555, 843, 2078, 871, 1550,
	105, 422, 587, 177, 3094, 3038, 2869, 1574, 1653, 3083, 778, 1159,
	3182, 2552, 1483, 2727, 1119, 1739, 644, 2457, 349, 418, 329, 3173,
	3254, 817, 1097, 603, 610, 1322, 2044, 1864, 384, 2114, 3193, 1218,
	1994, 2455, 220, 2142, 1670, 2144, 1799, 2051, 794, 1819, 2475,
	2459, 478, 3221, 3021, 996, 991, 958, 1869, 1522, 1628,
}

// invNTTReductions schedules lazy Barrett reductions during InvNTT
// so no int16 butterfly overflows, ported verbatim.
var invNTTReductions = [...]int{
	-1,
	-1,
	16, 17, 48, 49, 80, 81, 112, 113, 144, 145, 176, 177, 208, 209, 240,
	241, -1,
	0, 1, 32, 33, 34, 35, 64, 65, 96, 97, 98, 99, 128, 129, 160, 161, 162, 163,
	192, 193, 224, 225, 226, 227, -1,
	2, 3, 66, 67, 68, 69, 70, 71, 130, 131, 194, 195, 196, 197, 198,
	199, -1,
	4, 5, 6, 7, 132, 133, 134, 135, 136, 137, 138, 139, 140, 141, 142,
	143, -1,
	-1,
}

func montReduce(a int32) int16 {
	return mlkemfield.MulMont(a, 1)
}

// NTT computes the forward transform of p in place. Assumes
// coefficients bounded in absolute value by Q; result is bounded by
// 7Q. Implements FIPS 203 Algorithm 9.
func NTT(p *[n]int16) {
	k := 0
	for l := n / 2; l > 1; l >>= 1 {
		for offset := 0; offset < n-l; offset += 2 * l {
			k++
			zeta := int32(Zetas[k])
			for j := offset; j < offset+l; j++ {
				t := montReduce(zeta * int32(p[j+l]))
				p[j+l] = p[j] - t
				p[j] += t
			}
		}
	}
}

// InvNTT computes the inverse transform of p in place and multiplies
// by the Montgomery factor R. Implements FIPS 203 Algorithm 10.
func InvNTT(p *[n]int16) {
	k := 127
	r := -1
	for l := 2; l < n; l <<= 1 {
		for offset := 0; offset < n-l; offset += 2 * l {
			minZeta := int32(Zetas[k])
			k--
			for j := offset; j < offset+l; j++ {
				t := p[j+l] - p[j]
				p[j] += p[j+l]
				p[j+l] = montReduce(minZeta * int32(t))
			}
		}
		for {
			r++
			i := invNTTReductions[r]
			if i < 0 {
				break
			}
			p[i] = mlkemfield.BarrettReduce(p[i])
		}
	}
	for j := 0; j < n; j++ {
		// 1441 = 128^-1 * R^2 mod Q.
		p[j] = montReduce(1441 * int32(p[j]))
	}
}

// MulHat sets p to the pointwise product of NTT-domain polynomials a
// and b: each adjacent coefficient pair (a[i],a[i+1]) represents a
// degree-one polynomial in one of the ring's 128 irreducible
// quadratic factors, so the product is a genuine product of two
// linear polynomials modulo x^2-zeta, not a plain scalar multiply.
// Implements FIPS 203 Algorithm 11 (BaseCaseMultiply), applied across
// all 128 factors.
func MulHat(p, a, b *[n]int16) {
	k := 64
	for i := 0; i < n; i += 4 {
		zeta := int32(Zetas[k])
		k++

		p0 := montReduce(int32(a[i+1]) * int32(b[i+1]))
		p0 = montReduce(int32(p0) * zeta)
		p0 += montReduce(int32(a[i]) * int32(b[i]))

		p1 := montReduce(int32(a[i]) * int32(b[i+1]))
		p1 += montReduce(int32(a[i+1]) * int32(b[i]))

		p[i] = p0
		p[i+1] = p1

		p2 := montReduce(int32(a[i+3]) * int32(b[i+3]))
		p2 = -montReduce(int32(p2) * zeta)
		p2 += montReduce(int32(a[i+2]) * int32(b[i+2]))

		p3 := montReduce(int32(a[i+2]) * int32(b[i+3]))
		p3 += montReduce(int32(a[i+3]) * int32(b[i+2]))

		p[i+2] = p2
		p[i+3] = p3
	}
}

// BitReverse returns the 8-bit bit-reversal of x.
func BitReverse(x uint8) uint8 {
	x = (x&0xF0)>>4 | (x&0x0F)<<4
	x = (x&0xCC)>>2 | (x&0x33)<<2
	x = (x&0xAA)>>1 | (x&0x55)<<1
	return x
}

// BitReversePoly permutes p in place into bit-reversed coefficient
// index order, spec's bit_reverse(poly) operation. Coefficients here
// come out of NTT in the standard bit-reversed-by-construction order
// already (see the package doc on CIRCL's Tangle/Detangle being
// dropped); this is the explicit permutation for callers that need a
// different order than the one NTT/InvNTT produce directly.
func BitReversePoly(p *[n]int16) {
	for i := 0; i < n; i++ {
		j := int(BitReverse(uint8(i)))
		if j > i {
			p[i], p[j] = p[j], p[i]
		}
	}
}

// BatchMultiply pointwise-multiplies each (as[i], bs[i]) pair into
// results[i] via MulHat, semantically equivalent to looping Multiply.
// No SIMD backend exists to vectorise this, per the scalar-only
// decision recorded for both NTT packages.
func BatchMultiply(as, bs []*[n]int16, results []*[n]int16) {
	for i := range as {
		MulHat(results[i], as[i], bs[i])
	}
}

// Engine is the sealed NTT capability spec.md §4.3/§9 describes:
// forward, inverse, multiply and batch_multiply behind one backend
// chosen once at construction. Only the scalar backend is implemented,
// so Engine is a zero-size value with no state to select between.
type Engine struct{}

// Forward runs the in-place forward NTT.
func (Engine) Forward(p *[n]int16) { NTT(p) }

// Inverse runs the in-place inverse NTT.
func (Engine) Inverse(p *[n]int16) { InvNTT(p) }

// Multiply computes the pointwise product of two NTT-domain polynomials.
func (Engine) Multiply(p, a, b *[n]int16) { MulHat(p, a, b) }

// BatchMultiply pointwise-multiplies a slice of NTT-domain polynomial pairs.
func (Engine) BatchMultiply(as, bs []*[n]int16, results []*[n]int16) {
	BatchMultiply(as, bs, results)
}

// BitReverse permutes p in place into bit-reversed coefficient order.
func (Engine) BitReverse(p *[n]int16) { BitReversePoly(p) }
