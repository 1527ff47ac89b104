// Package mldsapoly provides polynomial and polynomial-vector
// operations for the signature scheme's ring, generalizing
// zkDilithium's poly package (Add/Sub/NTT/MulNTT/Norm/Decompose) to
// Q=8380417 and to slice-based vectors sized by a runtime k/l rather
// than zkDilithium's fixed [K]/[L] arrays, since this module drives
// three security levels from one implementation.
package mldsapoly

import (
	"clwe/internal/mldsafield"
	"clwe/internal/mldsantt"
)

const N = mldsafield.N

// Poly is a polynomial in Z_Q[x]/<x^256+1>, always held in plain
// (non-Montgomery) coefficient form except transiently inside NTT
// pointwise products, matching the reference this package is
// grounded on.
type Poly [N]uint32

// Vec is a vector of polynomials; its length is k or l depending on
// context, fixed by the caller's Params.
type Vec []Poly

// NewVec allocates a zeroed vector of n polynomials.
func NewVec(n int) Vec {
	return make(Vec, n)
}

// Add computes a+b componentwise into a fresh Poly.
func Add(a, b *Poly) Poly {
	var r Poly
	for i := 0; i < N; i++ {
		r[i] = mldsafield.Add(a[i], b[i])
	}
	return r
}

// Sub computes a-b componentwise into a fresh Poly.
func Sub(a, b *Poly) Poly {
	var r Poly
	for i := 0; i < N; i++ {
		r[i] = mldsafield.Sub(a[i], b[i])
	}
	return r
}

// AddVec computes a+b componentwise across a vector pair.
func AddVec(a, b Vec) Vec {
	r := NewVec(len(a))
	for i := range a {
		r[i] = Add(&a[i], &b[i])
	}
	return r
}

// SubVec computes a-b componentwise across a vector pair.
func SubVec(a, b Vec) Vec {
	r := NewVec(len(a))
	for i := range a {
		r[i] = Sub(&a[i], &b[i])
	}
	return r
}

// NTT computes the forward NTT of p in place.
func (p *Poly) NTT() {
	mldsantt.NTT((*[N]uint32)(p))
}

// InvNTT computes the inverse NTT of p in place.
func (p *Poly) InvNTT() {
	mldsantt.InvNTT((*[N]uint32)(p))
}

// NTTVec returns a fresh vector with every entry transformed to NTT domain.
func NTTVec(v Vec) Vec {
	r := make(Vec, len(v))
	for i := range v {
		r[i] = v[i]
		r[i].NTT()
	}
	return r
}

// InvNTTVec returns a fresh vector with every entry transformed out of NTT domain.
func InvNTTVec(v Vec) Vec {
	r := make(Vec, len(v))
	for i := range v {
		r[i] = v[i]
		r[i].InvNTT()
	}
	return r
}

// MulNTT computes the pointwise Montgomery product of two NTT-domain
// polynomials into a fresh Poly.
func MulNTT(a, b *Poly) Poly {
	var r Poly
	mldsantt.MulNTT((*[N]uint32)(a), (*[N]uint32)(b), (*[N]uint32)(&r))
	return r
}

// MatVecMulNTT computes A*v in NTT domain, where A is a k-by-l matrix
// of NTT-domain polynomials stored row-major (len(A) == k*l) and v is
// an l-vector of NTT-domain polynomials, returning the k-vector
// result still in NTT domain. This generalizes the accumulation
// pattern CIRCL's cpapke.go uses for its matrix-vector dot product
// (PolyDotHat: accumulate pointwise products row by row) to the
// signature scheme's pointwise-Montgomery-multiply primitive.
func MatVecMulNTT(A []Poly, k, l int, v Vec) Vec {
	out := NewVec(k)
	for i := 0; i < k; i++ {
		var acc Poly
		for j := 0; j < l; j++ {
			p := MulNTT(&A[i*l+j], &v[j])
			acc = Add(&acc, &p)
		}
		out[i] = acc
	}
	return out
}

// Norm returns the infinity norm of p, i.e. the maximum of
// min(c, Q-c) over all coefficients c, matching zkDilithium's
// poly.Norm but generalized to this field's Q.
func (p *Poly) Norm() uint32 {
	var n uint32
	for _, c := range p {
		var abs uint32
		if c > mldsafield.QMinus1Div2 {
			abs = mldsafield.Q - c
		} else {
			abs = c
		}
		if abs > n {
			n = abs
		}
	}
	return n
}

// NormVec returns the maximum Norm() across a vector.
func NormVec(v Vec) uint32 {
	var n uint32
	for i := range v {
		if m := v[i].Norm(); m > n {
			n = m
		}
	}
	return n
}

// NormVecSigned returns the maximum absolute value across a vector of
// signed int32 coefficient arrays, used for the r0/ct0 rejection
// bounds which are naturally signed rather than field elements.
func NormVecSigned(v [][N]int32) int32 {
	var max int32
	for i := range v {
		for _, c := range v[i] {
			if c < 0 {
				c = -c
			}
			if c > max {
				max = c
			}
		}
	}
	return max
}

// CountOnes counts the non-zero coefficients across a vector of hint
// polynomials.
func CountOnes(v []Poly) int {
	n := 0
	for i := range v {
		for _, c := range v[i] {
			if c != 0 {
				n++
			}
		}
	}
	return n
}

// Equal reports whether a and b are coefficient-wise identical.
func Equal(a, b *Poly) bool {
	return *a == *b
}

// Copy copies src into dst.
func Copy(dst, src *Poly) {
	*dst = *src
}
