// Package mlkempoly provides polynomial and polynomial-vector
// operations for the KEM's ring, grounded on
// cloudflare-cloudflared__poly.go/vec.go, generalized from its fixed
// [K]Poly vectors to runtime-sized slices the way mldsapoly
// generalizes the signature scheme's.
package mlkempoly

import (
	"clwe/internal/mlkemfield"
	"clwe/internal/mlkemntt"
)

const N = mlkemfield.N

// Poly is a polynomial in Z_Q[x]/<x^256+1>, coefficients not always
// fully reduced; see Normalize.
type Poly [N]int16

// Vec is a vector of polynomials, length k fixed by the caller's Params.
type Vec []Poly

// NewVec allocates a zeroed vector of n polynomials.
func NewVec(n int) Vec {
	return make(Vec, n)
}

// Add sets p to a+b, unreduced.
func (p *Poly) Add(a, b *Poly) {
	for i := 0; i < N; i++ {
		p[i] = a[i] + b[i]
	}
}

// Sub sets p to a-b, unreduced.
func (p *Poly) Sub(a, b *Poly) {
	for i := 0; i < N; i++ {
		p[i] = a[i] - b[i]
	}
}

// BarrettReduce reduces every coefficient into {0, ..., Q}.
func (p *Poly) BarrettReduce() {
	for i := 0; i < N; i++ {
		p[i] = mlkemfield.BarrettReduce(p[i])
	}
}

// Normalize fully reduces every coefficient into {0, ..., Q-1}.
func (p *Poly) Normalize() {
	for i := 0; i < N; i++ {
		p[i] = mlkemfield.Normalize(p[i])
	}
}

// NTT computes the forward NTT of p in place.
func (p *Poly) NTT() {
	mlkemntt.NTT((*[N]int16)(p))
}

// InvNTT computes the inverse NTT of p in place.
func (p *Poly) InvNTT() {
	mlkemntt.InvNTT((*[N]int16)(p))
}

// MulHat sets p to the pointwise NTT-domain product of a and b.
func (p *Poly) MulHat(a, b *Poly) {
	mlkemntt.MulHat((*[N]int16)(p), (*[N]int16)(a), (*[N]int16)(b))
}

// ToMont multiplies p in place by the Montgomery factor R.
func (p *Poly) ToMont() {
	for i := 0; i < N; i++ {
		p[i] = mlkemfield.ToMont(p[i])
	}
}

// AddVec sets v to a+b componentwise.
func (v Vec) AddVec(a, b Vec) {
	for i := range v {
		v[i].Add(&a[i], &b[i])
	}
}

// NTTVec applies NTT to every entry of v in place.
func (v Vec) NTTVec() {
	for i := range v {
		v[i].NTT()
	}
}

// InvNTTVec applies InvNTT to every entry of v in place.
func (v Vec) InvNTTVec() {
	for i := range v {
		v[i].InvNTT()
	}
}

// BarrettReduceVec Barrett-reduces every entry of v in place.
func (v Vec) BarrettReduceVec() {
	for i := range v {
		v[i].BarrettReduce()
	}
}

// NormalizeVec fully reduces every entry of v in place.
func (v Vec) NormalizeVec() {
	for i := range v {
		v[i].Normalize()
	}
}

// DotHat sets p to the NTT-domain inner product of a and b,
// following cloudflare-cloudflared's PolyDotHat: accumulate the
// pointwise product of each pair and sum.
func DotHat(p *Poly, a, b Vec) {
	var acc, t Poly
	for i := range a {
		t.MulHat(&a[i], &b[i])
		acc.Add(&t, &acc)
	}
	*p = acc
}

// MatVecMulHat computes A*v in NTT domain, where A is a k-by-l matrix
// stored row-major (len(A) == k*l).
func MatVecMulHat(A []Poly, k, l int, v Vec) Vec {
	out := NewVec(k)
	for i := 0; i < k; i++ {
		DotHat(&out[i], A[i*l:i*l+l], v)
	}
	return out
}

// MatVecMulHatTranspose computes A^T*v in NTT domain for the same
// row-major k-by-l matrix MatVecMulHat takes, without materializing
// the transpose: out[j] is the dot product of A's j-th column with v.
// K-PKE.Encrypt needs this to fold A^T*r against the same matrix
// K-PKE.KeyGen expanded as A for t=A*s+e.
func MatVecMulHatTranspose(A []Poly, k, l int, v Vec) Vec {
	out := NewVec(l)
	var t Poly
	for j := 0; j < l; j++ {
		var acc Poly
		for i := 0; i < k; i++ {
			t.MulHat(&A[i*l+j], &v[i])
			acc.Add(&t, &acc)
		}
		out[j] = acc
	}
	return out
}
