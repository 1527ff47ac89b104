// Package mldsasample implements the signature scheme's rejection
// samplers: the matrix expansion (RejNTTPoly), bounded-eta secret
// sampling (RejBoundedPoly), the Fiat-Shamir challenge polynomial
// (SampleInBall), and the masking-vector expansion (ExpandMask).
// Ported from KarpelesLab-mldsa's sample.go, generalized from its
// per-level fixed-eta functions to a runtime eta/gamma1Bits parameter,
// and built on internal/keccak rather than raw sha3 calls so both
// schemes' samplers share one SHAKE wrapper.
package mldsasample

import (
	"clwe/internal/keccak"
	"clwe/internal/mldsaencode"
	"clwe/internal/mldsafield"
	"clwe/internal/mldsapoly"
)

const n = mldsafield.N

// shake128Reader is satisfied by both keccak.Shake128 and
// keccak.SeedClonableShake128, letting rejNTTPolyFrom drive either a
// one-shot absorb or a cloned-seed-state absorb through the same loop.
type shake128Reader interface {
	Read3() (b0, b1, b2 byte)
}

// rejNTTPolyFrom runs FIPS 204 Algorithm 30's rejection loop over an
// already-absorbed SHAKE-128 reader.
func rejNTTPolyFrom(x shake128Reader) mldsapoly.Poly {
	var p mldsapoly.Poly
	count := 0
	for count < n {
		b0, b1, b2 := x.Read3()
		d := uint32(b0) | uint32(b1)<<8 | uint32(b2&0x7F)<<16
		if d < mldsafield.Q {
			p[count] = d
			count++
		}
	}
	return p
}

// RejNTTPoly samples a polynomial directly in NTT domain with
// coefficients uniform on [0,Q), via rejection sampling on SHAKE-128
// output absorbing seed followed by a two-byte (s,r) coordinate
// nonce, in that order. Implements FIPS 204 Algorithm 30.
func RejNTTPoly(rho []byte, s, r byte) mldsapoly.Poly {
	x := keccak.NewShake128(rho, []byte{s, r})
	return rejNTTPolyFrom(x)
}

// ExpandA samples the k-by-l matrix in NTT domain from rho, following
// the same (s,r) nonce ordering as RejNTTPoly: entry A[i*l+j] is
// sampled with nonce (j,i). Absorbs rho once and clones that state per
// entry rather than re-hashing rho k*l times, matching
// mlkemsample.ExpandA's use of the same clonable primitive.
func ExpandA(rho []byte, k, l int) []mldsapoly.Poly {
	a := make([]mldsapoly.Poly, k*l)
	x := keccak.NewSeedClonableShake128(rho)
	for i := 0; i < k; i++ {
		for j := 0; j < l; j++ {
			x.Absorb([]byte{byte(j), byte(i)})
			a[i*l+j] = rejNTTPolyFrom(x)
		}
	}
	return a
}

// RejBoundedPoly samples a polynomial with coefficients centered on
// [-eta,eta] via nibble rejection on SHAKE-256 output. Implements
// FIPS 204 Algorithm 31, generalized over eta in {2,4} rather than
// two separate functions.
func RejBoundedPoly(rhoPrime []byte, nonce uint16, eta uint32) mldsapoly.Poly {
	x := keccak.NewShake256(rhoPrime, []byte{byte(nonce), byte(nonce >> 8)})
	var p mldsapoly.Poly
	count := 0
	var buf [1]byte
	for count < n {
		x.Read(buf[:])
		lo := uint32(buf[0] & 0xF)
		hi := uint32(buf[0] >> 4)
		if eta == 2 {
			if lo < 15 {
				p[count] = mldsafield.Sub(2, lo%5)
				count++
			}
			if count < n && hi < 15 {
				p[count] = mldsafield.Sub(2, hi%5)
				count++
			}
		} else {
			if lo < 9 {
				p[count] = mldsafield.Sub(4, lo)
				count++
			}
			if count < n && hi < 9 {
				p[count] = mldsafield.Sub(4, hi)
				count++
			}
		}
	}
	return p
}

// SampleInBall derives the challenge polynomial c, with exactly tau
// nonzero coefficients each +/-1, from the commitment hash via an
// inside-out Fisher-Yates shuffle seeded by SHAKE-256 output, using
// the first 8 output bytes as a sign-bit stream. Implements FIPS 204
// Algorithm 29.
func SampleInBall(cTilde []byte, tau int) mldsapoly.Poly {
	x := keccak.NewShake256(cTilde)
	var signs [8]byte
	x.Read(signs[:])

	var p mldsapoly.Poly
	signIdx := 0
	getSign := func() uint32 {
		byteIdx := signIdx / 8
		bitIdx := uint(signIdx % 8)
		signIdx++
		return uint32((signs[byteIdx] >> bitIdx) & 1)
	}

	for i := n - tau; i < n; i++ {
		var jb [1]byte
		var j int
		for {
			x.Read(jb[:])
			j = int(jb[0])
			if j <= i {
				break
			}
		}
		p[i] = p[j]
		s := getSign()
		if s == 1 {
			p[j] = mldsafield.Q - 1
		} else {
			p[j] = 1
		}
	}
	return p
}

// expandMaskBufLen17 and expandMaskBufLen19 are the fixed squeeze
// lengths per coefficient group needed to unpack one polynomial's
// worth of 18-bit or 20-bit masked coefficients, matching the
// reference implementation's fixed-size [576]byte/[640]byte buffers.
const (
	expandMaskBufLen17 = n * 18 / 8
	expandMaskBufLen19 = n * 20 / 8
)

// ExpandMask derives the masking vector y from rhoPrime and the
// Fiat-Shamir-with-aborts counter kappa, one polynomial per vector
// coordinate, each with coefficients uniform on
// (-gamma1, gamma1]. Implements FIPS 204 Algorithm 34.
func ExpandMask(rhoPrime []byte, kappa uint16, l int, gamma1Bits int) (mldsapoly.Vec, error) {
	v := mldsapoly.NewVec(l)
	bufLen := expandMaskBufLen17
	if gamma1Bits == 19 {
		bufLen = expandMaskBufLen19
	}
	buf := make([]byte, bufLen)
	var x *keccak.Shake256
	for i := 0; i < l; i++ {
		nonce := kappa + uint16(i)
		nonceBytes := []byte{byte(nonce), byte(nonce >> 8)}
		if x == nil {
			x = keccak.NewShake256(rhoPrime, nonceBytes)
		} else {
			x.Reset(rhoPrime, nonceBytes)
		}
		x.Read(buf)
		var p mldsapoly.Poly
		var err error
		if gamma1Bits == 17 {
			p, err = mldsaencode.UnpackZ17(buf)
		} else {
			p, err = mldsaencode.UnpackZ19(buf)
		}
		if err != nil {
			return nil, err
		}
		v[i] = p
	}
	return v, nil
}
