// Package mlkemsample implements the KEM's matrix expansion and
// centered-binomial noise sampling, grounded on
// cloudflare-cloudflared__cpapke.go's aT.Derive call and
// cloudflare-cloudflared__vec.go's DeriveNoise, built on
// internal/keccak the same way internal/mldsasample is.
package mlkemsample

import (
	"clwe/internal/keccak"
	"clwe/internal/mlkempoly"
)

const n = mlkempoly.N

// shake128Reader is satisfied by both keccak.Shake128 and
// keccak.SeedClonableShake128, letting sampleNTTFrom drive either a
// one-shot absorb or a cloned-seed-state absorb through the same loop.
type shake128Reader interface {
	Read3() (b0, b1, b2 byte)
}

// sampleNTTFrom runs FIPS 203 Algorithm 7's rejection loop over an
// already-absorbed SHAKE-128 reader.
func sampleNTTFrom(x shake128Reader) mlkempoly.Poly {
	var p mlkempoly.Poly
	count := 0
	for count < n {
		b0, b1, b2 := x.Read3()
		d1 := uint16(b0) | uint16(b1&0xF)<<8
		d2 := uint16(b1>>4) | uint16(b2)<<4
		if d1 < 3329 {
			p[count] = int16(d1)
			count++
		}
		if count < n && d2 < 3329 {
			p[count] = int16(d2)
			count++
		}
	}
	return p
}

// SampleNTT samples a polynomial directly in NTT domain with
// coefficients uniform on [0,Q), via rejection sampling on SHAKE-128
// output absorbing rho followed by a two-byte (col,row) coordinate
// nonce matching FIPS 203's matrix convention A[row][col]. Implements
// FIPS 203 Algorithm 7 (SampleNTT).
func SampleNTT(rho []byte, col, row byte) mlkempoly.Poly {
	x := keccak.NewShake128(rho, []byte{col, row})
	return sampleNTTFrom(x)
}

// ExpandA samples the k-by-l matrix A row-major from seed rho,
// following the same (col,row) nonce ordering as SampleNTT: entry
// A[i*l+j] is sampled with nonce (j,i). Absorbs rho once and clones
// that state per entry rather than re-hashing rho k*l times.
func ExpandA(rho []byte, k, l int) []mlkempoly.Poly {
	a := make([]mlkempoly.Poly, k*l)
	x := keccak.NewSeedClonableShake128(rho)
	for i := 0; i < k; i++ {
		for j := 0; j < l; j++ {
			x.Absorb([]byte{byte(j), byte(i)})
			a[i*l+j] = sampleNTTFrom(x)
		}
	}
	return a
}

// samplePRFBytes squeezes outLen bytes of SHAKE-256 output absorbing
// seed followed by a one-byte nonce, the KEM's PRF per FIPS 203 §4.1.
func samplePRFBytes(seed []byte, nonce byte, outLen int) []byte {
	x := keccak.NewShake256(seed, []byte{nonce})
	out := make([]byte, outLen)
	x.Read(out)
	return out
}

// cbdFromBytes converts eta-width PRF output into a centered-binomial
// polynomial, shared by CBD's one-shot call and CBDVec's reused reader.
func cbdFromBytes(buf []byte, eta int) mlkempoly.Poly {
	var p mlkempoly.Poly
	switch eta {
	case 2:
		for i := 0; i < n/4; i++ {
			b := uint32(buf[i*2]) | uint32(buf[i*2+1])<<8
			b = (b & 0x55555555) + ((b >> 1) & 0x55555555)
			for j := 0; j < 4; j++ {
				x := int16((b >> (4 * j)) & 0x3)
				y := int16((b >> (4*j + 2)) & 0x3)
				p[4*i+j] = x - y
			}
		}
	case 3:
		for i := 0; i < n/4; i++ {
			b := uint32(buf[i*3]) | uint32(buf[i*3+1])<<8 | uint32(buf[i*3+2])<<16
			b = (b & 0x00249249) + ((b >> 1) & 0x00249249) + ((b >> 2) & 0x00249249)
			for j := 0; j < 4; j++ {
				x := int16((b >> (6 * j)) & 0x7)
				y := int16((b >> (6*j + 3)) & 0x7)
				p[4*i+j] = x - y
			}
		}
	}
	return p
}

// CBD samples a polynomial from the centered binomial distribution
// with parameter eta, following cloudflare-cloudflared's DeriveNoise.
// Implements FIPS 203 Algorithm 8 (SamplePolyCBD).
func CBD(seed []byte, nonce byte, eta int) mlkempoly.Poly {
	return cbdFromBytes(samplePRFBytes(seed, nonce, 64*eta), eta)
}

// CBDVec samples l polynomials via CBD with consecutive nonces
// starting at nonceBase, the vector-noise convention used by both
// keygen (secret, error) and encryption (r, e1). Reuses one SHAKE-256
// reader's underlying state across nonces via Reset rather than
// allocating a fresh sponge per coordinate.
func CBDVec(seed []byte, nonceBase byte, eta, l int) mlkempoly.Vec {
	v := mlkempoly.NewVec(l)
	outLen := 64 * eta
	buf := make([]byte, outLen)
	x := keccak.NewShake256(seed, []byte{nonceBase})
	x.Read(buf)
	v[0] = cbdFromBytes(buf, eta)
	for i := 1; i < l; i++ {
		x.Reset(seed, []byte{nonceBase + byte(i)})
		x.Read(buf)
		v[i] = cbdFromBytes(buf, eta)
	}
	return v
}
