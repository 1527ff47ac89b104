// Package mldsa implements the module-lattice signature scheme (FIPS
// 204 ML-DSA) at three security levels, generalized from
// KarpelesLab-mldsa's per-level Go files into one Signer type driven
// by a runtime Params table, the way MingLLuo-OW-ChCCA-KEM's
// pkg/params.go Parameters struct drives its KEM across levels.
//
// Basic usage:
//
//	signer := mldsa.NewSigner65()
//	pub, priv, err := signer.Keygen(rand.Reader)
//	sig, err := signer.Sign(rand.Reader, priv, message, nil)
//	ok := signer.Verify(pub, message, sig, nil)
package mldsa

import "clwe/internal/mldsapoly"

const (
	n        = 256
	q        = 8380417
	d        = 13
	seedSize = 32
)

// Params holds the per-security-level constants FIPS 204 names: the
// module dimensions (k, l), the secret-coefficient bound eta, the
// challenge weight tau, the masking bound gamma1 (given as its bit
// width), the rounding bound gamma2, the hint-weight bound omega, and
// the commitment-hash length lambda. Everything downstream (sizes,
// rejection bounds) is derived from this table rather than hardcoded
// per level.
type Params struct {
	Name string

	K, L       int
	Eta        uint32
	Tau        int
	Gamma1Bits int
	Gamma2     uint32
	Omega      int
	Lambda     int

	Beta int32
}

func (p *Params) gamma1() uint32 {
	return 1 << p.Gamma1Bits
}

// PublicKeySize returns the encoded public key length in bytes.
func (p *Params) PublicKeySize() int {
	return seedSize + p.K*n*10/8
}

// PrivateKeySize returns the encoded private key length in bytes.
func (p *Params) PrivateKeySize() int {
	etaBits := 3
	if p.Eta == 4 {
		etaBits = 4
	}
	return seedSize + seedSize + 64 + (p.K+p.L)*n*etaBits/8 + p.K*n*13/8
}

// SignatureSize returns the encoded signature length in bytes.
func (p *Params) SignatureSize() int {
	zBits := 18
	if p.Gamma1Bits == 19 {
		zBits = 20
	}
	return p.Lambda/4 + p.L*n*zBits/8 + p.Omega + p.K
}

// NewParams44 returns the ML-DSA-44 (NIST level 2) parameter table.
func NewParams44() *Params {
	return &Params{
		Name: "ML-DSA-44",
		K: 4, L: 4,
		Eta: 2, Tau: 39,
		Gamma1Bits: 17, Gamma2: mldsapoly.Gamma2QMinus1Div88,
		Omega: 80, Lambda: 128,
		Beta: 2 * 39,
	}
}

// NewParams65 returns the ML-DSA-65 (NIST level 3) parameter table.
func NewParams65() *Params {
	return &Params{
		Name: "ML-DSA-65",
		K: 6, L: 5,
		Eta: 4, Tau: 49,
		Gamma1Bits: 19, Gamma2: mldsapoly.Gamma2QMinus1Div32,
		Omega: 55, Lambda: 192,
		Beta: 4 * 49,
	}
}

// NewParams87 returns the ML-DSA-87 (NIST level 5) parameter table.
func NewParams87() *Params {
	return &Params{
		Name: "ML-DSA-87",
		K: 8, L: 7,
		Eta: 2, Tau: 60,
		Gamma1Bits: 19, Gamma2: mldsapoly.Gamma2QMinus1Div32,
		Omega: 75, Lambda: 256,
		Beta: 2 * 60,
	}
}
