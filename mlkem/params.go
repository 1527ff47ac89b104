// Package mlkem implements the module-lattice key encapsulation
// mechanism (FIPS 203 ML-KEM) at three security levels, generalized
// from cloudflare-cloudflared's per-level Kyber files into one KEM
// type driven by a runtime Params table, the same way mldsa.Params
// drives the signature scheme across its levels.
//
// Basic usage:
//
//	kem := mlkem.NewKEM768Scheme()
//	pub, priv, err := kem.Keygen(rand.Reader)
//	ct, ss, err := kem.Encapsulate(rand.Reader, pub)
//	ss2, err := kem.Decapsulate(priv, ct)
package mlkem

const (
	n        = 256
	q        = 3329
	seedSize = 32
)

// Params holds the per-security-level constants FIPS 203 names: the
// module dimension k, the two secret/error bounds eta1 and eta2, and
// the ciphertext compression widths du (for u) and dv (for v).
type Params struct {
	Name string

	K    int
	Eta1 int
	Eta2 int
	Du   int
	Dv   int
}

// PublicKeySize returns the encoded public key length in bytes
// (packed t at 12 bits/coefficient plus the 32-byte rho seed).
func (p *Params) PublicKeySize() int {
	return p.K*n*12/8 + seedSize
}

// PrivateKeySize returns the encoded private key length in bytes:
// the CPA-PKE secret s (12 bits/coefficient), the public key, H(pk)
// and the 32-byte implicit-rejection seed z.
func (p *Params) PrivateKeySize() int {
	return p.K*n*12/8 + p.PublicKeySize() + 32 + seedSize
}

// CiphertextSize returns the encoded ciphertext length in bytes: u
// compressed at du bits/coefficient across k polynomials, plus v
// compressed at dv bits/coefficient.
func (p *Params) CiphertextSize() int {
	return p.K*n*p.Du/8 + n*p.Dv/8
}

// SharedSecretSize is the fixed 32-byte shared secret length, the
// same for every parameter level.
const SharedSecretSize = 32

// NewKEM512 returns the ML-KEM-512 (NIST level 1) parameter table.
func NewKEM512() *Params {
	return &Params{Name: "ML-KEM-512", K: 2, Eta1: 3, Eta2: 2, Du: 10, Dv: 4}
}

// NewKEM768 returns the ML-KEM-768 (NIST level 3) parameter table.
func NewKEM768() *Params {
	return &Params{Name: "ML-KEM-768", K: 3, Eta1: 2, Eta2: 2, Du: 10, Dv: 4}
}

// NewKEM1024 returns the ML-KEM-1024 (NIST level 5) parameter table.
func NewKEM1024() *Params {
	return &Params{Name: "ML-KEM-1024", K: 4, Eta1: 2, Eta2: 2, Du: 11, Dv: 5}
}
