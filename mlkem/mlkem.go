package mlkem

import (
	"crypto/subtle"
	"io"

	"clwe/clweerr"
	"clwe/internal/keccak"
	"clwe/internal/mlkemencode"
	"clwe/internal/mlkempoly"
	"clwe/internal/mlkemsample"
)

// PublicKey is an encapsulation key for one Params level.
type PublicKey struct {
	Params *Params
	Rho    []byte
	T      mlkempoly.Vec // in NTT domain
}

// PrivateKey is a decapsulation key for one Params level. Its layout
// follows FIPS 203's dk: the CPA-PKE secret s (NTT domain), the
// matching public key, a cached H(pk), and the 32-byte implicit
// rejection seed z used when a received ciphertext fails the
// re-encryption check.
type PrivateKey struct {
	Params *Params
	S      mlkempoly.Vec // in NTT domain
	Public *PublicKey
	HPK    []byte
	Z      []byte
}

// KEM performs keygen/encapsulate/decapsulate for one Params level.
type KEM struct {
	Params *Params
}

// NewKEM512Scheme returns a KEM for ML-KEM-512 (NIST level 1).
func NewKEM512Scheme() *KEM { return &KEM{Params: NewKEM512()} }

// NewKEM768Scheme returns a KEM for ML-KEM-768 (NIST level 3).
func NewKEM768Scheme() *KEM { return &KEM{Params: NewKEM768()} }

// NewKEM1024Scheme returns a KEM for ML-KEM-1024 (NIST level 5).
func NewKEM1024Scheme() *KEM { return &KEM{Params: NewKEM1024()} }

// --- public key encoding ---

// Bytes canonically encodes pk as t packed at 12 bits/coefficient
// followed by rho.
func (pk *PublicKey) Bytes() []byte {
	out := make([]byte, 0, pk.Params.PublicKeySize())
	for i := 0; i < pk.Params.K; i++ {
		out = append(out, mlkemencode.PackRaw(&pk.T[i])...)
	}
	out = append(out, pk.Rho...)
	return out
}

// ParsePublicKey decodes a public key encoded by Bytes.
func ParsePublicKey(p *Params, b []byte) (*PublicKey, error) {
	if len(b) != p.PublicKeySize() {
		return nil, clweerr.ErrMalformedEncoding
	}
	polyBytes := n * 12 / 8
	t := mlkempoly.NewVec(p.K)
	for i := 0; i < p.K; i++ {
		t[i] = mlkemencode.UnpackRaw(b[i*polyBytes : (i+1)*polyBytes])
	}
	rho := make([]byte, seedSize)
	copy(rho, b[p.K*polyBytes:])
	return &PublicKey{Params: p, Rho: rho, T: t}, nil
}

// --- CPA-PKE core, grounded on cloudflare-cloudflared__cpapke.go ---

// pkeKeygen derives the CPA-PKE keypair from a 32-byte seed, per FIPS
// 203 Algorithm 13 (K-PKE.KeyGen).
func pkeKeygen(p *Params, seed []byte) (rho []byte, sHat mlkempoly.Vec, tHat mlkempoly.Vec) {
	expanded := keccak.H(seed, 64)
	rho = expanded[:32]
	sigma := expanded[32:]

	a := mlkemsample.ExpandA(rho, p.K, p.K)
	sHat = mlkemsample.CBDVec(sigma, 0, p.Eta1, p.K)
	eHat := mlkemsample.CBDVec(sigma, byte(p.K), p.Eta1, p.K)
	clweerr.Zeroize(sigma)
	sHat.NTTVec()
	eHat.NTTVec()
	sHat.NormalizeVec()

	tHat = mlkempoly.MatVecMulHat(a, p.K, p.K, sHat)
	for i := range tHat {
		tHat[i].ToMont()
	}
	tHat.AddVec(tHat, eHat)
	tHat.NormalizeVec()
	return
}

// pkeEncrypt encrypts a 32-byte message under public material
// (rho, tHat), using coins for the encryption-side randomness, per
// FIPS 203 Algorithm 14 (K-PKE.Encrypt).
func pkeEncrypt(p *Params, rho []byte, tHat mlkempoly.Vec, msg, coins []byte) []byte {
	a := mlkemsample.ExpandA(rho, p.K, p.K)
	rVec := mlkemsample.CBDVec(coins, 0, p.Eta1, p.K)
	e1 := mlkemsample.CBDVec(coins, byte(p.K), p.Eta2, p.K)
	e2 := mlkemsample.CBD(coins, byte(2*p.K), p.Eta2)
	rVec.NTTVec()

	// u = A^T r + e1. A is the same matrix K-PKE.KeyGen expanded for
	// t = A*s+e; encryption needs its transpose, computed here without
	// regenerating A with swapped nonce bytes.
	u := mlkempoly.MatVecMulHatTranspose(a, p.K, p.K, rVec)
	u.InvNTTVec()
	u.AddVec(u, e1)
	u.NormalizeVec()

	var v mlkempoly.Poly
	mlkempoly.DotHat(&v, tHat, rVec)
	v.InvNTT()
	v.Add(&v, &e2)
	m := mlkemencode.PackMsg(msg)
	v.Add(&v, &m)
	v.Normalize()

	out := make([]byte, 0, p.CiphertextSize())
	for i := 0; i < p.K; i++ {
		out = append(out, mlkemencode.PackCompressed(&u[i], p.Du)...)
	}
	out = append(out, mlkemencode.PackCompressed(&v, p.Dv)...)
	return out
}

// pkeDecrypt recovers the 32-byte message from a ciphertext under
// secret sHat, per FIPS 203 Algorithm 15 (K-PKE.Decrypt).
func pkeDecrypt(p *Params, sHat mlkempoly.Vec, ct []byte) []byte {
	uBytes := n * p.Du / 8
	u := mlkempoly.NewVec(p.K)
	for i := 0; i < p.K; i++ {
		u[i] = mlkemencode.UnpackCompressed(ct[i*uBytes:(i+1)*uBytes], p.Du)
	}
	v := mlkemencode.UnpackCompressed(ct[p.K*uBytes:], p.Dv)

	u.NTTVec()
	var su mlkempoly.Poly
	mlkempoly.DotHat(&su, sHat, u)
	su.BarrettReduce()
	su.InvNTT()

	var m mlkempoly.Poly
	m.Sub(&v, &su)
	m.Normalize()
	return mlkemencode.UnpackMsg(&m)
}

// --- secret key encoding ---

// Bytes canonically encodes sk as pack(s) followed by the public key,
// H(pk), and z, following FIPS 203's dk layout.
func (sk *PrivateKey) Bytes() []byte {
	out := make([]byte, 0, sk.Params.PrivateKeySize())
	for i := range sk.S {
		out = append(out, mlkemencode.PackRaw(&sk.S[i])...)
	}
	out = append(out, sk.Public.Bytes()...)
	out = append(out, sk.HPK...)
	out = append(out, sk.Z...)
	return out
}

// ParsePrivateKey decodes a secret key encoded by Bytes.
func ParsePrivateKey(p *Params, b []byte) (*PrivateKey, error) {
	if len(b) != p.PrivateKeySize() {
		return nil, clweerr.ErrMalformedEncoding
	}
	polyBytes := n * 12 / 8
	s := mlkempoly.NewVec(p.K)
	off := 0
	for i := 0; i < p.K; i++ {
		s[i] = mlkemencode.UnpackRaw(b[off : off+polyBytes])
		off += polyBytes
	}
	pkLen := p.PublicKeySize()
	pub, err := ParsePublicKey(p, b[off:off+pkLen])
	if err != nil {
		return nil, err
	}
	off += pkLen
	hpk := make([]byte, 32)
	copy(hpk, b[off:off+32])
	off += 32
	z := make([]byte, seedSize)
	copy(z, b[off:off+seedSize])
	return &PrivateKey{Params: p, S: s, Public: pub, HPK: hpk, Z: z}, nil
}

// --- FO-transform CCA-KEM, FIPS 203 Algorithm 16-19 ---
//
// None of the retrieved reference sources implement the CCA wrapper
// around their CPA-PKE core (cloudflare-cloudflared__kyber.go stops
// at EncryptTo/DecryptTo); Keygen/Encapsulate/Decapsulate below
// follow the standard ML-KEM-KeyGen/Encaps/Decaps shape directly,
// reusing the CPA-PKE functions above as K-PKE.{KeyGen,Encrypt,Decrypt}.

// Keygen generates a fresh keypair, drawing 64 bytes of randomness
// from rand: 32 bytes for the CPA-PKE seed, 32 for the implicit
// rejection seed z.
func (k *KEM) Keygen(rand io.Reader) (*PublicKey, *PrivateKey, error) {
	buf := make([]byte, 64)
	if _, err := io.ReadFull(rand, buf); err != nil {
		return nil, nil, clweerr.ErrRandomnessUnavailable
	}
	pub, priv, err := k.keygenFromSeeds(buf[:32], buf[32:])
	clweerr.Zeroize(buf)
	return pub, priv, err
}

func (k *KEM) keygenFromSeeds(pkeSeed, z []byte) (*PublicKey, *PrivateKey, error) {
	p := k.Params
	rho, sHat, tHat := pkeKeygen(p, pkeSeed)
	pub := &PublicKey{Params: p, Rho: rho, T: tHat}
	hpk := keccak.H(pub.Bytes(), 32)
	priv := &PrivateKey{
		Params: p,
		S:      sHat,
		Public: pub,
		HPK:    hpk,
		Z:      append([]byte(nil), z...),
	}
	return pub, priv, nil
}

// Encapsulate derives a fresh shared secret and its ciphertext under
// pk, drawing a 32-byte message from rand, per FIPS 203 Algorithm 17
// (ML-KEM.Encaps).
func (k *KEM) Encapsulate(rand io.Reader, pk *PublicKey) (ct, sharedSecret []byte, err error) {
	m := make([]byte, 32)
	if _, err := io.ReadFull(rand, m); err != nil {
		return nil, nil, clweerr.ErrRandomnessUnavailable
	}
	ct, ss := k.encapsulateWithMessage(pk, m)
	clweerr.Zeroize(m)
	return ct, ss, nil
}

func (k *KEM) encapsulateWithMessage(pk *PublicKey, m []byte) (ct, sharedSecret []byte) {
	hpk := keccak.H(pk.Bytes(), 32)
	mHash := keccak.H(m, 32)
	expanded := keccak.H2(mHash, hpk, 64)
	kBar := expanded[:32]
	coins := expanded[32:]
	ct = pkeEncrypt(k.Params, pk.Rho, pk.T, m, coins)
	sharedSecret = kdf(kBar, ct)
	return
}

// kdf derives the final shared secret from the FO-transform's internal
// 32-byte key material and the ciphertext, implementing spec §3/§4.5's
// K = KDF(k-bar, H(ct)) requirement on both the accept and reject
// paths so the output is always bound to the ciphertext that produced
// it, not just to the (possibly attacker-influenced) internal key.
func kdf(kBar, ct []byte) []byte {
	return keccak.H2(kBar, keccak.H(ct, 32), 32)
}

// Decapsulate recovers the shared secret for ciphertext ct under sk,
// per FIPS 203 Algorithm 18 (ML-KEM.Decaps). A ciphertext of the
// wrong length is rejected with ErrMalformedEncoding. On a correctly
// sized but tampered ciphertext it returns a pseudorandom value derived
// from sk.Z rather than an error, the implicit-rejection property that
// prevents a decryption-failure oracle. The accept/reject selection
// is a constant-time copy, never a data-dependent branch on the
// re-encryption comparison.
func (k *KEM) Decapsulate(sk *PrivateKey, ct []byte) ([]byte, error) {
	p := k.Params
	if len(ct) != p.CiphertextSize() {
		return nil, clweerr.ErrMalformedEncoding
	}

	mPrime := pkeDecrypt(p, sk.S, ct)
	mPrimeHash := keccak.H(mPrime, 32)
	expanded := keccak.H2(mPrimeHash, sk.HPK, 64)
	kPrimeBar := expanded[:32]
	coins := expanded[32:]
	ctPrime := pkeEncrypt(p, sk.Public.Rho, sk.Public.T, mPrime, coins)

	kPrime := kdf(kPrimeBar, ct)
	kBar := kdf(sk.Z, ct)

	accept := subtle.ConstantTimeCompare(ct, ctPrime)
	out := make([]byte, 32)
	subtle.ConstantTimeCopy(1-accept, out, kBar)
	subtle.ConstantTimeCopy(accept, out, kPrime)
	return out, nil
}
