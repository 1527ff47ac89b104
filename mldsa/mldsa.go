package mldsa

import (
	"crypto"
	"io"

	"clwe/clweerr"
	"clwe/internal/keccak"
	"clwe/internal/mldsaencode"
	"clwe/internal/mldsafield"
	"clwe/internal/mldsapoly"
	"clwe/internal/mldsasample"
)

// PublicKey is a verification key for one Params level.
type PublicKey struct {
	Params *Params
	Rho    []byte
	T1     mldsapoly.Vec
}

// PrivateKey is a signing key for one Params level. It implements
// crypto.Signer, matching KarpelesLab-mldsa's PrivateKeyNN types.
type PrivateKey struct {
	Params *Params
	Rho    []byte
	K      []byte
	Tr     []byte
	S1, S2 mldsapoly.Vec
	T0     mldsapoly.Vec
	PublicKey *PublicKey
}

var _ crypto.Signer = (*PrivateKey)(nil)

// Public returns the signer's public key, satisfying crypto.Signer.
func (sk *PrivateKey) Public() crypto.PublicKey {
	return sk.PublicKey
}

// Sign implements crypto.Signer. opts, if an *SignerOpts, supplies the
// domain-separation context; rand supplies the randomizer for
// hedged signing, or may be nil for deterministic signing.
func (sk *PrivateKey) Sign(rand io.Reader, message []byte, opts crypto.SignerOpts) ([]byte, error) {
	var ctx []byte
	if o, ok := opts.(*SignerOpts); ok {
		ctx = o.Context
	}
	signer := &Signer{Params: sk.Params}
	if rand == nil {
		return signer.SignDeterministic(sk, message, ctx)
	}
	return signer.Sign(rand, sk, message, ctx)
}

// SignerOpts implements crypto.SignerOpts, carrying the optional
// domain-separation context string FIPS 204 calls ctx.
type SignerOpts struct {
	Context []byte
}

// HashFunc returns 0: ML-DSA signs the message directly, never a
// pre-hashed digest.
func (o *SignerOpts) HashFunc() crypto.Hash { return 0 }

// Signer performs keygen/sign/verify for one Params level.
type Signer struct {
	Params *Params
}

// NewSigner44 returns a Signer for ML-DSA-44 (NIST level 2).
func NewSigner44() *Signer { return &Signer{Params: NewParams44()} }

// NewSigner65 returns a Signer for ML-DSA-65 (NIST level 3).
func NewSigner65() *Signer { return &Signer{Params: NewParams65()} }

// NewSigner87 returns a Signer for ML-DSA-87 (NIST level 5).
func NewSigner87() *Signer { return &Signer{Params: NewParams87()} }

func (s *Signer) etaBits() int {
	if s.Params.Eta == 4 {
		return 4
	}
	return 3
}

func (s *Signer) packEta(p *mldsapoly.Poly) []byte {
	if s.Params.Eta == 4 {
		return mldsaencode.PackEta4(p)
	}
	return mldsaencode.PackEta2(p)
}

func (s *Signer) unpackEta(b []byte) (mldsapoly.Poly, error) {
	if s.Params.Eta == 4 {
		return mldsaencode.UnpackEta4(b)
	}
	return mldsaencode.UnpackEta2(b)
}

func (s *Signer) packZ(p *mldsapoly.Poly) []byte {
	if s.Params.Gamma1Bits == 19 {
		return mldsaencode.PackZ19(p)
	}
	return mldsaencode.PackZ17(p)
}

func (s *Signer) unpackZ(b []byte) (mldsapoly.Poly, error) {
	if s.Params.Gamma1Bits == 19 {
		return mldsaencode.UnpackZ19(b)
	}
	return mldsaencode.UnpackZ17(b)
}

func (s *Signer) packW1(p *mldsapoly.Poly) []byte {
	if s.Params.Gamma2 == mldsapoly.Gamma2QMinus1Div88 {
		return mldsaencode.PackW1_6(p)
	}
	return mldsaencode.PackW1_4(p)
}

// expandA samples the k-by-l matrix in NTT domain from rho, using the
// same nonce convention (entry (i,j) takes nonce bytes (j,i)) at
// keygen, sign, and verify time so all
// three rederive an identical matrix. Grounded on
// KarpelesLab-mldsa's ExpandA (the loop inside Key44.generate and the
// identical loop inside NewPublicKey44/NewPrivateKey44).
func (s *Signer) expandA(rho []byte) []mldsapoly.Poly {
	return mldsasample.ExpandA(rho, s.Params.K, s.Params.L)
}

// Keygen generates a fresh key pair, implementing FIPS 204 Algorithm
// 6, following KarpelesLab-mldsa's Key44.generate generalized over
// Params.
func (s *Signer) Keygen(rand io.Reader) (*PublicKey, *PrivateKey, error) {
	seed := make([]byte, seedSize)
	if _, err := io.ReadFull(rand, seed); err != nil {
		return nil, nil, clweerr.ErrRandomnessUnavailable
	}
	defer clweerr.Zeroize(seed)
	return s.keygenFromSeed(seed)
}

func (s *Signer) keygenFromSeed(seed []byte) (*PublicKey, *PrivateKey, error) {
	p := s.Params
	expanded := keccak.H2(seed, []byte{byte(p.K), byte(p.L)}, 32+64+32)
	rho := expanded[:32]
	rhoPrime := expanded[32:96]
	key := expanded[96:128]

	a := s.expandA(rho)

	s1 := mldsapoly.NewVec(p.L)
	for i := 0; i < p.L; i++ {
		s1[i] = mldsasample.RejBoundedPoly(rhoPrime, uint16(i), p.Eta)
	}
	s2 := mldsapoly.NewVec(p.K)
	for i := 0; i < p.K; i++ {
		s2[i] = mldsasample.RejBoundedPoly(rhoPrime, uint16(p.L+i), p.Eta)
	}

	s1Hat := mldsapoly.NTTVec(s1)
	tHat := mldsapoly.MatVecMulNTT(a, p.K, p.L, s1Hat)
	t := mldsapoly.InvNTTVec(tHat)
	t = mldsapoly.AddVec(t, s2)

	t1 := mldsapoly.NewVec(p.K)
	t0 := mldsapoly.NewVec(p.K)
	for i := 0; i < p.K; i++ {
		for j := 0; j < n; j++ {
			r1, r0 := mldsapoly.Power2Round(t[i][j])
			t1[i][j] = r1
			t0[i][j] = r0
		}
	}

	pub := &PublicKey{Params: p, Rho: append([]byte{}, rho...), T1: t1}
	tr := keccak.H(pub.Bytes(), 64)

	priv := &PrivateKey{
		Params: p,
		Rho:    append([]byte{}, rho...),
		K:      append([]byte{}, key...),
		Tr:     tr,
		S1:     s1, S2: s2, T0: t0,
		PublicKey: pub,
	}
	return pub, priv, nil
}

// Bytes encodes the public key as rho || PackT1(t1)*k.
func (pk *PublicKey) Bytes() []byte {
	out := make([]byte, 0, pk.Params.PublicKeySize())
	out = append(out, pk.Rho...)
	for i := range pk.T1 {
		out = append(out, mldsaencode.PackT1(&pk.T1[i])...)
	}
	return out
}

// ParsePublicKey decodes a public key for the given Params.
func ParsePublicKey(p *Params, b []byte) (*PublicKey, error) {
	if len(b) != p.PublicKeySize() {
		return nil, clweerr.ErrMalformedEncoding
	}
	rho := append([]byte{}, b[:32]...)
	rest := b[32:]
	t1 := mldsapoly.NewVec(p.K)
	const t1Bytes = n * 10 / 8
	for i := 0; i < p.K; i++ {
		poly, err := mldsaencode.UnpackT1(rest[:t1Bytes])
		if err != nil {
			return nil, err
		}
		t1[i] = poly
		rest = rest[t1Bytes:]
	}
	return &PublicKey{Params: p, Rho: rho, T1: t1}, nil
}

// Bytes encodes the private key as
// rho || key || tr || PackEta(s1)*l || PackEta(s2)*k || PackT0(t0)*k.
func (sk *PrivateKey) Bytes() []byte {
	s := &Signer{Params: sk.Params}
	out := make([]byte, 0, sk.Params.PrivateKeySize())
	out = append(out, sk.Rho...)
	out = append(out, sk.K...)
	out = append(out, sk.Tr...)
	for i := range sk.S1 {
		out = append(out, s.packEta(&sk.S1[i])...)
	}
	for i := range sk.S2 {
		out = append(out, s.packEta(&sk.S2[i])...)
	}
	for i := range sk.T0 {
		out = append(out, mldsaencode.PackT0(&sk.T0[i])...)
	}
	return out
}

// ParsePrivateKey decodes a private key for the given Params,
// rederiving its public key by recomputing t1 from rho, s1 and s2.
func ParsePrivateKey(p *Params, b []byte) (*PrivateKey, error) {
	if len(b) != p.PrivateKeySize() {
		return nil, clweerr.ErrMalformedEncoding
	}
	s := &Signer{Params: p}
	rho := append([]byte{}, b[:32]...)
	key := append([]byte{}, b[32:64]...)
	tr := append([]byte{}, b[64:128]...)
	rest := b[128:]

	etaBytes := n * s.etaBits() / 8
	s1 := mldsapoly.NewVec(p.L)
	for i := 0; i < p.L; i++ {
		poly, err := s.unpackEta(rest[:etaBytes])
		if err != nil {
			return nil, err
		}
		s1[i] = poly
		rest = rest[etaBytes:]
	}
	s2 := mldsapoly.NewVec(p.K)
	for i := 0; i < p.K; i++ {
		poly, err := s.unpackEta(rest[:etaBytes])
		if err != nil {
			return nil, err
		}
		s2[i] = poly
		rest = rest[etaBytes:]
	}
	const t0Bytes = n * 13 / 8
	t0 := mldsapoly.NewVec(p.K)
	for i := 0; i < p.K; i++ {
		poly, err := mldsaencode.UnpackT0(rest[:t0Bytes])
		if err != nil {
			return nil, err
		}
		t0[i] = poly
		rest = rest[t0Bytes:]
	}

	a := s.expandA(rho)
	s1Hat := mldsapoly.NTTVec(s1)
	tHat := mldsapoly.MatVecMulNTT(a, p.K, p.L, s1Hat)
	t := mldsapoly.InvNTTVec(tHat)
	t = mldsapoly.AddVec(t, s2)
	t1 := mldsapoly.NewVec(p.K)
	for i := 0; i < p.K; i++ {
		for j := 0; j < n; j++ {
			r1, _ := mldsapoly.Power2Round(t[i][j])
			t1[i][j] = r1
		}
	}
	pub := &PublicKey{Params: p, Rho: append([]byte{}, rho...), T1: t1}

	return &PrivateKey{
		Params: p, Rho: rho, K: key, Tr: tr,
		S1: s1, S2: s2, T0: t0, PublicKey: pub,
	}, nil
}

// buildMPrime assembles the pure (not pre-hashed) message form FIPS
// 204 signs: the domain-separator byte 0 (no pre-hash), the one-byte
// context length, the context, then the message.
func buildMPrime(ctx, message []byte) ([]byte, error) {
	if len(ctx) > 255 {
		return nil, clweerr.ErrContextTooLong
	}
	mPrime := make([]byte, 0, 2+len(ctx)+len(message))
	mPrime = append(mPrime, 0, byte(len(ctx)))
	mPrime = append(mPrime, ctx...)
	mPrime = append(mPrime, message...)
	return mPrime, nil
}

// Sign produces a randomized (hedged) signature, drawing fresh
// randomness from rand for each call as FIPS 204's default signing
// mode does.
func (s *Signer) Sign(rand io.Reader, sk *PrivateKey, message, ctx []byte) ([]byte, error) {
	rnd := make([]byte, 32)
	if _, err := io.ReadFull(rand, rnd); err != nil {
		return nil, clweerr.ErrRandomnessUnavailable
	}
	return s.sign(sk, rnd, message, ctx)
}

// SignDeterministic produces the deterministic signature variant
// (rnd fixed to 32 zero bytes), the mode spec.md §4.6 describes.
func (s *Signer) SignDeterministic(sk *PrivateKey, message, ctx []byte) ([]byte, error) {
	rnd := make([]byte, 32)
	return s.sign(sk, rnd, message, ctx)
}

// sign implements FIPS 204 Algorithm 7's internal signing loop,
// ported from KarpelesLab-mldsa's signInternal, generalized over
// Params instead of fixed k44/l44 etc.
func (s *Signer) sign(sk *PrivateKey, rnd, message, ctx []byte) ([]byte, error) {
	p := s.Params
	mPrime, err := buildMPrime(ctx, message)
	if err != nil {
		return nil, err
	}

	mu := keccak.H2(sk.Tr, mPrime, 64)
	rhoPrime := keccak.H3(sk.K, rnd, mu, 64)

	a := s.expandA(sk.Rho)
	s1Hat := mldsapoly.NTTVec(sk.S1)
	s2Hat := mldsapoly.NTTVec(sk.S2)
	t0Hat := mldsapoly.NTTVec(sk.T0)

	gamma1 := p.gamma1()
	kappa := uint16(0)
	for {
		y, err := mldsasample.ExpandMask(rhoPrime, kappa, p.L, p.Gamma1Bits)
		if err != nil {
			return nil, err
		}
		yHat := mldsapoly.NTTVec(y)
		wHat := mldsapoly.MatVecMulNTT(a, p.K, p.L, yHat)
		w := mldsapoly.InvNTTVec(wHat)

		w1 := mldsapoly.NewVec(p.K)
		for i := 0; i < p.K; i++ {
			for j := 0; j < n; j++ {
				w1[i][j] = mldsapoly.HighBits(w[i][j], p.Gamma2)
			}
		}
		packedW1 := make([]byte, 0, p.K*n)
		for i := range w1 {
			packedW1 = append(packedW1, s.packW1(&w1[i])...)
		}
		cTilde := keccak.H2(mu, packedW1, p.Lambda/4)

		c := mldsasample.SampleInBall(cTilde, p.Tau)
		cHat := c
		cHat.NTT()

		z := mldsapoly.NewVec(p.L)
		for i := 0; i < p.L; i++ {
			cs1 := mldsapoly.MulNTT(&cHat, &s1Hat[i])
			cs1.InvNTT()
			z[i] = mldsapoly.Add(&y[i], &cs1)
		}
		if mldsapoly.NormVec(z) >= gamma1-uint32(p.Beta) {
			kappa += uint16(p.L)
			continue
		}

		r0 := mldsapoly.NewVec(p.K)
		for i := 0; i < p.K; i++ {
			cs2 := mldsapoly.MulNTT(&cHat, &s2Hat[i])
			cs2.InvNTT()
			r := mldsapoly.Sub(&w[i], &cs2)
			for j := 0; j < n; j++ {
				_, lo := mldsapoly.Decompose(r[j], p.Gamma2)
				r0[i][j] = mldsafield.Mod(int64(lo))
			}
		}
		if mldsapoly.NormVec(r0) >= p.Gamma2-uint32(p.Beta) {
			kappa += uint16(p.L)
			continue
		}

		ct0 := mldsapoly.NewVec(p.K)
		for i := 0; i < p.K; i++ {
			v := mldsapoly.MulNTT(&cHat, &t0Hat[i])
			v.InvNTT()
			ct0[i] = v
		}
		if mldsapoly.NormVec(ct0) >= p.Gamma2 {
			kappa += uint16(p.L)
			continue
		}

		hints := make([]mldsapoly.Poly, p.K)
		ones := 0
		for i := 0; i < p.K; i++ {
			cs2 := mldsapoly.MulNTT(&cHat, &s2Hat[i])
			cs2.InvNTT()
			r := mldsapoly.Sub(&w[i], &cs2)
			for j := 0; j < n; j++ {
				h := mldsapoly.MakeHint(ct0[i][j], r[j], p.Gamma2)
				hints[i][j] = h
				if h == 1 {
					ones++
				}
			}
		}
		if ones > p.Omega {
			kappa += uint16(p.L)
			continue
		}

		out := make([]byte, 0, p.SignatureSize())
		out = append(out, cTilde...)
		for i := range z {
			out = append(out, s.packZ(&z[i])...)
		}
		out = append(out, mldsaencode.PackHint(hints, p.Omega)...)
		return out, nil
	}
}

// Verify checks sig against message and ctx, implementing FIPS 204
// Algorithm 8's internal verification (verifyInternal in
// KarpelesLab-mldsa/mldsa44.go), generalized over Params.
func (s *Signer) Verify(pk *PublicKey, message, sig, ctx []byte) bool {
	p := s.Params
	if len(sig) != p.SignatureSize() {
		return false
	}
	mPrime, err := buildMPrime(ctx, message)
	if err != nil {
		return false
	}

	cTildeLen := p.Lambda / 4
	cTilde := sig[:cTildeLen]
	rest := sig[cTildeLen:]

	zBytes := n * 18 / 8
	if p.Gamma1Bits == 19 {
		zBytes = n * 20 / 8
	}
	z := mldsapoly.NewVec(p.L)
	for i := 0; i < p.L; i++ {
		poly, err := s.unpackZ(rest[:zBytes])
		if err != nil {
			return false
		}
		z[i] = poly
		rest = rest[zBytes:]
	}
	gamma1 := p.gamma1()
	if mldsapoly.NormVec(z) >= gamma1-uint32(p.Beta) {
		return false
	}

	hints, err := mldsaencode.UnpackHint(rest, p.K, p.Omega)
	if err != nil {
		return false
	}

	tr := keccak.H(pk.Bytes(), 64)
	mu := keccak.H2(tr, mPrime, 64)

	c := mldsasample.SampleInBall(cTilde, p.Tau)
	cHat := c
	cHat.NTT()

	a := s.expandA(pk.Rho)
	zHat := mldsapoly.NTTVec(z)
	azHat := mldsapoly.MatVecMulNTT(a, p.K, p.L, zHat)

	t1Hat := mldsapoly.NewVec(p.K)
	for i := 0; i < p.K; i++ {
		shifted := pk.T1[i]
		for j := 0; j < n; j++ {
			shifted[j] = mldsafield.Mod(int64(shifted[j]) << d)
		}
		shifted.NTT()
		t1Hat[i] = shifted
	}

	w1 := mldsapoly.NewVec(p.K)
	for i := 0; i < p.K; i++ {
		ct1 := mldsapoly.MulNTT(&cHat, &t1Hat[i])
		diff := mldsapoly.Sub(&azHat[i], &ct1)
		diff.InvNTT()
		for j := 0; j < n; j++ {
			w1[i][j] = mldsapoly.UseHint(hints[i][j], diff[j], p.Gamma2)
		}
	}

	packedW1 := make([]byte, 0, p.K*n)
	for i := range w1 {
		packedW1 = append(packedW1, s.packW1(&w1[i])...)
	}
	cTildeCheck := keccak.H2(mu, packedW1, cTildeLen)

	var diff byte
	for i := range cTilde {
		diff |= cTilde[i] ^ cTildeCheck[i]
	}
	return diff == 0
}
