// Package keccak wraps golang.org/x/crypto/sha3's SHAKE sponge with
// the incremental, seed-clonable readers both the signature and KEM
// samplers need for their rejection-sampling inner loops. It
// generalizes zkDilithium's hash package (which hard-coded a single
// field's XOF usage) into a field-agnostic building block shared by
// internal/mldsasample and internal/mlkemsample.
package keccak

import "golang.org/x/crypto/sha3"

// clonable is satisfied by sha3.ShakeHash, which supports Clone but
// does not expose it on the exported interface.
type clonable interface {
	Clone() sha3.ShakeHash
}

// Shake128 is an incremental SHAKE-128 reader with an internal
// rate-sized buffer, letting callers pull bytes a few at a time
// without re-squeezing a full block on every call.
type Shake128 struct {
	h   sha3.ShakeHash
	buf [168]byte // SHAKE-128 rate
	pos int
	end int
}

// NewShake128 absorbs parts in order and returns a reader over the
// resulting squeeze stream.
func NewShake128(parts ...[]byte) *Shake128 {
	h := sha3.NewShake128()
	for _, p := range parts {
		h.Write(p)
	}
	return &Shake128{h: h}
}

// Read3 returns the next three bytes of squeeze output.
func (x *Shake128) Read3() (b0, b1, b2 byte) {
	if x.pos+3 > x.end {
		leftover := x.end - x.pos
		if leftover > 0 {
			copy(x.buf[:leftover], x.buf[x.pos:x.end])
		}
		n, _ := x.h.Read(x.buf[leftover:])
		x.pos, x.end = 0, leftover+n
	}
	b0, b1, b2 = x.buf[x.pos], x.buf[x.pos+1], x.buf[x.pos+2]
	x.pos += 3
	return
}

// Read fills out fully from the squeeze stream.
func (x *Shake128) Read(out []byte) {
	for len(out) > 0 {
		if x.pos >= x.end {
			n, _ := x.h.Read(x.buf[:])
			x.pos, x.end = 0, n
		}
		n := copy(out, x.buf[x.pos:x.end])
		x.pos += n
		out = out[n:]
	}
}

// SeedClonableShake128 pre-absorbs a seed once, then cheaply restores
// that state for each nonce via Clone rather than re-hashing the seed
// on every call — the same optimization zkDilithium's
// SeedClonableXOF128 uses for matrix generation.
type SeedClonableShake128 struct {
	seedState sha3.ShakeHash
	h         sha3.ShakeHash
	buf       [168]byte
	pos, end  int
}

// NewSeedClonableShake128 absorbs seed and snapshots the resulting state.
func NewSeedClonableShake128(seed []byte) *SeedClonableShake128 {
	h := sha3.NewShake128()
	h.Write(seed)
	return &SeedClonableShake128{seedState: h.(clonable).Clone(), h: h}
}

// Absorb restores the post-seed state and absorbs extra bytes
// (typically a two-byte matrix-coordinate nonce) before reading.
func (x *SeedClonableShake128) Absorb(extra []byte) {
	x.h = x.seedState.(clonable).Clone()
	x.h.Write(extra)
	x.pos, x.end = 0, 0
}

// Read3 returns the next three bytes of squeeze output.
func (x *SeedClonableShake128) Read3() (b0, b1, b2 byte) {
	if x.pos+3 > x.end {
		leftover := x.end - x.pos
		if leftover > 0 {
			copy(x.buf[:leftover], x.buf[x.pos:x.end])
		}
		n, _ := x.h.Read(x.buf[leftover:])
		x.pos, x.end = 0, leftover+n
	}
	b0, b1, b2 = x.buf[x.pos], x.buf[x.pos+1], x.buf[x.pos+2]
	x.pos += 3
	return
}

// Shake256 is the SHAKE-256 analogue of Shake128.
type Shake256 struct {
	h        sha3.ShakeHash
	buf      [136]byte // SHAKE-256 rate
	pos, end int
}

// NewShake256 absorbs parts in order and returns a reader over the
// resulting squeeze stream.
func NewShake256(parts ...[]byte) *Shake256 {
	h := sha3.NewShake256()
	for _, p := range parts {
		h.Write(p)
	}
	return &Shake256{h: h}
}

// Reset re-absorbs a fresh set of parts, reusing the underlying state.
func (x *Shake256) Reset(parts ...[]byte) {
	x.h.Reset()
	for _, p := range parts {
		x.h.Write(p)
	}
	x.pos, x.end = 0, 0
}

// Read3 returns the next three bytes of squeeze output.
func (x *Shake256) Read3() (b0, b1, b2 byte) {
	if x.pos+3 > x.end {
		leftover := x.end - x.pos
		if leftover > 0 {
			copy(x.buf[:leftover], x.buf[x.pos:x.end])
		}
		n, _ := x.h.Read(x.buf[leftover:])
		x.pos, x.end = 0, leftover+n
	}
	b0, b1, b2 = x.buf[x.pos], x.buf[x.pos+1], x.buf[x.pos+2]
	x.pos += 3
	return
}

// Read fills out fully from the squeeze stream.
func (x *Shake256) Read(out []byte) {
	for len(out) > 0 {
		if x.pos >= x.end {
			n, _ := x.h.Read(x.buf[:])
			x.pos, x.end = 0, n
		}
		n := copy(out, x.buf[x.pos:x.end])
		x.pos += n
		out = out[n:]
	}
}

// H is the one-shot SHAKE-256 hash used for tr/mu/rho' derivation and
// any other fixed-length digest in both schemes.
func H(msg []byte, length int) []byte {
	h := sha3.NewShake256()
	h.Write(msg)
	out := make([]byte, length)
	h.Read(out)
	return out
}

// H2 is H over two concatenated inputs, avoiding a buffer copy at
// every one of its many call sites (tr derivation, mu derivation,
// rho' derivation all hash two or three pieces back to back).
func H2(a, b []byte, length int) []byte {
	h := sha3.NewShake256()
	h.Write(a)
	h.Write(b)
	out := make([]byte, length)
	h.Read(out)
	return out
}

// H3 is H over three concatenated inputs.
func H3(a, b, c []byte, length int) []byte {
	h := sha3.NewShake256()
	h.Write(a)
	h.Write(b)
	h.Write(c)
	out := make([]byte, length)
	h.Read(out)
	return out
}
