// Package clweerr collects the sentinel errors shared by the clwe
// KEM and signature packages, so callers can use errors.Is instead of
// string matching.
package clweerr

import "errors"

var (
	// ErrInvalidParameters is returned when a parameter set is
	// malformed or a size accessor is called before a scheme has
	// been constructed.
	ErrInvalidParameters = errors.New("clwe: invalid parameters")

	// ErrMalformedEncoding is returned when a byte string passed to
	// a decode or unpack routine does not have the expected length.
	// A decoded coefficient or hint outside its allowed range is
	// reported as ErrBoundsViolation instead, and the KEM's
	// coefficient unpackers do not range-check at all.
	ErrMalformedEncoding = errors.New("clwe: malformed encoding")

	// ErrBoundsViolation is returned internally when a decoded
	// coefficient or hint violates the bound implied by its packed
	// width; exported so callers parsing untrusted keys/signatures
	// can distinguish it from a plain length mismatch.
	ErrBoundsViolation = errors.New("clwe: value exceeds declared bound")

	// ErrRandomnessUnavailable is returned when the supplied entropy
	// source fails to fill a seed or nonce buffer.
	ErrRandomnessUnavailable = errors.New("clwe: randomness source failed")

	// ErrUnsupportedCapability names a request for an NTT backend or
	// CPU capability that has no implementation. No function in this
	// module returns it: only the scalar backend exists and nothing
	// selects among backends.
	ErrUnsupportedCapability = errors.New("clwe: unsupported capability")

	// ErrContextTooLong is returned when a signing context string
	// exceeds the 255-byte limit FIPS 204 imposes.
	ErrContextTooLong = errors.New("clwe: context string too long")
)

// Zeroize overwrites b with zeroes. In this module it clears the
// signature key-generation seed, the KEM's K-PKE seed sigma, the KEM
// key-generation random buffer and the encapsulation message m. No
// other buffer is cleared: Sign and Decapsulate zero none of their
// scratch, and the key types have no finalizers.
func Zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ZeroizeU32 overwrites a slice of field elements or hint positions.
func ZeroizeU32(v []uint32) {
	for i := range v {
		v[i] = 0
	}
}

// ConstantTimeCompare reports whether a and b are equal without
// branching on the position of the first difference. It assumes a
// and b have the same length; callers must length-check first. No
// code in this module calls it (mlkem uses crypto/subtle).
func ConstantTimeCompare(a, b []byte) bool {
	var diff byte
	for i := range a {
		diff |= a[i] ^ b[i]
	}
	return diff == 0
}
