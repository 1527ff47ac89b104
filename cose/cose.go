// Package cose implements a minimal COSE_Sign1 envelope (RFC 9052)
// around an mldsa signature, grounded on the original firmware's
// cose.hpp: a fixed four-element array of protected header,
// unprotected header, payload and signature, with the protected
// header itself a one-key CBOR map naming the signing algorithm.
package cose

import (
	"errors"

	"clwe/cose/cbor"
)

// Algorithm identifies the COSE "alg" value carried in the protected
// header. The three ML-DSA levels get their own IDs since COSE has
// no registered code point for them; values are this module's own
// convention, not an IANA assignment.
type Algorithm int

const (
	AlgMLDSA44 Algorithm = -48 // arbitrary negative (private-use) range
	AlgMLDSA65 Algorithm = -49
	AlgMLDSA87 Algorithm = -50
)

// labelAlg is the COSE protected-header map key for "alg" (label 1).
const labelAlg = 1

// Sign1 is a parsed COSE_Sign1 structure: protected header bytes,
// unprotected header bytes (always empty map in this module, kept as
// a field for shape-fidelity with the envelope format), payload, and
// signature.
type Sign1 struct {
	ProtectedHeader   []byte
	UnprotectedHeader []byte
	Payload           []byte
	Signature         []byte
}

// NewSign1 builds a COSE_Sign1 envelope carrying msg as the payload
// and sig as the signature, tagging the protected header with alg.
func NewSign1(msg, sig []byte, alg Algorithm) *Sign1 {
	protected := encodeHeader(alg)
	return &Sign1{
		ProtectedHeader:   protected,
		UnprotectedHeader: cbor.EncodeMap(0),
		Payload:           msg,
		Signature:         sig,
	}
}

// encodeHeader builds the protected header map body (alg: 1 key/value
// pair). Per RFC 9052 the protected header travels on the wire as
// "bstr .cbor header_map". ProtectedHeader holds this unwrapped map
// body; the single bstr wrapping happens once, in Encode.
func encodeHeader(alg Algorithm) []byte {
	out := cbor.EncodeMap(1)
	out = append(out, cbor.EncodeUint(labelAlg)...)
	out = append(out, cbor.EncodeNegInt(int64(alg))...)
	return out
}

// DecodeHeader extracts the alg value from a protected header map
// body built by encodeHeader (i.e. already bstr-unwrapped, as
// Decode's ProtectedHeader field holds it).
func DecodeHeader(protected []byte) (Algorithm, error) {
	n, off, err := cbor.DecodeMapHead(protected)
	if err != nil {
		return 0, err
	}
	body := protected[off:]
	for i := 0; i < n; i++ {
		key, used, err := cbor.DecodeInt(body)
		if err != nil {
			return 0, err
		}
		body = body[used:]
		val, used, err := cbor.DecodeInt(body)
		if err != nil {
			return 0, err
		}
		body = body[used:]
		if key == labelAlg {
			return Algorithm(val), nil
		}
	}
	return 0, errors.New("cose: alg label not present in protected header")
}

// Encode serializes the envelope as the standard CBOR 4-element array
// [protected, unprotected, payload, signature].
func (s *Sign1) Encode() []byte {
	out := cbor.EncodeArray(4)
	out = append(out, cbor.EncodeBstr(s.ProtectedHeader)...)
	out = append(out, s.UnprotectedHeader...)
	out = append(out, cbor.EncodeBstr(s.Payload)...)
	out = append(out, cbor.EncodeBstr(s.Signature)...)
	return out
}

// Decode parses a COSE_Sign1 envelope produced by Encode.
func Decode(b []byte) (*Sign1, error) {
	n, off, err := cbor.DecodeArrayHead(b)
	if err != nil {
		return nil, err
	}
	if n != 4 {
		return nil, errors.New("cose: expected 4-element COSE_Sign1 array")
	}
	b = b[off:]

	protected, used, err := cbor.DecodeBstr(b)
	if err != nil {
		return nil, err
	}
	b = b[used:]

	unprotectedLen, unprotectedHead, err := cbor.DecodeMapHead(b)
	if err != nil {
		return nil, err
	}
	// unprotected header is an empty map in this module; skip any
	// (label,value) int pairs defensively rather than assuming zero.
	rest := b[unprotectedHead:]
	for i := 0; i < unprotectedLen; i++ {
		_, used, err := cbor.DecodeInt(rest)
		if err != nil {
			return nil, err
		}
		rest = rest[used:]
		_, used, err = cbor.DecodeInt(rest)
		if err != nil {
			return nil, err
		}
		rest = rest[used:]
	}
	unprotectedTotal := len(b) - len(rest)
	unprotected := b[:unprotectedTotal]
	b = rest

	payload, used, err := cbor.DecodeBstr(b)
	if err != nil {
		return nil, err
	}
	b = b[used:]

	signature, _, err := cbor.DecodeBstr(b)
	if err != nil {
		return nil, err
	}

	return &Sign1{
		ProtectedHeader:   protected,
		UnprotectedHeader: unprotected,
		Payload:           payload,
		Signature:         signature,
	}, nil
}

// NewSign1FromColorSign builds a COSE_Sign1 for a ColorSign
// signature, mirroring the original firmware's
// create_cose_sign1_from_colorsign helper.
func NewSign1FromColorSign(msg, signature []byte, alg Algorithm) []byte {
	return NewSign1(msg, signature, alg).Encode()
}

// ExtractColorSign extracts the payload and signature bytes from a
// COSE_Sign1 envelope, mirroring extract_colorsign_from_cose.
func ExtractColorSign(b []byte) (payload, signature []byte, alg Algorithm, err error) {
	s, err := Decode(b)
	if err != nil {
		return nil, nil, 0, err
	}
	alg, err = DecodeHeader(s.ProtectedHeader)
	if err != nil {
		return nil, nil, 0, err
	}
	return s.Payload, s.Signature, alg, nil
}
