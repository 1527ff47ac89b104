package cose

import (
	"bytes"
	"testing"
)

func TestNewSign1EncodeDecodeRoundTrip(t *testing.T) {
	msg := []byte("hello world")
	sig := bytes.Repeat([]byte{0xAB}, 64)
	s := NewSign1(msg, sig, AlgMLDSA65)
	enc := s.Encode()

	got, err := Decode(enc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(got.Payload, msg) {
		t.Fatalf("Payload = %v, want %v", got.Payload, msg)
	}
	if !bytes.Equal(got.Signature, sig) {
		t.Fatalf("Signature = %v, want %v", got.Signature, sig)
	}
	alg, err := DecodeHeader(got.ProtectedHeader)
	if err != nil {
		t.Fatalf("DecodeHeader: %v", err)
	}
	if alg != AlgMLDSA65 {
		t.Fatalf("alg = %d, want %d", alg, AlgMLDSA65)
	}
}

func TestDecodeHeaderRoundTripAllAlgorithms(t *testing.T) {
	for _, alg := range []Algorithm{AlgMLDSA44, AlgMLDSA65, AlgMLDSA87} {
		h := encodeHeader(alg)
		got, err := DecodeHeader(h)
		if err != nil {
			t.Fatalf("DecodeHeader(alg=%d): %v", alg, err)
		}
		if got != alg {
			t.Fatalf("DecodeHeader(encodeHeader(%d)) = %d", alg, got)
		}
	}
}

func TestDecodeRejectsWrongArrayLength(t *testing.T) {
	_, err := Decode([]byte{0x83, 0, 0, 0}) // array of 3, not 4
	if err == nil {
		t.Fatal("Decode accepted a 3-element array")
	}
}

func TestNewSign1FromColorSignExtractColorSignRoundTrip(t *testing.T) {
	msg := []byte("payload bytes")
	sig := bytes.Repeat([]byte{0x5A}, 32)
	enc := NewSign1FromColorSign(msg, sig, AlgMLDSA44)

	gotMsg, gotSig, alg, err := ExtractColorSign(enc)
	if err != nil {
		t.Fatalf("ExtractColorSign: %v", err)
	}
	if !bytes.Equal(gotMsg, msg) {
		t.Fatalf("payload = %v, want %v", gotMsg, msg)
	}
	if !bytes.Equal(gotSig, sig) {
		t.Fatalf("signature = %v, want %v", gotSig, sig)
	}
	if alg != AlgMLDSA44 {
		t.Fatalf("alg = %d, want %d", alg, AlgMLDSA44)
	}
}

func TestEncodeUnprotectedHeaderIsEmptyMap(t *testing.T) {
	s := NewSign1([]byte("m"), []byte("s"), AlgMLDSA87)
	if len(s.UnprotectedHeader) != 1 {
		t.Fatalf("UnprotectedHeader = %v, want a single empty-map byte", s.UnprotectedHeader)
	}
}
