package mldsa

import (
	"bytes"
	"crypto/rand"
	"testing"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	for name, s := range map[string]*Signer{
		"44": NewSigner44(),
		"65": NewSigner65(),
		"87": NewSigner87(),
	} {
		t.Run(name, func(t *testing.T) {
			pub, priv, err := s.Keygen(rand.Reader)
			if err != nil {
				t.Fatalf("Keygen: %v", err)
			}
			msg := []byte("Hello World")
			sig, err := s.Sign(rand.Reader, priv, msg, nil)
			if err != nil {
				t.Fatalf("Sign: %v", err)
			}
			if len(sig) != s.Params.SignatureSize() {
				t.Fatalf("signature length = %d, want %d", len(sig), s.Params.SignatureSize())
			}
			if !s.Verify(pub, msg, sig, nil) {
				t.Fatal("Verify rejected a valid signature")
			}
		})
	}
}

func TestVerifyRejectsTamperedMessage(t *testing.T) {
	s := NewSigner65()
	pub, priv, err := s.Keygen(rand.Reader)
	if err != nil {
		t.Fatalf("Keygen: %v", err)
	}
	msg := []byte("the original message")
	sig, err := s.Sign(rand.Reader, priv, msg, nil)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if s.Verify(pub, []byte("a different message"), sig, nil) {
		t.Fatal("Verify accepted a signature over a tampered message")
	}
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	s := NewSigner44()
	pub, priv, err := s.Keygen(rand.Reader)
	if err != nil {
		t.Fatalf("Keygen: %v", err)
	}
	msg := []byte("message")
	sig, err := s.Sign(rand.Reader, priv, msg, nil)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	tampered := append([]byte(nil), sig...)
	tampered[0] ^= 0xFF
	if s.Verify(pub, msg, tampered, nil) {
		t.Fatal("Verify accepted a tampered signature")
	}
}

func TestSignDeterministicIsRepeatable(t *testing.T) {
	s := NewSigner87()
	_, priv, err := s.Keygen(rand.Reader)
	if err != nil {
		t.Fatalf("Keygen: %v", err)
	}
	msg := []byte("deterministic")
	sig1, err := s.SignDeterministic(priv, msg, nil)
	if err != nil {
		t.Fatalf("SignDeterministic: %v", err)
	}
	sig2, err := s.SignDeterministic(priv, msg, nil)
	if err != nil {
		t.Fatalf("SignDeterministic: %v", err)
	}
	if !bytes.Equal(sig1, sig2) {
		t.Fatal("SignDeterministic produced different signatures for the same key and message")
	}
}

func TestPublicKeyBytesRoundTrip(t *testing.T) {
	s := NewSigner65()
	pub, _, err := s.Keygen(rand.Reader)
	if err != nil {
		t.Fatalf("Keygen: %v", err)
	}
	b := pub.Bytes()
	if len(b) != s.Params.PublicKeySize() {
		t.Fatalf("public key length = %d, want %d", len(b), s.Params.PublicKeySize())
	}
	pub2, err := ParsePublicKey(s.Params, b)
	if err != nil {
		t.Fatalf("ParsePublicKey: %v", err)
	}
	if !bytes.Equal(pub2.Bytes(), b) {
		t.Fatal("public key round trip through Bytes/ParsePublicKey changed encoding")
	}
}

func TestPrivateKeyBytesRoundTrip(t *testing.T) {
	s := NewSigner44()
	_, priv, err := s.Keygen(rand.Reader)
	if err != nil {
		t.Fatalf("Keygen: %v", err)
	}
	b := priv.Bytes()
	if len(b) != s.Params.PrivateKeySize() {
		t.Fatalf("private key length = %d, want %d", len(b), s.Params.PrivateKeySize())
	}
	priv2, err := ParsePrivateKey(s.Params, b)
	if err != nil {
		t.Fatalf("ParsePrivateKey: %v", err)
	}
	if !bytes.Equal(priv2.Bytes(), b) {
		t.Fatal("private key round trip through Bytes/ParsePrivateKey changed encoding")
	}
}

func TestSignRejectsOverlongContext(t *testing.T) {
	s := NewSigner44()
	_, priv, err := s.Keygen(rand.Reader)
	if err != nil {
		t.Fatalf("Keygen: %v", err)
	}
	ctx := bytes.Repeat([]byte{0x01}, 256)
	if _, err := s.Sign(rand.Reader, priv, []byte("msg"), ctx); err == nil {
		t.Fatal("Sign accepted a 256-byte context string")
	}
}
