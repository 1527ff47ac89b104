package mlkem

import (
	"bytes"
	"crypto/rand"
	"testing"
)

func TestEncapsulateDecapsulateRoundTrip(t *testing.T) {
	for name, k := range map[string]*KEM{
		"512":  NewKEM512Scheme(),
		"768":  NewKEM768Scheme(),
		"1024": NewKEM1024Scheme(),
	} {
		t.Run(name, func(t *testing.T) {
			pub, priv, err := k.Keygen(rand.Reader)
			if err != nil {
				t.Fatalf("Keygen: %v", err)
			}
			ct, ss1, err := k.Encapsulate(rand.Reader, pub)
			if err != nil {
				t.Fatalf("Encapsulate: %v", err)
			}
			ss2, err := k.Decapsulate(priv, ct)
			if err != nil {
				t.Fatalf("Decapsulate: %v", err)
			}
			if !bytes.Equal(ss1, ss2) {
				t.Fatalf("shared secret mismatch: %x != %x", ss1, ss2)
			}
		})
	}
}

func TestDecapsulateRejectsTamperedCiphertext(t *testing.T) {
	k := NewKEM768Scheme()
	pub, priv, err := k.Keygen(rand.Reader)
	if err != nil {
		t.Fatalf("Keygen: %v", err)
	}
	ct, ss1, err := k.Encapsulate(rand.Reader, pub)
	if err != nil {
		t.Fatalf("Encapsulate: %v", err)
	}
	tampered := append([]byte(nil), ct...)
	tampered[0] ^= 0xFF

	ss2, err := k.Decapsulate(priv, tampered)
	if err != nil {
		t.Fatalf("Decapsulate on tampered ciphertext returned an error instead of implicit rejection: %v", err)
	}
	if bytes.Equal(ss1, ss2) {
		t.Fatal("Decapsulate returned the original shared secret for a tampered ciphertext")
	}
}

func TestDecapsulateImplicitRejectionIsDeterministic(t *testing.T) {
	k := NewKEM768Scheme()
	_, priv, err := k.Keygen(rand.Reader)
	if err != nil {
		t.Fatalf("Keygen: %v", err)
	}
	bogus := make([]byte, k.Params.CiphertextSize())
	ss1, err := k.Decapsulate(priv, bogus)
	if err != nil {
		t.Fatalf("Decapsulate: %v", err)
	}
	ss2, err := k.Decapsulate(priv, bogus)
	if err != nil {
		t.Fatalf("Decapsulate: %v", err)
	}
	if !bytes.Equal(ss1, ss2) {
		t.Fatal("implicit-rejection secret is not deterministic for the same key and ciphertext")
	}
}

func TestPublicKeyBytesRoundTrip(t *testing.T) {
	k := NewKEM1024Scheme()
	pub, _, err := k.Keygen(rand.Reader)
	if err != nil {
		t.Fatalf("Keygen: %v", err)
	}
	b := pub.Bytes()
	if len(b) != k.Params.PublicKeySize() {
		t.Fatalf("public key length = %d, want %d", len(b), k.Params.PublicKeySize())
	}
	pub2, err := ParsePublicKey(k.Params, b)
	if err != nil {
		t.Fatalf("ParsePublicKey: %v", err)
	}
	if !bytes.Equal(pub2.Bytes(), b) {
		t.Fatal("public key round trip through Bytes/ParsePublicKey changed encoding")
	}
}

func TestPrivateKeyBytesRoundTrip(t *testing.T) {
	k := NewKEM512Scheme()
	_, priv, err := k.Keygen(rand.Reader)
	if err != nil {
		t.Fatalf("Keygen: %v", err)
	}
	b := priv.Bytes()
	if len(b) != k.Params.PrivateKeySize() {
		t.Fatalf("private key length = %d, want %d", len(b), k.Params.PrivateKeySize())
	}
	priv2, err := ParsePrivateKey(k.Params, b)
	if err != nil {
		t.Fatalf("ParsePrivateKey: %v", err)
	}
	if !bytes.Equal(priv2.Bytes(), b) {
		t.Fatal("private key round trip through Bytes/ParsePrivateKey changed encoding")
	}
}
