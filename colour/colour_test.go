package colour

import (
	"bytes"
	"testing"
)

func TestFromUint32Uint32RoundTrip(t *testing.T) {
	for _, x := range []uint32{0, 1, 0xDEADBEEF, 0xFFFFFFFF} {
		if got := FromUint32(x).Uint32(); got != x {
			t.Fatalf("round trip for %#x gave %#x", x, got)
		}
	}
}

func TestEncodeDecodeRoundTripExactMultiple(t *testing.T) {
	b := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	vs := Encode(b)
	if len(vs) != 2 {
		t.Fatalf("Encode returned %d values, want 2", len(vs))
	}
	got := Decode(vs, len(b))
	if !bytes.Equal(got, b) {
		t.Fatalf("Decode(Encode(b)) = %v, want %v", got, b)
	}
}

func TestEncodeDecodeRoundTripWithPadding(t *testing.T) {
	b := []byte{1, 2, 3, 4, 5}
	vs := Encode(b)
	if len(vs) != 2 {
		t.Fatalf("Encode returned %d values, want 2", len(vs))
	}
	got := Decode(vs, len(b))
	if !bytes.Equal(got, b) {
		t.Fatalf("Decode(Encode(b)) = %v, want %v", got, b)
	}
}
