package mldsafield

import "testing"

func TestAddSubInverse(t *testing.T) {
	for a := uint32(0); a < Q; a += 104949 {
		for b := uint32(0); b < Q; b += 254321 {
			if Sub(Add(a, b), b) != a {
				t.Fatalf("Add/Sub inverse failed for a=%d b=%d", a, b)
			}
		}
	}
}

func TestNegInvolution(t *testing.T) {
	for _, a := range []uint32{0, 1, Q - 1, QMinus1Div2} {
		if Neg(Neg(a)) != a {
			t.Fatalf("Neg(Neg(%d)) != %d", a, a)
		}
	}
}

func TestMulInvIsIdentity(t *testing.T) {
	for _, a := range []uint32{1, 2, 12345, Q - 1} {
		inv := Inv(a)
		if Mul(a, inv) != 1 {
			t.Fatalf("Mul(%d, Inv(%d)) != 1", a, a)
		}
	}
}

func TestExpMatchesRepeatedMul(t *testing.T) {
	a := uint32(7)
	got := Exp(a, 5)
	want := Mul(Mul(Mul(Mul(a, a), a), a), a)
	if got != want {
		t.Fatalf("Exp(7,5) = %d, want %d", got, want)
	}
}

func TestMontRoundTrip(t *testing.T) {
	for _, a := range []uint32{0, 1, 9999, Q - 1} {
		if got := FromMont(ToMont(a)); got != a {
			t.Fatalf("FromMont(ToMont(%d)) = %d, want %d", a, got, a)
		}
	}
}

func TestBrvInvolution(t *testing.T) {
	for x := 0; x < 8; x++ {
		if got := Brv(Brv(uint8(x))); got != uint8(x) {
			t.Fatalf("Brv(Brv(%d)) = %d, want %d", x, got, x)
		}
	}
}
