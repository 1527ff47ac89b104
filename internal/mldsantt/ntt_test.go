package mldsantt

import (
	"testing"

	"clwe/internal/mldsafield"
)

func TestNTTInvNTTRoundTrip(t *testing.T) {
	var p [256]uint32
	for i := range p {
		p[i] = uint32(i)
	}
	orig := p
	NTT(&p)
	InvNTT(&p)
	for i := range p {
		if p[i] != orig[i] {
			t.Fatalf("round trip mismatch at %d: got %d, want %d", i, p[i], orig[i])
		}
	}
}

func TestNTTOfZeroIsZero(t *testing.T) {
	var p [256]uint32
	NTT(&p)
	for i, v := range p {
		if v != 0 {
			t.Fatalf("NTT(0)[%d] = %d, want 0", i, v)
		}
	}
}

func TestBitReverseInvolution(t *testing.T) {
	for x := 0; x < 256; x++ {
		if got := BitReverse(BitReverse(uint8(x))); got != uint8(x) {
			t.Fatalf("BitReverse(BitReverse(%d)) = %d, want %d", x, got, x)
		}
	}
}

func TestMulNTTDistributesOverAdd(t *testing.T) {
	var a, b, c, bc, pb, pc, pbc, sum [256]uint32
	for i := range a {
		a[i] = uint32(i % 100)
		b[i] = uint32((i * 3) % 97)
		c[i] = uint32((i * 5) % 89)
	}
	for i := range bc {
		bc[i] = mldsafield.Add(b[i], c[i])
	}
	MulNTT(&a, &b, &pb)
	MulNTT(&a, &c, &pc)
	MulNTT(&a, &bc, &pbc)
	for i := range sum {
		sum[i] = mldsafield.Add(pb[i], pc[i])
	}
	for i := range pbc {
		if pbc[i] != sum[i] {
			t.Fatalf("MulNTT distributivity failed at %d: %d != %d", i, pbc[i], sum[i])
		}
	}
}
