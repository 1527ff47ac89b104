package mlkemntt

import (
	"testing"

	"clwe/internal/mlkemfield"
)

func TestNTTInvNTTRoundTrip(t *testing.T) {
	var p [256]int16
	for i := range p {
		p[i] = int16(i % mlkemfield.Q)
	}
	orig := p
	NTT(&p)
	InvNTT(&p)
	for i := range p {
		got := mlkemfield.Normalize(p[i])
		want := mlkemfield.Normalize(orig[i])
		if got != want {
			t.Fatalf("round trip mismatch at %d: got %d, want %d", i, got, want)
		}
	}
}

func TestNTTOfZeroIsZero(t *testing.T) {
	var p [256]int16
	NTT(&p)
	for i, v := range p {
		if v != 0 {
			t.Fatalf("NTT(0)[%d] = %d, want 0", i, v)
		}
	}
}

func TestMulHatZero(t *testing.T) {
	var a, zero, p [256]int16
	for i := range a {
		a[i] = int16(i)
	}
	MulHat(&p, &a, &zero)
	for i, v := range p {
		if mlkemfield.Normalize(v) != 0 {
			t.Fatalf("MulHat(a,0)[%d] = %d, want 0", i, mlkemfield.Normalize(v))
		}
	}
}

func TestMulHatDistributesOverAdd(t *testing.T) {
	var a, b, c, bc, pb, pc, pbc, sum [256]int16
	for i := range a {
		a[i] = int16(i % 100)
		b[i] = int16((i * 3) % 97)
		c[i] = int16((i * 5) % 89)
	}
	for i := range bc {
		bc[i] = b[i] + c[i]
	}
	MulHat(&pb, &a, &b)
	MulHat(&pc, &a, &c)
	MulHat(&pbc, &a, &bc)
	for i := range sum {
		sum[i] = pb[i] + pc[i]
	}
	for i := range pbc {
		if mlkemfield.Normalize(pbc[i]) != mlkemfield.Normalize(sum[i]) {
			t.Fatalf("MulHat distributivity failed at %d: %d != %d", i, mlkemfield.Normalize(pbc[i]), mlkemfield.Normalize(sum[i]))
		}
	}
}
