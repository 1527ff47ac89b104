package mldsapoly

import "testing"

func TestAddSubInverse(t *testing.T) {
	var a, b Poly
	for i := range a {
		a[i] = uint32(i)
		b[i] = uint32(2 * i)
	}
	sum := Add(&a, &b)
	back := Sub(&sum, &b)
	if !Equal(&back, &a) {
		t.Fatal("Add/Sub inverse failed")
	}
}

func TestNTTInvNTTRoundTrip(t *testing.T) {
	var p Poly
	for i := range p {
		p[i] = uint32(i)
	}
	orig := p
	p.NTT()
	p.InvNTT()
	if !Equal(&p, &orig) {
		t.Fatalf("NTT/InvNTT round trip changed the polynomial: got %v, want %v", p[:4], orig[:4])
	}
}

func TestMatVecMulNTTShape(t *testing.T) {
	const k, l = 3, 2
	a := make([]Poly, k*l)
	v := NewVec(l)
	out := MatVecMulNTT(a, k, l, v)
	if len(out) != k {
		t.Fatalf("MatVecMulNTT returned %d entries, want %d", len(out), k)
	}
}

func TestNormOfZeroIsZero(t *testing.T) {
	var p Poly
	if got := p.Norm(); got != 0 {
		t.Fatalf("Norm of zero poly = %d, want 0", got)
	}
}

func TestCountOnesCountsNonzero(t *testing.T) {
	v := NewVec(2)
	v[0][0] = 1
	v[1][5] = 1
	v[1][9] = 1
	if got := CountOnes(v); got != 3 {
		t.Fatalf("CountOnes = %d, want 3", got)
	}
}
