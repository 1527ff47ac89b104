package mlkempoly

import (
	"testing"

	"clwe/internal/mlkemfield"
)

func TestAddSubInverse(t *testing.T) {
	var a, b, sum, back Poly
	for i := range a {
		a[i] = int16(i)
		b[i] = int16(2 * i)
	}
	sum.Add(&a, &b)
	back.Sub(&sum, &b)
	for i := range a {
		if mlkemfield.Normalize(back[i]) != mlkemfield.Normalize(a[i]) {
			t.Fatalf("Add/Sub inverse failed at %d", i)
		}
	}
}

func TestMatVecMulHatTransposeMatchesManual(t *testing.T) {
	const k, l = 2, 3
	a := make([]Poly, k*l)
	for i := range a {
		for j := range a[i] {
			a[i][j] = int16((i*l + j + j) % 100)
		}
		a[i].NTT()
	}
	v := NewVec(k)
	for i := range v {
		for j := range v[i] {
			v[i][j] = int16((i + j) % 50)
		}
		v[i].NTT()
	}

	got := MatVecMulHatTranspose(a, k, l, v)
	if len(got) != l {
		t.Fatalf("MatVecMulHatTranspose returned %d entries, want %d", len(got), l)
	}

	for j := 0; j < l; j++ {
		var want, t1 Poly
		for i := 0; i < k; i++ {
			t1.MulHat(&a[i*l+j], &v[i])
			want.Add(&t1, &want)
		}
		for x := range want {
			if mlkemfield.Normalize(got[j][x]) != mlkemfield.Normalize(want[x]) {
				t.Fatalf("MatVecMulHatTranspose[%d][%d] mismatch", j, x)
			}
		}
	}
}

func TestDotHatZeroVector(t *testing.T) {
	v := NewVec(3)
	var p Poly
	DotHat(&p, v, v)
	for i, x := range p {
		if mlkemfield.Normalize(x) != 0 {
			t.Fatalf("DotHat of zero vectors[%d] = %d, want 0", i, mlkemfield.Normalize(x))
		}
	}
}
