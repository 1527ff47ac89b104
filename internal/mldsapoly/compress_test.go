package mldsapoly

import (
	"testing"

	"clwe/internal/mldsafield"
)

func TestPower2RoundReconstructs(t *testing.T) {
	for _, r := range []uint32{0, 1, 4096, 8192, mldsafield.Q - 1, mldsafield.QMinus1Div2} {
		r1, r0 := Power2Round(r)
		got := mldsafield.Add(mldsafield.Mod(int64(r1)<<mldsafield.D), r0)
		if got != r {
			t.Fatalf("Power2Round(%d) = (%d,%d) does not reconstruct: got %d", r, r1, r0, got)
		}
	}
}

func TestMakeHintUseHintAgree(t *testing.T) {
	for _, gamma2 := range []uint32{Gamma2QMinus1Div32, Gamma2QMinus1Div88} {
		for _, r := range []uint32{0, 1000, 5000000, mldsafield.Q - 1} {
			for _, z := range []uint32{0, 1, gamma2} {
				hint := MakeHint(z, r, gamma2)
				r0 := mldsafield.Add(r, z)
				want := HighBits(r0, gamma2)
				got := UseHint(hint, r, gamma2)
				if hint == 1 && got != want {
					t.Fatalf("UseHint disagreed with HighBits(r+z) for gamma2=%d r=%d z=%d: got %d, want %d", gamma2, r, z, got, want)
				}
			}
		}
	}
}

func TestDecomposeReconstructs(t *testing.T) {
	for _, gamma2 := range []uint32{Gamma2QMinus1Div32, Gamma2QMinus1Div88} {
		for _, r := range []uint32{0, 12345, mldsafield.Q - 1} {
			r1, r0 := Decompose(r, gamma2)
			got := mldsafield.Mod(int64(r1)*int64(gamma2)*2 + int64(r0))
			if got != r {
				t.Fatalf("Decompose(%d,%d) = (%d,%d) does not reconstruct: got %d", r, gamma2, r1, r0, got)
			}
		}
	}
}
