package mldsaencode

import (
	"testing"

	"clwe/internal/mldsafield"
	"clwe/internal/mldsapoly"
)

func TestPackUnpackT1RoundTrip(t *testing.T) {
	var p mldsapoly.Poly
	for i := range p {
		p[i] = uint32(i % (1 << 10))
	}
	packed := PackT1(&p)
	got, err := UnpackT1(packed)
	if err != nil {
		t.Fatalf("UnpackT1: %v", err)
	}
	for i := range p {
		if got[i] != p[i] {
			t.Fatalf("UnpackT1[%d] = %d, want %d", i, got[i], p[i])
		}
	}
}

func TestPackUnpackT0RoundTrip(t *testing.T) {
	var p mldsapoly.Poly
	for i := range p {
		p[i] = mldsafield.Sub(0, uint32(i%(1<<12)))
	}
	packed := PackT0(&p)
	got, err := UnpackT0(packed)
	if err != nil {
		t.Fatalf("UnpackT0: %v", err)
	}
	for i := range p {
		if got[i] != p[i] {
			t.Fatalf("UnpackT0[%d] = %d, want %d", i, got[i], p[i])
		}
	}
}

// centered maps a signed coefficient in [-bound,bound] to its field
// representative, the inverse of what PackEta2/PackEta4 expect.
func centered(c int32) uint32 {
	if c >= 0 {
		return uint32(c)
	}
	return mldsafield.Q - uint32(-c)
}

func TestPackUnpackEta2RoundTrip(t *testing.T) {
	var p mldsapoly.Poly
	cs := []int32{2, 1, 0, -1, -2}
	for i := range p {
		p[i] = centered(cs[i%len(cs)])
	}
	packed := PackEta2(&p)
	got, err := UnpackEta2(packed)
	if err != nil {
		t.Fatalf("UnpackEta2: %v", err)
	}
	for i := range p {
		if got[i] != p[i] {
			t.Fatalf("UnpackEta2[%d] = %d, want %d", i, got[i], p[i])
		}
	}
}

func TestPackUnpackEta4RoundTrip(t *testing.T) {
	var p mldsapoly.Poly
	cs := []int32{4, 3, 2, 1, 0, -1, -2, -3, -4}
	for i := range p {
		p[i] = centered(cs[i%len(cs)])
	}
	packed := PackEta4(&p)
	got, err := UnpackEta4(packed)
	if err != nil {
		t.Fatalf("UnpackEta4: %v", err)
	}
	for i := range p {
		if got[i] != p[i] {
			t.Fatalf("UnpackEta4[%d] = %d, want %d", i, got[i], p[i])
		}
	}
}

func TestPackUnpackZ17RoundTrip(t *testing.T) {
	var p mldsapoly.Poly
	const gamma1 = 1 << 17
	for i := range p {
		c := int32(i%(2*gamma1)) - gamma1 + 1 // spans (-gamma1, gamma1]
		p[i] = centered(c)
	}
	packed := PackZ17(&p)
	got, err := UnpackZ17(packed)
	if err != nil {
		t.Fatalf("UnpackZ17: %v", err)
	}
	for i := range p {
		if got[i] != p[i] {
			t.Fatalf("UnpackZ17[%d] = %d, want %d", i, got[i], p[i])
		}
	}
}

func TestUnpackT1RejectsShortInput(t *testing.T) {
	_, err := UnpackT1(make([]byte, 3))
	if err == nil {
		t.Fatal("UnpackT1 accepted a too-short buffer")
	}
}
