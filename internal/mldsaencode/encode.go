// Package mldsaencode implements the signature scheme's bit-packers:
// 10-bit t1, 13-bit signed t0, 3-/4-bit eta-bounded secrets, 18-/20-bit
// masked z, 4-/6-bit w1, and the variable-length hint encoding. Ported
// from KarpelesLab-mldsa's encode.go (the exact FIPS 204 packing this
// module needs and zkDilithium's own encoding package lacks, since
// zkDilithium's own variant never splits t into t1/t0 and has
// no hint mechanism at all).
package mldsaencode

import (
	"clwe/internal/mldsafield"
	"clwe/internal/mldsapoly"
	"clwe/clweerr"
)

const n = mldsafield.N

// PackT1 packs a polynomial with 10-bit unsigned coefficients.
func PackT1(f *mldsapoly.Poly) []byte {
	b := make([]byte, n*10/8)
	for i := 0; i < n; i += 4 {
		x := uint64(f[i]) | uint64(f[i+1])<<10 | uint64(f[i+2])<<20 | uint64(f[i+3])<<30
		j := i / 4 * 5
		b[j] = byte(x)
		b[j+1] = byte(x >> 8)
		b[j+2] = byte(x >> 16)
		b[j+3] = byte(x >> 24)
		b[j+4] = byte(x >> 32)
	}
	return b
}

// UnpackT1 unpacks a polynomial with 10-bit unsigned coefficients.
func UnpackT1(b []byte) (mldsapoly.Poly, error) {
	if len(b) != n*10/8 {
		return mldsapoly.Poly{}, clweerr.ErrMalformedEncoding
	}
	var f mldsapoly.Poly
	for i := 0; i < n; i += 4 {
		x := uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 | uint64(b[4])<<32
		f[i] = uint32(x & 0x3FF)
		f[i+1] = uint32((x >> 10) & 0x3FF)
		f[i+2] = uint32((x >> 20) & 0x3FF)
		f[i+3] = uint32((x >> 30) & 0x3FF)
		b = b[5:]
	}
	return f, nil
}

// PackT0 packs a polynomial with 13-bit signed coefficients (t0, in
// [-(2^12-1), 2^12]).
func PackT0(f *mldsapoly.Poly) []byte {
	b := make([]byte, n*13/8)
	const center = 1 << 12
	idx := 0
	for i := 0; i < n; i += 8 {
		var x1, x2 uint64
		x1 = uint64(mldsafield.Sub(center, f[i]))
		x1 |= uint64(mldsafield.Sub(center, f[i+1])) << 13
		x1 |= uint64(mldsafield.Sub(center, f[i+2])) << 26
		x1 |= uint64(mldsafield.Sub(center, f[i+3])) << 39
		a := uint64(mldsafield.Sub(center, f[i+4]))
		x1 |= a << 52
		x2 = a >> 12
		x2 |= uint64(mldsafield.Sub(center, f[i+5])) << 1
		x2 |= uint64(mldsafield.Sub(center, f[i+6])) << 14
		x2 |= uint64(mldsafield.Sub(center, f[i+7])) << 27

		b[idx] = byte(x1)
		b[idx+1] = byte(x1 >> 8)
		b[idx+2] = byte(x1 >> 16)
		b[idx+3] = byte(x1 >> 24)
		b[idx+4] = byte(x1 >> 32)
		b[idx+5] = byte(x1 >> 40)
		b[idx+6] = byte(x1 >> 48)
		b[idx+7] = byte(x1 >> 56)
		b[idx+8] = byte(x2)
		b[idx+9] = byte(x2 >> 8)
		b[idx+10] = byte(x2 >> 16)
		b[idx+11] = byte(x2 >> 24)
		b[idx+12] = byte(x2 >> 32)
		idx += 13
	}
	return b
}

// UnpackT0 unpacks a polynomial with 13-bit signed coefficients.
func UnpackT0(b []byte) (mldsapoly.Poly, error) {
	if len(b) != n*13/8 {
		return mldsapoly.Poly{}, clweerr.ErrMalformedEncoding
	}
	var f mldsapoly.Poly
	const center = 1 << 12
	const mask = (1 << 13) - 1
	for i := 0; i < n; i += 8 {
		x1 := uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
			uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
		x2 := uint64(b[8]) | uint64(b[9])<<8 | uint64(b[10])<<16 | uint64(b[11])<<24 | uint64(b[12])<<32
		b = b[13:]

		f[i] = mldsafield.Sub(center, uint32(x1&mask))
		f[i+1] = mldsafield.Sub(center, uint32((x1>>13)&mask))
		f[i+2] = mldsafield.Sub(center, uint32((x1>>26)&mask))
		f[i+3] = mldsafield.Sub(center, uint32((x1>>39)&mask))
		f[i+4] = mldsafield.Sub(center, uint32(((x1>>52)|(x2<<12))&mask))
		f[i+5] = mldsafield.Sub(center, uint32((x2>>1)&mask))
		f[i+6] = mldsafield.Sub(center, uint32((x2>>14)&mask))
		f[i+7] = mldsafield.Sub(center, uint32((x2>>27)&mask))
	}
	return f, nil
}

// PackEta2 packs a polynomial with coefficients in [-2,2] using 3 bits each.
func PackEta2(f *mldsapoly.Poly) []byte {
	b := make([]byte, n*3/8)
	for i := 0; i < n; i += 8 {
		var x uint32
		for j := 0; j < 8; j++ {
			x |= mldsafield.Sub(2, f[i+j]) << (3 * j)
		}
		b[i/8*3] = byte(x)
		b[i/8*3+1] = byte(x >> 8)
		b[i/8*3+2] = byte(x >> 16)
	}
	return b
}

// UnpackEta2 unpacks a polynomial with coefficients in [-2,2],
// rejecting any 3-bit group encoding a value >= 5.
func UnpackEta2(b []byte) (mldsapoly.Poly, error) {
	if len(b) != n*3/8 {
		return mldsapoly.Poly{}, clweerr.ErrMalformedEncoding
	}
	var f mldsapoly.Poly
	for i := 0; i < n; i += 8 {
		x := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
		msbs := x & 0o44444444
		mask := (msbs >> 1) | (msbs >> 2)
		if mask&x != 0 {
			return mldsapoly.Poly{}, clweerr.ErrBoundsViolation
		}
		b = b[3:]
		for j := 0; j < 8; j++ {
			f[i+j] = mldsafield.Sub(2, (x>>(3*j))&0x7)
		}
	}
	return f, nil
}

// PackEta4 packs a polynomial with coefficients in [-4,4] using 4 bits each.
func PackEta4(f *mldsapoly.Poly) []byte {
	b := make([]byte, n*4/8)
	for i := 0; i < n; i += 2 {
		b[i/2] = byte(mldsafield.Sub(4, f[i])) | byte(mldsafield.Sub(4, f[i+1]))<<4
	}
	return b
}

// UnpackEta4 unpacks a polynomial with coefficients in [-4,4],
// rejecting any nibble encoding a value >= 9.
func UnpackEta4(b []byte) (mldsapoly.Poly, error) {
	if len(b) != n*4/8 {
		return mldsapoly.Poly{}, clweerr.ErrMalformedEncoding
	}
	var f mldsapoly.Poly
	for i := 0; i < n; i += 8 {
		x := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
		msbs := x & 0x88888888
		mask := (msbs >> 1) | (msbs >> 2) | (msbs >> 3)
		if mask&x != 0 {
			return mldsapoly.Poly{}, clweerr.ErrBoundsViolation
		}
		b = b[4:]
		for j := 0; j < 8; j++ {
			f[i+j] = mldsafield.Sub(4, (x>>(4*j))&0xF)
		}
	}
	return f, nil
}

// PackZ17 packs a z polynomial with coefficients in [-(2^17-1), 2^17]
// using 18 bits each.
func PackZ17(f *mldsapoly.Poly) []byte {
	b := make([]byte, n*18/8)
	const gamma1 = 1 << 17
	idx := 0
	for i := 0; i < n; i += 4 {
		var x1, x2 uint64
		x1 = uint64(mldsafield.Sub(gamma1, f[i]))
		x1 |= uint64(mldsafield.Sub(gamma1, f[i+1])) << 18
		x1 |= uint64(mldsafield.Sub(gamma1, f[i+2])) << 36
		x2 = uint64(mldsafield.Sub(gamma1, f[i+3]))
		x1 |= x2 << 54
		x2 >>= 10

		b[idx] = byte(x1)
		b[idx+1] = byte(x1 >> 8)
		b[idx+2] = byte(x1 >> 16)
		b[idx+3] = byte(x1 >> 24)
		b[idx+4] = byte(x1 >> 32)
		b[idx+5] = byte(x1 >> 40)
		b[idx+6] = byte(x1 >> 48)
		b[idx+7] = byte(x1 >> 56)
		b[idx+8] = byte(x2)
		idx += 9
	}
	return b
}

// UnpackZ17 unpacks a z polynomial packed with PackZ17.
func UnpackZ17(b []byte) (mldsapoly.Poly, error) {
	if len(b) != n*18/8 {
		return mldsapoly.Poly{}, clweerr.ErrMalformedEncoding
	}
	var f mldsapoly.Poly
	const gamma1 = 1 << 17
	const mask = (1 << 18) - 1
	for i := 0; i < n; i += 4 {
		x1 := uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
			uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
		x2 := uint64(b[8])
		b = b[9:]
		f[i] = mldsafield.Sub(gamma1, uint32(x1&mask))
		f[i+1] = mldsafield.Sub(gamma1, uint32((x1>>18)&mask))
		f[i+2] = mldsafield.Sub(gamma1, uint32((x1>>36)&mask))
		f[i+3] = mldsafield.Sub(gamma1, uint32(((x1>>54)|(x2<<10))&mask))
	}
	return f, nil
}

// PackZ19 packs a z polynomial with coefficients in [-(2^19-1), 2^19]
// using 20 bits each.
func PackZ19(f *mldsapoly.Poly) []byte {
	b := make([]byte, n*20/8)
	const gamma1 = 1 << 19
	idx := 0
	for i := 0; i < n; i += 4 {
		var x1, x2 uint64
		x1 = uint64(mldsafield.Sub(gamma1, f[i]))
		x1 |= uint64(mldsafield.Sub(gamma1, f[i+1])) << 20
		x1 |= uint64(mldsafield.Sub(gamma1, f[i+2])) << 40
		x2 = uint64(mldsafield.Sub(gamma1, f[i+3]))
		x1 |= x2 << 60
		x2 >>= 4

		b[idx] = byte(x1)
		b[idx+1] = byte(x1 >> 8)
		b[idx+2] = byte(x1 >> 16)
		b[idx+3] = byte(x1 >> 24)
		b[idx+4] = byte(x1 >> 32)
		b[idx+5] = byte(x1 >> 40)
		b[idx+6] = byte(x1 >> 48)
		b[idx+7] = byte(x1 >> 56)
		b[idx+8] = byte(x2)
		b[idx+9] = byte(x2 >> 8)
		idx += 10
	}
	return b
}

// UnpackZ19 unpacks a z polynomial packed with PackZ19.
func UnpackZ19(b []byte) (mldsapoly.Poly, error) {
	if len(b) != n*20/8 {
		return mldsapoly.Poly{}, clweerr.ErrMalformedEncoding
	}
	var f mldsapoly.Poly
	const gamma1 = 1 << 19
	const mask = (1 << 20) - 1
	for i := 0; i < n; i += 4 {
		x1 := uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
			uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
		x2 := uint64(b[8]) | uint64(b[9])<<8
		b = b[10:]
		f[i] = mldsafield.Sub(gamma1, uint32(x1&mask))
		f[i+1] = mldsafield.Sub(gamma1, uint32((x1>>20)&mask))
		f[i+2] = mldsafield.Sub(gamma1, uint32((x1>>40)&mask))
		f[i+3] = mldsafield.Sub(gamma1, uint32(((x1>>60)|(x2<<4))&mask))
	}
	return f, nil
}

// PackW1_4 packs w1 with 4-bit coefficients (ML-DSA-65/87).
func PackW1_4(f *mldsapoly.Poly) []byte {
	b := make([]byte, n*4/8)
	for i := 0; i < n; i += 2 {
		b[i/2] = byte(f[i]) | byte(f[i+1])<<4
	}
	return b
}

// PackW1_6 packs w1 with 6-bit coefficients (ML-DSA-44).
func PackW1_6(f *mldsapoly.Poly) []byte {
	b := make([]byte, n*6/8)
	for i := 0; i < n; i += 4 {
		x := f[i] | f[i+1]<<6 | f[i+2]<<12 | f[i+3]<<18
		b[i/4*3] = byte(x)
		b[i/4*3+1] = byte(x >> 8)
		b[i/4*3+2] = byte(x >> 16)
	}
	return b
}

// PackHint packs a vector of 0/1 hint polynomials into the
// variable-length FIPS 204 hint encoding: omega position bytes
// followed by k running-total bytes.
func PackHint(hints []mldsapoly.Poly, omega int) []byte {
	k := len(hints)
	b := make([]byte, omega+k)
	idx := 0
	for i := 0; i < k; i++ {
		for j := 0; j < n; j++ {
			if hints[i][j] != 0 {
				b[idx] = byte(j)
				idx++
			}
		}
		b[omega+i] = byte(idx)
	}
	return b
}

// UnpackHint unpacks and validates the hint encoding, rejecting any
// non-increasing run or out-of-range running total per FIPS 204's
// decoding checks.
func UnpackHint(b []byte, k, omega int) ([]mldsapoly.Poly, error) {
	if len(b) != omega+k {
		return nil, clweerr.ErrMalformedEncoding
	}
	hints := make([]mldsapoly.Poly, k)
	idx := 0
	for i := 0; i < k; i++ {
		limit := int(b[omega+i])
		if limit < idx || limit > omega {
			return nil, clweerr.ErrBoundsViolation
		}
		prev := idx
		for ; idx < limit; idx++ {
			pos := b[idx]
			if idx > prev && b[idx-1] >= pos {
				return nil, clweerr.ErrBoundsViolation
			}
			hints[i][pos] = 1
		}
	}
	for ; idx < omega; idx++ {
		if b[idx] != 0 {
			return nil, clweerr.ErrBoundsViolation
		}
	}
	return hints, nil
}
