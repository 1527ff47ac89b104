// Package colour implements the presentation-layer bijection between
// a 32-bit word and four RGBA byte channels. It mirrors the
// ColorValue view the original firmware overlays on coefficient
// bytes for visualization and debugging: nothing in mldsa or mlkem
// calls into this package, and colour.Value never participates in
// field arithmetic. Callers who want the colour view apply it to
// already-serialized key/ciphertext/signature bytes.
package colour

// Value is an RGBA quadruple, bijective with a uint32 via a
// big-endian packing (R is the most significant byte).
type Value struct {
	R, G, B, A byte
}

// FromUint32 splits a 32-bit word into its four channels.
func FromUint32(x uint32) Value {
	return Value{
		R: byte(x >> 24),
		G: byte(x >> 16),
		B: byte(x >> 8),
		A: byte(x),
	}
}

// Uint32 recombines the four channels into a 32-bit word.
func (v Value) Uint32() uint32 {
	return uint32(v.R)<<24 | uint32(v.G)<<16 | uint32(v.B)<<8 | uint32(v.A)
}

// Encode reshapes a byte slice into its colour-value view, four
// bytes at a time. If len(b) is not a multiple of 4, the final
// partial word is zero-padded on the low end, mirroring how the
// original encoder pads a trailing polynomial tail.
func Encode(b []byte) []Value {
	n := (len(b) + 3) / 4
	out := make([]Value, n)
	for i := 0; i < n; i++ {
		var word [4]byte
		copy(word[:], b[i*4:min(len(b), i*4+4)])
		out[i] = Value{R: word[0], G: word[1], B: word[2], A: word[3]}
	}
	return out
}

// Decode is the inverse of Encode, given the original byte length
// (needed to strip the zero padding Encode may have added).
func Decode(vs []Value, length int) []byte {
	out := make([]byte, len(vs)*4)
	for i, v := range vs {
		out[i*4] = v.R
		out[i*4+1] = v.G
		out[i*4+2] = v.B
		out[i*4+3] = v.A
	}
	if length < len(out) {
		out = out[:length]
	}
	return out
}
