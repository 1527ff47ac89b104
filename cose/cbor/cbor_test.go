package cbor

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeUintRoundTrip(t *testing.T) {
	for _, n := range []uint64{0, 23, 24, 255, 256, 65535, 65536, 1 << 32, 1 << 40} {
		b := EncodeUint(n)
		got, consumed, err := DecodeUint(b)
		if err != nil {
			t.Fatalf("DecodeUint(%d): %v", n, err)
		}
		if got != n {
			t.Fatalf("DecodeUint(EncodeUint(%d)) = %d", n, got)
		}
		if consumed != len(b) {
			t.Fatalf("DecodeUint(%d) consumed %d, want %d", n, consumed, len(b))
		}
	}
}

func TestEncodeDecodeNegIntRoundTrip(t *testing.T) {
	for _, n := range []int64{-1, -24, -25, -256, -257, -65536} {
		b := EncodeNegInt(n)
		got, _, err := DecodeInt(b)
		if err != nil {
			t.Fatalf("DecodeInt(%d): %v", n, err)
		}
		if got != n {
			t.Fatalf("DecodeInt(EncodeNegInt(%d)) = %d", n, got)
		}
	}
}

func TestEncodeDecodeBstrRoundTrip(t *testing.T) {
	for _, b := range [][]byte{{}, {1}, bytes.Repeat([]byte{0xAB}, 300)} {
		enc := EncodeBstr(b)
		got, consumed, err := DecodeBstr(enc)
		if err != nil {
			t.Fatalf("DecodeBstr: %v", err)
		}
		if !bytes.Equal(got, b) {
			t.Fatalf("DecodeBstr(EncodeBstr(b)) mismatch for len %d", len(b))
		}
		if consumed != len(enc) {
			t.Fatalf("DecodeBstr consumed %d, want %d", consumed, len(enc))
		}
	}
}

func TestDecodeBstrRejectsTruncated(t *testing.T) {
	enc := EncodeBstr([]byte{1, 2, 3, 4})
	_, _, err := DecodeBstr(enc[:len(enc)-1])
	if err == nil {
		t.Fatal("DecodeBstr accepted a truncated byte string")
	}
}

func TestEncodeDecodeArrayHeadRoundTrip(t *testing.T) {
	enc := EncodeArray(4)
	n, _, err := DecodeArrayHead(enc)
	if err != nil {
		t.Fatalf("DecodeArrayHead: %v", err)
	}
	if n != 4 {
		t.Fatalf("DecodeArrayHead = %d, want 4", n)
	}
}

func TestEncodeDecodeMapHeadRoundTrip(t *testing.T) {
	enc := EncodeMap(1)
	n, _, err := DecodeMapHead(enc)
	if err != nil {
		t.Fatalf("DecodeMapHead: %v", err)
	}
	if n != 1 {
		t.Fatalf("DecodeMapHead = %d, want 1", n)
	}
}

func TestDecodeUintRejectsWrongMajorType(t *testing.T) {
	enc := EncodeBstr([]byte{1})
	_, _, err := DecodeUint(enc)
	if err == nil {
		t.Fatal("DecodeUint accepted a byte-string encoding")
	}
}
