package cpucap

import "testing"

func TestArchitectureStringKnownAndUnknown(t *testing.T) {
	cases := map[Architecture]string{
		ArchX86_64:  "x86_64",
		ArchARM64:   "arm64",
		ArchRISCV64: "riscv64",
		ArchPPC64:   "ppc64",
		ArchUnknown: "unknown",
	}
	for a, want := range cases {
		if got := a.String(); got != want {
			t.Fatalf("Architecture(%d).String() = %q, want %q", a, got, want)
		}
	}
}

func TestSIMDLevelStringKnownAndUnknown(t *testing.T) {
	cases := map[SIMDLevel]string{
		SIMDSSE:    "sse",
		SIMDAVX2:   "avx2",
		SIMDAVX512: "avx512",
		SIMDNEON:   "neon",
		SIMDSVE:    "sve",
		SIMDRVV:    "rvv",
		SIMDNone:   "none",
	}
	for l, want := range cases {
		if got := l.String(); got != want {
			t.Fatalf("SIMDLevel(%d).String() = %q, want %q", l, got, want)
		}
	}
}

func TestProbeReturnsKnownArchitectureOnSupportedGOARCH(t *testing.T) {
	f := Probe()
	if f.Architecture == ArchUnknown {
		t.Skip("running on an architecture this package does not recognize")
	}
	if f.String() == "" {
		t.Fatal("Features.String() returned empty string")
	}
}

func TestScalarForcesNoSIMD(t *testing.T) {
	f := Scalar()
	if f.MaxSIMD != SIMDNone {
		t.Fatalf("Scalar().MaxSIMD = %v, want SIMDNone", f.MaxSIMD)
	}
	if f.HasAVX2 || f.HasAVX512F || f.HasNEON || f.HasSVE || f.HasRVV {
		t.Fatal("Scalar() set a feature-detection flag")
	}
}

func TestFeaturesStringCombinesArchAndSIMD(t *testing.T) {
	f := Features{Architecture: ArchARM64, MaxSIMD: SIMDNEON}
	if got, want := f.String(), "arm64/neon"; got != want {
		t.Fatalf("Features.String() = %q, want %q", got, want)
	}
}
