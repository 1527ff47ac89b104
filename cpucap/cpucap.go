// Package cpucap probes the host's CPU for the SIMD extensions a
// pluggable NTT backend could target. Only the scalar backend ships
// in this module, and neither mldsa nor mlkem imports this package:
// nothing calls Probe or branches on its result, and the scheme
// constructors take no capability override.
package cpucap

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// Architecture identifies the host instruction set family.
type Architecture int

const (
	ArchUnknown Architecture = iota
	ArchX86_64
	ArchARM64
	ArchRISCV64
	ArchPPC64
)

func (a Architecture) String() string {
	switch a {
	case ArchX86_64:
		return "x86_64"
	case ArchARM64:
		return "arm64"
	case ArchRISCV64:
		return "riscv64"
	case ArchPPC64:
		return "ppc64"
	default:
		return "unknown"
	}
}

// SIMDLevel names the widest vector extension Features reports
// available. The x86 values (SSE, AVX2, AVX512) run from narrowest
// to widest; the NEON, SVE and RVV values follow them and are not
// ranked against the x86 ones.
type SIMDLevel int

const (
	SIMDNone SIMDLevel = iota
	SIMDSSE
	SIMDAVX2
	SIMDAVX512
	SIMDNEON
	SIMDSVE
	SIMDRVV
)

func (l SIMDLevel) String() string {
	switch l {
	case SIMDSSE:
		return "sse"
	case SIMDAVX2:
		return "avx2"
	case SIMDAVX512:
		return "avx512"
	case SIMDNEON:
		return "neon"
	case SIMDSVE:
		return "sve"
	case SIMDRVV:
		return "rvv"
	default:
		return "none"
	}
}

// Features records what the host CPU supports. Every field is
// informational only: no code in this module branches on any of them.
type Features struct {
	Architecture Architecture
	MaxSIMD      SIMDLevel

	HasAVX2     bool
	HasAVX512F  bool
	HasAVX512DQ bool
	HasAVX512BW bool
	HasAVX512VL bool

	HasNEON bool
	HasSVE  bool

	HasRVV bool
	RVVLen int

	HasVSX     bool
	HasAltivec bool
}

// String renders a one-line summary, mirroring the to_string() method
// the original CPUFeatures type exposes.
func (f Features) String() string {
	return f.Architecture.String() + "/" + f.MaxSIMD.String()
}

// Probe detects the running host's capabilities using
// golang.org/x/sys/cpu. RISC-V and PowerPC feature bits are always
// false since golang.org/x/sys/cpu does not expose RVV/VSX detection
// and this module ships no backend for either extension to gate.
func Probe() Features {
	var f Features

	switch runtime.GOARCH {
	case "amd64":
		f.Architecture = ArchX86_64
		f.HasAVX2 = cpu.X86.HasAVX2
		f.HasAVX512F = cpu.X86.HasAVX512F
		f.HasAVX512DQ = cpu.X86.HasAVX512DQ
		f.HasAVX512BW = cpu.X86.HasAVX512BW
		f.HasAVX512VL = cpu.X86.HasAVX512VL
		switch {
		case f.HasAVX512F:
			f.MaxSIMD = SIMDAVX512
		case f.HasAVX2:
			f.MaxSIMD = SIMDAVX2
		default:
			f.MaxSIMD = SIMDSSE
		}
	case "arm64":
		f.Architecture = ArchARM64
		f.HasNEON = true // baseline on arm64
		f.HasSVE = cpu.ARM64.HasSVE
		if f.HasSVE {
			f.MaxSIMD = SIMDSVE
		} else {
			f.MaxSIMD = SIMDNEON
		}
	case "riscv64":
		f.Architecture = ArchRISCV64
		f.MaxSIMD = SIMDNone
	case "ppc64", "ppc64le":
		f.Architecture = ArchPPC64
		f.MaxSIMD = SIMDNone
	default:
		f.Architecture = ArchUnknown
		f.MaxSIMD = SIMDNone
	}

	return f
}

// Scalar returns the zero-capability Features value, useful for
// tests that want to force the scalar-only code path regardless of
// the host running them.
func Scalar() Features {
	return Features{Architecture: Probe().Architecture, MaxSIMD: SIMDNone}
}
