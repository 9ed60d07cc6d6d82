package hash

import "github.com/klauspost/cpuid/v2"

// Vectorized computes many hashes sharing one modulo in a single call.
var Vectorized func(out []uint32, n []uint32, s []uint32, max uint32) = vectorizedGeneric

var vectorizedParallelism int = 1

func init() {
	// wider batches pay off on cores with 512-bit vector units
	if cpuid.CPU.Supports(cpuid.AVX512F, cpuid.AVX512DQ) {
		vectorizedParallelism = 16
	} else if cpuid.CPU.Supports(cpuid.AVX2) {
		vectorizedParallelism = 8
	}
}

// VectorizedParallelism reports the recommended number of hashes to compute
// per Vectorized call on this platform. Never returns 0.
func VectorizedParallelism() int {
	return vectorizedParallelism
}

func vectorizedGeneric(out []uint32, n []uint32, s []uint32, max uint32) {
	for i := range out {
		out[i] = Hash(n[i], s[i], max)
	}
}
