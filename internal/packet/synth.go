package packet

import "math"

// SynthesizeWavePacket evaluates sum_i A_i*sin(k_i*x - t*w_i) at every
// position x. The result has len(positions) samples.
func SynthesizeWavePacket(amplitudes, positions, wavenumbers, angularFrequencies []float64, t float64) []float64 {
	out := make([]float64, len(positions))
	SynthesizeInto(out, amplitudes, positions, wavenumbers, angularFrequencies, t)
	return out
}

// SynthesizeInto is SynthesizeWavePacket writing into dst, which must hold
// len(positions) samples. Previous contents of dst are overwritten.
func SynthesizeInto(dst, amplitudes, positions, wavenumbers, angularFrequencies []float64, t float64) {
	n := len(amplitudes)
	if len(wavenumbers) != n || len(angularFrequencies) != n {
		panic("packet: component slices differ in length")
	}
	if len(dst) < len(positions) {
		panic("packet: destination shorter than position grid")
	}

	// phase offsets are shared by every position
	shift := make([]float64, n)
	for i, w := range angularFrequencies {
		shift[i] = t * w
	}

	eval := func(start, end int) {
		for j := start; j < end; j++ {
			x := positions[j]
			sum := 0.0
			for i := 0; i < n; i++ {
				sum += amplitudes[i] * math.Sin(wavenumbers[i]*x-shift[i])
			}
			dst[j] = sum
		}
	}

	m := len(positions)
	if n == 0 || n*m < parallelMinWork {
		eval(0, m)
		return
	}
	ParallelFor(m, max(1, parallelMinWork/n), eval)
}
