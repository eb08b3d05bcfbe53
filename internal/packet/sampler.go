package packet

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// candidateFrequencies is the size of the grid frequencies are drawn from.
const candidateFrequencies = 101

// NewSource returns a seeded random source for the sampler.
func NewSource(seed int64) rand.Source {
	return rand.NewSource(uint64(seed))
}

// SampleFrequencies draws n frequencies, with replacement, from an evenly
// spaced grid over [1, maxFrequency]. Each candidate is weighted by f^5, so
// draws concentrate near maxFrequency.
func SampleFrequencies(src rand.Source, n int, maxFrequency float64) []float64 {
	if n <= 0 {
		return []float64{}
	}

	grid := floats.Span(make([]float64, candidateFrequencies), 1, maxFrequency)
	weights := make([]float64, len(grid))
	for i, f := range grid {
		weights[i] = math.Pow(f, 5)
	}

	dist := distuv.NewCategorical(weights, src)
	out := make([]float64, n)
	for i := range out {
		out[i] = grid[int(dist.Rand())]
	}
	return out
}

// SampleAmplitudes draws one amplitude per frequency, uniform on
// [0.9*maxAmplitude*(f/maxFrequency)^2, maxAmplitude].
func SampleAmplitudes(src rand.Source, frequencies []float64, maxFrequency, maxAmplitude float64) []float64 {
	out := make([]float64, len(frequencies))
	for i, f := range frequencies {
		ratio := f / maxFrequency
		u := distuv.Uniform{
			Min: 0.9 * maxAmplitude * ratio * ratio,
			Max: maxAmplitude,
			Src: src,
		}
		out[i] = u.Rand()
	}
	return out
}
