package metrics

import (
	"math"

	"github.com/san-kum/wavepkt/internal/packet"
	"github.com/san-kum/wavepkt/internal/sim"
)

// SpectralCentroid is the power-weighted mean frequency over the DC and
// positive-frequency bins, averaged across frames. Bins are picked by index
// and weighted by the magnitude of their label, so an axis with negated
// labels gives the same result. Frames without a spectrum are ignored.
type SpectralCentroid struct {
	name    string
	axis    []float64
	sum     float64
	samples int
}

// NewSpectralCentroid takes the frequency of each spectrum bin, as returned
// by Packet.SpectrumAxis.
func NewSpectralCentroid(axis []float64) *SpectralCentroid {
	return &SpectralCentroid{
		name: "spectral_centroid",
		axis: append([]float64(nil), axis...),
	}
}

func (s *SpectralCentroid) Name() string { return s.name }

func (s *SpectralCentroid) Observe(f sim.Frame) {
	if len(f.Spectrum) != len(s.axis) {
		return
	}

	_, hi := packet.PositiveBins(len(f.Spectrum))
	if hi == 0 {
		hi = len(f.Spectrum)
	}

	var weighted, total float64
	for i, p := range f.Spectrum[:hi] {
		weighted += math.Abs(s.axis[i]) * p
		total += p
	}
	if total == 0 {
		return
	}

	s.sum += weighted / total
	s.samples++
}

func (s *SpectralCentroid) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.sum / float64(s.samples)
}

func (s *SpectralCentroid) Reset() {
	s.sum = 0
	s.samples = 0
}

// Standard returns a fresh set of the metrics reported by run and ensemble.
// axis may be nil, in which case the spectral centroid is left out.
func Standard(axis []float64) []sim.Metric {
	ms := []sim.Metric{NewEnergy(), NewEnergyDrift(), NewPeakAmplitude()}
	if axis != nil {
		ms = append(ms, NewSpectralCentroid(axis))
	}
	return ms
}
