package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/wavepkt/internal/sim"
)

// PeakAmplitude is the largest |y| seen in any frame.
type PeakAmplitude struct {
	name    string
	peak    float64
	samples int
}

func NewPeakAmplitude() *PeakAmplitude {
	return &PeakAmplitude{name: "peak_amplitude"}
}

func (p *PeakAmplitude) Name() string { return p.name }

func (p *PeakAmplitude) Observe(f sim.Frame) {
	if len(f.Wave) == 0 {
		return
	}
	hi := math.Max(floats.Max(f.Wave), -floats.Min(f.Wave))
	p.peak = math.Max(p.peak, hi)
	p.samples++
}

func (p *PeakAmplitude) Value() float64 {
	return p.peak
}

func (p *PeakAmplitude) Reset() {
	p.peak = 0
	p.samples = 0
}
