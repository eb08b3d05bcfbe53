package packet

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
)

// ComputePowerSpectrum synthesizes the packet at time t and returns the
// squared magnitude of its DFT scaled so the largest bin is exactly 1.
func ComputePowerSpectrum(amplitudes, positions, wavenumbers, angularFrequencies []float64, t float64) ([]float64, error) {
	wave := SynthesizeWavePacket(amplitudes, positions, wavenumbers, angularFrequencies, t)
	return NormalizedPowerSpectrum(wave)
}

// NormalizedPowerSpectrum returns |DFT(signal)|^2 divided by its maximum.
// An all-zero signal has no peak to normalize against and is rejected.
func NormalizedPowerSpectrum(signal []float64) ([]float64, error) {
	if len(signal) == 0 {
		return nil, domainErr("empty signal has no spectrum")
	}

	coeffs := fft.FFTReal(signal)
	power := make([]float64, len(coeffs))
	for i, c := range coeffs {
		re, im := real(c), imag(c)
		power[i] = re*re + im*im
	}

	for _, v := range power {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &DomainError{Index: -1, Value: v, Reason: "non-finite spectral power"}
		}
	}
	peak := floats.Max(power)
	if peak == 0 {
		return nil, domainErr("all-zero packet cannot be normalized")
	}

	// divide rather than scale by 1/peak so the peak bin is exactly 1
	for i := range power {
		power[i] /= peak
	}
	return power, nil
}

// AxisConvention picks the sample spacing used to label spectrum bins.
type AxisConvention int

const (
	// AxisPosition labels bins from the spacing of the position grid the
	// transform actually ran over.
	AxisPosition AxisConvention = iota
	// AxisLegacy labels bins from the gap between the first two sampled
	// frequencies, which is how earlier versions labeled their plots.
	AxisLegacy
)

// ParseAxisConvention accepts "position" or "legacy".
func ParseAxisConvention(s string) (AxisConvention, error) {
	switch s {
	case "", "position":
		return AxisPosition, nil
	case "legacy":
		return AxisLegacy, nil
	}
	return 0, &ConfigurationError{Option: "axis convention", Value: s}
}

func (a AxisConvention) String() string {
	if a == AxisLegacy {
		return "legacy"
	}
	return "position"
}

// SpectrumAxis returns the frequency of each DFT bin for n samples taken
// spacing apart, in the standard order: non-negative frequencies first,
// then negative frequencies in increasing order. A negative spacing, which
// the legacy axis yields when the second draw is below the first, negates
// every label; read magnitudes through PositiveBins and math.Abs.
func SpectrumAxis(n int, spacing float64) ([]float64, error) {
	if n <= 0 {
		return []float64{}, nil
	}
	if spacing == 0 || math.IsNaN(spacing) || math.IsInf(spacing, 0) {
		return nil, &DomainError{Index: -1, Value: spacing, Reason: "spectrum axis needs a finite non-zero spacing"}
	}

	out := make([]float64, n)
	scale := 1 / (float64(n) * spacing)
	positive := (n-1)/2 + 1
	for i := 0; i < positive; i++ {
		out[i] = float64(i) * scale
	}
	for i := positive; i < n; i++ {
		out[i] = float64(i-n) * scale
	}
	return out, nil
}

// PositiveBins returns the half-open index range of the positive-frequency
// bins of an n-point spectrum in SpectrumAxis order. The DC bin is skipped
// and, for even n, the Nyquist bin is included even though its label is
// negative. The range is empty for n < 2.
func PositiveBins(n int) (lo, hi int) {
	if n < 2 {
		return 0, 0
	}
	return 1, n/2 + 1
}
