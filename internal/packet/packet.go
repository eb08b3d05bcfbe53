package packet

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
)

// Fixed engine constants.
const (
	MaxFrequency = 100.0
	MaxAmplitude = 10.0
	B            = 10.0
)

// Config selects a packet. Zero MaxFrequency, MaxAmplitude or Positions
// fall back to the engine defaults; B is used as given.
type Config struct {
	Components   int
	Law          Law
	C            float64
	B            float64
	MaxFrequency float64
	MaxAmplitude float64
	// Positions is the grid size M. Zero means one position per component.
	Positions int
}

func DefaultConfig() Config {
	return Config{
		Components:   200,
		Law:          CK,
		C:            CK.DefaultC(),
		B:            B,
		MaxFrequency: MaxFrequency,
		MaxAmplitude: MaxAmplitude,
	}
}

// Validate checks the law and component count against the supported sets.
func (c Config) Validate() error {
	if !c.Law.Valid() {
		return &ConfigurationError{Option: "dispersion law", Value: c.Law.String()}
	}
	if _, err := ParseComponentCount(c.Components); err != nil {
		return err
	}
	return nil
}

// Component is one sinusoid of a packet.
type Component struct {
	Frequency        float64
	Amplitude        float64
	Wavenumber       float64
	AngularFrequency float64
}

// Packet is an immutable component set together with the position grid it
// is rendered on. Accessors return copies.
type Packet struct {
	law  Law
	c, b float64

	frequencies        []float64
	amplitudes         []float64
	wavenumbers        []float64
	angularFrequencies []float64
	positions          []float64
}

// New samples a fresh component set from src and resolves its dispersion.
func New(cfg Config, src rand.Source) (*Packet, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.MaxFrequency == 0 {
		cfg.MaxFrequency = MaxFrequency
	}
	if cfg.MaxAmplitude == 0 {
		cfg.MaxAmplitude = MaxAmplitude
	}

	freqs := SampleFrequencies(src, cfg.Components, cfg.MaxFrequency)
	amps := SampleAmplitudes(src, freqs, cfg.MaxFrequency, cfg.MaxAmplitude)

	k, w, err := ResolveDispersion(cfg.Law, freqs, cfg.C, cfg.B)
	if err != nil {
		return nil, err
	}

	m := cfg.Positions
	if m <= 0 {
		m = cfg.Components
	}

	return &Packet{
		law:                cfg.Law,
		c:                  cfg.C,
		b:                  cfg.B,
		frequencies:        freqs,
		amplitudes:         amps,
		wavenumbers:        k,
		angularFrequencies: w,
		positions:          PositionGrid(cfg.Law, m),
	}, nil
}

// PositionGrid returns m evenly spaced positions over [0, law.Span()].
func PositionGrid(law Law, m int) []float64 {
	switch {
	case m <= 0:
		return []float64{}
	case m == 1:
		return []float64{0}
	}
	return floats.Span(make([]float64, m), 0, law.Span())
}

func (p *Packet) Law() Law    { return p.law }
func (p *Packet) C() float64  { return p.c }
func (p *Packet) B() float64  { return p.b }
func (p *Packet) Len() int    { return len(p.frequencies) }
func (p *Packet) Points() int { return len(p.positions) }

func (p *Packet) Frequencies() []float64        { return clone(p.frequencies) }
func (p *Packet) Amplitudes() []float64         { return clone(p.amplitudes) }
func (p *Packet) Wavenumbers() []float64        { return clone(p.wavenumbers) }
func (p *Packet) AngularFrequencies() []float64 { return clone(p.angularFrequencies) }
func (p *Packet) Positions() []float64          { return clone(p.positions) }

// Components returns the component set in sampling order.
func (p *Packet) Components() []Component {
	out := make([]Component, len(p.frequencies))
	for i := range out {
		out[i] = Component{
			Frequency:        p.frequencies[i],
			Amplitude:        p.amplitudes[i],
			Wavenumber:       p.wavenumbers[i],
			AngularFrequency: p.angularFrequencies[i],
		}
	}
	return out
}

// Wave evaluates the packet on its position grid at time t.
func (p *Packet) Wave(t float64) []float64 {
	return SynthesizeWavePacket(p.amplitudes, p.positions, p.wavenumbers, p.angularFrequencies, t)
}

// WaveInto writes the packet at time t into dst, which must hold Points()
// samples.
func (p *Packet) WaveInto(dst []float64, t float64) {
	SynthesizeInto(dst, p.amplitudes, p.positions, p.wavenumbers, p.angularFrequencies, t)
}

// Spectrum is the normalized power spectrum of the packet at time t.
func (p *Packet) Spectrum(t float64) ([]float64, error) {
	return ComputePowerSpectrum(p.amplitudes, p.positions, p.wavenumbers, p.angularFrequencies, t)
}

// SpectrumAxis labels the Spectrum bins under the given convention.
func (p *Packet) SpectrumAxis(conv AxisConvention) ([]float64, error) {
	var spacing float64
	switch conv {
	case AxisLegacy:
		if len(p.frequencies) < 2 {
			return nil, domainErr("legacy axis needs at least two sampled frequencies")
		}
		spacing = p.frequencies[1] - p.frequencies[0]
	default:
		if len(p.positions) < 2 {
			return nil, domainErr("position axis needs at least two positions")
		}
		spacing = p.positions[1] - p.positions[0]
	}
	return SpectrumAxis(len(p.positions), spacing)
}

// FrameStep is the law's per-frame time step for this packet's size.
func (p *Packet) FrameStep() (float64, error) {
	n, err := ParseComponentCount(len(p.frequencies))
	if err != nil {
		return 0, err
	}
	return p.law.FrameStep(n)
}

func clone(s []float64) []float64 {
	c := make([]float64, len(s))
	copy(c, s)
	return c
}
