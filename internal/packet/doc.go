// Package packet is the numerical engine behind wavepkt: it builds a
// one-dimensional dispersive wave packet from random sinusoidal components
// and evaluates it, and its power spectrum, at any time.
//
// The pipeline, leaves first:
//
//   - [SampleFrequencies], [SampleAmplitudes]: stochastic component draws
//     from an injected, seedable random source
//   - [ResolveDispersion]: frequency to wavenumber under one of seven [Law]s;
//     angular frequency is always 2*pi*f
//   - [SynthesizeWavePacket]: dense superposition on a position grid
//   - [ComputePowerSpectrum]: |DFT|^2 normalized to a unit peak
//
// [Packet] bundles one sampled component set with its law's position grid.
//
// # Example
//
//	cfg := packet.DefaultConfig()
//	p, err := packet.New(cfg, packet.NewSource(42))
//	if err != nil {
//	    return err
//	}
//	wave := p.Wave(0.01)
//	power, err := p.Spectrum(0.01)
//
// # Errors
//
// Mathematical domain violations surface as [*DomainError] (errors.Is
// [ErrDomain]); unsupported laws or component counts as
// [*ConfigurationError] (errors.Is [ErrConfiguration]). The engine never
// returns NaN in place of an error.
//
// # Thread Safety
//
// Engine functions are pure apart from the random source they are given.
// A [Packet] is immutable and safe for concurrent use; a rand.Source is not.
package packet
