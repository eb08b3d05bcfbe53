package packet_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/wavepkt/internal/packet"
)

var _ = Describe("Packet", func() {
	var cfg packet.Config

	BeforeEach(func() {
		cfg = packet.DefaultConfig()
	})

	It("builds one component and one position per requested component", func() {
		p, err := packet.New(cfg, packet.NewSource(1))
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Len()).To(Equal(cfg.Components))
		Expect(p.Points()).To(Equal(cfg.Components))
		Expect(p.Components()).To(HaveLen(cfg.Components))

		xs := p.Positions()
		Expect(xs[0]).To(Equal(0.0))
		Expect(xs[len(xs)-1]).To(Equal(cfg.Law.Span()))
	})

	It("honours an explicit grid size", func() {
		cfg.Positions = 64
		p, err := packet.New(cfg, packet.NewSource(1))
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Points()).To(Equal(64))
		Expect(p.Wave(0)).To(HaveLen(64))
	})

	It("cannot be mutated through its accessors", func() {
		p, err := packet.New(cfg, packet.NewSource(1))
		Expect(err).NotTo(HaveOccurred())

		before := p.Wave(0.1)
		amps := p.Amplitudes()
		for i := range amps {
			amps[i] = 0
		}
		xs := p.Positions()
		xs[1] = 1e9
		Expect(p.Wave(0.1)).To(Equal(before))
	})

	It("regenerates an identical packet from the same seed", func() {
		a, err := packet.New(cfg, packet.NewSource(8))
		Expect(err).NotTo(HaveOccurred())
		b, err := packet.New(cfg, packet.NewSource(8))
		Expect(err).NotTo(HaveOccurred())
		Expect(a.Components()).To(Equal(b.Components()))
	})

	It("rejects an unsupported component count", func() {
		cfg.Components = 150
		_, err := packet.New(cfg, packet.NewSource(1))
		Expect(err).To(MatchError(packet.ErrConfiguration))
	})

	It("surfaces dispersion domain errors", func() {
		cfg.Law = packet.SBCK2
		cfg.C = 1
		cfg.B = 1e6
		_, err := packet.New(cfg, packet.NewSource(1))
		Expect(err).To(MatchError(packet.ErrDomain))
	})

	It("reports the law's frame step for its size", func() {
		cfg.Components = 2000
		cfg.Law = packet.SCK
		cfg.C = packet.SCK.DefaultC()
		p, err := packet.New(cfg, packet.NewSource(1))
		Expect(err).NotTo(HaveOccurred())

		step, err := p.FrameStep()
		Expect(err).NotTo(HaveOccurred())
		Expect(step).To(Equal(0.0035))
	})

	Describe("SpectrumAxis", func() {
		It("uses the position spacing by default", func() {
			cfg.Components = 100
			p, err := packet.New(cfg, packet.NewSource(4))
			Expect(err).NotTo(HaveOccurred())

			axis, err := p.SpectrumAxis(packet.AxisPosition)
			Expect(err).NotTo(HaveOccurred())
			Expect(axis).To(HaveLen(100))

			dx := cfg.Law.Span() / 99
			Expect(axis[1]).To(BeNumerically("~", 1/(100*dx), 1e-12))
		})

		It("uses the first two sampled frequencies for the legacy axis", func() {
			cfg.Components = 100
			var (
				p    *packet.Packet
				err  error
				seed int64
			)
			// find a packet whose first two draws differ
			for seed = 1; ; seed++ {
				p, err = packet.New(cfg, packet.NewSource(seed))
				Expect(err).NotTo(HaveOccurred())
				f := p.Frequencies()
				if f[1] != f[0] {
					break
				}
			}

			f := p.Frequencies()
			axis, err := p.SpectrumAxis(packet.AxisLegacy)
			Expect(err).NotTo(HaveOccurred())
			Expect(axis[1]).To(BeNumerically("~", 1/(100*(f[1]-f[0])), 1e-12))
		})

		It("fails the legacy axis when the first two draws coincide", func() {
			cfg.Components = 2
			for seed := int64(1); seed < 500; seed++ {
				p, err := packet.New(cfg, packet.NewSource(seed))
				Expect(err).NotTo(HaveOccurred())
				f := p.Frequencies()
				if f[0] == f[1] {
					_, err := p.SpectrumAxis(packet.AxisLegacy)
					Expect(err).To(MatchError(packet.ErrDomain))
					return
				}
			}
			Skip("no coinciding draws in the searched seeds")
		})
	})
})
