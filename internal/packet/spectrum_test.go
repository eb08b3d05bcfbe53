package packet_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/wavepkt/internal/packet"
)

var _ = Describe("ComputePowerSpectrum", func() {
	It("peaks at exactly 1 for every law", func() {
		for _, l := range packet.Laws() {
			cfg := packet.Config{Components: 100, Law: l, C: l.DefaultC(), B: packet.B}
			p, err := packet.New(cfg, packet.NewSource(17))
			Expect(err).NotTo(HaveOccurred())

			for _, t := range []float64{0, 0.0003, 0.5} {
				power, err := p.Spectrum(t)
				Expect(err).NotTo(HaveOccurred())
				Expect(power).To(HaveLen(p.Points()))

				peak := 0.0
				for _, v := range power {
					Expect(v).To(BeNumerically(">=", 0))
					peak = math.Max(peak, v)
				}
				Expect(peak).To(Equal(1.0), l.String())
			}
		}
	})

	It("rejects an all-zero packet", func() {
		zeros := []float64{0, 0, 0, 0}
		_, err := packet.ComputePowerSpectrum([]float64{1, 2}, zeros, []float64{1, 3}, []float64{5, 6}, 0)
		Expect(err).To(MatchError(packet.ErrDomain))
	})

	It("puts a pure tone in its own bin", func() {
		n := 64
		xs := make([]float64, n)
		for i := range xs {
			xs[i] = float64(i)
		}
		k := 2 * math.Pi * 5 / float64(n)

		power, err := packet.ComputePowerSpectrum([]float64{1}, xs, []float64{k}, []float64{0}, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(power[5]).To(BeNumerically("~", 1, 1e-9))
		Expect(power[n-5]).To(BeNumerically("~", 1, 1e-9))
		Expect(power[0]).To(BeNumerically("<", 1e-9))
		Expect(power[7]).To(BeNumerically("<", 1e-9))
	})

	It("rejects an empty signal", func() {
		_, err := packet.NormalizedPowerSpectrum(nil)
		Expect(err).To(MatchError(packet.ErrDomain))
	})
})

var _ = Describe("SpectrumAxis", func() {
	It("orders bins like fftfreq for even lengths", func() {
		axis, err := packet.SpectrumAxis(8, 0.5)
		Expect(err).NotTo(HaveOccurred())
		Expect(axis).To(Equal([]float64{0, 0.25, 0.5, 0.75, -1, -0.75, -0.5, -0.25}))
	})

	It("orders bins like fftfreq for odd lengths", func() {
		axis, err := packet.SpectrumAxis(5, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(axis).To(HaveLen(5))
		want := []float64{0, 0.2, 0.4, -0.4, -0.2}
		for i := range want {
			Expect(axis[i]).To(BeNumerically("~", want[i], 1e-12))
		}
	})

	It("negates every label for a negative spacing", func() {
		axis, err := packet.SpectrumAxis(4, -0.5)
		Expect(err).NotTo(HaveOccurred())
		Expect(axis).To(Equal([]float64{0, -0.5, 1, 0.5}))
	})

	It("selects positive bins without DC and with Nyquist", func() {
		lo, hi := packet.PositiveBins(8)
		Expect([]int{lo, hi}).To(Equal([]int{1, 5}))

		lo, hi = packet.PositiveBins(5)
		Expect([]int{lo, hi}).To(Equal([]int{1, 3}))

		lo, hi = packet.PositiveBins(2)
		Expect([]int{lo, hi}).To(Equal([]int{1, 2}))

		lo, hi = packet.PositiveBins(1)
		Expect(hi - lo).To(BeZero())
	})

	It("rejects a zero spacing", func() {
		_, err := packet.SpectrumAxis(8, 0)
		Expect(err).To(MatchError(packet.ErrDomain))
	})

	It("parses axis conventions", func() {
		conv, err := packet.ParseAxisConvention("legacy")
		Expect(err).NotTo(HaveOccurred())
		Expect(conv).To(Equal(packet.AxisLegacy))

		conv, err = packet.ParseAxisConvention("")
		Expect(err).NotTo(HaveOccurred())
		Expect(conv).To(Equal(packet.AxisPosition))

		_, err = packet.ParseAxisConvention("log")
		Expect(err).To(MatchError(packet.ErrConfiguration))
	})
})
