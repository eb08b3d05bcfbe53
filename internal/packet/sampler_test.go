package packet_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/wavepkt/internal/packet"
)

var _ = Describe("SampleFrequencies", func() {
	It("returns exactly n frequencies inside [1, maxFrequency] for every supported count", func() {
		for _, n := range packet.ComponentCounts() {
			freqs := packet.SampleFrequencies(packet.NewSource(int64(n)), int(n), packet.MaxFrequency)
			Expect(freqs).To(HaveLen(int(n)))
			for _, f := range freqs {
				Expect(f).To(BeNumerically(">=", 1))
				Expect(f).To(BeNumerically("<=", packet.MaxFrequency))
			}
		}
	})

	It("only draws values from the 101-point candidate grid", func() {
		freqs := packet.SampleFrequencies(packet.NewSource(3), 500, packet.MaxFrequency)
		step := (packet.MaxFrequency - 1) / 100
		for _, f := range freqs {
			idx := (f - 1) / step
			Expect(idx).To(BeNumerically("~", float64(int(idx+0.5)), 1e-9))
		}
	})

	It("favours frequencies near the maximum", func() {
		freqs := packet.SampleFrequencies(packet.NewSource(11), 10000, packet.MaxFrequency)
		sum := 0.0
		for _, f := range freqs {
			sum += f
		}
		// the f^5 weighting puts the expected mean near 6/7 of the maximum
		Expect(sum / float64(len(freqs))).To(BeNumerically(">", 80))
	})

	It("returns an empty slice for a non-positive count", func() {
		Expect(packet.SampleFrequencies(packet.NewSource(1), 0, packet.MaxFrequency)).To(BeEmpty())
	})

	It("is deterministic under a fixed seed", func() {
		a := packet.SampleFrequencies(packet.NewSource(42), 1000, packet.MaxFrequency)
		b := packet.SampleFrequencies(packet.NewSource(42), 1000, packet.MaxFrequency)
		Expect(a).To(Equal(b))
	})

	It("differs across seeds", func() {
		a := packet.SampleFrequencies(packet.NewSource(1), 1000, packet.MaxFrequency)
		b := packet.SampleFrequencies(packet.NewSource(2), 1000, packet.MaxFrequency)
		Expect(a).NotTo(Equal(b))
	})
})

var _ = Describe("SampleAmplitudes", func() {
	It("keeps every amplitude between the frequency-dependent floor and the maximum", func() {
		src := packet.NewSource(7)
		freqs := packet.SampleFrequencies(src, 5000, packet.MaxFrequency)
		amps := packet.SampleAmplitudes(src, freqs, packet.MaxFrequency, packet.MaxAmplitude)

		Expect(amps).To(HaveLen(len(freqs)))
		for i, a := range amps {
			ratio := freqs[i] / packet.MaxFrequency
			floor := 0.9 * packet.MaxAmplitude * ratio * ratio
			Expect(a).To(BeNumerically(">=", floor))
			Expect(a).To(BeNumerically("<=", packet.MaxAmplitude))
		}
	})

	It("is deterministic under a fixed seed", func() {
		freqs := []float64{1, 50, 99.01, 100}
		a := packet.SampleAmplitudes(packet.NewSource(9), freqs, packet.MaxFrequency, packet.MaxAmplitude)
		b := packet.SampleAmplitudes(packet.NewSource(9), freqs, packet.MaxFrequency, packet.MaxAmplitude)
		Expect(a).To(Equal(b))

		c := packet.SampleAmplitudes(packet.NewSource(10), freqs, packet.MaxFrequency, packet.MaxAmplitude)
		Expect(a).NotTo(Equal(c))
	})
})
