package packet_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/wavepkt/internal/packet"
)

var _ = Describe("SynthesizeWavePacket", func() {
	positions := []float64{0, 0.25, 1, 3.5, 10}

	It("reduces to A*sin(k*x) for a single component at t = 0", func() {
		a, k, w := 3.0, 1.7, 42.0
		wave := packet.SynthesizeWavePacket([]float64{a}, positions, []float64{k}, []float64{w}, 0)

		Expect(wave).To(HaveLen(len(positions)))
		for j, x := range positions {
			Expect(wave[j]).To(Equal(a * math.Sin(k*x)))
		}
	})

	It("shifts each component's phase by t*w", func() {
		a, k, w, t := 2.0, 0.5, 3.0, 0.4
		wave := packet.SynthesizeWavePacket([]float64{a}, positions, []float64{k}, []float64{w}, t)
		for j, x := range positions {
			Expect(wave[j]).To(BeNumerically("~", a*math.Sin(k*x-t*w), 1e-12))
		}
	})

	It("superposes components linearly", func() {
		amps := []float64{1, 2.5}
		ks := []float64{0.3, 1.1}
		ws := []float64{4, 9}
		t := 1.25

		both := packet.SynthesizeWavePacket(amps, positions, ks, ws, t)
		first := packet.SynthesizeWavePacket(amps[:1], positions, ks[:1], ws[:1], t)
		second := packet.SynthesizeWavePacket(amps[1:], positions, ks[1:], ws[1:], t)
		for j := range positions {
			Expect(both[j]).To(BeNumerically("~", first[j]+second[j], 1e-12))
		}
	})

	It("does not assume monotonic time", func() {
		p, err := packet.New(packet.Config{Components: 20, Law: packet.K2K, B: packet.B}, packet.NewSource(5))
		Expect(err).NotTo(HaveOccurred())

		late := p.Wave(3)
		early := p.Wave(1)
		Expect(p.Wave(3)).To(Equal(late))
		Expect(p.Wave(1)).To(Equal(early))
	})

	It("matches the serial sum bit for bit when split across goroutines", func() {
		src := packet.NewSource(99)
		freqs := packet.SampleFrequencies(src, 2000, packet.MaxFrequency)
		amps := packet.SampleAmplitudes(src, freqs, packet.MaxFrequency, packet.MaxAmplitude)
		ks, ws, err := packet.ResolveDispersion(packet.CK, freqs, 30000, packet.B)
		Expect(err).NotTo(HaveOccurred())
		xs := packet.PositionGrid(packet.CK, 2000)
		t := 0.0125

		got := packet.SynthesizeWavePacket(amps, xs, ks, ws, t)
		for j := range xs {
			// a single position stays below the parallel threshold
			serial := packet.SynthesizeWavePacket(amps, xs[j:j+1], ks, ws, t)
			Expect(got[j]).To(Equal(serial[0]))
		}
	})

	It("writes into a caller buffer", func() {
		dst := []float64{9, 9, 9, 9, 9, 42}
		packet.SynthesizeInto(dst, []float64{1}, positions, []float64{1}, []float64{1}, 0)
		Expect(dst[0]).To(Equal(0.0))
		Expect(dst[5]).To(Equal(42.0))
	})

	It("panics on mismatched component slices", func() {
		Expect(func() {
			packet.SynthesizeWavePacket([]float64{1, 2}, positions, []float64{1}, []float64{1, 2}, 0)
		}).To(Panic())
	})
})

var _ = Describe("ParallelFor", func() {
	It("visits every index exactly once", func() {
		n := 10007
		seen := make([]int, n)
		packet.ParallelFor(n, 100, func(start, end int) {
			for i := start; i < end; i++ {
				seen[i]++
			}
		})
		for i := range seen {
			Expect(seen[i]).To(Equal(1))
		}
	})
})
