package packet_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/wavepkt/internal/packet"
)

var _ = Describe("ResolveDispersion", func() {
	It("maps a constant-velocity packet to k = 2*pi*f/c", func() {
		k, w, err := packet.ResolveDispersion(packet.CK, []float64{10}, 30000, 10)
		Expect(err).NotTo(HaveOccurred())
		Expect(k[0]).To(BeNumerically("~", 0.0020944, 1e-7))
		Expect(w[0]).To(BeNumerically("~", 62.8319, 1e-4))
	})

	It("accepts sbck2 while 4*pi^2*f^2 exceeds b", func() {
		k, _, err := packet.ResolveDispersion(packet.SBCK2, []float64{1}, 1, 10)
		Expect(err).NotTo(HaveOccurred())
		Expect(k[0]).To(BeNumerically("~", math.Sqrt(4*math.Pi*math.Pi-10), 1e-12))
	})

	It("rejects sbck2 with a negative radicand", func() {
		_, _, err := packet.ResolveDispersion(packet.SBCK2, []float64{50, 1}, 1, 1000)
		Expect(err).To(MatchError(packet.ErrDomain))

		var de *packet.DomainError
		Expect(errors.As(err, &de)).To(BeTrue())
		Expect(de.Index).To(Equal(1))
		Expect(de.Law).To(Equal(packet.SBCK2))
	})

	DescribeTable("rejects c == 0 for laws that divide by c",
		func(law packet.Law) {
			_, _, err := packet.ResolveDispersion(law, []float64{10}, 0, packet.B)
			Expect(err).To(MatchError(packet.ErrDomain))
		},
		Entry("ck", packet.CK),
		Entry("cdk", packet.CDK),
		Entry("k4dc", packet.K4DC),
		Entry("sck", packet.SCK),
		Entry("ck2", packet.CK2),
		Entry("sbck2", packet.SBCK2),
	)

	It("ignores c for k2k", func() {
		k, _, err := packet.ResolveDispersion(packet.K2K, []float64{10}, 0, packet.B)
		Expect(err).NotTo(HaveOccurred())
		Expect(k[0]).To(BeNumerically("~", (1+math.Sqrt(1+80*math.Pi))/2, 1e-12))
	})

	DescribeTable("rejects negative c where the law takes a root",
		func(law packet.Law) {
			_, _, err := packet.ResolveDispersion(law, []float64{10}, -2, packet.B)
			Expect(err).To(MatchError(packet.ErrDomain))
		},
		Entry("ck2", packet.CK2),
		Entry("k4dc", packet.K4DC),
		Entry("sbck2", packet.SBCK2),
	)

	DescribeTable("evaluates each closed-form wavenumber",
		func(law packet.Law, want float64) {
			k, w, err := packet.ResolveDispersion(law, []float64{5}, 2, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(k[0]).To(BeNumerically("~", want, 1e-9))
			Expect(w[0]).To(BeNumerically("~", 10*math.Pi, 1e-12))
		},
		Entry("sck", packet.SCK, 4*math.Pi*math.Pi*25/2),
		Entry("ck", packet.CK, 2*math.Pi*5/2),
		Entry("ck2", packet.CK2, math.Sqrt(2*math.Pi*5/2)),
		Entry("sbck2", packet.SBCK2, math.Sqrt((4*math.Pi*math.Pi*25-10)/2)),
		Entry("cdk", packet.CDK, 2/(2*math.Pi*5)),
		Entry("k4dc", packet.K4DC, math.Pow(2*math.Pi*5*2, 0.25)),
		Entry("k2k", packet.K2K, (1+math.Sqrt(1+40*math.Pi))/2),
	)

	It("returns a configuration error for an undeclared law", func() {
		_, _, err := packet.ResolveDispersion(packet.Law(0), []float64{1}, 1, 1)
		Expect(err).To(MatchError(packet.ErrConfiguration))
	})

	It("returns empty slices for an empty component set", func() {
		k, w, err := packet.ResolveDispersion(packet.CK, nil, 1, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(k).To(BeEmpty())
		Expect(w).To(BeEmpty())
	})
})

var _ = Describe("Law", func() {
	It("round-trips every identifier through ParseLaw", func() {
		Expect(packet.Laws()).To(HaveLen(7))
		for _, l := range packet.Laws() {
			parsed, err := packet.ParseLaw(l.String())
			Expect(err).NotTo(HaveOccurred())
			Expect(parsed).To(Equal(l))
			Expect(l.Span()).To(BeNumerically(">", 0))
			Expect(l.Relation()).NotTo(BeEmpty())
		}
	})

	It("rejects unknown identifiers", func() {
		_, err := packet.ParseLaw("k3")
		Expect(err).To(MatchError(packet.ErrConfiguration))
	})

	It("defines a positive frame step for every law and component count", func() {
		for _, l := range packet.Laws() {
			for _, n := range packet.ComponentCounts() {
				step, err := l.FrameStep(n)
				Expect(err).NotTo(HaveOccurred())
				Expect(step).To(BeNumerically(">", 0), "%s/%d", l, n)
			}
		}
	})

	It("keeps the slow cdk step for the largest packets", func() {
		step, err := packet.CDK.FrameStep(10000)
		Expect(err).NotTo(HaveOccurred())
		Expect(step).To(Equal(10.0))
	})

	It("rejects component counts outside the supported set", func() {
		_, err := packet.ParseComponentCount(7)
		Expect(err).To(MatchError(packet.ErrConfiguration))

		_, err = packet.SCK.FrameStep(packet.ComponentCount(7))
		Expect(err).To(MatchError(packet.ErrConfiguration))
	})

	It("renders a readable packet with each default c", func() {
		for _, l := range packet.Laws() {
			freqs := []float64{1, 50, packet.MaxFrequency}
			_, _, err := packet.ResolveDispersion(l, freqs, l.DefaultC(), packet.B)
			Expect(err).NotTo(HaveOccurred(), l.String())
		}
	})
})
