package packet

import (
	"fmt"
	"math"
	"strconv"
)

// Law selects a dispersion relation. Each law is the closed-form inverse of
// a phase velocity relation, mapping a frequency to a wavenumber.
type Law int

const (
	SCK Law = iota + 1
	CK
	CK2
	SBCK2
	CDK
	K4DC
	K2K
)

var allLaws = []Law{SCK, CK, CK2, SBCK2, CDK, K4DC, K2K}

// Laws returns every supported law in declaration order.
func Laws() []Law {
	out := make([]Law, len(allLaws))
	copy(out, allLaws)
	return out
}

// ParseLaw maps a law identifier such as "sbck2" to its Law.
func ParseLaw(id string) (Law, error) {
	for _, l := range allLaws {
		if l.String() == id {
			return l, nil
		}
	}
	return 0, &ConfigurationError{Option: "dispersion law", Value: id}
}

func (l Law) String() string {
	switch l {
	case SCK:
		return "sck"
	case CK:
		return "ck"
	case CK2:
		return "ck2"
	case SBCK2:
		return "sbck2"
	case CDK:
		return "cdk"
	case K4DC:
		return "k4dc"
	case K2K:
		return "k2k"
	}
	return "law(" + strconv.Itoa(int(l)) + ")"
}

// Valid reports whether l is one of the declared laws.
func (l Law) Valid() bool {
	return l >= SCK && l <= K2K
}

// Relation describes the phase velocity v(k) the law inverts.
func (l Law) Relation() string {
	switch l {
	case SCK:
		return "v = sqrt(c/k)"
	case CK:
		return "v = c"
	case CK2:
		return "v = c*k"
	case SBCK2:
		return "v = sqrt(b/k^2 + c)"
	case CDK:
		return "v = c/k^2"
	case K4DC:
		return "v = k^3/c"
	case K2K:
		return "v = k - 1"
	}
	return ""
}

// UsesC reports whether the law's formula depends on c.
func (l Law) UsesC() bool {
	return l.Valid() && l != K2K
}

// Span is the upper bound of the law's position grid, chosen so the packet
// stays legible at the law's characteristic wavelength.
func (l Law) Span() float64 {
	switch l {
	case SCK:
		return 25
	case CK:
		return 17000
	case CK2:
		return 5000
	case SBCK2:
		return 150
	case CDK:
		return 10
	case K4DC:
		return 20
	case K2K:
		return 30
	}
	return 0
}

// DefaultC is a value of c that renders a readable packet over Span.
func (l Law) DefaultC() float64 {
	switch l {
	case SCK:
		return 1e5
	case CK:
		return 30000
	case CK2:
		return 1e5
	case SBCK2:
		return 1e5
	case CDK:
		return 1000
	case K4DC:
		return 1
	case K2K:
		return 1
	}
	return 0
}

// Wavenumber evaluates the law at frequency f. Violations come back as a
// *DomainError with Index -1; ResolveDispersion fills in the component.
func (l Law) Wavenumber(f, c, b float64) (float64, error) {
	if !l.Valid() {
		return 0, &ConfigurationError{Option: "dispersion law", Value: l.String()}
	}
	if l.UsesC() && c == 0 {
		return 0, &DomainError{Law: l, Index: -1, Value: c, Reason: "c must be non-zero"}
	}

	var k float64
	switch l {
	case SCK:
		k = 4 * math.Pi * math.Pi * f * f / c
	case CK:
		k = 2 * math.Pi * f / c
	case CK2:
		r := 2 * math.Pi * f / c
		if r < 0 {
			return 0, &DomainError{Law: l, Index: -1, Value: r, Reason: "negative radicand 2*pi*f/c"}
		}
		k = math.Sqrt(r)
	case SBCK2:
		r := (4*math.Pi*math.Pi*f*f - b) / c
		if r < 0 {
			return 0, &DomainError{Law: l, Index: -1, Value: r, Reason: "negative radicand (4*pi^2*f^2 - b)/c"}
		}
		k = math.Sqrt(r)
	case CDK:
		k = c / (2 * math.Pi * f)
	case K4DC:
		base := 2 * math.Pi * f * c
		if base < 0 {
			return 0, &DomainError{Law: l, Index: -1, Value: base, Reason: "negative base for quarter power 2*pi*f*c"}
		}
		k = math.Pow(base, 0.25)
	case K2K:
		r := 1 + 8*math.Pi*f
		if r < 0 {
			return 0, &DomainError{Law: l, Index: -1, Value: r, Reason: "negative radicand 1 + 8*pi*f"}
		}
		k = (1 + math.Sqrt(r)) / 2
	}

	if math.IsNaN(k) || math.IsInf(k, 0) {
		return 0, &DomainError{Law: l, Index: -1, Value: k, Reason: "non-finite wavenumber"}
	}
	return k, nil
}

// ComponentCount is one of the supported packet sizes.
type ComponentCount int

var componentCounts = []ComponentCount{
	2, 20, 100, 200, 300, 400, 500, 600, 700, 800, 900,
	1000, 2000, 3000, 4000, 5000, 10000,
}

// ComponentCounts returns the supported packet sizes in ascending order.
func ComponentCounts() []ComponentCount {
	out := make([]ComponentCount, len(componentCounts))
	copy(out, componentCounts)
	return out
}

// ParseComponentCount rejects any size outside the supported set.
func ParseComponentCount(n int) (ComponentCount, error) {
	for _, c := range componentCounts {
		if int(c) == n {
			return c, nil
		}
	}
	return 0, &ConfigurationError{Option: "component count", Value: strconv.Itoa(n)}
}

func (n ComponentCount) index() int {
	for i, c := range componentCounts {
		if c == n {
			return i
		}
	}
	return -1
}

// frame steps indexed by law, then by position in componentCounts
var frameSteps = map[Law][17]float64{
	SCK: {
		0.00015, 0.00015, 0.00015, 0.00015, 0.00015, 0.00015, 0.00015, 0.00035, 0.00035,
		0.0005, 0.0005, 0.0005, 0.0035, 0.0065, 0.007, 0.01, 0.1,
	},
	CK: {
		0.00015, 0.00015, 0.00015, 0.00015, 0.00015, 0.00015, 0.00015, 0.00035, 0.00035,
		0.00035, 0.00035, 0.00035, 0.0015, 0.004, 0.004, 0.01, 0.1,
	},
	CK2: {
		0.00015, 0.00015, 0.00015, 0.00015, 0.00015, 0.00015, 0.00035, 0.00035, 0.00035,
		0.00034, 0.00045, 0.00055, 0.0015, 0.005, 0.006, 0.015, 0.15,
	},
	SBCK2: {
		0.00015, 0.00015, 0.00015, 0.00015, 0.00015, 0.00015, 0.00025, 0.00035, 0.00035,
		0.00035, 0.0004, 0.0045, 0.002, 0.004, 0.004, 0.01, 0.1,
	},
	CDK: {
		0.00015, 0.00015, 0.00015, 0.00015, 0.00015, 0.00015, 0.00035, 0.00045, 0.0005,
		0.00055, 0.0007, 0.001, 0.006, 0.01, 0.03, 0.1, 10,
	},
	K4DC: {
		0.00015, 0.00015, 0.00015, 0.00015, 0.00015, 0.00015, 0.00035, 0.0004, 0.00045,
		0.00055, 0.0006, 0.001, 0.002, 0.004, 0.005, 0.01, 0.1,
	},
	K2K: {
		0.00015, 0.00015, 0.00015, 0.00015, 0.00015, 0.00015, 0.00035, 0.00035, 0.0004,
		0.00045, 0.00055, 0.0006, 0.002, 0.004, 0.006, 0.02, 0.1,
	},
}

// FrameStep is the simulated time that elapses per rendered frame for this
// law at the given packet size.
func (l Law) FrameStep(n ComponentCount) (float64, error) {
	row, ok := frameSteps[l]
	if !ok {
		return 0, &ConfigurationError{Option: "dispersion law", Value: l.String()}
	}
	i := n.index()
	if i < 0 {
		return 0, &ConfigurationError{Option: "component count", Value: fmt.Sprint(int(n))}
	}
	return row[i], nil
}
