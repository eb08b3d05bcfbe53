package packet

import (
	"errors"
	"math"
)

// ResolveDispersion maps each frequency to its wavenumber under law and to
// its angular frequency 2*pi*f. Angular frequency does not depend on the
// law. The first component that falls outside the law's domain aborts the
// whole resolution.
func ResolveDispersion(law Law, frequencies []float64, c, b float64) (wavenumbers, angularFrequencies []float64, err error) {
	if !law.Valid() {
		return nil, nil, &ConfigurationError{Option: "dispersion law", Value: law.String()}
	}

	wavenumbers = make([]float64, len(frequencies))
	angularFrequencies = make([]float64, len(frequencies))

	for i, f := range frequencies {
		k, err := law.Wavenumber(f, c, b)
		if err != nil {
			var de *DomainError
			if errors.As(err, &de) {
				de.Index = i
			}
			return nil, nil, err
		}
		wavenumbers[i] = k
		angularFrequencies[i] = 2 * math.Pi * f
	}

	return wavenumbers, angularFrequencies, nil
}
