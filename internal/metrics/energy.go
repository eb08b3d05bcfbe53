package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/wavepkt/internal/sim"
)

// Energy is the mean over frames of the squared displacement averaged across
// the position grid.
type Energy struct {
	name        string
	samples     int
	totalEnergy float64
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(f sim.Frame) {
	if len(f.Wave) == 0 {
		return
	}
	e.totalEnergy += frameEnergy(f.Wave)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift tracks the largest relative departure of frame energy from the
// first observed frame. Energy leaves the sampled window as groups travel, so
// this measures how quickly a packet disperses out of view.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(f sim.Frame) {
	if len(f.Wave) == 0 {
		return
	}
	energy := frameEnergy(f.Wave)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / e.initialEnergy
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

func frameEnergy(wave []float64) float64 {
	return floats.Dot(wave, wave) / float64(len(wave))
}
