package sim

import "fmt"

// Frame is the packet evaluated at one instant. Wave and Spectrum are
// recycled once observers return; copy them to keep them.
type Frame struct {
	Index    int
	Time     float64
	Wave     []float64
	Spectrum []float64
}

// Evaluator is anything that can be rendered onto a fixed position grid.
// *packet.Packet satisfies it.
type Evaluator interface {
	Points() int
	WaveInto(dst []float64, t float64)
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(f Frame)
}

type Config struct {
	// Step is the simulated time between consecutive frames.
	Step float64
	// Frames is the number of frames to evaluate. Zero means unbounded
	// for RunWithCallback.
	Frames   int
	Start    float64
	Spectrum bool
}

func DefaultConfig() Config {
	return Config{
		Step:     0.00015,
		Frames:   1000,
		Spectrum: true,
	}
}

type Result struct {
	Times       []float64
	Metrics     map[string]float64
	FramesTaken int
}

// FrameError ties an engine failure to the frame that produced it.
type FrameError struct {
	Index int
	Time  float64
	Err   error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d (t=%.6f): %v", e.Index, e.Time, e.Err)
}

func (e *FrameError) Unwrap() error {
	return e.Err
}
