package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/wavepkt/internal/packet"
)

// Simulator steps an evaluator through frame times and feeds each frame to
// metrics and observers.
type Simulator struct {
	src       Evaluator
	pool      *BufferPool
	metrics   []Metric
	observers []Observer
}

func New(src Evaluator) *Simulator {
	return &Simulator{
		src:       src,
		pool:      NewBufferPool(src.Points()),
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	if cfg.Frames <= 0 {
		return nil, fmt.Errorf("frames must be positive, got %d", cfg.Frames)
	}

	result := &Result{
		Times:   make([]float64, 0, cfg.Frames),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		t := cfg.Start + float64(i)*cfg.Step
		if err := s.emit(i, t, cfg.Spectrum, nil); err != nil {
			return result, err
		}

		result.Times = append(result.Times, t)
		result.FramesTaken++
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback evaluates frames until callback returns false, the
// context ends or cfg.Frames frames have been produced. Frames <= 0 runs
// until one of the other two conditions.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, callback func(Frame) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}

	for i := 0; cfg.Frames <= 0 || i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		t := cfg.Start + float64(i)*cfg.Step
		stop := false
		err := s.emit(i, t, cfg.Spectrum, func(f Frame) {
			stop = !callback(f)
		})
		if err != nil {
			return err
		}
		if stop {
			return nil
		}
	}

	return nil
}

func (s *Simulator) emit(i int, t float64, spectrum bool, fn func(Frame)) error {
	wave := s.pool.Get()
	defer s.pool.Put(wave)

	s.src.WaveInto(wave, t)
	f := Frame{Index: i, Time: t, Wave: wave}

	if spectrum {
		power, err := packet.NormalizedPowerSpectrum(wave)
		if err != nil {
			return &FrameError{Index: i, Time: t, Err: err}
		}
		f.Spectrum = power
	}

	for _, m := range s.metrics {
		m.Observe(f)
	}
	for _, obs := range s.observers {
		obs.OnFrame(f)
	}
	if fn != nil {
		fn(f)
	}
	return nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Step <= 0 {
		return fmt.Errorf("step must be positive, got %g", cfg.Step)
	}
	if cfg.Start < 0 {
		return fmt.Errorf("start time must be non-negative, got %g", cfg.Start)
	}
	if s.src.Points() == 0 {
		return fmt.Errorf("evaluator has an empty position grid")
	}
	return nil
}
