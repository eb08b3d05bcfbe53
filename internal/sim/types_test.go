package sim

import (
	"context"
	"errors"
	"testing"
)

func TestBufferPool(t *testing.T) {
	pool := NewBufferPool(4)
	if pool.Size() != 4 {
		t.Errorf("expected size 4, got %d", pool.Size())
	}

	b1 := pool.Get()
	if len(b1) != 4 {
		t.Errorf("pool returned wrong size: %d", len(b1))
	}

	b1[0] = 1.0
	b1[1] = 2.0
	pool.Put(b1)

	b2 := pool.Get()
	if b2[0] != 0 || b2[1] != 0 {
		t.Error("pool did not reset buffer")
	}

	// foreign sizes are dropped rather than pooled
	pool.Put(make([]float64, 3))
	if got := len(pool.Get()); got != 4 {
		t.Errorf("expected size 4 after foreign put, got %d", got)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Step <= 0 {
		t.Error("DefaultConfig has invalid Step")
	}
	if cfg.Frames <= 0 {
		t.Error("DefaultConfig has invalid Frames")
	}
}

func TestFrameError(t *testing.T) {
	inner := errors.New("boom")
	err := &FrameError{Index: 150, Time: 1.5, Err: inner}

	expected := "frame 150 (t=1.500000): boom"
	if err.Error() != expected {
		t.Errorf("FrameError.Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, inner) {
		t.Error("FrameError should unwrap to its cause")
	}
}

func TestEnsemble(t *testing.T) {
	build := func(seed int64) (Evaluator, error) {
		return &testEvaluator{points: int(seed)}, nil
	}
	metrics := func() []Metric { return []Metric{&testMetric{}} }

	e := NewEnsemble(build, metrics, 4, 8)
	results, err := e.Run(context.Background(), Config{Step: 1, Frames: 3})
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}

	summary := Summarize(results)
	if len(summary) != 1 || summary[0].Name != "test" {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary[0].Mean != 1 || summary[0].Min != 1 || summary[0].Max != 1 {
		t.Errorf("expected mean frame time 1 in every run, got %+v", summary[0])
	}
}

func TestEnsembleBuildError(t *testing.T) {
	boom := errors.New("bad seed")
	build := func(seed int64) (Evaluator, error) {
		if seed == 2 {
			return nil, boom
		}
		return &testEvaluator{points: 4}, nil
	}

	_, err := NewEnsemble(build, nil, 3, 1).Run(context.Background(), Config{Step: 1, Frames: 2})
	if !errors.Is(err, boom) {
		t.Fatalf("expected build error, got %v", err)
	}
}
