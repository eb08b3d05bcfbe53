package sim

import (
	"context"
	"math"
	"sort"
	"sync"
)

// Ensemble runs the same frame schedule over packets drawn from
// consecutive seeds.
type Ensemble struct {
	build     func(seed int64) (Evaluator, error)
	metrics   func() []Metric
	numRuns   int
	seedStart int64
}

// NewEnsemble prepares numRuns runs seeded seedStart, seedStart+1, ...
// metrics is called once per run so no metric is shared between goroutines.
func NewEnsemble(build func(seed int64) (Evaluator, error), metrics func() []Metric, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{build: build, metrics: metrics, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			src, err := e.build(e.seedStart + int64(idx))
			if err != nil {
				errs[idx] = err
				return
			}

			s := New(src)
			if e.metrics != nil {
				for _, m := range e.metrics() {
					s.AddMetric(m)
				}
			}

			results[idx], errs[idx] = s.Run(ctx, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// Summary aggregates one metric across ensemble runs.
type Summary struct {
	Name string
	Mean float64
	Min  float64
	Max  float64
}

// Summarize folds the metrics of several results, sorted by metric name.
func Summarize(results []*Result) []Summary {
	acc := make(map[string]*Summary)
	counts := make(map[string]int)

	for _, r := range results {
		if r == nil {
			continue
		}
		for name, v := range r.Metrics {
			s, ok := acc[name]
			if !ok {
				s = &Summary{Name: name, Min: math.Inf(1), Max: math.Inf(-1)}
				acc[name] = s
			}
			s.Mean += v
			s.Min = math.Min(s.Min, v)
			s.Max = math.Max(s.Max, v)
			counts[name]++
		}
	}

	out := make([]Summary, 0, len(acc))
	for name, s := range acc {
		s.Mean /= float64(counts[name])
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
