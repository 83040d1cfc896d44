package batch

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ecsim/ecsim"
	"github.com/ecsim/ecsim/collect"
)

// Factory builds one fresh model for a run. Models must not share mutable
// state: each run executes on its own goroutine.
type Factory func(params Params, seed int64) (*ecsim.Model, error)

// Until stops a run early. It is checked before every tick.
type Until func(m *ecsim.Model) bool

// Result is the outcome of one run.
type Result struct {
	// RunID uniquely identifies the run.
	RunID string
	// Params is the parameter set the run's model was built from.
	Params Params
	// Repetition is the run's repetition index within its parameter set.
	Repetition int
	// Seed is the deterministic seed the model was built with.
	Seed int64
	// Ticks is the model's final tick count.
	Ticks int
	// Records holds the records of each harvested collector, keyed by
	// collector id.
	Records map[string][]collect.Record
}

// Runner sweeps a parameter grid: one model per parameter set and
// repetition, up to Workers models at a time.
type Runner struct {
	factory    Factory
	workers    int
	reps       int
	steps      int
	until      Until
	baseSeed   int64
	collectors []string
	log        *zap.Logger
}

// RunnerOption adjusts a Runner.
type RunnerOption func(*Runner)

// WithWorkers bounds the number of concurrently running models. Values
// below 1 are clamped to 1. The default is 1.
func WithWorkers(n int) RunnerOption {
	return func(r *Runner) {
		if n < 1 {
			n = 1
		}
		r.workers = n
	}
}

// WithRepetitions repeats every parameter set n times with distinct seeds.
// Values below 1 are clamped to 1.
func WithRepetitions(n int) RunnerOption {
	return func(r *Runner) {
		if n < 1 {
			n = 1
		}
		r.reps = n
	}
}

// WithSteps sets the number of ticks each model executes.
func WithSteps(n int) RunnerOption {
	return func(r *Runner) { r.steps = n }
}

// WithUntil stops each run once the predicate holds, checked before every
// tick. Combined with WithSteps the run stops at whichever comes first.
func WithUntil(u Until) RunnerOption {
	return func(r *Runner) { r.until = u }
}

// WithBaseSeed fixes the seed every per-run seed is derived from, making
// the whole sweep reproducible.
func WithBaseSeed(seed int64) RunnerOption {
	return func(r *Runner) { r.baseSeed = seed }
}

// WithCollectors names the collector systems whose records each Result
// carries.
func WithCollectors(ids ...string) RunnerOption {
	return func(r *Runner) { r.collectors = append(r.collectors, ids...) }
}

// WithLogger sets the runner's progress logger. The default is
// zap.NewNop().
func WithLogger(log *zap.Logger) RunnerOption {
	return func(r *Runner) { r.log = log }
}

// NewRunner creates a runner around a model factory.
func NewRunner(factory Factory, opts ...RunnerOption) *Runner {
	r := &Runner{
		factory: factory,
		workers: 1,
		reps:    1,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// runSeed derives a deterministic positive seed for one run from the base
// seed, the parameter set and the repetition index. Parameter order follows
// the list's insertion order so equal configurations always hash equally.
func runSeed(baseSeed int64, names []string, params Params, rep int) int64 {
	d := xxhash.New()
	fmt.Fprintf(d, "%d|", baseSeed)
	for _, name := range names {
		fmt.Fprintf(d, "%s=%v|", name, params[name])
	}
	fmt.Fprintf(d, "rep=%d", rep)
	return int64(d.Sum64() & math.MaxInt64)
}

// Run executes the full sweep and returns one Result per run, ordered by
// parameter set then repetition. Failed runs keep their slot's zero Result;
// their errors are aggregated into the returned error. A cancelled context
// stops scheduling new runs.
func (r *Runner) Run(ctx context.Context, list *ParameterList) ([]Result, error) {
	if r.steps < 1 && r.until == nil {
		return nil, errors.New("runner needs WithSteps or WithUntil")
	}

	sets := list.Build()
	names := list.Names()
	total := len(sets) * r.reps
	results := make([]Result, total)

	r.log.Info("starting batch run",
		zap.Int("parameter_sets", len(sets)),
		zap.Int("repetitions", r.reps),
		zap.Int("runs", total),
		zap.Int("workers", r.workers))

	var (
		mu   sync.Mutex
		errs error
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for si, set := range sets {
		for rep := 0; rep < r.reps; rep++ {
			slot := si*r.reps + rep
			set, rep := set, rep
			g.Go(func() error {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				res, err := r.runOne(set, names, rep)
				if err != nil {
					mu.Lock()
					errs = multierr.Append(errs, err)
					mu.Unlock()
					return nil
				}
				results[slot] = res
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		errs = multierr.Append(errs, err)
	}
	return results, errs
}

func (r *Runner) runOne(params Params, names []string, rep int) (Result, error) {
	id := uuid.NewString()
	seed := runSeed(r.baseSeed, names, params, rep)

	m, err := r.factory(params, seed)
	if err != nil {
		return Result{}, fmt.Errorf("run %s: build model: %w", id, err)
	}

	for i := 0; r.steps < 1 || i < r.steps; i++ {
		if r.until != nil && r.until(m) {
			break
		}
		if err := m.Execute(1); err != nil {
			return Result{}, fmt.Errorf("run %s: tick %d: %w", id, m.Scheduler().Tick(), err)
		}
	}

	res := Result{
		RunID:      id,
		Params:     params,
		Repetition: rep,
		Seed:       seed,
		Ticks:      m.Scheduler().Tick(),
		Records:    make(map[string][]collect.Record, len(r.collectors)),
	}
	for _, cid := range r.collectors {
		sys, ok := m.Scheduler().System(cid)
		if !ok {
			return Result{}, fmt.Errorf("run %s: no collector %q", id, cid)
		}
		c, ok := sys.(collect.Collector)
		if !ok {
			return Result{}, fmt.Errorf("run %s: system %q is not a collector", id, cid)
		}
		records := c.Records()
		res.Records[cid] = append([]collect.Record(nil), records...)
	}

	r.log.Debug("run complete",
		zap.String("run_id", id),
		zap.Int64("seed", seed),
		zap.Int("ticks", res.Ticks))
	return res, nil
}
