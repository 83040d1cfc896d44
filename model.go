package ecsim

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"

	"go.uber.org/zap"
)

// Model is the composition root of a simulation: one environment, one
// scheduler, one tag registry and one seeded deterministic random source.
// The model owns these for its whole lifetime and is destroyed as a unit.
//
// A model is not safe for concurrent use, but distinct models share no
// state: any number of them can be advanced in parallel, which is what the
// batch package does.
type Model struct {
	env       Environment
	scheduler *Scheduler
	rng       *rand.Rand
	seed      int64
	tags      *TagRegistry
	log       *zap.Logger
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithSeed seeds the model's random source. Two models with the same seed
// and the same call sequence produce identical results. Without this option
// the seed is drawn from the operating system's entropy.
func WithSeed(seed int64) ModelOption {
	return func(m *Model) {
		m.seed = seed
		m.rng = rand.New(rand.NewSource(seed))
	}
}

// WithLogger attaches a logger to the model. The default is zap.NewNop().
func WithLogger(log *zap.Logger) ModelOption {
	return func(m *Model) { m.log = log }
}

// WithEnvironment replaces the model's default environment.
func WithEnvironment(env Environment) ModelOption {
	return func(m *Model) {
		env.setModel(m)
		m.env = env
	}
}

// NewModel creates a model with an empty non-spatial environment, an empty
// scheduler and a tag registry holding only the NONE tag.
func NewModel(opts ...ModelOption) *Model {
	m := &Model{
		tags: NewTagRegistry(),
		log:  zap.NewNop(),
	}
	m.scheduler = NewScheduler(m)
	m.seed = entropySeed()
	m.rng = rand.New(rand.NewSource(m.seed))
	m.env = NewEnvironment(m)

	for _, opt := range opts {
		opt(m)
	}
	return m
}

// entropySeed draws a seed from the operating system.
func entropySeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 1
	}
	return int64(binary.LittleEndian.Uint64(b[:]) &^ (1 << 63))
}

// Execute advances the scheduler n ticks. Returns ErrInvalidStepCount
// unless n is at least 1.
func (m *Model) Execute(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidStepCount, n)
	}
	for i := 0; i < n; i++ {
		m.scheduler.Step()
	}
	return nil
}

// Environment returns the model's environment.
func (m *Model) Environment() Environment { return m.env }

// SetEnvironment replaces the model's environment, rebinding it to this
// model. Agents of the previous environment are not migrated.
func (m *Model) SetEnvironment(env Environment) {
	env.setModel(m)
	m.env = env
}

// Scheduler returns the model's scheduler.
func (m *Model) Scheduler() *Scheduler { return m.scheduler }

// SetScheduler replaces the model's scheduler. Component pools of the
// previous scheduler are not migrated.
func (m *Model) SetScheduler(s *Scheduler) {
	s.model = m
	m.scheduler = s
}

// RNG returns the model's random source. Collaborators that need random
// values consistent with the model's stream must draw from it rather than
// from a private source.
func (m *Model) RNG() *rand.Rand { return m.rng }

// Seed returns the seed the random source was created with.
func (m *Model) Seed() int64 { return m.seed }

// Tags returns the model's tag registry.
func (m *Model) Tags() *TagRegistry { return m.tags }

// Logger returns the model's logger.
func (m *Model) Logger() *zap.Logger { return m.log }
