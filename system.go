package ecsim

import "math"

// System is a scheduled, stateless unit of behaviour. A system fires on a
// tick t iff Start() <= t <= End() and (Start()-t) % Frequency() == 0, in
// queue order decided by Priority (higher first, FIFO among equals).
//
// Concrete systems embed BaseSystem for the scheduling metadata and
// implement Execute, which typically iterates a component pool obtained
// from the scheduler and/or queries the environment.
type System interface {
	// ID returns the system's id, unique within a scheduler.
	ID() string

	// Priority orders the execution queue; higher priorities run first.
	Priority() int

	// Frequency is the tick period between firings, at least 1.
	Frequency() int

	// Start is the first tick of the system's active window.
	Start() int

	// End is the last tick of the system's active window, inclusive.
	End() int

	// Execute runs the system's behaviour for the current tick.
	Execute()
}

// SystemOption configures a BaseSystem.
type SystemOption func(*BaseSystem)

// WithPriority sets the system's queue priority. The default is 0.
func WithPriority(p int) SystemOption {
	return func(s *BaseSystem) { s.priority = p }
}

// WithFrequency sets the system's firing period in ticks. Values below 1
// are treated as 1.
func WithFrequency(f int) SystemOption {
	return func(s *BaseSystem) {
		if f < 1 {
			f = 1
		}
		s.frequency = f
	}
}

// WithWindow sets the inclusive tick window in which the system is active.
// The default window is [0, math.MaxInt].
func WithWindow(start, end int) SystemOption {
	return func(s *BaseSystem) {
		s.start = start
		s.end = end
	}
}

// BaseSystem carries the scheduling metadata of a system. Embed it and
// override Execute:
//
//	type GrowthSystem struct {
//	    ecsim.BaseSystem
//	}
//
//	func NewGrowthSystem(m *ecsim.Model) *GrowthSystem {
//	    return &GrowthSystem{BaseSystem: ecsim.NewBaseSystem("growth", m, ecsim.WithFrequency(2))}
//	}
type BaseSystem struct {
	id        string
	model     *Model
	priority  int
	frequency int
	start     int
	end       int
}

// NewBaseSystem creates the metadata for a system with the given id.
func NewBaseSystem(id string, m *Model, opts ...SystemOption) BaseSystem {
	s := BaseSystem{
		id:        id,
		model:     m,
		frequency: 1,
		end:       math.MaxInt,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// ID returns the system's id.
func (s *BaseSystem) ID() string { return s.id }

// Priority returns the system's queue priority.
func (s *BaseSystem) Priority() int { return s.priority }

// Frequency returns the system's firing period in ticks.
func (s *BaseSystem) Frequency() int { return s.frequency }

// Start returns the first active tick.
func (s *BaseSystem) Start() int { return s.start }

// End returns the last active tick, inclusive.
func (s *BaseSystem) End() int { return s.end }

// Model returns the model the system was created for.
func (s *BaseSystem) Model() *Model { return s.model }

// Execute is a no-op; concrete systems override it.
func (s *BaseSystem) Execute() {}

// Cleanup removes the system from its model's scheduler.
func (s *BaseSystem) Cleanup() error {
	return s.model.Scheduler().RemoveSystem(s.id)
}
