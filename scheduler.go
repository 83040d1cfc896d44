package ecsim

import (
	"fmt"

	"go.uber.org/zap"
)

// Scheduler owns the ordered system execution queue, the global tick
// counter and the registry of component pools. It is single-threaded,
// synchronous and cooperative: Tick runs systems strictly in queue order
// with no preemption, and a system's Execute runs to completion before the
// next system is considered.
type Scheduler struct {
	model *Model

	tick    int
	systems map[string]System

	// queue is the sorted (by descending priority, FIFO among equals)
	// contents of systems.
	queue []System

	// pools holds the live components of each kind across all agents
	// registered with this scheduler, in registration order.
	pools map[Kind][]Component
}

// NewScheduler creates an empty scheduler for the given model.
func NewScheduler(m *Model) *Scheduler {
	return &Scheduler{
		model:   m,
		systems: make(map[string]System),
		pools:   make(map[Kind][]Component),
	}
}

// Tick returns the current tick counter.
func (s *Scheduler) Tick() int { return s.tick }

// AddSystem registers a system and inserts it into the execution queue.
// Returns ErrDuplicateSystem if the id is already registered. Insertion is
// a stable sort by descending priority: the system is placed immediately
// before the first queue entry with strictly lower priority, or appended,
// so equal priorities keep their registration order.
func (s *Scheduler) AddSystem(sys System) error {
	if _, ok := s.systems[sys.ID()]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateSystem, sys.ID())
	}
	s.systems[sys.ID()] = sys

	at := len(s.queue)
	for i, q := range s.queue {
		if sys.Priority() > q.Priority() {
			at = i
			break
		}
	}
	s.queue = append(s.queue, nil)
	copy(s.queue[at+1:], s.queue[at:])
	s.queue[at] = sys
	return nil
}

// RemoveSystem removes the system with the given id from both the registry
// and the queue. Returns ErrSystemNotFound if it is not registered.
func (s *Scheduler) RemoveSystem(id string) error {
	sys, ok := s.systems[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrSystemNotFound, id)
	}
	delete(s.systems, id)
	for i, q := range s.queue {
		if q == sys {
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			break
		}
	}
	return nil
}

// System returns the registered system with the given id.
func (s *Scheduler) System(id string) (System, bool) {
	sys, ok := s.systems[id]
	return sys, ok
}

// Systems returns the execution queue in order. The returned slice is a
// copy and safe to hold across ticks.
func (s *Scheduler) Systems() []System {
	out := make([]System, len(s.queue))
	copy(out, s.queue)
	return out
}

// due reports whether a system fires on the given tick. The gating formula
// (start - tick) % frequency == 0 is historical and kept verbatim; for
// tick >= start it is "every frequency-th tick counted from start".
func due(sys System, tick int) bool {
	if tick < sys.Start() || tick > sys.End() {
		return false
	}
	f := sys.Frequency()
	if f < 1 {
		f = 1
	}
	return (sys.Start()-tick)%f == 0
}

// Step walks the execution queue once, firing every due system in order,
// then advances the tick counter by exactly one. Execution and the counter
// advance are not interleaved per system: every due system observes the
// same tick value.
func (s *Scheduler) Step() {
	// Snapshot: systems may remove themselves (or each other) mid-tick.
	queue := s.Systems()
	for _, sys := range queue {
		if _, live := s.systems[sys.ID()]; !live {
			continue
		}
		if due(sys, s.tick) {
			sys.Execute()
		}
	}
	if s.model != nil {
		s.model.log.Debug("tick complete", zap.Int("tick", s.tick))
	}
	s.tick++
}

// RegisterComponent adds a component to the pool of its kind. Registering a
// component already present is an error, never silently ignored: silent
// divergence between an agent's component map and the pools is exactly the
// inconsistency this type exists to prevent.
func (s *Scheduler) RegisterComponent(c Component) error {
	k := kindOf(c)
	for _, p := range s.pools[k] {
		if p == c {
			return fmt.Errorf("%w: %s already registered", ErrDuplicateComponent, KindName(k))
		}
	}
	s.pools[k] = append(s.pools[k], c)
	return nil
}

// DeregisterComponent removes a component from the pool of its kind.
// Deregistering a component absent from its pool is an error. Empty pools
// are deleted so Components reports "never registered" for them again.
func (s *Scheduler) DeregisterComponent(c Component) error {
	k := kindOf(c)
	pool, ok := s.pools[k]
	if !ok {
		return fmt.Errorf("%w: no %s pool", ErrComponentNotFound, KindName(k))
	}
	for i, p := range pool {
		if p == c {
			s.pools[k] = append(pool[:i], pool[i+1:]...)
			if len(s.pools[k]) == 0 {
				delete(s.pools, k)
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %s was never registered", ErrComponentNotFound, KindName(k))
}

// adoptComponent registers a component unless it is already pooled. Used
// when an agent joins an environment with components attached beforehand.
func (s *Scheduler) adoptComponent(c Component) {
	k := kindOf(c)
	for _, p := range s.pools[k] {
		if p == c {
			return
		}
	}
	s.pools[k] = append(s.pools[k], c)
}

// abandonComponent removes a component from its pool if present. Used when
// an agent leaves an environment.
func (s *Scheduler) abandonComponent(c Component) {
	k := kindOf(c)
	pool := s.pools[k]
	for i, p := range pool {
		if p == c {
			s.pools[k] = append(pool[:i], pool[i+1:]...)
			if len(s.pools[k]) == 0 {
				delete(s.pools, k)
			}
			return
		}
	}
}

// Components returns the live pool for the given kind, or nil if no
// component of that kind is currently registered. The returned slice is the
// pool itself; callers must not mutate it.
func (s *Scheduler) Components(k Kind) []Component {
	return s.pools[k]
}
