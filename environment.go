package ecsim

import "fmt"

// EnvironmentID is the default id of a model's environment entity.
const EnvironmentID = "ENVIRONMENT"

// Filter narrows the agents returned by Agents, RandomAgent and Shuffle.
// Filters are conjunctive: an agent must match all of them.
type Filter func(*Agent) bool

// ByKind matches agents owning a component of every given kind.
func ByKind(kinds ...Kind) Filter {
	var want Bitmask
	for _, k := range kinds {
		want.Set(k)
	}
	return func(a *Agent) bool {
		return a.mask.ContainsAll(want)
	}
}

// ByTag matches agents with exactly the given tag.
func ByTag(t Tag) Filter {
	return func(a *Agent) bool {
		return a.tag == t
	}
}

// Environment owns a population of agents on top of its own
// component-owning entity. The base implementation has no spatial
// structure; SpaceWorld and DiscreteWorld specialize it.
type Environment interface {
	// ID returns the id of the environment's entity.
	ID() string

	// Entity returns the environment's own agent, which may carry
	// components like any other.
	Entity() *Agent

	// Model returns the owning model.
	Model() *Model

	// AddAgent adds an agent to the population. Returns ErrDuplicateAgent
	// if the id is already present. Components the agent owned before
	// joining are registered with the scheduler pools as part of the add.
	AddAgent(a *Agent) error

	// RemoveAgent removes the agent with the given id, deregistering all of
	// its components from the scheduler pools first. Returns
	// ErrAgentNotFound if no such agent exists.
	RemoveAgent(id string) error

	// Agent returns the agent with the given id.
	Agent(id string) (*Agent, bool)

	// RequireAgent is like Agent but returns ErrAgentNotFound on a miss.
	RequireAgent(id string) (*Agent, error)

	// Agents returns the agents matching every filter, in insertion order.
	// With no filters it returns all agents.
	Agents(filters ...Filter) []*Agent

	// RandomAgent returns a uniformly drawn agent matching every filter,
	// or nil when nothing matches. The nil sentinel (rather than an error)
	// is deliberate and differs from RequireAgent.
	RandomAgent(filters ...Filter) *Agent

	// Shuffle returns the matching agents in a fresh random order drawn
	// from the model's seeded source.
	Shuffle(filters ...Filter) []*Agent

	// Len returns the population size.
	Len() int

	setModel(m *Model)
}

// BaseEnvironment is the default environment: a population of agents with
// no spatial structure. It composes two capabilities on one entity: owning
// components (through its entity agent) and owning sub-agents.
type BaseEnvironment struct {
	entity *Agent
	agents map[string]*Agent
	order  []string // insertion order, for reproducible iteration
}

var _ Environment = (*BaseEnvironment)(nil)

// NewEnvironment creates an empty environment bound to the given model.
func NewEnvironment(m *Model) *BaseEnvironment {
	return &BaseEnvironment{
		entity: NewAgent(EnvironmentID, m),
		agents: make(map[string]*Agent),
	}
}

// ID returns the id of the environment's entity.
func (e *BaseEnvironment) ID() string { return e.entity.id }

// Entity returns the environment's own agent.
func (e *BaseEnvironment) Entity() *Agent { return e.entity }

// Model returns the owning model.
func (e *BaseEnvironment) Model() *Model { return e.entity.model }

func (e *BaseEnvironment) setModel(m *Model) { e.entity.model = m }

// AddComponent attaches a component to the environment's entity.
func (e *BaseEnvironment) AddComponent(c Component) error {
	return e.entity.AddComponent(c)
}

// RemoveComponent detaches a component from the environment's entity.
func (e *BaseEnvironment) RemoveComponent(k Kind) error {
	return e.entity.RemoveComponent(k)
}

// AddAgent adds an agent to the population. Components the agent already
// owns become visible to the scheduler pools exactly when the agent joins;
// components attached afterwards register themselves on attachment.
func (e *BaseEnvironment) AddAgent(a *Agent) error {
	if _, ok := e.agents[a.id]; ok {
		return fmt.Errorf("%w: %q in environment %q", ErrDuplicateAgent, a.id, e.entity.id)
	}

	if m := e.entity.model; m != nil {
		for _, c := range a.Components() {
			m.Scheduler().adoptComponent(c)
		}
	}

	e.agents[a.id] = a
	e.order = append(e.order, a.id)
	return nil
}

// RemoveAgent removes an agent, deregistering all of its components from
// the scheduler pools before it is dropped.
func (e *BaseEnvironment) RemoveAgent(id string) error {
	a, ok := e.agents[id]
	if !ok {
		return fmt.Errorf("%w: %q in environment %q", ErrAgentNotFound, id, e.entity.id)
	}

	if m := e.entity.model; m != nil {
		for _, c := range a.Components() {
			m.Scheduler().abandonComponent(c)
		}
	}

	delete(e.agents, id)
	for i, oid := range e.order {
		if oid == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
	return nil
}

// Agent returns the agent with the given id.
func (e *BaseEnvironment) Agent(id string) (*Agent, bool) {
	a, ok := e.agents[id]
	return a, ok
}

// RequireAgent returns the agent with the given id, or ErrAgentNotFound.
func (e *BaseEnvironment) RequireAgent(id string) (*Agent, error) {
	a, ok := e.agents[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q in environment %q", ErrAgentNotFound, id, e.entity.id)
	}
	return a, nil
}

// Agents returns the agents matching every filter, in insertion order.
func (e *BaseEnvironment) Agents(filters ...Filter) []*Agent {
	matched := make([]*Agent, 0, len(e.order))
outer:
	for _, id := range e.order {
		a := e.agents[id]
		for _, f := range filters {
			if !f(a) {
				continue outer
			}
		}
		matched = append(matched, a)
	}
	return matched
}

// RandomAgent returns a uniformly drawn matching agent, or nil when the
// match set is empty.
func (e *BaseEnvironment) RandomAgent(filters ...Filter) *Agent {
	matched := e.Agents(filters...)
	if len(matched) == 0 {
		return nil
	}
	m := e.entity.model
	if m == nil {
		return matched[0]
	}
	return matched[m.RNG().Intn(len(matched))]
}

// Shuffle returns the matching agents in a fresh random permutation.
func (e *BaseEnvironment) Shuffle(filters ...Filter) []*Agent {
	matched := e.Agents(filters...)
	if m := e.entity.model; m != nil {
		m.RNG().Shuffle(len(matched), func(i, j int) {
			matched[i], matched[j] = matched[j], matched[i]
		})
	}
	return matched
}

// Len returns the population size.
func (e *BaseEnvironment) Len() int { return len(e.agents) }
