package ecsim

import "fmt"

// Agent is an entity with an id, an optional tag and a set of owned
// components, at most one per kind. Agent ids must be unique within the
// environment that holds the agent, not globally.
type Agent struct {
	id    string
	tag   Tag
	model *Model

	components map[Kind]Component
	order      []Kind // attachment order, kept for reproducible iteration
	mask       Bitmask
}

// NewAgent creates an agent bound to the given model with the zero tag.
// The agent is standalone until added to an environment.
func NewAgent(id string, m *Model) *Agent {
	return NewTaggedAgent(id, m, TagNone)
}

// NewTaggedAgent creates an agent bound to the given model with a tag.
func NewTaggedAgent(id string, m *Model, tag Tag) *Agent {
	return &Agent{
		id:         id,
		tag:        tag,
		model:      m,
		components: make(map[Kind]Component),
	}
}

// ID returns the agent's id.
func (a *Agent) ID() string { return a.id }

// Tag returns the agent's tag; TagNone if the agent was never tagged.
func (a *Agent) Tag() Tag { return a.tag }

// SetTag assigns a tag to the agent.
func (a *Agent) SetTag(t Tag) { a.tag = t }

// Model returns the model the agent belongs to.
func (a *Agent) Model() *Model { return a.model }

// Len returns the number of components attached to the agent.
func (a *Agent) Len() int { return len(a.components) }

// AddComponent attaches a component to the agent and registers it with the
// model's scheduler pool, making it visible to systems from the next pool
// query onward. Returns ErrDuplicateComponent if the agent already owns a
// component of the same kind. The agent map and the pool are updated
// together: on a pool registration failure the component stays detached.
func (a *Agent) AddComponent(c Component) error {
	k := kindOf(c)
	if a.mask.Has(k) {
		return fmt.Errorf("%w: agent %q already has a %s", ErrDuplicateComponent, a.id, KindName(k))
	}

	c.bind(a, a.model)
	if a.model != nil {
		if err := a.model.Scheduler().RegisterComponent(c); err != nil {
			c.unbind()
			return err
		}
	}

	a.components[k] = c
	a.order = append(a.order, k)
	a.mask.Set(k)
	return nil
}

// RemoveComponent detaches the component of the given kind and deregisters
// it from the scheduler pool. Returns ErrComponentNotFound if the agent does
// not own one. There is no intermediate state in which the agent still holds
// the component but the pool has forgotten it, or vice versa.
func (a *Agent) RemoveComponent(k Kind) error {
	c, ok := a.components[k]
	if !ok {
		return fmt.Errorf("%w: agent %q has no %s", ErrComponentNotFound, a.id, KindName(k))
	}

	if a.model != nil {
		if err := a.model.Scheduler().DeregisterComponent(c); err != nil {
			return err
		}
	}

	delete(a.components, k)
	for i, o := range a.order {
		if o == k {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
	a.mask.Clear(k)
	c.unbind()
	return nil
}

// Component returns the component of the given kind, or nil if the agent
// does not own one.
func (a *Agent) Component(k Kind) Component {
	return a.components[k]
}

// RequireComponent returns the component of the given kind, or
// ErrComponentNotFound if the agent does not own one.
func (a *Agent) RequireComponent(k Kind) (Component, error) {
	c, ok := a.components[k]
	if !ok {
		return nil, fmt.Errorf("%w: agent %q has no %s", ErrComponentNotFound, a.id, KindName(k))
	}
	return c, nil
}

// Has reports whether the agent owns a component of every supplied kind.
// With no arguments it trivially returns true.
func (a *Agent) Has(kinds ...Kind) bool {
	var want Bitmask
	for _, k := range kinds {
		want.Set(k)
	}
	return a.mask.ContainsAll(want)
}

// Components returns the agent's components in attachment order.
func (a *Agent) Components() []Component {
	out := make([]Component, 0, len(a.components))
	for _, k := range a.order {
		out = append(out, a.components[k])
	}
	return out
}
