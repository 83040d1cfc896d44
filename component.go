package ecsim

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
)

// Kind is a dense identifier for a component type. Valid kinds range from 0
// to 255.
type Kind uint8

// MaxKinds is the maximum number of component types supported.
const MaxKinds = 255

// kindRegistry maps component Go types to dense kind ids with lock-free
// reads. Kind ids are assigned sequentially on first use and are stable for
// the lifetime of the process. The registry holds type metadata only; all
// mutable simulation state (pools, ticks, RNG) is scoped to Model and
// Scheduler instances, so many models can coexist in one address space.
type kindRegistry struct {
	// types maps reflect.Type to Kind. sync.Map gives lock-free reads on
	// the hot path; types are registered once and looked up constantly.
	types sync.Map // map[reflect.Type]Kind

	// names stores component type names indexed by Kind. Written once
	// during registration, read-only afterwards.
	names [MaxKinds]string

	// nextID is the next available kind (atomic for lock-free allocation).
	nextID atomic.Uint32

	// namesMu protects writes to the names array during registration.
	namesMu sync.RWMutex
}

var registry = &kindRegistry{}

// registerKind registers a component type and returns its kind. Called
// automatically the first time a component type is used.
func registerKind(t reflect.Type) Kind {
	if id, ok := registry.types.Load(t); ok {
		return id.(Kind)
	}

	newID := Kind(registry.nextID.Add(1) - 1)
	if newID >= MaxKinds {
		panic(fmt.Sprintf("ecsim: component kind limit exceeded (max %d types)", MaxKinds))
	}

	// LoadOrStore ensures only one goroutine wins if multiple register the
	// same type simultaneously; a losing goroutine's allocated id is wasted,
	// which is rare and harmless.
	actual, loaded := registry.types.LoadOrStore(t, newID)
	if loaded {
		return actual.(Kind)
	}

	registry.namesMu.Lock()
	registry.names[newID] = t.Name()
	registry.namesMu.Unlock()

	return newID
}

// KindOf returns the kind for component type T, registering it if needed.
func KindOf[T any]() Kind {
	return registerKind(reflect.TypeOf((*T)(nil)).Elem())
}

// kindOf returns the kind of a concrete component instance.
func kindOf(c Component) Kind {
	t := reflect.TypeOf(c)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return registerKind(t)
}

// KindName returns the Go type name of the component type with the given
// kind, or the empty string if the kind has not been registered.
func KindName(k Kind) string {
	registry.namesMu.RLock()
	defer registry.namesMu.RUnlock()
	return registry.names[k]
}

// RegisteredKinds returns the number of registered component types.
func RegisteredKinds() int {
	return int(registry.nextID.Load())
}

// Component is a plain data record owned by exactly one agent. Concrete
// components embed BaseComponent, which carries the back-references to the
// owning agent and model:
//
//	type Wealth struct {
//	    ecsim.BaseComponent
//	    Amount int
//	}
//
// A component has no identity beyond "the instance owned by agent X of kind
// K". It is attached with Agent.AddComponent and detached with
// Agent.RemoveComponent; both keep the agent's map and the scheduler's pool
// in lockstep.
type Component interface {
	// Owner returns the agent the component is attached to, or nil while
	// detached.
	Owner() *Agent

	// Model returns the model of the owning agent, or nil while detached.
	Model() *Model

	bind(a *Agent, m *Model)
	unbind()
}

// BaseComponent provides the owner and model back-references required by the
// Component interface. Embed it in every concrete component type.
type BaseComponent struct {
	owner *Agent
	model *Model
}

// Owner returns the agent the component is attached to, or nil.
func (c *BaseComponent) Owner() *Agent { return c.owner }

// Model returns the model of the owning agent, or nil.
func (c *BaseComponent) Model() *Model { return c.model }

func (c *BaseComponent) bind(a *Agent, m *Model) {
	c.owner = a
	c.model = m
}

func (c *BaseComponent) unbind() {
	c.owner = nil
	c.model = nil
}

// Get retrieves the component of type T attached to the agent. Returns nil
// if the agent does not own one.
func Get[T any](a *Agent) *T {
	if a == nil {
		return nil
	}
	c := a.Component(KindOf[T]())
	if c == nil {
		return nil
	}
	v, ok := any(c).(*T)
	if !ok {
		return nil
	}
	return v
}
