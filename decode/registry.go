package decode

import (
	"errors"
	"fmt"

	"github.com/ecsim/ecsim"
)

var (
	// ErrDuplicateName is returned when a factory or hook name is already
	// registered.
	ErrDuplicateName = errors.New("duplicate registration")

	// ErrUnknownName is returned when a config names a factory or hook
	// that was never registered.
	ErrUnknownName = errors.New("unknown registration")
)

// ModelFactory builds the model a config describes.
type ModelFactory func(p Params) (*ecsim.Model, error)

// SystemFactory builds one system for an already-built model.
type SystemFactory func(m *ecsim.Model, p Params) (ecsim.System, error)

// AgentFactory builds the index-th agent of a block. Factories derive
// unique agent ids from the index.
type AgentFactory func(m *ecsim.Model, index int, p Params) (*ecsim.Agent, error)

// Hook runs around decode stages. The model is nil for the pre-decode
// hook, which runs before the model exists.
type Hook func(m *ecsim.Model, p Params) error

// Registry maps the names a config file uses to the factories that build
// the pieces. Construct-by-name is explicit: nothing is discovered via
// reflection, every name must be registered up front.
type Registry struct {
	models  map[string]ModelFactory
	systems map[string]SystemFactory
	agents  map[string]AgentFactory
	hooks   map[string]Hook
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		models:  make(map[string]ModelFactory),
		systems: make(map[string]SystemFactory),
		agents:  make(map[string]AgentFactory),
		hooks:   make(map[string]Hook),
	}
}

// RegisterModel registers a model factory under name.
func (r *Registry) RegisterModel(name string, f ModelFactory) error {
	if _, ok := r.models[name]; ok {
		return fmt.Errorf("%w: model %q", ErrDuplicateName, name)
	}
	r.models[name] = f
	return nil
}

// RegisterSystem registers a system factory under name.
func (r *Registry) RegisterSystem(name string, f SystemFactory) error {
	if _, ok := r.systems[name]; ok {
		return fmt.Errorf("%w: system %q", ErrDuplicateName, name)
	}
	r.systems[name] = f
	return nil
}

// RegisterAgent registers an agent factory under name.
func (r *Registry) RegisterAgent(name string, f AgentFactory) error {
	if _, ok := r.agents[name]; ok {
		return fmt.Errorf("%w: agent %q", ErrDuplicateName, name)
	}
	r.agents[name] = f
	return nil
}

// RegisterHook registers a decode hook under name.
func (r *Registry) RegisterHook(name string, h Hook) error {
	if _, ok := r.hooks[name]; ok {
		return fmt.Errorf("%w: hook %q", ErrDuplicateName, name)
	}
	r.hooks[name] = h
	return nil
}

func (r *Registry) model(name string) (ModelFactory, error) {
	f, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("%w: model %q", ErrUnknownName, name)
	}
	return f, nil
}

func (r *Registry) system(name string) (SystemFactory, error) {
	f, ok := r.systems[name]
	if !ok {
		return nil, fmt.Errorf("%w: system %q", ErrUnknownName, name)
	}
	return f, nil
}

func (r *Registry) agent(name string) (AgentFactory, error) {
	f, ok := r.agents[name]
	if !ok {
		return nil, fmt.Errorf("%w: agent %q", ErrUnknownName, name)
	}
	return f, nil
}

func (r *Registry) hook(name string) (Hook, error) {
	h, ok := r.hooks[name]
	if !ok {
		return nil, fmt.Errorf("%w: hook %q", ErrUnknownName, name)
	}
	return h, nil
}
