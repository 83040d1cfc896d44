// Package batch runs grid searches: one independent model per parameter
// set and repetition, executed concurrently with deterministic per-run
// seeds.
package batch

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateParameter is returned when a parameter name is added
	// twice.
	ErrDuplicateParameter = errors.New("duplicate parameter")

	// ErrParameterNotFound is returned when removing a name that was
	// never added.
	ErrParameterNotFound = errors.New("parameter not found")
)

// Params is one concrete parameter set of a grid search.
type Params = map[string]any

// ParameterList accumulates named parameters, each with one or more
// candidate values, and expands them into the cross product of all
// combinations.
type ParameterList struct {
	names  []string // insertion order, fixes the expansion order
	values map[string][]any
}

// NewParameterList creates an empty list.
func NewParameterList() *ParameterList {
	return &ParameterList{values: make(map[string][]any)}
}

// Add registers a parameter with its candidate values. At least one value
// is required; a single value keeps the parameter fixed across the grid.
func (l *ParameterList) Add(name string, values ...any) error {
	if _, ok := l.values[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateParameter, name)
	}
	if len(values) == 0 {
		return fmt.Errorf("parameter %q needs at least one value", name)
	}
	l.values[name] = values
	l.names = append(l.names, name)
	return nil
}

// Remove deletes a parameter.
func (l *ParameterList) Remove(name string) error {
	if _, ok := l.values[name]; !ok {
		return fmt.Errorf("%w: %q", ErrParameterNotFound, name)
	}
	delete(l.values, name)
	for i, n := range l.names {
		if n == name {
			l.names = append(l.names[:i], l.names[i+1:]...)
			break
		}
	}
	return nil
}

// Len returns the number of parameters.
func (l *ParameterList) Len() int { return len(l.names) }

// Build expands the list into every combination of parameter values.
// Parameters vary in insertion order with the last-added parameter varying
// fastest. An empty list builds a single empty set.
func (l *ParameterList) Build() []Params {
	sets := []Params{{}}
	for _, name := range l.names {
		expanded := make([]Params, 0, len(sets)*len(l.values[name]))
		for _, base := range sets {
			for _, v := range l.values[name] {
				next := make(Params, len(base)+1)
				for k, bv := range base {
					next[k] = bv
				}
				next[name] = v
				expanded = append(expanded, next)
			}
		}
		sets = expanded
	}
	return sets
}

// Names returns the parameter names in insertion order.
func (l *ParameterList) Names() []string {
	out := make([]string, len(l.names))
	copy(out, l.names)
	return out
}
