package ecsim

import "fmt"

// Tag is a small integer classifying an agent's category. Tags shine when a
// model has multiple agent types that share the same components, where
// component template matching cannot tell them apart.
type Tag int

// TagNone is the reserved "no tag" value carried by every untagged agent.
const TagNone Tag = 0

// TagRegistry maps human-readable agent-category names to small dense
// integers. Ids start at 1 in registration order and are never reused or
// reassigned; id 0 is reserved for TagNone. Each Model owns its own
// registry, so tag ids are scoped to the model rather than the process.
type TagRegistry struct {
	names []string
	ids   map[string]Tag
}

// NewTagRegistry creates a registry containing only the reserved NONE tag.
func NewTagRegistry() *TagRegistry {
	return &TagRegistry{
		names: []string{"NONE"},
		ids:   map[string]Tag{"NONE": TagNone},
	}
}

// Len returns the number of tags in the registry, including NONE.
func (r *TagRegistry) Len() int { return len(r.names) }

// Register adds a tag with the given name and returns its id. Returns
// ErrDuplicateTag if the name is already registered.
func (r *TagRegistry) Register(name string) (Tag, error) {
	if _, ok := r.ids[name]; ok {
		return TagNone, fmt.Errorf("%w: %q", ErrDuplicateTag, name)
	}
	t := Tag(len(r.names))
	r.names = append(r.names, name)
	r.ids[name] = t
	return t, nil
}

// Name returns the name of the tag with the given id. Returns
// ErrTagNotFound if the id was never assigned.
func (r *TagRegistry) Name(t Tag) (string, error) {
	if t < 0 || int(t) >= len(r.names) {
		return "", fmt.Errorf("%w: id %d", ErrTagNotFound, t)
	}
	return r.names[t], nil
}

// Resolve returns the id of the tag with the given name. Returns
// ErrTagNotFound if no such tag exists.
func (r *TagRegistry) Resolve(name string) (Tag, error) {
	t, ok := r.ids[name]
	if !ok {
		return TagNone, fmt.Errorf("%w: %q", ErrTagNotFound, name)
	}
	return t, nil
}
