package ecsim

import "errors"

// Core error values. Operations wrap these with fmt.Errorf("%w: ...") so
// callers can match with errors.Is while still seeing the offending id,
// kind or coordinate in the message.
var (
	// ErrDuplicateComponent is returned when an agent already owns a
	// component of the given kind, or when a component is registered with a
	// scheduler pool twice.
	ErrDuplicateComponent = errors.New("duplicate component")

	// ErrComponentNotFound is returned when a component kind, a cell table
	// column, or a pool entry cannot be found.
	ErrComponentNotFound = errors.New("component not found")

	// ErrDuplicateAgent is returned when an agent id already exists in an
	// environment.
	ErrDuplicateAgent = errors.New("duplicate agent")

	// ErrAgentNotFound is returned when no agent with the given id exists in
	// an environment.
	ErrAgentNotFound = errors.New("agent not found")

	// ErrDuplicateSystem is returned when a system id is already registered
	// with a scheduler.
	ErrDuplicateSystem = errors.New("duplicate system")

	// ErrSystemNotFound is returned when no system with the given id is
	// registered with a scheduler.
	ErrSystemNotFound = errors.New("system not found")

	// ErrDuplicateTag is returned when a tag name is already registered.
	ErrDuplicateTag = errors.New("duplicate tag")

	// ErrTagNotFound is returned when a tag id or name cannot be resolved.
	ErrTagNotFound = errors.New("tag not found")

	// ErrOutOfBounds is returned when a placement, move-to target or cell
	// coordinate lies outside a world's extents. Relative Move never returns
	// it: movement past an edge clamps instead.
	ErrOutOfBounds = errors.New("out of bounds")

	// ErrInvalidStepCount is returned by Model.Execute for a step count
	// below one.
	ErrInvalidStepCount = errors.New("invalid step count")

	// ErrInvalidReturnType is returned by neighbourhood queries for an
	// unsupported return type.
	ErrInvalidReturnType = errors.New("invalid neighbour return type")

	// ErrInvalidMode is returned by Neighbours for an unknown
	// neighbourhood mode.
	ErrInvalidMode = errors.New("invalid neighbourhood mode")

	// ErrColumnLength is returned when fixed cell component data does not
	// match the world's cell count.
	ErrColumnLength = errors.New("cell component length mismatch")
)
