package ecsim

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// PositionComponent stores an agent's place in a 1-3D world. Spatial
// environments attach one to every agent they hold.
type PositionComponent struct {
	BaseComponent
	X, Y, Z float64
}

// XYZ returns the position as a coordinate triple.
func (p *PositionComponent) XYZ() (float64, float64, float64) {
	return p.X, p.Y, p.Z
}

// XY returns the x and y coordinates.
func (p *PositionComponent) XY() (float64, float64) { return p.X, p.Y }

// XZ returns the x and z coordinates.
func (p *PositionComponent) XZ() (float64, float64) { return p.X, p.Z }

// YZ returns the y and z coordinates.
func (p *PositionComponent) YZ() (float64, float64) { return p.Y, p.Z }

// Vec3 returns the position as a vector.
func (p *PositionComponent) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{p.X, p.Y, p.Z}
}

// Distance returns the euclidean distance between two positions.
func Distance(a, b *PositionComponent) float64 {
	return a.Vec3().Sub(b.Vec3()).Len()
}

// DistanceSqr returns the squared distance between two positions. It skips
// the square root, which is enough when only comparing distances.
func DistanceSqr(a, b *PositionComponent) float64 {
	d := a.Vec3().Sub(b.Vec3())
	return d.Dot(d)
}

// SpaceWorld is an environment with continuous positions bounded by integer
// extents. An extent of 0 means the axis does not exist: its coordinate is
// pinned to 0 and never bounds-checked. Every agent added to a SpaceWorld
// owns exactly one PositionComponent.
type SpaceWorld struct {
	BaseEnvironment
	width, height, depth int
}

var _ Environment = (*SpaceWorld)(nil)

// NewSpaceWorld creates a spatial environment with the given extents.
// Negative extents are rejected with ErrOutOfBounds.
func NewSpaceWorld(m *Model, width, height, depth int) (*SpaceWorld, error) {
	if width < 0 || height < 0 || depth < 0 {
		return nil, fmt.Errorf("%w: extents (%d,%d,%d) must not be negative", ErrOutOfBounds, width, height, depth)
	}
	return &SpaceWorld{
		BaseEnvironment: *NewEnvironment(m),
		width:           width,
		height:          height,
		depth:           depth,
	}, nil
}

// Width returns the x extent.
func (w *SpaceWorld) Width() int { return w.width }

// Height returns the y extent.
func (w *SpaceWorld) Height() int { return w.height }

// Depth returns the z extent.
func (w *SpaceWorld) Depth() int { return w.depth }

// Dimensions returns all three extents.
func (w *SpaceWorld) Dimensions() (width, height, depth int) {
	return w.width, w.height, w.depth
}

// inBounds reports whether v is valid for an axis with the given extent.
func inBounds(v float64, extent int) bool {
	if extent <= 0 {
		return true
	}
	return v >= 0 && v < float64(extent)
}

// pin returns v for live axes and 0 for axes that do not exist.
func pin(v float64, extent int) float64 {
	if extent <= 0 {
		return 0
	}
	return v
}

// AddAgent places the agent at the origin. See AddAgentAt.
func (w *SpaceWorld) AddAgent(a *Agent) error {
	return w.AddAgentAt(a, 0, 0, 0)
}

// AddAgentAt places the agent at (x, y, z), attaching a PositionComponent
// before the base add. Coordinates on live axes must satisfy
// 0 <= coord < extent; ErrOutOfBounds otherwise.
func (w *SpaceWorld) AddAgentAt(a *Agent, x, y, z float64) error {
	if !inBounds(x, w.width) || !inBounds(y, w.height) || !inBounds(z, w.depth) {
		return fmt.Errorf("%w: cannot place agent %q at (%v,%v,%v)", ErrOutOfBounds, a.id, x, y, z)
	}
	if _, ok := w.agents[a.id]; ok {
		return fmt.Errorf("%w: %q in environment %q", ErrDuplicateAgent, a.id, w.entity.id)
	}

	pos := &PositionComponent{X: pin(x, w.width), Y: pin(y, w.height), Z: pin(z, w.depth)}
	if err := a.AddComponent(pos); err != nil {
		return err
	}
	if err := w.BaseEnvironment.AddAgent(a); err != nil {
		_ = a.RemoveComponent(KindOf[PositionComponent]())
		return err
	}
	return nil
}

// RemoveAgent detaches the environment-attached PositionComponent before
// delegating to the base removal.
func (w *SpaceWorld) RemoveAgent(id string) error {
	if a, ok := w.agents[id]; ok && a.Has(KindOf[PositionComponent]()) {
		if err := a.RemoveComponent(KindOf[PositionComponent]()); err != nil {
			return err
		}
	}
	return w.BaseEnvironment.RemoveAgent(id)
}

// Move shifts the agent by (dx, dy, dz). The new coordinate on each live
// axis is clamped to [0, extent-1]: movement past an edge saturates rather
// than erroring, unlike MoveTo. Returns ErrComponentNotFound if the agent
// has no PositionComponent.
func (w *SpaceWorld) Move(a *Agent, dx, dy, dz float64) error {
	pos := Get[PositionComponent](a)
	if pos == nil {
		return fmt.Errorf("%w: agent %q has no PositionComponent", ErrComponentNotFound, a.id)
	}
	pos.X = clampAxis(pos.X+dx, w.width)
	pos.Y = clampAxis(pos.Y+dy, w.height)
	pos.Z = clampAxis(pos.Z+dz, w.depth)
	return nil
}

// MoveTo places the agent at (x, y, z). Unlike Move, targets outside a live
// axis range fail with ErrOutOfBounds. Returns ErrComponentNotFound if the
// agent has no PositionComponent.
func (w *SpaceWorld) MoveTo(a *Agent, x, y, z float64) error {
	pos := Get[PositionComponent](a)
	if pos == nil {
		return fmt.Errorf("%w: agent %q has no PositionComponent", ErrComponentNotFound, a.id)
	}
	if !inBounds(x, w.width) || !inBounds(y, w.height) || !inBounds(z, w.depth) {
		return fmt.Errorf("%w: cannot move agent %q to (%v,%v,%v)", ErrOutOfBounds, a.id, x, y, z)
	}
	pos.X = pin(x, w.width)
	pos.Y = pin(y, w.height)
	pos.Z = pin(z, w.depth)
	return nil
}

// clampAxis clamps v to [0, extent-1] on live axes and pins it to 0 on
// axes that do not exist.
func clampAxis(v float64, extent int) float64 {
	if extent <= 0 {
		return 0
	}
	if v < 0 {
		return 0
	}
	if hi := float64(extent - 1); v > hi {
		return hi
	}
	return v
}

// AgentsAt returns the agents within leeway units of (x, y, z) on every
// axis. A leeway of 0 returns only the agents at the exact position.
func (w *SpaceWorld) AgentsAt(x, y, z, leeway float64) []*Agent {
	return w.AgentsWithin(x, y, z, leeway, leeway, leeway)
}

// AgentsWithin returns the agents within the per-axis leeways of (x, y, z),
// in insertion order.
func (w *SpaceWorld) AgentsWithin(x, y, z, lx, ly, lz float64) []*Agent {
	var matched []*Agent
	for _, id := range w.order {
		a := w.agents[id]
		pos := Get[PositionComponent](a)
		if pos == nil {
			continue
		}
		if abs(pos.X-x) <= lx && abs(pos.Y-y) <= ly && abs(pos.Z-z) <= lz {
			matched = append(matched, a)
		}
	}
	return matched
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
