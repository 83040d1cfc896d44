package ecsim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpaceWorld(t *testing.T) {
	newLine := func(t *testing.T) (*Model, *SpaceWorld) {
		t.Helper()
		m := NewModel(WithSeed(1))
		w, err := NewSpaceWorld(m, 5, 0, 0)
		require.NoError(t, err)
		m.SetEnvironment(w)
		return m, w
	}

	t.Run("negative extents rejected", func(t *testing.T) {
		m := NewModel(WithSeed(1))
		_, err := NewSpaceWorld(m, -1, 0, 0)
		require.ErrorIs(t, err, ErrOutOfBounds)
	})

	t.Run("add attaches position", func(t *testing.T) {
		m, w := newLine(t)
		a := NewAgent("a1", m)
		require.NoError(t, w.AddAgentAt(a, 3, 0, 0))

		pos := Get[PositionComponent](a)
		require.NotNil(t, pos)
		x, y, z := pos.XYZ()
		assert.Equal(t, 3.0, x)
		assert.Equal(t, 0.0, y)
		assert.Equal(t, 0.0, z)
	})

	t.Run("add bounds checked on live axes", func(t *testing.T) {
		m, w := newLine(t)
		require.ErrorIs(t, w.AddAgentAt(NewAgent("a1", m), 5, 0, 0), ErrOutOfBounds)
		require.ErrorIs(t, w.AddAgentAt(NewAgent("a2", m), -0.5, 0, 0), ErrOutOfBounds)

		// The y and z axes do not exist, so any coordinate pins to 0.
		b := NewAgent("b1", m)
		require.NoError(t, w.AddAgentAt(b, 0, 99, -3))
		pos := Get[PositionComponent](b)
		assert.Equal(t, 0.0, pos.Y)
		assert.Equal(t, 0.0, pos.Z)
	})

	t.Run("duplicate add leaves no position behind", func(t *testing.T) {
		m, w := newLine(t)
		a := NewAgent("a1", m)
		require.NoError(t, w.AddAgentAt(a, 1, 0, 0))

		err := w.AddAgentAt(a, 2, 0, 0)
		require.ErrorIs(t, err, ErrDuplicateAgent)
		assert.Equal(t, 1.0, Get[PositionComponent](a).X)
	})

	t.Run("remove detaches position", func(t *testing.T) {
		m, w := newLine(t)
		a := NewAgent("a1", m)
		require.NoError(t, w.AddAgentAt(a, 1, 0, 0))
		require.NoError(t, w.RemoveAgent("a1"))

		assert.Nil(t, Get[PositionComponent](a))
		assert.Equal(t, 0, w.Len())
	})

	t.Run("move clamps", func(t *testing.T) {
		m, w := newLine(t)
		a := NewAgent("a1", m)
		require.NoError(t, w.AddAgentAt(a, 2, 0, 0))

		require.NoError(t, w.Move(a, 10, 0, 0))
		assert.Equal(t, 4.0, Get[PositionComponent](a).X)

		require.NoError(t, w.Move(a, -100, 0, 0))
		assert.Equal(t, 0.0, Get[PositionComponent](a).X)
	})

	t.Run("move to errors out of bounds", func(t *testing.T) {
		m, w := newLine(t)
		a := NewAgent("a1", m)
		require.NoError(t, w.AddAgentAt(a, 2, 0, 0))

		require.ErrorIs(t, w.MoveTo(a, 7, 0, 0), ErrOutOfBounds)
		require.ErrorIs(t, w.MoveTo(a, -1, 0, 0), ErrOutOfBounds)
		require.ErrorIs(t, w.MoveTo(a, 5, 0, 0), ErrOutOfBounds)
		assert.Equal(t, 2.0, Get[PositionComponent](a).X)

		require.NoError(t, w.MoveTo(a, 4, 0, 0))
		assert.Equal(t, 4.0, Get[PositionComponent](a).X)
	})

	t.Run("move without position fails", func(t *testing.T) {
		m, w := newLine(t)
		loose := NewAgent("loose", m)
		require.ErrorIs(t, w.Move(loose, 1, 0, 0), ErrComponentNotFound)
		require.ErrorIs(t, w.MoveTo(loose, 1, 0, 0), ErrComponentNotFound)
	})

	t.Run("agents at", func(t *testing.T) {
		m := NewModel(WithSeed(1))
		w, err := NewSpaceWorld(m, 10, 10, 10)
		require.NoError(t, err)
		m.SetEnvironment(w)

		a := NewAgent("a1", m)
		require.NoError(t, w.AddAgentAt(a, 1, 1, 1))
		b := NewAgent("b1", m)
		require.NoError(t, w.AddAgentAt(b, 3, 3, 3))

		assert.Equal(t, []string{"a1"}, agentIDs(w.AgentsAt(1, 1, 1, 0)))
		assert.Equal(t, []string{"a1", "b1"}, agentIDs(w.AgentsAt(2, 2, 2, 1)))
		assert.Empty(t, w.AgentsAt(8, 8, 8, 1))

		assert.Equal(t, []string{"b1"}, agentIDs(w.AgentsWithin(3, 3, 3, 0.5, 2, 2)))
	})
}

func TestDistance(t *testing.T) {
	a := &PositionComponent{X: 0, Y: 0, Z: 0}
	b := &PositionComponent{X: 3, Y: 4, Z: 0}

	assert.InDelta(t, 5.0, Distance(a, b), 1e-9)
	assert.InDelta(t, 25.0, DistanceSqr(a, b), 1e-9)
}
