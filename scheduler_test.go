package ecsim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingSystem records the tick of every execution.
type countingSystem struct {
	BaseSystem
	fired []int
}

func newCountingSystem(id string, m *Model, opts ...SystemOption) *countingSystem {
	return &countingSystem{BaseSystem: NewBaseSystem(id, m, opts...)}
}

func (s *countingSystem) Execute() {
	s.fired = append(s.fired, s.Model().Scheduler().Tick())
}

func TestSchedulerSystems(t *testing.T) {
	t.Run("duplicate id rejected", func(t *testing.T) {
		m := NewModel(WithSeed(1))
		require.NoError(t, m.Scheduler().AddSystem(newCountingSystem("s", m)))
		err := m.Scheduler().AddSystem(newCountingSystem("s", m))
		require.ErrorIs(t, err, ErrDuplicateSystem)
	})

	t.Run("remove", func(t *testing.T) {
		m := NewModel(WithSeed(1))
		require.NoError(t, m.Scheduler().AddSystem(newCountingSystem("s", m)))
		require.NoError(t, m.Scheduler().RemoveSystem("s"))

		_, ok := m.Scheduler().System("s")
		assert.False(t, ok)

		err := m.Scheduler().RemoveSystem("s")
		require.ErrorIs(t, err, ErrSystemNotFound)
	})

	t.Run("priority order is stable", func(t *testing.T) {
		m := NewModel(WithSeed(1))
		s := m.Scheduler()

		require.NoError(t, s.AddSystem(newCountingSystem("a", m)))
		require.NoError(t, s.AddSystem(newCountingSystem("b", m, WithPriority(10))))
		require.NoError(t, s.AddSystem(newCountingSystem("c", m)))

		var ids []string
		for _, sys := range s.Systems() {
			ids = append(ids, sys.ID())
		}
		// Highest priority first, FIFO among equals.
		assert.Equal(t, []string{"b", "a", "c"}, ids)
	})
}

func TestSchedulerGating(t *testing.T) {
	t.Run("frequency and window", func(t *testing.T) {
		m := NewModel(WithSeed(1))

		s1 := newCountingSystem("s1", m, WithWindow(0, 10))
		s2 := newCountingSystem("s2", m, WithFrequency(3), WithWindow(4, 10000))
		require.NoError(t, m.Scheduler().AddSystem(s1))
		require.NoError(t, m.Scheduler().AddSystem(s2))

		require.NoError(t, m.Execute(12))

		assert.Len(t, s1.fired, 11)
		assert.Equal(t, []int{4, 7, 10}, s2.fired)
		assert.Equal(t, 12, m.Scheduler().Tick())
	})

	t.Run("tick advances after all systems", func(t *testing.T) {
		m := NewModel(WithSeed(1))
		s := newCountingSystem("s", m)
		require.NoError(t, m.Scheduler().AddSystem(s))

		require.NoError(t, m.Execute(3))
		// Each execution observes the tick it runs in, not the next one.
		assert.Equal(t, []int{0, 1, 2}, s.fired)
	})

	t.Run("frequency below one is clamped", func(t *testing.T) {
		m := NewModel(WithSeed(1))
		s := newCountingSystem("s", m, WithFrequency(0))
		require.NoError(t, m.Scheduler().AddSystem(s))

		require.NoError(t, m.Execute(4))
		assert.Len(t, s.fired, 4)
	})
}

func TestSchedulerPools(t *testing.T) {
	t.Run("register and query", func(t *testing.T) {
		m := NewModel(WithSeed(1))
		a := NewAgent("a1", m)
		require.NoError(t, a.AddComponent(&healthComponent{HP: 1}))

		pool := m.Scheduler().Components(KindOf[healthComponent]())
		require.Len(t, pool, 1)
		assert.Same(t, a, pool[0].Owner())

		assert.Nil(t, m.Scheduler().Components(KindOf[speedComponent]()))
	})

	t.Run("duplicate registration rejected", func(t *testing.T) {
		m := NewModel(WithSeed(1))
		a := NewAgent("a1", m)
		c := &healthComponent{}
		require.NoError(t, a.AddComponent(c))

		err := m.Scheduler().RegisterComponent(c)
		require.ErrorIs(t, err, ErrDuplicateComponent)
	})

	t.Run("deregister absent rejected", func(t *testing.T) {
		m := NewModel(WithSeed(1))
		err := m.Scheduler().DeregisterComponent(&healthComponent{})
		require.ErrorIs(t, err, ErrComponentNotFound)
	})

	t.Run("pool empties on component removal", func(t *testing.T) {
		m := NewModel(WithSeed(1))
		a := NewAgent("a1", m)
		require.NoError(t, a.AddComponent(&healthComponent{}))
		require.NoError(t, a.RemoveComponent(KindOf[healthComponent]()))

		assert.Empty(t, m.Scheduler().Components(KindOf[healthComponent]()))
	})
}
