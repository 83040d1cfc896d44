package batch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecsim/ecsim"
	"github.com/ecsim/ecsim/collect"
)

func TestParameterList(t *testing.T) {
	t.Run("cross product in insertion order", func(t *testing.T) {
		l := NewParameterList()
		require.NoError(t, l.Add("size", 10))
		require.NoError(t, l.Add("agents", 1, 2, 3))

		sets := l.Build()
		require.Len(t, sets, 3)
		assert.Equal(t, Params{"size": 10, "agents": 1}, sets[0])
		assert.Equal(t, Params{"size": 10, "agents": 2}, sets[1])
		assert.Equal(t, Params{"size": 10, "agents": 3}, sets[2])
	})

	t.Run("multiple varying parameters", func(t *testing.T) {
		l := NewParameterList()
		require.NoError(t, l.Add("a", 1, 2))
		require.NoError(t, l.Add("b", "x", "y"))

		sets := l.Build()
		require.Len(t, sets, 4)
		assert.Equal(t, Params{"a": 1, "b": "x"}, sets[0])
		assert.Equal(t, Params{"a": 1, "b": "y"}, sets[1])
		assert.Equal(t, Params{"a": 2, "b": "x"}, sets[2])
		assert.Equal(t, Params{"a": 2, "b": "y"}, sets[3])
	})

	t.Run("empty list builds one empty set", func(t *testing.T) {
		sets := NewParameterList().Build()
		require.Len(t, sets, 1)
		assert.Empty(t, sets[0])
	})

	t.Run("duplicate rejected", func(t *testing.T) {
		l := NewParameterList()
		require.NoError(t, l.Add("size", 1))
		require.ErrorIs(t, l.Add("size", 2), ErrDuplicateParameter)
	})

	t.Run("remove", func(t *testing.T) {
		l := NewParameterList()
		require.NoError(t, l.Add("size", 1))
		require.NoError(t, l.Remove("size"))
		require.ErrorIs(t, l.Remove("size"), ErrParameterNotFound)
		assert.Equal(t, 0, l.Len())
	})

	t.Run("no values rejected", func(t *testing.T) {
		require.Error(t, NewParameterList().Add("size"))
	})
}

func TestRunSeed(t *testing.T) {
	names := []string{"a", "b"}
	p1 := Params{"a": 1, "b": 2}
	p2 := Params{"a": 1, "b": 3}

	assert.Equal(t, runSeed(7, names, p1, 0), runSeed(7, names, p1, 0))
	assert.NotEqual(t, runSeed(7, names, p1, 0), runSeed(7, names, p1, 1))
	assert.NotEqual(t, runSeed(7, names, p1, 0), runSeed(7, names, p2, 0))
	assert.NotEqual(t, runSeed(7, names, p1, 0), runSeed(8, names, p1, 0))
	assert.GreaterOrEqual(t, runSeed(7, names, p1, 0), int64(0))
}

func TestRunner(t *testing.T) {
	factory := func(params Params, seed int64) (*ecsim.Model, error) {
		m := ecsim.NewModel(ecsim.WithSeed(seed))
		n, _ := params["agents"].(int)
		for i := 0; i < n; i++ {
			a := ecsim.NewAgent(string(rune('a'+i)), m)
			if err := m.Environment().AddAgent(a); err != nil {
				return nil, err
			}
		}
		c := collect.NewAgentCollector("census", m, func(a *ecsim.Agent) (any, bool) {
			return a.ID(), true
		})
		if err := m.Scheduler().AddSystem(c); err != nil {
			return nil, err
		}
		return m, nil
	}

	t.Run("one result per run", func(t *testing.T) {
		l := NewParameterList()
		require.NoError(t, l.Add("agents", 1, 2))

		r := NewRunner(factory,
			WithSteps(5),
			WithRepetitions(3),
			WithWorkers(4),
			WithBaseSeed(123),
			WithCollectors("census"))

		results, err := r.Run(context.Background(), l)
		require.NoError(t, err)
		require.Len(t, results, 6)

		for _, res := range results {
			assert.NotEmpty(t, res.RunID)
			assert.Equal(t, 5, res.Ticks)
			assert.Len(t, res.Records["census"], 5)
		}

		// Same parameter set, different repetitions: distinct seeds.
		assert.NotEqual(t, results[0].Seed, results[1].Seed)
		// Results are ordered by set then repetition.
		assert.Equal(t, 0, results[0].Repetition)
		assert.Equal(t, 1, results[1].Repetition)
		assert.Equal(t, Params{"agents": 1}, results[0].Params)
		assert.Equal(t, Params{"agents": 2}, results[3].Params)
	})

	t.Run("sweep is reproducible", func(t *testing.T) {
		l := NewParameterList()
		require.NoError(t, l.Add("agents", 1, 2))

		run := func() []int64 {
			r := NewRunner(factory, WithSteps(1), WithBaseSeed(99))
			results, err := r.Run(context.Background(), l)
			require.NoError(t, err)
			seeds := make([]int64, len(results))
			for i, res := range results {
				seeds[i] = res.Seed
			}
			return seeds
		}
		assert.Equal(t, run(), run())
	})

	t.Run("until predicate stops runs", func(t *testing.T) {
		r := NewRunner(factory,
			WithSteps(100),
			WithUntil(func(m *ecsim.Model) bool {
				return m.Scheduler().Tick() >= 3
			}))

		results, err := r.Run(context.Background(), NewParameterList())
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, 3, results[0].Ticks)
	})

	t.Run("needs steps or until", func(t *testing.T) {
		r := NewRunner(factory)
		_, err := r.Run(context.Background(), NewParameterList())
		require.Error(t, err)
	})

	t.Run("unknown collector fails the run", func(t *testing.T) {
		r := NewRunner(factory, WithSteps(1), WithCollectors("ghost"))
		_, err := r.Run(context.Background(), NewParameterList())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ghost")
	})

	t.Run("factory errors aggregate", func(t *testing.T) {
		bad := func(Params, int64) (*ecsim.Model, error) {
			return nil, assert.AnError
		}
		l := NewParameterList()
		require.NoError(t, l.Add("agents", 1, 2))

		r := NewRunner(bad, WithSteps(1))
		results, err := r.Run(context.Background(), l)
		require.Error(t, err)
		assert.Len(t, results, 2)
	})
}
