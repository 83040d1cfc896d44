package ecsim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagRegistry(t *testing.T) {
	t.Run("none preregistered", func(t *testing.T) {
		r := NewTagRegistry()
		assert.Equal(t, 1, r.Len())

		name, err := r.Name(TagNone)
		require.NoError(t, err)
		assert.Equal(t, "NONE", name)
	})

	t.Run("register and resolve", func(t *testing.T) {
		r := NewTagRegistry()
		predator, err := r.Register("PREDATOR")
		require.NoError(t, err)
		assert.NotEqual(t, TagNone, predator)

		got, err := r.Resolve("PREDATOR")
		require.NoError(t, err)
		assert.Equal(t, predator, got)

		name, err := r.Name(predator)
		require.NoError(t, err)
		assert.Equal(t, "PREDATOR", name)
	})

	t.Run("duplicate name rejected", func(t *testing.T) {
		r := NewTagRegistry()
		_, err := r.Register("PREY")
		require.NoError(t, err)
		_, err = r.Register("PREY")
		require.ErrorIs(t, err, ErrDuplicateTag)
	})

	t.Run("unknown lookups fail", func(t *testing.T) {
		r := NewTagRegistry()
		_, err := r.Resolve("GHOST")
		require.ErrorIs(t, err, ErrTagNotFound)

		_, err = r.Name(Tag(42))
		require.ErrorIs(t, err, ErrTagNotFound)
	})

	t.Run("per model registry", func(t *testing.T) {
		m1 := NewModel(WithSeed(1))
		m2 := NewModel(WithSeed(1))

		t1, err := m1.Tags().Register("WOLF")
		require.NoError(t, err)

		_, err = m2.Tags().Resolve("WOLF")
		require.ErrorIs(t, err, ErrTagNotFound)

		t2, err := m2.Tags().Register("WOLF")
		require.NoError(t, err)
		assert.Equal(t, t1, t2)
	})
}
