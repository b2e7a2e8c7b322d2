package workflow

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uml-generator/internal/models"
)

func TestManagerIsolatesSessions(t *testing.T) {
	m := NewManager()
	first, second := m.Create(), m.Create()
	require.NotEqual(t, first, second)

	require.NoError(t, m.With(first, func(s *State) error {
		s.Add(models.Functional, "Only in first")
		return nil
	}))

	require.NoError(t, m.With(second, func(s *State) error {
		assert.Empty(t, s.Stories(models.Functional))
		return nil
	}))
}

func TestManagerUnknownSession(t *testing.T) {
	m := NewManager()
	err := m.With("nope", func(s *State) error { return nil })
	assert.ErrorIs(t, err, ErrSessionNotFound)

	id := m.Create()
	assert.Equal(t, 1, m.Len())
	assert.True(t, m.Drop(id))
	assert.False(t, m.Drop(id))
	assert.ErrorIs(t, m.With(id, func(s *State) error { return nil }), ErrSessionNotFound)
}

func TestManagerSerializesSessionAccess(t *testing.T) {
	m := NewManager()
	id := m.Create()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.With(id, func(s *State) error {
				s.Add(models.Functional, "story")
				return nil
			})
		}()
	}
	wg.Wait()

	require.NoError(t, m.With(id, func(s *State) error {
		assert.Len(t, s.Stories(models.Functional), 50)
		return nil
	}))
}
