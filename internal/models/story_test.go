package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusMoveBoundaries(t *testing.T) {
	assert.Equal(t, StatusToDo, StatusToDo.Move(Left))
	assert.Equal(t, StatusInProgress, StatusToDo.Move(Right))
	assert.Equal(t, StatusToDo, StatusInProgress.Move(Left))
	assert.Equal(t, StatusDone, StatusInProgress.Move(Right))
	assert.Equal(t, StatusInProgress, StatusDone.Move(Left))
	assert.Equal(t, StatusDone, StatusDone.Move(Right))
}

func TestStatusMoveIsTotal(t *testing.T) {
	for _, s := range Statuses {
		for _, d := range []Direction{Left, Right} {
			assert.Contains(t, Statuses, s.Move(d), "%s moved %s", s, d)
		}
	}
	assert.Equal(t, StatusToDo, Status("bogus").Move(Right))
}

func TestStatusAlternatingMovesReturnHome(t *testing.T) {
	s := StatusToDo
	valid := 0
	for i := 0; i < 10; i++ {
		dir := Right
		if i%2 == 1 {
			dir = Left
		}
		next := s.Move(dir)
		if next != s {
			valid++
		}
		s = next
	}
	assert.Equal(t, 0, valid%2)
	assert.Equal(t, StatusToDo, s)
}

func TestParseBucket(t *testing.T) {
	for in, want := range map[string]Bucket{
		"Functional":     Functional,
		"functional":     Functional,
		"NonFunctional":  NonFunctional,
		"Non-Functional": NonFunctional,
		" nonfunctional": NonFunctional,
	} {
		got, err := ParseBucket(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseBucket("backlog")
	assert.Error(t, err)
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("LEFT")
	require.NoError(t, err)
	assert.Equal(t, Left, d)

	_, err = ParseDirection("up")
	assert.Error(t, err)
}
