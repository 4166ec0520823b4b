package viewmodel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToasts_BoundedFIFO(t *testing.T) {
	clock := NewFixedClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	q := NewToasts(2, clock)

	q.Success("one")
	q.Error("two")
	q.Push(ToastInfo, "three")

	got := q.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, "two", got[0].Message)
	assert.Equal(t, ToastError, got[0].Level)
	assert.Equal(t, "three", got[1].Message)
	assert.Equal(t, clock.Now(), got[1].CreatedAt)
	assert.NotEqual(t, got[0].ID, got[1].ID)

	assert.Equal(t, 0, q.Len())
	assert.Empty(t, q.Drain())
}

func TestToasts_PeekDoesNotDrain(t *testing.T) {
	q := NewToasts(0, nil)
	q.Success("saved")

	assert.Len(t, q.Peek(), 1)
	assert.Equal(t, 1, q.Len())
}
