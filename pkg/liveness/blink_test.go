package liveness

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlinkTracker_CountsAfterMinimumGap(t *testing.T) {
	start := time.Unix(1000, 0)
	b := NewBlinkTracker(start)

	require.Equal(t, 0, b.ObserveEyes(start.Add(500*time.Millisecond), 2))
	require.Equal(t, 1, b.ObserveEyes(start.Add(time.Second), 2))
	assert.False(t, b.EyesOpen())

	// still "closed": no re-count until an occlusion frame re-arms
	require.Equal(t, 1, b.ObserveEyes(start.Add(3*time.Second), 2))

	require.Equal(t, 1, b.ObserveEyes(start.Add(3100*time.Millisecond), 1))
	assert.True(t, b.EyesOpen())
	require.Equal(t, 2, b.ObserveEyes(start.Add(4*time.Second), 3))
	assert.Equal(t, start.Add(4*time.Second), b.LastBlink())
}

func TestBlinkTracker_NeverDecreases(t *testing.T) {
	start := time.Unix(0, 0)
	b := NewBlinkTracker(start)

	eyes := []int{2, 0, 2, 1, 2, 2, 0, 0, 2, 1, 3, 0, 2}
	prev := 0
	for i, n := range eyes {
		now := start.Add(time.Duration(i) * 700 * time.Millisecond)
		got := b.ObserveEyes(now, n)
		require.GreaterOrEqual(t, got, prev, "frame %d", i)
		prev = got
	}
	assert.Equal(t, prev, b.Count())
	assert.Positive(t, prev)
}
