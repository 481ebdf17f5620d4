package liveness

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyMovement_Bands(t *testing.T) {
	cases := []struct {
		movement float64
		label    Activity
		conf     float64
	}{
		{0, ActivityCalm, 100},
		{2.5, ActivityCalm, 50},
		{5, ActivityCalm, 0},
		{7.5, ActivityNeutral, 50},
		{15, ActivityNeutral, 100},
		{16, ActivityHappy, 16.0 / 30 * 100},
		{30, ActivityHappy, 100},
		{31, ActivityActive, 62},
		{50, ActivityActive, 100},
		{255, ActivityActive, 100},
	}

	for _, tc := range cases {
		label, conf := ClassifyMovement(tc.movement)
		assert.Equal(t, tc.label, label, "movement %v", tc.movement)
		assert.InDelta(t, tc.conf, conf, 1e-9, "movement %v", tc.movement)
	}
}

func TestClassifyMovement_ConfidenceAlwaysClamped(t *testing.T) {
	for m := -10.0; m <= 300; m += 0.25 {
		_, conf := ClassifyMovement(m)
		require.GreaterOrEqual(t, conf, 0.0, "movement %v", m)
		require.LessOrEqual(t, conf, 100.0, "movement %v", m)
	}
}

func TestActivityTracker_RateLimited(t *testing.T) {
	start := time.Unix(0, 0)
	a := NewActivityTracker(start)

	assert.False(t, a.Due(start.Add(999*time.Millisecond)))
	require.True(t, a.Due(start.Add(time.Second)))

	label, conf := a.Record(start.Add(time.Second), 0, false)
	assert.Equal(t, ActivityNeutral, label)
	assert.Zero(t, conf)

	assert.False(t, a.Due(start.Add(1500*time.Millisecond)))

	label, conf = a.Record(start.Add(2*time.Second), 40, true)
	assert.Equal(t, ActivityActive, label)
	assert.InDelta(t, 80, conf, 1e-9)

	label, conf = a.Current()
	assert.Equal(t, ActivityActive, label)
	assert.InDelta(t, 80, conf, 1e-9)
}
