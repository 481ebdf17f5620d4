package liveness

import (
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyDirection(t *testing.T) {
	cases := []struct {
		name string
		face image.Rectangle
		want Direction
	}{
		{"centered", image.Rect(270, 100, 370, 200), DirectionCenter},
		{"dead zone left edge", image.Rect(220, 100, 320, 200), DirectionCenter},
		{"left", image.Rect(100, 100, 200, 200), DirectionLeft},
		{"right", image.Rect(400, 100, 500, 200), DirectionRight},
		{"dead zone right edge", image.Rect(320, 100, 420, 200), DirectionCenter},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyDirection(tc.face, 640))
		})
	}
}

func TestDirectionTracker_SuppressesChangesInsideGap(t *testing.T) {
	start := time.Unix(0, 0)
	d := NewDirectionTracker(start)

	steps := []struct {
		at  time.Duration
		dir Direction
	}{
		{0, DirectionCenter},
		{100 * time.Millisecond, DirectionCenter},
		{200 * time.Millisecond, DirectionLeft},
		{300 * time.Millisecond, DirectionLeft},
		{1500 * time.Millisecond, DirectionRight},
	}

	var changes int
	var latched Direction
	for _, s := range steps {
		changes, latched = d.Observe(start.Add(s.at), s.dir)
	}

	require.Equal(t, 1, changes)
	assert.Equal(t, DirectionRight, latched)
	assert.Equal(t, DirectionRight, d.Current())
	assert.Equal(t, start.Add(1500*time.Millisecond), d.LastChange())
}

func TestDirectionTracker_CurrentFollowsFacesLatchedDoesNot(t *testing.T) {
	start := time.Unix(0, 0)
	d := NewDirectionTracker(start)

	d.Observe(start.Add(200*time.Millisecond), DirectionLeft)

	assert.Equal(t, DirectionLeft, d.Current())
	assert.Equal(t, DirectionCenter, d.Latched())
	assert.Zero(t, d.Changes())
}
