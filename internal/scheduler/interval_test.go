package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(h, m int) time.Time {
	return time.Date(2025, 6, 2, h, m, 0, 0, time.UTC)
}

func TestIntervalOverlapsIsHalfOpen(t *testing.T) {
	a := Interval{Start: at(9, 0), End: at(9, 30)}

	assert.True(t, a.Overlaps(Interval{Start: at(9, 15), End: at(9, 45)}))
	assert.True(t, a.Overlaps(Interval{Start: at(8, 45), End: at(9, 1)}))
	assert.True(t, a.Overlaps(a))

	// Touching endpoints do not overlap.
	assert.False(t, a.Overlaps(Interval{Start: at(9, 30), End: at(10, 0)}))
	assert.False(t, a.Overlaps(Interval{Start: at(8, 30), End: at(9, 0)}))
}

func TestBufferWindowBlocksAdjacentSlots(t *testing.T) {
	booked := Interval{Start: at(10, 0), End: at(10, 30)}
	window := BufferWindow(booked, 15*time.Minute)

	assert.Equal(t, at(10, 0), window.Start)
	assert.Equal(t, at(10, 45), window.End)

	// A slot starting inside the 15-minute dead zone is blocked.
	assert.True(t, window.Overlaps(Interval{Start: at(10, 30), End: at(11, 0)}))
	assert.True(t, window.Overlaps(Interval{Start: at(10, 44), End: at(11, 14)}))
	// One starting exactly at the window edge is not.
	assert.False(t, window.Overlaps(Interval{Start: at(10, 45), End: at(11, 15)}))
}

func TestReleasable(t *testing.T) {
	buffer := 15 * time.Minute

	// With no remaining active appointments everything reopens.
	own := Interval{Start: at(10, 0), End: at(10, 30)}
	assert.True(t, Releasable(own, nil, buffer))

	// A slot directly consumed by an active appointment stays closed.
	active := []Interval{{Start: at(9, 20), End: at(9, 50)}}
	assert.False(t, Releasable(Interval{Start: at(9, 20), End: at(9, 50)}, active, buffer))

	// So does a short slot wedged into that appointment's turnaround
	// window, even when a neighboring cancellation would otherwise
	// free it.
	wedged := Interval{Start: at(9, 55), End: at(10, 5)}
	assert.False(t, Releasable(wedged, active, buffer))
	assert.True(t, Releasable(wedged, nil, buffer))

	// Past the turnaround edge the slot is free again.
	assert.True(t, Releasable(Interval{Start: at(10, 5), End: at(10, 35)}, active, buffer))
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("09:05")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay(9*60+5), tod)
	assert.Equal(t, "09:05", tod.String())

	anchored := tod.At(time.Date(2025, 6, 2, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 6, 2, 9, 5, 0, 0, time.UTC), anchored)

	_, err = ParseTimeOfDay("25:00")
	require.Error(t, err)
	_, err = ParseTimeOfDay("")
	require.Error(t, err)
}
