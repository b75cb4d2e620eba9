package scheduler

import (
	"time"
)

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open intervals intersect.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && iv.End.After(other.Start)
}

// OverlapsAny reports whether iv intersects any of the given intervals.
func OverlapsAny(iv Interval, others []Interval) bool {
	for _, other := range others {
		if iv.Overlaps(other) {
			return true
		}
	}
	return false
}

// BufferWindow extends a booked slot with its post-interview dead zone.
// Every other unbooked slot intersecting the window must be blocked
// when the slot is booked.
func BufferWindow(slot Interval, buffer time.Duration) Interval {
	return Interval{Start: slot.Start, End: slot.End.Add(buffer)}
}

// Releasable reports whether a blocked slot may reopen after a
// cancellation. A slot stays closed while it intersects the buffer
// window of any remaining active appointment, whether it is that
// appointment's own slot or a neighbor wedged into its turnaround.
func Releasable(slot Interval, active []Interval, buffer time.Duration) bool {
	for _, a := range active {
		if BufferWindow(a, buffer).Overlaps(slot) {
			return false
		}
	}
	return true
}

// breakWindow is a within-day exclusion expressed as times of day.
type breakWindow struct {
	start TimeOfDay
	end   TimeOfDay
}

// overlapsClock applies the half-open overlap test between a candidate
// slot's clock times and a break window.
func (b breakWindow) overlapsClock(slotStart, slotEnd TimeOfDay) bool {
	return slotStart < b.end && slotEnd > b.start
}
