package scheduler

import (
	"testing"
	"time"

	"github.com/amandla-civic/address-manager/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions(now time.Time) Options {
	return Options{
		Now:               now,
		HorizonWeeks:      4,
		InterviewDuration: 30 * time.Minute,
		Gap:               15 * time.Minute,
	}
}

// Wednesday, so the next Monday occurrence is five days out.
var wednesday = time.Date(2025, 6, 4, 8, 0, 0, 0, time.UTC)

func mondaySchedule(start, end string, breaks ...domain.ScheduledBreak) *domain.WeeklySchedule {
	return &domain.WeeklySchedule{
		ID:        1,
		OfficerID: 7,
		DayOfWeek: 0,
		StartTime: start,
		EndTime:   end,
		IsActive:  true,
		Breaks:    breaks,
	}
}

func clock(ts time.Time) string {
	return ts.Format("15:04")
}

func TestGenerateMorningWindowWithBreak(t *testing.T) {
	ws := mondaySchedule("09:00", "12:00", domain.ScheduledBreak{StartTime: "10:00", EndTime: "10:15"})

	slots, err := New(testOptions(wednesday)).Generate(ws, nil)
	require.NoError(t, err)

	// Four weekly occurrences, three surviving slots each: the
	// 09:45-10:15 candidate is swallowed by the break and the walk
	// resumes at 10:15.
	require.Len(t, slots, 12)

	first := slots[:3]
	assert.Equal(t, "09:00", clock(first[0].Start))
	assert.Equal(t, "09:30", clock(first[0].End))
	assert.Equal(t, "10:15", clock(first[1].Start))
	assert.Equal(t, "10:45", clock(first[1].End))
	assert.Equal(t, "11:00", clock(first[2].Start))
	assert.Equal(t, "11:30", clock(first[2].End))

	for _, s := range slots {
		assert.Equal(t, time.Monday, s.Start.Weekday())
		assert.False(t, s.End.After(time.Date(s.Start.Year(), s.Start.Month(), s.Start.Day(), 12, 0, 0, 0, time.UTC)))
	}

	// Weekly occurrences are exactly seven days apart.
	assert.Equal(t, slots[0].Start.AddDate(0, 0, 7), slots[3].Start)
}

func TestGenerateSlotsNeverOverlap(t *testing.T) {
	ws := mondaySchedule("08:00", "17:00",
		domain.ScheduledBreak{StartTime: "12:00", EndTime: "13:00"},
		domain.ScheduledBreak{StartTime: "15:00", EndTime: "15:10"},
	)

	slots, err := New(testOptions(wednesday)).Generate(ws, nil)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	for i := range slots {
		for j := i + 1; j < len(slots); j++ {
			assert.False(t, slots[i].Overlaps(slots[j]),
				"slot %v overlaps slot %v", slots[i], slots[j])
		}
	}
}

func TestGenerateSkipsExistingSlots(t *testing.T) {
	ws := mondaySchedule("09:00", "11:00")

	opts := testOptions(wednesday)
	base, err := New(opts).Generate(ws, nil)
	require.NoError(t, err)
	require.NotEmpty(t, base)

	// Re-running against the persisted result yields nothing new.
	again, err := New(opts).Generate(ws, base)
	require.NoError(t, err)
	assert.Empty(t, again)

	// A partial blocker removes only the candidates it touches.
	blocker := []Interval{{
		Start: base[0].Start,
		End:   base[0].Start.Add(10 * time.Minute),
	}}
	partial, err := New(opts).Generate(ws, blocker)
	require.NoError(t, err)
	assert.Len(t, partial, len(base)-1)
}

func TestGenerateDropsPastCandidates(t *testing.T) {
	// Monday 10:05, mid-window: today still counts, but candidates that
	// have already started are dropped.
	monday := time.Date(2025, 6, 2, 10, 5, 0, 0, time.UTC)
	ws := mondaySchedule("09:00", "12:00")

	slots, err := New(testOptions(monday)).Generate(ws, nil)
	require.NoError(t, err)

	for _, s := range slots {
		assert.False(t, s.Start.Before(monday), "slot %v starts in the past", s)
	}
	// Today keeps its 10:30-11:00 and 11:15-11:45 slots.
	today := 0
	for _, s := range slots {
		if s.Start.Day() == monday.Day() {
			today++
		}
	}
	assert.Equal(t, 2, today)
}

func TestGenerateKeepsCandidateStartingNow(t *testing.T) {
	// Monday 10:30 on the dot: the candidate starting right now has not
	// started yet and stays bookable.
	monday := time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC)
	ws := mondaySchedule("09:00", "12:00")

	slots, err := New(testOptions(monday)).Generate(ws, nil)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	assert.True(t, slots[0].Start.Equal(monday), "expected first slot at %v, got %v", monday, slots[0].Start)
}

func TestGenerateRollsToNextWeekWhenWindowClosed(t *testing.T) {
	// Monday 13:00, after the window has closed.
	monday := time.Date(2025, 6, 2, 13, 0, 0, 0, time.UTC)
	ws := mondaySchedule("09:00", "12:00")

	slots, err := New(testOptions(monday)).Generate(ws, nil)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	assert.Equal(t, monday.AddDate(0, 0, 7).Day(), slots[0].Start.Day())
}

func TestGenerateIgnoresMalformedBreaks(t *testing.T) {
	ws := mondaySchedule("09:00", "10:30",
		domain.ScheduledBreak{StartTime: "not-a-time", EndTime: "10:00"},
		domain.ScheduledBreak{StartTime: "10:00", EndTime: "09:00"}, // inverted
	)

	slots, err := New(testOptions(wednesday)).Generate(ws, nil)
	require.NoError(t, err)
	// 09:00-09:30 and 09:45-10:15 per occurrence, breaks discarded.
	assert.Len(t, slots, 8)
}

func TestGenerateRejectsInvalidWindows(t *testing.T) {
	cases := []struct {
		name string
		ws   *domain.WeeklySchedule
	}{
		{"bad start", mondaySchedule("9 o'clock", "12:00")},
		{"bad end", mondaySchedule("09:00", "noon")},
		{"inverted", mondaySchedule("12:00", "09:00")},
		{"day out of range", &domain.WeeklySchedule{DayOfWeek: 7, StartTime: "09:00", EndTime: "12:00"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(testOptions(wednesday)).Generate(tc.ws, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}
