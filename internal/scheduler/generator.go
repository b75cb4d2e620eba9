package scheduler

import (
	"time"

	"github.com/amandla-civic/address-manager/backend/internal/domain"
)

// Options bound a generation run. Now anchors "the future"; the rest
// come from configuration.
type Options struct {
	Now               time.Time
	HorizonWeeks      int
	InterviewDuration time.Duration
	Gap               time.Duration
}

// Generator expands a weekly schedule into concrete dated interview
// slots. It is pure: existing slots are passed in and surviving
// candidates are returned, persistence is the caller's concern.
type Generator struct {
	opts Options
}

func New(opts Options) *Generator {
	return &Generator{opts: opts}
}

// Generate walks every occurrence of the schedule's weekday within the
// horizon and emits candidate intervals of the interview duration,
// separated by the gap. A candidate is dropped when it overlaps one of
// the schedule's breaks, overlaps an existing slot for the officer, or
// starts in the past. Malformed break times are ignored rather than
// failing the run; an unparseable schedule window is a validation
// error.
func (g *Generator) Generate(ws *domain.WeeklySchedule, existing []Interval) ([]Interval, error) {
	if ws.DayOfWeek < 0 || ws.DayOfWeek > 6 {
		return nil, domain.NewValidationError("day of week %d out of range", ws.DayOfWeek)
	}

	start, err := ParseTimeOfDay(ws.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := ParseTimeOfDay(ws.EndTime)
	if err != nil {
		return nil, err
	}
	if start >= end {
		return nil, domain.NewValidationError("schedule start %s is not before end %s", ws.StartTime, ws.EndTime)
	}

	breaks := make([]breakWindow, 0, len(ws.Breaks))
	for _, b := range ws.Breaks {
		bs, err := ParseTimeOfDay(b.StartTime)
		if err != nil {
			continue
		}
		be, err := ParseTimeOfDay(b.EndTime)
		if err != nil || bs >= be {
			continue
		}
		breaks = append(breaks, breakWindow{start: bs, end: be})
	}

	now := g.opts.Now

	// First future occurrence of the weekday: if today matches but the
	// working window has already closed, roll a full week forward.
	daysAhead := (int(ws.DayOfWeek) - mondayBasedWeekday(now) + 7) % 7
	if daysAhead == 0 && ClockOf(now) >= end {
		daysAhead = 7
	}
	firstDate := now.AddDate(0, 0, daysAhead)

	slots := make([]Interval, 0)
	for week := 0; week < g.opts.HorizonWeeks; week++ {
		date := firstDate.AddDate(0, 0, week*7)
		dayEnd := end.At(date)

		cursor := start.At(date)
		for !cursor.Add(g.opts.InterviewDuration).After(dayEnd) {
			candidate := Interval{Start: cursor, End: cursor.Add(g.opts.InterviewDuration)}

			// A break-blocked candidate advances without the gap so the
			// walk resumes flush against the break's far edge.
			if overlapsAnyBreak(candidate, breaks) {
				cursor = candidate.End
				continue
			}

			if !candidate.Start.Before(now) && !OverlapsAny(candidate, existing) && !OverlapsAny(candidate, slots) {
				slots = append(slots, candidate)
			}

			cursor = candidate.End.Add(g.opts.Gap)
		}
	}

	return slots, nil
}

func overlapsAnyBreak(candidate Interval, breaks []breakWindow) bool {
	slotStart := ClockOf(candidate.Start)
	slotEnd := ClockOf(candidate.End)
	for _, b := range breaks {
		if b.overlapsClock(slotStart, slotEnd) {
			return true
		}
	}
	return false
}

// mondayBasedWeekday maps time.Weekday (Sunday = 0) onto the schedule
// convention (Monday = 0).
func mondayBasedWeekday(ts time.Time) int {
	return (int(ts.Weekday()) + 6) % 7
}
