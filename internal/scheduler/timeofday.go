package scheduler

import (
	"time"

	"github.com/amandla-civic/address-manager/backend/internal/domain"
)

// TimeOfDay is a clock time without a date, stored as minutes since
// midnight. Schedules and breaks carry only times of day; they are
// anchored to concrete dates during slot generation.
type TimeOfDay int

const timeOfDayLayout = "15:04"

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse(timeOfDayLayout, s)
	if err != nil {
		return 0, domain.NewValidationError("invalid time of day %q", s)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

func (t TimeOfDay) String() string {
	return time.Date(0, 1, 1, int(t)/60, int(t)%60, 0, 0, time.UTC).Format(timeOfDayLayout)
}

// At anchors the time of day to the given date in that date's location.
func (t TimeOfDay) At(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), int(t)/60, int(t)%60, 0, 0, date.Location())
}

// ClockOf extracts the time of day from an instant.
func ClockOf(ts time.Time) TimeOfDay {
	return TimeOfDay(ts.Hour()*60 + ts.Minute())
}
