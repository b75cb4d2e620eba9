package utils

import (
	"time"

	"github.com/amandla-civic/address-manager/backend/internal/domain"
	"github.com/amandla-civic/address-manager/backend/internal/scheduler"
)

// ValidateWeeklySchedule checks the schedule window itself. Break rows
// are deliberately not validated here: malformed breaks are skipped
// during generation rather than failing the whole submission.
func ValidateWeeklySchedule(ws *domain.WeeklySchedule) error {
	if ws.DayOfWeek < 0 || ws.DayOfWeek > 6 {
		return domain.NewValidationError("day of week must be between 0 (Monday) and 6 (Sunday)")
	}

	start, err := scheduler.ParseTimeOfDay(ws.StartTime)
	if err != nil {
		return err
	}
	end, err := scheduler.ParseTimeOfDay(ws.EndTime)
	if err != nil {
		return err
	}
	if start >= end {
		return domain.NewValidationError("start time must be before end time")
	}

	return nil
}

// ValidateAdHocSlot checks a directly-created slot: well-ordered and not
// in the past. Overlap with persisted slots is the repository's check.
func ValidateAdHocSlot(start, end, now time.Time) error {
	if !start.Before(end) {
		return domain.NewValidationError("end time must be after start time")
	}
	if start.Before(now) {
		return domain.NewValidationError("cannot add time slots in the past")
	}
	return nil
}
