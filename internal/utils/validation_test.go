package utils

import (
	"testing"
	"time"

	"github.com/amandla-civic/address-manager/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateWeeklySchedule(t *testing.T) {
	valid := &domain.WeeklySchedule{DayOfWeek: 0, StartTime: "09:00", EndTime: "12:00"}
	require.NoError(t, ValidateWeeklySchedule(valid))

	cases := []struct {
		name string
		ws   *domain.WeeklySchedule
	}{
		{"negative day", &domain.WeeklySchedule{DayOfWeek: -1, StartTime: "09:00", EndTime: "12:00"}},
		{"day too large", &domain.WeeklySchedule{DayOfWeek: 7, StartTime: "09:00", EndTime: "12:00"}},
		{"bad start", &domain.WeeklySchedule{DayOfWeek: 1, StartTime: "morning", EndTime: "12:00"}},
		{"bad end", &domain.WeeklySchedule{DayOfWeek: 1, StartTime: "09:00", EndTime: ""}},
		{"equal", &domain.WeeklySchedule{DayOfWeek: 1, StartTime: "09:00", EndTime: "09:00"}},
		{"inverted", &domain.WeeklySchedule{DayOfWeek: 1, StartTime: "12:00", EndTime: "09:00"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateWeeklySchedule(tc.ws)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestValidateAdHocSlot(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

	require.NoError(t, ValidateAdHocSlot(now.Add(time.Hour), now.Add(2*time.Hour), now))

	err := ValidateAdHocSlot(now.Add(2*time.Hour), now.Add(time.Hour), now)
	assert.ErrorIs(t, err, domain.ErrValidation)

	err = ValidateAdHocSlot(now.Add(time.Hour), now.Add(time.Hour), now)
	assert.ErrorIs(t, err, domain.ErrValidation)

	err = ValidateAdHocSlot(now.Add(-time.Minute), now.Add(time.Hour), now)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
