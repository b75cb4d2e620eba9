package domain

import (
	"time"
)

// WeeklySchedule is a recurring availability template: one weekday with
// a working window, owned by an officer. At most one active schedule may
// exist per (officer, day); deletion is a soft deactivation so that the
// slots it produced keep their provenance.
type WeeklySchedule struct {
	ID        int64            `json:"id"`
	OfficerID int64            `json:"officerId"`
	DayOfWeek int32            `json:"dayOfWeek"` // 0 = Monday ... 6 = Sunday
	StartTime string           `json:"startTime"` // time of day, "15:04"
	EndTime   string           `json:"endTime"`
	IsActive  bool             `json:"isActive"`
	CreatedAt time.Time        `json:"createdAt"`
	Breaks    []ScheduledBreak `json:"breaks"`
}

// ScheduledBreak is a within-day exclusion window belonging to exactly
// one weekly schedule. It lives and dies with its parent.
type ScheduledBreak struct {
	ID         int64  `json:"id"`
	ScheduleID int64  `json:"scheduleId"`
	StartTime  string `json:"startTime"` // time of day, "15:04"
	EndTime    string `json:"endTime"`
}

// AvailableTimeSlot is one discrete bookable interval for an officer.
// Location fields are snapshotted from the officer's profile when the
// slot is created; later profile edits do not rewrite them.
type AvailableTimeSlot struct {
	ID               int64     `json:"id"`
	OfficerID        int64     `json:"officerId"`
	WeeklyScheduleID *int64    `json:"weeklyScheduleId,omitempty"` // nil for ad-hoc slots
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	IsBooked         bool      `json:"is_booked"`
	Municipality     string    `json:"municipality,omitempty"`
	StationName      string    `json:"station_name,omitempty"`
	PostalCode       string    `json:"postal_code,omitempty"`
}

type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// Appointment records the consumption of a slot by a resident's
// application. Its existence is the sole authority that a slot was
// genuinely booked (as opposed to buffer-blocked).
type Appointment struct {
	ID              int64             `json:"id"`
	ResidentID      int64             `json:"residentId"`
	OfficerID       int64             `json:"officerId"`
	ApplicationID   int64             `json:"applicationId"`
	ScheduledAt     time.Time         `json:"scheduledAt"`
	DurationMinutes int32             `json:"durationMinutes"`
	Status          AppointmentStatus `json:"status"`
	MeetingNotes    string            `json:"meetingNotes,omitempty"`
}
