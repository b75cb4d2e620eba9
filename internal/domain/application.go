package domain

import (
	"time"
)

type ApplicationStatus string

const (
	ApplicationPending            ApplicationStatus = "pending"
	ApplicationLeaderApproved     ApplicationStatus = "leader_approved"
	ApplicationInterviewScheduled ApplicationStatus = "interview_scheduled"
	ApplicationInterviewCompleted ApplicationStatus = "interview_completed"
	ApplicationApproved           ApplicationStatus = "approved"
	ApplicationRejected           ApplicationStatus = "rejected"
	ApplicationSuperseded         ApplicationStatus = "superseded"
	ApplicationCancelled          ApplicationStatus = "cancelled"
)

type AddressApplication struct {
	ID           int64             `json:"id"`
	ApplicantID  int64             `json:"applicantId"`
	LeaderID     *int64            `json:"leaderId,omitempty"`
	OfficerID    *int64            `json:"officerId,omitempty"`
	Status       ApplicationStatus `json:"status"`
	LeaderNotes  string            `json:"leaderNotes,omitempty"`
	OfficerNotes string            `json:"officerNotes,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
	Version      int32             `json:"-"`
}

// allowedTransitions is the closed transition table for an application's
// lifecycle. rejected, cancelled and superseded have no outgoing edges;
// a resident starts over with a brand-new application.
var allowedTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationPending: {
		ApplicationLeaderApproved,
		ApplicationRejected,
		ApplicationCancelled,
	},
	ApplicationLeaderApproved: {
		ApplicationInterviewScheduled,
		ApplicationApproved, // fast path when the interview step is bypassed
	},
	ApplicationInterviewScheduled: {
		ApplicationInterviewCompleted,
		ApplicationLeaderApproved, // resident cancelled the interview
	},
	ApplicationInterviewCompleted: {
		ApplicationApproved,
		ApplicationRejected,
		ApplicationLeaderApproved, // officer asked for a reschedule
	},
	ApplicationApproved: {
		ApplicationSuperseded,
	},
}

// CanTransition reports whether the status change is permitted by the
// application lifecycle.
func CanTransition(from, to ApplicationStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition mutates the application status after checking the
// transition table. Illegal moves return ErrConflict so handlers can
// surface them as workflow conflicts rather than server faults.
func (a *AddressApplication) Transition(to ApplicationStatus) error {
	if !CanTransition(a.Status, to) {
		return NewConflictError("application cannot move from %s to %s", a.Status, to)
	}
	a.Status = to
	return nil
}

// IsLive reports whether the application still occupies the resident's
// single active lifecycle pass. A resident cannot open a second
// application while a live one exists.
func (a *AddressApplication) IsLive() bool {
	switch a.Status {
	case ApplicationPending, ApplicationLeaderApproved, ApplicationInterviewScheduled, ApplicationInterviewCompleted:
		return true
	}
	return false
}

// LiveStatuses lists the statuses counted by IsLive, in lifecycle order.
func LiveStatuses() []ApplicationStatus {
	return []ApplicationStatus{
		ApplicationPending,
		ApplicationLeaderApproved,
		ApplicationInterviewScheduled,
		ApplicationInterviewCompleted,
	}
}
