package repository

import (
	"context"
	"time"

	"github.com/amandla-civic/address-manager/backend/internal/domain"
)

const appointmentColumns = `
	id, resident_id, officer_id, application_id, scheduled_at, duration_minutes,
	status, COALESCE(meeting_notes, '')
`

func scanAppointment(row interface{ Scan(...any) error }) (*domain.Appointment, error) {
	appt := &domain.Appointment{}
	dst := []any{&appt.ID, &appt.ResidentID, &appt.OfficerID, &appt.ApplicationID,
		&appt.ScheduledAt, &appt.DurationMinutes, &appt.Status, &appt.MeetingNotes}
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}
	return appt, nil
}

func (r *Repository) GetAppointmentByID(id int64) (*domain.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return scanAppointment(r.dbpool.QueryRowContext(ctx, query, id))
}

func (r *Repository) GetAppointmentsByOfficer(officerID int64) ([]*domain.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE officer_id = $1
		ORDER BY scheduled_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return r.queryAppointments(ctx, query, officerID)
}

func (r *Repository) GetAppointmentsByResident(residentID int64) ([]*domain.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE resident_id = $1
		ORDER BY scheduled_at DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return r.queryAppointments(ctx, query, residentID)
}

func (r *Repository) queryAppointments(ctx context.Context, query string, args ...any) ([]*domain.Appointment, error) {
	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return appointments, nil
}

type AppointmentDecision string

const (
	DecisionApprove    AppointmentDecision = "approve"
	DecisionReject     AppointmentDecision = "reject"
	DecisionReschedule AppointmentDecision = "reschedule"
)

// DecideAppointment records the officer's outcome for an interview.
// Approve walks the application through interview_completed to
// approved and issues the certificate; reject ends the application;
// reschedule sends it back to leader_approved and reopens the slot so
// the resident can book again.
func (r *Repository) DecideAppointment(officerID, appointmentID int64, decision AppointmentDecision, notes string, now time.Time) (*domain.Appointment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	appt, err := scanAppointment(tx.QueryRowContext(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, appointmentID))
	if err != nil {
		return nil, err
	}
	if appt.OfficerID != officerID {
		return nil, domain.NewAuthorizationError("appointment belongs to another officer")
	}
	if appt.Status != domain.AppointmentScheduled {
		return nil, domain.NewConflictError("appointment has already been decided")
	}

	app, err := scanApplication(tx.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM address_applications WHERE id = $1`, appt.ApplicationID))
	if err != nil {
		return nil, err
	}

	switch decision {
	case DecisionApprove:
		appt.Status = domain.AppointmentCompleted
		if err := app.Transition(domain.ApplicationInterviewCompleted); err != nil {
			return nil, err
		}
		if err := app.Transition(domain.ApplicationApproved); err != nil {
			return nil, err
		}
	case DecisionReject:
		appt.Status = domain.AppointmentCompleted
		if err := app.Transition(domain.ApplicationInterviewCompleted); err != nil {
			return nil, err
		}
		if err := app.Transition(domain.ApplicationRejected); err != nil {
			return nil, err
		}
	case DecisionReschedule:
		appt.Status = domain.AppointmentCancelled
		if err := app.Transition(domain.ApplicationLeaderApproved); err != nil {
			return nil, err
		}
		app.OfficerID = nil
	default:
		return nil, domain.NewValidationError("unknown decision %q", decision)
	}

	appt.MeetingNotes = notes
	if notes != "" {
		app.OfficerNotes = notes
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE appointments SET status = $1, meeting_notes = NULLIF($2, '') WHERE id = $3
	`, appt.Status, appt.MeetingNotes, appt.ID)
	if err != nil {
		return nil, err
	}

	if err := updateApplicationTx(ctx, tx, app); err != nil {
		return nil, err
	}

	switch decision {
	case DecisionApprove:
		if _, err := r.issueCertificateTx(ctx, tx, app.ID, now); err != nil {
			return nil, err
		}
	case DecisionReschedule:
		buffer := time.Duration(r.cfg.Scheduling.BufferMinutes) * time.Minute
		if err := releaseSlotsTx(ctx, tx, appt.OfficerID, appt.ScheduledAt, appt.DurationMinutes, buffer); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return appt, nil
}
