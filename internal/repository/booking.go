package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/amandla-civic/address-manager/backend/internal/domain"
	"github.com/amandla-civic/address-manager/backend/internal/scheduler"
)

// BookSlot consumes a slot for a leader-approved application. The whole
// booking is one transaction: the conditional flip of is_booked
// serializes concurrent bookings of the same slot, so exactly one
// caller wins and the rest observe a conflict. Depending on
// configuration the application is either auto-approved on the spot
// (certificate included) or parked in interview_scheduled until the
// officer records a decision.
func (r *Repository) BookSlot(residentID int64, app *domain.AddressApplication, slotID int64, now time.Time) (*domain.Appointment, error) {
	if app.ApplicantID != residentID {
		return nil, domain.NewAuthorizationError("application belongs to another resident")
	}
	if app.Status != domain.ApplicationLeaderApproved {
		return nil, domain.NewConflictError("application is not ready for booking")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	slot, err := scanSlot(tx.QueryRowContext(ctx, `SELECT `+slotColumns+` FROM available_time_slots WHERE id = $1`, slotID))
	if err != nil {
		return nil, err
	}
	if !slot.StartTime.After(now) {
		return nil, domain.NewConflictError("this time slot has already started")
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE available_time_slots SET is_booked = TRUE
		WHERE id = $1 AND is_booked = FALSE
	`, slotID)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.NewConflictError("this time slot is no longer available")
	}

	// buffer-block the officer's neighboring slots so back-to-back
	// interviews keep a turnaround gap
	buffer := time.Duration(r.cfg.Scheduling.BufferMinutes) * time.Minute
	window := scheduler.BufferWindow(scheduler.Interval{Start: slot.StartTime, End: slot.EndTime}, buffer)
	_, err = tx.ExecContext(ctx, `
		UPDATE available_time_slots SET is_booked = TRUE
		WHERE officer_id = $1 AND id <> $2 AND is_booked = FALSE
			AND start_time < $3 AND end_time > $4
	`, slot.OfficerID, slot.ID, window.End, window.Start)
	if err != nil {
		return nil, err
	}

	appt := &domain.Appointment{
		ResidentID:      residentID,
		OfficerID:       slot.OfficerID,
		ApplicationID:   app.ID,
		ScheduledAt:     slot.StartTime,
		DurationMinutes: int32(slot.EndTime.Sub(slot.StartTime) / time.Minute),
		Status:          domain.AppointmentScheduled,
	}

	app.OfficerID = &slot.OfficerID
	if r.cfg.Workflow.AutoApproveOnBooking {
		appt.Status = domain.AppointmentCompleted
		if err := app.Transition(domain.ApplicationApproved); err != nil {
			return nil, err
		}
		app.OfficerNotes = "Approved automatically at interview booking."
	} else {
		if err := app.Transition(domain.ApplicationInterviewScheduled); err != nil {
			return nil, err
		}
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO appointments (resident_id, officer_id, application_id, scheduled_at, duration_minutes, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, appt.ResidentID, appt.OfficerID, appt.ApplicationID, appt.ScheduledAt, appt.DurationMinutes, appt.Status).Scan(&appt.ID)
	if err != nil {
		return nil, err
	}

	if err := updateApplicationTx(ctx, tx, app); err != nil {
		return nil, err
	}

	if r.cfg.Workflow.AutoApproveOnBooking {
		if _, err := r.issueCertificateTx(ctx, tx, app.ID, now); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return appt, nil
}

// CancelAppointment undoes a scheduled booking: the appointment turns
// cancelled, the application drops back to leader_approved, and both
// the consumed slot and its buffer-blocked neighbors reopen. A slot
// stays closed while another active appointment still occupies or
// buffers it.
func (r *Repository) CancelAppointment(appointmentID, residentID int64) (*domain.Appointment, error) {
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
	if appt.ResidentID != residentID {
		return nil, domain.NewAuthorizationError("appointment belongs to another resident")
	}
	if appt.Status != domain.AppointmentScheduled {
		return nil, domain.NewConflictError("only scheduled appointments can be cancelled")
	}

	appt.Status = domain.AppointmentCancelled
	if _, err := tx.ExecContext(ctx, `UPDATE appointments SET status = $1 WHERE id = $2`, appt.Status, appt.ID); err != nil {
		return nil, err
	}

	app, err := scanApplication(tx.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM address_applications WHERE id = $1`, appt.ApplicationID))
	if err != nil {
		return nil, err
	}
	if err := app.Transition(domain.ApplicationLeaderApproved); err != nil {
		return nil, err
	}
	app.OfficerID = nil
	if err := updateApplicationTx(ctx, tx, app); err != nil {
		return nil, err
	}

	if err := releaseSlotsTx(ctx, tx, appt.OfficerID, appt.ScheduledAt, appt.DurationMinutes, time.Duration(r.cfg.Scheduling.BufferMinutes)*time.Minute); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return appt, nil
}

// releaseSlotsTx reopens the booked slot behind an appointment plus any
// buffer-blocked neighbors. The caller must have settled the triggering
// appointment first; which slots may reopen is then decided by
// scheduler.Releasable against the officer's remaining active
// appointments, so a slot inside another booking's turnaround window
// stays closed.
func releaseSlotsTx(ctx context.Context, tx *sql.Tx, officerID int64, scheduledAt time.Time, durationMinutes int32, buffer time.Duration) error {
	window := scheduler.BufferWindow(scheduler.Interval{
		Start: scheduledAt,
		End:   scheduledAt.Add(time.Duration(durationMinutes) * time.Minute),
	}, buffer)

	rows, err := tx.QueryContext(ctx, `
		SELECT id, start_time, end_time FROM available_time_slots
		WHERE officer_id = $1 AND is_booked = TRUE
			AND start_time < $2 AND end_time > $3
	`, officerID, window.End, window.Start)
	if err != nil {
		return err
	}
	defer rows.Close()

	type blockedSlot struct {
		id       int64
		interval scheduler.Interval
	}
	blocked := make([]blockedSlot, 0)
	for rows.Next() {
		var b blockedSlot
		if err := rows.Scan(&b.id, &b.interval.Start, &b.interval.End); err != nil {
			return err
		}
		blocked = append(blocked, b)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	active := make([]scheduler.Interval, 0)
	arows, err := tx.QueryContext(ctx, `
		SELECT scheduled_at, duration_minutes FROM appointments
		WHERE officer_id = $1 AND status IN ('scheduled', 'completed')
	`, officerID)
	if err != nil {
		return err
	}
	defer arows.Close()
	for arows.Next() {
		var start time.Time
		var minutes int32
		if err := arows.Scan(&start, &minutes); err != nil {
			return err
		}
		active = append(active, scheduler.Interval{
			Start: start,
			End:   start.Add(time.Duration(minutes) * time.Minute),
		})
	}
	if err := arows.Err(); err != nil {
		return err
	}

	for _, b := range blocked {
		if !scheduler.Releasable(b.interval, active, buffer) {
			continue
		}
		if _, err := tx.ExecContext(ctx, `UPDATE available_time_slots SET is_booked = FALSE WHERE id = $1`, b.id); err != nil {
			return err
		}
	}

	return nil
}

func updateApplicationTx(ctx context.Context, tx *sql.Tx, app *domain.AddressApplication) error {
	query := `
		UPDATE address_applications
		SET status = $1, leader_id = $2, officer_id = $3,
			leader_notes = NULLIF($4, ''), officer_notes = NULLIF($5, ''),
			updated_at = now(), version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING updated_at, version
	`

	args := []any{app.Status, app.LeaderID, app.OfficerID, app.LeaderNotes, app.OfficerNotes, app.ID, app.Version}
	return tx.QueryRowContext(ctx, query, args...).Scan(&app.UpdatedAt, &app.Version)
}
