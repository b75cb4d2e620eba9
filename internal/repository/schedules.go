package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/amandla-civic/address-manager/backend/internal/domain"
	"github.com/amandla-civic/address-manager/backend/internal/scheduler"
)

// CreateWeeklySchedule inserts the schedule and its well-formed breaks
// in one transaction. A second active schedule for the same (officer,
// day) is a conflict; the partial unique index backs the same rule
// against concurrent requests.
func (r *Repository) CreateWeeklySchedule(ws *domain.WeeklySchedule) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var existingID int64
	query := `
		SELECT id FROM weekly_schedules
		WHERE officer_id = $1 AND day_of_week = $2 AND is_active = TRUE
	`
	err = tx.QueryRowContext(ctx, query, ws.OfficerID, ws.DayOfWeek).Scan(&existingID)
	switch {
	case err == nil:
		return domain.NewConflictError("a schedule already exists for this day; delete it first")
	case errors.Is(err, sql.ErrNoRows):
		// free to create
	default:
		return err
	}

	query = `
		INSERT INTO weekly_schedules (officer_id, day_of_week, start_time, end_time, is_active)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING id, created_at
	`
	args := []any{ws.OfficerID, ws.DayOfWeek, ws.StartTime, ws.EndTime}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&ws.ID, &ws.CreatedAt); err != nil {
		// a concurrent request can slip past the lookup above and land
		// on the partial unique index instead
		if isUniqueViolation(err) {
			return domain.NewConflictError("a schedule already exists for this day; delete it first")
		}
		return err
	}
	ws.IsActive = true

	// Malformed break rows are dropped here so generation never sees
	// them; a bad break must not sink the whole schedule.
	kept := ws.Breaks[:0]
	for _, b := range ws.Breaks {
		bs, err := scheduler.ParseTimeOfDay(b.StartTime)
		if err != nil {
			continue
		}
		be, err := scheduler.ParseTimeOfDay(b.EndTime)
		if err != nil || bs >= be {
			continue
		}

		b.ScheduleID = ws.ID
		query = `
			INSERT INTO scheduled_breaks (schedule_id, start_time, end_time)
			VALUES ($1, $2, $3)
			RETURNING id
		`
		if err := tx.QueryRowContext(ctx, query, b.ScheduleID, b.StartTime, b.EndTime).Scan(&b.ID); err != nil {
			return err
		}
		kept = append(kept, b)
	}
	ws.Breaks = kept

	return tx.Commit()
}

// GenerateSlots expands an inserted schedule into concrete slots and
// persists the survivors. Persistence is deliberately best-effort and
// outside any transaction: a slot that fails to insert is logged and
// skipped, the rest of the batch still lands. Returns the number added.
func (r *Repository) GenerateSlots(ws *domain.WeeklySchedule, officer *domain.OfficerProfile, now time.Time) (int, error) {
	existing, err := r.GetOfficerSlotIntervals(ws.OfficerID)
	if err != nil {
		return 0, err
	}

	gen := scheduler.New(scheduler.Options{
		Now:               now,
		HorizonWeeks:      r.cfg.Scheduling.HorizonWeeks,
		InterviewDuration: time.Duration(r.cfg.Scheduling.InterviewMinutes) * time.Minute,
		Gap:               time.Duration(r.cfg.Scheduling.GapMinutes) * time.Minute,
	})

	candidates, err := gen.Generate(ws, existing)
	if err != nil {
		return 0, err
	}

	added := 0
	for _, c := range candidates {
		slot := &domain.AvailableTimeSlot{
			OfficerID:        ws.OfficerID,
			WeeklyScheduleID: &ws.ID,
			StartTime:        c.Start,
			EndTime:          c.End,
			Municipality:     officer.Municipality,
			StationName:      officer.StationName,
			PostalCode:       officer.PostalCode,
		}
		if err := r.insertSlot(slot); err != nil {
			slog.Error("skipping slot that failed to persist",
				"officer_id", ws.OfficerID, "start", c.Start, "end", c.End, "error", err)
			continue
		}
		added++
	}

	return added, nil
}

func (r *Repository) GetWeeklySchedulesByOfficer(officerID int64) ([]*domain.WeeklySchedule, error) {
	query := `
		SELECT
			ws.id,
			ws.day_of_week,
			ws.start_time,
			ws.end_time,
			ws.is_active,
			ws.created_at,
			sb.id,
			sb.start_time,
			sb.end_time
		FROM weekly_schedules ws
		LEFT JOIN scheduled_breaks sb ON ws.id = sb.schedule_id
		WHERE ws.officer_id = $1 AND ws.is_active = TRUE
		ORDER BY ws.day_of_week, ws.start_time, sb.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, officerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedulesMap := make(map[int64]*domain.WeeklySchedule)
	order := make([]int64, 0)

	for rows.Next() {
		var row struct {
			ID        int64
			DayOfWeek int32
			StartTime string
			EndTime   string
			IsActive  bool
			CreatedAt time.Time

			BreakID    sql.NullInt64
			BreakStart sql.NullString
			BreakEnd   sql.NullString
		}

		dst := []any{&row.ID, &row.DayOfWeek, &row.StartTime, &row.EndTime, &row.IsActive, &row.CreatedAt,
			&row.BreakID, &row.BreakStart, &row.BreakEnd}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		ws, exists := schedulesMap[row.ID]
		if !exists {
			ws = &domain.WeeklySchedule{
				ID:        row.ID,
				OfficerID: officerID,
				DayOfWeek: row.DayOfWeek,
				StartTime: row.StartTime,
				EndTime:   row.EndTime,
				IsActive:  row.IsActive,
				CreatedAt: row.CreatedAt,
				Breaks:    make([]domain.ScheduledBreak, 0),
			}
			schedulesMap[row.ID] = ws
			order = append(order, row.ID)
		}

		if !row.BreakID.Valid {
			continue
		}

		ws.Breaks = append(ws.Breaks, domain.ScheduledBreak{
			ID:         row.BreakID.Int64,
			ScheduleID: row.ID,
			StartTime:  row.BreakStart.String,
			EndTime:    row.BreakEnd.String,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	schedules := make([]*domain.WeeklySchedule, 0, len(order))
	for _, id := range order {
		schedules = append(schedules, schedulesMap[id])
	}

	return schedules, nil
}

// DeactivateWeeklySchedule soft-deletes the schedule and removes its
// future unbooked slots. Booked slots are kept for history.
func (r *Repository) DeactivateWeeklySchedule(scheduleID, officerID int64, now time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE weekly_schedules
		SET is_active = FALSE
		WHERE id = $1 AND officer_id = $2
	`
	res, err := tx.ExecContext(ctx, query, scheduleID, officerID)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, sql.ErrNoRows
	}

	query = `
		DELETE FROM available_time_slots
		WHERE weekly_schedule_id = $1 AND is_booked = FALSE AND start_time > $2
	`
	res, err = tx.ExecContext(ctx, query, scheduleID, now)
	if err != nil {
		return 0, err
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	return deleted, tx.Commit()
}

// ClearOfficerAvailability deactivates every active schedule and deletes
// every future unbooked slot for the officer in one transaction.
func (r *Repository) ClearOfficerAvailability(officerID int64, now time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		DELETE FROM available_time_slots
		WHERE officer_id = $1 AND is_booked = FALSE AND start_time > $2
	`
	res, err := tx.ExecContext(ctx, query, officerID, now)
	if err != nil {
		return 0, err
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	query = `
		UPDATE weekly_schedules
		SET is_active = FALSE
		WHERE officer_id = $1 AND is_active = TRUE
	`
	if _, err := tx.ExecContext(ctx, query, officerID); err != nil {
		return 0, err
	}

	return deleted, tx.Commit()
}
