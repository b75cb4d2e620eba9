package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/amandla-civic/address-manager/backend/internal/domain"
	"github.com/amandla-civic/address-manager/backend/internal/scheduler"
)

const slotColumns = `
	id, officer_id, weekly_schedule_id, start_time, end_time, is_booked,
	COALESCE(municipality, ''), COALESCE(station_name, ''), COALESCE(postal_code, '')
`

func scanSlot(row interface{ Scan(...any) error }) (*domain.AvailableTimeSlot, error) {
	slot := &domain.AvailableTimeSlot{}
	dst := []any{&slot.ID, &slot.OfficerID, &slot.WeeklyScheduleID, &slot.StartTime, &slot.EndTime, &slot.IsBooked,
		&slot.Municipality, &slot.StationName, &slot.PostalCode}
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}
	return slot, nil
}

func (r *Repository) insertSlot(slot *domain.AvailableTimeSlot) error {
	query := `
		INSERT INTO available_time_slots
			(officer_id, weekly_schedule_id, start_time, end_time, is_booked, municipality, station_name, postal_code)
		VALUES ($1, $2, $3, $4, FALSE, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''))
		RETURNING id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{slot.OfficerID, slot.WeeklyScheduleID, slot.StartTime, slot.EndTime,
		slot.Municipality, slot.StationName, slot.PostalCode}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&slot.ID)
}

// CreateAdHocSlot persists a directly-created slot after checking the
// non-overlap invariant against the officer's persisted slots inside
// one transaction.
func (r *Repository) CreateAdHocSlot(slot *domain.AvailableTimeSlot) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var overlapping int64
	query := `
		SELECT count(*) FROM available_time_slots
		WHERE officer_id = $1 AND start_time < $2 AND end_time > $3
	`
	if err := tx.QueryRowContext(ctx, query, slot.OfficerID, slot.EndTime, slot.StartTime).Scan(&overlapping); err != nil {
		return err
	}
	if overlapping > 0 {
		return domain.NewConflictError("this time slot overlaps with an existing slot")
	}

	query = `
		INSERT INTO available_time_slots
			(officer_id, start_time, end_time, is_booked, municipality, station_name, postal_code)
		VALUES ($1, $2, $3, FALSE, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''))
		RETURNING id
	`
	args := []any{slot.OfficerID, slot.StartTime, slot.EndTime, slot.Municipality, slot.StationName, slot.PostalCode}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&slot.ID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *Repository) GetSlotByID(id int64) (*domain.AvailableTimeSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM available_time_slots WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return scanSlot(r.dbpool.QueryRowContext(ctx, query, id))
}

// DeleteSlot removes an unbooked slot owned by the officer. Booked
// slots are immutable history and cannot be deleted.
func (r *Repository) DeleteSlot(slotID, officerID int64) error {
	slot, err := r.GetSlotByID(slotID)
	if err != nil {
		return err
	}
	if slot.OfficerID != officerID {
		return sql.ErrNoRows
	}
	if slot.IsBooked {
		return domain.NewConflictError("cannot delete a booked time slot")
	}

	query := `DELETE FROM available_time_slots WHERE id = $1 AND is_booked = FALSE`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, query, slotID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// booked by someone between the check and the delete
		return domain.NewConflictError("cannot delete a booked time slot")
	}

	return nil
}

func (r *Repository) GetSlotsByOfficer(officerID int64) ([]*domain.AvailableTimeSlot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM available_time_slots
		WHERE officer_id = $1
		ORDER BY start_time
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return r.querySlots(ctx, query, officerID)
}

// GetOfficerSlotIntervals loads only the occupied intervals for overlap
// checks during generation.
func (r *Repository) GetOfficerSlotIntervals(officerID int64) ([]scheduler.Interval, error) {
	query := `
		SELECT start_time, end_time FROM available_time_slots WHERE officer_id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, officerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	intervals := make([]scheduler.Interval, 0)
	for rows.Next() {
		var iv scheduler.Interval
		if err := rows.Scan(&iv.Start, &iv.End); err != nil {
			return nil, err
		}
		intervals = append(intervals, iv)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return intervals, nil
}

// GetUpcomingSlotsByOfficer lists an officer's future unbooked slots,
// earliest first.
func (r *Repository) GetUpcomingSlotsByOfficer(officerID int64, now time.Time) ([]*domain.AvailableTimeSlot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM available_time_slots
		WHERE officer_id = $1 AND is_booked = FALSE AND start_time > $2
		ORDER BY start_time
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return r.querySlots(ctx, query, officerID, now)
}

// SearchSlotsByLocation finds future unbooked slots at a station. All
// three location fields must match; officer identity is withheld from
// the result shape by the handler until after booking.
func (r *Repository) SearchSlotsByLocation(municipality, stationName, postalCode string, now time.Time) ([]*domain.AvailableTimeSlot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM available_time_slots
		WHERE municipality = $1 AND station_name = $2 AND postal_code = $3
			AND is_booked = FALSE AND start_time > $4
		ORDER BY start_time
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return r.querySlots(ctx, query, municipality, stationName, postalCode, now)
}

func (r *Repository) querySlots(ctx context.Context, query string, args ...any) ([]*domain.AvailableTimeSlot, error) {
	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := make([]*domain.AvailableTimeSlot, 0)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return slots, nil
}
