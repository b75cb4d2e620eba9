package repository

import (
	"context"
	"time"

	"github.com/amandla-civic/address-manager/backend/internal/domain"
)

const applicationColumns = `
	id, applicant_id, leader_id, officer_id, status,
	COALESCE(leader_notes, ''), COALESCE(officer_notes, ''),
	created_at, updated_at, version
`

func scanApplication(row interface{ Scan(...any) error }) (*domain.AddressApplication, error) {
	app := &domain.AddressApplication{}
	dst := []any{&app.ID, &app.ApplicantID, &app.LeaderID, &app.OfficerID, &app.Status,
		&app.LeaderNotes, &app.OfficerNotes, &app.CreatedAt, &app.UpdatedAt, &app.Version}
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}
	return app, nil
}

func (r *Repository) GetApplicationByID(id int64) (*domain.AddressApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM address_applications WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return scanApplication(r.dbpool.QueryRowContext(ctx, query, id))
}

func (r *Repository) GetApplicationsByApplicant(applicantID int64) ([]*domain.AddressApplication, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM address_applications
		WHERE applicant_id = $1
		ORDER BY created_at DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return r.queryApplications(ctx, query, applicantID)
}

// GetLiveApplicationByApplicant returns the applicant's application that
// still occupies the active lifecycle pass, if any.
func (r *Repository) GetLiveApplicationByApplicant(applicantID int64) (*domain.AddressApplication, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM address_applications
		WHERE applicant_id = $1 AND status = ANY($2)
		ORDER BY created_at DESC
		LIMIT 1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	statuses := make([]string, 0, 4)
	for _, s := range domain.LiveStatuses() {
		statuses = append(statuses, string(s))
	}

	return scanApplication(r.dbpool.QueryRowContext(ctx, query, applicantID, statuses))
}

func (r *Repository) GetApplicationsByStatus(status domain.ApplicationStatus) ([]*domain.AddressApplication, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM address_applications
		WHERE status = $1
		ORDER BY created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return r.queryApplications(ctx, query, status)
}

func (r *Repository) queryApplications(ctx context.Context, query string, args ...any) ([]*domain.AddressApplication, error) {
	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := make([]*domain.AddressApplication, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *Repository) CreateApplication(app *domain.AddressApplication) error {
	query := `
		INSERT INTO address_applications (applicant_id, status)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	dst := []any{&app.ID, &app.CreatedAt, &app.UpdatedAt, &app.Version}
	return r.dbpool.QueryRowContext(ctx, query, app.ApplicantID, app.Status).Scan(dst...)
}

// UpdateApplication persists a status/notes change with the optimistic
// version check the rest of the schema uses.
func (r *Repository) UpdateApplication(app *domain.AddressApplication) error {
	query := `
		UPDATE address_applications
		SET status = $1, leader_id = $2, officer_id = $3,
			leader_notes = NULLIF($4, ''), officer_notes = NULLIF($5, ''),
			updated_at = now(), version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING updated_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{app.Status, app.LeaderID, app.OfficerID, app.LeaderNotes, app.OfficerNotes, app.ID, app.Version}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&app.UpdatedAt, &app.Version)
}
