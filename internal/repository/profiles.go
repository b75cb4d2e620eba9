package repository

import (
	"context"
	"time"

	"github.com/amandla-civic/address-manager/backend/internal/domain"
)

func (r *Repository) GetResidentProfile(userID int64) (*domain.ResidentProfile, error) {
	query := `
		SELECT id, first_name, last_name, id_number, phone_number, settlement, COALESCE(unit_number, ''),
			postal_code, is_owner, municipality, ward_number, COALESCE(councillor_name, ''),
			COALESCE(id_photo_path, ''), COALESCE(face_photo_path, '')
		FROM resident_profiles WHERE user_id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	p := &domain.ResidentProfile{
		UserID: userID,
	}

	dst := []any{&p.ID, &p.FirstName, &p.LastName, &p.IDNumber, &p.PhoneNumber, &p.Settlement, &p.UnitNumber,
		&p.PostalCode, &p.IsOwner, &p.Municipality, &p.WardNumber, &p.CouncillorName, &p.IDPhotoPath, &p.FacePhotoPath}
	if err := r.dbpool.QueryRowContext(ctx, query, userID).Scan(dst...); err != nil {
		return nil, err
	}

	return p, nil
}

func (r *Repository) CreateResidentProfile(p *domain.ResidentProfile) error {
	query := `
		INSERT INTO resident_profiles (user_id, first_name, last_name, id_number, phone_number,
			settlement, unit_number, postal_code, is_owner, municipality, ward_number, councillor_name,
			id_photo_path, face_photo_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NULLIF($13, ''), NULLIF($14, ''))
		RETURNING id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{p.UserID, p.FirstName, p.LastName, p.IDNumber, p.PhoneNumber,
		p.Settlement, p.UnitNumber, p.PostalCode, p.IsOwner, p.Municipality, p.WardNumber, p.CouncillorName,
		p.IDPhotoPath, p.FacePhotoPath}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&p.ID)
}

func (r *Repository) GetLeaderProfile(userID int64) (*domain.LeaderProfile, error) {
	query := `
		SELECT id, first_name, last_name, id_number, phone_number, municipality, ward_number,
			office_location, settlement, COALESCE(unit_number, ''), postal_code,
			COALESCE(id_photo_path, ''), COALESCE(face_photo_path, ''), is_approved
		FROM leader_profiles WHERE user_id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	p := &domain.LeaderProfile{
		UserID: userID,
	}

	dst := []any{&p.ID, &p.FirstName, &p.LastName, &p.IDNumber, &p.PhoneNumber, &p.Municipality, &p.WardNumber,
		&p.OfficeLocation, &p.Settlement, &p.UnitNumber, &p.PostalCode, &p.IDPhotoPath, &p.FacePhotoPath, &p.IsApproved}
	if err := r.dbpool.QueryRowContext(ctx, query, userID).Scan(dst...); err != nil {
		return nil, err
	}

	return p, nil
}

func (r *Repository) CreateLeaderProfile(p *domain.LeaderProfile) error {
	query := `
		INSERT INTO leader_profiles (user_id, first_name, last_name, id_number, phone_number,
			municipality, ward_number, office_location, settlement, unit_number, postal_code,
			id_photo_path, face_photo_path, is_approved)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NULLIF($12, ''), NULLIF($13, ''), $14)
		RETURNING id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{p.UserID, p.FirstName, p.LastName, p.IDNumber, p.PhoneNumber,
		p.Municipality, p.WardNumber, p.OfficeLocation, p.Settlement, p.UnitNumber, p.PostalCode,
		p.IDPhotoPath, p.FacePhotoPath, p.IsApproved}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&p.ID)
}

func (r *Repository) GetOfficerProfile(userID int64) (*domain.OfficerProfile, error) {
	query := `
		SELECT id, first_name, last_name, COALESCE(id_number, ''), phone_number, badge_number, rank,
			station_name, municipality, postal_code,
			COALESCE(id_photo_path, ''), COALESCE(face_photo_path, ''), is_approved
		FROM officer_profiles WHERE user_id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	p := &domain.OfficerProfile{
		UserID: userID,
	}

	dst := []any{&p.ID, &p.FirstName, &p.LastName, &p.IDNumber, &p.PhoneNumber, &p.BadgeNumber, &p.Rank,
		&p.StationName, &p.Municipality, &p.PostalCode, &p.IDPhotoPath, &p.FacePhotoPath, &p.IsApproved}
	if err := r.dbpool.QueryRowContext(ctx, query, userID).Scan(dst...); err != nil {
		return nil, err
	}

	return p, nil
}

func (r *Repository) CreateOfficerProfile(p *domain.OfficerProfile) error {
	query := `
		INSERT INTO officer_profiles (user_id, first_name, last_name, id_number, phone_number,
			badge_number, rank, station_name, municipality, postal_code,
			id_photo_path, face_photo_path, is_approved)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10, NULLIF($11, ''), NULLIF($12, ''), $13)
		RETURNING id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{p.UserID, p.FirstName, p.LastName, p.IDNumber, p.PhoneNumber,
		p.BadgeNumber, p.Rank, p.StationName, p.Municipality, p.PostalCode,
		p.IDPhotoPath, p.FacePhotoPath, p.IsApproved}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&p.ID)
}

// UpdateResidentPersonalInfo rewrites the identity-bearing fields of a
// resident's profile. Because identity changed, the user's verification
// is reset and every pending application is cancelled with an
// explanatory note, all in one transaction.
func (r *Repository) UpdateResidentPersonalInfo(user *domain.User, firstName, lastName, phoneNumber, email string) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE resident_profiles
		SET first_name = $1, last_name = $2, phone_number = $3
		WHERE user_id = $4
	`
	if _, err := tx.ExecContext(ctx, query, firstName, lastName, phoneNumber, user.ID); err != nil {
		return err
	}

	query = `
		UPDATE users
		SET email = $1, full_name = $2, is_verified = FALSE, version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING version
	`
	if err := tx.QueryRowContext(ctx, query, email, firstName+" "+lastName, user.ID, user.Version).Scan(&user.Version); err != nil {
		return err
	}
	user.Email = email
	user.FullName = firstName + " " + lastName
	user.IsVerified = false

	query = `
		UPDATE address_applications
		SET status = $1, leader_notes = $2, updated_at = now(), version = version + 1
		WHERE applicant_id = $3 AND status = $4
	`
	args := []any{domain.ApplicationCancelled, "Application cancelled due to profile information change.", user.ID, domain.ApplicationPending}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateResidentAddress applies a new address and restarts verification:
// approved applications become superseded, the user's verified flag is
// cleared and a fresh pending application is opened. One transaction.
func (r *Repository) UpdateResidentAddress(user *domain.User, p *domain.ResidentProfile) (*domain.AddressApplication, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE resident_profiles
		SET settlement = $1, unit_number = $2, postal_code = $3, is_owner = $4,
			municipality = $5, ward_number = $6, councillor_name = $7
		WHERE user_id = $8
	`
	args := []any{p.Settlement, p.UnitNumber, p.PostalCode, p.IsOwner, p.Municipality, p.WardNumber, p.CouncillorName, user.ID}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return nil, err
	}

	query = `
		UPDATE address_applications
		SET status = $1,
			officer_notes = TRIM(BOTH E'\n' FROM COALESCE(officer_notes, '') || E'\n\n' || $2),
			updated_at = now(),
			version = version + 1
		WHERE applicant_id = $3 AND status = $4
	`
	args = []any{domain.ApplicationSuperseded, "This application has been superseded by an address update.", user.ID, domain.ApplicationApproved}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return nil, err
	}

	query = `
		UPDATE users
		SET is_verified = FALSE, version = version + 1
		WHERE id = $1 AND version = $2
		RETURNING version
	`
	if err := tx.QueryRowContext(ctx, query, user.ID, user.Version).Scan(&user.Version); err != nil {
		return nil, err
	}
	user.IsVerified = false

	application := &domain.AddressApplication{
		ApplicantID: user.ID,
		Status:      domain.ApplicationPending,
	}
	query = `
		INSERT INTO address_applications (applicant_id, status)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at, version
	`
	dst := []any{&application.ID, &application.CreatedAt, &application.UpdatedAt, &application.Version}
	if err := tx.QueryRowContext(ctx, query, user.ID, application.Status).Scan(dst...); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return application, nil
}
