package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/amandla-civic/address-manager/backend/internal/domain"
	"github.com/amandla-civic/address-manager/backend/internal/utils"
)

const certificateColumns = `
	id, application_id, certificate_number, issue_date, expiry_date, COALESCE(pdf_path, '')
`

func scanCertificate(row interface{ Scan(...any) error }) (*domain.AddressCertificate, error) {
	cert := &domain.AddressCertificate{}
	dst := []any{&cert.ID, &cert.ApplicationID, &cert.CertificateNumber, &cert.IssueDate, &cert.ExpiryDate, &cert.PDFPath}
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}
	return cert, nil
}

// issueCertificateTx mints the certificate for a freshly approved
// application inside the approving transaction, so an application can
// never be approved without its certificate.
func (r *Repository) issueCertificateTx(ctx context.Context, tx *sql.Tx, applicationID int64, now time.Time) (*domain.AddressCertificate, error) {
	cert := domain.NewAddressCertificate(
		applicationID,
		utils.GenerateCertificateNumber(r.cfg.Certificate.NumberPrefix),
		now,
		r.cfg.Certificate.ValidityDays,
	)

	err := tx.QueryRowContext(ctx, `
		INSERT INTO address_certificates (application_id, certificate_number, issue_date, expiry_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, cert.ApplicationID, cert.CertificateNumber, cert.IssueDate, cert.ExpiryDate).Scan(&cert.ID)
	if err != nil {
		return nil, err
	}

	return cert, nil
}

func (r *Repository) GetCertificateByID(id int64) (*domain.AddressCertificate, error) {
	query := `SELECT ` + certificateColumns + ` FROM address_certificates WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return scanCertificate(r.dbpool.QueryRowContext(ctx, query, id))
}

func (r *Repository) GetCertificateByApplication(applicationID int64) (*domain.AddressCertificate, error) {
	query := `SELECT ` + certificateColumns + ` FROM address_certificates WHERE application_id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return scanCertificate(r.dbpool.QueryRowContext(ctx, query, applicationID))
}

// GetCertificatesByApplicant lists every certificate ever issued to the
// resident, newest first.
func (r *Repository) GetCertificatesByApplicant(applicantID int64) ([]*domain.AddressCertificate, error) {
	query := `
		SELECT c.id, c.application_id, c.certificate_number, c.issue_date, c.expiry_date, COALESCE(c.pdf_path, '')
		FROM address_certificates c
		JOIN address_applications a ON a.id = c.application_id
		WHERE a.applicant_id = $1
		ORDER BY c.issue_date DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, applicantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	certificates := make([]*domain.AddressCertificate, 0)
	for rows.Next() {
		cert, err := scanCertificate(rows)
		if err != nil {
			return nil, err
		}
		certificates = append(certificates, cert)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return certificates, nil
}
