package domain

import (
	"time"
)

// AddressCertificate is the terminal artifact of a verified address,
// 1:1 with its approved application.
type AddressCertificate struct {
	ID                int64     `json:"id"`
	ApplicationID     int64     `json:"applicationId"`
	CertificateNumber string    `json:"certificate_number"`
	IssueDate         time.Time `json:"issue_date"`
	ExpiryDate        time.Time `json:"expiry_date"`
	PDFPath           string    `json:"pdfPath,omitempty"`
}

// NewAddressCertificate mints a certificate for an approved
// application, valid from the issue instant for exactly validityDays
// days.
func NewAddressCertificate(applicationID int64, number string, issued time.Time, validityDays int) *AddressCertificate {
	return &AddressCertificate{
		ApplicationID:     applicationID,
		CertificateNumber: number,
		IssueDate:         issued,
		ExpiryDate:        issued.AddDate(0, 0, validityDays),
	}
}
