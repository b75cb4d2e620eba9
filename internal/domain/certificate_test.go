package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewAddressCertificateExpiry(t *testing.T) {
	issued := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	cert := NewAddressCertificate(42, "AM-1A2B3C4D", issued, 365)

	assert.Equal(t, int64(42), cert.ApplicationID)
	assert.Equal(t, "AM-1A2B3C4D", cert.CertificateNumber)
	assert.Equal(t, issued, cert.IssueDate)
	assert.Equal(t, time.Date(2026, 6, 2, 9, 30, 0, 0, time.UTC), cert.ExpiryDate)
	assert.Equal(t, 365*24*time.Hour, cert.ExpiryDate.Sub(cert.IssueDate))

	// Validity counts days, not a calendar year: across a February 29th
	// the expiry lands a calendar day short.
	leap := time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)
	cert = NewAddressCertificate(1, "AM-00000000", leap, 365)
	assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), cert.ExpiryDate)
}
