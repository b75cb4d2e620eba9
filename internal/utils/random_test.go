package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCertificateNumberFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^AM-[0-9A-F]{8}$`)

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		number := GenerateCertificateNumber("AM")
		assert.Regexp(t, pattern, number)
		assert.False(t, seen[number], "certificate number %s repeated", number)
		seen[number] = true
	}
}

func TestGenerateRandomOTP(t *testing.T) {
	for i := 0; i < 50; i++ {
		otp := GenerateRandomOTP()
		require.Len(t, otp, 6)
		assert.Regexp(t, `^[0-9]{6}$`, otp)
	}
}

func TestGenerateEmailFromName(t *testing.T) {
	email := GenerateEmailFromName("Thabo", "Dlamini", "example.org")
	assert.Regexp(t, `^thabo\.dlamini[0-9]{1,3}@example\.org$`, email)
}
