package identity

import (
	"regexp"
	"strings"

	dErrors "anonid/pkg/domain-errors"
)

// maskRun is the fixed-length interior replacement used for display masking.
// The run length never varies with identifier length, so a mask reveals
// nothing about the original beyond its first and last two characters.
const maskRun = "*******"

var ninPattern = regexp.MustCompile(`^[0-9]{11}$`)

// ValidateNIN checks the national identification number format: exactly 11
// ASCII digits. The error is caller-fixable and safe to surface verbatim.
func ValidateNIN(nin string) error {
	if strings.TrimSpace(nin) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "nin is required")
	}
	if !ninPattern.MatchString(nin) {
		return dErrors.New(dErrors.CodeBadRequest, "nin must be exactly 11 digits")
	}
	return nil
}

// MaskNIN produces the non-reversible display form of an identifier: first
// two and last two characters kept, interior replaced by a fixed-length mask
// run. Identifiers too short to keep anything are masked fully. Computed on
// demand, never stored.
func MaskNIN(nin string) string {
	if len(nin) < 6 {
		return strings.Repeat("*", len(nin))
	}
	return nin[:2] + maskRun + nin[len(nin)-2:]
}
