package types

import (
	"fmt"
	"regexp"
)

// EGN represents a Bulgarian unified civil number (10 digits) identifying
// a patient. The backend owns full semantic validation; the client only
// enforces the digit format.
type EGN string

var egnRegex = regexp.MustCompile(`^\d{10}$`)

// ParseEGN validates and returns an EGN from a raw string.
func ParseEGN(s string) (EGN, error) {
	if !egnRegex.MatchString(s) {
		return "", fmt.Errorf("EGN must be exactly 10 digits")
	}
	return EGN(s), nil
}

// String returns the string representation.
func (e EGN) String() string {
	return string(e)
}

// Masked returns a masked version for display (first 6 digits visible).
func (e EGN) Masked() string {
	if len(e) < 10 {
		return "**********"
	}
	return string(e)[:6] + "****"
}

// IsValid reports whether the EGN has the required 10-digit format.
func (e EGN) IsValid() bool {
	return egnRegex.MatchString(string(e))
}

// IsZero checks if the EGN is empty.
func (e EGN) IsZero() bool {
	return e == ""
}
