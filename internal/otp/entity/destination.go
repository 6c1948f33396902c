package entity

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

var (
	// ErrDestinationMissing is returned when the user has no phone number at all.
	ErrDestinationMissing = errors.New("otp: destination phone number is missing")

	// ErrDestinationInvalid is returned when the phone number does not look
	// like an international number.
	ErrDestinationInvalid = errors.New("otp: destination phone number has an invalid format")
)

// International format: leading + followed by 8 to 15 digits, first digit 1-9.
var destinationPattern = regexp.MustCompile(`^\+[1-9]\d{7,14}$`)

// Destination is a validated E.164-style phone number.
type Destination string

// ParseDestination strips whitespace and hyphens from raw and validates the
// remainder. A blank raw value yields ErrDestinationMissing so callers can
// show a setup-required message instead of a format error.
func ParseDestination(raw string) (Destination, error) {
	if strings.TrimSpace(raw) == "" {
		return "", ErrDestinationMissing
	}

	clean := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' {
			return -1
		}
		return r
	}, raw)

	if !destinationPattern.MatchString(clean) {
		return "", ErrDestinationInvalid
	}

	return Destination(clean), nil
}

// String returns the normalized number.
func (d Destination) String() string {
	return string(d)
}

// Masked returns the number with the middle replaced by asterisks, keeping at
// most 4 characters visible on each side. Log destinations only in this form.
func (d Destination) Masked() string {
	return maskTail(string(d))
}

func maskTail(s string) string {
	if len(s) <= 4 {
		return "****"
	}

	visible := min(4, len(s)/3)

	var sb strings.Builder
	sb.WriteString(s[:visible])
	for i := visible; i < len(s)-visible; i++ {
		sb.WriteByte('*')
	}
	sb.WriteString(s[len(s)-visible:])

	return sb.String()
}
