package entity

import (
	"errors"
	"testing"
)

func TestParseDestination(t *testing.T) {

	t.Run("ValidNumbers", func(t *testing.T) {

		// Arrange
		cases := map[string]string{
			"+14155552671":     "+14155552671",
			" +14155552671 ":   "+14155552671",
			"+1 415 555 2671":  "+14155552671",
			"+1-415-555-2671":  "+14155552671",
			"+5511987654321":   "+5511987654321",
			"+491711234567":    "+491711234567",
			"+12345678":        "+12345678",
			"+123456789012345": "+123456789012345",
		}

		for raw, want := range cases {
			// Act
			dest, err := ParseDestination(raw)

			// Assert
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", raw, err)
			}
			if dest.String() != want {
				t.Fatalf("expected %q, got %q", want, dest)
			}
		}
	})

	t.Run("MissingNumber", func(t *testing.T) {

		for _, raw := range []string{"", "   ", "\t"} {
			// Act
			_, err := ParseDestination(raw)

			// Assert
			if !errors.Is(err, ErrDestinationMissing) {
				t.Fatalf("expected ErrDestinationMissing for %q, got %v", raw, err)
			}
		}
	})

	t.Run("InvalidFormat", func(t *testing.T) {

		cases := []string{
			"4155552671",        // no leading plus
			"+0123456",          // leading zero after plus
			"+1234567",          // too short
			"+1234567890123456", // too long
			"+1415555abcd",      // letters
			"0049 171 1234567",  // national prefix
		}

		for _, raw := range cases {
			// Act
			_, err := ParseDestination(raw)

			// Assert
			if !errors.Is(err, ErrDestinationInvalid) {
				t.Fatalf("expected ErrDestinationInvalid for %q, got %v", raw, err)
			}
		}
	})
}

func TestDestinationMasked(t *testing.T) {

	// Arrange
	cases := map[string]string{
		"+14155552671":  "+141****2671",
		"+491711234567": "+491*****4567",
		"+491":          "****",
		"+4917":         "+***7",
		"+49171":        "+4**71",
	}

	for raw, want := range cases {
		// Act
		got := Destination(raw).Masked()

		// Assert
		if got != want {
			t.Fatalf("expected mask %q for %q, got %q", want, raw, got)
		}
	}
}
