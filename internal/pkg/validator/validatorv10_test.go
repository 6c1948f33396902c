package validator

import (
	"errors"
	"testing"
)

type challengePayload struct {
	SessionID   string `validate:"required"`
	PhoneNumber string `validate:"required,msisdn"`
}

func newValidator(t *testing.T) *V10Validator {
	t.Helper()

	v, err := NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	return v
}

func TestV10Validator(t *testing.T) {

	t.Run("ValidStruct", func(t *testing.T) {

		// Arrange
		v := newValidator(t)

		// Act
		err := v.Validate(challengePayload{SessionID: "attempt-1", PhoneNumber: "+14155552671"})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("FieldKeysAreSnakeCase", func(t *testing.T) {

		// Arrange
		v := newValidator(t)

		// Act
		err := v.Validate(challengePayload{PhoneNumber: "+14155552671"})

		// Assert
		var verr V10ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected validation error, got %v", err)
		}
		if _, ok := verr.Values()["session_id"]; !ok {
			t.Fatalf("expected session_id key, got %v", verr.Values())
		}
	})

	t.Run("MSISDNRule", func(t *testing.T) {

		// Arrange
		v := newValidator(t)

		for _, phone := range []string{"4155552671", "+0155552671", "+1415555", "not-a-number"} {
			// Act
			err := v.Validate(challengePayload{SessionID: "attempt-1", PhoneNumber: phone})

			// Assert
			var verr V10ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error for %q, got %v", phone, err)
			}
			if _, ok := verr.Values()["phone_number"]; !ok {
				t.Fatalf("expected phone_number key for %q, got %v", phone, verr.Values())
			}
		}
	})
}
