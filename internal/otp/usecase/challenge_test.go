package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/cotodev/smsauth/internal/otp/entity"
	"github.com/cotodev/smsauth/internal/pkg/goerror"
)

func challengeInput(user entity.User) ChallengeInput {
	return ChallengeInput{
		SessionID:        "attempt-1",
		Execution:        entity.ExecutionRequired,
		User:             user,
		Locale:           "en",
		RealmName:        "acme",
		RealmDisplayName: "Acme Corp",
	}
}

func TestChallenge(t *testing.T) {

	t.Run("IssuesCodeAndSendsSMS", func(t *testing.T) {

		// Arrange
		env := newTestEnv(t)
		ctx := context.Background()

		// Act
		out, err := env.uc.Challenge(ctx, challengeInput(testUser("+14155552671")))

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Outcome != entity.OutcomeChallengePresented {
			t.Fatalf("expected challenge_presented, got %s", out.Outcome)
		}
		if out.Destination != "+141****2671" {
			t.Fatalf("expected masked destination, got %q", out.Destination)
		}

		code, ok, err := env.notes.Get(ctx, "attempt-1", noteCode)
		if err != nil || !ok {
			t.Fatalf("expected stored code, ok=%v err=%v", ok, err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 digit code, got %q", code)
		}

		expiryRaw, ok, err := env.notes.Get(ctx, "attempt-1", noteCodeExpiry)
		if err != nil || !ok {
			t.Fatalf("expected stored expiry, ok=%v err=%v", ok, err)
		}
		expiresAt, err := strconv.ParseInt(expiryRaw, 10, 64)
		if err != nil {
			t.Fatalf("expected numeric expiry, got %q", expiryRaw)
		}
		want := env.clock.Now().Add(300 * time.Second).UnixMilli()
		if expiresAt != want {
			t.Fatalf("expected expiry %d, got %d", want, expiresAt)
		}

		msg := env.broker.last(t)
		if msg.To != "+14155552671" {
			t.Fatalf("expected sms to normalized number, got %q", msg.To)
		}
		if msg.Message != code+" is your verification code for Acme Corp." {
			t.Fatalf("unexpected sms text %q", msg.Message)
		}
	})

	t.Run("FallsBackToRealmName", func(t *testing.T) {

		// Arrange
		env := newTestEnv(t)
		in := challengeInput(testUser("+14155552671"))
		in.RealmDisplayName = ""

		// Act
		if _, err := env.uc.Challenge(context.Background(), in); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Assert
		if !strings.Contains(env.broker.last(t).Message, "for acme.") {
			t.Fatalf("expected realm name fallback, got %q", env.broker.last(t).Message)
		}
	})

	t.Run("LocalizedText", func(t *testing.T) {

		// Arrange
		env := newTestEnv(t)
		in := challengeInput(testUser("+491711234567"))
		in.Locale = "de-DE"

		// Act
		if _, err := env.uc.Challenge(context.Background(), in); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Assert
		if !strings.Contains(env.broker.last(t).Message, "ist dein Bestätigungscode") {
			t.Fatalf("expected german template, got %q", env.broker.last(t).Message)
		}
	})

	t.Run("MissingPhoneNumber", func(t *testing.T) {

		// Arrange
		env := newTestEnv(t)

		// Act
		out, err := env.uc.Challenge(context.Background(), challengeInput(testUser("")))

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Outcome != entity.OutcomeFailure {
			t.Fatalf("expected failure outcome, got %s", out.Outcome)
		}
		if out.Failure == nil || out.Failure.Kind != entity.FailureMissingDestination {
			t.Fatalf("expected missing destination failure, got %+v", out.Failure)
		}
	})

	t.Run("InvalidPhoneNumber", func(t *testing.T) {

		// Arrange
		env := newTestEnv(t)

		// Act
		out, err := env.uc.Challenge(context.Background(), challengeInput(testUser("4155552671")))

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Failure == nil || out.Failure.Kind != entity.FailureInvalidFormat {
			t.Fatalf("expected invalid format failure, got %+v", out.Failure)
		}
	})

	t.Run("DeliveryFailure", func(t *testing.T) {

		// Arrange
		env := newTestEnv(t)
		env.broker.err = &entity.DeliveryError{Provider: entity.ProviderZenvia, StatusCode: 500}

		// Act
		out, err := env.uc.Challenge(context.Background(), challengeInput(testUser("+14155552671")))

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Outcome != entity.OutcomeFailure {
			t.Fatalf("expected failure outcome, got %s", out.Outcome)
		}
		if out.Failure == nil || out.Failure.Kind != entity.FailureDeliveryFailed {
			t.Fatalf("expected delivery failure, got %+v", out.Failure)
		}
	})

	t.Run("UnresolvableBroker", func(t *testing.T) {

		// Arrange
		env := newTestEnv(t)
		env.disp.resolveErr = &entity.UnsupportedProviderError{Name: "carrier-x"}

		// Act
		out, err := env.uc.Challenge(context.Background(), challengeInput(testUser("+14155552671")))

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Failure == nil || out.Failure.Kind != entity.FailureDeliveryFailed {
			t.Fatalf("expected delivery failure for unresolvable broker, got %+v", out.Failure)
		}
	})

	t.Run("ResendOverwritesPreviousCode", func(t *testing.T) {

		// Arrange
		env := newTestEnv(t)
		ctx := context.Background()
		in := challengeInput(testUser("+14155552671"))

		// Act
		if _, err := env.uc.Challenge(ctx, in); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := env.uc.Challenge(ctx, in); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Assert
		second, _, _ := env.notes.Get(ctx, in.SessionID, noteCode)
		msg := env.broker.last(t)
		if !strings.HasPrefix(msg.Message, second) {
			t.Fatalf("expected latest code %q in message %q", second, msg.Message)
		}
		if len(env.broker.messages) != 2 {
			t.Fatalf("expected 2 deliveries, got %d", len(env.broker.messages))
		}
	})

	t.Run("RejectsMissingSessionID", func(t *testing.T) {

		// Arrange
		env := newTestEnv(t)
		in := challengeInput(testUser("+14155552671"))
		in.SessionID = ""

		// Act
		_, err := env.uc.Challenge(context.Background(), in)

		// Assert
		var gerr *goerror.Error
		if !errors.As(err, &gerr) {
			t.Fatalf("expected structured validation error, got %v", err)
		}
		if gerr.Type() != goerror.TypeValidation {
			t.Fatalf("expected validation error type, got %v", gerr.Type())
		}
	})
}
