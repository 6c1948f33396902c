package usecase

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/cotodev/smsauth/internal/otp/entity"
	"github.com/cotodev/smsauth/internal/pkg/goerror"
)

func seedChallenge(t *testing.T, env *testEnv, attemptID, code string, ttl time.Duration) {
	t.Helper()

	ctx := context.Background()
	expiry := strconv.FormatInt(env.clock.Now().Add(ttl).UnixMilli(), 10)

	if err := env.notes.Set(ctx, attemptID, noteCode, code, time.Hour); err != nil {
		t.Fatalf("failed to seed code: %v", err)
	}
	if err := env.notes.Set(ctx, attemptID, noteCodeExpiry, expiry, time.Hour); err != nil {
		t.Fatalf("failed to seed expiry: %v", err)
	}
}

func verifyInput(code string) VerifyInput {
	return VerifyInput{
		SessionID: "attempt-1",
		Execution: entity.ExecutionRequired,
		Code:      code,
		Username:  "jdoe",
	}
}

func TestVerify(t *testing.T) {

	t.Run("MatchingCodeSucceedsAndClearsNotes", func(t *testing.T) {

		// Arrange
		env := newTestEnv(t)
		ctx := context.Background()
		seedChallenge(t, env, "attempt-1", "123456", 5*time.Minute)

		// Act
		out, err := env.uc.Verify(ctx, verifyInput("123456"))

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Outcome != entity.OutcomeSuccess {
			t.Fatalf("expected success, got %s", out.Outcome)
		}

		if _, ok, _ := env.notes.Get(ctx, "attempt-1", noteCode); ok {
			t.Fatalf("expected code note removed after success")
		}
		if _, ok, _ := env.notes.Get(ctx, "attempt-1", noteCodeExpiry); ok {
			t.Fatalf("expected expiry note removed after success")
		}
	})

	t.Run("SubmittedCodeIsTrimmed", func(t *testing.T) {

		// Arrange
		env := newTestEnv(t)
		seedChallenge(t, env, "attempt-1", "123456", 5*time.Minute)

		// Act
		out, err := env.uc.Verify(context.Background(), verifyInput("  123456  "))

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Outcome != entity.OutcomeSuccess {
			t.Fatalf("expected success for padded code, got %s", out.Outcome)
		}
	})

	t.Run("WrongCodeFailsMandatoryStep", func(t *testing.T) {

		// Arrange
		env := newTestEnv(t)
		seedChallenge(t, env, "attempt-1", "123456", 5*time.Minute)

		// Act
		out, err := env.uc.Verify(context.Background(), verifyInput("654321"))

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Outcome != entity.OutcomeFailure {
			t.Fatalf("expected failure, got %s", out.Outcome)
		}
		if out.Failure == nil || out.Failure.Kind != entity.FailureCodeMismatch {
			t.Fatalf("expected code mismatch failure, got %+v", out.Failure)
		}
	})

	t.Run("WrongCodeOnAlternativeStepIsAttempted", func(t *testing.T) {

		// Arrange
		env := newTestEnv(t)
		seedChallenge(t, env, "attempt-1", "123456", 5*time.Minute)
		in := verifyInput("654321")
		in.Execution = entity.ExecutionAlternative

		// Act
		out, err := env.uc.Verify(context.Background(), in)

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Outcome != entity.OutcomeAttempted {
			t.Fatalf("expected attempted outcome, got %s", out.Outcome)
		}
		if out.Failure != nil {
			t.Fatalf("attempted outcome should carry no failure, got %+v", out.Failure)
		}
	})

	t.Run("NonNumericCode", func(t *testing.T) {

		// Arrange
		env := newTestEnv(t)
		seedChallenge(t, env, "attempt-1", "123456", 5*time.Minute)

		for _, code := range []string{"", "   ", "12a456", "12 34"} {
			// Act
			out, err := env.uc.Verify(context.Background(), verifyInput(code))

			// Assert
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", code, err)
			}
			if out.Failure == nil || out.Failure.Kind != entity.FailureInvalidFormat {
				t.Fatalf("expected invalid format failure for %q, got %+v", code, out.Failure)
			}
		}
	})

	t.Run("ExpiredCodeKeepsNotes", func(t *testing.T) {

		// Arrange
		env := newTestEnv(t)
		ctx := context.Background()
		seedChallenge(t, env, "attempt-1", "123456", 5*time.Minute)
		env.clock.Advance(5 * time.Minute)

		// Act
		out, err := env.uc.Verify(ctx, verifyInput("123456"))

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Failure == nil || out.Failure.Kind != entity.FailureExpired {
			t.Fatalf("expected expired failure, got %+v", out.Failure)
		}

		// A resend path must still find the attempt state.
		if _, ok, _ := env.notes.Get(ctx, "attempt-1", noteCode); !ok {
			t.Fatalf("expected code note kept after expiry")
		}
	})

	t.Run("MissingChallengeState", func(t *testing.T) {

		// Arrange
		env := newTestEnv(t)

		// Act
		out, err := env.uc.Verify(context.Background(), verifyInput("123456"))

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Failure == nil || out.Failure.Kind != entity.FailureInternalError {
			t.Fatalf("expected internal error failure, got %+v", out.Failure)
		}
	})

	t.Run("MalformedExpiry", func(t *testing.T) {

		// Arrange
		env := newTestEnv(t)
		ctx := context.Background()
		if err := env.notes.Set(ctx, "attempt-1", noteCode, "123456", time.Hour); err != nil {
			t.Fatalf("failed to seed code: %v", err)
		}
		if err := env.notes.Set(ctx, "attempt-1", noteCodeExpiry, "not-a-number", time.Hour); err != nil {
			t.Fatalf("failed to seed expiry: %v", err)
		}

		// Act
		out, err := env.uc.Verify(ctx, verifyInput("123456"))

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Failure == nil || out.Failure.Kind != entity.FailureInternalError {
			t.Fatalf("expected internal error failure, got %+v", out.Failure)
		}
	})

	t.Run("SecondVerifyAfterSuccessFails", func(t *testing.T) {

		// Arrange
		env := newTestEnv(t)
		ctx := context.Background()
		seedChallenge(t, env, "attempt-1", "123456", 5*time.Minute)

		if _, err := env.uc.Verify(ctx, verifyInput("123456")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Act
		out, err := env.uc.Verify(ctx, verifyInput("123456"))

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Failure == nil || out.Failure.Kind != entity.FailureInternalError {
			t.Fatalf("expected internal error after replay, got %+v", out.Failure)
		}
	})

	t.Run("RejectsMissingSessionID", func(t *testing.T) {

		// Arrange
		env := newTestEnv(t)
		in := verifyInput("123456")
		in.SessionID = ""

		// Act
		_, err := env.uc.Verify(context.Background(), in)

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

func TestChallengeThenVerifyRoundTrip(t *testing.T) {

	// Arrange
	env := newTestEnv(t)
	ctx := context.Background()

	out, err := env.uc.Challenge(ctx, challengeInput(testUser("+14155552671")))
	if err != nil {
		t.Fatalf("unexpected challenge error: %v", err)
	}
	if out.Outcome != entity.OutcomeChallengePresented {
		t.Fatalf("expected challenge_presented, got %s", out.Outcome)
	}

	code, ok, err := env.notes.Get(ctx, "attempt-1", noteCode)
	if err != nil || !ok {
		t.Fatalf("expected stored code, ok=%v err=%v", ok, err)
	}

	// Act
	vout, err := env.uc.Verify(ctx, verifyInput(code))

	// Assert
	if err != nil {
		t.Fatalf("unexpected verify error: %v", err)
	}
	if vout.Outcome != entity.OutcomeSuccess {
		t.Fatalf("expected success, got %s", vout.Outcome)
	}
}
