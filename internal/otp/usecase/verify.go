package usecase

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/cotodev/smsauth/internal/otp/entity"
	"github.com/cotodev/smsauth/internal/pkg/goerror"
)

// VerifyInput carries the user's submitted code back into the state machine.
type VerifyInput struct {
	SessionID string `validate:"required"`
	Execution entity.Execution
	Code      string
	Username  string
}

// VerifyOutput reports the outcome of a verification attempt.
type VerifyOutput struct {
	Outcome entity.Outcome
	Failure *Failure
}

// Verify compares the submitted code against the stored challenge. On a match
// before expiry it clears both session notes and succeeds; a mismatch or
// malformed input fails the step when it is mandatory and yields
// OutcomeAttempted otherwise, so the flow can route around an optional step.
func (s *Usecase) Verify(ctx context.Context, in VerifyInput) (*VerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "Verify")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	submitted := strings.TrimSpace(in.Code)
	if !digitsOnly(submitted) {
		slog.WarnContext(ctx, "submitted code is empty or not numeric", "username", in.Username)
		return s.rejection(in.Execution, entity.FailureInvalidFormat,
			"The code must contain digits only.", "submitted code empty or non-numeric"), nil
	}

	stored, okCode, err := s.notes.Get(ctx, in.SessionID, noteCode)
	if err != nil {
		slog.ErrorContext(ctx, "failed to read stored code", "error", err)
		return nil, goerror.NewServer(err)
	}

	expiryRaw, okExpiry, err := s.notes.Get(ctx, in.SessionID, noteCodeExpiry)
	if err != nil {
		slog.ErrorContext(ctx, "failed to read stored expiry", "error", err)
		return nil, goerror.NewServer(err)
	}

	if !okCode || !okExpiry {
		slog.ErrorContext(ctx, "challenge state missing from session", "username", in.Username)
		return &VerifyOutput{
			Outcome: entity.OutcomeFailure,
			Failure: &Failure{
				Kind:    entity.FailureInternalError,
				Message: "Authentication failed. Please restart the login.",
				Cause:   "challenge code or expiry absent from session notes",
			},
		}, nil
	}

	expiresAt, err := strconv.ParseInt(expiryRaw, 10, 64)
	if err != nil {
		slog.ErrorContext(ctx, "stored expiry is not a timestamp", "username", in.Username, "error", err)
		return &VerifyOutput{
			Outcome: entity.OutcomeFailure,
			Failure: &Failure{
				Kind:    entity.FailureInternalError,
				Message: "Authentication failed. Please restart the login.",
				Cause:   "stored expiry is malformed",
			},
		}, nil
	}

	if submitted != stored {
		slog.WarnContext(ctx, "submitted code does not match", "username", in.Username)
		return s.rejection(in.Execution, entity.FailureCodeMismatch,
			"The code is incorrect.", "submitted code does not match"), nil
	}

	if s.clock.Now().UnixMilli() >= expiresAt {
		// Notes stay in place so the caller may issue a fresh challenge.
		slog.WarnContext(ctx, "submitted code has expired", "username", in.Username)
		return &VerifyOutput{
			Outcome: entity.OutcomeFailure,
			Failure: &Failure{
				Kind:    entity.FailureExpired,
				Message: "The code has expired. Request a new one.",
				Cause:   "challenge expired before verification",
			},
		}, nil
	}

	if err := s.notes.Remove(ctx, in.SessionID, noteCode); err != nil {
		slog.ErrorContext(ctx, "failed to clear stored code", "error", err)
		return nil, goerror.NewServer(err)
	}
	if err := s.notes.Remove(ctx, in.SessionID, noteCodeExpiry); err != nil {
		slog.ErrorContext(ctx, "failed to clear stored expiry", "error", err)
		return nil, goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "sms otp verification successful", "username", in.Username)

	return &VerifyOutput{Outcome: entity.OutcomeSuccess}, nil
}

// rejection applies the required vs conditional/alternative branching shared
// by the invalid-format and mismatch paths.
func (s *Usecase) rejection(exec entity.Execution, kind entity.FailureKind, msg, cause string) *VerifyOutput {
	if !exec.Mandatory() {
		return &VerifyOutput{Outcome: entity.OutcomeAttempted}
	}

	return &VerifyOutput{
		Outcome: entity.OutcomeFailure,
		Failure: &Failure{Kind: kind, Message: msg, Cause: cause},
	}
}
