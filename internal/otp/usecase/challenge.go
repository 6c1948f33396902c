package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/cotodev/smsauth/internal/otp/entity"
	"github.com/cotodev/smsauth/internal/pkg/goerror"
)

// ChallengeInput is the entry transition request from the flow engine.
type ChallengeInput struct {
	SessionID string      `validate:"required"`
	Execution entity.Execution
	User      entity.User `validate:"required"`
	Locale    string
	RealmName string
	// RealmDisplayName is preferred in the message text; RealmName is the
	// fallback.
	RealmDisplayName string
}

// ChallengeOutput reports the outcome of issuing a challenge.
type ChallengeOutput struct {
	Outcome entity.Outcome

	// Destination is the masked number the code was sent to, set on success.
	Destination string

	Failure *Failure
}

// Challenge generates a fresh code, stores it in the attempt's session notes
// and dispatches it via the configured broker. A repeated call for the same
// attempt simply overwrites the previous challenge (resend).
func (s *Usecase) Challenge(ctx context.Context, in ChallengeInput) (*ChallengeOutput, error) {
	ctx, span := s.startSpan(ctx, "Challenge")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	st := s.settings()

	dest, err := entity.ParseDestination(in.User.FirstAttribute(st.phoneAttribute))
	if errors.Is(err, entity.ErrDestinationMissing) {
		slog.WarnContext(ctx, "user has no phone number configured", "username", in.User.Username)
		return &ChallengeOutput{
			Outcome: entity.OutcomeFailure,
			Failure: &Failure{
				Kind:    entity.FailureMissingDestination,
				Message: "No mobile number is configured for this account.",
				Cause:   err.Error(),
			},
		}, nil
	}
	if err != nil {
		slog.WarnContext(ctx, "user phone number has invalid format", "username", in.User.Username)
		return &ChallengeOutput{
			Outcome: entity.OutcomeFailure,
			Failure: &Failure{
				Kind:    entity.FailureInvalidFormat,
				Message: "The configured mobile number is invalid.",
				Cause:   err.Error(),
			},
		}, nil
	}

	chal, err := entity.GenerateChallenge(st.length, st.ttl, s.clock.Now())
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate challenge", "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.notes.Set(ctx, in.SessionID, noteCode, chal.Code, st.noteTTL); err != nil {
		slog.ErrorContext(ctx, "failed to store challenge code", "error", err)
		return nil, goerror.NewServer(err)
	}

	expiry := strconv.FormatInt(chal.ExpiresAt, 10)
	if err := s.notes.Set(ctx, in.SessionID, noteCodeExpiry, expiry, st.noteTTL); err != nil {
		slog.ErrorContext(ctx, "failed to store challenge expiry", "error", err)
		return nil, goerror.NewServer(err)
	}

	realm := in.RealmDisplayName
	if realm == "" {
		realm = in.RealmName
	}
	text := s.smsText.Format(in.Locale, chal.Code, realm)

	svc, err := s.brokers.Resolve(st.provider, st.broker, st.simulation)
	if err == nil {
		err = svc.Send(ctx, dest, text)
	}
	if err != nil {
		// The stored challenge stays behind but is unusable: the attempt has
		// already failed and a resend overwrites it.
		slog.ErrorContext(ctx, "failed to send sms challenge",
			"username", in.User.Username,
			"destination", dest.Masked(),
			"error", err,
		)
		return &ChallengeOutput{
			Outcome: entity.OutcomeFailure,
			Failure: &Failure{
				Kind:    entity.FailureDeliveryFailed,
				Message: "The verification code could not be sent. Please try again later.",
				Cause:   err.Error(),
			},
		}, nil
	}

	slog.InfoContext(ctx, "sms challenge issued",
		"username", in.User.Username,
		"destination", dest.Masked(),
		"expires_at", chal.ExpiresAt,
	)

	return &ChallengeOutput{
		Outcome:     entity.OutcomeChallengePresented,
		Destination: dest.Masked(),
	}, nil
}
