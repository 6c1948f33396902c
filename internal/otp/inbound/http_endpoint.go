package inbound

import (
	"github.com/cotodev/smsauth/internal/otp/entity"
	"github.com/cotodev/smsauth/internal/otp/usecase"
	"github.com/cotodev/smsauth/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for the SMS OTP authentication step.
type HTTPEndpoint struct {
	uc uc
}

// Challenge issues a fresh OTP challenge for a login attempt.
// @Summary Issue SMS challenge
// @Description Generates a one-time code, stores it against the login attempt and sends it to the user's phone.
// @Tags OTP
// @Accept json
// @Produce json
// @Param request body ChallengeRequest true "Challenge payload"
// @Success 200 {object} router.successResponse{data=ChallengeResponse} "Challenge outcome"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/otp/challenge [post]
func (h *HTTPEndpoint) Challenge(r *router.Request) (any, error) {
	var req ChallengeRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Challenge(r.Context(), usecase.ChallengeInput{
		SessionID: req.SessionID,
		Execution: entity.ExecutionFromString(req.Execution),
		User: entity.User{
			Username:   req.User.Username,
			Attributes: req.User.Attributes,
		},
		Locale:           req.Locale,
		RealmName:        req.RealmName,
		RealmDisplayName: req.RealmDisplayName,
	})
	if err != nil {
		return nil, err
	}

	return ChallengeResponse{
		Outcome:     resp.Outcome.String(),
		Destination: resp.Destination,
		Failure:     newFailureInfo(resp.Failure),
	}, nil
}

// Verify checks the submitted code against the stored challenge.
// @Summary Verify SMS challenge
// @Description Compares the submitted code with the stored one and reports the resulting flow outcome.
// @Tags OTP
// @Accept json
// @Produce json
// @Param request body VerifyRequest true "Verification payload"
// @Success 200 {object} router.successResponse{data=VerifyResponse} "Verification outcome"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/otp/verify [post]
func (h *HTTPEndpoint) Verify(r *router.Request) (any, error) {
	var req VerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Verify(r.Context(), usecase.VerifyInput{
		SessionID: req.SessionID,
		Execution: entity.ExecutionFromString(req.Execution),
		Code:      req.Code,
		Username:  req.Username,
	})
	if err != nil {
		return nil, err
	}

	return VerifyResponse{
		Outcome: resp.Outcome.String(),
		Failure: newFailureInfo(resp.Failure),
	}, nil
}

// Descriptor returns the authenticator metadata for admin tooling.
// @Summary Authenticator descriptor
// @Description Returns the authenticator identifier, display metadata and configuration properties.
// @Tags OTP
// @Produce json
// @Success 200 {object} router.successResponse{data=DescriptorResponse} "Authenticator descriptor"
// @Router /api/v1/otp/descriptor [get]
func (h *HTTPEndpoint) Descriptor(r *router.Request) (any, error) {
	return DescriptorResponse{Descriptor: h.uc.Descriptor(r.Context())}, nil
}
