package inbound

import (
	"github.com/cotodev/smsauth/internal/otp/entity"
	"github.com/cotodev/smsauth/internal/otp/usecase"
)

type UserPayload struct {
	Username   string              `json:"username"`
	Attributes map[string][]string `json:"attributes"`
}

type ChallengeRequest struct {
	SessionID        string      `json:"session_id"`
	Execution        string      `json:"execution"`
	User             UserPayload `json:"user"`
	Locale           string      `json:"locale"`
	RealmName        string      `json:"realm_name"`
	RealmDisplayName string      `json:"realm_display_name"`
}

type ChallengeResponse struct {
	Outcome     string       `json:"outcome"`
	Destination string       `json:"destination,omitempty"`
	Failure     *FailureInfo `json:"failure,omitempty"`
}

type VerifyRequest struct {
	SessionID string `json:"session_id"`
	Execution string `json:"execution"`
	Code      string `json:"code"`
	Username  string `json:"username"`
}

type VerifyResponse struct {
	Outcome string       `json:"outcome"`
	Failure *FailureInfo `json:"failure,omitempty"`
}

// FailureInfo carries the failure branch taken by the state machine. Status
// is the HTTP-equivalent class of the failure, not the response status: the
// flow engine receives outcomes as data, not as transport errors.
type FailureInfo struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Cause   string `json:"cause,omitempty"`
}

func newFailureInfo(f *usecase.Failure) *FailureInfo {
	if f == nil {
		return nil
	}

	return &FailureInfo{
		Kind:    f.Kind.String(),
		Message: f.Message,
		Status:  f.Kind.StatusCode(),
		Cause:   f.Cause,
	}
}

type DescriptorResponse struct {
	Descriptor entity.Descriptor `json:"descriptor"`
}
