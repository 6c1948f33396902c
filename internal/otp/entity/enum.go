package entity

import (
	"net/http"
	"strings"
)

// Execution mirrors the flow engine's requirement for this authentication
// step. A failed verification on a non-mandatory step yields OutcomeAttempted
// so the engine can route to an alternative step.
type Execution int16

const (
	ExecutionUnknown     Execution = 0
	ExecutionRequired    Execution = 1
	ExecutionConditional Execution = 2
	ExecutionAlternative Execution = 3
)

// ExecutionFromString parses the requirement sent by the flow engine.
func ExecutionFromString(s string) Execution {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "required":
		return ExecutionRequired
	case "conditional":
		return ExecutionConditional
	case "alternative":
		return ExecutionAlternative
	default:
		return ExecutionUnknown
	}
}

func (e Execution) String() string {
	switch e {
	case ExecutionRequired:
		return "required"
	case ExecutionConditional:
		return "conditional"
	case ExecutionAlternative:
		return "alternative"
	default:
		return "unknown"
	}
}

// Mandatory reports whether a verification failure must fail the whole step.
// Unknown is treated as required so a missing requirement never weakens the flow.
func (e Execution) Mandatory() bool {
	return e != ExecutionConditional && e != ExecutionAlternative
}

// Outcome is the ternary result reported back to the flow engine.
type Outcome int16

const (
	OutcomeUnknown Outcome = 0

	// OutcomeChallengePresented means the code was sent and the user should
	// now be prompted for it.
	OutcomeChallengePresented Outcome = 1

	// OutcomeSuccess means verification passed and the step is satisfied.
	OutcomeSuccess Outcome = 2

	// OutcomeAttempted means the step failed but was optional, so the engine
	// may try alternative paths.
	OutcomeAttempted Outcome = 3

	// OutcomeFailure means the step failed terminally for this attempt.
	OutcomeFailure Outcome = 4
)

func (o Outcome) String() string {
	switch o {
	case OutcomeChallengePresented:
		return "challenge_presented"
	case OutcomeSuccess:
		return "success"
	case OutcomeAttempted:
		return "attempted"
	case OutcomeFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// FailureKind distinguishes the failure branches. Each kind drives a different
// user-facing message and retry policy.
type FailureKind int16

const (
	FailureUnknown FailureKind = 0

	// FailureMissingDestination means the user has no phone number configured.
	FailureMissingDestination FailureKind = 1

	// FailureInvalidFormat covers a malformed phone number or a non-digit
	// submitted code.
	FailureInvalidFormat FailureKind = 2

	// FailureDeliveryFailed means the broker could not deliver the message.
	FailureDeliveryFailed FailureKind = 3

	// FailureInternalError means the stored challenge state is corrupted or
	// absent. Not retriable within this attempt.
	FailureInternalError FailureKind = 4

	// FailureExpired means the correct code arrived after its expiry.
	FailureExpired FailureKind = 5

	// FailureCodeMismatch means the submitted code does not match. Retriable
	// until expiry, subject to the engine's own attempt limits.
	FailureCodeMismatch FailureKind = 6
)

func (k FailureKind) String() string {
	switch k {
	case FailureMissingDestination:
		return "missing_destination"
	case FailureInvalidFormat:
		return "invalid_format"
	case FailureDeliveryFailed:
		return "delivery_failed"
	case FailureInternalError:
		return "internal_error"
	case FailureExpired:
		return "expired"
	case FailureCodeMismatch:
		return "code_mismatch"
	default:
		return "unknown"
	}
}

// StatusCode maps the failure to its HTTP-equivalent class: user-data
// problems are 400s, delivery and state corruption are 500s, a wrong code is
// a credential failure.
func (k FailureKind) StatusCode() int {
	switch k {
	case FailureMissingDestination, FailureInvalidFormat, FailureExpired:
		return http.StatusBadRequest
	case FailureCodeMismatch:
		return http.StatusUnauthorized
	case FailureDeliveryFailed, FailureInternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
