package entity

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"
)

// ErrConfiguration indicates malformed challenge generation settings. This is
// a deployment bug, not a user problem.
var ErrConfiguration = errors.New("otp: invalid configuration")

// Challenge is the one-time code issued for a single authentication attempt,
// together with its absolute expiry.
type Challenge struct {
	// Code is the generated code, digits only.
	Code string

	// ExpiresAt is the expiry timestamp in milliseconds since the Unix epoch.
	ExpiresAt int64
}

// GenerateChallenge produces a fresh challenge of length digit characters
// drawn from crypto/rand, expiring ttl after now.
func GenerateChallenge(length int, ttl time.Duration, now time.Time) (Challenge, error) {
	if length <= 0 {
		return Challenge{}, fmt.Errorf("%w: code length must be positive, got %d", ErrConfiguration, length)
	}
	if ttl <= 0 {
		return Challenge{}, fmt.Errorf("%w: ttl must be positive, got %s", ErrConfiguration, ttl)
	}

	var sb strings.Builder
	sb.Grow(length)

	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return Challenge{}, err
		}
		sb.WriteByte('0' + byte(n.Int64()))
	}

	return Challenge{
		Code:      sb.String(),
		ExpiresAt: now.Add(ttl).UnixMilli(),
	}, nil
}

// Expired reports whether the challenge is no longer usable at the given time.
func (c Challenge) Expired(now time.Time) bool {
	return now.UnixMilli() >= c.ExpiresAt
}
