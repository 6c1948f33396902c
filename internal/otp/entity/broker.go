package entity

import (
	"fmt"
	"log/slog"
	"strings"
)

// Provider identifies a known SMS broker.
type Provider int16

const (
	// ProviderUnknown means the name did not match any known provider.
	ProviderUnknown Provider = 0

	// ProviderZenvia is the Zenvia REST integration.
	ProviderZenvia Provider = 1

	// ProviderTwilio is reserved; the integration is not implemented yet.
	ProviderTwilio Provider = 2

	// ProviderSimulate delivers to the logs instead of a live network.
	ProviderSimulate Provider = 3
)

// Providers lists every provider selectable from configuration. Simulate is
// excluded on purpose; it is reached through the simulation flag.
func Providers() []Provider {
	return []Provider{ProviderZenvia, ProviderTwilio}
}

// ProviderFromString matches a configured provider name case-insensitively.
func ProviderFromString(s string) Provider {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "zenvia":
		return ProviderZenvia
	case "twilio":
		return ProviderTwilio
	case "simulate":
		return ProviderSimulate
	default:
		return ProviderUnknown
	}
}

// String returns the wire value of the provider.
func (p Provider) String() string {
	switch p {
	case ProviderZenvia:
		return "zenvia"
	case ProviderTwilio:
		return "twilio"
	case ProviderSimulate:
		return "simulate"
	default:
		return "unknown"
	}
}

// DisplayName returns the human-readable provider name shown in admin UIs.
func (p Provider) DisplayName() string {
	switch p {
	case ProviderZenvia:
		return "Zenvia"
	case ProviderTwilio:
		return "Twilio"
	case ProviderSimulate:
		return "Simulate"
	default:
		return "Unknown"
	}
}

// BrokerConfig is the immutable credential bundle handed to a broker. It is
// built per authentication attempt from configuration and never persisted.
type BrokerConfig struct {
	// ShortCode is the sender number or short code shown to the recipient.
	ShortCode string

	// Key is the API key or username.
	Key string

	// Secret is the API secret or password.
	Secret string
}

// LogValue implements slog.LogValuer so credentials never reach the logs
// unmasked, no matter how the config is logged.
func (c BrokerConfig) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("short_code", c.ShortCode),
		slog.String("key", MaskSecret(c.Key)),
		slog.String("secret", MaskSecret(c.Secret)),
	)
}

// MaskSecret hides the middle of a credential, keeping the first and last two
// characters. Values of four characters or fewer are returned unchanged.
func MaskSecret(secret string) string {
	if len(secret) <= 4 {
		return secret
	}

	var sb strings.Builder
	sb.WriteString(secret[:2])
	for i := 2; i < len(secret)-2; i++ {
		sb.WriteByte('*')
	}
	sb.WriteString(secret[len(secret)-2:])

	return sb.String()
}

// UnsupportedProviderError is returned when the configured provider name is
// not in the known set.
type UnsupportedProviderError struct {
	// Name is the offending provider name as configured.
	Name string
}

func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("otp: unsupported broker %q", e.Name)
}

// NotImplementedError is returned for providers that are recognized but have
// no integration yet. This is an explicit failure, never a silent no-op.
type NotImplementedError struct {
	Provider Provider
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("otp: broker %s is not implemented yet", e.Provider)
}

// InvalidBrokerConfigError reports a missing credential field, detected at
// broker construction before any network attempt.
type InvalidBrokerConfigError struct {
	Provider Provider
	Field    string
}

func (e *InvalidBrokerConfigError) Error() string {
	return fmt.Sprintf("otp: broker %s config field %s cannot be empty", e.Provider, e.Field)
}

// DeliveryError wraps any failure while sending a message: a non-2xx response
// or a transport-level error such as a timeout.
type DeliveryError struct {
	Provider Provider

	// StatusCode is the HTTP status when the provider answered, zero otherwise.
	StatusCode int

	// Err is the underlying transport error, nil when StatusCode is set.
	Err error
}

func (e *DeliveryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("otp: broker %s delivery failed: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("otp: broker %s delivery failed with HTTP status %d", e.Provider, e.StatusCode)
}

// Unwrap returns the underlying transport error.
func (e *DeliveryError) Unwrap() error {
	return e.Err
}
