// Package broker dispatches outgoing SMS messages to the configured
// third-party provider. Adding a provider means one Service implementation
// plus one registry entry; the challenge/verify flow never changes.
package broker

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/cotodev/smsauth/internal/otp/entity"
)

// Service delivers one message to one destination.
type Service interface {
	Send(ctx context.Context, to entity.Destination, message string) error
}

// factory builds a Service for a validated provider, or fails with a
// construction error such as *entity.InvalidBrokerConfigError.
type factory func(cfg entity.BrokerConfig) (Service, error)

// Dispatcher resolves a provider name to a Service instance.
type Dispatcher struct {
	httpClient *http.Client
	registry   map[entity.Provider]factory
}

// DispatcherOption customizes a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithHTTPClient replaces the default HTTP client, mainly for tests.
func WithHTTPClient(c *http.Client) DispatcherOption {
	return func(d *Dispatcher) {
		d.httpClient = c
	}
}

// NewDispatcher builds the dispatcher with the default provider registry.
// The shared HTTP client carries the bounded timeouts required for broker
// calls so a slow provider cannot hang a login.
func NewDispatcher(opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		httpClient: newHTTPClient(30 * time.Second),
	}

	for _, opt := range opts {
		opt(d)
	}

	d.registry = map[entity.Provider]factory{
		entity.ProviderZenvia: func(cfg entity.BrokerConfig) (Service, error) {
			return NewZenvia(cfg, d.httpClient)
		},
		entity.ProviderTwilio: func(entity.BrokerConfig) (Service, error) {
			return nil, &entity.NotImplementedError{Provider: entity.ProviderTwilio}
		},
		entity.ProviderSimulate: func(cfg entity.BrokerConfig) (Service, error) {
			return NewSimulate(cfg), nil
		},
	}

	return d
}

// Resolve matches name case-insensitively against the known provider set.
// When simulate is set the simulation provider is substituted regardless of
// name, so non-production environments never reach a live network.
func (d *Dispatcher) Resolve(name string, cfg entity.BrokerConfig, simulate bool) (Service, error) {
	provider := entity.ProviderFromString(name)
	if simulate {
		provider = entity.ProviderSimulate
	}

	build, ok := d.registry[provider]
	if !ok {
		return nil, &entity.UnsupportedProviderError{Name: name}
	}

	return build(cfg)
}

func newHTTPClient(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{Timeout: timeout}

	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext:         dialer.DialContext,
			TLSHandshakeTimeout: timeout,
		},
	}
}
