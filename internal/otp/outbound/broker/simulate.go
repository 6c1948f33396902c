package broker

import (
	"context"
	"log/slog"
	"sync"

	"github.com/cotodev/smsauth/internal/otp/entity"
	"github.com/google/uuid"
	"go.uber.org/atomic"
)

// SimulatedMessage is one recorded delivery, kept for inspection by tests and
// non-production tooling.
type SimulatedMessage struct {
	ID          string
	Destination entity.Destination
	Message     string
}

// Simulate is the broker used in simulation mode. It performs no network
// call: it records the message, logs it with masked credentials, and always
// succeeds.
type Simulate struct {
	cfg entity.BrokerConfig

	mu       sync.Mutex
	messages []SimulatedMessage
	sent     atomic.Int64
}

// NewSimulate returns a simulation broker. Unlike live brokers it accepts any
// config, including an empty one.
func NewSimulate(cfg entity.BrokerConfig) *Simulate {
	return &Simulate{cfg: cfg}
}

// Send records the message and logs it. It never fails.
func (s *Simulate) Send(ctx context.Context, to entity.Destination, message string) error {
	msg := SimulatedMessage{
		ID:          uuid.NewString(),
		Destination: to,
		Message:     message,
	}

	s.mu.Lock()
	s.messages = append(s.messages, msg)
	s.mu.Unlock()
	s.sent.Inc()

	slog.WarnContext(ctx, "simulation mode, use only outside production")
	slog.InfoContext(ctx, "simulating sms delivery",
		"message_id", msg.ID,
		"destination", to,
		"message", message,
		"broker_config", s.cfg,
	)

	return nil
}

// Messages returns a copy of every recorded delivery.
func (s *Simulate) Messages() []SimulatedMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]SimulatedMessage, len(s.messages))
	copy(out, s.messages)

	return out
}

// Sent returns the number of simulated deliveries.
func (s *Simulate) Sent() int64 {
	return s.sent.Load()
}
