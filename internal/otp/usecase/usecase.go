package usecase

import (
	"context"
	"time"

	"github.com/cotodev/smsauth/internal/otp/entity"
	"github.com/cotodev/smsauth/internal/otp/outbound/broker"
	"github.com/cotodev/smsauth/internal/pkg/clock"
	"github.com/cotodev/smsauth/internal/pkg/config"
	"github.com/cotodev/smsauth/internal/pkg/i18n"
	"github.com/cotodev/smsauth/internal/pkg/instrument"
	"github.com/cotodev/smsauth/internal/pkg/session"
	"github.com/cotodev/smsauth/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

// Session note keys owned by this authenticator. No other component may read
// or write them.
const (
	noteCode       = "code"
	noteCodeExpiry = "code_expiry"
)

type brokerDispatcher interface {
	Resolve(name string, cfg entity.BrokerConfig, simulate bool) (broker.Service, error)
}

// Failure describes a terminal or retriable failure branch of the state
// machine. Message is safe to show the user; Cause is for operator diagnosis
// and never contains credentials.
type Failure struct {
	Kind    entity.FailureKind
	Message string
	Cause   string
}

// Usecase orchestrates the OTP challenge/verify state machine.
type Usecase struct {
	cfg       config.Config
	clock     clock.Clocker
	validator validator.Validator
	notes     session.Store
	brokers   brokerDispatcher
	smsText   *i18n.Catalog
	ins       instrument.Instrumentation
}

// Dependency lists what the usecase needs injected.
type Dependency struct {
	Config     config.Config
	Clock      clock.Clocker
	Validator  validator.Validator
	Notes      session.Store
	Brokers    brokerDispatcher
	SMSText    *i18n.Catalog
	Instrument instrument.Instrumentation
}

// New wires a Usecase from its dependencies.
func New(dep Dependency) *Usecase {
	return &Usecase{
		cfg:       dep.Config,
		clock:     dep.Clock,
		validator: dep.Validator,
		notes:     dep.Notes,
		brokers:   dep.Brokers,
		smsText:   dep.SMSText,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("otp.usecase").Start(ctx, name)
}

// settings is the per-attempt configuration snapshot read at the start of a
// challenge, with the documented defaults applied.
type settings struct {
	length         int
	ttl            time.Duration
	phoneAttribute string
	provider       string
	simulation     bool
	noteTTL        time.Duration
	broker         entity.BrokerConfig
}

func (s *Usecase) settings() settings {
	st := settings{
		length:         s.cfg.GetInt("modules.otp.length"),
		ttl:            s.cfg.GetSecond("modules.otp.ttl"),
		phoneAttribute: s.cfg.GetString("modules.otp.phone_attribute_name"),
		provider:       s.cfg.GetString("modules.otp.brokers"),
		noteTTL:        s.cfg.GetMinute("modules.otp.note_ttl_minutes"),
		broker: entity.BrokerConfig{
			ShortCode: s.cfg.GetString("modules.otp.broker_short_code"),
			Key:       s.cfg.GetString("modules.otp.broker_key"),
			Secret:    s.cfg.GetString("modules.otp.broker_secret"),
		},
	}

	if st.length == 0 {
		st.length = 6
	}
	if st.ttl == 0 {
		st.ttl = 300 * time.Second
	}
	if st.phoneAttribute == "" {
		st.phoneAttribute = "mobile_number"
	}
	if st.noteTTL == 0 {
		st.noteTTL = time.Hour
	}

	// An unset simulation flag means on, so a half-configured deployment
	// never texts real numbers.
	st.simulation = true
	if s.cfg.GetString("modules.otp.simulation") != "" {
		st.simulation = s.cfg.GetBool("modules.otp.simulation")
	}

	return st
}

// PhoneAttribute exposes the configured phone attribute name.
func (s *Usecase) PhoneAttribute() string {
	return s.settings().phoneAttribute
}

// ConfiguredFor reports whether the user carries a usable phone number for
// this authenticator, so the flow engine can decide to skip the step.
func (s *Usecase) ConfiguredFor(user entity.User) bool {
	_, err := entity.ParseDestination(user.FirstAttribute(s.settings().phoneAttribute))
	return err == nil
}

// Descriptor returns the authenticator metadata for admin tooling.
func (s *Usecase) Descriptor(ctx context.Context) entity.Descriptor {
	_, span := s.startSpan(ctx, "Descriptor")
	defer span.End()

	return entity.NewDescriptor()
}

func digitsOnly(code string) bool {
	if code == "" {
		return false
	}

	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}

	return true
}
