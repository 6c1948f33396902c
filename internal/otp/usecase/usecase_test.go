package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cotodev/smsauth/internal/otp/entity"
	"github.com/cotodev/smsauth/internal/otp/outbound/broker"
	"github.com/cotodev/smsauth/internal/pkg/clock"
	"github.com/cotodev/smsauth/internal/pkg/config"
	"github.com/cotodev/smsauth/internal/pkg/i18n"
	"github.com/cotodev/smsauth/internal/pkg/instrument"
	"github.com/cotodev/smsauth/internal/pkg/session"
	"github.com/cotodev/smsauth/internal/pkg/validator"
)

const testConfigYAML = `
modules:
  otp:
    length: 6
    ttl: 300
    phone_attribute_name: mobile_number
    note_ttl_minutes: 60
    brokers: zenvia
    broker_key: key
    broker_secret: secret
    broker_short_code: "26287"
    simulation: false
`

type sentMessage struct {
	To      entity.Destination
	Message string
}

type fakeBroker struct {
	mu       sync.Mutex
	err      error
	messages []sentMessage
}

func (f *fakeBroker) Send(_ context.Context, to entity.Destination, message string) error {
	if f.err != nil {
		return f.err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, sentMessage{To: to, Message: message})

	return nil
}

func (f *fakeBroker) last(t *testing.T) sentMessage {
	t.Helper()

	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.messages) == 0 {
		t.Fatalf("expected at least one delivered message")
	}

	return f.messages[len(f.messages)-1]
}

type fakeDispatcher struct {
	svc        broker.Service
	resolveErr error

	lastName     string
	lastCfg      entity.BrokerConfig
	lastSimulate bool
}

func (f *fakeDispatcher) Resolve(name string, cfg entity.BrokerConfig, simulate bool) (broker.Service, error) {
	f.lastName = name
	f.lastCfg = cfg
	f.lastSimulate = simulate

	if f.resolveErr != nil {
		return nil, f.resolveErr
	}

	return f.svc, nil
}

type testEnv struct {
	uc     *Usecase
	notes  *session.Memory
	clock  *clock.Static
	broker *fakeBroker
	disp   *fakeDispatcher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfigYAML))
	if err != nil {
		t.Fatalf("failed to build test config: %v", err)
	}

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	smsText, err := i18n.NewCatalog(map[string]string{
		"en": "%s is your verification code for %s.",
		"de": "%s ist dein Bestätigungscode für %s.",
	}, "en")
	if err != nil {
		t.Fatalf("failed to build sms catalog: %v", err)
	}

	static := clock.NewStatic(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	notes := session.NewMemory(static)
	fb := &fakeBroker{}
	disp := &fakeDispatcher{svc: fb}

	uc := New(Dependency{
		Config:     cfg,
		Clock:      static,
		Validator:  v10,
		Notes:      notes,
		Brokers:    disp,
		SMSText:    smsText,
		Instrument: instrument.NewNoop(),
	})

	return &testEnv{uc: uc, notes: notes, clock: static, broker: fb, disp: disp}
}

func testUser(phone string) entity.User {
	attrs := map[string][]string{}
	if phone != "" {
		attrs["mobile_number"] = []string{phone}
	}

	return entity.User{Username: "jdoe", Attributes: attrs}
}

func TestConfiguredFor(t *testing.T) {

	// Arrange
	env := newTestEnv(t)

	// Act & Assert
	if !env.uc.ConfiguredFor(testUser("+14155552671")) {
		t.Fatalf("expected user with valid phone to be configured")
	}
	if env.uc.ConfiguredFor(testUser("")) {
		t.Fatalf("expected user without phone not to be configured")
	}
	if env.uc.ConfiguredFor(testUser("not-a-number")) {
		t.Fatalf("expected user with invalid phone not to be configured")
	}
}

func TestPhoneAttribute(t *testing.T) {

	// Arrange
	env := newTestEnv(t)

	// Act & Assert
	if got := env.uc.PhoneAttribute(); got != "mobile_number" {
		t.Fatalf("expected configured attribute name, got %q", got)
	}
}

func TestDescriptor(t *testing.T) {

	// Arrange
	env := newTestEnv(t)

	// Act
	desc := env.uc.Descriptor(context.Background())

	// Assert
	if desc.ID != entity.AuthenticatorID {
		t.Fatalf("expected authenticator id %q, got %q", entity.AuthenticatorID, desc.ID)
	}
	if !desc.RequiresUser || !desc.Configurable {
		t.Fatalf("expected descriptor to require a user and be configurable")
	}
	if len(desc.Properties) == 0 {
		t.Fatalf("expected config properties in descriptor")
	}
}
