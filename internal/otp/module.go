// Package otp wires the SMS OTP authentication step: HTTP endpoints, the
// challenge/verify usecase and the broker dispatch behind it.
package otp

import (
	"net/http"

	"github.com/cotodev/smsauth/internal/otp/inbound"
	"github.com/cotodev/smsauth/internal/otp/outbound/broker"
	"github.com/cotodev/smsauth/internal/otp/usecase"
	"github.com/cotodev/smsauth/internal/pkg/clock"
	"github.com/cotodev/smsauth/internal/pkg/config"
	"github.com/cotodev/smsauth/internal/pkg/i18n"
	"github.com/cotodev/smsauth/internal/pkg/instrument"
	"github.com/cotodev/smsauth/internal/pkg/router"
	"github.com/cotodev/smsauth/internal/pkg/session"
	"github.com/cotodev/smsauth/internal/pkg/validator"
)

// defaultSMSTexts are the built-in message templates per locale. The first
// verb receives the code, the second the realm display name. Deployments can
// override or extend them via modules.otp.sms_text.
var defaultSMSTexts = map[string]string{
	"en": "%s is your verification code for %s.",
	"de": "%s ist dein Bestätigungscode für %s.",
	"pt": "%s é o seu código de verificação para %s.",
}

type Dependency struct {
	Router     *router.Router             `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	Notes      session.Store              `validate:"required"`
	HTTPClient *http.Client
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	texts := make(map[string]string, len(defaultSMSTexts))
	for locale, tmpl := range defaultSMSTexts {
		texts[locale] = tmpl
	}
	for locale, tmpl := range dep.Config.GetMap("modules.otp.sms_text") {
		if locale != "" && tmpl != "" {
			texts[locale] = tmpl
		}
	}

	smsText, err := i18n.NewCatalog(texts, "en")
	if err != nil {
		return err
	}

	opts := []broker.DispatcherOption{}
	if dep.HTTPClient != nil {
		opts = append(opts, broker.WithHTTPClient(dep.HTTPClient))
	}

	uc := usecase.New(usecase.Dependency{
		Config:     dep.Config,
		Clock:      dep.Clock,
		Validator:  dep.Validator,
		Notes:      dep.Notes,
		Brokers:    broker.NewDispatcher(opts...),
		SMSText:    smsText,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
