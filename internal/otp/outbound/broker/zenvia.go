package broker

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cotodev/smsauth/internal/otp/entity"
)

const zenviaSendURL = "https://api-rest.zenvia.com/services/send-sms"

// Zenvia sends messages through the Zenvia classic REST API.
type Zenvia struct {
	cfg    entity.BrokerConfig
	client *http.Client
	url    string
}

// NewZenvia validates the credential bundle eagerly and returns the broker.
// A missing field fails with *entity.InvalidBrokerConfigError before any
// network attempt.
func NewZenvia(cfg entity.BrokerConfig, client *http.Client) (*Zenvia, error) {
	for field, value := range map[string]string{
		"key":        cfg.Key,
		"secret":     cfg.Secret,
		"short_code": cfg.ShortCode,
	} {
		if value == "" {
			return nil, &entity.InvalidBrokerConfigError{Provider: entity.ProviderZenvia, Field: field}
		}
	}

	return &Zenvia{cfg: cfg, client: client, url: zenviaSendURL}, nil
}

type zenviaSendRequest struct {
	SendSmsRequest zenviaSendBody `json:"sendSmsRequest"`
}

type zenviaSendBody struct {
	To     string `json:"to"`
	Msg    string `json:"msg"`
	Sender string `json:"sender"`
}

// Send posts the message and treats any 2xx response as success. Everything
// else, including transport failures and timeouts, becomes *entity.DeliveryError.
func (z *Zenvia) Send(ctx context.Context, to entity.Destination, message string) error {
	payload, err := json.Marshal(zenviaSendRequest{
		SendSmsRequest: zenviaSendBody{
			To:     to.String(),
			Msg:    message,
			Sender: z.cfg.ShortCode,
		},
	})
	if err != nil {
		return &entity.DeliveryError{Provider: entity.ProviderZenvia, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, z.url, bytes.NewReader(payload))
	if err != nil {
		return &entity.DeliveryError{Provider: entity.ProviderZenvia, Err: err}
	}
	req.SetBasicAuth(z.cfg.Key, z.cfg.Secret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := z.client.Do(req)
	if err != nil {
		return &entity.DeliveryError{Provider: entity.ProviderZenvia, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.ErrorContext(ctx, "zenvia send failed",
			"status", resp.StatusCode,
			"destination", to.Masked(),
		)
		return &entity.DeliveryError{Provider: entity.ProviderZenvia, StatusCode: resp.StatusCode}
	}

	slog.InfoContext(ctx, "sms sent via zenvia", "destination", to.Masked())

	return nil
}
