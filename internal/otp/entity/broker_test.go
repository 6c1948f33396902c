package entity

import (
	"log/slog"
	"testing"
)

func TestProviderFromString(t *testing.T) {

	// Arrange
	cases := map[string]Provider{
		"zenvia":    ProviderZenvia,
		"Zenvia":    ProviderZenvia,
		" ZENVIA ":  ProviderZenvia,
		"twilio":    ProviderTwilio,
		"simulate":  ProviderSimulate,
		"carrier-x": ProviderUnknown,
		"":          ProviderUnknown,
	}

	for raw, want := range cases {
		// Act
		got := ProviderFromString(raw)

		// Assert
		if got != want {
			t.Fatalf("expected provider %v for %q, got %v", want, raw, got)
		}
	}
}

func TestProviders(t *testing.T) {

	// Act
	ps := Providers()

	// Assert
	if len(ps) != 2 {
		t.Fatalf("expected 2 selectable providers, got %d", len(ps))
	}
	for _, p := range ps {
		if p == ProviderSimulate {
			t.Fatalf("simulate must not be selectable from configuration")
		}
	}
}

func TestMaskSecret(t *testing.T) {

	// Arrange
	cases := map[string]string{
		"":            "",
		"abc":         "abc",
		"abcd":        "abcd",
		"abcde":       "ab*de",
		"supersecret": "su*******et",
	}

	for raw, want := range cases {
		// Act
		got := MaskSecret(raw)

		// Assert
		if got != want {
			t.Fatalf("expected %q for %q, got %q", want, raw, got)
		}
	}
}

func TestBrokerConfigLogValue(t *testing.T) {

	// Arrange
	cfg := BrokerConfig{ShortCode: "26287", Key: "apikey-user", Secret: "supersecret"}

	// Act
	val := cfg.LogValue()

	// Assert
	if val.Kind() != slog.KindGroup {
		t.Fatalf("expected group log value, got %v", val.Kind())
	}
	for _, attr := range val.Group() {
		switch attr.Key {
		case "short_code":
			if attr.Value.String() != "26287" {
				t.Fatalf("short code should not be masked, got %q", attr.Value.String())
			}
		case "key":
			if attr.Value.String() != "ap*******er" {
				t.Fatalf("expected masked key, got %q", attr.Value.String())
			}
		case "secret":
			if attr.Value.String() != "su*******et" {
				t.Fatalf("expected masked secret, got %q", attr.Value.String())
			}
		default:
			t.Fatalf("unexpected log attribute %q", attr.Key)
		}
	}
}
