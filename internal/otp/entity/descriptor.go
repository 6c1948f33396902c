package entity

import "github.com/samber/lo"

// AuthenticatorID is the stable identifier of this authenticator step.
const AuthenticatorID = "sms-authenticator"

// PropertyType describes how an admin UI should render a config property.
type PropertyType string

const (
	PropertyTypeString   PropertyType = "string"
	PropertyTypeNumber   PropertyType = "number"
	PropertyTypeBoolean  PropertyType = "boolean"
	PropertyTypePassword PropertyType = "password"
	PropertyTypeList     PropertyType = "list"
)

// ConfigProperty documents one configuration key of the authenticator.
type ConfigProperty struct {
	Key          string       `json:"key"`
	Label        string       `json:"label"`
	Help         string       `json:"help"`
	Type         PropertyType `json:"type"`
	DefaultValue string       `json:"default_value,omitempty"`
	Options      []string     `json:"options,omitempty"`
}

// Descriptor is the authenticator metadata surfaced to the flow engine's
// admin tooling.
type Descriptor struct {
	ID                string           `json:"id"`
	DisplayType       string           `json:"display_type"`
	HelpText          string           `json:"help_text"`
	ReferenceCategory string           `json:"reference_category"`
	RequiresUser      bool             `json:"requires_user"`
	Configurable      bool             `json:"configurable"`
	UserSetupAllowed  bool             `json:"user_setup_allowed"`
	Properties        []ConfigProperty `json:"properties"`
}

// NewDescriptor builds the authenticator descriptor, including the broker
// choices derived from the known provider set.
func NewDescriptor() Descriptor {
	brokers := lo.Map(Providers(), func(p Provider, _ int) string {
		return p.DisplayName()
	})

	return Descriptor{
		ID:                AuthenticatorID,
		DisplayType:       "SMS Authentication",
		HelpText:          "Validates an OTP sent via SMS to the user's mobile phone.",
		ReferenceCategory: "otp",
		RequiresUser:      true,
		Configurable:      true,
		UserSetupAllowed:  true,
		Properties: []ConfigProperty{
			{Key: "length", Label: "Code length", Help: "The number of digits of the generated code.", Type: PropertyTypeNumber, DefaultValue: "6"},
			{Key: "ttl", Label: "Time-to-live", Help: "The time to live in seconds for the code to be valid.", Type: PropertyTypeNumber, DefaultValue: "300"},
			{Key: "sender_name", Label: "Sender Name", Help: "Displayed as the message sender on the receiving device.", Type: PropertyTypeString},
			{Key: "simulation", Label: "Simulation mode", Help: "In simulation mode the SMS is written to the server logs instead of being sent.", Type: PropertyTypeBoolean, DefaultValue: "true"},
			{Key: "phone_attribute_name", Label: "Phone Attribute Name", Help: "The user attribute holding the phone number.", Type: PropertyTypeString, DefaultValue: "mobile_number"},
			{Key: "brokers", Label: "Broker List", Help: "The SMS broker used for delivery.", Type: PropertyTypeList, Options: brokers},
			{Key: "broker_key", Label: "Broker Key/User", Help: "The username or API key.", Type: PropertyTypeString},
			{Key: "broker_secret", Label: "Broker Secret/Pass", Help: "The password or API secret.", Type: PropertyTypePassword},
			{Key: "broker_short_code", Label: "Broker ShortCode/From Number", Help: "The sender number.", Type: PropertyTypeString},
		},
	}
}
