// Package uid provides string identifier generators.
package uid

// StringID generates opaque string identifiers.
type StringID interface {
	Generate() string
}
