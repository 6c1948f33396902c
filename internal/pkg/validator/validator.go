package validator

// Validator validates structs against their declared rules.
type Validator interface {
	// Validate returns nil when data passes all rules, or an error describing
	// the failing fields.
	Validate(data any) error
}
