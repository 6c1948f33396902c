package entity

// User is the authenticated user snapshot supplied by the flow engine. The
// authenticator never loads or mutates user records itself.
type User struct {
	// Username identifies the user in logs (never the phone number).
	Username string

	// Attributes are the user's profile attributes, multi-valued per key.
	Attributes map[string][]string
}

// FirstAttribute returns the first value of the named attribute, or "" when
// the attribute is absent or empty.
func (u User) FirstAttribute(name string) string {
	vals := u.Attributes[name]
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}
