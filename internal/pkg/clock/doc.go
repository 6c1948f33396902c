// Package clock abstracts the current time behind a small interface so
// challenge expiry can be tested against a controlled clock.
package clock
