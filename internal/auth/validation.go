package auth

import (
	"net/mail"
	"strings"
)

// IsValidEmail checks if the provided email address is valid
func IsValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

// NormalizeEmail lower-cases an email address so that accounts differing only
// by letter case collide on the store's unique index
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
