package domain

import (
	"strings"
	"time"
)

const (
	RoleAdmin     = "ADMIN"
	RoleLibrarian = "LIBRARIAN"
	RoleClient    = "CLIENT"
)

// Roles lists every role an account may hold.
var Roles = []string{RoleAdmin, RoleLibrarian, RoleClient}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Account models a registered principal with login credentials.
type Account struct {
	ID           string    `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone,omitempty"`
	RegisterDate time.Time `json:"register_date"`
	Role         string    `json:"role"`
}

// NormalizeEmail canonicalizes an email for comparison and storage of the
// uniqueness key. Two emails differing only in case refer to the same account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
