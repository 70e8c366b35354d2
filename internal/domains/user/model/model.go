package model

import (
	"strings"

	"merobooking/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID       = "id"
	FieldName     = "name"
	FieldEmail    = "email"
	FieldRole     = "role"
	FieldPassword = "password"

	GuestIDPrefix = "guest_"
)

// User is an account. Guests carry no password; staff accounts are seeded
// with bcrypt hashes. Users are never deleted.
type User struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	Email    string `db:"email"`
	Role     string `db:"role"`
	Password string `db:"password"`
	model.Metadata
}

// GuestID derives the deterministic guest account id from an email, so a
// returning guest keeps their booking history.
func GuestID(email string) string {
	var sanitized strings.Builder

	for _, r := range strings.ToLower(email) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sanitized.WriteRune(r)
		}
	}

	return GuestIDPrefix + sanitized.String()
}
