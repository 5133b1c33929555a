package auth

import (
	"time"

	"github.com/google/uuid"
)

// Account represents a login record.
type Account struct {
	ID           uuid.UUID
	Account      string
	PasswordHash string
	CreatedAt    time.Time
}

// SafeAccount removes sensitive fields for response payloads.
func (a Account) SafeAccount() Account {
	a.PasswordHash = ""
	return a
}
