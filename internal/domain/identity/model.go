package identity

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account, either a patient or a doctor. The role is
// fixed at registration. Specialty and availability descriptors are only kept
// for doctor accounts.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	Specialty    *string   `db:"specialty" json:"specialty,omitempty"`
	Availability []string  `db:"availability" json:"availability,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
