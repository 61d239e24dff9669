package identity

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists user records. Create reports a duplicate email through
// apperr.Conflict; lookups report a missing record through apperr.NotFound.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ListDoctors(ctx context.Context) ([]*User, error)
}
