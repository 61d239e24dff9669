// Package auth owns the authenticated caller context: issuing and verifying
// bearer tokens, password hashing, and the echo middleware that turns a token
// into an Identity on the request context. Services receive the Identity as an
// explicit parameter; nothing reads session state from globals.
package auth

import (
	"context"

	"github.com/google/uuid"
)

// Roles recognized by the platform.
const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
)

// Identity is the authenticated caller context consumed by domain services.
type Identity struct {
	ID    uuid.UUID `json:"id"`
	Role  string    `json:"role"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

// IsDoctor reports whether the identity carries the doctor role.
func (i Identity) IsDoctor() bool { return i.Role == RoleDoctor }

// IsPatient reports whether the identity carries the patient role.
func (i Identity) IsPatient() bool { return i.Role == RolePatient }

type contextKey string

const identityKey contextKey = "identity"

// WithIdentity returns a context carrying the identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the identity set by the middleware, or nil when
// the request is unauthenticated.
func IdentityFromContext(ctx context.Context) *Identity {
	id, ok := ctx.Value(identityKey).(Identity)
	if !ok {
		return nil
	}
	return &id
}
