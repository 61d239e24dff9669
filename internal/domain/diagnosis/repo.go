package diagnosis

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists diagnosis records. Implementations report a missing id
// through apperr.NotFound.
type Repository interface {
	Create(ctx context.Context, d *Diagnosis) error
	GetByID(ctx context.Context, id uuid.UUID) (*Diagnosis, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*Diagnosis, error)
}

// Evaluator is the external generative-text collaborator producing a
// structured analysis from a symptom narrative. Defined here so the service
// stays decoupled from the concrete client.
type Evaluator interface {
	Evaluate(ctx context.Context, symptoms string) (*Analysis, error)
}
