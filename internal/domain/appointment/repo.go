package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/mediscan/mediscan/internal/domain/diagnosis"
	"github.com/mediscan/mediscan/internal/domain/identity"
)

// Repository persists appointment records. Lookups report a missing id
// through apperr.NotFound.
type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	// ListByDoctor returns one page of the doctor's appointments ascending by
	// scheduled date, each with the patient projected to name and email.
	ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*DoctorListItem, error)
	CountByDoctor(ctx context.Context, doctorID uuid.UUID) (int, error)
}

// UserDirectory is the slice of the identity service the appointment service
// needs: resolving user records for role checks and patient projection.
type UserDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*identity.User, error)
}

// DiagnosisStore resolves diagnosis records for ownership checks at booking
// time and inline expansion in the doctor detail view.
type DiagnosisStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*diagnosis.Diagnosis, error)
}
