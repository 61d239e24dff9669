// Package access is the single source of truth for record-level authorization.
// Both domain services consult these predicates instead of carrying inline
// ownership checks. The functions are pure: no I/O, never panic, and a nil
// identity simply means the caller is unauthenticated.
package access

import (
	"github.com/google/uuid"

	"github.com/mediscan/mediscan/internal/platform/auth"
)

// CanReadDiagnosis reports whether the identity may read a diagnosis owned by
// ownerID. Only the owner may read it.
func CanReadDiagnosis(id *auth.Identity, ownerID uuid.UUID) bool {
	if id == nil {
		return false
	}
	return id.ID == ownerID
}

// CanReadAppointment reports whether the identity may read an appointment
// between patientID and doctorID. The assigned doctor and the owning patient
// may; nobody else.
func CanReadAppointment(id *auth.Identity, patientID, doctorID uuid.UUID) bool {
	if id == nil {
		return false
	}
	switch id.Role {
	case auth.RoleDoctor:
		return id.ID == doctorID
	case auth.RolePatient:
		return id.ID == patientID
	default:
		return false
	}
}

// CanCreateAppointment reports whether the identity may book an appointment.
// Any authenticated caller may; booking binds the patient id to the caller.
func CanCreateAppointment(id *auth.Identity) bool {
	return id != nil
}
