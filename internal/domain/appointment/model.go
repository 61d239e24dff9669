package appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/mediscan/mediscan/internal/domain/diagnosis"
)

// Appointment statuses. Records are always created pending; the other states
// exist in the data model but no transition endpoint is exposed yet.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

var validStatuses = map[string]bool{
	StatusPending:   true,
	StatusConfirmed: true,
	StatusCompleted: true,
	StatusCancelled: true,
}

// ValidStatus reports whether s is a recognized appointment status.
func ValidStatus(s string) bool { return validStatuses[s] }

// Appointment links one patient, one doctor and optionally one diagnosis.
// The diagnosis reference is weak: the diagnosis record is unaware of
// appointments pointing at it, and the link may dangle if the diagnosis is
// removed out of band.
type Appointment struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	PatientID   uuid.UUID  `db:"patient_id" json:"patient_id"`
	DoctorID    uuid.UUID  `db:"doctor_id" json:"doctor_id"`
	DiagnosisID *uuid.UUID `db:"diagnosis_id" json:"diagnosis_id,omitempty"`
	Date        time.Time  `db:"date" json:"date"`
	Status      string     `db:"status" json:"status"`
	Notes       *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

// PatientSummary is the patient identity projection embedded in doctor views:
// name and email only, never the credential hash or the full record.
type PatientSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// DoctorListItem is one row of a doctor's appointment list.
type DoctorListItem struct {
	Appointment
	Patient PatientSummary `json:"patient"`
}

// DoctorDetail is the full doctor view of one appointment: the patient
// summary plus the linked diagnosis expanded inline when it resolves.
type DoctorDetail struct {
	Appointment
	Patient   PatientSummary       `json:"patient"`
	Diagnosis *diagnosis.Diagnosis `json:"diagnosis,omitempty"`
}
