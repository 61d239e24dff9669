package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mediscan/mediscan/internal/platform/access"
	"github.com/mediscan/mediscan/internal/platform/apperr"
	"github.com/mediscan/mediscan/internal/platform/auth"
	"github.com/mediscan/mediscan/pkg/pagination"
)

type Service struct {
	repo      Repository
	users     UserDirectory
	diagnoses DiagnosisStore
	log       zerolog.Logger
}

func NewService(repo Repository, users UserDirectory, diagnoses DiagnosisStore, log zerolog.Logger) *Service {
	return &Service{repo: repo, users: users, diagnoses: diagnoses, log: log}
}

// BookInput carries the booking form fields. The patient id is never part of
// the input; it is bound from the authenticated caller.
type BookInput struct {
	DoctorID    uuid.UUID  `json:"doctor_id"`
	Date        time.Time  `json:"date"`
	Notes       string     `json:"notes"`
	DiagnosisID *uuid.UUID `json:"diagnosis_id"`
}

// Book creates a pending appointment for the calling patient. The doctor must
// exist with the doctor role, and a linked diagnosis must belong to the
// caller. No conflict checking is done against the doctor's schedule.
func (s *Service) Book(ctx context.Context, id *auth.Identity, in BookInput) (*Appointment, error) {
	if !access.CanCreateAppointment(id) {
		return nil, apperr.New(apperr.Unauthenticated, "authentication required")
	}
	if in.DoctorID == uuid.Nil {
		return nil, apperr.New(apperr.Validation, "doctor is required")
	}
	if in.Date.IsZero() {
		return nil, apperr.New(apperr.Validation, "date is required")
	}

	doctor, err := s.users.GetByID(ctx, in.DoctorID)
	if err != nil {
		if apperr.Is(err, apperr.NotFound) {
			return nil, apperr.New(apperr.Validation, "doctor not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "could not resolve doctor", err)
	}
	if doctor.Role != auth.RoleDoctor {
		return nil, apperr.New(apperr.Validation, "selected user is not a doctor")
	}

	if in.DiagnosisID != nil {
		d, err := s.diagnoses.GetByID(ctx, *in.DiagnosisID)
		if err != nil {
			if apperr.Is(err, apperr.NotFound) {
				return nil, apperr.New(apperr.Validation, "diagnosis not found")
			}
			return nil, apperr.Wrap(apperr.Internal, "could not resolve diagnosis", err)
		}
		if d.UserID != id.ID {
			return nil, apperr.New(apperr.Forbidden, "diagnosis does not belong to you")
		}
	}

	a := &Appointment{
		PatientID:   id.ID,
		DoctorID:    in.DoctorID,
		DiagnosisID: in.DiagnosisID,
		Date:        in.Date,
		Status:      StatusPending,
	}
	if in.Notes != "" {
		a.Notes = &in.Notes
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not create appointment", err)
	}
	return a, nil
}

// GetForDoctor returns the full doctor view of one appointment: the record,
// the patient projected to name and email, and the linked diagnosis expanded
// when it resolves. A dangling diagnosis link is logged and the appointment
// is returned without it.
func (s *Service) GetForDoctor(ctx context.Context, id *auth.Identity, appointmentID uuid.UUID) (*DoctorDetail, error) {
	if id == nil {
		return nil, apperr.New(apperr.Unauthenticated, "authentication required")
	}
	a, err := s.repo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !id.IsDoctor() || !access.CanReadAppointment(id, a.PatientID, a.DoctorID) {
		return nil, apperr.New(apperr.Forbidden, "not your appointment")
	}

	patient, err := s.users.GetByID(ctx, a.PatientID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not resolve patient", err)
	}

	detail := &DoctorDetail{
		Appointment: *a,
		Patient:     PatientSummary{ID: patient.ID, Name: patient.Name, Email: patient.Email},
	}
	if a.DiagnosisID != nil {
		d, err := s.diagnoses.GetByID(ctx, *a.DiagnosisID)
		switch {
		case err == nil:
			detail.Diagnosis = d
		case apperr.Is(err, apperr.NotFound):
			s.log.Warn().
				Str("appointment_id", a.ID.String()).
				Str("diagnosis_id", a.DiagnosisID.String()).
				Msg("appointment references a missing diagnosis")
		default:
			return nil, apperr.Wrap(apperr.Internal, "could not resolve diagnosis", err)
		}
	}
	return detail, nil
}

// ListForDoctor returns one page of the caller's appointments ascending by
// scheduled date, each with the patient name and email embedded, plus the
// total count for the pagination envelope.
func (s *Service) ListForDoctor(ctx context.Context, id *auth.Identity, p pagination.Params) ([]*DoctorListItem, int, error) {
	if id == nil {
		return nil, 0, apperr.New(apperr.Unauthenticated, "authentication required")
	}
	if !id.IsDoctor() {
		return nil, 0, apperr.New(apperr.Forbidden, "doctor role required")
	}
	items, err := s.repo.ListByDoctor(ctx, id.ID, p.Limit, p.Offset)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.Internal, "could not list appointments", err)
	}
	total, err := s.repo.CountByDoctor(ctx, id.ID)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.Internal, "could not count appointments", err)
	}
	return items, total, nil
}
