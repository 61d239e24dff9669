package diagnosis

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mediscan/mediscan/internal/platform/access"
	"github.com/mediscan/mediscan/internal/platform/apperr"
	"github.com/mediscan/mediscan/internal/platform/auth"
)

// HistoryLimit bounds the dashboard history query.
const HistoryLimit = 20

type Service struct {
	repo      Repository
	evaluator Evaluator
	log       zerolog.Logger
}

func NewService(repo Repository, evaluator Evaluator, log zerolog.Logger) *Service {
	return &Service{repo: repo, evaluator: evaluator, log: log}
}

// Submit evaluates a symptom narrative. When the caller is authenticated the
// result is persisted as an owned record; a nil identity is the guest preview
// path and the analysis is returned without persistence. Identical text
// submitted twice yields two independent evaluator calls and two records.
func (s *Service) Submit(ctx context.Context, id *auth.Identity, symptoms string) (*Diagnosis, error) {
	symptoms = strings.TrimSpace(symptoms)
	if symptoms == "" {
		return nil, apperr.New(apperr.Validation, "symptoms are required")
	}

	analysis, err := s.evaluator.Evaluate(ctx, symptoms)
	if err != nil {
		return nil, err
	}

	d := &Diagnosis{
		Symptoms: symptoms,
		Analysis: *analysis,
	}
	if id == nil {
		return d, nil
	}

	d.UserID = id.ID
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not save diagnosis", err)
	}
	return d, nil
}

// Get returns one diagnosis. The caller must own the record.
func (s *Service) Get(ctx context.Context, id *auth.Identity, diagnosisID uuid.UUID) (*Diagnosis, error) {
	if id == nil {
		return nil, apperr.New(apperr.Unauthenticated, "authentication required")
	}
	d, err := s.repo.GetByID(ctx, diagnosisID)
	if err != nil {
		return nil, err
	}
	if !access.CanReadDiagnosis(id, d.UserID) {
		return nil, apperr.New(apperr.Forbidden, "not your diagnosis")
	}
	return d, nil
}

// ListForUser returns the caller's diagnosis history, newest first, bounded
// to the most recent HistoryLimit records.
func (s *Service) ListForUser(ctx context.Context, id *auth.Identity) ([]*Diagnosis, error) {
	if id == nil {
		return nil, apperr.New(apperr.Unauthenticated, "authentication required")
	}
	items, err := s.repo.ListByUser(ctx, id.ID, HistoryLimit)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not list diagnoses", err)
	}
	return items, nil
}
