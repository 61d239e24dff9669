package diagnosis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mediscan/mediscan/internal/platform/apperr"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const diagCols = `id, user_id, symptoms, ai_analysis, created_at`

func scanDiagnosis(row pgx.Row) (*Diagnosis, error) {
	var d Diagnosis
	var analysisJSON []byte
	err := row.Scan(&d.ID, &d.UserID, &d.Symptoms, &analysisJSON, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(analysisJSON, &d.Analysis); err != nil {
		return nil, fmt.Errorf("decode ai_analysis: %w", err)
	}
	return &d, nil
}

func (r *repoPG) Create(ctx context.Context, d *Diagnosis) error {
	d.ID = uuid.New()
	analysisJSON, err := json.Marshal(d.Analysis)
	if err != nil {
		return fmt.Errorf("encode ai_analysis: %w", err)
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO diagnoses (id, user_id, symptoms, ai_analysis)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		d.ID, d.UserID, d.Symptoms, analysisJSON)
	return row.Scan(&d.CreatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Diagnosis, error) {
	d, err := scanDiagnosis(r.pool.QueryRow(ctx,
		`SELECT `+diagCols+` FROM diagnoses WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.New(apperr.NotFound, "diagnosis not found")
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *repoPG) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*Diagnosis, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+diagCols+` FROM diagnoses
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Diagnosis
	for rows.Next() {
		d, err := scanDiagnosis(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}
