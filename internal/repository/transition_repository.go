package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Dee126/DSAR-sub009/internal/domain"
)

// TransitionRepository reads the append-only status ledger. Writes happen
// inside the case repository transaction; nothing in this service ever
// mutates or deletes a ledger entry.
type TransitionRepository interface {
	ListByCase(ctx context.Context, caseID string) ([]domain.StateTransition, error)
}

type transitionRepository struct {
	pool *pgxpool.Pool
}

// NewTransitionRepository builds the repository.
func NewTransitionRepository(pool *pgxpool.Pool) TransitionRepository {
	return &transitionRepository{pool: pool}
}

func (r *transitionRepository) ListByCase(ctx context.Context, caseID string) ([]domain.StateTransition, error) {
	const query = `
        SELECT id, case_id, from_status, to_status, changed_by, reason, changed_at
        FROM state_transitions WHERE case_id=$1 ORDER BY changed_at ASC`
	rows, err := r.pool.Query(ctx, query, caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.StateTransition
	for rows.Next() {
		var tr domain.StateTransition
		if err := rows.Scan(
			&tr.ID,
			&tr.CaseID,
			&tr.FromStatus,
			&tr.ToStatus,
			&tr.ChangedBy,
			&tr.Reason,
			&tr.ChangedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, tr)
	}
	return result, rows.Err()
}
