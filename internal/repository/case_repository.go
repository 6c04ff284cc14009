package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Dee126/DSAR-sub009/internal/domain"
	apperrors "github.com/Dee126/DSAR-sub009/pkg/util"
)

// CaseFilter captures listing parameters.
type CaseFilter struct {
	Statuses   []domain.CaseStatus
	Types      []domain.CaseType
	Priorities []domain.CasePriority
	Limit      int
	Offset     int
}

// CaseRepository encapsulates case and deadline persistence. The
// status/deadline/ledger triple for a transition is applied as one
// transactional unit guarded by an optimistic version check.
type CaseRepository interface {
	Create(ctx context.Context, cs *domain.Case, dl *domain.Deadline) error
	GetWithDeadline(ctx context.Context, tenantID, caseID string) (*domain.Case, *domain.Deadline, error)
	ApplyMutation(ctx context.Context, cs *domain.Case, dl *domain.Deadline, record *domain.StateTransition) error
	List(ctx context.Context, tenantID string, filter CaseFilter) ([]domain.CaseWithDeadline, error)
	ListWithDeadlines(ctx context.Context, tenantID string) ([]domain.CaseWithDeadline, error)
}

type caseRepository struct {
	pool *pgxpool.Pool
}

// NewCaseRepository instantiates the repository.
func NewCaseRepository(pool *pgxpool.Pool) CaseRepository {
	return &caseRepository{pool: pool}
}

func (r *caseRepository) Create(ctx context.Context, cs *domain.Case, dl *domain.Deadline) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const caseQuery = `
        INSERT INTO cases (tenant_id, case_number, case_type, priority, status, subject_ref, received_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at, version`
	if err := tx.QueryRow(ctx, caseQuery,
		cs.TenantID,
		cs.CaseNumber,
		cs.Type,
		cs.Priority,
		cs.Status,
		cs.SubjectRef,
		cs.ReceivedAt,
	).Scan(&cs.ID, &cs.CreatedAt, &cs.UpdatedAt, &cs.Version); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewConflict("case number already exists", map[string]any{"case_number": cs.CaseNumber})
		}
		return err
	}

	dl.CaseID = cs.ID
	const deadlineQuery = `
        INSERT INTO deadlines (case_id, base_due_at, extension_days, total_paused_days, paused_at, effective_due_at, current_risk, days_remaining, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`
	if _, err := tx.Exec(ctx, deadlineQuery,
		dl.CaseID,
		dl.BaseDueAt,
		dl.ExtensionDays,
		dl.TotalPausedDays,
		dl.PausedAt,
		dl.EffectiveDueAt,
		dl.CurrentRisk,
		dl.DaysRemaining,
		dl.UpdatedAt,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *caseRepository) GetWithDeadline(ctx context.Context, tenantID, caseID string) (*domain.Case, *domain.Deadline, error) {
	const query = `
        SELECT c.id, c.tenant_id, c.case_number, c.case_type, c.priority, c.status, c.subject_ref,
               c.received_at, c.created_at, c.updated_at, c.version,
               d.base_due_at, d.extension_days, d.total_paused_days, d.paused_at,
               d.effective_due_at, d.current_risk, d.days_remaining, d.updated_at
        FROM cases c
        JOIN deadlines d ON d.case_id = c.id
        WHERE c.tenant_id=$1 AND c.id=$2`

	var cs domain.Case
	var dl domain.Deadline
	if err := r.pool.QueryRow(ctx, query, tenantID, caseID).Scan(
		&cs.ID, &cs.TenantID, &cs.CaseNumber, &cs.Type, &cs.Priority, &cs.Status, &cs.SubjectRef,
		&cs.ReceivedAt, &cs.CreatedAt, &cs.UpdatedAt, &cs.Version,
		&dl.BaseDueAt, &dl.ExtensionDays, &dl.TotalPausedDays, &dl.PausedAt,
		&dl.EffectiveDueAt, &dl.CurrentRisk, &dl.DaysRemaining, &dl.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("case", map[string]any{"case_id": caseID})
		}
		return nil, nil, err
	}
	dl.CaseID = cs.ID
	return &cs, &dl, nil
}

// ApplyMutation persists status, deadline fields and the optional transition
// record as one transaction. cs.Version must hold the version the caller read;
// a zero-row update means a concurrent writer won and the whole unit is
// rolled back with CONCURRENT_MODIFICATION.
func (r *caseRepository) ApplyMutation(ctx context.Context, cs *domain.Case, dl *domain.Deadline, record *domain.StateTransition) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const caseQuery = `
        UPDATE cases SET status=$1, updated_at=$2, version=version+1
        WHERE id=$3 AND tenant_id=$4 AND version=$5`
	cmd, err := tx.Exec(ctx, caseQuery, cs.Status, cs.UpdatedAt, cs.ID, cs.TenantID, cs.Version)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.NewConcurrentModification("case")
	}

	const deadlineQuery = `
        UPDATE deadlines SET base_due_at=$1, extension_days=$2, total_paused_days=$3, paused_at=$4,
            effective_due_at=$5, current_risk=$6, days_remaining=$7, updated_at=$8
        WHERE case_id=$9`
	if _, err := tx.Exec(ctx, deadlineQuery,
		dl.BaseDueAt,
		dl.ExtensionDays,
		dl.TotalPausedDays,
		dl.PausedAt,
		dl.EffectiveDueAt,
		dl.CurrentRisk,
		dl.DaysRemaining,
		dl.UpdatedAt,
		cs.ID,
	); err != nil {
		return err
	}

	if record != nil {
		const recordQuery = `
            INSERT INTO state_transitions (case_id, from_status, to_status, changed_by, reason, changed_at)
            VALUES ($1,$2,$3,$4,$5,$6)
            RETURNING id`
		if err := tx.QueryRow(ctx, recordQuery,
			record.CaseID,
			record.FromStatus,
			record.ToStatus,
			record.ChangedBy,
			record.Reason,
			record.ChangedAt,
		).Scan(&record.ID); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	cs.Version++
	return nil
}

func (r *caseRepository) List(ctx context.Context, tenantID string, filter CaseFilter) ([]domain.CaseWithDeadline, error) {
	base := `SELECT c.id, c.tenant_id, c.case_number, c.case_type, c.priority, c.status, c.subject_ref,
                    c.received_at, c.created_at, c.updated_at, c.version,
                    d.base_due_at, d.extension_days, d.total_paused_days, d.paused_at,
                    d.effective_due_at, d.current_risk, d.days_remaining, d.updated_at
             FROM cases c
             LEFT JOIN deadlines d ON d.case_id = c.id`
	clauses := []string{"c.tenant_id=$1"}
	args := []any{tenantID}

	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("c.status IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Types) > 0 {
		placeholders := make([]string, len(filter.Types))
		for i, t := range filter.Types {
			args = append(args, t)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("c.case_type IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Priorities) > 0 {
		placeholders := make([]string, len(filter.Priorities))
		for i, p := range filter.Priorities {
			args = append(args, p)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("c.priority IN (%s)", strings.Join(placeholders, ",")))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY c.received_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCasePairs(rows)
}

func (r *caseRepository) ListWithDeadlines(ctx context.Context, tenantID string) ([]domain.CaseWithDeadline, error) {
	const query = `
        SELECT c.id, c.tenant_id, c.case_number, c.case_type, c.priority, c.status, c.subject_ref,
               c.received_at, c.created_at, c.updated_at, c.version,
               d.base_due_at, d.extension_days, d.total_paused_days, d.paused_at,
               d.effective_due_at, d.current_risk, d.days_remaining, d.updated_at
        FROM cases c
        LEFT JOIN deadlines d ON d.case_id = c.id
        WHERE c.tenant_id=$1
        ORDER BY c.received_at ASC`
	rows, err := r.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCasePairs(rows)
}

func scanCasePairs(rows pgx.Rows) ([]domain.CaseWithDeadline, error) {
	var result []domain.CaseWithDeadline
	for rows.Next() {
		var cs domain.Case
		var baseDueAt, effectiveDueAt, dlUpdatedAt *time.Time
		var extensionDays, totalPausedDays, daysRemaining *int
		var pausedAt *time.Time
		var risk *domain.RiskLevel
		if err := rows.Scan(
			&cs.ID, &cs.TenantID, &cs.CaseNumber, &cs.Type, &cs.Priority, &cs.Status, &cs.SubjectRef,
			&cs.ReceivedAt, &cs.CreatedAt, &cs.UpdatedAt, &cs.Version,
			&baseDueAt, &extensionDays, &totalPausedDays, &pausedAt,
			&effectiveDueAt, &risk, &daysRemaining, &dlUpdatedAt,
		); err != nil {
			return nil, err
		}
		pair := domain.CaseWithDeadline{Case: cs}
		if baseDueAt != nil {
			pair.Deadline = &domain.Deadline{
				CaseID:          cs.ID,
				BaseDueAt:       *baseDueAt,
				ExtensionDays:   derefInt(extensionDays),
				TotalPausedDays: derefInt(totalPausedDays),
				PausedAt:        pausedAt,
				EffectiveDueAt:  derefTime(effectiveDueAt),
				CurrentRisk:     derefRisk(risk),
				DaysRemaining:   derefInt(daysRemaining),
				UpdatedAt:       derefTime(dlUpdatedAt),
			}
		}
		result = append(result, pair)
	}
	return result, rows.Err()
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func derefTime(v *time.Time) time.Time {
	if v == nil {
		return time.Time{}
	}
	return *v
}

func derefRisk(v *domain.RiskLevel) domain.RiskLevel {
	if v == nil {
		return domain.RiskGreen
	}
	return *v
}
