package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Dee126/DSAR-sub009/internal/domain"
	apperrors "github.com/Dee126/DSAR-sub009/pkg/util"
)

// HolidayRepository stores tenant-scoped non-working days.
type HolidayRepository interface {
	Create(ctx context.Context, holiday *domain.Holiday) error
	Delete(ctx context.Context, tenantID string, day time.Time) error
	ListByTenant(ctx context.Context, tenantID string) ([]domain.Holiday, error)
}

type holidayRepository struct {
	pool *pgxpool.Pool
}

// NewHolidayRepository builds the repository.
func NewHolidayRepository(pool *pgxpool.Pool) HolidayRepository {
	return &holidayRepository{pool: pool}
}

func (r *holidayRepository) Create(ctx context.Context, holiday *domain.Holiday) error {
	const query = `
        INSERT INTO holidays (tenant_id, day, name, locale)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query,
		holiday.TenantID,
		holiday.Day,
		holiday.Name,
		holiday.Locale,
	).Scan(&holiday.ID, &holiday.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewConflict("holiday already exists for date", map[string]any{"day": holiday.Day.Format("2006-01-02")})
		}
		return err
	}
	return nil
}

func (r *holidayRepository) Delete(ctx context.Context, tenantID string, day time.Time) error {
	const query = `DELETE FROM holidays WHERE tenant_id=$1 AND day=$2`
	cmd, err := r.pool.Exec(ctx, query, tenantID, day)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *holidayRepository) ListByTenant(ctx context.Context, tenantID string) ([]domain.Holiday, error) {
	const query = `
        SELECT id, tenant_id, day, name, locale, created_at
        FROM holidays WHERE tenant_id=$1 ORDER BY day ASC`
	rows, err := r.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Holiday
	for rows.Next() {
		var h domain.Holiday
		if err := rows.Scan(&h.ID, &h.TenantID, &h.Day, &h.Name, &h.Locale, &h.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, h)
	}
	return result, rows.Err()
}
