package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Dee126/DSAR-sub009/internal/domain"
)

// TenantConfigRepository reads per-tenant SLA configuration. The engine never
// reads this directly; the service layer resolves config and passes it in as
// an explicit input.
type TenantConfigRepository interface {
	Get(ctx context.Context, tenantID string) (*domain.TenantSlaConfig, error)
}

type tenantConfigRepository struct {
	pool     *pgxpool.Pool
	defaults domain.TenantSlaConfig
}

// NewTenantConfigRepository builds the repository. Tenants without an explicit
// configuration row resolve to the supplied defaults.
func NewTenantConfigRepository(pool *pgxpool.Pool, defaults domain.TenantSlaConfig) TenantConfigRepository {
	return &tenantConfigRepository{pool: pool, defaults: defaults}
}

func (r *tenantConfigRepository) Get(ctx context.Context, tenantID string) (*domain.TenantSlaConfig, error) {
	const query = `
        SELECT tenant_id, base_sla_days, due_soon_threshold_days, calendar_policy
        FROM tenant_sla_configs WHERE tenant_id=$1`
	var cfg domain.TenantSlaConfig
	err := r.pool.QueryRow(ctx, query, tenantID).Scan(
		&cfg.TenantID,
		&cfg.BaseSlaDays,
		&cfg.DueSoonThresholdDays,
		&cfg.CalendarPolicy,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		fallback := r.defaults
		fallback.TenantID = tenantID
		return &fallback, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
