package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Dee126/DSAR-sub009/internal/domain"
)

// ActorRepository stores tenant-scoped staff logins.
type ActorRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Actor, error)
	GetByEmail(ctx context.Context, tenantID, email string) (*domain.Actor, error)
}

type actorRepository struct {
	pool *pgxpool.Pool
}

// NewActorRepository builds the repository.
func NewActorRepository(pool *pgxpool.Pool) ActorRepository {
	return &actorRepository{pool: pool}
}

const actorColumns = `id, tenant_id, email, display_name, role, password_hash, is_active, created_at, updated_at`

func (r *actorRepository) GetByID(ctx context.Context, id string) (*domain.Actor, error) {
	query := `SELECT ` + actorColumns + ` FROM actors WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *actorRepository) GetByEmail(ctx context.Context, tenantID, email string) (*domain.Actor, error) {
	query := `SELECT ` + actorColumns + ` FROM actors WHERE tenant_id=$1 AND email=$2`
	return r.fetchSingle(ctx, query, tenantID, email)
}

func (r *actorRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.Actor, error) {
	var actor domain.Actor
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&actor.ID,
		&actor.TenantID,
		&actor.Email,
		&actor.DisplayName,
		&actor.Role,
		&actor.PasswordHash,
		&actor.IsActive,
		&actor.CreatedAt,
		&actor.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &actor, nil
}
