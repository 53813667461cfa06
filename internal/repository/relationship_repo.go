package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"companion-llm/internal/domain"
)

// RelationshipRepository lee relaciones; el alta vive en la capa de onboarding.
type RelationshipRepository interface {
	GetByID(ctx context.Context, id string) (domain.Relationship, error)
}

type PgRelationshipRepository struct {
	pool *pgxpool.Pool
}

func NewPgRelationshipRepository(pool *pgxpool.Pool) *PgRelationshipRepository {
	return &PgRelationshipRepository{pool: pool}
}

func (r *PgRelationshipRepository) GetByID(ctx context.Context, id string) (domain.Relationship, error) {
	const query = `
		SELECT id, user_id, role_type, COALESCE(ai_name, ''), created_at
		FROM relationships
		WHERE id = $1
	`
	var rel domain.Relationship
	var role string
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&rel.ID,
		&rel.UserID,
		&role,
		&rel.AIName,
		&rel.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Relationship{}, ErrNotFound
	}
	if err != nil {
		return domain.Relationship{}, err
	}
	rel.RoleType = domain.RoleType(role)
	return rel, nil
}
