package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/diary-stats-service/internal/model"
	"github.com/maxviazov/diary-stats-service/internal/repository"
)

type profileRepository struct{ pool *pgxpool.Pool }

func NewProfileRepository(pool *pgxpool.Pool) repository.ProfileRepository {
	return &profileRepository{pool: pool}
}

func (r *profileRepository) GetProfileType(ctx context.Context, ownerID string) (model.ProfileType, error) {
	if err := ensurePool(r.pool); err != nil {
		return "", err
	}
	var pt string
	err := getQ(ctx, r.pool).QueryRow(ctx,
		`SELECT profile_type FROM profiles WHERE owner_id = $1`, ownerID,
	).Scan(&pt)
	if err != nil {
		return "", repository.MapPgError(err)
	}
	return model.ProfileType(pt), nil
}

func (r *profileRepository) SetProfileType(ctx context.Context, ownerID string, pt model.ProfileType) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	_, err := getQ(ctx, r.pool).Exec(ctx,
		`INSERT INTO profiles (owner_id, profile_type) VALUES ($1,$2)
		 ON CONFLICT (owner_id) DO UPDATE SET profile_type = EXCLUDED.profile_type, updated_at = NOW()`,
		ownerID, string(pt),
	)
	return repository.MapPgError(err)
}

var _ repository.ProfileRepository = (*profileRepository)(nil)
