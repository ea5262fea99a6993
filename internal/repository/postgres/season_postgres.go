package postgres

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/diary-stats-service/internal/model"
	"github.com/maxviazov/diary-stats-service/internal/repository"
)

type seasonRepository struct{ pool *pgxpool.Pool }

func NewSeasonRepository(pool *pgxpool.Pool) repository.SeasonRepository {
	return &seasonRepository{pool: pool}
}

// Upsert replaces the stats of an already closed season, so closing twice
// is safe.
func (r *seasonRepository) Upsert(ctx context.Context, s model.SeasonSummary) (model.SeasonSummary, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.SeasonSummary{}, err
	}
	stats, err := json.Marshal(s.Stats)
	if err != nil {
		return model.SeasonSummary{}, fmt.Errorf("encode season stats: %w", err)
	}

	row := getQ(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO season_summaries (owner_id, season, stats)
		 VALUES ($1,$2,$3)
		 ON CONFLICT (owner_id, season)
		 DO UPDATE SET stats = EXCLUDED.stats, closed_at = NOW()
		 RETURNING owner_id, season, stats`,
		s.OwnerID, s.Season, stats,
	)
	var (
		out plainSummary
		raw []byte
	)
	if err := row.Scan(&out.OwnerID, &out.Season, &raw); err != nil {
		return model.SeasonSummary{}, repository.MapPgError(err)
	}
	return out.decode(raw)
}

// ListByOwner returns summaries ordered by season label.
func (r *seasonRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.SeasonSummary, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	rows, err := getQ(ctx, r.pool).Query(ctx,
		`SELECT owner_id, season, stats FROM season_summaries WHERE owner_id = $1 ORDER BY season`, ownerID,
	)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()

	res := make([]model.SeasonSummary, 0, 4)
	for rows.Next() {
		var (
			it  plainSummary
			raw []byte
		)
		if err := rows.Scan(&it.OwnerID, &it.Season, &raw); err != nil {
			return nil, repository.MapPgError(err)
		}
		s, err := it.decode(raw)
		if err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.MapPgError(err)
	}
	return res, nil
}

type plainSummary struct {
	OwnerID string
	Season  string
}

func (p plainSummary) decode(raw []byte) (model.SeasonSummary, error) {
	out := model.SeasonSummary{OwnerID: p.OwnerID, Season: p.Season}
	if err := json.Unmarshal(raw, &out.Stats); err != nil {
		return model.SeasonSummary{}, fmt.Errorf("decode season %s/%s: %w", p.OwnerID, p.Season, err)
	}
	return out, nil
}

var _ repository.SeasonRepository = (*seasonRepository)(nil)
