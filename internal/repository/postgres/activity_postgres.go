package postgres

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/diary-stats-service/internal/model"
	"github.com/maxviazov/diary-stats-service/internal/repository"
)

// activityPayload is the JSONB body of a record; the discriminant and the
// filterable columns live outside it.
type activityPayload struct {
	Training *model.TrainingDetails `json:"training,omitempty"`
	Match    *model.MatchDetails    `json:"match,omitempty"`
}

const activityColumns = `id, owner_id, kind, created_at, season, payload`

type activityRepository struct{ pool *pgxpool.Pool }

func NewActivityRepository(pool *pgxpool.Pool) repository.ActivityRepository {
	return &activityRepository{pool: pool}
}

func (r *activityRepository) Create(ctx context.Context, rec model.ActivityRecord) (model.ActivityRecord, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.ActivityRecord{}, err
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	payload, err := json.Marshal(activityPayload{Training: rec.Training, Match: rec.Match})
	if err != nil {
		return model.ActivityRecord{}, fmt.Errorf("encode activity payload: %w", err)
	}

	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO activity_records (id, owner_id, kind, created_at, season, season_key, payload)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)
		 RETURNING `+activityColumns,
		rec.ID, rec.OwnerID, string(rec.Kind), rec.CreatedAt, rec.Season, rec.SeasonKey(), payload,
	)
	out, err := scanActivity(row)
	if err != nil {
		return model.ActivityRecord{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *activityRepository) ListByOwner(ctx context.Context, ownerID string, w repository.Window, kinds ...model.ActivityKind) ([]model.ActivityRecord, error) {
	return r.list(ctx,
		`SELECT `+activityColumns+` FROM activity_records
		 WHERE owner_id = $1 AND created_at BETWEEN $2 AND $3
		   AND (cardinality($4::text[]) = 0 OR kind = ANY($4::text[]))
		 ORDER BY created_at, id`,
		ownerID, w.From, w.To, kindStrings(kinds),
	)
}

func (r *activityRepository) ListPopulation(ctx context.Context, w repository.Window, kinds ...model.ActivityKind) ([]model.ActivityRecord, error) {
	return r.list(ctx,
		`SELECT `+activityColumns+` FROM activity_records
		 WHERE created_at BETWEEN $1 AND $2
		   AND (cardinality($3::text[]) = 0 OR kind = ANY($3::text[]))
		 ORDER BY created_at, id`,
		w.From, w.To, kindStrings(kinds),
	)
}

func (r *activityRepository) ListBySeason(ctx context.Context, ownerID, season string) ([]model.ActivityRecord, error) {
	return r.list(ctx,
		`SELECT `+activityColumns+` FROM activity_records
		 WHERE owner_id = $1 AND season_key = $2
		 ORDER BY created_at, id`,
		ownerID, season,
	)
}

func (r *activityRepository) ListOwnersBySeason(ctx context.Context, season string) ([]string, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	rows, err := getQ(ctx, r.pool).Query(ctx,
		`SELECT DISTINCT owner_id FROM activity_records WHERE season_key = $1 ORDER BY owner_id`, season,
	)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	owners, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	return owners, nil
}

func (r *activityRepository) list(ctx context.Context, sql string, args ...any) ([]model.ActivityRecord, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	rows, err := getQ(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()

	res := make([]model.ActivityRecord, 0, 32)
	for rows.Next() {
		rec, err := scanActivity(rows)
		if err != nil {
			return nil, repository.MapPgError(err)
		}
		res = append(res, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.MapPgError(err)
	}
	return res, nil
}

func scanActivity(row pgx.Row) (model.ActivityRecord, error) {
	var (
		rec     model.ActivityRecord
		kind    string
		payload []byte
	)
	if err := row.Scan(&rec.ID, &rec.OwnerID, &kind, &rec.CreatedAt, &rec.Season, &payload); err != nil {
		return model.ActivityRecord{}, err
	}
	rec.Kind = model.ActivityKind(kind)

	var body activityPayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &body); err != nil {
			return model.ActivityRecord{}, fmt.Errorf("decode activity payload %s: %w", rec.ID, err)
		}
	}
	rec.Training, rec.Match = body.Training, body.Match
	return rec, nil
}

func kindStrings(kinds []model.ActivityKind) []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}

var _ repository.ActivityRepository = (*activityRepository)(nil)
