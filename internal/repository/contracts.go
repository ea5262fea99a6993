package repository

import (
	"context"

	"github.com/maxviazov/diary-stats-service/internal/model"
)

// Pinger represents a minimal readiness probe capability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
type TxFunc func(ctx context.Context) error

// TxManager abstracts transactional execution. Repositories pick up the
// transaction from the context passed to fn.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// ActivityRepository stores raw diary records. Listing methods return records
// ordered by CreatedAt, then ID. An empty kinds filter means every kind.
type ActivityRepository interface {
	Create(ctx context.Context, rec model.ActivityRecord) (model.ActivityRecord, error)
	ListByOwner(ctx context.Context, ownerID string, w Window, kinds ...model.ActivityKind) ([]model.ActivityRecord, error)
	// ListPopulation returns every owner's records in the window; used by
	// the average mode.
	ListPopulation(ctx context.Context, w Window, kinds ...model.ActivityKind) ([]model.ActivityRecord, error)
	// ListBySeason matches on the effective season, see model.ActivityRecord.SeasonKey.
	ListBySeason(ctx context.Context, ownerID, season string) ([]model.ActivityRecord, error)
	ListOwnersBySeason(ctx context.Context, season string) ([]string, error)
}

// SeasonRepository stores closed-season summaries, one per owner and season.
type SeasonRepository interface {
	Upsert(ctx context.Context, s model.SeasonSummary) (model.SeasonSummary, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.SeasonSummary, error)
}

// ProfileRepository knows whether an owner is a player or a coach.
type ProfileRepository interface {
	// GetProfileType returns ErrNotFound for owners without a profile row.
	GetProfileType(ctx context.Context, ownerID string) (model.ProfileType, error)
	SetProfileType(ctx context.Context, ownerID string, pt model.ProfileType) error
}
