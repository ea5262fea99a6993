// Package memory is an in-process implementation of the repository
// contracts. It backs service and handler tests and local runs without a
// database.
package memory

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/maxviazov/diary-stats-service/internal/model"
	"github.com/maxviazov/diary-stats-service/internal/repository"
)

// Store holds every table. The zero value is not usable; call New.
type Store struct {
	mu       sync.RWMutex
	records  map[uuid.UUID]model.ActivityRecord
	seasons  map[seasonKey]model.SeasonSummary
	profiles map[string]model.ProfileType
}

type seasonKey struct{ owner, season string }

func New() *Store {
	return &Store{
		records:  make(map[uuid.UUID]model.ActivityRecord),
		seasons:  make(map[seasonKey]model.SeasonSummary),
		profiles: make(map[string]model.ProfileType),
	}
}

// Activities, Seasons, Profiles and Tx return views over the same store.
func (s *Store) Activities() repository.ActivityRepository { return activities{s} }
func (s *Store) Seasons() repository.SeasonRepository      { return seasons{s} }
func (s *Store) Profiles() repository.ProfileRepository    { return profiles{s} }
func (s *Store) Tx() repository.TxManager                  { return txManager{s} }

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

type activities struct{ s *Store }

func (a activities) Create(_ context.Context, rec model.ActivityRecord) (model.ActivityRecord, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if _, dup := a.s.records[rec.ID]; dup {
		return model.ActivityRecord{}, repository.ErrAlreadyExists
	}
	a.s.records[rec.ID] = rec
	return rec, nil
}

func (a activities) ListByOwner(_ context.Context, ownerID string, w repository.Window, kinds ...model.ActivityKind) ([]model.ActivityRecord, error) {
	return a.filter(func(r model.ActivityRecord) bool {
		return r.OwnerID == ownerID && w.Contains(r.CreatedAt) && kindAllowed(r.Kind, kinds)
	}), nil
}

func (a activities) ListPopulation(_ context.Context, w repository.Window, kinds ...model.ActivityKind) ([]model.ActivityRecord, error) {
	return a.filter(func(r model.ActivityRecord) bool {
		return w.Contains(r.CreatedAt) && kindAllowed(r.Kind, kinds)
	}), nil
}

func (a activities) ListBySeason(_ context.Context, ownerID, season string) ([]model.ActivityRecord, error) {
	return a.filter(func(r model.ActivityRecord) bool {
		return r.OwnerID == ownerID && r.SeasonKey() == season
	}), nil
}

func (a activities) ListOwnersBySeason(_ context.Context, season string) ([]string, error) {
	seen := make(map[string]struct{})
	for _, r := range a.filter(func(r model.ActivityRecord) bool { return r.SeasonKey() == season }) {
		seen[r.OwnerID] = struct{}{}
	}
	return slices.Sorted(maps.Keys(seen)), nil
}

// filter returns matches ordered by CreatedAt, then ID, like the SQL queries.
func (a activities) filter(keep func(model.ActivityRecord) bool) []model.ActivityRecord {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	out := make([]model.ActivityRecord, 0)
	for _, r := range a.s.records {
		if keep(r) {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(x, y model.ActivityRecord) int {
		if c := cmp.Compare(x.CreatedAt, y.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(x.ID.String(), y.ID.String())
	})
	return out
}

func kindAllowed(k model.ActivityKind, kinds []model.ActivityKind) bool {
	return len(kinds) == 0 || slices.Contains(kinds, k)
}

type seasons struct{ s *Store }

func (r seasons) Upsert(_ context.Context, sum model.SeasonSummary) (model.SeasonSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.seasons[seasonKey{sum.OwnerID, sum.Season}] = sum
	return sum, nil
}

func (r seasons) ListByOwner(_ context.Context, ownerID string) ([]model.SeasonSummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]model.SeasonSummary, 0)
	for k, v := range r.s.seasons {
		if k.owner == ownerID {
			out = append(out, v)
		}
	}
	slices.SortFunc(out, func(a, b model.SeasonSummary) int { return cmp.Compare(a.Season, b.Season) })
	return out, nil
}

type profiles struct{ s *Store }

func (p profiles) GetProfileType(_ context.Context, ownerID string) (model.ProfileType, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	pt, ok := p.s.profiles[ownerID]
	if !ok {
		return "", repository.ErrNotFound
	}
	return pt, nil
}

func (p profiles) SetProfileType(_ context.Context, ownerID string, pt model.ProfileType) error {
	if pt != model.ProfilePlayer && pt != model.ProfileCoach {
		return repository.ErrConflict
	}
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	p.s.profiles[ownerID] = pt
	return nil
}

// txManager snapshots the store and restores it when fn fails. Writes are
// not isolated from concurrent readers.
type txManager struct{ s *Store }

func (m txManager) WithinTx(ctx context.Context, fn repository.TxFunc) error {
	m.s.mu.RLock()
	records, summaries, profs := maps.Clone(m.s.records), maps.Clone(m.s.seasons), maps.Clone(m.s.profiles)
	m.s.mu.RUnlock()

	if err := fn(ctx); err != nil {
		m.s.mu.Lock()
		m.s.records, m.s.seasons, m.s.profiles = records, summaries, profs
		m.s.mu.Unlock()
		return err
	}
	return nil
}

var (
	_ repository.ActivityRepository = activities{}
	_ repository.SeasonRepository   = seasons{}
	_ repository.ProfileRepository  = profiles{}
	_ repository.TxManager          = txManager{}
	_ repository.Pinger             = (*Store)(nil)
)
