package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/diary-stats-service/internal/repository"
	"github.com/maxviazov/diary-stats-service/internal/repository/contract"
)

var (
	pool   *pgxpool.Pool
	skippy bool
)

func TestMain(m *testing.M) {
	if os.Getenv("CONTRACT_TESTS") != "1" {
		skippy = true
		os.Exit(m.Run())
	}

	dsn := buildDSNFromEnv()
	if dsn == "" {
		fmt.Println("[contract] DATABASE_URL or APP_POSTGRES_* env not set; skipping")
		skippy = true
		os.Exit(m.Run())
	}

	ctx := context.Background()
	var err error
	pool, err = pgxpool.New(ctx, dsn)
	if err != nil {
		fmt.Println("[contract] pgxpool new error:", err)
		os.Exit(1)
	}
	if err := Migrate(ctx, pool); err != nil {
		fmt.Println("[contract] migrate error:", err)
		os.Exit(1)
	}

	code := m.Run()
	pool.Close()
	os.Exit(code)
}

func skipIfNeeded(t *testing.T) {
	if skippy {
		t.Skip("contract tests skipped; set CONTRACT_TESTS=1 and provide DB env")
	}
}

func buildDSNFromEnv() string {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return v
	}
	user := firstNonEmpty(os.Getenv("APP_POSTGRES_USER"), os.Getenv("POSTGRES_USER"))
	pass := firstNonEmpty(os.Getenv("APP_POSTGRES_PASSWORD"), os.Getenv("POSTGRES_PASSWORD"))
	host := firstNonEmpty(os.Getenv("APP_POSTGRES_HOST"), os.Getenv("POSTGRES_HOST"), "localhost")
	port := firstNonEmpty(os.Getenv("APP_POSTGRES_PORT"), os.Getenv("POSTGRES_PORT"), "5432")
	db := firstNonEmpty(os.Getenv("APP_POSTGRES_DB"), os.Getenv("POSTGRES_DB"))
	ssl := firstNonEmpty(os.Getenv("APP_POSTGRES_SSLMODE"), "disable")
	if user == "" || pass == "" || db == "" {
		return ""
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", user, pass, host, port, db, ssl)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func truncateAll(t *testing.T) {
	t.Helper()
	_, err := pool.Exec(context.Background(),
		"TRUNCATE TABLE activity_records, season_summaries, profiles")
	if err != nil {
		t.Fatalf("truncate failed: %v", err)
	}
}

func fresh(t *testing.T) func() {
	skipIfNeeded(t)
	truncateAll(t)
	return func() { truncateAll(t) }
}

func TestActivityRepository_PostgresContract(t *testing.T) {
	contract.RunActivityRepositoryContract(t, func(t *testing.T) (repository.ActivityRepository, func()) {
		cleanup := fresh(t)
		return NewActivityRepository(pool), cleanup
	})
}

func TestSeasonRepository_PostgresContract(t *testing.T) {
	contract.RunSeasonRepositoryContract(t, func(t *testing.T) (repository.SeasonRepository, func()) {
		cleanup := fresh(t)
		return NewSeasonRepository(pool), cleanup
	})
}

func TestProfileRepository_PostgresContract(t *testing.T) {
	contract.RunProfileRepositoryContract(t, func(t *testing.T) (repository.ProfileRepository, func()) {
		cleanup := fresh(t)
		return NewProfileRepository(pool), cleanup
	})
}

func TestTxManager_PostgresContract(t *testing.T) {
	contract.RunTxManagerContract(t, func(t *testing.T) (repository.TxManager, repository.SeasonRepository, func()) {
		cleanup := fresh(t)
		return NewTxManager(pool), NewSeasonRepository(pool), cleanup
	})
}

func TestPinger_PostgresContract(t *testing.T) {
	contract.RunPingerContract(t, func(t *testing.T) (repository.Pinger, func()) {
		skipIfNeeded(t)
		return NewPinger(pool), func() {}
	})
}

func TestEnsurePool(t *testing.T) {
	if err := ensurePool(nil); err == nil {
		t.Fatalf("expected error for nil pool")
	}
	if _, err := NewActivityRepository(nil).ListOwnersBySeason(context.Background(), "2024"); err == nil {
		t.Fatalf("expected error for nil pool")
	}
}

func TestKindStrings(t *testing.T) {
	got := kindStrings(nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}
