package memory

import (
	"testing"

	"github.com/maxviazov/diary-stats-service/internal/repository"
	"github.com/maxviazov/diary-stats-service/internal/repository/contract"
)

func noop() {}

func TestActivityRepository_MemoryContract(t *testing.T) {
	contract.RunActivityRepositoryContract(t, func(t *testing.T) (repository.ActivityRepository, func()) {
		return New().Activities(), noop
	})
}

func TestSeasonRepository_MemoryContract(t *testing.T) {
	contract.RunSeasonRepositoryContract(t, func(t *testing.T) (repository.SeasonRepository, func()) {
		return New().Seasons(), noop
	})
}

func TestProfileRepository_MemoryContract(t *testing.T) {
	contract.RunProfileRepositoryContract(t, func(t *testing.T) (repository.ProfileRepository, func()) {
		return New().Profiles(), noop
	})
}

func TestTxManager_MemoryContract(t *testing.T) {
	contract.RunTxManagerContract(t, func(t *testing.T) (repository.TxManager, repository.SeasonRepository, func()) {
		s := New()
		return s.Tx(), s.Seasons(), noop
	})
}

func TestPinger_MemoryContract(t *testing.T) {
	contract.RunPingerContract(t, func(t *testing.T) (repository.Pinger, func()) {
		return New(), noop
	})
}
