package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/maxviazov/diary-stats-service/internal/model"
	"github.com/maxviazov/diary-stats-service/internal/repository"
)

type profileService struct {
	profiles repository.ProfileRepository
	log      zerolog.Logger
}

func NewProfileService(profiles repository.ProfileRepository, logger zerolog.Logger) ProfileService {
	l := logger.With().Str("module", "service").Str("component", "profile").Logger()
	return &profileService{profiles: profiles, log: l}
}

func (s *profileService) SetProfileType(ctx context.Context, ownerID string, pt model.ProfileType) error {
	ownerID = normalizeOwnerID(ownerID)
	ferrs := checkOwnerID(ownerID)
	if pt != model.ProfilePlayer && pt != model.ProfileCoach {
		ferrs = append(ferrs, FieldError{Field: "profile_type", Message: "must be player or coach"})
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		return err
	}
	if err := s.profiles.SetProfileType(ctx, ownerID, pt); err != nil {
		return err
	}
	s.log.Info().Str("owner_id", ownerID).Str("profile_type", string(pt)).Msg("profile type set")
	return nil
}

// GetProfileType treats owners without a profile as players.
func (s *profileService) GetProfileType(ctx context.Context, ownerID string) (model.ProfileType, error) {
	ownerID = normalizeOwnerID(ownerID)
	if err := NewInvalidInputError(checkOwnerID(ownerID)); err != nil {
		return "", err
	}
	pt, err := s.profiles.GetProfileType(ctx, ownerID)
	if errors.Is(err, repository.ErrNotFound) {
		return model.ProfilePlayer, nil
	}
	return pt, err
}
