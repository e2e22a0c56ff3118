package service

import (
	"context"

	apperrors "focusroom/internal/errors"
	"focusroom/internal/model"
	"focusroom/internal/repository"
)

type ProfileService struct {
	profileRepo *repository.ProfileRepository
}

func NewProfileService(profileRepo *repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*model.Profile, *apperrors.APIError) {
	profile, err := s.profileRepo.Get(ctx, userID)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("profile_not_found", "profile not found")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to get profile")
	}
	return profile, nil
}

func (s *ProfileService) UpdateCoins(ctx context.Context, userID string, coins int) *apperrors.APIError {
	if coins < 0 {
		return apperrors.BadRequest("invalid_coins", "coins must be non-negative")
	}
	if err := s.profileRepo.UpdateCoins(ctx, userID, coins); err != nil {
		return apperrors.Internal("failed to update coins")
	}
	return nil
}

func (s *ProfileService) SetRoomPublic(ctx context.Context, userID string, public bool) *apperrors.APIError {
	if err := s.profileRepo.SetRoomPublic(ctx, userID, public); err != nil {
		return apperrors.Internal("failed to update room visibility")
	}
	return nil
}
