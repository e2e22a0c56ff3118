package service

import (
	"context"

	"github.com/google/uuid"

	apperrors "focusroom/internal/errors"
	"focusroom/internal/model"
	"focusroom/internal/repository"
)

const socialPageSize = 20

type SocialService struct {
	profileRepo *repository.ProfileRepository
	roomRepo    *repository.RoomRepository
	likeRepo    *repository.LikeRepository
}

func NewSocialService(
	profileRepo *repository.ProfileRepository,
	roomRepo *repository.RoomRepository,
	likeRepo *repository.LikeRepository,
) *SocialService {
	return &SocialService{
		profileRepo: profileRepo,
		roomRepo:    roomRepo,
		likeRepo:    likeRepo,
	}
}

func (s *SocialService) Leaderboard(ctx context.Context, by string) ([]model.LeaderboardEntry, *apperrors.APIError) {
	byMinutes := by == "minutes"
	profiles, err := s.profileRepo.Leaderboard(ctx, byMinutes, socialPageSize)
	if err != nil {
		return nil, apperrors.Internal("failed to load leaderboard")
	}

	entries := make([]model.LeaderboardEntry, 0, len(profiles))
	for i, profile := range profiles {
		entries = append(entries, model.LeaderboardEntry{Rank: i + 1, Profile: profile})
	}
	return entries, nil
}

// PublicRooms lists public rooms ordered by likes received, with the
// viewer's like status when authenticated.
func (s *SocialService) PublicRooms(ctx context.Context, viewerID string) ([]model.PublicRoom, *apperrors.APIError) {
	profiles, err := s.profileRepo.PublicProfiles(ctx, socialPageSize)
	if err != nil {
		return nil, apperrors.Internal("failed to load public rooms")
	}

	liked := map[string]struct{}{}
	if viewerID != "" {
		liked, err = s.likeRepo.LikedOwnerIDs(ctx, viewerID)
		if err != nil {
			return nil, apperrors.Internal("failed to load likes")
		}
	}

	rooms := make([]model.PublicRoom, 0, len(profiles))
	for _, profile := range profiles {
		state, roomErr := s.roomRepo.Get(ctx, profile.UserID)
		if roomErr == repository.ErrNotFound {
			continue
		}
		if roomErr != nil {
			return nil, apperrors.Internal("failed to load rooms")
		}

		_, isLiked := liked[profile.UserID]
		rooms = append(rooms, model.PublicRoom{
			Profile:   profile,
			Room:      *state,
			IsLiked:   isLiked,
			LikeCount: profile.LikesReceived,
		})
	}
	return rooms, nil
}

// ToggleLike flips the viewer's like on a room owner and returns the new
// liked state.
func (s *SocialService) ToggleLike(ctx context.Context, viewerID, ownerID string) (bool, *apperrors.APIError) {
	if viewerID == ownerID {
		return false, apperrors.BadRequest("self_like", "cannot like your own room")
	}
	if _, err := s.profileRepo.Get(ctx, ownerID); err == repository.ErrNotFound {
		return false, apperrors.NotFound("profile_not_found", "room owner not found")
	} else if err != nil {
		return false, apperrors.Internal("failed to get room owner")
	}

	tx, err := s.likeRepo.BeginTx(ctx)
	if err != nil {
		return false, apperrors.Internal("failed to start transaction")
	}
	defer tx.Rollback()

	exists, err := s.likeRepo.ExistsTx(ctx, tx, viewerID, ownerID)
	if err != nil {
		return false, apperrors.Internal("failed to check like")
	}

	if exists {
		if err := s.likeRepo.DeleteTx(ctx, tx, viewerID, ownerID); err != nil {
			return false, apperrors.Internal("failed to remove like")
		}
		if err := s.profileRepo.AdjustLikesTx(ctx, tx, ownerID, -1); err != nil {
			return false, apperrors.Internal("failed to update like count")
		}
	} else {
		if err := s.likeRepo.InsertTx(ctx, tx, uuid.NewString(), viewerID, ownerID); err != nil {
			return false, apperrors.Internal("failed to add like")
		}
		if err := s.profileRepo.AdjustLikesTx(ctx, tx, ownerID, 1); err != nil {
			return false, apperrors.Internal("failed to update like count")
		}
	}

	if err := tx.Commit(); err != nil {
		return false, apperrors.Internal("failed to commit transaction")
	}
	return !exists, nil
}
