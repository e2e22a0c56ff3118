package service

import (
	"context"

	apperrors "focusroom/internal/errors"
	"focusroom/internal/model"
	"focusroom/internal/repository"
)

type RoomService struct {
	roomRepo *repository.RoomRepository
}

func NewRoomService(roomRepo *repository.RoomRepository) *RoomService {
	return &RoomService{roomRepo: roomRepo}
}

func (s *RoomService) Get(ctx context.Context, userID string) (*model.RoomState, *apperrors.APIError) {
	state, err := s.roomRepo.Get(ctx, userID)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("room_not_found", "room not found")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to get room")
	}
	return state, nil
}

func (s *RoomService) Upsert(ctx context.Context, userID string, state model.RoomState) *apperrors.APIError {
	state.Theme = model.ValidateTheme(state.Theme)
	if state.OwnedItemIDs == nil {
		state.OwnedItemIDs = []string{}
	}
	if state.ActiveItemIDs == nil {
		state.ActiveItemIDs = []string{}
	}
	if state.ItemPositions == nil {
		state.ItemPositions = map[string][2]float64{}
	}

	if err := s.roomRepo.Upsert(ctx, userID, state); err != nil {
		return apperrors.Internal("failed to save room")
	}
	return nil
}
