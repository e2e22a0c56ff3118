package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"focusroom/internal/model"
)

type RoomRepository struct {
	db *sql.DB
}

func NewRoomRepository(db *sql.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Get(ctx context.Context, userID string) (*model.RoomState, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT theme, owned_item_ids, active_item_ids, item_positions
		 FROM user_rooms WHERE user_id = ?`,
		userID,
	)

	var state model.RoomState
	var owned, active, positions string
	if err := row.Scan(&state.Theme, &owned, &active, &positions); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get room: %w", err)
	}

	if err := json.Unmarshal([]byte(owned), &state.OwnedItemIDs); err != nil {
		return nil, fmt.Errorf("decode owned items: %w", err)
	}
	if err := json.Unmarshal([]byte(active), &state.ActiveItemIDs); err != nil {
		return nil, fmt.Errorf("decode active items: %w", err)
	}
	if err := json.Unmarshal([]byte(positions), &state.ItemPositions); err != nil {
		return nil, fmt.Errorf("decode item positions: %w", err)
	}
	return &state, nil
}

func (r *RoomRepository) Upsert(ctx context.Context, userID string, state model.RoomState) error {
	owned, err := json.Marshal(state.OwnedItemIDs)
	if err != nil {
		return fmt.Errorf("encode owned items: %w", err)
	}
	active, err := json.Marshal(state.ActiveItemIDs)
	if err != nil {
		return fmt.Errorf("encode active items: %w", err)
	}
	positions, err := json.Marshal(state.ItemPositions)
	if err != nil {
		return fmt.Errorf("encode item positions: %w", err)
	}

	_, err = r.db.ExecContext(
		ctx,
		`INSERT INTO user_rooms (user_id, theme, owned_item_ids, active_item_ids, item_positions, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			theme = excluded.theme,
			owned_item_ids = excluded.owned_item_ids,
			active_item_ids = excluded.active_item_ids,
			item_positions = excluded.item_positions,
			updated_at = excluded.updated_at`,
		userID,
		state.Theme,
		string(owned),
		string(active),
		string(positions),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert room: %w", err)
	}
	return nil
}
