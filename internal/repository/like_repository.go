package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type LikeRepository struct {
	db *sql.DB
}

func NewLikeRepository(db *sql.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

func (r *LikeRepository) BeginTx(ctx context.Context) (*sql.Tx, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return tx, nil
}

func (r *LikeRepository) ExistsTx(ctx context.Context, tx *sql.Tx, userID, ownerID string) (bool, error) {
	var count int
	err := tx.QueryRowContext(
		ctx,
		`SELECT COUNT(1) FROM room_likes WHERE user_id = ? AND room_owner_id = ?`,
		userID,
		ownerID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check like: %w", err)
	}
	return count > 0, nil
}

func (r *LikeRepository) InsertTx(ctx context.Context, tx *sql.Tx, id, userID, ownerID string) error {
	_, err := tx.ExecContext(
		ctx,
		`INSERT INTO room_likes (id, user_id, room_owner_id, created_at)
		 VALUES (?, ?, ?, ?)`,
		id,
		userID,
		ownerID,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert like: %w", err)
	}
	return nil
}

func (r *LikeRepository) DeleteTx(ctx context.Context, tx *sql.Tx, userID, ownerID string) error {
	_, err := tx.ExecContext(
		ctx,
		`DELETE FROM room_likes WHERE user_id = ? AND room_owner_id = ?`,
		userID,
		ownerID,
	)
	if err != nil {
		return fmt.Errorf("delete like: %w", err)
	}
	return nil
}

// LikedOwnerIDs returns the room owners the user has liked.
func (r *LikeRepository) LikedOwnerIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT room_owner_id FROM room_likes WHERE user_id = ?`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list likes: %w", err)
	}
	defer rows.Close()

	liked := map[string]struct{}{}
	for rows.Next() {
		var ownerID string
		if err := rows.Scan(&ownerID); err != nil {
			return nil, fmt.Errorf("scan like: %w", err)
		}
		liked[ownerID] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate likes: %w", err)
	}
	return liked, nil
}
