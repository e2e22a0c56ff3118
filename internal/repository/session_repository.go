package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"focusroom/internal/model"
)

type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) InsertTx(ctx context.Context, tx *sql.Tx, session *model.SessionRecord) error {
	_, err := tx.ExecContext(
		ctx,
		`INSERT INTO focus_sessions (id, user_id, duration_minutes, completed_at)
		 VALUES (?, ?, ?, ?)`,
		session.ID,
		session.UserID,
		session.DurationMinutes,
		session.CompletedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *SessionRepository) List(ctx context.Context, userID string, limit int) ([]model.SessionRecord, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, user_id, duration_minutes, completed_at
		 FROM focus_sessions
		 WHERE user_id = ?
		 ORDER BY completed_at DESC
		 LIMIT ?`,
		userID,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]model.SessionRecord, 0, limit)
	for rows.Next() {
		var session model.SessionRecord
		var completedAt string
		if err := rows.Scan(&session.ID, &session.UserID, &session.DurationMinutes, &completedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		parsed, parseErr := parseTime(completedAt)
		if parseErr != nil {
			return nil, fmt.Errorf("parse session completed_at: %w", parseErr)
		}
		session.CompletedAt = parsed
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}
