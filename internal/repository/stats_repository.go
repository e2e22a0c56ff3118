package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"focusroom/internal/model"
)

type StatsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) Get(ctx context.Context, userID, day string) (*model.DailyStat, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT day, count, minutes FROM daily_stats WHERE user_id = ? AND day = ?`,
		userID,
		day,
	)

	var stat model.DailyStat
	if err := row.Scan(&stat.Day, &stat.Count, &stat.Minutes); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get daily stat: %w", err)
	}
	return &stat, nil
}

// UpsertMax writes the stat only when the incoming count is higher than the
// stored one, so the per-day merge can never shrink a remote day and the
// call is idempotent.
func (r *StatsRepository) UpsertMax(ctx context.Context, userID string, stat model.DailyStat) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO daily_stats (user_id, day, count, minutes, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(user_id, day) DO UPDATE SET
			count = excluded.count,
			minutes = excluded.minutes,
			updated_at = excluded.updated_at
		 WHERE excluded.count > daily_stats.count`,
		userID,
		stat.Day,
		stat.Count,
		stat.Minutes,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert daily stat: %w", err)
	}
	return nil
}

// IncrementTx bumps a day by one completed session as part of a session
// recording transaction.
func (r *StatsRepository) IncrementTx(ctx context.Context, tx *sql.Tx, userID, day string, minutes int) error {
	_, err := tx.ExecContext(
		ctx,
		`INSERT INTO daily_stats (user_id, day, count, minutes, updated_at)
		 VALUES (?, ?, 1, ?, ?)
		 ON CONFLICT(user_id, day) DO UPDATE SET
			count = daily_stats.count + 1,
			minutes = daily_stats.minutes + excluded.minutes,
			updated_at = excluded.updated_at`,
		userID,
		day,
		minutes,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("increment daily stat: %w", err)
	}
	return nil
}
