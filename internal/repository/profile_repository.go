package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"focusroom/internal/model"
)

type ProfileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) BeginTx(ctx context.Context) (*sql.Tx, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return tx, nil
}

func (r *ProfileRepository) Create(ctx context.Context, profile *model.Profile) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO profiles (
			user_id, display_name, coins, total_pomodoros, total_focus_minutes,
			current_streak, longest_streak, last_pomodoro_date, is_room_public,
			likes_received, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		profile.UserID,
		profile.DisplayName,
		profile.Coins,
		profile.TotalPomodoros,
		profile.TotalFocusMinutes,
		profile.CurrentStreak,
		profile.LongestStreak,
		profile.LastPomodoroDate,
		boolToInt(profile.IsRoomPublic),
		profile.LikesReceived,
		profile.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

const profileColumns = `user_id, display_name, coins, total_pomodoros, total_focus_minutes,
	current_streak, longest_streak, last_pomodoro_date, is_room_public,
	likes_received, updated_at`

func (r *ProfileRepository) Get(ctx context.Context, userID string) (*model.Profile, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE user_id = ?`,
		userID,
	)
	return scanProfile(row)
}

func (r *ProfileRepository) GetTx(ctx context.Context, tx *sql.Tx, userID string) (*model.Profile, error) {
	row := tx.QueryRowContext(
		ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE user_id = ?`,
		userID,
	)
	return scanProfile(row)
}

func (r *ProfileRepository) UpdateTx(ctx context.Context, tx *sql.Tx, profile *model.Profile) error {
	_, err := tx.ExecContext(
		ctx,
		`UPDATE profiles
		 SET display_name = ?,
		     coins = ?,
			 total_pomodoros = ?,
			 total_focus_minutes = ?,
			 current_streak = ?,
			 longest_streak = ?,
			 last_pomodoro_date = ?,
			 is_room_public = ?,
			 likes_received = ?,
			 updated_at = ?
		 WHERE user_id = ?`,
		profile.DisplayName,
		profile.Coins,
		profile.TotalPomodoros,
		profile.TotalFocusMinutes,
		profile.CurrentStreak,
		profile.LongestStreak,
		profile.LastPomodoroDate,
		boolToInt(profile.IsRoomPublic),
		profile.LikesReceived,
		profile.UpdatedAt.UTC().Format(time.RFC3339Nano),
		profile.UserID,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) UpdateCoins(ctx context.Context, userID string, coins int) error {
	_, err := r.db.ExecContext(
		ctx,
		`UPDATE profiles SET coins = ?, updated_at = ? WHERE user_id = ?`,
		coins,
		time.Now().UTC().Format(time.RFC3339Nano),
		userID,
	)
	if err != nil {
		return fmt.Errorf("update coins: %w", err)
	}
	return nil
}

func (r *ProfileRepository) SetRoomPublic(ctx context.Context, userID string, public bool) error {
	_, err := r.db.ExecContext(
		ctx,
		`UPDATE profiles SET is_room_public = ?, updated_at = ? WHERE user_id = ?`,
		boolToInt(public),
		time.Now().UTC().Format(time.RFC3339Nano),
		userID,
	)
	if err != nil {
		return fmt.Errorf("set room public: %w", err)
	}
	return nil
}

func (r *ProfileRepository) AdjustLikesTx(ctx context.Context, tx *sql.Tx, ownerID string, delta int) error {
	_, err := tx.ExecContext(
		ctx,
		`UPDATE profiles
		 SET likes_received = MAX(0, likes_received + ?), updated_at = ?
		 WHERE user_id = ?`,
		delta,
		time.Now().UTC().Format(time.RFC3339Nano),
		ownerID,
	)
	if err != nil {
		return fmt.Errorf("adjust likes: %w", err)
	}
	return nil
}

// Leaderboard returns the top profiles ordered by total pomodoros or total
// focus minutes. byMinutes selects the ordering column; the query never
// interpolates caller input.
func (r *ProfileRepository) Leaderboard(ctx context.Context, byMinutes bool, limit int) ([]model.Profile, error) {
	orderColumn := "total_pomodoros"
	if byMinutes {
		orderColumn = "total_focus_minutes"
	}

	rows, err := r.db.QueryContext(
		ctx,
		`SELECT `+profileColumns+` FROM profiles
		 WHERE `+orderColumn+` > 0
		 ORDER BY `+orderColumn+` DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	defer rows.Close()

	return collectProfiles(rows)
}

func (r *ProfileRepository) PublicProfiles(ctx context.Context, limit int) ([]model.Profile, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT `+profileColumns+` FROM profiles
		 WHERE is_room_public = 1
		 ORDER BY likes_received DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("public profiles: %w", err)
	}
	defer rows.Close()

	return collectProfiles(rows)
}

func collectProfiles(rows *sql.Rows) ([]model.Profile, error) {
	profiles := []model.Profile{}
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}
	return profiles, nil
}

func scanProfile(s scanner) (*model.Profile, error) {
	var profile model.Profile
	var lastDate sql.NullString
	var isPublic int
	var updatedAt string

	err := s.Scan(
		&profile.UserID,
		&profile.DisplayName,
		&profile.Coins,
		&profile.TotalPomodoros,
		&profile.TotalFocusMinutes,
		&profile.CurrentStreak,
		&profile.LongestStreak,
		&lastDate,
		&isPublic,
		&profile.LikesReceived,
		&updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}

	if lastDate.Valid {
		profile.LastPomodoroDate = lastDate.String
	}
	profile.IsRoomPublic = isPublic != 0

	parsedUpdatedAt, parseErr := parseTime(updatedAt)
	if parseErr != nil {
		return nil, fmt.Errorf("parse profile updated_at: %w", parseErr)
	}
	profile.UpdatedAt = parsedUpdatedAt
	return &profile, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
