package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "focusroom/internal/errors"
	"focusroom/internal/model"
	"focusroom/internal/repository"
)

type StatsService struct {
	profileRepo *repository.ProfileRepository
	statsRepo   *repository.StatsRepository
	sessionRepo *repository.SessionRepository
}

func NewStatsService(
	profileRepo *repository.ProfileRepository,
	statsRepo *repository.StatsRepository,
	sessionRepo *repository.SessionRepository,
) *StatsService {
	return &StatsService{
		profileRepo: profileRepo,
		statsRepo:   statsRepo,
		sessionRepo: sessionRepo,
	}
}

// RecordSession appends one completed focus session: a session row, the
// daily counter bump and the profile aggregates (totals, streak fields) in
// a single transaction.
func (s *StatsService) RecordSession(ctx context.Context, userID string, minutes int) (*model.Profile, *apperrors.APIError) {
	if minutes <= 0 {
		return nil, apperrors.BadRequest("invalid_duration", "durationMinutes must be positive")
	}

	now := time.Now().UTC()
	today := now.Format("2006-01-02")

	tx, err := s.profileRepo.BeginTx(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to start transaction")
	}
	defer tx.Rollback()

	profile, err := s.profileRepo.GetTx(ctx, tx, userID)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("profile_not_found", "profile not found")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to get profile")
	}

	session := model.SessionRecord{
		ID:              uuid.NewString(),
		UserID:          userID,
		DurationMinutes: minutes,
		CompletedAt:     now,
	}
	if err := s.sessionRepo.InsertTx(ctx, tx, &session); err != nil {
		return nil, apperrors.Internal("failed to record session")
	}

	if err := s.statsRepo.IncrementTx(ctx, tx, userID, today, minutes); err != nil {
		return nil, apperrors.Internal("failed to update daily stats")
	}

	profile.TotalPomodoros++
	profile.TotalFocusMinutes += minutes
	applyStreak(profile, today)
	profile.UpdatedAt = now

	if err := s.profileRepo.UpdateTx(ctx, tx, profile); err != nil {
		return nil, apperrors.Internal("failed to update profile")
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.Internal("failed to commit transaction")
	}
	return profile, nil
}

func (s *StatsService) GetDaily(ctx context.Context, userID, day string) (*model.DailyStat, *apperrors.APIError) {
	if !validDay(day) {
		return nil, apperrors.BadRequest("invalid_day", "day must be YYYY-MM-DD")
	}
	stat, err := s.statsRepo.Get(ctx, userID, day)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("stat_not_found", "no record for that day")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to get daily stat")
	}
	return stat, nil
}

// UpsertDaily applies a client-side day record with max-wins semantics: a
// remote day never shrinks, which keeps the login merge idempotent.
func (s *StatsService) UpsertDaily(ctx context.Context, userID string, stat model.DailyStat) (*model.DailyStat, *apperrors.APIError) {
	if !validDay(stat.Day) {
		return nil, apperrors.BadRequest("invalid_day", "day must be YYYY-MM-DD")
	}
	if stat.Count <= 0 || stat.Minutes < 0 {
		return nil, apperrors.BadRequest("invalid_stat", "count must be positive and minutes non-negative")
	}

	if err := s.statsRepo.UpsertMax(ctx, userID, stat); err != nil {
		return nil, apperrors.Internal("failed to upsert daily stat")
	}

	merged, err := s.statsRepo.Get(ctx, userID, stat.Day)
	if err != nil {
		return nil, apperrors.Internal("failed to read daily stat")
	}
	return merged, nil
}

func (s *StatsService) ListSessions(ctx context.Context, userID string, limit int) ([]model.SessionRecord, *apperrors.APIError) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	sessions, err := s.sessionRepo.List(ctx, userID, limit)
	if err != nil {
		return nil, apperrors.Internal("failed to list sessions")
	}
	return sessions, nil
}

func applyStreak(profile *model.Profile, today string) {
	switch profile.LastPomodoroDate {
	case today:
		// Streak already counted for today.
	case yesterdayOf(today):
		profile.CurrentStreak++
	default:
		profile.CurrentStreak = 1
	}
	if profile.CurrentStreak > profile.LongestStreak {
		profile.LongestStreak = profile.CurrentStreak
	}
	profile.LastPomodoroDate = today
}

func yesterdayOf(day string) string {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format("2006-01-02")
}

func validDay(day string) bool {
	_, err := time.Parse("2006-01-02", day)
	return err == nil
}
