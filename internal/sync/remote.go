package sync

import (
	"context"
	"errors"

	"focusroom/internal/model"
)

// ErrNotFound marks a remote resource that has no row yet for this user.
var ErrNotFound = errors.New("remote resource not found")

// Remote is the cloud store the protocol reconciles against. All calls are
// row-level idempotent upserts or reads keyed by the authenticated user;
// none span resources.
type Remote interface {
	FetchProfile(ctx context.Context) (*model.Profile, error)
	UpdateCoins(ctx context.Context, coins int) error
	RecordSession(ctx context.Context, minutes int) error

	FetchRoom(ctx context.Context) (*model.RoomState, error)
	UpsertRoom(ctx context.Context, state model.RoomState) error

	FetchDailyStat(ctx context.Context, day string) (*model.DailyStat, error)
	UpsertDailyStat(ctx context.Context, stat model.DailyStat) error
}
