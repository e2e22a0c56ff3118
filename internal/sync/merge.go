package sync

import (
	"context"
	"log"

	"focusroom/internal/engine"
	"focusroom/internal/model"
	"focusroom/internal/room"
	"focusroom/internal/stats"
)

// Merge reconciles local state with the cloud once per login. Each
// sub-resource is reconciled independently and best-effort: a failed step
// is logged and the next step still runs, so a mid-merge failure leaves a
// partially-synced but never corrupted state.
//
// Policies, in order:
//  1. Coins: max-wins in both directions. A larger local balance is pushed
//     up; otherwise the remote balance is pulled down.
//  2. Room: first sync pushes the local room as the initial remote copy.
//     When a remote row already exists it wins unconditionally, discarding
//     pre-login local edits.
//  3. Daily stats: per-day max-wins, push-up only. A remote day is never
//     pulled down to local, unlike the coin policy.
func Merge(ctx context.Context, remote Remote, eng *engine.Engine, rooms *room.Store, ledger *stats.Ledger) {
	mergeCoins(ctx, remote, eng)
	mergeRoom(ctx, remote, rooms)
	mergeStats(ctx, remote, ledger)
}

func mergeCoins(ctx context.Context, remote Remote, eng *engine.Engine) {
	profile, err := remote.FetchProfile(ctx)
	if err != nil {
		log.Printf("merge coins: %v", err)
		return
	}

	local := eng.Coins()
	if local > profile.Coins {
		if err := remote.UpdateCoins(ctx, local); err != nil {
			log.Printf("merge coins push: %v", err)
		}
		return
	}
	eng.SetCoins(profile.Coins)
}

func mergeRoom(ctx context.Context, remote Remote, rooms *room.Store) {
	remoteRoom, err := remote.FetchRoom(ctx)
	if err == ErrNotFound {
		if err := remote.UpsertRoom(ctx, rooms.Snapshot()); err != nil {
			log.Printf("merge room push: %v", err)
		}
		return
	}
	if err != nil {
		log.Printf("merge room: %v", err)
		return
	}
	rooms.Replace(*remoteRoom)
}

func mergeStats(ctx context.Context, remote Remote, ledger *stats.Ledger) {
	for day, record := range ledger.Records() {
		if record.Count == 0 {
			continue
		}

		existing, err := remote.FetchDailyStat(ctx, day)
		if err != nil && err != ErrNotFound {
			log.Printf("merge stats %s: %v", day, err)
			continue
		}
		if err == nil && existing.Count >= record.Count {
			continue
		}

		stat := model.DailyStat{Day: day, Count: record.Count, Minutes: record.Minutes}
		if err := remote.UpsertDailyStat(ctx, stat); err != nil {
			log.Printf("merge stats %s push: %v", day, err)
		}
	}
}
