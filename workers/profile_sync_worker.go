// workers/profile_sync_worker.go
package workers

import (
	"context"
	"log"
	"time"

	"minniemissions/services"
	"minniemissions/store"
)

// ProfileSyncWorker keeps the in-memory user roster in step with profile
// edits persisted in Postgres: a renamed profile shows its new display name
// on the leaderboard within one interval.
type ProfileSyncWorker struct {
	profiles *services.ProfileService
	store    *store.Store
	interval time.Duration
	lastSync time.Time
}

func NewProfileSyncWorker(profiles *services.ProfileService, st *store.Store) *ProfileSyncWorker {
	return &ProfileSyncWorker{
		profiles: profiles,
		store:    st,
		interval: 1 * time.Minute,
	}
}

func (w *ProfileSyncWorker) Start(ctx context.Context) {
	log.Println("🔁 Starting Profile Sync Worker (profiles → roster)…")
	go w.run(ctx)
}

func (w *ProfileSyncWorker) run(ctx context.Context) {
	// Backfill from the beginning of time, then go incremental.
	w.syncBatch()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.syncBatch()
		case <-ctx.Done():
			log.Println("⏹️ Profile Sync Worker stopped")
			return
		}
	}
}

func (w *ProfileSyncWorker) syncBatch() {
	since := w.lastSync
	now := time.Now().UTC()

	changed, err := w.profiles.ChangedSince(since)
	if err != nil {
		log.Printf("❌ [SYNC] failed to fetch changed profiles: %v", err)
		return
	}

	updated := 0
	for _, p := range changed {
		if p.DisplayName == "" {
			continue
		}
		if w.store.RenameUser(p.Address, p.DisplayName) {
			updated++
		}
	}
	if updated > 0 {
		log.Printf("[SYNC] ✅ applied %d profile name change(s) to roster", updated)
	}
	w.lastSync = now
}
