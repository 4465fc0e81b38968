// workers/meetup_status_worker.go
package workers

import (
	"context"
	"log"
	"time"

	"minniemissions/models"
	"minniemissions/store"
)

// PollMeetupStatuses advances meetup lifecycles by date: upcoming meetups
// become active on their day, active ones complete once the day has passed.
// Staking never transitions status; only this sweep and manual action do.
func PollMeetupStatuses(ctx context.Context, st *store.Store, pollInterval time.Duration) {
	log.Println("Starting meetup status polling…")

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	sweep(st, time.Now())
	for {
		select {
		case <-ctx.Done():
			log.Println("Meetup status polling stopped.")
			return
		case <-ticker.C:
			sweep(st, time.Now())
		}
	}
}

func sweep(st *store.Store, now time.Time) {
	today := now.Format("2006-01-02")

	for _, m := range st.Meetups() {
		var next models.MeetupStatus
		switch {
		case m.Status == models.MeetupStatusUpcoming && m.Date <= today:
			next = models.MeetupStatusActive
		case m.Status == models.MeetupStatusActive && m.Date < today:
			next = models.MeetupStatusCompleted
		default:
			continue
		}
		if err := st.SetMeetupStatus(m.ID, next); err != nil {
			log.Printf("❌ Failed to transition meetup %s → %s: %v", m.ID, next, err)
		} else {
			log.Printf("✅ Meetup %q → %s", m.Title, next)
		}
	}
}
