// services/scheduler.go
package services

import (
	"log"
	"time"

	"minniemissions/store"

	"github.com/go-co-op/gocron/v2"
)

// MissionService fronts the mission catalog: queries, completion and the
// expiry sweep.
type MissionService struct {
	Store *store.Store
}

func NewMissionService(st *store.Store) *MissionService {
	return &MissionService{Store: st}
}

// CompleteMission credits a mission to a user. A non-nil error is one of
// the store sentinels (unknown ids, an inactive mission, or a repeat
// completion) and means nothing was credited.
func (s *MissionService) CompleteMission(userID, missionID string) error {
	err := s.Store.CompleteMission(userID, missionID)
	if err == nil {
		log.Printf("🏅 [MISSION] %s completed %s", userID, missionID)
	}
	return err
}

// StartExpiryScheduler sweeps the catalog every minute and flips active
// missions past their expiry to expired.
func (s *MissionService) StartExpiryScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			if n := s.Store.ExpireMissions(time.Now()); n > 0 {
				log.Printf("⏰ [Scheduler] expired %d mission(s)", n)
			}
		}),
	)
}
