package scheduler

import (
	"context"
	"log"
	"time"

	"channelsync-backend/internal/sync/usecase"
)

// SyncScheduler fires the scheduled sync once per day at a fixed UTC time,
// for deployments without an external cron hitting the trigger endpoint.
type SyncScheduler struct {
	syncUsecase usecase.SyncUsecase
	at          string // "HH:MM" UTC
	stopChan    chan struct{}
}

// NewSyncScheduler creates a new scheduler
func NewSyncScheduler(syncUsecase usecase.SyncUsecase, at string) *SyncScheduler {
	return &SyncScheduler{
		syncUsecase: syncUsecase,
		at:          at,
		stopChan:    make(chan struct{}),
	}
}

// nextFiring returns the next occurrence of the configured time of day.
func (s *SyncScheduler) nextFiring(now time.Time) time.Time {
	at, err := time.Parse("15:04", s.at)
	if err != nil {
		log.Printf("[SyncScheduler] Invalid schedule time %q, defaulting to 07:00", s.at)
		at, _ = time.Parse("15:04", "07:00")
	}

	next := time.Date(now.Year(), now.Month(), now.Day(), at.Hour(), at.Minute(), 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Start begins the scheduler loop
func (s *SyncScheduler) Start() {
	log.Printf("[SyncScheduler] Starting daily sync scheduler (at %s UTC)", s.at)

	go func() {
		for {
			next := s.nextFiring(time.Now().UTC())
			timer := time.NewTimer(time.Until(next))

			select {
			case <-timer.C:
				result, err := s.syncUsecase.RunScheduled(context.Background(), time.Now())
				if err != nil {
					log.Printf("[SyncScheduler] Scheduled run failed: %v", err)
				} else {
					log.Printf("[SyncScheduler] %s", result.Message)
				}
			case <-s.stopChan:
				timer.Stop()
				log.Println("[SyncScheduler] Scheduler stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the scheduler
func (s *SyncScheduler) Stop() {
	close(s.stopChan)
}
