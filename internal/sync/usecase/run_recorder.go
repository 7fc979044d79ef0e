package usecase

import (
	"log"
	"strings"
	"time"

	syncdomain "channelsync-backend/internal/sync/domain"
	"channelsync-backend/internal/sync/repository"
)

// RunRecorder is the best-effort audit side channel for scheduled runs.
// Implementations must never let a write failure escape: a failure to record
// an audit row is logged and swallowed, so it cannot abort or mask the sync
// outcome itself.
type RunRecorder interface {
	// StartRun creates a "running" CronLog and returns its id ("" on failure).
	StartRun(cadences []string) string
	// RecordFound stores how many mappings the run will process.
	RecordFound(runID string, found int)
	// CompleteEmpty finalizes a run that had no mappings to process.
	CompleteEmpty(runID string)
	// Finalize writes one child row per outcome, then the totals.
	Finalize(runID string, outcomes []MappingOutcome)
	// FailRun records a fatal error on the run.
	FailRun(runID string, runErr error)
}

// cronLogRecorder implements RunRecorder on top of the cron log repository.
type cronLogRecorder struct {
	repo repository.CronLogRepository
}

// NewRunRecorder creates a new cronLogRecorder
func NewRunRecorder(repo repository.CronLogRepository) RunRecorder {
	return &cronLogRecorder{repo: repo}
}

func (r *cronLogRecorder) StartRun(cadences []string) string {
	entry := &syncdomain.CronLog{
		StartedAt: time.Now(),
		Status:    syncdomain.CronLogRunning,
		Cadences:  strings.Join(cadences, ","),
	}
	if err := r.repo.Create(entry); err != nil {
		log.Printf("[CronLog] Failed to create run record: %v", err)
		return ""
	}
	return entry.ID
}

func (r *cronLogRecorder) RecordFound(runID string, found int) {
	if runID == "" {
		return
	}
	entry, ok := r.load(runID)
	if !ok {
		return
	}
	entry.MappingsFound = found
	if err := r.repo.Update(entry); err != nil {
		log.Printf("[CronLog] Failed to record mapping count: %v", err)
	}
}

func (r *cronLogRecorder) CompleteEmpty(runID string) {
	if runID == "" {
		return
	}
	entry, ok := r.load(runID)
	if !ok {
		return
	}
	now := time.Now()
	entry.CompletedAt = &now
	entry.Status = syncdomain.CronLogCompleted
	if err := r.repo.Update(entry); err != nil {
		log.Printf("[CronLog] Failed to complete empty run: %v", err)
	}
}

func (r *cronLogRecorder) Finalize(runID string, outcomes []MappingOutcome) {
	if runID == "" {
		return
	}

	executed, failed := 0, 0
	for _, outcome := range outcomes {
		status := syncdomain.CronLogMappingFailed
		switch {
		case outcome.Succeeded:
			status = syncdomain.CronLogMappingSuccess
			executed++
		case outcome.Skipped:
			status = syncdomain.CronLogMappingSkipped
		default:
			failed++
		}

		child := &syncdomain.CronLogMapping{
			CronLogID:    runID,
			MappingID:    outcome.MappingID,
			Status:       status,
			ErrorMessage: outcome.ErrorMessage,
		}
		if err := r.repo.CreateMappingEntry(child); err != nil {
			log.Printf("[CronLog] Failed to record mapping outcome for %s: %v", outcome.MappingID, err)
		}
	}

	entry, ok := r.load(runID)
	if !ok {
		return
	}
	now := time.Now()
	entry.CompletedAt = &now
	entry.Status = syncdomain.CronLogCompleted
	entry.MappingsExecuted = executed
	entry.MappingsFailed = failed
	if err := r.repo.Update(entry); err != nil {
		log.Printf("[CronLog] Failed to finalize run: %v", err)
	}
}

func (r *cronLogRecorder) FailRun(runID string, runErr error) {
	if runID == "" {
		return
	}
	entry, ok := r.load(runID)
	if !ok {
		return
	}
	now := time.Now()
	entry.CompletedAt = &now
	entry.Status = syncdomain.CronLogFailed
	entry.ErrorMessage = runErr.Error()
	if err := r.repo.Update(entry); err != nil {
		log.Printf("[CronLog] Failed to mark run as failed: %v", err)
	}
}

func (r *cronLogRecorder) load(runID string) (*syncdomain.CronLog, bool) {
	entry, err := r.repo.FindByID(runID)
	if err != nil {
		log.Printf("[CronLog] Failed to load run record %s: %v", runID, err)
		return nil, false
	}
	if entry == nil {
		log.Printf("[CronLog] Run record %s disappeared", runID)
		return nil, false
	}
	return entry, true
}
