package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	authrepo "channelsync-backend/internal/auth/repository"
	mappingdomain "channelsync-backend/internal/mapping/domain"
	mappingrepo "channelsync-backend/internal/mapping/repository"
	promptrepo "channelsync-backend/internal/prompt/repository"
	"channelsync-backend/internal/sync/cadence"
	syncdomain "channelsync-backend/internal/sync/domain"
	syncrepo "channelsync-backend/internal/sync/repository"
)

// interMappingDelay bounds outbound API pressure: mappings are processed
// strictly sequentially with a fixed pause between them.
const interMappingDelay = 2 * time.Second

// RunResult is the response body of a sync invocation.
type RunResult struct {
	Message string          `json:"message"`
	Results []ChannelResult `json:"results"`
}

var ErrSyncMappingNotFound = fmt.Errorf("mapping not found")

// SyncUsecase drives scheduled and manual sync runs
type SyncUsecase interface {
	// RunScheduled evaluates the cadence policy for now and processes every
	// due mapping, recording the run in the cron log.
	RunScheduled(ctx context.Context, now time.Time) (*RunResult, error)
	// RunManual processes one mapping (or all of them when mappingID is
	// empty) regardless of cadence. In test mode no note is written and
	// LastSyncedAt is left untouched.
	RunManual(ctx context.Context, mappingID string, testMode bool) (*RunResult, error)
	ListCronLogs(limit, offset int) ([]*syncdomain.CronLog, int64, error)
}

// syncUsecase implements SyncUsecase interface
type syncUsecase struct {
	orchestrator *Orchestrator
	recorder     RunRecorder
	mappingRepo  mappingrepo.MappingRepository
	promptRepo   promptrepo.PromptRepository
	userRepo     authrepo.UserRepository
	cronLogRepo  syncrepo.CronLogRepository

	// delay is overridable in tests
	delay time.Duration
}

// NewSyncUsecase creates a new instance of syncUsecase
func NewSyncUsecase(
	orchestrator *Orchestrator,
	recorder RunRecorder,
	mappingRepo mappingrepo.MappingRepository,
	promptRepo promptrepo.PromptRepository,
	userRepo authrepo.UserRepository,
	cronLogRepo syncrepo.CronLogRepository,
) SyncUsecase {
	return &syncUsecase{
		orchestrator: orchestrator,
		recorder:     recorder,
		mappingRepo:  mappingRepo,
		promptRepo:   promptRepo,
		userRepo:     userRepo,
		cronLogRepo:  cronLogRepo,
		delay:        interMappingDelay,
	}
}

// loadContext gathers the shared inputs of a run: the active prompt content
// and the Slack-user-id to display-name map. Both are optional; failures are
// logged and degrade gracefully.
func (u *syncUsecase) loadContext() (string, map[string]string) {
	instruction := ""
	if prompt, err := u.promptRepo.FindActive(); err != nil {
		log.Printf("[Sync] Failed to load active prompt: %v", err)
	} else if prompt != nil {
		instruction = prompt.Content
	}

	userNames := make(map[string]string)
	users, err := u.userRepo.FindAllSlackLinked()
	if err != nil {
		log.Printf("[Sync] Failed to load slack-linked users: %v", err)
	}
	for _, user := range users {
		if user.SlackID == nil {
			continue
		}
		name := user.FirstName
		if user.LastName != "" {
			if name != "" {
				name += " "
			}
			name += user.LastName
		}
		if name != "" {
			userNames[*user.SlackID] = name
		}
	}

	return instruction, userNames
}

func (u *syncUsecase) RunScheduled(ctx context.Context, now time.Time) (*RunResult, error) {
	eval := cadence.Evaluate(now)
	runID := u.recorder.StartRun(eval.Cadences)

	if !eval.ShouldSync {
		u.recorder.CompleteEmpty(runID)
		return &RunResult{Message: "No sync scheduled for today"}, nil
	}

	mappings, err := u.mappingRepo.FindByCadences(eval.Cadences)
	if err != nil {
		u.recorder.FailRun(runID, err)
		return nil, err
	}
	u.recorder.RecordFound(runID, len(mappings))

	if len(mappings) == 0 {
		u.recorder.CompleteEmpty(runID)
		return &RunResult{Message: fmt.Sprintf("No mappings due for cadences %v", eval.Cadences)}, nil
	}

	instruction, userNames := u.loadContext()

	var outcomes []MappingOutcome
	var results []ChannelResult
	for i, mapping := range mappings {
		if i > 0 {
			select {
			case <-time.After(u.delay):
			case <-ctx.Done():
				err := ctx.Err()
				u.recorder.FailRun(runID, err)
				return nil, err
			}
		}

		outcome := u.orchestrator.ProcessMapping(ctx, mapping, instruction, userNames, false)
		u.stampIfSynced(mapping.ID, outcome)
		outcomes = append(outcomes, outcome)
		results = append(results, outcome.Results...)
	}

	u.recorder.Finalize(runID, outcomes)

	return &RunResult{
		Message: fmt.Sprintf("Processed %d mapping(s) for cadences %v", len(mappings), eval.Cadences),
		Results: results,
	}, nil
}

func (u *syncUsecase) RunManual(ctx context.Context, mappingID string, testMode bool) (*RunResult, error) {
	var mappings []*mappingdomain.Mapping
	if mappingID != "" {
		mapping, err := u.mappingRepo.FindByID(mappingID)
		if err != nil {
			return nil, err
		}
		if mapping == nil {
			return nil, ErrSyncMappingNotFound
		}
		mappings = append(mappings, mapping)
	} else {
		all, _, err := u.mappingRepo.FindAll(1000, 0)
		if err != nil {
			return nil, err
		}
		mappings = all
	}

	instruction, userNames := u.loadContext()

	var results []ChannelResult
	for i, mapping := range mappings {
		if i > 0 {
			select {
			case <-time.After(u.delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		outcome := u.orchestrator.ProcessMapping(ctx, mapping, instruction, userNames, testMode)
		if !testMode {
			u.stampIfSynced(mapping.ID, outcome)
		}
		results = append(results, outcome.Results...)
	}

	message := fmt.Sprintf("Processed %d mapping(s)", len(mappings))
	if testMode {
		message = fmt.Sprintf("Test run over %d mapping(s), nothing was written", len(mappings))
	}
	return &RunResult{Message: message, Results: results}, nil
}

// stampIfSynced updates LastSyncedAt when at least one channel synced.
// A stamp failure is logged, not propagated: the notes are already posted.
func (u *syncUsecase) stampIfSynced(mappingID string, outcome MappingOutcome) {
	if !outcome.Succeeded {
		return
	}
	if err := u.mappingRepo.UpdateLastSyncedAt(mappingID, time.Now()); err != nil {
		log.Printf("[Sync] Failed to stamp last_synced_at on mapping %s: %v", mappingID, err)
	}
}

func (u *syncUsecase) ListCronLogs(limit, offset int) ([]*syncdomain.CronLog, int64, error) {
	return u.cronLogRepo.FindAll(limit, offset)
}
