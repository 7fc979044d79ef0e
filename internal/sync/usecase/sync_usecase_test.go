package usecase

import (
	"context"
	"testing"
	"time"

	authdomain "channelsync-backend/internal/auth/domain"
	mappingdomain "channelsync-backend/internal/mapping/domain"
	promptdomain "channelsync-backend/internal/prompt/domain"
	"channelsync-backend/pkg/slackapi"

	"github.com/stretchr/testify/assert"
)

type fakeMappingRepo struct {
	mappings []*mappingdomain.Mapping
	stamped  map[string]time.Time
}

func (f *fakeMappingRepo) Create(*mappingdomain.Mapping, []string) error { return nil }
func (f *fakeMappingRepo) FindByID(id string) (*mappingdomain.Mapping, error) {
	for _, m := range f.mappings {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}
func (f *fakeMappingRepo) FindAll(limit, offset int) ([]*mappingdomain.Mapping, int64, error) {
	return f.mappings, int64(len(f.mappings)), nil
}
func (f *fakeMappingRepo) FindByCadences(cadences []string) ([]*mappingdomain.Mapping, error) {
	var due []*mappingdomain.Mapping
	for _, m := range f.mappings {
		for _, c := range cadences {
			if string(m.Cadence) == c {
				due = append(due, m)
				break
			}
		}
	}
	return due, nil
}
func (f *fakeMappingRepo) Update(*mappingdomain.Mapping, []string) error { return nil }
func (f *fakeMappingRepo) Delete(string) error                           { return nil }
func (f *fakeMappingRepo) UpdateLastSyncedAt(id string, t time.Time) error {
	if f.stamped == nil {
		f.stamped = make(map[string]time.Time)
	}
	f.stamped[id] = t
	return nil
}

type fakePromptRepo struct {
	active *promptdomain.Prompt
}

func (f *fakePromptRepo) Create(*promptdomain.Prompt) error             { return nil }
func (f *fakePromptRepo) FindByID(string) (*promptdomain.Prompt, error) { return nil, nil }
func (f *fakePromptRepo) FindActive() (*promptdomain.Prompt, error)     { return f.active, nil }
func (f *fakePromptRepo) FindAll(int, int) ([]*promptdomain.Prompt, int64, error) {
	return nil, 0, nil
}
func (f *fakePromptRepo) Update(*promptdomain.Prompt) error { return nil }
func (f *fakePromptRepo) Delete(string) error               { return nil }

type fakeUserRepo struct {
	users []*authdomain.User
}

func (f *fakeUserRepo) Create(*authdomain.User) error                  { return nil }
func (f *fakeUserRepo) FindByID(string) (*authdomain.User, error)      { return nil, nil }
func (f *fakeUserRepo) FindByEmail(string) (*authdomain.User, error)   { return nil, nil }
func (f *fakeUserRepo) FindBySlackID(string) (*authdomain.User, error) { return nil, nil }
func (f *fakeUserRepo) FindAll(int, int) ([]*authdomain.User, int64, error) {
	return f.users, int64(len(f.users)), nil
}
func (f *fakeUserRepo) FindAllSlackLinked() ([]*authdomain.User, error) { return f.users, nil }
func (f *fakeUserRepo) Update(*authdomain.User) error                   { return nil }
func (f *fakeUserRepo) Delete(string) error                             { return nil }

type fakeRecorder struct {
	started   bool
	cadences  []string
	found     int
	empty     bool
	failed    error
	finalized []MappingOutcome
}

func (f *fakeRecorder) StartRun(cadences []string) string {
	f.started = true
	f.cadences = cadences
	return "run-1"
}
func (f *fakeRecorder) RecordFound(_ string, found int) { f.found = found }
func (f *fakeRecorder) CompleteEmpty(string)            { f.empty = true }
func (f *fakeRecorder) Finalize(_ string, outcomes []MappingOutcome) {
	f.finalized = outcomes
}
func (f *fakeRecorder) FailRun(_ string, err error) { f.failed = err }

func newTestSyncUsecase(t *testing.T, mappings *fakeMappingRepo, recorder *fakeRecorder, slack *fakeSlack, hs *fakeHubspot, sum *fakeSummarizer) *syncUsecase {
	t.Helper()
	orch := NewOrchestrator(slack, hs, sum)
	uc := NewSyncUsecase(orch, recorder, mappings, &fakePromptRepo{
		active: &promptdomain.Prompt{Content: "Summarize for CRM."},
	}, &fakeUserRepo{}, nil).(*syncUsecase)
	uc.delay = 0
	return uc
}

func TestRunScheduledWeekday(t *testing.T) {
	mappings := &fakeMappingRepo{mappings: []*mappingdomain.Mapping{testMapping("C1")}}
	recorder := &fakeRecorder{}
	slack := &fakeSlack{messages: map[string][]slackapi.Message{
		"C1": {{UserID: "U1", Text: "hello"}},
	}}
	uc := newTestSyncUsecase(t, mappings, recorder, slack, &fakeHubspot{}, &fakeSummarizer{summary: "S."})

	// A Wednesday: only the daily bucket fires
	res, err := uc.RunScheduled(context.Background(), time.Date(2025, time.June, 4, 7, 0, 0, 0, time.UTC))

	assert.NoError(t, err)
	assert.True(t, recorder.started)
	assert.Equal(t, []string{"daily"}, recorder.cadences)
	assert.Equal(t, 1, recorder.found)
	assert.Len(t, recorder.finalized, 1)
	assert.True(t, recorder.finalized[0].Succeeded)
	assert.Len(t, res.Results, 1)
	assert.Equal(t, StatusSynced, res.Results[0].Status)
	assert.Contains(t, mappings.stamped, "map-1")
}

func TestRunScheduledWeekend(t *testing.T) {
	mappings := &fakeMappingRepo{mappings: []*mappingdomain.Mapping{testMapping("C1")}}
	recorder := &fakeRecorder{}
	uc := newTestSyncUsecase(t, mappings, recorder, &fakeSlack{}, &fakeHubspot{}, &fakeSummarizer{})

	// A Saturday that is not month end: nothing is due
	res, err := uc.RunScheduled(context.Background(), time.Date(2025, time.June, 7, 7, 0, 0, 0, time.UTC))

	assert.NoError(t, err)
	assert.True(t, recorder.empty)
	assert.Nil(t, recorder.finalized)
	assert.Equal(t, "No sync scheduled for today", res.Message)
	assert.Empty(t, mappings.stamped)
}

func TestRunScheduledSkipsOffCadenceMappings(t *testing.T) {
	weekly := testMapping("C1")
	weekly.ID = "map-weekly"
	weekly.Cadence = mappingdomain.CadenceWeekly
	mappings := &fakeMappingRepo{mappings: []*mappingdomain.Mapping{weekly}}
	recorder := &fakeRecorder{}
	uc := newTestSyncUsecase(t, mappings, recorder, &fakeSlack{}, &fakeHubspot{}, &fakeSummarizer{})

	// Weekly mappings do not run on a Tuesday
	res, err := uc.RunScheduled(context.Background(), time.Date(2025, time.June, 3, 7, 0, 0, 0, time.UTC))

	assert.NoError(t, err)
	assert.True(t, recorder.empty)
	assert.Contains(t, res.Message, "No mappings due")
}

func TestRunManualSingleMapping(t *testing.T) {
	m1 := testMapping("C1")
	m2 := testMapping("C2")
	m2.ID = "map-2"
	mappings := &fakeMappingRepo{mappings: []*mappingdomain.Mapping{m1, m2}}
	slack := &fakeSlack{messages: map[string][]slackapi.Message{
		"C1": {{UserID: "U1", Text: "hello"}},
		"C2": {{UserID: "U1", Text: "other"}},
	}}
	uc := newTestSyncUsecase(t, mappings, &fakeRecorder{}, slack, &fakeHubspot{}, &fakeSummarizer{summary: "S."})

	res, err := uc.RunManual(context.Background(), "map-1", false)

	assert.NoError(t, err)
	assert.Len(t, res.Results, 1)
	// Only the requested mapping runs
	assert.Equal(t, []string{"C1"}, slack.calls)
	assert.Contains(t, mappings.stamped, "map-1")
	assert.NotContains(t, mappings.stamped, "map-2")
}

func TestRunManualUnknownMapping(t *testing.T) {
	uc := newTestSyncUsecase(t, &fakeMappingRepo{}, &fakeRecorder{}, &fakeSlack{}, &fakeHubspot{}, &fakeSummarizer{})

	_, err := uc.RunManual(context.Background(), "nope", false)

	assert.ErrorIs(t, err, ErrSyncMappingNotFound)
}

func TestRunManualTestModeWritesNothing(t *testing.T) {
	mappings := &fakeMappingRepo{mappings: []*mappingdomain.Mapping{testMapping("C1")}}
	slack := &fakeSlack{messages: map[string][]slackapi.Message{
		"C1": {{UserID: "U1", Text: "hello"}},
	}}
	hs := &fakeHubspot{}
	uc := newTestSyncUsecase(t, mappings, &fakeRecorder{}, slack, hs, &fakeSummarizer{summary: "S."})

	res, err := uc.RunManual(context.Background(), "", true)

	assert.NoError(t, err)
	assert.Equal(t, StatusTestComplete, res.Results[0].Status)
	assert.Contains(t, res.Message, "nothing was written")
	// No note lands and LastSyncedAt stays untouched
	assert.Empty(t, hs.notes)
	assert.Empty(t, mappings.stamped)
}

func TestRunManualFailureDoesNotStamp(t *testing.T) {
	mappings := &fakeMappingRepo{mappings: []*mappingdomain.Mapping{testMapping("C1")}}
	slack := &fakeSlack{messages: map[string][]slackapi.Message{
		"C1": {{UserID: "U1", Text: "hello"}},
	}}
	hs := &fakeHubspot{err: assert.AnError}
	uc := newTestSyncUsecase(t, mappings, &fakeRecorder{}, slack, hs, &fakeSummarizer{summary: "S."})

	res, err := uc.RunManual(context.Background(), "", false)

	assert.NoError(t, err)
	assert.Equal(t, StatusFailed, res.Results[0].Status)
	assert.Empty(t, mappings.stamped)
}
