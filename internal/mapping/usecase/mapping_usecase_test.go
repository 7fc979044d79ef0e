package usecase

import (
	"testing"
	"time"

	catalogdomain "channelsync-backend/internal/catalog/domain"
	mappingdomain "channelsync-backend/internal/mapping/domain"
	mappingdto "channelsync-backend/internal/mapping/dto"

	"github.com/stretchr/testify/assert"
)

type fakeMappingRepo struct {
	mappings map[string]*mappingdomain.Mapping
	joins    map[string][]string
	nextID   int
}

func newFakeMappingRepo() *fakeMappingRepo {
	return &fakeMappingRepo{
		mappings: make(map[string]*mappingdomain.Mapping),
		joins:    make(map[string][]string),
	}
}

func (f *fakeMappingRepo) Create(mapping *mappingdomain.Mapping, channelIDs []string) error {
	f.nextID++
	mapping.ID = "m" + string(rune('0'+f.nextID))
	copied := *mapping
	f.mappings[mapping.ID] = &copied
	f.joins[mapping.ID] = channelIDs
	return nil
}

func (f *fakeMappingRepo) FindByID(id string) (*mappingdomain.Mapping, error) {
	if m, ok := f.mappings[id]; ok {
		copied := *m
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeMappingRepo) FindAll(int, int) ([]*mappingdomain.Mapping, int64, error) {
	var out []*mappingdomain.Mapping
	for _, m := range f.mappings {
		copied := *m
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (f *fakeMappingRepo) FindByCadences([]string) ([]*mappingdomain.Mapping, error) {
	return nil, nil
}

func (f *fakeMappingRepo) Update(mapping *mappingdomain.Mapping, channelIDs []string) error {
	copied := *mapping
	f.mappings[mapping.ID] = &copied
	if channelIDs != nil {
		f.joins[mapping.ID] = channelIDs
	}
	return nil
}

func (f *fakeMappingRepo) Delete(id string) error {
	delete(f.mappings, id)
	delete(f.joins, id)
	return nil
}

func (f *fakeMappingRepo) UpdateLastSyncedAt(id string, t time.Time) error {
	if m, ok := f.mappings[id]; ok {
		m.LastSyncedAt = &t
	}
	return nil
}

type fakeRefRepo struct {
	channelIDs map[string]bool
	companyIDs map[string]bool
}

func (f *fakeRefRepo) channel(id string) *catalogdomain.SlackChannel {
	if f.channelIDs[id] {
		return &catalogdomain.SlackChannel{ID: id}
	}
	return nil
}

func (f *fakeRefRepo) company(id string) *catalogdomain.HubspotCompany {
	if f.companyIDs[id] {
		return &catalogdomain.HubspotCompany{ID: id}
	}
	return nil
}

// channelRefRepo implements catalogrepo.SlackChannelRepository over fakeRefRepo
type channelRefRepo struct{ refs *fakeRefRepo }

func (r *channelRefRepo) Create(*catalogdomain.SlackChannel) error { return nil }
func (r *channelRefRepo) FindByID(id string) (*catalogdomain.SlackChannel, error) {
	return r.refs.channel(id), nil
}
func (r *channelRefRepo) FindByChannelID(string) (*catalogdomain.SlackChannel, error) {
	return nil, nil
}
func (r *channelRefRepo) FindAll(int, int) ([]*catalogdomain.SlackChannel, int64, error) {
	return nil, 0, nil
}
func (r *channelRefRepo) Update(*catalogdomain.SlackChannel) error     { return nil }
func (r *channelRefRepo) Delete(string) error                          { return nil }
func (r *channelRefRepo) CountMappingReferences(string) (int64, error) { return 0, nil }

type companyRefRepo struct{ refs *fakeRefRepo }

func (r *companyRefRepo) Create(*catalogdomain.HubspotCompany) error { return nil }
func (r *companyRefRepo) FindByID(id string) (*catalogdomain.HubspotCompany, error) {
	return r.refs.company(id), nil
}
func (r *companyRefRepo) FindByCompanyID(string) (*catalogdomain.HubspotCompany, error) {
	return nil, nil
}
func (r *companyRefRepo) FindAll(int, int) ([]*catalogdomain.HubspotCompany, int64, error) {
	return nil, 0, nil
}
func (r *companyRefRepo) Update(*catalogdomain.HubspotCompany) error   { return nil }
func (r *companyRefRepo) Delete(string) error                          { return nil }
func (r *companyRefRepo) CountMappingReferences(string) (int64, error) { return 0, nil }

func newTestMappingUsecase(repo *fakeMappingRepo) MappingUsecase {
	refs := &fakeRefRepo{
		channelIDs: map[string]bool{"ch1": true, "ch2": true},
		companyIDs: map[string]bool{"co1": true, "co2": true},
	}
	return NewMappingUsecase(repo, &channelRefRepo{refs}, &companyRefRepo{refs})
}

func TestCreateMappingValidation(t *testing.T) {
	uc := newTestMappingUsecase(newFakeMappingRepo())

	_, err := uc.CreateMapping(&mappingdto.CreateMappingRequest{
		Cadence: "hourly", CompanyID: "co1", ChannelIDs: []string{"ch1"},
	})
	assert.ErrorIs(t, err, ErrInvalidCadence)

	_, err = uc.CreateMapping(&mappingdto.CreateMappingRequest{
		Cadence: "daily", CompanyID: "co1",
	})
	assert.ErrorIs(t, err, ErrNoChannels)

	_, err = uc.CreateMapping(&mappingdto.CreateMappingRequest{
		Cadence: "daily", CompanyID: "ghost", ChannelIDs: []string{"ch1"},
	})
	assert.ErrorIs(t, err, ErrUnknownReference)

	_, err = uc.CreateMapping(&mappingdto.CreateMappingRequest{
		Cadence: "daily", CompanyID: "co1", ChannelIDs: []string{"ch1", "ghost"},
	})
	assert.ErrorIs(t, err, ErrUnknownReference)
}

func TestCreateMapping(t *testing.T) {
	repo := newFakeMappingRepo()
	uc := newTestMappingUsecase(repo)

	created, err := uc.CreateMapping(&mappingdto.CreateMappingRequest{
		Title: "Acme support", Cadence: "weekly", CompanyID: "co1", ChannelIDs: []string{"ch1", "ch2"},
	})
	assert.NoError(t, err)
	assert.Equal(t, mappingdomain.CadenceWeekly, created.Cadence)
	assert.Equal(t, []string{"ch1", "ch2"}, repo.joins[created.ID])
	assert.Nil(t, created.LastSyncedAt)
}

func TestUpdateMapping(t *testing.T) {
	repo := newFakeMappingRepo()
	uc := newTestMappingUsecase(repo)

	created, _ := uc.CreateMapping(&mappingdto.CreateMappingRequest{
		Cadence: "daily", CompanyID: "co1", ChannelIDs: []string{"ch1"},
	})

	cadence := "monthly"
	company := "co2"
	updated, err := uc.UpdateMapping(created.ID, &mappingdto.UpdateMappingRequest{
		Cadence:    &cadence,
		CompanyID:  &company,
		ChannelIDs: []string{"ch2"},
	})
	assert.NoError(t, err)
	assert.Equal(t, mappingdomain.CadenceMonthly, updated.Cadence)
	assert.Equal(t, "co2", updated.HubspotCompanyID)
	assert.Equal(t, []string{"ch2"}, repo.joins[created.ID])

	// Omitting channel_ids leaves the joins alone
	title := "renamed"
	_, err = uc.UpdateMapping(created.ID, &mappingdto.UpdateMappingRequest{Title: &title})
	assert.NoError(t, err)
	assert.Equal(t, []string{"ch2"}, repo.joins[created.ID])

	// An explicit empty list is rejected, not treated as "keep"
	_, err = uc.UpdateMapping(created.ID, &mappingdto.UpdateMappingRequest{ChannelIDs: []string{}})
	assert.ErrorIs(t, err, ErrNoChannels)
}

func TestMappingNotFound(t *testing.T) {
	uc := newTestMappingUsecase(newFakeMappingRepo())

	_, err := uc.GetMapping("missing")
	assert.ErrorIs(t, err, ErrMappingNotFound)

	_, err = uc.UpdateMapping("missing", &mappingdto.UpdateMappingRequest{})
	assert.ErrorIs(t, err, ErrMappingNotFound)

	assert.ErrorIs(t, uc.DeleteMapping("missing"), ErrMappingNotFound)
}

func TestDeleteMapping(t *testing.T) {
	repo := newFakeMappingRepo()
	uc := newTestMappingUsecase(repo)

	created, _ := uc.CreateMapping(&mappingdto.CreateMappingRequest{
		Cadence: "daily", CompanyID: "co1", ChannelIDs: []string{"ch1"},
	})

	assert.NoError(t, uc.DeleteMapping(created.ID))
	_, err := uc.GetMapping(created.ID)
	assert.ErrorIs(t, err, ErrMappingNotFound)
}
