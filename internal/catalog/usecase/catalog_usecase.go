package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	catalogdomain "channelsync-backend/internal/catalog/domain"
	catalogdto "channelsync-backend/internal/catalog/dto"
	"channelsync-backend/internal/catalog/repository"
	"channelsync-backend/pkg/hubspot"
	"channelsync-backend/pkg/slackapi"
)

var (
	ErrChannelNotFound  = errors.New("slack channel not found")
	ErrCompanyNotFound  = errors.New("hubspot company not found")
	ErrDuplicateChannel = errors.New("a slack channel with this channel_id already exists")
	ErrDuplicateCompany = errors.New("a hubspot company with this company_id already exists")
)

// ReferencedError blocks deletion of an entity still attached to mappings.
type ReferencedError struct {
	Entity string
	Count  int64
}

func (e *ReferencedError) Error() string {
	return fmt.Sprintf("%s is referenced by %d mapping(s) and cannot be deleted", e.Entity, e.Count)
}

// SlackChannelLister is the slice of the Slack adapter the catalog sync needs.
type SlackChannelLister interface {
	ListChannels(ctx context.Context) ([]slackapi.Channel, error)
}

// CompanyLister is the slice of the HubSpot client the catalog sync needs.
type CompanyLister interface {
	ListCompanies(ctx context.Context) ([]hubspot.Company, error)
}

// CatalogUsecase manages Slack channel and HubSpot company references
type CatalogUsecase interface {
	CreateSlackChannel(req *catalogdto.CreateSlackChannelRequest) (*catalogdomain.SlackChannel, error)
	GetSlackChannel(id string) (*catalogdomain.SlackChannel, error)
	ListSlackChannels(limit, offset int) ([]*catalogdomain.SlackChannel, int64, error)
	UpdateSlackChannel(id string, req *catalogdto.UpdateSlackChannelRequest) (*catalogdomain.SlackChannel, error)
	DeleteSlackChannel(id string) error
	SyncSlackChannels(ctx context.Context) (*catalogdto.ProviderSyncResponse, error)

	CreateHubspotCompany(req *catalogdto.CreateHubspotCompanyRequest) (*catalogdomain.HubspotCompany, error)
	GetHubspotCompany(id string) (*catalogdomain.HubspotCompany, error)
	ListHubspotCompanies(limit, offset int) ([]*catalogdomain.HubspotCompany, int64, error)
	UpdateHubspotCompany(id string, req *catalogdto.UpdateHubspotCompanyRequest) (*catalogdomain.HubspotCompany, error)
	DeleteHubspotCompany(id string) error
	SyncHubspotCompanies(ctx context.Context) (*catalogdto.ProviderSyncResponse, error)
}

// catalogUsecase implements CatalogUsecase interface
type catalogUsecase struct {
	channelRepo repository.SlackChannelRepository
	companyRepo repository.HubspotCompanyRepository
	slack       SlackChannelLister
	hubspot     CompanyLister
}

// NewCatalogUsecase creates a new instance of catalogUsecase
func NewCatalogUsecase(
	channelRepo repository.SlackChannelRepository,
	companyRepo repository.HubspotCompanyRepository,
	slack SlackChannelLister,
	hubspotClient CompanyLister,
) CatalogUsecase {
	return &catalogUsecase{
		channelRepo: channelRepo,
		companyRepo: companyRepo,
		slack:       slack,
		hubspot:     hubspotClient,
	}
}

func (u *catalogUsecase) CreateSlackChannel(req *catalogdto.CreateSlackChannelRequest) (*catalogdomain.SlackChannel, error) {
	existing, err := u.channelRepo.FindByChannelID(req.ChannelID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateChannel
	}

	channel := &catalogdomain.SlackChannel{
		ChannelID: req.ChannelID,
		Name:      req.Name,
	}
	if err := u.channelRepo.Create(channel); err != nil {
		return nil, err
	}
	return channel, nil
}

func (u *catalogUsecase) GetSlackChannel(id string) (*catalogdomain.SlackChannel, error) {
	channel, err := u.channelRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if channel == nil {
		return nil, ErrChannelNotFound
	}
	return channel, nil
}

func (u *catalogUsecase) ListSlackChannels(limit, offset int) ([]*catalogdomain.SlackChannel, int64, error) {
	return u.channelRepo.FindAll(limit, offset)
}

func (u *catalogUsecase) UpdateSlackChannel(id string, req *catalogdto.UpdateSlackChannelRequest) (*catalogdomain.SlackChannel, error) {
	channel, err := u.channelRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if channel == nil {
		return nil, ErrChannelNotFound
	}

	if req.Name != nil {
		channel.Name = *req.Name
	}
	if err := u.channelRepo.Update(channel); err != nil {
		return nil, err
	}
	return channel, nil
}

func (u *catalogUsecase) DeleteSlackChannel(id string) error {
	channel, err := u.channelRepo.FindByID(id)
	if err != nil {
		return err
	}
	if channel == nil {
		return ErrChannelNotFound
	}

	count, err := u.channelRepo.CountMappingReferences(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &ReferencedError{Entity: "slack channel", Count: count}
	}

	return u.channelRepo.Delete(id)
}

// SyncSlackChannels pages through the workspace channel list and upserts
// references by external channel id.
func (u *catalogUsecase) SyncSlackChannels(ctx context.Context) (*catalogdto.ProviderSyncResponse, error) {
	if u.slack == nil {
		return nil, fmt.Errorf("slack is not configured")
	}

	channels, err := u.slack.ListChannels(ctx)
	if err != nil {
		return nil, err
	}

	resp := &catalogdto.ProviderSyncResponse{}
	for _, ch := range channels {
		existing, err := u.channelRepo.FindByChannelID(ch.ID)
		if err != nil {
			return nil, err
		}

		if existing == nil {
			if err := u.channelRepo.Create(&catalogdomain.SlackChannel{
				ChannelID: ch.ID,
				Name:      ch.Name,
			}); err != nil {
				log.Printf("[Catalog] Failed to create slack channel %s: %v", ch.ID, err)
				continue
			}
			resp.Created++
			continue
		}

		if existing.Name != ch.Name {
			existing.Name = ch.Name
			if err := u.channelRepo.Update(existing); err != nil {
				log.Printf("[Catalog] Failed to update slack channel %s: %v", ch.ID, err)
				continue
			}
			resp.Updated++
		}
	}

	return resp, nil
}

func (u *catalogUsecase) CreateHubspotCompany(req *catalogdto.CreateHubspotCompanyRequest) (*catalogdomain.HubspotCompany, error) {
	existing, err := u.companyRepo.FindByCompanyID(req.CompanyID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateCompany
	}

	company := &catalogdomain.HubspotCompany{
		CompanyID: req.CompanyID,
		Name:      req.Name,
	}
	if err := u.companyRepo.Create(company); err != nil {
		return nil, err
	}
	return company, nil
}

func (u *catalogUsecase) GetHubspotCompany(id string) (*catalogdomain.HubspotCompany, error) {
	company, err := u.companyRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, ErrCompanyNotFound
	}
	return company, nil
}

func (u *catalogUsecase) ListHubspotCompanies(limit, offset int) ([]*catalogdomain.HubspotCompany, int64, error) {
	return u.companyRepo.FindAll(limit, offset)
}

func (u *catalogUsecase) UpdateHubspotCompany(id string, req *catalogdto.UpdateHubspotCompanyRequest) (*catalogdomain.HubspotCompany, error) {
	company, err := u.companyRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, ErrCompanyNotFound
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if err := u.companyRepo.Update(company); err != nil {
		return nil, err
	}
	return company, nil
}

func (u *catalogUsecase) DeleteHubspotCompany(id string) error {
	company, err := u.companyRepo.FindByID(id)
	if err != nil {
		return err
	}
	if company == nil {
		return ErrCompanyNotFound
	}

	count, err := u.companyRepo.CountMappingReferences(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &ReferencedError{Entity: "hubspot company", Count: count}
	}

	return u.companyRepo.Delete(id)
}

// SyncHubspotCompanies pages through the HubSpot company list and upserts
// references by external company id.
func (u *catalogUsecase) SyncHubspotCompanies(ctx context.Context) (*catalogdto.ProviderSyncResponse, error) {
	if u.hubspot == nil {
		return nil, fmt.Errorf("hubspot is not configured")
	}

	companies, err := u.hubspot.ListCompanies(ctx)
	if err != nil {
		return nil, err
	}

	resp := &catalogdto.ProviderSyncResponse{}
	for _, co := range companies {
		existing, err := u.companyRepo.FindByCompanyID(co.ID)
		if err != nil {
			return nil, err
		}

		if existing == nil {
			if err := u.companyRepo.Create(&catalogdomain.HubspotCompany{
				CompanyID: co.ID,
				Name:      co.Name,
			}); err != nil {
				log.Printf("[Catalog] Failed to create hubspot company %s: %v", co.ID, err)
				continue
			}
			resp.Created++
			continue
		}

		if existing.Name != co.Name {
			existing.Name = co.Name
			if err := u.companyRepo.Update(existing); err != nil {
				log.Printf("[Catalog] Failed to update hubspot company %s: %v", co.ID, err)
				continue
			}
			resp.Updated++
		}
	}

	return resp, nil
}
