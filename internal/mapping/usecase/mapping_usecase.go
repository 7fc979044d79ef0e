package usecase

import (
	"errors"
	"fmt"

	catalogrepo "channelsync-backend/internal/catalog/repository"
	mappingdomain "channelsync-backend/internal/mapping/domain"
	mappingdto "channelsync-backend/internal/mapping/dto"
	"channelsync-backend/internal/mapping/repository"
)

var (
	ErrMappingNotFound = errors.New("mapping not found")
	ErrInvalidCadence  = errors.New("cadence must be one of daily, weekly, monthly")
	ErrNoChannels      = errors.New("a mapping requires at least one slack channel")

	// ErrUnknownReference wraps company/channel ids that do not exist.
	ErrUnknownReference = errors.New("unknown reference")
)

// MappingUsecase handles mapping CRUD with referential validation
type MappingUsecase interface {
	CreateMapping(req *mappingdto.CreateMappingRequest) (*mappingdomain.Mapping, error)
	GetMapping(id string) (*mappingdomain.Mapping, error)
	ListMappings(limit, offset int) ([]*mappingdomain.Mapping, int64, error)
	UpdateMapping(id string, req *mappingdto.UpdateMappingRequest) (*mappingdomain.Mapping, error)
	DeleteMapping(id string) error
}

// mappingUsecase implements MappingUsecase interface
type mappingUsecase struct {
	mappingRepo repository.MappingRepository
	channelRepo catalogrepo.SlackChannelRepository
	companyRepo catalogrepo.HubspotCompanyRepository
}

// NewMappingUsecase creates a new instance of mappingUsecase
func NewMappingUsecase(
	mappingRepo repository.MappingRepository,
	channelRepo catalogrepo.SlackChannelRepository,
	companyRepo catalogrepo.HubspotCompanyRepository,
) MappingUsecase {
	return &mappingUsecase{
		mappingRepo: mappingRepo,
		channelRepo: channelRepo,
		companyRepo: companyRepo,
	}
}

// validateRefs checks that the company and every channel exist.
func (u *mappingUsecase) validateRefs(companyID string, channelIDs []string) error {
	company, err := u.companyRepo.FindByID(companyID)
	if err != nil {
		return err
	}
	if company == nil {
		return fmt.Errorf("%w: hubspot company %s does not exist", ErrUnknownReference, companyID)
	}

	for _, channelID := range channelIDs {
		channel, err := u.channelRepo.FindByID(channelID)
		if err != nil {
			return err
		}
		if channel == nil {
			return fmt.Errorf("%w: slack channel %s does not exist", ErrUnknownReference, channelID)
		}
	}
	return nil
}

func (u *mappingUsecase) CreateMapping(req *mappingdto.CreateMappingRequest) (*mappingdomain.Mapping, error) {
	cadence := mappingdomain.Cadence(req.Cadence)
	if !cadence.Valid() {
		return nil, ErrInvalidCadence
	}
	if len(req.ChannelIDs) == 0 {
		return nil, ErrNoChannels
	}
	if err := u.validateRefs(req.CompanyID, req.ChannelIDs); err != nil {
		return nil, err
	}

	mapping := &mappingdomain.Mapping{
		Title:            req.Title,
		Cadence:          cadence,
		HubspotCompanyID: req.CompanyID,
	}
	if err := u.mappingRepo.Create(mapping, req.ChannelIDs); err != nil {
		return nil, err
	}

	return u.mappingRepo.FindByID(mapping.ID)
}

func (u *mappingUsecase) GetMapping(id string) (*mappingdomain.Mapping, error) {
	mapping, err := u.mappingRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if mapping == nil {
		return nil, ErrMappingNotFound
	}
	return mapping, nil
}

func (u *mappingUsecase) ListMappings(limit, offset int) ([]*mappingdomain.Mapping, int64, error) {
	return u.mappingRepo.FindAll(limit, offset)
}

func (u *mappingUsecase) UpdateMapping(id string, req *mappingdto.UpdateMappingRequest) (*mappingdomain.Mapping, error) {
	mapping, err := u.mappingRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if mapping == nil {
		return nil, ErrMappingNotFound
	}

	if req.Cadence != nil {
		cadence := mappingdomain.Cadence(*req.Cadence)
		if !cadence.Valid() {
			return nil, ErrInvalidCadence
		}
		mapping.Cadence = cadence
	}
	if req.Title != nil {
		mapping.Title = *req.Title
	}

	companyID := mapping.HubspotCompanyID
	if req.CompanyID != nil {
		companyID = *req.CompanyID
	}
	if req.ChannelIDs != nil && len(req.ChannelIDs) == 0 {
		return nil, ErrNoChannels
	}
	if err := u.validateRefs(companyID, req.ChannelIDs); err != nil {
		return nil, err
	}
	mapping.HubspotCompanyID = companyID

	if err := u.mappingRepo.Update(mapping, req.ChannelIDs); err != nil {
		return nil, err
	}

	return u.mappingRepo.FindByID(id)
}

func (u *mappingUsecase) DeleteMapping(id string) error {
	mapping, err := u.mappingRepo.FindByID(id)
	if err != nil {
		return err
	}
	if mapping == nil {
		return ErrMappingNotFound
	}
	return u.mappingRepo.Delete(id)
}
