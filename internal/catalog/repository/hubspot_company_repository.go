package repository

import (
	"errors"
	"time"

	catalogdomain "channelsync-backend/internal/catalog/domain"
	mappingdomain "channelsync-backend/internal/mapping/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HubspotCompanyRepository defines persistence operations for HubSpot company references
type HubspotCompanyRepository interface {
	Create(company *catalogdomain.HubspotCompany) error
	FindByID(id string) (*catalogdomain.HubspotCompany, error)
	FindByCompanyID(companyID string) (*catalogdomain.HubspotCompany, error)
	FindAll(limit, offset int) ([]*catalogdomain.HubspotCompany, int64, error)
	Update(company *catalogdomain.HubspotCompany) error
	Delete(id string) error
	CountMappingReferences(id string) (int64, error)
}

// hubspotCompanyRepository implements HubspotCompanyRepository interface
type hubspotCompanyRepository struct {
	db *gorm.DB
}

// NewHubspotCompanyRepository creates a new instance of hubspotCompanyRepository
func NewHubspotCompanyRepository(db *gorm.DB) HubspotCompanyRepository {
	return &hubspotCompanyRepository{
		db: db,
	}
}

func (r *hubspotCompanyRepository) Create(company *catalogdomain.HubspotCompany) error {
	if company.ID == "" {
		company.ID = uuid.New().String()
	}
	company.CreatedAt = time.Now()
	company.UpdatedAt = time.Now()
	return r.db.Create(company).Error
}

func (r *hubspotCompanyRepository) FindByID(id string) (*catalogdomain.HubspotCompany, error) {
	var company catalogdomain.HubspotCompany
	err := r.db.Where("id = ?", id).First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &company, nil
}

func (r *hubspotCompanyRepository) FindByCompanyID(companyID string) (*catalogdomain.HubspotCompany, error) {
	var company catalogdomain.HubspotCompany
	err := r.db.Where("company_id = ?", companyID).First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &company, nil
}

func (r *hubspotCompanyRepository) FindAll(limit, offset int) ([]*catalogdomain.HubspotCompany, int64, error) {
	var companies []*catalogdomain.HubspotCompany
	var total int64

	query := r.db.Model(&catalogdomain.HubspotCompany{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("name ASC, created_at DESC").Limit(limit).Offset(offset).Find(&companies).Error
	return companies, total, err
}

func (r *hubspotCompanyRepository) Update(company *catalogdomain.HubspotCompany) error {
	company.UpdatedAt = time.Now()
	return r.db.Save(company).Error
}

func (r *hubspotCompanyRepository) Delete(id string) error {
	return r.db.Delete(&catalogdomain.HubspotCompany{}, "id = ?", id).Error
}

// CountMappingReferences counts mappings bound to this company.
// Used as the delete guard.
func (r *hubspotCompanyRepository) CountMappingReferences(id string) (int64, error) {
	var count int64
	err := r.db.Model(&mappingdomain.Mapping{}).Where("hubspot_company_id = ?", id).Count(&count).Error
	return count, err
}
