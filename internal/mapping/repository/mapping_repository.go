package repository

import (
	"errors"
	"time"

	mappingdomain "channelsync-backend/internal/mapping/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MappingRepository defines persistence operations for mappings
type MappingRepository interface {
	Create(mapping *mappingdomain.Mapping, channelIDs []string) error
	FindByID(id string) (*mappingdomain.Mapping, error)
	FindAll(limit, offset int) ([]*mappingdomain.Mapping, int64, error)
	FindByCadences(cadences []string) ([]*mappingdomain.Mapping, error)
	Update(mapping *mappingdomain.Mapping, channelIDs []string) error
	Delete(id string) error
	UpdateLastSyncedAt(id string, t time.Time) error
}

// mappingRepository implements MappingRepository interface
type mappingRepository struct {
	db *gorm.DB
}

// NewMappingRepository creates a new instance of mappingRepository
func NewMappingRepository(db *gorm.DB) MappingRepository {
	return &mappingRepository{
		db: db,
	}
}

func (r *mappingRepository) preload() *gorm.DB {
	return r.db.Preload("Company").Preload("Channels").Preload("Channels.SlackChannel")
}

// Create inserts the mapping and its join rows in one transaction.
func (r *mappingRepository) Create(mapping *mappingdomain.Mapping, channelIDs []string) error {
	if mapping.ID == "" {
		mapping.ID = uuid.New().String()
	}
	mapping.CreatedAt = time.Now()
	mapping.UpdatedAt = time.Now()

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(mapping).Error; err != nil {
			return err
		}
		for _, channelID := range channelIDs {
			join := &mappingdomain.MappingSlackChannel{
				ID:             uuid.New().String(),
				MappingID:      mapping.ID,
				SlackChannelID: channelID,
				CreatedAt:      time.Now(),
			}
			if err := tx.Create(join).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *mappingRepository) FindByID(id string) (*mappingdomain.Mapping, error) {
	var mapping mappingdomain.Mapping
	err := r.preload().Where("id = ?", id).First(&mapping).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &mapping, nil
}

func (r *mappingRepository) FindAll(limit, offset int) ([]*mappingdomain.Mapping, int64, error) {
	var mappings []*mappingdomain.Mapping
	var total int64

	if err := r.db.Model(&mappingdomain.Mapping{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.preload().Order("created_at DESC").Limit(limit).Offset(offset).Find(&mappings).Error
	return mappings, total, err
}

// FindByCadences returns mappings whose cadence is in the given set, with
// company and channels preloaded for the sync run.
func (r *mappingRepository) FindByCadences(cadences []string) ([]*mappingdomain.Mapping, error) {
	var mappings []*mappingdomain.Mapping
	err := r.preload().Where("cadence IN ?", cadences).Order("created_at ASC").Find(&mappings).Error
	return mappings, err
}

// Update saves the mapping and, when channelIDs is non-nil, replaces the join
// rows wholesale.
func (r *mappingRepository) Update(mapping *mappingdomain.Mapping, channelIDs []string) error {
	mapping.UpdatedAt = time.Now()

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Company", "Channels").Save(mapping).Error; err != nil {
			return err
		}
		if channelIDs == nil {
			return nil
		}
		if err := tx.Where("mapping_id = ?", mapping.ID).Delete(&mappingdomain.MappingSlackChannel{}).Error; err != nil {
			return err
		}
		for _, channelID := range channelIDs {
			join := &mappingdomain.MappingSlackChannel{
				ID:             uuid.New().String(),
				MappingID:      mapping.ID,
				SlackChannelID: channelID,
				CreatedAt:      time.Now(),
			}
			if err := tx.Create(join).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *mappingRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("mapping_id = ?", id).Delete(&mappingdomain.MappingSlackChannel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&mappingdomain.Mapping{}, "id = ?", id).Error
	})
}

// UpdateLastSyncedAt stamps the mapping without touching anything else.
func (r *mappingRepository) UpdateLastSyncedAt(id string, t time.Time) error {
	return r.db.Model(&mappingdomain.Mapping{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_synced_at": t,
			"updated_at":     time.Now(),
		}).Error
}
