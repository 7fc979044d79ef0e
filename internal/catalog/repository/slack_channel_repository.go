package repository

import (
	"errors"
	"time"

	catalogdomain "channelsync-backend/internal/catalog/domain"
	mappingdomain "channelsync-backend/internal/mapping/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SlackChannelRepository defines persistence operations for Slack channel references
type SlackChannelRepository interface {
	Create(channel *catalogdomain.SlackChannel) error
	FindByID(id string) (*catalogdomain.SlackChannel, error)
	FindByChannelID(channelID string) (*catalogdomain.SlackChannel, error)
	FindAll(limit, offset int) ([]*catalogdomain.SlackChannel, int64, error)
	Update(channel *catalogdomain.SlackChannel) error
	Delete(id string) error
	CountMappingReferences(id string) (int64, error)
}

// slackChannelRepository implements SlackChannelRepository interface
type slackChannelRepository struct {
	db *gorm.DB
}

// NewSlackChannelRepository creates a new instance of slackChannelRepository
func NewSlackChannelRepository(db *gorm.DB) SlackChannelRepository {
	return &slackChannelRepository{
		db: db,
	}
}

func (r *slackChannelRepository) Create(channel *catalogdomain.SlackChannel) error {
	if channel.ID == "" {
		channel.ID = uuid.New().String()
	}
	channel.CreatedAt = time.Now()
	channel.UpdatedAt = time.Now()
	return r.db.Create(channel).Error
}

func (r *slackChannelRepository) FindByID(id string) (*catalogdomain.SlackChannel, error) {
	var channel catalogdomain.SlackChannel
	err := r.db.Where("id = ?", id).First(&channel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &channel, nil
}

func (r *slackChannelRepository) FindByChannelID(channelID string) (*catalogdomain.SlackChannel, error) {
	var channel catalogdomain.SlackChannel
	err := r.db.Where("channel_id = ?", channelID).First(&channel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &channel, nil
}

func (r *slackChannelRepository) FindAll(limit, offset int) ([]*catalogdomain.SlackChannel, int64, error) {
	var channels []*catalogdomain.SlackChannel
	var total int64

	query := r.db.Model(&catalogdomain.SlackChannel{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("name ASC, created_at DESC").Limit(limit).Offset(offset).Find(&channels).Error
	return channels, total, err
}

func (r *slackChannelRepository) Update(channel *catalogdomain.SlackChannel) error {
	channel.UpdatedAt = time.Now()
	return r.db.Save(channel).Error
}

func (r *slackChannelRepository) Delete(id string) error {
	return r.db.Delete(&catalogdomain.SlackChannel{}, "id = ?", id).Error
}

// CountMappingReferences counts mapping join rows pointing at this channel.
// Used as the delete guard.
func (r *slackChannelRepository) CountMappingReferences(id string) (int64, error) {
	var count int64
	err := r.db.Model(&mappingdomain.MappingSlackChannel{}).Where("slack_channel_id = ?", id).Count(&count).Error
	return count, err
}
