package repository

import (
	"errors"
	"time"

	syncdomain "channelsync-backend/internal/sync/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CronLogRepository defines persistence operations for sync run audit records
type CronLogRepository interface {
	Create(log *syncdomain.CronLog) error
	FindByID(id string) (*syncdomain.CronLog, error)
	Update(log *syncdomain.CronLog) error
	CreateMappingEntry(entry *syncdomain.CronLogMapping) error
	FindAll(limit, offset int) ([]*syncdomain.CronLog, int64, error)
}

// cronLogRepository implements CronLogRepository interface
type cronLogRepository struct {
	db *gorm.DB
}

// NewCronLogRepository creates a new instance of cronLogRepository
func NewCronLogRepository(db *gorm.DB) CronLogRepository {
	return &cronLogRepository{
		db: db,
	}
}

func (r *cronLogRepository) Create(log *syncdomain.CronLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	log.CreatedAt = time.Now()
	log.UpdatedAt = time.Now()
	return r.db.Create(log).Error
}

func (r *cronLogRepository) FindByID(id string) (*syncdomain.CronLog, error) {
	var log syncdomain.CronLog
	err := r.db.Where("id = ?", id).First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}

func (r *cronLogRepository) Update(log *syncdomain.CronLog) error {
	log.UpdatedAt = time.Now()
	return r.db.Omit("Mappings").Save(log).Error
}

func (r *cronLogRepository) CreateMappingEntry(entry *syncdomain.CronLogMapping) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	entry.CreatedAt = time.Now()
	return r.db.Create(entry).Error
}

func (r *cronLogRepository) FindAll(limit, offset int) ([]*syncdomain.CronLog, int64, error) {
	var logs []*syncdomain.CronLog
	var total int64

	if err := r.db.Model(&syncdomain.CronLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Preload("Mappings").Order("started_at DESC").Limit(limit).Offset(offset).Find(&logs).Error
	return logs, total, err
}
