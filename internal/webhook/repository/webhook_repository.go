package repository

import (
	"errors"
	"time"

	webhookdomain "channelsync-backend/internal/webhook/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WebhookRepository defines persistence operations for webhook audit records
// and their derived meeting notes
type WebhookRepository interface {
	CreateLog(log *webhookdomain.FireHookLog) error
	FindLogByID(id string) (*webhookdomain.FireHookLog, error)
	FindAllLogs(limit, offset int) ([]*webhookdomain.FireHookLog, int64, error)
	UpdateLog(log *webhookdomain.FireHookLog) error
	UpsertNote(note *webhookdomain.MeetingNote) error
	FindNoteByMeetingID(meetingID string) (*webhookdomain.MeetingNote, error)
}

// webhookRepository implements WebhookRepository interface
type webhookRepository struct {
	db *gorm.DB
}

// NewWebhookRepository creates a new instance of webhookRepository
func NewWebhookRepository(db *gorm.DB) WebhookRepository {
	return &webhookRepository{
		db: db,
	}
}

func (r *webhookRepository) CreateLog(log *webhookdomain.FireHookLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	log.CreatedAt = time.Now()
	log.UpdatedAt = time.Now()
	return r.db.Create(log).Error
}

func (r *webhookRepository) FindLogByID(id string) (*webhookdomain.FireHookLog, error) {
	var log webhookdomain.FireHookLog
	err := r.db.Where("id = ?", id).First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}

func (r *webhookRepository) FindAllLogs(limit, offset int) ([]*webhookdomain.FireHookLog, int64, error) {
	var logs []*webhookdomain.FireHookLog
	var total int64

	if err := r.db.Model(&webhookdomain.FireHookLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&logs).Error
	return logs, total, err
}

func (r *webhookRepository) UpdateLog(log *webhookdomain.FireHookLog) error {
	log.UpdatedAt = time.Now()
	return r.db.Save(log).Error
}

// UpsertNote creates or refreshes the note for a meeting. Reprocessing the
// same meeting overwrites the derived content rather than duplicating it.
func (r *webhookRepository) UpsertNote(note *webhookdomain.MeetingNote) error {
	existing, err := r.FindNoteByMeetingID(note.MeetingID)
	if err != nil {
		return err
	}

	now := time.Now()
	if existing == nil {
		note.ID = uuid.New().String()
		note.CreatedAt = now
		note.UpdatedAt = now
		return r.db.Create(note).Error
	}

	existing.FireHookLogID = note.FireHookLogID
	existing.Title = note.Title
	existing.Summary = note.Summary
	if note.HubspotNoteID != "" {
		existing.HubspotNoteID = note.HubspotNoteID
	}
	existing.UpdatedAt = now
	*note = *existing
	return r.db.Save(existing).Error
}

func (r *webhookRepository) FindNoteByMeetingID(meetingID string) (*webhookdomain.MeetingNote, error) {
	var note webhookdomain.MeetingNote
	err := r.db.Where("meeting_id = ?", meetingID).First(&note).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &note, nil
}
