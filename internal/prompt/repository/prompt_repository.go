package repository

import (
	"errors"
	"time"

	promptdomain "channelsync-backend/internal/prompt/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PromptRepository defines persistence operations for prompts
type PromptRepository interface {
	// Create inserts the prompt; when it is active, every other prompt is
	// deactivated in the same transaction.
	Create(prompt *promptdomain.Prompt) error
	FindByID(id string) (*promptdomain.Prompt, error)
	FindActive() (*promptdomain.Prompt, error)
	FindAll(limit, offset int) ([]*promptdomain.Prompt, int64, error)
	// Update saves the prompt under the same single-active guarantee as Create.
	Update(prompt *promptdomain.Prompt) error
	Delete(id string) error
}

// promptRepository implements PromptRepository interface
type promptRepository struct {
	db *gorm.DB
}

// NewPromptRepository creates a new instance of promptRepository
func NewPromptRepository(db *gorm.DB) PromptRepository {
	return &promptRepository{
		db: db,
	}
}

func deactivateOthers(tx *gorm.DB, exceptID string) error {
	return tx.Model(&promptdomain.Prompt{}).
		Where("id != ? AND is_active = ?", exceptID, true).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		}).Error
}

func (r *promptRepository) Create(prompt *promptdomain.Prompt) error {
	if prompt.ID == "" {
		prompt.ID = uuid.New().String()
	}
	prompt.CreatedAt = time.Now()
	prompt.UpdatedAt = time.Now()

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(prompt).Error; err != nil {
			return err
		}
		if prompt.IsActive {
			return deactivateOthers(tx, prompt.ID)
		}
		return nil
	})
}

func (r *promptRepository) FindByID(id string) (*promptdomain.Prompt, error) {
	var prompt promptdomain.Prompt
	err := r.db.Where("id = ?", id).First(&prompt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prompt, nil
}

func (r *promptRepository) FindActive() (*promptdomain.Prompt, error) {
	var prompt promptdomain.Prompt
	err := r.db.Where("is_active = ?", true).First(&prompt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prompt, nil
}

func (r *promptRepository) FindAll(limit, offset int) ([]*promptdomain.Prompt, int64, error) {
	var prompts []*promptdomain.Prompt
	var total int64

	if err := r.db.Model(&promptdomain.Prompt{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&prompts).Error
	return prompts, total, err
}

func (r *promptRepository) Update(prompt *promptdomain.Prompt) error {
	prompt.UpdatedAt = time.Now()

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(prompt).Error; err != nil {
			return err
		}
		if prompt.IsActive {
			return deactivateOthers(tx, prompt.ID)
		}
		return nil
	})
}

func (r *promptRepository) Delete(id string) error {
	return r.db.Delete(&promptdomain.Prompt{}, "id = ?", id).Error
}
