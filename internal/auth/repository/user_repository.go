package repository

import (
	"errors"
	"time"

	authdomain "channelsync-backend/internal/auth/domain"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users
type UserRepository interface {
	Create(user *authdomain.User) error
	FindByID(id string) (*authdomain.User, error)
	FindByEmail(email string) (*authdomain.User, error)
	FindBySlackID(slackID string) (*authdomain.User, error)
	FindAll(limit, offset int) ([]*authdomain.User, int64, error)
	FindAllSlackLinked() ([]*authdomain.User, error)
	Update(user *authdomain.User) error
	Delete(id string) error
}

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of userRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) Create(user *authdomain.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(id string) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindBySlackID(slackID string) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.Where("slack_id = ?", slackID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAll(limit, offset int) ([]*authdomain.User, int64, error) {
	var users []*authdomain.User
	var total int64

	query := r.db.Model(&authdomain.User{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error
	return users, total, err
}

// FindAllSlackLinked returns every user with a Slack identity, for building
// the user-id to display-name map used by the sync.
func (r *userRepository) FindAllSlackLinked() ([]*authdomain.User, error) {
	var users []*authdomain.User
	err := r.db.Where("slack_id IS NOT NULL").Find(&users).Error
	return users, err
}

func (r *userRepository) Update(user *authdomain.User) error {
	user.UpdatedAt = time.Now()
	return r.db.Save(user).Error
}

func (r *userRepository) Delete(id string) error {
	return r.db.Delete(&authdomain.User{}, "id = ?", id).Error
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a password with a hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
