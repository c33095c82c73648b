package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/bkoseoglu/messageboard/internal/database/models"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(user *models.User) error
	FindByEmail(email string) (*models.User, error)
	FindByID(id uint) (*models.User, error)
	UpdateEmail(id uint, email string) error
	UpdatePassword(id uint, passwordHash string) error
	SetEmailVerified(id uint) error
	Delete(id uint) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	err := r.db.Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrEmailTaken
	}
	return err
}

func (r *userRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateEmail(id uint, email string) error {
	return r.updateFields(id, map[string]interface{}{
		"email":             email,
		"is_email_verified": false,
	})
}

func (r *userRepository) UpdatePassword(id uint, passwordHash string) error {
	return r.updateFields(id, map[string]interface{}{
		"password": passwordHash,
	})
}

func (r *userRepository) SetEmailVerified(id uint) error {
	return r.updateFields(id, map[string]interface{}{
		"is_email_verified": true,
	})
}

// updateFields applies the given column updates and bumps the version counter
func (r *userRepository) updateFields(id uint, fields map[string]interface{}) error {
	fields["version"] = gorm.Expr("version + 1")

	result := r.db.Model(&models.User{}).
		Where("id = ?", id).
		Updates(fields)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) Delete(id uint) error {
	result := r.db.Delete(&models.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Repository errors
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)
