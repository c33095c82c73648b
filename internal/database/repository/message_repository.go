package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bkoseoglu/messageboard/internal/database/models"
)

// MessageRepository defines the interface for message data operations
type MessageRepository interface {
	Create(message *models.Message) error
	FindByID(id uuid.UUID) (*models.Message, error)
	FindByAuthor(authorID uint, includeArchived bool, limit, offset int) ([]models.Message, error)
	Update(message *models.Message) error
	SetArchived(id uuid.UUID, archived bool) error
	Delete(id uuid.UUID) error
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository instance
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

func (r *messageRepository) FindByID(id uuid.UUID) (*models.Message, error) {
	var message models.Message
	err := r.db.First(&message, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) FindByAuthor(authorID uint, includeArchived bool, limit, offset int) ([]models.Message, error) {
	query := r.db.Where("author_id = ?", authorID)
	if !includeArchived {
		query = query.Where("is_archived = ?", false)
	}

	var messages []models.Message
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error

	return messages, err
}

func (r *messageRepository) Update(message *models.Message) error {
	result := r.db.Model(&models.Message{}).
		Where("id = ?", message.ID).
		Updates(map[string]interface{}{
			"title":     message.Title,
			"content":   message.Content,
			"thumbnail": message.Thumbnail,
			"version":   gorm.Expr("version + 1"),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func (r *messageRepository) SetArchived(id uuid.UUID, archived bool) error {
	result := r.db.Model(&models.Message{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_archived": archived,
			"version":     gorm.Expr("version + 1"),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func (r *messageRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Message{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

// Repository errors
var (
	ErrMessageNotFound = errors.New("message not found")
)
