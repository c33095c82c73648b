package service

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bkoseoglu/messageboard/internal/database/models"
	"github.com/bkoseoglu/messageboard/internal/database/repository"
)

// MessageService defines the interface for message business logic
type MessageService interface {
	CreateMessage(authorID uint, title, content string, thumbnail *string) (*models.Message, error)
	GetMessage(id uuid.UUID, requesterID uint) (*models.Message, error)
	ListMessages(authorID uint, includeArchived bool, limit, offset int) ([]models.Message, error)
	UpdateMessage(id uuid.UUID, requesterID uint, title, content string, thumbnail *string) (*models.Message, error)
	ArchiveMessage(id uuid.UUID, requesterID uint, archived bool) error
	DeleteMessage(id uuid.UUID, requesterID uint) error
}

type messageService struct {
	messageRepo repository.MessageRepository
	logger      *slog.Logger
}

// NewMessageService creates a new message service instance
func NewMessageService(messageRepo repository.MessageRepository, logger *slog.Logger) MessageService {
	return &messageService{
		messageRepo: messageRepo,
		logger:      logger,
	}
}

func (s *messageService) CreateMessage(authorID uint, title, content string, thumbnail *string) (*models.Message, error) {
	message := &models.Message{
		Title:     title,
		Content:   content,
		Thumbnail: thumbnail,
		AuthorID:  authorID,
	}

	if err := s.messageRepo.Create(message); err != nil {
		s.logger.Error("❌ [MessageService] Failed to create message", "author_id", authorID, "error", err)
		return nil, err
	}

	s.logger.Info("✅ [MessageService] Message created", "message_id", message.ID, "author_id", authorID)
	return message, nil
}

func (s *messageService) GetMessage(id uuid.UUID, requesterID uint) (*models.Message, error) {
	message, err := s.messageRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if message.AuthorID != requesterID {
		return nil, ErrNotMessageAuthor
	}

	return message, nil
}

func (s *messageService) ListMessages(authorID uint, includeArchived bool, limit, offset int) ([]models.Message, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	return s.messageRepo.FindByAuthor(authorID, includeArchived, limit, offset)
}

func (s *messageService) UpdateMessage(id uuid.UUID, requesterID uint, title, content string, thumbnail *string) (*models.Message, error) {
	message, err := s.GetMessage(id, requesterID)
	if err != nil {
		return nil, err
	}

	message.Title = title
	message.Content = content
	message.Thumbnail = thumbnail

	if err := s.messageRepo.Update(message); err != nil {
		s.logger.Error("❌ [MessageService] Failed to update message", "message_id", id, "error", err)
		return nil, err
	}

	return s.messageRepo.FindByID(id)
}

func (s *messageService) ArchiveMessage(id uuid.UUID, requesterID uint, archived bool) error {
	if _, err := s.GetMessage(id, requesterID); err != nil {
		return err
	}

	return s.messageRepo.SetArchived(id, archived)
}

func (s *messageService) DeleteMessage(id uuid.UUID, requesterID uint) error {
	if _, err := s.GetMessage(id, requesterID); err != nil {
		return err
	}

	if err := s.messageRepo.Delete(id); err != nil {
		s.logger.Error("❌ [MessageService] Failed to delete message", "message_id", id, "error", err)
		return err
	}

	s.logger.Info("✅ [MessageService] Message deleted", "message_id", id)
	return nil
}

// Service errors
var (
	ErrNotMessageAuthor = errors.New("message belongs to another user")
)
