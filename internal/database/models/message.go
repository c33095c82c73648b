package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message represents a board message authored by a user
type Message struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title      string         `gorm:"not null;size:255" json:"title"`
	Content    string         `gorm:"not null;type:text" json:"content"`
	Thumbnail  *string        `gorm:"size:1024" json:"thumbnail,omitempty"`
	IsArchived bool           `gorm:"not null;default:false" json:"is_archived"`
	AuthorID   uint           `gorm:"not null;index" json:"author_id"`
	Version    int            `gorm:"not null;default:1" json:"version"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Author User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName overrides the table name
func (Message) TableName() string {
	return "messages"
}

// BeforeCreate hook to generate UUID if not set
func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
