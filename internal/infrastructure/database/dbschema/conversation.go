package dbschema

import (
	"time"

	"aramesh-server/services/therapy-api/internal/domain/conversation"
)

type Conversation struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	PublicID  string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	UserID    uint      `gorm:"not null;index"`
	Status    string    `gorm:"type:varchar(16);not null;default:'ACTIVE';index"`
	Summary   *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Conversation) TableName() string {
	return "conversations"
}

func NewSchemaConversation(d *conversation.Conversation) *Conversation {
	if d == nil {
		return nil
	}

	return &Conversation{
		ID:        d.ID,
		PublicID:  d.PublicID,
		UserID:    d.UserID,
		Status:    string(d.Status),
		Summary:   d.Summary,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (s *Conversation) EtoD() *conversation.Conversation {
	if s == nil {
		return nil
	}

	return &conversation.Conversation{
		ID:        s.ID,
		PublicID:  s.PublicID,
		UserID:    s.UserID,
		Status:    conversation.ConversationStatus(s.Status),
		Summary:   s.Summary,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
