package dbschema

import (
	"time"

	"aramesh-server/services/therapy-api/internal/domain/conversation"
)

type ChatMessage struct {
	ID               uint      `gorm:"primaryKey;autoIncrement"`
	PublicID         string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	ConversationID   uint      `gorm:"not null;index:idx_chat_messages_conv_created,priority:1"`
	Sender           string    `gorm:"type:varchar(16);not null"`
	Text             string    `gorm:"type:text;not null"`
	PromptTokens     *int
	CompletionTokens *int
	TotalTokens      *int
	CreatedAt        time.Time `gorm:"autoCreateTime;index:idx_chat_messages_conv_created,priority:2"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}

func NewSchemaChatMessage(d *conversation.Message) *ChatMessage {
	if d == nil {
		return nil
	}

	s := &ChatMessage{
		ID:             d.ID,
		PublicID:       d.PublicID,
		ConversationID: d.ConversationID,
		Sender:         string(d.Sender),
		Text:           d.Text,
		CreatedAt:      d.CreatedAt,
	}
	if d.Usage != nil {
		prompt, completion, total := d.Usage.PromptTokens, d.Usage.CompletionTokens, d.Usage.TotalTokens
		s.PromptTokens = &prompt
		s.CompletionTokens = &completion
		s.TotalTokens = &total
	}
	return s
}

func (s *ChatMessage) EtoD() *conversation.Message {
	if s == nil {
		return nil
	}

	d := &conversation.Message{
		ID:             s.ID,
		PublicID:       s.PublicID,
		ConversationID: s.ConversationID,
		Sender:         conversation.SenderRole(s.Sender),
		Text:           s.Text,
		CreatedAt:      s.CreatedAt,
	}
	if s.PromptTokens != nil || s.CompletionTokens != nil || s.TotalTokens != nil {
		usage := &conversation.TokenCount{}
		if s.PromptTokens != nil {
			usage.PromptTokens = *s.PromptTokens
		}
		if s.CompletionTokens != nil {
			usage.CompletionTokens = *s.CompletionTokens
		}
		if s.TotalTokens != nil {
			usage.TotalTokens = *s.TotalTokens
		}
		d.Usage = usage
	}
	return d
}
