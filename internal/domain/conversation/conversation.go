package conversation

import (
	"context"
	"time"

	"aramesh-server/services/therapy-api/internal/utils/idgen"
)

type ConversationStatus string

const (
	ConversationStatusActive ConversationStatus = "ACTIVE"
	ConversationStatusClosed ConversationStatus = "CLOSED"
)

// SenderRole identifies who authored a chat message.
type SenderRole string

const (
	SenderUser   SenderRole = "USER"
	SenderAI     SenderRole = "AI"
	SenderSystem SenderRole = "SYSTEM"
)

// Conversation is the single logical thread of chat messages for a user.
// At most one conversation per user is ACTIVE at a time.
type Conversation struct {
	ID        uint               `json:"-"`
	PublicID  string             `json:"id"`
	UserID    uint               `json:"-"`
	Status    ConversationStatus `json:"status"`
	Summary   *string            `json:"summary,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// Message is one immutable chat turn half. Ordering is by CreatedAt
// ascending; messages are never updated or deleted.
type Message struct {
	ID             uint        `json:"-"`
	PublicID       string      `json:"id"`
	ConversationID uint        `json:"-"`
	Sender         SenderRole  `json:"sender"`
	Text           string      `json:"text"`
	Usage          *TokenCount `json:"usage,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
}

// TokenCount is the provider-reported usage attached to an AI message.
type TokenCount struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type ConversationFilter struct {
	ID       *uint
	PublicID *string
	UserID   *uint
	Status   *ConversationStatus
}

type ConversationRepository interface {
	Create(ctx context.Context, conv *Conversation) error
	// FindActiveByUserID returns the most recently updated ACTIVE
	// conversation for the user, or a NOT_FOUND platform error.
	FindActiveByUserID(ctx context.Context, userID uint) (*Conversation, error)
	FindByID(ctx context.Context, id uint) (*Conversation, error)
	Touch(ctx context.Context, id uint) error
}

type MessageRepository interface {
	Create(ctx context.Context, msg *Message) error
	// ListByConversationID returns messages ordered by creation time
	// ascending (ties broken by primary key).
	ListByConversationID(ctx context.Context, conversationID uint) ([]*Message, error)
}

// NewConversation creates an ACTIVE conversation for the user.
func NewConversation(userID uint) *Conversation {
	now := time.Now()
	return &Conversation{
		PublicID:  idgen.MustGenerateSecureID("conv", 16),
		UserID:    userID,
		Status:    ConversationStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewMessage creates an immutable message for the conversation.
func NewMessage(conversationID uint, sender SenderRole, text string, usage *TokenCount) *Message {
	return &Message{
		PublicID:       idgen.MustGenerateSecureID("msg", 16),
		ConversationID: conversationID,
		Sender:         sender,
		Text:           text,
		Usage:          usage,
		CreatedAt:      time.Now(),
	}
}
