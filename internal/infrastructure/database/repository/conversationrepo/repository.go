package conversationrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"aramesh-server/services/therapy-api/internal/domain/conversation"
	"aramesh-server/services/therapy-api/internal/infrastructure/database/dbschema"
	"aramesh-server/services/therapy-api/internal/utils/platformerrors"
)

// ConversationRepository is the gorm-backed conversation store.
type ConversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

var _ conversation.ConversationRepository = (*ConversationRepository)(nil)

func (r *ConversationRepository) Create(ctx context.Context, conv *conversation.Conversation) error {
	schema := dbschema.NewSchemaConversation(conv)
	if err := r.db.WithContext(ctx).Create(schema).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// The partial unique index caught a concurrent creation.
			return platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeConflict, "user already has an active conversation", err, "8d0f2a4b-6c8e-4f0a-b2c4-d6e8f0a2b4c6")
		}
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to create conversation", err, "")
	}
	conv.ID = schema.ID
	return nil
}

func (r *ConversationRepository) FindActiveByUserID(ctx context.Context, userID uint) (*conversation.Conversation, error) {
	var row dbschema.Conversation
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, string(conversation.ConversationStatusActive)).
		Order("updated_at DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound, "active conversation not found", err, "9e1f3a5b-7d9f-4a1b-c3d5-e7f9a1b3c5d7")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to query active conversation", err, "")
	}
	return row.EtoD(), nil
}

func (r *ConversationRepository) FindByID(ctx context.Context, id uint) (*conversation.Conversation, error) {
	var row dbschema.Conversation
	err := r.db.WithContext(ctx).First(&row, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound, "conversation not found", err, "")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to query conversation", err, "")
	}
	return row.EtoD(), nil
}

func (r *ConversationRepository) Touch(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).
		Model(&dbschema.Conversation{}).
		Where("id = ?", id).
		Update("updated_at", time.Now()).Error
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to touch conversation", err, "")
	}
	return nil
}

// MessageRepository is the gorm-backed chat message store.
type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

var _ conversation.MessageRepository = (*MessageRepository)(nil)

func (r *MessageRepository) Create(ctx context.Context, msg *conversation.Message) error {
	schema := dbschema.NewSchemaChatMessage(msg)
	if err := r.db.WithContext(ctx).Create(schema).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to create chat message", err, "")
	}
	msg.ID = schema.ID
	return nil
}

func (r *MessageRepository) ListByConversationID(ctx context.Context, conversationID uint) ([]*conversation.Message, error) {
	var rows []dbschema.ChatMessage
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to query chat messages", err, "")
	}

	msgs := make([]*conversation.Message, 0, len(rows))
	for i := range rows {
		msgs = append(msgs, rows[i].EtoD())
	}
	return msgs, nil
}
