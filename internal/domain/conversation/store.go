package conversation

import (
	"context"
	"fmt"
	"time"

	"aramesh-server/services/therapy-api/internal/utils/platformerrors"
)

const activeLockTTL = 10 * time.Second

// UserLocker serializes conversation creation per user. The Redis-backed
// implementation lives in infrastructure/cache; a process-local fallback is
// used when Redis is not configured.
type UserLocker interface {
	WithLock(ctx context.Context, key string, ttl time.Duration, fn func() error) error
}

// Store guarantees a single ACTIVE thread of messages per user and
// provides ordered retrieval for context assembly.
type Store struct {
	conversations ConversationRepository
	messages      MessageRepository
	locker        UserLocker
}

func NewStore(conversations ConversationRepository, messages MessageRepository, locker UserLocker) *Store {
	return &Store{
		conversations: conversations,
		messages:      messages,
		locker:        locker,
	}
}

// FindOrCreateActive returns the user's ACTIVE conversation, creating one
// when absent. The read-then-create runs under a per-user lock so that two
// concurrent first messages cannot both observe "no active conversation";
// the partial unique index on conversations(user_id) is the storage-level
// backstop should the lock ever be bypassed.
func (s *Store) FindOrCreateActive(ctx context.Context, userID uint) (*Conversation, error) {
	var conv *Conversation

	lockKey := fmt.Sprintf("lock:conversation:active:%d", userID)
	err := s.locker.WithLock(ctx, lockKey, activeLockTTL, func() error {
		existing, err := s.conversations.FindActiveByUserID(ctx, userID)
		if err == nil {
			conv = existing
			return nil
		}
		if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			return err
		}

		created := NewConversation(userID)
		if err := s.conversations.Create(ctx, created); err != nil {
			// A concurrent creator on another instance may have beaten us
			// past the lock; the unique index reports it as a conflict.
			if platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict) {
				existing, findErr := s.conversations.FindActiveByUserID(ctx, userID)
				if findErr == nil {
					conv = existing
					return nil
				}
			}
			return err
		}
		conv = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// AppendMessage appends an immutable message record. Conversation status is
// not validated here; callers are responsible for appending only to active
// conversations.
func (s *Store) AppendMessage(ctx context.Context, conversationID uint, sender SenderRole, text string, usage *TokenCount) (*Message, error) {
	msg := NewMessage(conversationID, sender, text, usage)
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	if err := s.conversations.Touch(ctx, conversationID); err != nil {
		return nil, err
	}
	return msg, nil
}

// ListMessages returns all messages of the user's active conversation,
// oldest first. A user without an active conversation gets an empty slice,
// not an error.
func (s *Store) ListMessages(ctx context.Context, userID uint) ([]*Message, error) {
	conv, err := s.conversations.FindActiveByUserID(ctx, userID)
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			return []*Message{}, nil
		}
		return nil, err
	}
	return s.messages.ListByConversationID(ctx, conv.ID)
}
