package conversation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"aramesh-server/services/therapy-api/internal/utils/platformerrors"
)

type fakeConversationRepo struct {
	mu     sync.Mutex
	nextID uint
	items  map[uint]*Conversation
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{items: make(map[uint]*Conversation)}
}

func (r *fakeConversationRepo) Create(ctx context.Context, conv *Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	conv.ID = r.nextID
	r.items[conv.ID] = conv
	return nil
}

func (r *fakeConversationRepo) FindActiveByUserID(ctx context.Context, userID uint) (*Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.items {
		if c.UserID == userID && c.Status == ConversationStatusActive {
			return c, nil
		}
	}
	return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
		platformerrors.ErrorTypeNotFound, "active conversation not found", nil, "")
}

func (r *fakeConversationRepo) FindByID(ctx context.Context, id uint) (*Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.items[id]; ok {
		return c, nil
	}
	return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
		platformerrors.ErrorTypeNotFound, "conversation not found", nil, "")
}

func (r *fakeConversationRepo) Touch(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.items[id]; ok {
		c.UpdatedAt = time.Now()
		return nil
	}
	return platformerrors.NewError(ctx, platformerrors.LayerRepository,
		platformerrors.ErrorTypeNotFound, "conversation not found", nil, "")
}

type fakeMessageRepo struct {
	mu     sync.Mutex
	nextID uint
	items  []*Message
}

func (r *fakeMessageRepo) Create(ctx context.Context, msg *Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	msg.ID = r.nextID
	r.items = append(r.items, msg)
	return nil
}

func (r *fakeMessageRepo) ListByConversationID(ctx context.Context, conversationID uint) ([]*Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Message, 0)
	for _, m := range r.items {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out, nil
}

type mutexLocker struct{ mu sync.Mutex }

func (l *mutexLocker) WithLock(ctx context.Context, key string, ttl time.Duration, fn func() error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn()
}

func newTestStore() (*Store, *fakeConversationRepo, *fakeMessageRepo) {
	convRepo := newFakeConversationRepo()
	msgRepo := &fakeMessageRepo{}
	return NewStore(convRepo, msgRepo, &mutexLocker{}), convRepo, msgRepo
}

func TestFindOrCreateActiveCreatesOnce(t *testing.T) {
	store, convRepo, _ := newTestStore()
	ctx := context.Background()

	first, err := store.FindOrCreateActive(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, ConversationStatusActive, first.Status)
	assert.NotEmpty(t, first.PublicID)

	second, err := store.FindOrCreateActive(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, convRepo.items, 1)
}

func TestFindOrCreateActivePerUser(t *testing.T) {
	store, convRepo, _ := newTestStore()
	ctx := context.Background()

	a, err := store.FindOrCreateActive(ctx, 1)
	require.NoError(t, err)
	b, err := store.FindOrCreateActive(ctx, 2)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, convRepo.items, 2)
}

func TestFindOrCreateActiveConcurrent(t *testing.T) {
	store, convRepo, _ := newTestStore()

	var g errgroup.Group
	for i := 0; i < 16; i++ {
		g.Go(func() error {
			_, err := store.FindOrCreateActive(context.Background(), 1)
			return err
		})
	}
	require.NoError(t, g.Wait())
	assert.Len(t, convRepo.items, 1)
}

func TestAppendMessageTouchesConversation(t *testing.T) {
	store, convRepo, msgRepo := newTestStore()
	ctx := context.Background()

	conv, err := store.FindOrCreateActive(ctx, 1)
	require.NoError(t, err)
	before := conv.UpdatedAt

	time.Sleep(5 * time.Millisecond)
	msg, err := store.AppendMessage(ctx, conv.ID, SenderUser, "hello", nil)
	require.NoError(t, err)

	assert.Equal(t, SenderUser, msg.Sender)
	assert.NotEmpty(t, msg.PublicID)
	assert.Len(t, msgRepo.items, 1)
	assert.True(t, convRepo.items[conv.ID].UpdatedAt.After(before))
}

func TestListMessagesWithoutActiveConversation(t *testing.T) {
	store, _, _ := newTestStore()

	msgs, err := store.ListMessages(context.Background(), 99)
	require.NoError(t, err)
	assert.NotNil(t, msgs)
	assert.Empty(t, msgs)
}

func TestListMessagesOrdering(t *testing.T) {
	store, _, _ := newTestStore()
	ctx := context.Background()

	conv, err := store.FindOrCreateActive(ctx, 1)
	require.NoError(t, err)

	_, err = store.AppendMessage(ctx, conv.ID, SenderUser, "one", nil)
	require.NoError(t, err)
	_, err = store.AppendMessage(ctx, conv.ID, SenderAI, "two", nil)
	require.NoError(t, err)

	msgs, err := store.ListMessages(ctx, 1)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "one", msgs[0].Text)
	assert.Equal(t, "two", msgs[1].Text)
}
