package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aramesh-server/services/therapy-api/internal/domain/conversation"
	"aramesh-server/services/therapy-api/internal/domain/tokenusage"
	"aramesh-server/services/therapy-api/internal/utils/platformerrors"
)

type memConversationRepo struct {
	mu     sync.Mutex
	nextID uint
	items  map[uint]*conversation.Conversation
}

func newMemConversationRepo() *memConversationRepo {
	return &memConversationRepo{items: make(map[uint]*conversation.Conversation)}
}

func (r *memConversationRepo) Create(ctx context.Context, conv *conversation.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	conv.ID = r.nextID
	r.items[conv.ID] = conv
	return nil
}

func (r *memConversationRepo) FindActiveByUserID(ctx context.Context, userID uint) (*conversation.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.items {
		if c.UserID == userID && c.Status == conversation.ConversationStatusActive {
			return c, nil
		}
	}
	return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
		platformerrors.ErrorTypeNotFound, "active conversation not found", nil, "")
}

func (r *memConversationRepo) FindByID(ctx context.Context, id uint) (*conversation.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.items[id]; ok {
		return c, nil
	}
	return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
		platformerrors.ErrorTypeNotFound, "conversation not found", nil, "")
}

func (r *memConversationRepo) Touch(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.items[id]; ok {
		c.UpdatedAt = time.Now()
		return nil
	}
	return platformerrors.NewError(ctx, platformerrors.LayerRepository,
		platformerrors.ErrorTypeNotFound, "conversation not found", nil, "")
}

type memMessageRepo struct {
	mu     sync.Mutex
	nextID uint
	items  []*conversation.Message
}

func (r *memMessageRepo) Create(ctx context.Context, msg *conversation.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	msg.ID = r.nextID
	r.items = append(r.items, msg)
	return nil
}

func (r *memMessageRepo) ListByConversationID(ctx context.Context, conversationID uint) ([]*conversation.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*conversation.Message, 0)
	for _, m := range r.items {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out, nil
}

type noopLocker struct{ mu sync.Mutex }

func (l *noopLocker) WithLock(ctx context.Context, key string, ttl time.Duration, fn func() error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn()
}

type memUsageRepo struct {
	mu        sync.Mutex
	createErr error
	records   []*tokenusage.TokenUsage
}

func (r *memUsageRepo) Create(ctx context.Context, usage *tokenusage.TokenUsage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.records = append(r.records, usage)
	return nil
}

func (r *memUsageRepo) GetUserUsage(ctx context.Context, userID uint, startDate, endDate time.Time) ([]tokenusage.UsageSummary, error) {
	return nil, nil
}

func (r *memUsageRepo) RollupDaily(ctx context.Context, day time.Time) error {
	return nil
}

type stubClient struct {
	mu      sync.Mutex
	reply   string
	usage   *conversation.TokenCount
	err     error
	prompts [][]PromptEntry
}

func (c *stubClient) Complete(ctx context.Context, entries []PromptEntry) (*Completion, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := make([]PromptEntry, len(entries))
	copy(copied, entries)
	c.prompts = append(c.prompts, copied)
	if c.err != nil {
		return nil, c.err
	}
	return &Completion{Text: c.reply, Model: "gemini-2.5-pro", Usage: c.usage}, nil
}

type fixture struct {
	orchestrator *Orchestrator
	convRepo     *memConversationRepo
	msgRepo      *memMessageRepo
	usageRepo    *memUsageRepo
	client       *stubClient
}

func newFixture(client *stubClient) *fixture {
	convRepo := newMemConversationRepo()
	msgRepo := &memMessageRepo{}
	usageRepo := &memUsageRepo{}
	store := conversation.NewStore(convRepo, msgRepo, &noopLocker{})
	usageSvc := tokenusage.NewService(usageRepo)
	return &fixture{
		orchestrator: NewOrchestrator(store, client, usageSvc, zerolog.Nop()),
		convRepo:     convRepo,
		msgRepo:      msgRepo,
		usageRepo:    usageRepo,
		client:       client,
	}
}

func TestSubmitTurnFirstMessage(t *testing.T) {
	f := newFixture(&stubClient{reply: "I hear you. Tell me more."})

	result, err := f.orchestrator.SubmitTurn(context.Background(), 1, "I feel anxious today")
	require.NoError(t, err)

	assert.Equal(t, conversation.ConversationStatusActive, result.Conversation.Status)
	assert.Equal(t, conversation.SenderUser, result.UserMessage.Sender)
	assert.Equal(t, "I feel anxious today", result.UserMessage.Text)
	assert.Equal(t, conversation.SenderAI, result.AIMessage.Sender)
	assert.Equal(t, "I hear you. Tell me more.", result.AIMessage.Text)

	assert.Len(t, f.convRepo.items, 1)
	require.Len(t, f.msgRepo.items, 2)
	assert.Equal(t, conversation.SenderUser, f.msgRepo.items[0].Sender)
	assert.Equal(t, conversation.SenderAI, f.msgRepo.items[1].Sender)
}

func TestSubmitTurnReusesActiveConversation(t *testing.T) {
	f := newFixture(&stubClient{reply: "ok"})
	ctx := context.Background()

	first, err := f.orchestrator.SubmitTurn(ctx, 7, "hello")
	require.NoError(t, err)
	second, err := f.orchestrator.SubmitTurn(ctx, 7, "still here")
	require.NoError(t, err)

	assert.Equal(t, first.Conversation.ID, second.Conversation.ID)
	assert.Len(t, f.convRepo.items, 1)
	assert.Len(t, f.msgRepo.items, 4)
}

func TestSubmitTurnEmptyTextRejected(t *testing.T) {
	f := newFixture(&stubClient{reply: "ok"})

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := f.orchestrator.SubmitTurn(context.Background(), 1, text)
		require.Error(t, err)
		assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
	}
	assert.Empty(t, f.convRepo.items)
	assert.Empty(t, f.msgRepo.items)
}

func TestSubmitTurnPromptAssembly(t *testing.T) {
	client := &stubClient{reply: "ok"}
	f := newFixture(client)
	ctx := context.Background()

	_, err := f.orchestrator.SubmitTurn(ctx, 1, "first message")
	require.NoError(t, err)

	prompt := client.prompts[0]
	require.Len(t, prompt, 2)
	assert.Equal(t, "system", prompt[0].Role)
	assert.Contains(t, prompt[0].Content, "empathetic")
	assert.Equal(t, "user", prompt[1].Role)
	assert.Equal(t, "first message", prompt[1].Content)

	_, err = f.orchestrator.SubmitTurn(ctx, 1, "second message")
	require.NoError(t, err)

	prompt = client.prompts[1]
	require.Len(t, prompt, 4)
	assert.Equal(t, []string{"system", "user", "assistant", "user"},
		[]string{prompt[0].Role, prompt[1].Role, prompt[2].Role, prompt[3].Role})
}

func TestSubmitTurnWindowTruncation(t *testing.T) {
	client := &stubClient{reply: "ok"}
	f := newFixture(client)
	ctx := context.Background()

	// 15 turns produce 30 stored messages; the 15th prompt carries 29
	// prior messages plus the new one, which must be cut to 20.
	for i := 0; i < 15; i++ {
		_, err := f.orchestrator.SubmitTurn(ctx, 1, fmt.Sprintf("turn %d", i))
		require.NoError(t, err)
	}

	last := client.prompts[len(client.prompts)-1]
	require.Len(t, last, contextWindowSize+1)
	assert.Equal(t, "system", last[0].Role)
	// The newest user message is always the tail of the window.
	assert.Equal(t, "user", last[len(last)-1].Role)
	assert.Equal(t, "turn 14", last[len(last)-1].Content)
}

func TestSubmitTurnRecordsUsage(t *testing.T) {
	client := &stubClient{
		reply: "ok",
		usage: &conversation.TokenCount{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}
	f := newFixture(client)

	result, err := f.orchestrator.SubmitTurn(context.Background(), 1, "hello")
	require.NoError(t, err)

	require.NotNil(t, result.AIMessage.Usage)
	assert.Equal(t, 15, result.AIMessage.Usage.TotalTokens)

	require.Len(t, f.usageRepo.records, 1)
	record := f.usageRepo.records[0]
	assert.Equal(t, 10, record.PromptTokens)
	assert.Equal(t, 5, record.CompletionTokens)
	assert.Equal(t, 15, record.TotalTokens)
	assert.Equal(t, "gemini-2.5-pro", record.Model)
	assert.False(t, record.EstimatedCostUSD.IsZero())
}

func TestSubmitTurnUsageWriteFailureSurfaces(t *testing.T) {
	client := &stubClient{
		reply: "ok",
		usage: &conversation.TokenCount{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}
	f := newFixture(client)
	f.usageRepo.createErr = platformerrors.NewError(context.Background(),
		platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
		"failed to create token usage record", errors.New("db down"), "")

	_, err := f.orchestrator.SubmitTurn(context.Background(), 1, "hello")
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeDatabaseError))

	// Both turn halves stay persisted; only the accounting write failed.
	require.Len(t, f.msgRepo.items, 2)
	assert.Equal(t, conversation.SenderUser, f.msgRepo.items[0].Sender)
	assert.Equal(t, conversation.SenderAI, f.msgRepo.items[1].Sender)
	assert.Empty(t, f.usageRepo.records)
}

func TestSubmitTurnNoUsageReported(t *testing.T) {
	f := newFixture(&stubClient{reply: "ok"})

	result, err := f.orchestrator.SubmitTurn(context.Background(), 1, "hello")
	require.NoError(t, err)

	assert.Nil(t, result.AIMessage.Usage)
	assert.Empty(t, f.usageRepo.records)
}

func TestSubmitTurnGenerationFailureKeepsUserMessage(t *testing.T) {
	client := &stubClient{err: platformerrors.NewError(context.Background(),
		platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
		"upstream unavailable", errors.New("502"), "")}
	f := newFixture(client)
	ctx := context.Background()

	_, err := f.orchestrator.SubmitTurn(ctx, 1, "are you there?")
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeExternal))

	// The user message survives the failed turn; no AI message, no usage.
	require.Len(t, f.msgRepo.items, 1)
	assert.Equal(t, conversation.SenderUser, f.msgRepo.items[0].Sender)
	assert.Empty(t, f.usageRepo.records)

	// Resubmitting after recovery yields a duplicate user entry.
	client.mu.Lock()
	client.err = nil
	client.reply = "yes, I'm here"
	client.mu.Unlock()

	_, err = f.orchestrator.SubmitTurn(ctx, 1, "are you there?")
	require.NoError(t, err)

	history, err := f.orchestrator.GetHistory(ctx, 1)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "are you there?", history[0].Text)
	assert.Equal(t, "are you there?", history[1].Text)
	assert.Equal(t, conversation.SenderAI, history[2].Sender)
}

func TestGetHistoryWithoutConversation(t *testing.T) {
	f := newFixture(&stubClient{reply: "ok"})

	history, err := f.orchestrator.GetHistory(context.Background(), 42)
	require.NoError(t, err)
	assert.NotNil(t, history)
	assert.Empty(t, history)
}

func TestGetHistoryOrdering(t *testing.T) {
	f := newFixture(&stubClient{reply: "ok"})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.orchestrator.SubmitTurn(ctx, 1, fmt.Sprintf("turn %d", i))
		require.NoError(t, err)
	}

	history, err := f.orchestrator.GetHistory(ctx, 1)
	require.NoError(t, err)
	require.Len(t, history, 6)
	for i := 0; i < 6; i += 2 {
		assert.Equal(t, conversation.SenderUser, history[i].Sender)
		assert.Equal(t, conversation.SenderAI, history[i+1].Sender)
	}
}
