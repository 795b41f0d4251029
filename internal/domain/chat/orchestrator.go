package chat

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"aramesh-server/services/therapy-api/internal/domain/conversation"
	"aramesh-server/services/therapy-api/internal/domain/tokenusage"
	"aramesh-server/services/therapy-api/internal/utils/functional"
	"aramesh-server/services/therapy-api/internal/utils/platformerrors"
)

// contextWindowSize bounds how many trailing messages are replayed to the
// model on each turn. The persona entry is prepended on top of the window.
const contextWindowSize = 20

const personaInstruction = "You are a compassionate, empathetic therapy companion. " +
	"Listen carefully, respond in a warm, non-judgmental tone, and gently encourage " +
	"the user to explore their feelings. Never diagnose, prescribe, or claim to be a " +
	"licensed clinician; suggest professional help when the conversation warrants it. " +
	"Reply in the same language the user writes in."

// PromptEntry is one provider-agnostic entry of the assembled prompt.
type PromptEntry struct {
	Role    string
	Content string
}

// Completion is the model's reply for one turn. Usage is nil when the
// provider omits usage accounting.
type Completion struct {
	Text  string
	Model string
	Usage *conversation.TokenCount
}

// GenerationClient produces one completion for an assembled prompt.
type GenerationClient interface {
	Complete(ctx context.Context, entries []PromptEntry) (*Completion, error)
}

// TurnResult is the outcome of one submitted user turn.
type TurnResult struct {
	Conversation *conversation.Conversation
	UserMessage  *conversation.Message
	AIMessage    *conversation.Message
	Model        string
}

// Orchestrator runs the AI turn pipeline: persist the user message, assemble
// the trailing context window, call the model, persist the reply and its
// usage.
type Orchestrator struct {
	store  *conversation.Store
	client GenerationClient
	usage  *tokenusage.Service
	logger zerolog.Logger
}

func NewOrchestrator(store *conversation.Store, client GenerationClient, usage *tokenusage.Service, logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		store:  store,
		client: client,
		usage:  usage,
		logger: logger,
	}
}

// SubmitTurn persists the user's message, generates the AI reply and persists
// it. The user message is kept even when generation fails, so a resubmission
// after an error produces a duplicate user entry rather than losing input.
func (o *Orchestrator) SubmitTurn(ctx context.Context, userID uint, text string) (*TurnResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "message text must not be empty", nil, "c9f2a1d0-5b7e-4e1a-9c3d-8f0b6a2e4d17")
	}

	conv, err := o.store.FindOrCreateActive(ctx, userID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to resolve active conversation")
	}

	userMsg, err := o.store.AppendMessage(ctx, conv.ID, conversation.SenderUser, text, nil)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to persist user message")
	}

	history, err := o.store.ListMessages(ctx, userID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load conversation history")
	}

	entries := assemblePrompt(history)

	completion, err := o.client.Complete(ctx, entries)
	if err != nil {
		// The user message stays persisted; the turn is simply incomplete.
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "model generation failed")
	}

	aiMsg, err := o.store.AppendMessage(ctx, conv.ID, conversation.SenderAI, completion.Text, completion.Usage)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to persist assistant message")
	}

	if completion.Usage != nil {
		record := &tokenusage.TokenUsage{
			UserID:           userID,
			ConversationID:   conv.ID,
			Model:            completion.Model,
			PromptTokens:     completion.Usage.PromptTokens,
			CompletionTokens: completion.Usage.CompletionTokens,
			TotalTokens:      completion.Usage.TotalTokens,
		}
		if err := o.usage.RecordUsage(ctx, record); err != nil {
			// Both messages stay persisted; the caller sees the failure.
			o.logger.Error().Err(err).
				Uint("user_id", userID).
				Uint("conversation_id", conv.ID).
				Msg("failed to record token usage")
			return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to record token usage")
		}
	}

	return &TurnResult{
		Conversation: conv,
		UserMessage:  userMsg,
		AIMessage:    aiMsg,
		Model:        completion.Model,
	}, nil
}

// GetHistory returns the full active-conversation transcript for the user,
// oldest first. Users without an active conversation get an empty slice.
func (o *Orchestrator) GetHistory(ctx context.Context, userID uint) ([]*conversation.Message, error) {
	msgs, err := o.store.ListMessages(ctx, userID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load conversation history")
	}
	return msgs, nil
}

// assemblePrompt builds the provider payload: the persona instruction
// followed by the trailing window of the transcript. User-authored messages
// map to the "user" role; everything else replays as "assistant".
func assemblePrompt(history []*conversation.Message) []PromptEntry {
	window := history
	if len(window) > contextWindowSize {
		window = window[len(window)-contextWindowSize:]
	}

	entries := make([]PromptEntry, 0, len(window)+1)
	entries = append(entries, PromptEntry{Role: "system", Content: personaInstruction})
	entries = append(entries, functional.Map(window, func(m *conversation.Message) PromptEntry {
		role := "assistant"
		if m.Sender == conversation.SenderUser {
			role = "user"
		}
		return PromptEntry{Role: role, Content: m.Text}
	})...)
	return entries
}
