package chathandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aramesh-server/services/therapy-api/internal/domain/chat"
	"aramesh-server/services/therapy-api/internal/domain/conversation"
	"aramesh-server/services/therapy-api/internal/infrastructure/metrics"
	"aramesh-server/services/therapy-api/internal/interfaces/httpserver/middlewares"
	"aramesh-server/services/therapy-api/internal/interfaces/httpserver/requests"
	"aramesh-server/services/therapy-api/internal/interfaces/httpserver/responses"
	"aramesh-server/services/therapy-api/internal/utils/platformerrors"
)

type Handler struct {
	orchestrator *chat.Orchestrator
	metrics      *metrics.Metrics
}

func New(orchestrator *chat.Orchestrator, m *metrics.Metrics) *Handler {
	return &Handler{orchestrator: orchestrator, metrics: m}
}

// SubmitMessage runs one full AI turn: persist the user message, generate
// and persist the reply.
func (h *Handler) SubmitMessage(c *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized,
			"authentication required", "0f2a4b6c-8d9e-4f0a-1b2c-3d4e5f6a7b8c")
		return
	}

	var req requests.ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			"invalid chat payload", "1a3b5c7d-9e0f-4a1b-2c3d-4e5f6a7b8c9d")
		return
	}

	result, err := h.orchestrator.SubmitTurn(c.Request.Context(), userID, req.Text)
	if err != nil {
		h.metrics.ObserveChatTurn("error", "", 0, 0)
		responses.HandleError(c, err, "failed to process message")
		return
	}

	prompt, completion := 0, 0
	if result.AIMessage.Usage != nil {
		prompt = result.AIMessage.Usage.PromptTokens
		completion = result.AIMessage.Usage.CompletionTokens
	}
	h.metrics.ObserveChatTurn("ok", result.Model, prompt, completion)

	c.JSON(http.StatusCreated, gin.H{
		"conversation_id": result.Conversation.PublicID,
		"user_message":    result.UserMessage,
		"ai_message":      result.AIMessage,
	})
}

// GetHistory returns the full transcript of the caller's active
// conversation, oldest first.
func (h *Handler) GetHistory(c *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized,
			"authentication required", "2b4c6d8e-0f1a-4b2c-3d4e-5f6a7b8c9d0e")
		return
	}

	history, err := h.orchestrator.GetHistory(c.Request.Context(), userID)
	if err != nil {
		responses.HandleError(c, err, "failed to load history")
		return
	}
	if history == nil {
		history = []*conversation.Message{}
	}

	c.JSON(http.StatusOK, gin.H{"messages": history})
}
