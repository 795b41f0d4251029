package journalhandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aramesh-server/services/therapy-api/internal/domain/journal"
	"aramesh-server/services/therapy-api/internal/interfaces/httpserver/middlewares"
	"aramesh-server/services/therapy-api/internal/interfaces/httpserver/requests"
	"aramesh-server/services/therapy-api/internal/interfaces/httpserver/responses"
	"aramesh-server/services/therapy-api/internal/utils/platformerrors"
)

type Handler struct {
	journals *journal.Service
}

func New(journals *journal.Service) *Handler {
	return &Handler{journals: journals}
}

func (h *Handler) Create(c *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized,
			"authentication required", "6f8a0b2c-4d5e-4f6a-7b8c-9d0e1f2a3b4c")
		return
	}

	var req requests.JournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			"invalid journal payload", "7a9b1c3d-5e6f-4a7b-8c9d-0e1f2a3b4c5d")
		return
	}

	entry, err := h.journals.Create(c.Request.Context(), userID, req.Title, req.Content)
	if err != nil {
		responses.HandleError(c, err, "failed to create journal entry")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *Handler) List(c *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized,
			"authentication required", "8b0c2d4e-6f7a-4b8c-9d0e-1f2a3b4c5d6e")
		return
	}

	entries, err := h.journals.List(c.Request.Context(), userID)
	if err != nil {
		responses.HandleError(c, err, "failed to list journal entries")
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (h *Handler) Get(c *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized,
			"authentication required", "9c1d3e5f-7a8b-4c9d-0e1f-2a3b4c5d6e7f")
		return
	}

	entry, err := h.journals.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		responses.HandleError(c, err, "failed to load journal entry")
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *Handler) Update(c *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized,
			"authentication required", "0d2e4f6a-8b9c-4d0e-1f2a-3b4c5d6e7f8a")
		return
	}

	var req requests.JournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			"invalid journal payload", "1e3f5a7b-9c0d-4e1f-2a3b-4c5d6e7f8a9b")
		return
	}

	entry, err := h.journals.Update(c.Request.Context(), userID, c.Param("id"), req.Title, req.Content)
	if err != nil {
		responses.HandleError(c, err, "failed to update journal entry")
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *Handler) Delete(c *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized,
			"authentication required", "2f4a6b8c-0d1e-4f2a-3b4c-5d6e7f8a9b0c")
		return
	}

	if err := h.journals.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		responses.HandleError(c, err, "failed to delete journal entry")
		return
	}

	c.JSON(http.StatusOK, responses.GeneralResponse{Status: "deleted"})
}
