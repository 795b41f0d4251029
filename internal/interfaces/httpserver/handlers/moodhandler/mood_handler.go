package moodhandler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"aramesh-server/services/therapy-api/internal/domain/mood"
	"aramesh-server/services/therapy-api/internal/interfaces/httpserver/middlewares"
	"aramesh-server/services/therapy-api/internal/interfaces/httpserver/requests"
	"aramesh-server/services/therapy-api/internal/interfaces/httpserver/responses"
	"aramesh-server/services/therapy-api/internal/utils/platformerrors"
)

type Handler struct {
	moods *mood.Service
}

func New(moods *mood.Service) *Handler {
	return &Handler{moods: moods}
}

// Record stores one mood sample for the caller.
func (h *Handler) Record(c *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized,
			"authentication required", "3c5d7e9f-1a2b-4c3d-4e5f-6a7b8c9d0e1f")
		return
	}

	var req requests.MoodLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			"invalid mood payload", "4d6e8f0a-2b3c-4d4e-5f6a-7b8c9d0e1f2a")
		return
	}

	log, err := h.moods.Record(c.Request.Context(), userID, req.Score, req.Note)
	if err != nil {
		responses.HandleError(c, err, "failed to record mood")
		return
	}

	c.JSON(http.StatusCreated, log)
}

// List returns the caller's recent mood samples, newest first.
func (h *Handler) List(c *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized,
			"authentication required", "5e7f9a1b-3c4d-4e5f-6a7b-8c9d0e1f2a3b")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	logs, err := h.moods.List(c.Request.Context(), userID, limit)
	if err != nil {
		responses.HandleError(c, err, "failed to list moods")
		return
	}

	c.JSON(http.StatusOK, gin.H{"moods": logs})
}
