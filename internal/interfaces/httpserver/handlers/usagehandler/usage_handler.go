package usagehandler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"aramesh-server/services/therapy-api/internal/domain/tokenusage"
	"aramesh-server/services/therapy-api/internal/interfaces/httpserver/middlewares"
	"aramesh-server/services/therapy-api/internal/interfaces/httpserver/responses"
	"aramesh-server/services/therapy-api/internal/utils/platformerrors"
)

type Handler struct {
	usage *tokenusage.Service
}

func New(usage *tokenusage.Service) *Handler {
	return &Handler{usage: usage}
}

// GetMyUsage returns the caller's aggregated token usage per model. Defaults
// to the last 30 days; start/end accept YYYY-MM-DD.
func (h *Handler) GetMyUsage(c *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized,
			"authentication required", "3a5b7c9d-1e2f-4a3b-4c5d-6e7f8a9b0c1d")
		return
	}

	end := time.Now()
	start := end.AddDate(0, 0, -30)

	if raw := c.Query("start"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
				"start must be YYYY-MM-DD", "4b6c8d0e-2f3a-4b4c-5d6e-7f8a9b0c1d2e")
			return
		}
		start = parsed
	}
	if raw := c.Query("end"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
				"end must be YYYY-MM-DD", "5c7d9e1f-3a4b-4c5d-6e7f-8a9b0c1d2e3f")
			return
		}
		// Inclusive end date.
		end = parsed.AddDate(0, 0, 1)
	}

	summaries, err := h.usage.GetMyUsage(c.Request.Context(), userID, start, end)
	if err != nil {
		responses.HandleError(c, err, "failed to load usage")
		return
	}
	if summaries == nil {
		summaries = []tokenusage.UsageSummary{}
	}

	c.JSON(http.StatusOK, gin.H{"usage": summaries})
}
