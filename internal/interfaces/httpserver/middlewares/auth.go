package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"

	"aramesh-server/services/therapy-api/internal/domain/user"
	"aramesh-server/services/therapy-api/internal/interfaces/httpserver/responses"
	"aramesh-server/services/therapy-api/internal/utils/platformerrors"
)

const (
	// ContextUserID is the gin context key carrying the authenticated user's ID.
	ContextUserID = "user_id"
	// ContextUserRole is the gin context key carrying the authenticated user's role.
	ContextUserRole = "user_role"
)

// Auth validates the Bearer token and stores the authenticated identity in
// the gin context.
func Auth(users *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized,
				"missing authorization header", "5f7a9b1c-3d4e-4f5a-b6c8-d0e2f4a6b8c0")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized,
				"malformed authorization header", "6a8b0c2d-4e5f-4a6b-c8d0-e2f4a6b8c0d2")
			return
		}

		claims, err := users.VerifyToken(c.Request.Context(), parts[1])
		if err != nil {
			responses.HandleError(c, err, "invalid token")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, string(claims.Role))
		c.Next()
	}
}

// UserIDFromContext returns the authenticated user id, or false when the
// request is unauthenticated.
func UserIDFromContext(c *gin.Context) (uint, bool) {
	val, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := val.(uint)
	return id, ok
}
