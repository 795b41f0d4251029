package authhandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aramesh-server/services/therapy-api/internal/domain/user"
	"aramesh-server/services/therapy-api/internal/interfaces/httpserver/middlewares"
	"aramesh-server/services/therapy-api/internal/interfaces/httpserver/requests"
	"aramesh-server/services/therapy-api/internal/interfaces/httpserver/responses"
	"aramesh-server/services/therapy-api/internal/utils/platformerrors"
)

type Handler struct {
	users *user.Service
}

func New(users *user.Service) *Handler {
	return &Handler{users: users}
}

// Register creates a new account and returns the public profile.
func (h *Handler) Register(c *gin.Context) {
	var req requests.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			"invalid registration payload", "7c9d1e3f-5a6b-4c7d-8e9f-0a1b2c3d4e5f")
		return
	}

	u, err := h.users.Register(c.Request.Context(), req.Email, req.Name, req.Password, user.Role(req.Role))
	if err != nil {
		responses.HandleError(c, err, "registration failed")
		return
	}

	c.JSON(http.StatusCreated, u)
}

// Login verifies credentials and returns a bearer token with the profile.
func (h *Handler) Login(c *gin.Context) {
	var req requests.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			"invalid login payload", "8d0e2f4a-6b7c-4d8e-9f0a-1b2c3d4e5f6a")
		return
	}

	u, token, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		responses.HandleError(c, err, "login failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  u,
	})
}

// Me returns the authenticated user's profile.
func (h *Handler) Me(c *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized,
			"authentication required", "9e1f3a5b-7c8d-4e9f-0a1b-2c3d4e5f6a7b")
		return
	}

	u, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		responses.HandleError(c, err, "failed to load profile")
		return
	}

	c.JSON(http.StatusOK, u)
}
