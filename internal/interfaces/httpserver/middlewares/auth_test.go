package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aramesh-server/services/therapy-api/internal/domain/user"
	"aramesh-server/services/therapy-api/internal/utils/platformerrors"
)

type stubUserRepo struct {
	users map[string]*user.User
}

func (r *stubUserRepo) Create(ctx context.Context, u *user.User) error {
	u.ID = uint(len(r.users) + 1)
	r.users[u.Email] = u
	return nil
}

func (r *stubUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	if u, ok := r.users[email]; ok {
		return u, nil
	}
	return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
		platformerrors.ErrorTypeNotFound, "user not found", nil, "")
}

func (r *stubUserRepo) FindByID(ctx context.Context, id uint) (*user.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
		platformerrors.ErrorTypeNotFound, "user not found", nil, "")
}

func newAuthedRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := user.NewService(&stubUserRepo{users: make(map[string]*user.User)}, "test-secret", time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, "sara@example.com", "Sara", "hunter2secret", user.RolePatient)
	require.NoError(t, err)
	_, token, err := svc.Login(ctx, "sara@example.com", "hunter2secret")
	require.NoError(t, err)

	router := gin.New()
	router.GET("/protected", Auth(svc), func(c *gin.Context) {
		userID, ok := UserIDFromContext(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return router, token
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	router, token := newAuthedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	router, _ := newAuthedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsMalformedHeader(t *testing.T) {
	router, token := newAuthedRouter(t)

	for _, header := range []string{"Token " + token, "Bearer", token} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestAuthMiddlewareRejectsForgedToken(t *testing.T) {
	router, _ := newAuthedRouter(t)

	forger := user.NewService(&stubUserRepo{users: make(map[string]*user.User)}, "other-secret", time.Hour)
	ctx := context.Background()
	_, err := forger.Register(ctx, "mallory@example.com", "Mallory", "hunter2secret", user.RolePatient)
	require.NoError(t, err)
	_, forged, err := forger.Login(ctx, "mallory@example.com", "hunter2secret")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
