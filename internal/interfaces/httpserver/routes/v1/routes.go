package v1

import (
	"github.com/gin-gonic/gin"

	"aramesh-server/services/therapy-api/internal/domain/user"
	"aramesh-server/services/therapy-api/internal/interfaces/httpserver/handlers"
	"aramesh-server/services/therapy-api/internal/interfaces/httpserver/middlewares"
)

// Routes wires the v1 API surface.
type Routes struct {
	handlers *handlers.Provider
	users    *user.Service
}

func NewRoutes(provider *handlers.Provider, users *user.Service) *Routes {
	return &Routes{handlers: provider, users: users}
}

// Register mounts the v1 routes on the given group.
func (r *Routes) Register(root *gin.RouterGroup) {
	v1 := root.Group("/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", r.handlers.Auth.Register)
	auth.POST("/login", r.handlers.Auth.Login)

	authed := v1.Group("")
	authed.Use(middlewares.Auth(r.users))

	authed.GET("/auth/me", r.handlers.Auth.Me)

	authed.POST("/chat/messages", r.handlers.Chat.SubmitMessage)
	authed.GET("/chat/history", r.handlers.Chat.GetHistory)

	authed.POST("/moods", r.handlers.Mood.Record)
	authed.GET("/moods", r.handlers.Mood.List)

	authed.POST("/journals", r.handlers.Journal.Create)
	authed.GET("/journals", r.handlers.Journal.List)
	authed.GET("/journals/:id", r.handlers.Journal.Get)
	authed.PUT("/journals/:id", r.handlers.Journal.Update)
	authed.PATCH("/journals/:id", r.handlers.Journal.Update)
	authed.DELETE("/journals/:id", r.handlers.Journal.Delete)

	authed.GET("/usage", r.handlers.Usage.GetMyUsage)
}
