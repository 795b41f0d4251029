package handlers

import (
	"aramesh-server/services/therapy-api/internal/domain/chat"
	"aramesh-server/services/therapy-api/internal/domain/journal"
	"aramesh-server/services/therapy-api/internal/domain/mood"
	"aramesh-server/services/therapy-api/internal/domain/tokenusage"
	"aramesh-server/services/therapy-api/internal/domain/user"
	"aramesh-server/services/therapy-api/internal/infrastructure/metrics"
	"aramesh-server/services/therapy-api/internal/interfaces/httpserver/handlers/authhandler"
	"aramesh-server/services/therapy-api/internal/interfaces/httpserver/handlers/chathandler"
	"aramesh-server/services/therapy-api/internal/interfaces/httpserver/handlers/journalhandler"
	"aramesh-server/services/therapy-api/internal/interfaces/httpserver/handlers/moodhandler"
	"aramesh-server/services/therapy-api/internal/interfaces/httpserver/handlers/usagehandler"
)

// Provider bundles every HTTP handler for route registration.
type Provider struct {
	Auth    *authhandler.Handler
	Chat    *chathandler.Handler
	Mood    *moodhandler.Handler
	Journal *journalhandler.Handler
	Usage   *usagehandler.Handler
}

func NewProvider(
	users *user.Service,
	orchestrator *chat.Orchestrator,
	moods *mood.Service,
	journals *journal.Service,
	usage *tokenusage.Service,
	m *metrics.Metrics,
) *Provider {
	return &Provider{
		Auth:    authhandler.New(users),
		Chat:    chathandler.New(orchestrator, m),
		Mood:    moodhandler.New(moods),
		Journal: journalhandler.New(journals),
		Usage:   usagehandler.New(usage),
	}
}
