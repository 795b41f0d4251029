//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"aramesh-server/services/therapy-api/internal/config"
	"aramesh-server/services/therapy-api/internal/domain/chat"
	"aramesh-server/services/therapy-api/internal/domain/conversation"
	"aramesh-server/services/therapy-api/internal/domain/journal"
	"aramesh-server/services/therapy-api/internal/domain/mood"
	"aramesh-server/services/therapy-api/internal/domain/tokenusage"
	"aramesh-server/services/therapy-api/internal/domain/user"
	"aramesh-server/services/therapy-api/internal/infrastructure/cache"
	"aramesh-server/services/therapy-api/internal/infrastructure/crontab"
	"aramesh-server/services/therapy-api/internal/infrastructure/database/repository/conversationrepo"
	"aramesh-server/services/therapy-api/internal/infrastructure/database/repository/journalrepo"
	"aramesh-server/services/therapy-api/internal/infrastructure/database/repository/moodrepo"
	"aramesh-server/services/therapy-api/internal/infrastructure/database/repository/usagerepo"
	"aramesh-server/services/therapy-api/internal/infrastructure/database/repository/userrepo"
	"aramesh-server/services/therapy-api/internal/infrastructure/inference"
	"aramesh-server/services/therapy-api/internal/infrastructure/metrics"
	"aramesh-server/services/therapy-api/internal/interfaces/httpserver"
	"aramesh-server/services/therapy-api/internal/interfaces/httpserver/handlers"
)

var repositorySet = wire.NewSet(
	conversationrepo.NewConversationRepository,
	wire.Bind(new(conversation.ConversationRepository), new(*conversationrepo.ConversationRepository)),
	conversationrepo.NewMessageRepository,
	wire.Bind(new(conversation.MessageRepository), new(*conversationrepo.MessageRepository)),
	userrepo.NewRepository,
	wire.Bind(new(user.Repository), new(*userrepo.Repository)),
	moodrepo.NewRepository,
	wire.Bind(new(mood.Repository), new(*moodrepo.Repository)),
	journalrepo.NewRepository,
	wire.Bind(new(journal.Repository), new(*journalrepo.Repository)),
	usagerepo.NewRepository,
	wire.Bind(new(tokenusage.Repository), new(*usagerepo.Repository)),
)

var domainSet = wire.NewSet(
	conversation.NewStore,
	tokenusage.NewService,
	mood.NewService,
	journal.NewService,
	provideUserService,
	chat.NewOrchestrator,
)

// BuildApplication assembles the therapy API with Wire.
func BuildApplication(ctx context.Context) (*Application, error) {
	wire.Build(
		config.Load,
		provideLogger,
		provideGormDB,
		cache.NewUserLocker,
		inference.NewClient,
		wire.Bind(new(chat.GenerationClient), new(*inference.Client)),
		metrics.New,
		repositorySet,
		domainSet,
		handlers.NewProvider,
		httpserver.New,
		crontab.NewScheduler,
		NewApplication,
	)
	return nil, nil
}
