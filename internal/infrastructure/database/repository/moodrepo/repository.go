package moodrepo

import (
	"context"

	"gorm.io/gorm"

	"aramesh-server/services/therapy-api/internal/domain/mood"
	"aramesh-server/services/therapy-api/internal/infrastructure/database/dbschema"
	"aramesh-server/services/therapy-api/internal/utils/platformerrors"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var _ mood.Repository = (*Repository)(nil)

func (r *Repository) Create(ctx context.Context, log *mood.MoodLog) error {
	schema := dbschema.NewSchemaMoodLog(log)
	if err := r.db.WithContext(ctx).Create(schema).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to create mood log", err, "")
	}
	log.ID = schema.ID
	return nil
}

func (r *Repository) ListByUserID(ctx context.Context, userID uint, limit int) ([]*mood.MoodLog, error) {
	var rows []dbschema.MoodLog
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to query mood logs", err, "")
	}

	logs := make([]*mood.MoodLog, 0, len(rows))
	for i := range rows {
		logs = append(logs, rows[i].EtoD())
	}
	return logs, nil
}
