package journalrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"aramesh-server/services/therapy-api/internal/domain/journal"
	"aramesh-server/services/therapy-api/internal/infrastructure/database/dbschema"
	"aramesh-server/services/therapy-api/internal/utils/platformerrors"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var _ journal.Repository = (*Repository)(nil)

func (r *Repository) Create(ctx context.Context, entry *journal.Entry) error {
	schema := dbschema.NewSchemaJournalEntry(entry)
	if err := r.db.WithContext(ctx).Create(schema).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to create journal entry", err, "")
	}
	entry.ID = schema.ID
	return nil
}

func (r *Repository) FindByPublicID(ctx context.Context, publicID string) (*journal.Entry, error) {
	var row dbschema.JournalEntry
	err := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound, "journal entry not found", err, "")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to query journal entry", err, "")
	}
	return row.EtoD(), nil
}

func (r *Repository) ListByUserID(ctx context.Context, userID uint) ([]*journal.Entry, error) {
	var rows []dbschema.JournalEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to query journal entries", err, "")
	}

	entries := make([]*journal.Entry, 0, len(rows))
	for i := range rows {
		entries = append(entries, rows[i].EtoD())
	}
	return entries, nil
}

func (r *Repository) Update(ctx context.Context, entry *journal.Entry) error {
	schema := dbschema.NewSchemaJournalEntry(entry)
	err := r.db.WithContext(ctx).
		Model(&dbschema.JournalEntry{}).
		Where("id = ?", schema.ID).
		Updates(map[string]any{
			"title":      schema.Title,
			"content":    schema.Content,
			"updated_at": schema.UpdatedAt,
		}).Error
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to update journal entry", err, "")
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Delete(&dbschema.JournalEntry{}, id).Error
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to delete journal entry", err, "")
	}
	return nil
}
