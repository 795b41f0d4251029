package userrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"aramesh-server/services/therapy-api/internal/domain/user"
	"aramesh-server/services/therapy-api/internal/infrastructure/database/dbschema"
	"aramesh-server/services/therapy-api/internal/utils/platformerrors"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var _ user.Repository = (*Repository)(nil)

func (r *Repository) Create(ctx context.Context, u *user.User) error {
	schema := dbschema.NewSchemaUser(u)
	if err := r.db.WithContext(ctx).Create(schema).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeConflict, "email already registered", err, "1b3c5d7e-9f0a-4b2c-8d4e-6f8a0b2c4d5e")
		}
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to create user", err, "")
	}
	u.ID = schema.ID
	return nil
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var row dbschema.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound, "user not found", err, "")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to query user by email", err, "")
	}
	return row.EtoD(), nil
}

func (r *Repository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var row dbschema.User
	err := r.db.WithContext(ctx).First(&row, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound, "user not found", err, "")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to query user", err, "")
	}
	return row.EtoD(), nil
}
