package usagerepo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"aramesh-server/services/therapy-api/internal/domain/tokenusage"
	"aramesh-server/services/therapy-api/internal/utils/platformerrors"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var _ tokenusage.Repository = (*Repository)(nil)

func (r *Repository) Create(ctx context.Context, usage *tokenusage.TokenUsage) error {
	if err := r.db.WithContext(ctx).Create(usage).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to create token usage record", err, "")
	}
	return nil
}

func (r *Repository) GetUserUsage(ctx context.Context, userID uint, startDate, endDate time.Time) ([]tokenusage.UsageSummary, error) {
	var summaries []tokenusage.UsageSummary
	err := r.db.WithContext(ctx).
		Model(&tokenusage.TokenUsage{}).
		Select(`model,
			SUM(prompt_tokens) as total_prompt_tokens,
			SUM(completion_tokens) as total_completion_tokens,
			SUM(total_tokens) as total_tokens,
			COUNT(*) as request_count,
			SUM(estimated_cost_usd) as estimated_cost_usd`).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, startDate, endDate).
		Group("model").
		Order("model ASC").
		Scan(&summaries).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to aggregate token usage", err, "")
	}
	if summaries == nil {
		summaries = []tokenusage.UsageSummary{}
	}
	return summaries, nil
}

// RollupDaily upserts one token_usage_daily row per (user, model) for the
// given day. Re-running for the same day overwrites, so the job is
// idempotent.
func (r *Repository) RollupDaily(ctx context.Context, day time.Time) error {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	err := r.db.WithContext(ctx).Exec(`
		INSERT INTO token_usage_daily
			(date, user_id, model, total_prompt_tokens, total_completion_tokens,
			 total_tokens, request_count, estimated_cost_usd, created_at, updated_at)
		SELECT ?::date, user_id, model,
			SUM(prompt_tokens), SUM(completion_tokens), SUM(total_tokens),
			COUNT(*), SUM(estimated_cost_usd), NOW(), NOW()
		FROM token_usage
		WHERE created_at >= ? AND created_at < ?
		GROUP BY user_id, model
		ON CONFLICT (date, user_id, model) DO UPDATE SET
			total_prompt_tokens = EXCLUDED.total_prompt_tokens,
			total_completion_tokens = EXCLUDED.total_completion_tokens,
			total_tokens = EXCLUDED.total_tokens,
			request_count = EXCLUDED.request_count,
			estimated_cost_usd = EXCLUDED.estimated_cost_usd,
			updated_at = NOW()`,
		start.Format("2006-01-02"), start, end).Error
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to roll up daily token usage", err, "")
	}
	return nil
}
