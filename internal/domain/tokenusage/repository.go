package tokenusage

import (
	"context"
	"time"
)

// Repository defines the interface for token usage data access
type Repository interface {
	// Create stores a new token usage record
	Create(ctx context.Context, usage *TokenUsage) error

	// GetUserUsage retrieves aggregated usage for a user within a date range,
	// grouped by model
	GetUserUsage(ctx context.Context, userID uint, startDate, endDate time.Time) ([]UsageSummary, error)

	// RollupDaily folds raw usage rows for the given day into
	// token_usage_daily
	RollupDaily(ctx context.Context, day time.Time) error
}
