package tokenusage

import (
	"context"
	"time"
)

// Service provides token usage business logic
type Service struct {
	repo Repository
}

// NewService creates a new token usage service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RecordUsage records a new token usage event
func (s *Service) RecordUsage(ctx context.Context, usage *TokenUsage) error {
	if usage.EstimatedCostUSD.IsZero() {
		usage.EstimatedCostUSD = CalculateCost(usage.Model, usage.PromptTokens, usage.CompletionTokens)
	}

	// Totals are consumer-side sums, never verified against provider totals
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.PromptTokens + usage.CompletionTokens
	}

	return s.repo.Create(ctx, usage)
}

// GetMyUsage retrieves usage summaries for a user within a date range.
func (s *Service) GetMyUsage(ctx context.Context, userID uint, startDate, endDate time.Time) ([]UsageSummary, error) {
	return s.repo.GetUserUsage(ctx, userID, startDate, endDate)
}

// RollupDay folds the raw usage rows of one day into the daily table.
func (s *Service) RollupDay(ctx context.Context, day time.Time) error {
	return s.repo.RollupDaily(ctx, day)
}
