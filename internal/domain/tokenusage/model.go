package tokenusage

import (
	"time"

	"github.com/shopspring/decimal"
)

// TokenUsage represents a single token usage record. Rows are a write-only
// audit trail; they are never mutated or deleted.
type TokenUsage struct {
	ID               int64           `gorm:"primaryKey;autoIncrement"`
	UserID           uint            `gorm:"column:user_id;not null;index"`
	ConversationID   uint            `gorm:"column:conversation_id;not null;index"`
	Model            string          `gorm:"column:model;not null;index"`
	PromptTokens     int             `gorm:"column:prompt_tokens;not null;default:0"`
	CompletionTokens int             `gorm:"column:completion_tokens;not null;default:0"`
	TotalTokens      int             `gorm:"column:total_tokens;not null;default:0"`
	EstimatedCostUSD decimal.Decimal `gorm:"column:estimated_cost_usd;type:decimal(10,6)"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// TableName returns the table name for TokenUsage
func (TokenUsage) TableName() string {
	return "token_usage"
}

// TokenUsageDaily represents aggregated daily token usage, maintained by
// the rollup cron job.
type TokenUsageDaily struct {
	ID                    int64           `gorm:"primaryKey;autoIncrement"`
	Date                  time.Time       `gorm:"column:date;not null;index"`
	UserID                uint            `gorm:"column:user_id;not null;index"`
	Model                 string          `gorm:"column:model;not null"`
	TotalPromptTokens     int64           `gorm:"column:total_prompt_tokens;not null;default:0"`
	TotalCompletionTokens int64           `gorm:"column:total_completion_tokens;not null;default:0"`
	TotalTokens           int64           `gorm:"column:total_tokens;not null;default:0"`
	RequestCount          int             `gorm:"column:request_count;not null;default:0"`
	EstimatedCostUSD      decimal.Decimal `gorm:"column:estimated_cost_usd;type:decimal(12,6)"`
	CreatedAt             time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for TokenUsageDaily
func (TokenUsageDaily) TableName() string {
	return "token_usage_daily"
}

// UsageSummary represents aggregated usage statistics for one model.
type UsageSummary struct {
	Model                 string          `json:"model"`
	TotalPromptTokens     int64           `json:"total_prompt_tokens"`
	TotalCompletionTokens int64           `json:"total_completion_tokens"`
	TotalTokens           int64           `json:"total_tokens"`
	RequestCount          int64           `json:"request_count"`
	EstimatedCostUSD      decimal.Decimal `json:"estimated_cost_usd"`
}

// Model pricing constants (USD per token) - can be configured externally
var ModelPricing = map[string]struct {
	PromptPrice     decimal.Decimal
	CompletionPrice decimal.Decimal
}{
	"gemini-2.5-pro":   {decimal.NewFromFloat(0.00000125), decimal.NewFromFloat(0.00001)},
	"gemini-2.5-flash": {decimal.NewFromFloat(0.0000003), decimal.NewFromFloat(0.0000025)},
	"gpt-4o":           {decimal.NewFromFloat(0.000005), decimal.NewFromFloat(0.000015)},
	"gpt-4o-mini":      {decimal.NewFromFloat(0.00000015), decimal.NewFromFloat(0.0000006)},
}

// CalculateCost calculates estimated cost for token usage
func CalculateCost(model string, promptTokens, completionTokens int) decimal.Decimal {
	pricing, exists := ModelPricing[model]
	if !exists {
		// Default pricing for unknown models
		pricing = struct {
			PromptPrice     decimal.Decimal
			CompletionPrice decimal.Decimal
		}{
			PromptPrice:     decimal.NewFromFloat(0.000003),
			CompletionPrice: decimal.NewFromFloat(0.000006),
		}
	}

	promptCost := pricing.PromptPrice.Mul(decimal.NewFromInt(int64(promptTokens)))
	completionCost := pricing.CompletionPrice.Mul(decimal.NewFromInt(int64(completionTokens)))

	return promptCost.Add(completionCost)
}
