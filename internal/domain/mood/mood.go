package mood

import (
	"context"
	"time"

	"aramesh-server/services/therapy-api/internal/utils/idgen"
	"aramesh-server/services/therapy-api/internal/utils/platformerrors"
)

// MoodLog is one self-reported mood sample on a 1..10 scale.
type MoodLog struct {
	ID        uint      `json:"-"`
	PublicID  string    `json:"id"`
	UserID    uint      `json:"-"`
	Score     int       `json:"score"`
	Note      *string   `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Repository interface {
	Create(ctx context.Context, log *MoodLog) error
	// ListByUserID returns logs newest first, capped at limit.
	ListByUserID(ctx context.Context, userID uint, limit int) ([]*MoodLog, error)
}

// Service records and lists mood samples.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

const defaultListLimit = 100

// Record stores a mood sample after range-checking the score.
func (s *Service) Record(ctx context.Context, userID uint, score int, note *string) (*MoodLog, error) {
	if score < 1 || score > 10 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "mood score must be between 1 and 10", nil, "d6e8f0a2-b4c6-4d8e-9f1a-3b5c7d9e1f2a")
	}
	log := &MoodLog{
		PublicID:  idgen.MustGenerateSecureID("mood", 16),
		UserID:    userID,
		Score:     score,
		Note:      note,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

// List returns the user's recent mood samples, newest first.
func (s *Service) List(ctx context.Context, userID uint, limit int) ([]*MoodLog, error) {
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	return s.repo.ListByUserID(ctx, userID, limit)
}
