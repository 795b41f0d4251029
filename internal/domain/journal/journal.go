package journal

import (
	"context"
	"strings"
	"time"

	"aramesh-server/services/therapy-api/internal/utils/idgen"
	"aramesh-server/services/therapy-api/internal/utils/platformerrors"
)

// Entry is one private journal entry, owned and only visible to its author.
type Entry struct {
	ID        uint      `json:"-"`
	PublicID  string    `json:"id"`
	UserID    uint      `json:"-"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	// FindByPublicID returns a NOT_FOUND platform error when absent.
	FindByPublicID(ctx context.Context, publicID string) (*Entry, error)
	ListByUserID(ctx context.Context, userID uint) ([]*Entry, error)
	Update(ctx context.Context, entry *Entry) error
	Delete(ctx context.Context, id uint) error
}

// Service implements journal CRUD with ownership enforcement. Entries of
// other users read as NOT_FOUND rather than FORBIDDEN to avoid confirming
// their existence.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, userID uint, title, content string) (*Entry, error) {
	if strings.TrimSpace(content) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "journal content must not be empty", nil, "b2c4d6e8-f0a1-4b3c-8d5e-7f9a1b3c5d7e")
	}
	now := time.Now()
	entry := &Entry{
		PublicID:  idgen.MustGenerateSecureID("jrnl", 16),
		UserID:    userID,
		Title:     strings.TrimSpace(title),
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Service) Get(ctx context.Context, userID uint, publicID string) (*Entry, error) {
	entry, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if entry.UserID != userID {
		return nil, notFound(ctx)
	}
	return entry, nil
}

func (s *Service) List(ctx context.Context, userID uint) ([]*Entry, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *Service) Update(ctx context.Context, userID uint, publicID, title, content string) (*Entry, error) {
	entry, err := s.Get(ctx, userID, publicID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "journal content must not be empty", nil, "b2c4d6e8-f0a1-4b3c-8d5e-7f9a1b3c5d7e")
	}
	entry.Title = strings.TrimSpace(title)
	entry.Content = content
	entry.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Service) Delete(ctx context.Context, userID uint, publicID string) error {
	entry, err := s.Get(ctx, userID, publicID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, entry.ID)
}

func notFound(ctx context.Context) error {
	return platformerrors.NewError(ctx, platformerrors.LayerDomain,
		platformerrors.ErrorTypeNotFound, "journal entry not found", nil, "c3d5e7f9-a1b2-4c4d-8e6f-0a2b4c6d8e0f")
}
