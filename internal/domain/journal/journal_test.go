package journal

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aramesh-server/services/therapy-api/internal/utils/platformerrors"
)

type fakeJournalRepo struct {
	mu     sync.Mutex
	nextID uint
	items  map[uint]*Entry
}

func newFakeJournalRepo() *fakeJournalRepo {
	return &fakeJournalRepo{items: make(map[uint]*Entry)}
}

func (r *fakeJournalRepo) Create(ctx context.Context, entry *Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	entry.ID = r.nextID
	r.items[entry.ID] = entry
	return nil
}

func (r *fakeJournalRepo) FindByPublicID(ctx context.Context, publicID string) (*Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.items {
		if e.PublicID == publicID {
			return e, nil
		}
	}
	return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
		platformerrors.ErrorTypeNotFound, "journal entry not found", nil, "")
}

func (r *fakeJournalRepo) ListByUserID(ctx context.Context, userID uint) ([]*Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Entry, 0)
	for _, e := range r.items {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeJournalRepo) Update(ctx context.Context, entry *Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[entry.ID] = entry
	return nil
}

func (r *fakeJournalRepo) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func TestJournalCRUD(t *testing.T) {
	svc := NewService(newFakeJournalRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, "  Monday  ", "a rough day")
	require.NoError(t, err)
	assert.Equal(t, "Monday", created.Title)

	got, err := svc.Get(ctx, 1, created.PublicID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	updated, err := svc.Update(ctx, 1, created.PublicID, "Monday evening", "it got better")
	require.NoError(t, err)
	assert.Equal(t, "it got better", updated.Content)
	assert.True(t, updated.UpdatedAt.After(created.CreatedAt) || updated.UpdatedAt.Equal(created.CreatedAt))

	require.NoError(t, svc.Delete(ctx, 1, created.PublicID))

	_, err = svc.Get(ctx, 1, created.PublicID)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
}

func TestJournalEmptyContentRejected(t *testing.T) {
	svc := NewService(newFakeJournalRepo())

	_, err := svc.Create(context.Background(), 1, "title", "   ")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
}

func TestJournalOwnershipHidesEntries(t *testing.T) {
	svc := NewService(newFakeJournalRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, "mine", "private thoughts")
	require.NoError(t, err)

	// Another user sees NOT_FOUND, never FORBIDDEN.
	_, err = svc.Get(ctx, 2, created.PublicID)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))

	_, err = svc.Update(ctx, 2, created.PublicID, "x", "y")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))

	err = svc.Delete(ctx, 2, created.PublicID)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))

	entries, err := svc.List(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
