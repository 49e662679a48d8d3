package manager

import (
	"context"
	"fmt"
	"testing"

	"travelhub/apperr"
	"travelhub/database"
	"travelhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memRepo struct{ byID map[string]models.Manager }

func (r *memRepo) Upsert(_ context.Context, m *models.Manager) error {
	r.byID[m.ID] = *m
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*models.Manager, error) {
	m, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("manager %s: %w", id, database.ErrNotFound)
	}
	return &m, nil
}

func (r *memRepo) GetAll(context.Context) ([]models.Manager, error) {
	out := []models.Manager{}
	for _, id := range []string{"m1", "m2", "m3"} {
		if m, ok := r.byID[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memRepo) EnsureIndexes(context.Context) error { return nil }

func newService() *Service {
	return NewService(&memRepo{byID: map[string]models.Manager{}}, zap.NewNop())
}

func TestUpsert_ReplacesByID(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Upsert(ctx, "m1", &models.Manager{Name: "Aisha", Email: "aisha@example.com"})
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, "m1", &models.Manager{Name: "Aisha K", Email: "aisha@example.com"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "Aisha K", got.Name)
	assert.Equal(t, "m1", got.ID)
}

func TestUpsert_Validation(t *testing.T) {
	svc := newService()
	_, err := svc.Upsert(context.Background(), "m1", &models.Manager{Name: "No Email"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = svc.Upsert(context.Background(), " ", &models.Manager{Name: "A", Email: "a@example.com"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestGet_Unknown(t *testing.T) {
	_, err := newService().Get(context.Background(), "missing")
	assert.True(t, apperr.Is(err, apperr.KindReferenceNotFound))
}

func TestList_Paginates(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	for _, id := range []string{"m1", "m2", "m3"} {
		_, err := svc.Upsert(ctx, id, &models.Manager{Name: id, Email: id + "@example.com"})
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalItems)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "m3", page.Items[0].ID)
}
