package managerRepo

import (
	"context"

	"travelhub/models"
)

type ManagerRepository interface {
	// Upsert creates or replaces the manager with m.ID.
	Upsert(ctx context.Context, m *models.Manager) error
	GetByID(ctx context.Context, id string) (*models.Manager, error)
	GetAll(ctx context.Context) ([]models.Manager, error)
	EnsureIndexes(ctx context.Context) error
}
