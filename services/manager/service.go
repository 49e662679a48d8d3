package manager

import (
	"context"
	"errors"
	"strings"
	"time"

	"travelhub/apperr"
	"travelhub/database"
	managerRepo "travelhub/database/repository/manager"
	"travelhub/models"
	"travelhub/services/pagination"
	"travelhub/utils"

	"go.uber.org/zap"
)

type Service struct {
	repo   managerRepo.ManagerRepository
	logger *zap.Logger
}

func NewService(repo managerRepo.ManagerRepository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Upsert stores the manager under the external id, replacing any previous
// record for it.
func (s *Service) Upsert(ctx context.Context, id string, m *models.Manager) (*models.Manager, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperr.Validation("manager id is required")
	}
	if err := utils.ValidateStruct(m); err != nil {
		return nil, err
	}
	m.ID = id
	m.UpdatedAt = time.Now().UTC()
	if err := s.repo.Upsert(ctx, m); err != nil {
		s.logger.Error("Failed to upsert manager", zap.String("managerID", id), zap.Error(err))
		return nil, apperr.Persistence("failed to save manager", err)
	}
	return m, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Manager, error) {
	m, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperr.ReferenceNotFound("manager %s not found", id)
	}
	if err != nil {
		return nil, apperr.Persistence("failed to load manager", err)
	}
	return m, nil
}

func (s *Service) List(ctx context.Context, page, pageSize int) (pagination.Page[models.Manager], error) {
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return pagination.Page[models.Manager]{}, apperr.Persistence("failed to list managers", err)
	}
	return pagination.PaginateResults(all, page, pageSize)
}
