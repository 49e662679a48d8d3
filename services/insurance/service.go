package insurance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"travelhub/apperr"
	"travelhub/database"
	insuranceRepo "travelhub/database/repository/insurance"
	"travelhub/models"
	"travelhub/utils"

	"go.uber.org/zap"
)

// ConfigService owns the insurance master config that plans and policy
// bookings are validated against.
type ConfigService struct {
	repo   insuranceRepo.ConfigRepository
	tx     database.TxManager
	logger *zap.Logger
}

func NewConfigService(repo insuranceRepo.ConfigRepository, tx database.TxManager, logger *zap.Logger) *ConfigService {
	return &ConfigService{repo: repo, tx: tx, logger: logger}
}

func (s *ConfigService) Get(ctx context.Context) (*models.InsuranceConfig, error) {
	cfg, err := s.repo.Get(ctx)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperr.ReferenceNotFound("insurance configuration has not been set up")
	}
	if err != nil {
		return nil, apperr.Persistence("failed to load insurance configuration", err)
	}
	return cfg, nil
}

// Replace installs cfg as the new master config. The superseded config is
// archived in the same transaction.
func (s *ConfigService) Replace(ctx context.Context, principalID string, cfg *models.InsuranceConfig) (*models.InsuranceConfig, error) {
	if err := utils.ValidateStruct(cfg); err != nil {
		return nil, err
	}
	if err := checkConsistency(cfg); err != nil {
		return nil, err
	}

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.Get(ctx)
		switch {
		case errors.Is(err, database.ErrNotFound):
			cfg.Revision = 1
		case err != nil:
			return err
		default:
			if err := s.repo.AppendHistory(ctx, &models.InsuranceConfigRevision{
				Revision:   current.Revision,
				Config:     *current,
				ArchivedAt: time.Now().UTC(),
			}); err != nil {
				return err
			}
			cfg.Revision = current.Revision + 1
		}
		cfg.UpdatedBy = principalID
		cfg.UpdatedAt = time.Now().UTC()
		return s.repo.Replace(ctx, cfg)
	})
	if err != nil {
		s.logger.Error("Insurance config replacement aborted", zap.Error(err))
		if errors.Is(err, database.ErrDuplicate) {
			return nil, apperr.Duplicate("insurance configuration was changed concurrently", err)
		}
		return nil, apperr.Persistence("failed to save insurance configuration", err)
	}

	s.logger.Info("Insurance config replaced", zap.Int("revision", cfg.Revision), zap.String("updatedBy", principalID))
	return cfg, nil
}

func (s *ConfigService) History(ctx context.Context) ([]models.InsuranceConfigRevision, error) {
	revs, err := s.repo.History(ctx)
	if err != nil {
		return nil, apperr.Persistence("failed to load insurance configuration history", err)
	}
	return revs, nil
}

// CheckPlan rejects plans whose policy type or areas are not configured.
func (s *ConfigService) CheckPlan(ctx context.Context, plan *models.InsurancePlan) error {
	cfg, err := s.Get(ctx)
	if err != nil {
		return err
	}
	if !cfg.HasPolicyType(plan.PolicyType) {
		return apperr.ReferenceNotFound("policy type %s not found", plan.PolicyType)
	}
	for _, area := range plan.Areas {
		if !cfg.HasArea(area) {
			return apperr.ReferenceNotFound("area %s not found", area)
		}
	}
	for _, p := range plan.Premiums {
		if _, ok := cfg.AgeGroup(p.AgeGroup); !ok {
			return apperr.ReferenceNotFound("age group %s not found", p.AgeGroup)
		}
	}
	return nil
}

// checkConsistency rejects duplicate codes and countries in unknown areas.
func checkConsistency(cfg *models.InsuranceConfig) error {
	areas := map[string]bool{}
	for _, a := range cfg.Areas {
		areas[a] = true
	}
	countries := map[string]bool{}
	for _, c := range cfg.Countries {
		if countries[c.Code] {
			return apperr.Validation(fmt.Sprintf("country %s is listed twice", c.Code))
		}
		countries[c.Code] = true
		if c.Area != "" && !areas[c.Area] {
			return apperr.Validation(fmt.Sprintf("country %s references unknown area %s", c.Code, c.Area))
		}
	}
	groups := map[string]bool{}
	for _, g := range cfg.AgeGroups {
		if groups[g.Code] {
			return apperr.Validation(fmt.Sprintf("age group %s is listed twice", g.Code))
		}
		groups[g.Code] = true
	}
	return nil
}
