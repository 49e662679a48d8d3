package insuranceRepo

import (
	"context"

	"travelhub/models"
)

// ConfigRepository stores the single insurance master config and its history.
type ConfigRepository interface {
	// Get returns the current config or database.ErrNotFound.
	Get(ctx context.Context) (*models.InsuranceConfig, error)
	// Replace overwrites the current config, creating it if absent.
	Replace(ctx context.Context, cfg *models.InsuranceConfig) error
	// AppendHistory archives a superseded config.
	AppendHistory(ctx context.Context, rev *models.InsuranceConfigRevision) error
	// History returns archived revisions, newest first.
	History(ctx context.Context) ([]models.InsuranceConfigRevision, error)
}
