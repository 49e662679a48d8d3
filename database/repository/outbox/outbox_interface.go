package outboxRepo

import (
	"context"

	"travelhub/models"
)

type OutboxRepository interface {
	Insert(ctx context.Context, ev *models.OutboxEvent) error
	// ListPending returns undispatched events, oldest first.
	ListPending(ctx context.Context, limit int64) ([]models.OutboxEvent, error)
	MarkDispatched(ctx context.Context, id string) error
	IncrementAttempts(ctx context.Context, id string) error
	EnsureIndexes(ctx context.Context) error
}
