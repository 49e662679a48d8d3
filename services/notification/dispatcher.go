package notification

import (
	"context"
	"errors"
	"fmt"

	outboxRepo "travelhub/database/repository/outbox"
	"travelhub/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Enqueuer is the part of *asynq.Client the dispatcher needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Dispatcher moves committed outbox events onto the task queue.
type Dispatcher struct {
	queue  Enqueuer
	outbox outboxRepo.OutboxRepository
	logger *zap.Logger
}

func NewDispatcher(queue Enqueuer, outbox outboxRepo.OutboxRepository, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{queue: queue, outbox: outbox, logger: logger}
}

// Publish enqueues ev and marks it dispatched. An event already queued under
// the same task id counts as dispatched.
func (d *Dispatcher) Publish(ctx context.Context, ev models.OutboxEvent) error {
	task, opts, err := NewBookingConfirmedTask(ev)
	if err != nil {
		return err
	}
	if _, err := d.queue.EnqueueContext(ctx, task, opts...); err != nil && !errors.Is(err, asynq.ErrTaskIDConflict) {
		if incErr := d.outbox.IncrementAttempts(ctx, ev.ID); incErr != nil {
			d.logger.Warn("Failed to record outbox attempt", zap.String("eventID", ev.ID), zap.Error(incErr))
		}
		return fmt.Errorf("enqueue %s for %s: %w", TypeBookingConfirmed, ev.PartnerOrderID, err)
	}
	if err := d.outbox.MarkDispatched(ctx, ev.ID); err != nil {
		return fmt.Errorf("mark outbox event %s dispatched: %w", ev.ID, err)
	}
	return nil
}

// Relay publishes up to limit pending events and returns how many went out.
func (d *Dispatcher) Relay(ctx context.Context, limit int64) (int, error) {
	pending, err := d.outbox.ListPending(ctx, limit)
	if err != nil {
		return 0, fmt.Errorf("list pending outbox events: %w", err)
	}

	sent := 0
	for _, ev := range pending {
		if err := d.Publish(ctx, ev); err != nil {
			d.logger.Warn("Outbox relay failed",
				zap.String("eventID", ev.ID),
				zap.Int("attempts", ev.Attempts+1),
				zap.Error(err))
			continue
		}
		sent++
	}
	if sent > 0 {
		d.logger.Info("Outbox relay dispatched events", zap.Int("count", sent))
	}
	return sent, nil
}
