package notification

import (
	"encoding/json"
	"fmt"

	"travelhub/models"

	"github.com/hibiken/asynq"
)

const TypeBookingConfirmed = "booking:confirmed"

// NewBookingConfirmedTask wraps a committed outbox event. The event id is
// used as the task id so a relayed event is never queued twice.
func NewBookingConfirmedTask(ev models.OutboxEvent) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(ev)
	if err != nil {
		return nil, nil, fmt.Errorf("encode outbox event %s: %w", ev.ID, err)
	}
	task := asynq.NewTask(TypeBookingConfirmed, b)
	opts := []asynq.Option{asynq.TaskID(ev.ID), asynq.MaxRetry(5)}
	return task, opts, nil
}

func parseBookingConfirmed(task *asynq.Task) (models.OutboxEvent, error) {
	var ev models.OutboxEvent
	if err := json.Unmarshal(task.Payload(), &ev); err != nil {
		return ev, fmt.Errorf("decode %s payload: %w", TypeBookingConfirmed, err)
	}
	return ev, nil
}
