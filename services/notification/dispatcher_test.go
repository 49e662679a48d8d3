package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"travelhub/models"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeQueue struct {
	tasks []*asynq.Task
	fail  map[string]error
}

func (q *fakeQueue) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	ev, err := parseBookingConfirmed(task)
	if err != nil {
		return nil, err
	}
	if err := q.fail[ev.ID]; err != nil {
		return nil, err
	}
	q.tasks = append(q.tasks, task)
	return &asynq.TaskInfo{ID: ev.ID}, nil
}

type memOutbox struct {
	events     []models.OutboxEvent
	dispatched map[string]bool
}

func newMemOutbox(ids ...string) *memOutbox {
	o := &memOutbox{dispatched: map[string]bool{}}
	for i, id := range ids {
		o.events = append(o.events, models.OutboxEvent{
			ID: id, Type: models.EventBookingConfirmed, Vertical: "hotel",
			PartnerOrderID: "HFL" + id, CreatedAt: time.Unix(int64(i), 0),
		})
	}
	return o
}

func (o *memOutbox) Insert(_ context.Context, ev *models.OutboxEvent) error {
	o.events = append(o.events, *ev)
	return nil
}

func (o *memOutbox) ListPending(_ context.Context, limit int64) ([]models.OutboxEvent, error) {
	var out []models.OutboxEvent
	for _, ev := range o.events {
		if !o.dispatched[ev.ID] && int64(len(out)) < limit {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (o *memOutbox) MarkDispatched(_ context.Context, id string) error {
	o.dispatched[id] = true
	return nil
}

func (o *memOutbox) IncrementAttempts(_ context.Context, id string) error {
	for i := range o.events {
		if o.events[i].ID == id {
			o.events[i].Attempts++
		}
	}
	return nil
}

func (o *memOutbox) EnsureIndexes(context.Context) error { return nil }

func TestPublish_MarksDispatched(t *testing.T) {
	queue := &fakeQueue{}
	outbox := newMemOutbox("e1")
	d := NewDispatcher(queue, outbox, zap.NewNop())

	require.NoError(t, d.Publish(context.Background(), outbox.events[0]))
	require.Len(t, queue.tasks, 1)
	assert.Equal(t, TypeBookingConfirmed, queue.tasks[0].Type())
	assert.True(t, outbox.dispatched["e1"])
}

func TestPublish_ConflictCountsAsDispatched(t *testing.T) {
	queue := &fakeQueue{fail: map[string]error{"e1": asynq.ErrTaskIDConflict}}
	outbox := newMemOutbox("e1")
	d := NewDispatcher(queue, outbox, zap.NewNop())

	require.NoError(t, d.Publish(context.Background(), outbox.events[0]))
	assert.True(t, outbox.dispatched["e1"])
}

func TestRelay_SkipsFailuresAndCountsAttempts(t *testing.T) {
	queue := &fakeQueue{fail: map[string]error{"e2": errors.New("redis down")}}
	outbox := newMemOutbox("e1", "e2", "e3")
	d := NewDispatcher(queue, outbox, zap.NewNop())

	sent, err := d.Relay(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.False(t, outbox.dispatched["e2"])
	assert.Equal(t, 1, outbox.events[1].Attempts)

	delete(queue.fail, "e2")
	sent, err = d.Relay(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.True(t, outbox.dispatched["e2"])
}

func TestRelay_RespectsLimit(t *testing.T) {
	queue := &fakeQueue{}
	outbox := newMemOutbox("e1", "e2", "e3")
	d := NewDispatcher(queue, outbox, zap.NewNop())

	sent, err := d.Relay(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.False(t, outbox.dispatched["e3"])
}

func TestBookingConfirmedHandler_RejectsBadPayload(t *testing.T) {
	h := BookingConfirmedHandler(nil, zap.NewNop())
	err := h.ProcessTask(context.Background(), asynq.NewTask(TypeBookingConfirmed, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
