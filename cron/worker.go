package cron

import (
	"context"
	"fmt"
	"time"

	managerRepo "travelhub/database/repository/manager"
	"travelhub/services/notification"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	relayBatchSize = 100
	maxStartTries  = 5
)

// Relayer re-dispatches outbox events whose first publish failed.
type Relayer interface {
	Relay(ctx context.Context, limit int64) (int, error)
}

// Worker runs the asynq task server and the periodic outbox relay.
type Worker struct {
	srv      *asynq.Server
	mux      *asynq.ServeMux
	relayer  Relayer
	interval time.Duration
	logger   *zap.Logger
}

func NewWorker(redisOpt asynq.RedisClientOpt, relayer Relayer, managers managerRepo.ManagerRepository, interval time.Duration, logger *zap.Logger) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 10,
		Queues:      map[string]int{"default": 1},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TypeBookingConfirmed, notification.BookingConfirmedHandler(managers, logger))

	if interval <= 0 {
		interval = time.Minute
	}
	return &Worker{srv: srv, mux: mux, relayer: relayer, interval: interval, logger: logger}
}

// Start launches the task server and relay loop in the background. Both stop
// when ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	go w.runServer()
	go w.runRelay(ctx)
	go func() {
		<-ctx.Done()
		w.srv.Shutdown()
	}()
}

func (w *Worker) runServer() {
	w.logger.Info("Starting task worker")
	for attempt := 1; attempt <= maxStartTries; attempt++ {
		err := w.srv.Start(w.mux)
		if err == nil {
			return
		}
		w.logger.Error("Task worker failed to start",
			zap.Int("attempt", attempt), zap.Int("maxAttempts", maxStartTries), zap.Error(err))
		time.Sleep(time.Duration(attempt*2) * time.Second)
	}
	w.logger.Error("Task worker gave up", zap.String("reason", fmt.Sprintf("%d failed start attempts", maxStartTries)))
}

func (w *Worker) runRelay(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			RelayOnce(ctx, w.relayer, w.logger)
		}
	}
}

// RelayOnce runs a single relay pass.
func RelayOnce(ctx context.Context, relayer Relayer, logger *zap.Logger) {
	if _, err := relayer.Relay(ctx, relayBatchSize); err != nil {
		logger.Warn("Outbox relay pass failed", zap.Error(err))
	}
}
