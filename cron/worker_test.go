package cron

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type stubRelayer struct {
	limit int64
	err   error
}

func (s *stubRelayer) Relay(_ context.Context, limit int64) (int, error) {
	s.limit = limit
	return 0, s.err
}

func TestRelayOnce_UsesBatchSize(t *testing.T) {
	r := &stubRelayer{}
	RelayOnce(context.Background(), r, zap.NewNop())
	assert.Equal(t, int64(relayBatchSize), r.limit)
}

func TestRelayOnce_LogsFailure(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	RelayOnce(context.Background(), &stubRelayer{err: errors.New("mongo down")}, zap.New(core))
	assert.Equal(t, 1, logs.FilterMessage("Outbox relay pass failed").Len())
}
