package service

import (
	"context"
	"time"

	"storefront-service/internal/util"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// mirrorWriter implements the dual-write contract shared by every entity:
// attempt the remote write when a user session exists, then always apply the
// local write. Remote failures are counted and logged, never surfaced; the
// breaker keeps a down backend from being hammered on every mutation.
type mirrorWriter struct {
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

func newMirrorWriter(name string, logger *zap.Logger) *mirrorWriter {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    name,
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &mirrorWriter{
		breaker: breaker,
		logger:  logger,
	}
}

// write runs remote best-effort and local unconditionally. The local result
// is the one the caller sees: the session view must reflect the write even
// when the remote side is down.
func (m *mirrorWriter) write(ctx context.Context, collection, userID string, remote func(context.Context) error, local func() error) error {
	if userID != "" && remote != nil {
		_, err := m.breaker.Execute(func() (interface{}, error) {
			return nil, remote(ctx)
		})
		if err != nil {
			util.RemoteWriteFailuresTotal.WithLabelValues(collection).Inc()
			m.logger.Warn("Remote write failed, keeping local copy only",
				zap.String("collection", collection),
				zap.String("user_id", userID),
				zap.Error(err))
		}
	}

	return local()
}
