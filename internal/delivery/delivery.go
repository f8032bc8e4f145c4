// Package delivery posts chunked messages to Discord in order, pacing sends
// against Discord's rate limits and retrying transient failures.
package delivery

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/chunkrelay/chunkrelay/internal/config"
)

// Poster sends a single message to the outbound target.
type Poster interface {
	Post(ctx context.Context, content string) error
}

// Deliverer sends an ordered chunk list through a Poster. Chunks are sent
// strictly in order; a chunk that still fails after retries aborts the job.
type Deliverer struct {
	poster          Poster
	limiter         *rate.Limiter
	maxRetries      int
	initialInterval time.Duration
	logger          *slog.Logger
}

// New creates a Deliverer around poster with the configured pacing and
// retry budget.
func New(poster Poster, cfg config.DeliveryConfig, log *slog.Logger) *Deliverer {
	perSecond := cfg.MessagesPerSecond
	if perSecond <= 0 {
		perSecond = config.DefaultMessagesPerSecond
	}
	return &Deliverer{
		poster:          poster,
		limiter:         rate.NewLimiter(rate.Limit(perSecond), 1),
		maxRetries:      cfg.MaxRetries,
		initialInterval: 500 * time.Millisecond,
		logger:          log.With(slog.String("component", "delivery")),
	}
}

// Deliver sends every chunk in order and returns the job ID. The job ID is
// assigned up front so failures can still be correlated in logs.
func (d *Deliverer) Deliver(ctx context.Context, chunks []string) (string, error) {
	jobID := uuid.NewString()
	log := d.logger.With(slog.String("job_id", jobID), slog.Int("chunks", len(chunks)))

	for i, chunk := range chunks {
		if err := d.limiter.Wait(ctx); err != nil {
			return jobID, fmt.Errorf("deliver chunk %d/%d: %w", i+1, len(chunks), err)
		}
		if err := d.postWithRetry(ctx, chunk); err != nil {
			return jobID, fmt.Errorf("deliver chunk %d/%d: %w", i+1, len(chunks), err)
		}
		log.Debug("chunk delivered", slog.Int("index", i+1), slog.Int("length", len(chunk)))
	}

	log.Info("delivery complete")
	return jobID, nil
}

func (d *Deliverer) postWithRetry(ctx context.Context, chunk string) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = d.initialInterval

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, d.poster.Post(ctx, chunk)
	}, backoff.WithBackOff(bo), backoff.WithMaxTries(uint(d.maxRetries)+1))
	return err
}
