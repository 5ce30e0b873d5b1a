package outbox

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Config struct {
	PollInterval time.Duration
	BatchSize    int32
}

func DefaultConfig() Config {
	return Config{
		PollInterval: 5 * time.Second,
		BatchSize:    100,
	}
}

// OutboxRepository is what the worker needs from storage.
type OutboxRepository interface {
	FetchUnpublished(ctx context.Context, limit int32) ([]Event, error)
	MarkPublished(ctx context.Context, id uuid.UUID) error
}

// Worker polls the outbox table and relays committed events in order.
type Worker struct {
	repo      OutboxRepository
	publisher EventPublisher
	config    Config
	logger    zerolog.Logger

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	wg       sync.WaitGroup
}

func NewWorker(repo OutboxRepository, publisher EventPublisher, cfg Config, logger zerolog.Logger) *Worker {
	return &Worker{
		repo:      repo,
		publisher: publisher,
		config:    cfg,
		logger:    logger,
		stopChan:  make(chan struct{}),
	}
}

func (w *Worker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("outbox worker already running")
	}
	w.running = true
	w.mu.Unlock()

	w.wg.Add(1)
	go w.run(ctx)

	w.logger.Info().
		Dur("poll_interval", w.config.PollInterval).
		Int32("batch_size", w.config.BatchSize).
		Msg("outbox worker started")
	return nil
}

func (w *Worker) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return fmt.Errorf("outbox worker not running")
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopChan)
	w.wg.Wait()

	w.logger.Info().Msg("outbox worker stopped")
	return nil
}

func (w *Worker) run(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	// Process immediately on start
	w.processOutbox(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case <-ticker.C:
			w.processOutbox(ctx)
		}
	}
}

func (w *Worker) processOutbox(ctx context.Context) {
	events, err := w.repo.FetchUnpublished(ctx, w.config.BatchSize)
	if err != nil {
		w.logger.Error().Err(err).Msg("failed to fetch unpublished events")
		return
	}
	if len(events) == 0 {
		return
	}

	for _, event := range events {
		if err := w.publisher.Publish(ctx, event); err != nil {
			// Stop the batch so ordering is preserved; the next poll retries.
			w.logger.Error().
				Err(err).
				Str("event_id", event.ID.String()).
				Str("event_type", event.EventType).
				Msg("failed to publish event")
			return
		}
		if err := w.repo.MarkPublished(ctx, event.ID); err != nil {
			w.logger.Error().
				Err(err).
				Str("event_id", event.ID.String()).
				Msg("failed to mark event published")
			return
		}
	}

	w.logger.Debug().Int("count", len(events)).Msg("relayed outbox events")
}
