package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/academylabs/backend/domain"
	"github.com/academylabs/backend/internal/infrastructure/buffer"
	"github.com/academylabs/backend/repository"
)

// StoreHealth reports whether the relational store is accepting writes.
type StoreHealth interface {
	CanWrite() bool
}

// ProcessorConfig controls how frequently the buffer is drained.
type ProcessorConfig struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
}

// BufferProcessor replays buffered completions and credit entries into
// postgres once it is reachable again.
type BufferProcessor struct {
	store    *buffer.Store
	monitor  StoreHealth
	progress repository.ProgressRepository
	credits  repository.CreditRepository
	logger   *zap.Logger
	cron     *cron.Cron
	cfg      ProcessorConfig
}

func NewBufferProcessor(
	store *buffer.Store,
	monitor StoreHealth,
	progress repository.ProgressRepository,
	credits repository.CreditRepository,
	logger *zap.Logger,
	cfg ProcessorConfig,
) *BufferProcessor {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	bp := &BufferProcessor{
		store:    store,
		monitor:  monitor,
		progress: progress,
		credits:  credits,
		logger:   logger,
		cfg:      cfg,
		cron:     cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = bp.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if err := bp.Drain(ctx); err != nil {
			bp.logger.Error("buffer drain failed", zap.Error(err))
		}
	})

	return bp
}

// Start launches the cron scheduler.
func (bp *BufferProcessor) Start() {
	if bp == nil || bp.cron == nil {
		return
	}
	bp.cron.Start()
	bp.logger.Info("buffer processor started")
}

// Stop gracefully stops the scheduler.
func (bp *BufferProcessor) Stop(ctx context.Context) {
	if bp == nil || bp.cron == nil {
		return
	}
	stopCtx := bp.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	bp.logger.Info("buffer processor stopped")
}

// Drain processes buffered items synchronously.
func (bp *BufferProcessor) Drain(ctx context.Context) error {
	if bp == nil || bp.store == nil {
		return nil
	}
	if bp.monitor != nil && !bp.monitor.CanWrite() {
		bp.logger.Debug("skipping buffer drain (database offline)")
		return nil
	}

	items, err := bp.store.GetBatch(bp.cfg.BatchSize)
	if err != nil {
		return err
	}

	for _, item := range items {
		if err := bp.processItem(ctx, item); err != nil {
			// A duplicate completion means the write already landed; purge it.
			if domain.IsDomainError(err, domain.ErrCodeConflict) {
				_ = bp.store.Remove(item)
				continue
			}
			bp.logger.Error("failed to process buffer item",
				zap.String("item_id", item.ID),
				zap.String("entity", item.Entity),
				zap.Error(err))

			item.Retries++
			if item.Retries >= bp.cfg.MaxRetries {
				bp.logger.Warn("dropping buffer item (max retries reached)", zap.String("item_id", item.ID))
				_ = bp.store.Remove(item)
				continue
			}

			if err := bp.store.Remove(item); err != nil {
				bp.logger.Warn("failed to remove buffer item", zap.Error(err))
			}
			if err := bp.store.Requeue(item); err != nil {
				bp.logger.Error("failed to requeue buffer item", zap.Error(err))
			}
			continue
		}

		if err := bp.store.Remove(item); err != nil {
			bp.logger.Warn("failed to purge processed buffer item", zap.Error(err))
		}
	}
	return nil
}

// Enqueue persists an item for later replay without an immediate attempt. The
// use case layer already tried the direct write before reaching for the buffer.
func (bp *BufferProcessor) Enqueue(item buffer.Item) error {
	if bp == nil || bp.store == nil {
		return fmt.Errorf("buffer processor not configured")
	}
	return bp.store.Enqueue(item)
}

// Size returns the number of buffered items.
func (bp *BufferProcessor) Size() int {
	if bp == nil || bp.store == nil {
		return 0
	}
	size, err := bp.store.Size()
	if err != nil {
		return 0
	}
	return size
}

func (bp *BufferProcessor) processItem(ctx context.Context, item buffer.Item) error {
	if ctx == nil {
		ctx = context.Background()
	}

	switch item.Entity {
	case buffer.EntityCompletion:
		var completion domain.Completion
		if err := json.Unmarshal(item.Data, &completion); err != nil {
			return err
		}
		return bp.progress.Complete(ctx, &completion)

	case buffer.EntityCredit:
		var entry domain.CreditEntry
		if err := json.Unmarshal(item.Data, &entry); err != nil {
			return err
		}
		return bp.credits.Insert(ctx, &entry)

	default:
		return fmt.Errorf("unsupported entity %s", item.Entity)
	}
}
