package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type KeyPurger interface {
	PurgeIdempotencyKeys(ctx context.Context, before time.Time) (int64, error)
}

// Janitor periodically deletes idempotency keys older than ttl.
type Janitor struct {
	store    KeyPurger
	logger   *zap.Logger
	interval time.Duration
	ttl      time.Duration
	now      func() time.Time

	wg   sync.WaitGroup
	stop chan struct{}
	once sync.Once
}

func NewJanitor(store KeyPurger, logger *zap.Logger, interval, ttl time.Duration) *Janitor {
	return &Janitor{
		store:    store,
		logger:   logger,
		interval: interval,
		ttl:      ttl,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
}

func (j *Janitor) Start(ctx context.Context) {
	j.logger.Info("Starting idempotency key janitor",
		zap.Duration("interval", j.interval),
		zap.Duration("ttl", j.ttl),
	)

	j.wg.Add(1)
	go j.run(ctx)
}

// Stop is safe to call more than once.
func (j *Janitor) Stop() {
	j.once.Do(func() {
		j.logger.Info("Stopping idempotency key janitor...")
		close(j.stop)
	})
	j.wg.Wait()
}

func (j *Janitor) run(ctx context.Context) {
	defer j.wg.Done()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-j.stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.PurgeOnce(ctx)
		}
	}
}

// PurgeOnce runs a single cleanup pass; errors are logged, not returned.
func (j *Janitor) PurgeOnce(ctx context.Context) {
	cutoff := j.now().Add(-j.ttl)
	n, err := j.store.PurgeIdempotencyKeys(ctx, cutoff)
	if err != nil {
		j.logger.Error("failed to purge idempotency keys", zap.Error(err))
		return
	}
	if n > 0 {
		j.logger.Info("Purged idempotency keys", zap.Int64("count", n), zap.Time("before", cutoff))
	}
}
