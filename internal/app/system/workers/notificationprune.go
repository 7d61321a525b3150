// internal/app/system/workers/notificationprune.go
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/mejbaurrahman/JHF/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Pruner deletes notifications that were read before cutoff.
type Pruner interface {
	PruneRead(ctx context.Context, cutoff time.Time) (int64, error)
}

// NotificationPrune is a background worker that deletes read notifications
// older than the retention window.
type NotificationPrune struct {
	store     Pruner
	log       *zap.Logger
	interval  time.Duration
	retention time.Duration
	now       func() time.Time
	stopCh    chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

// NewNotificationPrune creates the worker. interval is how often it runs,
// retention how long a read notification is kept.
func NewNotificationPrune(store Pruner, logger *zap.Logger, interval, retention time.Duration) *NotificationPrune {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationPrune{
		store:     store,
		log:       logger,
		interval:  interval,
		retention: retention,
		now:       time.Now,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the background loop.
func (w *NotificationPrune) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("notification prune worker started",
		zap.Duration("interval", w.interval),
		zap.Duration("retention", w.retention))
}

// Stop signals the worker to stop and waits for it to finish. Safe to call
// more than once.
func (w *NotificationPrune) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.wg.Wait()
		w.log.Info("notification prune worker stopped")
	})
}

func (w *NotificationPrune) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.RunOnce()
		}
	}
}

// RunOnce performs a single prune pass and returns how many notifications
// were deleted. Failures are logged, not returned; the next tick retries.
func (w *NotificationPrune) RunOnce() int64 {
	ctx, cancel := context.WithTimeout(context.Background(), timeouts.Long())
	defer cancel()

	cutoff := w.now().Add(-w.retention)
	count, err := w.store.PruneRead(ctx, cutoff)
	if err != nil {
		w.log.Error("failed to prune read notifications", zap.Error(err))
		return 0
	}
	if count > 0 {
		w.log.Info("pruned read notifications", zap.Int64("count", count), zap.Time("cutoff", cutoff))
	}
	return count
}
