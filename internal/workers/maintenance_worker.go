package workers

import (
	"context"
	"sync"
	"time"

	"jobportal_backend/internal/logger"

	"gorm.io/gorm"
)

const maintenanceWorkerName = "maintenance"

// TokenPurger drops refresh tokens and password reset tokens that have expired.
type TokenPurger interface {
	PurgeExpiredTokens(db *gorm.DB, now time.Time) (refresh int64, reset int64, err error)
}

// MaintenanceWorker periodically clears expired credentials.
type MaintenanceWorker struct {
	db       *gorm.DB
	purger   TokenPurger
	interval time.Duration
	now      func() time.Time
	wg       sync.WaitGroup
}

func NewMaintenanceWorker(db *gorm.DB, purger TokenPurger, interval time.Duration) *MaintenanceWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &MaintenanceWorker{
		db:       db,
		purger:   purger,
		interval: interval,
		now:      time.Now,
	}
}

// Start runs one pass immediately and then every interval until ctx is cancelled.
func (w *MaintenanceWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go w.loop(ctx)
}

// Wait blocks until the loop started by Start has returned.
func (w *MaintenanceWorker) Wait() {
	w.wg.Wait()
}

func (w *MaintenanceWorker) loop(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.RunOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.WorkerLog(maintenanceWorkerName, "stop", nil)
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single purge pass.
func (w *MaintenanceWorker) RunOnce(ctx context.Context) {
	refresh, reset, err := w.purger.PurgeExpiredTokens(w.db.WithContext(ctx), w.now())
	if err != nil {
		logger.WorkerLog(maintenanceWorkerName, "purge_expired_tokens", err)
		return
	}
	if refresh > 0 || reset > 0 {
		logger.WorkerLog(maintenanceWorkerName, "purge_expired_tokens", nil,
			"refresh_tokens", refresh,
			"reset_tokens", reset,
		)
	}
}
