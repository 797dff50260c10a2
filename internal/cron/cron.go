package cron

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const cleanupInterval = 24 * time.Hour

// AuditCleaner deletes audit rows older than a number of days.
type AuditCleaner interface {
	CleanupOldLogs(ctx context.Context, days int) (int64, error)
}

// StartCleanupTask prunes audit logs once at startup and then daily until
// ctx is cancelled. A non-positive retention disables the task.
func StartCleanupTask(ctx context.Context, cleaner AuditCleaner, retentionDays int, log *zap.Logger) {
	if retentionDays <= 0 {
		log.Info("audit cleanup disabled")
		return
	}
	go runCleanup(ctx, cleaner, retentionDays, log, time.NewTicker(cleanupInterval))
}

func runCleanup(ctx context.Context, cleaner AuditCleaner, retentionDays int, log *zap.Logger, ticker *time.Ticker) {
	defer ticker.Stop()
	log.Info("starting background cleanup task", zap.Int("retention_days", retentionDays))

	cleanupOnce(ctx, cleaner, retentionDays, log)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cleanupOnce(ctx, cleaner, retentionDays, log)
		}
	}
}

func cleanupOnce(ctx context.Context, cleaner AuditCleaner, retentionDays int, log *zap.Logger) {
	n, err := cleaner.CleanupOldLogs(ctx, retentionDays)
	if err != nil {
		log.Error("failed to cleanup old audit logs", zap.Error(err))
		return
	}
	log.Info("audit log cleanup completed", zap.Int64("deleted", n))
}
