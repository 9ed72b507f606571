package logging

import (
	"log/slog"
	"time"

	"github.com/mindora/wellness/internal/models"
	"gorm.io/gorm"
)

// Retention is how long persisted system logs are kept.
const Retention = 30 * 24 * time.Hour

// StartCleanup prunes system_logs older than Retention once at start and then
// daily until done is closed.
func StartCleanup(db *gorm.DB, done <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			prune(db, time.Now().Add(-Retention))
			select {
			case <-ticker.C:
			case <-done:
				return
			}
		}
	}()
}

func prune(db *gorm.DB, cutoff time.Time) {
	result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	if result.Error != nil {
		slog.Error("system log cleanup failed", "error", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		slog.Info("system log cleanup completed", "deleted", result.RowsAffected)
	}
}
