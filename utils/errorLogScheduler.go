package utils

import (
	"log"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"webmatematica/models"
)

// StartErrorLogPruner schedules the deletion of error logs older than retentionDays.
// The returned cron must be stopped on shutdown.
func StartErrorLogPruner(db *gorm.DB, schedule string, retentionDays int) (*cron.Cron, error) {
	log.Println("[ERROR-LOG-SCHEDULER] Initializing error log pruner...")

	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		deleted, err := PruneErrorLogs(db, time.Now(), retentionDays)
		if err != nil {
			log.Printf("[ERROR-LOG-SCHEDULER] Error pruning error logs: %v", err)
			return
		}
		log.Printf("[ERROR-LOG-SCHEDULER] Deleted %d error logs older than %d days", deleted, retentionDays)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "invalid schedule %q", schedule)
	}

	c.Start()
	log.Printf("[ERROR-LOG-SCHEDULER] Error log pruner started - schedule %q", schedule)
	return c, nil
}

// PruneErrorLogs permanently deletes error logs created before now minus retentionDays
func PruneErrorLogs(db *gorm.DB, now time.Time, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}

	cutoff := now.AddDate(0, 0, -retentionDays)
	result := db.Unscoped().Where("created_at < ?", cutoff).Delete(&models.ErrorLog{})
	return result.RowsAffected, result.Error
}
