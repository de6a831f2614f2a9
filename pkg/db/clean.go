package db

import (
	"fmt"
	"log"
	"time"
)

// CleanOldData removes history older than the retention period.
func (db *DB) CleanOldData(retentionPeriod time.Duration) (err error) {
	cutoff := time.Now().Add(-retentionPeriod)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToBeginTx, err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Printf("failed to rollback: %v", rbErr)
			}
			return
		}
		err = tx.Commit()
	}()

	// Clean up utilization history
	if _, err = tx.Exec(
		"DELETE FROM metrics_history WHERE timestamp < ?",
		cutoff,
	); err != nil {
		err = fmt.Errorf("%w metrics history: %w", ErrFailedToClean, err)
		return err
	}

	// Clean up resource events
	if _, err = tx.Exec(
		"DELETE FROM resource_events WHERE timestamp < ?",
		cutoff,
	); err != nil {
		err = fmt.Errorf("%w resource events: %w", ErrFailedToClean, err)
		return err
	}

	return nil
}
