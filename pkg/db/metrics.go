// Package db pkg/db/metrics.go
package db

import (
	"database/sql"
	"fmt"
	"log"
)

// StoreMetricsSample stores one utilization sample.
func (db *DB) StoreMetricsSample(sample *MetricsSample) error {
	var arrayPercent sql.NullFloat64
	if sample.ArrayPercent != nil {
		arrayPercent.Float64 = *sample.ArrayPercent
		arrayPercent.Valid = true
	}

	_, err := db.Exec(`
        INSERT INTO metrics_history
            (server_id, timestamp, cpu_percent, memory_percent, array_percent)
        VALUES (?, ?, ?, ?, ?)`,
		sample.ServerID,
		sample.Timestamp,
		sample.CPUPercent,
		sample.MemoryPercent,
		arrayPercent,
	)

	if err != nil {
		return fmt.Errorf("%w metrics sample: %w", ErrFailedToInsert, err)
	}

	return nil
}

// GetMetricsHistory retrieves recent samples for a server, newest first.
func (db *DB) GetMetricsHistory(serverID string, limit int) ([]MetricsSample, error) {
	const query = `
        SELECT timestamp, cpu_percent, memory_percent, array_percent
        FROM metrics_history
        WHERE server_id = ?
        ORDER BY timestamp DESC
        LIMIT ?
    `

	rows, err := db.Query(query, serverID, limit) //nolint:rowserrcheck // rows.Close() is deferred
	if err != nil {
		return nil, fmt.Errorf("%w metrics history: %w", ErrFailedToQuery, err)
	}
	defer func(rows *sql.Rows) {
		err := rows.Close()
		if err != nil {
			log.Printf("failed to close rows: %v", err)
		}
	}(rows)

	var samples []MetricsSample

	for rows.Next() {
		var (
			sample       MetricsSample
			arrayPercent sql.NullFloat64
		)

		sample.ServerID = serverID

		if err := rows.Scan(&sample.Timestamp, &sample.CPUPercent,
			&sample.MemoryPercent, &arrayPercent); err != nil {
			return nil, fmt.Errorf("%w metrics row: %w", ErrFailedToScan, err)
		}

		if arrayPercent.Valid {
			value := arrayPercent.Float64
			sample.ArrayPercent = &value
		}

		samples = append(samples, sample)
	}

	return samples, nil
}
