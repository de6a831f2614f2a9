// Package db pkg/db/events.go
package db

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/mfreeman451/unradar/pkg/models"
)

// StoreResourceEvent stores one appearance or removal.
func (db *DB) StoreResourceEvent(event *ResourceEvent) error {
	_, err := db.Exec(`
        INSERT INTO resource_events
            (server_id, class, resource_id, event, timestamp)
        VALUES (?, ?, ?, ?, ?)`,
		event.ServerID,
		string(event.Class),
		event.ResourceID,
		event.Event,
		event.Timestamp,
	)

	if err != nil {
		return fmt.Errorf("%w resource event: %w", ErrFailedToInsert, err)
	}

	return nil
}

// GetResourceEvents retrieves recent events for a server, newest first.
func (db *DB) GetResourceEvents(serverID string, limit int) ([]ResourceEvent, error) {
	const query = `
        SELECT class, resource_id, event, timestamp
        FROM resource_events
        WHERE server_id = ?
        ORDER BY timestamp DESC
        LIMIT ?
    `

	rows, err := db.Query(query, serverID, limit) //nolint:rowserrcheck // rows.Close() is deferred
	if err != nil {
		return nil, fmt.Errorf("%w resource events: %w", ErrFailedToQuery, err)
	}
	defer func(rows *sql.Rows) {
		err := rows.Close()
		if err != nil {
			log.Printf("failed to close rows: %v", err)
		}
	}(rows)

	var events []ResourceEvent

	for rows.Next() {
		var (
			event ResourceEvent
			class string
		)

		event.ServerID = serverID

		if err := rows.Scan(&class, &event.ResourceID, &event.Event, &event.Timestamp); err != nil {
			return nil, fmt.Errorf("%w event row: %w", ErrFailedToScan, err)
		}

		event.Class = models.ResourceClass(class)

		events = append(events, event)
	}

	return events, nil
}
