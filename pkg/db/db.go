// Package db pkg/db/db.go provides SQLite persistence for unradar.
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const (
	// SQL statements for database initialization.
	createTablesSQL = `
	-- Monitored server information
	CREATE TABLE IF NOT EXISTS servers (
		server_id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		version TEXT NOT NULL DEFAULT '',
		first_seen TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		last_seen TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		online BOOLEAN NOT NULL DEFAULT 0,
		degraded BOOLEAN NOT NULL DEFAULT 0,
		needs_reauth BOOLEAN NOT NULL DEFAULT 0
	);

	-- Utilization sample history
	CREATE TABLE IF NOT EXISTS metrics_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		server_id TEXT NOT NULL,
		timestamp TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		cpu_percent REAL NOT NULL,
		memory_percent REAL NOT NULL,
		array_percent REAL,
		FOREIGN KEY (server_id) REFERENCES servers(server_id) ON DELETE CASCADE
	);

	-- Resource appearance and removal events
	CREATE TABLE IF NOT EXISTS resource_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		server_id TEXT NOT NULL,
		class TEXT NOT NULL,
		resource_id TEXT NOT NULL,
		event TEXT NOT NULL,
		timestamp TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (server_id) REFERENCES servers(server_id) ON DELETE CASCADE
	);

	-- Indexes for better query performance
	CREATE INDEX IF NOT EXISTS idx_metrics_history_server_time
		ON metrics_history(server_id, timestamp);
	CREATE INDEX IF NOT EXISTS idx_resource_events_server_time
		ON resource_events(server_id, timestamp);
	CREATE INDEX IF NOT EXISTS idx_resource_events_class
		ON resource_events(class);

	-- Enable WAL mode for better concurrent access
	PRAGMA journal_mode=WAL;
	PRAGMA foreign_keys=ON;
	`
)

// DB represents the database connection and operations.
type DB struct {
	*sql.DB
}

// New creates a new database connection and initializes the schema.
func New(dbPath string) (Service, error) {
	sqlDB, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedOpenDB, err)
	}

	// Enable WAL mode for better concurrent access
	if _, err := sqlDB.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToEnableWAL, err)
	}

	db := &DB{sqlDB}
	if err := db.initSchema(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToInit, err)
	}

	return db, nil
}

// initSchema creates the database tables if they don't exist.
func (db *DB) initSchema() error {
	_, err := db.Exec(createTablesSQL)

	return err
}

// UpdateServerStatus records a server's current state and bumps
// last_seen. An unknown server is inserted.
func (db *DB) UpdateServerStatus(status *ServerStatus) (err error) {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToBeginTx, err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Printf("Error rolling back transaction: %v", rbErr)
			}
			return
		}
		err = tx.Commit()
	}()

	err = db.updateExistingServer(tx, status)
	if errors.Is(err, sql.ErrNoRows) {
		err = db.insertNewServer(tx, status)
	}

	if err != nil {
		err = fmt.Errorf("failed to update server status: %w", err)
	}

	return err
}

func (*DB) updateExistingServer(tx *sql.Tx, status *ServerStatus) error {
	result, err := tx.Exec(`
        UPDATE servers
        SET name = ?,
            version = ?,
            last_seen = ?,
            online = ?,
            degraded = ?,
            needs_reauth = ?
        WHERE server_id = ?
    `, status.Name, status.Version, status.LastSeen,
		status.Online, status.Degraded, status.NeedsReauth, status.ServerID)
	if err != nil {
		return fmt.Errorf("failed to update server: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (*DB) insertNewServer(tx *sql.Tx, status *ServerStatus) error {
	_, err := tx.Exec(`
        INSERT INTO servers (server_id, name, version, first_seen, last_seen, online, degraded, needs_reauth)
        VALUES (?, ?, ?, CURRENT_TIMESTAMP, ?, ?, ?, ?)
    `, status.ServerID, status.Name, status.Version, status.LastSeen,
		status.Online, status.Degraded, status.NeedsReauth)

	if err != nil {
		return fmt.Errorf("%w server: %w", ErrFailedToInsert, err)
	}

	return nil
}

// GetServerStatus returns the stored state for one server.
func (db *DB) GetServerStatus(serverID string) (*ServerStatus, error) {
	const query = `
        SELECT server_id, name, version, first_seen, last_seen, online, degraded, needs_reauth
        FROM servers
        WHERE server_id = ?
    `

	var status ServerStatus
	err := db.QueryRow(query, serverID).Scan(
		&status.ServerID,
		&status.Name,
		&status.Version,
		&status.FirstSeen,
		&status.LastSeen,
		&status.Online,
		&status.Degraded,
		&status.NeedsReauth,
	)

	if err != nil {
		return nil, fmt.Errorf("%w server status: %w", ErrFailedToQuery, err)
	}

	return &status, nil
}

// GetServerStatuses lists every stored server, most recently seen first.
func (db *DB) GetServerStatuses() ([]ServerStatus, error) {
	const query = `
        SELECT server_id, name, version, first_seen, last_seen, online, degraded, needs_reauth
        FROM servers
        ORDER BY last_seen DESC
    `

	rows, err := db.Query(query) //nolint:rowserrcheck // rows.Close() is deferred
	if err != nil {
		return nil, fmt.Errorf("%w server statuses: %w", ErrFailedToQuery, err)
	}
	defer func(rows *sql.Rows) {
		err := rows.Close()
		if err != nil {
			log.Printf("failed to close rows: %v", err)
		}
	}(rows)

	var statuses []ServerStatus

	for rows.Next() {
		var s ServerStatus

		if err := rows.Scan(&s.ServerID, &s.Name, &s.Version, &s.FirstSeen,
			&s.LastSeen, &s.Online, &s.Degraded, &s.NeedsReauth); err != nil {
			return nil, fmt.Errorf("%w server row: %w", ErrFailedToScan, err)
		}

		statuses = append(statuses, s)
	}

	return statuses, nil
}
