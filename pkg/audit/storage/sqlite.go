package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"zerox/netpolicy/pkg/audit"
)

// SQLiteConfig contains configuration for the SQLite storage backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections. Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections. Default: 5
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is how long to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/audit.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStorage implements audit.Storage using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStorage opens (or creates) the audit database and initializes
// the schema.
func NewSQLiteStorage(config *SQLiteConfig, logger *slog.Logger) (*SQLiteStorage, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "audit.storage.sqlite")

	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database %q: %w", config.Path, err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &SQLiteStorage{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("audit storage initialized",
		"path", config.Path,
		"wal_mode", config.WALMode,
	)

	return s, nil
}

// initialize sets up the database schema and pragmas.
func (s *SQLiteStorage) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return fmt.Errorf("failed to insert schema version: %w", err)
	}

	var version int
	err := s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version != SchemaVersion {
		return fmt.Errorf("schema version mismatch: expected %d, got %d", SchemaVersion, version)
	}

	return nil
}

// Store persists a record.
func (s *SQLiteStorage) Store(ctx context.Context, rec *audit.Record) error {
	const q = `
INSERT INTO decisions (
    id, decided_at, network_state, matched, rule_name, action, target,
    log_flag, sni, protocol, port, latency_ms, rtt_ms, duration_micros
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	_, err := s.db.ExecContext(ctx, q,
		rec.ID,
		rec.Time,
		rec.State,
		rec.Matched,
		rec.Rule,
		rec.Action,
		rec.Target,
		rec.Log,
		rec.SNI,
		rec.Protocol,
		nullableUint16(rec.Port),
		nullableUint32(rec.LatencyMS),
		nullableUint32(rec.RTTMS),
		rec.DurationMicros,
	)
	if err != nil {
		return fmt.Errorf("failed to store record %s: %w", rec.ID, err)
	}
	return nil
}

// Recent returns the most recent records, newest first.
func (s *SQLiteStorage) Recent(ctx context.Context, limit int) ([]*audit.Record, error) {
	const q = `
SELECT id, decided_at, network_state, matched, rule_name, action, target,
       log_flag, sni, protocol, port, latency_ms, rtt_ms, duration_micros
FROM decisions
ORDER BY decided_at DESC
LIMIT ?;`

	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent records: %w", err)
	}
	defer rows.Close()

	var records []*audit.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}
	return records, nil
}

// Count returns the total number of stored records.
func (s *SQLiteStorage) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM decisions;").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

// DeleteOlderThan deletes records older than the cutoff.
func (s *SQLiteStorage) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM decisions WHERE decided_at < ?;", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old records: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return deleted, nil
}

// TrimToCount deletes the oldest records until at most keep remain.
func (s *SQLiteStorage) TrimToCount(ctx context.Context, keep int64) (int64, error) {
	const q = `
DELETE FROM decisions
WHERE id IN (
    SELECT id FROM decisions
    ORDER BY decided_at DESC
    LIMIT -1 OFFSET ?
);`

	res, err := s.db.ExecContext(ctx, q, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to trim records: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return deleted, nil
}

// Close closes the database.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func scanRecord(rows *sql.Rows) (*audit.Record, error) {
	var (
		rec       audit.Record
		rule      sql.NullString
		target    sql.NullString
		sni       sql.NullString
		protocol  sql.NullString
		port      sql.NullInt64
		latencyMS sql.NullInt64
		rttMS     sql.NullInt64
	)

	err := rows.Scan(
		&rec.ID,
		&rec.Time,
		&rec.State,
		&rec.Matched,
		&rule,
		&rec.Action,
		&target,
		&rec.Log,
		&sni,
		&protocol,
		&port,
		&latencyMS,
		&rttMS,
		&rec.DurationMicros,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan record: %w", err)
	}

	rec.Rule = rule.String
	rec.Target = target.String
	rec.SNI = sni.String
	rec.Protocol = protocol.String
	if port.Valid {
		v := uint16(port.Int64)
		rec.Port = &v
	}
	if latencyMS.Valid {
		v := uint32(latencyMS.Int64)
		rec.LatencyMS = &v
	}
	if rttMS.Valid {
		v := uint32(rttMS.Int64)
		rec.RTTMS = &v
	}

	return &rec, nil
}

func nullableUint16(v *uint16) interface{} {
	if v == nil {
		return nil
	}
	return int64(*v)
}

func nullableUint32(v *uint32) interface{} {
	if v == nil {
		return nil
	}
	return int64(*v)
}
